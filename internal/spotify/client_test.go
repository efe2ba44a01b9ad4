package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// testClient points a Client at a stub API server, bypassing token refresh.
func testClient(srv *httptest.Server) *Client {
	return &Client{
		httpClient: srv.Client(),
		tokens:     oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test"}),
		baseURL:    srv.URL,
	}
}

func TestRecentlyPlayed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/player/recently-played", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{
					"played_at": "2024-01-01T10:00:00Z",
					"track": {
						"id": "a",
						"name": "Song A",
						"artists": [{"name": "Artist1"}, {"name": "Artist2"}],
						"album": {"id": "al1", "name": "Album1", "artists": [{"name": "Artist1"}]}
					}
				},
				{
					"played_at": "2024-01-01T10:04:00Z",
					"track": {"id": "b", "name": "Song B", "artists": [{"name": "Artist1"}]}
				}
			]
		}`))
	}))
	defer srv.Close()

	events, err := testClient(srv).RecentlyPlayed(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2024-01-01T10:00:00Z", events[0].PlayedAt)
	require.NotNil(t, events[0].Track)
	assert.Equal(t, "Song A", events[0].Track.Name)
	require.Len(t, events[0].Track.Artists, 2)
	require.NotNil(t, events[0].Track.Album)
	assert.Equal(t, "al1", events[0].Track.Album.ID)
	assert.Nil(t, events[1].Track.Album)
}

func TestTopTracks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/top/tracks", r.URL.Path)
		assert.Equal(t, "short_term", r.URL.Query().Get("time_range"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [{"name": "Song A", "artists": [{"name": "Artist1"}]}]}`))
	}))
	defer srv.Close()

	items, err := testClient(srv).TopTracks(context.Background(), "short_term", 50)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Song A", items[0].Name)
	assert.Equal(t, "Artist1", items[0].Artist)
}

func TestTopArtists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/top/artists", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [{"name": "Artist1"}, {"name": "Artist2"}]}`))
	}))
	defer srv.Close()

	items, err := testClient(srv).TopArtists(context.Background(), "long_term", 50)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Artist1", items[0].Name)
	assert.Empty(t, items[0].Artist)
}

func TestMakeRequestNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv).RecentlyPlayed(context.Background(), 50)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
