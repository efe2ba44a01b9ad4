package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"playtracker/internal/config"
	"playtracker/internal/models"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// Client represents a Spotify Web API client authenticated as a user via a
// long-lived refresh token.
type Client struct {
	config     *config.SpotifyConfig
	httpClient *http.Client
	tokens     oauth2.TokenSource
	baseURL    string
}

// NewClient creates a new Spotify client. No network traffic happens until
// Authenticate or the first request.
func NewClient(cfg *config.SpotifyConfig) *Client {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoints.Spotify,
	}

	ctx := context.Background()
	tokens := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	return &Client{
		config:     cfg,
		httpClient: oauth2.NewClient(ctx, tokens),
		tokens:     tokens,
		baseURL:    defaultBaseURL,
	}
}

// Authenticate exchanges the refresh token for a bearer token so auth
// failures surface before any fetch is attempted.
func (c *Client) Authenticate(ctx context.Context) error {
	if _, err := c.tokens.Token(); err != nil {
		return fmt.Errorf("exchanging refresh token: %w", err)
	}
	return nil
}

// RecentlyPlayed fetches the user's most recent plays, newest first,
// bounded by limit (the API caps it at 50).
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) ([]models.PlayEvent, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	response := &recentlyPlayedResponse{}
	if err := c.makeRequest(ctx, c.baseURL+"/me/player/recently-played?"+params.Encode(), response); err != nil {
		return nil, fmt.Errorf("fetching recently played: %w", err)
	}

	events := make([]models.PlayEvent, 0, len(response.Items))
	for _, item := range response.Items {
		events = append(events, models.PlayEvent{
			PlayedAt: item.PlayedAt,
			Track:    convertTrack(item.Track),
		})
	}

	return events, nil
}

// TopTracks fetches the user's pre-ranked top tracks for a time window.
func (c *Client) TopTracks(ctx context.Context, window string, limit int) ([]models.RankedItem, error) {
	params := url.Values{}
	params.Set("time_range", window)
	params.Set("limit", strconv.Itoa(limit))

	response := &topTracksResponse{}
	if err := c.makeRequest(ctx, c.baseURL+"/me/top/tracks?"+params.Encode(), response); err != nil {
		return nil, fmt.Errorf("fetching top tracks (%s): %w", window, err)
	}

	items := make([]models.RankedItem, 0, len(response.Items))
	for _, track := range response.Items {
		items = append(items, models.RankedItem{
			Name:   track.Name,
			Artist: firstArtistName(track.Artists),
		})
	}

	return items, nil
}

// TopArtists fetches the user's pre-ranked top artists for a time window.
func (c *Client) TopArtists(ctx context.Context, window string, limit int) ([]models.RankedItem, error) {
	params := url.Values{}
	params.Set("time_range", window)
	params.Set("limit", strconv.Itoa(limit))

	response := &topArtistsResponse{}
	if err := c.makeRequest(ctx, c.baseURL+"/me/top/artists?"+params.Encode(), response); err != nil {
		return nil, fmt.Errorf("fetching top artists (%s): %w", window, err)
	}

	items := make([]models.RankedItem, 0, len(response.Items))
	for _, artist := range response.Items {
		items = append(items, models.RankedItem{Name: artist.Name})
	}

	return items, nil
}

// makeRequest performs a GET against the Spotify API and decodes the body.
func (c *Client) makeRequest(ctx context.Context, requestURL string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// convertTrack maps an API track to the model, dropping nothing that is
// present and inventing nothing that is absent.
func convertTrack(t *apiTrack) *models.Track {
	if t == nil {
		return nil
	}

	track := &models.Track{
		ID:      t.ID,
		Name:    t.Name,
		Artists: convertArtists(t.Artists),
	}

	if t.Album != nil {
		track.Album = &models.Album{
			ID:      t.Album.ID,
			Name:    t.Album.Name,
			Artists: convertArtists(t.Album.Artists),
		}
	}

	return track
}

func convertArtists(artists []apiArtist) []models.Artist {
	if len(artists) == 0 {
		return nil
	}
	out := make([]models.Artist, 0, len(artists))
	for _, a := range artists {
		out = append(out, models.Artist{Name: a.Name})
	}
	return out
}

func firstArtistName(artists []apiArtist) string {
	if len(artists) > 0 {
		return artists[0].Name
	}
	return ""
}

// Spotify API response structures

type recentlyPlayedResponse struct {
	Items []recentlyPlayedItem `json:"items"`
}

type recentlyPlayedItem struct {
	PlayedAt string    `json:"played_at"`
	Track    *apiTrack `json:"track"`
}

type topTracksResponse struct {
	Items []apiTrack `json:"items"`
}

type topArtistsResponse struct {
	Items []apiArtist `json:"items"`
}

type apiTrack struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Artists []apiArtist `json:"artists"`
	Album   *apiAlbum   `json:"album"`
}

type apiArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiAlbum struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Artists []apiArtist `json:"artists"`
}
