package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"playtracker/internal/auth"
)

// Scopes required by the tracker: reading recent plays and top lists.
var scopes = []string{"user-read-recently-played", "user-top-read"}

func main() {
	var (
		clientID     = flag.String("client-id", "", "Spotify application client ID")
		clientSecret = flag.String("client-secret", "", "Spotify application client secret")
		redirectURI  = flag.String("redirect-uri", "http://localhost:8080/callback", "Registered redirect URI")
	)
	flag.Parse()

	if *clientID == "" || *clientSecret == "" {
		fmt.Println("Usage: authorize -client-id <id> -client-secret <secret>")
		fmt.Println("\nPerforms the one-time authorization flow and prints the refresh")
		fmt.Println("token to put in your config file (spotify.refresh_token).")
		flag.PrintDefaults()
		return
	}

	cfg := &oauth2.Config{
		ClientID:     *clientID,
		ClientSecret: *clientSecret,
		RedirectURL:  *redirectURI,
		Scopes:       scopes,
		Endpoint:     endpoints.Spotify,
	}

	authURL := cfg.AuthCodeURL("state", oauth2.AccessTypeOffline)

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	port := "8080"
	if u, err := url.Parse(*redirectURI); err == nil && u.Port() != "" {
		port = u.Port()
	}
	go auth.StartHTTPServer(port, codeChan, errChan)

	// Give the server time to start before pointing the user at it.
	time.Sleep(1 * time.Second)

	fmt.Printf("\nOpen this URL in your browser and approve access:\n\n%s\n\n", authURL)

	var authCode string
	select {
	case authCode = <-codeChan:
	case err := <-errChan:
		log.Fatalf("Authorization failed: %v", err)
	case <-time.After(5 * time.Minute):
		log.Fatalf("Authorization timeout - no response received within 5 minutes")
	}

	token, err := cfg.Exchange(context.Background(), authCode)
	if err != nil {
		log.Fatalf("Exchanging authorization code: %v", err)
	}

	if token.RefreshToken == "" {
		log.Fatalf("No refresh token in response; remove the app's prior authorization and retry")
	}

	fmt.Println("Authorization successful. Add this to your config file:")
	fmt.Printf("\nspotify:\n  refresh_token: %s\n", token.RefreshToken)
}
