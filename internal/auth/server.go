// Package auth runs the one-time localhost OAuth callback used to mint the
// refresh token the tracker runs on.
package auth

import (
	"fmt"
	"net/http"
	"time"
)

// StartHTTPServer starts a local HTTP server that waits for the OAuth
// callback and delivers the authorization code on codeChan.
func StartHTTPServer(port string, codeChan chan string, errChan chan error) {
	mux := http.NewServeMux()

	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errorMsg := r.URL.Query().Get("error")
			if errorMsg != "" {
				http.Error(w, fmt.Sprintf("Authorization error: %s", errorMsg), http.StatusBadRequest)
				errChan <- fmt.Errorf("authorization error: %s", errorMsg)
				return
			}
			http.Error(w, "No authorization code received", http.StatusBadRequest)
			errChan <- fmt.Errorf("no authorization code received")
			return
		}

		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`
			<!DOCTYPE html>
			<html>
			<head><title>playtracker - Authorization Successful</title></head>
			<body style="font-family: sans-serif; text-align: center; margin-top: 50px;">
				<h1>Authorization successful</h1>
				<p>You can close this browser window and return to the terminal.</p>
			</body>
			</html>
		`))

		codeChan <- code
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	fmt.Printf("Waiting for callback on http://localhost:%s/callback\n", port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("HTTP server error: %w", err)
	}
}
