package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"

	"flight-intent-service/internal/infrastructure/config"
	"flight-intent-service/internal/infrastructure/oauth"
	"flight-intent-service/pkg/logger"
)

const callbackAddr = "localhost:8090"

// Prints a Gmail refresh token for GMAIL_REFRESH_TOKEN after the browser
// consent flow completes.
func main() {
	log := logger.NewLogger("info")
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if cfg.GmailClientID == "" || cfg.GmailClientSecret == "" {
		log.Fatal("GMAIL_CLIENT_ID and GMAIL_CLIENT_SECRET are required")
	}

	gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, "", log)
	gmailOAuth.SetRedirectURL("http://" + callbackAddr + "/oauth2callback")

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal("Failed to create state", "error", err)
	}
	state := hex.EncodeToString(buf)

	// Start an HTTP server to handle the OAuth callback
	http.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		token, err := gmailOAuth.ExchangeCode(context.Background(), r.URL.Query().Get("code"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		tokenJSON, err := gmailOAuth.TokenToJSON(token)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Printf("\nToken:\n%s\n\nGMAIL_REFRESH_TOKEN=%s\n\n", tokenJSON, token.RefreshToken)

		fmt.Fprintf(w, "Authentication successful! You can close this window.")
		log.Sync()
		os.Exit(0)
	})

	fmt.Printf("Open this URL in your browser:\n%s\n", gmailOAuth.GenerateAuthURL(state))

	if err := http.ListenAndServe(callbackAddr, nil); err != nil {
		log.Fatal("Callback server error", "error", err)
	}
}
