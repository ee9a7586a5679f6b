package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/spotify-mcp/internal/server"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/desertthunder/spotify-mcp/internal/spotify"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the OAuth2 authorization code flow.
//
// Starts the loopback callback server, opens the browser for user
// authorization, and writes the exchanged token to the cache file.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.config.Credentials.Spotify.ClientID == "" || r.config.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	client, err := spotify.NewClient(r.config.Credentials.Spotify.Map(), r.logger)
	if err != nil {
		return err
	}

	state := shared.GenerateState()
	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	callback := server.NewCallbackServer(client.OAuthConfig(), state, addr, r.logger)
	callback.Start()

	time.Sleep(100 * time.Millisecond)

	authURL := client.GetAuthURL(state)
	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	token, err := callback.Wait(ctx)
	if err != nil {
		return err
	}

	tokenPath, err := r.config.TokenPath()
	if err != nil {
		return err
	}
	if err := spotify.SaveToken(tokenPath, token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token saved to %s\n\n", tokenPath)
	r.writePlain("You can now use: spotify-mcp serve\n")

	return nil
}

// AuthStatus reports whether the cached token exists and is still valid.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	tokenPath, err := r.config.TokenPath()
	if err != nil {
		return err
	}

	token, err := spotify.LoadToken(tokenPath)
	if err != nil {
		r.writePlain("✗ No cached token found at %s\n", tokenPath)
		r.writePlain("Run: spotify-mcp auth login\n")
		return nil
	}

	if token.Valid() {
		r.writePlain("✓ Token is valid\n")
		if !token.Expiry.IsZero() {
			r.writePlain("Expires: %s\n", token.Expiry.Format(time.RFC3339))
		}
		return nil
	}

	if token.RefreshToken != "" {
		r.writePlain("⚠ Access token expired; it will be refreshed on next use\n")
		return nil
	}

	r.writePlain("✗ Token expired and no refresh token available\n")
	r.writePlain("Run: spotify-mcp auth login\n")
	return nil
}
