package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spindle-fm/spindle/internal/server"
	"github.com/spindle-fm/spindle/internal/services"
	"github.com/spindle-fm/spindle/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthSpotify runs the OAuth2 flow against Spotify and saves the token.
func (r *Runner) AuthSpotify(ctx context.Context, cmd *cli.Command) error {
	return r.auth(ctx, cmd, "spotify")
}

// AuthGenius runs the OAuth2 flow against Genius and saves the token.
func (r *Runner) AuthGenius(ctx context.Context, cmd *cli.Command) error {
	return r.auth(ctx, cmd, "genius")
}

func (r *Runner) auth(ctx context.Context, cmd *cli.Command, name string) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = "config.toml"
	}

	platform, err := r.platform(name)
	if err != nil {
		return fmt.Errorf("failed to create %s service: %w", name, err)
	}

	oauthPlatform, ok := platform.(services.OAuthPlatform)
	if !ok {
		return fmt.Errorf("%w: %s does not support OAuth authorization", shared.ErrNotImplemented, name)
	}

	token, err := r.doOAuth(name, oauthPlatform)
	if err != nil {
		return err
	}

	if err := r.saveToken(configPath, name, token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token saved to %s\n\n", configPath)
	r.writePlain("You can now use: spindle prefs --platform %s\n", name)

	return nil
}

// saveToken persists the access token for the named platform to the config
// file. An empty path updates the in-memory config only.
func (r *Runner) saveToken(configPath, name string, token *oauth2.Token) error {
	if r.config == nil {
		return fmt.Errorf("config is nil")
	}
	if token == nil {
		return fmt.Errorf("token cannot be nil")
	}

	switch name {
	case "spotify":
		r.config.Credentials.Spotify.AccessToken = token.AccessToken
	case "genius":
		r.config.Credentials.Genius.AccessToken = token.AccessToken
	default:
		return fmt.Errorf("%w: unknown platform %q", shared.ErrInvalidArgument, name)
	}

	if configPath == "" {
		return nil
	}

	if err := shared.SaveConfig(configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(name string, srv services.OAuthPlatform) (*oauth2.Token, error) {
	state := shared.GenerateID()

	authURL := srv.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(name, srv.GetOAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for %s authorization...\n", srv.Name())
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	r.logger.Infof("received %s token", result.Platform)

	return result.Token, nil
}
