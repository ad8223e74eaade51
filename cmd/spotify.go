package main

import (
	"context"
	"fmt"
	"time"

	"github.com/SheCodesAus/vibelab/internal/server"
	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/urfave/cli/v3"
)

// linkTimeout bounds how long the callback listener waits for the
// browser redirect.
const linkTimeout = 3 * time.Minute

// SpotifyLink runs the browser authorization handshake: starts the
// loopback callback listener, opens the authorize URL, and waits for the
// redirect to complete the exchange.
func (r *Runner) SpotifyLink(ctx context.Context, cmd *cli.Command) error {
	if r.config.Spotify.ClientID == "" {
		return fmt.Errorf("%w: spotify client_id, edit config.toml", shared.ErrMissingConfig)
	}

	state, err := shared.GenerateState()
	if err != nil {
		return err
	}

	authURL, err := r.flow.Begin(ctx, state)
	if err != nil {
		return err
	}

	handler := server.NewCallbackHandler(r.flow, state)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(handler)

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	addr := fmt.Sprintf("%s:%d", r.config.Callback.Host, r.config.Callback.Port)
	serveErr := make(chan error, 1)

	go func() {
		serveErr <- server.Serve(serveCtx, addr, router)
	}()

	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL in your browser:\n\n%s\n\n", authURL)
	} else {
		r.logger.Info("opening browser for authorization")
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
			r.writePlain("Open this URL in your browser:\n\n%s\n\n", authURL)
		}
	}

	r.writePlain("Waiting for authorization (listening on %s)...\n", addr)

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return fmt.Errorf("authorization failed: %w", err)
		}
		r.logger.Info("spotify account linked", "expires", result.Credential.Expiry)
		return r.writePlain("✓ Spotify account linked\n")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("callback listener failed: %w", err)
		}
		return fmt.Errorf("%w: callback listener stopped", shared.ErrTimeout)
	case <-time.After(linkTimeout):
		return fmt.Errorf("%w: no authorization callback received", shared.ErrTimeout)
	}
}

// SpotifyUnlink drops the delegated Spotify credential.
func (r *Runner) SpotifyUnlink(ctx context.Context, cmd *cli.Command) error {
	if err := r.flow.Unlink(); err != nil {
		return err
	}
	return r.writePlain("✓ Spotify account unlinked\n")
}

// SpotifySearch queries the catalog. Works logged out: without a linked
// account the anonymous client-credentials token is used.
func (r *Runner) SpotifySearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	results, err := r.catalog.Search(ctx, query, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	if len(results) == 0 {
		return r.writePlain("No tracks found for %q\n", query)
	}

	for i, track := range results {
		album := ""
		if track.Album != "" {
			album = fmt.Sprintf(" (%s)", track.Album)
		}
		r.writePlain("%2d. %s - %s%s [%s]\n", i+1, track.Artist, track.Title, album, track.ID)
	}

	return nil
}
