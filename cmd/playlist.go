package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/SheCodesAus/vibelab/internal/formatter"
	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/services"
	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/SheCodesAus/vibelab/internal/tasks"
	"github.com/urfave/cli/v3"
)

// requireLogin fails fast with a hint instead of a bare 401 later.
func (r *Runner) requireLogin() error {
	if !r.session.LoggedIn() {
		return fmt.Errorf("%w: run 'vibelab auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

// drainProgress logs progress updates until the channel closes.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate) {
	for update := range progress {
		r.logger.Info(update.Message, "phase", update.Phase.String())
	}
}

// PlaylistList lists the logged-in user's playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}

	playlists, err := r.backend.Playlists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists yet, create one with 'vibelab playlist create'\n")
	}

	for _, pl := range playlists {
		r.writePlain("%s  %s [%s, %s, %d tracks]\n",
			pl.ID, pl.Name, pl.Vibe, shared.VisibilityString(pl.Open), len(pl.Items))
	}

	return nil
}

// PlaylistShow prints one playlist with its tracks. With --cached the
// local snapshot is used and no request is made.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	var playlist *models.Playlist

	if cmd.Bool("cached") {
		if r.cache == nil {
			return fmt.Errorf("%w: local cache, run 'vibelab setup database'", shared.ErrServiceUnavailable)
		}
		cached, fetchedAt, err := r.cache.Get(id)
		if err != nil {
			return err
		}
		playlist = cached
		r.logger.Info("using cached snapshot", "fetched_at", fetchedAt)
	} else {
		if err := r.requireLogin(); err != nil {
			return err
		}
		fetched, err := r.backend.Playlist(ctx, id)
		if err != nil {
			return err
		}
		playlist = fetched

		if r.cache != nil {
			if err := r.cache.Put(*playlist); err != nil {
				r.logger.Warn("failed to cache snapshot", "error", err)
			}
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	text, err := formatter.ExportToText(playlist)
	if err != nil {
		return err
	}
	return r.writePlain("%s", string(text))
}

// PlaylistCreate creates a playlist. With --from-file the given lines
// are resolved against the catalog and added in one publish run.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}

	vibe, err := models.ParseVibe(cmd.String("vibe"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	draft := tasks.Draft{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
		Vibe:        vibe,
		Open:        cmd.Bool("open"),
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		r.drainProgress(progress)
		close(done)
	}()

	if path := cmd.String("from-file"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			close(progress)
			<-done
			return fmt.Errorf("failed to read track file: %w", err)
		}

		resolved, err := r.engine.Resolve(ctx, progress, strings.Split(string(raw), "\n"))
		if err != nil {
			close(progress)
			<-done
			return err
		}

		for _, res := range resolved {
			if res.Matched == nil {
				r.logger.Warn("no catalog match", "query", res.Query)
				continue
			}
			draft.Tracks = append(draft.Tracks, res.Matched.Item())
		}
	}

	result, err := r.engine.Publish(ctx, progress, draft)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("✓ Playlist %q created (%s)\n", result.Playlist.Name, result.Playlist.ID)
	if len(draft.Tracks) > 0 {
		r.writePlain("Tracks added: %d/%d\n", result.SuccessCount, result.SuccessCount+result.FailedCount)
		for _, item := range result.ItemResults {
			if item.Error != nil {
				r.writePlain("  ✗ %s - %s: %v\n", item.Item.Artist, item.Item.Title, item.Error)
			}
		}
	}

	return nil
}

// PlaylistEdit updates name, description, vibe or visibility. Unset
// flags keep the playlist's current values.
func (r *Runner) PlaylistEdit(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if err := r.requireLogin(); err != nil {
		return err
	}

	current, err := r.backend.Playlist(ctx, id)
	if err != nil {
		return err
	}

	req := services.CreatePlaylistRequest{
		Name:        current.Name,
		Description: current.Description,
		Vibe:        current.Vibe,
		Open:        current.Open,
	}

	if name := cmd.String("name"); name != "" {
		req.Name = name
	}
	if cmd.IsSet("description") {
		req.Description = cmd.String("description")
	}
	if raw := cmd.String("vibe"); raw != "" {
		vibe, err := models.ParseVibe(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		req.Vibe = vibe
	}
	if cmd.IsSet("open") {
		req.Open = cmd.Bool("open")
	}

	updated, err := r.backend.UpdatePlaylist(ctx, id, req)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Updated %q [%s, %s]\n",
		updated.Name, updated.Vibe, shared.VisibilityString(updated.Open))
}

// PlaylistDelete removes a playlist and drops its local snapshot.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if err := r.requireLogin(); err != nil {
		return err
	}

	if err := r.backend.DeletePlaylist(ctx, id); err != nil {
		return err
	}

	if r.cache != nil {
		if err := r.cache.Delete(id); err != nil {
			r.logger.Warn("failed to drop cached snapshot", "error", err)
		}
	}

	return r.writePlain("✓ Deleted playlist %s\n", id)
}

// PlaylistAdd searches the catalog and adds the best match to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	query := cmd.StringArg("query")
	if id == "" || query == "" {
		return fmt.Errorf("%w: playlist id and query", shared.ErrMissingArgument)
	}

	// passphrase holders can add without being logged in
	passphrase := cmd.String("passphrase")
	if passphrase == "" {
		if err := r.requireLogin(); err != nil {
			return err
		}
	}

	matches, err := r.catalog.Search(ctx, query, 1)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("%w: no catalog match for %q", shared.ErrTrackNotFound, query)
	}

	created, err := r.backend.AddItem(ctx, id, matches[0].Item(), passphrase)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Added %s - %s\n", created.Artist, created.Title)
}

// PlaylistRemove removes a track from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if err := r.requireLogin(); err != nil {
		return err
	}

	itemID := int(cmd.Int("item"))
	if err := r.backend.RemoveItem(ctx, id, itemID); err != nil {
		return err
	}

	return r.writePlain("✓ Removed item %d\n", itemID)
}

// PlaylistExport writes a playlist to CSV, Markdown or plain text.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	var playlist *models.Playlist

	if cmd.Bool("cached") {
		if r.cache == nil {
			return fmt.Errorf("%w: local cache, run 'vibelab setup database'", shared.ErrServiceUnavailable)
		}
		cached, _, err := r.cache.Get(id)
		if err != nil {
			return err
		}
		playlist = cached
	} else {
		if err := r.requireLogin(); err != nil {
			return err
		}
		fetched, err := r.backend.Playlist(ctx, id)
		if err != nil {
			return err
		}
		playlist = fetched
	}

	path, err := formatter.WriteExport(playlist, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	return r.writePlain("✓ Exported to %s\n", path)
}

// PlaylistSync caches the whole library locally for offline display.
func (r *Runner) PlaylistSync(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	if r.cache == nil {
		return fmt.Errorf("%w: local cache, run 'vibelab setup database'", shared.ErrServiceUnavailable)
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		r.drainProgress(progress)
		close(done)
	}()

	result, err := r.engine.SyncLibrary(ctx, progress)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	return r.writePlain("✓ Cached %d/%d playlists\n", result.Cached, len(result.Playlists))
}
