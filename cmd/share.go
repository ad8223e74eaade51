package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/SheCodesAus/vibelab/internal/formatter"
	"github.com/SheCodesAus/vibelab/internal/share"
	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/urfave/cli/v3"
)

// ShareCreate generates a share link for an owned playlist.
func (r *Runner) ShareCreate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if err := r.requireLogin(); err != nil {
		return err
	}

	grant, err := r.backend.CreateShare(ctx, id, cmd.String("passphrase"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Share link: %s\n", grant.ShareURL)
	if grant.Protected {
		r.writePlain("Recipients will need the passphrase to see the tracks\n")
	}
	return nil
}

// ShareOpen opens a shared playlist as a recipient. Unprotected
// playlists print immediately; protected ones need --passphrase or a
// previously remembered one. A rejection prints the server's reason.
func (r *Runner) ShareOpen(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	gate := r.newGate(id)

	meta, err := gate.Load(ctx)
	if err != nil {
		return err
	}

	r.writePlain("%s\nshared by %s\n\n", meta.Title, meta.Creator)

	if gate.State() == share.Locked && meta.RequiresPassword {
		if unlocked, err := gate.TryRemembered(ctx); err != nil {
			return err
		} else if unlocked {
			r.logger.Info("unlocked with remembered passphrase")
		}
	}

	if passphrase := cmd.String("passphrase"); passphrase != "" {
		err := gate.Submit(ctx, passphrase, cmd.Bool("remember"))
		if errors.Is(err, shared.ErrShareRejected) {
			return fmt.Errorf("%w: %s", shared.ErrShareRejected, gate.Reason())
		}
		if err != nil {
			return err
		}
	}

	playlist, err := gate.Playlist()
	if errors.Is(err, shared.ErrShareLocked) {
		return fmt.Errorf("%w: pass --passphrase to unlock", shared.ErrShareLocked)
	}
	if err != nil {
		return err
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

// ShareForget drops the remembered passphrase for a playlist.
func (r *Runner) ShareForget(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	if err := r.newGate(id).Forget(); err != nil {
		return err
	}
	return r.writePlain("✓ Forgot passphrase for %s\n", id)
}
