package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/services"
	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/SheCodesAus/vibelab/internal/tokens"
	"github.com/urfave/cli/v3"
)

// promptLine writes a prompt and reads one line from the Runner's input.
// The buffered reader is shared across prompts so consecutive reads do
// not lose buffered lines.
func (r *Runner) promptLine(prompt string) (string, error) {
	if err := r.writePlain("%s", prompt); err != nil {
		return "", err
	}

	if r.reader == nil {
		r.reader = bufio.NewReader(r.input)
	}

	line, err := r.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// AuthSignup creates an account. The two password prompts are compared
// locally; a mismatch never reaches the server.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")

	password, err := r.promptLine("Password: ")
	if err != nil {
		return err
	}

	confirm, err := r.promptLine("Confirm password: ")
	if err != nil {
		return err
	}

	if password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", shared.ErrInvalidInput)
	}

	r.logger.Info("creating account", "username", username)

	user, err := r.backend.Register(ctx, services.SignupRequest{
		Username: username,
		Password: password,
		Name:     cmd.String("name"),
		LastName: cmd.String("last-name"),
	})
	if err != nil {
		return err
	}

	return r.writePlain("✓ Account %q created, run 'vibelab auth login -u %s'\n", user.Username, user.Username)
}

// AuthLogin exchanges credentials for a session token and stores it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")

	password, err := r.promptLine("Password: ")
	if err != nil {
		return err
	}

	token, err := r.backend.Login(ctx, username, password)
	if err != nil {
		return err
	}

	// a malformed exp claim stores the token without expiry
	expiry, _ := tokens.SessionExpiry(token)

	// store the credential first so the profile fetch is authenticated
	if err := r.session.Login(token, expiry, models.User{Username: username}); err != nil {
		return err
	}

	user := r.fetchProfile(ctx, username)
	if err := r.session.Login(token, expiry, user); err != nil {
		return err
	}

	r.logger.Info("logged in", "username", user.Username)
	return r.writePlain("✓ Logged in as %s\n", user.Username)
}

// AuthLogout drops the session credential. With --all the linked Spotify
// credentials go too; by default they survive, linking is independent.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		if err := r.session.LogoutAll(); err != nil {
			return err
		}
		return r.writePlain("✓ Logged out, all credentials cleared\n")
	}

	if err := r.session.Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami shows the logged-in user.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if !r.session.LoggedIn() {
		return shared.ErrNotAuthenticated
	}

	user, ok := r.session.User()
	if !ok || user.Username == "" {
		var err error
		if user, err = r.backend.Me(ctx); err != nil {
			return err
		}
	}

	name := strings.TrimSpace(user.Name + " " + user.LastName)
	if name == "" {
		return r.writePlain("%s\n", user.Username)
	}
	return r.writePlain("%s (%s)\n", user.Username, name)
}

// fetchProfile gets the full profile after login, falling back to a
// username-only profile when the backend call fails.
func (r *Runner) fetchProfile(ctx context.Context, username string) (user models.User) {
	user.Username = username
	if me, err := r.backend.Me(ctx); err == nil {
		user = me
	}
	return user
}
