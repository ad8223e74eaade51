package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/SheCodesAus/vibelab/internal/shared"
	tu "github.com/SheCodesAus/vibelab/internal/testing"
	"github.com/SheCodesAus/vibelab/internal/tokens"
	"github.com/urfave/cli/v3"
)

// countingTransport fails every request while counting how many were
// attempted.
type countingTransport struct {
	requests atomic.Int64
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.requests.Add(1)
	return nil, errors.New("no network in tests")
}

func newTestRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Output == nil {
		opts.Output = &bytes.Buffer{}
	}
	if opts.Store == nil {
		opts.Store = tokens.NewMemory()
	}
	return NewRunner(opts)
}

func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "vibelab",
		Commands: r.register(),
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			store := tokens.NewMemory()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Store:      store,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("without a database falls back to a memory store", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.store == nil {
				t.Error("expected a token store")
			}
			if runner.access != nil || runner.cache != nil {
				t.Error("expected no repositories without a database")
			}
		})

		t.Run("with a database wires the repositories", func(t *testing.T) {
			db, err := shared.NewDatabase(":memory:")
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			defer db.Close()
			if err := shared.RunMigrations(db); err != nil {
				t.Fatalf("failed to run migrations: %v", err)
			}

			runner := NewRunner(RunnerOpts{DB: db})

			if runner.access == nil || runner.cache == nil {
				t.Error("expected repositories to be wired")
			}
		})

		t.Run("engine is always built", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.engine == nil {
				t.Error("expected the playlist engine")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := newTestRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 6 {
			t.Errorf("expected 6 top-level commands, got %d", len(commands))
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := newTestRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := newTestRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := newTestRunner(RunnerOpts{})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := newTestRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limited := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := newTestRunner(RunnerOpts{Output: &limited})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := newTestRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := newTestRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writePlain("test"); err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})
}

func TestAuthCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("signup password mismatch never reaches the server", func(t *testing.T) {
		transport := &countingTransport{}
		runner := newTestRunner(RunnerOpts{
			HTTPClient: &http.Client{Transport: transport},
			Input:      strings.NewReader("hunter2\nhunter3\n"),
		})

		err := rootCommand(runner).Run(ctx, []string{"vibelab", "auth", "signup", "-u", "ada"})

		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if !strings.Contains(err.Error(), "passwords do not match") {
			t.Errorf("expected a mismatch message, got %v", err)
		}
		if transport.requests.Load() != 0 {
			t.Errorf("expected no requests, got %d", transport.requests.Load())
		}
	})

	t.Run("signup requires a password", func(t *testing.T) {
		transport := &countingTransport{}
		runner := newTestRunner(RunnerOpts{
			HTTPClient: &http.Client{Transport: transport},
			Input:      strings.NewReader("\n\n"),
		})

		err := rootCommand(runner).Run(ctx, []string{"vibelab", "auth", "signup", "-u", "ada"})

		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if transport.requests.Load() != 0 {
			t.Errorf("expected no requests, got %d", transport.requests.Load())
		}
	})

	t.Run("whoami while logged out", func(t *testing.T) {
		runner := newTestRunner(RunnerOpts{})

		err := rootCommand(runner).Run(ctx, []string{"vibelab", "auth", "whoami"})

		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("logout works without a session", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(RunnerOpts{Output: output})

		if err := rootCommand(runner).Run(ctx, []string{"vibelab", "auth", "logout"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Logged out") {
			t.Errorf("expected confirmation, got %q", output.String())
		}
	})
}

func TestPlaylistCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("list requires a login", func(t *testing.T) {
		transport := &countingTransport{}
		runner := newTestRunner(RunnerOpts{
			HTTPClient: &http.Client{Transport: transport},
		})

		err := rootCommand(runner).Run(ctx, []string{"vibelab", "playlist", "list"})

		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
		if transport.requests.Load() != 0 {
			t.Errorf("expected no requests, got %d", transport.requests.Load())
		}
	})

	t.Run("create rejects an unknown vibe locally", func(t *testing.T) {
		transport := &countingTransport{}
		store := tokens.NewMemory()
		runner := newTestRunner(RunnerOpts{
			HTTPClient: &http.Client{Transport: transport},
			Store:      store,
		})
		runner.tokens.Put(tokens.SessionToken, "jwt", 0)

		err := rootCommand(runner).Run(ctx, []string{"vibelab", "playlist", "create", "-n", "Mix", "--vibe", "Jazz"})

		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Fatalf("expected ErrInvalidFlag, got %v", err)
		}
		if transport.requests.Load() != 0 {
			t.Errorf("expected no requests, got %d", transport.requests.Load())
		}
	})
}
