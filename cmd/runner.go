package main

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/SheCodesAus/vibelab/internal/auth"
	"github.com/SheCodesAus/vibelab/internal/repositories"
	"github.com/SheCodesAus/vibelab/internal/services"
	"github.com/SheCodesAus/vibelab/internal/share"
	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/SheCodesAus/vibelab/internal/tasks"
	"github.com/SheCodesAus/vibelab/internal/tokens"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	db         *sql.DB
	store      tokens.Store
	tokens     *tokens.TokenStore
	session    *auth.Session
	flow       *auth.Flow
	backend    *services.VibeLabService
	catalog    *services.SearchService
	access     *repositories.ShareAccessRepository
	cache      *repositories.PlaylistCacheRepository
	engine     *tasks.PlaylistEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	reader     *bufio.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	DB         *sql.DB
	Store      tokens.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration.
// With no database the token store falls back to memory so setup and
// help still work; everything persistent needs 'setup database' first.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	store := opts.Store
	if store == nil {
		if opts.DB != nil {
			store = repositories.NewKVRepository(opts.DB)
		} else {
			store = tokens.NewMemory()
		}
	}

	ts := tokens.NewTokenStore(store)
	session := auth.NewSession(store, ts)
	flow := auth.NewFlow(opts.Config, store, ts)

	backend := services.NewVibeLabService(opts.Config.Backend.BaseURL, func() string {
		if cred, ok := ts.Valid(tokens.SessionToken); ok {
			return cred.Value
		}
		return ""
	}).WithClient(opts.HTTPClient)

	catalog := services.NewSearchService(flow).WithClient(opts.HTTPClient)

	r := &Runner{
		config:     opts.Config,
		db:         opts.DB,
		store:      store,
		tokens:     ts,
		session:    session,
		flow:       flow,
		backend:    backend,
		catalog:    catalog,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}

	if opts.DB != nil {
		r.access = repositories.NewShareAccessRepository(opts.DB)
		r.cache = repositories.NewPlaylistCacheRepository(opts.DB)
	}

	if r.cache != nil {
		r.engine = tasks.NewPlaylistEngine(backend, catalog, r.cache)
	} else {
		r.engine = tasks.NewPlaylistEngine(backend, catalog, nil)
	}

	return r
}

// SetLogger swaps the Runner's logger, e.g. to a file logger for the TUI.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// newGate builds a share gate for a playlist, wired to the backend and
// the remembered-passphrase store.
func (r *Runner) newGate(playlistID string) *share.Gate {
	var access share.AccessStore
	if r.access != nil {
		access = r.access
	}
	return share.NewGate(playlistID, r.backend, access)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, spotifyCommand, playlistCommand, shareCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
