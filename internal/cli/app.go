package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/guard"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/query"
	"github.com/taskdeck/taskdeck/internal/session"
)

// App wires configuration, logging, the API client, the session store, the
// guard, and the query layer for one command invocation.
type App struct {
	Config *config.Config
	Logger *log.Logger
	Client *api.Client
	Store  *session.Store
	Guard  *guard.Guard
	Todos  *query.Todos
}

// newApp loads configuration, applies global flag overrides, and builds the
// component graph.
func newApp(opts *RootOptions) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.StateDir != "" {
		cfg.StateDir = opts.StateDir
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFmt != "" {
		cfg.LogFormat = opts.LogFmt
	}

	logger := logging.FromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	client, err := api.New(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout()),
		api.WithCookieFile(cfg.CookieFile()),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	store := session.NewStore(
		session.NewFilePersister(cfg.SessionFile()),
		session.WithLogger(logger),
	)

	return &App{
		Config: cfg,
		Logger: logger,
		Client: client,
		Store:  store,
		Guard: guard.New(store, client,
			guard.WithSettleDelay(cfg.SettleDelay()),
			guard.WithLogger(logger),
		),
		Todos: query.New(client, query.WithLogger(logger)),
	}, nil
}

// requireAuth runs the guard and translates the outcome into a command
// error when the session cannot be used.
func (a *App) requireAuth(ctx context.Context) error {
	outcome, err := a.Guard.Activate(ctx)
	if outcome.Authenticated() {
		return nil
	}
	switch outcome {
	case guard.OutcomeUnreachable:
		return fmt.Errorf("could not verify session: %w", err)
	case guard.OutcomeCancelled:
		return err
	default:
		return fmt.Errorf("not logged in, run 'taskdeck login' first")
	}
}
