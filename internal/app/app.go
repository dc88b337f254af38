package app

import (
	"fmt"
	"log/slog"

	"github.com/shhac/satchel/internal/logging"
	"github.com/shhac/satchel/internal/storage"
)

// App wires the configuration, logger, and store together and manages
// their lifecycle.
type App struct {
	config *Config
	logger *slog.Logger
	store  storage.Store
}

// New creates a new App instance with the given configuration. This
// performs all dependency injection and wiring.
func New(cfg *Config) (*App, error) {
	logger, err := logging.InitLogger("satchel", cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("initializing satchel",
		slog.Bool("debug", cfg.Debug),
		slog.String("data_dir", cfg.DataDir),
	)

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir, err = storage.DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("determine data directory: %w", err)
		}
	}

	store := storage.NewFileStore(dataDir, cfg.ProjectID, logger)

	logger.Info("application initialized successfully")

	return &App{
		config: cfg,
		logger: logger,
		store:  store,
	}, nil
}

// Store returns the collection store.
func (a *App) Store() storage.Store {
	return a.store
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Config returns the active configuration.
func (a *App) Config() *Config {
	return a.config
}
