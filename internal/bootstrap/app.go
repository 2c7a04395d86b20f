package bootstrap

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"rag-console/internal/apiclient"
	"rag-console/internal/chat"
	"rag-console/internal/config"
	"rag-console/internal/docs"
	"rag-console/internal/logging"
)

type App struct {
	Config *config.Config
	Logger zerolog.Logger
	API    *apiclient.Client

	logFile   io.Closer
	StartedAt time.Time
}

type Options struct {
	// ConfigPath overrides CONFIG_FILE when set.
	ConfigPath string
	// Interactive runs own the terminal, so logs go to the configured file.
	Interactive bool
}

func New(opts Options) (*App, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFile(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	var (
		out     io.Writer = os.Stderr
		logFile io.Closer
	)
	if opts.Interactive {
		if cfg.Log.File == "" {
			out = io.Discard
		} else {
			f, err := logging.OpenFile(cfg.Log.File)
			if err != nil {
				return nil, err
			}
			out, logFile = f, f
		}
	}

	logger, err := logging.New(out, cfg.Log.Level, cfg.IsProd())
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}
	logger = logger.With().Str("app", cfg.App.Name).Logger()

	api := apiclient.New(cfg.APIRoot(), apiclient.WithLogger(logger.With().Str("component", "apiclient").Logger()))
	logger.Debug().Str("api_root", api.Root()).Msg("client configured")

	return &App{
		Config:    cfg,
		Logger:    logger,
		API:       api,
		logFile:   logFile,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) ChatResponder() *chat.Responder {
	return chat.NewResponder(a.API, a.Logger.With().Str("component", "chat").Logger())
}

func (a *App) DocumentManager() *docs.Manager {
	return docs.NewManager(a.API, a.Logger.With().Str("component", "docs").Logger())
}

func (a *App) Close() error {
	a.Logger.Debug().Dur("uptime", time.Since(a.StartedAt)).Msg("shutting down")
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
