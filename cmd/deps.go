package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/literacyhub/internal/catalog"
	"github.com/abhisek/literacyhub/internal/config"
	"github.com/abhisek/literacyhub/internal/llm"
	"github.com/abhisek/literacyhub/internal/notify"
	"github.com/abhisek/literacyhub/internal/quiz"
	"github.com/abhisek/literacyhub/internal/quizgen"
	"github.com/abhisek/literacyhub/internal/store"
	"github.com/abhisek/literacyhub/internal/store/memstore"
	"github.com/abhisek/literacyhub/internal/store/postgres"
	"github.com/abhisek/literacyhub/internal/telemetry"
)

// deps are the collaborators shared by the TUI and the data commands.
// close releases them in reverse order of acquisition.
type deps struct {
	cfg     config.Config
	logger  *slog.Logger
	catalog *catalog.Catalog
	backend store.Backend

	// sqlite is the backend when cfg.Store is sqlite; it also records LLM
	// request events.
	sqlite *store.Store

	closers []func() error
}

func (d *deps) onClose(f func() error) {
	d.closers = append(d.closers, f)
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.logger.Warn("shutdown", "error", err)
		}
	}
	d.closers = nil
}

// events returns the LLM event recorder, or nil when the backend keeps none.
func (d *deps) events() store.LLMEventRecorder {
	if d.sqlite == nil {
		return nil
	}
	return d.sqlite
}

// loadDeps builds config, logger, catalog and the profile store. When tui
// is true logs go to a file so they do not draw over the screen.
func loadDeps(cmd *cobra.Command, tui bool) (*deps, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	var logOut io.Writer = os.Stderr
	if tui {
		dataDir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		f, err := cfg.Log.OpenLogFile(dataDir)
		if err != nil {
			return nil, err
		}
		d.onClose(f.Close)
		logOut = f
	}
	logger, err := cfg.Log.NewLogger(logOut)
	if err != nil {
		d.close()
		return nil, err
	}
	d.logger = logger
	slog.SetDefault(logger)

	shutdown, err := telemetry.Setup(ctx, cfg.OTel, version)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else {
		d.onClose(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return shutdown(ctx)
		})
	}

	d.catalog, err = catalog.Default()
	if err != nil {
		d.close()
		return nil, fmt.Errorf("load topic catalog: %w", err)
	}

	if err := d.openBackend(ctx); err != nil {
		d.close()
		return nil, err
	}
	return d, nil
}

func (d *deps) openBackend(ctx context.Context) error {
	switch d.cfg.Store {
	case config.StorePostgres:
		pg, err := postgres.New(ctx, d.cfg.PostgresURL, 4, 1)
		if err != nil {
			return fmt.Errorf("open postgres store: %w", err)
		}
		d.backend = pg
	case config.StoreMemory:
		d.logger.Info("using in-memory store; progress is lost on exit")
		d.backend = memstore.New()
	default:
		dbPath, err := resolveDBPath(d.cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		d.backend, d.sqlite = st, st
	}
	d.onClose(d.backend.Close)
	return nil
}

// openSQLite returns the SQLite store the llm commands inspect.
func (d *deps) openSQLite() (*store.Store, error) {
	if d.sqlite == nil {
		return nil, errors.New("LLM events are only recorded by the sqlite store")
	}
	return d.sqlite, nil
}

// generator builds the quiz generator: an LLM-backed one when a provider
// is configured, the built-in question bank otherwise, optionally behind
// the Redis cache.
func (d *deps) generator(ctx context.Context) (quizgen.Generator, error) {
	var gen quizgen.Generator

	cfg, err := llm.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if !cfg.HasCredentials() {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		}
	}
	if cfg.HasCredentials() {
		provider, err := llm.NewProvider(ctx, cfg, d.events(), d.logger)
		if err != nil {
			d.logger.Warn("LLM provider unavailable", "provider", cfg.Provider, "error", err)
		} else {
			gen = quizgen.New(provider, quizgen.DefaultConfig())
			d.logger.Info("generating quizzes with LLM", "provider", cfg.Provider, "model", provider.ModelID())
		}
	}
	if gen == nil {
		bank, err := quizgen.DefaultBank()
		if err != nil {
			return nil, fmt.Errorf("load question bank: %w", err)
		}
		d.logger.Info("no LLM provider configured; using the built-in question bank")
		gen = bank
	}

	if d.cfg.RedisURL != "" {
		client, err := quizgen.NewRedisClient(ctx, d.cfg.RedisURL)
		if err != nil {
			d.logger.Warn("quiz cache disabled", "error", err)
		} else {
			d.onClose(client.Close)
			gen = quizgen.NewCached(gen, client, d.cfg.CacheTTL, d.logger)
		}
	}
	return gen, nil
}

// notifier logs every engine event and, when configured, publishes it.
func (d *deps) notifier() quiz.Notifier {
	n := notify.Multi{notify.Log{Logger: d.logger}}
	if d.cfg.AMQPURL != "" {
		pub, err := notify.DialAMQP(d.cfg.AMQPURL, d.cfg.AMQPExchange, d.logger)
		if err != nil {
			d.logger.Warn("event publishing disabled", "error", err)
		} else {
			d.onClose(pub.Close)
			n = append(n, pub)
		}
	}
	return n
}

// engineFactory returns a constructor for per-learner quiz engines.
func (d *deps) engineFactory(gen quizgen.Generator, n quiz.Notifier) (func(string) *quiz.Engine, error) {
	loc, err := d.cfg.Location()
	if err != nil {
		return nil, err
	}
	return func(learnerID string) *quiz.Engine {
		return quiz.New(d.catalog, gen, d.backend, learnerID,
			quiz.WithNotifier(n),
			quiz.WithLocation(loc),
			quiz.WithLogger(d.logger),
			quiz.WithQuestionCount(d.cfg.QuestionCount),
		)
	}, nil
}
