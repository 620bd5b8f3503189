package cmd

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/abhisek/numbernexus/internal/dashboard"
	"github.com/abhisek/numbernexus/internal/hints"
	"github.com/abhisek/numbernexus/internal/i18n"
	"github.com/abhisek/numbernexus/internal/logging"
	"github.com/abhisek/numbernexus/internal/metrics"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/stats"
	"github.com/abhisek/numbernexus/internal/store"
)

// runtime holds the services shared by the commands.
type runtime struct {
	logger     *zap.Logger
	store      *store.Store
	metrics    *metrics.Metrics
	stats      *stats.Service
	dashboard  *dashboard.Builder
	generator  *problemgen.Generator
	hints      *hints.Classifier
	translator *i18n.Translator
}

// openRuntime builds the logger, opens the store and wires the services.
// console receives human-readable logs; pass io.Discard to keep the
// terminal clean and log to the configured file only.
func openRuntime(console io.Writer) (*runtime, error) {
	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
		Console: console,
	})
	if err != nil {
		return nil, err
	}

	dbPath, err := store.ResolveDBPath(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	tr, err := i18n.New(cfg.Lang, logger)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load translations: %w", err)
	}

	m := metrics.New()
	engine := progression.New(progression.DefaultConfig())
	return &runtime{
		logger:     logger,
		store:      st,
		metrics:    m,
		stats:      stats.NewService(st.Stats(), st.Events(), engine, stats.WithMetrics(m), stats.WithLogger(logger)),
		dashboard:  dashboard.NewBuilder(st.Stats(), st.Events(), engine),
		generator:  problemgen.New(problemgen.DefaultConfig()),
		hints:      hints.New(hints.DefaultConfig()),
		translator: tr,
	}, nil
}

// Close releases the store and flushes the logger.
func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.logger.Warn("close store", zap.Error(err))
	}
	_ = r.logger.Sync()
}
