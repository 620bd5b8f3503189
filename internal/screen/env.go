package screen

import (
	"go.uber.org/zap"

	"github.com/abhisek/numbernexus/internal/dashboard"
	"github.com/abhisek/numbernexus/internal/hints"
	"github.com/abhisek/numbernexus/internal/i18n"
	"github.com/abhisek/numbernexus/internal/metrics"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/stats"
)

// Env carries the services the terminal screens share.
type Env struct {
	StudentID string
	Stats     *stats.Service
	Dashboard *dashboard.Builder
	Generator *problemgen.Generator
	Hints     *hints.Classifier
	Metrics   *metrics.Metrics
	Localizer *i18n.Localizer
	Logger    *zap.Logger
}
