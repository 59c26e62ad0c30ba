package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/larder"
)

var _ larder.RecipeExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RecipeExtractor and records which fields each
// extraction left empty.
type LoggingExtractor struct {
	next   larder.RecipeExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next larder.RecipeExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractRecipe delegates to the wrapped extractor and logs the outcome.
// Partial recipes are logged at warn level with their missing fields.
func (e *LoggingExtractor) ExtractRecipe(pageURL string, html string) (r *larder.Recipe, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", pageURL,
			"strategy", e.next.Name(),
			"duration", time.Since(begin),
		}
		switch {
		case err != nil:
			e.logger.Warn("extract failed", append(attrs, "code", larder.ErrorCode(err), "err", err)...)
		case r != nil && len(r.MissingFields()) > 0:
			e.logger.Warn("extract partial", append(attrs, "missing", r.MissingFields())...)
		default:
			e.logger.Info("extract", attrs...)
		}
	}(time.Now())
	return e.next.ExtractRecipe(pageURL, html)
}

// Name returns the wrapped strategy's name.
func (e *LoggingExtractor) Name() string {
	return e.next.Name()
}
