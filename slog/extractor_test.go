package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/mock"
	larderslog "github.com/fwojciec/larder/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_ExtractRecipe(t *testing.T) {
	t.Parallel()

	newInner := func(r *larder.Recipe, err error) *mock.RecipeExtractor {
		return &mock.RecipeExtractor{
			NameFn: func() string { return "smittenkitchen" },
			ExtractRecipeFn: func(string, string) (*larder.Recipe, error) {
				return r, err
			},
		}
	}

	t.Run("logs missing fields of partial recipes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := newInner(&larder.Recipe{
			SourceURL:    "https://smittenkitchen.com/2024/01/x/",
			Host:         "smittenkitchen.com",
			Title:        "X",
			Image:        "x.jpg",
			Ingredients:  []string{"salt"},
			Instructions: []string{},
		}, nil)

		r, err := larderslog.NewLoggingExtractor(inner, logger).ExtractRecipe("https://smittenkitchen.com/2024/01/x/", "<html>")

		require.NoError(t, err)
		assert.Equal(t, "X", r.Title)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "extract partial")
		assert.Contains(t, output, "strategy=smittenkitchen")
		assert.Contains(t, output, "missing=\"[yields total_time instructions]\"")
	})

	t.Run("logs complete extraction at info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := newInner(&larder.Recipe{
			SourceURL: "https://a.com/r", Host: "a.com", Title: "T", Image: "i", Yields: "2", TotalTime: "1h",
			Ingredients: []string{"a"}, Instructions: []string{"b"},
		}, nil)

		_, err := larderslog.NewLoggingExtractor(inner, logger).ExtractRecipe("https://a.com/r", "<html>")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "level=INFO")
		assert.NotContains(t, buf.String(), "missing=")
	})

	t.Run("logs error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := newInner(nil, larder.Errorf(larder.EUNSUPPORTED, "no structured recipe data"))

		_, err := larderslog.NewLoggingExtractor(inner, logger).ExtractRecipe("https://a.com/r", "<html>")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "extract failed")
		assert.Contains(t, buf.String(), "code=unsupported")
	})

	t.Run("reports wrapped name", func(t *testing.T) {
		t.Parallel()

		ext := larderslog.NewLoggingExtractor(newInner(nil, nil), slog.New(slog.DiscardHandler))

		assert.Equal(t, "smittenkitchen", ext.Name())
	})
}
