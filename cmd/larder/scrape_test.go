package main_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/larder"
	main "github.com/fwojciec/larder/cmd/larder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints recipe as JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps(map[string]string{
			"https://example.com/a": "Apple Cake",
		})

		err := (&main.ScrapeCmd{URL: "https://example.com/a"}).Run(deps)
		require.NoError(t, err)

		var r larder.Recipe
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &r))
		assert.Equal(t, "Apple Cake", r.Title)
		assert.Equal(t, "https://example.com/a", r.SourceURL)
		assert.Equal(t, "example.com", r.Host)
		assert.Contains(t, stderr.String(), "partial: missing")
	})

	t.Run("reports pages without a recipe", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps(map[string]string{
			"https://example.com/a": "broken",
		})

		err := (&main.ScrapeCmd{URL: "https://example.com/a"}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, larder.EPARSE, larder.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "no recipe extracted")
	})
}
