package main_test

import (
	"testing"

	"github.com/fwojciec/larder"
	main "github.com/fwojciec/larder/cmd/larder"
	"github.com/fwojciec/larder/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints unique URLs and per-site counts", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps(map[string]string{
			"https://example.com/recipes": "https://example.com/a https://example.com/b https://example.com/a",
		})

		err := (&main.DiscoverCmd{}).Run(deps)
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/a\nhttps://example.com/b\n", stdout.String())
		assert.Contains(t, stderr.String(), "test: 2 URLs")
		assert.Contains(t, stderr.String(), "Total: 2 unique")
	})

	t.Run("uses index override", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(map[string]string{
			"https://example.com/other": "https://example.com/z",
		})

		err := (&main.DiscoverCmd{Index: []string{"test=https://example.com/other"}}).Run(deps)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/z\n", stdout.String())
	})

	t.Run("rejects unknown site", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(nil)

		err := (&main.DiscoverCmd{Site: []string{"nope"}}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, larder.ENOTFOUND, larder.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("rejects malformed override", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(nil)

		err := (&main.DiscoverCmd{Index: []string{"https://example.com/x"}}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, larder.EINVALID, larder.ErrorCode(err))
	})
}

func TestDiscoverCmd_DefaultRegistrySites(t *testing.T) {
	t.Parallel()

	// Every built-in site has an index selector, so all of them are crawled
	// when no --site is given. An override for an unselected site is rejected.
	deps, _, _ := testDeps(nil)
	deps.Registry = goquery.NewDefaultRegistry(nil)

	err := (&main.DiscoverCmd{
		Site:  []string{"smittenkitchen"},
		Index: []string{"bonappetit=https://www.bonappetit.com/recipes"},
	}).Run(deps)
	require.Error(t, err)
	assert.Equal(t, larder.EINVALID, larder.ErrorCode(err))
}
