package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataExtractor_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Weeknight Dal - Food Blog</title>
<meta property="og:title" content="Weeknight Dal">
<meta property="og:image" content="https://food.example.com/dal.jpg">
</head>
<body>
<nav>Navigation here</nav>
<article>
<h1>Weeknight Dal</h1>
<p>This dal comes together in thirty minutes with pantry lentils, a little ginger and a lot of patience for the tadka.</p>
<p>Rinse the lentils well, then simmer them with turmeric until they fall apart and turn creamy.</p>
</article>
<footer>Footer content</footer>
</body>
</html>`

		result, err := trafilatura.NewMetadataExtractor().ExtractMetadata(html)

		require.NoError(t, err)
		assert.Contains(t, result.Title, "Weeknight Dal")
		assert.Equal(t, "https://food.example.com/dal.jpg", result.Image)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewMetadataExtractor().ExtractMetadata("")

		require.Error(t, err)
		assert.Equal(t, larder.EPARSE, larder.ErrorCode(err))
	})
}
