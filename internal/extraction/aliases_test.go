package extraction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finlens/pkg/contracts/domain"
)

func TestDefaultDictionaryValidates(t *testing.T) {
	dict := DefaultDictionary()
	require.NoError(t, dict.Validate())

	// Category order is the matching priority order and must stay fixed.
	require.Len(t, dict.Categories, 3)
	assert.Equal(t, domain.CategoryCashFlow, dict.Categories[0].Category)
	assert.Equal(t, domain.CategoryProfitLoss, dict.Categories[1].Category)
	assert.Equal(t, domain.CategoryBalanceSheet, dict.Categories[2].Category)
}

func TestLoadDictionary(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "aliases.yml")
		content := `version: test-1
categories:
  - category: profit_loss
    metrics:
      - metric: REVENUE
        aliases:
          - topline
        keywords:
          - [topline]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		dict, err := LoadDictionary(path)
		require.NoError(t, err)
		assert.Equal(t, "test-1", dict.Version)
		require.Len(t, dict.Categories, 1)
		assert.Equal(t, domain.MetricRevenue, dict.Categories[0].Metrics[0].Metric)

		match, ok := NewMetricMatcher(dict, nil).MatchLabel("Topline")
		require.True(t, ok)
		assert.Equal(t, domain.MetricRevenue, match.metric)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDictionary(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yml")
		require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

		_, err := LoadDictionary(path)
		assert.Error(t, err)
	})

	t.Run("category without metrics rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yml")
		content := `version: test-1
categories:
  - category: profit_loss
    metrics: []
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := LoadDictionary(path)
		assert.Error(t, err)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "badcat.yml")
		content := `version: test-1
categories:
  - category: shopping_list
    metrics:
      - metric: REVENUE
        aliases: [revenue]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := LoadDictionary(path)
		assert.Error(t, err)
	})
}
