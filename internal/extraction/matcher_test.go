package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finlens/pkg/contracts/domain"
)

func TestMatchLabelTiers(t *testing.T) {
	matcher := NewMetricMatcher(nil, nil)

	tests := []struct {
		name       string
		label      string
		metric     domain.Metric
		confidence domain.MatchConfidence
		ok         bool
	}{
		{
			name:       "exact canonical name",
			label:      "Revenue",
			metric:     domain.MetricRevenue,
			confidence: domain.ConfidenceExact,
			ok:         true,
		},
		{
			name:       "exact is case insensitive",
			label:      "NET PROFIT",
			metric:     domain.MetricNetProfit,
			confidence: domain.ConfidenceExact,
			ok:         true,
		},
		{
			name:       "exact tolerates trailing punctuation",
			label:      "Net Profit :",
			metric:     domain.MetricNetProfit,
			confidence: domain.ConfidenceExact,
			ok:         true,
		},
		{
			name:       "alias table",
			label:      "Net Sales",
			metric:     domain.MetricRevenue,
			confidence: domain.ConfidenceAlias,
			ok:         true,
		},
		{
			name:       "alias with original source spelling",
			label:      "Reported Net Profit",
			metric:     domain.MetricNetProfit,
			confidence: domain.ConfidenceAlias,
			ok:         true,
		},
		{
			name:       "alias for equity",
			label:      "Total Shareholders Funds",
			metric:     domain.MetricEquity,
			confidence: domain.ConfidenceAlias,
			ok:         true,
		},
		{
			name:       "fuzzy substring containment",
			label:      "Consolidated Net Profit for the period",
			metric:     domain.MetricNetProfit,
			confidence: domain.ConfidenceFuzzy,
			ok:         true,
		},
		{
			name:       "fuzzy keyword containment",
			label:      "Profit from operating activities before tax",
			metric:     domain.MetricOperatingProfit,
			confidence: domain.ConfidenceFuzzy,
			ok:         true,
		},
		{
			name:  "unrecognized label is dropped",
			label: "XYZ123",
			ok:    false,
		},
		{
			name:  "empty label",
			label: "   ",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := matcher.MatchLabel(tt.label)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.metric, match.metric)
				assert.Equal(t, tt.confidence, match.confidence)
			}
		})
	}
}

// TestMatchLabelCategoryPrecedence pins the fixed category priority:
// cash-flow labels that also contain P&L words must bind to cash flow.
func TestMatchLabelCategoryPrecedence(t *testing.T) {
	matcher := NewMetricMatcher(nil, nil)

	tests := []struct {
		label  string
		metric domain.Metric
	}{
		{"Net cash generated by operating activities", domain.MetricOperatingCashFlow},
		{"Cash profit from operating activities", domain.MetricOperatingCashFlow},
		{"Net Cash Used in Investing Activities", domain.MetricInvestingCashFlow},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			match, ok := matcher.MatchLabel(tt.label)
			require.True(t, ok)
			assert.Equal(t, tt.metric, match.metric)
			assert.Equal(t, domain.CategoryCashFlow, match.category)
		})
	}
}

// TestMatchLabelSpecificity pins the longest-alias rule inside a category.
func TestMatchLabelSpecificity(t *testing.T) {
	matcher := NewMetricMatcher(nil, nil)

	match, ok := matcher.MatchLabel("Total Current Assets as reported")
	require.True(t, ok)
	assert.Equal(t, domain.MetricCurrentAssets, match.metric,
		"total current assets must not bind to TOTAL_ASSETS")

	match, ok = matcher.MatchLabel("Total Current Liabilities and provisions")
	require.True(t, ok)
	assert.Equal(t, domain.MetricCurrentLiabilities, match.metric)
}

func TestMatchBindings(t *testing.T) {
	matcher := NewMetricMatcher(nil, nil)

	t.Run("column axis binds metric columns", func(t *testing.T) {
		table := tableFrom([][]string{
			{"Year", "Revenue", "Net Profit", "XYZ123"},
			{"2021", "100", "10", "1"},
			{"2022", "120", "15", "2"},
		})
		axis, err := NewAxisLocator(0.5, nil).Locate(table)
		require.NoError(t, err)

		bindings := matcher.Match(table, axis)
		require.Len(t, bindings, 2, "unrecognized column dropped without error")
		assert.Equal(t, domain.MetricRevenue, bindings[0].Metric)
		assert.Equal(t, 1, bindings[0].SourceIndex)
		assert.Equal(t, domain.MetricNetProfit, bindings[1].Metric)
		assert.Equal(t, 2, bindings[1].SourceIndex)
	})

	t.Run("row axis binds metric rows", func(t *testing.T) {
		table := tableFrom([][]string{
			{"", "FY-2022", "FY-2023"},
			{"Net Sales", "100", "120"},
			{"Operating Profit", "20", "30"},
			{"footnote", "", ""},
		})
		axis, err := NewAxisLocator(0.5, nil).Locate(table)
		require.NoError(t, err)

		bindings := matcher.Match(table, axis)
		require.Len(t, bindings, 2)
		assert.Equal(t, domain.MetricRevenue, bindings[0].Metric)
		assert.Equal(t, domain.ConfidenceAlias, bindings[0].Confidence)
		assert.Equal(t, domain.MetricOperatingProfit, bindings[1].Metric)
	})

	t.Run("duplicate labels keep the first binding", func(t *testing.T) {
		table := tableFrom([][]string{
			{"Year", "Revenue", "Revenue"},
			{"2021", "100", "999"},
			{"2022", "120", "999"},
		})
		axis, err := NewAxisLocator(0.5, nil).Locate(table)
		require.NoError(t, err)

		bindings := matcher.Match(table, axis)
		require.Len(t, bindings, 1)
		assert.Equal(t, 1, bindings[0].SourceIndex)
	})

	t.Run("no labels match", func(t *testing.T) {
		table := tableFrom([][]string{
			{"Year", "XYZ123", "ABC999"},
			{"2021", "1", "2"},
			{"2022", "3", "4"},
		})
		axis, err := NewAxisLocator(0.5, nil).Locate(table)
		require.NoError(t, err)

		bindings := matcher.Match(table, axis)
		assert.Empty(t, bindings)
	})
}
