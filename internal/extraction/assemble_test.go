package extraction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finlens/pkg/contracts/domain"
)

func TestCoerceNumeric(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
		ok   bool
	}{
		{"plain integer", "1234", "1234", true},
		{"plain decimal", "12.5", "12.5", true},
		{"leading and trailing space", "  42 ", "42", true},
		{"negative sign", "-7.25", "-7.25", true},
		{"unicode minus", "−7.25", "-7.25", true},
		{"leading plus", "+100", "100", true},
		{"parenthesized negative", "(1,234.50)", "-1234.5", true},
		{"thousands separators", "1,234,567", "1234567", true},
		{"apostrophe separators", "1'234'567", "1234567", true},
		{"european decimal comma", "1.234,56", "1234.56", true},
		{"lone decimal comma", "12,5", "12.5", true},
		{"lone thousands comma", "1,234", "1234", true},
		{"percent suffix", "12.5%", "12.5", true},
		{"dollar prefix", "$1,000", "1000", true},
		{"rupee prefix", "₹500.25", "500.25", true},
		{"currency code prefix", "Rs. 1,200", "1200", true},
		{"iqd code prefix", "IQD 3500", "3500", true},
		{"zero", "0", "0", true},
		{"empty cell", "", "", false},
		{"dash placeholder", "-", "", false},
		{"double dash placeholder", "--", "", false},
		{"na token", "N/A", "", false},
		{"nan token", "NaN", "", false},
		{"free text", "see note 4", "", false},
		{"bare parens", "()", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceNumeric(tt.cell)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				want, err := decimal.NewFromString(tt.want)
				require.NoError(t, err)
				assert.True(t, want.Equal(got), "want %s, got %s", want, got)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	locator := NewAxisLocator(0.5, nil)
	matcher := NewMetricMatcher(nil, nil)
	assembler := NewSeriesAssembler(nil)

	t.Run("one point per axis period", func(t *testing.T) {
		table := tableFrom([][]string{
			{"Year", "Revenue", "Net Profit"},
			{"2021", "100", "10"},
			{"2022", "1,200.50", "(15)"},
			{"2023", "", "n/a"},
		})
		axis, err := locator.Locate(table)
		require.NoError(t, err)
		bindings := matcher.Match(table, axis)
		require.Len(t, bindings, 2)

		series := assembler.Assemble(table, axis, bindings)
		require.Len(t, series, 2)

		revenue := series[0]
		assert.Equal(t, domain.MetricRevenue, revenue.Metric)
		require.Len(t, revenue.Points, 3)
		assert.Equal(t, "2021", revenue.Points[0].Period.String())
		assert.True(t, decimal.NewFromInt(100).Equal(revenue.Points[0].Value.Decimal))
		assert.True(t, decimal.NewFromFloat(1200.50).Equal(revenue.Points[1].Value.Decimal))
		assert.True(t, revenue.Points[2].Value.Missing, "blank cell becomes an explicit gap")

		profit := series[1]
		assert.True(t, decimal.NewFromInt(-15).Equal(profit.Points[1].Value.Decimal))
		assert.True(t, profit.Points[2].Value.Missing)
	})

	t.Run("points follow sorted period order", func(t *testing.T) {
		table := tableFrom([][]string{
			{"Year", "Revenue"},
			{"2023", "300"},
			{"2021", "100"},
			{"2022", "200"},
		})
		axis, err := locator.Locate(table)
		require.NoError(t, err)
		bindings := matcher.Match(table, axis)
		require.Len(t, bindings, 1)

		series := assembler.Assemble(table, axis, bindings)
		require.Len(t, series[0].Points, 3)
		for i, want := range []string{"100", "200", "300"} {
			got := series[0].Points[i].Value.Decimal
			w, _ := decimal.NewFromString(want)
			assert.True(t, w.Equal(got), "period %d: want %s got %s", i, w, got)
		}
	})

	t.Run("no bindings yields no series", func(t *testing.T) {
		table := tableFrom([][]string{
			{"Year", "XYZ"},
			{"2021", "1"},
			{"2022", "2"},
		})
		axis, err := locator.Locate(table)
		require.NoError(t, err)

		series := assembler.Assemble(table, axis, matcher.Match(table, axis))
		assert.Empty(t, series)
	})
}
