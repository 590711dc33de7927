package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDetectorExtensions(t *testing.T) {
	detector := NewFormatDetector(10, nil)

	t.Run("xlsx routes to spreadsheet engines", func(t *testing.T) {
		strategy, err := detector.Detect("report.xlsx", nil)
		require.NoError(t, err)
		assert.Equal(t, StrategySpreadsheet, strategy.Kind)
		assert.Equal(t, []string{EngineNameExcelize, EngineNameHTMLTable, EngineNameDelimited}, strategy.Engines)
	})

	t.Run("xls routes to spreadsheet engines", func(t *testing.T) {
		strategy, err := detector.Detect("legacy.XLS", nil)
		require.NoError(t, err)
		assert.Equal(t, StrategySpreadsheet, strategy.Kind)
	})

	t.Run("unknown extension is reported not defaulted", func(t *testing.T) {
		_, err := detector.Detect("statement.pdf", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestDelimiterDetection(t *testing.T) {
	detector := NewFormatDetector(10, nil)

	tests := []struct {
		name    string
		file    string
		content string
		want    Delimiter
	}{
		{
			name:    "comma dominant",
			file:    "a.csv",
			content: "Year,Revenue,Net Profit\n2021,100,10\n2022,120,15\n",
			want:    DelimiterComma,
		},
		{
			name:    "semicolon gp file",
			file:    "b.gp",
			content: "Metric;FY-2022;FY-2023\nRevenue;100;120\n",
			want:    DelimiterSemicolon,
		},
		{
			name:    "tab separated",
			file:    "c.tsv",
			content: "Year\t2021\t2022\nRevenue\t100\t120\n",
			want:    DelimiterTab,
		},
		{
			name:    "pipe separated",
			file:    "d.txt",
			content: "Year|2021|2022\nRevenue|100|120\n",
			want:    DelimiterPipe,
		},
		{
			name:    "tab wins ties by priority",
			file:    "e.txt",
			content: "a\tb,c\nd\te,f\n",
			want:    DelimiterTab,
		},
		{
			name:    "no delimiter",
			file:    "f.txt",
			content: "just some words\nanother line\n",
			want:    DelimiterNone,
		},
		{
			name:    "empty content",
			file:    "g.csv",
			content: "",
			want:    DelimiterNone,
		},
		{
			name:    "inconsistent commas lose to consistent semicolons",
			file:    "h.txt",
			content: "a;b,x,y\nc;d\ne;f,z\n",
			want:    DelimiterSemicolon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := detector.Detect(tt.file, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, StrategyDelimited, strategy.Kind)
			assert.Equal(t, tt.want, strategy.Delimiter)
		})
	}
}

// TestDelimiterDetectionDeterminism repeats detection on the same sample
// and requires a stable verdict.
func TestDelimiterDetectionDeterminism(t *testing.T) {
	detector := NewFormatDetector(10, nil)
	content := []byte("Year,Revenue\n2021,100\n2022,120\n2023,150\n")

	first, err := detector.Detect("series.csv", content)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := detector.Detect("series.csv", content)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
