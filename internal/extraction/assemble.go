package extraction

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"finlens/pkg/contracts/domain"
)

// SeriesAssembler combines the axis, the metric bindings and the cell grid
// into canonical per-metric series. The axis labels are already sorted, so
// every series comes out ordered by period regardless of source order, and
// every series has exactly one point per axis period.
type SeriesAssembler struct {
	logger *slog.Logger
}

// NewSeriesAssembler builds an assembler.
func NewSeriesAssembler(logger *slog.Logger) *SeriesAssembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesAssembler{logger: logger}
}

// Assemble reads the intersection of each binding with each axis period
// and coerces the cell to a number. Empty or non-coercible cells become
// explicit missing values; they are logged, never fatal.
func (a *SeriesAssembler) Assemble(table *domain.RawTable, axis *domain.Axis, bindings []domain.MetricBinding) []domain.MetricSeries {
	series := make([]domain.MetricSeries, 0, len(bindings))
	for _, binding := range bindings {
		points := make([]domain.Point, len(axis.Labels))
		missing := 0
		for i, label := range axis.Labels {
			cell := orthogonalCell(table, axis.Orientation, binding.SourceIndex, axis.Positions[i])
			if num, ok := CoerceNumeric(cell); ok {
				points[i] = domain.Point{Period: label, Value: domain.Num(num)}
			} else {
				points[i] = domain.Point{Period: label, Value: domain.MissingValue()}
				missing++
				if cell != "" {
					a.logger.Debug("cell not coercible to number",
						slog.String("metric", string(binding.Metric)),
						slog.String("period", label.String()),
						slog.String("cell", cell))
				}
			}
		}
		series = append(series, domain.MetricSeries{
			Metric:     binding.Metric,
			Category:   binding.Category,
			Confidence: binding.Confidence,
			Points:     points,
		})
		if missing > 0 {
			a.logger.Debug("series has gaps",
				slog.String("metric", string(binding.Metric)),
				slog.Int("missing", missing),
				slog.Int("periods", len(points)))
		}
	}
	return series
}

// missingTokens are cell values that mean "no data" rather than zero.
var missingTokens = map[string]bool{
	"": true, "-": true, "--": true, "n/a": true, "na": true, "nil": true, "nan": true,
}

// CoerceNumeric parses a cell with locale tolerance: currency symbols and
// percent suffixes are stripped, thousands separators removed,
// parenthesized values read as negatives, and the European
// "1.234,56" convention recognized when the comma is the rightmost
// separator. Non-coercible input reports ok=false.
func CoerceNumeric(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cell)
	if missingTokens[strings.ToLower(s)] {
		return decimal.Decimal{}, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = stripCurrency(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	// U+2212 minus and leading plus both appear in exports.
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.TrimPrefix(s, "+")

	s = normalizeSeparators(s)
	num, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		num = num.Neg()
	}
	return num, true
}

var currencyPrefixes = []string{"rs.", "rs", "inr", "usd", "iqd", "eur", "gbp"}

func stripCurrency(s string) string {
	s = strings.Trim(s, "$€£¥₹ ")
	lower := strings.ToLower(s)
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(lower, p+" ") {
			return s[len(p)+1:]
		}
	}
	return s
}

// normalizeSeparators removes thousands separators and settles the
// decimal point. When both '.' and ',' appear, the rightmost one is the
// decimal separator; a lone comma followed by exactly three digits is a
// thousands separator, any other lone comma is a decimal comma.
func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "'", "")

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 != 3 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}
