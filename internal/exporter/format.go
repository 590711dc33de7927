package exporter

import (
	"finlens/pkg/contracts/domain"
)

// formatValue renders a value for CSV output. Missing values become the
// empty cell so spreadsheets show a gap rather than a zero.
func formatValue(v domain.Value) string {
	if v.Missing {
		return ""
	}
	return v.Decimal.String()
}
