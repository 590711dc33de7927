package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Value is a single numeric observation. Missing values are explicit so
// that downstream ratio computation can detect insufficient data instead
// of silently substituting zero.
type Value struct {
	Decimal decimal.Decimal
	Missing bool
}

// Num builds a present value.
func Num(d decimal.Decimal) Value {
	return Value{Decimal: d}
}

// MissingValue is the explicit missing-value marker.
func MissingValue() Value {
	return Value{Missing: true}
}

// MarshalJSON renders a missing value as null and a present value as a
// JSON number.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Missing {
		return []byte("null"), nil
	}
	return json.Marshal(v.Decimal)
}

// UnmarshalJSON accepts null as the missing marker.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = MissingValue()
		return nil
	}
	v.Missing = false
	return json.Unmarshal(data, &v.Decimal)
}

// Point pairs a period with its observed or computed value.
type Point struct {
	Period PeriodLabel `json:"period"`
	Value  Value       `json:"value"`
}

// MetricSeries is the ordered per-period series of one canonical metric.
// Its length always equals the axis label count; gaps appear as missing
// values, never as omitted entries.
type MetricSeries struct {
	Metric     Metric            `json:"metric"`
	Category   StatementCategory `json:"category"`
	Confidence MatchConfidence   `json:"confidence"`
	Points     []Point           `json:"points"`
}

// DerivedSeries is the per-period series of one computed metric.
type DerivedSeries struct {
	Metric DerivedMetric `json:"metric"`
	Points []Point       `json:"points"`
}
