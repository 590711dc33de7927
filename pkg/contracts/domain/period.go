package domain

import (
	"fmt"
)

// PeriodKind identifies how a period label was encoded in the source file.
type PeriodKind string

const (
	PeriodKindYear         PeriodKind = "year"
	PeriodKindYearMonth    PeriodKind = "year-month"
	PeriodKindYearMonthDay PeriodKind = "year-month-day"
	PeriodKindFiscalYear   PeriodKind = "fiscal-year"
)

// PeriodLabel is a normalized time period parsed from an axis cell.
// Month and Day are zero when the kind does not carry them.
type PeriodLabel struct {
	Kind  PeriodKind `json:"kind"`
	Year  int        `json:"year"`
	Month int        `json:"month,omitempty"`
	Day   int        `json:"day,omitempty"`
}

// String renders the canonical display form: "2023", "2023-03",
// "2023-03-31" or "FY-2023". Parsing the rendered form yields the same
// label back.
func (p PeriodLabel) String() string {
	switch p.Kind {
	case PeriodKindYearMonth:
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	case PeriodKindYearMonthDay:
		return fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day)
	case PeriodKindFiscalYear:
		return fmt.Sprintf("FY-%04d", p.Year)
	default:
		return fmt.Sprintf("%04d", p.Year)
	}
}

// Before orders labels by (year, month, day); kind is ignored so that a
// fiscal year and a calendar year interleave chronologically.
func (p PeriodLabel) Before(other PeriodLabel) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	if p.Month != other.Month {
		return p.Month < other.Month
	}
	return p.Day < other.Day
}

// Orientation records whether the period axis occupies a row or a column.
// A row axis means periods run left-to-right and metrics occupy rows; a
// column axis means periods run top-to-bottom and metrics occupy columns.
type Orientation string

const (
	OrientationRows    Orientation = "rows"
	OrientationColumns Orientation = "columns"
)

// Axis is the detected row or column carrying period labels.
//
// Labels and Positions are parallel slices sorted ascending by
// (year, month, day); Positions holds the offset of each label along the
// axis in the source grid. LabelIndex is the offset along the axis of the
// caption cell (e.g. a "Year" header), or -1 when every axis cell parsed
// as a period.
type Axis struct {
	Orientation    Orientation   `json:"orientation"`
	Index          int           `json:"index"`
	Labels         []PeriodLabel `json:"labels"`
	Positions      []int         `json:"positions"`
	LabelIndex     int           `json:"label_index"`
	UnmatchedCount int           `json:"unmatched_count"`
}

// Periods returns the canonical display forms of the axis labels in order.
func (a *Axis) Periods() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.Labels))
	for i, l := range a.Labels {
		out[i] = l.String()
	}
	return out
}
