package extraction

import (
	"fmt"
	"log/slog"
	"sort"

	"finlens/pkg/contracts/domain"
)

// AxisLocator scans every row and column of a grid for the line carrying
// period labels and determines the table orientation from it.
type AxisLocator struct {
	logger    *slog.Logger
	threshold float64
}

// NewAxisLocator builds a locator. A row or column qualifies when the
// fraction of its non-empty cells parsing as periods strictly exceeds
// threshold (default 0.5).
func NewAxisLocator(threshold float64, logger *slog.Logger) *AxisLocator {
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AxisLocator{logger: logger, threshold: threshold}
}

// axisCandidate is one scored row or column.
type axisCandidate struct {
	orientation domain.Orientation
	index       int
	fraction    float64
	labels      []domain.PeriodLabel
	positions   []int
	labelIndex  int
	unmatched   int
}

// Locate returns the best-scoring axis, or NoAxisFound when no line
// clears the threshold. Ties on parse fraction prefer more labels, then
// row orientation over column, then the lower index.
func (l *AxisLocator) Locate(table *domain.RawTable) (*domain.Axis, error) {
	var candidates []axisCandidate
	for r := 0; r < table.Rows; r++ {
		if cand, ok := l.scanLine(table, domain.OrientationRows, r); ok {
			candidates = append(candidates, cand)
		}
	}
	for c := 0; c < table.Cols; c++ {
		if cand, ok := l.scanLine(table, domain.OrientationColumns, c); ok {
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return nil, NewNoAxisFound(table.Rows, table.Cols)
	}

	best := candidates[0]
	for _, cand := range candidates[1:] {
		if better(cand, best) {
			best = cand
		}
	}

	axis := &domain.Axis{
		Orientation:    best.orientation,
		Index:          best.index,
		Labels:         best.labels,
		Positions:      best.positions,
		LabelIndex:     best.labelIndex,
		UnmatchedCount: best.unmatched,
	}
	sortAxis(axis)

	l.logger.Info("located period axis",
		slog.String("orientation", string(axis.Orientation)),
		slog.Int("index", axis.Index),
		slog.Int("periods", len(axis.Labels)),
		slog.Int("unmatched", axis.UnmatchedCount),
		slog.String("fraction", fmt.Sprintf("%.2f", best.fraction)))
	return axis, nil
}

// scanLine parses every cell of the row (orientation rows) or column
// (orientation columns) at index.
func (l *AxisLocator) scanLine(table *domain.RawTable, orientation domain.Orientation, index int) (axisCandidate, bool) {
	length := table.Cols
	if orientation == domain.OrientationColumns {
		length = table.Rows
	}

	cand := axisCandidate{orientation: orientation, index: index, labelIndex: -1}
	nonEmpty := 0
	for pos := 0; pos < length; pos++ {
		cell := lineCell(table, orientation, index, pos)
		if cell == "" {
			continue
		}
		nonEmpty++
		if label, ok := ParsePeriod(cell); ok {
			cand.labels = append(cand.labels, label)
			cand.positions = append(cand.positions, pos)
		} else {
			cand.unmatched++
			if cand.labelIndex < 0 {
				cand.labelIndex = pos
			}
		}
	}
	if nonEmpty == 0 || len(cand.labels) == 0 {
		return axisCandidate{}, false
	}
	cand.fraction = float64(len(cand.labels)) / float64(nonEmpty)
	if cand.fraction <= l.threshold {
		return axisCandidate{}, false
	}
	return cand, true
}

// lineCell reads position pos along a row or column axis line.
func lineCell(table *domain.RawTable, orientation domain.Orientation, index, pos int) string {
	if orientation == domain.OrientationRows {
		return table.Cell(index, pos)
	}
	return table.Cell(pos, index)
}

func better(a, b axisCandidate) bool {
	if a.fraction != b.fraction {
		return a.fraction > b.fraction
	}
	if len(a.labels) != len(b.labels) {
		return len(a.labels) > len(b.labels)
	}
	// Last-resort tie-break: periods across a header row is the more
	// common statement layout.
	if a.orientation != b.orientation {
		return a.orientation == domain.OrientationRows
	}
	return a.index < b.index
}

// sortAxis orders labels ascending by (year, month, day), keeping the
// position slice parallel, so every assembled series comes out sorted
// even when the source table was not.
func sortAxis(axis *domain.Axis) {
	order := make([]int, len(axis.Labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return axis.Labels[order[i]].Before(axis.Labels[order[j]])
	})

	labels := make([]domain.PeriodLabel, len(order))
	positions := make([]int, len(order))
	for i, o := range order {
		labels[i] = axis.Labels[o]
		positions[i] = axis.Positions[o]
	}
	axis.Labels = labels
	axis.Positions = positions
}
