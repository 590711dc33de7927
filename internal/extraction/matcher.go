package extraction

import (
	"log/slog"
	"regexp"
	"strings"

	"finlens/pkg/contracts/domain"
)

// MetricMatcher binds table rows or columns to canonical metrics by
// running the label of each index orthogonal to the axis through an
// ordered rule pipeline: exact name match, alias-table match, keyword
// containment. The first rule that hits wins; a label no rule recognizes
// is dropped, which is not an error.
type MetricMatcher struct {
	dict   *AliasDictionary
	logger *slog.Logger
	rules  []matchRule
}

// labelMatch is the output of a single rule evaluation.
type labelMatch struct {
	metric     domain.Metric
	category   domain.StatementCategory
	confidence domain.MatchConfidence
	alias      string
}

// matchRule is a pure function from a normalized label to an optional
// match, making each tier independently testable.
type matchRule func(label string) (labelMatch, bool)

// NewMetricMatcher builds a matcher over an immutable dictionary.
func NewMetricMatcher(dict *AliasDictionary, logger *slog.Logger) *MetricMatcher {
	if dict == nil {
		dict = DefaultDictionary()
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &MetricMatcher{dict: dict, logger: logger}
	m.rules = []matchRule{m.exactRule, m.aliasRule, m.keywordRule}
	return m
}

// Match scans every index orthogonal to the axis and returns the bindings
// found, at most one per source index and one per canonical metric.
func (m *MetricMatcher) Match(table *domain.RawTable, axis *domain.Axis) []domain.MetricBinding {
	count := table.Rows
	if axis.Orientation == domain.OrientationColumns {
		count = table.Cols
	}

	var bindings []domain.MetricBinding
	seen := make(map[domain.Metric]bool)
	for idx := 0; idx < count; idx++ {
		if idx == axis.Index {
			continue
		}
		label := m.labelFor(table, axis, idx)
		if label == "" {
			continue
		}
		match, ok := m.MatchLabel(label)
		if !ok {
			continue
		}
		if seen[match.metric] {
			m.logger.Debug("duplicate metric label skipped",
				slog.String("metric", string(match.metric)),
				slog.String("label", label))
			continue
		}
		seen[match.metric] = true
		bindings = append(bindings, domain.MetricBinding{
			SourceIndex:  idx,
			Metric:       match.metric,
			Category:     match.category,
			Confidence:   match.confidence,
			Label:        label,
			MatchedAlias: match.alias,
		})
	}

	m.logger.Info("metric matching complete",
		slog.Int("bindings", len(bindings)),
		slog.Int("scanned", count-1))
	return bindings
}

// labelFor reads the label cell of an orthogonal index: the cell under
// the axis caption when one exists, otherwise the first non-empty cell
// off the period positions.
func (m *MetricMatcher) labelFor(table *domain.RawTable, axis *domain.Axis, idx int) string {
	if axis.LabelIndex >= 0 {
		if cell := orthogonalCell(table, axis.Orientation, idx, axis.LabelIndex); cell != "" {
			return cell
		}
	}
	periodPos := make(map[int]bool, len(axis.Positions))
	for _, p := range axis.Positions {
		periodPos[p] = true
	}
	length := table.Cols
	if axis.Orientation == domain.OrientationColumns {
		length = table.Rows
	}
	for pos := 0; pos < length; pos++ {
		if periodPos[pos] {
			continue
		}
		if cell := orthogonalCell(table, axis.Orientation, idx, pos); cell != "" {
			return cell
		}
	}
	return ""
}

// orthogonalCell reads position pos within the row or column at idx,
// where idx runs orthogonal to the axis.
func orthogonalCell(table *domain.RawTable, orientation domain.Orientation, idx, pos int) string {
	if orientation == domain.OrientationRows {
		return table.Cell(idx, pos)
	}
	return table.Cell(pos, idx)
}

// MatchLabel runs one label through the rule pipeline.
func (m *MetricMatcher) MatchLabel(label string) (labelMatch, bool) {
	norm := normalizeLabel(label)
	if norm == "" {
		return labelMatch{}, false
	}
	for _, rule := range m.rules {
		if match, ok := rule(norm); ok {
			return match, true
		}
	}
	return labelMatch{}, false
}

// exactRule matches the canonical display name of a metric.
func (m *MetricMatcher) exactRule(label string) (labelMatch, bool) {
	for _, cat := range m.dict.Categories {
		for _, ma := range cat.Metrics {
			if label == ma.Metric.DisplayName() {
				return labelMatch{
					metric:     ma.Metric,
					category:   cat.Category,
					confidence: domain.ConfidenceExact,
					alias:      ma.Metric.DisplayName(),
				}, true
			}
		}
	}
	return labelMatch{}, false
}

// aliasRule matches the curated synonym lists whole. Categories are
// walked in dictionary priority order; within a category, the longest
// equal alias is implicitly unique.
func (m *MetricMatcher) aliasRule(label string) (labelMatch, bool) {
	for _, cat := range m.dict.Categories {
		for _, ma := range cat.Metrics {
			for _, alias := range ma.Aliases {
				if label == alias {
					return labelMatch{
						metric:     ma.Metric,
						category:   cat.Category,
						confidence: domain.ConfidenceAlias,
						alias:      alias,
					}, true
				}
			}
		}
	}
	return labelMatch{}, false
}

// keywordRule matches aliases by substring containment and keyword sets
// by word presence. The first category with any hit wins; within it the
// longest matched alias decides, so "total current assets" binds to
// CURRENT_ASSETS rather than TOTAL_ASSETS.
func (m *MetricMatcher) keywordRule(label string) (labelMatch, bool) {
	words := labelWords(label)
	for _, cat := range m.dict.Categories {
		var best labelMatch
		bestLen := -1
		for _, ma := range cat.Metrics {
			for _, alias := range ma.Aliases {
				if strings.Contains(label, alias) && len(alias) > bestLen {
					best = labelMatch{
						metric:     ma.Metric,
						category:   cat.Category,
						confidence: domain.ConfidenceFuzzy,
						alias:      alias,
					}
					bestLen = len(alias)
				}
			}
			for _, set := range ma.KeywordSets {
				if containsAll(words, set) && keywordLen(set) > bestLen {
					best = labelMatch{
						metric:     ma.Metric,
						category:   cat.Category,
						confidence: domain.ConfidenceFuzzy,
						alias:      strings.Join(set, "+"),
					}
					bestLen = keywordLen(set)
				}
			}
		}
		if bestLen >= 0 {
			return best, true
		}
	}
	return labelMatch{}, false
}

var labelPunctRe = regexp.MustCompile(`[^\p{L}\p{N}' ]+`)

// normalizeLabel lowercases, strips punctuation and collapses whitespace.
func normalizeLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = labelPunctRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

func labelWords(label string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(label) {
		words[w] = true
	}
	return words
}

func containsAll(words map[string]bool, set []string) bool {
	for _, kw := range set {
		if !words[kw] {
			return false
		}
	}
	return len(set) > 0
}

func keywordLen(set []string) int {
	n := 0
	for _, kw := range set {
		n += len(kw)
	}
	return n
}
