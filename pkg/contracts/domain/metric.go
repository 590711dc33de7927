package domain

import (
	"strings"
)

// Metric is a canonical financial line-item identifier. The set is closed;
// source labels are mapped onto it by the metric matcher.
type Metric string

const (
	// Profit and loss
	MetricRevenue         Metric = "REVENUE"
	MetricGrossProfit     Metric = "GROSS_PROFIT"
	MetricOperatingProfit Metric = "OPERATING_PROFIT"
	MetricNetProfit       Metric = "NET_PROFIT"
	MetricEBITDA          Metric = "EBITDA"

	// Balance sheet
	MetricTotalAssets        Metric = "TOTAL_ASSETS"
	MetricCurrentAssets      Metric = "CURRENT_ASSETS"
	MetricTotalLiabilities   Metric = "TOTAL_LIABILITIES"
	MetricCurrentLiabilities Metric = "CURRENT_LIABILITIES"
	MetricEquity             Metric = "EQUITY"
	MetricTotalDebt          Metric = "TOTAL_DEBT"

	// Cash flow
	MetricOperatingCashFlow Metric = "OPERATING_CASH_FLOW"
	MetricInvestingCashFlow Metric = "INVESTING_CASH_FLOW"
	MetricFinancingCashFlow Metric = "FINANCING_CASH_FLOW"
	MetricNetCashFlow       Metric = "NET_CASH_FLOW"
)

// DisplayName returns the human-readable form, e.g. "net profit" for
// NET_PROFIT. Used as the exact-match target by the matcher.
func (m Metric) DisplayName() string {
	return strings.ToLower(strings.ReplaceAll(string(m), "_", " "))
}

// DerivedMetric identifies a computed ratio or margin. The enum is
// disjoint from Metric.
type DerivedMetric string

const (
	DerivedOperatingMargin   DerivedMetric = "OPERATING_MARGIN"
	DerivedNetMargin         DerivedMetric = "NET_MARGIN"
	DerivedGrossMargin       DerivedMetric = "GROSS_MARGIN"
	DerivedCurrentRatio      DerivedMetric = "CURRENT_RATIO"
	DerivedDebtToEquity      DerivedMetric = "DEBT_TO_EQUITY"
	DerivedOCFToICF          DerivedMetric = "OCF_TO_ICF"
	DerivedRevenueGrowth     DerivedMetric = "REVENUE_GROWTH"
	DerivedNetProfitGrowth   DerivedMetric = "NET_PROFIT_GROWTH"
	DerivedTotalAssetsGrowth DerivedMetric = "TOTAL_ASSETS_GROWTH"
)

// StatementCategory groups canonical metrics by the financial statement
// they belong to. Matching walks categories in a fixed priority order.
type StatementCategory string

const (
	CategoryCashFlow     StatementCategory = "cash_flow"
	CategoryProfitLoss   StatementCategory = "profit_loss"
	CategoryBalanceSheet StatementCategory = "balance_sheet"
)

// MatchConfidence grades how a source label was bound to a metric.
type MatchConfidence string

const (
	ConfidenceExact MatchConfidence = "exact"
	ConfidenceAlias MatchConfidence = "alias"
	ConfidenceFuzzy MatchConfidence = "fuzzy"
)

// MetricBinding associates a table row or column (orthogonal to the axis)
// with a canonical metric. At most one binding exists per source index.
type MetricBinding struct {
	SourceIndex  int               `json:"source_index"`
	Metric       Metric            `json:"metric"`
	Category     StatementCategory `json:"category"`
	Confidence   MatchConfidence   `json:"confidence"`
	Label        string            `json:"label"`
	MatchedAlias string            `json:"matched_alias,omitempty"`
}
