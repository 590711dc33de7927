package extraction

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"finlens/pkg/contracts/domain"
)

// ratioFormula declares a derived ratio and its required inputs.
type ratioFormula struct {
	metric      domain.DerivedMetric
	numerator   domain.Metric
	denominator domain.Metric
}

// growthFormula declares a period-over-period percent change series.
type growthFormula struct {
	metric domain.DerivedMetric
	input  domain.Metric
}

var ratioFormulas = []ratioFormula{
	{domain.DerivedOperatingMargin, domain.MetricOperatingProfit, domain.MetricRevenue},
	{domain.DerivedNetMargin, domain.MetricNetProfit, domain.MetricRevenue},
	{domain.DerivedGrossMargin, domain.MetricGrossProfit, domain.MetricRevenue},
	{domain.DerivedCurrentRatio, domain.MetricCurrentAssets, domain.MetricCurrentLiabilities},
	{domain.DerivedDebtToEquity, domain.MetricTotalDebt, domain.MetricEquity},
	{domain.DerivedOCFToICF, domain.MetricOperatingCashFlow, domain.MetricInvestingCashFlow},
}

var growthFormulas = []growthFormula{
	{domain.DerivedRevenueGrowth, domain.MetricRevenue},
	{domain.DerivedNetProfitGrowth, domain.MetricNetProfit},
	{domain.DerivedTotalAssetsGrowth, domain.MetricTotalAssets},
}

var hundred = decimal.NewFromInt(100)

// DerivedEngine computes the fixed formula set over assembled series. A
// period's derived value exists only when every required input is present
// for that period and no denominator is zero; a zero denominator yields a
// missing value, not infinity and not an error.
type DerivedEngine struct {
	logger *slog.Logger
}

// NewDerivedEngine builds the engine.
func NewDerivedEngine(logger *slog.Logger) *DerivedEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &DerivedEngine{logger: logger}
}

// Compute evaluates every formula whose inputs were assembled.
func (e *DerivedEngine) Compute(series []domain.MetricSeries) []domain.DerivedSeries {
	byMetric := make(map[domain.Metric]*domain.MetricSeries, len(series))
	for i := range series {
		byMetric[series[i].Metric] = &series[i]
	}

	var out []domain.DerivedSeries
	for _, f := range ratioFormulas {
		num, den := byMetric[f.numerator], byMetric[f.denominator]
		if num == nil || den == nil {
			continue
		}
		out = append(out, domain.DerivedSeries{
			Metric: f.metric,
			Points: ratioPoints(num.Points, den.Points),
		})
	}
	for _, f := range growthFormulas {
		input := byMetric[f.input]
		if input == nil || len(input.Points) < 2 {
			continue
		}
		out = append(out, domain.DerivedSeries{
			Metric: f.metric,
			Points: growthPoints(input.Points),
		})
	}

	e.logger.Info("derived metrics computed",
		slog.Int("series", len(out)),
		slog.Int("inputs", len(series)))
	return out
}

func ratioPoints(num, den []domain.Point) []domain.Point {
	points := make([]domain.Point, len(num))
	for i := range num {
		points[i] = domain.Point{Period: num[i].Period, Value: domain.MissingValue()}
		if i >= len(den) {
			continue
		}
		n, d := num[i].Value, den[i].Value
		if n.Missing || d.Missing || d.Decimal.IsZero() {
			continue
		}
		points[i].Value = domain.Num(n.Decimal.Div(d.Decimal))
	}
	return points
}

// growthPoints yields percent change from the prior period. The first
// period is always missing, as is any period whose endpoint is missing or
// whose prior value is zero.
func growthPoints(input []domain.Point) []domain.Point {
	points := make([]domain.Point, len(input))
	for i := range input {
		points[i] = domain.Point{Period: input[i].Period, Value: domain.MissingValue()}
		if i == 0 {
			continue
		}
		prev, cur := input[i-1].Value, input[i].Value
		if prev.Missing || cur.Missing || prev.Decimal.IsZero() {
			continue
		}
		change := cur.Decimal.Sub(prev.Decimal).Div(prev.Decimal).Mul(hundred)
		points[i].Value = domain.Num(change)
	}
	return points
}
