package extraction

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"finlens/pkg/contracts/domain"
)

// AliasDictionary maps canonical metrics to the label variants seen in the
// wild, grouped per statement category. The category order is the matching
// priority order. The dictionary is an immutable configuration artifact:
// it is built or loaded once and passed into the matcher at construction,
// never consulted as global state.
type AliasDictionary struct {
	Version    string            `yaml:"version" validate:"required"`
	Categories []CategoryAliases `yaml:"categories" validate:"required,min=1,dive"`
}

// CategoryAliases holds the metrics of one statement category.
type CategoryAliases struct {
	Category domain.StatementCategory `yaml:"category" validate:"required,oneof=cash_flow profit_loss balance_sheet"`
	Metrics  []MetricAliases          `yaml:"metrics" validate:"required,min=1,dive"`
}

// MetricAliases lists the known spellings of one canonical metric.
// Aliases are matched whole (confidence "alias") and as substrings
// (confidence "fuzzy"); KeywordSets are alternative word groups that must
// all appear in a label for a fuzzy match.
type MetricAliases struct {
	Metric      domain.Metric `yaml:"metric" validate:"required"`
	Aliases     []string      `yaml:"aliases" validate:"required,min=1,dive,required"`
	KeywordSets [][]string    `yaml:"keywords,omitempty"`
}

// LoadDictionary reads and validates an alias dictionary YAML artifact.
func LoadDictionary(path string) (*AliasDictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias dictionary: %w", err)
	}
	var dict AliasDictionary
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parse alias dictionary: %w", err)
	}
	if err := dict.Validate(); err != nil {
		return nil, err
	}
	return &dict, nil
}

// Validate checks structural completeness of the dictionary.
func (d *AliasDictionary) Validate() error {
	if err := validator.New().Struct(d); err != nil {
		return fmt.Errorf("alias dictionary validation: %w", err)
	}
	return nil
}

// DefaultDictionary is the built-in dictionary used when no external
// artifact is configured. The alias lists come from labels observed in
// statement exports; keep them lowercase.
func DefaultDictionary() *AliasDictionary {
	return &AliasDictionary{
		Version: "builtin-1",
		Categories: []CategoryAliases{
			{
				Category: domain.CategoryCashFlow,
				Metrics: []MetricAliases{
					{
						Metric: domain.MetricOperatingCashFlow,
						Aliases: []string{
							"net cash from operating activities",
							"cash flow from operating activities",
							"net cash generated from operations",
							"cash from operations",
							"operating cash flow",
						},
						KeywordSets: [][]string{{"operating", "cash"}, {"operations", "cash"}},
					},
					{
						Metric: domain.MetricInvestingCashFlow,
						Aliases: []string{
							"net cash used in investing activities",
							"cash flow from investing activities",
							"net cash from investing activities",
							"investing cash flow",
						},
						KeywordSets: [][]string{{"investing", "cash"}},
					},
					{
						Metric: domain.MetricFinancingCashFlow,
						Aliases: []string{
							"net cash used in financing activities",
							"cash flow from financing activities",
							"net cash from financing activities",
							"financing cash flow",
						},
						KeywordSets: [][]string{{"financing", "cash"}},
					},
					{
						Metric: domain.MetricNetCashFlow,
						Aliases: []string{
							"net increase in cash and cash equivalents",
							"net change in cash",
							"net increase in cash",
							"net cash flow",
						},
						KeywordSets: [][]string{{"net", "change", "cash"}, {"net", "increase", "cash"}},
					},
				},
			},
			{
				Category: domain.CategoryProfitLoss,
				Metrics: []MetricAliases{
					{
						Metric: domain.MetricRevenue,
						Aliases: []string{
							"revenue from operations",
							"total revenue",
							"total income",
							"net sales",
							"sales turnover",
							"turnover",
							"revenue",
							"sales",
						},
						KeywordSets: [][]string{{"revenue"}, {"turnover"}},
					},
					{
						Metric:      domain.MetricGrossProfit,
						Aliases:     []string{"gross profit", "gross income"},
						KeywordSets: [][]string{{"gross", "profit"}},
					},
					{
						Metric: domain.MetricOperatingProfit,
						Aliases: []string{
							"profit from operations",
							"operating profit",
							"operating income",
							"ebit",
						},
						KeywordSets: [][]string{{"operating", "profit"}, {"operating", "income"}},
					},
					{
						Metric:      domain.MetricEBITDA,
						Aliases:     []string{"ebitda"},
						KeywordSets: [][]string{{"ebitda"}},
					},
					{
						Metric: domain.MetricNetProfit,
						Aliases: []string{
							"profit attributable to shareholders",
							"reported net profit",
							"profit for the year",
							"profit after tax",
							"net income",
							"net earnings",
							"net profit",
							"pat",
						},
						KeywordSets: [][]string{{"net", "profit"}, {"net", "income"}, {"profit", "after", "tax"}},
					},
				},
			},
			{
				Category: domain.CategoryBalanceSheet,
				Metrics: []MetricAliases{
					{
						Metric:      domain.MetricCurrentAssets,
						Aliases:     []string{"total current assets", "current assets"},
						KeywordSets: [][]string{{"current", "assets"}},
					},
					{
						Metric:      domain.MetricCurrentLiabilities,
						Aliases:     []string{"total current liabilities", "current liabilities"},
						KeywordSets: [][]string{{"current", "liabilities"}},
					},
					{
						Metric:      domain.MetricTotalAssets,
						Aliases:     []string{"total assets"},
						KeywordSets: [][]string{{"total", "assets"}},
					},
					{
						Metric:      domain.MetricTotalLiabilities,
						Aliases:     []string{"total liabilities"},
						KeywordSets: [][]string{{"total", "liabilities"}},
					},
					{
						Metric: domain.MetricEquity,
						Aliases: []string{
							"total shareholders funds",
							"shareholders funds",
							"shareholders equity",
							"shareholders' equity",
							"total equity",
							"net worth",
							"equity",
						},
						KeywordSets: [][]string{{"shareholders", "funds"}, {"shareholders", "equity"}},
					},
					{
						Metric: domain.MetricTotalDebt,
						Aliases: []string{
							"total borrowings",
							"total debt",
							"borrowings",
							"debt",
						},
						KeywordSets: [][]string{{"borrowings"}, {"total", "debt"}},
					},
				},
			},
		},
	}
}
