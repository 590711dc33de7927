package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"finlens/pkg/contracts/domain"
)

// Period parsing accepts the encodings seen in statement exports, tried in
// order: bare 4-digit year, YYYYMM, YYYYMMDD, "FY" prefixed or suffixed
// year, and the 2-digit fiscal range shorthand ("2023-24", normalized to
// its first year). The canonical display forms ("2023-03", "2023-03-31")
// parse back to the same label, so rendering round-trips.

const (
	minYear = 1900
	maxYear = 2099
)

var (
	fyPrefixRe = regexp.MustCompile(`^FY[\s-]?(\d{4})$`)
	fySuffixRe = regexp.MustCompile(`^(\d{4})[\s-]?FY$`)
	rangeRe    = regexp.MustCompile(`^(\d{4})\s*-\s*(\d{2})$`)
)

// ParsePeriod attempts to read a cell as a period label.
func ParsePeriod(cell string) (domain.PeriodLabel, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return domain.PeriodLabel{}, false
	}
	// Spreadsheet cells often surface integers as floats ("2021.0").
	s = strings.TrimSuffix(s, ".0")
	upper := strings.ToUpper(s)

	if label, ok := parseDigits(s); ok {
		return label, ok
	}
	if m := fyPrefixRe.FindStringSubmatch(upper); m != nil {
		return fiscalYear(m[1])
	}
	if m := fySuffixRe.FindStringSubmatch(upper); m != nil {
		return fiscalYear(m[1])
	}
	if label, ok := parseDashed(s); ok {
		return label, ok
	}
	return domain.PeriodLabel{}, false
}

// parseDigits handles the fixed-width all-numeric encodings.
func parseDigits(s string) (domain.PeriodLabel, bool) {
	if !isDigits(s) {
		return domain.PeriodLabel{}, false
	}
	switch len(s) {
	case 4:
		year, _ := strconv.Atoi(s)
		if year < minYear || year > maxYear {
			return domain.PeriodLabel{}, false
		}
		return domain.PeriodLabel{Kind: domain.PeriodKindYear, Year: year}, true
	case 6:
		year, _ := strconv.Atoi(s[:4])
		month, _ := strconv.Atoi(s[4:])
		if year < minYear || year > maxYear || month < 1 || month > 12 {
			return domain.PeriodLabel{}, false
		}
		return domain.PeriodLabel{Kind: domain.PeriodKindYearMonth, Year: year, Month: month}, true
	case 8:
		t, err := time.Parse("20060102", s)
		if err != nil || t.Year() < minYear || t.Year() > maxYear {
			return domain.PeriodLabel{}, false
		}
		return domain.PeriodLabel{
			Kind:  domain.PeriodKindYearMonthDay,
			Year:  t.Year(),
			Month: int(t.Month()),
			Day:   t.Day(),
		}, true
	}
	return domain.PeriodLabel{}, false
}

// parseDashed handles the canonical dashed forms plus the fiscal range
// shorthand. "2023-12" reads as December 2023; a second part that is not a
// valid month must continue the first year ("2023-24") to count as fiscal.
func parseDashed(s string) (domain.PeriodLabel, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if t.Year() >= minYear && t.Year() <= maxYear {
			return domain.PeriodLabel{
				Kind:  domain.PeriodKindYearMonthDay,
				Year:  t.Year(),
				Month: int(t.Month()),
				Day:   t.Day(),
			}, true
		}
		return domain.PeriodLabel{}, false
	}

	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return domain.PeriodLabel{}, false
	}
	year, _ := strconv.Atoi(m[1])
	if year < minYear || year > maxYear {
		return domain.PeriodLabel{}, false
	}
	second, _ := strconv.Atoi(m[2])
	if second >= 1 && second <= 12 {
		return domain.PeriodLabel{Kind: domain.PeriodKindYearMonth, Year: year, Month: second}, true
	}
	if second == (year+1)%100 {
		return domain.PeriodLabel{Kind: domain.PeriodKindFiscalYear, Year: year}, true
	}
	return domain.PeriodLabel{}, false
}

func fiscalYear(digits string) (domain.PeriodLabel, bool) {
	year, _ := strconv.Atoi(digits)
	if year < minYear || year > maxYear {
		return domain.PeriodLabel{}, false
	}
	return domain.PeriodLabel{Kind: domain.PeriodKindFiscalYear, Year: year}, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
