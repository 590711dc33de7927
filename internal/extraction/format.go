package extraction

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
)

// Delimiter names a column separator candidate.
type Delimiter string

const (
	DelimiterTab       Delimiter = "tab"
	DelimiterComma     Delimiter = "comma"
	DelimiterSemicolon Delimiter = "semicolon"
	DelimiterPipe      Delimiter = "pipe"
	DelimiterNone      Delimiter = "none"
)

// Rune returns the separator character, or 0 for DelimiterNone.
func (d Delimiter) Rune() rune {
	switch d {
	case DelimiterTab:
		return '\t'
	case DelimiterComma:
		return ','
	case DelimiterSemicolon:
		return ';'
	case DelimiterPipe:
		return '|'
	default:
		return 0
	}
}

// delimiterPriority is the tie-break order for equal scores.
var delimiterPriority = []Delimiter{DelimiterTab, DelimiterComma, DelimiterSemicolon, DelimiterPipe}

// StrategyKind distinguishes the two decoding paths.
type StrategyKind string

const (
	StrategySpreadsheet StrategyKind = "spreadsheet"
	StrategyDelimited   StrategyKind = "delimited"
)

// DecodingStrategy is the format detector's verdict: a decoding path plus
// either an ordered engine list (spreadsheets) or a chosen delimiter
// (delimited text).
type DecodingStrategy struct {
	Kind      StrategyKind
	Delimiter Delimiter
	Engines   []string
}

// spreadsheetEngines is the ordered fallback chain for .xls/.xlsx input.
// Legacy ".xls" statement exports are frequently HTML tables or plain
// delimited text wearing a spreadsheet extension, so both get a turn.
var spreadsheetEngines = []string{EngineNameExcelize, EngineNameHTMLTable, EngineNameDelimited}

// FormatDetector inspects a file name and a content sniff and picks a
// decoding strategy. It never parses payload semantics.
type FormatDetector struct {
	logger     *slog.Logger
	sniffLines int
}

// NewFormatDetector builds a detector sampling up to sniffLines lines for
// delimiter scoring.
func NewFormatDetector(sniffLines int, logger *slog.Logger) *FormatDetector {
	if sniffLines <= 0 {
		sniffLines = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FormatDetector{logger: logger, sniffLines: sniffLines}
}

// Detect routes by extension: spreadsheet extensions get the engine chain,
// text extensions get delimiter detection. Unrecognized extensions fail
// with UnsupportedFormat rather than defaulting silently.
func (d *FormatDetector) Detect(filename string, content []byte) (DecodingStrategy, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xls":
		d.logger.Debug("detected spreadsheet format",
			slog.String("file", filename),
			slog.String("extension", ext))
		return DecodingStrategy{Kind: StrategySpreadsheet, Delimiter: DelimiterNone, Engines: spreadsheetEngines}, nil
	case ".csv", ".tsv", ".gp", ".txt":
		delim := d.detectDelimiter(content)
		d.logger.Debug("detected delimited format",
			slog.String("file", filename),
			slog.String("extension", ext),
			slog.String("delimiter", string(delim)))
		return DecodingStrategy{Kind: StrategyDelimited, Delimiter: delim}, nil
	default:
		return DecodingStrategy{}, NewUnsupportedFormat(ext)
	}
}

// detectDelimiter scores each candidate over the sampled lines. A
// candidate scores by the fraction of lines sharing the modal column
// count, and scores zero unless that count exceeds one. Ties fall back to
// the fixed priority order, so detection is deterministic.
func (d *FormatDetector) detectDelimiter(content []byte) Delimiter {
	lines := sampleLines(content, d.sniffLines)
	if len(lines) == 0 {
		return DelimiterNone
	}

	best := DelimiterNone
	bestScore := 0.0
	for _, cand := range delimiterPriority {
		score := scoreDelimiter(lines, cand.Rune())
		if score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return best
}

func sampleLines(content []byte, max int) []string {
	var lines []string
	for _, raw := range bytes.Split(content, []byte("\n")) {
		line := strings.TrimRight(string(raw), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) >= max {
			break
		}
	}
	return lines
}

func scoreDelimiter(lines []string, sep rune) float64 {
	counts := make(map[int]int)
	for _, line := range lines {
		counts[len(strings.Split(line, string(sep)))]++
	}
	modalCols, modalLines := 0, 0
	for cols, n := range counts {
		if n > modalLines || (n == modalLines && cols > modalCols) {
			modalCols, modalLines = cols, n
		}
	}
	if modalCols < 2 {
		return 0
	}
	return float64(modalLines) / float64(len(lines))
}
