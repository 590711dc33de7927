package extraction

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"finlens/pkg/contracts/domain"
)

// Engine decodes raw bytes into a cell grid. Engines are tried in the
// order given by the decoding strategy; a failing engine is recorded as a
// fallback diagnostic before the next one runs.
type Engine interface {
	Name() string
	Decode(content []byte) (*domain.RawTable, error)
}

// TableDecoder turns raw bytes plus a DecodingStrategy into a RawTable.
type TableDecoder struct {
	logger  *slog.Logger
	engines map[string]Engine
}

// NewTableDecoder registers the built-in engines.
func NewTableDecoder(logger *slog.Logger) *TableDecoder {
	if logger == nil {
		logger = slog.Default()
	}
	d := &TableDecoder{
		logger:  logger,
		engines: make(map[string]Engine),
	}
	for _, e := range []Engine{
		&excelizeEngine{},
		&htmlTableEngine{},
		&delimitedEngine{sniffLines: 10},
	} {
		d.engines[e.Name()] = e
	}
	return d
}

// Decode runs the strategy. Spreadsheet strategies walk the engine chain,
// stopping at the first success; delimited strategies split by the chosen
// delimiter. Failures surface as EmptyFile or DecodeExhausted.
func (d *TableDecoder) Decode(content []byte, strategy DecodingStrategy, trail *Trail) (*domain.RawTable, error) {
	switch strategy.Kind {
	case StrategySpreadsheet:
		return d.decodeSpreadsheet(content, strategy.Engines, trail)
	case StrategyDelimited:
		return d.decodeDelimited(content, strategy.Delimiter, trail)
	default:
		return nil, NewDecodeExhausted(0, fmt.Errorf("unknown strategy kind %q", strategy.Kind))
	}
}

func (d *TableDecoder) decodeSpreadsheet(content []byte, engineNames []string, trail *Trail) (*domain.RawTable, error) {
	var lastErr error
	attempts := 0
	for _, name := range engineNames {
		engine, ok := d.engines[name]
		if !ok {
			continue
		}
		attempts++
		table, err := engine.Decode(content)
		if err != nil {
			lastErr = err
			trail.Fallback(domain.StageDecode, fmt.Sprintf("engine %s failed: %v", name, err))
			d.logger.Debug("decode engine failed",
				slog.String("engine", name),
				slog.String("error", err.Error()))
			continue
		}
		if table.IsEmpty() {
			return nil, NewEmptyFile("engine " + name)
		}
		d.logger.Info("decoded spreadsheet",
			slog.String("engine", name),
			slog.Int("rows", table.Rows),
			slog.Int("cols", table.Cols))
		return table, nil
	}
	return nil, NewDecodeExhausted(attempts, lastErr)
}

func (d *TableDecoder) decodeDelimited(content []byte, delim Delimiter, trail *Trail) (*domain.RawTable, error) {
	if delim == DelimiterNone {
		// No consistent separator: keep each line as a one-cell row so
		// the raw view survives even when no axis can follow.
		table := domain.NewRawTable(splitLines(content), "delimited:none")
		if table.IsEmpty() {
			return nil, NewEmptyFile("content")
		}
		trail.Fallback(domain.StageDecode, "no consistent delimiter, decoded as single column")
		return table, nil
	}
	cells, err := splitDelimited(content, delim.Rune())
	if err != nil {
		trail.Fallback(domain.StageDecode, fmt.Sprintf("delimiter %s failed: %v", delim, err))
		return nil, NewDecodeExhausted(1, err)
	}
	table := domain.NewRawTable(cells, "delimited:"+string(delim))
	if table.IsEmpty() {
		return nil, NewEmptyFile("delimiter " + string(delim))
	}
	d.logger.Info("decoded delimited text",
		slog.String("delimiter", string(delim)),
		slog.Int("rows", table.Rows),
		slog.Int("cols", table.Cols))
	return table, nil
}

// splitLines turns content into single-cell rows, dropping blank lines.
func splitLines(content []byte) [][]string {
	var cells [][]string
	for _, raw := range bytes.Split(content, []byte("\n")) {
		line := strings.TrimSpace(strings.TrimRight(string(raw), "\r"))
		if line == "" {
			continue
		}
		cells = append(cells, []string{line})
	}
	return cells
}

// splitDelimited parses delimited text leniently: ragged rows are valid
// (NewRawTable pads trailing cells with the empty marker) and stray quotes
// do not abort the row.
func splitDelimited(content []byte, sep rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var cells [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = strings.TrimSpace(cell)
		}
		cells = append(cells, row)
	}
	return cells, nil
}
