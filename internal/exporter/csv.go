package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"finlens/pkg/contracts/domain"
)

// Writer exports pipeline results to files under a configured directory.
type Writer struct {
	dir    string
	bom    bool
	logger *slog.Logger
}

// NewWriter creates a result writer. When bom is set, CSV files start
// with a UTF-8 BOM so Excel opens them correctly.
func NewWriter(dir string, bom bool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, bom: bom, logger: logger}
}

// WriteCSV writes the result's metric and derived series as a wide table:
// one header row of periods, one row per series. Missing values appear as
// empty cells. Returns the path written.
func (w *Writer) WriteCSV(result *domain.Result) (string, error) {
	path := w.resolvePath(result.Source, "_metrics.csv")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if w.bom {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Metric"}
	if result.Axis != nil {
		header = append(header, result.Axis.Periods()...)
	}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, series := range result.Series {
		record := make([]string, 0, len(series.Points)+1)
		record = append(record, string(series.Metric))
		for _, p := range series.Points {
			record = append(record, formatValue(p.Value))
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write series %s: %w", series.Metric, err)
		}
	}
	for _, derived := range result.Derived {
		record := make([]string, 0, len(derived.Points)+1)
		record = append(record, string(derived.Metric))
		for _, p := range derived.Points {
			record = append(record, formatValue(p.Value))
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write derived series %s: %w", derived.Metric, err)
		}
	}

	writer.Flush()
	w.logger.Info("wrote metrics CSV",
		slog.String("path", path),
		slog.Int("series", len(result.Series)),
		slog.Int("derived", len(result.Derived)))
	return path, writer.Error()
}

// WriteJSON dumps the full result, diagnostics included, as indented JSON.
func (w *Writer) WriteJSON(result *domain.Result) (string, error) {
	path := w.resolvePath(result.Source, "_result.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	w.logger.Info("wrote result JSON", slog.String("path", path))
	return path, nil
}

// resolvePath derives the output file name from the source file name.
func (w *Writer) resolvePath(source, suffix string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "result"
	}
	return filepath.Join(w.dir, base+suffix)
}
