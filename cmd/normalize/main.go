package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"finlens/internal/config"
	"finlens/internal/exporter"
	"finlens/internal/extraction"
	"finlens/internal/infrastructure"
)

// supportedExtensions are the file types the pipeline accepts.
var supportedExtensions = map[string]bool{
	".xlsx": true, ".xls": true, ".csv": true, ".tsv": true, ".gp": true, ".txt": true,
}

func main() {
	in := flag.String("in", "", "input file or directory of statement files")
	outDir := flag.String("out", "", "output directory for exported results (default from config)")
	format := flag.String("format", "", "export format: csv, json or both (default from config)")
	aliases := flag.String("aliases", "", "path to an alias dictionary YAML (default: built-in)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: normalize -in <file-or-dir> [-out dir] [-format csv|json|both] [-aliases dict.yml]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *outDir != "" {
		cfg.Export.Dir = *outDir
	}
	if *format != "" {
		cfg.Export.Format = *format
	}
	if *aliases != "" {
		cfg.Aliases.Path = *aliases
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	dict := extraction.DefaultDictionary()
	if cfg.Aliases.Path != "" {
		dict, err = extraction.LoadDictionary(cfg.Aliases.Path)
		if err != nil {
			logger.Error("failed to load alias dictionary", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("loaded alias dictionary",
			slog.String("path", cfg.Aliases.Path),
			slog.String("version", dict.Version))
	}

	files, err := collectFiles(*in)
	if err != nil {
		logger.Error("failed to collect input files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Error("no supported files found", slog.String("input", *in))
		os.Exit(1)
	}

	pipe := extraction.NewPipeline(dict, logger,
		extraction.WithSniffLines(cfg.Extraction.SniffLines),
		extraction.WithAxisThreshold(cfg.Extraction.AxisThreshold))
	writer := exporter.NewWriter(cfg.Export.Dir, cfg.Export.BOM, logger)

	logger.Info("starting normalization",
		slog.Int("files", len(files)),
		slog.String("output_dir", cfg.Export.Dir),
		slog.Int("workers", cfg.Extraction.MaxWorkers))

	var group errgroup.Group
	group.SetLimit(cfg.Extraction.MaxWorkers)
	for _, file := range files {
		file := file
		group.Go(func() error {
			return processFile(context.Background(), pipe, writer, cfg.Export.Format, file, logger)
		})
	}
	if err := group.Wait(); err != nil {
		logger.Error("normalization finished with errors", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("normalization complete", slog.Int("files", len(files)))
}

// processFile runs one pipeline and exports its result. Pipeline failures
// are part of the result, not errors; only export I/O can fail here.
func processFile(ctx context.Context, pipe *extraction.Pipeline, writer *exporter.Writer, format, file string, logger *slog.Logger) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	result := pipe.Run(ctx, filepath.Base(file), content)
	logger.Info("file processed",
		slog.String("file", file),
		slog.String("run_id", result.RunID),
		slog.Int("series", len(result.Series)),
		slog.Int("derived", len(result.Derived)),
		slog.Bool("partial", result.Partial),
		slog.String("failure_code", result.FailureCode))

	if format == "csv" || format == "both" {
		if _, err := writer.WriteCSV(result); err != nil {
			return fmt.Errorf("export CSV for %s: %w", file, err)
		}
	}
	if format == "json" || format == "both" {
		if _, err := writer.WriteJSON(result); err != nil {
			return fmt.Errorf("export JSON for %s: %w", file, err)
		}
	}
	return nil
}

// collectFiles expands a file or directory argument into the list of
// supported input files.
func collectFiles(in string) ([]string, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{in}, nil
	}

	entries, err := os.ReadDir(in)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(in, entry.Name()))
		}
	}
	return files, nil
}
