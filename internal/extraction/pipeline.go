package extraction

import (
	"context"
	"fmt"
	"log/slog"

	"finlens/pkg/contracts/domain"
)

// Pipeline runs the full extraction chain for one file: format detection,
// table decoding, axis location, metric matching, series assembly and
// derived-metric computation. Data flows strictly forward; each stage may
// fail without halting the run, and failures surface as diagnostics plus
// a partial Result. Run never returns an error and never panics past the
// pipeline boundary.
//
// A Pipeline is safe for concurrent use: runs share only the immutable
// alias dictionary.
type Pipeline struct {
	logger    *slog.Logger
	detector  *FormatDetector
	decoder   *TableDecoder
	locator   *AxisLocator
	matcher   *MetricMatcher
	assembler *SeriesAssembler
	derive    *DerivedEngine
}

// Option tunes pipeline construction.
type Option func(*options)

type options struct {
	sniffLines    int
	axisThreshold float64
}

// WithSniffLines sets how many lines the format detector samples.
func WithSniffLines(n int) Option {
	return func(o *options) { o.sniffLines = n }
}

// WithAxisThreshold sets the period-density qualification threshold.
func WithAxisThreshold(f float64) Option {
	return func(o *options) { o.axisThreshold = f }
}

// NewPipeline wires the stages around an alias dictionary. A nil dict
// selects the built-in dictionary.
func NewPipeline(dict *AliasDictionary, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	o := options{sniffLines: 10, axisThreshold: 0.5}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		logger:    logger,
		detector:  NewFormatDetector(o.sniffLines, logger),
		decoder:   NewTableDecoder(logger),
		locator:   NewAxisLocator(o.axisThreshold, logger),
		matcher:   NewMetricMatcher(dict, logger),
		assembler: NewSeriesAssembler(logger),
		derive:    NewDerivedEngine(logger),
	}
}

// Run processes raw file bytes and always returns a Result; hard stage
// failures terminate early with the failure recorded as the terminal
// diagnostics entry and whatever partial data exists attached.
func (p *Pipeline) Run(ctx context.Context, filename string, content []byte) (result *domain.Result) {
	trail := NewTrail()
	result = &domain.Result{RunID: trail.RunID(), Source: filename}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline panic recovered",
				slog.String("source", filename),
				slog.Any("panic", r))
			trail.Failure(domain.StageDecode, fmt.Sprintf("internal fault: %v", r))
			result.FailureCode = string(CodeDecodeExhausted)
			result.Diagnostics = trail.Entries()
		}
	}()

	logger := p.logger.With(slog.String("run_id", trail.RunID()), slog.String("source", filename))
	logger.InfoContext(ctx, "pipeline run starting", slog.Int("bytes", len(content)))

	strategy, err := p.detector.Detect(filename, content)
	if err != nil {
		return p.fail(trail, result, err)
	}
	trail.Success(domain.StageFormatDetection,
		fmt.Sprintf("strategy %s delimiter=%s", strategy.Kind, strategy.Delimiter))

	table, err := p.decoder.Decode(content, strategy, trail)
	if err != nil {
		return p.fail(trail, result, err)
	}
	trail.Success(domain.StageDecode, fmt.Sprintf("%dx%d grid via %s", table.Rows, table.Cols, table.Source))
	result.Table = table

	return p.extract(ctx, trail, result, table)
}

// RunTable processes a grid the caller already decoded, skipping the
// detection and decode stages.
func (p *Pipeline) RunTable(ctx context.Context, source string, table *domain.RawTable) *domain.Result {
	trail := NewTrail()
	result := &domain.Result{RunID: trail.RunID(), Source: source}
	if table == nil || table.IsEmpty() {
		return p.fail(trail, result, NewEmptyFile("pre-decoded grid"))
	}
	trail.Success(domain.StageDecode, fmt.Sprintf("caller-supplied %dx%d grid", table.Rows, table.Cols))
	result.Table = table
	return p.extract(ctx, trail, result, table)
}

// extract runs the stages downstream of decoding.
func (p *Pipeline) extract(ctx context.Context, trail *Trail, result *domain.Result, table *domain.RawTable) *domain.Result {
	axis, err := p.locator.Locate(table)
	if err != nil {
		return p.fail(trail, result, err)
	}
	trail.Success(domain.StageAxisLocation,
		fmt.Sprintf("%s axis at index %d with %d periods", axis.Orientation, axis.Index, len(axis.Labels)))
	result.Axis = axis

	bindings := p.matcher.Match(table, axis)
	if len(bindings) == 0 {
		trail.Failure(domain.StageMetricMatching, "no recognizable metric labels")
		result.Partial = true
		result.Diagnostics = trail.Entries()
		p.logger.WarnContext(ctx, "partial extraction: axis found, no metrics matched",
			slog.String("run_id", trail.RunID()),
			slog.String("source", result.Source))
		return result
	}
	trail.Success(domain.StageMetricMatching, fmt.Sprintf("%d metrics bound", len(bindings)))

	result.Series = p.assembler.Assemble(table, axis, bindings)
	trail.Success(domain.StageAssembly, fmt.Sprintf("%d series assembled", len(result.Series)))

	result.Derived = p.derive.Compute(result.Series)
	trail.Success(domain.StageDerivation, fmt.Sprintf("%d derived series", len(result.Derived)))

	result.Diagnostics = trail.Entries()
	p.logger.InfoContext(ctx, "pipeline run complete",
		slog.String("run_id", trail.RunID()),
		slog.String("source", result.Source),
		slog.Int("series", len(result.Series)),
		slog.Int("derived", len(result.Derived)))
	return result
}

// fail records a terminal stage failure and seals the result.
func (p *Pipeline) fail(trail *Trail, result *domain.Result, err error) *domain.Result {
	stage := domain.StageDecode
	code := string(CodeDecodeExhausted)
	if pe, ok := err.(*PipelineError); ok {
		stage = pe.Stage
		code = string(pe.Code)
	}
	trail.Failure(stage, err.Error())
	result.FailureCode = code
	result.Diagnostics = trail.Entries()
	p.logger.Warn("pipeline run failed",
		slog.String("run_id", trail.RunID()),
		slog.String("source", result.Source),
		slog.String("stage", string(stage)),
		slog.String("error", err.Error()))
	return result
}
