package extraction

import (
	"fmt"

	"finlens/pkg/contracts/domain"
)

// ErrorCode identifies a pipeline error kind.
type ErrorCode string

const (
	CodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	CodeEmptyFile         ErrorCode = "EMPTY_FILE"
	CodeDecodeExhausted   ErrorCode = "DECODE_EXHAUSTED"
	CodeNoAxisFound       ErrorCode = "NO_AXIS_FOUND"
)

// PipelineError is a stage-scoped error with a stable code. The four hard
// error kinds terminate their stage but never propagate past the pipeline
// boundary; Run records them as the terminal diagnostics entry instead.
type PipelineError struct {
	Stage   domain.Stage
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As chains.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches any PipelineError carrying the same code, so callers can test
// errors.Is(err, ErrNoAxisFound) regardless of message or cause.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	return ok && t.Code == e.Code
}

// Sentinel targets for errors.Is.
var (
	ErrUnsupportedFormat = &PipelineError{Code: CodeUnsupportedFormat}
	ErrEmptyFile         = &PipelineError{Code: CodeEmptyFile}
	ErrDecodeExhausted   = &PipelineError{Code: CodeDecodeExhausted}
	ErrNoAxisFound       = &PipelineError{Code: CodeNoAxisFound}
)

// NewUnsupportedFormat reports an unrecognized file extension.
func NewUnsupportedFormat(ext string) *PipelineError {
	return &PipelineError{
		Stage:   domain.StageFormatDetection,
		Code:    CodeUnsupportedFormat,
		Message: fmt.Sprintf("unrecognized file extension %q", ext),
	}
}

// NewEmptyFile reports a decoded grid with zero non-empty cells.
func NewEmptyFile(source string) *PipelineError {
	return &PipelineError{
		Stage:   domain.StageDecode,
		Code:    CodeEmptyFile,
		Message: fmt.Sprintf("%s produced no non-empty cells", source),
	}
}

// NewDecodeExhausted reports that every engine or delimiter attempt failed.
func NewDecodeExhausted(attempts int, last error) *PipelineError {
	return &PipelineError{
		Stage:   domain.StageDecode,
		Code:    CodeDecodeExhausted,
		Message: fmt.Sprintf("all %d decode attempts failed", attempts),
		Err:     last,
	}
}

// NewNoAxisFound reports that no row or column cleared the period-density
// threshold.
func NewNoAxisFound(rows, cols int) *PipelineError {
	return &PipelineError{
		Stage:   domain.StageAxisLocation,
		Code:    CodeNoAxisFound,
		Message: fmt.Sprintf("no period axis in %dx%d grid", rows, cols),
	}
}
