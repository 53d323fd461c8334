// Package errors provides the structured diagnostic type shared by every
// phase of the lowering core: the compilability filter, the driver, each
// backend, the emission substrate, and numeric lowering. Grounded on the
// teacher's internal/errors package (Report/ReportError/AsReport/
// WrapReport/ToJSON), re-themed to this core's own phase taxonomy.
package errors

import (
	"encoding/json"
	"errors"

	"github.com/lowerc/lowerc/internal/rir"
)

// SchemaVersion is the stable schema tag carried on every encoded Report.
const SchemaVersion = "lowerc.error/v1"

// Fix is a suggested remediation with a confidence score, carried through
// unchanged from the teacher's shape.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is the canonical structured diagnostic type. Every error
// surfaced across a compile is a *Report: an unsupported-construct
// report, an internal invariant violation, an I/O failure, or a native
// tool failure (§7).
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *rir.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`

	// Fatal marks an internal invariant violation (§7 kind 2) or an I/O
	// failure (§7 kind 3): these abort the run immediately rather than
	// accumulating alongside per-declaration errors.
	Fatal bool `json:"fatal,omitempty"`
}

// ReportError wraps a Report as a Go error so it survives errors.As()
// unwrapping through ordinary error-handling call chains.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown lowering error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// Wrap wraps a Report as an error for normal Go error propagation.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON encodes a Report deterministically (sorted map keys, since
// encoding/json already sorts map[string]any keys on marshal).
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Internal builds a fatal internal-invariant-violation report identifying
// the driver stage and the offending node (§7 kind 2).
func Internal(stage, message string, span *rir.Span) *Report {
	return &Report{
		Schema:  SchemaVersion,
		Code:    LOW001,
		Phase:   stage,
		Message: message,
		Span:    span,
		Fatal:   true,
	}
}

// IOFailure builds a fatal output-I/O-failure report (§7 kind 3).
func IOFailure(message string) *Report {
	return &Report{
		Schema:  SchemaVersion,
		Code:    IO001,
		Phase:   "emit",
		Message: message,
		Fatal:   true,
	}
}
