// Package driver implements the lowering driver (§4, §5, §6): it walks a
// filtered Program in dependency order and issues structured write
// operations against a backend.Backend, turning the resolved RIR into
// emitted source text. Grounded on the teacher's internal/pipeline
// package (op_lowering.go, pipeline.go), which drives an analogous
// module-at-a-time traversal from Core to a target representation.
package driver

import "github.com/lowerc/lowerc/internal/backend"

// Options is the driver's immutable configuration, built once from CLI
// flags (§9 redesign note: "a mutable global Options struct populated by
// flag.Parse side effects → an immutable Options value constructed once
// and threaded explicitly").
type Options struct {
	// Target selects the active backend.
	Target backend.Tag

	// Level selects how far past source emission to go (§6).
	Level backend.CompileLevel

	// Verify asks the caller to print diagnostics and phase timings even
	// on a clean compile. Run itself does not read it; filtering and
	// lowering are the same with or without it.
	Verify bool

	// MainOverride pins the fully-qualified name of the declaration to
	// treat as the program's entry point, bypassing automatic discovery
	// (§5's "exactly one qualifying declaration" rule).
	MainOverride string

	// OutDir is the directory emitted files are written under.
	OutDir string

	// DryRun computes and reports what would be emitted (including main-
	// method discovery and diagnostics) without writing any files.
	DryRun bool
}

// WithDefaults returns a copy of o with zero-value fields replaced by the
// driver's defaults: an empty OutDir becomes ./build/<target>.
func (o Options) WithDefaults() Options {
	out := o
	if out.OutDir == "" {
		out.OutDir = "./build/" + string(out.Target)
	}
	return out
}
