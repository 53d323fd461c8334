// Package rir defines the Resolved Intermediate Representation consumed by
// the lowering core: a tree of modules, declarations, members, types, and
// expressions produced by an external resolver and type-checker.
package rir

// Pos is a single source location, carried through from the resolver for
// diagnostics. The core never re-derives positions; it only forwards them.
type Pos struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Span covers a range of source text.
type Span struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

func (s Span) String() string {
	if s.Start.File == "" {
		return "<unknown>"
	}
	return s.Start.File
}
