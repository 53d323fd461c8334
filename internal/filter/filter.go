// Package filter implements the compilability filter (§4.1, §4.4): the
// pass that decides which RIR declarations reach a backend at all, and
// erases ghost-only state from what survives. Grounded on the teacher's
// internal/elaborate package, which performs an analogous drop-and-
// continue walk over Core before evaluation (exhaustiveness.go, verify.go,
// scc.go).
package filter

import (
	"fmt"

	"github.com/lowerc/lowerc/internal/capability"
	lowererrors "github.com/lowerc/lowerc/internal/errors"
	"github.com/lowerc/lowerc/internal/rir"
)

// Result is the outcome of filtering one module: the surviving
// declarations plus any non-fatal diagnostics accumulated along the way
// (§7 propagation policy: collect and continue, don't abort).
type Result struct {
	Decls       []*rir.TopLevelDecl
	Diagnostics []*lowererrors.Report
}

// Module filters one module's declarations against the active backend's
// capability bits. Ghost declarations are dropped silently (§4.1); decls
// the backend cannot represent are dropped and reported (§4.1, non-fatal).
func Module(mod *rir.Module, caps capability.Bits, unsupported func(*rir.TopLevelDecl) (code string, reason string, rejected bool)) Result {
	var res Result
	for _, d := range mod.Decls {
		if d.IsGhost() {
			continue
		}
		if code, reason, rejected := unsupported(d); rejected {
			if code == "" {
				code = lowererrors.FLT001
			}
			res.Diagnostics = append(res.Diagnostics, &lowererrors.Report{
				Schema:  lowererrors.SchemaVersion,
				Code:    code,
				Phase:   "filter",
				Message: fmt.Sprintf("declaration %q unsupported by active backend: %s", d.Name, reason),
				Span:    &d.Span,
			})
			continue
		}
		res.Decls = append(res.Decls, FilterDecl(d, caps))
	}
	return res
}

// FilterDecl erases ghost members from a single declaration's member
// list, returning a shallow copy with the filtered member set (§4.1:
// "drop ghost members entirely"; §4.4 elaborates the member-level rules).
func FilterDecl(d *rir.TopLevelDecl, caps capability.Bits) *rir.TopLevelDecl {
	members := d.Members()
	if members == nil {
		return d
	}

	kept := make([]*rir.Member, 0, len(members))
	for _, m := range members {
		if filtered, ok := FilterMember(m, caps); ok {
			kept = append(kept, filtered)
		}
	}

	out := *d
	switch out.Kind {
	case rir.DeclClass, rir.DeclTrait:
		body := *out.Class
		body.Members = kept
		out.Class = &body
	case rir.DeclIterator:
		body := *out.Iterator
		body.Members = kept
		out.Iterator = &body
	}
	return &out
}

// FilterMember applies §4.4's ghost-erasure rules to one member. It
// returns (nil, false) when the member must be elided entirely.
func FilterMember(m *rir.Member, caps capability.Bits) (*rir.Member, bool) {
	if m.Ghost {
		return nil, false
	}

	// "A method with only ghost out-parameters is elided entirely."
	if m.Kind == rir.MemberMethod && len(m.OutParams) > 0 && allGhost(m.OutParams) {
		return nil, false
	}

	out := *m

	// "A formal is dropped from a method or constructor signature if its
	// ghost flag is set." Functions keep ghost parameters in the RIR
	// signature (the driver substitutes default values at call sites,
	// per §4.4); methods and constructors drop them from the emitted
	// signature outright since there is no result-carrying caller-side
	// substitution to perform.
	if m.Kind == rir.MemberMethod || m.Kind == rir.MemberConstructor {
		out.Formals = nonGhostFormals(m.Formals)
	}

	out.OutParams = nonGhostFormals(m.OutParams)
	return &out, true
}

func allGhost(formals []rir.Formal) bool {
	for _, f := range formals {
		if !f.Ghost {
			return false
		}
	}
	return true
}

func nonGhostFormals(formals []rir.Formal) []rir.Formal {
	out := make([]rir.Formal, 0, len(formals))
	for _, f := range formals {
		if !f.Ghost {
			out = append(out, f)
		}
	}
	return out
}

// GhostParamsOf returns a member's ghost formals, in signature order.
// The driver uses this to substitute each with its type's default value
// at every call site (§4.4: "its ghost parameters are replaced with
// default-value arguments at call sites by the driver, never by the
// backend").
func GhostParamsOf(m *rir.Member) []rir.Formal {
	var out []rir.Formal
	for _, f := range m.Formals {
		if f.Ghost {
			out = append(out, f)
		}
	}
	return out
}
