package driver

import (
	"fmt"
	"strings"

	lowererrors "github.com/lowerc/lowerc/internal/errors"
	"github.com/lowerc/lowerc/internal/rir"
)

// MainCandidate identifies one qualifying entry-point declaration (§5).
type MainCandidate struct {
	Module string
	Decl   *rir.TopLevelDecl
	Member *rir.Member
}

// FQName returns the candidate's dotted fully-qualified name, the same
// form accepted by Options.MainOverride and printed in diagnostics.
func (m *MainCandidate) FQName() string {
	return fmt.Sprintf("%s.%s.%s", m.Module, m.Decl.Name, m.Member.Name)
}

// FindMain discovers the program's entry point (§5): a non-ghost method
// or function qualifies when the resolver marked it IsMain (whatever its
// formals), or when it has zero non-ghost formals and is either static
// or belongs to a class instantiable with no required constructor state
// (the resolver's default-class marking). Zero
// qualifying declarations is not an error — the driver then emits a
// library with no runnable entry point. More than one is a fatal
// ambiguity (§7 kind: driver-internal, always aborts).
func FindMain(prog *rir.Program, override string) (*MainCandidate, error) {
	if override != "" {
		return findByOverride(prog, override)
	}

	var found []*MainCandidate
	for _, mod := range prog.Modules {
		for _, d := range mod.Decls {
			for _, m := range d.Members() {
				if qualifiesAsMain(d, m) {
					found = append(found, &MainCandidate{Module: mod.Name, Decl: d, Member: m})
				}
			}
		}
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		var names []string
		for _, f := range found {
			names = append(names, f.FQName())
		}
		rep := lowererrors.Internal("driver", fmt.Sprintf("ambiguous entry point: %s", strings.Join(names, ", ")), nil)
		return nil, lowererrors.Wrap(rep)
	}
}

func qualifiesAsMain(d *rir.TopLevelDecl, m *rir.Member) bool {
	if m.Ghost {
		return false
	}
	if m.Kind != rir.MemberMethod && m.Kind != rir.MemberFunction {
		return false
	}
	if m.IsMain {
		return true
	}
	if nonGhostCount(m.Formals) != 0 {
		return false
	}
	if m.Static {
		return true
	}
	return d.Kind == rir.DeclClass && d.Class != nil && d.Class.IsDefaultClass
}

func nonGhostCount(formals []rir.Formal) int {
	n := 0
	for _, f := range formals {
		if !f.Ghost {
			n++
		}
	}
	return n
}

func findByOverride(prog *rir.Program, fqName string) (*MainCandidate, error) {
	parts := strings.Split(fqName, ".")
	if len(parts) != 3 {
		rep := lowererrors.Internal("driver", fmt.Sprintf("--main must be Module.Decl.Member, got %q", fqName), nil)
		return nil, lowererrors.Wrap(rep)
	}
	modName, declName, memberName := parts[0], parts[1], parts[2]
	for _, mod := range prog.Modules {
		if mod.Name != modName {
			continue
		}
		for _, d := range mod.Decls {
			if d.Name != declName {
				continue
			}
			for _, m := range d.Members() {
				if m.Name == memberName {
					return &MainCandidate{Module: mod.Name, Decl: d, Member: m}, nil
				}
			}
		}
	}
	rep := lowererrors.Internal("driver", fmt.Sprintf("--main target %q not found", fqName), nil)
	return nil, lowererrors.Wrap(rep)
}
