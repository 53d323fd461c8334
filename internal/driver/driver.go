package driver

import (
	"strings"
	"time"

	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
	lowererrors "github.com/lowerc/lowerc/internal/errors"
	"github.com/lowerc/lowerc/internal/filter"
	"github.com/lowerc/lowerc/internal/numeric"
	"github.com/lowerc/lowerc/internal/rir"
)

// Result is everything one compile produces: the rendered files keyed by
// relative path, every non-fatal diagnostic accumulated along the way,
// the discovered entry point (nil for a library with none), and the
// wall-clock cost of each phase (§12: phase timing is reported in
// --verify and verbose CLI output, grounded on the teacher's own
// eval_harness timing fields).
type Result struct {
	Files        map[string]string
	Diagnostics  []*lowererrors.Report
	Main         *MainCandidate
	RuntimeFiles map[string]string
	PhaseTimings map[string]time.Duration
}

// Run filters, lowers, and emits an entire Program against one backend.
// It aborts immediately only on a Fatal report (§7); everything else is
// accumulated into Result.Diagnostics so the caller can report as many
// problems as possible in one pass.
func Run(prog *rir.Program, be backend.Backend, opts Options) (*Result, error) {
	opts = opts.WithDefaults()
	res := &Result{PhaseTimings: make(map[string]time.Duration)}

	t0 := time.Now()
	ordered, err := rir.TopoSort(prog)
	if err != nil {
		rep := lowererrors.Internal("driver", err.Error(), nil)
		return nil, lowererrors.Wrap(rep)
	}
	res.PhaseTimings["topo-sort"] = time.Since(t0)

	t1 := time.Now()
	caps := be.Capabilities()
	isBareTrait := traitNameSet(prog)
	filtered := make(map[string][]*rir.TopLevelDecl, len(ordered))
	for _, mod := range ordered {
		fr := filter.Module(mod, caps, unsupportedDecl(caps, isBareTrait))
		filtered[mod.Name] = fr.Decls
		res.Diagnostics = append(res.Diagnostics, fr.Diagnostics...)
	}
	res.PhaseTimings["filter"] = time.Since(t1)

	t2 := time.Now()
	main, err := FindMain(prog, opts.MainOverride)
	if err != nil {
		return nil, err
	}
	res.Main = main
	res.PhaseTimings["main-discovery"] = time.Since(t2)

	t3 := time.Now()
	c := newCtx(be, prog)
	arena := emit.NewArena()
	for _, mod := range ordered {
		file := be.CreateFile(arena, modulePath(mod.Name))
		modScope := be.OpenModuleScope(file, mod.Name)
		for _, d := range filtered[mod.Name] {
			c.lowerDecl(modScope, d)
		}
	}
	files, err := arena.Flush()
	if err != nil {
		rep := lowererrors.Internal("emit", err.Error(), nil)
		return nil, lowererrors.Wrap(rep)
	}
	res.Files = files
	res.PhaseTimings["lowering"] = time.Since(t3)

	t4 := time.Now()
	if name, content, ok := be.RuntimeAsset(); ok {
		res.RuntimeFiles = map[string]string{name: string(content)}
	}
	res.PhaseTimings["runtime-assets"] = time.Since(t4)

	return res, nil
}

func modulePath(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

// traitNameSet builds the bare-trait predicate internal/numeric's
// collection-element check needs: a type counts as a bare trait when it
// names a DeclTrait declaration rather than a class or datatype.
func traitNameSet(prog *rir.Program) func(rir.Type) bool {
	traits := make(map[string]bool)
	for _, mod := range prog.Modules {
		for _, d := range mod.Decls {
			if d.Kind == rir.DeclTrait {
				traits[d.Name] = true
			}
		}
	}
	return func(t rir.Type) bool {
		return t.Kind == rir.TUserDefined && traits[t.DeclName]
	}
}

// unsupportedDecl reports whether a declaration's static shape is one
// the active backend cannot represent at all, as opposed to one the
// backend merely lowers differently (co-data via thunking, bitvectors
// via masking — those are lowering strategies, not rejections, and so
// never appear here). A collection typed over a bare (unsized) trait
// has no such fallback (§4.5): there is no native representation for an
// unsized element in a contiguous collection, so it is rejected outright
// on a backend without TraitTypedCollections.
func unsupportedDecl(caps capability.Bits, isBareTrait func(rir.Type) bool) func(*rir.TopLevelDecl) (string, string, bool) {
	return func(d *rir.TopLevelDecl) (string, string, bool) {
		// A co-inductive datatype on a backend without native co-data is
		// never rejected: the driver always has a fallback (lazy
		// thunking), so there is no branch for that case here.

		if d.Kind == rir.DeclDatatype && d.Datatype != nil {
			for _, ctor := range d.Datatype.Constructors {
				for _, f := range ctor.Formals {
					if err := checkCollectionType(f.Type, isBareTrait, caps); err != nil {
						return lowererrors.FLT002, err.Error(), true
					}
				}
			}
		}

		for _, m := range d.Members() {
			for _, f := range m.Formals {
				if err := checkCollectionType(f.Type, isBareTrait, caps); err != nil {
					return lowererrors.FLT002, err.Error(), true
				}
			}
			if err := checkCollectionType(m.ResultType, isBareTrait, caps); err != nil {
				return lowererrors.FLT002, err.Error(), true
			}
		}
		return "", "", false
	}
}

// checkCollectionType walks a type looking for a collection whose
// element is a bare trait, handing each collection's element type to
// internal/numeric.CheckCollectionElement (which only judges the one
// element type it's given, not the collection wrapper around it).
func checkCollectionType(t rir.Type, isBareTrait func(rir.Type) bool, caps capability.Bits) error {
	switch t.Kind {
	case rir.TSet, rir.TSeq, rir.TMultiset, rir.TArray:
		if t.Elem == nil {
			return nil
		}
		if err := numeric.CheckCollectionElement(*t.Elem, isBareTrait, caps); err != nil {
			return err
		}
		return checkCollectionType(*t.Elem, isBareTrait, caps)
	case rir.TMap:
		if t.Key != nil {
			if err := numeric.CheckCollectionElement(*t.Key, isBareTrait, caps); err != nil {
				return err
			}
		}
		if t.Val != nil {
			if err := numeric.CheckCollectionElement(*t.Val, isBareTrait, caps); err != nil {
				return err
			}
			return checkCollectionType(*t.Val, isBareTrait, caps)
		}
	}
	return nil
}

// lowerDecl dispatches on a declaration's kind.
func (c *ctx) lowerDecl(modScope backend.Scope, d *rir.TopLevelDecl) {
	switch d.Kind {
	case rir.DeclClass, rir.DeclTrait, rir.DeclIterator:
		c.lowerClassLike(modScope, d)
	case rir.DeclDatatype:
		c.lowerDatatype(modScope, d)
	case rir.DeclNewtype:
		c.be.DeclareNewtype(modScope, d)
	case rir.DeclSubsetType:
		c.be.DeclareSubsetTypeAlias(modScope, d)
	}
}

func (c *ctx) lowerClassLike(modScope backend.Scope, d *rir.TopLevelDecl) {
	implements := d.Class.ImplementedTraits
	if d.Kind == rir.DeclIterator {
		implements = nil
	}
	body, fields := c.be.OpenClassScope(modScope, d, implements)
	for _, m := range d.Members() {
		switch m.Kind {
		case rir.MemberField, rir.MemberConst:
			c.lowerFieldOrConst(fields, m)
		case rir.MemberMethod, rir.MemberFunction, rir.MemberConstructor:
			c.lowerCallable(body, d, m)
		}
	}
	c.be.CloseScope(body)
}

func (c *ctx) lowerFieldOrConst(fields backend.Scope, m *rir.Member) {
	formal := rir.Formal{Name: m.Name, Type: m.ResultType}
	rhs := c.be.DeclareField(fields, formal, m.Static, m.Kind == rir.MemberField)

	value := m.RHS
	if m.Kind == rir.MemberConst {
		value = filter.EraseGhostConst(m, mentionsGhost, DefaultValue)
	}
	if value == nil {
		value = DefaultValue(m.ResultType)
	}
	_ = rhs.W.Write(c.lowerExpr(value))
}

func (c *ctx) lowerCallable(classScope backend.Scope, d *rir.TopLevelDecl, m *rir.Member) {
	body := RewriteTailCalls(m.Body, d.ID, m)
	scope := c.be.OpenMemberScope(classScope, m)
	if m.Body == nil {
		return
	}
	if m.TailRecursive {
		// RewriteTailCalls turned the self-call into parameter
		// reassignment on the assumption that falling off the end of
		// this block loops back around; wrap it in that loop here, or
		// the rewritten body just runs once and returns.
		loop := c.be.EmitLoop(scope, "")
		c.lowerStmt(body, loop)
		c.be.CloseScope(loop)
	} else {
		c.lowerStmt(body, scope)
	}
	c.be.CloseScope(scope)
}

func (c *ctx) lowerDatatype(modScope backend.Scope, d *rir.TopLevelDecl) {
	base := c.be.DeclareDatatypeBase(modScope, d)
	for _, ctor := range d.Datatype.Constructors {
		c.be.DeclareDatatypeConstructor(base, ctor)
	}
	c.be.CloseScope(base)
}

// DiagnosticsJSON renders every accumulated diagnostic as its own JSON
// document, one string per diagnostic; `lowerc compile --json` joins
// them into a JSON array.
func (r *Result) DiagnosticsJSON(compact bool) ([]string, error) {
	out := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		s, err := d.ToJSON(compact)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
