// Package backend defines the capability interface every concrete target
// implements (§4.2): the contract the lowering driver programs against,
// independent of which of the six target languages is active. A backend
// is a record of methods (never a class hierarchy the driver downcasts
// into), per the redesign note in spec.md §9.
package backend

import (
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
	"github.com/lowerc/lowerc/internal/rir"
)

// Scope is a weak handle into the emission substrate at which a backend
// operation should write. It wraps a single emit.Writer; an operation
// that also hands back an insertion point (e.g. a forward-declared-fields
// gap) returns it as a second Scope.
type Scope struct {
	W emit.Writer
}

// Tag identifies one of the six supported targets.
type Tag string

const (
	TagJVMClass    Tag = "jvmclass"
	TagCLR         Tag = "clr"
	TagGoGC        Tag = "gogc"
	TagProtoScript Tag = "protoscript"
	TagDynScript   Tag = "dynscript"
	TagCppDialect  Tag = "cppdialect"
)

// AllTags lists every supported target tag, in the stable order used for
// any "all targets" iteration (e.g. the Testable Properties cross-target
// comparison in §8).
var AllTags = []Tag{TagJVMClass, TagCLR, TagGoGC, TagProtoScript, TagDynScript, TagCppDialect}

// Backend is the capability interface of §4.2. Every method takes the
// scope it writes into and returns either nothing, a child Scope, or a
// child Scope plus a separate insertion-point Scope for later backfill
// (declared fields, imports).
type Backend interface {
	Tag() Tag
	Capabilities() capability.Bits
	ReservedWords() map[string]struct{}

	// --- File and scoping ---

	CreateFile(arena *emit.Arena, relPath string) Scope
	OpenModuleScope(file Scope, name string) Scope
	OpenClassScope(parent Scope, decl *rir.TopLevelDecl, implements []string) (body Scope, insertionPoint Scope)
	OpenMemberScope(class Scope, m *rir.Member) Scope
	CloseScope(s Scope)

	// --- Declarations ---

	DeclareField(s Scope, f rir.Formal, static, mutable bool) (rhs Scope)
	DeclareLocal(s Scope, name string, t rir.Type) emit.Writer
	DeclareFormal(sig Scope, f rir.Formal) string // returns the (possibly sanitized) emitted name
	DeclareDatatypeBase(s Scope, decl *rir.TopLevelDecl) Scope
	DeclareDatatypeConstructor(base Scope, ctor *rir.Constructor) Scope
	DeclareNewtype(s Scope, decl *rir.TopLevelDecl) Scope
	DeclareSubsetTypeAlias(s Scope, decl *rir.TopLevelDecl) Scope

	// --- Statements ---

	EmitAssign(s Scope, target, value string)
	EmitMultiAssign(s Scope, targets []string, call string)
	EmitIf(s Scope, cond string) (then Scope, els Scope)
	EmitWhile(s Scope, cond string) Scope
	EmitForRange(s Scope, loopVar, lo, hi string) Scope
	EmitForCollection(s Scope, loopVar, collection string) Scope
	EmitLoop(s Scope, label string) Scope
	EmitBreak(s Scope, label string)
	EmitReturn(s Scope, results []string)
	EmitYield(s Scope, results []string)
	EmitPrint(s Scope, args []string)
	EmitCallStmt(s Scope, call string)
	EmitAbsurd(s Scope, reason string)

	// --- Expressions (each returns the rendered target-language text) ---

	ExprLiteral(kind rir.LitKind, value string) string
	ExprBinary(op, left, right string, t rir.Type) string
	ExprUnary(op, operand string, t rir.Type) string
	ExprConvert(value string, from, to rir.Type) string
	ExprCollectionDisplay(kind rir.TypeKind, elements []string) string
	ExprMapDisplay(keys, values []string) string
	ExprIndexSelect(collection string, indices []string) string
	ExprIndexUpdate(collection string, index, value string) string
	ExprSeqSlice(seq, lo, hi string) string
	ExprArraySelect(array string, indices []string) string
	ExprQuantifier(kind string, bound []rir.Formal, rangeExpr, predicate string) string
	ExprComprehension(kind string, bound []rir.Formal, rangeExpr, value string) string
	ExprLambda(params []rir.Formal, body string) string
	ExprLet(name, value, body string) string
	ExprMatch(scrutinee string, arms []string) string
	ExprApply(fn string, args []string) string
	ExprFieldAccess(receiver, field string, static bool) string
	ExprCall(callee string, args []string) string

	// --- Queries ---

	TypeName(t rir.Type) string
	NeedsExplicitCast(t rir.Type) bool
	IsReservedWord(name string) bool

	// --- Post-emit ---

	// PostEmit optionally invokes the target's native compiler/assembler/
	// runner. Returns captured stdout/stderr and an error on non-zero
	// exit (§7 kind 4). A backend whose compile level requests source
	// only may implement this as a no-op.
	PostEmit(outputDir string, entryFile string, level CompileLevel) (stdout, stderr string, err error)

	// RuntimeAsset returns the embedded runtime source blob for this
	// target, copied verbatim into the output tree (§6).
	RuntimeAsset() (name string, content []byte, ok bool)
}

// CompileLevel mirrors the CLI's compile-level option (§6).
type CompileLevel int

const (
	LevelNone CompileLevel = iota
	LevelSourceOnly
	LevelCompile
	LevelCompileAndRun
)
