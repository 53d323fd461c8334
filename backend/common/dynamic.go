package common

import (
	"fmt"
	"strings"

	ibackend "github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
	"github.com/lowerc/lowerc/internal/ident"
	"github.com/lowerc/lowerc/internal/rir"
	"github.com/lowerc/lowerc/internal/runtimeassets"
)

// DynProfile configures the dynamically-typed / prototype-based target
// family (protoscript, dynscript). Unlike Profile, there is no static
// TypeName rendering to speak of: these targets carry no type annotations,
// so DynBackend renders every declaration untyped and leans on the
// target's native dynamic dispatch for everything a class hierarchy would
// otherwise provide.
type DynProfile struct {
	Tag           string
	Capabilities  capability.Bits
	ReservedWords []string
	FileExtension string

	FunctionKeyword string // "function" | "def" | "local function"
	ThisKeyword     string // "this" | "self"
	NullLiteral     string // "null" | "nil" | "None"
	ModuleHeader    func(name string) string
	PrintStatement  func(args []string) string
	// ObjectLiteral renders an object/table literal from ordered
	// name/value pairs; a plain map would make codegen
	// non-deterministic across runs.
	ObjectLiteral func(fields []KV) string
}

// KV is one ordered field of an object literal.
type KV struct {
	Key   string
	Value string
}

// DynBackend implements backend.Backend for a prototype-based / dynamic
// scripting target, driven by a DynProfile. Every value is carried as a
// plain object/array/number; type information that the RIR still supplies
// (e.g. for overload resolution) is erased, matching ErasedGenerics plus
// the interpreted family's runtime representation.
type DynBackend struct {
	Profile  DynProfile
	reserved ident.ReservedWords
}

// NewDynBackend builds a Backend from a DynProfile.
func NewDynBackend(p DynProfile) *DynBackend {
	return &DynBackend{Profile: p, reserved: ident.NewReservedWords(p.ReservedWords...)}
}

func (b *DynBackend) Tag() ibackend.Tag                 { return ibackend.Tag(b.Profile.Tag) }
func (b *DynBackend) Capabilities() capability.Bits      { return b.Profile.Capabilities }
func (b *DynBackend) ReservedWords() map[string]struct{} { return b.reserved }
func (b *DynBackend) IsReservedWord(name string) bool    { return ident.IsReserved(name, b.reserved) }

func (b *DynBackend) sanitize(name string, taken map[string]struct{}) string {
	return ident.Sanitize(name, b.reserved, taken, "_")
}

func (b *DynBackend) CreateFile(arena *emit.Arena, relPath string) ibackend.Scope {
	return ibackend.Scope{W: arena.NewFile(relPath + b.Profile.FileExtension)}
}

func (b *DynBackend) OpenModuleScope(file ibackend.Scope, name string) ibackend.Scope {
	_ = file.W.Write(b.Profile.ModuleHeader(name) + "\n")
	return file
}

// OpenClassScope has no native class keyword in a prototype-based target:
// a "class" lowers to a factory function that builds and returns a plain
// object literal, with methods attached as fields on it.
func (b *DynBackend) OpenClassScope(parent ibackend.Scope, decl *rir.TopLevelDecl, implements []string) (ibackend.Scope, ibackend.Scope) {
	header := fmt.Sprintf("%s make_%s()", b.Profile.FunctionKeyword, b.sanitize(decl.Name, nil))
	body := parent.W.NewBlock(header, "end", openStyleFor(b.Profile.Tag), openStyleFor(b.Profile.Tag))
	fieldPoint := body.Fork()
	_ = body.Write(fmt.Sprintf("return %s\n", b.Profile.ThisKeyword))
	return ibackend.Scope{W: body}, ibackend.Scope{W: fieldPoint}
}

func openStyleFor(tag string) emit.BraceStyle {
	if tag == "protoscript" {
		return emit.SameLine
	}
	return emit.NewLine
}

func (b *DynBackend) OpenMemberScope(class ibackend.Scope, m *rir.Member) ibackend.Scope {
	if m.Body == nil {
		return class
	}
	taken := make(map[string]struct{})
	var params []string
	for _, f := range m.Formals {
		n := b.sanitize(f.Name, taken)
		taken[n] = struct{}{}
		params = append(params, n)
	}
	header := fmt.Sprintf("%s.%s = %s(%s)", b.Profile.ThisKeyword, b.sanitize(m.Name, nil), b.Profile.FunctionKeyword, strings.Join(params, ", "))
	return ibackend.Scope{W: class.W.NewBlock(header, "end", openStyleFor(b.Profile.Tag), openStyleFor(b.Profile.Tag))}
}

func (b *DynBackend) CloseScope(s ibackend.Scope) { s.W.Close() }

func (b *DynBackend) DeclareField(s ibackend.Scope, f rir.Formal, static, mutable bool) ibackend.Scope {
	name := b.sanitize(f.Name, nil)
	target := b.Profile.ThisKeyword + "." + name
	if static {
		target = name
	}
	rhs := s.W.Fork()
	_ = s.W.Write("\n")
	_ = rhs.Write(target + " = ")
	return ibackend.Scope{W: rhs.Fork()}
}

func (b *DynBackend) DeclareLocal(s ibackend.Scope, name string, t rir.Type) emit.Writer {
	_ = s.W.Writef("local %s", b.sanitize(name, nil))
	return s.W
}

func (b *DynBackend) DeclareFormal(sig ibackend.Scope, f rir.Formal) string {
	return b.sanitize(f.Name, nil)
}

// DeclareDatatypeBase lowers to a tag-dispatch table: each constructor
// becomes a make_ function stamping a {tag: "Name", ...fields} object.
func (b *DynBackend) DeclareDatatypeBase(s ibackend.Scope, decl *rir.TopLevelDecl) ibackend.Scope {
	return s
}

func (b *DynBackend) DeclareDatatypeConstructor(base ibackend.Scope, ctor *rir.Constructor) ibackend.Scope {
	taken := make(map[string]struct{})
	var params []string
	for _, f := range ctor.Formals {
		if f.Ghost {
			continue
		}
		n := b.sanitize(f.Name, taken)
		taken[n] = struct{}{}
		params = append(params, n)
	}
	header := fmt.Sprintf("%s make_%s(%s)", b.Profile.FunctionKeyword, b.sanitize(ctor.Name, nil), strings.Join(params, ", "))
	body := base.W.NewBlock(header, "end", openStyleFor(b.Profile.Tag), openStyleFor(b.Profile.Tag))
	fields := []KV{{Key: "tag", Value: fmt.Sprintf("%q", ctor.Name)}}
	for _, p := range params {
		fields = append(fields, KV{Key: p, Value: p})
	}
	_ = body.Writef("return %s\n", b.Profile.ObjectLiteral(fields))
	return ibackend.Scope{W: body}
}

func (b *DynBackend) DeclareNewtype(s ibackend.Scope, decl *rir.TopLevelDecl) ibackend.Scope { return s }

func (b *DynBackend) DeclareSubsetTypeAlias(s ibackend.Scope, decl *rir.TopLevelDecl) ibackend.Scope {
	return s
}

func (b *DynBackend) EmitAssign(s ibackend.Scope, target, value string) {
	_ = s.W.Writef("%s = %s\n", target, value)
}

func (b *DynBackend) EmitMultiAssign(s ibackend.Scope, targets []string, call string) {
	_ = s.W.Writef("local __tup = %s\n", call)
	for i, t := range targets {
		_ = s.W.Writef("%s = __tup[%d]\n", t, i+1)
	}
}

func (b *DynBackend) EmitIf(s ibackend.Scope, cond string) (ibackend.Scope, ibackend.Scope) {
	then := s.W.NewBlock(fmt.Sprintf("if %s then", cond), "end", emit.SameLine, emit.SameLine)
	els := s.W.NewBlock("else", "end", emit.SameLine, emit.SameLine)
	return ibackend.Scope{W: then}, ibackend.Scope{W: els}
}

func (b *DynBackend) EmitWhile(s ibackend.Scope, cond string) ibackend.Scope {
	return ibackend.Scope{W: s.W.NewBlock(fmt.Sprintf("while %s do", cond), "end", emit.SameLine, emit.SameLine)}
}

func (b *DynBackend) EmitForRange(s ibackend.Scope, loopVar, lo, hi string) ibackend.Scope {
	header := fmt.Sprintf("for %s = %s, %s - 1 do", loopVar, lo, hi)
	return ibackend.Scope{W: s.W.NewBlock(header, "end", emit.SameLine, emit.SameLine)}
}

func (b *DynBackend) EmitForCollection(s ibackend.Scope, loopVar, collection string) ibackend.Scope {
	header := fmt.Sprintf("for _, %s in ipairs(%s) do", loopVar, collection)
	return ibackend.Scope{W: s.W.NewBlock(header, "end", emit.SameLine, emit.SameLine)}
}

func (b *DynBackend) EmitLoop(s ibackend.Scope, label string) ibackend.Scope {
	header := "while true do"
	if label != "" {
		header = fmt.Sprintf("while true do -- label: %s", label)
	}
	return ibackend.Scope{W: s.W.NewBlock(header, "end", emit.SameLine, emit.SameLine)}
}

func (b *DynBackend) EmitBreak(s ibackend.Scope, label string) {
	if label == "" {
		_ = s.W.Write("break\n")
		return
	}
	_ = s.W.Writef("%s_broken = true; break\n", label)
}

func (b *DynBackend) EmitReturn(s ibackend.Scope, results []string) {
	if len(results) == 0 {
		_ = s.W.Write("return\n")
		return
	}
	_ = s.W.Writef("return %s\n", strings.Join(results, ", "))
}

func (b *DynBackend) EmitYield(s ibackend.Scope, results []string) {
	_ = s.W.Writef("coroutine.yield(%s)\n", strings.Join(results, ", "))
}

func (b *DynBackend) EmitPrint(s ibackend.Scope, args []string) {
	_ = s.W.Write(b.Profile.PrintStatement(args) + "\n")
}

func (b *DynBackend) EmitCallStmt(s ibackend.Scope, call string) {
	_ = s.W.Writef("%s\n", call)
}

func (b *DynBackend) EmitAbsurd(s ibackend.Scope, reason string) {
	_ = s.W.Writef("error(%q)\n", reason)
}

func (b *DynBackend) ExprLiteral(kind rir.LitKind, value string) string {
	switch kind {
	case rir.LitChar, rir.LitString:
		return "\"" + EscapeStringNonRaw(value) + "\""
	case rir.LitBool:
		return value
	default:
		return value
	}
}

func (b *DynBackend) ExprBinary(op, left, right string, t rir.Type) string {
	if t.Kind == rir.TInt && op == "/" {
		return fmt.Sprintf("(math.floor(%s / %s))", left, right)
	}
	if t.Kind == rir.TInt && op == "%" {
		return fmt.Sprintf("(%s %% %s)", left, right)
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right)
}

func (b *DynBackend) ExprUnary(op, operand string, t rir.Type) string {
	return fmt.Sprintf("(%s%s)", op, operand)
}

func (b *DynBackend) ExprConvert(value string, from, to rir.Type) string {
	return value
}

func (b *DynBackend) ExprCollectionDisplay(kind rir.TypeKind, elements []string) string {
	return fmt.Sprintf("{%s}", strings.Join(elements, ", "))
}

func (b *DynBackend) ExprMapDisplay(keys, values []string) string {
	var parts []string
	for i := range keys {
		parts = append(parts, fmt.Sprintf("[%s] = %s", keys[i], values[i]))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (b *DynBackend) ExprIndexSelect(collection string, indices []string) string {
	var parts []string
	for _, i := range indices {
		parts = append(parts, fmt.Sprintf("[%s]", i))
	}
	return collection + strings.Join(parts, "")
}

func (b *DynBackend) ExprIndexUpdate(collection string, index, value string) string {
	return fmt.Sprintf("table_with(%s, %s, %s)", collection, index, value)
}

func (b *DynBackend) ExprSeqSlice(seq, lo, hi string) string {
	return fmt.Sprintf("table_slice(%s, %s, %s)", seq, lo, hi)
}

func (b *DynBackend) ExprArraySelect(array string, indices []string) string {
	return b.ExprIndexSelect(array, indices)
}

func (b *DynBackend) ExprQuantifier(kind string, bound []rir.Formal, rangeExpr, predicate string) string {
	return fmt.Sprintf("true --[[ %s %v in %s :: %s ]]", kind, bound, rangeExpr, predicate)
}

func (b *DynBackend) ExprComprehension(kind string, bound []rir.Formal, rangeExpr, value string) string {
	return fmt.Sprintf("table_map(%s, function(v) return %s end)", rangeExpr, value)
}

func (b *DynBackend) ExprLambda(params []rir.Formal, body string) string {
	taken := make(map[string]struct{})
	var names []string
	for _, p := range params {
		n := b.sanitize(p.Name, taken)
		taken[n] = struct{}{}
		names = append(names, n)
	}
	return fmt.Sprintf("%s(%s) return %s end", b.Profile.FunctionKeyword, strings.Join(names, ", "), body)
}

func (b *DynBackend) ExprLet(name, value, body string) string {
	return fmt.Sprintf("(function() local %s = %s; return %s end)()", name, value, body)
}

func (b *DynBackend) ExprMatch(scrutinee string, arms []string) string {
	return fmt.Sprintf("match_dispatch(%s, {%s})", scrutinee, strings.Join(arms, ", "))
}

func (b *DynBackend) ExprApply(fn string, args []string) string {
	return fmt.Sprintf("%s(%s)", fn, strings.Join(args, ", "))
}

func (b *DynBackend) ExprFieldAccess(receiver, field string, static bool) string {
	return fmt.Sprintf("%s.%s", receiver, field)
}

func (b *DynBackend) ExprCall(callee string, args []string) string {
	return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
}

func (b *DynBackend) TypeName(t rir.Type) string { return "" }

func (b *DynBackend) NeedsExplicitCast(t rir.Type) bool { return false }

func (b *DynBackend) PostEmit(outputDir, entryFile string, level ibackend.CompileLevel) (string, string, error) {
	return "", "", nil
}

func (b *DynBackend) RuntimeAsset() (string, []byte, bool) {
	return runtimeassets.Get(b.Tag())
}
