package common

import (
	"fmt"
	"strings"

	ibackend "github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
	"github.com/lowerc/lowerc/internal/ident"
	"github.com/lowerc/lowerc/internal/numeric"
	"github.com/lowerc/lowerc/internal/rir"
	"github.com/lowerc/lowerc/internal/runtimeassets"
)

// OOBackend implements the full §4.2 capability interface once, driven by
// a per-target Profile. jvmclass, clr, and cppdialect each wrap one of
// these with their own Profile rather than re-implementing the interface.
type OOBackend struct {
	Profile  Profile
	reserved ident.ReservedWords
}

// NewOOBackend builds a Backend from a Profile.
func NewOOBackend(p Profile) *OOBackend {
	return &OOBackend{Profile: p, reserved: ident.NewReservedWords(p.ReservedWords...)}
}

func (b *OOBackend) Tag() ibackend.Tag                { return ibackend.Tag(b.Profile.Tag) }
func (b *OOBackend) Capabilities() capability.Bits     { return b.Profile.Capabilities }
func (b *OOBackend) ReservedWords() map[string]struct{} { return b.reserved }
func (b *OOBackend) IsReservedWord(name string) bool   { return ident.IsReserved(name, b.reserved) }

func (b *OOBackend) sanitize(name string, taken map[string]struct{}) string {
	return ident.Sanitize(name, b.reserved, taken, "_")
}

// --- File and scoping ---

func (b *OOBackend) CreateFile(arena *emit.Arena, relPath string) ibackend.Scope {
	return ibackend.Scope{W: arena.NewFile(relPath + b.Profile.FileExtension)}
}

func (b *OOBackend) OpenModuleScope(file ibackend.Scope, name string) ibackend.Scope {
	header := fmt.Sprintf("namespace %s", name)
	if b.Profile.Tag == "jvmclass" {
		header = fmt.Sprintf("package %s", name)
	}
	return ibackend.Scope{W: file.W.NewBlock(header, "}", b.Profile.BraceOpen, b.Profile.BraceClose)}
}

func (b *OOBackend) OpenClassScope(parent ibackend.Scope, decl *rir.TopLevelDecl, implements []string) (ibackend.Scope, ibackend.Scope) {
	kw := b.Profile.ClassKeyword
	if decl.Kind == rir.DeclTrait {
		kw = b.Profile.TraitKeyword
	}
	header := fmt.Sprintf("%s %s", kw, b.sanitize(decl.Name, nil))
	if len(implements) > 0 {
		header += " : " + strings.Join(implements, ", ")
	}
	body := parent.W.NewBlock(header, "}", b.Profile.BraceOpen, b.Profile.BraceClose)
	insertionPoint := body.Fork()
	return ibackend.Scope{W: body}, ibackend.Scope{W: insertionPoint}
}

func (b *OOBackend) OpenMemberScope(class ibackend.Scope, m *rir.Member) ibackend.Scope {
	sig := b.signatureOf(m)
	if m.Body == nil {
		_ = class.W.Writef("%s;\n", sig)
		return ibackend.Scope{W: class.W}
	}
	body := class.W.NewBlock(sig, "}", b.Profile.BraceOpen, b.Profile.BraceClose)
	return ibackend.Scope{W: body}
}

func (b *OOBackend) signatureOf(m *rir.Member) string {
	var parts []string
	if m.Static {
		parts = append(parts, b.Profile.StaticKeyword)
	}
	resultType := "void"
	if m.Kind == rir.MemberFunction {
		resultType = b.TypeName(m.ResultType)
	} else if len(m.OutParams) == 1 {
		resultType = b.TypeName(m.OutParams[0].Type)
	} else if len(m.OutParams) > 1 {
		var outs []string
		for _, o := range m.OutParams {
			outs = append(outs, b.TypeName(o.Type))
		}
		resultType = fmt.Sprintf("Tuple<%s>", strings.Join(outs, ", "))
	}
	parts = append(parts, resultType, b.sanitize(m.Name, nil)+"("+b.formalList(m.Formals)+")")
	return strings.Join(parts, " ")
}

func (b *OOBackend) formalList(formals []rir.Formal) string {
	taken := make(map[string]struct{})
	var parts []string
	for _, f := range formals {
		name := b.sanitize(f.Name, taken)
		taken[name] = struct{}{}
		parts = append(parts, fmt.Sprintf("%s %s", b.TypeName(f.Type), name))
	}
	return strings.Join(parts, ", ")
}

func (b *OOBackend) CloseScope(s ibackend.Scope) {
	s.W.Close()
}

// --- Declarations ---

func (b *OOBackend) DeclareField(s ibackend.Scope, f rir.Formal, static, mutable bool) ibackend.Scope {
	kw := b.Profile.ConstKeyword
	if mutable {
		kw = ""
	}
	staticKw := ""
	if static {
		staticKw = b.Profile.StaticKeyword + " "
	}
	prefix := strings.TrimSpace(fmt.Sprintf("%s%s %s %s", staticKw, kw, b.TypeName(f.Type), b.sanitize(f.Name, nil)))
	rhsPoint := s.W.Fork()
	_ = s.W.Write(";\n")
	_ = rhsPoint.Write(prefix + " = ")
	return ibackend.Scope{W: rhsPoint.Fork()}
}

func (b *OOBackend) DeclareLocal(s ibackend.Scope, name string, t rir.Type) emit.Writer {
	_ = s.W.Writef("%s %s", b.TypeName(t), b.sanitize(name, nil))
	return s.W
}

func (b *OOBackend) DeclareFormal(sig ibackend.Scope, f rir.Formal) string {
	return b.sanitize(f.Name, nil)
}

func (b *OOBackend) DeclareDatatypeBase(s ibackend.Scope, decl *rir.TopLevelDecl) ibackend.Scope {
	header := fmt.Sprintf("abstract %s %s", b.Profile.ClassKeyword, b.sanitize(decl.Name, nil))
	return ibackend.Scope{W: s.W.NewBlock(header, "}", b.Profile.BraceOpen, b.Profile.BraceClose)}
}

func (b *OOBackend) DeclareDatatypeConstructor(base ibackend.Scope, ctor *rir.Constructor) ibackend.Scope {
	nonGhost := make([]rir.Formal, 0, len(ctor.Formals))
	for _, f := range ctor.Formals {
		if !f.Ghost {
			nonGhost = append(nonGhost, f)
		}
	}
	header := fmt.Sprintf("class %s extends Base", b.sanitize(ctor.Name, nil))
	body := base.W.NewBlock(header, "}", b.Profile.BraceOpen, b.Profile.BraceClose)
	for _, f := range nonGhost {
		_ = body.Writef("%s %s %s;\n", b.Profile.ConstKeyword, b.TypeName(f.Type), b.sanitize(f.Name, nil))
	}
	return ibackend.Scope{W: body}
}

func (b *OOBackend) DeclareNewtype(s ibackend.Scope, decl *rir.TopLevelDecl) ibackend.Scope {
	_ = s.W.Writef("using %s = %s;\n", b.sanitize(decl.Name, nil), b.TypeName(decl.Newtype.BaseType))
	return s
}

func (b *OOBackend) DeclareSubsetTypeAlias(s ibackend.Scope, decl *rir.TopLevelDecl) ibackend.Scope {
	_ = s.W.Writef("using %s = %s;\n", b.sanitize(decl.Name, nil), b.TypeName(decl.Subset.BaseType))
	return s
}

// --- Statements ---

func (b *OOBackend) EmitAssign(s ibackend.Scope, target, value string) {
	_ = s.W.Writef("%s = %s;\n", target, value)
}

func (b *OOBackend) EmitMultiAssign(s ibackend.Scope, targets []string, call string) {
	tmp := "__tup"
	_ = s.W.Writef("var %s = %s;\n", tmp, call)
	for i, t := range targets {
		_ = s.W.Writef("%s = %s.Item%d;\n", t, tmp, i+1)
	}
}

func (b *OOBackend) EmitIf(s ibackend.Scope, cond string) (ibackend.Scope, ibackend.Scope) {
	then := s.W.NewBlock(fmt.Sprintf("if (%s)", cond), "}", b.Profile.BraceOpen, b.Profile.BraceClose)
	els := s.W.NewBlock("else", "}", b.Profile.BraceOpen, b.Profile.BraceClose)
	return ibackend.Scope{W: then}, ibackend.Scope{W: els}
}

func (b *OOBackend) EmitWhile(s ibackend.Scope, cond string) ibackend.Scope {
	return ibackend.Scope{W: s.W.NewBlock(fmt.Sprintf("while (%s)", cond), "}", b.Profile.BraceOpen, b.Profile.BraceClose)}
}

func (b *OOBackend) EmitForRange(s ibackend.Scope, loopVar, lo, hi string) ibackend.Scope {
	header := fmt.Sprintf("for (%s %s = %s; %s < %s; %s++)", b.Profile.BigIntType, loopVar, lo, loopVar, hi, loopVar)
	return ibackend.Scope{W: s.W.NewBlock(header, "}", b.Profile.BraceOpen, b.Profile.BraceClose)}
}

func (b *OOBackend) EmitForCollection(s ibackend.Scope, loopVar, collection string) ibackend.Scope {
	header := fmt.Sprintf("for (var %s : %s)", loopVar, collection)
	return ibackend.Scope{W: s.W.NewBlock(header, "}", b.Profile.BraceOpen, b.Profile.BraceClose)}
}

func (b *OOBackend) EmitLoop(s ibackend.Scope, label string) ibackend.Scope {
	header := "while (true)"
	footer := "}"
	if label != "" && !b.Profile.Capabilities.LabeledLoops {
		// Targets without native labels: EmitBreak jumps with a goto to
		// the "<label>_end:" statement placed right after the loop. No
		// sentinel flag is generated.
		header = fmt.Sprintf("while (true) /* label: %s */", label)
		footer = "}\n" + label + "_end:;"
	} else if label != "" {
		header = fmt.Sprintf("%s: while (true)", label)
	}
	return ibackend.Scope{W: s.W.NewBlock(header, footer, b.Profile.BraceOpen, b.Profile.BraceClose)}
}

func (b *OOBackend) EmitBreak(s ibackend.Scope, label string) {
	if label == "" {
		_ = s.W.Write("break;\n")
		return
	}
	if b.Profile.Capabilities.LabeledLoops {
		_ = s.W.Writef("break %s;\n", label)
	} else {
		_ = s.W.Writef("goto %s_end;\n", label)
	}
}

func (b *OOBackend) EmitReturn(s ibackend.Scope, results []string) {
	if len(results) == 0 {
		_ = s.W.Write("return;\n")
		return
	}
	if len(results) == 1 {
		_ = s.W.Writef("return %s;\n", results[0])
		return
	}
	_ = s.W.Writef("return new Tuple(%s);\n", strings.Join(results, ", "))
}

func (b *OOBackend) EmitYield(s ibackend.Scope, results []string) {
	_ = s.W.Writef("yield return %s;\n", strings.Join(results, ", "))
}

func (b *OOBackend) EmitPrint(s ibackend.Scope, args []string) {
	_ = s.W.Writef("System.out.println(%s);\n", strings.Join(args, " + "))
}

func (b *OOBackend) EmitCallStmt(s ibackend.Scope, call string) {
	_ = s.W.Writef("%s;\n", call)
}

func (b *OOBackend) EmitAbsurd(s ibackend.Scope, reason string) {
	_ = s.W.Writef("throw new IllegalStateException(%q);\n", reason)
}

// --- Expressions ---

func (b *OOBackend) ExprLiteral(kind rir.LitKind, value string) string {
	switch kind {
	case rir.LitBool, rir.LitInt, rir.LitReal:
		return value
	case rir.LitChar:
		return "'" + EscapeStringNonRaw(value) + "'"
	case rir.LitBitvector:
		return value
	case rir.LitString:
		return "\"" + EscapeStringNonRaw(value) + "\""
	default:
		return value
	}
}

// ExprBinary fully parenthesizes every binary operation to preserve
// source precedence regardless of the target's own precedence table
// (§4.6: "operator precedence preserved by full parenthesization").
// TInt/TReal route through the Profile's arithmetic hooks rather than
// native infix: the bundled big-number type for some targets (Java's
// BigInteger/BigDecimal) has no operator overloads at all, so "(a + b)"
// on two of them is simply not valid source.
func (b *OOBackend) ExprBinary(op, left, right string, t rir.Type) string {
	if t.Kind == rir.TInt && (op == "/" || op == "%") {
		// Euclidean division/modulus differ from the target's native
		// truncated semantics; emit the adjusted form (§4.5).
		if op == "/" {
			return fmt.Sprintf("(%s)", b.euclidDivExpr(left, right))
		}
		return fmt.Sprintf("(%s)", b.euclidModExpr(left, right))
	}
	if t.Kind == rir.TInt || t.Kind == rir.TReal {
		if b.Profile.BigNumOp != nil {
			if expr, ok := b.Profile.BigNumOp(op, t, left, right); ok {
				return expr
			}
		}
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right)
}

func (b *OOBackend) euclidDivExpr(left, right string) string {
	if b.Profile.EuclidDivExpr != nil {
		return b.Profile.EuclidDivExpr(left, right)
	}
	return fmt.Sprintf("EuclidDiv(%s, %s)", left, right)
}

func (b *OOBackend) euclidModExpr(left, right string) string {
	if b.Profile.EuclidModExpr != nil {
		return b.Profile.EuclidModExpr(left, right)
	}
	return fmt.Sprintf("EuclidMod(%s, %s)", left, right)
}

func (b *OOBackend) ExprUnary(op, operand string, t rir.Type) string {
	if t.Kind == rir.TInt || t.Kind == rir.TReal {
		if b.Profile.BigNumUnary != nil {
			if expr, ok := b.Profile.BigNumUnary(op, t, operand); ok {
				return expr
			}
		}
	}
	return fmt.Sprintf("(%s%s)", op, operand)
}

func (b *OOBackend) ExprConvert(value string, from, to rir.Type) string {
	return fmt.Sprintf("((%s)(%s))", b.TypeName(to), value)
}

func (b *OOBackend) ExprCollectionDisplay(kind rir.TypeKind, elements []string) string {
	ctor := "Seq.of"
	switch kind {
	case rir.TSet:
		ctor = "Set.of"
	case rir.TMultiset:
		ctor = "Multiset.of"
	}
	return fmt.Sprintf("%s(%s)", ctor, strings.Join(elements, ", "))
}

func (b *OOBackend) ExprMapDisplay(keys, values []string) string {
	var parts []string
	for i := range keys {
		parts = append(parts, fmt.Sprintf("Map.entry(%s, %s)", keys[i], values[i]))
	}
	return fmt.Sprintf("Map.ofEntries(%s)", strings.Join(parts, ", "))
}

func (b *OOBackend) ExprIndexSelect(collection string, indices []string) string {
	return fmt.Sprintf("%s.select(%s)", collection, strings.Join(indices, ", "))
}

func (b *OOBackend) ExprIndexUpdate(collection string, index, value string) string {
	return fmt.Sprintf("%s.update(%s, %s)", collection, index, value)
}

func (b *OOBackend) ExprSeqSlice(seq, lo, hi string) string {
	return fmt.Sprintf("%s.subsequence(%s, %s)", seq, lo, hi)
}

func (b *OOBackend) ExprArraySelect(array string, indices []string) string {
	var parts []string
	for _, i := range indices {
		parts = append(parts, fmt.Sprintf("[%s]", i))
	}
	return array + strings.Join(parts, "")
}

func (b *OOBackend) ExprQuantifier(kind string, bound []rir.Formal, rangeExpr, predicate string) string {
	return fmt.Sprintf("/* %s %v in %s :: %s */ true", kind, bound, rangeExpr, predicate)
}

func (b *OOBackend) ExprComprehension(kind string, bound []rir.Formal, rangeExpr, value string) string {
	return fmt.Sprintf("%sFrom(%s, v -> %s)", strings.Title(kind), rangeExpr, value)
}

func (b *OOBackend) ExprLambda(params []rir.Formal, body string) string {
	taken := make(map[string]struct{})
	var names []string
	for _, p := range params {
		n := b.sanitize(p.Name, taken)
		taken[n] = struct{}{}
		names = append(names, n)
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(names, ", "), body)
}

func (b *OOBackend) ExprLet(name, value, body string) string {
	return fmt.Sprintf("((Supplier<Object>)(() -> { var %s = %s; return %s; })).get()", name, value, body)
}

func (b *OOBackend) ExprMatch(scrutinee string, arms []string) string {
	return fmt.Sprintf("matchOn(%s, %s)", scrutinee, strings.Join(arms, ", "))
}

func (b *OOBackend) ExprApply(fn string, args []string) string {
	return fmt.Sprintf("%s.apply(%s)", fn, strings.Join(args, ", "))
}

func (b *OOBackend) ExprFieldAccess(receiver, field string, static bool) string {
	if static {
		return fmt.Sprintf("%s.%s", receiver, field)
	}
	return fmt.Sprintf("%s.%s", receiver, field)
}

func (b *OOBackend) ExprCall(callee string, args []string) string {
	return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
}

// --- Queries ---

func (b *OOBackend) TypeName(t rir.Type) string {
	switch t.Kind {
	case rir.TBool:
		return b.Profile.BoolType
	case rir.TChar:
		return b.Profile.CharType
	case rir.TInt:
		return b.Profile.BigIntType
	case rir.TReal:
		return b.Profile.BigRealType
	case rir.TBitvector:
		if native := b.Profile.NativeIntType(t.NativeBacking); native != "" {
			return native
		}
		return b.Profile.BigIntType
	case rir.TSeq:
		return b.Profile.SeqType(b.TypeName(*t.Elem))
	case rir.TSet:
		return b.Profile.SetType(b.TypeName(*t.Elem))
	case rir.TMultiset:
		return b.Profile.MultisetType(b.TypeName(*t.Elem))
	case rir.TMap:
		return b.Profile.MapType(b.TypeName(*t.Key), b.TypeName(*t.Val))
	case rir.TArray:
		return b.Profile.ArrayType(t.Rank, b.TypeName(*t.Elem))
	case rir.TUserDefined:
		return b.sanitize(t.DeclName, nil)
	case rir.TArrow:
		return "Function"
	case rir.TTypeParameter:
		return b.sanitize(t.ParamName, nil)
	default:
		return "Object"
	}
}

func (b *OOBackend) NeedsExplicitCast(t rir.Type) bool {
	return t.Kind == rir.TBitvector && numeric.NeedsMask(t.Width, t.NativeBacking)
}

// --- Post-emit / runtime ---

func (b *OOBackend) PostEmit(outputDir, entryFile string, level ibackend.CompileLevel) (string, string, error) {
	// No native toolchain is invoked for the OO family backends here:
	// each backend that wants real compilation supplies its own PostEmit
	// by embedding OOBackend and overriding this method.
	return "", "", nil
}

func (b *OOBackend) RuntimeAsset() (string, []byte, bool) {
	return runtimeassets.Get(b.Tag())
}
