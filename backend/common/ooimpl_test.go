package common_test

import (
	"strings"
	"testing"

	"github.com/lowerc/lowerc/backend/common"
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
	"github.com/lowerc/lowerc/internal/rir"
)

func testProfile() common.Profile {
	return common.Profile{
		Tag: "testoo",
		Capabilities: capability.Bits{
			ErasedGenerics:  true,
			NativeIntWidths: []int{8, 16, 32, 64},
			LabeledLoops:    true,
		},
		ReservedWords: []string{"class", "new", "return"},
		FileExtension: ".tst",
		BraceOpen:     emit.SameLine,
		BraceClose:    emit.SameLine,
		BigIntType:    "BigInt",
		BigRealType:   "BigReal",
		BoolType:      "bool",
		CharType:      "char",
		NativeIntType: func(width int) string {
			if width == 32 {
				return "int32"
			}
			return ""
		},
		SeqType:      func(elem string) string { return "Seq<" + elem + ">" },
		SetType:      func(elem string) string { return "Set<" + elem + ">" },
		MultisetType: func(elem string) string { return "Multiset<" + elem + ">" },
		MapType:      func(key, val string) string { return "Map<" + key + "," + val + ">" },
		ArrayType:    func(rank int, elem string) string { return elem + strings.Repeat("[]", rank) },
		ClassKeyword:  "class",
		TraitKeyword:  "interface",
		StaticKeyword: "static",
		ConstKeyword:  "final",
		NullLiteral:   "null",
	}
}

func TestOOBackendIdentity(t *testing.T) {
	b := common.NewOOBackend(testProfile())
	if b.Tag() != backend.Tag("testoo") {
		t.Errorf("Tag() = %s", b.Tag())
	}
	if !b.IsReservedWord("class") {
		t.Error("expected 'class' to be reserved")
	}
	if b.IsReservedWord("widget") {
		t.Error("did not expect 'widget' to be reserved")
	}
}

func TestOOBackendTypeName(t *testing.T) {
	b := common.NewOOBackend(testProfile())
	cases := []struct {
		t    rir.Type
		want string
	}{
		{rir.Type{Kind: rir.TBool}, "bool"},
		{rir.Type{Kind: rir.TInt}, "BigInt"},
		{rir.Type{Kind: rir.TBitvector, NativeBacking: 32}, "int32"},
		{rir.Type{Kind: rir.TBitvector, NativeBacking: 128}, "BigInt"},
		{rir.Type{Kind: rir.TSeq, Elem: &rir.Type{Kind: rir.TInt}}, "Seq<BigInt>"},
	}
	for _, c := range cases {
		if got := b.TypeName(c.t); got != c.want {
			t.Errorf("TypeName(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

// TestOOBackendExprBinaryEuclideanFallback covers a Profile that sets
// neither EuclidDivExpr/EuclidModExpr nor BigNumOp (testProfile()):
// ExprBinary must still produce a working, if unqualified, Euclidean
// call, and must fall back to native infix for every other operator.
// This fallback is only correct for a target whose bignum type actually
// overloads its operators (e.g. clr's BigInteger/decimal) — see
// TestOOBackendExprBinaryBigNumOp below for the method-call override
// path that jvmclass/gogc require instead.
func TestOOBackendExprBinaryEuclideanFallback(t *testing.T) {
	b := common.NewOOBackend(testProfile())
	got := b.ExprBinary("/", "a", "b", rir.Type{Kind: rir.TInt})
	if !strings.Contains(got, "EuclidDiv") {
		t.Errorf("ExprBinary(/) = %q, want EuclidDiv call", got)
	}
	got = b.ExprBinary("%", "a", "b", rir.Type{Kind: rir.TInt})
	if !strings.Contains(got, "EuclidMod") {
		t.Errorf("ExprBinary(%%) = %q, want EuclidMod call", got)
	}
	got = b.ExprBinary("+", "a", "b", rir.Type{Kind: rir.TInt})
	if got != "(a + b)" {
		t.Errorf("ExprBinary(+) = %q", got)
	}
}

// TestOOBackendExprBinaryQualifiedEuclidean covers a Profile that sets
// EuclidDivExpr/EuclidModExpr (every shipped Profile does, per §4.5) —
// the call must carry the target's own qualification, since no backend
// emits a using/import for the runtime namespace.
func TestOOBackendExprBinaryQualifiedEuclidean(t *testing.T) {
	p := testProfile()
	p.EuclidDivExpr = func(left, right string) string { return "Runtime.Arith.EuclidDiv(" + left + ", " + right + ")" }
	p.EuclidModExpr = func(left, right string) string { return "Runtime.Arith.EuclidMod(" + left + ", " + right + ")" }
	b := common.NewOOBackend(p)
	got := b.ExprBinary("/", "a", "b", rir.Type{Kind: rir.TInt})
	if got != "(Runtime.Arith.EuclidDiv(a, b))" {
		t.Errorf("ExprBinary(/) = %q, want qualified EuclidDiv call", got)
	}
	got = b.ExprBinary("%", "a", "b", rir.Type{Kind: rir.TInt})
	if got != "(Runtime.Arith.EuclidMod(a, b))" {
		t.Errorf("ExprBinary(%%) = %q, want qualified EuclidMod call", got)
	}
}

// TestOOBackendExprBinaryBigNumOp covers a Profile whose bignum type has
// no operator overloads at all (java.math.BigInteger/BigDecimal, via
// jvmclass's BigNumOp): ExprBinary must route every arithmetic and
// comparison operator through the method-call form instead of infix,
// since "(a + b)" does not compile for two BigInteger operands.
func TestOOBackendExprBinaryBigNumOp(t *testing.T) {
	p := testProfile()
	p.BigNumOp = func(op string, t rir.Type, left, right string) (string, bool) {
		switch op {
		case "+":
			return left + ".add(" + right + ")", true
		case "==":
			return "(" + left + ".compareTo(" + right + ") == 0)", true
		default:
			return "", false
		}
	}
	b := common.NewOOBackend(p)
	got := b.ExprBinary("+", "a", "b", rir.Type{Kind: rir.TInt})
	if got != "a.add(b)" {
		t.Errorf("ExprBinary(+) = %q, want method-call form", got)
	}
	got = b.ExprBinary("==", "a", "b", rir.Type{Kind: rir.TInt})
	if got != "(a.compareTo(b) == 0)" {
		t.Errorf("ExprBinary(==) = %q, want method-call form", got)
	}
	// An operator BigNumOp declines (ok=false) still falls back to infix.
	got = b.ExprBinary("<<", "a", "b", rir.Type{Kind: rir.TInt})
	if got != "(a << b)" {
		t.Errorf("ExprBinary(<<) = %q, want infix fallback", got)
	}
	// A non-TInt/TReal operand type never consults BigNumOp.
	got = b.ExprBinary("+", "a", "b", rir.Type{Kind: rir.TBool})
	if got != "(a + b)" {
		t.Errorf("ExprBinary(+) on bool = %q, want infix", got)
	}
}

// TestOOBackendExprUnaryBigNumUnary mirrors TestOOBackendExprBinaryBigNumOp
// for unary negation.
func TestOOBackendExprUnaryBigNumUnary(t *testing.T) {
	p := testProfile()
	p.BigNumUnary = func(op string, t rir.Type, operand string) (string, bool) {
		if op == "-" {
			return operand + ".negate()", true
		}
		return "", false
	}
	b := common.NewOOBackend(p)
	got := b.ExprUnary("-", "a", rir.Type{Kind: rir.TInt})
	if got != "a.negate()" {
		t.Errorf("ExprUnary(-) = %q, want method-call form", got)
	}
	got = b.ExprUnary("-", "a", rir.Type{Kind: rir.TBool})
	if got != "(-a)" {
		t.Errorf("ExprUnary(-) on bool = %q, want infix", got)
	}
}

func TestOOBackendExprLiteralEscaping(t *testing.T) {
	b := common.NewOOBackend(testProfile())
	got := b.ExprLiteral(rir.LitString, "hi\nthere")
	if !strings.HasPrefix(got, "\"") || !strings.HasSuffix(got, "\"") {
		t.Errorf("ExprLiteral(string) = %q, want quoted", got)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("ExprLiteral(string) = %q, expected newline escaped", got)
	}
}

func TestOOBackendClassAndMemberEmission(t *testing.T) {
	b := common.NewOOBackend(testProfile())
	arena := emit.NewArena()
	file := b.CreateFile(arena, "Example")
	mod := b.OpenModuleScope(file, "pkg")
	decl := &rir.TopLevelDecl{Kind: rir.DeclClass, Name: "Widget"}
	body, _ := b.OpenClassScope(mod, decl, nil)
	m := &rir.Member{
		Kind:    rir.MemberMethod,
		Name:    "run",
		Static:  true,
		Formals: []rir.Formal{{Name: "x", Type: rir.Type{Kind: rir.TInt}}},
		Body:    &rir.Stmt{},
	}
	memberScope := b.OpenMemberScope(body, m)
	b.EmitReturn(memberScope, nil)
	b.CloseScope(memberScope)
	b.CloseScope(body)
	b.CloseScope(mod)

	out, err := arena.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	content, ok := out["Example.tst"]
	if !ok {
		t.Fatalf("missing output file, got %v", out)
	}
	if !strings.Contains(content, "class Widget") {
		t.Errorf("expected class header, got:\n%s", content)
	}
	if !strings.Contains(content, "static void run(BigInt x)") {
		t.Errorf("expected method signature, got:\n%s", content)
	}
}

func TestOOBackendReservedWordSanitizationInFormals(t *testing.T) {
	b := common.NewOOBackend(testProfile())
	arena := emit.NewArena()
	file := b.CreateFile(arena, "Dup")
	mod := b.OpenModuleScope(file, "pkg")
	decl := &rir.TopLevelDecl{Kind: rir.DeclClass, Name: "Thing"}
	body, _ := b.OpenClassScope(mod, decl, nil)
	m := &rir.Member{
		Kind: rir.MemberMethod,
		Name: "go",
		Formals: []rir.Formal{
			{Name: "new", Type: rir.Type{Kind: rir.TBool}},
		},
		Body: &rir.Stmt{},
	}
	ms := b.OpenMemberScope(body, m)
	b.CloseScope(ms)
	b.CloseScope(body)
	b.CloseScope(mod)
	out, _ := arena.Flush()
	content := out["Dup.tst"]
	if !strings.Contains(content, "new_") {
		t.Errorf("expected reserved word 'new' sanitized to 'new_', got:\n%s", content)
	}
}
