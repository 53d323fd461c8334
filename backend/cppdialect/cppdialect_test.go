package cppdialect_test

import (
	"testing"

	"github.com/lowerc/lowerc/backend/cppdialect"
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/rir"
)

func TestNewTag(t *testing.T) {
	b := cppdialect.New()
	if b.Tag() != backend.TagCppDialect {
		t.Errorf("Tag() = %s, want %s", b.Tag(), backend.TagCppDialect)
	}
}

func TestNoNativeLabeledLoops(t *testing.T) {
	b := cppdialect.New()
	if b.Capabilities().LabeledLoops {
		t.Error("expected cppdialect to lack native labeled loops")
	}
}

func TestBundledBignumTypes(t *testing.T) {
	b := cppdialect.New()
	if got := b.TypeName(rir.Type{Kind: rir.TInt}); got != "lowerc::BigInt" {
		t.Errorf("TypeName(Int) = %q", got)
	}
	if got := b.TypeName(rir.Type{Kind: rir.TReal}); got != "lowerc::BigRat" {
		t.Errorf("TypeName(Real) = %q", got)
	}
}

func TestArrayNesting(t *testing.T) {
	b := cppdialect.New()
	got := b.TypeName(rir.Type{Kind: rir.TArray, Rank: 2, Elem: &rir.Type{Kind: rir.TInt}})
	want := "std::vector<std::vector<lowerc::BigInt>>"
	if got != want {
		t.Errorf("TypeName(Array2<Int>) = %q, want %q", got, want)
	}
}

func TestRuntimeAsset(t *testing.T) {
	b := cppdialect.New()
	name, content, ok := b.RuntimeAsset()
	if !ok || name != "runtime.hpp" || len(content) == 0 {
		t.Errorf("RuntimeAsset() = %q, %d bytes, ok=%v", name, len(content), ok)
	}
}

// TestExprBinaryNativeArithmetic confirms cppdialect keeps native infix
// syntax for Int/Real arithmetic: lowerc::BigInt/BigRat (runtime.hpp)
// overload +, -, *, and the comparison operators themselves, so no
// BigNumOp override is needed here the way jvmclass/gogc require.
func TestExprBinaryNativeArithmetic(t *testing.T) {
	b := cppdialect.New()
	if got := b.ExprBinary("+", "a", "b", rir.Type{Kind: rir.TInt}); got != "(a + b)" {
		t.Errorf("ExprBinary(+) = %q, want native infix", got)
	}
}

// TestExprBinaryEuclideanIsQualified confirms the Euclidean call carries
// the lowerc:: namespace qualification.
func TestExprBinaryEuclideanIsQualified(t *testing.T) {
	b := cppdialect.New()
	got := b.ExprBinary("/", "a", "b", rir.Type{Kind: rir.TInt})
	if got != "(lowerc::EuclidDiv(a, b))" {
		t.Errorf("ExprBinary(/) = %q, want qualified EuclidDiv call", got)
	}
}
