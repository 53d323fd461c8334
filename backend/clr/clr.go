// Package clr targets a CLR-hosted, class-based object language (the
// shape of C# output): generics are reified rather than erased, and the
// unbounded numeric types back onto System.Numerics.BigInteger and a
// decimal-backed big-rational helper.
package clr

import (
	"fmt"

	"github.com/lowerc/lowerc/backend/common"
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
)

var reservedWords = []string{
	"abstract", "as", "base", "bool", "break", "byte", "case", "catch",
	"char", "checked", "class", "const", "continue", "decimal", "default",
	"delegate", "do", "double", "else", "enum", "event", "explicit",
	"extern", "false", "finally", "fixed", "float", "for", "foreach",
	"goto", "if", "implicit", "in", "int", "interface", "internal", "is",
	"lock", "long", "namespace", "new", "null", "object", "operator",
	"out", "override", "params", "private", "protected", "public",
	"readonly", "ref", "return", "sbyte", "sealed", "short", "sizeof",
	"stackalloc", "static", "string", "struct", "switch", "this", "throw",
	"true", "try", "typeof", "uint", "ulong", "unchecked", "unsafe",
	"ushort", "using", "virtual", "void", "volatile", "while", "var",
	"record", "yield",
}

func nativeIntType(width int) string {
	switch {
	case width <= 8:
		return "byte"
	case width <= 16:
		return "short"
	case width <= 32:
		return "int"
	case width <= 64:
		return "long"
	default:
		return ""
	}
}

func profile() common.Profile {
	return common.Profile{
		Tag: string(backend.TagCLR),
		Capabilities: capability.Bits{
			ErasedGenerics:        false,
			NativeIntWidths:       []int{8, 16, 32, 64},
			TraitTypedCollections: true,
			NativeCoData:          false,
			LabeledLoops:          true,
			MaxNativeTupleArity:   8,
			StringRepresentation:  capability.StringAsObject,
		},
		ReservedWords: reservedWords,
		FileExtension: ".cs",
		BraceOpen:     emit.NewLine,
		BraceClose:    emit.NewLine,
		BigIntType:    "System.Numerics.BigInteger",
		BigRealType:   "decimal",
		BoolType:      "bool",
		CharType:      "char",
		NativeIntType: nativeIntType,
		SeqType:       func(elem string) string { return "System.Collections.Immutable.ImmutableList<" + elem + ">" },
		SetType:       func(elem string) string { return "System.Collections.Immutable.ImmutableHashSet<" + elem + ">" },
		MultisetType:  func(elem string) string { return "System.Collections.Immutable.ImmutableDictionary<" + elem + ",int>" },
		MapType: func(key, val string) string {
			return "System.Collections.Immutable.ImmutableDictionary<" + key + "," + val + ">"
		},
		ArrayType: func(rank int, elem string) string {
			dims := ""
			for i := 1; i < rank; i++ {
				dims += ","
			}
			if rank > 1 {
				return elem + "[" + dims + "]"
			}
			return elem + "[]"
		},
		ClassKeyword:  "class",
		TraitKeyword:  "interface",
		StaticKeyword: "static",
		ConstKeyword:  "readonly",
		NullLiteral:   "null",
		EuclidDivExpr: func(left, right string) string {
			return fmt.Sprintf("Lowerc.Runtime.Arith.EuclidDiv(%s, %s)", left, right)
		},
		EuclidModExpr: func(left, right string) string {
			return fmt.Sprintf("Lowerc.Runtime.Arith.EuclidMod(%s, %s)", left, right)
		},
	}
}

// New returns the clr Backend.
func New() backend.Backend {
	return common.NewOOBackend(profile())
}
