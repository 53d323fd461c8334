// Package cppdialect targets a C++ dialect with manual memory discipline
// smoothed over by shared_ptr for class types: generics become class
// templates, and the unbounded numeric types lower onto a bundled
// bignum header rather than a standard-library type (the C++ standard
// has none).
package cppdialect

import (
	"fmt"

	"github.com/lowerc/lowerc/backend/common"
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
)

var reservedWords = []string{
	"alignas", "alignof", "and", "asm", "auto", "bool", "break", "case",
	"catch", "char", "class", "concept", "const", "consteval", "constexpr",
	"continue", "decltype", "default", "delete", "do", "double", "else",
	"enum", "explicit", "export", "extern", "false", "float", "for",
	"friend", "goto", "if", "inline", "int", "long", "mutable",
	"namespace", "new", "noexcept", "nullptr", "operator", "private",
	"protected", "public", "register", "requires", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "template", "this",
	"throw", "true", "try", "typedef", "typename", "union", "unsigned",
	"using", "virtual", "void", "volatile", "while",
}

func nativeIntType(width int) string {
	switch {
	case width <= 8:
		return "int8_t"
	case width <= 16:
		return "int16_t"
	case width <= 32:
		return "int32_t"
	case width <= 64:
		return "int64_t"
	default:
		return ""
	}
}

func profile() common.Profile {
	return common.Profile{
		Tag: string(backend.TagCppDialect),
		Capabilities: capability.Bits{
			ErasedGenerics:        false,
			NativeIntWidths:       []int{8, 16, 32, 64},
			TraitTypedCollections: false,
			NativeCoData:          false,
			LabeledLoops:          false,
			MaxNativeTupleArity:   0,
			StringRepresentation:  capability.StringAsObject,
		},
		ReservedWords: reservedWords,
		FileExtension: ".cpp",
		BraceOpen:     emit.NewLine,
		BraceClose:    emit.NewLine,
		BigIntType:    "lowerc::BigInt",
		BigRealType:   "lowerc::BigRat",
		BoolType:      "bool",
		CharType:      "char32_t",
		NativeIntType: nativeIntType,
		SeqType:       func(elem string) string { return "lowerc::Seq<" + elem + ">" },
		SetType:       func(elem string) string { return "lowerc::Set<" + elem + ">" },
		MultisetType:  func(elem string) string { return "lowerc::Multiset<" + elem + ">" },
		MapType:       func(key, val string) string { return "lowerc::Map<" + key + "," + val + ">" },
		ArrayType: func(rank int, elem string) string {
			out := elem
			for i := 0; i < rank; i++ {
				out = "std::vector<" + out + ">"
			}
			return out
		},
		ClassKeyword:  "class",
		TraitKeyword:  "class",
		StaticKeyword: "static",
		ConstKeyword:  "const",
		NullLiteral:   "nullptr",
		EuclidDivExpr: func(left, right string) string {
			return fmt.Sprintf("lowerc::EuclidDiv(%s, %s)", left, right)
		},
		EuclidModExpr: func(left, right string) string {
			return fmt.Sprintf("lowerc::EuclidMod(%s, %s)", left, right)
		},
	}
}

// New returns the cppdialect Backend. Because LabeledLoops is false,
// the shared OO backend emulates break-to-label with a goto to a label
// placed after the loop rather than a native labeled break; it does not
// use a sentinel-flag loop.
func New() backend.Backend {
	return common.NewOOBackend(profile())
}
