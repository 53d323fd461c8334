// Package jvmclass targets a JVM-hosted, class-based object language
// (the shape of Java/Scala/Kotlin output): checked exceptions are not
// modeled, boxed BigInteger/BigDecimal back the unbounded numeric types,
// and generics erase at compile time.
package jvmclass

import (
	"fmt"

	"github.com/lowerc/lowerc/backend/common"
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
	"github.com/lowerc/lowerc/internal/rir"
)

var reservedWords = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "final", "finally", "float", "for", "goto", "if", "implements",
	"import", "instanceof", "int", "interface", "long", "native", "new",
	"package", "private", "protected", "public", "return", "short", "static",
	"strictfp", "super", "switch", "synchronized", "this", "throw", "throws",
	"transient", "try", "void", "volatile", "while", "var", "record", "yield",
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

// bigNumOp renders java.math.BigInteger/BigDecimal arithmetic: neither
// type overloads a single operator, so every use of +, -, *, /, or a
// comparison on Int/Real must go through a method call instead.
func bigNumOp(op string, t rir.Type, left, right string) (string, bool) {
	switch op {
	case "+":
		return fmt.Sprintf("%s.add(%s)", left, right), true
	case "-":
		return fmt.Sprintf("%s.subtract(%s)", left, right), true
	case "*":
		return fmt.Sprintf("%s.multiply(%s)", left, right), true
	case "/":
		if t.Kind == rir.TReal {
			return fmt.Sprintf("%s.divide(%s, java.math.MathContext.DECIMAL128)", left, right), true
		}
		return fmt.Sprintf("%s.divide(%s)", left, right), true
	case "==":
		return fmt.Sprintf("(%s.compareTo(%s) == 0)", left, right), true
	case "!=":
		return fmt.Sprintf("(%s.compareTo(%s) != 0)", left, right), true
	case "<":
		return fmt.Sprintf("(%s.compareTo(%s) < 0)", left, right), true
	case ">":
		return fmt.Sprintf("(%s.compareTo(%s) > 0)", left, right), true
	case "<=":
		return fmt.Sprintf("(%s.compareTo(%s) <= 0)", left, right), true
	case ">=":
		return fmt.Sprintf("(%s.compareTo(%s) >= 0)", left, right), true
	default:
		return "", false
	}
}

func bigNumUnary(op string, t rir.Type, operand string) (string, bool) {
	if op == "-" {
		return fmt.Sprintf("%s.negate()", operand), true
	}
	return "", false
}

func profile() common.Profile {
	return common.Profile{
		Tag: string(backend.TagJVMClass),
		Capabilities: capability.Bits{
			ErasedGenerics:        true,
			NativeIntWidths:       []int{8, 16, 32, 64},
			TraitTypedCollections: true,
			NativeCoData:          false,
			LabeledLoops:          true,
			MaxNativeTupleArity:   0,
			StringRepresentation:  capability.StringAsObject,
		},
		ReservedWords: reservedWords,
		FileExtension: ".java",
		BraceOpen:     emit.SameLine,
		BraceClose:    emit.SameLine,
		BigIntType:    "java.math.BigInteger",
		BigRealType:   "java.math.BigDecimal",
		BoolType:      "boolean",
		CharType:      "char",
		NativeIntType: nativeIntType,
		SeqType:       func(elem string) string { return "java.util.List<" + elem + ">" },
		SetType:       func(elem string) string { return "java.util.Set<" + elem + ">" },
		MultisetType:  func(elem string) string { return "java.util.Map<" + elem + ",Integer>" },
		MapType:       func(key, val string) string { return "java.util.Map<" + key + "," + val + ">" },
		ArrayType: func(rank int, elem string) string {
			out := elem
			for i := 0; i < rank; i++ {
				out += "[]"
			}
			return out
		},
		ClassKeyword:  "class",
		TraitKeyword:  "interface",
		StaticKeyword: "static",
		ConstKeyword:  "final",
		NullLiteral:   "null",
		EuclidDivExpr: func(left, right string) string {
			return fmt.Sprintf("lowerc.runtime.Runtime.euclidDiv(%s, %s)", left, right)
		},
		EuclidModExpr: func(left, right string) string {
			return fmt.Sprintf("lowerc.runtime.Runtime.euclidMod(%s, %s)", left, right)
		},
		BigNumOp:    bigNumOp,
		BigNumUnary: bigNumUnary,
	}
}

// New returns the jvmclass Backend.
func New() backend.Backend {
	return common.NewOOBackend(profile())
}
