// Package common factors out the lexical and structural rules shared by
// the class-based, curly-brace target families (§11 of SPEC_FULL.md:
// jvmclass, clr, cppdialect). Each of those backend packages supplies a
// Profile describing its own lexical grammar; common.OOBackend implements
// the full §4.2 capability interface once against that profile, so no
// backend operation is ever left stubbed (§14's Open Question resolution)
// while each target's actual wording stays bespoke and data-driven rather
// than copy-pasted six times.
package common

import (
	"github.com/lowerc/lowerc/internal/capability"
	"github.com/lowerc/lowerc/internal/emit"
	"github.com/lowerc/lowerc/internal/rir"
)

// Profile is one target language's lexical and structural configuration.
type Profile struct {
	Tag          string
	Capabilities capability.Bits
	ReservedWords []string

	// FileExtension is appended to every generated source file, e.g. ".java".
	FileExtension string

	// BraceOpen/BraceClose select same-line vs newline framing for class
	// and member bodies (§4.6 per-target emission rules).
	BraceOpen  emit.BraceStyle
	BraceClose emit.BraceStyle

	// BigIntType/BigRealType/BoolType/CharType are the target's native
	// spellings for the arbitrary-precision and primitive scalar types.
	BigIntType  string
	BigRealType string
	BoolType    string
	CharType    string

	// NativeIntType returns the native integer type name for a given bit
	// width, or "" if the target has no such native width.
	NativeIntType func(width int) string

	// SeqType/SetType/MultisetType/MapType/ArrayType render a collection
	// type name given its already-rendered element type name(s).
	SeqType      func(elem string) string
	SetType      func(elem string) string
	MultisetType func(elem string) string
	MapType      func(key, val string) string
	ArrayType    func(rank int, elem string) string

	// ClassKeyword/TraitKeyword/StaticKeyword/ConstKeyword give the
	// target's own vocabulary for the structural declarations.
	ClassKeyword  string
	TraitKeyword  string
	StaticKeyword string
	ConstKeyword  string

	// NullLiteral is the target's class-type default/"absent" literal.
	NullLiteral string

	// EscapeChar escapes one rune for this target's non-raw string/char
	// literal lexical rules (§9's resolved Open Question: every backend
	// follows the non-raw escaping rules uniformly).
	EscapeChar func(r rune) string

	// EuclidDivExpr/EuclidModExpr render a fully-qualified call to this
	// target's bundled Euclidean division/modulus helper (§4.5). No
	// backend inserts a using/import for the runtime namespace
	// (CreateFile/OpenModuleScope only ever open the *module's* own
	// namespace), so the call must carry its own qualification. Nil
	// falls back to an unqualified "EuclidDiv"/"EuclidMod" call.
	EuclidDivExpr func(left, right string) string
	EuclidModExpr func(left, right string) string

	// BigNumOp renders a TInt/TReal binary operator as a method call
	// instead of native infix syntax, for a target whose arbitrary-
	// precision type has no operator overloads at all (§4.6) — e.g.
	// Java's BigInteger/BigDecimal. Returns ok=false to fall back to
	// infix, for operators (or targets) the big-number type already
	// overloads. Nil means every operator falls back to infix.
	BigNumOp func(op string, t rir.Type, left, right string) (expr string, ok bool)

	// BigNumUnary is BigNumOp's unary counterpart, for negation on a
	// big-number type with no unary operator overload.
	BigNumUnary func(op string, t rir.Type, operand string) (expr string, ok bool)
}
