package driver

import "github.com/lowerc/lowerc/internal/rir"

// DefaultValue computes the default-value expression for a type (§4.1):
// used both to materialize a dropped ghost formal's call-site argument
// (§4.4) and to initialize a struct field or local variable that the
// source RIR left uninitialized. Recursion follows the type's own shape;
// collections get their empty display, class types get a null literal
// handled by the backend's NullLiteral/TypeName pairing instead (this
// function never needs to know it, since ExprLiteral/ExprCollectionDisplay
// are the only things it calls into).
func DefaultValue(t rir.Type) *rir.Expr {
	switch t.Kind {
	case rir.TBool:
		return &rir.Expr{Kind: rir.ELiteral, ResolvedType: t, LitKind: rir.LitBool, LitValue: "false"}
	case rir.TChar:
		return &rir.Expr{Kind: rir.ELiteral, ResolvedType: t, LitKind: rir.LitChar, LitValue: "\x00"}
	case rir.TInt:
		return &rir.Expr{Kind: rir.ELiteral, ResolvedType: t, LitKind: rir.LitInt, LitValue: "0"}
	case rir.TReal:
		return &rir.Expr{Kind: rir.ELiteral, ResolvedType: t, LitKind: rir.LitReal, LitValue: "0.0"}
	case rir.TBitvector:
		return &rir.Expr{Kind: rir.ELiteral, ResolvedType: t, LitKind: rir.LitBitvector, LitValue: "0"}
	case rir.TSet, rir.TSeq, rir.TMultiset:
		return &rir.Expr{Kind: rir.ECollectionDisplay, ResolvedType: t}
	case rir.TMap:
		return &rir.Expr{Kind: rir.EMapDisplay, ResolvedType: t}
	case rir.TArray:
		return &rir.Expr{Kind: rir.ECollectionDisplay, ResolvedType: t}
	default:
		// UserDefined (class/trait/datatype), Arrow, TypeParameter: the
		// backend's own null/absent literal. The Var-like sentinel name
		// "" signals "emit your NullLiteral" to the lowering of
		// ELiteral for a non-literal-kind expr; lowerExpr special-cases
		// this via ResolvedType.Kind switch rather than a LitKind, since
		// LitKind has no "null" variant of its own in the RIR wire format.
		return &rir.Expr{Kind: rir.ELiteral, ResolvedType: t, LitValue: ""}
	}
}
