package driver

import (
	"github.com/lowerc/lowerc/internal/backend"
	"github.com/lowerc/lowerc/internal/filter"
	"github.com/lowerc/lowerc/internal/rir"
)

// ctx carries the read-only state every lowerExpr/lowerStmt call needs:
// the active backend and a way to resolve a call's callee member so
// ghost-parameter substitution (§4.4) can align argument positions.
type ctx struct {
	be      backend.Backend
	byID    map[rir.DeclID]*rir.TopLevelDecl
	curLoop []string // enclosing loop labels, innermost last (for bare `break`)
}

func newCtx(be backend.Backend, prog *rir.Program) *ctx {
	return &ctx{be: be, byID: prog.ByID()}
}

func (c *ctx) memberOf(declID rir.DeclID, name string) *rir.Member {
	if declID == rir.NoDecl {
		return nil
	}
	d, ok := c.byID[declID]
	if !ok {
		return nil
	}
	for _, m := range d.Members() {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// lowerExpr renders e into the active backend's target-language text.
// Ghost-scrutinee matches are resolved to their taken arm before any
// backend method is consulted, per §4.4.
func (c *ctx) lowerExpr(e *rir.Expr) string {
	if e == nil {
		return ""
	}
	if e.Kind == rir.EMatch {
		if resolved := filter.ResolveGhostMatch(e); resolved != nil {
			return c.lowerExpr(resolved)
		}
	}

	switch e.Kind {
	case rir.ELiteral:
		if e.LitValue == "" && e.ResolvedType.Kind == rir.TUserDefined {
			return c.be.TypeName(e.ResolvedType) // unused in practice; NullLiteral path below is preferred
		}
		return c.be.ExprLiteral(e.LitKind, e.LitValue)
	case rir.EVar:
		if e.Receiver != nil {
			return c.be.ExprFieldAccess(c.lowerExpr(e.Receiver), e.Name, e.IsStatic)
		}
		return e.Name
	case rir.EBinary:
		return c.be.ExprBinary(e.Op, c.lowerExpr(e.Left), c.lowerExpr(e.Right), e.ResolvedType)
	case rir.EUnary:
		return c.be.ExprUnary(e.Op, c.lowerExpr(e.Operand), e.ResolvedType)
	case rir.EConvert:
		from := e.ResolvedType
		if e.Operand != nil {
			from = e.Operand.ResolvedType
		}
		to := from
		if e.TargetType != nil {
			to = *e.TargetType
		}
		return c.be.ExprConvert(c.lowerExpr(e.Operand), from, to)
	case rir.ECollectionDisplay:
		return c.be.ExprCollectionDisplay(e.ResolvedType.Kind, c.lowerExprs(e.Elements))
	case rir.EMapDisplay:
		var keys, vals []string
		for _, entry := range e.MapEntries {
			keys = append(keys, c.lowerExpr(entry.Key))
			vals = append(vals, c.lowerExpr(entry.Value))
		}
		return c.be.ExprMapDisplay(keys, vals)
	case rir.EIndexSelect:
		return c.be.ExprIndexSelect(c.lowerExpr(e.Collection), c.lowerExprs(e.Indices))
	case rir.EIndexUpdate:
		return c.be.ExprIndexUpdate(c.lowerExpr(e.Collection), c.lowerExprs(e.Indices)[0], c.lowerExpr(e.UpdateValue))
	case rir.ESeqSlice:
		return c.be.ExprSeqSlice(c.lowerExpr(e.Collection), c.lowerExpr(e.Lo), c.lowerExpr(e.Hi))
	case rir.EArraySelect:
		return c.be.ExprArraySelect(c.lowerExpr(e.Collection), c.lowerExprs(e.Indices))
	case rir.EQuantifier:
		return c.be.ExprQuantifier(e.QuantKind, e.BoundVars, c.lowerExpr(e.Range), c.lowerExpr(e.Predicate))
	case rir.EComprehension:
		return c.be.ExprComprehension(e.CompKind, e.BoundVars, c.lowerExpr(e.Range), c.lowerExpr(e.CompValue))
	case rir.ELambda:
		return c.be.ExprLambda(e.Params, c.lowerExpr(e.Body))
	case rir.ELet:
		return c.be.ExprLet(e.LetName, c.lowerExpr(e.LetValue), c.lowerExpr(e.LetBody))
	case rir.EMatch:
		var arms []string
		for _, arm := range e.Arms {
			arms = append(arms, c.lowerExpr(arm.Body))
		}
		return c.be.ExprMatch(c.lowerExpr(e.Scrutinee), arms)
	case rir.EApply:
		return c.be.ExprApply(c.lowerExpr(e.Func), c.lowerExprs(e.Args))
	case rir.EFieldAccess:
		return c.be.ExprFieldAccess(c.lowerExpr(e.Receiver), e.Name, e.IsStatic)
	case rir.ECall:
		callee := c.memberOf(e.CalleeDecl, e.Name)
		return c.be.ExprCall(e.Name, c.lowerCallArgs(callee, e.Args))
	default:
		return ""
	}
}

func (c *ctx) lowerExprs(es []*rir.Expr) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, c.lowerExpr(e))
	}
	return out
}

// lowerCallArgs aligns the caller's (ghost-free) argument list against
// the callee's signature, inserting a default-value expression at every
// ghost formal position (§4.4: "replaced with default-value arguments at
// call sites by the driver, never by the backend"). A function's
// surviving Formals list still carries its ghost entries in position
// (filter.FilterMember keeps them there); a method/constructor's does
// not, so no substitution is needed for those calls.
func (c *ctx) lowerCallArgs(callee *rir.Member, args []*rir.Expr) []string {
	if callee == nil || len(filter.GhostParamsOf(callee)) == 0 {
		return c.lowerExprs(args)
	}
	out := make([]string, 0, len(callee.Formals))
	i := 0
	for _, f := range callee.Formals {
		if f.Ghost {
			out = append(out, c.lowerExpr(DefaultValue(f.Type)))
			continue
		}
		if i < len(args) {
			out = append(out, c.lowerExpr(args[i]))
			i++
		}
	}
	return out
}

// lowerStmt emits s's target-language form into scope.
func (c *ctx) lowerStmt(s *rir.Stmt, scope backend.Scope) {
	if s == nil {
		return
	}
	switch s.Kind {
	case rir.SAssign:
		c.be.EmitAssign(scope, c.lowerExpr(s.Target), c.lowerExpr(s.Value))
	case rir.SMultiAssign:
		c.be.EmitMultiAssign(scope, c.lowerExprs(s.Targets), c.lowerExpr(s.CallExpr))
	case rir.SVarDecl:
		w := c.be.DeclareLocal(scope, s.VarName, s.VarType)
		if s.Init != nil {
			_ = w.Writef(" = %s", c.lowerExpr(s.Init))
		}
		_ = w.Write("\n")
	case rir.SIf:
		then, els := c.be.EmitIf(scope, c.lowerExpr(s.Cond))
		c.lowerStmt(s.Then, then)
		c.be.CloseScope(then)
		if s.Else != nil {
			c.lowerStmt(s.Else, els)
		}
		c.be.CloseScope(els)
	case rir.SWhile:
		body := c.be.EmitWhile(scope, c.lowerExpr(s.Cond))
		c.lowerStmt(s.Body, body)
		c.be.CloseScope(body)
	case rir.SForRange:
		body := c.be.EmitForRange(scope, s.LoopVar, c.lowerExpr(s.RangeLo), c.lowerExpr(s.RangeHi))
		c.lowerStmt(s.Body, body)
		c.be.CloseScope(body)
	case rir.SForCollection:
		body := c.be.EmitForCollection(scope, s.LoopVar, c.lowerExpr(s.IterColl))
		c.lowerStmt(s.Body, body)
		c.be.CloseScope(body)
	case rir.SLoop:
		c.curLoop = append(c.curLoop, s.Label)
		body := c.be.EmitLoop(scope, s.Label)
		c.lowerStmt(s.Body, body)
		c.be.CloseScope(body)
		c.curLoop = c.curLoop[:len(c.curLoop)-1]
	case rir.SBreak:
		c.be.EmitBreak(scope, s.BreakLabel)
	case rir.SReturn:
		c.be.EmitReturn(scope, c.lowerExprs(s.Results))
	case rir.SYield:
		c.be.EmitYield(scope, c.lowerExprs(s.Results))
	case rir.SPrint:
		c.be.EmitPrint(scope, c.lowerExprs(s.PrintArgs))
	case rir.SCall:
		callee := c.memberOf(s.Call.CalleeDecl, s.Call.Name)
		isLemma := callee != nil && callee.Kind == rir.MemberLemma
		if filter.IsAssertionOrLemmaCall(isLemma, s.Call.Name) {
			// Lemma declarations are ghost-dropped from their class body
			// (filter.FilterMember) and assertions have no runtime
			// counterpart at all, so the call itself becomes a no-op
			// (§4.4) rather than a call to a now-missing method.
			return
		}
		c.be.EmitCallStmt(scope, c.lowerExpr(s.Call))
	case rir.SAbsurd:
		c.be.EmitAbsurd(scope, "unreachable per source verification")
	case rir.SBlock:
		for _, inner := range s.Stmts {
			c.lowerStmt(inner, scope)
		}
	}
}
