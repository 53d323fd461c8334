package driver

import "github.com/lowerc/lowerc/internal/rir"

// RewriteTailCalls transforms a self-tail-recursive member's body so the
// backend can emit a loop instead of a stack frame per call
// (§4.1's redesign note: tail position self-calls become loop-back-edges
// with parameter reassignment). Only direct self-calls in tail (return)
// position are rewritten; anything else is left as an ordinary return
// and the backend falls back to whatever native call support it has.
func RewriteTailCalls(body *rir.Stmt, declID rir.DeclID, member *rir.Member) *rir.Stmt {
	if body == nil || !member.TailRecursive {
		return body
	}
	return rewriteStmt(body, declID, member)
}

func rewriteStmt(s *rir.Stmt, declID rir.DeclID, member *rir.Member) *rir.Stmt {
	if s == nil {
		return nil
	}
	out := *s
	switch s.Kind {
	case rir.SIf:
		out.Then = rewriteStmt(s.Then, declID, member)
		out.Else = rewriteStmt(s.Else, declID, member)
	case rir.SBlock:
		stmts := make([]*rir.Stmt, len(s.Stmts))
		for i, inner := range s.Stmts {
			stmts[i] = rewriteStmt(inner, declID, member)
		}
		out.Stmts = stmts
	case rir.SReturn:
		if call, ok := selfTailCall(s, declID, member); ok {
			return reassignmentBlock(member, call)
		}
	}
	return &out
}

// selfTailCall reports whether s is `return self(args...)`.
func selfTailCall(s *rir.Stmt, declID rir.DeclID, member *rir.Member) (*rir.Expr, bool) {
	if len(s.Results) != 1 {
		return nil, false
	}
	call := s.Results[0]
	if call.Kind != rir.ECall || call.CalleeDecl != declID || call.Name != member.Name {
		return nil, false
	}
	return call, true
}

// reassignmentBlock reassigns every non-ghost formal to its corresponding
// tail-call argument. Falling off the end of this block lets the
// enclosing loop iterate again, which is the loop-back-edge the
// recursive call used to perform.
func reassignmentBlock(member *rir.Member, call *rir.Expr) *rir.Stmt {
	var stmts []*rir.Stmt
	argIdx := 0
	for _, f := range member.Formals {
		if f.Ghost {
			continue
		}
		if argIdx >= len(call.Args) {
			break
		}
		stmts = append(stmts, &rir.Stmt{
			Kind:   rir.SAssign,
			Target: &rir.Expr{Kind: rir.EVar, Name: f.Name, ResolvedType: f.Type},
			Value:  call.Args[argIdx],
		})
		argIdx++
	}
	return &rir.Stmt{Kind: rir.SBlock, Stmts: stmts}
}
