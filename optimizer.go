package main

// Optimize applies a handful of conservative, semantics-preserving passes
// over a linked Program: constant folding, a peephole rewrite of the
// binary-logic operator chains, and the abstain-reachability /
// variable-usage analyses (§4.5). No statement is pruned, and the
// translator does not read the analyses' results. None of these passes may change a program's
// observable behavior; see the testable property in §8.
func Optimize(prog *Program) {
	foldConstants(prog)
	peepholeRewrite(prog)
	markAbstainReachability(prog)
	markVarUsage(prog)
}

// foldConstants replaces any expression subtree built entirely from
// NumExpr literals with its computed NumExpr value, evaluated with the
// same helpers the interpreter itself uses so folding can never disagree
// with runtime evaluation. A subtree that would error (overflow, etc.) is
// left unfolded so the error is still raised at the original statement's
// runtime, preserving the diagnostic's line number.
func foldConstants(prog *Program) {
	for _, s := range prog.Stmts {
		switch b := s.Body.(type) {
		case CalcBody:
			b.Expr = foldExpr(b.Expr)
			s.Body = b
		case ReadOutBody:
			for i, e := range b.Exprs {
				b.Exprs[i] = foldExpr(e)
			}
			s.Body = b
		}
	}
}

func isConst(e Expr) (Val, bool) {
	n, ok := e.(NumExpr)
	if !ok {
		return Val{}, false
	}
	return n.Val, true
}

func foldExpr(e Expr) Expr {
	switch x := e.(type) {
	case MingleExpr:
		a := foldExpr(x.A)
		b := foldExpr(x.B)
		if av, ok := isConst(a); ok {
			if bv, ok := isConst(b); ok {
				if v, err := mingle(av, bv); err == nil {
					return NumExpr{Val: v}
				}
			}
		}
		return MingleExpr{A: a, B: b}
	case SelectExpr:
		a := foldExpr(x.A)
		b := foldExpr(x.B)
		if av, ok := isConst(a); ok {
			if bv, ok := isConst(b); ok {
				return NumExpr{Val: selectBits(av, bv)}
			}
		}
		return SelectExpr{A: a, B: b}
	case UnaryExpr:
		inner := foldExpr(x.X)
		if v, ok := isConst(inner); ok {
			return NumExpr{Val: unary(x.Op, v)}
		}
		return UnaryExpr{Op: x.Op, X: inner}
	case VarExpr:
		x.LV.Var.Subs = foldExprList(x.LV.Var.Subs)
		return x
	default:
		return e
	}
}

func foldExprList(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = foldExpr(e)
	}
	return out
}

// peepholeRewrite removes one algebraic identity left over after folding
// that still involves one constant operand: a select whose mask is all
// ones across its left operand's width. It is purely an optimization;
// the interpreter evaluates the rewritten tree exactly as it would the
// original, since selectBits/unary already define the same semantics for
// the rewritten forms.
func peepholeRewrite(prog *Program) {
	for _, s := range prog.Stmts {
		if b, ok := s.Body.(CalcBody); ok {
			b.Expr = rewriteExpr(b.Expr)
			s.Body = b
		}
	}
}

func rewriteExpr(e Expr) Expr {
	switch x := e.(type) {
	case MingleExpr:
		return MingleExpr{A: rewriteExpr(x.A), B: rewriteExpr(x.B)}
	case SelectExpr:
		a := rewriteExpr(x.A)
		b := rewriteExpr(x.B)
		// Select against an all-ones mask of a's own width is the
		// identity function (every bit of a is selected, in order). a's
		// width is only taken as known for literals, variables and mingles.
		if bv, ok := isConst(b); ok {
			aWide, known := false, true
			switch ax := a.(type) {
			case NumExpr:
				aWide = ax.Val.Wide()
			case VarExpr:
				aWide = ax.LV.Var.Kind.is32()
			case MingleExpr:
				aWide = true
			default:
				known = false
			}
			width := uint32(0xFFFF)
			if aWide {
				width = 0xFFFFFFFF
			}
			if known && bv.U32() == width {
				return a
			}
		}
		return SelectExpr{A: a, B: b}
	case UnaryExpr:
		return UnaryExpr{Op: x.Op, X: rewriteExpr(x.X)}
	default:
		return e
	}
}

// markAbstainReachability computes, for each statement, whether any
// ABSTAIN or REINSTATE in the program could possibly target it (by label
// or by its gerund class), conservatively treating any computed ABSTAIN as
// capable of reaching everything (since its target is not known until
// runtime). Statements that can never be abstained need no Disabled-bit
// check emitted by the translator.
func markAbstainReachability(prog *Program) {
	anyComputed := false
	classesReached := make(map[AbstainClass]bool)
	labelsReached := make(map[Label]bool)

	for _, s := range prog.Stmts {
		var t Target
		switch b := s.Body.(type) {
		case AbstainBody:
			t = b.Target
		case ReinstateBody:
			t = b.Target
		default:
			continue
		}
		if t.isComputed() {
			anyComputed = true
			continue
		}
		for _, tgt := range t.Set {
			if tgt.IsClass {
				classesReached[tgt.Class] = true
			} else {
				labelsReached[tgt.Label] = true
			}
		}
	}

	for _, s := range prog.Stmts {
		s.CanAbstain = anyComputed || classesReached[s.Class()] || (s.Label != 0 && labelsReached[s.Label])
	}
}

// VarUsage tracks, per variable, whether it is ever named by STASH/
// RETRIEVE or by IGNORE/REMEMBER anywhere in the program, letting the
// translator skip emitting that variable's stash stack or ignore flag.
type VarUsage struct {
	CanStash  bool
	CanIgnore bool
}

func markVarUsage(prog *Program) *varUsageTable {
	t := newVarUsageTable()
	for _, s := range prog.Stmts {
		switch b := s.Body.(type) {
		case StashBody:
			for _, v := range b.Vars {
				t.set(v.key(), true, false)
			}
		case RetrieveBody:
			for _, v := range b.Vars {
				t.set(v.key(), true, false)
			}
		case IgnoreBody:
			for _, v := range b.Vars {
				t.set(v.key(), false, true)
			}
		case RememberBody:
			for _, v := range b.Vars {
				t.set(v.key(), false, true)
			}
		}
	}
	return t
}

type varUsageTable struct {
	m map[varKey]*VarUsage
}

func newVarUsageTable() *varUsageTable { return &varUsageTable{m: make(map[varKey]*VarUsage)} }

func (t *varUsageTable) set(k varKey, stash, ignore bool) {
	u, ok := t.m[k]
	if !ok {
		u = &VarUsage{}
		t.m[k] = u
	}
	if stash {
		u.CanStash = true
	}
	if ignore {
		u.CanIgnore = true
	}
}

func (t *varUsageTable) get(k varKey) VarUsage {
	if u, ok := t.m[k]; ok {
		return *u
	}
	return VarUsage{}
}
