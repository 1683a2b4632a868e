package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Optimizer_foldsConstantMingle(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{
		{Body: CalcBody{
			LV:   LValue{Var: spotRef(1)},
			Expr: MingleExpr{A: NumExpr{Val: V16(0)}, B: NumExpr{Val: V16(0xFFFF)}},
		}, ComeFromSite: -1},
	}
	Optimize(prog)
	calc := prog.Stmts[0].Body.(CalcBody)
	num, ok := calc.Expr.(NumExpr)
	require.True(t, ok, "a constant MingleExpr must fold to a NumExpr")
	require.Equal(t, uint32(0x55555555), num.Val.U32())
}

func Test_Optimizer_leavesOverflowingMingleUnfolded(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{
		{Body: CalcBody{
			LV:   LValue{Var: spotRef(1)},
			Expr: MingleExpr{A: NumExpr{Val: V32(0x10000)}, B: NumExpr{Val: V16(0)}},
		}, ComeFromSite: -1},
	}
	Optimize(prog)
	calc := prog.Stmts[0].Body.(CalcBody)
	_, ok := calc.Expr.(MingleExpr)
	require.True(t, ok, "an expression that would error must be left for the interpreter to reject at runtime")
}

func Test_Optimizer_peepholeIdentitySelect(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{
		{Body: CalcBody{
			LV:   LValue{Var: spotRef(1)},
			Expr: SelectExpr{A: VarExpr{LV: LValue{Var: spotRef(2)}}, B: NumExpr{Val: V16(0xFFFF)}},
		}, ComeFromSite: -1},
	}
	Optimize(prog)
	calc := prog.Stmts[0].Body.(CalcBody)
	ve, ok := calc.Expr.(VarExpr)
	require.True(t, ok, "selecting against an all-ones mask must rewrite to the bare operand")
	require.Equal(t, spotRef(2), ve.LV.Var)
}

func Test_Optimizer_markAbstainReachability(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{
		{Label: 10, Body: AbstainBody{Target: litTarget(20)}, ComeFromSite: -1},
		{Label: 20, Body: GiveUpBody{}, ComeFromSite: -1},
		{Label: 30, Body: GiveUpBody{}, ComeFromSite: -1},
	}
	Optimize(prog)
	require.True(t, prog.Stmts[1].CanAbstain, "statement 20 is named by a literal ABSTAIN and must be reachable")
	require.False(t, prog.Stmts[2].CanAbstain, "statement 30 is never named by any ABSTAIN/REINSTATE")
}

func Test_Optimizer_computedAbstainMarksEverythingReachable(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{
		{Body: AbstainBody{Target: Target{Computed: NumExpr{Val: V16(1)}}}, ComeFromSite: -1},
		{Label: 30, Body: GiveUpBody{}, ComeFromSite: -1},
	}
	Optimize(prog)
	require.True(t, prog.Stmts[1].CanAbstain, "a computed ABSTAIN target could name any label at runtime")
}

func Test_Optimizer_markVarUsage(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{
		{Body: StashBody{Vars: []VarRef{spotRef(1)}}, ComeFromSite: -1},
		{Body: IgnoreBody{Vars: []VarRef{spotRef(2)}}, ComeFromSite: -1},
	}
	usage := markVarUsage(prog)
	require.True(t, usage.get(spotRef(1).key()).CanStash)
	require.False(t, usage.get(spotRef(1).key()).CanIgnore)
	require.True(t, usage.get(spotRef(2).key()).CanIgnore)
	require.False(t, usage.get(spotRef(3).key()).CanStash)
}
