package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) *Program {
	t.Helper()
	lex := NewLexer(strings.NewReader(src), "test.i")
	prog, err := NewParser(lex).ParseProgram()
	require.NoError(t, err)
	return prog
}

func Test_Parser_simpleCalc(t *testing.T) {
	prog := parseSrc(t, "DO .1 <- #1\nPLEASE GIVE UP\nDO GIVE UP\n")
	require.Len(t, prog.Stmts, 3)

	calc, ok := prog.Stmts[0].Body.(CalcBody)
	require.True(t, ok)
	require.Equal(t, KindSpot, calc.LV.Var.Kind)
	require.Equal(t, uint16(1), calc.LV.Var.Num)
	num, ok := calc.Expr.(NumExpr)
	require.True(t, ok)
	require.Equal(t, uint32(1), num.Val.U32())

	_, ok = prog.Stmts[1].Body.(GiveUpBody)
	require.True(t, ok)
	require.True(t, prog.Stmts[1].Polite)
}

func Test_Parser_label(t *testing.T) {
	prog := parseSrc(t, "(1000) DO .1 <- #2\nPLEASE GIVE UP\nDO GIVE UP\n")
	require.Equal(t, Label(1000), prog.Stmts[0].Label)
}

func Test_Parser_negation(t *testing.T) {
	prog := parseSrc(t, "DO NOT .1 <- #2\nPLEASE GIVE UP\nDO GIVE UP\n")
	require.True(t, prog.Stmts[0].Negated)
	require.True(t, prog.Stmts[0].InitDisabled)
	require.True(t, prog.Stmts[0].Disabled)
}

func Test_Parser_probability(t *testing.T) {
	prog := parseSrc(t, "DO %50 .1 <- #1\nPLEASE GIVE UP\nDO GIVE UP\n")
	require.Equal(t, uint8(50), prog.Stmts[0].Probability)
}

func Test_Parser_comeFromLiteral(t *testing.T) {
	prog := parseSrc(t, "(10) DO .1 <- #1\nPLEASE COME FROM (10)\nDO GIVE UP\n")
	cf, ok := prog.Stmts[1].Body.(ComeFromBody)
	require.True(t, ok)
	require.False(t, cf.Target.isComputed())
	require.Equal(t, Label(10), cf.Target.Set[0].Label)
}

func Test_Parser_abstainGerund(t *testing.T) {
	prog := parseSrc(t, "DO ABSTAIN FROM CALCULATING\nPLEASE GIVE UP\nDO GIVE UP\n")
	ab, ok := prog.Stmts[0].Body.(AbstainBody)
	require.True(t, ok)
	require.True(t, ab.Target.Set[0].IsClass)
	require.Equal(t, ClassCalculating, ab.Target.Set[0].Class)
}

func Test_Parser_stashAndRetrieve(t *testing.T) {
	prog := parseSrc(t, "DO STASH .1 + .2\nPLEASE RETRIEVE .1 + .2\nDO GIVE UP\n")
	st, ok := prog.Stmts[0].Body.(StashBody)
	require.True(t, ok)
	require.Len(t, st.Vars, 2)

	rt, ok := prog.Stmts[1].Body.(RetrieveBody)
	require.True(t, ok)
	require.Len(t, rt.Vars, 2)
}

func Test_Parser_arrayDim(t *testing.T) {
	prog := parseSrc(t, "DO ,1 <- #3\nPLEASE GIVE UP\nDO GIVE UP\n")
	dim, ok := prog.Stmts[0].Body.(CalcDimBody)
	require.True(t, ok)
	require.Equal(t, KindTail, dim.Var.Kind)
	require.Len(t, dim.Dims, 1)
}

func Test_Parser_malformedStatementBecomesBadStmt(t *testing.T) {
	prog := parseSrc(t, "THIS IS NOT A STATEMENT\nPLEASE GIVE UP\n")
	_, ok := prog.Stmts[0].Body.(BadStmtBody)
	require.True(t, ok)
}

func Test_Parser_politenessTooLow(t *testing.T) {
	lex := NewLexer(strings.NewReader(
		"DO .1 <- #1\nDO .1 <- #2\nDO .1 <- #3\nDO .1 <- #4\nDO .1 <- #5\nPLEASE GIVE UP\n"), "t.i")
	_, err := NewParser(lex).ParseProgram()
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	require.Equal(t, E099, ie.Code)
	require.True(t, ie.Fatal)
}

func Test_Parser_politenessTooHigh(t *testing.T) {
	lex := NewLexer(strings.NewReader(
		"PLEASE DO .1 <- #1\nPLEASE DO .1 <- #2\nPLEASE GIVE UP\n"), "t.i")
	_, err := NewParser(lex).ParseProgram()
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	require.Equal(t, E079, ie.Code)
}

func Test_Parser_emptyProgram(t *testing.T) {
	lex := NewLexer(strings.NewReader(""), "t.i")
	_, err := NewParser(lex).ParseProgram()
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	require.Equal(t, E129, ie.Code)
}
