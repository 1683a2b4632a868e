package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Translator_emitsPackageAndImports(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{{Body: GiveUpBody{}, ComeFromSite: -1}}

	var out strings.Builder
	require.NoError(t, NewTranslator(prog, "").Emit(&out))

	src := out.String()
	require.Contains(t, src, "package main\n")
	require.Contains(t, src, `"context"`)
	require.Contains(t, src, `"os"`)
}

func Test_Translator_customPackageName(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{{Body: GiveUpBody{}, ComeFromSite: -1}}

	var out strings.Builder
	require.NoError(t, NewTranslator(prog, "intercalgen").Emit(&out))
	require.Contains(t, out.String(), "package intercalgen\n")
}

func Test_Translator_emitsStatementTableLiteral(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{
		{Label: 10, Body: CalcBody{LV: LValue{Var: spotRef(1)}, Expr: NumExpr{Val: V16(5)}}, ComeFromSite: -1},
		{Body: GiveUpBody{}, ComeFromSite: -1},
	}

	var out strings.Builder
	require.NoError(t, NewTranslator(prog, "main").Emit(&out))

	src := out.String()
	require.Contains(t, src, "var translatedStmts = []*Stmt{")
	require.Contains(t, src, "Label: 10")
	require.Contains(t, src, "CalcBody{LV: LValue{Var: VarRef{Kind: 0, Num: 1")
	require.Contains(t, src, "NumExpr{Val: V16(5)}")
	require.Contains(t, src, "GiveUpBody{}")
}

func Test_Translator_emitsComeFromTarget(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{
		{Label: 10, Body: GiveUpBody{}, ComeFromSite: -1},
		{Body: ComeFromBody{Target: litTarget(10)}, ComeFromSite: -1},
	}

	var out strings.Builder
	require.NoError(t, NewTranslator(prog, "main").Emit(&out))
	require.Contains(t, out.String(), "ComeFromBody{Target: Target{Set: []AbstainTarget{{Label: 10}}}}")
}

func Test_Translator_emitsRunnableMain(t *testing.T) {
	prog := newProgram()
	prog.Stmts = []*Stmt{{Body: GiveUpBody{}, ComeFromSite: -1}}

	var out strings.Builder
	require.NoError(t, NewTranslator(prog, "main").Emit(&out))

	src := out.String()
	require.Contains(t, src, "func main() {")
	require.Contains(t, src, "NewInterp(prog, WithOutput(os.Stdout), WithInput(os.Stdin))")
	require.Contains(t, src, "m.Run(context.Background())")
}
