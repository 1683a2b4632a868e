package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_VarKind_sigils(t *testing.T) {
	require.Equal(t, byte('.'), KindSpot.sigil())
	require.Equal(t, byte(':'), KindTwoSpot.sigil())
	require.Equal(t, byte(','), KindTail.sigil())
	require.Equal(t, byte(';'), KindHybrid.sigil())
	require.False(t, KindSpot.isArray())
	require.True(t, KindTail.isArray())
	require.False(t, KindTail.is32())
	require.True(t, KindHybrid.is32())
}

func Test_VarRef_key_distinguishesKinds(t *testing.T) {
	a := VarRef{Kind: KindSpot, Num: 1}.key()
	b := VarRef{Kind: KindTwoSpot, Num: 1}.key()
	require.NotEqual(t, a, b)
}

func Test_Stmt_Class(t *testing.T) {
	s := &Stmt{Body: CalcBody{}}
	require.Equal(t, ClassCalculating, s.Class())

	s = &Stmt{Body: GiveUpBody{}}
	require.Equal(t, classNone, s.Class())
}

func Test_Target_isComputed(t *testing.T) {
	require.True(t, Target{Computed: NumExpr{Val: V16(1)}}.isComputed())
	require.False(t, Target{Set: []AbstainTarget{{Label: 10}}}.isComputed())
}

func Test_Stmt_String_includesPolitenessAndLabel(t *testing.T) {
	s := &Stmt{Label: 10, Polite: true, Probability: 100, Body: GiveUpBody{}}
	str := s.String()
	require.Contains(t, str, "(   10)")
	require.Contains(t, str, "PLEASE")
	require.Contains(t, str, "GIVE UP")
}

func Test_Expr_String(t *testing.T) {
	e := MingleExpr{A: NumExpr{Val: V16(1)}, B: NumExpr{Val: V16(2)}}
	require.Equal(t, "(#1 $ #2)", e.String())
}
