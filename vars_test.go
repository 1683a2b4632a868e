package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func spotRef(n uint16) VarRef    { return VarRef{Kind: KindSpot, Num: n} }
func twoSpotRef(n uint16) VarRef { return VarRef{Kind: KindTwoSpot, Num: n} }
func tailRef(n uint16) VarRef    { return VarRef{Kind: KindTail, Num: n} }
func hybridRef(n uint16) VarRef  { return VarRef{Kind: KindHybrid, Num: n} }

func Test_Vars_scalarRoundTrip(t *testing.T) {
	v := newVars(0)
	require.NoError(t, v.SetScalar(spotRef(1), V16(123)))
	got, err := v.GetScalar(spotRef(1))
	require.NoError(t, err)
	require.Equal(t, uint32(123), got.U32())

	require.NoError(t, v.SetScalar(twoSpotRef(1), V32(0xDEADBEEF)))
	got, err = v.GetScalar(twoSpotRef(1))
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), got.U32())
}

func Test_Vars_unsetScalarReadsZero(t *testing.T) {
	v := newVars(0)
	got, err := v.GetScalar(spotRef(42))
	require.NoError(t, err)
	require.Equal(t, uint32(0), got.U32())
}

func Test_Vars_ignoreSuppressesWrites(t *testing.T) {
	v := newVars(0)
	ref := spotRef(1)
	require.NoError(t, v.SetScalar(ref, V16(5)))
	v.setIgnored(ref.key(), true)
	require.NoError(t, v.SetScalar(ref, V16(99)))

	got, err := v.GetScalar(ref)
	require.NoError(t, err)
	require.Equal(t, uint32(5), got.U32(), "write to an ignored variable must be a silent no-op")

	v.setIgnored(ref.key(), false)
	require.NoError(t, v.SetScalar(ref, V16(99)))
	got, err = v.GetScalar(ref)
	require.NoError(t, err)
	require.Equal(t, uint32(99), got.U32())
}

func Test_Vars_arrayDimAndElements(t *testing.T) {
	v := newVars(0)
	ref := tailRef(1)
	require.NoError(t, v.Dim(ref, []int{3}))
	require.NoError(t, v.SetArray(ref, []int{1}, V16(10)))
	require.NoError(t, v.SetArray(ref, []int{2}, V16(20)))
	require.NoError(t, v.SetArray(ref, []int{3}, V16(30)))

	got, err := v.GetArray(ref, []int{2})
	require.NoError(t, err)
	require.Equal(t, uint32(20), got.U32())
}

func Test_Vars_arrayOutOfRange(t *testing.T) {
	v := newVars(0)
	ref := tailRef(1)
	require.NoError(t, v.Dim(ref, []int{2}))
	_, err := v.GetArray(ref, []int{3})
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	require.Equal(t, E241, ie.Code)
}

func Test_Vars_arrayUndimensioned(t *testing.T) {
	v := newVars(0)
	_, err := v.GetArray(tailRef(5), []int{1})
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	require.Equal(t, E241, ie.Code)
}

func Test_Vars_stashRetrieveScalarRoundTrip(t *testing.T) {
	v := newVars(0)
	ref := spotRef(1)
	require.NoError(t, v.SetScalar(ref, V16(7)))
	require.NoError(t, v.Stash(ref))
	require.NoError(t, v.SetScalar(ref, V16(999)))
	require.NoError(t, v.Retrieve(ref))

	got, err := v.GetScalar(ref)
	require.NoError(t, err)
	require.Equal(t, uint32(7), got.U32())
}

func Test_Vars_stashRetrieveArrayRoundTrip(t *testing.T) {
	v := newVars(0)
	ref := hybridRef(1)
	require.NoError(t, v.Dim(ref, []int{2}))
	require.NoError(t, v.SetArray(ref, []int{1}, V32(111)))
	require.NoError(t, v.Stash(ref))
	require.NoError(t, v.SetArray(ref, []int{1}, V32(222)))
	require.NoError(t, v.Retrieve(ref))

	got, err := v.GetArray(ref, []int{1})
	require.NoError(t, err)
	require.Equal(t, uint32(111), got.U32())
}

func Test_Vars_retrieveEmptyStash(t *testing.T) {
	v := newVars(0)
	err := v.Retrieve(spotRef(1))
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	require.Equal(t, E436, ie.Code)
}

func Test_Vars_stashDepthLimit(t *testing.T) {
	v := newVars(0)
	ref := spotRef(1)
	for i := 0; i < maxStashDepth; i++ {
		require.NoError(t, v.Stash(ref))
	}
	err := v.Stash(ref)
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	require.Equal(t, E632, ie.Code)
}

func Test_Vars_cellCount(t *testing.T) {
	v := newVars(0)
	require.Equal(t, uint(0), v.cellCount())
	require.NoError(t, v.SetScalar(spotRef(1), V16(1)))
	require.Greater(t, v.cellCount(), uint(0), "allocating one scalar must grow the reported cell count")
}
