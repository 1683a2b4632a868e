package vartable_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/waxwane/intercal72/internal/vartable"
)

func Test_Paged_uint16(t *testing.T) {
	var m vartable.Paged[uint16]
	m.PageSize = 4

	val, err := m.Load(0)
	require.NoError(t, err)
	require.Equal(t, uint16(0), val)
	require.Equal(t, uint(0), m.Size())

	require.NoError(t, m.Store(0, 9))
	val, err = m.Load(0)
	require.NoError(t, err)
	require.Equal(t, uint16(9), val)

	require.NoError(t, m.Store(0x9, 1, 2, 3, 4, 5, 6))

	buf := make([]uint16, 16)
	require.NoError(t, m.LoadInto(0, buf))
	require.Equal(t, []uint16{
		9, 0, 0, 0,
		0, 0, 0, 0,
		0, 1, 2, 3,
		4, 5, 6, 0,
	}, buf)
}

func Test_Paged_sparse_high_addresses(t *testing.T) {
	var m vartable.Paged[uint32]
	m.PageSize = 8

	require.NoError(t, m.Store(1, 11))
	require.NoError(t, m.Store(65535, 99))

	v, err := m.Load(1)
	require.NoError(t, err)
	require.Equal(t, uint32(11), v)

	v, err = m.Load(65535)
	require.NoError(t, err)
	require.Equal(t, uint32(99), v)

	v, err = m.Load(100)
	require.NoError(t, err)
	require.Equal(t, uint32(0), v, "unallocated address reads as zero")
}

func Test_Paged_limit(t *testing.T) {
	var m vartable.Paged[uint16]
	m.PageSize = 4
	m.Limit = 10

	require.NoError(t, m.Store(5, 1))
	err := m.Store(20, 1)
	require.Error(t, err)
}

type arrayCell struct {
	dims []int
	data []uint16
}

func Test_Paged_struct_values(t *testing.T) {
	var m vartable.Paged[*arrayCell]
	m.PageSize = 4

	cell := &arrayCell{dims: []int{3}, data: []uint16{1, 2, 3}}
	require.NoError(t, m.Store(7, cell))

	got, err := m.Load(7)
	require.NoError(t, err)
	require.Same(t, cell, got)

	missing, err := m.Load(0)
	require.NoError(t, err)
	require.Nil(t, missing)
}
