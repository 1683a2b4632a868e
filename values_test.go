package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Val_widths(t *testing.T) {
	v16 := V16(42)
	require.False(t, v16.Wide())
	require.Equal(t, uint32(42), v16.U32())
	n, err := v16.U16()
	require.NoError(t, err)
	require.Equal(t, uint16(42), n)

	v32 := V32(0x10000)
	require.True(t, v32.Wide())
	_, err = v32.U16()
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	require.Equal(t, E275, ie.Code)
}

func Test_Val_U16_wideButFits(t *testing.T) {
	v := V32(0xFFFF)
	n, err := v.U16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xFFFF), n)
}

func Test_mingle(t *testing.T) {
	out, err := mingle(V16(0), V16(0xFFFF))
	require.NoError(t, err)
	require.True(t, out.Wide())
	require.Equal(t, uint32(0x55555555), out.U32())

	out, err = mingle(V16(0xFFFF), V16(0))
	require.NoError(t, err)
	require.Equal(t, uint32(0xAAAAAAAA), out.U32())
}

func Test_mingle_overflow(t *testing.T) {
	_, err := mingle(V32(0x10000), V16(0))
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	require.Equal(t, E533, ie.Code)
}

func Test_selectBits(t *testing.T) {
	// selecting against an all-ones mask of the operand's own width is the
	// identity function.
	a := V16(0xBEEF)
	out := selectBits(a, V16(0xFFFF))
	require.Equal(t, uint32(0xBEEF), out.U32())
	require.False(t, out.Wide())
}

func Test_selectBits_picksOrderedBits(t *testing.T) {
	// bits 0 and 2 of 0b0101 are both set; selecting them packs low-order
	// first into a 2-bit result.
	a := V16(0b0101)
	b := V16(0b0101)
	out := selectBits(a, b)
	require.Equal(t, uint32(0b11), out.U32())
}

func Test_selectBits_widthFollowsOperandValuesNotTag(t *testing.T) {
	// a is tagged 32-bit but its value fits in 16 bits, as does b's; the
	// result must be 16-bit regardless of a's declared width.
	a := V32(5)
	b := V16(0xFFFF)
	out := selectBits(a, b)
	require.False(t, out.Wide())
	require.Equal(t, uint32(5), out.U32())
}

func Test_rotl(t *testing.T) {
	require.Equal(t, uint32(0b0010), rotl(0b0001, 4))
	require.Equal(t, uint32(0b0001), rotl(0b1000, 4))
}

func Test_unary(t *testing.T) {
	x := V16(0b0001)
	out := unary(UnOr, x)
	// x | rotl(x,16): 0b0001 | 0b0010 = 0b0011
	require.Equal(t, uint32(0b0011), out.U32())
	require.False(t, out.Wide())
}
