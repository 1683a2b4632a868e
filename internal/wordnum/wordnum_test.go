package wordnum_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/waxwane/intercal72/internal/wordnum"
)

func Test_Decode(t *testing.T) {
	n, err := wordnum.Decode([]string{"ONE", "TWO", "THREE"})
	require.NoError(t, err)
	require.Equal(t, uint32(123), n)

	n, err = wordnum.Decode([]string{"OH", "OH", "SEVEN"})
	require.NoError(t, err)
	require.Equal(t, uint32(7), n)

	n, err = wordnum.Decode(nil)
	require.NoError(t, err)
	require.Equal(t, uint32(0), n)

	_, err = wordnum.Decode([]string{"ONE", "PLEASE"})
	require.Error(t, err)
}

func Test_EncodeDecodeRoundTrip(t *testing.T) {
	for _, n := range []uint32{0, 7, 65535, 123456} {
		words := wordnum.Encode(n)
		got, err := wordnum.Decode(words)
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}
