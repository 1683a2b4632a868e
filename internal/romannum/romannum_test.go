package romannum_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/waxwane/intercal72/internal/romannum"
)

func Test_Encode(t *testing.T) {
	cases := map[uint32]string{
		0:    "N",
		1:    "I",
		4:    "IV",
		9:    "IX",
		40:   "XL",
		90:   "XC",
		14:   "XIV",
		1994: "MCMXCIV",
		3999: "MMMCMXCIX",
	}
	for n, want := range cases {
		require.Equal(t, want, romannum.Encode(n), "n=%d", n)
	}
}

func Test_Encode_overline_extension(t *testing.T) {
	got := romannum.Encode(4000)
	require.Contains(t, got, "I̅V̅", "4000 is one overlined IV (4*1000)")
	require.NotEqual(t, romannum.Encode(3999), got)
}

func Test_Encode_max32(t *testing.T) {
	got := romannum.Encode(4294967295)
	require.NotEmpty(t, got)
}
