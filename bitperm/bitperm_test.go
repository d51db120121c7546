package bitperm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermuteIdentityTable(t *testing.T) {
	src := []byte{0xAB}
	table := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out, err := Permute(src, table)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestPermuteSelectsExpectedBits(t *testing.T) {
	src := []byte{0b10110000}
	out, err := Permute(src, []int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []byte{0b10100000}, out)
}

func TestPermuteRejectsOutOfRangeIndex(t *testing.T) {
	_, err := Permute([]byte{0xFF}, []int{9})
	require.Error(t, err)
}

func TestMustPermutePanicsOnBadTable(t *testing.T) {
	require.Panics(t, func() {
		MustPermute([]byte{0xFF}, []int{100})
	})
}
