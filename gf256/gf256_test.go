package gf256

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiplyCommutative(t *testing.T) {
	for a := 1; a < 256; a += 17 {
		for b := 1; b < 256; b += 23 {
			ab, err := Multiply(byte(a), byte(b), DefaultModulus)
			require.NoError(t, err)
			ba, err := Multiply(byte(b), byte(a), DefaultModulus)
			require.NoError(t, err)
			require.Equal(t, ab, ba)
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		inv, err := Inverse(byte(a), DefaultModulus)
		require.NoError(t, err)
		product, err := Multiply(byte(a), inv, DefaultModulus)
		require.NoError(t, err)
		require.Equal(t, byte(1), product, "a=%d", a)
	}
}

func TestInverseOfZeroFails(t *testing.T) {
	_, err := Inverse(0, DefaultModulus)
	require.Error(t, err)
}

func TestReducibleModulusRejected(t *testing.T) {
	_, err := Multiply(3, 5, 0x100)
	require.Error(t, err)
}

func TestIsIrreducibleDeg8(t *testing.T) {
	require.True(t, IsIrreducibleDeg8(DefaultModulus))
	require.False(t, IsIrreducibleDeg8(0x100))
}
