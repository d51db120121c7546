package xorutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesXORsElementwise(t *testing.T) {
	a := []byte{0xFF, 0x00, 0xAA}
	b := []byte{0x0F, 0xFF, 0x55}
	require.Equal(t, []byte{0xF0, 0xFF, 0xFF}, Bytes(a, b))
}

func TestBytesSelfXORIsZero(t *testing.T) {
	a := []byte{1, 2, 3, 4, 5}
	require.Equal(t, make([]byte, len(a)), Bytes(a, a))
}
