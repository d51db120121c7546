package rng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesReturnsRequestedLength(t *testing.T) {
	b, err := Bytes(NewFallback(), 32)
	require.NoError(t, err)
	require.Len(t, b, 32)
}

func TestBytesAreNotAllZero(t *testing.T) {
	b, err := Bytes(NewFallback(), 32)
	require.NoError(t, err)
	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	require.False(t, allZero)
}

func TestDefaultSourceProducesBytes(t *testing.T) {
	b, err := Bytes(Default(), 16)
	require.NoError(t, err)
	require.Len(t, b, 16)
}
