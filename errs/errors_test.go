package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinelIdentity(t *testing.T) {
	err := Wrap(ErrInvalidKeySize, "ciphers: bad key")
	require.True(t, errors.Is(err, ErrInvalidKeySize))
	require.False(t, errors.Is(err, ErrInvalidBlockSize))
}

func TestWrapIncludesContext(t *testing.T) {
	err := Wrap(ErrUnknownMode, "symmetric: unrecognized mode FOO")
	require.Contains(t, err.Error(), "symmetric: unrecognized mode FOO")
}
