package keyderive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveProducesRequestedKeySize(t *testing.T) {
	key, err := Derive([]byte("correct horse battery staple"), []byte("salt1234"), DefaultParams())
	require.NoError(t, err)
	require.Len(t, key, DefaultParams().KeySize)
}

func TestDeriveIsDeterministic(t *testing.T) {
	params := Params{Iterations: MinIterations, KeySize: 32, Hash: SHA256}
	k1, err := Derive([]byte("password"), []byte("fixed-salt"), params)
	require.NoError(t, err)
	k2, err := Derive([]byte("password"), []byte("fixed-salt"), params)
	require.NoError(t, err)
	require.Equal(t, k1, k2)
}

func TestDeriveDiffersBySalt(t *testing.T) {
	params := Params{Iterations: MinIterations, KeySize: 32, Hash: SHA256}
	k1, err := Derive([]byte("password"), []byte("salt-one"), params)
	require.NoError(t, err)
	k2, err := Derive([]byte("password"), []byte("salt-two"), params)
	require.NoError(t, err)
	require.NotEqual(t, k1, k2)
}

func TestDeriveSHA512(t *testing.T) {
	params := Params{Iterations: MinIterations, KeySize: 64, Hash: SHA512}
	key, err := Derive([]byte("password"), []byte("salt"), params)
	require.NoError(t, err)
	require.Len(t, key, 64)
}

func TestDeriveRejectsLowIterationCount(t *testing.T) {
	_, err := Derive([]byte("password"), []byte("salt"), Params{Iterations: 1, KeySize: 32, Hash: SHA256})
	require.Error(t, err)
}

func TestDeriveRejectsNonPositiveKeySize(t *testing.T) {
	_, err := Derive([]byte("password"), []byte("salt"), Params{Iterations: MinIterations, KeySize: 0, Hash: SHA256})
	require.Error(t, err)
}
