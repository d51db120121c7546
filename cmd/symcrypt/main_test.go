package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPrimitiveKnownNames(t *testing.T) {
	for _, name := range []string{
		"des", "3des-ede", "3des-eee",
		"deal-128", "deal-192", "deal-256",
		"rijndael-128-128", "rijndael-128-192", "rijndael-128-256",
	} {
		p, err := buildPrimitive(name)
		require.NoError(t, err, name)
		require.Greater(t, p.BlockSize(), 0, name)
	}
}

func TestBuildPrimitiveRejectsUnknownName(t *testing.T) {
	_, err := buildPrimitive("not-a-real-cipher")
	require.Error(t, err)
}

func TestBuildPaddingDefaultsToZeros(t *testing.T) {
	p, err := buildPadding("")
	require.NoError(t, err)
	require.Equal(t, "ZEROS", p.Name())
}

func TestBuildPaddingResolvesKnownNames(t *testing.T) {
	p, err := buildPadding("PKCS7")
	require.NoError(t, err)
	require.Equal(t, "PKCS7", p.Name())
}

func TestBuildPaddingRejectsUnknownName(t *testing.T) {
	_, err := buildPadding("NOT_A_SCHEME")
	require.Error(t, err)
}
