// Package rng provides the cryptographically secure random byte source used
// throughout the engine for IVs, deltas, and ISO 10126 padding filler
// bytes, backed by an AES-CTR-DRBG reader.
package rng

import (
	"crypto/rand"
	"io"

	ctrdrbg "github.com/sixafter/aes-ctr-drbg"
)

// Source is a cryptographically secure byte source.
type Source interface {
	io.Reader
}

// Default returns the package-level AES-CTR-DRBG reader. It does not fall
// back to crypto/rand on its own; NewFallback returns that source for
// callers that select it explicitly.
func Default() Source {
	return ctrdrbg.Reader
}

// NewFallback wraps crypto/rand.Reader for environments where the DRBG
// reader is unavailable or undesired (e.g. deterministic test harnesses
// should never use this; it is only a defensive fallback).
func NewFallback() Source {
	return rand.Reader
}

// Bytes draws n cryptographically secure random bytes from src.
func Bytes(src Source, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
