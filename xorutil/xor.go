// Package xorutil provides block-sized XOR for the chaining modes (CBC,
// PCBC, CFB, OFB, CTR, RANDOM_DELTA), backed by SIMD-accelerated XOR where
// the platform supports it.
package xorutil

import "github.com/templexxx/xorsimd"

// Bytes XORs a and b (which must be the same length) and returns a newly
// allocated result.
func Bytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	xorsimd.Bytes(out, a, b)
	return out
}
