// Package bitperm implements the general bit-selection permutation that
// drives every DES table (IP, FP, PC-1, PC-2, E, P).
package bitperm

import (
	"fmt"

	"github.com/dkrasnov/symengine/errs"
)

// Permute selects bits from src at the one-based, MSB-first positions listed
// in table and packs them, MSB-first, into ⌈len(table)/8⌉ output bytes.
// Trailing bits in the last output byte are zero.
//
// A table index of i selects bit i-1 of src counting from the most
// significant bit of src[0]. Indices outside [1, len(src)*8] fail.
func Permute(src []byte, table []int) ([]byte, error) {
	totalBits := len(src) * 8
	outBits := len(table)
	outBytes := (outBits + 7) / 8
	out := make([]byte, outBytes)

	for pos, idx := range table {
		srcIdx := idx - 1
		if srcIdx < 0 || srcIdx >= totalBits {
			return nil, errs.Wrap(errs.ErrInvalidBlockSize, fmt.Sprintf("bitperm: index %d out of range for %d bits", idx, totalBits))
		}
		byteIdx := srcIdx / 8
		bitIdx := srcIdx % 8
		shift := 7 - bitIdx
		bit := (src[byteIdx] >> uint(shift)) & 1

		dstByte := pos / 8
		dstShift := 7 - (pos % 8)
		out[dstByte] |= bit << uint(dstShift)
	}

	return out, nil
}

// MustPermute panics on error; used for fixed built-in tables whose indices
// are known-good at compile time (DES's own IP/FP/PC1/PC2/E/P).
func MustPermute(src []byte, table []int) []byte {
	out, err := Permute(src, table)
	if err != nil {
		panic(err)
	}
	return out
}
