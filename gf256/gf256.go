// Package gf256 implements arithmetic in GF(2^8) modulo a configurable
// degree-8 irreducible polynomial.
package gf256

import "github.com/dkrasnov/symengine/errs"

// DefaultModulus is the AES reduction polynomial x^8+x^4+x^3+x+1.
const DefaultModulus = 0x11B

// Add returns a XOR b masked to 8 bits.
func Add(a, b byte) byte {
	return a ^ b
}

// Multiply multiplies a and b in GF(2^8) modulo m using the classic
// shift-and-reduce method. It fails with errs.ErrReducibleModulus if m is
// not a degree-8 irreducible polynomial.
func Multiply(a, b byte, m uint16) (byte, error) {
	if err := ensureIrreducible(m); err != nil {
		return 0, err
	}
	return multiplyUnchecked(a, b, m), nil
}

func multiplyUnchecked(a, b byte, m uint16) byte {
	var res byte
	poly := byte(m & 0xFF)
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			res ^= a
		}
		hi := a&0x80 != 0
		a <<= 1
		if hi {
			a ^= poly
		}
		b >>= 1
	}
	return res
}

// Inverse returns a^254 mod m, the multiplicative inverse of a for a != 0.
func Inverse(a byte, m uint16) (byte, error) {
	if err := ensureIrreducible(m); err != nil {
		return 0, err
	}
	if a == 0 {
		return 0, errs.Wrap(errs.ErrReducibleModulus, "gf256: no inverse for 0")
	}
	res := byte(1)
	base := a
	exp := 254
	for exp > 0 {
		if exp&1 == 1 {
			res = multiplyUnchecked(res, base, m)
		}
		base = multiplyUnchecked(base, base, m)
		exp >>= 1
	}
	return res, nil
}

// IsIrreducibleDeg8 reports whether poly is an irreducible polynomial of
// degree exactly 8: it must have degree 8, a nonzero constant term (not
// divisible by x), and no irreducible factor of degree <= 4.
func IsIrreducibleDeg8(poly uint16) bool {
	if degree(uint32(poly)) != 8 {
		return false
	}
	if poly&1 == 0 {
		return false
	}
	for _, d := range smallIrreducibles() {
		if _, rem := polyDivMod(uint32(poly), d); rem == 0 {
			return false
		}
	}
	return true
}

func ensureIrreducible(m uint16) error {
	if !IsIrreducibleDeg8(m) {
		return errs.Wrap(errs.ErrReducibleModulus, "gf256: modulus is not a degree-8 irreducible polynomial")
	}
	return nil
}

func degree(p uint32) int {
	if p == 0 {
		return -1
	}
	d := -1
	for p != 0 {
		d++
		p >>= 1
	}
	return d
}

func polyDivMod(u, v uint32) (q, r uint32) {
	r = u
	degV := degree(v)
	for degree(r) >= degV {
		shift := degree(r) - degV
		q ^= 1 << uint(shift)
		r ^= v << uint(shift)
	}
	return q, r
}

// smallIrreducibles returns all irreducible polynomials of degree 1..4 over
// GF(2), used by IsIrreducibleDeg8 to sieve out reducible degree-8 moduli.
func smallIrreducibles() []uint32 {
	irreducibles := []uint32{0x2} // x
	for deg := 1; deg <= 4; deg++ {
		start := uint32(1<<uint(deg)) | 1
		end := uint32(1 << uint(deg+1))
		for poly := start; poly < end; poly += 2 {
			isIrr := true
			for _, div := range irreducibles {
				if degree(div) > deg/2 {
					break
				}
				if _, rem := polyDivMod(poly, div); rem == 0 {
					isIrr = false
					break
				}
			}
			if isIrr {
				irreducibles = append(irreducibles, poly)
			}
		}
	}
	return irreducibles
}
