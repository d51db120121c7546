// Package bignum provides the modular-arithmetic primitives the peripheral
// number-theoretic packages share: GCD, extended GCD, Jacobi/Legendre
// symbols, and modular exponentiation over math/big.
package bignum

import (
	"math/big"

	"github.com/dkrasnov/symengine/errs"
)

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x, y = y, new(big.Int).Mod(x, y)
	}
	return x
}

// ExtendedGCD returns (g, x, y) such that a*x + b*y = g = gcd(a, b).
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	if b.Sign() == 0 {
		return new(big.Int).Set(a), big.NewInt(1), big.NewInt(0)
	}
	x0, x1 := big.NewInt(1), big.NewInt(0)
	y0, y1 := big.NewInt(0), big.NewInt(1)
	aCur, bCur := new(big.Int).Set(a), new(big.Int).Set(b)

	for bCur.Sign() != 0 {
		// big.Int.DivMod is Euclidean (r >= 0); the coefficient recurrence
		// needs the truncated quotient/remainder pair.
		q, r := truncDivMod(aCur, bCur)
		aCur, bCur = bCur, r

		x0, x1 = x1, new(big.Int).Sub(x0, new(big.Int).Mul(q, x1))
		y0, y1 = y1, new(big.Int).Sub(y0, new(big.Int).Mul(q, y1))
	}
	return aCur, x0, y0
}

func truncDivMod(a, b *big.Int) (q, r *big.Int) {
	q = new(big.Int).Quo(a, b)
	r = new(big.Int).Sub(a, new(big.Int).Mul(q, b))
	return q, r
}

// ModPow computes val^exp mod m for exp >= 0 and m > 0.
func ModPow(val, exp, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, errs.Wrap(errs.ErrMessageTooLarge, "bignum: modulus must be positive")
	}
	if exp.Sign() < 0 {
		return nil, errs.Wrap(errs.ErrMessageTooLarge, "bignum: exponent must be non-negative")
	}
	return new(big.Int).Exp(val, exp, m), nil
}

// LegendreSymbol returns the Legendre symbol (a/p) for an odd prime p > 2.
func LegendreSymbol(a, p *big.Int) (int, error) {
	three := big.NewInt(3)
	if p.Cmp(three) < 0 || new(big.Int).Mod(p, big.NewInt(2)).Sign() == 0 {
		return 0, errs.Wrap(errs.ErrMessageTooLarge, "bignum: p must be an odd prime >= 3")
	}
	if new(big.Int).Mod(a, p).Sign() == 0 {
		return 0, nil
	}
	exp := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	qr, err := ModPow(a, exp, p)
	if err != nil {
		return 0, err
	}
	if qr.Cmp(big.NewInt(1)) == 0 {
		return 1, nil
	}
	return -1, nil
}

// JacobiSymbol returns the Jacobi symbol (a/n) for a positive odd n.
func JacobiSymbol(a, n *big.Int) (int, error) {
	if n.Sign() <= 0 || new(big.Int).Mod(n, big.NewInt(2)).Sign() == 0 {
		return 0, errs.Wrap(errs.ErrMessageTooLarge, "bignum: n must be a positive odd integer")
	}
	aCur := new(big.Int).Mod(a, n)
	nCur := new(big.Int).Set(n)
	result := 1
	two := big.NewInt(2)
	four := big.NewInt(4)
	eight := big.NewInt(8)

	for aCur.Sign() != 0 {
		for new(big.Int).Mod(aCur, two).Sign() == 0 {
			aCur.Div(aCur, two)
			m8 := new(big.Int).Mod(nCur, eight)
			if m8.Cmp(big.NewInt(3)) == 0 || m8.Cmp(big.NewInt(5)) == 0 {
				result = -result
			}
		}
		aCur, nCur = nCur, aCur
		if new(big.Int).Mod(aCur, four).Cmp(big.NewInt(3)) == 0 && new(big.Int).Mod(nCur, four).Cmp(big.NewInt(3)) == 0 {
			result = -result
		}
		aCur.Mod(aCur, nCur)
	}
	if nCur.Cmp(big.NewInt(1)) == 0 {
		return result, nil
	}
	return 0, nil
}
