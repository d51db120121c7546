// Package wiener implements Wiener's continued-fraction attack on RSA keys
// with a small private exponent.
package wiener

import "math/big"

// Result is the outcome of an attack attempt. D and PhiN are nil when no
// convergent yielded a valid factorization.
type Result struct {
	D           *big.Int
	PhiN        *big.Int
	Convergents []Convergent
}

// Convergent is one (k, d) continued-fraction convergent of e/n.
type Convergent struct {
	K, D *big.Int
}

// Attack attempts to recover the private exponent d from a public key (n, e)
// vulnerable to a small d, using e*d - k*phi(n) = 1 and the continued
// fraction expansion of e/n.
func Attack(n, e *big.Int) Result {
	cf := continuedFraction(e, n)
	convs := convergents(cf)

	four := big.NewInt(4)
	for _, c := range convs {
		k, d := c.K, c.D
		if k.Sign() == 0 {
			continue
		}
		edMinus1 := new(big.Int).Sub(new(big.Int).Mul(e, d), big.NewInt(1))
		rem := new(big.Int).Mod(edMinus1, k)
		if rem.Sign() != 0 {
			continue
		}
		phiCandidate := new(big.Int).Div(edMinus1, k)

		// p + q = n - phi(n) + 1; solve x^2 - s*x + n = 0.
		s := new(big.Int).Add(new(big.Int).Sub(n, phiCandidate), big.NewInt(1))
		disc := new(big.Int).Sub(new(big.Int).Mul(s, s), new(big.Int).Mul(four, n))
		if disc.Sign() < 0 {
			continue
		}
		t := new(big.Int).Sqrt(disc)
		if new(big.Int).Mul(t, t).Cmp(disc) != 0 {
			continue
		}
		p := new(big.Int).Div(new(big.Int).Add(s, t), big.NewInt(2))
		q := new(big.Int).Div(new(big.Int).Sub(s, t), big.NewInt(2))
		if p.Sign() <= 0 || q.Sign() <= 0 {
			continue
		}
		if new(big.Int).Mul(p, q).Cmp(n) != 0 {
			continue
		}
		return Result{D: d, PhiN: phiCandidate, Convergents: convs}
	}
	return Result{Convergents: convs}
}

// continuedFraction returns the continued-fraction coefficients of
// numerator/denominator via the Euclidean algorithm.
func continuedFraction(numerator, denominator *big.Int) []*big.Int {
	var a []*big.Int
	n := new(big.Int).Set(numerator)
	d := new(big.Int).Set(denominator)
	for d.Sign() != 0 {
		q, r := new(big.Int), new(big.Int)
		q.QuoRem(n, d, r)
		a = append(a, new(big.Int).Set(q))
		n, d = d, r
	}
	return a
}

// convergents builds the successive (k_i, d_i) convergents of a continued
// fraction from its coefficients.
func convergents(cf []*big.Int) []Convergent {
	convs := make([]Convergent, 0, len(cf))
	pPrev2, pPrev1 := big.NewInt(0), big.NewInt(1)
	qPrev2, qPrev1 := big.NewInt(1), big.NewInt(0)

	for _, a := range cf {
		p := new(big.Int).Add(new(big.Int).Mul(a, pPrev1), pPrev2)
		q := new(big.Int).Add(new(big.Int).Mul(a, qPrev1), qPrev2)
		convs = append(convs, Convergent{K: p, D: q})
		pPrev2, pPrev1 = pPrev1, p
		qPrev2, qPrev1 = qPrev1, q
	}
	return convs
}
