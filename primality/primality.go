// Package primality implements the probabilistic primality tests backing
// prime generation: Fermat, Miller-Rabin, and Solovay-Strassen, sharing a
// common randomized-witness harness.
package primality

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/dkrasnov/symengine/bignum"
	"github.com/dkrasnov/symengine/errs"
)

// Test is a probabilistic primality test with a per-round error bound.
type Test interface {
	// RequiredRounds returns the number of independent rounds needed to
	// push the false-positive probability below 1-minProbability.
	RequiredRounds(minProbability float64) int
	// iterate runs one round of the test and reports whether n passed.
	iterate(n *big.Int) (bool, error)
}

// IsPrime runs enough independent rounds of test against n to reach
// minProbability confidence, short-circuiting on 2, 3, and even n.
func IsPrime(test Test, n *big.Int, minProbability float64) (bool, error) {
	if n.Cmp(big.NewInt(2)) < 0 {
		return false, errs.Wrap(errs.ErrMessageTooLarge, "primality: n must be >= 2")
	}
	if minProbability < 0.5 || minProbability >= 1.0 {
		return false, errs.Wrap(errs.ErrMessageTooLarge, "primality: min_probability must be in [0.5, 1.0)")
	}
	two, three := big.NewInt(2), big.NewInt(3)
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true, nil
	}
	if new(big.Int).Mod(n, two).Sign() == 0 {
		return false, nil
	}
	rounds := test.RequiredRounds(minProbability)
	for i := 0; i < rounds; i++ {
		ok, err := test.iterate(n)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// randomWitness draws a uniform witness a in [2, n-1-excludeExtra].
func randomWitness(n *big.Int, excludeExtra int64) (*big.Int, error) {
	end := new(big.Int).Sub(n, big.NewInt(1+excludeExtra))
	bitLen := new(big.Int).Sub(n, big.NewInt(1)).BitLen()
	two := big.NewInt(2)
	for {
		a, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), uint(bitLen)))
		if err != nil {
			return nil, err
		}
		if a.Cmp(two) >= 0 && a.Cmp(end) <= 0 {
			return a, nil
		}
	}
}

// Fermat is Fermat's primality test: a^(n-1) = 1 mod n for a random witness
// coprime to n.
type Fermat struct{}

func (Fermat) RequiredRounds(minProbability float64) int {
	return int(math.Ceil(-math.Log2(1 - minProbability)))
}

func (Fermat) iterate(n *big.Int) (bool, error) {
	a, err := randomWitness(n, 0)
	if err != nil {
		return false, err
	}
	if bignum.GCD(a, n).Cmp(big.NewInt(1)) != 0 {
		return false, nil
	}
	res, err := bignum.ModPow(a, new(big.Int).Sub(n, big.NewInt(1)), n)
	if err != nil {
		return false, err
	}
	return res.Cmp(big.NewInt(1)) == 0, nil
}

// MillerRabin is the Miller-Rabin strong probable-prime test.
type MillerRabin struct{}

func (MillerRabin) RequiredRounds(minProbability float64) int {
	return int(math.Ceil(-math.Log(1-minProbability) / math.Log(4)))
}

func factorOutTwos(nMinus1 *big.Int) (s int, t *big.Int) {
	t = new(big.Int).Set(nMinus1)
	two := big.NewInt(2)
	for new(big.Int).Mod(t, two).Sign() == 0 {
		s++
		t.Div(t, two)
	}
	return s, t
}

func (MillerRabin) iterate(n *big.Int) (bool, error) {
	nMinus1 := new(big.Int).Sub(n, big.NewInt(1))
	s, t := factorOutTwos(nMinus1)
	a, err := randomWitness(n, 0)
	if err != nil {
		return false, err
	}
	x, err := bignum.ModPow(a, t, n)
	if err != nil {
		return false, err
	}
	if x.Cmp(big.NewInt(1)) == 0 || x.Cmp(nMinus1) == 0 {
		return true, nil
	}
	for i := 0; i < s-1; i++ {
		x, err = bignum.ModPow(x, big.NewInt(2), n)
		if err != nil {
			return false, err
		}
		if x.Cmp(nMinus1) == 0 {
			return true, nil
		}
		if x.Cmp(big.NewInt(1)) == 0 {
			return false, nil
		}
	}
	return false, nil
}

// SolovayStrassen tests a^((n-1)/2) = (a/n) mod n using the Jacobi symbol
// (see bignum.JacobiSymbol).
type SolovayStrassen struct{}

func (SolovayStrassen) RequiredRounds(minProbability float64) int {
	return int(math.Ceil(-math.Log2(1 - minProbability)))
}

func (SolovayStrassen) iterate(n *big.Int) (bool, error) {
	a, err := randomWitness(n, 0)
	if err != nil {
		return false, err
	}
	if bignum.GCD(a, n).Cmp(big.NewInt(1)) != 0 {
		return false, nil
	}
	jacobi, err := bignum.JacobiSymbol(a, n)
	if err != nil {
		return false, err
	}
	expected := new(big.Int).Mod(big.NewInt(int64(jacobi)), n)
	exp := new(big.Int).Rsh(new(big.Int).Sub(n, big.NewInt(1)), 1)
	actual, err := bignum.ModPow(a, exp, n)
	if err != nil {
		return false, err
	}
	return actual.Cmp(expected) == 0, nil
}
