// Package rsakeys implements textbook RSA key generation and raw integer
// encrypt/decrypt, including a deliberately vulnerable small-exponent
// generator for demonstrating the wiener package's attack.
package rsakeys

import (
	"crypto/rand"
	"math/big"

	"github.com/dkrasnov/symengine/bignum"
	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/primality"
)

// PrimalityTest selects which probabilistic test backs prime generation.
type PrimalityTest int

const (
	Fermat PrimalityTest = iota
	SolovayStrassen
	MillerRabin
)

func (t PrimalityTest) test() primality.Test {
	switch t {
	case Fermat:
		return primality.Fermat{}
	case SolovayStrassen:
		return primality.SolovayStrassen{}
	default:
		return primality.MillerRabin{}
	}
}

// PublicKey is an RSA public key (n, e).
type PublicKey struct {
	N, E *big.Int
}

// PrivateKey is an RSA private key (n, d).
type PrivateKey struct {
	N, D *big.Int
}

// EncryptInt computes m^e mod n; m must be strictly less than n.
func (pub *PublicKey) EncryptInt(m *big.Int) (*big.Int, error) {
	if m.Cmp(pub.N) >= 0 {
		return nil, errs.Wrap(errs.ErrMessageTooLarge, "rsakeys: message too large for modulus")
	}
	return bignum.ModPow(m, pub.E, pub.N)
}

// DecryptInt computes c^d mod n.
func (priv *PrivateKey) DecryptInt(c *big.Int) (*big.Int, error) {
	return bignum.ModPow(c, priv.D, priv.N)
}

// Params configures key generation.
type Params struct {
	BitLength      int
	MinProbability float64
	Test           PrimalityTest
	E              int64 // public exponent for the safe path; 0 uses 65537
}

func randomOdd(bits int) (*big.Int, error) {
	val, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	if err != nil {
		return nil, err
	}
	val.SetBit(val, 0, 1)
	val.SetBit(val, bits-1, 1)
	return val, nil
}

func genPrime(bits int, p Params) (*big.Int, error) {
	test := p.Test.test()
	for {
		cand, err := randomOdd(bits)
		if err != nil {
			return nil, err
		}
		ok, err := primality.IsPrime(test, cand, p.MinProbability)
		if err != nil {
			return nil, err
		}
		if ok {
			return cand, nil
		}
	}
}

func validateParams(p Params) error {
	if p.MinProbability < 0.5 || p.MinProbability >= 1.0 {
		return errs.Wrap(errs.ErrInvalidKeySize, "rsakeys: min probability must be in [0.5, 1)")
	}
	if p.BitLength < 512 {
		return errs.Wrap(errs.ErrInvalidKeySize, "rsakeys: bit length must be >= 512")
	}
	return nil
}

// fermatSafe reports abs(p-q)^4 > p*q, guarding against Fermat factorization.
func fermatSafe(p, q *big.Int) bool {
	diff := new(big.Int).Sub(p, q)
	diff.Abs(diff)
	lhs := new(big.Int).Exp(diff, big.NewInt(4), nil)
	rhs := new(big.Int).Mul(p, q)
	return lhs.Cmp(rhs) > 0
}

// wienerSafe reports d^4 > n, guarding against the wiener package's attack.
func wienerSafe(n, d *big.Int) bool {
	lhs := new(big.Int).Exp(d, big.NewInt(4), nil)
	return lhs.Cmp(n) > 0
}

// Generate produces a Wiener- and Fermat-resistant RSA key pair.
func Generate(p Params) (*PublicKey, *PrivateKey, error) {
	if err := validateParams(p); err != nil {
		return nil, nil, err
	}
	e := p.E
	if e == 0 {
		e = 65537
	}
	eBig := big.NewInt(e)
	half := p.BitLength / 2

	for {
		pp, err := genPrime(half, p)
		if err != nil {
			return nil, nil, err
		}
		q, err := genPrime(p.BitLength-half, p)
		if err != nil {
			return nil, nil, err
		}
		if pp.Cmp(q) == 0 {
			continue
		}
		if !fermatSafe(pp, q) {
			continue
		}
		n := new(big.Int).Mul(pp, q)
		if n.BitLen() != p.BitLength {
			continue
		}
		phi := new(big.Int).Mul(
			new(big.Int).Sub(pp, big.NewInt(1)),
			new(big.Int).Sub(q, big.NewInt(1)),
		)

		usedE, d, ok := selectE(eBig, phi)
		if !ok {
			continue
		}
		if new(big.Int).Mod(new(big.Int).Mul(usedE, d), phi).Cmp(big.NewInt(1)) != 0 {
			continue
		}
		if !wienerSafe(n, d) {
			continue
		}
		if bignum.GCD(usedE, phi).Cmp(big.NewInt(1)) != 0 {
			continue
		}
		return &PublicKey{N: n, E: usedE}, &PrivateKey{N: n, D: d}, nil
	}
}

// selectE tries the preferred exponent e against phi first, falling back to
// a random 17-bit odd exponent when e and phi aren't coprime.
func selectE(e, phi *big.Int) (usedE, d *big.Int, ok bool) {
	if bignum.GCD(e, phi).Cmp(big.NewInt(1)) == 0 {
		if dd, ok := selectEDReturn(e, phi); ok {
			return e, dd, true
		}
	}
	return selectRandomED(phi)
}

func selectRandomED(phi *big.Int) (e, d *big.Int, ok bool) {
	for i := 0; i < 10000; i++ {
		cand, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 17))
		if err != nil {
			return nil, nil, false
		}
		cand.SetBit(cand, 0, 1)
		if cand.Cmp(big.NewInt(7)) < 0 || cand.Cmp(phi) >= 0 {
			continue
		}
		if bignum.GCD(cand, phi).Cmp(big.NewInt(1)) != 0 {
			continue
		}
		d, ok := selectEDReturn(cand, phi)
		if ok {
			return cand, d, true
		}
	}
	return nil, nil, false
}

func selectEDReturn(e, phi *big.Int) (*big.Int, bool) {
	g, x, _ := bignum.ExtendedGCD(e, phi)
	if g.Cmp(big.NewInt(1)) != 0 {
		return nil, false
	}
	return new(big.Int).Mod(x, phi), true
}

// GenerateVulnerable produces a key pair with a deliberately small private
// exponent d (16 bits), vulnerable to the wiener package's attack. It
// exists purely to exercise that attack against a genuine key.
func GenerateVulnerable(p Params) (*PublicKey, *PrivateKey, error) {
	if err := validateParams(p); err != nil {
		return nil, nil, err
	}
	half := p.BitLength / 2

	for {
		pp, err := genPrime(half, p)
		if err != nil {
			return nil, nil, err
		}
		q, err := genPrime(p.BitLength-half, p)
		if err != nil {
			return nil, nil, err
		}
		if pp.Cmp(q) == 0 {
			continue
		}
		n := new(big.Int).Mul(pp, q)
		if n.BitLen() != p.BitLength {
			continue
		}
		phi := new(big.Int).Mul(
			new(big.Int).Sub(pp, big.NewInt(1)),
			new(big.Int).Sub(q, big.NewInt(1)),
		)

		e, d, ok := selectVulnerableED(phi)
		if !ok {
			continue
		}
		if new(big.Int).Mod(new(big.Int).Mul(e, d), phi).Cmp(big.NewInt(1)) != 0 {
			continue
		}
		return &PublicKey{N: n, E: e}, &PrivateKey{N: n, D: d}, nil
	}
}

func selectVulnerableED(phi *big.Int) (e, d *big.Int, ok bool) {
	for i := 0; i < 10000; i++ {
		cand, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 16))
		if err != nil {
			return nil, nil, false
		}
		cand.SetBit(cand, 0, 1)
		if cand.Cmp(big.NewInt(3)) < 0 {
			continue
		}
		if bignum.GCD(cand, phi).Cmp(big.NewInt(1)) != 0 {
			continue
		}
		g, x, _ := bignum.ExtendedGCD(cand, phi)
		if g.Cmp(big.NewInt(1)) != 0 {
			continue
		}
		eCand := new(big.Int).Mod(x, phi)
		if eCand.Cmp(big.NewInt(1)) <= 0 {
			continue
		}
		return eCand, cand, true
	}
	return nil, nil, false
}
