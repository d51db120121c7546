// Package dh implements Diffie-Hellman key agreement over a randomly
// generated prime modulus.
package dh

import (
	"crypto/rand"
	"math/big"

	"github.com/dkrasnov/symengine/bignum"
	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/primality"
)

// MinProbability is the primality confidence used when generating p.
const MinProbability = 1 - 1e-9

func randomBits(bits int) (*big.Int, error) {
	return rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
}

// generatePrime draws random odd bits-length candidates with the top bit
// forced until one passes Miller-Rabin.
func generatePrime(bits int) (*big.Int, error) {
	for {
		candidate, err := randomBits(bits)
		if err != nil {
			return nil, err
		}
		candidate.SetBit(candidate, 0, 1)
		candidate.SetBit(candidate, bits-1, 1)
		ok, err := primality.IsPrime(primality.MillerRabin{}, candidate, MinProbability)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
	}
}

// GenerateParameters produces a fresh (p, g) pair: p a bits-length prime,
// g a generator candidate in [2, p).
func GenerateParameters(bits int) (p, g *big.Int, err error) {
	if bits < 8 {
		return nil, nil, errs.Wrap(errs.ErrInvalidKeySize, "dh: bit length too small")
	}
	p, err = generatePrime(bits)
	if err != nil {
		return nil, nil, err
	}
	two := big.NewInt(2)
	for {
		g, err = randomBits(bits - 1)
		if err != nil {
			return nil, nil, err
		}
		if g.Cmp(two) >= 0 && g.Cmp(p) < 0 {
			return p, g, nil
		}
	}
}

// Party holds one side's Diffie-Hellman state.
type Party struct {
	BitLength  int
	P, G       *big.Int
	privateKey *big.Int
	PublicKey  *big.Int
}

// New constructs a party with the given bit length; call SetParameters
// (for example with the output of GenerateParameters) before GenerateKeys.
func New(bitLength int) *Party {
	return &Party{BitLength: bitLength}
}

// SetParameters installs the (p, g) agreed with the other party.
func (d *Party) SetParameters(p, g *big.Int) {
	d.P, d.G = p, g
}

// GenerateKeys draws a private exponent and derives the public key
// g^privateKey mod p.
func (d *Party) GenerateKeys() (*big.Int, error) {
	if d.P == nil || d.P.Sign() == 0 {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "dh: parameters not set")
	}
	priv, err := randomBits(d.BitLength - 1)
	if err != nil {
		return nil, err
	}
	d.privateKey = priv
	pub, err := bignum.ModPow(d.G, d.privateKey, d.P)
	if err != nil {
		return nil, err
	}
	d.PublicKey = pub
	return pub, nil
}

// ComputeSharedSecret derives the shared secret from the other party's
// public key.
func (d *Party) ComputeSharedSecret(otherPublicKey *big.Int) (*big.Int, error) {
	return bignum.ModPow(otherPublicKey, d.privateKey, d.P)
}
