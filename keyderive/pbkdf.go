// Package keyderive turns a passphrase into a fixed-size symmetric key via
// PBKDF2, for callers that would rather type a passphrase than manage raw
// key bytes.
package keyderive

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/dkrasnov/symengine/errs"
	"golang.org/x/crypto/pbkdf2"
)

// HashFunc selects the PBKDF2 pseudorandom function.
type HashFunc int

const (
	SHA256 HashFunc = iota
	SHA512
)

// MinIterations is the lowest iteration count this package accepts.
const MinIterations = 100_000

// Params configures key derivation.
type Params struct {
	Iterations int
	KeySize    int
	Hash       HashFunc
}

// DefaultParams returns a conservative default: 210,000 SHA-256 iterations
// producing a 32-byte key, comfortably above MinIterations.
func DefaultParams() Params {
	return Params{Iterations: 210_000, KeySize: 32, Hash: SHA256}
}

// Derive runs PBKDF2 over password and salt, producing params.KeySize bytes.
func Derive(password, salt []byte, params Params) ([]byte, error) {
	if params.Iterations < MinIterations {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "keyderive: iteration count below minimum")
	}
	if params.KeySize < 1 {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "keyderive: key size must be positive")
	}
	var hashFunc func() hash.Hash
	switch params.Hash {
	case SHA256:
		hashFunc = sha256.New
	case SHA512:
		hashFunc = sha512.New
	default:
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "keyderive: unsupported hash function")
	}
	return pbkdf2.Key(password, salt, params.Iterations, params.KeySize, hashFunc), nil
}
