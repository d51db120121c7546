// Package feistel implements the generic Feistel network shared by DES and
// DEAL.
package feistel

import (
	"fmt"

	"github.com/dkrasnov/symengine/errs"
)

// KeySchedule derives an ordered sequence of round keys from a master key.
type KeySchedule interface {
	ExpandKey(key []byte) ([][]byte, error)
}

// RoundFunction is the per-round F(half, roundKey) of a Feistel network. It
// must be pure over its two inputs.
type RoundFunction interface {
	Apply(half, roundKey []byte) ([]byte, error)
}

// Engine runs a fixed-round-count Feistel network over even-length blocks.
// It is the sole mechanism DES and DEAL use for their block transform; each
// primitive wraps Engine with its own pre/post permutation (DES's IP/FP) or
// none at all (DEAL).
type Engine struct {
	schedule  KeySchedule
	round     RoundFunction
	blockSize int
	numRounds int
	roundKeys [][]byte
}

// New constructs a Feistel engine. blockSize must be even.
func New(schedule KeySchedule, round RoundFunction, blockSize, numRounds int) (*Engine, error) {
	if blockSize%2 != 0 {
		return nil, errs.Wrap(errs.ErrInvalidBlockSize, "feistel: block size must be even")
	}
	return &Engine{schedule: schedule, round: round, blockSize: blockSize, numRounds: numRounds}, nil
}

// BlockSize returns the engine's fixed block size in bytes.
func (e *Engine) BlockSize() int { return e.blockSize }

// SetKeys expands the master key and retains the first numRounds round keys.
func (e *Engine) SetKeys(key []byte) error {
	keys, err := e.schedule.ExpandKey(key)
	if err != nil {
		return err
	}
	if len(keys) < e.numRounds {
		return errs.Wrap(errs.ErrInvalidKeySize, fmt.Sprintf("feistel: key schedule produced %d round keys, need %d", len(keys), e.numRounds))
	}
	e.roundKeys = keys[:e.numRounds]
	return nil
}

// EncryptBlock runs L_{i+1}=R_i, R_{i+1}=L_i XOR F(R_i,K_i) for i=0..R-1 and
// returns L_R ‖ R_R with no final half-swap.
func (e *Engine) EncryptBlock(block []byte) ([]byte, error) {
	if len(block) != e.blockSize {
		return nil, errs.Wrap(errs.ErrInvalidBlockSize, "feistel: encrypt input length mismatch")
	}
	half := e.blockSize / 2
	l := append([]byte(nil), block[:half]...)
	r := append([]byte(nil), block[half:]...)

	for i := 0; i < e.numRounds; i++ {
		f, err := e.round.Apply(r, e.roundKeys[i])
		if err != nil {
			return nil, err
		}
		newR := xor(l, f)
		l, r = r, newR
	}
	return append(append([]byte{}, l...), r...), nil
}

// DecryptBlock runs the mirror recurrence with round keys consumed in
// reverse: for i=R-1..0, (L,R) <- (R XOR F(L,K_i), L).
func (e *Engine) DecryptBlock(block []byte) ([]byte, error) {
	if len(block) != e.blockSize {
		return nil, errs.Wrap(errs.ErrInvalidBlockSize, "feistel: decrypt input length mismatch")
	}
	half := e.blockSize / 2
	l := append([]byte(nil), block[:half]...)
	r := append([]byte(nil), block[half:]...)

	for i := e.numRounds - 1; i >= 0; i-- {
		f, err := e.round.Apply(l, e.roundKeys[i])
		if err != nil {
			return nil, err
		}
		newL := xor(r, f)
		r, l = l, newL
	}
	return append(append([]byte{}, l...), r...), nil
}

func xor(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
