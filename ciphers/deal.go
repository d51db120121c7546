package ciphers

import (
	"fmt"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/feistel"
)

const dealBlockSize = 16

var dealConstantKey = []byte{0x12, 0x34, 0x56, 0x78, 0x90, 0xab, 0xcd, 0xef}

// dealKeySchedule implements feistel.KeySchedule for DEAL: round keys are
// derived by chaining DES (keyed by a fixed constant) over the master key's
// 64-bit blocks, XORing a positional bit mask at specified steps.
type dealKeySchedule struct {
	keySizeBits int
}

func (s dealKeySchedule) ExpandKey(key []byte) ([][]byte, error) {
	expectedBytes := s.keySizeBits / 8
	if len(key) != expectedBytes {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, fmt.Sprintf("deal: master key must be %d bytes for %d-bit DEAL", expectedBytes, s.keySizeBits))
	}

	numBlocks := s.keySizeBits / 64
	blocks := make([][]byte, numBlocks)
	for i := 0; i < numBlocks; i++ {
		blocks[i] = key[i*8 : i*8+8]
	}

	des := NewDES()
	if err := des.SetKeys(dealConstantKey); err != nil {
		return nil, err
	}
	e := func(x []byte) ([]byte, error) { return des.EncryptBlock(x) }

	xor := func(a, b []byte) []byte {
		out := make([]byte, len(a))
		for i := range a {
			out[i] = a[i] ^ b[i]
		}
		return out
	}
	mask := func(bitPosition int) []byte {
		m := make([]byte, 8)
		bit := 64 - bitPosition
		m[7-bit/8] = 1 << uint(bit%8)
		return m
	}

	var rks [][]byte
	switch s.keySizeBits {
	case 128:
		k1, k2 := blocks[0], blocks[1]
		rk1, err := e(k1)
		if err != nil {
			return nil, err
		}
		rk2, err := e(xor(k2, rk1))
		if err != nil {
			return nil, err
		}
		rk3, err := e(xor(xor(k1, mask(1)), rk2))
		if err != nil {
			return nil, err
		}
		rk4, err := e(xor(xor(k2, mask(2)), rk3))
		if err != nil {
			return nil, err
		}
		rk5, err := e(xor(xor(k1, mask(4)), rk4))
		if err != nil {
			return nil, err
		}
		rk6, err := e(xor(xor(k2, mask(8)), rk5))
		if err != nil {
			return nil, err
		}
		rks = [][]byte{rk1, rk2, rk3, rk4, rk5, rk6}

	case 192:
		k1, k2, k3 := blocks[0], blocks[1], blocks[2]
		rk1, err := e(k1)
		if err != nil {
			return nil, err
		}
		rk2, err := e(xor(k2, rk1))
		if err != nil {
			return nil, err
		}
		rk3, err := e(xor(xor(k1, mask(1)), rk2))
		if err != nil {
			return nil, err
		}
		rk4, err := e(xor(xor(k2, mask(1)), rk3))
		if err != nil {
			return nil, err
		}
		rk5, err := e(xor(xor(k1, mask(2)), rk4))
		if err != nil {
			return nil, err
		}
		rk6, err := e(xor(xor(k3, mask(4)), rk5))
		if err != nil {
			return nil, err
		}
		rks = [][]byte{rk1, rk2, rk3, rk4, rk5, rk6}

	case 256:
		k1, k2, k3, k4 := blocks[0], blocks[1], blocks[2], blocks[3]
		rk1, err := e(k1)
		if err != nil {
			return nil, err
		}
		rk2, err := e(xor(k2, rk1))
		if err != nil {
			return nil, err
		}
		rk3, err := e(xor(k3, rk2))
		if err != nil {
			return nil, err
		}
		rk4, err := e(xor(k4, rk3))
		if err != nil {
			return nil, err
		}
		rk5, err := e(xor(xor(k1, mask(1)), rk4))
		if err != nil {
			return nil, err
		}
		rk6, err := e(xor(xor(k2, mask(2)), rk5))
		if err != nil {
			return nil, err
		}
		rk7, err := e(xor(xor(k3, mask(4)), rk6))
		if err != nil {
			return nil, err
		}
		rk8, err := e(xor(xor(k4, mask(8)), rk7))
		if err != nil {
			return nil, err
		}
		rks = [][]byte{rk1, rk2, rk3, rk4, rk5, rk6, rk7, rk8}

	default:
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "deal: key size must be 128, 192, or 256 bits")
	}

	return rks, nil
}

// dealRoundFunction uses DES, keyed by the current round key, as a
// pseudo-random permutation on the 8-byte half.
type dealRoundFunction struct{}

func (dealRoundFunction) Apply(half, roundKey []byte) ([]byte, error) {
	des := NewDES()
	if err := des.SetKeys(roundKey); err != nil {
		return nil, err
	}
	return des.EncryptBlock(half)
}

// DEAL is a 16-byte-block Feistel cipher built atop DES,
// using 6 rounds for 128/192-bit keys and 8 rounds for 256-bit keys.
type DEAL struct {
	engine      *feistel.Engine
	keySizeBits int
}

// NewDEAL constructs an uninitialized DEAL primitive for the given key size
// in bits (128, 192, or 256).
func NewDEAL(keySizeBits int) (*DEAL, error) {
	if keySizeBits != 128 && keySizeBits != 192 && keySizeBits != 256 {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "deal: key size must be 128, 192, or 256 bits")
	}
	rounds := 6
	if keySizeBits == 256 {
		rounds = 8
	}
	e, err := feistel.New(dealKeySchedule{keySizeBits: keySizeBits}, dealRoundFunction{}, dealBlockSize, rounds)
	if err != nil {
		return nil, err
	}
	return &DEAL{engine: e, keySizeBits: keySizeBits}, nil
}

func (d *DEAL) Name() string     { return fmt.Sprintf("DEAL-%d", d.keySizeBits) }
func (d *DEAL) BlockSize() int   { return dealBlockSize }
func (d *DEAL) SetKeys(key []byte) error {
	return d.engine.SetKeys(key)
}
func (d *DEAL) EncryptBlock(block []byte) ([]byte, error) { return d.engine.EncryptBlock(block) }
func (d *DEAL) DecryptBlock(block []byte) ([]byte, error) { return d.engine.DecryptBlock(block) }
