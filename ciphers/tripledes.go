package ciphers

import (
	"fmt"

	"github.com/dkrasnov/symengine/errs"
)

// TripleDES chains three DES instances in EDE or EEE composition over
// 8-byte blocks.
type TripleDES struct {
	mode           string // "EDE" or "EEE"
	des1, des2, des3 *DES
}

// NewTripleDES constructs a Triple-DES primitive in the given composition
// mode ("EDE" or "EEE").
func NewTripleDES(mode string) (*TripleDES, error) {
	if mode != "EDE" && mode != "EEE" {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "tripledes: mode must be EDE or EEE")
	}
	return &TripleDES{mode: mode, des1: NewDES(), des2: NewDES(), des3: NewDES()}, nil
}

func (t *TripleDES) Name() string   { return "3DES/" + t.mode }
func (t *TripleDES) BlockSize() int { return desBlockSize }

// SetKeys accepts 14, 16, 21, or 24 byte keys. The 14/21-byte forms are
// 7-byte DES keys that undergo parity expansion inside DES.SetKeys; 16/24
// are three (or two, with K3=K1) 8-byte keys used directly.
func (t *TripleDES) SetKeys(key []byte) error {
	var k1, k2, k3 []byte
	switch len(key) {
	case 24:
		k1, k2, k3 = key[0:8], key[8:16], key[16:24]
	case 21:
		k1, k2, k3 = key[0:7], key[7:14], key[14:21]
	case 16:
		k1, k2 = key[0:8], key[8:16]
		k3 = k1
	case 14:
		k1, k2 = key[0:7], key[7:14]
		k3 = k1
	default:
		return errs.Wrap(errs.ErrInvalidKeySize, fmt.Sprintf("tripledes: key must be 14, 16, 21, or 24 bytes, got %d", len(key)))
	}
	if err := t.des1.SetKeys(k1); err != nil {
		return err
	}
	if err := t.des2.SetKeys(k2); err != nil {
		return err
	}
	return t.des3.SetKeys(k3)
}

func (t *TripleDES) EncryptBlock(block []byte) ([]byte, error) {
	b1, err := t.des1.EncryptBlock(block)
	if err != nil {
		return nil, err
	}
	var b2 []byte
	if t.mode == "EDE" {
		b2, err = t.des2.DecryptBlock(b1)
	} else {
		b2, err = t.des2.EncryptBlock(b1)
	}
	if err != nil {
		return nil, err
	}
	return t.des3.EncryptBlock(b2)
}

func (t *TripleDES) DecryptBlock(block []byte) ([]byte, error) {
	b1, err := t.des3.DecryptBlock(block)
	if err != nil {
		return nil, err
	}
	var b2 []byte
	if t.mode == "EDE" {
		b2, err = t.des2.EncryptBlock(b1)
	} else {
		b2, err = t.des2.DecryptBlock(b1)
	}
	if err != nil {
		return nil, err
	}
	return t.des1.DecryptBlock(b2)
}
