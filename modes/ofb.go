package modes

import (
	"io"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/padding"
	"github.com/dkrasnov/symengine/rng"
	"github.com/dkrasnov/symengine/workerpool"
)

// OFB generates a keystream S_i = E_K(S_{i-1}), S_0 = IV, XORed against
// plaintext/ciphertext; both directions are identical and inherently
// sequential.
type OFB struct{ base }

// NewOFB constructs an OFB mode engine.
func NewOFB(primitive Primitive, pad padding.Scheme, pool *workerpool.Pool, iv []byte, source rng.Source) *OFB {
	return &OFB{base: newBase(primitive, pad, pool, iv, source)}
}

func (m *OFB) Name() string { return "OFB" }

func (m *OFB) crypt(data []byte, iv []byte) ([]byte, error) {
	bs := m.blockSize()
	fullCount := len(data) / bs
	full := data[:fullCount*bs]
	tail := data[fullCount*bs:]

	prev := iv
	out := make([][]byte, 0, fullCount+1)
	for _, block := range splitBlocks(full, bs) {
		s, err := m.primitive.EncryptBlock(prev)
		if err != nil {
			return nil, err
		}
		out = append(out, xorBytes(block, s))
		prev = s
	}
	if len(tail) > 0 {
		s, err := m.primitive.EncryptBlock(prev)
		if err != nil {
			return nil, err
		}
		out = append(out, xorBytes(tail, s[:len(tail)]))
	}
	return joinBlocks(out), nil
}

func (m *OFB) EncryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	iv := m.iv
	var err error
	if iv == nil {
		iv, err = m.randomBytes(bs)
		if err != nil {
			return nil, err
		}
	}
	body, err := m.crypt(data, iv)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, iv...), body...), nil
}

func (m *OFB) DecryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	if len(data) < bs {
		return nil, errs.Wrap(errs.ErrCiphertextTooShort, "ofb: ciphertext shorter than one block")
	}
	iv := data[:bs]
	return m.crypt(data[bs:], iv)
}

func (m *OFB) EncryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
	iv := m.iv
	var err error
	if iv == nil {
		iv, err = m.randomBytes(bs)
		if err != nil {
			return err
		}
	}
	if _, err := w.Write(iv); err != nil {
		return err
	}
	return m.cryptStream(r, w, chunkSize, iv)
}

func (m *OFB) DecryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
	ivBuf := make([]byte, bs)
	if _, err := io.ReadFull(r, ivBuf); err != nil {
		return errs.Wrap(errs.ErrCiphertextTooShort, "ofb: ciphertext shorter than one block")
	}
	return m.cryptStream(r, w, chunkSize, ivBuf)
}

func (m *OFB) cryptStream(r io.Reader, w io.Writer, chunkSize int, iv []byte) error {
	bs := m.blockSize()
	prev := iv
	cr := newChunkReader(r, chunkSize)
	for {
		full, ok, err := cr.next(bs)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		for _, block := range splitBlocks(full, bs) {
			s, err := m.primitive.EncryptBlock(prev)
			if err != nil {
				return err
			}
			if _, err := w.Write(xorBytes(block, s)); err != nil {
				return err
			}
			prev = s
		}
	}
	if residue := cr.residue(); len(residue) > 0 {
		s, err := m.primitive.EncryptBlock(prev)
		if err != nil {
			return err
		}
		_, err = w.Write(xorBytes(residue, s[:len(residue)]))
		return err
	}
	return nil
}
