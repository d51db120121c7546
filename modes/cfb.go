package modes

import (
	"io"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/padding"
	"github.com/dkrasnov/symengine/rng"
	"github.com/dkrasnov/symengine/workerpool"
)

// CFB generates a keystream as S_i = E_K(C_{i-1}), C_0 = IV, and XORs it
// against plaintext: C_i = P_i XOR S_i. No padding is applied; tail bytes
// are XORed against a truncated keystream block. Decryption parallelises
// because every E_K input is a previously known ciphertext block.
type CFB struct{ base }

// NewCFB constructs a CFB mode engine.
func NewCFB(primitive Primitive, pad padding.Scheme, pool *workerpool.Pool, iv []byte, source rng.Source) *CFB {
	return &CFB{base: newBase(primitive, pad, pool, iv, source)}
}

func (m *CFB) Name() string { return "CFB" }

func (m *CFB) EncryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	iv := m.iv
	var err error
	if iv == nil {
		iv, err = m.randomBytes(bs)
		if err != nil {
			return nil, err
		}
	}
	fullCount := len(data) / bs
	full := data[:fullCount*bs]
	tail := data[fullCount*bs:]

	prevCipher := iv
	out := [][]byte{iv}
	for _, block := range splitBlocks(full, bs) {
		s, err := m.primitive.EncryptBlock(prevCipher)
		if err != nil {
			return nil, err
		}
		c := xorBytes(block, s)
		out = append(out, c)
		prevCipher = c
	}
	if len(tail) > 0 {
		s, err := m.primitive.EncryptBlock(prevCipher)
		if err != nil {
			return nil, err
		}
		out = append(out, xorBytes(tail, s[:len(tail)]))
	}
	return joinBlocks(out), nil
}

func (m *CFB) DecryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	if len(data) < bs {
		return nil, errs.Wrap(errs.ErrCiphertextTooShort, "cfb: ciphertext shorter than one block")
	}
	iv := data[:bs]
	ciphertext := data[bs:]
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}
	fullCount := len(ciphertext) / bs
	full := ciphertext[:fullCount*bs]
	tail := ciphertext[fullCount*bs:]

	var out [][]byte
	var prevCipher []byte
	if len(full) > 0 {
		cipherBlocks := splitBlocks(full, bs)
		inputs := append([][]byte{iv}, cipherBlocks[:len(cipherBlocks)-1]...)
		keystreams, err := workerpool.Map(m.pool, inputs, m.primitive.EncryptBlock)
		if err != nil {
			return nil, err
		}
		for i, c := range cipherBlocks {
			out = append(out, xorBytes(c, keystreams[i]))
		}
		prevCipher = cipherBlocks[len(cipherBlocks)-1]
	} else {
		prevCipher = iv
	}
	if len(tail) > 0 {
		s, err := m.primitive.EncryptBlock(prevCipher)
		if err != nil {
			return nil, err
		}
		out = append(out, xorBytes(tail, s[:len(tail)]))
	}
	return joinBlocks(out), nil
}

func (m *CFB) EncryptStream(r io.Reader, w io.Writer, chunkSize int) error {
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
	prevCipher := iv
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
			s, err := m.primitive.EncryptBlock(prevCipher)
			if err != nil {
				return err
			}
			out := xorBytes(block, s)
			if _, err := w.Write(out); err != nil {
				return err
			}
			prevCipher = out
		}
	}
	if residue := cr.residue(); len(residue) > 0 {
		s, err := m.primitive.EncryptBlock(prevCipher)
		if err != nil {
			return err
		}
		_, err = w.Write(xorBytes(residue, s[:len(residue)]))
		return err
	}
	return nil
}

func (m *CFB) DecryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
	ivBuf := make([]byte, bs)
	if _, err := io.ReadFull(r, ivBuf); err != nil {
		return errs.Wrap(errs.ErrCiphertextTooShort, "cfb: ciphertext shorter than one block")
	}
	prevCipher := ivBuf
	cr := newChunkReader(r, chunkSize)
	for {
		full, ok, err := cr.next(bs)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if len(full) > 0 {
			cipherBlocks := splitBlocks(full, bs)
			inputs := append([][]byte{prevCipher}, cipherBlocks[:len(cipherBlocks)-1]...)
			keystreams, err := workerpool.Map(m.pool, inputs, m.primitive.EncryptBlock)
			if err != nil {
				return err
			}
			for i, c := range cipherBlocks {
				if _, err := w.Write(xorBytes(c, keystreams[i])); err != nil {
					return err
				}
			}
			prevCipher = cipherBlocks[len(cipherBlocks)-1]
		}
	}
	if residue := cr.residue(); len(residue) > 0 {
		s, err := m.primitive.EncryptBlock(prevCipher)
		if err != nil {
			return err
		}
		_, err = w.Write(xorBytes(residue, s[:len(residue)]))
		return err
	}
	return nil
}
