package modes

import (
	"io"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/padding"
	"github.com/dkrasnov/symengine/rng"
	"github.com/dkrasnov/symengine/workerpool"
)

// PCBC chains C_i = E_K(P_i XOR P_{i-1} XOR C_{i-1}), P_0 = 0, C_0 = IV.
// Error propagation is inherent to the construction.
type PCBC struct{ base }

// NewPCBC constructs a PCBC mode engine.
func NewPCBC(primitive Primitive, pad padding.Scheme, pool *workerpool.Pool, iv []byte, source rng.Source) *PCBC {
	return &PCBC{base: newBase(primitive, pad, pool, iv, source)}
}

func (m *PCBC) Name() string { return "PCBC" }

func (m *PCBC) EncryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	padded, err := m.padding.Pad(data, bs)
	if err != nil {
		return nil, err
	}
	iv := m.iv
	if iv == nil {
		iv, err = m.randomBytes(bs)
		if err != nil {
			return nil, err
		}
	}
	prevCipher := iv
	prevPlain := make([]byte, bs)
	out := [][]byte{iv}
	for _, p := range splitBlocks(padded, bs) {
		c, err := m.primitive.EncryptBlock(xorBytes(p, xorBytes(prevPlain, prevCipher)))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		prevPlain, prevCipher = p, c
	}
	return joinBlocks(out), nil
}

func (m *PCBC) DecryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	if len(data) < bs {
		return nil, errs.Wrap(errs.ErrCiphertextTooShort, "pcbc: ciphertext shorter than one block")
	}
	if (len(data)-bs)%bs != 0 {
		return nil, errs.Wrap(errs.ErrInvalidCiphertextLength, "pcbc: invalid ciphertext length")
	}
	iv := data[:bs]
	cipherBlocks := splitBlocks(data[bs:], bs)
	if len(cipherBlocks) == 0 {
		return []byte{}, nil
	}
	decrypted, err := workerpool.Map(m.pool, cipherBlocks, m.primitive.DecryptBlock)
	if err != nil {
		return nil, err
	}
	prevCipher := iv
	prevPlain := make([]byte, bs)
	plain := make([][]byte, len(decrypted))
	for i, dec := range decrypted {
		p := xorBytes(dec, xorBytes(prevPlain, prevCipher))
		plain[i] = p
		prevPlain = p
		prevCipher = cipherBlocks[i]
	}
	return m.padding.Unpad(joinBlocks(plain), bs)
}

func (m *PCBC) EncryptStream(r io.Reader, w io.Writer, chunkSize int) error {
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
	prevC, prevP := iv, make([]byte, bs)
	cr := newChunkReader(r, chunkSize)
	for {
		full, ok, err := cr.next(bs)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		for _, p := range splitBlocks(full, bs) {
			c, err := m.primitive.EncryptBlock(xorBytes(p, xorBytes(prevP, prevC)))
			if err != nil {
				return err
			}
			if _, err := w.Write(c); err != nil {
				return err
			}
			prevP, prevC = p, c
		}
	}
	padded, err := m.padding.Pad(cr.residue(), bs)
	if err != nil {
		return err
	}
	for _, p := range splitBlocks(padded, bs) {
		c, err := m.primitive.EncryptBlock(xorBytes(p, xorBytes(prevP, prevC)))
		if err != nil {
			return err
		}
		if _, err := w.Write(c); err != nil {
			return err
		}
		prevP, prevC = p, c
	}
	return nil
}

func (m *PCBC) DecryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
	ivBuf := make([]byte, bs)
	if _, err := io.ReadFull(r, ivBuf); err != nil {
		return errs.Wrap(errs.ErrCiphertextTooShort, "pcbc: ciphertext shorter than one block")
	}
	prevC, prevP := ivBuf, make([]byte, bs)
	cr := newChunkReader(r, chunkSize)
	var hold []byte
	haveHold := false
	for {
		full, ok, err := cr.next(bs)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if len(full) > 0 {
			blocks := splitBlocks(full, bs)
			decrypted, err := workerpool.Map(m.pool, blocks, m.primitive.DecryptBlock)
			if err != nil {
				return err
			}
			for i, dec := range decrypted {
				plain := xorBytes(dec, xorBytes(prevP, prevC))
				if haveHold {
					if _, err := w.Write(hold); err != nil {
						return err
					}
				}
				hold = plain
				haveHold = true
				prevP, prevC = plain, blocks[i]
			}
		}
	}
	if len(cr.residue()) != 0 {
		return errs.Wrap(errs.ErrInvalidCiphertextLength, "pcbc: ciphertext length invalid")
	}
	if haveHold {
		out, err := m.padding.Unpad(hold, bs)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return nil
}
