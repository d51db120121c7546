package modes

import (
	"io"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/padding"
	"github.com/dkrasnov/symengine/rng"
	"github.com/dkrasnov/symengine/workerpool"
)

// CBC chains blocks as C_i = E_K(P_i XOR C_{i-1}), C_0 = IV. Encryption is
// sequential; decryption applies D_K to all blocks in parallel and XORs
// each result with its predecessor ciphertext.
type CBC struct{ base }

// NewCBC constructs a CBC mode engine. If iv is nil a fresh block-size IV
// is drawn at encrypt time.
func NewCBC(primitive Primitive, pad padding.Scheme, pool *workerpool.Pool, iv []byte, source rng.Source) *CBC {
	return &CBC{base: newBase(primitive, pad, pool, iv, source)}
}

func (m *CBC) Name() string { return "CBC" }

func (m *CBC) EncryptBytes(data []byte) ([]byte, error) {
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
	out := make([][]byte, 0, len(padded)/bs+1)
	out = append(out, iv)
	for _, p := range splitBlocks(padded, bs) {
		c, err := m.primitive.EncryptBlock(xorBytes(p, prevCipher))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		prevCipher = c
	}
	return joinBlocks(out), nil
}

func (m *CBC) DecryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	if len(data) < bs {
		return nil, errs.Wrap(errs.ErrCiphertextTooShort, "cbc: ciphertext shorter than one block")
	}
	iv := data[:bs]
	body := data[bs:]
	if len(body)%bs != 0 {
		return nil, errs.Wrap(errs.ErrInvalidCiphertextLength, "cbc: ciphertext body must be a multiple of the block size")
	}
	cipherBlocks := splitBlocks(body, bs)
	if len(cipherBlocks) == 0 {
		return []byte{}, nil
	}
	decrypted, err := workerpool.Map(m.pool, cipherBlocks, m.primitive.DecryptBlock)
	if err != nil {
		return nil, err
	}
	prevCipher := iv
	plain := make([][]byte, len(decrypted))
	for i, dec := range decrypted {
		plain[i] = xorBytes(dec, prevCipher)
		prevCipher = cipherBlocks[i]
	}
	return m.padding.Unpad(joinBlocks(plain), bs)
}

func (m *CBC) EncryptStream(r io.Reader, w io.Writer, chunkSize int) error {
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
	prevC := iv
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
			c, err := m.primitive.EncryptBlock(xorBytes(p, prevC))
			if err != nil {
				return err
			}
			if _, err := w.Write(c); err != nil {
				return err
			}
			prevC = c
		}
	}
	padded, err := m.padding.Pad(cr.residue(), bs)
	if err != nil {
		return err
	}
	for _, p := range splitBlocks(padded, bs) {
		c, err := m.primitive.EncryptBlock(xorBytes(p, prevC))
		if err != nil {
			return err
		}
		if _, err := w.Write(c); err != nil {
			return err
		}
		prevC = c
	}
	return nil
}

func (m *CBC) DecryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
	ivBuf := make([]byte, bs)
	if _, err := io.ReadFull(r, ivBuf); err != nil {
		return errs.Wrap(errs.ErrCiphertextTooShort, "cbc: ciphertext shorter than one block")
	}
	prevC := ivBuf
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
				plain := xorBytes(dec, prevC)
				if haveHold {
					if _, err := w.Write(hold); err != nil {
						return err
					}
				}
				hold = plain
				haveHold = true
				prevC = blocks[i]
			}
		}
	}
	if len(cr.residue()) != 0 {
		return errs.Wrap(errs.ErrInvalidCiphertextLength, "cbc: ciphertext length invalid")
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
