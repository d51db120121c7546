package modes

import (
	"io"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/padding"
	"github.com/dkrasnov/symengine/rng"
	"github.com/dkrasnov/symengine/workerpool"
)

// ECB encrypts/decrypts each block independently: C_i = E_K(P_i).
type ECB struct{ base }

// NewECB constructs an ECB mode engine. ECB does not use an IV.
func NewECB(primitive Primitive, pad padding.Scheme, pool *workerpool.Pool, source rng.Source) *ECB {
	return &ECB{base: newBase(primitive, pad, pool, nil, source)}
}

func (m *ECB) Name() string { return "ECB" }

func (m *ECB) EncryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	padded, err := m.padding.Pad(data, bs)
	if err != nil {
		return nil, err
	}
	blocks := splitBlocks(padded, bs)
	results, err := workerpool.Map(m.pool, blocks, m.primitive.EncryptBlock)
	if err != nil {
		return nil, err
	}
	return joinBlocks(results), nil
}

func (m *ECB) DecryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	if len(data)%bs != 0 {
		return nil, errs.Wrap(errs.ErrInvalidCiphertextLength, "ecb: ciphertext length must be a multiple of the block size")
	}
	blocks := splitBlocks(data, bs)
	results, err := workerpool.Map(m.pool, blocks, m.primitive.DecryptBlock)
	if err != nil {
		return nil, err
	}
	return m.padding.Unpad(joinBlocks(results), bs)
}

func (m *ECB) EncryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
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
			if err := encryptBlocksTo(m.pool, m.primitive, full, bs, w); err != nil {
				return err
			}
		}
	}
	padded, err := m.padding.Pad(cr.residue(), bs)
	if err != nil {
		return err
	}
	return encryptBlocksTo(m.pool, m.primitive, padded, bs, w)
}

func (m *ECB) DecryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
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
			results, err := workerpool.Map(m.pool, blocks, m.primitive.DecryptBlock)
			if err != nil {
				return err
			}
			for _, blk := range results {
				if haveHold {
					if _, err := w.Write(hold); err != nil {
						return err
					}
				}
				hold = blk
				haveHold = true
			}
		}
	}
	if len(cr.residue()) != 0 {
		return errs.Wrap(errs.ErrInvalidCiphertextLength, "ecb: ciphertext length must be a multiple of the block size")
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

func joinBlocks(blocks [][]byte) []byte {
	total := 0
	for _, b := range blocks {
		total += len(b)
	}
	out := make([]byte, 0, total)
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

func encryptBlocksTo(pool *workerpool.Pool, primitive Primitive, data []byte, bs int, w io.Writer) error {
	blocks := splitBlocks(data, bs)
	results, err := workerpool.Map(pool, blocks, primitive.EncryptBlock)
	if err != nil {
		return err
	}
	_, err = w.Write(joinBlocks(results))
	return err
}
