package modes

import (
	"io"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/padding"
	"github.com/dkrasnov/symengine/rng"
	"github.com/dkrasnov/symengine/workerpool"
)

// CTR uses a B/2-byte nonce and a big-endian counter: O_j = E_K(nonce ‖ j),
// C_j = P_j XOR O_j. Every counter value is independent of the data, so
// both directions are fully parallel.
type CTR struct{ base }

// NewCTR constructs a CTR mode engine. nonce, if provided, is the B/2-byte
// nonce; nil draws a fresh one at encrypt time.
func NewCTR(primitive Primitive, pad padding.Scheme, pool *workerpool.Pool, nonce []byte, source rng.Source) *CTR {
	return &CTR{base: newBase(primitive, pad, pool, nonce, source)}
}

func (m *CTR) Name() string { return "CTR" }

type ctrInput struct {
	nonce   []byte
	counter uint64
}

func (m *CTR) counterKeystream(in ctrInput) ([]byte, error) {
	bs := m.blockSize()
	counterBytes := make([]byte, bs/2)
	v := in.counter
	for i := len(counterBytes) - 1; i >= 0; i-- {
		counterBytes[i] = byte(v)
		v >>= 8
	}
	return m.primitive.EncryptBlock(append(append([]byte{}, in.nonce...), counterBytes...))
}

func (m *CTR) crypt(data []byte, nonce []byte) ([]byte, error) {
	bs := m.blockSize()
	fullCount := len(data) / bs
	full := data[:fullCount*bs]
	tail := data[fullCount*bs:]

	blocks := splitBlocks(full, bs)
	inputs := make([]ctrInput, len(blocks))
	for i := range blocks {
		inputs[i] = ctrInput{nonce: nonce, counter: uint64(i)}
	}
	keystreams, err := workerpool.Map(m.pool, inputs, m.counterKeystream)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(blocks)+1)
	for i, block := range blocks {
		out = append(out, xorBytes(block, keystreams[i]))
	}
	if len(tail) > 0 {
		ks, err := m.counterKeystream(ctrInput{nonce: nonce, counter: uint64(len(blocks))})
		if err != nil {
			return nil, err
		}
		out = append(out, xorBytes(tail, ks[:len(tail)]))
	}
	return joinBlocks(out), nil
}

func (m *CTR) EncryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	nonce := m.iv
	var err error
	if nonce == nil {
		nonce, err = m.randomBytes(bs / 2)
		if err != nil {
			return nil, err
		}
	}
	body, err := m.crypt(data, nonce)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, nonce...), body...), nil
}

func (m *CTR) DecryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	if len(data) < bs/2 {
		return nil, errs.Wrap(errs.ErrCiphertextTooShort, "ctr: ciphertext shorter than the nonce")
	}
	nonce := data[:bs/2]
	return m.crypt(data[bs/2:], nonce)
}

func (m *CTR) EncryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
	nonce := m.iv
	var err error
	if nonce == nil {
		nonce, err = m.randomBytes(bs / 2)
		if err != nil {
			return err
		}
	}
	if _, err := w.Write(nonce); err != nil {
		return err
	}
	return m.cryptStream(r, w, chunkSize, nonce)
}

func (m *CTR) DecryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
	nonce := make([]byte, bs/2)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return errs.Wrap(errs.ErrCiphertextTooShort, "ctr: ciphertext shorter than the nonce")
	}
	return m.cryptStream(r, w, chunkSize, nonce)
}

func (m *CTR) cryptStream(r io.Reader, w io.Writer, chunkSize int, nonce []byte) error {
	bs := m.blockSize()
	counter := uint64(0)
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
			blocks := splitBlocks(full, bs)
			inputs := make([]ctrInput, len(blocks))
			for i := range blocks {
				inputs[i] = ctrInput{nonce: nonce, counter: counter + uint64(i)}
			}
			keystreams, err := workerpool.Map(m.pool, inputs, m.counterKeystream)
			if err != nil {
				return err
			}
			for i, block := range blocks {
				if _, err := w.Write(xorBytes(block, keystreams[i])); err != nil {
					return err
				}
			}
			counter += uint64(len(blocks))
		}
	}
	if residue := cr.residue(); len(residue) > 0 {
		ks, err := m.counterKeystream(ctrInput{nonce: nonce, counter: counter})
		if err != nil {
			return err
		}
		_, err = w.Write(xorBytes(residue, ks[:len(residue)]))
		return err
	}
	return nil
}

