package modes

import (
	"io"
	"math/big"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/padding"
	"github.com/dkrasnov/symengine/rng"
	"github.com/dkrasnov/symengine/workerpool"
)

// RandomDelta is a tweakable CBC-like construction unique to this engine:
// a fresh IV and a fresh delta are drawn per message and both travel in the
// header as IV ‖ delta (two full blocks). iv_i advances by delta modulo
// 2^(8B) between blocks; C_i = E_K(P_i XOR iv_i). Interoperability is only
// with itself.
type RandomDelta struct{ base }

// NewRandomDelta constructs a RANDOM_DELTA mode engine. Any configured IV
// is ignored on encrypt: a fresh IV and delta are always drawn.
func NewRandomDelta(primitive Primitive, pad padding.Scheme, pool *workerpool.Pool, source rng.Source) *RandomDelta {
	return &RandomDelta{base: newBase(primitive, pad, pool, nil, source)}
}

func (m *RandomDelta) Name() string { return "RANDOM_DELTA" }

func ivModulus(blockSize int) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(blockSize*8))
	return mod
}

func incrementIV(iv []byte, delta *big.Int, modulus *big.Int) []byte {
	ivInt := new(big.Int).SetBytes(iv)
	next := new(big.Int).Add(ivInt, delta)
	next.Mod(next, modulus)
	out := make([]byte, len(iv))
	next.FillBytes(out)
	return out
}

func (m *RandomDelta) EncryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	padded, err := m.padding.Pad(data, bs)
	if err != nil {
		return nil, err
	}
	iv, err := m.randomBytes(bs)
	if err != nil {
		return nil, err
	}
	deltaBytes, err := m.randomBytes(bs)
	if err != nil {
		return nil, err
	}
	delta := new(big.Int).SetBytes(deltaBytes)
	modulus := ivModulus(bs)

	currentIV := iv
	out := [][]byte{iv, deltaBytes}
	for _, p := range splitBlocks(padded, bs) {
		c, err := m.primitive.EncryptBlock(xorBytes(p, currentIV))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		currentIV = incrementIV(currentIV, delta, modulus)
	}
	return joinBlocks(out), nil
}

func (m *RandomDelta) DecryptBytes(data []byte) ([]byte, error) {
	bs := m.blockSize()
	if len(data) < bs*2 {
		return nil, errs.Wrap(errs.ErrCiphertextTooShort, "random_delta: ciphertext shorter than the header")
	}
	iv := data[:bs]
	deltaBytes := data[bs : bs*2]
	ciphertext := data[bs*2:]
	if len(ciphertext)%bs != 0 {
		return nil, errs.Wrap(errs.ErrInvalidCiphertextLength, "random_delta: ciphertext body must be a multiple of the block size")
	}
	delta := new(big.Int).SetBytes(deltaBytes)
	modulus := ivModulus(bs)

	cipherBlocks := splitBlocks(ciphertext, bs)
	decrypted, err := workerpool.Map(m.pool, cipherBlocks, m.primitive.DecryptBlock)
	if err != nil {
		return nil, err
	}
	currentIV := iv
	plain := make([][]byte, len(decrypted))
	for i, dec := range decrypted {
		plain[i] = xorBytes(dec, currentIV)
		currentIV = incrementIV(currentIV, delta, modulus)
	}
	return m.padding.Unpad(joinBlocks(plain), bs)
}

func (m *RandomDelta) EncryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
	iv, err := m.randomBytes(bs)
	if err != nil {
		return err
	}
	deltaBytes, err := m.randomBytes(bs)
	if err != nil {
		return err
	}
	if _, err := w.Write(iv); err != nil {
		return err
	}
	if _, err := w.Write(deltaBytes); err != nil {
		return err
	}
	delta := new(big.Int).SetBytes(deltaBytes)
	modulus := ivModulus(bs)
	currentIV := iv

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
			c, err := m.primitive.EncryptBlock(xorBytes(p, currentIV))
			if err != nil {
				return err
			}
			if _, err := w.Write(c); err != nil {
				return err
			}
			currentIV = incrementIV(currentIV, delta, modulus)
		}
	}
	padded, err := m.padding.Pad(cr.residue(), bs)
	if err != nil {
		return err
	}
	for _, p := range splitBlocks(padded, bs) {
		c, err := m.primitive.EncryptBlock(xorBytes(p, currentIV))
		if err != nil {
			return err
		}
		if _, err := w.Write(c); err != nil {
			return err
		}
		currentIV = incrementIV(currentIV, delta, modulus)
	}
	return nil
}

func (m *RandomDelta) DecryptStream(r io.Reader, w io.Writer, chunkSize int) error {
	bs := m.blockSize()
	header := make([]byte, bs*2)
	if _, err := io.ReadFull(r, header); err != nil {
		return errs.Wrap(errs.ErrCiphertextTooShort, "random_delta: ciphertext shorter than the header")
	}
	iv := header[:bs]
	delta := new(big.Int).SetBytes(header[bs:])
	modulus := ivModulus(bs)
	currentIV := iv

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
			for _, dec := range decrypted {
				plain := xorBytes(dec, currentIV)
				if haveHold {
					if _, err := w.Write(hold); err != nil {
						return err
					}
				}
				hold = plain
				haveHold = true
				currentIV = incrementIV(currentIV, delta, modulus)
			}
		}
	}
	if len(cr.residue()) != 0 {
		return errs.Wrap(errs.ErrInvalidCiphertextLength, "random_delta: ciphertext length invalid")
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
