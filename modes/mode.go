// Package modes implements the seven block-cipher modes of operation:
// ECB, CBC, PCBC, CFB, OFB, CTR, and RANDOM_DELTA. Each mode exposes both
// whole-buffer and streaming entry points and dispatches independent block
// work through workerpool.Pool.
package modes

import (
	"io"

	"github.com/dkrasnov/symengine/padding"
	"github.com/dkrasnov/symengine/rng"
	"github.com/dkrasnov/symengine/workerpool"
	"github.com/dkrasnov/symengine/xorutil"
)

// Primitive is the capability set a mode engine needs from a block cipher:
// a fixed block size and single-block encrypt/decrypt. RC4's
// stream capability set is deliberately excluded; no mode in this package
// drives RC4.
type Primitive interface {
	BlockSize() int
	EncryptBlock(block []byte) ([]byte, error)
	DecryptBlock(block []byte) ([]byte, error)
}

// Mode is the narrow interface every concrete mode engine satisfies.
type Mode interface {
	Name() string
	EncryptBytes(data []byte) ([]byte, error)
	DecryptBytes(data []byte) ([]byte, error)
	EncryptStream(r io.Reader, w io.Writer, chunkSize int) error
	DecryptStream(r io.Reader, w io.Writer, chunkSize int) error
}

// base carries the fields every mode shares.
type base struct {
	primitive Primitive
	padding   padding.Scheme
	pool      *workerpool.Pool
	iv        []byte
	rng       rng.Source
}

func newBase(primitive Primitive, pad padding.Scheme, pool *workerpool.Pool, iv []byte, source rng.Source) base {
	if pool == nil {
		pool = workerpool.New(0)
	}
	if source == nil {
		source = rng.Default()
	}
	return base{primitive: primitive, padding: pad, pool: pool, iv: iv, rng: source}
}

func (b base) blockSize() int { return b.primitive.BlockSize() }

func (b base) randomBytes(n int) ([]byte, error) {
	return rng.Bytes(b.rng, n)
}

func splitBlocks(data []byte, blockSize int) [][]byte {
	n := len(data) / blockSize
	blocks := make([][]byte, n)
	for i := 0; i < n; i++ {
		blocks[i] = data[i*blockSize : (i+1)*blockSize]
	}
	return blocks
}

// xorBytes XORs a and b block-wise, delegating to xorutil's SIMD-accelerated
// implementation rather than a hand-rolled loop.
func xorBytes(a, b []byte) []byte {
	return xorutil.Bytes(a, b)
}

// chunkReader carries a carry buffer across successive Read calls so each
// mode's streaming path can split a chunk into whole blocks plus a
// leftover residue.
type chunkReader struct {
	r         io.Reader
	chunkSize int
	carry     []byte
}

func newChunkReader(r io.Reader, chunkSize int) *chunkReader {
	return &chunkReader{r: r, chunkSize: chunkSize}
}

// next reads one chunk, prepends the carry, and returns the full-block
// portion and keeps the new residue in the carry. ok is false once the
// source is exhausted with no further data; that final call returns no
// bytes, and any leftover partial block is read with residue().
func (c *chunkReader) next(blockSize int) (full []byte, ok bool, err error) {
	buf := make([]byte, c.chunkSize)
	n, rerr := c.r.Read(buf)
	if n == 0 {
		if rerr == io.EOF || rerr == nil {
			return nil, false, nil
		}
		return nil, false, rerr
	}
	data := append(c.carry, buf[:n]...)
	fullLen := (len(data) / blockSize) * blockSize
	full, c.carry = data[:fullLen], data[fullLen:]
	return full, true, nil
}

func (c *chunkReader) residue() []byte { return c.carry }
