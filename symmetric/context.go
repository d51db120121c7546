// Package symmetric provides the top-level Context API that wires a block
// primitive, a mode of operation, a padding scheme, and a worker
// pool into the four public operations: EncryptBytes, DecryptBytes,
// EncryptFile, DecryptFile.
package symmetric

import (
	"bufio"
	"io"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/modes"
	"github.com/dkrasnov/symengine/padding"
	"github.com/dkrasnov/symengine/rng"
	"github.com/dkrasnov/symengine/workerpool"
)

// DefaultChunkSize is the resident working-set bound for streaming
// entry points absent an explicit override.
const DefaultChunkSize = 1 << 20 // 1 MiB

// ModeName identifies one of the seven supported modes of operation.
type ModeName string

const (
	ECB          ModeName = "ECB"
	CBC          ModeName = "CBC"
	PCBC         ModeName = "PCBC"
	CFB          ModeName = "CFB"
	OFB          ModeName = "OFB"
	CTR          ModeName = "CTR"
	RandomDelta  ModeName = "RANDOM_DELTA"
)

// Config configures a Context.
type Config struct {
	Primitive  modes.Primitive
	Key        []byte
	Mode       ModeName
	Padding    padding.Scheme
	IV         []byte // required length depends on Mode; see ivLength
	MaxWorkers int    // 0 uses workerpool.DefaultWorkers
	RNG        rng.Source
}

// primitiveKeySetter is the key-setup surface of the ciphers.* block
// primitives; kept separate from modes.Primitive, which deliberately has
// no SetKeys so mode engines cannot re-key a primitive mid-message.
type primitiveKeySetter interface {
	SetKeys(key []byte) error
}

// ivLength reports the required IV length in bytes for a mode, or -1 if no
// IV is accepted. RANDOM_DELTA
// ignores any supplied IV on encrypt, so it is not length-validated here.
func ivLength(mode ModeName, blockSize int) int {
	switch mode {
	case ECB, RandomDelta:
		return -1
	case CBC, PCBC, CFB, OFB:
		return blockSize
	case CTR:
		return blockSize / 2
	default:
		return -2
	}
}

// Context binds a keyed primitive, mode engine, and worker pool for one
// logical encryption relationship. Stateless beyond that binding; safe for
// concurrent EncryptBytes/DecryptBytes/EncryptFile/DecryptFile calls.
type Context struct {
	mode modes.Mode
	pool *workerpool.Pool
}

// New validates the configuration, keys the primitive, and constructs the
// requested mode engine.
func New(cfg Config) (*Context, error) {
	setter, ok := cfg.Primitive.(primitiveKeySetter)
	if !ok {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "symmetric: primitive does not accept a key")
	}
	if err := setter.SetKeys(cfg.Key); err != nil {
		return nil, err
	}

	bs := cfg.Primitive.BlockSize()
	switch required := ivLength(cfg.Mode, bs); required {
	case -2:
		return nil, errs.Wrap(errs.ErrUnknownMode, "symmetric: unrecognized mode "+string(cfg.Mode))
	case -1:
		// no IV accepted/validated
	default:
		if cfg.IV != nil && len(cfg.IV) != required {
			return nil, errs.Wrap(errs.ErrInvalidIV, "symmetric: IV length mismatch for mode "+string(cfg.Mode))
		}
	}

	pad := cfg.Padding
	if pad == nil {
		pad = padding.Zeros{}
	}
	pool := workerpool.New(cfg.MaxWorkers)
	source := cfg.RNG
	if source == nil {
		source = rng.Default()
	}

	var mode modes.Mode
	switch cfg.Mode {
	case ECB:
		mode = modes.NewECB(cfg.Primitive, pad, pool, source)
	case CBC:
		mode = modes.NewCBC(cfg.Primitive, pad, pool, cfg.IV, source)
	case PCBC:
		mode = modes.NewPCBC(cfg.Primitive, pad, pool, cfg.IV, source)
	case CFB:
		mode = modes.NewCFB(cfg.Primitive, pad, pool, cfg.IV, source)
	case OFB:
		mode = modes.NewOFB(cfg.Primitive, pad, pool, cfg.IV, source)
	case CTR:
		mode = modes.NewCTR(cfg.Primitive, pad, pool, cfg.IV, source)
	case RandomDelta:
		mode = modes.NewRandomDelta(cfg.Primitive, pad, pool, source)
	default:
		return nil, errs.Wrap(errs.ErrUnknownMode, "symmetric: unrecognized mode "+string(cfg.Mode))
	}

	return &Context{mode: mode, pool: pool}, nil
}

// EncryptBytes encrypts an in-memory buffer.
func (c *Context) EncryptBytes(data []byte) ([]byte, error) { return c.mode.EncryptBytes(data) }

// DecryptBytes decrypts an in-memory buffer.
func (c *Context) DecryptBytes(data []byte) ([]byte, error) { return c.mode.DecryptBytes(data) }

// EncryptFile streams src to dst using chunkSize-byte reads (DefaultChunkSize
// if chunkSize <= 0), bounding resident memory to chunkSize + O(block size).
func (c *Context) EncryptFile(src io.Reader, dst io.Writer, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	w := bufio.NewWriter(dst)
	if err := c.mode.EncryptStream(src, w, chunkSize); err != nil {
		return err
	}
	return w.Flush()
}

// DecryptFile streams src to dst using chunkSize-byte reads (DefaultChunkSize
// if chunkSize <= 0).
func (c *Context) DecryptFile(src io.Reader, dst io.Writer, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	w := bufio.NewWriter(dst)
	if err := c.mode.DecryptStream(src, w, chunkSize); err != nil {
		return err
	}
	return w.Flush()
}
