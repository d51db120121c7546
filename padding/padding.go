// Package padding implements the four padding schemes the mode engines
// consume: Zeros, PKCS#7, ANSI X.923, and ISO 10126. All four share one
// peculiarity: data whose length is already a multiple of the block size
// is returned unchanged by Pad, with no extra padding block appended, and
// Unpad tolerates the resulting absent-padding case.
package padding

import (
	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/rng"
)

// Scheme pads a plaintext out to a multiple of the block size before
// encryption, and strips that padding back off after decryption.
type Scheme interface {
	Name() string
	// Pad returns data unchanged if len(data) is already a multiple of
	// blockSize; otherwise it appends bytes per the scheme's layout.
	Pad(data []byte, blockSize int) ([]byte, error)
	// Unpad reverses Pad. It cannot know whether the original plaintext
	// was already block-aligned (and thus unpadded); a block-aligned
	// message whose tail happens to look like valid padding will be
	// truncated. Callers that need to rule that out must track length
	// out of band.
	Unpad(data []byte, blockSize int) ([]byte, error)
}

// Zeros pads with NUL bytes and strips trailing NUL bytes on unpad. It
// cannot distinguish padding from trailing NUL bytes that were part of the
// original message.
type Zeros struct{}

func (Zeros) Name() string { return "ZEROS" }

func (Zeros) Pad(data []byte, blockSize int) ([]byte, error) {
	padLen := blockSize - (len(data) % blockSize)
	if padLen == blockSize {
		return data, nil
	}
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	return out, nil
}

func (Zeros) Unpad(data []byte, blockSize int) ([]byte, error) {
	i := len(data)
	for i > 0 && data[i-1] == 0 {
		i--
	}
	return data[:i], nil
}

// PKCS7 appends padLen copies of the byte padLen.
type PKCS7 struct{}

func (PKCS7) Name() string { return "PKCS7" }

func (PKCS7) Pad(data []byte, blockSize int) ([]byte, error) {
	padLen := blockSize - (len(data) % blockSize)
	if padLen == blockSize {
		return data, nil
	}
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out, nil
}

func (PKCS7) Unpad(data []byte, blockSize int) ([]byte, error) {
	padLen, present, err := readPadLen(data, blockSize)
	if err != nil || !present {
		return data, err
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, errs.Wrap(errs.ErrInvalidPadding, "padding: invalid PKCS7 padding")
		}
	}
	return data[:len(data)-padLen], nil
}

// ANSIX923 fills the pad region with zero bytes except the final length byte.
type ANSIX923 struct{}

func (ANSIX923) Name() string { return "ANSI_X923" }

func (ANSIX923) Pad(data []byte, blockSize int) ([]byte, error) {
	padLen := blockSize - (len(data) % blockSize)
	if padLen == blockSize {
		return data, nil
	}
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	out[len(out)-1] = byte(padLen)
	return out, nil
}

func (ANSIX923) Unpad(data []byte, blockSize int) ([]byte, error) {
	padLen, present, err := readPadLen(data, blockSize)
	if err != nil || !present {
		return data, err
	}
	for _, b := range data[len(data)-padLen : len(data)-1] {
		if b != 0 {
			return nil, errs.Wrap(errs.ErrInvalidPadding, "padding: invalid ANSI X.923 padding")
		}
	}
	return data[:len(data)-padLen], nil
}

// ISO10126 fills the pad region with cryptographically random bytes except
// the final length byte; unpad cannot and does not verify the filler.
type ISO10126 struct {
	Source rng.Source
}

func (ISO10126) Name() string { return "ISO10126" }

func (s ISO10126) Pad(data []byte, blockSize int) ([]byte, error) {
	padLen := blockSize - (len(data) % blockSize)
	if padLen == blockSize {
		return data, nil
	}
	src := s.Source
	if src == nil {
		src = rng.Default()
	}
	filler, err := rng.Bytes(src, padLen-1)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(data)+padLen)
	out = append(out, data...)
	out = append(out, filler...)
	out = append(out, byte(padLen))
	return out, nil
}

func (ISO10126) Unpad(data []byte, blockSize int) ([]byte, error) {
	padLen, present, err := readPadLen(data, blockSize)
	if err != nil || !present {
		return data, err
	}
	return data[:len(data)-padLen], nil
}

// readPadLen reads the trailing length byte. Because Pad leaves
// block-aligned input untouched, a decrypted message may carry no padding
// at all; a length byte outside [1, blockSize] (and the empty message) is
// therefore reported as absent padding rather than an error. A length byte
// inside the range that fails the scheme's own byte check still rejects.
func readPadLen(data []byte, blockSize int) (padLen int, present bool, err error) {
	if len(data) == 0 {
		return 0, false, nil
	}
	if len(data)%blockSize != 0 {
		return 0, false, errs.Wrap(errs.ErrInvalidPadding, "padding: padded data length invalid")
	}
	padLen = int(data[len(data)-1])
	if padLen < 1 || padLen > blockSize {
		return 0, false, nil
	}
	return padLen, true, nil
}

// ByName resolves a scheme by its string tag.
func ByName(name string) (Scheme, error) {
	switch name {
	case "ZEROS":
		return Zeros{}, nil
	case "PKCS7":
		return PKCS7{}, nil
	case "ANSI_X923":
		return ANSIX923{}, nil
	case "ISO10126":
		return ISO10126{}, nil
	default:
		return nil, errs.Wrap(errs.ErrUnknownPadding, "padding: unknown scheme "+name)
	}
}
