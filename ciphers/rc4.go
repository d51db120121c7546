package ciphers

import "github.com/dkrasnov/symengine/errs"

// RC4 is the classic KSA+PRGA stream cipher.
//
// RC4 carries mutable keystream state (S, i, j) across calls and is NOT
// safe to share across goroutines or route through the worker pool: two
// concurrent callers consuming the same instance's keystream would corrupt
// each other's output. Each parallel consumer must hold its own RC4 value
// keyed independently, or the caller must serialize access.
type RC4 struct {
	key  []byte
	s    [256]byte
	i, j int
	init bool
}

// NewRC4 constructs an unkeyed RC4 instance.
func NewRC4() *RC4 {
	return &RC4{}
}

func (r *RC4) Name() string { return "RC4" }

// BlockSize reports 0: RC4 is a stream cipher with no fixed block size.
func (r *RC4) BlockSize() int { return 0 }

// SetKeys runs the key-scheduling algorithm (KSA) over a 1..256 byte key.
func (r *RC4) SetKeys(key []byte) error {
	if len(key) < 1 || len(key) > 256 {
		return errs.Wrap(errs.ErrInvalidKeySize, "rc4: key length must be between 1 and 256 bytes")
	}
	r.key = append([]byte(nil), key...)
	for i := 0; i < 256; i++ {
		r.s[i] = byte(i)
	}
	j := 0
	for i := 0; i < 256; i++ {
		j = (j + int(r.s[i]) + int(r.key[i%len(r.key)])) % 256
		r.s[i], r.s[j] = r.s[j], r.s[i]
	}
	r.i, r.j = 0, 0
	r.init = true
	return nil
}

// keystream advances the PRGA state and returns length bytes of keystream.
func (r *RC4) keystream(length int) ([]byte, error) {
	if !r.init {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "rc4: key not set")
	}
	out := make([]byte, length)
	for n := 0; n < length; n++ {
		r.i = (r.i + 1) % 256
		r.j = (r.j + int(r.s[r.i])) % 256
		r.s[r.i], r.s[r.j] = r.s[r.j], r.s[r.i]
		out[n] = r.s[(int(r.s[r.i])+int(r.s[r.j]))%256]
	}
	return out, nil
}

// Crypt XORs data with the next len(data) keystream bytes; since RC4 is an
// XOR stream cipher this is identical for encryption and decryption,
// provided callers never re-key and reuse the same stream position.
func (r *RC4) Crypt(data []byte) ([]byte, error) {
	ks, err := r.keystream(len(data))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ ks[i]
	}
	return out, nil
}
