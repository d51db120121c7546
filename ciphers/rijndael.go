package ciphers

import (
	"fmt"

	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/gf256"
)

// rijndaelSBox derives the Rijndael forward/inverse S-boxes from GF(2^8)
// multiplicative inverses followed by the affine transform, parameterized
// by the same configurable modulus as gf256.
type rijndaelSBox struct {
	modulus uint16
	forward [256]byte
	inverse [256]byte
}

func newRijndaelSBox(modulus uint16) (*rijndaelSBox, error) {
	sb := &rijndaelSBox{modulus: modulus}
	for i := 0; i < 256; i++ {
		var b byte
		if i != 0 {
			inv, err := gf256.Inverse(byte(i), modulus)
			if err != nil {
				return nil, err
			}
			b = inv
		}
		s := b
		s ^= rotl8(b, 1)
		s ^= rotl8(b, 2)
		s ^= rotl8(b, 3)
		s ^= rotl8(b, 4)
		s ^= 0x63
		sb.forward[i] = s
	}
	for s := 0; s < 256; s++ {
		val := byte(s)
		b := rotl8(val, 1)
		b ^= rotl8(val, 3)
		b ^= rotl8(val, 6)
		b ^= 0x05
		var invB byte
		if b != 0 {
			v, err := gf256.Inverse(b, modulus)
			if err != nil {
				return nil, err
			}
			invB = v
		}
		sb.inverse[s] = invB
	}
	return sb, nil
}

func rotl8(b byte, shift uint) byte {
	return (b<<shift | b>>(8-shift)) & 0xFF
}

func (sb *rijndaelSBox) sub(v byte) byte    { return sb.forward[v] }
func (sb *rijndaelSBox) invSub(v byte) byte { return sb.inverse[v] }

// rijndaelKeySchedule produces Nr+1 round keys of Nb*4 bytes each from the
// Nk-word master key using RotWord/SubWord/Rcon.
type rijndaelKeySchedule struct {
	nb, nk, nr int
	sbox       *rijndaelSBox
	modulus    uint16
}

func (s *rijndaelKeySchedule) expandKey(key []byte) ([][]byte, error) {
	if len(key) != s.nk*4 {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, fmt.Sprintf("rijndael: key must be %d bytes", s.nk*4))
	}
	totalWords := s.nb * (s.nr + 1)
	w := make([][4]byte, totalWords)
	for i := 0; i < s.nk; i++ {
		copy(w[i][:], key[4*i:4*i+4])
	}
	for i := s.nk; i < totalWords; i++ {
		temp := w[i-1]
		if i%s.nk == 0 {
			temp = s.rotWord(temp)
			temp = s.subWord(temp)
			rc, err := s.rcon(i / s.nk)
			if err != nil {
				return nil, err
			}
			temp[0] ^= rc
		} else if s.nk > 6 && i%s.nk == 4 {
			temp = s.subWord(temp)
		}
		for j := 0; j < 4; j++ {
			w[i][j] = w[i-s.nk][j] ^ temp[j]
		}
	}
	roundKeys := make([][]byte, s.nr+1)
	for r := 0; r <= s.nr; r++ {
		rk := make([]byte, s.nb*4)
		for c := 0; c < s.nb; c++ {
			word := w[r*s.nb+c]
			copy(rk[c*4:c*4+4], word[:])
		}
		roundKeys[r] = rk
	}
	return roundKeys, nil
}

func (s *rijndaelKeySchedule) rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

func (s *rijndaelKeySchedule) subWord(w [4]byte) [4]byte {
	var res [4]byte
	for i := range w {
		res[i] = s.sbox.sub(w[i])
	}
	return res
}

func (s *rijndaelKeySchedule) rcon(i int) (byte, error) {
	if i == 0 {
		return 0, nil
	}
	val := byte(1)
	for k := 1; k < i; k++ {
		v, err := gf256.Multiply(val, 0x02, s.modulus)
		if err != nil {
			return 0, err
		}
		val = v
	}
	return val, nil
}

// rijndaelShiftOffsets returns the per-row cyclic shift amounts for ShiftRows,
// which depend on the column count (Nb), per the original Rijndael spec.
func rijndaelShiftOffsets(nb int) [4]int {
	if nb == 8 {
		return [4]int{0, 1, 3, 4}
	}
	return [4]int{0, 1, 2, 3}
}

var mixColumnsMatrix = [4][4]byte{
	{0x02, 0x03, 0x01, 0x01},
	{0x01, 0x02, 0x03, 0x01},
	{0x01, 0x01, 0x02, 0x03},
	{0x03, 0x01, 0x01, 0x02},
}

var invMixColumnsMatrix = [4][4]byte{
	{0x0E, 0x0B, 0x0D, 0x09},
	{0x09, 0x0E, 0x0B, 0x0D},
	{0x0D, 0x09, 0x0E, 0x0B},
	{0x0B, 0x0D, 0x09, 0x0E},
}

// Rijndael is the general block cipher parameterized by Nb/Nk word counts in
// {4,6,8} (block/key sizes in {16,24,32} bytes). The
// Nb=4 instances with Nk=4, 6, 8 are AES-128/192/256.
type Rijndael struct {
	blockSize, keySize int
	nb, nk, nr         int
	modulus            uint16
	sbox               *rijndaelSBox
	roundKeys          [][]byte
}

// NewRijndael constructs an uninitialized Rijndael primitive for the given
// block and key sizes in bytes (each in {16,24,32}) and GF(2^8) modulus.
func NewRijndael(blockSize, keySize int, modulus uint16) (*Rijndael, error) {
	if blockSize != 16 && blockSize != 24 && blockSize != 32 {
		return nil, errs.Wrap(errs.ErrInvalidBlockSize, "rijndael: block size must be 16, 24, or 32 bytes")
	}
	if keySize != 16 && keySize != 24 && keySize != 32 {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "rijndael: key size must be 16, 24, or 32 bytes")
	}
	if !gf256.IsIrreducibleDeg8(modulus) {
		return nil, errs.Wrap(errs.ErrReducibleModulus, "rijndael: modulus is not a degree-8 irreducible polynomial")
	}
	nb := blockSize / 4
	nk := keySize / 4
	nr := nb
	if nk > nr {
		nr = nk
	}
	nr += 6
	return &Rijndael{blockSize: blockSize, keySize: keySize, nb: nb, nk: nk, nr: nr, modulus: modulus}, nil
}

func (r *Rijndael) Name() string {
	return fmt.Sprintf("Rijndael-%d-%d", r.blockSize*8, r.keySize*8)
}
func (r *Rijndael) BlockSize() int { return r.blockSize }

func (r *Rijndael) SetKeys(key []byte) error {
	if len(key) != r.keySize {
		return errs.Wrap(errs.ErrInvalidKeySize, fmt.Sprintf("rijndael: key must be %d bytes", r.keySize))
	}
	sbox, err := newRijndaelSBox(r.modulus)
	if err != nil {
		return err
	}
	r.sbox = sbox
	ks := &rijndaelKeySchedule{nb: r.nb, nk: r.nk, nr: r.nr, sbox: sbox, modulus: r.modulus}
	roundKeys, err := ks.expandKey(key)
	if err != nil {
		return err
	}
	r.roundKeys = roundKeys
	return nil
}

func (r *Rijndael) bytesToState(data []byte) [4][]byte {
	state := [4][]byte{}
	for i := 0; i < 4; i++ {
		state[i] = make([]byte, r.nb)
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < r.nb; j++ {
			state[i][j] = data[j*4+i]
		}
	}
	return state
}

func (r *Rijndael) stateToBytes(state [4][]byte) []byte {
	out := make([]byte, r.blockSize)
	for i := 0; i < 4; i++ {
		for j := 0; j < r.nb; j++ {
			out[j*4+i] = state[i][j]
		}
	}
	return out
}

func (r *Rijndael) subBytes(state [4][]byte, inverse bool) [4][]byte {
	var result [4][]byte
	for i := 0; i < 4; i++ {
		result[i] = make([]byte, r.nb)
		for j := 0; j < r.nb; j++ {
			if inverse {
				result[i][j] = r.sbox.invSub(state[i][j])
			} else {
				result[i][j] = r.sbox.sub(state[i][j])
			}
		}
	}
	return result
}

func (r *Rijndael) shiftRows(state [4][]byte, inverse bool) [4][]byte {
	shifts := rijndaelShiftOffsets(r.nb)
	var result [4][]byte
	for row := 0; row < 4; row++ {
		result[row] = make([]byte, r.nb)
		shift := shifts[row]
		for c := 0; c < r.nb; c++ {
			var src int
			if inverse {
				src = (c - shift + r.nb) % r.nb
			} else {
				src = (c + shift) % r.nb
			}
			result[row][c] = state[row][src]
		}
	}
	return result
}

func (r *Rijndael) mixColumns(state [4][]byte, inverse bool) ([4][]byte, error) {
	matrix := mixColumnsMatrix
	if inverse {
		matrix = invMixColumnsMatrix
	}
	var result [4][]byte
	for i := 0; i < 4; i++ {
		result[i] = make([]byte, r.nb)
	}
	for c := 0; c < r.nb; c++ {
		for row := 0; row < 4; row++ {
			var sum byte
			for k := 0; k < 4; k++ {
				prod, err := gf256.Multiply(matrix[row][k], state[k][c], r.modulus)
				if err != nil {
					return result, err
				}
				sum ^= prod
			}
			result[row][c] = sum
		}
	}
	return result, nil
}

func (r *Rijndael) addRoundKey(state [4][]byte, roundKey []byte) [4][]byte {
	var result [4][]byte
	for i := 0; i < 4; i++ {
		result[i] = make([]byte, r.nb)
		for j := 0; j < r.nb; j++ {
			result[i][j] = state[i][j] ^ roundKey[j*4+i]
		}
	}
	return result
}

func (r *Rijndael) EncryptBlock(plaintext []byte) ([]byte, error) {
	if len(plaintext) != r.blockSize {
		return nil, errs.Wrap(errs.ErrInvalidBlockSize, "rijndael: encrypt input length mismatch")
	}
	if r.roundKeys == nil {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "rijndael: key not set")
	}
	state := r.bytesToState(plaintext)
	state = r.addRoundKey(state, r.roundKeys[0])
	var err error
	for round := 1; round < r.nr; round++ {
		state = r.subBytes(state, false)
		state = r.shiftRows(state, false)
		state, err = r.mixColumns(state, false)
		if err != nil {
			return nil, err
		}
		state = r.addRoundKey(state, r.roundKeys[round])
	}
	state = r.subBytes(state, false)
	state = r.shiftRows(state, false)
	state = r.addRoundKey(state, r.roundKeys[r.nr])
	return r.stateToBytes(state), nil
}

func (r *Rijndael) DecryptBlock(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != r.blockSize {
		return nil, errs.Wrap(errs.ErrInvalidBlockSize, "rijndael: decrypt input length mismatch")
	}
	if r.roundKeys == nil {
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "rijndael: key not set")
	}
	state := r.bytesToState(ciphertext)
	state = r.addRoundKey(state, r.roundKeys[r.nr])
	var err error
	for round := r.nr - 1; round > 0; round-- {
		state = r.shiftRows(state, true)
		state = r.subBytes(state, true)
		state = r.addRoundKey(state, r.roundKeys[round])
		state, err = r.mixColumns(state, true)
		if err != nil {
			return nil, err
		}
	}
	state = r.shiftRows(state, true)
	state = r.subBytes(state, true)
	state = r.addRoundKey(state, r.roundKeys[0])
	return r.stateToBytes(state), nil
}
