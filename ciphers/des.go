// Package ciphers implements the engine's block and stream primitives:
// DES, Triple-DES, DEAL, Rijndael, and RC4.
//
// The DES tables (IP, FP, PC-1, PC-2, E, P, S-boxes) are the standard
// FIPS 46-3 constants.
package ciphers

import (
	"fmt"

	"github.com/dkrasnov/symengine/bitperm"
	"github.com/dkrasnov/symengine/errs"
	"github.com/dkrasnov/symengine/feistel"
)

const (
	desBlockSize = 8
	desRounds    = 16
)

var desIP = []int{
	58, 50, 42, 34, 26, 18, 10, 2,
	60, 52, 44, 36, 28, 20, 12, 4,
	62, 54, 46, 38, 30, 22, 14, 6,
	64, 56, 48, 40, 32, 24, 16, 8,
	57, 49, 41, 33, 25, 17, 9, 1,
	59, 51, 43, 35, 27, 19, 11, 3,
	61, 53, 45, 37, 29, 21, 13, 5,
	63, 55, 47, 39, 31, 23, 15, 7,
}

var desFP = []int{
	40, 8, 48, 16, 56, 24, 64, 32,
	39, 7, 47, 15, 55, 23, 63, 31,
	38, 6, 46, 14, 54, 22, 62, 30,
	37, 5, 45, 13, 53, 21, 61, 29,
	36, 4, 44, 12, 52, 20, 60, 28,
	35, 3, 43, 11, 51, 19, 59, 27,
	34, 2, 42, 10, 50, 18, 58, 26,
	33, 1, 41, 9, 49, 17, 57, 25,
}

var desPC1 = []int{
	57, 49, 41, 33, 25, 17, 9,
	1, 58, 50, 42, 34, 26, 18,
	10, 2, 59, 51, 43, 35, 27,
	19, 11, 3, 60, 52, 44, 36,
	63, 55, 47, 39, 31, 23, 15,
	7, 62, 54, 46, 38, 30, 22,
	14, 6, 61, 53, 45, 37, 29,
	21, 13, 5, 28, 20, 12, 4,
}

var desPC2 = []int{
	14, 17, 11, 24, 1, 5,
	3, 28, 15, 6, 21, 10,
	23, 19, 12, 4, 26, 8,
	16, 7, 27, 20, 13, 2,
	41, 52, 31, 37, 47, 55,
	30, 40, 51, 45, 33, 48,
	44, 49, 39, 56, 34, 53,
	46, 42, 50, 36, 29, 32,
}

var desShifts = []int{1, 1, 2, 2, 2, 2, 2, 2, 1, 2, 2, 2, 2, 2, 2, 1}

var desE = []int{
	32, 1, 2, 3, 4, 5,
	4, 5, 6, 7, 8, 9,
	8, 9, 10, 11, 12, 13,
	12, 13, 14, 15, 16, 17,
	16, 17, 18, 19, 20, 21,
	20, 21, 22, 23, 24, 25,
	24, 25, 26, 27, 28, 29,
	28, 29, 30, 31, 32, 1,
}

var desP = []int{
	16, 7, 20, 21,
	29, 12, 28, 17,
	1, 15, 23, 26,
	5, 18, 31, 10,
	2, 8, 24, 14,
	32, 27, 3, 9,
	19, 13, 30, 6,
	22, 11, 4, 25,
}

var desSBoxes = [8][4][16]byte{
	{
		{14, 4, 13, 1, 2, 15, 11, 8, 3, 10, 6, 12, 5, 9, 0, 7},
		{0, 15, 7, 4, 14, 2, 13, 1, 10, 6, 12, 11, 9, 5, 3, 8},
		{4, 1, 14, 8, 13, 6, 2, 11, 15, 12, 9, 7, 3, 10, 5, 0},
		{15, 12, 8, 2, 4, 9, 1, 7, 5, 11, 3, 14, 10, 0, 6, 13},
	},
	{
		{15, 1, 8, 14, 6, 11, 3, 4, 9, 7, 2, 13, 12, 0, 5, 10},
		{3, 13, 4, 7, 15, 2, 8, 14, 12, 0, 1, 10, 6, 9, 11, 5},
		{0, 14, 7, 11, 10, 4, 13, 1, 5, 8, 12, 6, 9, 3, 2, 15},
		{13, 8, 10, 1, 3, 15, 4, 2, 11, 6, 7, 12, 0, 5, 14, 9},
	},
	{
		{10, 0, 9, 14, 6, 3, 15, 5, 1, 13, 12, 7, 11, 4, 2, 8},
		{13, 7, 0, 9, 3, 4, 6, 10, 2, 8, 5, 14, 12, 11, 15, 1},
		{13, 6, 4, 9, 8, 15, 3, 0, 11, 1, 2, 12, 5, 10, 14, 7},
		{1, 10, 13, 0, 6, 9, 8, 7, 4, 15, 14, 3, 11, 5, 2, 12},
	},
	{
		{7, 13, 14, 3, 0, 6, 9, 10, 1, 2, 8, 5, 11, 12, 4, 15},
		{13, 8, 11, 5, 6, 15, 0, 3, 4, 7, 2, 12, 1, 10, 14, 9},
		{10, 6, 9, 0, 12, 11, 7, 13, 15, 1, 3, 14, 5, 2, 8, 4},
		{3, 15, 0, 6, 10, 1, 13, 8, 9, 4, 5, 11, 12, 7, 2, 14},
	},
	{
		{2, 12, 4, 1, 7, 10, 11, 6, 8, 5, 3, 15, 13, 0, 14, 9},
		{14, 11, 2, 12, 4, 7, 13, 1, 5, 0, 15, 10, 3, 9, 8, 6},
		{4, 2, 1, 11, 10, 13, 7, 8, 15, 9, 12, 5, 6, 3, 0, 14},
		{11, 8, 12, 7, 1, 14, 2, 13, 6, 15, 0, 9, 10, 4, 5, 3},
	},
	{
		{12, 1, 10, 15, 9, 2, 6, 8, 0, 13, 3, 4, 14, 7, 5, 11},
		{10, 15, 4, 2, 7, 12, 9, 5, 6, 1, 13, 14, 0, 11, 3, 8},
		{9, 14, 15, 5, 2, 8, 12, 3, 7, 0, 4, 10, 1, 13, 11, 6},
		{4, 3, 2, 12, 9, 5, 15, 10, 11, 14, 1, 7, 6, 0, 8, 13},
	},
	{
		{4, 11, 2, 14, 15, 0, 8, 13, 3, 12, 9, 7, 5, 10, 6, 1},
		{13, 0, 11, 7, 4, 9, 1, 10, 14, 3, 5, 12, 2, 15, 8, 6},
		{1, 4, 11, 13, 12, 3, 7, 14, 10, 15, 6, 8, 0, 5, 9, 2},
		{6, 11, 13, 8, 1, 4, 10, 7, 9, 5, 0, 15, 14, 2, 3, 12},
	},
	{
		{13, 2, 8, 4, 6, 15, 11, 1, 10, 9, 3, 14, 5, 0, 12, 7},
		{1, 15, 13, 8, 10, 3, 7, 4, 12, 5, 6, 11, 0, 14, 9, 2},
		{7, 11, 4, 1, 9, 12, 14, 2, 0, 6, 10, 13, 15, 3, 5, 8},
		{2, 1, 14, 7, 4, 10, 8, 13, 15, 12, 9, 0, 3, 5, 6, 11},
	},
}

const mask28 = (uint32(1) << 28) - 1

// desKeySchedule implements feistel.KeySchedule for DES: PC-1 selects C‖D,
// then 16 rounds of rotate-and-PC-2 produce the round keys.
type desKeySchedule struct{}

func (desKeySchedule) ExpandKey(key []byte) ([][]byte, error) {
	switch len(key) {
	case 7:
		key = addParityBits(key)
	case 8:
		// used directly
	default:
		return nil, errs.Wrap(errs.ErrInvalidKeySize, "des: key must be 7 or 8 bytes")
	}

	permuted := bitperm.MustPermute(key, desPC1) // 56 bits packed into 7 bytes
	var cd uint64
	for _, b := range permuted {
		cd = cd<<8 | uint64(b)
	}

	c := uint32(cd>>28) & mask28
	d := uint32(cd) & mask28

	keys := make([][]byte, desRounds)
	for i := 0; i < desRounds; i++ {
		c = rotateLeft28(c, desShifts[i])
		d = rotateLeft28(d, desShifts[i])

		combined := make([]byte, 7)
		cd56 := (uint64(c) << 28) | uint64(d)
		for j := 6; j >= 0; j-- {
			combined[j] = byte(cd56)
			cd56 >>= 8
		}

		rk := bitperm.MustPermute(combined, desPC2)
		keys[i] = rk
	}
	return keys, nil
}

func rotateLeft28(v uint32, shift int) uint32 {
	return ((v << uint(shift)) | (v >> uint(28-shift))) & mask28
}

// addParityBits expands a 7-byte (56-bit) key into the classic 8-byte DES
// key form, inserting an odd-parity bit after every 7 bits.
func addParityBits(key []byte) []byte {
	var keyInt uint64
	for _, b := range key {
		keyInt = keyInt<<8 | uint64(b)
	}

	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		shift := 56 - (i+1)*7
		seven := byte(keyInt>>uint(shift)) & 0x7F
		ones := popcount(seven)
		parity := byte(1)
		if ones%2 != 0 {
			parity = 0
		}
		out[i] = (seven << 1) | parity
	}
	return out
}

func popcount(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

// desRoundFunction implements feistel.RoundFunction: E-expand, XOR with the
// round key, eight S-boxes, then the P permutation.
type desRoundFunction struct{}

func (desRoundFunction) Apply(half, roundKey []byte) ([]byte, error) {
	if len(half) != 4 {
		return nil, errs.Wrap(errs.ErrInvalidBlockSize, "des: round function half must be 4 bytes")
	}
	expanded := bitperm.MustPermute(half, desE) // 48 bits -> 6 bytes

	xored := make([]byte, 6)
	for i := range xored {
		xored[i] = expanded[i] ^ roundKey[i]
	}

	var bits48 uint64
	for _, b := range xored {
		bits48 = bits48<<8 | uint64(b)
	}

	var sOut uint32
	for i := 0; i < 8; i++ {
		shift := 48 - (i+1)*6
		six := byte(bits48>>uint(shift)) & 0x3F
		row := ((six & 0x20) >> 4) | (six & 0x01)
		col := (six >> 1) & 0x0F
		val := desSBoxes[i][row][col]
		sOut = sOut<<4 | uint32(val)
	}

	sBytes := []byte{byte(sOut >> 24), byte(sOut >> 16), byte(sOut >> 8), byte(sOut)}
	return bitperm.MustPermute(sBytes, desP), nil
}

// DES is the classical 64-bit-block, 16-round Feistel cipher.
type DES struct {
	engine *feistel.Engine
}

// NewDES constructs an uninitialized DES primitive; call SetKeys before use.
func NewDES() *DES {
	e, _ := feistel.New(desKeySchedule{}, desRoundFunction{}, desBlockSize, desRounds)
	return &DES{engine: e}
}

func (d *DES) Name() string     { return "DES" }
func (d *DES) BlockSize() int   { return desBlockSize }
func (d *DES) SetKeys(key []byte) error {
	return d.engine.SetKeys(key)
}

func (d *DES) EncryptBlock(block []byte) ([]byte, error) {
	if len(block) != desBlockSize {
		return nil, errs.Wrap(errs.ErrInvalidBlockSize, fmt.Sprintf("des: block must be %d bytes", desBlockSize))
	}
	permuted := bitperm.MustPermute(block, desIP)
	feistelOut, err := d.engine.EncryptBlock(permuted)
	if err != nil {
		return nil, err
	}
	preOutput := append(append([]byte{}, feistelOut[4:]...), feistelOut[:4]...)
	return bitperm.MustPermute(preOutput, desFP), nil
}

func (d *DES) DecryptBlock(block []byte) ([]byte, error) {
	if len(block) != desBlockSize {
		return nil, errs.Wrap(errs.ErrInvalidBlockSize, fmt.Sprintf("des: block must be %d bytes", desBlockSize))
	}
	permuted := bitperm.MustPermute(block, desIP)
	l, r := permuted[:4], permuted[4:]
	coreInput := append(append([]byte{}, r...), l...)
	core, err := d.engine.DecryptBlock(coreInput)
	if err != nil {
		return nil, err
	}
	return bitperm.MustPermute(core, desFP), nil
}
