package ciphers

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestDESRoundTripArbitraryBlocksAndKeys(t *testing.T) {
	for i := 0; i < 20; i++ {
		d := NewDES()
		key := randomBytes(t, 8)
		require.NoError(t, d.SetKeys(key))
		block := randomBytes(t, 8)

		ct, err := d.EncryptBlock(block)
		require.NoError(t, err)
		pt, err := d.DecryptBlock(ct)
		require.NoError(t, err)
		require.Equal(t, block, pt)

		// decrypt-then-encrypt is also identity
		dt, err := d.DecryptBlock(block)
		require.NoError(t, err)
		et, err := d.EncryptBlock(dt)
		require.NoError(t, err)
		require.Equal(t, block, et)
	}
}

func TestDESRawScenario(t *testing.T) {
	d := NewDES()
	require.NoError(t, d.SetKeys([]byte("SecretK1")))
	plain := []byte("12345678")

	ct, err := d.EncryptBlock(plain)
	require.NoError(t, err)
	require.Len(t, ct, 8)
	require.NotEqual(t, plain, ct)

	pt, err := d.DecryptBlock(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt)
}

func TestTripleDESRoundTripAllKeyLengths(t *testing.T) {
	for _, mode := range []string{"EDE", "EEE"} {
		for _, keyLen := range []int{14, 16, 21, 24} {
			td, err := NewTripleDES(mode)
			require.NoError(t, err)
			key := randomBytes(t, keyLen)
			require.NoError(t, td.SetKeys(key))
			block := randomBytes(t, 8)

			ct, err := td.EncryptBlock(block)
			require.NoError(t, err)
			pt, err := td.DecryptBlock(ct)
			require.NoError(t, err)
			require.Equal(t, block, pt)
		}
	}
}

func TestTripleDESTwoKeyScenario(t *testing.T) {
	td, err := NewTripleDES("EDE")
	require.NoError(t, err)
	key := bytes.Repeat([]byte{0x01}, 8)
	key = append(key, bytes.Repeat([]byte{0x02}, 8)...)
	require.NoError(t, td.SetKeys(key))

	plain := []byte("ABCDEFGH")
	ct, err := td.EncryptBlock(plain)
	require.NoError(t, err)
	pt, err := td.DecryptBlock(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt)
}

func TestDEALRoundTripAllKeySizes(t *testing.T) {
	for _, bits := range []int{128, 192, 256} {
		deal, err := NewDEAL(bits)
		require.NoError(t, err)
		key := randomBytes(t, bits/8)
		require.NoError(t, deal.SetKeys(key))
		block := randomBytes(t, 16)

		ct, err := deal.EncryptBlock(block)
		require.NoError(t, err)
		pt, err := deal.DecryptBlock(ct)
		require.NoError(t, err)
		require.Equal(t, block, pt)
	}
}

func TestDEAL128RawScenario(t *testing.T) {
	deal, err := NewDEAL(128)
	require.NoError(t, err)
	require.NoError(t, deal.SetKeys(randomBytes(t, 16)))

	plain, err := hex.DecodeString("00112233445566778899AABBCCDDEEFF")
	require.NoError(t, err)

	ct, err := deal.EncryptBlock(plain)
	require.NoError(t, err)
	require.Len(t, ct, 16)

	pt, err := deal.DecryptBlock(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt)
}

func TestRijndaelRoundTripAllBlockAndKeySizes(t *testing.T) {
	for _, blockSize := range []int{16, 24, 32} {
		for _, keySize := range []int{16, 24, 32} {
			r, err := NewRijndael(blockSize, keySize, 0x11B)
			require.NoError(t, err)
			require.NoError(t, r.SetKeys(randomBytes(t, keySize)))
			block := randomBytes(t, blockSize)

			ct, err := r.EncryptBlock(block)
			require.NoError(t, err)
			pt, err := r.DecryptBlock(ct)
			require.NoError(t, err)
			require.Equal(t, block, pt)
		}
	}
}

func TestRijndaelAES256128Scenario(t *testing.T) {
	r, err := NewRijndael(16, 32, 0x11B)
	require.NoError(t, err)
	key := randomBytes(t, 32)
	require.NoError(t, r.SetKeys(key))
	plain := randomBytes(t, 16)

	ct, err := r.EncryptBlock(plain)
	require.NoError(t, err)
	require.Len(t, ct, 16)

	pt, err := r.DecryptBlock(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt)
}

func TestRijndaelAgreesWithStdlibAES(t *testing.T) {
	for _, keySize := range []int{16, 24, 32} {
		r, err := NewRijndael(16, keySize, 0x11B)
		require.NoError(t, err)
		key := randomBytes(t, keySize)
		require.NoError(t, r.SetKeys(key))

		ref, err := aes.NewCipher(key)
		require.NoError(t, err)

		plain := randomBytes(t, 16)
		got, err := r.EncryptBlock(plain)
		require.NoError(t, err)

		want := make([]byte, 16)
		ref.Encrypt(want, plain)
		require.Equal(t, want, got, "keySize=%d", keySize)
	}
}

func TestRijndaelRejectsReducibleModulus(t *testing.T) {
	_, err := NewRijndael(16, 16, 0x100)
	require.Error(t, err)
}

func TestRC4Vector(t *testing.T) {
	r := NewRC4()
	require.NoError(t, r.SetKeys([]byte("Key")))

	ct, err := r.Crypt([]byte("Plaintext"))
	require.NoError(t, err)
	require.Equal(t, "bbf316e8d940af0ad3", hex.EncodeToString(ct))
}

func TestRC4RoundTrip(t *testing.T) {
	r1 := NewRC4()
	require.NoError(t, r1.SetKeys([]byte("another key")))
	plain := []byte("the quick brown fox jumps over the lazy dog")
	ct, err := r1.Crypt(plain)
	require.NoError(t, err)

	r2 := NewRC4()
	require.NoError(t, r2.SetKeys([]byte("another key")))
	pt, err := r2.Crypt(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt)
}
