package modes

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/symengine/ciphers"
	"github.com/dkrasnov/symengine/padding"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}

func newDES(t *testing.T) *ciphers.DES {
	t.Helper()
	d := ciphers.NewDES()
	require.NoError(t, d.SetKeys(randomBytes(t, 8)))
	return d
}

func TestECBRoundTrip(t *testing.T) {
	prim := newDES(t)
	m := NewECB(prim, padding.PKCS7{}, nil, nil)
	require.Equal(t, "ECB", m.Name())

	plain := []byte("arbitrary length message that spans several blocks!!")
	ct, err := m.EncryptBytes(plain)
	require.NoError(t, err)
	require.Equal(t, 0, len(ct)%prim.BlockSize())

	pt, err := m.DecryptBytes(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt)
}

func TestCBCRoundTripWithExplicitIV(t *testing.T) {
	prim := newDES(t)
	iv := randomBytes(t, prim.BlockSize())
	m := NewCBC(prim, padding.PKCS7{}, nil, iv, nil)

	plain := []byte("cbc chains ciphertext blocks together")
	ct, err := m.EncryptBytes(plain)
	require.NoError(t, err)
	require.Equal(t, iv, ct[:prim.BlockSize()])

	pt, err := m.DecryptBytes(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt)
}

func TestPCBCRoundTrip(t *testing.T) {
	prim := newDES(t)
	m := NewPCBC(prim, padding.Zeros{}, nil, nil, nil)

	plain := []byte("12345678abcdefgh")
	ct, err := m.EncryptBytes(plain)
	require.NoError(t, err)
	pt, err := m.DecryptBytes(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt)
}

func TestCFBRoundTrip(t *testing.T) {
	prim := newDES(t)
	m := NewCFB(prim, padding.Zeros{}, nil, nil, nil)

	plain := randomBytes(t, 37)
	ct, err := m.EncryptBytes(plain)
	require.NoError(t, err)
	pt, err := m.DecryptBytes(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt[:len(plain)])
}

func TestOFBRoundTrip(t *testing.T) {
	prim := newDES(t)
	m := NewOFB(prim, padding.Zeros{}, nil, nil, nil)

	plain := randomBytes(t, 29)
	ct, err := m.EncryptBytes(plain)
	require.NoError(t, err)
	pt, err := m.DecryptBytes(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt[:len(plain)])
}

func TestCTRRoundTripWithExplicitNonce(t *testing.T) {
	prim := newDES(t)
	nonce := randomBytes(t, prim.BlockSize()/2)
	m := NewCTR(prim, padding.Zeros{}, nil, nonce, nil)

	plain := randomBytes(t, 100)
	ct, err := m.EncryptBytes(plain)
	require.NoError(t, err)
	pt, err := m.DecryptBytes(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt[:len(plain)])
}

func TestRandomDeltaRoundTrip(t *testing.T) {
	prim := newDES(t)
	m := NewRandomDelta(prim, padding.PKCS7{}, nil, nil)
	require.Equal(t, "RANDOM_DELTA", m.Name())

	plain := []byte("random delta derives each block IV from the last one")
	ct, err := m.EncryptBytes(plain)
	require.NoError(t, err)
	pt, err := m.DecryptBytes(ct)
	require.NoError(t, err)
	require.Equal(t, plain, pt)
}

func TestCBCStreamRoundTrip(t *testing.T) {
	prim := newDES(t)
	iv := randomBytes(t, prim.BlockSize())
	encM := NewCBC(prim, padding.PKCS7{}, nil, iv, nil)
	decM := NewCBC(prim, padding.PKCS7{}, nil, nil, nil)

	plain := randomBytes(t, 997)
	var ctBuf bytes.Buffer
	require.NoError(t, encM.EncryptStream(bytes.NewReader(plain), &ctBuf, 64))

	var ptBuf bytes.Buffer
	require.NoError(t, decM.DecryptStream(bytes.NewReader(ctBuf.Bytes()), &ptBuf, 64))
	require.Equal(t, plain, ptBuf.Bytes())
}

func TestCBCDecryptRejectsShortCiphertext(t *testing.T) {
	prim := newDES(t)
	m := NewCBC(prim, padding.PKCS7{}, nil, nil, nil)
	_, err := m.DecryptBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestECBRejectsUnpaddedNonBlockAlignedCiphertext(t *testing.T) {
	prim := newDES(t)
	m := NewECB(prim, padding.PKCS7{}, nil, nil)
	_, err := m.DecryptBytes(randomBytes(t, 5))
	require.Error(t, err)
}
