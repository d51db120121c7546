package symmetric

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/symengine/ciphers"
	"github.com/dkrasnov/symengine/dh"
	"github.com/dkrasnov/symengine/keyderive"
	"github.com/dkrasnov/symengine/padding"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

var allModes = []ModeName{ECB, CBC, PCBC, CFB, OFB, CTR, RandomDelta}

func newDESContext(t *testing.T, mode ModeName, pad padding.Scheme) *Context {
	t.Helper()
	ctx, err := New(Config{
		Primitive: ciphers.NewDES(),
		Key:       []byte("SecretK1"),
		Mode:      mode,
		Padding:   pad,
	})
	require.NoError(t, err)
	return ctx
}

func TestRoundTripBoundaryLengthsAllModes(t *testing.T) {
	const bs = 8
	lengths := []int{0, 1, bs - 1, bs, bs + 1, 2*bs + 1}
	for _, mode := range allModes {
		for _, pad := range []padding.Scheme{padding.Zeros{}, padding.PKCS7{}, padding.ANSIX923{}, padding.ISO10126{}} {
			for _, n := range lengths {
				ctx := newDESContext(t, mode, pad)
				// Patterned, never padding-shaped: block-aligned plaintexts
				// travel unpadded, so the tail must not read as a pad length
				// (or as Zeros filler).
				data := make([]byte, n)
				for i := range data {
					data[i] = byte(0x40 + i)
				}

				ct, err := ctx.EncryptBytes(data)
				require.NoError(t, err, "mode=%s pad=%s n=%d", mode, pad.Name(), n)

				dctx := newDESContext(t, mode, pad)
				pt, err := dctx.DecryptBytes(ct)
				require.NoError(t, err, "mode=%s pad=%s n=%d", mode, pad.Name(), n)
				require.Equal(t, data, pt, "mode=%s pad=%s n=%d", mode, pad.Name(), n)
			}
		}
	}
}

func TestEncryptDeterministicWithExplicitIVAndNonRandomPadding(t *testing.T) {
	iv := randomBytes(t, 8)
	data := []byte("deterministic payload, multi-block!")
	for _, mode := range []ModeName{CBC, PCBC, CFB, OFB} {
		ctx1, err := New(Config{Primitive: ciphers.NewDES(), Key: []byte("SecretK1"), Mode: mode, Padding: padding.PKCS7{}, IV: iv})
		require.NoError(t, err)
		ctx2, err := New(Config{Primitive: ciphers.NewDES(), Key: []byte("SecretK1"), Mode: mode, Padding: padding.PKCS7{}, IV: iv})
		require.NoError(t, err)

		ct1, err := ctx1.EncryptBytes(data)
		require.NoError(t, err)
		ct2, err := ctx2.EncryptBytes(data)
		require.NoError(t, err)
		require.Equal(t, ct1, ct2, "mode=%s", mode)
	}
}

func TestBytesAndFileEntryPointsAgree(t *testing.T) {
	data := randomBytes(t, 5000)
	nonce := randomBytes(t, 4)
	ctx, err := New(Config{Primitive: ciphers.NewDES(), Key: []byte("SecretK1"), Mode: CTR, Padding: padding.PKCS7{}, IV: nonce})
	require.NoError(t, err)

	ctBytes, err := ctx.EncryptBytes(data)
	require.NoError(t, err)

	ctx2, err := New(Config{Primitive: ciphers.NewDES(), Key: []byte("SecretK1"), Mode: CTR, Padding: padding.PKCS7{}, IV: nonce})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ctx2.EncryptFile(bytes.NewReader(data), &buf, 97))
	require.Equal(t, ctBytes, buf.Bytes())
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	for _, mode := range []ModeName{CBC, PCBC, CFB, OFB} {
		ctx := newDESContext(t, mode, padding.PKCS7{})
		_, err := ctx.DecryptBytes([]byte{1, 2, 3})
		require.Error(t, err, "mode=%s", mode)
	}
}

func TestRandomDeltaRejectsBodyNotMultipleOfBlockSize(t *testing.T) {
	ctx := newDESContext(t, RandomDelta, padding.PKCS7{})
	ct, err := ctx.EncryptBytes([]byte("twelve bytes"))
	require.NoError(t, err)

	_, err = ctx.DecryptBytes(ct[:len(ct)-1])
	require.Error(t, err)
}

func TestCTRAcceptsHalfBlockNonce(t *testing.T) {
	nonce := randomBytes(t, 4)
	ctx, err := New(Config{Primitive: ciphers.NewDES(), Key: []byte("SecretK1"), Mode: CTR, IV: nonce})
	require.NoError(t, err)
	ct, err := ctx.EncryptBytes([]byte("some plaintext"))
	require.NoError(t, err)

	dctx, err := New(Config{Primitive: ciphers.NewDES(), Key: []byte("SecretK1"), Mode: CTR, IV: nonce})
	require.NoError(t, err)
	pt, err := dctx.DecryptBytes(ct)
	require.NoError(t, err)
	require.Equal(t, []byte("some plaintext"), pt)
}

func TestRejectsWrongIVLength(t *testing.T) {
	_, err := New(Config{Primitive: ciphers.NewDES(), Key: []byte("SecretK1"), Mode: CBC, IV: []byte{1, 2, 3}})
	require.Error(t, err)
}

func TestRejectsUnknownMode(t *testing.T) {
	_, err := New(Config{Primitive: ciphers.NewDES(), Key: []byte("SecretK1"), Mode: ModeName("BOGUS")})
	require.Error(t, err)
}

func TestDiffieHellmanDerivedKeyRijndaelCBCScenario(t *testing.T) {
	p, g, err := dh.GenerateParameters(64)
	require.NoError(t, err)
	alice := dh.New(64)
	alice.SetParameters(p, g)
	bob := dh.New(64)
	bob.SetParameters(p, g)
	alicePub, err := alice.GenerateKeys()
	require.NoError(t, err)
	bobPub, err := bob.GenerateKeys()
	require.NoError(t, err)
	secret, err := alice.ComputeSharedSecret(bobPub)
	require.NoError(t, err)
	check, err := bob.ComputeSharedSecret(alicePub)
	require.NoError(t, err)
	require.Equal(t, secret, check)

	key, err := keyderive.Derive(secret.Bytes(), []byte("dh-session-salt"), keyderive.DefaultParams())
	require.NoError(t, err)
	require.Len(t, key, 32)
	iv := randomBytes(t, 16)
	message := []byte("Secret message delivered via DH + Rijndael!")

	primitive1, err := ciphers.NewRijndael(16, 32, 0x11B)
	require.NoError(t, err)
	ctx1, err := New(Config{Primitive: primitive1, Key: key, Mode: CBC, Padding: padding.PKCS7{}, IV: iv})
	require.NoError(t, err)

	primitive2, err := ciphers.NewRijndael(16, 32, 0x11B)
	require.NoError(t, err)
	ctx2, err := New(Config{Primitive: primitive2, Key: key, Mode: CBC, Padding: padding.PKCS7{}, IV: iv})
	require.NoError(t, err)

	ct1, err := ctx1.EncryptBytes(message)
	require.NoError(t, err)
	ct2, err := ctx2.EncryptBytes(message)
	require.NoError(t, err)
	require.Equal(t, ct1, ct2)

	pt, err := ctx2.DecryptBytes(ct1)
	require.NoError(t, err)
	require.Equal(t, message, pt)
}

func TestDEAL256CTRChunkedFileRoundTrip(t *testing.T) {
	data := randomBytes(t, 5*1024)
	nonce := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	primitive, err := ciphers.NewDEAL(256)
	require.NoError(t, err)
	ctx, err := New(Config{Primitive: primitive, Key: randomBytes(t, 32), Mode: CTR, Padding: padding.PKCS7{}, IV: nonce})
	require.NoError(t, err)

	var encrypted bytes.Buffer
	require.NoError(t, ctx.EncryptFile(bytes.NewReader(data), &encrypted, 513))

	var decrypted bytes.Buffer
	require.NoError(t, ctx.DecryptFile(bytes.NewReader(encrypted.Bytes()), &decrypted, 257))
	require.Equal(t, data, decrypted.Bytes())
}
