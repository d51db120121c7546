// Package symengine is a symmetric-cipher engine: block primitives (DES,
// Triple-DES, DEAL, Rijndael/AES), the RC4 stream primitive, the seven
// modes of operation (ECB, CBC, PCBC, CFB, OFB, CTR, RANDOM_DELTA), and
// the four padding schemes (Zeros, PKCS#7, ANSI X.923, ISO 10126), wired
// together by the symmetric package's Context.
//
// A handful of peripheral number-theoretic packages (bignum, primality,
// dh, rsakeys, wiener) round out the engine for Diffie-Hellman key
// agreement and RSA-adjacent workflows.
//
// # Encrypting a buffer
//
//	primitive, _ := ciphers.NewRijndael(16, 32, 0x11b) // AES-256, 128-bit blocks
//	ctx, _ := symmetric.New(symmetric.Config{
//	    Primitive: primitive,
//	    Key:       key,
//	    Mode:      symmetric.CBC,
//	    Padding:   padding.PKCS7{},
//	})
//	ciphertext, _ := ctx.EncryptBytes(plaintext)
//
// See cmd/symcrypt for a CLI front end over the same Context.
package symengine
