// Package errs defines the error kinds surfaced across symengine.
//
// Every kind is a sentinel that callers can match with errors.Is; detection
// sites wrap it with github.com/pkg/errors, so every returned error carries
// a stack trace (printed by the %+v verb); the symcrypt CLI prints only the
// message. Text beyond the sentinel is not part of the contract.
package errs

import "github.com/pkg/errors"

// Kind identifies one of the engine's error categories.
type Kind error

var (
	// ErrInvalidKeySize is returned by a primitive's key-setup routine when
	// the supplied key has the wrong length.
	ErrInvalidKeySize Kind = errors.New("symengine: invalid key size")

	// ErrInvalidBlockSize is returned when a block-layer operation receives
	// an input whose length is not exactly the primitive's block size.
	ErrInvalidBlockSize Kind = errors.New("symengine: invalid block size")

	// ErrInvalidIV is returned by context construction when the supplied IV
	// does not match the length the mode requires.
	ErrInvalidIV Kind = errors.New("symengine: invalid IV length")

	// ErrCiphertextTooShort is returned when decrypt sees fewer than the
	// mode's required header bytes.
	ErrCiphertextTooShort Kind = errors.New("symengine: ciphertext too short")

	// ErrInvalidCiphertextLength is returned when a mode requires a length
	// multiple of the block size and does not get one.
	ErrInvalidCiphertextLength Kind = errors.New("symengine: ciphertext length invalid")

	// ErrInvalidPadding is returned when padding bytes fail the scheme's
	// validation check.
	ErrInvalidPadding Kind = errors.New("symengine: invalid padding")

	// ErrMessageTooLarge is returned by integer-mode primitives (RSA) when
	// the message does not fit the modulus.
	ErrMessageTooLarge Kind = errors.New("symengine: message too large for modulus")

	// ErrReducibleModulus is returned when a GF(2^8) modulus fails the
	// degree-8 irreducibility check.
	ErrReducibleModulus Kind = errors.New("symengine: modulus is reducible")

	// ErrUnknownMode is returned by context construction for an unrecognized
	// mode tag.
	ErrUnknownMode Kind = errors.New("symengine: unknown mode")

	// ErrUnknownPadding is returned by context construction for an
	// unrecognized padding tag.
	ErrUnknownPadding Kind = errors.New("symengine: unknown padding")
)

// Wrap attaches a stack trace to a sentinel kind, annotating it with context.
// errors.Is(Wrap(ErrInvalidKeySize, "..."), ErrInvalidKeySize) remains true.
func Wrap(kind Kind, context string) error {
	return errors.Wrap(kind, context)
}
