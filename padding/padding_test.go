package padding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const blockSize = 8

func TestPadLeavesBlockAlignedDataUnchanged(t *testing.T) {
	data := []byte("12345678") // exactly one block
	for _, s := range []Scheme{Zeros{}, PKCS7{}, ANSIX923{}, ISO10126{}} {
		out, err := s.Pad(data, blockSize)
		require.NoError(t, err, s.Name())
		require.Equal(t, data, out, s.Name())
	}
}

func TestPKCS7PadUnpadRoundTrip(t *testing.T) {
	for n := 0; n < blockSize*2; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i)
		}
		padded, err := PKCS7{}.Pad(data, blockSize)
		require.NoError(t, err)
		if n%blockSize != 0 {
			unpadded, err := PKCS7{}.Unpad(padded, blockSize)
			require.NoError(t, err)
			require.Equal(t, data, unpadded)
		}
	}
}

func TestANSIX923PadUnpadRoundTrip(t *testing.T) {
	data := []byte("hello")
	padded, err := ANSIX923{}.Pad(data, blockSize)
	require.NoError(t, err)
	require.Len(t, padded, blockSize)
	require.Equal(t, byte(3), padded[len(padded)-1])
	require.Equal(t, []byte{0, 0}, padded[5:7])

	unpadded, err := ANSIX923{}.Unpad(padded, blockSize)
	require.NoError(t, err)
	require.Equal(t, data, unpadded)
}

func TestISO10126PadUnpadRoundTrip(t *testing.T) {
	data := []byte("hello")
	padded, err := ISO10126{}.Pad(data, blockSize)
	require.NoError(t, err)
	require.Len(t, padded, blockSize)
	require.Equal(t, byte(3), padded[len(padded)-1])

	unpadded, err := ISO10126{}.Unpad(padded, blockSize)
	require.NoError(t, err)
	require.Equal(t, data, unpadded)
}

func TestZerosUnpadStripsTrailingZeros(t *testing.T) {
	padded, err := Zeros{}.Pad([]byte("hello"), blockSize)
	require.NoError(t, err)
	require.Len(t, padded, blockSize)

	unpadded, err := Zeros{}.Unpad(padded, blockSize)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), unpadded)
}

func TestPKCS7UnpadRejectsInvalidPadding(t *testing.T) {
	bad := []byte{1, 2, 3, 4, 5, 6, 7, 3} // claims 3 pad bytes, but 6 and 7 mismatch
	_, err := PKCS7{}.Unpad(bad, blockSize)
	require.Error(t, err)
}

func TestUnpadToleratesAbsentPadding(t *testing.T) {
	// Pad leaves block-aligned data untouched, so Unpad must hand back a
	// message whose final byte cannot be a padding length.
	aligned := []byte{0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48}
	for _, s := range []Scheme{PKCS7{}, ANSIX923{}, ISO10126{}} {
		out, err := s.Unpad(aligned, blockSize)
		require.NoError(t, err, s.Name())
		require.Equal(t, aligned, out, s.Name())

		empty, err := s.Unpad(nil, blockSize)
		require.NoError(t, err, s.Name())
		require.Empty(t, empty, s.Name())
	}
}

func TestByNameResolvesAllSchemes(t *testing.T) {
	for name, want := range map[string]Scheme{
		"ZEROS":     Zeros{},
		"PKCS7":     PKCS7{},
		"ANSI_X923": ANSIX923{},
		"ISO10126":  ISO10126{},
	} {
		got, err := ByName(name)
		require.NoError(t, err)
		require.Equal(t, want.Name(), got.Name())
	}
	_, err := ByName("NOPE")
	require.Error(t, err)
}
