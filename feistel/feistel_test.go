package feistel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureSchedule is a trivial fixture: it returns the master key itself,
// repeated, as each round's key, letting Apply's semantics be verified
// independent of any production primitive's key schedule.
type fixtureSchedule struct{ rounds int }

func (f fixtureSchedule) ExpandKey(key []byte) ([][]byte, error) {
	keys := make([][]byte, f.rounds)
	for i := range keys {
		keys[i] = key
	}
	return keys, nil
}

type xorRound struct{}

func (xorRound) Apply(half, roundKey []byte) ([]byte, error) {
	out := make([]byte, len(half))
	for i := range half {
		out[i] = half[i] ^ roundKey[i%len(roundKey)]
	}
	return out, nil
}

func TestEngineRoundTrip(t *testing.T) {
	e, err := New(fixtureSchedule{rounds: 8}, xorRound{}, 8, 8)
	require.NoError(t, err)
	require.NoError(t, e.SetKeys([]byte{0xAA, 0x55, 0x01}))

	block := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	ct, err := e.EncryptBlock(block)
	require.NoError(t, err)
	pt, err := e.DecryptBlock(ct)
	require.NoError(t, err)
	require.Equal(t, block, pt)
}

func TestNewRejectsOddBlockSize(t *testing.T) {
	_, err := New(fixtureSchedule{rounds: 1}, xorRound{}, 7, 1)
	require.Error(t, err)
}

func TestSetKeysRejectsTooFewRoundKeys(t *testing.T) {
	e, err := New(fixtureSchedule{rounds: 2}, xorRound{}, 8, 4)
	require.NoError(t, err)
	err = e.SetKeys([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestEncryptBlockRejectsWrongLength(t *testing.T) {
	e, err := New(fixtureSchedule{rounds: 1}, xorRound{}, 8, 1)
	require.NoError(t, err)
	require.NoError(t, e.SetKeys([]byte{1}))
	_, err = e.EncryptBlock([]byte{1, 2, 3})
	require.Error(t, err)
}
