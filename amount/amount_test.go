package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSatoshi(t *testing.T) {
	a, err := FromSatoshi(123_456_789)
	require.NoError(t, err)
	assert.Equal(t, Amount(123_456_789), a)

	// The bounds are inclusive and symmetric.
	_, err = FromSatoshi(int64(MaxSupply))
	assert.NoError(t, err)
	_, err = FromSatoshi(-int64(MaxSupply))
	assert.NoError(t, err)

	_, err = FromSatoshi(int64(MaxSupply) + 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = FromSatoshi(-int64(MaxSupply) - 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDenominations(t *testing.T) {
	tests := []struct {
		name string
		from func(int64) (Amount, error)
		per  Amount
	}{
		{"microbit", FromMicroBit, 100},
		{"millibit", FromMilliBit, 100_000},
		{"centibit", FromCentiBit, 1_000_000},
		{"decibit", FromDeciBit, 10_000_000},
		{"btc", FromBTC, Coin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.from(3)
			require.NoError(t, err)
			assert.Equal(t, 3*tt.per, a)

			// Negative counts scale the same way.
			a, err = tt.from(-3)
			require.NoError(t, err)
			assert.Equal(t, -3*tt.per, a)
		})
	}
}

func TestDenominations_Bounds(t *testing.T) {
	a, err := FromBTC(21_000_000)
	require.NoError(t, err)
	assert.Equal(t, MaxSupply, a)

	_, err = FromBTC(21_000_001)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	// Large enough to overflow int64 during scaling.
	_, err = FromBTC(1 << 62)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestAdd(t *testing.T) {
	a, err := OneBTC.Add(OneSat)
	require.NoError(t, err)
	assert.Equal(t, Coin+1, a)

	_, err = MaxSupply.Add(OneSat)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSub(t *testing.T) {
	a, err := OneBTC.Sub(OneSat)
	require.NoError(t, err)
	assert.Equal(t, Coin-1, a)

	// Differences may go negative within the bounds.
	a, err = Zero.Sub(OneBTC)
	require.NoError(t, err)
	assert.Equal(t, -Coin, a)

	_, err = (-MaxSupply).Sub(OneSat)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestString(t *testing.T) {
	assert.Equal(t, "100000000", OneBTC.String())
	assert.Equal(t, "-42", Amount(-42).String())
}
