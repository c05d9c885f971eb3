// Package amount provides a bounded satoshi integer with checked arithmetic.
package amount

import (
	"fmt"
	"strconv"
)

// Amount is a Bitcoin value in satoshis.
type Amount int64

const (
	// Coin is the number of satoshis in one bitcoin.
	Coin Amount = 1e8

	// MaxSupply is the monetary cap, 21 million coins in satoshis.
	MaxSupply Amount = 21_000_000 * Coin
)

// Common values.
const (
	Zero   Amount = 0
	OneSat Amount = 1
	OneBTC Amount = Coin
)

// Denomination scales for the constructors below, expressed as powers of
// ten relative to one satoshi.
const (
	precisionMicroBit = 2
	precisionMilliBit = 5
	precisionCentiBit = 6
	precisionDeciBit  = 7
	precisionBitcoin  = 8
)

// FromSatoshi builds an Amount from a raw satoshi count, rejecting values
// outside ±MaxSupply.
func FromSatoshi(satoshis int64) (Amount, error) {
	if satoshis < -int64(MaxSupply) || satoshis > int64(MaxSupply) {
		return 0, fmt.Errorf("%w: %d satoshis exceeds %d", ErrOutOfBounds, satoshis, int64(MaxSupply))
	}
	return Amount(satoshis), nil
}

// FromMicroBit builds an Amount from a uBTC count.
func FromMicroBit(ubtc int64) (Amount, error) {
	return fromDenomination(ubtc, precisionMicroBit)
}

// FromMilliBit builds an Amount from a mBTC count.
func FromMilliBit(mbtc int64) (Amount, error) {
	return fromDenomination(mbtc, precisionMilliBit)
}

// FromCentiBit builds an Amount from a cBTC count.
func FromCentiBit(cbtc int64) (Amount, error) {
	return fromDenomination(cbtc, precisionCentiBit)
}

// FromDeciBit builds an Amount from a dBTC count.
func FromDeciBit(dbtc int64) (Amount, error) {
	return fromDenomination(dbtc, precisionDeciBit)
}

// FromBTC builds an Amount from a whole-bitcoin count.
func FromBTC(btc int64) (Amount, error) {
	return fromDenomination(btc, precisionBitcoin)
}

func fromDenomination(value int64, precision uint) (Amount, error) {
	scale := int64(1)
	for i := uint(0); i < precision; i++ {
		scale *= 10
	}
	// The scaled value can overflow int64 before the bounds check; detect
	// it by dividing back.
	satoshis := value * scale
	if value != 0 && satoshis/value != scale {
		return 0, fmt.Errorf("%w: %d at precision %d overflows", ErrOutOfBounds, value, precision)
	}
	return FromSatoshi(satoshis)
}

// Add returns a+b, failing if the sum leaves the valid range.
func (a Amount) Add(b Amount) (Amount, error) {
	return FromSatoshi(int64(a) + int64(b))
}

// Sub returns a−b, failing if the difference leaves the valid range.
func (a Amount) Sub(b Amount) (Amount, error) {
	return FromSatoshi(int64(a) - int64(b))
}

// String renders the raw satoshi count.
func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10)
}
