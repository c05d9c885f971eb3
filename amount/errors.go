package amount

import "errors"

// ErrOutOfBounds indicates a value outside ±21,000,000 BTC in satoshis.
var ErrOutOfBounds = errors.New("amount: value out of bounds")
