package wallet

import "errors"

// ErrInvalidSeed indicates an empty master seed.
var ErrInvalidSeed = errors.New("wallet: invalid seed")
