package keys

import "errors"

var (
	// ErrInvalidScalar indicates key bytes that are zero or not below the
	// curve order.
	ErrInvalidScalar = errors.New("keys: invalid secp256k1 scalar")

	// ErrInvalidPublicKey indicates bytes that decode to no curve point.
	ErrInvalidPublicKey = errors.New("keys: invalid public key encoding")

	// ErrInvalidByteLength indicates a decoded payload of unexpected size.
	ErrInvalidByteLength = errors.New("keys: invalid byte length")

	// ErrInvalidChecksum indicates a base58check checksum mismatch.
	ErrInvalidChecksum = errors.New("keys: invalid checksum")

	// ErrInvalidPrefix indicates a WIF prefix byte from another network.
	ErrInvalidPrefix = errors.New("keys: invalid network prefix")
)
