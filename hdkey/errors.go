package hdkey

import "errors"

var (
	// ErrMaximumChildDepthReached indicates derivation past depth 255.
	ErrMaximumChildDepthReached = errors.New("hdkey: maximum child depth reached")

	// ErrInvalidChildNumber indicates a child index that cannot be derived,
	// such as a hardened index on the public branch.
	ErrInvalidChildNumber = errors.New("hdkey: invalid child number")

	// ErrInvalidPath indicates a derivation path string that does not
	// start with m/.
	ErrInvalidPath = errors.New("hdkey: invalid derivation path")

	// ErrInvalidByteLength indicates a decoded extended key that is not
	// exactly 82 bytes.
	ErrInvalidByteLength = errors.New("hdkey: invalid byte length")

	// ErrInvalidChecksum indicates a Base58Check checksum mismatch.
	ErrInvalidChecksum = errors.New("hdkey: invalid checksum")

	// ErrInvalidKeyBytes indicates malformed key material inside an
	// otherwise well-formed serialization.
	ErrInvalidKeyBytes = errors.New("hdkey: invalid key bytes")
)
