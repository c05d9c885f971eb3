package address

import "errors"

var (
	// ErrInvalidCharacterLength indicates address text outside 14..74
	// characters.
	ErrInvalidCharacterLength = errors.New("address: invalid character length")

	// ErrInvalidByteLength indicates a base58 payload that is not exactly
	// 25 bytes.
	ErrInvalidByteLength = errors.New("address: invalid byte length")

	// ErrInvalidChecksum indicates a Base58Check checksum mismatch.
	ErrInvalidChecksum = errors.New("address: invalid checksum")

	// ErrInvalidAddress indicates text that decodes under no supported
	// encoding.
	ErrInvalidAddress = errors.New("address: invalid address")

	// ErrIncompatibleFormat indicates a construction that the format
	// cannot express.
	ErrIncompatibleFormat = errors.New("address: incompatible format")

	// ErrInvalidProgramLength indicates a witness program outside 2..40
	// bytes.
	ErrInvalidProgramLength = errors.New("address: invalid witness program length")

	// ErrInvalidProgramLengthForVersion indicates a version 0 program that
	// is not 20 or 32 bytes.
	ErrInvalidProgramLengthForVersion = errors.New("address: invalid witness program length for version")

	// ErrInvalidVersion indicates a witness version above 16.
	ErrInvalidVersion = errors.New("address: invalid witness version")

	// ErrMismatchedProgramLength indicates a declared program length that
	// disagrees with the actual payload.
	ErrMismatchedProgramLength = errors.New("address: mismatched witness program length")
)
