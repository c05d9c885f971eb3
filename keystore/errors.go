package keystore

import "errors"

var (
	// ErrInvalidSeed indicates an empty seed.
	ErrInvalidSeed = errors.New("keystore: invalid seed")

	// ErrInvalidName indicates an empty seed name.
	ErrInvalidName = errors.New("keystore: invalid seed name")

	// ErrSeedExists indicates the name is already taken.
	ErrSeedExists = errors.New("keystore: seed already exists")

	// ErrSeedNotFound indicates no seed is stored under the name.
	ErrSeedNotFound = errors.New("keystore: seed not found")

	// ErrDecryptionFailed indicates a wrong password or corrupted data.
	ErrDecryptionFailed = errors.New("keystore: seed decryption failed")

	// ErrChecksumMismatch indicates the decrypted seed fails its
	// integrity check.
	ErrChecksumMismatch = errors.New("keystore: seed checksum mismatch")
)
