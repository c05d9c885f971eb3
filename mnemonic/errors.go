package mnemonic

import "errors"

var (
	// ErrInvalidWordCount indicates a word count other than 12, 15, 18, 21
	// or 24.
	ErrInvalidWordCount = errors.New("mnemonic: invalid word count")

	// ErrInvalidEntropyLength indicates entropy other than 16, 20, 24, 28
	// or 32 bytes.
	ErrInvalidEntropyLength = errors.New("mnemonic: invalid entropy length")

	// ErrInvalidWord indicates a word absent from the wordlist.
	ErrInvalidWord = errors.New("mnemonic: word not in wordlist")

	// ErrInvalidPhrase indicates a phrase that fails the checksum
	// round-trip.
	ErrInvalidPhrase = errors.New("mnemonic: invalid phrase")

	// ErrInvalidWordlist indicates a word table without exactly 2048
	// entries.
	ErrInvalidWordlist = errors.New("mnemonic: wordlist must have 2048 entries")
)
