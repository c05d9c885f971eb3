// Package mnemonic implements BIP39: entropy generation, the word-phrase
// encoding with its SHA-256 checksum bits, and the PBKDF2 phrase-to-seed
// stretch.
package mnemonic

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SeedIterations is the PBKDF2-HMAC-SHA512 round count.
	SeedIterations = 2048

	// SeedBytes is the derived seed length.
	SeedBytes = 64

	// saltPrefix is prepended to the optional password to form the PBKDF2
	// salt.
	saltPrefix = "mnemonic"
)

// entropyBytes maps a word count to its entropy length.
var entropyBytes = map[int]int{
	12: 16,
	15: 20,
	18: 24,
	21: 28,
	24: 32,
}

// Generate fills fresh entropy for a phrase of wordCount words from the
// supplied random source. wordCount must be 12, 15, 18, 21 or 24.
func Generate(wordCount int, rand io.Reader) ([]byte, error) {
	size, ok := entropyBytes[wordCount]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWordCount, wordCount)
	}
	entropy := make([]byte, size)
	if _, err := io.ReadFull(rand, entropy); err != nil {
		return nil, fmt.Errorf("mnemonic: read entropy: %w", err)
	}
	return entropy, nil
}

// EntropyToPhrase encodes entropy as a space-joined word phrase. The
// checksum is the leading len(entropy)*8/32 bits of SHA-256(entropy),
// appended to the entropy bits before splitting into 11-bit word indices.
func EntropyToPhrase(entropy []byte, wordlist *Wordlist) (string, error) {
	switch len(entropy) {
	case 16, 20, 24, 28, 32:
	default:
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidEntropyLength, len(entropy))
	}

	checksumBits := len(entropy) * 8 / 32
	totalBits := len(entropy)*8 + checksumBits

	// The checksum is at most 8 bits, so one hash byte suffices.
	hash := sha256.Sum256(entropy)
	bits := make([]byte, 0, len(entropy)+1)
	bits = append(bits, entropy...)
	bits = append(bits, hash[0])

	words := make([]string, 0, totalBits/11)
	for pos := 0; pos < totalBits; pos += 11 {
		words = append(words, wordlist.Word(int(takeBits(bits, pos, 11))))
	}
	return strings.Join(words, " "), nil
}

// PhraseToEntropy decodes a word phrase back to its entropy. The phrase is
// re-encoded from the recovered entropy and must match the input exactly,
// rejecting checksum or word-order tampering.
func PhraseToEntropy(phrase string, wordlist *Wordlist) ([]byte, error) {
	words := strings.Split(phrase, " ")
	size, ok := entropyBytes[len(words)]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWordCount, len(words))
	}

	bits := make([]byte, (len(words)*11+7)/8)
	for i, word := range words {
		index, err := wordlist.Index(word)
		if err != nil {
			return nil, err
		}
		putBits(bits, i*11, 11, uint16(index))
	}

	entropy := bits[:size]
	encoded, err := EntropyToPhrase(entropy, wordlist)
	if err != nil {
		return nil, err
	}
	if encoded != phrase {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhrase, phrase)
	}
	return entropy, nil
}

// ValidatePhrase reports whether phrase decodes cleanly.
func ValidatePhrase(phrase string, wordlist *Wordlist) bool {
	_, err := PhraseToEntropy(phrase, wordlist)
	return err == nil
}

// PhraseToSeed stretches a phrase into a 64-byte seed with
// PBKDF2-HMAC-SHA512 over salt "mnemonic"+password.
func PhraseToSeed(phrase, password string) []byte {
	return pbkdf2.Key([]byte(phrase), []byte(saltPrefix+password), SeedIterations, SeedBytes, sha512.New)
}

// takeBits extracts n bits (n ≤ 16) starting at bit position pos,
// MSB-first.
func takeBits(buf []byte, pos, n int) uint16 {
	var v uint16
	for i := 0; i < n; i++ {
		v <<= 1
		byteIdx, bitIdx := (pos+i)/8, uint((pos+i)%8)
		if buf[byteIdx]&(0x80>>bitIdx) != 0 {
			v |= 1
		}
	}
	return v
}

// putBits writes the low n bits of v (n ≤ 16) at bit position pos,
// MSB-first.
func putBits(buf []byte, pos, n int, v uint16) {
	for i := 0; i < n; i++ {
		if v&(1<<uint(n-1-i)) != 0 {
			byteIdx, bitIdx := (pos+i)/8, uint((pos+i)%8)
			buf[byteIdx] |= 0x80 >> bitIdx
		}
	}
}
