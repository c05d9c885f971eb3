package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters and sealed-blob layout:
// salt(16) || nonce(12) || AES-GCM(key, nonce, seed || SHA256(seed)[:4]).
const (
	argonTime        = 3
	argonMemory      = 64 * 1024
	argonParallelism = 4
	argonKeyLen      = 32

	saltLen     = 16
	nonceLen    = 12
	checksumLen = 4
)

// sealSeed encrypts a seed under a password-derived key. The trailing
// checksum lets openSeed distinguish a wrong password from corruption
// after decryption succeeds.
func sealSeed(seed []byte, password string) ([]byte, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("keystore: generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonParallelism, argonKeyLen)

	digest := sha256.Sum256(seed)
	plaintext := make([]byte, 0, len(seed)+checksumLen)
	plaintext = append(plaintext, seed...)
	plaintext = append(plaintext, digest[:checksumLen]...)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("keystore: cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("keystore: gcm: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("keystore: generate nonce: %w", err)
	}

	sealed := make([]byte, 0, saltLen+nonceLen+len(plaintext)+gcm.Overhead())
	sealed = append(sealed, salt...)
	sealed = append(sealed, nonce...)
	sealed = append(sealed, gcm.Seal(nil, nonce, plaintext, nil)...)
	return sealed, nil
}

// openSeed reverses sealSeed, verifying the embedded checksum.
func openSeed(sealed []byte, password string) ([]byte, error) {
	if len(sealed) < saltLen+nonceLen+checksumLen {
		return nil, ErrDecryptionFailed
	}

	salt := sealed[:saltLen]
	nonce := sealed[saltLen : saltLen+nonceLen]
	ciphertext := sealed[saltLen+nonceLen:]

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonParallelism, argonKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil || len(plaintext) < checksumLen {
		return nil, ErrDecryptionFailed
	}

	seed := plaintext[:len(plaintext)-checksumLen]
	stored := plaintext[len(plaintext)-checksumLen:]
	digest := sha256.Sum256(seed)
	if subtle.ConstantTimeCompare(stored, digest[:checksumLen]) != 1 {
		return nil, ErrChecksumMismatch
	}
	return seed, nil
}
