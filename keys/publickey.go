package keys

import (
	"crypto/sha256"
	"fmt"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

// PublicKey is a secp256k1 curve point together with its serialization
// mode.
type PublicKey struct {
	key        *secp256k1.PublicKey
	compressed bool
}

// ParsePublicKey decodes a 33-byte compressed or 65-byte uncompressed SEC
// encoding. The serialization mode is inferred from the input.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	key, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return &PublicKey{key: key, compressed: len(b) == 33}, nil
}

// PublicKeyFromSecp wraps an already-parsed curve point.
func PublicKeyFromSecp(key *secp256k1.PublicKey, compressed bool) *PublicKey {
	return &PublicKey{key: key, compressed: compressed}
}

// Serialize returns the SEC encoding in the key's serialization mode.
func (k *PublicKey) Serialize() []byte {
	if k.compressed {
		return k.key.SerializeCompressed()
	}
	return k.key.SerializeUncompressed()
}

// SerializeCompressed returns the 33-byte compressed SEC encoding
// regardless of the key's mode.
func (k *PublicKey) SerializeCompressed() []byte {
	return k.key.SerializeCompressed()
}

// IsCompressed reports the serialization mode.
func (k *PublicKey) IsCompressed() bool {
	return k.compressed
}

// Secp returns the underlying curve point.
func (k *PublicKey) Secp() *secp256k1.PublicKey {
	return k.key
}

// Hash160 computes RIPEMD160(SHA256(b)), the digest behind P2PKH and P2SH
// addresses and BIP32 fingerprints.
func Hash160(b []byte) []byte {
	sha := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}
