// Package keys wraps secp256k1 key material with Bitcoin-specific
// serialization: compressed/uncompressed public key encoding, WIF private
// key text encoding and the hash160 digest.
package keys

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/btcwalletorg/libbtcwallet-go/network"
)

// WIF payload lengths after base58 decoding: prefix + 32-byte key +
// optional compression marker + 4-byte checksum.
const (
	wifUncompressedLen = 37
	wifCompressedLen   = 38
)

// PrivateKey is a secp256k1 secret scalar together with the compression
// mode used when rendering its public key.
type PrivateKey struct {
	key        *secp256k1.PrivateKey
	compressed bool
}

// NewPrivateKey generates a private key from the supplied random source.
// The resulting key renders compressed public keys.
func NewPrivateKey(rand io.Reader) (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKeyFromRand(rand)
	if err != nil {
		return nil, fmt.Errorf("keys: generate private key: %w", err)
	}
	return &PrivateKey{key: key, compressed: true}, nil
}

// PrivateKeyFromBytes builds a private key from a 32-byte big-endian
// scalar, rejecting zero and values at or above the curve order.
func PrivateKeyFromBytes(b []byte, compressed bool) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, found %d", ErrInvalidByteLength, len(b))
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return nil, ErrInvalidScalar
	}
	return &PrivateKey{key: secp256k1.NewPrivateKey(&scalar), compressed: compressed}, nil
}

// Serialize returns the 32-byte big-endian secret scalar.
func (k *PrivateKey) Serialize() []byte {
	return k.key.Serialize()
}

// PubKey returns the corresponding public key, inheriting the compression
// mode.
func (k *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{key: k.key.PubKey(), compressed: k.compressed}
}

// IsCompressed reports whether the key renders compressed public keys.
func (k *PrivateKey) IsCompressed() bool {
	return k.compressed
}

// Secp returns the underlying secp256k1 key for signing.
func (k *PrivateKey) Secp() *secp256k1.PrivateKey {
	return k.key
}

// ToWIF renders the key in wallet import format for the given network.
func (k *PrivateKey) ToWIF(params *network.Params) string {
	payload := make([]byte, 0, wifCompressedLen)
	payload = append(payload, params.WIFPrefix)
	payload = append(payload, k.key.Serialize()...)
	if k.compressed {
		payload = append(payload, 0x01)
	}
	payload = append(payload, chainhash.DoubleHashB(payload)[:4]...)
	return base58.Encode(payload)
}

// ParseWIF decodes a WIF string, validating its length, checksum and
// network prefix. Compression is inferred from the payload length.
func ParseWIF(wif string, params *network.Params) (*PrivateKey, error) {
	data := base58.Decode(wif)
	if len(data) != wifUncompressedLen && len(data) != wifCompressedLen {
		return nil, fmt.Errorf("%w: expected %d or %d bytes, found %d",
			ErrInvalidByteLength, wifUncompressedLen, wifCompressedLen, len(data))
	}

	payload, expected := data[:len(data)-4], data[len(data)-4:]
	if sum := chainhash.DoubleHashB(payload)[:4]; string(sum) != string(expected) {
		return nil, fmt.Errorf("%w: expected %x, found %x", ErrInvalidChecksum, expected, sum)
	}
	if payload[0] != params.WIFPrefix {
		return nil, fmt.Errorf("%w: WIF prefix 0x%02x on %s", ErrInvalidPrefix, payload[0], params.Name)
	}

	return PrivateKeyFromBytes(payload[1:33], len(data) == wifCompressedLen)
}
