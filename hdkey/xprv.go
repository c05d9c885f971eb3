// Package hdkey implements BIP32 hierarchical deterministic keys: master
// key creation from a seed, hardened and normal child derivation on the
// private and public branches, and the Base58Check extended-key text
// codec.
//
// Extended keys are immutable values. Derive returns a new key for every
// step and never touches its receiver, so a key tree is a set of
// independent snapshots rather than a mutable graph.
package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/btcwalletorg/libbtcwallet-go/keys"
	"github.com/btcwalletorg/libbtcwallet-go/network"
)

const (
	// MaxDepth is the deepest key the serialization format can express;
	// deriving past it fails.
	MaxDepth = 255

	// serializedLen is the decoded extended-key size: 78 payload bytes
	// plus the 4-byte checksum.
	serializedLen = 82
)

// masterHMACKey seeds the master-key HMAC per BIP32.
var masterHMACKey = []byte("Bitcoin seed")

// ExtendedPrivateKey is a BIP32 extended private key. It owns its secret
// scalar exclusively.
type ExtendedPrivateKey struct {
	format            network.Format
	depth             uint8
	parentFingerprint [4]byte
	childNumber       ChildNumber
	chainCode         [32]byte
	key               *keys.PrivateKey
	params            *network.Params
}

// NewMaster creates the depth-zero master key from a BIP39 seed via
// HMAC-SHA512 keyed with "Bitcoin seed". The left half must be a valid
// curve scalar.
func NewMaster(seed []byte, params *network.Params, format network.Format) (*ExtendedPrivateKey, error) {
	mac := hmac.New(sha512.New, masterHMACKey)
	mac.Write(seed)
	sum := mac.Sum(nil)

	key, err := keys.PrivateKeyFromBytes(sum[:32], true)
	if err != nil {
		return nil, err
	}

	k := &ExtendedPrivateKey{
		format:      format,
		childNumber: Normal(0),
		key:         key,
		params:      params,
	}
	copy(k.chainCode[:], sum[32:])
	return k, nil
}

// Derive walks the path left to right, producing a new immutable key at
// every step. Hardened steps mix the parent private key into the HMAC,
// normal steps the compressed public key. A full BIP49 path forces the
// resulting format to P2SH-P2WPKH; any other path inherits the parent
// format.
func (k *ExtendedPrivateKey) Derive(path Path) (*ExtendedPrivateKey, error) {
	current := k
	for _, child := range path {
		if current.depth == MaxDepth {
			return nil, fmt.Errorf("%w: depth %d", ErrMaximumChildDepthReached, current.depth)
		}

		parentPub := current.key.PubKey().SerializeCompressed()

		mac := hmac.New(sha512.New, current.chainCode[:])
		if child.IsHardened() {
			mac.Write([]byte{0x00})
			mac.Write(current.key.Serialize())
		} else {
			mac.Write(parentPub)
		}
		var index [4]byte
		binary.BigEndian.PutUint32(index[:], uint32(child))
		mac.Write(index[:])
		sum := mac.Sum(nil)

		// Child scalar = IL + parent (mod n); IL and the sum must both be
		// valid non-zero scalars.
		var il secp256k1.ModNScalar
		if overflow := il.SetByteSlice(sum[:32]); overflow || il.IsZero() {
			return nil, fmt.Errorf("%w: child %s", keys.ErrInvalidScalar, child)
		}
		il.Add(&current.key.Secp().Key)
		childScalar := il.Bytes()
		childKey, err := keys.PrivateKeyFromBytes(childScalar[:], true)
		if err != nil {
			return nil, fmt.Errorf("%w: child %s", err, child)
		}

		next := &ExtendedPrivateKey{
			format:      current.format,
			depth:       current.depth + 1,
			childNumber: child,
			key:         childKey,
			params:      current.params,
		}
		copy(next.parentFingerprint[:], keys.Hash160(parentPub)[:4])
		copy(next.chainCode[:], sum[32:])
		current = next
	}

	if path.IsBIP49() {
		derived := *current
		derived.format = network.P2SHP2WPKH
		return &derived, nil
	}
	return current, nil
}

// Neuter strips the private scalar, keeping depth, fingerprint, child
// number and chain code.
func (k *ExtendedPrivateKey) Neuter() *ExtendedPublicKey {
	pub := &ExtendedPublicKey{
		format:            k.format,
		depth:             k.depth,
		parentFingerprint: k.parentFingerprint,
		childNumber:       k.childNumber,
		chainCode:         k.chainCode,
		key:               k.key.PubKey(),
		params:            k.params,
	}
	return pub
}

// PrivateKey returns the key material.
func (k *ExtendedPrivateKey) PrivateKey() *keys.PrivateKey {
	return k.key
}

// PublicKey returns the corresponding curve point.
func (k *ExtendedPrivateKey) PublicKey() *keys.PublicKey {
	return k.key.PubKey()
}

// Format returns the address format the key will render as.
func (k *ExtendedPrivateKey) Format() network.Format {
	return k.format
}

// Depth returns the key's distance from the master key.
func (k *ExtendedPrivateKey) Depth() uint8 {
	return k.depth
}

// ChildNumber returns the index this key was derived at.
func (k *ExtendedPrivateKey) ChildNumber() ChildNumber {
	return k.childNumber
}

// ParentFingerprint returns the first four bytes of hash160 of the parent
// public key.
func (k *ExtendedPrivateKey) ParentFingerprint() [4]byte {
	return k.parentFingerprint
}

// ChainCode returns the 32-byte chain code.
func (k *ExtendedPrivateKey) ChainCode() [32]byte {
	return k.chainCode
}

// Network returns the parameter table the key was created against.
func (k *ExtendedPrivateKey) Network() *network.Params {
	return k.params
}

// Serialize renders the key in Base58Check: a 78-byte payload of version,
// depth, parent fingerprint, child number, chain code and padded private
// key, followed by a 4-byte double-SHA256 checksum.
func (k *ExtendedPrivateKey) Serialize() (string, error) {
	version, err := k.params.ExtendedPrivateKeyVersion(k.format)
	if err != nil {
		return "", err
	}

	payload := make([]byte, 0, serializedLen)
	payload = append(payload, version[:]...)
	payload = append(payload, k.depth)
	payload = append(payload, k.parentFingerprint[:]...)
	var index [4]byte
	binary.BigEndian.PutUint32(index[:], uint32(k.childNumber))
	payload = append(payload, index[:]...)
	payload = append(payload, k.chainCode[:]...)
	payload = append(payload, 0x00)
	payload = append(payload, k.key.Serialize()...)
	payload = append(payload, chainhash.DoubleHashB(payload)[:4]...)
	return base58.Encode(payload), nil
}

// ParseExtendedPrivateKey decodes a Base58Check extended private key,
// validating length, checksum and version bytes against the network
// table.
func ParseExtendedPrivateKey(s string, params *network.Params) (*ExtendedPrivateKey, error) {
	data := base58.Decode(s)
	if len(data) != serializedLen {
		return nil, fmt.Errorf("%w: expected %d bytes, found %d", ErrInvalidByteLength, serializedLen, len(data))
	}
	if err := verifyChecksum(data); err != nil {
		return nil, err
	}

	var version [4]byte
	copy(version[:], data[:4])
	format, err := params.FormatFromExtendedVersion(version, true)
	if err != nil {
		return nil, err
	}
	if data[45] != 0x00 {
		return nil, fmt.Errorf("%w: missing private key padding byte", ErrInvalidKeyBytes)
	}

	key, err := keys.PrivateKeyFromBytes(data[46:78], true)
	if err != nil {
		return nil, err
	}

	k := &ExtendedPrivateKey{
		format:      format,
		depth:       data[4],
		childNumber: ChildNumber(binary.BigEndian.Uint32(data[9:13])),
		key:         key,
		params:      params,
	}
	copy(k.parentFingerprint[:], data[5:9])
	copy(k.chainCode[:], data[13:45])
	return k, nil
}

// verifyChecksum checks the trailing 4 bytes against double-SHA256 of the
// payload.
func verifyChecksum(data []byte) error {
	payload, expected := data[:len(data)-4], data[len(data)-4:]
	if sum := chainhash.DoubleHashB(payload)[:4]; string(sum) != string(expected) {
		return fmt.Errorf("%w: expected %x, found %x", ErrInvalidChecksum, expected, sum)
	}
	return nil
}
