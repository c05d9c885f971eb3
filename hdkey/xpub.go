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

// ExtendedPublicKey is a BIP32 extended public key. It holds only a curve
// point and can derive normal children.
type ExtendedPublicKey struct {
	format            network.Format
	depth             uint8
	parentFingerprint [4]byte
	childNumber       ChildNumber
	chainCode         [32]byte
	key               *keys.PublicKey
	params            *network.Params
}

// Derive walks the path left to right on the public branch. Hardened
// steps are impossible without the private key and fail with
// ErrInvalidChildNumber.
func (k *ExtendedPublicKey) Derive(path Path) (*ExtendedPublicKey, error) {
	current := k
	for _, child := range path {
		if current.depth == MaxDepth {
			return nil, fmt.Errorf("%w: depth %d", ErrMaximumChildDepthReached, current.depth)
		}
		if child.IsHardened() {
			return nil, fmt.Errorf("%w: hardened index %s on a public key", ErrInvalidChildNumber, child)
		}

		parentPub := current.key.SerializeCompressed()

		mac := hmac.New(sha512.New, current.chainCode[:])
		mac.Write(parentPub)
		var index [4]byte
		binary.BigEndian.PutUint32(index[:], uint32(child))
		mac.Write(index[:])
		sum := mac.Sum(nil)

		// Child point = IL*G + parent.
		var il secp256k1.ModNScalar
		if overflow := il.SetByteSlice(sum[:32]); overflow || il.IsZero() {
			return nil, fmt.Errorf("%w: child %s", keys.ErrInvalidScalar, child)
		}
		var ilPoint, parentPoint, childPoint secp256k1.JacobianPoint
		secp256k1.ScalarBaseMultNonConst(&il, &ilPoint)
		current.key.Secp().AsJacobian(&parentPoint)
		secp256k1.AddNonConst(&ilPoint, &parentPoint, &childPoint)
		if childPoint.Z.IsZero() {
			return nil, fmt.Errorf("%w: child %s is the point at infinity", keys.ErrInvalidScalar, child)
		}
		childPoint.ToAffine()

		next := &ExtendedPublicKey{
			format:      current.format,
			depth:       current.depth + 1,
			childNumber: child,
			key:         keys.PublicKeyFromSecp(secp256k1.NewPublicKey(&childPoint.X, &childPoint.Y), true),
			params:      current.params,
		}
		copy(next.parentFingerprint[:], keys.Hash160(parentPub)[:4])
		copy(next.chainCode[:], sum[32:])
		current = next
	}
	return current, nil
}

// PublicKey returns the key material.
func (k *ExtendedPublicKey) PublicKey() *keys.PublicKey {
	return k.key
}

// Format returns the address format the key will render as.
func (k *ExtendedPublicKey) Format() network.Format {
	return k.format
}

// Depth returns the key's distance from the master key.
func (k *ExtendedPublicKey) Depth() uint8 {
	return k.depth
}

// ChildNumber returns the index this key was derived at.
func (k *ExtendedPublicKey) ChildNumber() ChildNumber {
	return k.childNumber
}

// ParentFingerprint returns the first four bytes of hash160 of the parent
// public key.
func (k *ExtendedPublicKey) ParentFingerprint() [4]byte {
	return k.parentFingerprint
}

// ChainCode returns the 32-byte chain code.
func (k *ExtendedPublicKey) ChainCode() [32]byte {
	return k.chainCode
}

// Network returns the parameter table the key was created against.
func (k *ExtendedPublicKey) Network() *network.Params {
	return k.params
}

// Serialize renders the key in Base58Check: a 78-byte payload of version,
// depth, parent fingerprint, child number, chain code and compressed
// public key, followed by a 4-byte double-SHA256 checksum.
func (k *ExtendedPublicKey) Serialize() (string, error) {
	version, err := k.params.ExtendedPublicKeyVersion(k.format)
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
	payload = append(payload, k.key.SerializeCompressed()...)
	payload = append(payload, chainhash.DoubleHashB(payload)[:4]...)
	return base58.Encode(payload), nil
}

// ParseExtendedPublicKey decodes a Base58Check extended public key,
// validating length, checksum and version bytes against the network
// table.
func ParseExtendedPublicKey(s string, params *network.Params) (*ExtendedPublicKey, error) {
	data := base58.Decode(s)
	if len(data) != serializedLen {
		return nil, fmt.Errorf("%w: expected %d bytes, found %d", ErrInvalidByteLength, serializedLen, len(data))
	}
	if err := verifyChecksum(data); err != nil {
		return nil, err
	}

	var version [4]byte
	copy(version[:], data[:4])
	format, err := params.FormatFromExtendedVersion(version, false)
	if err != nil {
		return nil, err
	}

	key, err := keys.ParsePublicKey(data[45:78])
	if err != nil {
		return nil, err
	}

	k := &ExtendedPublicKey{
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
