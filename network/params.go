// Package network defines the constant tables that distinguish Bitcoin
// networks: address prefix bytes, WIF prefixes, extended-key version bytes,
// bech32 human-readable parts and BIP44 coin types.
//
// Params values are pure lookup tables. They are consulted by the key,
// address and transaction packages but never mutated.
package network

import (
	"encoding/json"
	"fmt"
	"os"
)

// Params holds the constants of one Bitcoin network.
type Params struct {
	Name string `json:"name"`

	// Address prefix bytes.
	PubKeyHashPrefix byte   `json:"pubkeyhash_prefix"`
	ScriptHashPrefix byte   `json:"scripthash_prefix"`
	Bech32HRP        string `json:"bech32_hrp"`

	// WIF private key prefix byte.
	WIFPrefix byte `json:"wif_prefix"`

	// Extended key version bytes (BIP32 xprv/xpub, BIP49 yprv/ypub).
	HDPrivateKeyID       [4]byte `json:"-"`
	HDPublicKeyID        [4]byte `json:"-"`
	HDPrivateKeySegwitID [4]byte `json:"-"`
	HDPublicKeySegwitID  [4]byte `json:"-"`

	// BIP44 coin type.
	HDCoinType uint32 `json:"hd_coin_type"`
}

// Predefined network parameter tables.
var (
	Mainnet = Params{
		Name:                 "mainnet",
		PubKeyHashPrefix:     0x00,
		ScriptHashPrefix:     0x05,
		Bech32HRP:            "bc",
		WIFPrefix:            0x80,
		HDPrivateKeyID:       [4]byte{0x04, 0x88, 0xad, 0xe4}, // xprv
		HDPublicKeyID:        [4]byte{0x04, 0x88, 0xb2, 0x1e}, // xpub
		HDPrivateKeySegwitID: [4]byte{0x04, 0x9d, 0x78, 0x78}, // yprv
		HDPublicKeySegwitID:  [4]byte{0x04, 0x9d, 0x7c, 0xb2}, // ypub
		HDCoinType:           0,
	}

	Testnet3 = Params{
		Name:                 "testnet3",
		PubKeyHashPrefix:     0x6f,
		ScriptHashPrefix:     0xc4,
		Bech32HRP:            "tb",
		WIFPrefix:            0xef,
		HDPrivateKeyID:       [4]byte{0x04, 0x35, 0x83, 0x94}, // tprv
		HDPublicKeyID:        [4]byte{0x04, 0x35, 0x87, 0xcf}, // tpub
		HDPrivateKeySegwitID: [4]byte{0x04, 0x4a, 0x4e, 0x28}, // uprv
		HDPublicKeySegwitID:  [4]byte{0x04, 0x4a, 0x52, 0x62}, // upub
		HDCoinType:           1,
	}

	Regtest = Params{
		Name:                 "regtest",
		PubKeyHashPrefix:     0x6f,
		ScriptHashPrefix:     0xc4,
		Bech32HRP:            "bcrt",
		WIFPrefix:            0xef,
		HDPrivateKeyID:       [4]byte{0x04, 0x35, 0x83, 0x94},
		HDPublicKeyID:        [4]byte{0x04, 0x35, 0x87, 0xcf},
		HDPrivateKeySegwitID: [4]byte{0x04, 0x4a, 0x4e, 0x28},
		HDPublicKeySegwitID:  [4]byte{0x04, 0x4a, 0x52, 0x62},
		HDCoinType:           1,
	}
)

// predefined maps network names to their parameter tables.
var predefined = map[string]*Params{
	"mainnet":  &Mainnet,
	"testnet3": &Testnet3,
	"regtest":  &Regtest,
}

// Get returns a predefined network by name.
func Get(name string) (*Params, error) {
	if p, ok := predefined[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

// LoadCustom loads a Params table from a JSON file. Extended-key version
// bytes are inherited from Mainnet unless the caller overrides them after
// loading.
func LoadCustom(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("network: read params: %w", err)
	}

	p := Mainnet
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("network: parse params: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrUnknownNetwork)
	}
	return &p, nil
}

// AddressPrefix returns the address prefix bytes for the given format. For
// base58 formats this is a single version byte, for bech32 formats the
// human-readable part.
func (p *Params) AddressPrefix(format Format) []byte {
	switch format {
	case P2PKH:
		return []byte{p.PubKeyHashPrefix}
	case P2SHP2WPKH:
		return []byte{p.ScriptHashPrefix}
	default:
		return []byte(p.Bech32HRP)
	}
}

// FormatFromAddressPrefix maps a base58 address version byte back to its
// format on this network.
func (p *Params) FormatFromAddressPrefix(prefix byte) (Format, error) {
	switch prefix {
	case p.PubKeyHashPrefix:
		return P2PKH, nil
	case p.ScriptHashPrefix:
		return P2SHP2WPKH, nil
	default:
		return 0, fmt.Errorf("%w: address version byte 0x%02x on %s",
			ErrInvalidPrefix, prefix, p.Name)
	}
}

// ExtendedPrivateKeyVersion returns the version bytes that prefix a
// serialized extended private key of the given format.
func (p *Params) ExtendedPrivateKeyVersion(format Format) ([4]byte, error) {
	switch format {
	case P2PKH:
		return p.HDPrivateKeyID, nil
	case P2SHP2WPKH:
		return p.HDPrivateKeySegwitID, nil
	default:
		return [4]byte{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ExtendedPublicKeyVersion returns the version bytes that prefix a
// serialized extended public key of the given format.
func (p *Params) ExtendedPublicKeyVersion(format Format) ([4]byte, error) {
	switch format {
	case P2PKH:
		return p.HDPublicKeyID, nil
	case P2SHP2WPKH:
		return p.HDPublicKeySegwitID, nil
	default:
		return [4]byte{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// FormatFromExtendedVersion maps extended-key version bytes back to their
// format. private selects between the private and public tables.
func (p *Params) FormatFromExtendedVersion(version [4]byte, private bool) (Format, error) {
	if private {
		switch version {
		case p.HDPrivateKeyID:
			return P2PKH, nil
		case p.HDPrivateKeySegwitID:
			return P2SHP2WPKH, nil
		}
	} else {
		switch version {
		case p.HDPublicKeyID:
			return P2PKH, nil
		case p.HDPublicKeySegwitID:
			return P2SHP2WPKH, nil
		}
	}
	return 0, fmt.Errorf("%w: %x on %s", ErrInvalidVersionBytes, version, p.Name)
}
