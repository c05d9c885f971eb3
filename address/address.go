// Package address constructs and parses Bitcoin addresses in the four
// supported output formats: legacy P2PKH, P2SH-wrapped P2WPKH, native
// segwit v0 P2WPKH (bech32) and native segwit v0 P2WSH.
package address

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btcwalletorg/libbtcwallet-go/keys"
	"github.com/btcwalletorg/libbtcwallet-go/network"
)

// Address text length bounds accepted by Parse.
const (
	minAddressLen = 14
	maxAddressLen = 74
)

// Address is an encoded address together with its output format.
// Immutable once constructed.
type Address struct {
	encoded string
	format  network.Format
}

// String returns the encoded address text.
func (a *Address) String() string {
	return a.encoded
}

// Format returns the output-script format.
func (a *Address) Format() network.Format {
	return a.format
}

// FromPublicKey renders a public key in the given format. P2WSH addresses
// commit to a script, not a key, so requesting one fails.
func FromPublicKey(pub *keys.PublicKey, format network.Format, params *network.Params) (*Address, error) {
	switch format {
	case network.P2PKH:
		return NewP2PKH(pub, params)
	case network.P2SHP2WPKH:
		return NewP2SHP2WPKH(pub, params)
	case network.Bech32:
		return NewBech32(pub, params)
	default:
		return nil, fmt.Errorf("%w: p2wsh address from a public key", ErrIncompatibleFormat)
	}
}

// NewP2PKH builds a Base58Check pay-to-public-key-hash address. The key's
// own compression mode selects the hashed serialization.
func NewP2PKH(pub *keys.PublicKey, params *network.Params) (*Address, error) {
	return base58Address(params.PubKeyHashPrefix, keys.Hash160(pub.Serialize()), network.P2PKH), nil
}

// NewP2SHP2WPKH builds a Base58Check address for the P2WPKH redeem script
// of the compressed public key, nested in P2SH.
func NewP2SHP2WPKH(pub *keys.PublicKey, params *network.Params) (*Address, error) {
	redeem := P2WPKHRedeemScript(pub)
	return base58Address(params.ScriptHashPrefix, keys.Hash160(redeem), network.P2SHP2WPKH), nil
}

// NewBech32 builds a native segwit v0 pay-to-witness-public-key-hash
// address over the compressed public key's hash160.
func NewBech32(pub *keys.PublicKey, params *network.Params) (*Address, error) {
	return bech32Address(keys.Hash160(pub.SerializeCompressed()), network.Bech32, params)
}

// NewP2WSH builds a native segwit v0 pay-to-witness-script-hash address
// over SHA-256 of the script.
func NewP2WSH(script []byte, params *network.Params) (*Address, error) {
	hash := sha256.Sum256(script)
	return bech32Address(hash[:], network.P2WSH, params)
}

// P2WPKHRedeemScript returns the 22-byte witness program script
// OP_0 PUSH20 hash160(compressed pubkey) that nests P2WPKH inside P2SH.
func P2WPKHRedeemScript(pub *keys.PublicKey) []byte {
	redeem := make([]byte, 22)
	redeem[1] = 0x14
	copy(redeem[2:], keys.Hash160(pub.SerializeCompressed()))
	return redeem
}

func base58Address(prefix byte, hash []byte, format network.Format) *Address {
	payload := make([]byte, 0, 25)
	payload = append(payload, prefix)
	payload = append(payload, hash...)
	payload = append(payload, chainhash.DoubleHashB(payload)[:4]...)
	return &Address{encoded: base58.Encode(payload), format: format}
}

func bech32Address(program []byte, format network.Format, params *network.Params) (*Address, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return nil, fmt.Errorf("address: convert witness program: %w", err)
	}
	data := make([]byte, 0, len(converted)+1)
	data = append(data, 0x00) // witness version
	data = append(data, converted...)

	encoded, err := bech32.Encode(params.Bech32HRP, data)
	if err != nil {
		return nil, fmt.Errorf("address: bech32 encode: %w", err)
	}
	return &Address{encoded: encoded, format: format}, nil
}

// Parse decodes an address, dispatching on its prefix: bech32 when the
// lowercase text starts with the network's human-readable part, otherwise
// Base58Check with a 25-byte payload. The network prefix, checksum and
// witness-program rules are all enforced.
func Parse(s string, params *network.Params) (*Address, error) {
	if len(s) < minAddressLen || len(s) > maxAddressLen {
		return nil, fmt.Errorf("%w: %d characters", ErrInvalidCharacterLength, len(s))
	}

	if strings.HasPrefix(strings.ToLower(s), params.Bech32HRP+"1") {
		return parseBech32(s, params)
	}

	data := base58.Decode(s)
	if len(data) != 25 {
		return nil, fmt.Errorf("%w: expected 25 bytes, found %d", ErrInvalidByteLength, len(data))
	}
	payload, expected := data[:21], data[21:]
	if sum := chainhash.DoubleHashB(payload)[:4]; string(sum) != string(expected) {
		return nil, fmt.Errorf("%w: expected %x, found %x", ErrInvalidChecksum, expected, sum)
	}
	format, err := params.FormatFromAddressPrefix(data[0])
	if err != nil {
		return nil, err
	}
	return &Address{encoded: s, format: format}, nil
}

func parseBech32(s string, params *network.Params) (*Address, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data part", ErrInvalidAddress)
	}
	if hrp != params.Bech32HRP {
		return nil, fmt.Errorf("%w: hrp %q on %s", network.ErrInvalidPrefix, hrp, params.Name)
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	raw := make([]byte, 0, len(program)+2)
	raw = append(raw, data[0], byte(len(program)))
	raw = append(raw, program...)
	wp, err := NewWitnessProgram(raw)
	if err != nil {
		return nil, err
	}

	format := network.Bech32
	if wp.Version == 0 && len(wp.Program) == 32 {
		format = network.P2WSH
	}
	return &Address{encoded: s, format: format}, nil
}
