// Package txscript builds output scripts for the supported address
// formats and witness programs.
package txscript

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/btcwalletorg/libbtcwallet-go/address"
	"github.com/btcwalletorg/libbtcwallet-go/network"
)

// Script opcodes used by the builders.
const (
	Op0           = 0x00
	OpPushData1   = 0x4c
	OpPushData2   = 0x4d
	Op1           = 0x51
	OpDup         = 0x76
	OpEqual       = 0x87
	OpEqualVerify = 0x88
	OpHash160     = 0xa9
	OpCheckSig    = 0xac
)

// CreateScriptPubKey builds the output script that pays to the address:
// the classic five-opcode template for P2PKH, the hash160 template for
// P2SH, and a witness-version opcode followed by the program push for the
// native segwit formats.
func CreateScriptPubKey(addr *address.Address) ([]byte, error) {
	switch addr.Format() {
	case network.P2PKH:
		hash, err := base58PayloadHash(addr)
		if err != nil {
			return nil, err
		}
		script := make([]byte, 0, 25)
		script = append(script, OpDup, OpHash160, byte(len(hash)))
		script = append(script, hash...)
		script = append(script, OpEqualVerify, OpCheckSig)
		return script, nil

	case network.P2SHP2WPKH:
		hash, err := base58PayloadHash(addr)
		if err != nil {
			return nil, err
		}
		script := make([]byte, 0, 23)
		script = append(script, OpHash160, byte(len(hash)))
		script = append(script, hash...)
		script = append(script, OpEqual)
		return script, nil

	case network.Bech32, network.P2WSH:
		wp, err := witnessPayload(addr)
		if err != nil {
			return nil, err
		}
		opcode := byte(Op0)
		if wp.Version > 0 {
			opcode = Op1 + wp.Version - 1
		}
		script := make([]byte, 0, len(wp.Program)+2)
		script = append(script, opcode, byte(len(wp.Program)))
		script = append(script, wp.Program...)
		return script, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, addr.Format())
	}
}

// PushData encodes a minimal data push of b.
func PushData(b []byte) []byte {
	switch {
	case len(b) < OpPushData1:
		return append([]byte{byte(len(b))}, b...)
	case len(b) <= 0xff:
		return append([]byte{OpPushData1, byte(len(b))}, b...)
	default:
		return append([]byte{OpPushData2, byte(len(b)), byte(len(b) >> 8)}, b...)
	}
}

// base58PayloadHash extracts the 20-byte hash from a Base58Check address.
func base58PayloadHash(addr *address.Address) ([]byte, error) {
	data := base58.Decode(addr.String())
	if len(data) != 25 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScript, addr.String())
	}
	return data[1:21], nil
}

// witnessPayload re-decodes the witness program behind a bech32 address.
func witnessPayload(addr *address.Address) (*address.WitnessProgram, error) {
	_, data, err := bech32.Decode(addr.String())
	if err != nil || len(data) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScript, addr.String())
	}
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScript, addr.String())
	}
	raw := make([]byte, 0, len(program)+2)
	raw = append(raw, data[0], byte(len(program)))
	raw = append(raw, program...)
	return address.NewWitnessProgram(raw)
}
