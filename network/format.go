package network

import "fmt"

// Format identifies the output-script encoding of an address or key.
type Format uint8

const (
	// P2PKH is a legacy pay-to-public-key-hash address.
	P2PKH Format = iota

	// P2SHP2WPKH is a pay-to-witness-public-key-hash program nested in P2SH.
	P2SHP2WPKH

	// Bech32 is a native segwit v0 pay-to-witness-public-key-hash address.
	Bech32

	// P2WSH is a native segwit v0 pay-to-witness-script-hash address.
	P2WSH
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case P2PKH:
		return "p2pkh"
	case P2SHP2WPKH:
		return "p2sh_p2wpkh"
	case Bech32:
		return "bech32"
	case P2WSH:
		return "p2wsh"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}
