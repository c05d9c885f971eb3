package address

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btcwalletorg/libbtcwallet-go/keys"
	"github.com/btcwalletorg/libbtcwallet-go/network"
)

// testKey returns the private key for scalar 1, whose addresses are
// published in BIP141/BIP173.
func testKey(t *testing.T, compressed bool) *keys.PrivateKey {
	t.Helper()
	scalar := make([]byte, 32)
	scalar[31] = 0x01
	key, err := keys.PrivateKeyFromBytes(scalar, compressed)
	require.NoError(t, err)
	return key
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNewP2PKH(t *testing.T) {
	addr, err := NewP2PKH(testKey(t, true).PubKey(), &network.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", addr.String())
	assert.Equal(t, network.P2PKH, addr.Format())

	// The uncompressed rendering hashes the 65-byte encoding instead.
	addr, err = NewP2PKH(testKey(t, false).PubKey(), &network.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm", addr.String())
}

func TestNewP2SHP2WPKH(t *testing.T) {
	addr, err := NewP2SHP2WPKH(testKey(t, true).PubKey(), &network.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "3JvL6Ymt8MVWiCNHC7oWU6nLeHNJKLZGLN", addr.String())
	assert.Equal(t, network.P2SHP2WPKH, addr.Format())
}

func TestNewBech32(t *testing.T) {
	pub := testKey(t, true).PubKey()

	addr, err := NewBech32(pub, &network.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", addr.String())
	assert.Equal(t, network.Bech32, addr.Format())

	addr, err = NewBech32(pub, &network.Testnet3)
	require.NoError(t, err)
	assert.Equal(t, "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx", addr.String())
}

func TestNewP2WSH(t *testing.T) {
	// <pubkey> OP_CHECKSIG over the scalar-1 key, the BIP173 example
	// witness script.
	pub := testKey(t, true).PubKey().SerializeCompressed()
	script := append([]byte{0x21}, pub...)
	script = append(script, 0xac)

	addr, err := NewP2WSH(script, &network.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "bc1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3qccfmv2", addr.String())
	assert.Equal(t, network.P2WSH, addr.Format())
}

func TestFromPublicKey(t *testing.T) {
	pub := testKey(t, true).PubKey()

	for _, format := range []network.Format{network.P2PKH, network.P2SHP2WPKH, network.Bech32} {
		addr, err := FromPublicKey(pub, format, &network.Mainnet)
		require.NoError(t, err)
		assert.Equal(t, format, addr.Format())
	}

	_, err := FromPublicKey(pub, network.P2WSH, &network.Mainnet)
	assert.ErrorIs(t, err, ErrIncompatibleFormat)
}

func TestP2WPKHRedeemScript(t *testing.T) {
	redeem := P2WPKHRedeemScript(testKey(t, true).PubKey())
	require.Len(t, redeem, 22)
	assert.Equal(t, byte(0x00), redeem[0])
	assert.Equal(t, byte(0x14), redeem[1])
	assert.True(t, bytes.Equal(redeem[2:], keys.Hash160(testKey(t, true).PubKey().SerializeCompressed())))
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		encoded string
		format  network.Format
		params  *network.Params
	}{
		{"1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", network.P2PKH, &network.Mainnet},
		{"3JvL6Ymt8MVWiCNHC7oWU6nLeHNJKLZGLN", network.P2SHP2WPKH, &network.Mainnet},
		{"bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", network.Bech32, &network.Mainnet},
		{"tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx", network.Bech32, &network.Testnet3},
		{"bc1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3qccfmv2", network.P2WSH, &network.Mainnet},
	}
	for _, tt := range tests {
		addr, err := Parse(tt.encoded, tt.params)
		require.NoError(t, err, tt.encoded)
		assert.Equal(t, tt.encoded, addr.String())
		assert.Equal(t, tt.format, addr.Format(), tt.encoded)
	}
}

func TestParse_LengthBounds(t *testing.T) {
	_, err := Parse("tooshort", &network.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidCharacterLength)

	long := make([]byte, maxAddressLen+1)
	for i := range long {
		long[i] = 'q'
	}
	_, err = Parse(string(long), &network.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidCharacterLength)
}

func TestParse_Base58Errors(t *testing.T) {
	// Flip a middle character so the checksum no longer matches.
	_, err := Parse("1BgGZ9tcN4rmXKBzDn7KprQz87SZ26SAMH", &network.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidChecksum)

	// Valid mainnet address, wrong network.
	_, err = Parse("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", &network.Testnet3)
	assert.ErrorIs(t, err, network.ErrInvalidPrefix)
}

func TestParse_Bech32Errors(t *testing.T) {
	// Testnet address against mainnet parameters. Its hrp does not match
	// "bc1" so it falls through to base58, which cannot decode it.
	_, err := Parse("tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx", &network.Mainnet)
	assert.Error(t, err)

	// Corrupted bech32 checksum.
	_, err = Parse("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t5", &network.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

// ---------------------------------------------------------------------------
// Witness programs
// ---------------------------------------------------------------------------

func TestNewWitnessProgram(t *testing.T) {
	program := make([]byte, 20)
	raw := append([]byte{0x00, 0x14}, program...)

	wp, err := NewWitnessProgram(raw)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), wp.Version)
	assert.Len(t, wp.Program, 20)
}

func TestNewWitnessProgram_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{
			name: "truncated",
			data: []byte{0x00},
			err:  ErrInvalidProgramLength,
		},
		{
			name: "declared length mismatch",
			data: append([]byte{0x00, 0x14}, make([]byte, 19)...),
			err:  ErrMismatchedProgramLength,
		},
		{
			name: "program too short",
			data: []byte{0x00, 0x01, 0xaa},
			err:  ErrInvalidProgramLength,
		},
		{
			name: "program too long",
			data: append([]byte{0x00, 0x29}, make([]byte, 41)...),
			err:  ErrInvalidProgramLength,
		},
		{
			name: "version too high",
			data: append([]byte{0x11, 0x14}, make([]byte, 20)...),
			err:  ErrInvalidVersion,
		},
		{
			name: "bad version 0 length",
			data: append([]byte{0x00, 0x19}, make([]byte, 25)...),
			err:  ErrInvalidProgramLengthForVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWitnessProgram(tt.data)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWitnessProgram_ValidateNonZeroVersion(t *testing.T) {
	// Version 1 programs are not bound to the 20/32 byte rule.
	wp := &WitnessProgram{Version: 1, Program: make([]byte, 25)}
	assert.NoError(t, wp.Validate())
}
