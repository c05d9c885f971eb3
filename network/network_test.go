package network

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, name := range []string{"mainnet", "testnet3", "regtest"} {
		params, err := Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, params.Name)
	}

	_, err := Get("simnet")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestLoadCustom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	data := `{
		"name": "litecoin",
		"pubkeyhash_prefix": 48,
		"scripthash_prefix": 50,
		"bech32_hrp": "ltc",
		"wif_prefix": 176,
		"hd_coin_type": 2
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	params, err := LoadCustom(path)
	require.NoError(t, err)
	assert.Equal(t, "litecoin", params.Name)
	assert.Equal(t, byte(0x30), params.PubKeyHashPrefix)
	assert.Equal(t, byte(0x32), params.ScriptHashPrefix)
	assert.Equal(t, "ltc", params.Bech32HRP)
	assert.Equal(t, byte(0xb0), params.WIFPrefix)
	assert.Equal(t, uint32(2), params.HDCoinType)

	// Extended-key version bytes default to the mainnet table.
	assert.Equal(t, Mainnet.HDPrivateKeyID, params.HDPrivateKeyID)
}

func TestLoadCustom_Errors(t *testing.T) {
	_, err := LoadCustom(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "unnamed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bech32_hrp": "xx"}`), 0600))
	_, err = LoadCustom(path)
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestAddressPrefix(t *testing.T) {
	assert.Equal(t, []byte{0x00}, Mainnet.AddressPrefix(P2PKH))
	assert.Equal(t, []byte{0x05}, Mainnet.AddressPrefix(P2SHP2WPKH))
	assert.Equal(t, []byte("bc"), Mainnet.AddressPrefix(Bech32))
	assert.Equal(t, []byte("tb"), Testnet3.AddressPrefix(P2WSH))
}

func TestFormatFromAddressPrefix(t *testing.T) {
	format, err := Mainnet.FormatFromAddressPrefix(0x00)
	require.NoError(t, err)
	assert.Equal(t, P2PKH, format)

	format, err = Testnet3.FormatFromAddressPrefix(0xc4)
	require.NoError(t, err)
	assert.Equal(t, P2SHP2WPKH, format)

	_, err = Mainnet.FormatFromAddressPrefix(0x6f)
	assert.ErrorIs(t, err, ErrInvalidPrefix)
}

func TestExtendedKeyVersions(t *testing.T) {
	version, err := Mainnet.ExtendedPrivateKeyVersion(P2PKH)
	require.NoError(t, err)
	assert.Equal(t, [4]byte{0x04, 0x88, 0xad, 0xe4}, version)

	version, err = Mainnet.ExtendedPublicKeyVersion(P2SHP2WPKH)
	require.NoError(t, err)
	assert.Equal(t, [4]byte{0x04, 0x9d, 0x7c, 0xb2}, version)

	// Native segwit formats have no SLIP-132 serialization here.
	_, err = Mainnet.ExtendedPrivateKeyVersion(Bech32)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = Mainnet.ExtendedPublicKeyVersion(P2WSH)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromExtendedVersion(t *testing.T) {
	format, err := Mainnet.FormatFromExtendedVersion([4]byte{0x04, 0x88, 0xad, 0xe4}, true)
	require.NoError(t, err)
	assert.Equal(t, P2PKH, format)

	format, err = Testnet3.FormatFromExtendedVersion([4]byte{0x04, 0x4a, 0x52, 0x62}, false)
	require.NoError(t, err)
	assert.Equal(t, P2SHP2WPKH, format)

	// Private version bytes do not resolve on the public table.
	_, err = Mainnet.FormatFromExtendedVersion([4]byte{0x04, 0x88, 0xad, 0xe4}, false)
	assert.ErrorIs(t, err, ErrInvalidVersionBytes)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "p2pkh", P2PKH.String())
	assert.Equal(t, "p2sh_p2wpkh", P2SHP2WPKH.String())
	assert.Equal(t, "bech32", Bech32.String())
	assert.Equal(t, "p2wsh", P2WSH.String())
}
