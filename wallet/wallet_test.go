package wallet

import (
	"bytes"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btcwalletorg/libbtcwallet-go/hdkey"
	"github.com/btcwalletorg/libbtcwallet-go/keys"
	"github.com/btcwalletorg/libbtcwallet-go/keystore"
	"github.com/btcwalletorg/libbtcwallet-go/mnemonic"
	"github.com/btcwalletorg/libbtcwallet-go/network"
)

const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testWallet(t *testing.T, format network.Format) *Wallet {
	t.Helper()
	w, err := NewFromPhrase(testPhrase, "TREZOR", mnemonic.English, &network.Mainnet, format)
	require.NoError(t, err)
	return w
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNewFromSeed_Empty(t *testing.T) {
	_, err := NewFromSeed(nil, &network.Mainnet, network.P2PKH)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestNewFromPhrase_BadChecksum(t *testing.T) {
	tampered := strings.TrimSuffix(testPhrase, "about") + "abandon"
	_, err := NewFromPhrase(tampered, "", mnemonic.English, &network.Mainnet, network.P2PKH)
	assert.ErrorIs(t, err, mnemonic.ErrInvalidPhrase)
}

func TestNewFromPhrase_MatchesSeed(t *testing.T) {
	fromPhrase := testWallet(t, network.P2PKH)
	fromSeed, err := NewFromSeed(mnemonic.PhraseToSeed(testPhrase, "TREZOR"), &network.Mainnet, network.P2PKH)
	require.NoError(t, err)

	a, err := fromPhrase.ReceiveAddress(0, 0)
	require.NoError(t, err)
	b, err := fromSeed.ReceiveAddress(0, 0)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestGeneratePhrase(t *testing.T) {
	phrase, err := GeneratePhrase(12, bytes.NewReader(bytes.Repeat([]byte{0x5a}, 64)), mnemonic.English)
	require.NoError(t, err)
	assert.Len(t, strings.Split(phrase, " "), 12)
	assert.True(t, mnemonic.ValidatePhrase(phrase, mnemonic.English))

	_, err = GeneratePhrase(13, bytes.NewReader(make([]byte, 64)), mnemonic.English)
	assert.ErrorIs(t, err, mnemonic.ErrInvalidWordCount)
}

// ---------------------------------------------------------------------------
// Address derivation
// ---------------------------------------------------------------------------

func TestAddresses_FormatPrefixes(t *testing.T) {
	tests := []struct {
		format network.Format
		prefix string
	}{
		{network.P2PKH, "1"},
		{network.P2SHP2WPKH, "3"},
		{network.Bech32, "bc1"},
	}
	for _, tt := range tests {
		w := testWallet(t, tt.format)
		addr, err := w.ReceiveAddress(0, 0)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(addr.String(), tt.prefix),
			"%s address %s", tt.format, addr)
		assert.Equal(t, tt.format, addr.Format())
	}
}

func TestAddresses_Deterministic(t *testing.T) {
	w := testWallet(t, network.Bech32)

	first, err := w.ReceiveAddress(0, 5)
	require.NoError(t, err)
	again, err := w.ReceiveAddress(0, 5)
	require.NoError(t, err)
	assert.Equal(t, first.String(), again.String())

	// Different index, chain and account all change the address.
	other, err := w.ReceiveAddress(0, 6)
	require.NoError(t, err)
	assert.NotEqual(t, first.String(), other.String())

	change, err := w.ChangeAddress(0, 5)
	require.NoError(t, err)
	assert.NotEqual(t, first.String(), change.String())

	account1, err := w.ReceiveAddress(1, 5)
	require.NoError(t, err)
	assert.NotEqual(t, first.String(), account1.String())
}

func TestAccountPublicKey_WatchOnlyBranch(t *testing.T) {
	w := testWallet(t, network.P2PKH)

	xpub, err := w.AccountPublicKey(0)
	require.NoError(t, err)

	// Public-branch derivation of chain/index must land on the same key
	// as the private branch.
	derived, err := xpub.Derive(hdkey.Path{hdkey.Normal(ExternalChain), hdkey.Normal(3)})
	require.NoError(t, err)

	priv, err := w.PrivateKeyAt(0, ExternalChain, 3)
	require.NoError(t, err)
	assert.Equal(t,
		priv.PubKey().SerializeCompressed(),
		derived.PublicKey().SerializeCompressed())
}

func TestAccountKey_SegwitPurpose(t *testing.T) {
	w := testWallet(t, network.P2SHP2WPKH)

	key, err := w.AccountKey(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), key.Depth())
	assert.Equal(t, hdkey.Hardened(0), key.ChildNumber())

	// The full five-level BIP49 path forces the derived key's format.
	priv, err := w.master.Derive(w.path(0, ExternalChain, 0))
	require.NoError(t, err)
	assert.Equal(t, network.P2SHP2WPKH, priv.Format())
}

func TestZeroSeed_KnownVector(t *testing.T) {
	w, err := NewFromSeed(make([]byte, 64), &network.Mainnet, network.P2PKH)
	require.NoError(t, err)

	// m/44'/0'/0'/0/0 from the all-zero 64-byte seed.
	wif, err := w.ExportWIF(0, ExternalChain, 0)
	require.NoError(t, err)
	assert.Equal(t, "L4BvVtgyBX87SM9nSKMjaTB1GSPzLAVBXbbiSF2Js6xc11L5CgEr", wif)

	addr, err := w.ReceiveAddress(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "1FPTAYpFK6WAeAVnCoYNDFYN7PMCuQpfKs", addr.String())

	priv, err := w.PrivateKeyAt(0, ExternalChain, 0)
	require.NoError(t, err)
	assert.Equal(t,
		"cff12f0e1077935a4ed24838a6465b15728cc6d653f767cf3d5d0c5e4921f52d",
		hex.EncodeToString(priv.Serialize()))
}

func TestExportWIF(t *testing.T) {
	w := testWallet(t, network.P2PKH)

	wif, err := w.ExportWIF(0, ExternalChain, 0)
	require.NoError(t, err)

	key, err := keys.ParseWIF(wif, &network.Mainnet)
	require.NoError(t, err)

	priv, err := w.PrivateKeyAt(0, ExternalChain, 0)
	require.NoError(t, err)
	assert.Equal(t, priv.Serialize(), key.Serialize())
}

// ---------------------------------------------------------------------------
// Keystore integration
// ---------------------------------------------------------------------------

func TestOpenStored(t *testing.T) {
	store, err := keystore.Open(filepath.Join(t.TempDir(), "seeds.db"))
	require.NoError(t, err)
	defer store.Close()

	seed := mnemonic.PhraseToSeed(testPhrase, "")
	require.NoError(t, store.Put("primary", seed, "pw"))

	stored, err := OpenStored(store, "primary", "pw", &network.Mainnet, network.Bech32)
	require.NoError(t, err)
	direct, err := NewFromSeed(seed, &network.Mainnet, network.Bech32)
	require.NoError(t, err)

	a, err := stored.ReceiveAddress(0, 0)
	require.NoError(t, err)
	b, err := direct.ReceiveAddress(0, 0)
	require.NoError(t, err)
	assert.Equal(t, b.String(), a.String())

	_, err = OpenStored(store, "primary", "wrong", &network.Mainnet, network.Bech32)
	assert.ErrorIs(t, err, keystore.ErrDecryptionFailed)
}
