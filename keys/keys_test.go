package keys

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btcwalletorg/libbtcwallet-go/network"
)

// The scalar-1 key and the 0x0C28... key from the WIF reference vectors.
const (
	scalarOneCompressedPub = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

	wifReferenceScalar       = "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d"
	wifReferenceUncompressed = "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ"
	wifReferenceCompressed   = "KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617"
)

func scalarKey(t *testing.T, hexScalar string, compressed bool) *PrivateKey {
	t.Helper()
	b, err := hex.DecodeString(hexScalar)
	require.NoError(t, err)
	key, err := PrivateKeyFromBytes(b, compressed)
	require.NoError(t, err)
	return key
}

// ---------------------------------------------------------------------------
// Private keys
// ---------------------------------------------------------------------------

func TestPrivateKeyFromBytes(t *testing.T) {
	scalar := make([]byte, 32)
	scalar[31] = 0x01

	key, err := PrivateKeyFromBytes(scalar, true)
	require.NoError(t, err)
	assert.Equal(t, scalar, key.Serialize())
	assert.True(t, key.IsCompressed())
	assert.Equal(t, scalarOneCompressedPub, hex.EncodeToString(key.PubKey().Serialize()))
}

func TestPrivateKeyFromBytes_Errors(t *testing.T) {
	_, err := PrivateKeyFromBytes(make([]byte, 31), true)
	assert.ErrorIs(t, err, ErrInvalidByteLength)

	// Zero scalar.
	_, err = PrivateKeyFromBytes(make([]byte, 32), true)
	assert.ErrorIs(t, err, ErrInvalidScalar)

	// At or above the curve order.
	order, err := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	require.NoError(t, err)
	_, err = PrivateKeyFromBytes(order, true)
	assert.ErrorIs(t, err, ErrInvalidScalar)
}

func TestNewPrivateKey(t *testing.T) {
	key, err := NewPrivateKey(bytes.NewReader(bytes.Repeat([]byte{0x42}, 64)))
	require.NoError(t, err)
	assert.True(t, key.IsCompressed())
	assert.Len(t, key.Serialize(), 32)
}

// ---------------------------------------------------------------------------
// WIF codec
// ---------------------------------------------------------------------------

func TestToWIF_Vectors(t *testing.T) {
	key := scalarKey(t, wifReferenceScalar, false)
	assert.Equal(t, wifReferenceUncompressed, key.ToWIF(&network.Mainnet))

	key = scalarKey(t, wifReferenceScalar, true)
	assert.Equal(t, wifReferenceCompressed, key.ToWIF(&network.Mainnet))
}

func TestParseWIF_Vectors(t *testing.T) {
	key, err := ParseWIF(wifReferenceUncompressed, &network.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, wifReferenceScalar, hex.EncodeToString(key.Serialize()))
	assert.False(t, key.IsCompressed())

	key, err = ParseWIF(wifReferenceCompressed, &network.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, wifReferenceScalar, hex.EncodeToString(key.Serialize()))
	assert.True(t, key.IsCompressed())
}

func TestWIF_RoundTripTestnet(t *testing.T) {
	key := scalarKey(t, wifReferenceScalar, true)
	wif := key.ToWIF(&network.Testnet3)

	decoded, err := ParseWIF(wif, &network.Testnet3)
	require.NoError(t, err)
	assert.Equal(t, key.Serialize(), decoded.Serialize())
	assert.True(t, decoded.IsCompressed())
}

func TestParseWIF_Errors(t *testing.T) {
	_, err := ParseWIF("notawif", &network.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidByteLength)

	// Flip a middle character to break the checksum.
	corrupted := wifReferenceCompressed[:20] + "x" + wifReferenceCompressed[21:]
	_, err = ParseWIF(corrupted, &network.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidChecksum)

	// Mainnet WIF against testnet parameters.
	_, err = ParseWIF(wifReferenceCompressed, &network.Testnet3)
	assert.ErrorIs(t, err, ErrInvalidPrefix)
}

// ---------------------------------------------------------------------------
// Public keys
// ---------------------------------------------------------------------------

func TestParsePublicKey(t *testing.T) {
	compressed, err := hex.DecodeString(scalarOneCompressedPub)
	require.NoError(t, err)

	pub, err := ParsePublicKey(compressed)
	require.NoError(t, err)
	assert.True(t, pub.IsCompressed())
	assert.Equal(t, compressed, pub.Serialize())

	// Uncompressed encoding round-trips and is detected by length.
	uncompressed := pub.Secp().SerializeUncompressed()
	pub, err = ParsePublicKey(uncompressed)
	require.NoError(t, err)
	assert.False(t, pub.IsCompressed())
	assert.Equal(t, uncompressed, pub.Serialize())
	assert.Equal(t, compressed, pub.SerializeCompressed())
}

func TestParsePublicKey_Invalid(t *testing.T) {
	_, err := ParsePublicKey([]byte{0x02, 0x03})
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	// A prefix byte that matches neither encoding.
	bad := make([]byte, 33)
	bad[0] = 0x05
	_, err = ParsePublicKey(bad)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestHash160(t *testing.T) {
	pub, err := hex.DecodeString(scalarOneCompressedPub)
	require.NoError(t, err)
	assert.Equal(t,
		"751e76e8199196d454941c45d1b3a323f1433bd6",
		hex.EncodeToString(Hash160(pub)))
}
