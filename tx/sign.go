package tx

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/btcwalletorg/libbtcwallet-go/address"
	"github.com/btcwalletorg/libbtcwallet-go/keys"
	"github.com/btcwalletorg/libbtcwallet-go/network"
	"github.com/btcwalletorg/libbtcwallet-go/txscript"
)

// Sign signs every unsigned input whose outpoint address the private key
// can satisfy and returns the result as a new transaction; the receiver
// is never mutated. Inputs that are already signed, carry no address, or
// belong to a different key are left untouched, so several signers can
// apply Sign in sequence.
func (t *Transaction) Sign(priv *keys.PrivateKey, params *network.Params) (*Transaction, error) {
	signed := t.Copy()
	pub := priv.PubKey()

	for i, input := range signed.Inputs {
		if input.IsSigned || input.Outpoint == nil || input.Outpoint.Address == nil {
			continue
		}

		format := input.Outpoint.Address.Format()
		owned, err := ownsInput(pub, input, params)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		if !owned {
			continue
		}

		digest, err := signed.sighashDigest(i, pub)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}

		signature := ecdsa.Sign(priv.Secp(), digest).Serialize()
		signature = append(signature, byte(input.SighashCode))

		switch format {
		case network.P2PKH:
			var script bytes.Buffer
			script.Write(txscript.PushData(signature))
			script.Write(txscript.PushData(pub.Serialize()))
			input.ScriptSig = script.Bytes()

		case network.P2SHP2WPKH:
			input.ScriptSig = txscript.PushData(address.P2WPKHRedeemScript(pub))
			input.Witnesses = [][]byte{signature, pub.SerializeCompressed()}

		case network.Bech32:
			input.Witnesses = [][]byte{signature, pub.SerializeCompressed()}

		case network.P2WSH:
			stack := make([][]byte, 0, len(input.WitnessScriptData)+3)
			stack = append(stack, input.WitnessScriptData...)
			if companion := input.AdditionalWitness; companion != nil {
				if len(companion.Signature) == 0 {
					return nil, fmt.Errorf("input %d: %w: empty companion signature", i, ErrInvalidInputs)
				}
				if companion.First {
					stack = append(stack, companion.Signature, signature)
				} else {
					stack = append(stack, signature, companion.Signature)
				}
			} else {
				stack = append(stack, signature)
			}
			stack = append(stack, input.Outpoint.RedeemScript)
			input.Witnesses = stack
		}

		input.IsSigned = true
	}

	if signed.hasWitness() {
		signed.Segwit = true
	}
	return signed, nil
}

// ownsInput checks that the key can satisfy the input's address. For
// P2WSH the check recomputes the address from the supplied witness
// script; for the key-hash formats it re-derives the address from the
// public key.
func ownsInput(pub *keys.PublicKey, input *Input, params *network.Params) (bool, error) {
	addr := input.Outpoint.Address

	if addr.Format() == network.P2WSH {
		if len(input.Outpoint.RedeemScript) == 0 {
			return false, fmt.Errorf("%w: p2wsh input needs a witness script", ErrInvalidInputs)
		}
		recomputed, err := address.NewP2WSH(input.Outpoint.RedeemScript, params)
		if err != nil {
			return false, err
		}
		if recomputed.String() != addr.String() {
			return false, fmt.Errorf("%w: witness script does not hash to the outpoint address", ErrInvalidInputs)
		}
		return true, nil
	}

	derived, err := address.FromPublicKey(pub, addr.Format(), params)
	if err != nil {
		return false, err
	}
	return derived.String() == addr.String(), nil
}

// sighashDigest builds and double-hashes the signature preimage for the
// input at index.
func (t *Transaction) sighashDigest(index int, pub *keys.PublicKey) ([]byte, error) {
	input := t.Inputs[index]

	var preimage []byte
	var err error
	switch input.Outpoint.Address.Format() {
	case network.P2PKH:
		preimage, err = t.legacyPreimage(index, input.SighashCode)

	case network.P2SHP2WPKH, network.Bech32:
		scriptCode := p2wpkhScriptCode(pub)
		preimage, err = t.segwitPreimage(index, scriptCode, input.SighashCode)

	case network.P2WSH:
		var code bytes.Buffer
		if err := writeByteVector(&code, input.Outpoint.RedeemScript); err != nil {
			return nil, err
		}
		preimage, err = t.segwitPreimage(index, code.Bytes(), input.SighashCode)

	default:
		return nil, fmt.Errorf("%w: format %s", ErrInvalidInputs, input.Outpoint.Address.Format())
	}
	if err != nil {
		return nil, err
	}
	return chainhash.DoubleHashB(preimage), nil
}

// p2wpkhScriptCode builds the implied P2PKH script over the compressed
// key hash, length prefix included, used as the BIP143 scriptCode for
// both native and nested P2WPKH.
func p2wpkhScriptCode(pub *keys.PublicKey) []byte {
	hash := keys.Hash160(pub.SerializeCompressed())
	code := make([]byte, 0, 26)
	code = append(code, 0x19, txscript.OpDup, txscript.OpHash160, 0x14)
	code = append(code, hash...)
	code = append(code, txscript.OpEqualVerify, txscript.OpCheckSig)
	return code
}
