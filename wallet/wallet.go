// Package wallet ties the primitives together into an HD wallet: a master
// key derived from a BIP39 phrase or stored seed, BIP44/BIP49 account
// derivation and address generation in the wallet's default format.
//
// Key hierarchy: m/44'/coin'/{account}'/{chain}/{index}, with purpose 49'
// substituted when the wallet renders P2SH-nested segwit addresses.
package wallet

import (
	"fmt"
	"io"

	"github.com/btcwalletorg/libbtcwallet-go/address"
	"github.com/btcwalletorg/libbtcwallet-go/hdkey"
	"github.com/btcwalletorg/libbtcwallet-go/keys"
	"github.com/btcwalletorg/libbtcwallet-go/keystore"
	"github.com/btcwalletorg/libbtcwallet-go/mnemonic"
	"github.com/btcwalletorg/libbtcwallet-go/network"
)

// Chain indices.
const (
	ExternalChain = 0 // receive addresses
	InternalChain = 1 // change addresses
)

// Wallet is an HD wallet bound to one network and address format.
type Wallet struct {
	master *hdkey.ExtendedPrivateKey
	params *network.Params
	format network.Format
}

// NewFromSeed builds a wallet from a BIP39 seed.
func NewFromSeed(seed []byte, params *network.Params, format network.Format) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	master, err := hdkey.NewMaster(seed, params, format)
	if err != nil {
		return nil, err
	}
	return &Wallet{master: master, params: params, format: format}, nil
}

// NewFromPhrase builds a wallet from a mnemonic phrase and passphrase. The
// phrase checksum is verified against the wordlist before the seed is
// stretched.
func NewFromPhrase(phrase, passphrase string, list *mnemonic.Wordlist,
	params *network.Params, format network.Format) (*Wallet, error) {

	if _, err := mnemonic.PhraseToEntropy(phrase, list); err != nil {
		return nil, err
	}
	return NewFromSeed(mnemonic.PhraseToSeed(phrase, passphrase), params, format)
}

// OpenStored loads a seed from the keystore and builds a wallet over it.
func OpenStored(store *keystore.Store, name, password string,
	params *network.Params, format network.Format) (*Wallet, error) {

	seed, err := store.Get(name, password)
	if err != nil {
		return nil, err
	}
	return NewFromSeed(seed, params, format)
}

// GeneratePhrase draws entropy from rand and renders it as a mnemonic
// phrase of wordCount words.
func GeneratePhrase(wordCount int, rand io.Reader, list *mnemonic.Wordlist) (string, error) {
	entropy, err := mnemonic.Generate(wordCount, rand)
	if err != nil {
		return "", err
	}
	return mnemonic.EntropyToPhrase(entropy, list)
}

// Network returns the wallet's parameter table.
func (w *Wallet) Network() *network.Params {
	return w.params
}

// Format returns the wallet's address format.
func (w *Wallet) Format() network.Format {
	return w.format
}

// path builds the five-level derivation path for chain and index under
// account, selecting purpose 49' for nested segwit wallets.
func (w *Wallet) path(account, chain, index uint32) hdkey.Path {
	if w.format == network.P2SHP2WPKH {
		return hdkey.BIP49Path(w.params, account, chain, index)
	}
	return hdkey.BIP44Path(w.params, account, chain, index)
}

// AccountKey derives the account-level extended private key,
// m/purpose'/coin'/account'.
func (w *Wallet) AccountKey(account uint32) (*hdkey.ExtendedPrivateKey, error) {
	full := w.path(account, 0, 0)
	key, err := w.master.Derive(full[:3])
	if err != nil {
		return nil, fmt.Errorf("wallet: derive account %d: %w", account, err)
	}
	return key, nil
}

// AccountPublicKey derives the account-level extended public key, the
// export suitable for watch-only address generation.
func (w *Wallet) AccountPublicKey(account uint32) (*hdkey.ExtendedPublicKey, error) {
	key, err := w.AccountKey(account)
	if err != nil {
		return nil, err
	}
	return key.Neuter(), nil
}

// PrivateKeyAt derives the signing key at account/chain/index.
func (w *Wallet) PrivateKeyAt(account, chain, index uint32) (*keys.PrivateKey, error) {
	key, err := w.master.Derive(w.path(account, chain, index))
	if err != nil {
		return nil, fmt.Errorf("wallet: derive %d/%d/%d: %w", account, chain, index, err)
	}
	return key.PrivateKey(), nil
}

// addressAt derives the address at account/chain/index in the wallet
// format.
func (w *Wallet) addressAt(account, chain, index uint32) (*address.Address, error) {
	priv, err := w.PrivateKeyAt(account, chain, index)
	if err != nil {
		return nil, err
	}
	return address.FromPublicKey(priv.PubKey(), w.format, w.params)
}

// ReceiveAddress derives the external-chain address at index.
func (w *Wallet) ReceiveAddress(account, index uint32) (*address.Address, error) {
	return w.addressAt(account, ExternalChain, index)
}

// ChangeAddress derives the internal-chain address at index.
func (w *Wallet) ChangeAddress(account, index uint32) (*address.Address, error) {
	return w.addressAt(account, InternalChain, index)
}

// ExportWIF renders the signing key at account/chain/index in wallet
// import format.
func (w *Wallet) ExportWIF(account, chain, index uint32) (string, error) {
	priv, err := w.PrivateKeyAt(account, chain, index)
	if err != nil {
		return "", err
	}
	return priv.ToWIF(w.params), nil
}
