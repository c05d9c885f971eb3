// Package tx implements the Bitcoin transaction wire codec and signer:
// legacy and segwit serialization, per-format sighash preimages and
// scriptSig/witness assembly.
//
// Transactions are value types. Sign returns a new transaction and leaves
// its receiver untouched, so signing rounds compose: each signer applies
// Sign in turn and inputs that are already signed are skipped.
package tx

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btcwalletorg/libbtcwallet-go/address"
	"github.com/btcwalletorg/libbtcwallet-go/amount"
	"github.com/btcwalletorg/libbtcwallet-go/network"
	"github.com/btcwalletorg/libbtcwallet-go/txscript"
)

// Segwit serialization markers.
const (
	segwitMarker = 0x00
	segwitFlag   = 0x01
)

// DefaultSequence is the final sequence number, opting out of
// replace-by-fee and relative locktime.
const DefaultSequence uint32 = 0xffffffff

// Outpoint references the output being spent together with the data
// needed to sign for it. TxID is in wire byte order (reversed display
// order).
type Outpoint struct {
	TxID         []byte
	Index        uint32
	Amount       amount.Amount
	ScriptPubKey []byte
	RedeemScript []byte
	Address      *address.Address
}

// NewOutpoint builds an outpoint, deriving the scriptPubKey from the
// address when not supplied. The redeem script is validated per format:
// P2WSH spends need an explicit witness script, bech32 P2WPKH spends must
// not carry one.
func NewOutpoint(txid []byte, index uint32, amt amount.Amount, addr *address.Address,
	scriptPubKey, redeemScript []byte) (*Outpoint, error) {

	if len(txid) != 32 {
		return nil, fmt.Errorf("%w: txid must be 32 bytes, found %d", ErrInvalidOutpoint, len(txid))
	}

	if addr != nil {
		switch addr.Format() {
		case network.P2WSH:
			if redeemScript == nil {
				return nil, fmt.Errorf("%w: p2wsh outpoint needs a witness script", ErrInvalidInputs)
			}
		case network.Bech32:
			if redeemScript != nil {
				return nil, fmt.Errorf("%w: bech32 outpoint cannot carry a redeem script", ErrInvalidInputs)
			}
		}
		if scriptPubKey == nil {
			derived, err := txscript.CreateScriptPubKey(addr)
			if err != nil {
				return nil, err
			}
			scriptPubKey = derived
		}
	}

	op := &Outpoint{
		TxID:         append([]byte(nil), txid...),
		Index:        index,
		Amount:       amt,
		ScriptPubKey: scriptPubKey,
		RedeemScript: redeemScript,
		Address:      addr,
	}
	return op, nil
}

// AdditionalWitness carries a companion signature for a multi-signature
// witness script, with its caller-decided stack position.
type AdditionalWitness struct {
	// Signature is the companion DER signature with its sighash byte
	// already appended.
	Signature []byte

	// First places the companion signature before the one produced by
	// Sign.
	First bool
}

// Input is one transaction input.
type Input struct {
	Outpoint    *Outpoint
	ScriptSig   []byte
	Sequence    uint32
	SighashCode SigHashType
	Witnesses   [][]byte
	IsSigned    bool

	// AdditionalWitness supplies the companion signature for P2WSH
	// multisig spends.
	AdditionalWitness *AdditionalWitness

	// WitnessScriptData holds extra witness stack items emitted before
	// the signatures, such as the CHECKMULTISIG dummy element.
	WitnessScriptData [][]byte
}

// NewInput builds an unsigned input over an outpoint.
func NewInput(outpoint *Outpoint, sequence uint32, sighash SigHashType) *Input {
	return &Input{
		Outpoint:    outpoint,
		Sequence:    sequence,
		SighashCode: sighash,
	}
}

// Output is one transaction output.
type Output struct {
	Amount       amount.Amount
	ScriptPubKey []byte
}

// NewOutput builds an output paying amt to addr.
func NewOutput(amt amount.Amount, addr *address.Address) (*Output, error) {
	script, err := txscript.CreateScriptPubKey(addr)
	if err != nil {
		return nil, err
	}
	return &Output{Amount: amt, ScriptPubKey: script}, nil
}

// Transaction is a Bitcoin transaction.
type Transaction struct {
	Version  uint32
	Inputs   []*Input
	Outputs  []*Output
	LockTime uint32
	Segwit   bool
}

// TransactionID holds the reversed double-SHA256 transaction digests,
// excluding (TxID) and including (WTxID) witness data.
type TransactionID struct {
	TxID  []byte
	WTxID []byte
}

// String returns the hex txid.
func (id *TransactionID) String() string {
	return hex.EncodeToString(id.TxID)
}

// hasWitness reports whether any input carries witness data.
func (t *Transaction) hasWitness() bool {
	for _, input := range t.Inputs {
		if len(input.Witnesses) > 0 {
			return true
		}
	}
	return false
}

// Serialize renders the transaction in wire format, emitting the segwit
// marker, flag and witness stacks only when witness data is present.
func (t *Transaction) Serialize() ([]byte, error) {
	return t.serialize(t.Segwit || t.hasWitness())
}

// SerializeBase renders the transaction without witness data, the form
// hashed for the txid.
func (t *Transaction) SerializeBase() ([]byte, error) {
	return t.serialize(false)
}

func (t *Transaction) serialize(withWitness bool) ([]byte, error) {
	var buf bytes.Buffer

	var version [4]byte
	binary.LittleEndian.PutUint32(version[:], t.Version)
	buf.Write(version[:])

	if withWitness {
		buf.WriteByte(segwitMarker)
		buf.WriteByte(segwitFlag)
	}

	if err := WriteVarInt(&buf, uint64(len(t.Inputs))); err != nil {
		return nil, err
	}
	for _, input := range t.Inputs {
		if err := input.serialize(&buf); err != nil {
			return nil, err
		}
	}

	if err := WriteVarInt(&buf, uint64(len(t.Outputs))); err != nil {
		return nil, err
	}
	for _, output := range t.Outputs {
		output.serialize(&buf)
	}

	if withWitness {
		for _, input := range t.Inputs {
			if err := WriteVarInt(&buf, uint64(len(input.Witnesses))); err != nil {
				return nil, err
			}
			for _, item := range input.Witnesses {
				if err := writeByteVector(&buf, item); err != nil {
					return nil, err
				}
			}
		}
	}

	var lockTime [4]byte
	binary.LittleEndian.PutUint32(lockTime[:], t.LockTime)
	buf.Write(lockTime[:])
	return buf.Bytes(), nil
}

// serialize writes the input. An unsigned input stands in its prior
// scriptPubKey for legacy and P2SH formats, needed later to build
// legacy-style sighash preimages, and a zero-length placeholder for
// native segwit formats.
func (in *Input) serialize(buf *bytes.Buffer) error {
	if len(in.Outpoint.TxID) != 32 {
		return fmt.Errorf("%w: txid must be 32 bytes, found %d", ErrInvalidOutpoint, len(in.Outpoint.TxID))
	}
	buf.Write(in.Outpoint.TxID)
	var index [4]byte
	binary.LittleEndian.PutUint32(index[:], in.Outpoint.Index)
	buf.Write(index[:])

	script := in.ScriptSig
	if !in.IsSigned && len(script) == 0 && !in.spendsNativeWitness() {
		script = in.Outpoint.ScriptPubKey
	}
	if err := writeByteVector(buf, script); err != nil {
		return err
	}

	var sequence [4]byte
	binary.LittleEndian.PutUint32(sequence[:], in.Sequence)
	buf.Write(sequence[:])
	return nil
}

// spendsNativeWitness reports whether the outpoint pays a native segwit
// program.
func (in *Input) spendsNativeWitness() bool {
	if in.Outpoint.Address == nil {
		return true
	}
	switch in.Outpoint.Address.Format() {
	case network.Bech32, network.P2WSH:
		return true
	default:
		return false
	}
}

func (out *Output) serialize(buf *bytes.Buffer) {
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], uint64(out.Amount))
	buf.Write(amt[:])
	_ = writeByteVector(buf, out.ScriptPubKey)
}

// Deserialize reads one transaction from r. A zero input count signals
// the segwit marker; the following flag byte must be one.
func Deserialize(r io.Reader) (*Transaction, error) {
	t := &Transaction{}

	var version [4]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return nil, fmt.Errorf("tx: read version: %w", err)
	}
	t.Version = binary.LittleEndian.Uint32(version[:])

	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		var flag [1]byte
		if _, err := io.ReadFull(r, flag[:]); err != nil {
			return nil, fmt.Errorf("tx: read segwit flag: %w", err)
		}
		if flag[0] != segwitFlag {
			return nil, fmt.Errorf("%w: expected 0x01, found 0x%02x", ErrInvalidSegwitFlag, flag[0])
		}
		t.Segwit = true
		if count, err = ReadVarInt(r); err != nil {
			return nil, err
		}
	}

	for i := uint64(0); i < count; i++ {
		input, err := readInput(r)
		if err != nil {
			return nil, err
		}
		t.Inputs = append(t.Inputs, input)
	}

	outputs, err := readVector(r, readOutput)
	if err != nil {
		return nil, err
	}
	t.Outputs = outputs

	if t.Segwit {
		for _, input := range t.Inputs {
			items, n, err := readWitnessVector(r)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				input.Witnesses = items
				// The first stack item ends with the sighash byte of the
				// signature that produced it.
				if len(items[0]) > 0 {
					input.SighashCode = SigHashType(items[0][len(items[0])-1])
				}
				input.IsSigned = true
			}
		}
	}

	var lockTime [4]byte
	if _, err := io.ReadFull(r, lockTime[:]); err != nil {
		return nil, fmt.Errorf("tx: read lock time: %w", err)
	}
	t.LockTime = binary.LittleEndian.Uint32(lockTime[:])
	return t, nil
}

// FromBytes deserializes a transaction from raw bytes.
func FromBytes(raw []byte) (*Transaction, error) {
	return Deserialize(bytes.NewReader(raw))
}

func readInput(r io.Reader) (*Input, error) {
	op := &Outpoint{TxID: make([]byte, 32)}
	if _, err := io.ReadFull(r, op.TxID); err != nil {
		return nil, fmt.Errorf("tx: read outpoint: %w", err)
	}
	var index [4]byte
	if _, err := io.ReadFull(r, index[:]); err != nil {
		return nil, fmt.Errorf("tx: read outpoint index: %w", err)
	}
	op.Index = binary.LittleEndian.Uint32(index[:])

	script, err := readByteVector(r)
	if err != nil {
		return nil, err
	}

	var sequence [4]byte
	if _, err := io.ReadFull(r, sequence[:]); err != nil {
		return nil, fmt.Errorf("tx: read sequence: %w", err)
	}

	return &Input{
		Outpoint:    op,
		ScriptSig:   script,
		Sequence:    binary.LittleEndian.Uint32(sequence[:]),
		SighashCode: SigHashAll,
		IsSigned:    len(script) > 0,
	}, nil
}

func readOutput(r io.Reader) (*Output, error) {
	var amt [8]byte
	if _, err := io.ReadFull(r, amt[:]); err != nil {
		return nil, fmt.Errorf("tx: read output amount: %w", err)
	}
	script, err := readByteVector(r)
	if err != nil {
		return nil, err
	}
	return &Output{
		Amount:       amount.Amount(binary.LittleEndian.Uint64(amt[:])),
		ScriptPubKey: script,
	}, nil
}

// ID computes the transaction identifiers: reversed double-SHA256 over
// the witness-free serialization (TxID) and the full serialization
// (WTxID).
func (t *Transaction) ID() (*TransactionID, error) {
	base, err := t.SerializeBase()
	if err != nil {
		return nil, err
	}
	full, err := t.Serialize()
	if err != nil {
		return nil, err
	}
	return &TransactionID{
		TxID:  reverse(chainhash.DoubleHashB(base)),
		WTxID: reverse(chainhash.DoubleHashB(full)),
	}, nil
}

// Hex renders the full serialization as a hex string.
func (t *Transaction) Hex() (string, error) {
	raw, err := t.Serialize()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// Copy deep-copies the transaction so signing never mutates the original.
func (t *Transaction) Copy() *Transaction {
	c := &Transaction{
		Version:  t.Version,
		LockTime: t.LockTime,
		Segwit:   t.Segwit,
		Inputs:   make([]*Input, len(t.Inputs)),
		Outputs:  make([]*Output, len(t.Outputs)),
	}
	for i, input := range t.Inputs {
		in := *input
		in.ScriptSig = append([]byte(nil), input.ScriptSig...)
		in.Witnesses = copyStack(input.Witnesses)
		in.WitnessScriptData = copyStack(input.WitnessScriptData)
		if input.Outpoint != nil {
			op := *input.Outpoint
			in.Outpoint = &op
		}
		c.Inputs[i] = &in
	}
	for i, output := range t.Outputs {
		out := *output
		out.ScriptPubKey = append([]byte(nil), output.ScriptPubKey...)
		c.Outputs[i] = &out
	}
	return c
}

func copyStack(stack [][]byte) [][]byte {
	if stack == nil {
		return nil
	}
	c := make([][]byte, len(stack))
	for i, item := range stack {
		c[i] = append([]byte(nil), item...)
	}
	return c
}

func reverse(b []byte) []byte {
	r := make([]byte, len(b))
	for i, v := range b {
		r[len(b)-1-i] = v
	}
	return r
}
