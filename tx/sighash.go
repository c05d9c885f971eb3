package tx

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// SigHashType selects which parts of a transaction a signature commits
// to. The low five bits pick the base mode, the high bit detaches the
// other inputs.
type SigHashType uint32

const (
	SigHashAll          SigHashType = 0x01
	SigHashNone         SigHashType = 0x02
	SigHashSingle       SigHashType = 0x03
	SigHashAnyOneCanPay SigHashType = 0x80

	// sigHashMask isolates the base mode.
	sigHashMask = 0x1f
)

// base returns the base mode without the anyone-can-pay bit.
func (s SigHashType) base() SigHashType {
	return s & sigHashMask
}

// anyOneCanPay reports whether the signature detaches the other inputs.
func (s SigHashType) anyOneCanPay() bool {
	return s&SigHashAnyOneCanPay != 0
}

// legacyPreimage builds the classic whole-transaction signature preimage
// for the input at index: the target input carries its prior
// scriptPubKey, the other inputs empty scripts, with outputs and
// sequences blanked per the sighash mode, and the sighash type appended
// as a 32-bit little-endian trailer.
func (t *Transaction) legacyPreimage(index int, sighash SigHashType) ([]byte, error) {
	target := t.Inputs[index]
	if len(target.Outpoint.ScriptPubKey) == 0 {
		return nil, fmt.Errorf("%w: input %d has no outpoint script", ErrMissingScript, index)
	}
	if sighash.base() == SigHashSingle && index >= len(t.Outputs) {
		return nil, fmt.Errorf("%w: SIGHASH_SINGLE input %d has no matching output", ErrInvalidInputs, index)
	}

	var buf bytes.Buffer
	var scratch [8]byte

	binary.LittleEndian.PutUint32(scratch[:4], t.Version)
	buf.Write(scratch[:4])

	// Inputs.
	if sighash.anyOneCanPay() {
		if err := WriteVarInt(&buf, 1); err != nil {
			return nil, err
		}
		writePreimageInput(&buf, target, target.Outpoint.ScriptPubKey, target.Sequence)
	} else {
		if err := WriteVarInt(&buf, uint64(len(t.Inputs))); err != nil {
			return nil, err
		}
		for i, input := range t.Inputs {
			script := []byte(nil)
			sequence := input.Sequence
			if i == index {
				script = target.Outpoint.ScriptPubKey
			} else if sighash.base() == SigHashNone || sighash.base() == SigHashSingle {
				sequence = 0
			}
			writePreimageInput(&buf, input, script, sequence)
		}
	}

	// Outputs.
	switch sighash.base() {
	case SigHashNone:
		if err := WriteVarInt(&buf, 0); err != nil {
			return nil, err
		}
	case SigHashSingle:
		if err := WriteVarInt(&buf, uint64(index)+1); err != nil {
			return nil, err
		}
		for i := 0; i < index; i++ {
			// Earlier outputs are blanked to value −1 with empty scripts.
			binary.LittleEndian.PutUint64(scratch[:], ^uint64(0))
			buf.Write(scratch[:])
			buf.WriteByte(0x00)
		}
		t.Outputs[index].serialize(&buf)
	default:
		if err := WriteVarInt(&buf, uint64(len(t.Outputs))); err != nil {
			return nil, err
		}
		for _, output := range t.Outputs {
			output.serialize(&buf)
		}
	}

	binary.LittleEndian.PutUint32(scratch[:4], t.LockTime)
	buf.Write(scratch[:4])
	binary.LittleEndian.PutUint32(scratch[:4], uint32(sighash))
	buf.Write(scratch[:4])
	return buf.Bytes(), nil
}

func writePreimageInput(buf *bytes.Buffer, input *Input, script []byte, sequence uint32) {
	buf.Write(input.Outpoint.TxID)
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], input.Outpoint.Index)
	buf.Write(scratch[:])
	_ = writeByteVector(buf, script)
	binary.LittleEndian.PutUint32(scratch[:], sequence)
	buf.Write(scratch[:])
}

// segwitPreimage builds the BIP143 signature preimage for the input at
// index. scriptCode must already carry its length prefix.
func (t *Transaction) segwitPreimage(index int, scriptCode []byte, sighash SigHashType) ([]byte, error) {
	target := t.Inputs[index]
	zero := make([]byte, 32)

	hashPrevouts := zero
	if !sighash.anyOneCanPay() {
		var prevouts bytes.Buffer
		for _, input := range t.Inputs {
			prevouts.Write(input.Outpoint.TxID)
			var idx [4]byte
			binary.LittleEndian.PutUint32(idx[:], input.Outpoint.Index)
			prevouts.Write(idx[:])
		}
		hashPrevouts = chainhash.DoubleHashB(prevouts.Bytes())
	}

	hashSequence := zero
	if !sighash.anyOneCanPay() && sighash.base() != SigHashNone && sighash.base() != SigHashSingle {
		var sequences bytes.Buffer
		for _, input := range t.Inputs {
			var seq [4]byte
			binary.LittleEndian.PutUint32(seq[:], input.Sequence)
			sequences.Write(seq[:])
		}
		hashSequence = chainhash.DoubleHashB(sequences.Bytes())
	}

	hashOutputs := zero
	switch {
	case sighash.base() != SigHashNone && sighash.base() != SigHashSingle:
		var outputs bytes.Buffer
		for _, output := range t.Outputs {
			output.serialize(&outputs)
		}
		hashOutputs = chainhash.DoubleHashB(outputs.Bytes())
	case sighash.base() == SigHashSingle && index < len(t.Outputs):
		var output bytes.Buffer
		t.Outputs[index].serialize(&output)
		hashOutputs = chainhash.DoubleHashB(output.Bytes())
	}

	var buf bytes.Buffer
	var scratch [8]byte

	binary.LittleEndian.PutUint32(scratch[:4], t.Version)
	buf.Write(scratch[:4])
	buf.Write(hashPrevouts)
	buf.Write(hashSequence)
	buf.Write(target.Outpoint.TxID)
	binary.LittleEndian.PutUint32(scratch[:4], target.Outpoint.Index)
	buf.Write(scratch[:4])
	buf.Write(scriptCode)
	binary.LittleEndian.PutUint64(scratch[:], uint64(target.Outpoint.Amount))
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint32(scratch[:4], target.Sequence)
	buf.Write(scratch[:4])
	buf.Write(hashOutputs)
	binary.LittleEndian.PutUint32(scratch[:4], t.LockTime)
	buf.Write(scratch[:4])
	binary.LittleEndian.PutUint32(scratch[:4], uint32(sighash))
	buf.Write(scratch[:4])
	return buf.Bytes(), nil
}
