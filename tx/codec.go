package tx

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Variable-length integer markers.
const (
	varIntMax1  = 0xfc
	varIntTag2  = 0xfd
	varIntTag4  = 0xfe
	varIntTag8  = 0xff
	varIntMin2  = 0xfd
	varIntMin4  = 0x10000
	varIntMin8  = 0x100000000
	varIntLimit = 1 << 25 // sanity cap on decoded element counts
)

// WriteVarInt appends the Bitcoin variable-length encoding of n to w.
func WriteVarInt(w io.Writer, n uint64) error {
	var buf [9]byte
	switch {
	case n <= varIntMax1:
		buf[0] = byte(n)
		_, err := w.Write(buf[:1])
		return err
	case n < varIntMin4:
		buf[0] = varIntTag2
		binary.LittleEndian.PutUint16(buf[1:3], uint16(n))
		_, err := w.Write(buf[:3])
		return err
	case n < varIntMin8:
		buf[0] = varIntTag4
		binary.LittleEndian.PutUint32(buf[1:5], uint32(n))
		_, err := w.Write(buf[:5])
		return err
	default:
		buf[0] = varIntTag8
		binary.LittleEndian.PutUint64(buf[1:9], n)
		_, err := w.Write(buf[:9])
		return err
	}
}

// ReadVarInt decodes a variable-length integer, rejecting encodings that
// are not canonically minimal.
func ReadVarInt(r io.Reader) (uint64, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return 0, fmt.Errorf("tx: read varint: %w", err)
	}

	switch tag[0] {
	case varIntTag2:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("tx: read varint: %w", err)
		}
		n := uint64(binary.LittleEndian.Uint16(buf[:]))
		if n < varIntMin2 {
			return 0, fmt.Errorf("%w: %d encoded in 2 bytes", ErrInvalidVarInt, n)
		}
		return n, nil
	case varIntTag4:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("tx: read varint: %w", err)
		}
		n := uint64(binary.LittleEndian.Uint32(buf[:]))
		if n < varIntMin4 {
			return 0, fmt.Errorf("%w: %d encoded in 4 bytes", ErrInvalidVarInt, n)
		}
		return n, nil
	case varIntTag8:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("tx: read varint: %w", err)
		}
		n := binary.LittleEndian.Uint64(buf[:])
		if n < varIntMin8 {
			return 0, fmt.Errorf("%w: %d encoded in 8 bytes", ErrInvalidVarInt, n)
		}
		return n, nil
	default:
		return uint64(tag[0]), nil
	}
}

// readVector reads a count-prefixed sequence of homogeneous elements.
func readVector[E any](r io.Reader, read func(io.Reader) (E, error)) ([]E, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > varIntLimit {
		return nil, fmt.Errorf("%w: element count %d", ErrInvalidVarInt, count)
	}

	elements := make([]E, 0, count)
	for i := uint64(0); i < count; i++ {
		e, err := read(r)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return elements, nil
}

// readWitnessVector reads a witness stack, returning the element count
// alongside the elements for sighash bookkeeping.
func readWitnessVector(r io.Reader) ([][]byte, uint64, error) {
	items, err := readVector(r, readByteVector)
	if err != nil {
		return nil, 0, err
	}
	return items, uint64(len(items)), nil
}

// readByteVector reads one length-prefixed byte string.
func readByteVector(r io.Reader) ([]byte, error) {
	size, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if size > varIntLimit {
		return nil, fmt.Errorf("%w: byte vector length %d", ErrInvalidVarInt, size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("tx: read byte vector: %w", err)
	}
	return buf, nil
}

// writeByteVector writes one length-prefixed byte string.
func writeByteVector(w io.Writer, b []byte) error {
	if err := WriteVarInt(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
