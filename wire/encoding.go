package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxVarIntPayload is the maximum payload size for a variable length integer.
const MaxVarIntPayload = 9

// maxElementSize bounds any length prefix read from the wire so a corrupt
// encoding cannot force a huge allocation.
const maxElementSize = 4 * 1024 * 1024

var littleEndian = binary.LittleEndian

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value (CompactSize encoding).
func WriteVarInt(w io.Writer, val uint64) error {
	var buf [MaxVarIntPayload]byte
	n := putVarInt(buf[:], val)
	_, err := w.Write(buf[:n])
	return err
}

func putVarInt(buf []byte, val uint64) int {
	switch {
	case val < 0xfd:
		buf[0] = uint8(val)
		return 1
	case val <= 0xffff:
		buf[0] = 0xfd
		littleEndian.PutUint16(buf[1:], uint16(val))
		return 3
	case val <= 0xffffffff:
		buf[0] = 0xfe
		littleEndian.PutUint32(buf[1:], uint32(val))
		return 5
	default:
		buf[0] = 0xff
		littleEndian.PutUint64(buf[1:], val)
		return 9
	}
}

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64.  Encodings that use more bytes than necessary are rejected.
func ReadVarInt(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, err
	}

	var rv, minVal uint64
	discriminant := buf[0]
	switch discriminant {
	case 0xff:
		if _, err := io.ReadFull(r, buf[:8]); err != nil {
			return 0, err
		}
		rv, minVal = littleEndian.Uint64(buf[:8]), 0x100000000
	case 0xfe:
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return 0, err
		}
		rv, minVal = uint64(littleEndian.Uint32(buf[:4])), 0x10000
	case 0xfd:
		if _, err := io.ReadFull(r, buf[:2]); err != nil {
			return 0, err
		}
		rv, minVal = uint64(littleEndian.Uint16(buf[:2])), 0xfd
	default:
		return uint64(discriminant), nil
	}

	if rv < minVal {
		return 0, fmt.Errorf("%w: %d encoded with 0x%x discriminant",
			ErrNonCanonicalVarInt, rv, discriminant)
	}
	return rv, nil
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xffff:
		return 3
	case val <= 0xffffffff:
		return 5
	}
	return 9
}

// WriteVarBytes serializes a variable length byte array to w as a varInt
// containing the number of bytes, followed by the bytes themselves.
func WriteVarBytes(w io.Writer, bytes []byte) error {
	if err := WriteVarInt(w, uint64(len(bytes))); err != nil {
		return err
	}
	_, err := w.Write(bytes)
	return err
}

// ReadVarBytes reads a variable length byte array.  fieldName is only used
// for the error message.
func ReadVarBytes(r io.Reader, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxElementSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrElementTooLarge, fieldName, count)
	}

	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	littleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint32(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	littleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint64(buf[:]), nil
}

func readHash(r io.Reader, hash *Hash) error {
	_, err := io.ReadFull(r, hash[:])
	return err
}
