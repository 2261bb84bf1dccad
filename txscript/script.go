// Package txscript builds the scripts carried by ledger transactions: the
// coinbase signature script payload and the witness-program output scripts
// that lock funds to a destination.
package txscript

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Opcodes used by the script builder.
const (
	OP_0         = 0x00
	OP_DATA_1    = 0x01
	OP_DATA_20   = 0x14
	OP_DATA_32   = 0x20
	OP_DATA_75   = 0x4b
	OP_PUSHDATA1 = 0x4c
	OP_PUSHDATA2 = 0x4d
	OP_PUSHDATA4 = 0x4e
	OP_1NEGATE   = 0x4f
	OP_1         = 0x51
	OP_16        = 0x60
)

// MaxScriptSize is the maximum allowed length of a raw script.
const MaxScriptSize = 10000

var ErrScriptTooLarge = errors.New("script exceeds maximum size")

// ScriptNum is a script numeric value.  It serializes to the minimal
// little-endian sign-magnitude form, with zero encoded as an empty slice.
type ScriptNum int64

// Bytes returns the number serialized as a little endian with a sign bit.
func (n ScriptNum) Bytes() []byte {
	if n == 0 {
		return nil
	}

	isNegative := n < 0
	if isNegative {
		n = -n
	}

	result := make([]byte, 0, 9)
	for n > 0 {
		result = append(result, byte(n&0xff))
		n >>= 8
	}

	// When the most significant byte already has the high bit set, an
	// additional byte is required to carry the sign.
	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// ScriptBuilder provides a facility for building custom scripts.  The first
// error encountered is recorded and returned by Script; all later calls are
// no-ops.
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder returns a new instance of a script builder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{
		script: make([]byte, 0, 64),
	}
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(b.script)+1 > MaxScriptSize {
		b.err = fmt.Errorf("%w: adding an opcode would exceed %d bytes", ErrScriptTooLarge, MaxScriptSize)
		return b
	}

	b.script = append(b.script, opcode)
	return b
}

// AddData pushes the passed data to the end of the script using a direct push
// for up to 75 bytes and the smallest OP_PUSHDATA form above that.  No
// small-integer opcode substitution is performed, so an empty slice is pushed
// as OP_0 and a single byte is always a one-byte push.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	dataLen := len(data)
	var prefix []byte
	switch {
	case dataLen <= OP_DATA_75:
		prefix = []byte{byte(dataLen)}
	case dataLen <= 0xff:
		prefix = []byte{OP_PUSHDATA1, byte(dataLen)}
	case dataLen <= 0xffff:
		prefix = make([]byte, 3)
		prefix[0] = OP_PUSHDATA2
		binary.LittleEndian.PutUint16(prefix[1:], uint16(dataLen))
	default:
		prefix = make([]byte, 5)
		prefix[0] = OP_PUSHDATA4
		binary.LittleEndian.PutUint32(prefix[1:], uint32(dataLen))
	}

	if len(b.script)+len(prefix)+dataLen > MaxScriptSize {
		b.err = fmt.Errorf("%w: adding %d bytes of data would exceed %d bytes",
			ErrScriptTooLarge, dataLen, MaxScriptSize)
		return b
	}

	b.script = append(b.script, prefix...)
	b.script = append(b.script, data...)
	return b
}

// AddInt64 pushes the passed integer to the end of the script, using the
// dedicated opcodes for -1 and 0 through 16.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	switch {
	case val == 0:
		return b.AddOp(OP_0)
	case val == -1 || (val >= 1 && val <= 16):
		return b.AddOp(byte((OP_1 - 1) + val))
	}

	return b.AddData(ScriptNum(val).Bytes())
}

// Script returns the currently built script.  When any errors occurred while
// building the script, the script will be returned up the point of the first
// error along with the error.
func (b *ScriptBuilder) Script() ([]byte, error) {
	return b.script, b.err
}
