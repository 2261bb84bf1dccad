package txscript

import (
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// WitnessV0KeyHashSize is the size of a pay-to-witness-pubkey-hash
	// program.
	WitnessV0KeyHashSize = 20

	// WitnessV0ScriptHashSize is the size of a pay-to-witness-script-hash
	// program.
	WitnessV0ScriptHashSize = 32
)

var (
	ErrInvalidHex        = errors.New("invalid hex encoding")
	ErrInvalidHashLength = errors.New("invalid hash length")
)

// Destination is a funding target that can be locked by an output script.
type Destination interface {
	// ScriptAddress returns the witness program committed to.
	ScriptAddress() []byte

	// PkScript returns the output script paying to the destination.
	PkScript() []byte

	// Address returns the bech32 encoding of the destination for the
	// network identified by hrp.
	Address(hrp string) (string, error)
}

// WitnessV0KeyHash is a version 0 witness program committing to the hash160
// of a public key.
type WitnessV0KeyHash [WitnessV0KeyHashSize]byte

// ScriptAddress returns the 20-byte key hash.
func (h WitnessV0KeyHash) ScriptAddress() []byte {
	return h[:]
}

// PkScript returns OP_0 <20-byte key hash>.
func (h WitnessV0KeyHash) PkScript() []byte {
	return witnessV0Script(h[:])
}

// Address returns the bech32 encoding of the key hash.
func (h WitnessV0KeyHash) Address(hrp string) (string, error) {
	return EncodeSegWitAddress(hrp, 0, h[:])
}

// String returns the key hash as hex.
func (h WitnessV0KeyHash) String() string {
	return hex.EncodeToString(h[:])
}

// WitnessV0ScriptHash is a version 0 witness program committing to the sha256
// of a witness script.
type WitnessV0ScriptHash [WitnessV0ScriptHashSize]byte

// ScriptAddress returns the 32-byte script hash.
func (h WitnessV0ScriptHash) ScriptAddress() []byte {
	return h[:]
}

// PkScript returns OP_0 <32-byte script hash>.
func (h WitnessV0ScriptHash) PkScript() []byte {
	return witnessV0Script(h[:])
}

// Address returns the bech32 encoding of the script hash.
func (h WitnessV0ScriptHash) Address(hrp string) (string, error) {
	return EncodeSegWitAddress(hrp, 0, h[:])
}

// String returns the script hash as hex.
func (h WitnessV0ScriptHash) String() string {
	return hex.EncodeToString(h[:])
}

// witnessV0Script cannot fail for 20 or 32 byte programs, both are well below
// the direct push limit.
func witnessV0Script(program []byte) []byte {
	script, _ := NewScriptBuilder().AddOp(OP_0).AddData(program).Script()
	return script
}

// ExtractWitnessProgram returns the version and program of a witness-program
// output script.  ok is false when script is not a version 0 witness program
// of 20 or 32 bytes.
func ExtractWitnessProgram(script []byte) (version byte, program []byte, ok bool) {
	if len(script) != 2+WitnessV0KeyHashSize && len(script) != 2+WitnessV0ScriptHashSize {
		return 0, nil, false
	}
	if script[0] != OP_0 || int(script[1]) != len(script)-2 {
		return 0, nil, false
	}
	return 0, script[2:], true
}

// DecodeHash decodes a hex string that must hold exactly size bytes.
// Malformed hex wraps ErrInvalidHex, a well-formed string of the wrong size
// wraps ErrInvalidHashLength.
func DecodeHash(hexStr string, size int) ([]byte, error) {
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHashLength, len(data), size)
	}
	return data, nil
}

// NewWitnessV0KeyHashFromHex decodes a 40-character hex key hash.
func NewWitnessV0KeyHashFromHex(hexStr string) (WitnessV0KeyHash, error) {
	var h WitnessV0KeyHash
	data, err := DecodeHash(hexStr, WitnessV0KeyHashSize)
	if err != nil {
		return h, err
	}
	copy(h[:], data)
	return h, nil
}

// NewWitnessV0ScriptHashFromHex decodes a 64-character hex script hash.
func NewWitnessV0ScriptHashFromHex(hexStr string) (WitnessV0ScriptHash, error) {
	var h WitnessV0ScriptHash
	data, err := DecodeHash(hexStr, WitnessV0ScriptHashSize)
	if err != nil {
		return h, err
	}
	copy(h[:], data)
	return h, nil
}
