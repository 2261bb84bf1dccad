package txscript

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
)

var (
	ErrWrongNetwork       = errors.New("address is for a different network")
	ErrUnsupportedWitness = errors.New("unsupported witness version")
)

// EncodeSegWitAddress encodes a witness program as a bech32 address.
func EncodeSegWitAddress(hrp string, witnessVersion byte, program []byte) (string, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}

	data := make([]byte, 0, len(converted)+1)
	data = append(data, witnessVersion)
	data = append(data, converted...)

	return bech32.Encode(hrp, data)
}

// DecodeAddress decodes a bech32 address for the network identified by hrp
// into a version 0 witness destination.
func DecodeAddress(addr, hrp string) (Destination, error) {
	gotHRP, data, err := bech32.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", addr, err)
	}
	if !strings.EqualFold(gotHRP, hrp) {
		return nil, fmt.Errorf("%w: prefix %q, want %q", ErrWrongNetwork, gotHRP, hrp)
	}
	if len(data) < 1 {
		return nil, fmt.Errorf("decoding %q: empty data section", addr)
	}
	if data[0] != 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedWitness, data[0])
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", addr, err)
	}

	switch len(program) {
	case WitnessV0KeyHashSize:
		var h WitnessV0KeyHash
		copy(h[:], program)
		return h, nil
	case WitnessV0ScriptHashSize:
		var h WitnessV0ScriptHash
		copy(h[:], program)
		return h, nil
	}
	return nil, fmt.Errorf("%w: witness program of %d bytes", ErrInvalidHashLength, len(program))
}
