package consensus

import (
	"math/big"

	"github.com/holiman/uint256"
)

// CompactToBig converts a compact representation of a whole number N to an
// unsigned 32-bit number.  The representation is similar to IEEE754 floating
// point numbers.
//
//	-------------------------------------------------
//	|   Exponent     |    Sign    |    Mantissa     |
//	-------------------------------------------------
//	| 8 bits [31-24] | 1 bit [23] | 23 bits [22-00] |
//	-------------------------------------------------
//
// N = (-1^sign) * mantissa * 256^(exponent-3)
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// BigToCompact converts a whole number N to a compact representation using
// an unsigned 32-bit number.  The compact representation only provides 23
// bits of precision, so values larger than (2^23 - 1) only encode the most
// significant digits of the number.  See CompactToBig for details.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	abs := new(big.Int).Abs(n)

	var mantissa uint32
	exponent := uint(len(abs.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(abs.Uint64())
		mantissa <<= 8 * (3 - exponent)
	} else {
		mantissa = uint32(new(big.Int).Rsh(abs, 8*(exponent-3)).Uint64())
	}

	// The 0x00800000 bit denotes the sign, so a mantissa that would set it
	// is shifted down a byte and the exponent bumped.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// TargetToCompact converts a 256-bit difficulty target to compact form.
func TargetToCompact(target *uint256.Int) uint32 {
	return BigToCompact(target.ToBig())
}

// CompactToTarget expands compact bits to a 256-bit target.  overflow is
// true when the bits encode a negative number or one wider than 256 bits.
func CompactToTarget(compact uint32) (target *uint256.Int, overflow bool) {
	n := CompactToBig(compact)
	if n.Sign() < 0 {
		return new(uint256.Int), true
	}
	return uint256.FromBig(n)
}
