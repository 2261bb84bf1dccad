package wire

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// Error definitions
var (
	ErrHashStrSize        = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)
	ErrNonCanonicalVarInt = errors.New("non-canonical varint")
	ErrElementTooLarge    = errors.New("element exceeds maximum allowed size")
)

// HashSize of array used to store hashes.  See Hash.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// Hash is used in several of the ledger messages and common structures.  It
// typically represents the double sha256 of data.
type Hash [HashSize]byte

// ZeroHash is the null hash.  It is the previous block of the genesis block
// and the previous output hash of every coinbase input.
var ZeroHash Hash

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash.
func (hash Hash) String() string {
	for i := 0; i < HashSize/2; i++ {
		hash[i], hash[HashSize-1-i] = hash[HashSize-1-i], hash[i]
	}
	return hex.EncodeToString(hash[:])
}

// NewHashFromStr creates a Hash from a hash string.  The string should be
// the hexadecimal string of a byte-reversed hash, but any missing characters
// result in zero padding at the end of the Hash.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	if len(hash) > MaxHashStringSize {
		return nil, ErrHashStrSize
	}

	// Hex decoder expects the hash to be a multiple of two.
	if len(hash)%2 != 0 {
		hash = "0" + hash
	}

	var reversed Hash
	if _, err := hex.Decode(reversed[HashSize-hex.DecodedLen(len(hash)):], []byte(hash)); err != nil {
		return nil, err
	}

	for i, b := range reversed[:] {
		ret[HashSize-1-i] = b
	}
	return ret, nil
}

// DoubleHashH calculates hash(hash(b)) and returns the resulting bytes as a
// Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}
