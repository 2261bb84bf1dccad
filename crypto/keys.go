package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/ripemd160"

	"ledger-core/txscript"
)

// DefaultCoinType is the BIP-44 coin type used for funding keys.
const DefaultCoinType uint32 = 1

// MaxDerivedKeys bounds a single DeriveFundingKeys call.
const MaxDerivedKeys = 1000

var (
	ErrInvalidPubKey   = errors.New("invalid public key")
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrInvalidKeyCount = errors.New("invalid key count")
	ErrInvalidPath     = errors.New("invalid derivation path")
)

// Hash256 performs double SHA256 hash
func Hash256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash160 performs SHA256 followed by RIPEMD160
func Hash160(data []byte) []byte {
	hash := sha256.Sum256(data)
	ripemd := ripemd160.New()
	ripemd.Write(hash[:])
	return ripemd.Sum(nil)
}

// PubKeyHash returns the witness key hash of a public key in its compressed
// serialization.
func PubKeyHash(pubKey *btcec.PublicKey) txscript.WitnessV0KeyHash {
	var h txscript.WitnessV0KeyHash
	copy(h[:], Hash160(pubKey.SerializeCompressed()))
	return h
}

// PubKeyHashFromHex parses a hex encoded secp256k1 public key, compressed or
// not, and returns the hash of its compressed form.
func PubKeyHashFromHex(pubKeyHex string) (txscript.WitnessV0KeyHash, error) {
	raw, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return txscript.WitnessV0KeyHash{}, fmt.Errorf("%w: %v", ErrInvalidPubKey, err)
	}
	pubKey, err := btcec.ParsePubKey(raw)
	if err != nil {
		return txscript.WitnessV0KeyHash{}, fmt.Errorf("%w: %v", ErrInvalidPubKey, err)
	}
	return PubKeyHash(pubKey), nil
}

// GenerateMnemonic generates a new BIP39 mnemonic (24 words)
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256) // 24 words
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// FundingKey is a derived key suitable as a genesis funding destination.
type FundingKey struct {
	Path       string
	PubKey     []byte
	PubKeyHash txscript.WitnessV0KeyHash
}

// HardenedIndex checks that v can be used as a hardened path element and
// returns it as an unhardened child index.
func HardenedIndex(v int) (uint32, error) {
	if v < 0 || int64(v) >= int64(bip32.FirstHardenedChild) {
		return 0, fmt.Errorf("%w: index %d out of range", ErrInvalidPath, v)
	}
	return uint32(v), nil
}

// DeriveFundingKeys derives count keys along m/44'/coinType'/account'/0/i
// from a BIP39 mnemonic without passphrase.  coinType and account must be
// below bip32.FirstHardenedChild.
func DeriveFundingKeys(mnemonic string, coinType, account uint32, count int) ([]FundingKey, error) {
	if count <= 0 || count > MaxDerivedKeys {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyCount, count)
	}
	if coinType >= bip32.FirstHardenedChild || account >= bip32.FirstHardenedChild {
		return nil, fmt.Errorf("%w: m/44'/%d'/%d'", ErrInvalidPath, coinType, account)
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}

	// m/44'/coinType'/account'/0
	external := masterKey
	for _, childNum := range []uint32{
		44 + bip32.FirstHardenedChild,
		coinType + bip32.FirstHardenedChild,
		account + bip32.FirstHardenedChild,
		0,
	} {
		external, err = external.NewChildKey(childNum)
		if err != nil {
			return nil, err
		}
	}

	keys := make([]FundingKey, 0, count)
	for i := 0; i < count; i++ {
		child, err := external.NewChildKey(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("deriving key %d: %w", i, err)
		}

		_, pubKey := btcec.PrivKeyFromBytes(child.Key)
		keys = append(keys, FundingKey{
			Path:       fmt.Sprintf("m/44'/%d'/%d'/0/%d", coinType, account, i),
			PubKey:     pubKey.SerializeCompressed(),
			PubKeyHash: PubKeyHash(pubKey),
		})
	}
	return keys, nil
}
