package chaincfg

import (
	"time"

	"github.com/holiman/uint256"
)

// FundSpec is one initial allocation of the genesis coinbase.  Exactly one of
// PubKeyHash, ScriptHash or Address is set.  The strings are kept as given;
// the genesis builder decodes and validates them.
type FundSpec struct {
	Amount int64

	// PubKeyHash is the hex encoded hash160 of a public key (P2WPKH).
	PubKeyHash string

	// ScriptHash is the hex encoded sha256 of a witness script (P2WSH).
	ScriptHash string

	// Address is a bech32 witness v0 address for the network.
	Address string
}

// GenesisSpec holds the declarative inputs of the genesis block.  Time is the
// raw time; the network's behavior normalizes it when the block is built.
// When Difficulty is set it takes precedence over Bits.
type GenesisSpec struct {
	Version    int32
	Time       time.Time
	Bits       uint32
	Difficulty *uint256.Int
	Funds      []FundSpec
}

var mainNetGenesis = GenesisSpec{
	Version: 4,
	Time:    time.Date(2026, 3, 2, 9, 0, 2, 0, time.UTC),
	Bits:    0x1d00ffff,
	Funds: []FundSpec{
		{Amount: 125000000 * Coin, PubKeyHash: "7c5263ee9767454235679b96d15265c070786c83"},
		{Amount: 125000000 * Coin, PubKeyHash: "8ce34d76d15bd097e35a833dd954b3c448679820"},
		{Amount: 250000000 * Coin, ScriptHash: "03452c2b4f9dbd622b69bab1dc70a5855ca7b11349d66be5c61d3c24627ebb00"},
	},
}

var testNetGenesis = GenesisSpec{
	Version: 4,
	Time:    time.Date(2026, 1, 12, 14, 30, 7, 0, time.UTC),
	Bits:    0x1d00ffff,
	Funds: []FundSpec{
		{Amount: 10000 * Coin, PubKeyHash: "c80acaecf18b9c3852e2eb6563dfaa4d6ad96ebd"},
		{Amount: 10000 * Coin, PubKeyHash: "4560cd3eb907f45060f89df85e888158f45f3618"},
		{Amount: 50000 * Coin, ScriptHash: "01b86229f60152d775b4b73434dfea1513bf54c68bd6df71c8d665e069535e74"},
	},
}

var regressionNetGenesis = GenesisSpec{
	Version: 4,
	Time:    time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	Bits:    0x207fffff,
	Funds: []FundSpec{
		{Amount: 10000 * Coin, PubKeyHash: "3d17776e24696a7e4986a8af75591e487d1cd5c4"},
		{Amount: 10000 * Coin, PubKeyHash: "23e656ed7a997b8d19070f43e63388973b7b8c52"},
	},
}
