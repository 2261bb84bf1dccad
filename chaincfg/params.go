package chaincfg

import (
	"errors"
	"fmt"
	"math/big"
	"time"
)

// ErrUnknownNetwork describes an error where the requested network name is
// not one of the registered networks.
var ErrUnknownNetwork = errors.New("unknown network")

// Params defines a network configuration.
type Params struct {
	Name        string
	Net         uint32
	DefaultPort string

	// Bech32HRP is the human-readable part of witness addresses.
	Bech32HRP string

	// BlockStakeTimestampInterval is the grid block timestamps are
	// quantized to.  Proposers may only use timestamps that are a
	// multiple of it.
	BlockStakeTimestampInterval time.Duration
	TargetTimePerBlock          time.Duration

	PowLimit     *big.Int
	PowLimitBits uint32

	// MaxMoney is the largest amount, in base units, the ledger can hold.
	MaxMoney int64

	// Genesis describes block zero.  It is turned into a block by the
	// blockchain package.
	Genesis GenesisSpec
}

// Coin is the number of base units in one coin.
const Coin int64 = 100000000

var mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 224), big.NewInt(1))

var regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))

var MainNetParams = Params{
	Name:                        "main",
	Net:                         0xee0d8a51,
	DefaultPort:                 "7182",
	Bech32HRP:                   "ldg",
	BlockStakeTimestampInterval: 4 * time.Second,
	TargetTimePerBlock:          16 * time.Second,
	PowLimit:                    mainPowLimit,
	PowLimitBits:                0x1d00ffff,
	MaxMoney:                    2718281828 * Coin,
	Genesis:                     mainNetGenesis,
}

var TestNetParams = Params{
	Name:                        "test",
	Net:                         0xfd0b1c42,
	DefaultPort:                 "17182",
	Bech32HRP:                   "tldg",
	BlockStakeTimestampInterval: 4 * time.Second,
	TargetTimePerBlock:          16 * time.Second,
	PowLimit:                    mainPowLimit,
	PowLimitBits:                0x1d00ffff,
	MaxMoney:                    2718281828 * Coin,
	Genesis:                     testNetGenesis,
}

var RegressionNetParams = Params{
	Name:                        "regtest",
	Net:                         0xfabfb5da,
	DefaultPort:                 "17292",
	Bech32HRP:                   "ldgrt",
	BlockStakeTimestampInterval: time.Second,
	TargetTimePerBlock:          16 * time.Second,
	PowLimit:                    regressionPowLimit,
	PowLimitBits:                0x207fffff,
	MaxMoney:                    2718281828 * Coin,
	Genesis:                     regressionNetGenesis,
}

var registeredNets = []*Params{&MainNetParams, &TestNetParams, &RegressionNetParams}

// ParamsForNetwork returns a copy of the registered parameters for name.  The
// copy may be modified, for example by LoadGenesisFile, without affecting the
// package-level values.
func ParamsForNetwork(name string) (*Params, error) {
	for _, p := range registeredNets {
		if p.Name == name {
			return p.Copy(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

// NetworkNames returns the names of all registered networks.
func NetworkNames() []string {
	names := make([]string, 0, len(registeredNets))
	for _, p := range registeredNets {
		names = append(names, p.Name)
	}
	return names
}

// Copy returns a copy of the parameters that shares no mutable state with p.
func (p *Params) Copy() *Params {
	cp := *p
	if p.PowLimit != nil {
		cp.PowLimit = new(big.Int).Set(p.PowLimit)
	}
	if p.Genesis.Difficulty != nil {
		cp.Genesis.Difficulty = p.Genesis.Difficulty.Clone()
	}
	cp.Genesis.Funds = append([]FundSpec(nil), p.Genesis.Funds...)
	return &cp
}
