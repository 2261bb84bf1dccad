package blockchain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"ledger-core/chaincfg"
	"ledger-core/consensus"
	"ledger-core/txscript"
	"ledger-core/wire"
)

// GenesisHeight is the height of the genesis block.
const GenesisHeight = 0

var (
	ErrNilParams             = errors.New("nil chain parameters")
	ErrAmbiguousDestination  = errors.New("funding entry names more than one destination")
	ErrTimestampOutOfRange   = errors.New("block timestamp not representable")
	errCoinbaseScriptFailure = errors.New("coinbase script construction failed")
)

// StandardCoinbaseScript returns the signature script of a coinbase input:
// the block height serialized as a script number and pushed as data,
// followed by a push of the UTXO set hash.  For the genesis block this is
// OP_0 0x20 <32 zero bytes>.  The script carries no spending authority.
func StandardCoinbaseScript(height int32, utxoSetHash wire.Hash) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddData(txscript.ScriptNum(height).Bytes()).
		AddData(utxoSetHash[:]).
		Script()
}

// GenesisBlockBuilder accumulates the declarative inputs of a genesis block
// and assembles the block from them.
//
// Setters return the builder so calls can be chained.  The funding methods
// record the first rejected entry, which is then reported by Err and Build;
// rejected entries are never added.  A builder must not be used from
// multiple goroutines at once.
type GenesisBlockBuilder struct {
	version int32
	time    time.Time
	bits    uint32
	funds   Funds
	err     error
}

// NewGenesisBlockBuilder returns a builder with version BlockVersion and no
// funds.
func NewGenesisBlockBuilder() *GenesisBlockBuilder {
	return &GenesisBlockBuilder{
		version: wire.BlockVersion,
	}
}

// SetVersion sets the block version.
func (b *GenesisBlockBuilder) SetVersion(version int32) *GenesisBlockBuilder {
	b.version = version
	return b
}

// SetTime sets the raw block time.  Build normalizes it with the network's
// behavior.
func (b *GenesisBlockBuilder) SetTime(t time.Time) *GenesisBlockBuilder {
	b.time = t
	return b
}

// SetBits sets the difficulty in compact form.
func (b *GenesisBlockBuilder) SetBits(bits uint32) *GenesisBlockBuilder {
	b.bits = bits
	return b
}

// SetDifficulty sets the difficulty from a 256-bit target.  The target is
// stored in compact form, which keeps only its most significant 23 bits.
func (b *GenesisBlockBuilder) SetDifficulty(target *uint256.Int) *GenesisBlockBuilder {
	b.bits = consensus.TargetToCompact(target)
	return b
}

// AddFundsForP2WPKH appends an output paying amount to the hex encoded
// 20-byte public key hash.
func (b *GenesisBlockBuilder) AddFundsForP2WPKH(amount int64, pubKeyHash string) *GenesisBlockBuilder {
	target, err := NewP2WPKH(amount, pubKeyHash)
	return b.add(target, err)
}

// AddFundsForP2WSH appends an output paying amount to the hex encoded
// 32-byte script hash.
func (b *GenesisBlockBuilder) AddFundsForP2WSH(amount int64, scriptHash string) *GenesisBlockBuilder {
	target, err := NewP2WSH(amount, scriptHash)
	return b.add(target, err)
}

// AddFundsForAddress appends an output paying amount to a bech32 witness v0
// address of the network identified by hrp.
func (b *GenesisBlockBuilder) AddFundsForAddress(amount int64, addr, hrp string) *GenesisBlockBuilder {
	target, err := NewFundingToAddress(amount, addr, hrp)
	return b.add(target, err)
}

// AddFunds appends the targets in order.  Each target is checked as if it had
// been constructed by NewP2WPKH or NewP2WSH; the first invalid target and all
// targets after it are dropped.
func (b *GenesisBlockBuilder) AddFunds(funds ...FundingTarget) *GenesisBlockBuilder {
	for _, target := range funds {
		b.add(target, target.validate())
		if b.err != nil {
			break
		}
	}
	return b
}

func (b *GenesisBlockBuilder) add(target FundingTarget, err error) *GenesisBlockBuilder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = err
		return b
	}
	b.funds = append(b.funds, target)
	return b
}

// ClearFunds removes all funding targets and any recorded error so the
// builder can be reused for a different block.
func (b *GenesisBlockBuilder) ClearFunds() *GenesisBlockBuilder {
	b.funds = nil
	b.err = nil
	return b
}

// Funds returns a copy of the funding targets added so far.
func (b *GenesisBlockBuilder) Funds() Funds {
	return append(Funds(nil), b.funds...)
}

// Err returns the first funding error recorded by the builder, if any.  The
// error is a *DestinationError.
func (b *GenesisBlockBuilder) Err() error {
	return b.err
}

// BuildCoinbaseTransaction returns the genesis coinbase: version 2, type
// coinbase, a single input spending the null outpoint and one output per
// funding target in insertion order.
func (b *GenesisBlockBuilder) BuildCoinbaseTransaction() *wire.MsgTx {
	// 34 bytes, far below the script size limit.
	script, err := StandardCoinbaseScript(GenesisHeight, wire.ZeroHash)
	if err != nil {
		panic(fmt.Errorf("%w: %v", errCoinbaseScriptFailure, err))
	}

	outputs := make([]*wire.TxOut, 0, len(b.funds))
	for _, target := range b.funds {
		outputs = append(outputs, target.TxOut())
	}
	return wire.NewCoinbaseTx(script, outputs...)
}

// Build assembles the genesis block for the network described by params.
//
// A recorded funding error is returned as is, funds totalling more than
// params.MaxMoney yield chaincfg.ErrExceedsMaxMoney and a time outside the
// range of the header encoding yields ErrTimestampOutOfRange.  An *InvariantError
// means the assembled block does not have the genesis shape; that is a defect
// in the builder, and the block is discarded.
func (b *GenesisBlockBuilder) Build(params *chaincfg.Params) (*wire.MsgBlock, error) {
	if params == nil {
		return nil, ErrNilParams
	}
	if b.err != nil {
		return nil, b.err
	}
	total, err := b.funds.Total()
	if err != nil {
		return nil, err
	}
	if total > params.MaxMoney {
		return nil, fmt.Errorf("%w: %d > %d", chaincfg.ErrExceedsMaxMoney, total, params.MaxMoney)
	}

	behavior := NewBehaviorFromParams(params)

	// The header carries the timestamp as uint32 Unix seconds.
	timestamp := behavior.CalculateProposingTimestamp(b.time)
	if sec := timestamp.Unix(); sec < 0 || sec > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %v", ErrTimestampOutOfRange, timestamp)
	}

	block := wire.NewMsgBlock(&wire.BlockHeader{
		Version:   b.version,
		PrevBlock: wire.ZeroHash,
		Timestamp: timestamp,
		Bits:      b.bits,
	})
	if err := block.AddTransaction(b.BuildCoinbaseTransaction()); err != nil {
		return nil, err
	}

	block.Header.MerkleRoot = BuildMerkleRoot(block.Transactions)
	block.Header.WitnessMerkleRoot = BuildWitnessMerkleRoot(block.Transactions)

	// Nobody proposes the genesis block, so nothing signs it.
	block.Signature = nil

	if err := CheckGenesisInvariants(block, len(b.funds)); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"network":     params.Name,
		"hash":        block.BlockHash().String(),
		"merkle_root": block.Header.MerkleRoot.String(),
		"timestamp":   block.Header.Timestamp.Unix(),
		"outputs":     len(block.Transactions[0].TxOut),
		"supply":      total,
	}).Debug("Built genesis block")

	return block, nil
}

// MustBuild is like Build but panics on error.  It is meant for package
// initialization of well-known networks.
func (b *GenesisBlockBuilder) MustBuild(params *chaincfg.Params) *wire.MsgBlock {
	block, err := b.Build(params)
	if err != nil {
		panic(fmt.Sprintf("building genesis block: %v", err))
	}
	return block
}

// NewGenesisBlock builds the genesis block described by params.Genesis.
func NewGenesisBlock(params *chaincfg.Params) (*wire.MsgBlock, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	spec := params.Genesis
	builder := NewGenesisBlockBuilder().
		SetVersion(spec.Version).
		SetTime(spec.Time).
		SetBits(spec.Bits)
	if spec.Difficulty != nil {
		builder.SetDifficulty(spec.Difficulty)
	}

	for i, fund := range spec.Funds {
		target, err := fundingFromSpec(fund, params.Bech32HRP)
		if err != nil {
			return nil, fmt.Errorf("genesis fund %d: %w", i, err)
		}
		builder.AddFunds(target)
	}

	return builder.Build(params)
}

func fundingFromSpec(fund chaincfg.FundSpec, hrp string) (FundingTarget, error) {
	set := 0
	for _, s := range []string{fund.PubKeyHash, fund.ScriptHash, fund.Address} {
		if s != "" {
			set++
		}
	}

	switch {
	case set > 1:
		return FundingTarget{}, &DestinationError{Field: "destination", Err: ErrAmbiguousDestination}
	case fund.PubKeyHash != "":
		return NewP2WPKH(fund.Amount, fund.PubKeyHash)
	case fund.ScriptHash != "":
		return NewP2WSH(fund.Amount, fund.ScriptHash)
	case fund.Address != "":
		return NewFundingToAddress(fund.Amount, fund.Address, hrp)
	}
	return FundingTarget{}, &DestinationError{Field: "destination", Err: ErrNoDestination}
}
