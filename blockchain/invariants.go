package blockchain

import (
	"errors"
	"fmt"

	"ledger-core/wire"
)

// ErrInvariantViolation is wrapped by every InvariantError.  It signals a
// defect in block construction, never bad user input.
var ErrInvariantViolation = errors.New("genesis invariant violated")

// InvariantError reports which structural property of a genesis block does
// not hold.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvariantViolation, e.Invariant, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

func invariantErr(invariant, format string, args ...any) error {
	return &InvariantError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}

// CheckGenesisInvariants verifies the shape every genesis block must have:
// a single coinbase transaction with one input spending the null outpoint,
// one output per funding target and a merkle root equal to the coinbase hash.
func CheckGenesisInvariants(block *wire.MsgBlock, fundCount int) error {
	if block == nil {
		return invariantErr("block", "block is nil")
	}
	if n := len(block.Transactions); n != 1 {
		return invariantErr("transaction count", "have %d, want 1", n)
	}

	coinbase := block.Transactions[0]
	if coinbase == nil {
		return invariantErr("transaction count", "coinbase is nil")
	}
	if n := len(coinbase.TxIn); n != 1 {
		return invariantErr("coinbase inputs", "have %d, want 1", n)
	}

	prevOut := coinbase.TxIn[0].PreviousOutPoint
	if prevOut.Hash != wire.ZeroHash {
		return invariantErr("coinbase outpoint hash", "have %v, want null hash", prevOut.Hash)
	}
	if prevOut.Index != wire.MaxPrevOutIndex {
		return invariantErr("coinbase outpoint index", "have %d, want %d", prevOut.Index, wire.MaxPrevOutIndex)
	}

	if n := len(coinbase.TxOut); n != fundCount {
		return invariantErr("coinbase outputs", "have %d, want %d", n, fundCount)
	}

	if txHash := coinbase.TxHash(); block.Header.MerkleRoot != txHash {
		return invariantErr("merkle root", "have %v, want coinbase hash %v", block.Header.MerkleRoot, txHash)
	}

	return nil
}
