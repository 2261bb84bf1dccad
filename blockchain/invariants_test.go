package blockchain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-core/chaincfg"
	"ledger-core/wire"
)

func TestCheckGenesisInvariants(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*wire.MsgBlock) *wire.MsgBlock
		fundCount int
		invariant string
	}{
		{
			name:      "nil block",
			mutate:    func(*wire.MsgBlock) *wire.MsgBlock { return nil },
			fundCount: 2,
			invariant: "block",
		},
		{
			name: "no transactions",
			mutate: func(b *wire.MsgBlock) *wire.MsgBlock {
				b.ClearTransactions()
				return b
			},
			fundCount: 2,
			invariant: "transaction count",
		},
		{
			name: "two transactions",
			mutate: func(b *wire.MsgBlock) *wire.MsgBlock {
				b.Transactions = append(b.Transactions, b.Transactions[0].Copy())
				return b
			},
			fundCount: 2,
			invariant: "transaction count",
		},
		{
			name: "two inputs",
			mutate: func(b *wire.MsgBlock) *wire.MsgBlock {
				tx := b.Transactions[0]
				tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&wire.ZeroHash, wire.MaxPrevOutIndex), nil))
				return b
			},
			fundCount: 2,
			invariant: "coinbase inputs",
		},
		{
			name: "spends real output",
			mutate: func(b *wire.MsgBlock) *wire.MsgBlock {
				b.Transactions[0].TxIn[0].PreviousOutPoint.Hash = wire.DoubleHashH([]byte("prev"))
				return b
			},
			fundCount: 2,
			invariant: "coinbase outpoint hash",
		},
		{
			name: "wrong outpoint index",
			mutate: func(b *wire.MsgBlock) *wire.MsgBlock {
				b.Transactions[0].TxIn[0].PreviousOutPoint.Index = 0
				return b
			},
			fundCount: 2,
			invariant: "coinbase outpoint index",
		},
		{
			name:      "output count mismatch",
			mutate:    func(b *wire.MsgBlock) *wire.MsgBlock { return b },
			fundCount: 3,
			invariant: "coinbase outputs",
		},
		{
			name: "stale merkle root",
			mutate: func(b *wire.MsgBlock) *wire.MsgBlock {
				b.Transactions[0].TxOut[0].Value++
				return b
			},
			fundCount: 2,
			invariant: "merkle root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := newTestBuilder().Build(&chaincfg.RegressionNetParams)
			require.NoError(t, err)
			require.NoError(t, CheckGenesisInvariants(block, 2))

			err = CheckGenesisInvariants(tt.mutate(block), tt.fundCount)
			require.ErrorIs(t, err, ErrInvariantViolation)

			var invErr *InvariantError
			require.True(t, errors.As(err, &invErr))
			assert.Equal(t, tt.invariant, invErr.Invariant)
		})
	}
}
