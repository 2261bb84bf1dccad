package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-core/blockchain"
	"ledger-core/chaincfg"
	"ledger-core/wire"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func genesisFor(t *testing.T, params *chaincfg.Params) *wire.MsgBlock {
	t.Helper()
	block, err := blockchain.NewGenesisBlock(params)
	require.NoError(t, err)
	return block
}

func TestSaveAndGetBlock(t *testing.T) {
	s := newTestStorage(t)
	block := genesisFor(t, &chaincfg.RegressionNetParams)

	require.NoError(t, s.SaveBlock(block))

	got, err := s.GetBlock(block.BlockHash())
	require.NoError(t, err)
	assert.Equal(t, block.BlockHash(), got.BlockHash())

	want, err := block.Bytes()
	require.NoError(t, err)
	have, err := got.Bytes()
	require.NoError(t, err)
	assert.Equal(t, want, have)

	_, err = s.GetBlock(wire.ZeroHash)
	require.ErrorIs(t, err, ErrBlockNotFound)
}

func TestInitGenesis(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorage(dir)
	require.NoError(t, err)

	_, err = s.GenesisHash()
	require.ErrorIs(t, err, ErrNoGenesis)

	regtest := genesisFor(t, &chaincfg.RegressionNetParams)
	require.NoError(t, s.InitGenesis(regtest))
	require.NoError(t, s.InitGenesis(regtest))

	hash, err := s.GenesisHash()
	require.NoError(t, err)
	assert.Equal(t, regtest.BlockHash(), hash)

	main := genesisFor(t, &chaincfg.MainNetParams)
	require.ErrorIs(t, s.InitGenesis(main), ErrGenesisMismatch)

	_, err = s.GetBlock(main.BlockHash())
	require.ErrorIs(t, err, ErrBlockNotFound)

	// The genesis survives reopening.
	require.NoError(t, s.Close())
	reopened, err := NewStorage(dir)
	require.NoError(t, err)
	defer reopened.Close()

	hash, err = reopened.GenesisHash()
	require.NoError(t, err)
	assert.Equal(t, regtest.BlockHash(), hash)
}
