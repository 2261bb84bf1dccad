package blockchain

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"ledger-core/wire"
)

func hexString(b []byte) string {
	return hex.EncodeToString(b)
}

func merkleTestTxs(n int) []*wire.MsgTx {
	txs := make([]*wire.MsgTx, 0, n)
	for i := 0; i < n; i++ {
		tx := wire.NewMsgTx(wire.TxVersion)
		tx.AddTxOut(wire.NewTxOut(int64(i+1), []byte{byte(i)}))
		txs = append(txs, tx)
	}
	return txs
}

func TestBuildMerkleRoot(t *testing.T) {
	txs := merkleTestTxs(3)
	h0, h1, h2 := txs[0].TxHash(), txs[1].TxHash(), txs[2].TxHash()

	assert.Equal(t, wire.ZeroHash, BuildMerkleRoot(nil))
	assert.Equal(t, h0, BuildMerkleRoot(txs[:1]))
	assert.Equal(t, HashMerkleBranches(&h0, &h1), BuildMerkleRoot(txs[:2]))

	left := HashMerkleBranches(&h0, &h1)
	right := HashMerkleBranches(&h2, &h2)
	assert.Equal(t, HashMerkleBranches(&left, &right), BuildMerkleRoot(txs))
}

func TestBuildWitnessMerkleRoot(t *testing.T) {
	txs := merkleTestTxs(2)
	h1 := txs[1].TxHash()

	assert.Equal(t, wire.ZeroHash, BuildWitnessMerkleRoot(txs[:1]))
	assert.Equal(t, HashMerkleBranches(&wire.ZeroHash, &h1), BuildWitnessMerkleRoot(txs))
}

func TestHashMerkleBranchesOrder(t *testing.T) {
	a := wire.DoubleHashH([]byte("a"))
	b := wire.DoubleHashH([]byte("b"))
	assert.NotEqual(t, HashMerkleBranches(&a, &b), HashMerkleBranches(&b, &a))
}
