package blockchain

import (
	"ledger-core/wire"
)

// HashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the double sha256 of their concatenation.
func HashMerkleBranches(left, right *wire.Hash) wire.Hash {
	var hash [wire.HashSize * 2]byte
	copy(hash[:wire.HashSize], left[:])
	copy(hash[wire.HashSize:], right[:])
	return wire.DoubleHashH(hash[:])
}

// BuildMerkleRoot returns the merkle root of the transaction hashes.  Levels
// with an odd number of nodes pair the last node with itself, so a single
// transaction is its own root.  An empty list has the zero hash as root.
func BuildMerkleRoot(transactions []*wire.MsgTx) wire.Hash {
	leaves := make([]wire.Hash, 0, len(transactions))
	for _, tx := range transactions {
		leaves = append(leaves, tx.TxHash())
	}
	return merkleRoot(leaves)
}

// BuildWitnessMerkleRoot returns the merkle root of the witness hashes.  The
// coinbase, always the first transaction, contributes the zero hash since its
// witness commitment cannot commit to itself.  Transactions carry no witness
// data, so every other witness hash equals the transaction hash.
func BuildWitnessMerkleRoot(transactions []*wire.MsgTx) wire.Hash {
	leaves := make([]wire.Hash, 0, len(transactions))
	for i, tx := range transactions {
		if i == 0 {
			leaves = append(leaves, wire.ZeroHash)
			continue
		}
		leaves = append(leaves, tx.TxHash())
	}
	return merkleRoot(leaves)
}

func merkleRoot(level []wire.Hash) wire.Hash {
	if len(level) == 0 {
		return wire.ZeroHash
	}

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}

		next := make([]wire.Hash, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, HashMerkleBranches(&level[i], &level[i+1]))
		}
		level = next
	}

	return level[0]
}
