package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"
)

// BlockVersion is the current block version.
const BlockVersion = 1

// BlockHeaderLen is the number of bytes of a serialized block header:
// version 4 + three hashes 96 + timestamp 4 + bits 4.
const BlockHeaderLen = 108

// maxTxPerBlock bounds the transaction count accepted on decode.
const maxTxPerBlock = 1 << 20

var (
	ErrTooManyTransactions = errors.New("too many transactions in block")
	ErrNilTransaction      = errors.New("nil transaction")
)

// BlockHeader defines information about a block and is used in the ledger
// block (MsgBlock) message.
type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock Hash

	// MerkleRoot is the double sha256 merkle root of all of the transaction
	// hashes in the block.
	MerkleRoot Hash

	// WitnessMerkleRoot commits to the witness hashes of the transactions.
	// The coinbase contributes the zero hash.
	WitnessMerkleRoot Hash

	// Timestamp the block was created.  This is encoded as a uint32 of Unix
	// seconds on the wire which limits its range.
	Timestamp time.Time

	// Difficulty target for the block in compact form.
	Bits uint32
}

// NewBlockHeader returns a new BlockHeader using the provided version, previous
// block hash, merkle root hash, difficulty bits, and timestamp.
func NewBlockHeader(version int32, prevHash, merkleRootHash *Hash, bits uint32, timestamp time.Time) *BlockHeader {
	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRootHash,
		Timestamp:  time.Unix(timestamp.Unix(), 0).UTC(),
		Bits:       bits,
	}
}

// Serialize encodes the header to w in its fixed BlockHeaderLen layout.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if err := writeUint32(w, uint32(h.Version)); err != nil {
		return err
	}
	for _, hash := range []*Hash{&h.PrevBlock, &h.MerkleRoot, &h.WitnessMerkleRoot} {
		if _, err := w.Write(hash[:]); err != nil {
			return err
		}
	}
	if err := writeUint32(w, uint32(h.Timestamp.Unix())); err != nil {
		return err
	}
	return writeUint32(w, h.Bits)
}

// Deserialize decodes a header from r into the receiver.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	h.Version = int32(version)

	for _, hash := range []*Hash{&h.PrevBlock, &h.MerkleRoot, &h.WitnessMerkleRoot} {
		if err := readHash(r, hash); err != nil {
			return err
		}
	}

	sec, err := readUint32(r)
	if err != nil {
		return err
	}
	h.Timestamp = time.Unix(int64(sec), 0).UTC()

	h.Bits, err = readUint32(r)
	return err
}

// BlockHash calculates the hash of the block header.
func (h *BlockHeader) BlockHash() Hash {
	buf := bytes.NewBuffer(make([]byte, 0, BlockHeaderLen))
	_ = h.Serialize(buf)
	return DoubleHashH(buf.Bytes())
}

// MsgBlock represents a ledger block.  Signature holds the proposer's
// signature and is not covered by the block hash.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
	Signature    []byte
}

// AddTransaction adds a transaction to the message.  It refuses a nil
// transaction and a block that would no longer decode.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) error {
	if tx == nil {
		return ErrNilTransaction
	}
	if len(msg.Transactions) >= maxTxPerBlock {
		return fmt.Errorf("%w: limit %d", ErrTooManyTransactions, maxTxPerBlock)
	}
	msg.Transactions = append(msg.Transactions, tx)
	return nil
}

// ClearTransactions removes all transactions from the message.
func (msg *MsgBlock) ClearTransactions() {
	msg.Transactions = make([]*MsgTx, 0, cap(msg.Transactions))
}

// NewMsgBlock returns a new block message.  There are no transactions.
func NewMsgBlock(blockHeader *BlockHeader) *MsgBlock {
	return &MsgBlock{
		Header:       *blockHeader,
		Transactions: make([]*MsgTx, 0, 1),
	}
}

// BlockHash returns the hash of the block header.
func (msg *MsgBlock) BlockHash() Hash {
	return msg.Header.BlockHash()
}

// SerializeSize returns the number of bytes it would take to serialize the
// block.
func (msg *MsgBlock) SerializeSize() int {
	n := BlockHeaderLen + VarIntSerializeSize(uint64(len(msg.Transactions)))
	for _, tx := range msg.Transactions {
		n += tx.SerializeSize()
	}
	return n + VarIntSerializeSize(uint64(len(msg.Signature))) + len(msg.Signature)
}

// Serialize encodes the block to w as header | varint #tx | transactions |
// varbytes signature.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	if err := msg.Header.Serialize(w); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(msg.Transactions))); err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		if err := tx.Serialize(w); err != nil {
			return err
		}
	}
	return WriteVarBytes(w, msg.Signature)
}

// Bytes returns the serialized block.
func (msg *MsgBlock) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	if err := msg.Serialize(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize decodes a block from r into the receiver.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	if err := msg.Header.Deserialize(r); err != nil {
		return err
	}

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxTxPerBlock {
		return fmt.Errorf("%w: %d", ErrTooManyTransactions, count)
	}

	msg.Transactions = make([]*MsgTx, 0, count)
	for i := uint64(0); i < count; i++ {
		tx := new(MsgTx)
		if err := tx.Deserialize(r); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		msg.Transactions = append(msg.Transactions, tx)
	}

	sig, err := ReadVarBytes(r, "block signature")
	if err != nil {
		return err
	}
	if len(sig) > 0 {
		msg.Signature = sig
	} else {
		msg.Signature = nil
	}
	return nil
}
