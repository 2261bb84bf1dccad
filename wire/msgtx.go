package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	// TxVersion is the current transaction version.
	TxVersion = 2

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.  Coinbase inputs reference it together with ZeroHash.
	MaxPrevOutIndex uint32 = 0xffffffff

	// maxTxIOCount bounds the input and output counts accepted on decode.
	maxTxIOCount = 1 << 20
)

var ErrTooManyTxIO = errors.New("too many transaction inputs or outputs")

// OutPoint defines a data type that is used to track previous transaction
// outputs.
type OutPoint struct {
	Hash  Hash
	Index uint32
}

// NewOutPoint returns a new transaction outpoint point with the provided hash
// and index.
func NewOutPoint(hash *Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// String returns the OutPoint in the human-readable form "hash:index".
func (o OutPoint) String() string {
	return o.Hash.String() + ":" + strconv.FormatUint(uint64(o.Index), 10)
}

// TxIn defines a transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// NewTxIn returns a new transaction input with the provided previous outpoint
// and signature script with a default sequence of MaxTxInSequenceNum.
func NewTxIn(prevOut *OutPoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// TxOut defines a transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// NewTxOut returns a new transaction output with the provided value and
// public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{
		Value:    value,
		PkScript: pkScript,
	}
}

// TxType defines the type of transaction.  It is carried in the upper 16 bits
// of the encoded version word.
type TxType uint16

const (
	TxTypeStandard TxType = iota
	TxTypeCoinbase
	TxTypeDeposit
	TxTypeVote
	TxTypeLogout
	TxTypeSlash
	TxTypeWithdraw
	TxTypeAdmin
)

var txTypeStrings = map[TxType]string{
	TxTypeStandard: "standard",
	TxTypeCoinbase: "coinbase",
	TxTypeDeposit:  "deposit",
	TxTypeVote:     "vote",
	TxTypeLogout:   "logout",
	TxTypeSlash:    "slash",
	TxTypeWithdraw: "withdraw",
	TxTypeAdmin:    "admin",
}

// String returns the TxType in human-readable form.
func (t TxType) String() string {
	if s, ok := txTypeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", uint16(t))
}

// MsgTx represents a ledger transaction.
//
// Only the low 16 bits of Version are encoded; TxType occupies the high 16
// bits of the same 32-bit word.
type MsgTx struct {
	Version  int32
	TxType   TxType
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// NewMsgTx returns a new tx message of type TxTypeStandard.  There are no
// transaction inputs or outputs.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxType:  TxTypeStandard,
		TxIn:    make([]*TxIn, 0, 1),
		TxOut:   make([]*TxOut, 0, 8),
	}
}

// IsCoinbase returns true if this is a coinbase transaction: it is tagged as
// such and spends exactly the null outpoint.
func (msg *MsgTx) IsCoinbase() bool {
	return msg.TxType == TxTypeCoinbase &&
		len(msg.TxIn) == 1 &&
		msg.TxIn[0].PreviousOutPoint.Index == MaxPrevOutIndex &&
		msg.TxIn[0].PreviousOutPoint.Hash == ZeroHash
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (msg *MsgTx) Copy() *MsgTx {
	newTx := MsgTx{
		Version:  msg.Version,
		TxType:   msg.TxType,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}

	for _, oldTxIn := range msg.TxIn {
		newTxIn := TxIn{
			PreviousOutPoint: oldTxIn.PreviousOutPoint,
			SignatureScript:  append([]byte(nil), oldTxIn.SignatureScript...),
			Sequence:         oldTxIn.Sequence,
		}
		newTx.TxIn = append(newTx.TxIn, &newTxIn)
	}

	for _, oldTxOut := range msg.TxOut {
		newTx.TxOut = append(newTx.TxOut, &TxOut{
			Value:    oldTxOut.Value,
			PkScript: append([]byte(nil), oldTxOut.PkScript...),
		})
	}

	return &newTx
}

// versionWord packs the type tag and the version into the encoded word.
func (msg *MsgTx) versionWord() uint32 {
	return uint32(msg.TxType)<<16 | uint32(uint16(msg.Version))
}

// TxHash generates the hash for the transaction: the double sha256 of its
// canonical serialization.
func (msg *MsgTx) TxHash() Hash {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return DoubleHashH(buf.Bytes())
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction.
func (msg *MsgTx) SerializeSize() int {
	// Version word 4 bytes + LockTime 4 bytes + input and output counts.
	n := 8 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		// Outpoint 36 bytes + Sequence 4 bytes + script.
		n += 40 + VarIntSerializeSize(uint64(len(txIn.SignatureScript))) +
			len(txIn.SignatureScript)
	}

	for _, txOut := range msg.TxOut {
		n += 8 + VarIntSerializeSize(uint64(len(txOut.PkScript))) +
			len(txOut.PkScript)
	}

	return n
}

// Serialize encodes the transaction to w:
//
//	version word (uint32 LE) | varint #in | inputs | varint #out | outputs | locktime (uint32 LE)
//
// with each input as prev hash (32) | prev index (uint32 LE) | varbytes
// script | sequence (uint32 LE) and each output as value (int64 LE) |
// varbytes script.
func (msg *MsgTx) Serialize(w io.Writer) error {
	if err := writeUint32(w, msg.versionWord()); err != nil {
		return err
	}

	if err := WriteVarInt(w, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		if _, err := w.Write(ti.PreviousOutPoint.Hash[:]); err != nil {
			return err
		}
		if err := writeUint32(w, ti.PreviousOutPoint.Index); err != nil {
			return err
		}
		if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
			return err
		}
		if err := writeUint32(w, ti.Sequence); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		if err := writeUint64(w, uint64(to.Value)); err != nil {
			return err
		}
		if err := WriteVarBytes(w, to.PkScript); err != nil {
			return err
		}
	}

	return writeUint32(w, msg.LockTime)
}

// Deserialize decodes a transaction from r into the receiver using the format
// written by Serialize.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	word, err := readUint32(r)
	if err != nil {
		return err
	}
	msg.Version = int32(uint16(word))
	msg.TxType = TxType(word >> 16)

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxTxIOCount {
		return fmt.Errorf("%w: %d inputs", ErrTooManyTxIO, count)
	}
	msg.TxIn = make([]*TxIn, 0, count)
	for i := uint64(0); i < count; i++ {
		ti := new(TxIn)
		if err := readHash(r, &ti.PreviousOutPoint.Hash); err != nil {
			return err
		}
		if ti.PreviousOutPoint.Index, err = readUint32(r); err != nil {
			return err
		}
		if ti.SignatureScript, err = ReadVarBytes(r, "signature script"); err != nil {
			return err
		}
		if ti.Sequence, err = readUint32(r); err != nil {
			return err
		}
		msg.TxIn = append(msg.TxIn, ti)
	}

	count, err = ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxTxIOCount {
		return fmt.Errorf("%w: %d outputs", ErrTooManyTxIO, count)
	}
	msg.TxOut = make([]*TxOut, 0, count)
	for i := uint64(0); i < count; i++ {
		to := new(TxOut)
		value, err := readUint64(r)
		if err != nil {
			return err
		}
		to.Value = int64(value)
		if to.PkScript, err = ReadVarBytes(r, "public key script"); err != nil {
			return err
		}
		msg.TxOut = append(msg.TxOut, to)
	}

	msg.LockTime, err = readUint32(r)
	return err
}

// NewCoinbaseTx creates a coinbase transaction spending the null outpoint
// with the given signature script and outputs.
func NewCoinbaseTx(signatureScript []byte, outputs ...*TxOut) *MsgTx {
	tx := NewMsgTx(TxVersion)
	tx.TxType = TxTypeCoinbase
	tx.AddTxIn(NewTxIn(NewOutPoint(&ZeroHash, MaxPrevOutIndex), signatureScript))
	for _, out := range outputs {
		tx.AddTxOut(out)
	}
	return tx
}
