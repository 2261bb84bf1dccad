package blockchain

import (
	"errors"
	"fmt"
	"math"

	"ledger-core/chaincfg"
	"ledger-core/txscript"
	"ledger-core/wire"
)

// ErrNonPositiveAmount is returned when a funding target carries an amount
// that is zero or negative.
var ErrNonPositiveAmount = errors.New("amount must be positive")

// ErrNoDestination is returned when a funding target has no destination.
var ErrNoDestination = errors.New("funding target has no destination")

// DestinationError describes a rejected funding target.  Field names the
// offending input and Err is one of ErrNonPositiveAmount, ErrNoDestination,
// txscript.ErrInvalidHex or txscript.ErrInvalidHashLength (possibly wrapped).
type DestinationError struct {
	Field string
	Value string
	Err   error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("invalid funding %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}

// FundingTarget is one output of the genesis coinbase: an amount locked to a
// witness program destination.
type FundingTarget struct {
	Amount      int64
	Destination txscript.Destination
}

// TxOut returns the coinbase output paying the target.
func (f FundingTarget) TxOut() *wire.TxOut {
	return wire.NewTxOut(f.Amount, f.Destination.PkScript())
}

func (f FundingTarget) validate() error {
	if f.Amount <= 0 {
		return &DestinationError{Field: "amount", Value: fmt.Sprint(f.Amount), Err: ErrNonPositiveAmount}
	}
	if f.Destination == nil {
		return &DestinationError{Field: "destination", Value: "", Err: ErrNoDestination}
	}
	return nil
}

// Funds is an ordered set of funding targets.  The order is the output order
// of the coinbase and therefore part of the genesis hash.
type Funds []FundingTarget

// Total returns the sum of all amounts.  A sum that does not fit in an int64
// is reported as chaincfg.ErrExceedsMaxMoney.
func (f Funds) Total() (int64, error) {
	var total int64
	for i, target := range f {
		if target.Amount > math.MaxInt64-total {
			return 0, fmt.Errorf("%w: total overflows at output %d", chaincfg.ErrExceedsMaxMoney, i)
		}
		total += target.Amount
	}
	return total, nil
}

// NewP2WPKH returns a target paying amount to the 20-byte public key hash
// encoded in pubKeyHash.
func NewP2WPKH(amount int64, pubKeyHash string) (FundingTarget, error) {
	if amount <= 0 {
		return FundingTarget{}, &DestinationError{Field: "amount", Value: fmt.Sprint(amount), Err: ErrNonPositiveAmount}
	}
	h, err := txscript.NewWitnessV0KeyHashFromHex(pubKeyHash)
	if err != nil {
		return FundingTarget{}, &DestinationError{Field: "pub_key_hash", Value: pubKeyHash, Err: err}
	}
	return FundingTarget{Amount: amount, Destination: h}, nil
}

// NewP2WSH returns a target paying amount to the 32-byte script hash encoded
// in scriptHash.
func NewP2WSH(amount int64, scriptHash string) (FundingTarget, error) {
	if amount <= 0 {
		return FundingTarget{}, &DestinationError{Field: "amount", Value: fmt.Sprint(amount), Err: ErrNonPositiveAmount}
	}
	h, err := txscript.NewWitnessV0ScriptHashFromHex(scriptHash)
	if err != nil {
		return FundingTarget{}, &DestinationError{Field: "script_hash", Value: scriptHash, Err: err}
	}
	return FundingTarget{Amount: amount, Destination: h}, nil
}

// NewFundingToAddress returns a target paying amount to a bech32 witness v0
// address of the network identified by hrp.
func NewFundingToAddress(amount int64, addr, hrp string) (FundingTarget, error) {
	if amount <= 0 {
		return FundingTarget{}, &DestinationError{Field: "amount", Value: fmt.Sprint(amount), Err: ErrNonPositiveAmount}
	}
	dest, err := txscript.DecodeAddress(addr, hrp)
	if err != nil {
		return FundingTarget{}, &DestinationError{Field: "address", Value: addr, Err: err}
	}
	return FundingTarget{Amount: amount, Destination: dest}, nil
}
