package blockchain

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-core/chaincfg"
	"ledger-core/txscript"
)

const (
	testKeyHash1   = "3d17776e24696a7e4986a8af75591e487d1cd5c4"
	testKeyHash2   = "23e656ed7a997b8d19070f43e63388973b7b8c52"
	testScriptHash = "01b86229f60152d775b4b73434dfea1513bf54c68bd6df71c8d665e069535e74"
)

func TestNewP2WPKH(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		hash      string
		wantErr   error
		wantField string
	}{
		{"valid", 1, testKeyHash1, nil, ""},
		{"one byte hash", 1, "ab", txscript.ErrInvalidHashLength, "pub_key_hash"},
		{"script hash length", 1, testScriptHash, txscript.ErrInvalidHashLength, "pub_key_hash"},
		{"odd hex", 1, testKeyHash1[:39], txscript.ErrInvalidHex, "pub_key_hash"},
		{"not hex", 1, strings.Repeat("g", 40), txscript.ErrInvalidHex, "pub_key_hash"},
		{"zero amount", 0, testKeyHash1, ErrNonPositiveAmount, "amount"},
		{"negative amount", -5, testKeyHash1, ErrNonPositiveAmount, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := NewP2WPKH(tt.amount, tt.hash)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var destErr *DestinationError
				require.True(t, errors.As(err, &destErr))
				assert.Equal(t, tt.wantField, destErr.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.amount, target.Amount)
			assert.Equal(t, "0014"+tt.hash, hexString(target.TxOut().PkScript))
		})
	}
}

func TestNewP2WSH(t *testing.T) {
	target, err := NewP2WSH(7, testScriptHash)
	require.NoError(t, err)
	assert.Equal(t, int64(7), target.Amount)
	assert.Equal(t, "0020"+testScriptHash, hexString(target.TxOut().PkScript))

	_, err = NewP2WSH(7, testKeyHash1)
	require.ErrorIs(t, err, txscript.ErrInvalidHashLength)

	_, err = NewP2WSH(0, testScriptHash)
	require.ErrorIs(t, err, ErrNonPositiveAmount)
}

func TestNewFundingToAddress(t *testing.T) {
	h, err := txscript.NewWitnessV0KeyHashFromHex(testKeyHash1)
	require.NoError(t, err)
	addr, err := h.Address("ldgrt")
	require.NoError(t, err)

	target, err := NewFundingToAddress(5, addr, "ldgrt")
	require.NoError(t, err)
	assert.Equal(t, h, target.Destination)

	_, err = NewFundingToAddress(5, addr, "ldg")
	require.ErrorIs(t, err, txscript.ErrWrongNetwork)

	_, err = NewFundingToAddress(0, addr, "ldgrt")
	require.ErrorIs(t, err, ErrNonPositiveAmount)
}

func TestFundsTotal(t *testing.T) {
	a, err := NewP2WPKH(100, testKeyHash1)
	require.NoError(t, err)
	b, err := NewP2WSH(250, testScriptHash)
	require.NoError(t, err)

	total, err := Funds{a, b}.Total()
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)

	total, err = Funds{}.Total()
	require.NoError(t, err)
	assert.Zero(t, total)

	big, err := NewP2WPKH(math.MaxInt64, testKeyHash2)
	require.NoError(t, err)
	_, err = Funds{a, big}.Total()
	require.ErrorIs(t, err, chaincfg.ErrExceedsMaxMoney)
}

func TestDestinationErrorMessage(t *testing.T) {
	_, err := NewP2WPKH(1, "ab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `pub_key_hash "ab"`)
}
