package inventory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktrack/backend/internal/domain/shared"
)

func TestTransactionType_IsValid(t *testing.T) {
	tests := []struct {
		txType  TransactionType
		isValid bool
	}{
		{TransactionTypePurchase, true},
		{TransactionTypeSale, true},
		{TransactionTypeAdjustment, true},
		{TransactionTypeReturn, true},
		{TransactionType("TRANSFER"), false},
		{TransactionType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.txType.IsValid())
		})
	}
}

func TestNewInventoryTransaction(t *testing.T) {
	productID := uuid.New()
	refID := uuid.New()

	tx, err := NewInventoryTransaction(
		productID,
		TransactionTypePurchase,
		decimal.NewFromInt(36),
		"box",
		decimal.NewFromInt(136),
		&refID,
		"received PO",
	)
	require.NoError(t, err)

	assert.Equal(t, productID, tx.ProductID)
	assert.Equal(t, TransactionTypePurchase, tx.TransactionType)
	assert.True(t, decimal.NewFromInt(36).Equal(tx.QuantityChange))
	assert.Equal(t, "box", tx.Unit)
	assert.True(t, decimal.NewFromInt(136).Equal(tx.BalanceAfter))
	assert.Equal(t, refID, *tx.ReferenceID)
	assert.True(t, tx.IsIncrease())
	assert.False(t, tx.TransactionDate.IsZero())
}

func TestNewInventoryTransaction_Validation(t *testing.T) {
	productID := uuid.New()

	_, err := NewInventoryTransaction(uuid.Nil, TransactionTypeSale, decimal.NewFromInt(-1), "pcs", decimal.Zero, nil, "")
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = NewInventoryTransaction(productID, TransactionType("BOGUS"), decimal.NewFromInt(1), "pcs", decimal.NewFromInt(1), nil, "")
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = NewInventoryTransaction(productID, TransactionTypeAdjustment, decimal.Zero, "pcs", decimal.NewFromInt(1), nil, "")
	assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))

	_, err = NewInventoryTransaction(productID, TransactionTypeSale, decimal.NewFromInt(-1), "", decimal.Zero, nil, "")
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = NewInventoryTransaction(productID, TransactionTypeSale, decimal.NewFromInt(-1), "pcs", decimal.NewFromInt(-1), nil, "")
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
}

func TestNewInventoryTransaction_DirectionRules(t *testing.T) {
	productID := uuid.New()

	// purchases must increase stock
	_, err := NewInventoryTransaction(productID, TransactionTypePurchase, decimal.NewFromInt(-5), "pcs", decimal.NewFromInt(5), nil, "")
	assert.True(t, errors.Is(err, shared.ErrValidation))

	// sales must decrease stock
	_, err = NewInventoryTransaction(productID, TransactionTypeSale, decimal.NewFromInt(5), "pcs", decimal.NewFromInt(5), nil, "")
	assert.True(t, errors.Is(err, shared.ErrValidation))

	// adjustments and returns go both ways
	_, err = NewInventoryTransaction(productID, TransactionTypeAdjustment, decimal.NewFromInt(-5), "pcs", decimal.NewFromInt(5), nil, "")
	assert.NoError(t, err)
	_, err = NewInventoryTransaction(productID, TransactionTypeReturn, decimal.NewFromInt(5), "pcs", decimal.NewFromInt(15), nil, "")
	assert.NoError(t, err)
	_, err = NewInventoryTransaction(productID, TransactionTypeReturn, decimal.NewFromInt(-5), "pcs", decimal.NewFromInt(5), nil, "")
	assert.NoError(t, err)
}
