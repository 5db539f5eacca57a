package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError("VALIDATION_ERROR", "Name cannot be empty")
	assert.Equal(t, "Name cannot be empty", err.Error())
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
}

func TestDomainError_Is_MatchesByCode(t *testing.T) {
	custom := NewDomainError("INSUFFICIENT_STOCK", "Only 5 units available")
	assert.True(t, errors.Is(custom, ErrInsufficientStock))
	assert.False(t, errors.Is(custom, ErrNotFound))
}

func TestDomainError_Is_WrappedError(t *testing.T) {
	custom := NewDomainError("CAP_EXCEEDED", "Cannot return 5, only 2 remaining")
	wrapped := fmt.Errorf("confirm return: %w", custom)

	assert.True(t, errors.Is(wrapped, ErrCapExceeded))

	var domainErr *DomainError
	assert.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, "CAP_EXCEEDED", domainErr.Code)
}

func TestDomainError_Is_NonDomainTarget(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, errors.New("NOT_FOUND")))
}

func TestSentinelCodes(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrNotFound, "NOT_FOUND"},
		{ErrProductNotFound, "PRODUCT_NOT_FOUND"},
		{ErrUnitNotFound, "UNIT_NOT_FOUND"},
		{ErrAlreadyExists, "ALREADY_EXISTS"},
		{ErrValidation, "VALIDATION_ERROR"},
		{ErrInvalidState, "INVALID_STATE"},
		{ErrInsufficientStock, "INSUFFICIENT_STOCK"},
		{ErrInvalidQuantity, "INVALID_QUANTITY"},
		{ErrCapExceeded, "CAP_EXCEEDED"},
		{ErrConcurrencyConflict, "CONCURRENCY_CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}
