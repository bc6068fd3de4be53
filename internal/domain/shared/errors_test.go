package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NewNotFoundError("checklist item", "yelp-listing")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("lookup: %w", err), ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, `checklist item "yelp-listing" not found`, err.Error())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("status must be one of pending, in_progress, completed, not_applicable")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, CodeValidation, err.Code)
}

func TestStoreError_HidesDriverDetail(t *testing.T) {
	cause := errors.New(`pq: relation "item_statuses" does not exist`)
	err := NewStoreError("upsert status", cause)

	assert.Equal(t, "store operation failed: upsert status", err.Error())
	assert.ErrorIs(t, err, cause)

	var storeErr *StoreError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &storeErr))
	assert.Equal(t, "upsert status", storeErr.Op)
}
