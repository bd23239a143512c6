package workflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := newError("place_order", KindInsufficientStock, "product %d", 1)
	wrapped := fmt.Errorf("handler: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInsufficientStock))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, KindInsufficientStock, KindOf(wrapped))
	assert.Equal(t, "place_order: INSUFFICIENT_STOCK: product 1", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Kind: KindStoreUnavailable, Op: "submit_review", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindStoreUnavailable, true},
		{KindNotFound, false},
		{KindInsufficientStock, false},
		{KindForbidden, false},
		{KindNotEligible, false},
		{KindDuplicateReview, false},
		{KindInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(&Error{Kind: tt.kind}))
		})
	}
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Vendor ")
	assert.True(t, ok)
	assert.Equal(t, RoleVendor, r)
	_, ok = ParseRole("root")
	assert.False(t, ok)
}
