package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNoSummary", ErrNoSummary},
		{"ErrArtifactMissing", ErrArtifactMissing},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
		{"ErrPasswordRequired", ErrPasswordRequired},
		{"ErrInvalidPassword", ErrInvalidPassword},
		{"ErrInvalidSession", ErrInvalidSession},
		{"ErrSessionExpired", ErrSessionExpired},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrNoSummary, ErrArtifactMissing, ErrStoreUnavailable,
		ErrPasswordRequired, ErrInvalidPassword, ErrInvalidSession, ErrSessionExpired, ErrRateLimited,
	}
	for i := range all {
		for j := range all {
			if i != j {
				assert.False(t, errors.Is(all[i], all[j]), "%v is %v", all[i], all[j])
			}
		}
	}
}

// TestErrors_Wrapping tests that wrapped errors can be unwrapped
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("group abc: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrNoSummary))
	assert.Equal(t, "group abc: not found", wrapped.Error())
}
