package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdigest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

func TestHighlightService_Add(t *testing.T) {
	svc := NewHighlightService(memory.NewHighlightStore())
	fixed := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	h, err := svc.Add(context.Background(), "6731", "LLC", "  Wyoming is the cheapest option.  ")
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "Wyoming is the cheapest option.", h.Text)
	assert.Equal(t, fixed, h.CreatedAt)

	list, err := svc.List(context.Background(), "6731")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, h.ID, list[0].ID)
}

func TestHighlightService_AddValidation(t *testing.T) {
	svc := NewHighlightService(memory.NewHighlightStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "", "G", "long enough text")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Add(ctx, "g", "G", "too short")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Add(ctx, "g", "G", strings.Repeat("x", domain.MaxHighlightLength+1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Add(ctx, "g", "G", strings.Repeat("x", domain.MinHighlightLength))
	assert.NoError(t, err)

	_, err = svc.Add(ctx, "g", "G", strings.Repeat("é", domain.MaxHighlightLength))
	assert.NoError(t, err)
}

func TestHighlightService_Remove(t *testing.T) {
	svc := NewHighlightService(memory.NewHighlightStore())
	ctx := context.Background()

	h, err := svc.Add(ctx, "g", "G", "a highlight worth keeping")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, h.ID))
	assert.ErrorIs(t, svc.Remove(ctx, h.ID), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, ""), domain.ErrInvalidInput)
}
