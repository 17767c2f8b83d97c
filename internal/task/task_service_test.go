package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
)

type fakeRepo struct {
	created []Entry
}

func (f *fakeRepo) Create(ctx context.Context, e *Entry) error {
	e.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *e)
	return nil
}

func TestService_Log(t *testing.T) {
	repo := &fakeRepo{}
	clk := clock.NewFixed(time.Date(2026, 2, 17, 18, 0, 0, 0, time.UTC))
	svc := NewService(repo, clk)

	url := "https://example.com/deliverable"
	entry, err := svc.Log(context.Background(), "user-123", "Juan", "2026-02-17", "Built the parser", &url)
	assert.NoError(t, err)
	assert.True(t, entry.HasLink)
	assert.Equal(t, "https://example.com/deliverable", *entry.URL)

	entry, err = svc.Log(context.Background(), "user-123", "Juan", "2026-02-17", "Tested the system", nil)
	assert.NoError(t, err)
	assert.False(t, entry.HasLink)
	assert.Nil(t, entry.URL)

	// Append-only: every call creates a new row.
	assert.Len(t, repo.created, 2)
}

func TestService_Log_EmptyURLHasNoLink(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, clock.NewFixed(time.Now()))

	empty := ""
	entry, err := svc.Log(context.Background(), "user-123", "Juan", "2026-02-17", "No deliverable", &empty)
	assert.NoError(t, err)
	assert.False(t, entry.HasLink)
}
