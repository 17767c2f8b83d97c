package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := NewStdoutAuditLogger(zap.New(core))

	audit.Log(context.Background(), AuditLog{
		Action:  ActionStoreCleared,
		Message: "All attendance and task rows deleted",
		Meta:    map[string]any{"attendance_rows": int64(3)},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "audit event", entry.Message)
	assert.Equal(t, "audit", entry.LoggerName)

	fields := entry.ContextMap()
	assert.Equal(t, ActionStoreCleared, fields["action"])
	assert.Equal(t, "All attendance and task rows deleted", fields["message"])
	assert.NotEmpty(t, fields["timestamp"])
}
