package bootstrap

import "context"

// Audit actions. Server lifecycle and the destructive or data-egress
// admin operations are the only audited events.
const (
	ActionServerShutdown = "SERVER_SHUTDOWN"
	ActionStoreCleared   = "STORE_CLEARED"
	ActionStoreExported  = "STORE_EXPORTED"
)

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
