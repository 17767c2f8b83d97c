package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries through the process logger.
// The timestamp field is stamped explicitly so the entry stays complete
// even under a logger config without timestamps.
type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger *zap.Logger) *StdoutAuditLogger {
	return &StdoutAuditLogger{logger: logger.Named("audit")}
}

func (l *StdoutAuditLogger) Log(_ context.Context, entry AuditLog) {
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
