package bootstrap

import (
	"context"
	"time"

	"github.com/HirziKhalis/hrms-system/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries through the global zap logger.
// Good enough for a single node; swap for a persistent sink when audit
// retention becomes a requirement.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
	}
	if md := contextutil.ExtractMetadata(ctx); md.RequestID != "" || md.UserID != "" {
		fields = append(fields,
			zap.String("request_id", md.RequestID),
			zap.String("user_id", md.UserID),
		)
	}
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}
	zap.L().Named("audit").Info("audit event", fields...)
}
