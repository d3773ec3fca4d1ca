package consumer

import (
	"context"
	"encoding/json"

	"github.com/HirziKhalis/hrms-system/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConsumeLeaveStatus invalidates the cached quota summary whenever a leave
// request is approved, so the next quota read recomputes from the store.
func ConsumeLeaveStatus(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	log.Info("leave status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave status consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Error(err))
			continue
		}

		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave status event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.Status == "approved" {
			key := events.QuotaCacheKey(event.EmployeeID, event.Year)
			if err := rdb.Del(ctx, key).Err(); err != nil {
				log.Error("invalidate quota cache failed",
					zap.String("employee_id", event.EmployeeID),
					zap.Error(err),
				)
				continue
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave status message failed", zap.Error(err))
			continue
		}

		log.Info("leave status event handled",
			zap.String("request_id", event.RequestID),
			zap.String("status", event.Status),
		)
	}
}
