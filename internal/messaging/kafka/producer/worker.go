package producer

import (
	"context"
	"time"

	"github.com/HirziKhalis/hrms-system/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const outboxBatchSize = 50

// ProcessOutboxEvents polls the outbox and publishes due events until the
// context is cancelled. Failed publishes are rescheduled with backoff in
// SQL, so one bad event cannot stall the rest of the batch.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			sent, failed, err := drainOutbox(ctx, repo, writer)
			if err != nil {
				log.Error("outbox drain failed", zap.Error(err))
				continue
			}
			if sent > 0 || failed > 0 {
				log.Info("outbox batch processed",
					zap.Int("sent", sent),
					zap.Int("failed", failed),
				)
			}
		}
	}
}

func drainOutbox(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
) (sent, failed int, err error) {
	events, err := repo.ListPending(ctx, outboxBatchSize)
	if err != nil {
		return 0, 0, err
	}

	for _, event := range events {
		if pubErr := publishEvent(ctx, writer, event); pubErr != nil {
			failed++
			_ = repo.MarkFailed(ctx, event.ID, pubErr.Error())
			continue
		}
		if markErr := repo.MarkSent(ctx, event.ID); markErr != nil {
			// The event went out; the next pass resends it. Consumers
			// must tolerate the duplicate.
			failed++
			continue
		}
		sent++
	}

	return sent, failed, nil
}
