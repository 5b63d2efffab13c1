package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"stayhaven/config"
	"stayhaven/services/tasks"
	"stayhaven/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Notifier delivers booking confirmations to the parties involved.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, payload tasks.ConfirmationPayload) error
}

// LogNotifier is the default Notifier; it records confirmations in the
// application log until a delivery channel is wired up.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) NotifyBookingConfirmed(_ context.Context, payload tasks.ConfirmationPayload) error {
	n.Logger.Info("booking confirmed",
		zap.String("booking", payload.BookingID),
		zap.String("listing", payload.ListingID),
		zap.String("tenant", payload.TenantID),
		zap.String("host", payload.HostID),
		zap.Int64("total_charge", payload.TotalCharge),
	)
	return nil
}

// InitConfirmationWorker runs the async confirmation worker in background.
func InitConfirmationWorker(notifier Notifier) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingConfirmation, handleConfirmationTask(notifier))

	go func() {
		logger.Info("starting confirmation worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("confirmation worker stopped", zap.Error(err))
		}
	}()
}

func handleConfirmationTask(notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.ConfirmationPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to decode confirmation payload: %w", err)
		}
		return notifier.NotifyBookingConfirmed(ctx, payload)
	}
}
