package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeBookingConfirmation = "booking:confirmation"

// ConfirmationPayload describes a committed reservation for the
// notification worker.
type ConfirmationPayload struct {
	BookingID   string `json:"bookingId"`
	ListingID   string `json:"listingId"`
	TenantID    string `json:"tenantId"`
	HostID      string `json:"hostId"`
	TotalCharge int64  `json:"totalCharge"`
}

// NewConfirmationTask builds the asynq task for a committed booking.
func NewConfirmationTask(payload ConfirmationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingConfirmation, b), nil
}

// Enqueuer queues booking confirmations for asynchronous delivery.
type Enqueuer interface {
	EnqueueConfirmation(ctx context.Context, payload ConfirmationPayload) error
}

// AsynqEnqueuer implements Enqueuer on an asynq client.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

func (e *AsynqEnqueuer) EnqueueConfirmation(ctx context.Context, payload ConfirmationPayload) error {
	task, err := NewConfirmationTask(payload)
	if err != nil {
		return err
	}
	_, err = e.Client.EnqueueContext(ctx, task, asynq.MaxRetry(5))
	return err
}
