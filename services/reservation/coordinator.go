package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stayhaven/models"
	"stayhaven/services/auth"
	"stayhaven/services/payment"
	"stayhaven/services/tasks"
)

// ListingStore is the slice of the listing repository the coordinator needs.
type ListingStore interface {
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	ApplyReservation(ctx context.Context, id string, index models.BookingsIndex, bookingID string) error
}

// UserStore is the slice of the user repository the coordinator needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	AppendBooking(ctx context.Context, id, bookingID string) error
	AddIncome(ctx context.Context, id string, amount int64) error
}

// BookingStore is the slice of the booking repository the coordinator needs.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
}

// TxRunner executes fn so that all repository writes made with the
// callback's context are applied atomically or not at all.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// ReservationService turns a booking request into a conflict-free
// calendar reservation.
type ReservationService interface {
	Reserve(ctx context.Context, creds auth.Credentials, input models.CreateBookingInput) (*models.Booking, error)
}

// DefaultReservationService implements ReservationService.
type DefaultReservationService struct {
	Auth          auth.Authorizer
	Listings      ListingStore
	Users         UserStore
	Bookings      BookingStore
	Payments      payment.Gateway
	Locker        ListingLocker
	RunTx         TxRunner
	Confirmations tasks.Enqueuer // optional, best-effort notification
	Logger        *zap.Logger
}

// Reserve validates the request, merges the listing calendar under the
// listing's lock, charges the tenant's payment source and commits the
// booking, tenant, host and listing updates as one transaction.
//
// The payment call is made at most once per attempt and is never
// retried here: a failed charge is terminal for the attempt.
func (s *DefaultReservationService) Reserve(ctx context.Context, creds auth.Credentials, input models.CreateBookingInput) (*models.Booking, error) {
	viewer, err := s.Auth.Authorize(ctx, creds)
	if err != nil || viewer == nil {
		return nil, newError(CodeUnauthenticated, "viewer could not be resolved")
	}

	checkIn, checkOut, err := parseRange(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	// The lock must span the index read and the commit; otherwise two
	// attempts can both merge against the same snapshot and both
	// succeed, double-booking the listing.
	release, err := s.Locker.Lock(ctx, input.ListingID)
	if err != nil {
		return nil, wrapError(CodeCommitFailed, "could not serialize access to listing", err)
	}
	defer release()

	listing, err := s.Listings.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, wrapError(CodeCommitFailed, "failed to load listing", err)
	}
	if listing == nil {
		return nil, newError(CodeNotFound, fmt.Sprintf("listing %s not found", input.ListingID))
	}
	if listing.Host == viewer.ID {
		return nil, newError(CodeSelfBooking, "viewer can't book own listing")
	}
	if checkOut.Before(checkIn) {
		return nil, newError(CodeInvalidRange, "check out date can't be before check in date")
	}

	merged, err := MergeBookingsIndex(listing.BookingsIndex, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	totalCharge := TotalCharge(listing.Price, checkIn, checkOut)

	host, err := s.Users.GetByID(ctx, listing.Host)
	if err != nil {
		return nil, wrapError(CodeCommitFailed, "failed to load host", err)
	}
	if !host.HasWallet() {
		return nil, newError(CodeHostUnavailable, "the host either can't be found or isn't connected with a payout account")
	}

	if err := s.Payments.Charge(ctx, totalCharge, input.Source, host.WalletID); err != nil {
		return nil, wrapError(CodePaymentFailed, "charge did not succeed", err)
	}

	booking := &models.Booking{
		ID:       uuid.New().String(),
		Listing:  listing.ID,
		Tenant:   viewer.ID,
		CheckIn:  checkIn.Format(DayLayout),
		CheckOut: checkOut.Format(DayLayout),
	}

	// The charge has already settled; the commit must run to completion
	// even if the request is cancelled mid-way.
	commitCtx := context.WithoutCancel(ctx)
	err = s.RunTx(commitCtx, func(txCtx context.Context) error {
		if err := s.Bookings.Create(txCtx, booking); err != nil {
			return err
		}
		if err := s.Users.AppendBooking(txCtx, viewer.ID, booking.ID); err != nil {
			return err
		}
		if err := s.Users.AddIncome(txCtx, host.ID, totalCharge); err != nil {
			return err
		}
		return s.Listings.ApplyReservation(txCtx, listing.ID, merged, booking.ID)
	})
	if err != nil {
		s.Logger.Error("reservation commit failed",
			zap.String("listing", listing.ID),
			zap.String("booking", booking.ID),
			zap.Error(err),
		)
		return nil, wrapError(CodeCommitFailed, "reservation could not be committed", err)
	}

	s.Logger.Info("reservation committed",
		zap.String("booking", booking.ID),
		zap.String("listing", listing.ID),
		zap.String("tenant", viewer.ID),
		zap.Int64("total_charge", totalCharge),
	)

	if s.Confirmations != nil {
		payload := tasks.ConfirmationPayload{
			BookingID:   booking.ID,
			ListingID:   listing.ID,
			TenantID:    viewer.ID,
			HostID:      host.ID,
			TotalCharge: totalCharge,
		}
		if err := s.Confirmations.EnqueueConfirmation(commitCtx, payload); err != nil {
			s.Logger.Warn("failed to enqueue booking confirmation", zap.String("booking", booking.ID), zap.Error(err))
		}
	}

	return booking, nil
}

func parseRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(DayLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, newError(CodeInvalidRange, fmt.Sprintf("invalid check in date %q", checkIn))
	}
	out, err := time.Parse(DayLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, newError(CodeInvalidRange, fmt.Sprintf("invalid check out date %q", checkOut))
	}
	return in, out, nil
}
