package userRepo

import (
	"context"

	"stayhaven/models"
)

// UserRepository defines methods for user data access. Methods take the
// caller's context so writes can join an enclosing
// database.WithTransaction session.
type UserRepository interface {
	// GetByID retrieves a user by their unique ID. Returns (nil, nil)
	// when no user matches.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// AppendBooking appends a booking ID to the user's bookings-as-tenant list.
	AppendBooking(ctx context.Context, id, bookingID string) error
	// AppendListing appends a listing ID to the user's hosted listings.
	AppendListing(ctx context.Context, id, listingID string) error
	// AddIncome increments the user's income by amount (minor currency units).
	AddIncome(ctx context.Context, id string, amount int64) error
	// SetWallet sets the user's connected payout account; an empty
	// walletID disconnects it.
	SetWallet(ctx context.Context, id, walletID string) error
}
