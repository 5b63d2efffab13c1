package listingRepo

import (
	"context"

	"stayhaven/models"
)

// ListingRepository defines methods for listing data access. Methods
// take the caller's context so writes can join an enclosing
// database.WithTransaction session.
type ListingRepository interface {
	// GetByID retrieves a listing by its unique ID. Returns (nil, nil)
	// when no listing matches.
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	// Create inserts a new listing record.
	Create(ctx context.Context, listing *models.Listing) error
	// ApplyReservation replaces the listing's bookings index with the
	// merged one and appends the booking ID to its bookings list.
	ApplyReservation(ctx context.Context, id string, index models.BookingsIndex, bookingID string) error
	// FindByHost returns one page of a host's listings plus the total count.
	FindByHost(ctx context.Context, hostID string, page, limit int) ([]models.Listing, int64, error)
}
