package bookingRepo

import (
	"context"

	"stayhaven/models"
)

// BookingRepository defines methods for booking data access. Bookings
// are immutable once created, so there are no update or delete methods.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// FindByListing returns one page of a listing's bookings plus the total count.
	FindByListing(ctx context.Context, listingID string, page, limit int) ([]models.Booking, int64, error)
	// FindByTenant returns one page of a tenant's bookings plus the total count.
	FindByTenant(ctx context.Context, tenantID string, page, limit int) ([]models.Booking, int64, error)
}
