package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "stayhaven/database/repository/booking"
	listingRepo "stayhaven/database/repository/listing"
	userRepo "stayhaven/database/repository/user"
	"stayhaven/models"
	"stayhaven/services/storage"
)

var (
	ErrNotFound     = errors.New("listing not found")
	ErrForbidden    = errors.New("viewer is not the listing host")
	ErrInvalidInput = errors.New("invalid listing input")
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 5000
)

// ListingService exposes listing queries and the hosting mutation.
type ListingService interface {
	// GetByID returns the listing and whether the viewer is its host.
	GetByID(ctx context.Context, id string, viewer *models.User) (*models.Listing, bool, error)
	// Host publishes a new listing owned by the viewer.
	Host(ctx context.Context, viewer *models.User, input models.HostListingInput) (*models.Listing, error)
	// Bookings returns one page of the listing's bookings; host only.
	Bookings(ctx context.Context, id string, viewer *models.User, page, limit int) (*models.BookingsPage, error)
}

// DefaultListingService implements ListingService.
type DefaultListingService struct {
	ListingRepo listingRepo.ListingRepository
	UserRepo    userRepo.UserRepository
	BookingRepo bookingRepo.BookingRepository
	Geocoder    Geocoder
	Images      storage.ImageStore
	Logger      *zap.Logger
}

func (s *DefaultListingService) GetByID(ctx context.Context, id string, viewer *models.User) (*models.Listing, bool, error) {
	found, err := s.ListingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if found == nil {
		return nil, false, ErrNotFound
	}
	authorized := viewer != nil && viewer.ID == found.Host
	return found, authorized, nil
}

func (s *DefaultListingService) Host(ctx context.Context, viewer *models.User, input models.HostListingInput) (*models.Listing, error) {
	if err := validateHostListingInput(input); err != nil {
		return nil, err
	}

	geo, err := s.Geocoder.Geocode(ctx, input.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode listing address: %w", err)
	}
	if geo.Country == "" || geo.State == "" || geo.City == "" {
		return nil, fmt.Errorf("%w: address could not be resolved", ErrInvalidInput)
	}

	imageURL, err := s.Images.Upload(ctx, input.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to store listing image: %w", err)
	}

	newListing := &models.Listing{
		ID:            uuid.New().String(),
		Title:         input.Title,
		Description:   input.Description,
		Image:         imageURL,
		Host:          viewer.ID,
		Type:          input.Type,
		Address:       fmt.Sprintf("%s, %s, %s", geo.City, geo.State, geo.Country),
		Country:       geo.Country,
		State:         geo.State,
		City:          geo.City,
		Price:         input.Price,
		NumOfGuests:   input.NumOfGuests,
		Bookings:      []string{},
		BookingsIndex: models.BookingsIndex{},
	}

	if err := s.ListingRepo.Create(ctx, newListing); err != nil {
		return nil, err
	}
	if err := s.UserRepo.AppendListing(ctx, viewer.ID, newListing.ID); err != nil {
		return nil, err
	}

	s.Logger.Info("listing hosted",
		zap.String("listing", newListing.ID),
		zap.String("host", viewer.ID),
		zap.String("city", geo.City),
	)
	return newListing, nil
}

func (s *DefaultListingService) Bookings(ctx context.Context, id string, viewer *models.User, page, limit int) (*models.BookingsPage, error) {
	found, err := s.ListingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	if viewer == nil || viewer.ID != found.Host {
		return nil, ErrForbidden
	}

	bookings, total, err := s.BookingRepo.FindByListing(ctx, id, page, limit)
	if err != nil {
		return nil, err
	}
	return &models.BookingsPage{Total: total, Result: bookings}, nil
}

func validateHostListingInput(input models.HostListingInput) error {
	if len(input.Title) > maxTitleLength {
		return fmt.Errorf("%w: title must be under %d characters", ErrInvalidInput, maxTitleLength)
	}
	if len(input.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description must be under %d characters", ErrInvalidInput, maxDescriptionLength)
	}
	if input.Type != models.ListingTypeApartment && input.Type != models.ListingTypeHouse {
		return fmt.Errorf("%w: listing type must be either apartment or house", ErrInvalidInput)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidInput)
	}
	return nil
}
