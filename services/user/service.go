package user

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	bookingRepo "stayhaven/database/repository/booking"
	listingRepo "stayhaven/database/repository/listing"
	userRepo "stayhaven/database/repository/user"
	"stayhaven/models"
	"stayhaven/services/payment"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrForbidden = errors.New("viewer may not access this resource")
)

// UserService exposes user queries and wallet management.
type UserService interface {
	// GetByID returns the user. Income is zeroed unless the viewer is
	// requesting their own profile.
	GetByID(ctx context.Context, id string, viewer *models.User) (*models.User, error)
	// Listings returns one page of the user's hosted listings.
	Listings(ctx context.Context, id string, page, limit int) (*models.ListingsPage, error)
	// Bookings returns one page of the user's bookings as tenant; self only.
	Bookings(ctx context.Context, id string, viewer *models.User, page, limit int) (*models.BookingsPage, error)
	// ConnectWallet exchanges the payout-provider code and attaches the
	// resulting account to the viewer.
	ConnectWallet(ctx context.Context, viewer *models.User, code string) (*models.User, error)
	// DisconnectWallet detaches the viewer's payout account.
	DisconnectWallet(ctx context.Context, viewer *models.User) (*models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	UserRepo    userRepo.UserRepository
	ListingRepo listingRepo.ListingRepository
	BookingRepo bookingRepo.BookingRepository
	Wallet      payment.WalletConnector
	Logger      *zap.Logger
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string, viewer *models.User) (*models.User, error) {
	found, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	if viewer == nil || viewer.ID != found.ID {
		found.Income = 0
	}
	return found, nil
}

func (s *DefaultUserService) Listings(ctx context.Context, id string, page, limit int) (*models.ListingsPage, error) {
	listings, total, err := s.ListingRepo.FindByHost(ctx, id, page, limit)
	if err != nil {
		return nil, err
	}
	return &models.ListingsPage{Total: total, Result: listings}, nil
}

func (s *DefaultUserService) Bookings(ctx context.Context, id string, viewer *models.User, page, limit int) (*models.BookingsPage, error) {
	if viewer == nil || viewer.ID != id {
		return nil, ErrForbidden
	}

	bookings, total, err := s.BookingRepo.FindByTenant(ctx, id, page, limit)
	if err != nil {
		return nil, err
	}
	return &models.BookingsPage{Total: total, Result: bookings}, nil
}

func (s *DefaultUserService) ConnectWallet(ctx context.Context, viewer *models.User, code string) (*models.User, error) {
	accountID, err := s.Wallet.Connect(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to connect payout account: %w", err)
	}

	if err := s.UserRepo.SetWallet(ctx, viewer.ID, accountID); err != nil {
		return nil, err
	}

	s.Logger.Info("wallet connected", zap.String("user", viewer.ID))
	return s.refresh(ctx, viewer.ID)
}

func (s *DefaultUserService) DisconnectWallet(ctx context.Context, viewer *models.User) (*models.User, error) {
	if err := s.UserRepo.SetWallet(ctx, viewer.ID, ""); err != nil {
		return nil, err
	}

	s.Logger.Info("wallet disconnected", zap.String("user", viewer.ID))
	return s.refresh(ctx, viewer.ID)
}

func (s *DefaultUserService) refresh(ctx context.Context, id string) (*models.User, error) {
	found, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}
