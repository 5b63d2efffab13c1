package auth

import (
	"context"

	"stayhaven/models"
	"stayhaven/utils"

	"go.uber.org/zap"
)

// Credentials carries the raw request credentials used to resolve the
// current viewer.
type Credentials struct {
	Token string // bearer JWT, empty when the request is anonymous
}

// Authorizer resolves the current viewer from request credentials.
// Resolution never fails into the caller: invalid or missing credentials
// yield (nil, nil).
type Authorizer interface {
	Authorize(ctx context.Context, creds Credentials) (*models.User, error)
}

// UserFinder is the slice of the user repository Authorize needs.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TokenAuthorizer resolves viewers by validating a JWT and loading the
// subject from the user repository.
type TokenAuthorizer struct {
	Users UserFinder
}

func (a *TokenAuthorizer) Authorize(ctx context.Context, creds Credentials) (*models.User, error) {
	if creds.Token == "" {
		return nil, nil
	}

	id, err := utils.ExtractIDFromToken(creds.Token)
	if err != nil {
		utils.GetLogger().Debug("rejected viewer token", zap.Error(err))
		return nil, nil
	}

	user, err := a.Users.GetByID(ctx, id)
	if err != nil {
		utils.GetLogger().Warn("viewer lookup failed", zap.String("user", id), zap.Error(err))
		return nil, nil
	}
	return user, nil
}
