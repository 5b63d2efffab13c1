package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stayhaven/middleware"
	"stayhaven/models"
	userSvc "stayhaven/services/user"
	"stayhaven/utils"
)

// UserHandler exposes user queries and wallet management.
type UserHandler struct {
	svc    userSvc.UserService
	logger *zap.Logger
}

func NewUserHandler(svc userSvc.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// GetUser returns one user profile. Income is only included when the
// viewer requests their own profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)

	found, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		h.renderError(c, err, "failed to query user")
		return
	}

	c.JSON(http.StatusOK, found)
}

// UserListings returns one page of the user's hosted listings.
func (h *UserHandler) UserListings(c *gin.Context) {
	page, limit := pagingParams(c)

	listings, err := h.svc.Listings(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		h.renderError(c, err, "failed to query user listings")
		return
	}

	c.JSON(http.StatusOK, listings)
}

// UserBookings returns one page of the user's bookings (self only).
func (h *UserHandler) UserBookings(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)
	page, limit := pagingParams(c)

	bookings, err := h.svc.Bookings(c.Request.Context(), c.Param("id"), viewer, page, limit)
	if err != nil {
		h.renderError(c, err, "failed to query user bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ConnectWallet attaches a payout account to the viewer.
func (h *UserHandler) ConnectWallet(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)

	var input models.ConnectWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.svc.ConnectWallet(c.Request.Context(), viewer, input.Code)
	if err != nil {
		h.renderError(c, err, "failed to connect wallet")
		return
	}

	c.JSON(http.StatusOK, models.NewViewer(updated))
}

// DisconnectWallet detaches the viewer's payout account.
func (h *UserHandler) DisconnectWallet(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)

	updated, err := h.svc.DisconnectWallet(c.Request.Context(), viewer)
	if err != nil {
		h.renderError(c, err, "failed to disconnect wallet")
		return
	}

	c.JSON(http.StatusOK, models.NewViewer(updated))
}

func (h *UserHandler) renderError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, userSvc.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, message, "user not found")
	case errors.Is(err, userSvc.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, message, "viewer may not access this resource")
	default:
		h.logger.Error(message, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, message, "unexpected error")
	}
}
