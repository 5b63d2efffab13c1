package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stayhaven/middleware"
	"stayhaven/models"
	listingSvc "stayhaven/services/listing"
	"stayhaven/utils"
)

// ListingHandler exposes listing queries and the hosting endpoint.
type ListingHandler struct {
	svc    listingSvc.ListingService
	logger *zap.Logger
}

func NewListingHandler(svc listingSvc.ListingService, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{svc: svc, logger: logger}
}

// GetListing returns one listing; viewerIsHost is true when the viewer
// owns it.
func (h *ListingHandler) GetListing(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)

	found, authorized, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		h.renderError(c, err, "failed to query listing")
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing": found, "viewerIsHost": authorized})
}

// HostListing publishes a new listing owned by the viewer.
func (h *ListingHandler) HostListing(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)

	var input models.HostListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.svc.Host(c.Request.Context(), viewer, input)
	if err != nil {
		h.renderError(c, err, "failed to host listing")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListingBookings returns one page of a listing's bookings (host only).
func (h *ListingHandler) ListingBookings(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)
	page, limit := pagingParams(c)

	bookings, err := h.svc.Bookings(c.Request.Context(), c.Param("id"), viewer, page, limit)
	if err != nil {
		h.renderError(c, err, "failed to query listing bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *ListingHandler) renderError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, listingSvc.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, message, "listing not found")
	case errors.Is(err, listingSvc.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, message, "only the host may access this resource")
	case errors.Is(err, listingSvc.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, message, err.Error())
	default:
		h.logger.Error(message, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, message, "unexpected error")
	}
}

// pagingParams reads page/limit query parameters with sane defaults.
func pagingParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
