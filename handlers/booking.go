package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stayhaven/middleware"
	"stayhaven/models"
	"stayhaven/services/reservation"
	"stayhaven/utils"
)

// BookingHandler exposes the reservation engine over HTTP.
type BookingHandler struct {
	svc    reservation.ReservationService
	logger *zap.Logger
}

func NewBookingHandler(svc reservation.ReservationService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// CreateBooking reserves a listing for the viewer.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.svc.Reserve(c.Request.Context(), middleware.CredentialsFrom(c), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) renderError(c *gin.Context, err error) {
	code := reservation.CodeOf(err)

	message := err.Error()
	var re *reservation.Error
	if errors.As(err, &re) {
		message = re.Message
	}

	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("reservation failed", zap.String("code", string(code)), zap.Error(err))
		message = "reservation could not be completed"
	}

	c.JSON(status, gin.H{"error": message, "code": code})
}

func statusForCode(code reservation.Code) int {
	switch code {
	case reservation.CodeUnauthenticated:
		return http.StatusUnauthorized
	case reservation.CodeNotFound:
		return http.StatusNotFound
	case reservation.CodeSelfBooking:
		return http.StatusForbidden
	case reservation.CodeInvalidRange:
		return http.StatusBadRequest
	case reservation.CodeDateConflict:
		return http.StatusConflict
	case reservation.CodeHostUnavailable:
		return http.StatusUnprocessableEntity
	case reservation.CodePaymentFailed:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
