package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/hyno-health-api/internal/booking"
	"github.com/harentsoaR/hyno-health-api/internal/catalog"
	"github.com/harentsoaR/hyno-health-api/internal/services"
	"github.com/harentsoaR/hyno-health-api/internal/store"
	"github.com/harentsoaR/hyno-health-api/internal/utils"
)

// respondError maps domain errors to HTTP responses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "step": verr.Step, "field": verr.Field})
	case errors.Is(err, booking.ErrLoginRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to book an appointment", "redirect": "/login"})
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking session not found or expired"})
	case errors.Is(err, booking.ErrAlreadyConfirmed):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking already confirmed"})
	case errors.Is(err, booking.ErrWizardBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is being updated, please retry"})
	case errors.Is(err, booking.ErrUnknownSubject):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject type must be doctor or hospital"})
	case errors.Is(err, catalog.ErrDoctorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
	case errors.Is(err, catalog.ErrHospitalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Hospital not found"})
	case errors.Is(err, catalog.ErrReadOnly):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Catalog is read-only"})
	case errors.Is(err, store.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"error": "An entry with this id already exists"})
	case errors.Is(err, services.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "This slot is already booked"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
	case errors.Is(err, services.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": "Appointment already cancelled"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrInvalidResetToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
	case errors.Is(err, utils.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at most 72 bytes"})
	case errors.Is(err, services.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be YYYY-MM-DD"})
	case errors.Is(err, services.ErrChannelDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service not configured"})
	case errors.Is(err, store.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("http.internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
