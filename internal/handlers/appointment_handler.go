package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/hyno-health-api/internal/middleware"
	"github.com/harentsoaR/hyno-health-api/internal/store"
)

// GetAppointments lists the caller's appointments, optionally filtered by
// ?status= and ?type=. Admins may pass ?userId= to look at one user.
func (h *Handler) GetAppointments(c *gin.Context) {
	filter := store.AppointmentFilter{
		Status: strings.ToLower(c.Query("status")),
		Type:   strings.ToLower(c.Query("type")),
		UserID: c.Query("userId"),
	}

	appointments, err := h.Appointments.List(c.Request.Context(), middleware.UserID(c), middleware.Role(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	appt, err := h.Appointments.Get(c.Request.Context(), middleware.UserID(c), middleware.Role(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	appt, err := h.Appointments.Cancel(c.Request.Context(), middleware.UserID(c), middleware.Role(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled successfully", "appointment": appt})
}

// ClearCancelled deletes the caller's cancelled appointments.
func (h *Handler) ClearCancelled(c *gin.Context) {
	n, err := h.Appointments.ClearCancelled(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cancelled appointments cleared", "removed": n})
}
