package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/hyno-health-api/internal/booking"
	"github.com/harentsoaR/hyno-health-api/internal/middleware"
	"github.com/harentsoaR/hyno-health-api/internal/models"
)

const myAppointmentsPath = "/my-appointments"

type subjectRequest struct {
	Type string `json:"subjectType"`
	ID   string `json:"subjectId"`
}

func (r subjectRequest) ref() booking.SubjectRef {
	kind := r.Type
	if kind == "" && r.ID != "" {
		kind = models.SubjectDoctor
	}
	return booking.SubjectRef{Kind: kind, ID: r.ID}
}

// StartBooking opens a wizard. The subject may be left out and picked later.
func (h *Handler) StartBooking(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	w, err := h.Flow.Start(c.Request.Context(), req.ref())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.renderWizard(c, http.StatusCreated, w)
}

func (h *Handler) GetBooking(c *gin.Context) {
	w, err := h.Flow.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.renderWizard(c, http.StatusOK, w)
}

func (h *Handler) SelectBookingSubject(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.afterMutation(c)(h.Flow.SelectSubject(c.Request.Context(), c.Param("id"), req.ref()))
}

func (h *Handler) SelectBookingSlot(c *gin.Context) {
	var req struct {
		DayIndex *int   `json:"dayIndex" binding:"required"`
		Time     string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dayIndex and time are required"})
		return
	}
	h.afterMutation(c)(h.Flow.SelectSlot(c.Request.Context(), c.Param("id"), *req.DayIndex, req.Time))
}

func (h *Handler) SetBookingDetails(c *gin.Context) {
	var details models.PatientDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.afterMutation(c)(h.Flow.SetDetails(c.Request.Context(), c.Param("id"), details))
}

func (h *Handler) SetBookingPayment(c *gin.Context) {
	var payment booking.PaymentInfo
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.afterMutation(c)(h.Flow.SetPayment(c.Request.Context(), c.Param("id"), payment))
}

// NextBookingStep advances the wizard. On the payment step a successful
// submission returns the appointment and where the client should go next.
func (h *Handler) NextBookingStep(c *gin.Context) {
	res, err := h.Flow.Next(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if res.Appointment == nil {
		h.renderWizard(c, http.StatusOK, res.Wizard)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":         "Appointment booked successfully",
		"appointment":     res.Appointment,
		"redirect":        myAppointmentsPath,
		"redirectAfterMs": h.RedirectDelay.Milliseconds(),
	})
}

func (h *Handler) PrevBookingStep(c *gin.Context) {
	h.afterMutation(c)(h.Flow.Back(c.Request.Context(), c.Param("id")))
}

func (h *Handler) afterMutation(c *gin.Context) func(*booking.Wizard, error) {
	return func(w *booking.Wizard, err error) {
		if err != nil {
			h.respondError(c, err)
			return
		}
		h.renderWizard(c, http.StatusOK, w)
	}
}

func (h *Handler) renderWizard(c *gin.Context, status int, w *booking.Wizard) {
	upcoming, _ := strconv.ParseBool(c.Query("upcoming"))
	view, err := h.Flow.View(c.Request.Context(), w, upcoming)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(status, view)
}
