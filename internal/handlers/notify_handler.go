package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/hyno-health-api/internal/middleware"
	"github.com/harentsoaR/hyno-health-api/internal/services"
)

func (h *Handler) SendSMS(c *gin.Context) {
	var req struct {
		To      string `json:"to" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to and message are required"})
		return
	}
	if err := h.Messenger.SendSMS(c.Request.Context(), req.To, req.Message); err != nil {
		h.relayFailed(c, "sms", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SMS sent"})
}

// SendEmail sends a one-off mail. Anonymous callers always get the
// newsletter welcome; subject and text are honoured for signed-in users only.
func (h *Handler) SendEmail(c *gin.Context) {
	var req struct {
		To      string `json:"to" binding:"required,email"`
		Subject string `json:"subject"`
		Text    string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid recipient is required"})
		return
	}
	if middleware.UserID(c) == "" {
		req.Subject, req.Text = "", ""
	}
	if err := h.Messenger.SendMail(c.Request.Context(), req.To, req.Subject, req.Text); err != nil {
		h.relayFailed(c, "email", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent"})
}

func (h *Handler) relayFailed(c *gin.Context, channel string, err error) {
	if errors.Is(err, services.ErrChannelDisabled) {
		h.respondError(c, err)
		return
	}
	h.Log.Warn().Err(err).Str("channel", channel).Msg("notify.direct.failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send " + channel})
}
