package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/hyno-health-api/internal/middleware"
	"github.com/harentsoaR/hyno-health-api/internal/models"
)

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	requireAuth := middleware.AuthMiddleware(h.Tokens)
	optionalAuth := middleware.OptionalAuth(h.Tokens)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	r.POST("/send-sms", requireAuth, h.SendSMS)
	r.POST("/send-email", optionalAuth, h.SendEmail)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.RegisterUser)
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}

	api.GET("/doctors", h.ListDoctors)
	api.POST("/doctors", requireAuth, adminOnly, h.CreateDoctor)
	api.DELETE("/doctors/:id", requireAuth, adminOnly, h.DeleteDoctor)
	api.GET("/doctors/:id", h.GetDoctor)
	api.GET("/doctors/:id/slots", h.DoctorSlots)
	api.GET("/doctors/:id/related", h.RelatedDoctors)
	api.GET("/hospitals", h.ListHospitals)
	api.POST("/hospitals", requireAuth, adminOnly, h.CreateHospital)
	api.DELETE("/hospitals/:id", requireAuth, adminOnly, h.DeleteHospital)
	api.GET("/hospitals/:id", h.GetHospital)
	api.GET("/hospitals/:id/slots", h.HospitalSlots)
	api.POST("/hospitals/:id/save", requireAuth, h.ToggleSavedHospital)

	user := api.Group("/user", requireAuth)
	{
		user.GET("/me", h.GetCurrentUser)
		user.PUT("/me", h.UpdateCurrentUser)
		user.GET("/saved-hospitals", h.SavedHospitals)

		user.GET("/journal", h.ListJournal)
		user.POST("/journal", h.CreateJournalEntry)
		user.GET("/journal/export", h.ExportJournal)
		user.GET("/journal/insights", h.JournalInsights)
		user.PUT("/journal/:entryId", h.UpdateJournalEntry)
		user.DELETE("/journal/:entryId", h.DeleteJournalEntry)

		user.GET("/medications", h.ListMedications)
		user.POST("/medications", h.CreateMedication)
		user.PUT("/medications/:medId", h.UpdateMedication)
		user.DELETE("/medications/:medId", h.DeleteMedication)

		user.GET("/goals", h.GetGoals)
		user.PUT("/goals", h.UpdateGoals)
	}

	bookings := api.Group("/bookings", optionalAuth)
	{
		bookings.POST("", h.StartBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id/subject", h.SelectBookingSubject)
		bookings.PUT("/:id/slot", h.SelectBookingSlot)
		bookings.PUT("/:id/details", h.SetBookingDetails)
		bookings.PUT("/:id/payment", h.SetBookingPayment)
		bookings.POST("/:id/next", h.NextBookingStep)
		bookings.POST("/:id/back", h.PrevBookingStep)
	}

	appointments := api.Group("/appointments", requireAuth)
	{
		appointments.GET("", h.GetAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PATCH("/:id/cancel", h.CancelAppointment)
		appointments.DELETE("/cancelled", h.ClearCancelled)
	}
}
