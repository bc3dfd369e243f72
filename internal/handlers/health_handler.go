package handlers

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/hyno-health-api/internal/middleware"
	"github.com/harentsoaR/hyno-health-api/internal/models"
	"github.com/harentsoaR/hyno-health-api/internal/services"
	"github.com/harentsoaR/hyno-health-api/internal/store"
)

type journalRequest struct {
	Date        string        `json:"date"`
	Symptoms    string        `json:"symptoms" binding:"max=2000"`
	Vitals      models.Vitals `json:"vitals"`
	Notes       string        `json:"notes" binding:"max=5000"`
	Medications []string      `json:"medications" binding:"max=50"`
}

func (r journalRequest) input() services.JournalInput {
	return services.JournalInput{Date: r.Date, Symptoms: r.Symptoms, Vitals: r.Vitals, Notes: r.Notes, Medications: r.Medications}
}

type medicationRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Dosage    string `json:"dosage" binding:"max=200"`
	Frequency string `json:"frequency" binding:"max=200"`
	Reminder  bool   `json:"reminder"`
}

func (r medicationRequest) input() services.MedicationInput {
	return services.MedicationInput{Name: r.Name, Dosage: r.Dosage, Frequency: r.Frequency, Reminder: r.Reminder}
}

type goalsRequest struct {
	Weight   string `json:"weight" binding:"max=100"`
	Exercise string `json:"exercise" binding:"max=100"`
	Water    string `json:"water" binding:"max=100"`
}

func journalFilter(c *gin.Context) store.JournalFilter {
	return store.JournalFilter{From: c.Query("from"), To: c.Query("to"), Query: c.Query("q")}
}

func (h *Handler) ListJournal(c *gin.Context) {
	entries, err := h.Health.Journal(c.Request.Context(), middleware.UserID(c), journalFilter(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) CreateJournalEntry(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.Health.AddJournalEntry(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) UpdateJournalEntry(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.Health.UpdateJournalEntry(c.Request.Context(), middleware.UserID(c), c.Param("entryId"), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) DeleteJournalEntry(c *gin.Context) {
	if err := h.Health.DeleteJournalEntry(c.Request.Context(), middleware.UserID(c), c.Param("entryId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// ExportJournal writes the filtered journal as a CSV download.
func (h *Handler) ExportJournal(c *gin.Context) {
	entries, err := h.Health.Journal(c.Request.Context(), middleware.UserID(c), journalFilter(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="health-journal.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Date", "Symptoms", "Blood Pressure", "Heart Rate", "Temperature", "Weight", "Notes"})
	for _, e := range entries {
		_ = w.Write([]string{e.Date, e.Symptoms, e.Vitals.BloodPressure, e.Vitals.HeartRate, e.Vitals.Temperature, e.Vitals.Weight, e.Notes})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.Log.Warn().Err(err).Msg("http.journal_export_failed")
	}
}

func (h *Handler) JournalInsights(c *gin.Context) {
	insights, err := h.Health.Insights(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

func (h *Handler) ListMedications(c *gin.Context) {
	meds, err := h.Health.Medications(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meds)
}

func (h *Handler) CreateMedication(c *gin.Context) {
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	med, err := h.Health.AddMedication(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, med)
}

func (h *Handler) UpdateMedication(c *gin.Context) {
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	med, err := h.Health.UpdateMedication(c.Request.Context(), middleware.UserID(c), c.Param("medId"), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, med)
}

func (h *Handler) DeleteMedication(c *gin.Context) {
	if err := h.Health.DeleteMedication(c.Request.Context(), middleware.UserID(c), c.Param("medId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted"})
}

func (h *Handler) GetGoals(c *gin.Context) {
	goals, err := h.Health.Goals(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *Handler) UpdateGoals(c *gin.Context) {
	var req goalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	goals, err := h.Health.SetGoals(c.Request.Context(), middleware.UserID(c), services.GoalsInput{
		Weight:   req.Weight,
		Exercise: req.Exercise,
		Water:    req.Water,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}
