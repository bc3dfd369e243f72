package handlers

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/hyno-health-api/internal/booking"
	"github.com/harentsoaR/hyno-health-api/internal/middleware"
	"github.com/harentsoaR/hyno-health-api/internal/models"
)

func (h *Handler) ListDoctors(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Doctors(c.Request.Context(), c.Query("speciality")))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doc, err := h.Catalog.Doctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) RelatedDoctors(c *gin.Context) {
	related, err := h.Catalog.Related(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, related)
}

// DoctorSlots lists the bookable week for a doctor.
func (h *Handler) DoctorSlots(c *gin.Context) {
	if _, err := h.Catalog.Doctor(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorId": c.Param("id"), "days": h.week(c)})
}

func (h *Handler) ListHospitals(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Hospitals(c.Request.Context(), c.Query("department")))
}

func (h *Handler) GetHospital(c *gin.Context) {
	hosp, err := h.Catalog.Hospital(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hosp)
}

func (h *Handler) HospitalSlots(c *gin.Context) {
	if _, err := h.Catalog.Hospital(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hospitalId": c.Param("id"), "days": h.week(c)})
}

// ToggleSavedHospital adds the hospital to the caller's saved list, or
// removes it when already saved.
func (h *Handler) ToggleSavedHospital(c *gin.Context) {
	hospitalID := c.Param("id")
	if _, err := h.Catalog.Hospital(c.Request.Context(), hospitalID); err != nil {
		h.respondError(c, err)
		return
	}
	saved, err := h.Users.ToggleSavedHospital(c.Request.Context(), middleware.UserID(c), hospitalID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savedHospitals": saved, "saved": slices.Contains(saved, hospitalID)})
}

func (h *Handler) SavedHospitals(c *gin.Context) {
	user, err := h.Users.FindByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	byID := make(map[string]models.Hospital)
	for _, hosp := range h.Catalog.Hospitals(c.Request.Context(), "") {
		byID[hosp.ID] = hosp
	}
	hospitals := make([]models.Hospital, 0, len(user.SavedHospitals))
	for _, id := range user.SavedHospitals {
		if hosp, ok := byID[id]; ok {
			hospitals = append(hospitals, hosp)
		}
	}
	c.JSON(http.StatusOK, hospitals)
}

func (h *Handler) week(c *gin.Context) []booking.DaySlots {
	now := h.now().In(h.Location)
	days := booking.GenerateSlots(now)
	if upcoming, _ := strconv.ParseBool(c.Query("upcoming")); upcoming {
		for i := range days {
			days[i] = days[i].Upcoming(now)
		}
	}
	return days
}

type doctorRequest struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name" binding:"required"`
	Speciality string   `json:"speciality" binding:"required"`
	Degree     string   `json:"degree"`
	Fee        float64  `json:"fees" binding:"gte=0"`
	About      string   `json:"about"`
	Image      string   `json:"image"`
	Experience string   `json:"experience"`
	Rating     float64  `json:"rating" binding:"gte=0,lte=5"`
	Languages  []string `json:"languages"`
	HospitalID string   `json:"hospitalId"`
}

// CreateDoctor adds a doctor to the live catalog. Admin only.
func (h *Handler) CreateDoctor(c *gin.Context) {
	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if req.HospitalID != "" {
		if _, err := h.Catalog.Hospital(ctx, req.HospitalID); err != nil {
			h.respondError(c, err)
			return
		}
	}
	doc, err := h.Catalog.AddDoctor(ctx, models.Doctor{
		ID:         req.ID,
		Name:       req.Name,
		Speciality: req.Speciality,
		Degree:     req.Degree,
		Fee:        req.Fee,
		About:      req.About,
		Image:      req.Image,
		Experience: req.Experience,
		Rating:     req.Rating,
		Languages:  req.Languages,
		HospitalID: req.HospitalID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	if err := h.Catalog.RemoveDoctor(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor removed"})
}

type hospitalRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Website     string   `json:"website"`
	Departments []string `json:"departments"`
	Rating      float64  `json:"rating" binding:"gte=0,lte=5"`
	Services    []string `json:"services"`
	About       string   `json:"about"`
	Image       string   `json:"image"`
}

// CreateHospital adds a hospital to the live catalog. Admin only.
func (h *Handler) CreateHospital(c *gin.Context) {
	var req hospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hosp, err := h.Catalog.AddHospital(c.Request.Context(), models.Hospital{
		ID:          req.ID,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Departments: trimAll(req.Departments),
		Rating:      req.Rating,
		Services:    trimAll(req.Services),
		About:       req.About,
		Image:       req.Image,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hosp)
}

func (h *Handler) DeleteHospital(c *gin.Context) {
	if err := h.Catalog.RemoveHospital(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hospital removed"})
}

// trimAll drops blank items, as sent by a comma-separated form field.
func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
