package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/hyno-health-api/internal/models"
	"github.com/harentsoaR/hyno-health-api/internal/store"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

const (
	dateLayout = "2006-01-02"

	// insightWindow is how many recent entries the trend checks read.
	insightWindow = 10
)

type HealthOptions struct {
	Location *time.Location
	Log      zerolog.Logger
	Now      func() time.Time
}

type JournalInput struct {
	Date        string
	Symptoms    string
	Vitals      models.Vitals
	Notes       string
	Medications []string
}

type MedicationInput struct {
	Name      string
	Dosage    string
	Frequency string
	Reminder  bool
}

type GoalsInput struct {
	Weight   string
	Exercise string
	Water    string
}

// HealthService manages a user's journal, medications and goals.
type HealthService struct {
	repo store.HealthRepository
	loc  *time.Location
	log  zerolog.Logger
	now  func() time.Time
}

func NewHealthService(repo store.HealthRepository, opts HealthOptions) *HealthService {
	s := &HealthService{repo: repo, loc: opts.Location, log: opts.Log, now: opts.Now}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *HealthService) Journal(ctx context.Context, userID string, f store.JournalFilter) ([]models.JournalEntry, error) {
	for _, d := range []string{f.From, f.To} {
		if d != "" && !validDate(d) {
			return nil, ErrInvalidDate
		}
	}
	f.Query = strings.TrimSpace(f.Query)
	return s.repo.ListJournal(ctx, userID, f)
}

// AddJournalEntry stores a new entry. A blank date means today.
func (s *HealthService) AddJournalEntry(ctx context.Context, userID string, in JournalInput) (*models.JournalEntry, error) {
	now := s.now()
	e, err := s.journalEntry(userID, in, now)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = now.UTC()
	if err := s.repo.InsertJournalEntry(ctx, e); err != nil {
		return nil, err
	}
	s.log.Debug().Str("user_id", userID).Str("entry_id", e.ID.Hex()).Msg("health.journal.added")
	return e, nil
}

func (s *HealthService) UpdateJournalEntry(ctx context.Context, userID, id string, in JournalInput) (*models.JournalEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	e, err := s.journalEntry(userID, in, s.now())
	if err != nil {
		return nil, err
	}
	e.ID = oid
	if err := s.repo.UpdateJournalEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *HealthService) DeleteJournalEntry(ctx context.Context, userID, id string) error {
	return s.repo.DeleteJournalEntry(ctx, userID, id)
}

func (s *HealthService) journalEntry(userID string, in JournalInput, now time.Time) (*models.JournalEntry, error) {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.In(s.loc).Format(dateLayout)
	}
	if !validDate(date) {
		return nil, ErrInvalidDate
	}
	meds := in.Medications
	if meds == nil {
		meds = []string{}
	}
	return &models.JournalEntry{
		UserID:      userID,
		Date:        date,
		Symptoms:    strings.TrimSpace(in.Symptoms),
		Vitals:      in.Vitals,
		Notes:       strings.TrimSpace(in.Notes),
		Medications: meds,
		UpdatedAt:   now.UTC(),
	}, nil
}

func (s *HealthService) Medications(ctx context.Context, userID string) ([]models.Medication, error) {
	return s.repo.ListMedications(ctx, userID)
}

func (s *HealthService) AddMedication(ctx context.Context, userID string, in MedicationInput) (*models.Medication, error) {
	med := medication(userID, in)
	med.CreatedAt = s.now().UTC()
	if err := s.repo.InsertMedication(ctx, med); err != nil {
		return nil, err
	}
	return med, nil
}

func (s *HealthService) UpdateMedication(ctx context.Context, userID, id string, in MedicationInput) (*models.Medication, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	med := medication(userID, in)
	med.ID = oid
	if err := s.repo.UpdateMedication(ctx, med); err != nil {
		return nil, err
	}
	return med, nil
}

func (s *HealthService) DeleteMedication(ctx context.Context, userID, id string) error {
	return s.repo.DeleteMedication(ctx, userID, id)
}

func medication(userID string, in MedicationInput) *models.Medication {
	return &models.Medication{
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: strings.TrimSpace(in.Frequency),
		Reminder:  in.Reminder,
	}
}

func (s *HealthService) Goals(ctx context.Context, userID string) (*models.HealthGoals, error) {
	return s.repo.GetGoals(ctx, userID)
}

func (s *HealthService) SetGoals(ctx context.Context, userID string, in GoalsInput) (*models.HealthGoals, error) {
	g := &models.HealthGoals{
		UserID:    userID,
		Weight:    strings.TrimSpace(in.Weight),
		Exercise:  strings.TrimSpace(in.Exercise),
		Water:     strings.TrimSpace(in.Water),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.repo.SaveGoals(ctx, g); err != nil {
		return nil, fmt.Errorf("save goals: %w", err)
	}
	return g, nil
}

// Insights reads blood pressure and weight trends from the most recent
// journal entries. Unparseable readings are skipped.
func (s *HealthService) Insights(ctx context.Context, userID string) ([]string, error) {
	entries, err := s.repo.ListJournal(ctx, userID, store.JournalFilter{})
	if err != nil {
		return nil, err
	}
	return journalInsights(entries), nil
}

// journalInsights expects entries newest first.
func journalInsights(entries []models.JournalEntry) []string {
	if len(entries) > insightWindow {
		entries = entries[:insightWindow]
	}
	var systolic, weights []float64
	for _, e := range entries {
		if sys, _, _ := strings.Cut(e.Vitals.BloodPressure, "/"); sys != "" {
			if v, err := strconv.ParseFloat(strings.TrimSpace(sys), 64); err == nil {
				systolic = append(systolic, v)
			}
		}
		if w := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(e.Vitals.Weight), "kg")); w != "" {
			if v, err := strconv.ParseFloat(w, 64); err == nil {
				weights = append(weights, v)
			}
		}
	}

	out := make([]string, 0, 2)
	if len(systolic) > 1 {
		var sum float64
		for _, v := range systolic {
			sum += v
		}
		switch avg := sum / float64(len(systolic)); {
		case avg > 140:
			out = append(out, "Your average blood pressure is elevated. Consider consulting a doctor.")
		case avg < 90:
			out = append(out, "Your blood pressure readings are low. Monitor closely.")
		}
	}
	if len(weights) > 1 {
		change := weights[0] - weights[len(weights)-1]
		if math.Abs(change) > 2 {
			dir := "increased"
			if change < 0 {
				dir = "decreased"
			}
			out = append(out, fmt.Sprintf("Weight %s by %.1fkg recently.", dir, math.Abs(change)))
		}
	}
	return out
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
