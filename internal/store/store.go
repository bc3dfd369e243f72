// Package store persists users, appointments, health records and the
// editable catalog. Two drivers are provided: MongoDB and an in-process store
// mirrored to a JSON snapshot file.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateID    = errors.New("id already exists")
)

// AppointmentFilter narrows a listing. Empty fields match everything.
type AppointmentFilter struct {
	UserID string
	Status string
	Type   string
}

func (f AppointmentFilter) match(a *models.Appointment) bool {
	return (f.UserID == "" || a.UserID == f.UserID) &&
		(f.Status == "" || a.Status == f.Status) &&
		(f.Type == "" || a.Type == f.Type)
}

type AppointmentRepository interface {
	Insert(ctx context.Context, appt *models.Appointment) error
	// List returns matching appointments, latest appointment date first.
	List(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error)
	Get(ctx context.Context, id string) (*models.Appointment, error)
	// Cancel flips a confirmed appointment to cancelled.
	Cancel(ctx context.Context, id string, at time.Time) error
	// DeleteCancelled removes the user's cancelled appointments.
	DeleteCancelled(ctx context.Context, userID string) (int64, error)
	// SlotTaken reports whether a confirmed appointment holds the slot.
	SlotTaken(ctx context.Context, kind, subjectID, date, hhmm string) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, fullName, phone string) (*models.User, error)
	SetPassword(ctx context.Context, id, hash string) error
	// ToggleSavedHospital adds or removes the hospital and returns the new list.
	ToggleSavedHospital(ctx context.Context, id, hospitalID string) ([]string, error)
}

// JournalFilter narrows a journal listing. From and To are inclusive
// YYYY-MM-DD bounds; Query matches symptoms or notes, ignoring case.
type JournalFilter struct {
	From  string
	To    string
	Query string
}

func (f JournalFilter) match(e *models.JournalEntry) bool {
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(e.Symptoms), q) || strings.Contains(strings.ToLower(e.Notes), q)
}

// HealthRepository stores a user's journal, medication list and goals. Every
// lookup is scoped by user id; another user's record reads as ErrNotFound.
type HealthRepository interface {
	InsertJournalEntry(ctx context.Context, e *models.JournalEntry) error
	// ListJournal returns matching entries, latest date first.
	ListJournal(ctx context.Context, userID string, f JournalFilter) ([]models.JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, e *models.JournalEntry) error
	DeleteJournalEntry(ctx context.Context, userID, id string) error

	InsertMedication(ctx context.Context, med *models.Medication) error
	ListMedications(ctx context.Context, userID string) ([]models.Medication, error)
	UpdateMedication(ctx context.Context, med *models.Medication) error
	DeleteMedication(ctx context.Context, userID, id string) error

	// GetGoals returns empty goals for a user who never set any.
	GetGoals(ctx context.Context, userID string) (*models.HealthGoals, error)
	SaveGoals(ctx context.Context, g *models.HealthGoals) error
}

func toggle(list []string, v string) []string {
	out := make([]string, 0, len(list)+1)
	found := false
	for _, s := range list {
		if s == v {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, v)
	}
	return out
}

var (
	_ AppointmentRepository = (*Memory)(nil)
	_ UserRepository        = (*Memory)(nil)
	_ HealthRepository      = (*Memory)(nil)
	_ AppointmentRepository = (*MongoAppointments)(nil)
	_ UserRepository        = (*MongoUsers)(nil)
	_ HealthRepository      = (*MongoHealth)(nil)
)
