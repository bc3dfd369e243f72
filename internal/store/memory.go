package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

// Memory keeps every collection in process. When path is set every write is
// mirrored to a JSON snapshot which is loaded back on startup.
type Memory struct {
	mu           sync.RWMutex
	path         string
	appointments []models.Appointment
	users        []models.User
	journal      []models.JournalEntry
	medications  []models.Medication
	goals        []models.HealthGoals
	doctors      []models.Doctor
	hospitals    []models.Hospital
}

type snapshot struct {
	Appointments []models.Appointment  `json:"appointments"`
	Users        []snapshotUser        `json:"users"`
	Journal      []models.JournalEntry `json:"journal,omitempty"`
	Medications  []models.Medication   `json:"medications,omitempty"`
	Goals        []models.HealthGoals  `json:"goals,omitempty"`
	Doctors      []models.Doctor       `json:"doctors,omitempty"`
	Hospitals    []models.Hospital     `json:"hospitals,omitempty"`
}

// snapshotUser carries the hash that models.User hides from JSON.
type snapshotUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func NewMemory(path string) (*Memory, error) {
	m := &Memory{path: path}
	if path == "" {
		return m, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	m.appointments = snap.Appointments
	m.journal = snap.Journal
	m.medications = snap.Medications
	m.goals = snap.Goals
	m.doctors = snap.Doctors
	m.hospitals = snap.Hospitals
	for _, su := range snap.Users {
		u := su.User
		u.Password = su.PasswordHash
		m.users = append(m.users, u)
	}
	return m, nil
}

// persist must be called with mu held.
func (m *Memory) persist() error {
	if m.path == "" {
		return nil
	}
	snap := snapshot{
		Appointments: m.appointments,
		Users:        make([]snapshotUser, 0, len(m.users)),
		Journal:      m.journal,
		Medications:  m.medications,
		Goals:        m.goals,
		Doctors:      m.doctors,
		Hospitals:    m.hospitals,
	}
	if snap.Appointments == nil {
		snap.Appointments = []models.Appointment{}
	}
	for _, u := range m.users {
		snap.Users = append(snap.Users, snapshotUser{User: u, PasswordHash: u.Password})
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(m.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.path); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (m *Memory) Insert(_ context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if appt.ID.IsZero() {
		appt.ID = primitive.NewObjectID()
	}
	m.appointments = append(m.appointments, *appt)
	if err := m.persist(); err != nil {
		m.appointments = m.appointments[:len(m.appointments)-1]
		return err
	}
	return nil
}

func (m *Memory) List(_ context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Appointment, 0)
	for i := range m.appointments {
		if f.match(&m.appointments[i]) {
			out = append(out, m.appointments[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppointmentDate.After(out[j].AppointmentDate)
	})
	return out, nil
}

func (m *Memory) Get(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		a := m.appointments[i]
		return &a, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Cancel(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 || m.appointments[i].Status != models.StatusConfirmed {
		return ErrNotFound
	}
	prev := m.appointments[i]
	m.appointments[i].Status = models.StatusCancelled
	m.appointments[i].CancelledAt = &at
	if err := m.persist(); err != nil {
		m.appointments[i] = prev
		return err
	}
	return nil
}

func (m *Memory) DeleteCancelled(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.appointments
	kept := make([]models.Appointment, 0, len(prev))
	for _, a := range prev {
		if a.UserID == userID && a.Status == models.StatusCancelled {
			continue
		}
		kept = append(kept, a)
	}
	removed := int64(len(prev) - len(kept))
	if removed == 0 {
		return 0, nil
	}
	m.appointments = kept
	if err := m.persist(); err != nil {
		m.appointments = prev
		return 0, err
	}
	return removed, nil
}

func (m *Memory) SlotTaken(_ context.Context, kind, subjectID, date, hhmm string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.appointments {
		a := &m.appointments[i]
		if a.Status == models.StatusConfirmed && a.Type == kind && a.SubjectID() == subjectID && a.Date == date && a.Time == hhmm {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) indexOf(id string) int {
	for i := range m.appointments {
		if m.appointments[i].ID.Hex() == id {
			return i
		}
	}
	return -1
}

func (m *Memory) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userByEmail(u.Email) >= 0 {
		return ErrDuplicateEmail
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users = append(m.users, *u)
	if err := m.persist(); err != nil {
		m.users = m.users[:len(m.users)-1]
		return err
	}
	return nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.userByEmail(email); i >= 0 {
		u := m.users[i]
		return &u, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.userByID(id); i >= 0 {
		u := m.users[i]
		return &u, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateProfile(_ context.Context, id, fullName, phone string) (*models.User, error) {
	var out models.User
	err := m.updateUser(id, func(u *models.User) {
		if fullName != "" {
			u.FullName = fullName
		}
		u.Phone = phone
		out = *u
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *Memory) SetPassword(_ context.Context, id, hash string) error {
	return m.updateUser(id, func(u *models.User) { u.Password = hash })
}

func (m *Memory) ToggleSavedHospital(_ context.Context, id, hospitalID string) ([]string, error) {
	var saved []string
	err := m.updateUser(id, func(u *models.User) {
		u.SavedHospitals = toggle(u.SavedHospitals, hospitalID)
		saved = u.SavedHospitals
	})
	return saved, err
}

func (m *Memory) updateUser(id string, fn func(u *models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.userByID(id)
	if i < 0 {
		return ErrNotFound
	}
	prev := m.users[i]
	fn(&m.users[i])
	if err := m.persist(); err != nil {
		m.users[i] = prev
		return err
	}
	return nil
}

func (m *Memory) userByEmail(email string) int {
	for i := range m.users {
		if strings.EqualFold(m.users[i].Email, email) {
			return i
		}
	}
	return -1
}

func (m *Memory) userByID(id string) int {
	for i := range m.users {
		if m.users[i].ID.Hex() == id {
			return i
		}
	}
	return -1
}
