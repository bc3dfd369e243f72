package store

import (
	"context"
	"slices"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

// writeHealth runs fn under the write lock and rolls the health collections
// back when the snapshot cannot be written.
func (m *Memory) writeHealth(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	journal, meds, goals := slices.Clone(m.journal), slices.Clone(m.medications), slices.Clone(m.goals)
	if err := fn(); err != nil {
		return err
	}
	if err := m.persist(); err != nil {
		m.journal, m.medications, m.goals = journal, meds, goals
		return err
	}
	return nil
}

func (m *Memory) InsertJournalEntry(_ context.Context, e *models.JournalEntry) error {
	return m.writeHealth(func() error {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		m.journal = append(m.journal, *e)
		return nil
	})
}

func (m *Memory) ListJournal(_ context.Context, userID string, f JournalFilter) ([]models.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.JournalEntry, 0)
	for i := range m.journal {
		if m.journal[i].UserID == userID && f.match(&m.journal[i]) {
			out = append(out, m.journal[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateJournalEntry replaces the stored entry but keeps its creation time.
func (m *Memory) UpdateJournalEntry(_ context.Context, e *models.JournalEntry) error {
	return m.writeHealth(func() error {
		for i := range m.journal {
			if m.journal[i].ID == e.ID && m.journal[i].UserID == e.UserID {
				e.CreatedAt = m.journal[i].CreatedAt
				m.journal[i] = *e
				return nil
			}
		}
		return ErrNotFound
	})
}

func (m *Memory) DeleteJournalEntry(_ context.Context, userID, id string) error {
	return m.writeHealth(func() error {
		i := slices.IndexFunc(m.journal, func(e models.JournalEntry) bool {
			return e.ID.Hex() == id && e.UserID == userID
		})
		if i < 0 {
			return ErrNotFound
		}
		m.journal = slices.Delete(m.journal, i, i+1)
		return nil
	})
}

func (m *Memory) InsertMedication(_ context.Context, med *models.Medication) error {
	return m.writeHealth(func() error {
		if med.ID.IsZero() {
			med.ID = primitive.NewObjectID()
		}
		m.medications = append(m.medications, *med)
		return nil
	})
}

func (m *Memory) ListMedications(_ context.Context, userID string) ([]models.Medication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Medication, 0)
	for _, med := range m.medications {
		if med.UserID == userID {
			out = append(out, med)
		}
	}
	return out, nil
}

func (m *Memory) UpdateMedication(_ context.Context, med *models.Medication) error {
	return m.writeHealth(func() error {
		for i := range m.medications {
			if m.medications[i].ID == med.ID && m.medications[i].UserID == med.UserID {
				med.CreatedAt = m.medications[i].CreatedAt
				m.medications[i] = *med
				return nil
			}
		}
		return ErrNotFound
	})
}

func (m *Memory) DeleteMedication(_ context.Context, userID, id string) error {
	return m.writeHealth(func() error {
		i := slices.IndexFunc(m.medications, func(med models.Medication) bool {
			return med.ID.Hex() == id && med.UserID == userID
		})
		if i < 0 {
			return ErrNotFound
		}
		m.medications = slices.Delete(m.medications, i, i+1)
		return nil
	})
}

func (m *Memory) GetGoals(_ context.Context, userID string) (*models.HealthGoals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.goals {
		if g.UserID == userID {
			out := g
			return &out, nil
		}
	}
	return &models.HealthGoals{UserID: userID}, nil
}

func (m *Memory) SaveGoals(_ context.Context, g *models.HealthGoals) error {
	return m.writeHealth(func() error {
		for i := range m.goals {
			if m.goals[i].UserID == g.UserID {
				m.goals[i] = *g
				return nil
			}
		}
		m.goals = append(m.goals, *g)
		return nil
	})
}
