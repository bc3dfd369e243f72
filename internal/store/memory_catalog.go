package store

import (
	"context"
	"slices"

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

// writeCatalog runs fn under the write lock and rolls the catalog back when
// the snapshot cannot be written.
func (m *Memory) writeCatalog(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doctors, hospitals := slices.Clone(m.doctors), slices.Clone(m.hospitals)
	if err := fn(); err != nil {
		return err
	}
	if err := m.persist(); err != nil {
		m.doctors, m.hospitals = doctors, hospitals
		return err
	}
	return nil
}

func (m *Memory) ListDoctors(context.Context) ([]models.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.doctors), nil
}

func (m *Memory) InsertDoctor(_ context.Context, d *models.Doctor) error {
	return m.writeCatalog(func() error {
		if slices.ContainsFunc(m.doctors, func(x models.Doctor) bool { return x.ID == d.ID }) {
			return ErrDuplicateID
		}
		m.doctors = append(m.doctors, *d)
		return nil
	})
}

func (m *Memory) DeleteDoctor(_ context.Context, id string) error {
	return m.writeCatalog(func() error {
		i := slices.IndexFunc(m.doctors, func(x models.Doctor) bool { return x.ID == id })
		if i < 0 {
			return ErrNotFound
		}
		m.doctors = slices.Delete(m.doctors, i, i+1)
		return nil
	})
}

func (m *Memory) SeedDoctors(_ context.Context, doctors []models.Doctor) error {
	return m.writeCatalog(func() error {
		if len(m.doctors) == 0 {
			m.doctors = slices.Clone(doctors)
		}
		return nil
	})
}

func (m *Memory) ListHospitals(context.Context) ([]models.Hospital, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.hospitals), nil
}

func (m *Memory) InsertHospital(_ context.Context, h *models.Hospital) error {
	return m.writeCatalog(func() error {
		if slices.ContainsFunc(m.hospitals, func(x models.Hospital) bool { return x.ID == h.ID }) {
			return ErrDuplicateID
		}
		m.hospitals = append(m.hospitals, *h)
		return nil
	})
}

func (m *Memory) DeleteHospital(_ context.Context, id string) error {
	return m.writeCatalog(func() error {
		i := slices.IndexFunc(m.hospitals, func(x models.Hospital) bool { return x.ID == id })
		if i < 0 {
			return ErrNotFound
		}
		m.hospitals = slices.Delete(m.hospitals, i, i+1)
		return nil
	})
}

func (m *Memory) SeedHospitals(_ context.Context, hospitals []models.Hospital) error {
	return m.writeCatalog(func() error {
		if len(m.hospitals) == 0 {
			m.hospitals = slices.Clone(hospitals)
		}
		return nil
	})
}
