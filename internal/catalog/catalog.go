// Package catalog serves doctor and hospital reference data.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

var (
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrReadOnly         = errors.New("catalog is read-only")
)

// Source provides the live lists, typically backed by the database.
type Source interface {
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
}

// Writer is a Source that also accepts admin edits. The seed methods fill an
// empty collection and leave a populated one alone.
type Writer interface {
	Source
	InsertDoctor(ctx context.Context, d *models.Doctor) error
	DeleteDoctor(ctx context.Context, id string) error
	SeedDoctors(ctx context.Context, doctors []models.Doctor) error
	InsertHospital(ctx context.Context, h *models.Hospital) error
	DeleteHospital(ctx context.Context, id string) error
	SeedHospitals(ctx context.Context, hospitals []models.Hospital) error
}

type Catalog struct {
	source Source
	log    zerolog.Logger

	mu              sync.Mutex
	seededDoctors   bool
	seededHospitals bool
}

// New builds a catalog. A nil source serves the bundled lists only and
// rejects edits with ErrReadOnly.
func New(source Source, log zerolog.Logger) *Catalog {
	return &Catalog{source: source, log: log}
}

// Doctors returns the live doctor list, falling back to the bundled list when
// the source fails or is empty. An empty speciality matches everything.
func (c *Catalog) Doctors(ctx context.Context, speciality string) []models.Doctor {
	doctors := c.loadDoctors(ctx)
	if speciality == "" {
		return doctors
	}
	out := make([]models.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if strings.EqualFold(d.Speciality, speciality) {
			out = append(out, d)
		}
	}
	return out
}

func (c *Catalog) Doctor(ctx context.Context, id string) (*models.Doctor, error) {
	for _, d := range c.loadDoctors(ctx) {
		if d.ID == id {
			doc := d
			return &doc, nil
		}
	}
	return nil, ErrDoctorNotFound
}

// Related lists the other doctors sharing the given doctor's speciality.
func (c *Catalog) Related(ctx context.Context, id string) ([]models.Doctor, error) {
	doc, err := c.Doctor(ctx, id)
	if err != nil {
		return nil, err
	}
	related := make([]models.Doctor, 0)
	for _, d := range c.Doctors(ctx, doc.Speciality) {
		if d.ID != doc.ID {
			related = append(related, d)
		}
	}
	return related, nil
}

// Hospitals follows the same fallback rules as Doctors. An empty department
// matches everything.
func (c *Catalog) Hospitals(ctx context.Context, department string) []models.Hospital {
	hospitals := c.loadHospitals(ctx)
	out := make([]models.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if department == "" || h.HasDepartment(department) {
			out = append(out, h)
		}
	}
	return out
}

func (c *Catalog) Hospital(ctx context.Context, id string) (*models.Hospital, error) {
	for _, h := range c.loadHospitals(ctx) {
		if h.ID == id {
			hosp := h
			return &hosp, nil
		}
	}
	return nil, ErrHospitalNotFound
}

// AddDoctor stores a new doctor, generating an id when none is given. The
// first edit copies the bundled list into the source so it stays listed.
func (c *Catalog) AddDoctor(ctx context.Context, d models.Doctor) (*models.Doctor, error) {
	w, err := c.writer(ctx, true, false)
	if err != nil {
		return nil, err
	}
	if d.ID == "" {
		d.ID = "doc-" + uuid.NewString()
	}
	if d.Languages == nil {
		d.Languages = []string{}
	}
	if err := w.InsertDoctor(ctx, &d); err != nil {
		return nil, fmt.Errorf("add doctor: %w", err)
	}
	c.log.Info().Str("doctor_id", d.ID).Str("speciality", d.Speciality).Msg("catalog.doctor.added")
	return &d, nil
}

func (c *Catalog) RemoveDoctor(ctx context.Context, id string) error {
	w, err := c.writer(ctx, true, false)
	if err != nil {
		return err
	}
	if _, err := c.Doctor(ctx, id); err != nil {
		return err
	}
	if err := w.DeleteDoctor(ctx, id); err != nil {
		return fmt.Errorf("remove doctor %s: %w", id, err)
	}
	c.log.Info().Str("doctor_id", id).Msg("catalog.doctor.removed")
	return nil
}

func (c *Catalog) AddHospital(ctx context.Context, h models.Hospital) (*models.Hospital, error) {
	w, err := c.writer(ctx, false, true)
	if err != nil {
		return nil, err
	}
	if h.ID == "" {
		h.ID = "h-" + uuid.NewString()
	}
	if h.Departments == nil {
		h.Departments = []string{}
	}
	if h.Services == nil {
		h.Services = []string{}
	}
	if err := w.InsertHospital(ctx, &h); err != nil {
		return nil, fmt.Errorf("add hospital: %w", err)
	}
	c.log.Info().Str("hospital_id", h.ID).Msg("catalog.hospital.added")
	return &h, nil
}

func (c *Catalog) RemoveHospital(ctx context.Context, id string) error {
	w, err := c.writer(ctx, false, true)
	if err != nil {
		return err
	}
	if _, err := c.Hospital(ctx, id); err != nil {
		return err
	}
	if err := w.DeleteHospital(ctx, id); err != nil {
		return fmt.Errorf("remove hospital %s: %w", id, err)
	}
	c.log.Info().Str("hospital_id", id).Msg("catalog.hospital.removed")
	return nil
}

// writer returns the editable source after seeding the requested lists.
// A failed seed is retried on the next edit.
func (c *Catalog) writer(ctx context.Context, doctors, hospitals bool) (Writer, error) {
	w, ok := c.source.(Writer)
	if !ok {
		return nil, ErrReadOnly
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if doctors && !c.seededDoctors {
		if err := w.SeedDoctors(ctx, StaticDoctors()); err != nil {
			return nil, fmt.Errorf("seed doctors: %w", err)
		}
		c.seededDoctors = true
	}
	if hospitals && !c.seededHospitals {
		if err := w.SeedHospitals(ctx, StaticHospitals()); err != nil {
			return nil, fmt.Errorf("seed hospitals: %w", err)
		}
		c.seededHospitals = true
	}
	return w, nil
}

func (c *Catalog) loadDoctors(ctx context.Context) []models.Doctor {
	if c.source == nil {
		return StaticDoctors()
	}
	doctors, err := c.source.ListDoctors(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog.doctors.fallback")
		return StaticDoctors()
	}
	if len(doctors) == 0 {
		return StaticDoctors()
	}
	return doctors
}

func (c *Catalog) loadHospitals(ctx context.Context) []models.Hospital {
	if c.source == nil {
		return StaticHospitals()
	}
	hospitals, err := c.source.ListHospitals(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog.hospitals.fallback")
		return StaticHospitals()
	}
	if len(hospitals) == 0 {
		return StaticHospitals()
	}
	return hospitals
}
