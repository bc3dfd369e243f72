package booking

import (
	"context"
	"fmt"

	"github.com/harentsoaR/hyno-health-api/internal/catalog"
	"github.com/harentsoaR/hyno-health-api/internal/models"
)

// Subject is the thing an appointment is booked with. The wizard steps are
// shared; subjects differ in how the slot step is validated and how the
// appointment record is filled in.
type Subject interface {
	Kind() string
	ID() string
	Name() string
	Fee() float64
	ValidateSlotStep(w *Wizard) error
	Apply(appt *models.Appointment, w *Wizard)
}

type DoctorSubject struct {
	Doctor models.Doctor
}

func (s DoctorSubject) Kind() string { return models.SubjectDoctor }
func (s DoctorSubject) ID() string { return s.Doctor.ID }
func (s DoctorSubject) Name() string { return s.Doctor.Name }
func (s DoctorSubject) Fee() float64 { return s.Doctor.Fee }

// ValidateSlotStep only needs the doctor context; the slot itself is checked
// when the booking is submitted.
func (s DoctorSubject) ValidateSlotStep(*Wizard) error {
	if s.Doctor.ID == "" {
		return &ValidationError{Step: StepSelectSlot, Field: "doctor", Reason: "is required"}
	}
	return nil
}

func (s DoctorSubject) Apply(appt *models.Appointment, _ *Wizard) {
	appt.Type = models.SubjectDoctor
	appt.DoctorID = s.Doctor.ID
	appt.HospitalID = s.Doctor.HospitalID
	appt.SubjectName = s.Doctor.Name
	appt.Patient.Department = ""
}

type HospitalSubject struct {
	Hospital  models.Hospital
	FeeAmount float64
}

func (s HospitalSubject) Kind() string { return models.SubjectHospital }
func (s HospitalSubject) ID() string { return s.Hospital.ID }
func (s HospitalSubject) Name() string { return s.Hospital.Name }
func (s HospitalSubject) Fee() float64 { return s.FeeAmount }

func (s HospitalSubject) ValidateSlotStep(w *Wizard) error {
	if w.Slot == nil {
		return &ValidationError{Step: StepSelectSlot, Field: "slot", Reason: "is required"}
	}
	return nil
}

func (s HospitalSubject) Apply(appt *models.Appointment, _ *Wizard) {
	appt.Type = models.SubjectHospital
	appt.HospitalID = s.Hospital.ID
	appt.SubjectName = s.Hospital.Name
}

type SubjectResolver interface {
	Resolve(ctx context.Context, ref SubjectRef) (Subject, error)
}

// CatalogResolver resolves subjects against the reference catalog.
type CatalogResolver struct {
	Catalog     *catalog.Catalog
	HospitalFee float64
}

func (r CatalogResolver) Resolve(ctx context.Context, ref SubjectRef) (Subject, error) {
	switch ref.Kind {
	case models.SubjectDoctor:
		doc, err := r.Catalog.Doctor(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return DoctorSubject{Doctor: *doc}, nil
	case models.SubjectHospital:
		hosp, err := r.Catalog.Hospital(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return HospitalSubject{Hospital: *hosp, FeeAmount: r.HospitalFee}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, ref.Kind)
}
