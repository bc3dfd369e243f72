package booking

import (
	"time"

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

type Step int

const (
	StepSelectSubject Step = iota + 1
	StepSelectSlot
	StepEnterDetails
	StepReviewSummary
	StepPayment
)

const (
	FirstStep = StepSelectSubject
	LastStep  = StepPayment
)

func (s Step) String() string {
	switch s {
	case StepSelectSubject:
		return "SelectSubject"
	case StepSelectSlot:
		return "SelectSlot"
	case StepEnterDetails:
		return "EnterDetails"
	case StepReviewSummary:
		return "ReviewSummary"
	case StepPayment:
		return "Payment"
	}
	return "Unknown"
}

// SubjectRef names what is being booked: a doctor or a hospital.
type SubjectRef struct {
	Kind string `json:"type"`
	ID   string `json:"id"`
}

func (r SubjectRef) IsZero() bool {
	return r.ID == ""
}

// Wizard is one in-progress booking. It is persisted in the session store
// between requests.
type Wizard struct {
	ID            string                `json:"id"`
	Subject       SubjectRef            `json:"subject"`
	Step          Step                  `json:"step"`
	ReferenceDay  time.Time             `json:"referenceDay"`
	Slot          *Slot                 `json:"slot,omitempty"`
	Details       models.PatientDetails `json:"details"`
	Payment       PaymentInfo           `json:"payment"`
	Confirmed     bool                  `json:"confirmed"`
	AppointmentID string                `json:"appointmentId,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// Advance moves one step forward, never past LastStep.
func (w *Wizard) Advance() {
	if w.Step < LastStep {
		w.Step++
	}
}

// Back moves one step back, never below FirstStep.
func (w *Wizard) Back() {
	if w.Step > FirstStep {
		w.Step--
	}
}

// StepLabels are the step indicator captions for the wizard's subject kind.
func StepLabels(kind string) []string {
	first := "Doctor"
	if kind == models.SubjectHospital {
		first = "Hospital"
	}
	return []string{first, "Slot", "Details", "Summary", "Payment"}
}
