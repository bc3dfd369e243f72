// Package booking implements the appointment booking wizard: slot generation,
// the five-step state machine and its submission.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/hyno-health-api/internal/metrics"
	"github.com/harentsoaR/hyno-health-api/internal/models"
)

// Booker creates the appointment record for a submitted wizard.
type Booker interface {
	Book(ctx context.Context, userID string, draft models.Appointment) (*models.Appointment, error)
}

// Notifier is told about placed bookings. Implementations must not block and
// must not fail the booking.
type Notifier interface {
	AppointmentBooked(ctx context.Context, appt *models.Appointment)
}

type Result struct {
	Wizard      *Wizard
	Appointment *models.Appointment
}

type Flow struct {
	sessions SessionStore
	subjects SubjectResolver
	booker   Booker
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
	loc      *time.Location
	log      zerolog.Logger
}

type Option func(*Flow)

func WithNotifier(n Notifier) Option { return func(f *Flow) { f.notifier = n } }
func WithMetrics(m *metrics.Metrics) Option { return func(f *Flow) { f.metrics = m } }
func WithClock(now func() time.Time) Option { return func(f *Flow) { f.now = now } }
func WithLocation(loc *time.Location) Option { return func(f *Flow) { f.loc = loc } }
func WithLogger(log zerolog.Logger) Option { return func(f *Flow) { f.log = log } }

func NewFlow(sessions SessionStore, subjects SubjectResolver, booker Booker, opts ...Option) *Flow {
	f := &Flow{
		sessions: sessions,
		subjects: subjects,
		booker:   booker,
		now:      time.Now,
		loc:      time.Local,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start opens a wizard at step 1. A zero ref leaves the subject to be picked.
func (f *Flow) Start(ctx context.Context, ref SubjectRef) (*Wizard, error) {
	if !ref.IsZero() {
		if _, err := f.subjects.Resolve(ctx, ref); err != nil {
			return nil, err
		}
	}
	now := f.now().In(f.loc)
	w := &Wizard{
		ID:           uuid.NewString(),
		Subject:      ref,
		Step:         StepSelectSubject,
		ReferenceDay: now,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	if err := f.sessions.Save(ctx, w); err != nil {
		return nil, err
	}
	f.log.Debug().Str("wizard_id", w.ID).Str("subject_type", ref.Kind).Str("subject_id", ref.ID).Msg("booking.wizard.started")
	return w, nil
}

func (f *Flow) Get(ctx context.Context, id string) (*Wizard, error) {
	return f.sessions.Load(ctx, id)
}

// SelectSubject sets the doctor or hospital. Switching subject kind clears
// the chosen slot.
func (f *Flow) SelectSubject(ctx context.Context, id string, ref SubjectRef) (*Wizard, error) {
	return f.mutate(ctx, id, func(w *Wizard) error {
		if ref.IsZero() {
			return &ValidationError{Step: StepSelectSubject, Field: "id", Reason: "is required"}
		}
		if _, err := f.subjects.Resolve(ctx, ref); err != nil {
			return err
		}
		if w.Subject.Kind != ref.Kind {
			w.Slot = nil
		}
		w.Subject = ref
		return nil
	})
}

// SelectSlot picks a slot from the wizard's generated days.
func (f *Flow) SelectSlot(ctx context.Context, id string, dayIndex int, hhmm string) (*Wizard, error) {
	return f.mutate(ctx, id, func(w *Wizard) error {
		slot, err := SlotAt(f.days(w), dayIndex, hhmm)
		if err != nil {
			return err
		}
		w.Slot = &slot
		return nil
	})
}

func (f *Flow) SetDetails(ctx context.Context, id string, details models.PatientDetails) (*Wizard, error) {
	return f.mutate(ctx, id, func(w *Wizard) error {
		w.Details = details
		return nil
	})
}

func (f *Flow) SetPayment(ctx context.Context, id string, p PaymentInfo) (*Wizard, error) {
	return f.mutate(ctx, id, func(w *Wizard) error {
		w.Payment = p
		return nil
	})
}

func (f *Flow) Back(ctx context.Context, id string) (*Wizard, error) {
	w, err := f.mutate(ctx, id, func(w *Wizard) error {
		w.Back()
		return nil
	})
	if err == nil {
		f.metrics.WizardTransition("back", w.Step.String())
	}
	return w, err
}

// Next validates the current step and advances. On the payment step it
// submits instead: nothing is booked unless every check passes, and an
// anonymous caller gets ErrLoginRequired.
func (f *Flow) Next(ctx context.Context, id, userID string) (*Result, error) {
	var res *Result
	_, err := f.edit(ctx, id, func(w *Wizard) error {
		if w.Step >= LastStep {
			r, err := f.submit(ctx, w, userID)
			res = r
			return err
		}

		if err := f.validateStep(ctx, w); err != nil {
			return err
		}
		w.Advance()
		w.UpdatedAt = f.now().UTC()
		if err := f.sessions.Save(ctx, w); err != nil {
			return err
		}
		f.metrics.WizardTransition("next", w.Step.String())
		res = &Result{Wizard: w}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (f *Flow) validateStep(ctx context.Context, w *Wizard) error {
	switch w.Step {
	case StepSelectSubject:
		if w.Subject.IsZero() {
			return &ValidationError{Step: StepSelectSubject, Field: "subject", Reason: "is required"}
		}
		_, err := f.subjects.Resolve(ctx, w.Subject)
		return err
	case StepSelectSlot:
		subject, err := f.subjects.Resolve(ctx, w.Subject)
		if err != nil {
			return err
		}
		return subject.ValidateSlotStep(w)
	}
	// Details and summary steps carry no required fields.
	return nil
}

func (f *Flow) submit(ctx context.Context, w *Wizard, userID string) (*Result, error) {
	if err := w.Payment.Validate(); err != nil {
		f.metrics.BookingRejected("validation")
		return nil, err
	}
	if w.Slot == nil {
		f.metrics.BookingRejected("validation")
		return nil, &ValidationError{Step: StepSelectSlot, Field: "slot", Reason: "is required"}
	}
	subject, err := f.subjects.Resolve(ctx, w.Subject)
	if err != nil {
		f.metrics.BookingRejected("validation")
		return nil, err
	}
	if userID == "" {
		f.metrics.BookingRejected("login_required")
		return nil, ErrLoginRequired
	}

	draft := models.Appointment{
		Date:            w.Slot.Date,
		Time:            w.Slot.Time,
		AppointmentDate: w.Slot.Start.UTC(),
		Patient:         w.Details,
		PaymentMethod:   w.Payment.Method,
		Amount:          subject.Fee(),
		Paid:            true,
	}
	subject.Apply(&draft, w)

	appt, err := f.booker.Book(ctx, userID, draft)
	if err != nil {
		f.metrics.BookingRejected("booking_failed")
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	w.Confirmed = true
	w.AppointmentID = appt.ID.Hex()
	w.Payment = w.Payment.Scrubbed()
	w.UpdatedAt = f.now().UTC()
	if err := f.sessions.Save(ctx, w); err != nil {
		// The appointment is already stored; report success regardless.
		f.log.Warn().Err(err).Str("wizard_id", w.ID).Msg("booking.wizard.save_after_confirm_failed")
	}

	f.metrics.BookingCreated(draft.Type)
	f.log.Info().
		Str("wizard_id", w.ID).
		Str("appointment_id", w.AppointmentID).
		Str("user_id", userID).
		Str("subject_type", draft.Type).
		Str("date", draft.Date).
		Str("time", draft.Time).
		Msg("booking.confirmed")

	if f.notifier != nil {
		f.notifier.AppointmentBooked(ctx, appt)
	}
	return &Result{Wizard: w, Appointment: appt}, nil
}

// edit runs fn on the wizard while holding its lock. Every write goes
// through here, so concurrent submissions book at most once and a stale
// writer cannot reopen a confirmed wizard.
func (f *Flow) edit(ctx context.Context, id string, fn func(w *Wizard) error) (*Wizard, error) {
	unlock, err := f.sessions.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	w, err := f.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Confirmed {
		return nil, ErrAlreadyConfirmed
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (f *Flow) mutate(ctx context.Context, id string, fn func(w *Wizard) error) (*Wizard, error) {
	return f.edit(ctx, id, func(w *Wizard) error {
		if err := fn(w); err != nil {
			return err
		}
		w.UpdatedAt = f.now().UTC()
		return f.sessions.Save(ctx, w)
	})
}

func (f *Flow) days(w *Wizard) []DaySlots {
	return GenerateSlots(w.ReferenceDay.In(f.loc))
}

// SubjectView is the resolved subject as shown to the client.
type SubjectView struct {
	Type string  `json:"type"`
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Fee  float64 `json:"fee"`
}

type View struct {
	ID            string                `json:"id"`
	Step          Step                  `json:"step"`
	StepName      string                `json:"stepName"`
	Steps         []string              `json:"steps"`
	Subject       *SubjectView          `json:"subject,omitempty"`
	Days          []DaySlots            `json:"days,omitempty"`
	Slot          *Slot                 `json:"slot,omitempty"`
	Details       models.PatientDetails `json:"details"`
	Payment       PaymentInfo           `json:"payment"`
	Confirmed     bool                  `json:"confirmed"`
	AppointmentID string                `json:"appointmentId,omitempty"`
}

// View renders a wizard for the client. Slots are only listed once a subject
// is known; upcomingOnly hides slots already in the past.
func (f *Flow) View(ctx context.Context, w *Wizard, upcomingOnly bool) (*View, error) {
	v := &View{
		ID:            w.ID,
		Step:          w.Step,
		StepName:      w.Step.String(),
		Steps:         StepLabels(w.Subject.Kind),
		Slot:          w.Slot,
		Details:       w.Details,
		Payment:       w.Payment.Redacted(),
		Confirmed:     w.Confirmed,
		AppointmentID: w.AppointmentID,
	}
	if w.Subject.IsZero() {
		return v, nil
	}
	subject, err := f.subjects.Resolve(ctx, w.Subject)
	if err != nil {
		if errors.Is(err, ErrUnknownSubject) {
			return nil, err
		}
		f.log.Warn().Err(err).Str("wizard_id", w.ID).Msg("booking.wizard.subject_unresolved")
		return v, nil
	}
	v.Subject = &SubjectView{Type: subject.Kind(), ID: subject.ID(), Name: subject.Name(), Fee: subject.Fee()}

	days := f.days(w)
	if upcomingOnly {
		now := f.now()
		for i := range days {
			days[i] = days[i].Upcoming(now)
		}
	}
	v.Days = days
	return v, nil
}
