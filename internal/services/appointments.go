package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/harentsoaR/hyno-health-api/internal/models"
	"github.com/harentsoaR/hyno-health-api/internal/store"
)

var appointmentsTracer = otel.Tracer("hyno.internal.services.appointments")

type CancelNotifier interface {
	AppointmentCancelled(ctx context.Context, appt *models.Appointment)
}

type AppointmentOptions struct {
	// ExclusiveSlots rejects a booking when the subject already holds a
	// confirmed appointment at the same date and time.
	ExclusiveSlots bool
	Notifier       CancelNotifier
	Log            zerolog.Logger
	Now            func() time.Time
}

type AppointmentService struct {
	repo      store.AppointmentRepository
	exclusive bool
	notifier  CancelNotifier
	log       zerolog.Logger
	now       func() time.Time

	// bookMu serializes the slot check with the insert.
	bookMu sync.Mutex
}

func NewAppointmentService(repo store.AppointmentRepository, opts AppointmentOptions) *AppointmentService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AppointmentService{
		repo:      repo,
		exclusive: opts.ExclusiveSlots,
		notifier:  opts.Notifier,
		log:       opts.Log,
		now:       now,
	}
}

// Book stores draft as a new confirmed appointment owned by userID.
func (s *AppointmentService) Book(ctx context.Context, userID string, draft models.Appointment) (*models.Appointment, error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.book")
	defer span.End()
	span.SetAttributes(
		attribute.String("hyno.subject_type", draft.Type),
		attribute.String("hyno.subject_id", draft.SubjectID()),
		attribute.String("hyno.date", draft.Date),
		attribute.String("hyno.time", draft.Time),
	)

	appt := draft
	appt.ID = primitive.NewObjectID()
	appt.UserID = userID
	appt.Status = models.StatusConfirmed
	appt.CreatedAt = s.now().UTC()
	appt.CancelledAt = nil

	if s.exclusive {
		s.bookMu.Lock()
		defer s.bookMu.Unlock()
		taken, err := s.repo.SlotTaken(ctx, appt.Type, appt.SubjectID(), appt.Date, appt.Time)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if taken {
			span.SetStatus(codes.Error, ErrSlotTaken.Error())
			return nil, ErrSlotTaken
		}
	}

	if err := s.repo.Insert(ctx, &appt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("hyno.appointment_id", appt.ID.Hex()))

	s.log.Info().
		Str("appointment_id", appt.ID.Hex()).
		Str("user_id", userID).
		Str("type", appt.Type).
		Msg("appointment.created")
	return &appt, nil
}

// List returns the caller's appointments. Admins see everyone's.
func (s *AppointmentService) List(ctx context.Context, userID, role string, f store.AppointmentFilter) ([]models.Appointment, error) {
	if role != models.RoleAdmin {
		f.UserID = userID
	}
	return s.repo.List(ctx, f)
}

func (s *AppointmentService) Get(ctx context.Context, userID, role, id string) (*models.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && appt.UserID != userID {
		// Do not reveal other users' appointments.
		return nil, store.ErrNotFound
	}
	return appt, nil
}

// Cancel marks the appointment cancelled. Only the owner or an admin may
// cancel.
func (s *AppointmentService) Cancel(ctx context.Context, userID, role, id string) (*models.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && appt.UserID != userID {
		return nil, ErrForbidden
	}
	if appt.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	at := s.now().UTC()
	if err := s.repo.Cancel(ctx, id, at); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost a race with another cancel.
			return nil, ErrAlreadyCancelled
		}
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	appt.Status = models.StatusCancelled
	appt.CancelledAt = &at

	s.log.Info().Str("appointment_id", id).Str("user_id", userID).Msg("appointment.cancelled")
	if s.notifier != nil {
		s.notifier.AppointmentCancelled(ctx, appt)
	}
	return appt, nil
}

func (s *AppointmentService) ClearCancelled(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.DeleteCancelled(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("user_id", userID).Int64("removed", n).Msg("appointment.cancelled_cleared")
	return n, nil
}
