// Package events publishes appointment lifecycle events.
package events

import (
	"context"
	"time"

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

const (
	AppointmentBooked    = "appointment.booked"
	AppointmentCancelled = "appointment.cancelled"
)

type AppointmentPayload struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Type        string  `json:"type"`
	SubjectID   string  `json:"subjectId"`
	SubjectName string  `json:"subjectName"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
}

type Event struct {
	Type        string             `json:"type"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Appointment AppointmentPayload `json:"appointment"`
}

func NewAppointmentEvent(kind string, appt *models.Appointment, at time.Time) Event {
	return Event{
		Type:       kind,
		OccurredAt: at.UTC(),
		Appointment: AppointmentPayload{
			ID:          appt.ID.Hex(),
			UserID:      appt.UserID,
			Type:        appt.Type,
			SubjectID:   appt.SubjectID(),
			SubjectName: appt.SubjectName,
			Date:        appt.Date,
			Time:        appt.Time,
			Status:      appt.Status,
			Amount:      appt.Amount,
		},
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error { return nil }
