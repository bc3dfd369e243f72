package services

import (
	"context"
	"sync"
	"time"

	"github.com/harentsoaR/hyno-health-api/internal/events"
	"github.com/harentsoaR/hyno-health-api/internal/models"
)

type sentSMS struct{ phone, message string }

type fakeSMS struct {
	mu   sync.Mutex
	sent []sentSMS
	err  error
}

func (f *fakeSMS) SendSMS(_ context.Context, phone, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentSMS{phone, message})
	return f.err
}

type sentMail struct{ to, subject, body string }

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendMail(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to, subject, body})
	return f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakePublisher) Publish(_ context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeAccountNotifier struct {
	welcomed []string
	links    []string
}

func (f *fakeAccountNotifier) Welcome(_ context.Context, u *models.User) {
	f.welcomed = append(f.welcomed, u.Email)
}

func (f *fakeAccountNotifier) PasswordReset(_ context.Context, _, link string, _ time.Duration) {
	f.links = append(f.links, link)
}

type fakeCancelNotifier struct {
	cancelled []*models.Appointment
}

func (f *fakeCancelNotifier) AppointmentCancelled(_ context.Context, appt *models.Appointment) {
	f.cancelled = append(f.cancelled, appt)
}
