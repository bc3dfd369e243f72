package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/harentsoaR/hyno-health-api/internal/events"
	"github.com/harentsoaR/hyno-health-api/internal/metrics"
	"github.com/harentsoaR/hyno-health-api/internal/models"
)

var notifyTracer = otel.Tracer("hyno.internal.services.notifications")

const (
	channelSMS   = "sms"
	channelEmail = "email"
	channelEvent = "event"

	defaultCurrency = "₹"

	NewsletterSubject = "Welcome to HYNO Healthcare Newsletter!"
	newsletterBody    = `Dear Valued Subscriber,

Thank you for subscribing to HYNO Healthcare updates!

We're excited to have you join our community dedicated to providing top-quality healthcare solutions. Expect health tips and wellness advice, updates on new services and features, and exclusive offers for subscribers.

Visit us to book your first appointment or explore our services.

Warm regards,
The HYNO Healthcare Team`
)

type UserLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type NotificationDeps struct {
	SMS        SMSSender
	Mail       Mailer
	Events     events.Publisher
	Users      UserLookup
	Dispatcher *Dispatcher
	Metrics    *metrics.Metrics
	Log        zerolog.Logger
	// Currency prefixes amounts in mail. Defaults to ₹.
	Currency string
}

// NotificationService delivers SMS, email and broker events. Lifecycle
// notifications are handed to the dispatcher and never fail the caller. A
// nil SMS or Mail sender disables that channel.
type NotificationService struct {
	sms        SMSSender
	mail       Mailer
	events     events.Publisher
	users      UserLookup
	dispatcher *Dispatcher
	metrics    *metrics.Metrics
	log        zerolog.Logger
	currency   string
	now        func() time.Time
}

func NewNotificationService(deps NotificationDeps) *NotificationService {
	pub := deps.Events
	if pub == nil {
		pub = events.NopPublisher{}
	}
	currency := deps.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return &NotificationService{
		sms:        deps.SMS,
		mail:       deps.Mail,
		events:     pub,
		users:      deps.Users,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		log:        deps.Log,
		currency:   currency,
		now:        time.Now,
	}
}

func (s *NotificationService) AppointmentBooked(ctx context.Context, appt *models.Appointment) {
	a := *appt
	s.lifecycle(ctx, &a, events.AppointmentBooked,
		fmt.Sprintf("Your appointment with %s on %s at %s is confirmed!", a.SubjectName, displayDate(a.Date), a.Time),
		"Appointment confirmed",
		bookedMailBody(&a, s.currency),
	)
}

func (s *NotificationService) AppointmentCancelled(ctx context.Context, appt *models.Appointment) {
	a := *appt
	s.lifecycle(ctx, &a, events.AppointmentCancelled,
		fmt.Sprintf("Your appointment with %s on %s at %s has been cancelled.", a.SubjectName, displayDate(a.Date), a.Time),
		"Appointment cancelled",
		fmt.Sprintf("Hello %s,\n\nYour appointment with %s on %s at %s has been cancelled.\n\nThe HYNO Healthcare Team", a.Patient.Name, a.SubjectName, displayDate(a.Date), a.Time),
	)
}

func (s *NotificationService) lifecycle(ctx context.Context, a *models.Appointment, kind, sms, subject, body string) {
	parent := trace.SpanContextFromContext(ctx)

	if s.sms != nil {
		s.background(parent, channelSMS, kind, func(ctx context.Context) error {
			phone := s.phoneFor(ctx, a)
			if phone == "" {
				return errors.New("no phone number on account or booking")
			}
			return s.sms.SendSMS(ctx, phone, sms)
		})
	}

	if s.mail != nil && a.Patient.Email != "" {
		s.background(parent, channelEmail, kind, func(ctx context.Context) error {
			return s.mail.SendMail(ctx, a.Patient.Email, subject, body)
		})
	}

	s.background(parent, channelEvent, kind, func(ctx context.Context) error {
		return s.events.Publish(ctx, events.NewAppointmentEvent(kind, a, s.now()))
	})
}

// SendSMS delivers a message synchronously.
func (s *NotificationService) SendSMS(ctx context.Context, to, message string) error {
	if s.sms == nil {
		return ErrChannelDisabled
	}
	return s.traced(ctx, channelSMS, "direct", func(ctx context.Context) error {
		return s.sms.SendSMS(ctx, to, message)
	})
}

// SendMail delivers a message synchronously. Empty subject and body send the
// newsletter welcome.
func (s *NotificationService) SendMail(ctx context.Context, to, subject, body string) error {
	if s.mail == nil {
		return ErrChannelDisabled
	}
	if strings.TrimSpace(subject) == "" {
		subject = NewsletterSubject
	}
	if strings.TrimSpace(body) == "" {
		body = newsletterBody
	}
	return s.traced(ctx, channelEmail, "direct", func(ctx context.Context) error {
		return s.mail.SendMail(ctx, to, subject, body)
	})
}

func (s *NotificationService) Welcome(ctx context.Context, u *models.User) {
	if s.mail == nil || u.Email == "" {
		return
	}
	to, name := u.Email, u.FullName
	s.background(trace.SpanContextFromContext(ctx), channelEmail, "welcome", func(ctx context.Context) error {
		return s.mail.SendMail(ctx, to, "Welcome to HYNO Healthcare",
			fmt.Sprintf("Hello %s,\n\nYour HYNO Healthcare account is ready. You can now book doctor and hospital appointments online.\n\nThe HYNO Healthcare Team", name))
	})
}

func (s *NotificationService) PasswordReset(ctx context.Context, email, link string, ttl time.Duration) {
	if s.mail == nil {
		s.log.Warn().Msg("notify.password_reset.mail_disabled")
		return
	}
	s.background(trace.SpanContextFromContext(ctx), channelEmail, "password_reset", func(ctx context.Context) error {
		return s.mail.SendMail(ctx, email, "Reset your HYNO Healthcare password",
			fmt.Sprintf("We received a request to reset your password.\n\nOpen this link within %s to choose a new one:\n%s\n\nIf you did not ask for this, you can ignore this email.", ttl, link))
	})
}

func (s *NotificationService) background(parent trace.SpanContext, channel, kind string, fn func(ctx context.Context) error) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Go(channel+"."+kind, func(ctx context.Context) error {
		if parent.IsValid() {
			ctx = trace.ContextWithSpanContext(ctx, parent)
		}
		return s.traced(ctx, channel, kind, fn)
	})
}

func (s *NotificationService) traced(ctx context.Context, channel, kind string, fn func(ctx context.Context) error) error {
	ctx, span := notifyTracer.Start(ctx, "notifications."+channel)
	defer span.End()
	span.SetAttributes(attribute.String("hyno.notification.kind", kind))

	err := fn(ctx)
	s.metrics.Notification(channel, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *NotificationService) phoneFor(ctx context.Context, a *models.Appointment) string {
	if s.users != nil && a.UserID != "" {
		u, err := s.users.FindByID(ctx, a.UserID)
		if err == nil && u.Phone != "" {
			return u.Phone
		}
	}
	return a.Patient.Contact
}

func bookedMailBody(a *models.Appointment, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", a.Patient.Name)
	fmt.Fprintf(&b, "Your appointment with %s is confirmed.\n\n", a.SubjectName)
	fmt.Fprintf(&b, "Date: %s\nTime: %s\n", displayDate(a.Date), a.Time)
	if a.Patient.Department != "" {
		fmt.Fprintf(&b, "Department: %s\n", a.Patient.Department)
	}
	fmt.Fprintf(&b, "Amount paid: %s%.2f (%s)\n\n", currency, a.Amount, a.PaymentMethod)
	b.WriteString("The HYNO Healthcare Team")
	return b.String()
}

func displayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon Jan 02 2006")
}
