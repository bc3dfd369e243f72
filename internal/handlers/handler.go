package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/hyno-health-api/internal/booking"
	"github.com/harentsoaR/hyno-health-api/internal/catalog"
	"github.com/harentsoaR/hyno-health-api/internal/metrics"
	"github.com/harentsoaR/hyno-health-api/internal/services"
	"github.com/harentsoaR/hyno-health-api/internal/store"
	"github.com/harentsoaR/hyno-health-api/internal/utils"
)

// Messenger sends direct SMS and email on behalf of a client.
type Messenger interface {
	SendSMS(ctx context.Context, to, message string) error
	SendMail(ctx context.Context, to, subject, body string) error
}

type Deps struct {
	Auth          *services.AuthService
	Users         store.UserRepository
	Appointments  *services.AppointmentService
	Catalog       *catalog.Catalog
	Health        *services.HealthService
	Flow          *booking.Flow
	Messenger     Messenger
	Tokens        *utils.TokenManager
	Metrics       *metrics.Metrics
	RedirectDelay time.Duration
	Location      *time.Location
	Log           zerolog.Logger
}

// Handler holds everything the HTTP layer needs. There is no package-level
// state; main wires one Handler per process.
type Handler struct {
	Deps
	now func() time.Time
}

func NewHandler(deps Deps) *Handler {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	return &Handler{Deps: deps, now: time.Now}
}
