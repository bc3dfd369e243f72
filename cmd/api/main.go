package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harentsoaR/hyno-health-api/internal/booking"
	"github.com/harentsoaR/hyno-health-api/internal/cache"
	"github.com/harentsoaR/hyno-health-api/internal/catalog"
	"github.com/harentsoaR/hyno-health-api/internal/config"
	"github.com/harentsoaR/hyno-health-api/internal/events"
	"github.com/harentsoaR/hyno-health-api/internal/handlers"
	"github.com/harentsoaR/hyno-health-api/internal/logging"
	"github.com/harentsoaR/hyno-health-api/internal/metrics"
	"github.com/harentsoaR/hyno-health-api/internal/services"
	"github.com/harentsoaR/hyno-health-api/internal/store"
	"github.com/harentsoaR/hyno-health-api/internal/utils"
)

type repositories struct {
	users        store.UserRepository
	appointments store.AppointmentRepository
	health       store.HealthRepository
	catalog      catalog.Writer
	close        func(ctx context.Context) error
}

func main() {
	envErr := godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		bootLog := logging.New("error", "local")
		bootLog.Fatal().Err(err).Msg("config.invalid")
	}
	log := logging.New(cfg.App.LogLevel, string(cfg.App.Env))
	if envErr != nil {
		log.Debug().Msg("No .env file found, relying on environment variables.")
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("config.timezone_invalid")
	}

	// --- Storage ---
	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repos, err := openRepositories(startCtx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("store.open_failed")
	}

	kv, closeCache, err := openCache(startCtx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Cache.Driver).Msg("cache.open_failed")
	}

	publisher, err := openPublisher(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("events.open_failed")
	}

	// --- Services ---
	m := metrics.New()
	tokens, err := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("auth.token_manager_failed")
	}

	dispatcher := services.NewDispatcher(cfg.SMS.Timeout, logging.Component(log, "dispatcher"))
	var mailer services.Mailer
	if cfg.Mail.Username != "" {
		mailer = services.NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
	} else {
		log.Warn().Msg("notify.email_disabled")
	}
	notifier := services.NewNotificationService(services.NotificationDeps{
		SMS:        services.NewTextbeltSender(cfg.SMS.TextbeltURL, cfg.SMS.APIKey, cfg.SMS.Timeout),
		Mail:       mailer,
		Events:     publisher,
		Users:      repos.users,
		Dispatcher: dispatcher,
		Metrics:    m,
		Log:        logging.Component(log, "notifications"),
		Currency:   cfg.Booking.Currency,
	})

	appointments := services.NewAppointmentService(repos.appointments, services.AppointmentOptions{
		ExclusiveSlots: cfg.Booking.ExclusiveSlots,
		Notifier:       notifier,
		Log:            logging.Component(log, "appointments"),
	})
	auth := services.NewAuthService(repos.users, tokens, kv, notifier, services.AuthConfig{
		BcryptCost: cfg.Auth.BcryptCost,
		ResetTTL:   cfg.Auth.ResetTTL,
		ResetURL:   cfg.Auth.ResetURL,
	}, logging.Component(log, "auth"))

	cat := catalog.New(repos.catalog, logging.Component(log, "catalog"))
	health := services.NewHealthService(repos.health, services.HealthOptions{
		Location: loc,
		Log:      logging.Component(log, "health"),
	})
	flow := booking.NewFlow(
		booking.NewCacheSessions(kv, cfg.Cache.SessionTTL, cfg.Cache.PaymentTTL),
		booking.CatalogResolver{Catalog: cat, HospitalFee: cfg.Booking.HospitalFee},
		appointments,
		booking.WithNotifier(notifier),
		booking.WithMetrics(m),
		booking.WithLocation(loc),
		booking.WithLogger(logging.Component(log, "booking")),
	)

	h := handlers.NewHandler(handlers.Deps{
		Auth:          auth,
		Users:         repos.users,
		Appointments:  appointments,
		Catalog:       cat,
		Health:        health,
		Flow:          flow,
		Messenger:     notifier,
		Tokens:        tokens,
		Metrics:       m,
		RedirectDelay: cfg.Booking.RedirectDelay,
		Location:      loc,
		Log:           logging.Component(log, "http"),
	})

	// --- Gin Router ---
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Str("cache", cfg.Cache.Driver).Msg("http.listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http.listen_failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("http.shutting_down")

	ctx, stop := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownGrace)
	defer stop()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http.shutdown_failed")
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("notify.dispatcher_drain_incomplete")
	}
	if err := publisher.Close(); err != nil {
		log.Warn().Err(err).Msg("events.close_failed")
	}
	if err := closeCache(); err != nil {
		log.Warn().Err(err).Msg("cache.close_failed")
	}
	if err := repos.close(ctx); err != nil {
		log.Warn().Err(err).Msg("store.close_failed")
	}
}

func openRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.Store.Driver == config.DriverMemory {
		mem, err := store.NewMemory(cfg.Store.SnapshotPath)
		if err != nil {
			return nil, err
		}
		log.Warn().Str("snapshot", cfg.Store.SnapshotPath).Msg("store.memory_driver")
		return &repositories{
			users:        mem,
			appointments: mem,
			health:       mem,
			catalog:      mem,
			close:        func(context.Context) error { return nil },
		}, nil
	}

	client, err := store.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Mongo.Database)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("store.mongo_connected")
	return &repositories{
		users:        store.NewMongoUsers(db),
		appointments: store.NewMongoAppointments(db),
		health:       store.NewMongoHealth(db),
		catalog:      store.NewMongoCatalog(db),
		close:        disconnect(client),
	}, nil
}

func disconnect(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error { return client.Disconnect(ctx) }
}

func openCache(ctx context.Context, cfg *config.Config) (cache.Store, func() error, error) {
	if cfg.Cache.Driver == config.DriverRedis {
		client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisStore(client, "hyno:"), client.Close, nil
	}
	lru, err := cache.NewLRUStore(cfg.Cache.Size)
	if err != nil {
		return nil, nil, err
	}
	return lru, func() error { return nil }, nil
}

func openPublisher(cfg *config.Config, log zerolog.Logger) (events.Publisher, error) {
	if !cfg.RabbitMQ.Enabled {
		return events.NopPublisher{}, nil
	}
	p, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		return nil, err
	}
	log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("events.amqp_connected")
	return p, nil
}
