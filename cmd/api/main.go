package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/meridianadvisory/site-backend/internal/http/handlers"
	"github.com/meridianadvisory/site-backend/internal/notify"
	"github.com/meridianadvisory/site-backend/internal/platform/cache"
	"github.com/meridianadvisory/site-backend/internal/platform/cms"
	"github.com/meridianadvisory/site-backend/internal/platform/mailer"
	"github.com/meridianadvisory/site-backend/internal/platform/media"
	"github.com/meridianadvisory/site-backend/internal/platform/payments"
	"github.com/meridianadvisory/site-backend/internal/repo/postgres"
	"github.com/meridianadvisory/site-backend/internal/service"
	"github.com/meridianadvisory/site-backend/pkg/config"
	"github.com/meridianadvisory/site-backend/pkg/database"
	"github.com/meridianadvisory/site-backend/pkg/events"
	"github.com/meridianadvisory/site-backend/pkg/logger"
	mw "github.com/meridianadvisory/site-backend/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	bus, err := events.NewNATSPublisher(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	sender := buildSender(cfg)
	notifySvc := notify.New(sender, cfg.Email.AdminEmails)

	gateway := buildGateway(cfg)
	mediaClient := media.NewCloudinaryClient(cfg.Media.CloudName, cfg.Media.APIKey, cfg.Media.APISecret)
	cmsClient := cms.NewClient(cfg.CMS.BaseURL, &http.Client{Timeout: cfg.CMS.Timeout})

	bookingRepo := postgres.NewBookingRepository(pool)
	statsRepo := postgres.NewContentStatsRepository(pool)

	bookingSvc := service.NewBookingService(bookingRepo, notifySvc, bus)
	statusSvc := service.NewStatusService(statsRepo, mediaClient, cfg.Media.QuotaGB)

	h := handlers.New(bookingSvc, statusSvc, notifySvc, gateway, cmsClient, bus, cfg)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		MaxAge:         300,
	}))
	r.Use(mw.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.Redis.URL != "" {
				store, err := cache.NewRedisStore(cfg.Redis.URL)
				if err != nil {
					logger.Error("Failed to connect to Redis", "error", err)
					os.Exit(1)
				}
				r.Use(mw.Idempotency(store))
			}
			r.Post("/book-consultation", h.SubmitBooking)
		})

		r.Post("/confirm-booking", h.ConfirmBooking)
		r.Get("/bookings", h.ListBookings)
		r.Get("/bookings/{id}", h.GetBooking)
		r.Post("/create-razorpay-order", h.CreateOrder)
		r.Post("/send-email", h.SendEmail)
		r.Get("/system-status", h.SystemStatus)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Get("/verify", h.Verify)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func buildSender(cfg *config.Config) mailer.Sender {
	if cfg.Email.DevMode {
		logger.Info("Email dev mode enabled; messages will be logged only")
		return mailer.NewDevSender()
	}

	if cfg.Email.MailerSendKey != "" {
		sender, err := mailer.NewMailerSendSender(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
		if err == nil {
			return sender
		}
		logger.Warn("MailerSend unavailable, falling back to SMTP", "error", err)
	}

	return mailer.NewSMTPSender(
		cfg.Email.SMTPHost, cfg.Email.SMTPPort,
		cfg.Email.FromEmail, cfg.Email.SMTPUser, cfg.Email.SMTPPass,
		cfg.Email.SMTPUseTLS,
	)
}

func buildGateway(cfg *config.Config) payments.Gateway {
	switch cfg.Payments.Provider {
	case "stripe":
		return payments.NewStripeGateway(cfg.Payments.StripeSecretKey)
	default:
		return payments.NewRazorpayGateway(cfg.Payments.RazorpayKeyID, cfg.Payments.RazorpayKeySecret)
	}
}
