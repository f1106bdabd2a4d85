package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Auth     AuthConfig
	Payments PaymentsConfig
	Email    EmailConfig
	CMS      CMSConfig
	Media    MediaConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL         string
	MaxConns    int
	MinConns    int
	MaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type NATSConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret       string
	SessionTokenTTL time.Duration
}

type PaymentsConfig struct {
	Provider          string // razorpay or stripe
	RazorpayKeyID     string
	RazorpayKeySecret string
	StripeSecretKey   string
	DefaultCurrency   string
}

type EmailConfig struct {
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	SMTPUseTLS    bool
	MailerSendKey string
	FromName      string
	FromEmail     string
	AdminEmails   []string
	DevMode       bool // print emails to logs instead of sending
}

type CMSConfig struct {
	BaseURL string
	Timeout time.Duration
}

type MediaConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	QuotaGB   float64
}

// Load reads configuration from the environment. Secrets have no embedded
// fallback values: a missing required variable is a startup error.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URL:         os.Getenv("DATABASE_URL"),
			MaxConns:    getInt("DB_MAX_CONNS", 10),
			MinConns:    getInt("DB_MIN_CONNS", 1),
			MaxLifetime: getDuration("DB_MAX_LIFETIME", time.Hour),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Auth: AuthConfig{
			JWTSecret:       os.Getenv("JWT_SECRET"),
			SessionTokenTTL: getDuration("SESSION_TOKEN_TTL", 12*time.Hour),
		},
		Payments: PaymentsConfig{
			Provider:          getEnv("PAYMENT_PROVIDER", "razorpay"),
			RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
			DefaultCurrency:   getEnv("PAYMENT_CURRENCY", "INR"),
		},
		Email: EmailConfig{
			SMTPHost:      os.Getenv("SMTP_HOST"),
			SMTPPort:      getInt("SMTP_PORT", 587),
			SMTPUser:      os.Getenv("SMTP_USER"),
			SMTPPass:      os.Getenv("SMTP_PASS"),
			SMTPUseTLS:    getBool("SMTP_USE_TLS", true),
			MailerSendKey: os.Getenv("MAILERSEND_API_KEY"),
			FromName:      getEnv("EMAIL_FROM_NAME", "Meridian Advisory"),
			FromEmail:     os.Getenv("EMAIL_FROM"),
			AdminEmails:   splitList(os.Getenv("ADMIN_EMAILS")),
			DevMode:       getBool("EMAIL_DEV_MODE", false),
		},
		CMS: CMSConfig{
			BaseURL: os.Getenv("CMS_BASE_URL"),
			Timeout: getDuration("CMS_TIMEOUT", 10*time.Second),
		},
		Media: MediaConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			QuotaGB:   getFloat("MEDIA_QUOTA_GB", 25),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string

	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.CMS.BaseURL == "" {
		missing = append(missing, "CMS_BASE_URL")
	}

	switch c.Payments.Provider {
	case "razorpay":
		if c.Payments.RazorpayKeyID == "" {
			missing = append(missing, "RAZORPAY_KEY_ID")
		}
		if c.Payments.RazorpayKeySecret == "" {
			missing = append(missing, "RAZORPAY_KEY_SECRET")
		}
	case "stripe":
		if c.Payments.StripeSecretKey == "" {
			missing = append(missing, "STRIPE_SECRET_KEY")
		}
	default:
		return fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.Payments.Provider)
	}

	if !c.Email.DevMode {
		if c.Email.FromEmail == "" {
			missing = append(missing, "EMAIL_FROM")
		}
		if c.Email.SMTPHost == "" && c.Email.MailerSendKey == "" {
			missing = append(missing, "SMTP_HOST or MAILERSEND_API_KEY")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
