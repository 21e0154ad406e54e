package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	NOTIFIER_SMTP = "smtp"
	NOTIFIER_SES  = "ses"
	NOTIFIER_FAKE = "fake"

	IMAGE_STORAGE_DISK = "disk"
	IMAGE_STORAGE_S3   = "s3"
)

type Config struct {
	Port           uint16   `env:"PORT" envDefault:"8000"`
	IsTestMode     bool     `env:"TEST_MODE" envDefault:"false"`
	Secret         string   `env:"SECRET,required"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	SentryDsn      string   `env:"SENTRY_DSN"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	RabbitmqURL                   string `env:"RABBITMQ_URL,required"`
	RabbitmqAccountEventsExchange string `env:"RABBITMQ_ACCOUNT_EVENTS_EXCHANGE" envDefault:"account-events"`
	RabbitmqAccountEventsQueue    string `env:"RABBITMQ_ACCOUNT_EVENTS_QUEUE" envDefault:"account-events-audit"`

	BcryptHasherCost                int `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDurationHours int `env:"PASSWORD_RESET_VALID_DURATION_HOURS" envDefault:"0"`

	SessionCookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"true"`

	Notifier         string        `env:"NOTIFIER" envDefault:"smtp"`
	NotifierTimeout  time.Duration `env:"NOTIFIER_TIMEOUT" envDefault:"10s"`
	EmailSender      string        `env:"EMAIL_SENDER,required"`
	VerificationURL  url.URL       `env:"VERIFICATION_URL,required"`
	PasswordResetURL url.URL       `env:"PASSWORD_RESET_URL,required"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPTLS      bool   `env:"SMTP_TLS" envDefault:"true"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	AwsRegion    string `env:"AWS_REGION" envDefault:"eu-central-1"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`

	ImageStorage string `env:"IMAGE_STORAGE" envDefault:"disk"`
	ImageDir     string `env:"IMAGE_DIR" envDefault:"./images"`
	S3Bucket     string `env:"S3_BUCKET"`
	S3Endpoint   string `env:"S3_ENDPOINT"`

	GoogleRecaptchaSecretKey      string        `env:"GOOGLE_RECAPTCHA_SECRET_KEY"`
	GoogleRecaptchaScoreThreshold float64       `env:"GOOGLE_RECAPTCHA_SCORE_THRESHOLD" envDefault:"0.5"`
	GoogleRecaptchaRequestTimeout time.Duration `env:"GOOGLE_RECAPTCHA_REQUEST_TIMEOUT" envDefault:"5s"`
}

func (c *Config) PasswordResetValidDuration() time.Duration {
	return time.Duration(c.PasswordResetValidDurationHours) * time.Hour
}

func (c *Config) Validate() error {
	switch c.Notifier {
	case NOTIFIER_SMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST must be set for the %s notifier", NOTIFIER_SMTP)
		}
	case NOTIFIER_SES, NOTIFIER_FAKE:
	default:
		return fmt.Errorf("invalid NOTIFIER value %q", c.Notifier)
	}

	switch c.ImageStorage {
	case IMAGE_STORAGE_DISK:
		if c.ImageDir == "" {
			return fmt.Errorf("IMAGE_DIR must be set for the %s image storage", IMAGE_STORAGE_DISK)
		}
	case IMAGE_STORAGE_S3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET must be set for the %s image storage", IMAGE_STORAGE_S3)
		}
	default:
		return fmt.Errorf("invalid IMAGE_STORAGE value %q", c.ImageStorage)
	}

	if c.BcryptHasherCost < 4 || c.BcryptHasherCost > 31 {
		return fmt.Errorf("invalid BCRYPT_HASHER_COST value %d", c.BcryptHasherCost)
	}
	if c.PasswordResetValidDurationHours < 0 {
		return fmt.Errorf("PASSWORD_RESET_VALID_DURATION_HOURS must not be negative")
	}
	if !c.IsTestMode && c.GoogleRecaptchaSecretKey == "" {
		return fmt.Errorf("GOOGLE_RECAPTCHA_SECRET_KEY must be set outside of test mode")
	}
	return nil
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
