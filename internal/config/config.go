package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	TOKEN_LEDGER_POSTGRES = "postgres"
	TOKEN_LEDGER_REDIS    = "redis"

	NOTIFICATION_TRANSPORT_SES      = "ses"
	NOTIFICATION_TRANSPORT_RABBITMQ = "rabbitmq"
)

type Config struct {
	Port       int  `env:"PORT" envDefault:"8080"`
	IsTestMode bool `env:"TEST_MODE"`
	// Secret is appended to passwords before hashing.
	Secret         string `env:"SECRET,required,notEmpty"`
	PostgresqlURL  string `env:"POSTGRESQL_URL,required,notEmpty"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`
	RedisURL       string `env:"REDIS_URL"`

	BcryptHasherCost         int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	ConfirmationTokenTTL     time.Duration `env:"CONFIRMATION_TOKEN_TTL" envDefault:"1h"`
	TokenLedger              string        `env:"TOKEN_LEDGER" envDefault:"postgres"`
	NotificationTransport    string        `env:"NOTIFICATION_TRANSPORT" envDefault:"ses"`
	ResetHideUnknownUsername bool          `env:"RESET_HIDE_UNKNOWN_USERNAME" envDefault:"false"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	AwsRegion      string `env:"AWS_REGION"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER"`

	RabbitmqURL               string `env:"RABBITMQ_URL"`
	RabbitmqNotificationQueue string `env:"RABBITMQ_NOTIFICATION_QUEUE" envDefault:"confirmation-token"`

	SentryDsn string `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.ConfirmationTokenTTL <= 0 {
		return fmt.Errorf("CONFIRMATION_TOKEN_TTL must be positive")
	}

	switch c.TokenLedger {
	case TOKEN_LEDGER_POSTGRES:
	case TOKEN_LEDGER_REDIS:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL must be set when TOKEN_LEDGER is %q", TOKEN_LEDGER_REDIS)
		}
	default:
		return fmt.Errorf("invalid TOKEN_LEDGER value: %q", c.TokenLedger)
	}

	switch c.NotificationTransport {
	case NOTIFICATION_TRANSPORT_SES:
		if c.AwsEmailSender == "" {
			return fmt.Errorf("AWS_EMAIL_SENDER must be set when NOTIFICATION_TRANSPORT is %q", NOTIFICATION_TRANSPORT_SES)
		}
	case NOTIFICATION_TRANSPORT_RABBITMQ:
		if c.RabbitmqURL == "" {
			return fmt.Errorf("RABBITMQ_URL must be set when NOTIFICATION_TRANSPORT is %q", NOTIFICATION_TRANSPORT_RABBITMQ)
		}
	default:
		return fmt.Errorf("invalid NOTIFICATION_TRANSPORT value: %q", c.NotificationTransport)
	}

	return nil
}
