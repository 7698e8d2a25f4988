package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ordering/internal/adapters/out/dispatch"
	"ordering/internal/jobs"
)

const (
	defaultHTTPPort         = "8080"
	defaultOrderEventsTopic = "order.events"
	defaultOutboxBatchSize  = 100
)

type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	KafkaHost             string
	KafkaOrderEventsTopic string
	NotifierBaseURL       string
	LoyaltyBaseURL        string
	OutboxRelaySchedule   string
	OutboxBatchSize       int
	SideEffectTimeout     time.Duration
}

// LoadConfig reads the configuration through getenv, filling defaults for
// optional values. Missing database settings are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:              valueOr(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:                getenv("DB_HOST"),
		DBPort:                valueOr(getenv("DB_PORT"), "5432"),
		DBUser:                getenv("DB_USER"),
		DBPassword:            getenv("DB_PASSWORD"),
		DBName:                getenv("DB_NAME"),
		DBSslMode:             valueOr(getenv("DB_SSLMODE"), "disable"),
		KafkaHost:             getenv("KAFKA_HOST"),
		KafkaOrderEventsTopic: valueOr(getenv("KAFKA_ORDER_EVENTS_TOPIC"), defaultOrderEventsTopic),
		NotifierBaseURL:       getenv("NOTIFIER_BASE_URL"),
		LoyaltyBaseURL:        getenv("LOYALTY_BASE_URL"),
		OutboxRelaySchedule:   valueOr(getenv("OUTBOX_RELAY_SCHEDULE"), jobs.DefaultOutboxRelaySchedule),
		OutboxBatchSize:       defaultOutboxBatchSize,
		SideEffectTimeout:     dispatch.DefaultTimeout,
	}

	var errList []error
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_NAME", "KAFKA_HOST"} {
		if getenv(key) == "" {
			errList = append(errList, fmt.Errorf("%s is required", key))
		}
	}

	if raw := getenv("OUTBOX_BATCH_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			errList = append(errList, fmt.Errorf("OUTBOX_BATCH_SIZE %q is not a positive integer", raw))
		}
		config.OutboxBatchSize = size
	}

	if raw := getenv("SIDE_EFFECT_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			errList = append(errList, fmt.Errorf("SIDE_EFFECT_TIMEOUT %q is not a positive duration", raw))
		}
		config.SideEffectTimeout = timeout
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
