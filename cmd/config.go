package cmd

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort            = "8080"
	defaultDBPort              = "5432"
	defaultDBSslMode           = "disable"
	defaultNotificationsTopic  = "marketplace.notifications"
	defaultOverdueScanSchedule = "0 */5 * * * *"
	defaultOverdueBatchSize    = 100
	defaultServiceVersion      = "dev"
)

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	DBAutoMigrate           bool
	KafkaBrokers            []string
	KafkaNotificationsTopic string
	OTelEnabled             bool
	OTelEndpoint            string
	OverdueScanSchedule     string
	OverdueBatchSize        int
	ServiceVersion          string
}

// LoadConfig reads the environment, seeded from .env when the file exists, and
// validates the result. Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromLookup(os.LookupEnv)
}

// ConfigFromLookup builds a Config from lookup, applying defaults.
func ConfigFromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	var parseErrs []error
	getBool := func(key string, fallback bool) bool {
		raw := get(key, "")
		if raw == "" {
			return fallback
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause(key, err))
			return fallback
		}
		return v
	}
	getInt := func(key string, fallback int) int {
		raw := get(key, "")
		if raw == "" {
			return fallback
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause(key, err))
			return fallback
		}
		return v
	}

	config := Config{
		HTTPPort:                get("HTTP_PORT", defaultHTTPPort),
		DBHost:                  get("DB_HOST", ""),
		DBPort:                  get("DB_PORT", defaultDBPort),
		DBUser:                  get("DB_USER", ""),
		DBPassword:              get("DB_PASSWORD", ""),
		DBName:                  get("DB_NAME", ""),
		DBSslMode:               get("DB_SSLMODE", defaultDBSslMode),
		DBAutoMigrate:           getBool("DB_AUTO_MIGRATE", false),
		KafkaBrokers:            splitList(get("KAFKA_BROKERS", "")),
		KafkaNotificationsTopic: get("KAFKA_NOTIFICATIONS_TOPIC", defaultNotificationsTopic),
		OTelEnabled:             getBool("OTEL_ENABLED", false),
		OTelEndpoint:            get("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OverdueScanSchedule:     get("OVERDUE_SCAN_SCHEDULE", defaultOverdueScanSchedule),
		OverdueBatchSize:        getInt("OVERDUE_BATCH_SIZE", defaultOverdueBatchSize),
		ServiceVersion:          get("SERVICE_VERSION", defaultServiceVersion),
	}

	if err := errors.Join(errors.Join(parseErrs...), config.Validate()); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var errList []error
	for _, setting := range [][2]string{{"DB_HOST", c.DBHost}, {"DB_USER", c.DBUser}, {"DB_NAME", c.DBName}} {
		if setting[1] == "" {
			errList = append(errList, errs.NewValueIsRequiredError(setting[0]))
		}
	}
	for _, setting := range [][2]string{{"HTTP_PORT", c.HTTPPort}, {"DB_PORT", c.DBPort}} {
		if n, err := strconv.Atoi(setting[1]); err != nil || n < 1 || n > 65535 {
			errList = append(errList, errs.NewValueIsOutOfRangeError(setting[0], setting[1], 1, 65535))
		}
	}
	if c.OverdueBatchSize < 1 || c.OverdueBatchSize > 1000 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("OVERDUE_BATCH_SIZE", c.OverdueBatchSize, 1, 1000))
	}
	return errors.Join(errList...)
}

// DatabaseURL is the postgres:// URL used by GORM and golang-migrate.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func splitList(raw string) []string {
	var items []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
