package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the valuation web client.
// It includes the environment, server ports, the remote predict endpoint,
// geocoder settings, and the optional database configuration.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the web application server.
// - MonitorPort: The port for the health/metrics monitoring server.
// - PredictURL: The URL of the remote valuation endpoint.
// - RequestTimeout: The timeout applied to upstream HTTP requests.
// - HistoryLimit: How many recent valuations the form page shows.
// - Geocoder: Settings for the coordinate lookup provider.
// - Database: Configuration for the optional PostgreSQL history store.
type Config struct {
	Env            string         // Env is the current environment: local, development, production.
	Port           int            // Port is the web application server port.
	MonitorPort    int            // MonitorPort is the monitoring server port.
	PredictURL     string         // PredictURL is the remote valuation endpoint.
	RequestTimeout time.Duration  // RequestTimeout bounds upstream HTTP requests.
	HistoryLimit   int            // HistoryLimit caps recent valuations on the form page.
	Geocoder       GeocoderConfig // Geocoder holds coordinate lookup settings.
	Database       PostgresConfig // Database holds the postgres configuration.
}

// GeocoderConfig holds the settings for the coordinate lookup provider.
type GeocoderConfig struct {
	ProviderType string // ProviderType specifies which geocoding provider to use.
	APIKey       string // APIKey for accessing external services (required for Google).
	RateLimit    int    // RateLimit is the allowed requests per second to the provider.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
// An empty Host disables the valuation history feature.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// Enabled reports whether a database host was configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// DefaultPredictURL is the valuation endpoint used when none is configured.
const DefaultPredictURL = "https://admon-software.onrender.com/predict"

// MustLoad loads the configuration from environment variables and returns a Config struct.
// It panics when a numeric or duration value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("AVALUO_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for application server from configuration")
	}

	monitorPort, err := strconv.Atoi(setDefaultEnv("AVALUO_MONITOR_PORT", "9090"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	timeout, err := time.ParseDuration(setDefaultEnv("AVALUO_REQUEST_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse request timeout from configuration")
	}

	historyLimit, err := strconv.Atoi(setDefaultEnv("AVALUO_HISTORY_LIMIT", "10"))
	if err != nil {
		panic("failed to parse history limit from configuration, must be an integer")
	}

	rateLimit, err := strconv.Atoi(setDefaultEnv("AVALUO_GEOCODER_RATE_LIMIT", "1"))
	if err != nil {
		panic("failed to parse geocoder rate limit from configuration, must be an integer")
	}

	return &Config{
		Env:            setDefaultEnv("AVALUO_ENV", "production"),
		Port:           port,
		MonitorPort:    monitorPort,
		PredictURL:     setDefaultEnv("AVALUO_PREDICT_URL", DefaultPredictURL),
		RequestTimeout: timeout,
		HistoryLimit:   historyLimit,
		Geocoder: GeocoderConfig{
			ProviderType: setDefaultEnv("AVALUO_GEOCODER_TYPE", "nominatim"),
			APIKey:       os.Getenv("AVALUO_GEOCODER_KEY"),
			RateLimit:    rateLimit,
		},
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     setDefaultEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
