package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned by Validate when the heartbeat API key is absent.
var ErrMissingAPIKey = errors.New("API_KEY environment variable not set")

// DefaultMarkerFreshness is how long a completed expiry check suppresses the next one.
const DefaultMarkerFreshness = 23 * time.Hour

// Heartbeat captures the healthchecks-style management and ping endpoints.
type Heartbeat struct {
	APIURL      string
	APIKey      string
	PingURL     string
	Timezone    string
	APITimeout  time.Duration
	PingTimeout time.Duration
}

// Registrar captures the optional GoDaddy fallback credentials.
type Registrar struct {
	URL     string
	Key     string
	Secret  string
	Timeout time.Duration
}

// Enabled reports whether both credentials are present.
func (r Registrar) Enabled() bool {
	return r.Key != "" && r.Secret != ""
}

// Whois configures the local whois executable.
type Whois struct {
	Binary      string
	Timeout     time.Duration
	MinInterval time.Duration
}

// Markers configures the expiry freshness cache.
type Markers struct {
	Backend   string // "file" or "redis"
	Dir       string
	Freshness time.Duration
}

// RedisConfig mirrors the go-redis pool knobs used by the redis marker backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Config is the process configuration, built once in main and passed to constructors.
type Config struct {
	DomainFile     string
	LogFile        string
	Debug          bool
	StatusTimeout  time.Duration
	PushgatewayURL string
	DatabaseURL    string

	Heartbeat Heartbeat
	Registrar Registrar
	Whois     Whois
	Markers   Markers
	Redis     RedisConfig
}

// Load reads an optional dotenv file and then the environment.
// A missing env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() (Config, error) {
	var errs []error
	duration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return d
	}

	cfg := Config{
		DomainFile:     getenv("DOMAIN_FILE", "domains.txt"),
		LogFile:        os.Getenv("LOG_FILE"),
		Debug:          os.Getenv("DEBUG") == "true",
		StatusTimeout:  duration("STATUS_TIMEOUT", 10*time.Second),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Heartbeat: Heartbeat{
			APIURL:      getenv("API_URL", "https://healthchecks.io/api/v3/"),
			APIKey:      os.Getenv("API_KEY"),
			PingURL:     getenv("BASE_URL", "https://hc-ping.com"),
			Timezone:    getenv("STATUS_TZ", "Europe/Istanbul"),
			APITimeout:  duration("API_TIMEOUT", 15*time.Second),
			PingTimeout: duration("PING_TIMEOUT", 10*time.Second),
		},
		Registrar: Registrar{
			URL:     getenv("GODADDY_API_URL", "https://api.ote-godaddy.com/"),
			Key:     os.Getenv("GODADDY_API_KEY"),
			Secret:  os.Getenv("GODADDY_API_SECRET"),
			Timeout: duration("GODADDY_TIMEOUT", 15*time.Second),
		},
		Whois: Whois{
			Binary:      getenv("WHOIS_BIN", "whois"),
			Timeout:     duration("WHOIS_TIMEOUT", 30*time.Second),
			MinInterval: duration("WHOIS_MIN_INTERVAL", 0),
		},
		Markers: Markers{
			Backend:   getenv("MARKER_BACKEND", "file"),
			Dir:       getenv("MARKER_DIR", "/tmp/domain-hc-markers"),
			Freshness: duration("MARKER_FRESHNESS", DefaultMarkerFreshness),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     4,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
	return cfg, errors.Join(errs...)
}

// Validate checks the settings the process cannot run without. Warnings for
// optional features are returned separately so the caller decides how to log them.
func (c Config) Validate() (warnings []string, err error) {
	if c.Heartbeat.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if !strings.HasPrefix(c.Heartbeat.PingURL, "http://") && !strings.HasPrefix(c.Heartbeat.PingURL, "https://") {
		return nil, fmt.Errorf("invalid BASE_URL %q", c.Heartbeat.PingURL)
	}
	switch c.Markers.Backend {
	case "file":
	case "redis":
		if c.Redis.URL == "" {
			return nil, errors.New("MARKER_BACKEND=redis requires REDIS_URL")
		}
	default:
		return nil, fmt.Errorf("unknown MARKER_BACKEND %q", c.Markers.Backend)
	}
	if c.Markers.Freshness <= 0 {
		return nil, errors.New("MARKER_FRESHNESS must be positive")
	}
	if !c.Registrar.Enabled() {
		warnings = append(warnings, "GODADDY_API_KEY or GODADDY_API_SECRET not set, GoDaddy fallback is disabled")
	}
	return warnings, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
