package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile        = ".env"
	defaultPort           = "8080"
	defaultReadTimeout    = 15 * time.Second
	defaultWriteTimeout   = 30 * time.Second
	defaultIdleTimeout    = 120 * time.Second
	defaultAppMode        = ModeProduction
	defaultLogLevel       = "info"
	defaultRedisAddr      = "localhost:6379"
	defaultRedisPrefix    = "sess:"
	defaultRedisTimeout   = 2 * time.Second
	defaultSessionCookie  = "PHPSESSID"
	defaultSessionHeader  = "X-Session-ID"
	defaultCatalogCache   = 1024
	defaultCatalogTTL     = 5 * time.Minute
	defaultShutdownWindow = 10 * time.Second
)

// Application modes mirror the storefront deployment modes.
const (
	ModeDefault    = "default"
	ModeDeveloper  = "developer"
	ModeProduction = "production"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	App           AppConfig
	Server        ServerConfig
	Firestore     FirestoreConfig
	Redis         RedisConfig
	Session       SessionConfig
	Catalog       CatalogConfig
	Layout        LayoutConfig
	Observability ObservabilityConfig
}

// AppConfig holds process-wide behaviour switches.
type AppConfig struct {
	Mode     string
	LogLevel string
}

// IsProduction reports whether configuration errors should be logged instead of surfaced.
func (c AppConfig) IsProduction() bool {
	return c.Mode == ModeProduction
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// FirestoreConfig stores database parameters.
type FirestoreConfig struct {
	ProjectID    string
	EmulatorHost string
}

// RedisConfig points at the storefront session store.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	SessionPrefix string
	DialTimeout   time.Duration
}

// SessionConfig names where the storefront session id is read from.
type SessionConfig struct {
	Cookie string
	Header string
}

// CatalogConfig tunes the read-through category name cache. A zero size disables caching.
type CatalogConfig struct {
	CacheSize int
	CacheTTL  time.Duration
}

// LayoutConfig locates the section layout file. Empty uses the embedded default.
type LayoutConfig struct {
	File string
}

// ObservabilityConfig carries tracing settings.
type ObservabilityConfig struct {
	TraceProjectID string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the .env file and environment variables,
// in increasing order of precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	cfg := Config{
		App: AppConfig{
			Mode:     strings.ToLower(stringWithDefault(lookup, "META_APP_MODE", defaultAppMode)),
			LogLevel: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
		},
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, "META_SERVER_PORT", defaultPort),
			ReadTimeout:     durationWithDefault(lookup, "META_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "META_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "META_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "META_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownWindow),
		},
		Firestore: FirestoreConfig{
			ProjectID:    stringWithDefault(lookup, "META_FIRESTORE_PROJECT_ID", ""),
			EmulatorHost: stringWithDefault(lookup, "META_FIRESTORE_EMULATOR_HOST", ""),
		},
		Redis: RedisConfig{
			Addr:          stringWithDefault(lookup, "META_REDIS_ADDR", defaultRedisAddr),
			Password:      stringWithDefault(lookup, "META_REDIS_PASSWORD", ""),
			DB:            intWithDefault(lookup, "META_REDIS_DB", 0),
			SessionPrefix: stringWithDefault(lookup, "META_REDIS_SESSION_PREFIX", defaultRedisPrefix),
			DialTimeout:   durationWithDefault(lookup, "META_REDIS_DIAL_TIMEOUT", defaultRedisTimeout),
		},
		Session: SessionConfig{
			Cookie: stringWithDefault(lookup, "META_SESSION_COOKIE", defaultSessionCookie),
			Header: stringWithDefault(lookup, "META_SESSION_HEADER", defaultSessionHeader),
		},
		Catalog: CatalogConfig{
			CacheSize: intWithDefault(lookup, "META_CATALOG_CACHE_SIZE", defaultCatalogCache),
			CacheTTL:  durationWithDefault(lookup, "META_CATALOG_CACHE_TTL", defaultCatalogTTL),
		},
		Layout: LayoutConfig{
			File: stringWithDefault(lookup, "META_LAYOUT_FILE", ""),
		},
		Observability: ObservabilityConfig{
			TraceProjectID: stringWithDefault(lookup, "META_TRACE_PROJECT_ID", ""),
		},
	}

	if cfg.Observability.TraceProjectID == "" {
		cfg.Observability.TraceProjectID = cfg.Firestore.ProjectID
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	switch cfg.App.Mode {
	case ModeDefault, ModeDeveloper, ModeProduction:
	default:
		missing = append(missing, "App.Mode")
	}
	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if cfg.Firestore.ProjectID == "" {
		missing = append(missing, "Firestore.ProjectID")
	}
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		missing = append(missing, "Redis.Addr")
	}
	if cfg.Redis.DB < 0 {
		missing = append(missing, "Redis.DB")
	}
	if strings.TrimSpace(cfg.Session.Cookie) == "" && strings.TrimSpace(cfg.Session.Header) == "" {
		missing = append(missing, "Session.Cookie")
	}
	if cfg.Catalog.CacheSize < 0 {
		missing = append(missing, "Catalog.CacheSize")
	}
	if cfg.Catalog.CacheSize > 0 && cfg.Catalog.CacheTTL <= 0 {
		missing = append(missing, "Catalog.CacheTTL")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}
