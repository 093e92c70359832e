// Package config loads runtime settings from defaults, an optional YAML
// file, CMS_-prefixed environment variables and command-line flags, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	jwtmw "cms_backend/internal/platform/jwt"
)

// EnvPrefix is the prefix of environment variables read by Load.
// Nested keys use a double underscore: CMS_STORE__MONGO_URL.
const EnvPrefix = "CMS_"

// DevelopmentSecret is the default signing key. It is rejected outside development.
const DevelopmentSecret = "dev-only-secret-key-change-in-production-min-32-chars"

const minSecretLength = 32

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds every runtime setting.
type Config struct {
	App     AppConfig     `koanf:"app"`
	HTTP    HTTPConfig    `koanf:"http"`
	Store   StoreConfig   `koanf:"store"`
	Auth    AuthConfig    `koanf:"auth"`
	Redis   RedisConfig   `koanf:"redis"`
	Cache   CacheConfig   `koanf:"cache"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

type AppConfig struct {
	Name    string `koanf:"name"`
	Service string `koanf:"service"`
	Version string `koanf:"version"`
	Env     string `koanf:"env"`
}

type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	APIPrefix       string        `koanf:"api_prefix"`
	AllowedOrigins  []string      `koanf:"allowed_origins"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// AuthRateLimit caps register and login calls per client IP per minute. Zero disables it.
	AuthRateLimit int `koanf:"auth_rate_limit"`
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is believed.
	// Empty means the client IP is always the peer address.
	TrustedProxies []string `koanf:"trusted_proxies"`
}

type StoreConfig struct {
	Driver         string        `koanf:"driver"`
	MongoURL       string        `koanf:"mongo_url"`
	MongoDB        string        `koanf:"mongo_db"`
	DSN            string        `koanf:"dsn"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

type AuthConfig struct {
	SecretKey      string        `koanf:"secret_key"`
	Algorithm      string        `koanf:"algorithm"`
	AccessTokenTTL time.Duration `koanf:"access_token_ttl"`
	BcryptCost     int           `koanf:"bcrypt_cost"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// defaults are loaded first and are suitable for local development only.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":               "CMS API",
		"app.service":            "cms-api",
		"app.version":            "1.0.0",
		"app.env":                "development",
		"http.addr":              ":8080",
		"http.api_prefix":        "/api/v1",
		"http.allowed_origins":   "http://localhost:3000,http://localhost:5173",
		"http.request_timeout":   "10s",
		"http.shutdown_timeout":  "10s",
		"http.auth_rate_limit":   20,
		"http.trusted_proxies":   "",
		"store.driver":           DriverMongo,
		"store.mongo_url":        "mongodb://localhost:27017",
		"store.mongo_db":         "cms",
		"store.dsn":              "cms.db",
		"store.connect_timeout":  "30s",
		"auth.secret_key":        DevelopmentSecret,
		"auth.algorithm":         jwtmw.DefaultAlgorithm,
		"auth.access_token_ttl":  "30m",
		"auth.bcrypt_cost":       10,
		"redis.addr":             "",
		"redis.password":         "",
		"redis.db":               0,
		"cache.ttl":              "5m",
		"log.level":              "info",
		"log.format":             "json",
		"metrics.enabled":        true,
	}
}

// Options selects the optional configuration sources.
type Options struct {
	// File is a YAML file path; empty skips the file layer.
	File string
	// Flags are applied last; only flags explicitly set override other layers.
	Flags *pflag.FlagSet
	// Environ replaces os.Environ for the env layer, mainly in tests.
	Environ func() []string
}

// Load builds a validated Config.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", opts.File, err)
		}
	}
	if err := loadEnv(k, opts.Environ); err != nil {
		return nil, err
	}
	if opts.Flags != nil {
		if err := k.Load(posflag.Provider(opts.Flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func loadEnv(k *koanf.Koanf, environ func() []string) error {
	if environ == nil {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return fmt.Errorf("load environment: %w", err)
		}
		return nil
	}
	vals := make(map[string]interface{})
	for _, kv := range environ() {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		vals[envKey(name)] = val
	}
	if err := k.Load(confmap.Provider(vals, "."), nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.HTTP.APIPrefix = "/" + strings.Trim(c.HTTP.APIPrefix, "/")
	c.HTTP.AllowedOrigins = compact(c.HTTP.AllowedOrigins)
	c.HTTP.TrustedProxies = compact(c.HTTP.TrustedProxies)
}

// compact trims entries and drops empty ones. An empty result is nil.
func compact(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func validProxy(s string) bool {
	if strings.Contains(s, "/") {
		_, _, err := net.ParseCIDR(s)
		return err == nil
	}
	return net.ParseIP(s) != nil
}

// IsDevelopment reports whether the insecure development defaults are allowed.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURL == "" || c.Store.MongoDB == "" {
			errs = append(errs, errors.New("store.mongo_url and store.mongo_db are required for the mongo driver"))
		}
	case DriverSQLite, DriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, fmt.Errorf("store.dsn is required for the %s driver", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported store.driver %q", c.Store.Driver))
	}

	if _, err := jwtmw.ParseAlgorithm(c.Auth.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("auth.algorithm: %w", err))
	}
	if c.HTTP.AuthRateLimit < 0 {
		errs = append(errs, errors.New("http.auth_rate_limit must not be negative"))
	}
	for _, p := range c.HTTP.TrustedProxies {
		if !validProxy(p) {
			errs = append(errs, fmt.Errorf("http.trusted_proxies: %q is neither an IP nor a CIDR", p))
		}
	}
	if c.Auth.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("auth.access_token_ttl must be positive"))
	}
	if !c.IsDevelopment() {
		if c.Auth.SecretKey == DevelopmentSecret {
			errs = append(errs, errors.New("auth.secret_key must be changed outside development"))
		}
		if len(c.Auth.SecretKey) < minSecretLength {
			errs = append(errs, fmt.Errorf("auth.secret_key must be at least %d bytes", minSecretLength))
		}
	}
	if c.Auth.SecretKey == "" {
		errs = append(errs, errors.New("auth.secret_key is required"))
	}

	return errors.Join(errs...)
}
