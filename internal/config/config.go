package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            string
	UpstreamTimeout time.Duration

	// Base URL of the REST backend every page talks to.
	BackendURL string
	// Path fragments sent without a bearer token.
	PublicPaths []string

	// Browser storage: "memory" or "redis".
	StorageBackend string
	RedisURL       string
	StorageTTL     time.Duration
	CookieSecure   bool

	CheckTokenExpiry bool
	TracingEnabled   bool

	CORSAllowOrigins []string
}

// Load reads the optional YAML file named by CONFIG_FILE, then lets
// environment variables override it.
func Load() (Config, error) {
	file := map[string]string{}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	get := func(k, def string) string {
		return getenv(k, lookup(file, k, def))
	}

	cfg := Config{
		Port:            get("PORT", "8080"),
		UpstreamTimeout: parseDuration(get("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),

		BackendURL:  strings.TrimRight(get("BACKEND_URL", "http://localhost:8081"), "/"),
		PublicPaths: splitCSV(get("PUBLIC_PATHS", "/auth/login,/auth/register,/auth/forgot-password,/auth/check-login,/api/v1/products")),

		StorageBackend: strings.ToLower(get("STORAGE_BACKEND", "memory")),
		RedisURL:       get("REDIS_URL", "redis://localhost:6379/0"),
		StorageTTL:     parseDuration(get("STORAGE_TTL", "720h"), 30*24*time.Hour),
		CookieSecure:   parseBool(get("COOKIE_SECURE", "false")),

		CheckTokenExpiry: parseBool(get("CHECK_TOKEN_EXPIRY", "false")),
		TracingEnabled:   parseBool(get("TRACING_ENABLED", "false")),

		CORSAllowOrigins: splitCSV(get("CORS_ALLOW_ORIGINS", "*")),
	}

	switch cfg.StorageBackend {
	case "memory", "redis":
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be memory or redis, got %q", cfg.StorageBackend)
	}
	return cfg, nil
}

// lookup accepts both PORT and port style keys in the YAML file.
func lookup(file map[string]string, k, def string) string {
	for _, key := range []string{k, strings.ToLower(k)} {
		if v, ok := file[key]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return def
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}
