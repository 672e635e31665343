package config

import (
	"os"
	"strings"
	"time"

	platformstrings "inkwell/pkg/platform/strings"
)

// Server captures process-level configuration so main stays lean.
type Server struct {
	Addr           string
	PostgresDSN    string
	RedisURL       string
	JWTSigningKey  string
	AdminEmails    []string
	PublicCacheTTL time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("INKWELL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	cacheTTL := 30 * time.Second
	if raw := os.Getenv("PUBLIC_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cacheTTL = d
		}
	}

	return Server{
		Addr:           addr,
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSigningKey:  jwtSigningKey,
		AdminEmails:    splitList(os.Getenv("ADMIN_EMAILS")),
		PublicCacheTTL: cacheTTL,
	}
}

// splitList parses a comma-separated list, dropping blanks and
// case-insensitive duplicates.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return platformstrings.DedupeAndTrimLower(strings.Split(raw, ","))
}
