package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env   string
	Port  int
	DBURL string

	// Session token signing. Injected into the token manager and the cookie
	// writer at construction; nothing reads these off the environment later.
	JWTSecret         string
	SessionTTLMinutes int

	AllowedOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	QueueKey      string

	OTLPEndpoint string

	// Bootstrap officer account; without one nobody can ever verify a member.
	OfficerEmail     string
	OfficerPassword  string
	OfficerFirstName string
	OfficerLastName  string
	OfficerMemberID  string
}

func Load() Config {
	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 60),

		AllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		QueueKey:      getEnv("QUEUE_KEY", "memberhub:notifications"),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),

		OfficerEmail:     getEnv("SEED_OFFICER_EMAIL", ""),
		OfficerPassword:  getEnv("SEED_OFFICER_PASSWORD", ""),
		OfficerFirstName: getEnv("SEED_OFFICER_FIRST_NAME", "Club"),
		OfficerLastName:  getEnv("SEED_OFFICER_LAST_NAME", "Officer"),
		OfficerMemberID:  getEnv("SEED_OFFICER_MEMBER_ID", "OFFICER-1"),
	}
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "memberhub")
	pass := getEnv("DB_PASSWORD", "memberhub")
	name := getEnv("DB_NAME", "memberhub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}

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
