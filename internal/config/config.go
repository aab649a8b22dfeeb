package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	APIBaseURL      string        // remote catalog/status endpoint root
	Handle          string        // user handle whose submissions are synced
	TagFile         string        // optional YAML tag registry (empty = built-in list)
	RefreshInterval time.Duration // catalog refresh interval (default: 24h)
	SyncInterval    time.Duration // submission sync interval (default: 1h)

	// Redis
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts

	CORSOrigins []string // allowed origins for the browser client (empty = any)
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		ListenPort:      getenv("CFDESK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CFDESK_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("CFDESK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CFDESK_PRETTY_LOG", true),

		APIBaseURL:      getenv("CFDESK_API_BASE_URL", "https://codeforces.com/api"),
		Handle:          requireEnv("CFDESK_HANDLE"),
		TagFile:         getenv("CFDESK_TAG_FILE", ""),
		RefreshInterval: mustDuration("CFDESK_REFRESH_INTERVAL", 24*time.Hour),
		SyncInterval:    mustDuration("CFDESK_SYNC_INTERVAL", time.Hour),

		RedisAddr:           requireEnv("CFDESK_REDIS_ADDR"),
		RedisUser:           getenv("CFDESK_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("CFDESK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("CFDESK_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		CORSOrigins: splitAndTrim(getenv("CFDESK_CORS_ORIGINS", "")),
	}
}

// helpers

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("FATAL: required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
