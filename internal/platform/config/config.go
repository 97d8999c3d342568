package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config captures everything the bot process reads from its environment.
type Config struct {
	// BotToken authenticates against the Telegram Bot API. Required; there
	// is deliberately no default.
	BotToken string

	// Addr is the listen address for the operational HTTP surface
	// (health, metrics).
	Addr string

	// PollTimeout bounds each Telegram long-poll request.
	PollTimeout time.Duration

	// ReceiptScanDelay is how long the simulated receipt analyzer pretends
	// to work before returning its canned result.
	ReceiptScanDelay time.Duration

	// ConversationTTL bounds how long an abandoned in-progress claim
	// survives in the Redis-backed store. The in-memory store ignores it.
	ConversationTTL time.Duration

	Redis RedisConfig
}

// RedisConfig configures the optional shared conversation-state backend.
// An empty URL means Redis is not used and state stays process-local.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ErrMissingToken is returned when BOT_TOKEN is absent. Startup must treat
// this as fatal; running with a baked-in token is not an option.
var ErrMissingToken = errors.New("BOT_TOKEN is not set")

// FromEnv builds the process config from environment variables so main
// stays lean.
func FromEnv() (Config, error) {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return Config{}, ErrMissingToken
	}

	addr := os.Getenv("CLAIMBOT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		BotToken:         token,
		Addr:             addr,
		PollTimeout:      envDuration("CLAIMBOT_POLL_TIMEOUT", 30*time.Second),
		ReceiptScanDelay: envDuration("RECEIPT_SCAN_DELAY", 2*time.Second),
		ConversationTTL:  envDuration("CONVERSATION_TTL", 24*time.Hour),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}, nil
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
