package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
)

const (
	defaultDataDir     = "data"
	defaultPrefix      = "!"
	defaultAPIAddr     = ":3000"
	defaultLockTimeout = time.Second
)

type Config struct {
	Token       string
	Environment string
	SentryDSN   string
	DatabaseURL string

	DataDir     string
	LockTimeout time.Duration

	Prefix    string
	APIAddr   string
	DevGuilds []snowflake.ID
}

// Load reads the configuration from the environment. A .env file in the working
// directory is applied first without overriding variables that are already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Token:       os.Getenv("TAGBOT_TOKEN"),
		Environment: os.Getenv("TAGBOT_ENVIRONMENT"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DataDir:     getEnv("TAGBOT_DATA_DIR", defaultDataDir),
		Prefix:      getEnv("TAGBOT_PREFIX", defaultPrefix),
		LockTimeout: defaultLockTimeout,
	}
	cfg.APIAddr = defaultAPIAddr
	if addr, ok := os.LookupEnv("TAGBOT_API_ADDR"); ok {
		cfg.APIAddr = addr
	}
	if raw := os.Getenv("TAGBOT_LOCK_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TAGBOT_LOCK_TIMEOUT: %w", err)
		}
		cfg.LockTimeout = timeout
	}
	guilds, err := parseGuilds(os.Getenv("TAGBOT_DEV_GUILDS"))
	if err != nil {
		return nil, err
	}
	cfg.DevGuilds = guilds
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "PROD"
}

func (c *Config) TagsPath() string {
	return filepath.Join(c.DataDir, "tags.db")
}

func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "guild_settings", "log_channels.db")
}

func parseGuilds(raw string) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	for field := range strings.SplitSeq(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := snowflake.Parse(field)
		if err != nil {
			return nil, fmt.Errorf("invalid guild id %q in TAGBOT_DEV_GUILDS: %w", field, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
