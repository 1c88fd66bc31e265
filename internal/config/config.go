package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port string }

type BackendCfg struct {
	BaseURL     string
	Token       string
	TimeoutSec  int
	ReadRetries int
	HealthPath  string
	ReadyWait   time.Duration
}

type ConsoleCfg struct {
	DefaultPageLimit int
	SessionIdleTTL   time.Duration
	ScreensFile      string
}

type DBCfg struct{ DSN string }

type RedisCfg struct{ Addr, Channel string }

type SecurityCfg struct {
	AdminToken string // guards every console route
}

type LogCfg struct{ Level, Format string }

type Cfg struct {
	App     AppCfg
	Backend BackendCfg
	Console ConsoleCfg
	DB      DBCfg
	Redis   RedisCfg
	Sec     SecurityCfg
	Log     LogCfg
}

// Load reads .env (if present) and the environment. It exits on invalid settings.
func Load() Cfg {
	// 1) Load .env into process env (if file exists); real env wins
	_ = godotenv.Load(".env")

	// 2) Read from env via viper
	cfg, err := FromViper(viper.New())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// FromViper builds the configuration from v with defaults applied.
func FromViper(v *viper.Viper) (Cfg, error) {
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("BACKEND_TIMEOUT_SEC", 30)
	v.SetDefault("BACKEND_READ_RETRIES", 2)
	v.SetDefault("BACKEND_HEALTH_PATH", "/health")
	v.SetDefault("BACKEND_READY_WAIT", "30s")
	v.SetDefault("DEFAULT_PAGE_LIMIT", 10)
	v.SetDefault("SESSION_IDLE_TTL", "30m")
	v.SetDefault("NOTIFY_CHANNEL", "console:toasts")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := Cfg{
		App: AppCfg{
			Env:  v.GetString("APP_ENV"),
			Port: v.GetString("APP_PORT"),
		},
		Backend: BackendCfg{
			BaseURL:     strings.TrimSpace(v.GetString("BACKEND_BASE_URL")),
			Token:       strings.TrimSpace(v.GetString("BACKEND_TOKEN")),
			TimeoutSec:  v.GetInt("BACKEND_TIMEOUT_SEC"),
			ReadRetries: v.GetInt("BACKEND_READ_RETRIES"),
			HealthPath:  v.GetString("BACKEND_HEALTH_PATH"),
			ReadyWait:   v.GetDuration("BACKEND_READY_WAIT"),
		},
		Console: ConsoleCfg{
			DefaultPageLimit: v.GetInt("DEFAULT_PAGE_LIMIT"),
			SessionIdleTTL:   v.GetDuration("SESSION_IDLE_TTL"),
			ScreensFile:      v.GetString("SCREENS_FILE"),
		},
		DB:    DBCfg{DSN: v.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: v.GetString("REDIS_ADDR"), Channel: v.GetString("NOTIFY_CHANNEL")},
		Sec:   SecurityCfg{AdminToken: strings.TrimSpace(v.GetString("ADMIN_TOKEN"))},
		Log:   LogCfg{Level: v.GetString("LOG_LEVEL"), Format: v.GetString("LOG_FORMAT")},
	}

	// 3) Fail fast on required settings
	if cfg.Backend.BaseURL == "" {
		return Cfg{}, errors.New("BACKEND_BASE_URL is required")
	}
	if cfg.Console.DefaultPageLimit < 1 {
		return Cfg{}, errors.New("DEFAULT_PAGE_LIMIT must be at least 1")
	}
	if cfg.Console.SessionIdleTTL <= 0 {
		return Cfg{}, errors.New("SESSION_IDLE_TTL must be positive")
	}
	if cfg.Sec.AdminToken == "" {
		log.Warn().Msg("ADMIN_TOKEN is empty; console routes will reject every request")
	}
	return cfg, nil
}
