package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Click      ClickConfig
	Steam      SteamConfig
	Telegram   TelegramConfig
	Reconciler ReconcilerConfig

	SecretKey  string `env:"APP_SECRET_KEY,default=ChangeMe"`
	AdminToken string `env:"APP_ADMIN_TOKEN,default="`
	LogVerbose bool   `env:"APP_VERBOSE,default=0"`
	LogPretty  bool   `env:"APP_PRETTY,default=0"`
}

type ServerConfig struct {
	Listen       string        `env:"RUN_ADDRESS,default=localhost:8088"`
	TimeoutRead  time.Duration `env:"SERVER_TIMEOUT_READ,default=5s"`
	TimeoutWrite time.Duration `env:"SERVER_TIMEOUT_WRITE,default=10s"`
	TimeoutIdle  time.Duration `env:"SERVER_TIMEOUT_IDLE,default=1m"`
}

type DatabaseConfig struct {
	DSN string `env:"DATABASE_URI,required"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD,default="`
	DB       int    `env:"REDIS_DB,default=0"`
}

// ClickConfig carries the merchant credentials shared with the Click.uz
// gateway. SecretKey feeds the request signature; it is injected here once
// at startup, never read from the environment inside business logic.
type ClickConfig struct {
	ServiceID  string `env:"CLICK_SERVICE_ID,required"`
	SecretKey  string `env:"CLICK_SECRET_KEY,required"`
	MerchantID string `env:"CLICK_MERCHANT_ID,default="`
}

type SteamConfig struct {
	RemoteURL string `env:"STEAM_TRADE_ADDRESS,required"`
	APIKey    string `env:"STEAM_API_KEY,default="`
}

type TelegramConfig struct {
	BotToken  string `env:"BOT_TOKEN,required"`
	APIURL    string `env:"TELEGRAM_API_URL,default=https://api.telegram.org"`
	ChannelID string `env:"TELEGRAM_CHANNEL_ID,default="`
	BotURL    string `env:"TELEGRAM_BOT_URL,default="`
}

// ReconcilerConfig bounds the trade-offer poll. Exhausting MaxAttempts is
// treated the same as an explicit decline.
type ReconcilerConfig struct {
	MaxAttempts int           `env:"RECONCILER_MAX_ATTEMPTS,default=20"`
	BaseDelay   time.Duration `env:"RECONCILER_BASE_DELAY,default=15s"`
	MaxDelay    time.Duration `env:"RECONCILER_MAX_DELAY,default=10m"`
}

// New config constructor
func New() Config {
	return Config{}
}

// Load config from environment and from .env file (if exists) and from flags
func (cfg *Config) Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".env load: %w", err)
	}

	if err := envdecode.StrictDecode(cfg); err != nil {
		return fmt.Errorf("env decode: %w", err)
	}

	pflag.StringVarP(&cfg.Server.Listen, "listen-addr", "a", cfg.Server.Listen, "Server address to listen on")
	pflag.StringVarP(&cfg.Database.DSN, "database-uri", "d", cfg.Database.DSN, "Database URI")
	pflag.StringVarP(&cfg.Steam.RemoteURL, "steam-trade-url", "s", cfg.Steam.RemoteURL, "Steam trade service base URL")
	pflag.StringVarP(&cfg.Redis.Addr, "redis-addr", "r", cfg.Redis.Addr, "Redis address")
	pflag.BoolVarP(&cfg.LogVerbose, "verbose", "v", cfg.LogVerbose, "Verbose output")
	pflag.BoolVarP(&cfg.LogPretty, "pretty", "p", cfg.LogPretty, "Pretty output")
	pflag.Parse()

	return nil
}
