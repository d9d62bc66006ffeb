package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerAddr string `mapstructure:"SERVER_ADDR"`

	DatabaseDriver          string        `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL             string        `mapstructure:"DATABASE_URL"`
	DatabaseMaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	DatabaseMaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	DatabaseConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`

	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure bool          `mapstructure:"COOKIE_SECURE"`

	// An empty RedisAddr keeps sessions in process memory.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`

	SnowflakeNode int64 `mapstructure:"SNOWFLAKE_NODE"`

	// RateLimitRPS <= 0 disables rate limiting.
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

var defaults = map[string]interface{}{
	"SERVER_ADDR":                ":8080",
	"DATABASE_DRIVER":            "postgres",
	"DATABASE_URL":               "host=localhost user=postgres password=postgres dbname=buddylist port=5432 sslmode=disable",
	"DATABASE_MAX_IDLE_CONNS":    10,
	"DATABASE_MAX_OPEN_CONNS":    100,
	"DATABASE_CONN_MAX_LIFETIME": "1h",
	"JWT_SECRET":                 "",
	"SESSION_TTL":                "720h",
	"COOKIE_SECURE":              false,
	"REDIS_ADDR":                 "",
	"REDIS_PASSWORD":             "",
	"REDIS_DB":                   0,
	"LOG_LEVEL":                  "info",
	"LOG_PRETTY":                 false,
	"SNOWFLAKE_NODE":             1,
	"RATE_LIMIT_RPS":             20,
	"RATE_LIMIT_BURST":           40,
}

// LoadConfig loads the configuration from a .env file in the given
// directories (the working directory when none are given) and from
// environment variables, which take precedence.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	return &cfg, nil
}
