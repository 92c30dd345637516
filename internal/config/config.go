// Package config loads service settings from defaults, an optional config
// file, a .env file and STOREFRONT_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Port            int           `mapstructure:"port"`
	AppEnv          string        `mapstructure:"app_env"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Carousel  CarouselConfig  `mapstructure:"carousel"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
	Store  string        `mapstructure:"store"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CarouselConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// IsProduction reports whether the service runs outside development.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout", 5*time.Second)

	v.SetDefault("session.secret", "dev-session-secret")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.store", StoreMemory)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("carousel.interval", 3*time.Second)

	v.SetDefault("rate_limit.rps", 10.0)
	v.SetDefault("rate_limit.burst", 20)
}

// Load reads the configuration. configFile may be empty, in which case a
// storefront.{yaml,json,toml} in the working directory is used when present.
func Load(configFile string) (Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("storefront")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("session.store must be %q or %q, got %q", StoreMemory, StoreRedis, c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Carousel.Interval <= 0 {
		return errors.New("carousel.interval must be positive")
	}
	if c.IsProduction() && c.Session.Secret == "dev-session-secret" {
		return errors.New("session.secret must be set in production")
	}
	return nil
}
