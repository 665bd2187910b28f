package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"starcast/internal/bootstrap/logging"
	"starcast/internal/errs"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Generator GeneratorConfig `mapstructure:"generator"`
	SignData  SignDataConfig  `mapstructure:"signdata"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	PublicURL    string        `mapstructure:"public_url"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type GeneratorConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

type SignDataConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	DailyTTL        time.Duration `mapstructure:"daily_ttl"`
	PersonalizedTTL time.Duration `mapstructure:"personalized_ttl"`
}

type AlertsConfig struct {
	SendGridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromAddress    string `mapstructure:"from_address"`
	Schedule       string `mapstructure:"schedule"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if cfg.Database.DSN == "" {
		return Config{}, errors.New("database.dsn is required")
	}
	if cfg.Cache.DailyTTL <= 0 || cfg.Cache.PersonalizedTTL <= 0 {
		return Config{}, errors.New("cache ttls must be positive")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("server_addr", cfg.Server.Addr),
		slog.String("generator_model", cfg.Generator.Model),
		slog.Bool("generator_configured", cfg.Generator.APIKey != ""),
		slog.Bool("signdata_configured", cfg.SignData.BaseURL != ""),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "starcast")
	v.SetDefault("app.env", "local")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.public_url", "https://starcast.app")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", ".starcast/state/starcast.sqlite")

	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.model", "gpt-4o-mini")
	v.SetDefault("generator.temperature", 0.8)

	v.SetDefault("signdata.base_url", "")
	v.SetDefault("signdata.timeout", 10*time.Second)

	v.SetDefault("cache.daily_ttl", 30*time.Minute)
	v.SetDefault("cache.personalized_ttl", 20*time.Minute)

	v.SetDefault("alerts.from_address", "alerts@starcast.app")
	v.SetDefault("alerts.schedule", "0 0 8 * * 1")
}
