package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DevSecret is the token signing secret shipped in the example config.
// It must never reach a real deployment; main logs a loud warning when
// it is still in use.
const DevSecret = "dev-secret-change-me"

// Config holds all process-wide configuration. Built once at startup and
// passed into each component; nothing reads viper after Load returns.
type Config struct {
	Server struct {
		Port string
	}
	DB struct {
		Path string
	}
	Auth struct {
		Secret   string
		TokenTTL time.Duration
	}
	Log struct {
		Level string
		File  string
	}
	Films struct {
		// AnonymousListAll keeps the legacy behavior of returning every
		// user's films on an unauthenticated list call. See DESIGN.md.
		AnonymousListAll bool
	}
	Gateway struct {
		Port            string
		FilmsServiceURL string
		StaticDir       string
	}
}

// Load reads configuration from an optional configs/config.yml and the
// environment (prefix FILMSHELF, dots replaced by underscores, e.g.
// FILMSHELF_AUTH_SECRET).
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FILMSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "3001")
	v.SetDefault("db.path", "films.db")
	v.SetDefault("auth.secret", DevSecret)
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("films.anonymous_list_all", true)
	v.SetDefault("gateway.port", "3000")
	v.SetDefault("gateway.films_service_url", "http://localhost:3001")
	v.SetDefault("gateway.static_dir", "public")

	v.AddConfigPath("configs")
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
		// no config file is fine; env and defaults apply
	}

	var cfg Config
	cfg.Server.Port = v.GetString("server.port")
	cfg.DB.Path = v.GetString("db.path")
	cfg.Auth.Secret = v.GetString("auth.secret")
	cfg.Auth.TokenTTL = v.GetDuration("auth.token_ttl")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.File = v.GetString("log.file")
	cfg.Films.AnonymousListAll = v.GetBool("films.anonymous_list_all")
	cfg.Gateway.Port = v.GetString("gateway.port")
	cfg.Gateway.FilmsServiceURL = v.GetString("gateway.films_service_url")
	cfg.Gateway.StaticDir = v.GetString("gateway.static_dir")

	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return Config{}, errors.New("auth.secret must not be empty")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return Config{}, errors.New("auth.token_ttl must be positive")
	}
	return cfg, nil
}

// UsingDevSecret reports whether the process still runs on the shipped
// development signing secret.
func (c Config) UsingDevSecret() bool {
	return c.Auth.Secret == DevSecret
}
