package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/veldtlabs/agencydesk-backend/internal/platform/envutil"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	Environment string
	Version     string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AllowedOrigins []string
	MetricsAddr    string
	RedisAddr      string
}

// fileConfig is the optional CONFIG_FILE overlay. Only set fields
// override what the environment provided.
type fileConfig struct {
	Port            string   `yaml:"port"`
	Environment     string   `yaml:"environment"`
	Version         string   `yaml:"version"`
	JWTSecretKey    string   `yaml:"jwt_secret_key"`
	AccessTokenTTL  int      `yaml:"access_token_ttl"`
	RefreshTokenTTL int      `yaml:"refresh_token_ttl"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	MetricsAddr     string   `yaml:"metrics_addr"`
	RedisAddr       string   `yaml:"redis_addr"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:            envutil.GetEnv("PORT", "8080", log),
		Environment:     envutil.GetEnv("APP_ENV", "development", log),
		Version:         envutil.GetEnv("APP_VERSION", "dev", log),
		JWTSecretKey:    envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		RefreshTokenTTL: time.Duration(envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second,
		MetricsAddr:     envutil.GetEnv("METRICS_ADDR", ":9100", log),
		RedisAddr:       envutil.GetEnv("REDIS_ADDR", "", log),
	}
	if origins := envutil.GetEnv("ALLOWED_ORIGINS", "", log); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if fc.Version != "" {
		cfg.Version = fc.Version
	}
	if fc.JWTSecretKey != "" {
		cfg.JWTSecretKey = fc.JWTSecretKey
	}
	if fc.AccessTokenTTL > 0 {
		cfg.AccessTokenTTL = time.Duration(fc.AccessTokenTTL) * time.Second
	}
	if fc.RefreshTokenTTL > 0 {
		cfg.RefreshTokenTTL = time.Duration(fc.RefreshTokenTTL) * time.Second
	}
	if len(fc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.MetricsAddr != "" {
		cfg.MetricsAddr = fc.MetricsAddr
	}
	if fc.RedisAddr != "" {
		cfg.RedisAddr = fc.RedisAddr
	}
	return cfg, nil
}
