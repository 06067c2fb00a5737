package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App        AppConfig
	Backend    BackendConfig
	Identity   IdentityConfig
	Cloudinary CloudinaryConfig
	CORS       CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AURELIA_APP_ENV" required:"true"`
	Port         string `envconfig:"AURELIA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AURELIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AURELIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the remote jewelry backend.
type BackendConfig struct {
	BaseURL        string        `envconfig:"AURELIA_BACKEND_BASE_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"AURELIA_BACKEND_TIMEOUT" default:"10s"`
}

func (b BackendConfig) validate() error {
	if !strings.HasPrefix(b.BaseURL, "http://") && !strings.HasPrefix(b.BaseURL, "https://") {
		return fmt.Errorf("AURELIA_BACKEND_BASE_URL must be an absolute http(s) URL")
	}
	if b.RequestTimeout <= 0 {
		return fmt.Errorf("AURELIA_BACKEND_TIMEOUT must be positive")
	}
	return nil
}

// IdentityConfig describes the external identity provider.
type IdentityConfig struct {
	Domain       string        `envconfig:"AURELIA_IDENTITY_DOMAIN"`
	ClientID     string        `envconfig:"AURELIA_IDENTITY_CLIENT_ID"`
	ClientSecret string        `envconfig:"AURELIA_IDENTITY_CLIENT_SECRET"`
	Audience     string        `envconfig:"AURELIA_IDENTITY_AUDIENCE"`
	TokenLeeway  time.Duration `envconfig:"AURELIA_IDENTITY_TOKEN_LEEWAY" default:"30s"`
}

// CloudinaryConfig carries the media upload credentials.
type CloudinaryConfig struct {
	CloudName string `envconfig:"AURELIA_CLOUDINARY_CLOUD_NAME"`
	APIKey    string `envconfig:"AURELIA_CLOUDINARY_API_KEY"`
	APISecret string `envconfig:"AURELIA_CLOUDINARY_API_SECRET"`
	MaxMB     int    `envconfig:"AURELIA_CLOUDINARY_MAX_MB" default:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"AURELIA_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}
