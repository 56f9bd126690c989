package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the backend settings. Values come from an optional YAML file,
// then .env, then the process environment, each overriding the last.
type Config struct {
	Environment string `yaml:"environment"`
	AppName     string `yaml:"app_name"`
	AppVersion  string `yaml:"app_version"`
	Port        string `yaml:"port"`
	Debug       bool   `yaml:"debug"`

	Database DatabaseConfig `yaml:"database"`
	Security SecurityConfig `yaml:"security"`
	Admin    AdminConfig    `yaml:"admin"`
	OIDC     OIDCConfig     `yaml:"oidc"`

	// CORSOrigins is a JSON array of origins kept as text so it can be set
	// from a single environment variable.
	CORSOrigins string `yaml:"cors_origins"`

	DefaultProductImage string `yaml:"default_product_image"`
	DefaultLogoImage    string `yaml:"default_logo_image"`

	// SeedCatalog loads the starter catalog into an empty database.
	SeedCatalog bool `yaml:"seed_catalog"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `yaml:"driver"`
	// URL is a postgres DSN or a sqlite file path.
	URL string `yaml:"url"`
}

type SecurityConfig struct {
	SecretKey                string `yaml:"secret_key"`
	Algorithm                string `yaml:"algorithm"`
	AccessTokenExpireMinutes int    `yaml:"access_token_expire_minutes"`
	// LoginRatePerMinute bounds login attempts per client IP.
	LoginRatePerMinute int `yaml:"login_rate_per_minute"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
}

// OIDCConfig enables identity-provider login for admins when both fields are set.
type OIDCConfig struct {
	Issuer   string `yaml:"issuer"`
	ClientID string `yaml:"client_id"`
}

var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:3001"}

func Default() *Config {
	return &Config{
		Environment: "development",
		AppName:     "SNS Backend API",
		AppVersion:  "1.0.0",
		Port:        "8000",
		Debug:       true,
		Database: DatabaseConfig{
			Driver: "postgres",
			URL:    "host=localhost user=postgres password=password dbname=sns_db port=5432 sslmode=disable",
		},
		Security: SecurityConfig{
			Algorithm:                "HS256",
			AccessTokenExpireMinutes: 30,
			LoginRatePerMinute:       20,
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
			Email:    "admin@snsbd.com",
		},
		CORSOrigins:         `["http://localhost:3000","http://localhost:3001","http://127.0.0.1:3000","http://127.0.0.1:3001"]`,
		DefaultProductImage: "https://picsum.photos/400/300?random=1",
		DefaultLogoImage:    "https://picsum.photos/200/100?random=2",
	}
}

// Load reads the YAML file at path (skipped when empty), .env and the
// environment, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("ENVIRONMENT", &c.Environment)
	str("PORT", &c.Port)
	boolean("DEBUG", &c.Debug)
	str("DATABASE_DRIVER", &c.Database.Driver)
	str("DATABASE_URL", &c.Database.URL)
	str("SECRET_KEY", &c.Security.SecretKey)
	str("ALGORITHM", &c.Security.Algorithm)
	integer("ACCESS_TOKEN_EXPIRE_MINUTES", &c.Security.AccessTokenExpireMinutes)
	integer("LOGIN_RATE_PER_MINUTE", &c.Security.LoginRatePerMinute)
	str("ADMIN_USERNAME", &c.Admin.Username)
	str("ADMIN_PASSWORD", &c.Admin.Password)
	str("ADMIN_EMAIL", &c.Admin.Email)
	str("OIDC_ISSUER", &c.OIDC.Issuer)
	str("OIDC_CLIENT_ID", &c.OIDC.ClientID)
	str("CORS_ORIGINS", &c.CORSOrigins)
	str("DEFAULT_PRODUCT_IMAGE", &c.DefaultProductImage)
	str("DEFAULT_LOGO_IMAGE", &c.DefaultLogoImage)
	boolean("SEED_CATALOG", &c.SeedCatalog)

	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	if c.Security.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.Security.Algorithm != "HS256" {
		return fmt.Errorf("unsupported token algorithm %q", c.Security.Algorithm)
	}
	if c.Security.AccessTokenExpireMinutes <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Security.AccessTokenExpireMinutes) * time.Minute
}

func (c *Config) OIDCEnabled() bool {
	return c.OIDC.Issuer != "" && c.OIDC.ClientID != ""
}

// CORSOriginList parses CORSOrigins, falling back to the local front-end
// origins when the text is not a JSON array.
func (c *Config) CORSOriginList() []string {
	var origins []string
	if err := json.Unmarshal([]byte(c.CORSOrigins), &origins); err != nil || len(origins) == 0 {
		return append([]string(nil), defaultCORSOrigins...)
	}
	return origins
}
