// Package config reads runtime settings from the environment (optionally
// seeded from a .env file) and an optional YAML overlay.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	DatabaseDriver string `yaml:"database_driver"`
	DatabaseURL    string `yaml:"database_url"`

	JWTSecret    string `yaml:"jwt_secret"`
	CookieDomain string `yaml:"cookie_domain"`

	// RootDomain is the apex under which every portfolio is published,
	// e.g. "example.com" serves "acme.example.com".
	RootDomain string `yaml:"root_domain"`
	Protocol   string `yaml:"protocol"`

	ClientURL      string `yaml:"client_url"`
	AllowedOrigins string `yaml:"allowed_origins"`

	CacheTTL time.Duration `yaml:"-"` // parsed from the cache_ttl string

	RevalidationURL    string `yaml:"revalidation_url"`
	RevalidationSecret string `yaml:"revalidation_secret"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Port:           "3000",
		DatabaseDriver: "sqlite",
		DatabaseURL:    "subfolio.db",
		RootDomain:     "localhost:3000",
		Protocol:       "http",
		CacheTTL:       5 * time.Minute,
		LogLevel:       "info",
	}
}

// LoadDotenv seeds the process environment from .env. A missing file is
// reported but callers usually treat it as a warning.
func LoadDotenv(files ...string) error {
	return godotenv.Load(files...)
}

// Load builds the configuration: defaults, then environment, then the YAML
// file at path when path is not empty.
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.applyEnv(os.LookupEnv)

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Port)
	str("DATABASE_DRIVER", &c.DatabaseDriver)
	str("DATABASE_URL", &c.DatabaseURL)
	str("JWT_SECRET", &c.JWTSecret)
	str("COOKIE_DOMAIN", &c.CookieDomain)
	str("ROOT_DOMAIN", &c.RootDomain)
	str("PROTOCOL", &c.Protocol)
	str("CLIENT_URL", &c.ClientURL)
	str("ALLOWED_ORIGINS", &c.AllowedOrigins)
	str("REVALIDATION_URL", &c.RevalidationURL)
	str("REVALIDATION_SECRET", &c.RevalidationSecret)
	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("CACHE_TTL"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CacheTTL = d
		}
	}
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var overlay struct {
		Config   `yaml:",inline"`
		CacheTTL string `yaml:"cache_ttl"`
	}

	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	c.merge(overlay.Config)

	if overlay.CacheTTL != "" {
		d, err := time.ParseDuration(overlay.CacheTTL)
		if err != nil {
			return fmt.Errorf("parse config %s: cache_ttl: %w", path, err)
		}
		c.CacheTTL = d
	}

	return nil
}

func (c *Config) merge(o Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&c.Port, o.Port)
	set(&c.DatabaseDriver, o.DatabaseDriver)
	set(&c.DatabaseURL, o.DatabaseURL)
	set(&c.JWTSecret, o.JWTSecret)
	set(&c.CookieDomain, o.CookieDomain)
	set(&c.RootDomain, o.RootDomain)
	set(&c.Protocol, o.Protocol)
	set(&c.ClientURL, o.ClientURL)
	set(&c.AllowedOrigins, o.AllowedOrigins)
	set(&c.RevalidationURL, o.RevalidationURL)
	set(&c.RevalidationSecret, o.RevalidationSecret)
	set(&c.LogLevel, o.LogLevel)
}

// SiteURL is the public address of a published subdomain.
func (c Config) SiteURL(name string) string {
	return fmt.Sprintf("%s://%s.%s", c.Protocol, name, c.RootDomain)
}

func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}
