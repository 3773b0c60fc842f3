package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Default bind address values
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = "8000"
)

// proxyGateTemplate is the residential proxy gateway; the credential is
// URL-encoded into the userinfo part.
const proxyGateTemplate = "http://%s@gate.smartproxy.com:10001"

// Config holds all environment-driven settings. Optional values are empty
// strings when unset; the features they enable are simply disabled.
type Config struct {
	// Secret is the bearer token required on every authenticated route.
	// When empty the service is considered misconfigured and auth fails 503.
	Secret string

	// ProxyCredential is the residential proxy user:pass, if any.
	ProxyCredential string

	// TikTokDeviceID enables TikTok mobile-API backed listings when set.
	TikTokDeviceID string

	Host string
	Port string
}

// FromEnv reads configuration from the environment.
func FromEnv() *Config {
	cfg := &Config{
		Secret:          strings.TrimSpace(os.Getenv("VIDGATE_SECRET")),
		ProxyCredential: strings.TrimSpace(os.Getenv("RESIDENTIAL_PROXY_CREDENTIAL")),
		TikTokDeviceID:  strings.TrimSpace(os.Getenv("TIKTOK_DEVICE_ID")),
		Host:            strings.TrimSpace(os.Getenv("VIDGATE_HOST")),
		Port:            strings.TrimSpace(os.Getenv("PORT")),
	}
	if cfg.Port == "" {
		cfg.Port = strings.TrimSpace(os.Getenv("VIDGATE_PORT"))
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	return cfg
}

// Addr returns the host:port bind address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// ProxyURL returns the residential proxy endpoint, or "" when no credential
// is configured.
func (c *Config) ProxyURL() string {
	if c.ProxyCredential == "" {
		return ""
	}
	return fmt.Sprintf(proxyGateTemplate, url.QueryEscape(c.ProxyCredential))
}
