package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("VIDGATE_SECRET", "")
	t.Setenv("RESIDENTIAL_PROXY_CREDENTIAL", "")
	t.Setenv("TIKTOK_DEVICE_ID", "")
	t.Setenv("VIDGATE_HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("VIDGATE_PORT", "")

	cfg := FromEnv()
	assert.Equal(t, "", cfg.Secret)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "127.0.0.1:8000", cfg.Addr())
	assert.Equal(t, "", cfg.ProxyURL())
}

func TestFromEnvValues(t *testing.T) {
	t.Setenv("VIDGATE_SECRET", " s3cret ")
	t.Setenv("VIDGATE_HOST", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("VIDGATE_PORT", "1234")

	cfg := FromEnv()
	assert.Equal(t, "s3cret", cfg.Secret, "values are trimmed")
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr(), "PORT wins over VIDGATE_PORT")
}

func TestFromEnvPortFallback(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("VIDGATE_PORT", "1234")
	t.Setenv("VIDGATE_HOST", "")

	cfg := FromEnv()
	assert.Equal(t, "1234", cfg.Port)
}

func TestProxyURLEncodesCredential(t *testing.T) {
	cfg := &Config{ProxyCredential: "user:pa ss@word"}
	assert.Equal(t, "http://user%3Apa+ss%40word@gate.smartproxy.com:10001", cfg.ProxyURL())
}
