package cli

import (
	"os"
	"time"

	"github.com/mcoot/chatlogin/internal/login"
	"github.com/mcoot/chatlogin/internal/shell"
)

// Config holds CLI configuration
type Config struct {
	Origin      string
	APIURL      string
	SessionFile string
	Timeout     time.Duration
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with defaults taken from the environment
func DefaultConfig() *Config {
	return &Config{
		Origin:      getEnvOrDefault("CHAT_ORIGIN", "http://localhost:8080"),
		APIURL:      os.Getenv("CHAT_API_URL"),
		SessionFile: getEnvOrDefault("CHAT_SESSION_FILE", shell.DefaultSessionFile()),
		Timeout:     getEnvDuration("CHAT_TIMEOUT", login.DefaultTimeout),
		Output:      "text",
		Verbose:     false,
	}
}

// ClientConfig returns the login endpoint settings
func (c *Config) ClientConfig() login.ClientConfig {
	return login.ClientConfig{
		Origin:  c.Origin,
		APIURL:  c.APIURL,
		Timeout: c.Timeout,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvDuration falls back to defaultVal when the variable is unset or
// not a positive duration
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
