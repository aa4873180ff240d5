package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/authfront/httpclient"
)

// Default endpoint paths, relative to the base URL.
const (
	DefaultSignUpPath  = "/sign-up/email"
	DefaultSignInPath  = "/sign-in/email"
	DefaultSignOutPath = "/sign-out"
	DefaultSessionPath = "/get-session"
)

// Paths lists the identity service endpoints.
type Paths struct {
	SignUp  string `yaml:"sign_up" mapstructure:"sign_up"`
	SignIn  string `yaml:"sign_in" mapstructure:"sign_in"`
	SignOut string `yaml:"sign_out" mapstructure:"sign_out"`
	Session string `yaml:"session" mapstructure:"session"`
}

// Config configures the HTTP identity service client.
type Config struct {
	BaseURL string            `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	Paths   Paths             `yaml:"paths" mapstructure:"paths"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:3000/api/auth"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Paths.SignUp == "" {
		c.Paths.SignUp = DefaultSignUpPath
	}
	if c.Paths.SignIn == "" {
		c.Paths.SignIn = DefaultSignInPath
	}
	if c.Paths.SignOut == "" {
		c.Paths.SignOut = DefaultSignOutPath
	}
	if c.Paths.Session == "" {
		c.Paths.Session = DefaultSessionPath
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	hc := c.httpConfig()
	if err := hc.Validate(); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("identity.base_url is required")
	}
	for name, p := range map[string]string{
		"sign_up":  c.Paths.SignUp,
		"sign_in":  c.Paths.SignIn,
		"sign_out": c.Paths.SignOut,
		"session":  c.Paths.Session,
	} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("identity.paths.%s must start with / (got: %q)", name, p)
		}
	}
	return nil
}

func (c *Config) httpConfig() httpclient.Config {
	return httpclient.Config{
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
		Headers: c.Headers,
	}
}
