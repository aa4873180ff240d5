package flow

import (
	"fmt"
	"strings"
	"time"
)

// Config tunes submission behavior.
type Config struct {
	// SubmitTimeout bounds a single submission attempt. Defaults to 15s.
	SubmitTimeout time.Duration `yaml:"submit_timeout" mapstructure:"submit_timeout"`
	// ClearPasswordsOnError blanks password fields after a failed attempt.
	ClearPasswordsOnError bool `yaml:"clear_passwords_on_error" mapstructure:"clear_passwords_on_error"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.SubmitTimeout <= 0 {
		c.SubmitTimeout = 15 * time.Second
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.SubmitTimeout <= 0 {
		return fmt.Errorf("flow.submit_timeout must be positive (got: %s)", c.SubmitTimeout)
	}
	return nil
}

// Routes are the navigation targets of the flows.
type Routes struct {
	Home   string `yaml:"home" mapstructure:"home"`
	SignIn string `yaml:"sign_in" mapstructure:"sign_in"`
	SignUp string `yaml:"sign_up" mapstructure:"sign_up"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (r *Routes) ApplyDefaults() {
	if r.Home == "" {
		r.Home = "/"
	}
	if r.SignIn == "" {
		r.SignIn = "/sign-in"
	}
	if r.SignUp == "" {
		r.SignUp = "/sign-up"
	}
}

// Validate checks that every route is an absolute path.
func (r *Routes) Validate() error {
	for name, p := range map[string]string{"home": r.Home, "sign_in": r.SignIn, "sign_up": r.SignUp} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("routes.%s must start with / (got: %q)", name, p)
		}
	}
	return nil
}
