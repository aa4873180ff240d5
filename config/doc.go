// Package config loads the authfront configuration.
//
// Values come from a YAML file, a .env file and AUTHFRONT_-prefixed
// environment variables (highest precedence), resolved through Viper:
//
//	cfg, err := config.Load(config.WithConfigFile("config.yml"))
//
// Environment variables map onto nested keys by underscore, e.g.
// AUTHFRONT_IDENTITY_BASE_URL sets identity.base_url and
// AUTHFRONT_FLOW_SUBMIT_TIMEOUT sets flow.submit_timeout.
package config
