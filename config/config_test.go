package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// mockFileSystem implements FileSystem for testing.
type mockFileSystem struct {
	existingFiles map[string]bool
	loadedEnv     []string
}

func (m *mockFileSystem) Exists(path string) bool {
	return m.existingFiles[path]
}

func (m *mockFileSystem) LoadEnv(path string) error {
	m.loadedEnv = append(m.loadedEnv, path)
	return nil
}

func TestResolveFiles_ExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFileSystem{}}

	got := resolver.ResolveFiles(AppName, LoaderConfig{
		ConfigFile: "/custom/config.yml",
		EnvFile:    "/custom/.env",
	})

	if got.ConfigFile != "/custom/config.yml" {
		t.Errorf("ConfigFile = %q, want /custom/config.yml", got.ConfigFile)
	}
	if got.EnvFile != "/custom/.env" {
		t.Errorf("EnvFile = %q, want /custom/.env", got.EnvFile)
	}
}

func TestResolveFiles_SearchOrder(t *testing.T) {
	tests := []struct {
		name       string
		existing   []string
		wantConfig string
		wantEnv    string
	}{
		{
			name:       "cmd directory wins",
			existing:   []string{"./cmd/authfront/config.yml", "./config.yml", "./cmd/authfront/.env"},
			wantConfig: "./cmd/authfront/config.yml",
			wantEnv:    "./cmd/authfront/.env.authfront",
		},
		{
			name:       "fallback to working directory",
			existing:   []string{"./config.yml", "./.env"},
			wantConfig: "./config.yml",
			wantEnv:    "./.env",
		},
		{
			name: "nothing found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &mockFileSystem{existingFiles: map[string]bool{}}
			for _, p := range tt.existing {
				fs.existingFiles[p] = true
			}
			if tt.wantEnv != "" {
				fs.existingFiles[tt.wantEnv] = true
			}

			got := (&Resolver{FileSystem: fs}).ResolveFiles(AppName, LoaderConfig{})
			if got.ConfigFile != tt.wantConfig {
				t.Errorf("ConfigFile = %q, want %q", got.ConfigFile, tt.wantConfig)
			}
			if got.EnvFile != tt.wantEnv {
				t.Errorf("EnvFile = %q, want %q", got.EnvFile, tt.wantEnv)
			}
		})
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{key: "NAME", want: []string{"name"}},
		{key: "IDENTITY_BASE_URL", want: []string{"identity.base_url", "identity.base.url", "identity_base_url"}},
		{key: "FLOW_SUBMIT_TIMEOUT", want: []string{"flow.submit_timeout"}},
		{key: "LOGGING_LEVEL", want: []string{"logging.level"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := generateEnvKeyVariants(tt.key)
			for _, w := range tt.want {
				if !slices.Contains(got, w) {
					t.Errorf("variants of %s = %v, missing %q", tt.key, got, w)
				}
			}
			if len(removeDuplicates(got)) != len(got) {
				t.Errorf("variants of %s contain duplicates: %v", tt.key, got)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfig(t, `
name: authfront
environment: staging
logging:
  level: debug
  format: json
identity:
  base_url: https://id.example.test/api/auth
  timeout: 3s
  headers:
    X-Client: cli
flow:
  submit_timeout: 7s
  clear_passwords_on_error: true
routes:
  home: /dashboard
observability:
  enabled: false
`)

	cfg, err := Load(WithConfigFile(path), WithEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Environment != "staging" || cfg.Debug {
		t.Errorf("environment = %q debug = %v, want staging/false", cfg.Environment, cfg.Debug)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Identity.BaseURL != "https://id.example.test/api/auth" {
		t.Errorf("identity.base_url = %q", cfg.Identity.BaseURL)
	}
	if cfg.Identity.Timeout != 3*time.Second {
		t.Errorf("identity.timeout = %s, want 3s", cfg.Identity.Timeout)
	}
	if cfg.Identity.Headers["x-client"] != "cli" && cfg.Identity.Headers["X-Client"] != "cli" {
		t.Errorf("identity.headers = %v", cfg.Identity.Headers)
	}
	if cfg.Identity.Paths.SignIn != "/sign-in/email" {
		t.Errorf("identity.paths.sign_in = %q, want default", cfg.Identity.Paths.SignIn)
	}
	if cfg.Flow.SubmitTimeout != 7*time.Second || !cfg.Flow.ClearPasswordsOnError {
		t.Errorf("flow = %+v", cfg.Flow)
	}
	if cfg.Routes.Home != "/dashboard" || cfg.Routes.SignIn != "/sign-in" {
		t.Errorf("routes = %+v", cfg.Routes)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
identity:
  base_url: https://from-file.test/api/auth
flow:
  submit_timeout: 7s
`)
	t.Setenv("AUTHFRONT_IDENTITY_BASE_URL", "https://from-env.test/api/auth")
	t.Setenv("AUTHFRONT_FLOW_SUBMIT_TIMEOUT", "2s")
	t.Setenv("AUTHFRONT_LOGGING_LEVEL", "warn")
	t.Setenv("IDENTITY_BASE_URL", "https://unprefixed.test")

	cfg, err := Load(WithConfigFile(path), WithEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Identity.BaseURL != "https://from-env.test/api/auth" {
		t.Errorf("identity.base_url = %q, want env value", cfg.Identity.BaseURL)
	}
	if cfg.Flow.SubmitTimeout != 2*time.Second {
		t.Errorf("flow.submit_timeout = %s, want 2s", cfg.Flow.SubmitTimeout)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging.level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("AUTHFRONT_ROUTES_HOME=/from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("AUTHFRONT_ROUTES_HOME") })

	cfg, err := Load(WithConfigFile(filepath.Join(t.TempDir(), "missing.yml")), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Routes.Home != "/from-dotenv" {
		t.Errorf("routes.home = %q, want /from-dotenv", cfg.Routes.Home)
	}
}

func TestLoad_Defaults(t *testing.T) {
	fs := &mockFileSystem{existingFiles: map[string]bool{}}

	cfg, err := Load(WithFileSystem(fs))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != AppName || cfg.Environment != "development" || !cfg.Debug {
		t.Errorf("app defaults = %q/%q/%v", cfg.Name, cfg.Environment, cfg.Debug)
	}
	if cfg.Identity.BaseURL != "http://localhost:3000/api/auth" {
		t.Errorf("identity.base_url = %q", cfg.Identity.BaseURL)
	}
	if cfg.Flow.SubmitTimeout != 15*time.Second {
		t.Errorf("flow.submit_timeout = %s, want 15s", cfg.Flow.SubmitTimeout)
	}
	if len(fs.loadedEnv) != 0 {
		t.Errorf("loaded env files %v, want none", fs.loadedEnv)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown environment", content: "environment: qa\n"},
		{name: "bad log level", content: "logging:\n  level: loud\n"},
		{name: "relative identity path", content: "identity:\n  paths:\n    sign_in: sign-in\n"},
		{name: "relative route", content: "routes:\n  home: home\n"},
		{name: "sample rate out of range", content: "observability:\n  sample_rate: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(WithConfigFile(path)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
