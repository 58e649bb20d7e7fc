package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every variable the loader reads so host values cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AGENT_LISTEN", "AGENT_NAME", "AGENT_API_KEY",
		"PROVIDER", "OUTLOOK_PATH",
		"SES_REGION", "SES_ACCESS_KEY_ID", "SES_SECRET_ACCESS_KEY", "SES_SENDER",
		"SMTP_ADDR", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_SENDER",
		"TLS_CERT_FILE", "TLS_KEY_FILE",
		"LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Listen != ":8000" {
		t.Errorf("Server.Listen = %q, want %q", cfg.Server.Listen, ":8000")
	}
	if cfg.Server.Name != "demo-agent" {
		t.Errorf("Server.Name = %q, want %q", cfg.Server.Name, "demo-agent")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Provider != "" {
		t.Errorf("Provider = %q, want empty", cfg.Provider)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AGENT_LISTEN", ":9000")
	t.Setenv("AGENT_API_KEY", "secret")
	t.Setenv("PROVIDER", "SES")
	t.Setenv("SES_REGION", "us-west-2")
	t.Setenv("SES_SENDER", "noreply@example.com")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Listen != ":9000" {
		t.Errorf("Server.Listen = %q, want %q", cfg.Server.Listen, ":9000")
	}
	if cfg.Server.APIKey != "secret" {
		t.Errorf("Server.APIKey = %q, want %q", cfg.Server.APIKey, "secret")
	}
	if cfg.Provider != "ses" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "ses")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if !cfg.SESConfigured() {
		t.Error("SESConfigured() = false, want true")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	content := `
server:
  listen: ":8443"
  name: "mail-agent"
  api_key: "file-key"
provider: smtp
smtp:
  addr: "smtp.example.com:587"
  username: "user"
  password: "pass"
  sender: "agent@example.com"
tls:
  cert_file: "/etc/agent/cert.pem"
  key_file: "/etc/agent/key.pem"
logging:
  level: warn
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v, want nil", err)
	}

	if cfg.Server.Listen != ":8443" {
		t.Errorf("Server.Listen = %q, want %q", cfg.Server.Listen, ":8443")
	}
	if cfg.Server.APIKey != "file-key" {
		t.Errorf("Server.APIKey = %q, want %q", cfg.Server.APIKey, "file-key")
	}
	if cfg.Provider != "smtp" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "smtp")
	}
	if !cfg.SMTPConfigured() {
		t.Error("SMTPConfigured() = false, want true")
	}
	if !cfg.TLSConfigured() {
		t.Error("TLSConfigured() = false, want true")
	}
}

func TestLoadFromFileEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("AGENT_API_KEY", "env-key")

	content := `
server:
  api_key: "file-key"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v, want nil", err)
	}

	if cfg.Server.APIKey != "env-key" {
		t.Errorf("Server.APIKey = %q, want %q", cfg.Server.APIKey, "env-key")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	clearEnv(t)

	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("LoadFromFile() error = nil, want error for missing file")
	}
}

func TestConfiguredHelpers(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.SESConfigured() {
		t.Error("SESConfigured() = true for empty config")
	}
	if cfg.SMTPConfigured() {
		t.Error("SMTPConfigured() = true for empty config")
	}
	if cfg.TLSConfigured() {
		t.Error("TLSConfigured() = true for empty config")
	}
}
