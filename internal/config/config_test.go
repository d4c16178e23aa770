package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Environment != DefaultEnvironment {
		t.Errorf("environment = %q, want %q", cfg.Server.Environment, DefaultEnvironment)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("log level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
	if cfg.APIKeyConfigured() {
		t.Error("API key reported configured with empty environment")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "8080")
	t.Setenv("GO_ENV", "production")
	t.Setenv("VOICE_NAME", "Kore")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.APIKeyConfigured() {
		t.Error("API key not picked up from environment")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "production" {
		t.Errorf("environment = %q, want production", cfg.Server.Environment)
	}
	if cfg.Gemini.VoiceName != "Kore" {
		t.Errorf("voice = %q, want Kore", cfg.Gemini.VoiceName)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: 4000\n  environment: staging\ngemini:\n  voice_name: Puck\nlogging:\n  level: warn\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Server.Environment != "staging" {
		t.Errorf("environment = %q, want staging", cfg.Server.Environment)
	}
	if cfg.Gemini.VoiceName != "Puck" {
		t.Errorf("voice = %q, want Puck", cfg.Gemini.VoiceName)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 4000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want env override 9999", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "port too low", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:  ServerConfig{Port: DefaultPort, Environment: DefaultEnvironment},
				Logging: LoggingConfig{Level: DefaultLogLevel},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "PORT", "GO_ENV", "VOICE_NAME", "SYSTEM_INSTRUCTION", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}
