// Package config provides process configuration for voice-api.
// Settings come from an optional YAML file with environment variable
// overrides, read once at startup and immutable afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultPort        = 3000
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"
)

// Config represents the complete service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
}

// GeminiConfig contains Gemini Live API configuration.
// The API key is environment-only and never read from the file.
type GeminiConfig struct {
	APIKey            string `yaml:"-"`
	VoiceName         string `yaml:"voice_name"`
	SystemInstruction string `yaml:"system_instruction"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty), then environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        DefaultPort,
			Environment: DefaultEnvironment,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if env := os.Getenv("GO_ENV"); env != "" {
		c.Server.Environment = env
	}
	if voice := os.Getenv("VOICE_NAME"); voice != "" {
		c.Gemini.VoiceName = voice
	}
	if instruction := os.Getenv("SYSTEM_INSTRUCTION"); instruction != "" {
		c.Gemini.SystemInstruction = instruction
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate performs validation of the configuration.
// An absent API key is allowed here: health reports it as missing and chat
// rejects requests, both operator-visible.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("log level must be one of [debug, info, warn, error], got %q", c.Logging.Level)
	}

	return nil
}

// APIKeyConfigured reports whether the Gemini credential is present.
func (c *Config) APIKeyConfigured() bool {
	return c.Gemini.APIKey != ""
}
