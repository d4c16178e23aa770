// Command voice-api serves the Kalpvraksha AI voice HTTP API.
//
// Usage:
//
//	go run ./cmd/voice-api
//	go run ./cmd/voice-api -config configs/config.yaml
//	PORT=8080 GEMINI_API_KEY=... go run ./cmd/voice-api
//
// Environment variables:
//
//	GEMINI_API_KEY     - Gemini Live API credential (required for /api/chat)
//	PORT               - listen port (default 3000)
//	GO_ENV             - environment name, "production" switches to JSON logs
//	VOICE_NAME         - default prebuilt voice for replies
//	SYSTEM_INSTRUCTION - default persona override
//	LOG_LEVEL          - debug, info, warn, error
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kalpvraksha/voice-api/internal/config"
	"github.com/kalpvraksha/voice-api/internal/log"
	"github.com/kalpvraksha/voice-api/internal/metrics"
	"github.com/kalpvraksha/voice-api/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to optional YAML configuration file")
	port := flag.Int("port", 0, "Listen port (overrides config and PORT)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log.Init(cfg.Logging.Level)

	log.Info("service starting",
		"service", "voice-api",
		"port", cfg.Server.Port,
		"environment", cfg.Server.Environment,
	)

	if !cfg.APIKeyConfigured() {
		log.Warn("GEMINI_API_KEY not set; /api/chat will reject requests until it is configured")
	}

	m := metrics.New()
	srv := server.New(cfg, m)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := srv.Shutdown(); err != nil {
		log.Error("error during shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("service stopped")
}
