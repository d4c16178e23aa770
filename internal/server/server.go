// Package server exposes the HTTP surface of the voice API: health
// reporting, the chat endpoint that drives the dialogue adapter, and the
// audio intake stub.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kalpvraksha/voice-api/internal/config"
	"github.com/kalpvraksha/voice-api/internal/log"
	"github.com/kalpvraksha/voice-api/internal/metrics"
	"github.com/kalpvraksha/voice-api/pkg/voice"
)

const (
	serviceName    = "Kalpvraksha AI Voice API"
	serviceVersion = "1.0.0"

	bodyLimit = 10 * 1024 * 1024
)

// converser is the slice of the voice adapter the handlers need.
type converser interface {
	Converse(ctx context.Context, utterance string) (*voice.Response, error)
}

// Server is the HTTP API server.
type Server struct {
	app     *fiber.App
	cfg     *config.Config
	metrics *metrics.Metrics

	// newModel constructs the per-request dialogue adapter.
	// Swapped in tests to avoid dialing the real Live API.
	newModel func(cfg voice.Config) (converser, error)
}

// New creates the API server and registers all routes.
func New(cfg *config.Config, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:     cfg,
		metrics: m,
		newModel: func(vc voice.Config) (converser, error) {
			return voice.New(vc)
		},
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          s.handleError,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(s.instrument)

	app.Get("/", s.handleRoot)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Post("/chat", s.handleChat)
	api.Post("/process-audio", s.handleProcessAudio)

	s.app = app
	return s
}

// Listen starts serving on the configured port. Blocks until Shutdown.
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	log.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// instrument records request counters and latency per path.
func (s *Server) instrument(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	path := c.Path()
	status := c.Response().StatusCode()
	s.metrics.HTTPRequests.WithLabelValues(path, c.Method(), fmt.Sprintf("%d", status)).Inc()
	s.metrics.HTTPRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

	return err
}

// handleError is the outermost error boundary. Anything a handler did not
// map itself (including recovered panics) becomes a JSON 500.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Error("unhandled request error", "path", c.Path(), "error", err)
		return c.Status(code).JSON(errorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}

	return c.Status(code).JSON(errorResponse{Error: err.Error()})
}
