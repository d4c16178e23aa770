package server

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kalpvraksha/voice-api/internal/log"
	"github.com/kalpvraksha/voice-api/pkg/voice"
)

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Text              string `json:"text"`
	VoiceName         string `json:"voiceName"`
	SystemInstruction string `json:"systemInstruction"`
}

// chatResponse is the success payload of POST /api/chat.
type chatResponse struct {
	Success      bool   `json:"success"`
	TextResponse string `json:"textResponse,omitempty"`
	AudioData    string `json:"audioData,omitempty"`
	AudioFormat  string `json:"audioFormat,omitempty"`
}

// errorResponse is the failure payload for every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status        string         `json:"status"`
	Timestamp     string         `json:"timestamp"`
	Service       string         `json:"service"`
	Version       string         `json:"version"`
	Environment   string         `json:"environment"`
	Configuration configuration  `json:"configuration"`
	Endpoints     []endpointInfo `json:"endpoints"`
}

type configuration struct {
	GeminiAPIKey string `json:"geminiApiKey"`
}

type endpointInfo struct {
	Path           string   `json:"path"`
	Method         string   `json:"method"`
	Description    string   `json:"description"`
	RequiredFields []string `json:"requiredFields,omitempty"`
	OptionalFields []string `json:"optionalFields,omitempty"`
}

type processAudioRequest struct {
	AudioData json.RawMessage `json:"audioData"`
	Format    string          `json:"format"`
}

type processAudioResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ReceivedFormat string `json:"receivedFormat"`
	DataLength     int    `json:"dataLength"`
	Note           string `json:"note"`
}

var endpointCatalog = []endpointInfo{
	{
		Path:        "/api/health",
		Method:      "GET",
		Description: "Health check endpoint",
	},
	{
		Path:           "/api/chat",
		Method:         "POST",
		Description:    "Text to voice conversion",
		RequiredFields: []string{"text"},
		OptionalFields: []string{"voiceName", "systemInstruction"},
	},
	{
		Path:           "/api/process-audio",
		Method:         "POST",
		Description:    "Audio processing endpoint",
		RequiredFields: []string{"audioData"},
		OptionalFields: []string{"format"},
	},
}

// handleRoot returns the service banner.
func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":       serviceName,
		"version":       serviceVersion,
		"endpoints":     []string{"/api/health", "/api/chat", "/api/process-audio"},
		"documentation": "See /api/health for endpoint details",
	})
}

// handleHealth reports service metadata and credential status.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	apiKey := "missing"
	if s.cfg.APIKeyConfigured() {
		apiKey = "configured"
	}

	return c.JSON(healthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Service:       serviceName,
		Version:       serviceVersion,
		Environment:   s.cfg.Server.Environment,
		Configuration: configuration{GeminiAPIKey: apiKey},
		Endpoints:     endpointCatalog,
	})
}

// handleChat runs one dialogue turn and returns the synthesized reply.
func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Text input is required"})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Text input is required"})
	}

	if !s.cfg.APIKeyConfigured() {
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "GEMINI_API_KEY not configured"})
	}

	voiceName := req.VoiceName
	if voiceName == "" {
		voiceName = s.cfg.Gemini.VoiceName
	}
	instruction := req.SystemInstruction
	if instruction == "" {
		instruction = s.cfg.Gemini.SystemInstruction
	}

	log.Debug("processing chat request",
		"request_id", c.Locals("requestid"),
		"text", truncate(req.Text, 50),
		"voice", voiceName,
	)

	model, err := s.newModel(voice.Config{
		APIKey:            s.cfg.Gemini.APIKey,
		VoiceName:         voiceName,
		SystemInstruction: instruction,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: err.Error()})
	}

	s.metrics.TurnsStarted.Inc()
	start := time.Now()

	resp, err := model.Converse(c.UserContext(), req.Text)
	if err != nil {
		s.metrics.TurnsFailed.Inc()
		log.Error("chat turn failed", "request_id", c.Locals("requestid"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: err.Error()})
	}

	s.metrics.TurnsSucceeded.Inc()
	s.metrics.TurnDuration.Observe(time.Since(start).Seconds())

	out := chatResponse{
		Success:      true,
		TextResponse: resp.TextResponse,
	}
	if resp.AudioData != nil {
		out.AudioData = base64.StdEncoding.EncodeToString(resp.AudioData)
		out.AudioFormat = "wav"
		s.metrics.AudioBytesOut.Add(float64(len(resp.AudioData)))
	}

	log.Info("chat turn complete",
		"request_id", c.Locals("requestid"),
		"duration", time.Since(start),
		"audio_bytes", len(resp.AudioData),
		"has_text", resp.TextResponse != "",
	)

	return c.JSON(out)
}

// handleProcessAudio acknowledges receipt of audio. Speech-to-text
// processing is not implemented; the endpoint only echoes metadata.
func (s *Server) handleProcessAudio(c *fiber.Ctx) error {
	var req processAudioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Audio data is required"})
	}
	if len(req.AudioData) == 0 || string(req.AudioData) == "null" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Audio data is required"})
	}

	format := req.Format
	if format == "" {
		format = "wav"
	}

	// For string payloads report the string length, matching what callers
	// sent; anything else falls back to the raw JSON length.
	dataLength := len(req.AudioData)
	var str string
	if err := json.Unmarshal(req.AudioData, &str); err == nil {
		dataLength = len(str)
	}

	log.Debug("processing audio request", "format", format, "data_length", dataLength)

	return c.JSON(processAudioResponse{
		Success:        true,
		Message:        "Audio received successfully",
		ReceivedFormat: format,
		DataLength:     dataLength,
		Note:           "Audio processing endpoint - implementation depends on your speech-to-text service",
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
