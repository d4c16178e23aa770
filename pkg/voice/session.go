package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/kalpvraksha/voice-api/internal/log"
)

const (
	// Gemini Live API WebSocket endpoint.
	liveURL = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

	// Native audio dialog model used for speech replies.
	liveModel = "models/gemini-2.5-flash-preview-native-audio-dialog"

	// Context window compression thresholds for long sessions.
	compressionTriggerTokens = 25600
	compressionTargetTokens  = 12800

	handshakeTimeout = 10 * time.Second

	// Inbound channel capacity. The reader goroutine blocks once the
	// consumer falls this far behind, which keeps delivery order intact.
	recvBuffer = 32
)

// session is the adapter's view of one live dialogue transport.
type session interface {
	// sendTurn submits the user utterance as the sole content of a turn.
	sendTurn(text string) error

	// messages returns the inbound FIFO channel. It is closed when the
	// transport stops delivering; err explains why.
	messages() <-chan *ServerMessage

	// err reports the read failure that terminated the message channel,
	// if any. Only meaningful after messages() is closed.
	err() error

	// close tears the transport down. Safe to call more than once.
	close() error
}

// liveSession is a session backed by a Gemini Live WebSocket connection.
// It is exclusively owned by the Model that dialed it.
type liveSession struct {
	id string

	ws   *websocket.Conn
	wsMu sync.Mutex

	recv chan *ServerMessage
	done chan struct{}

	errMu   sync.Mutex
	readErr error

	closeOnce sync.Once
	closeErr  error
}

// dialLive opens a Live API session: dial, send the setup message, and wait
// for the setupComplete acknowledgment before handing the session out.
func dialLive(ctx context.Context, cfg Config) (*liveSession, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	url := fmt.Sprintf("%s?key=%s", liveURL, cfg.APIKey)
	ws, _, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("voice/gemini: failed to connect: %w", err)
	}

	s := &liveSession{
		id:   uuid.NewString(),
		ws:   ws,
		recv: make(chan *ServerMessage, recvBuffer),
		done: make(chan struct{}),
	}

	if err := s.sendJSON(setupMessage(cfg)); err != nil {
		ws.Close()
		return nil, fmt.Errorf("voice/gemini: failed to configure session: %w", err)
	}

	if err := s.awaitSetup(); err != nil {
		ws.Close()
		return nil, err
	}

	go s.readLoop()

	log.Debug("gemini live session open", "session_id", s.id, "voice", cfg.voice())
	return s, nil
}

// setupMessage builds the initial session configuration.
func setupMessage(cfg Config) map[string]any {
	return map[string]any{
		"setup": map[string]any{
			"model": liveModel,
			"generation_config": map[string]any{
				"response_modalities": []string{"AUDIO"},
				"media_resolution":    "MEDIA_RESOLUTION_MEDIUM",
				"speech_config": map[string]any{
					"voice_config": map[string]any{
						"prebuilt_voice_config": map[string]any{
							"voice_name": cfg.voice(),
						},
					},
				},
			},
			"context_window_compression": map[string]any{
				"trigger_tokens": strconv.Itoa(compressionTriggerTokens),
				"sliding_window": map[string]any{
					"target_tokens": strconv.Itoa(compressionTargetTokens),
				},
			},
			"system_instruction": map[string]any{
				"parts": []map[string]any{
					{"text": cfg.instruction()},
				},
			},
		},
	}
}

// awaitSetup blocks until the server acknowledges the setup message.
// Content delivered before the acknowledgment is queued rather than dropped.
func (s *liveSession) awaitSetup() error {
	for {
		msg, err := s.readMessage()
		if err != nil {
			return fmt.Errorf("voice/gemini: session setup not acknowledged: %w", err)
		}
		if msg.SetupComplete != nil {
			return nil
		}
		select {
		case s.recv <- msg:
		default:
			return fmt.Errorf("voice/gemini: inbound buffer overflow during setup")
		}
	}
}

// readLoop pumps inbound messages into the FIFO channel until the
// connection drops. Delivery order matches transport arrival order.
func (s *liveSession) readLoop() {
	defer close(s.recv)

	for {
		msg, err := s.readMessage()
		if err != nil {
			select {
			case <-s.done:
				// Owner closed the session; this is normal teardown.
			default:
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Debug("gemini live connection closed", "session_id", s.id)
				} else {
					log.Warn("gemini live read error", "session_id", s.id, "error", err)
					s.setErr(err)
				}
			}
			return
		}
		// Stop delivering once the owner closed the session, so the
		// goroutine never blocks on a consumer that is gone.
		select {
		case s.recv <- msg:
		case <-s.done:
			return
		}
	}
}

// readMessage reads and decodes a single server message.
func (s *liveSession) readMessage() (*ServerMessage, error) {
	_, data, err := s.ws.ReadMessage()
	if err != nil {
		return nil, err
	}

	var msg ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("malformed server message: %w", err)
	}
	return &msg, nil
}

func (s *liveSession) sendTurn(text string) error {
	return s.sendJSON(map[string]any{
		"client_content": map[string]any{
			"turns": []map[string]any{
				{
					"role": "user",
					"parts": []map[string]any{
						{"text": text},
					},
				},
			},
			"turn_complete": true,
		},
	})
}

func (s *liveSession) messages() <-chan *ServerMessage {
	return s.recv
}

func (s *liveSession) err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.readErr
}

func (s *liveSession) setErr(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.readErr == nil {
		s.readErr = err
	}
}

func (s *liveSession) close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.ws.Close()
		log.Debug("gemini live session closed", "session_id", s.id)
	})
	return s.closeErr
}

// sendJSON writes a JSON message over the WebSocket.
func (s *liveSession) sendJSON(v any) error {
	s.wsMu.Lock()
	defer s.wsMu.Unlock()
	return s.ws.WriteJSON(v)
}
