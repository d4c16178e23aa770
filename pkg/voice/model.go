// Package voice adapts a single request/response call onto one streaming
// dialogue session with the Gemini Live API. Each Converse call opens a
// fresh session, submits the utterance, drains the reply turn, and closes
// the session; nothing is shared or reused across calls.
package voice

import (
	"context"
	"fmt"

	"github.com/kalpvraksha/voice-api/pkg/wav"
)

// defaultMIMEType is assumed for audio fragments that omit a descriptor.
const defaultMIMEType = "audio/pcm;rate=24000"

// Response is the aggregated outcome of one dialogue turn.
type Response struct {
	// AudioData is the complete WAV utterance, nil if the turn carried
	// no audio fragments.
	AudioData []byte

	// TextResponse is the transcript of the reply, empty if the turn
	// carried no text parts.
	TextResponse string
}

// Model runs one-shot voice conversations against the Gemini Live API.
type Model struct {
	config Config

	// dial is swapped in tests.
	dial func(ctx context.Context, cfg Config) (session, error)
}

// New creates a Model for the given session configuration.
func New(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Model{
		config: cfg,
		dial: func(ctx context.Context, cfg Config) (session, error) {
			return dialLive(ctx, cfg)
		},
	}, nil
}

// Converse opens a session, sends the utterance as one complete turn, and
// collects the streamed reply until the model marks the turn complete.
// The session is closed before Converse returns, on every path.
func (m *Model) Converse(ctx context.Context, utterance string) (*Response, error) {
	if utterance == "" {
		return nil, ErrEmptyUtterance
	}

	sess, err := m.dial(ctx, m.config)
	if err != nil {
		return nil, fmt.Errorf("voice: failed to open session: %w", err)
	}
	defer sess.close()

	if err := sess.sendTurn(utterance); err != nil {
		return nil, fmt.Errorf("voice: failed to send turn: %w", err)
	}

	turn, err := collectTurn(ctx, sess)
	if err != nil {
		return nil, err
	}

	return aggregate(turn)
}

// collectTurn drains the session's inbound channel until a message carries
// the turn-completion marker. Messages are kept in arrival order; the
// channel receive blocks without polling until the transport delivers.
func collectTurn(ctx context.Context, sess session) ([]*ServerMessage, error) {
	var turn []*ServerMessage
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("voice: turn aborted: %w", ctx.Err())
		case msg, ok := <-sess.messages():
			if !ok {
				if err := sess.err(); err != nil {
					return nil, fmt.Errorf("voice: session failed mid-turn: %w", err)
				}
				return nil, ErrSessionClosed
			}
			turn = append(turn, msg)
			if msg.turnComplete() {
				return turn, nil
			}
		}
	}
}

// aggregate walks the completed turn in order, concatenating audio
// fragments and keeping the last text part as the transcript. The WAV
// container format follows the last fragment's MIME descriptor.
func aggregate(turn []*ServerMessage) (*Response, error) {
	var (
		audioParts []string
		mimeType   = defaultMIMEType
		text       string
	)

	for _, msg := range turn {
		if msg.ServerContent == nil || msg.ServerContent.ModelTurn == nil {
			continue
		}
		for _, part := range msg.ServerContent.ModelTurn.Parts {
			if part.InlineData != nil {
				audioParts = append(audioParts, part.InlineData.Data)
				if part.InlineData.MIMEType != "" {
					mimeType = part.InlineData.MIMEType
				} else {
					mimeType = defaultMIMEType
				}
			}
			if part.Text != "" {
				text = part.Text
			}
		}
	}

	resp := &Response{TextResponse: text}

	if len(audioParts) > 0 {
		audio, err := wav.EncodeBase64Fragments(audioParts, mimeType)
		if err != nil {
			return nil, fmt.Errorf("voice: failed to encode reply audio: %w", err)
		}
		resp.AudioData = audio
	}

	return resp, nil
}
