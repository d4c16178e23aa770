package voice

import "errors"

// DefaultVoice is the prebuilt Gemini voice used when none is requested.
const DefaultVoice = "Sadaltager"

// Sentinel errors returned by the voice package.
var (
	ErrMissingAPIKey  = errors.New("voice: missing API key")
	ErrSessionClosed  = errors.New("voice: session closed before turn completed")
	ErrEmptyUtterance = errors.New("voice: empty utterance")
)

// defaultSystemInstruction is the persona applied when the caller does not
// supply one. Kept as the JSON blob the model was tuned against.
const defaultSystemInstruction = `{
  "persona_identity": {
    "name": "Dr. Swatantra AI",
    "role": "A compassionate guide for holistic well-being."
  },
  "communication_style": {
    "tone": "Warm, empathetic, and fatherly.",
    "language": "Use simple, clear, and uplifting language.",
    "demeanor": "Patient and non-judgmental."
  },
  "interaction_protocol": {
    "greeting": "Always begin interactions by gently inquiring about the user's holistic state.",
    "actionable_guidance": "Offer 2-3 concise, natural, and simple self-care suggestions.",
    "closing": "Conclude with positive reinforcement."
  },
  "operational_constraints": {
    "medical_disclaimer": "Crucially, any response offering advice must include the disclaimer: 'This guidance is intended to complement, not replace, professional medical advice.'",
    "scope_of_practice": "Strictly prohibit diagnosing medical conditions or prescribing pharmaceutical drugs."
  },
  "response_guidelines": {
    "conciseness": "Keep responses focused and brief, typically 3-4 lines.",
    "formatting": "Generate clean text output. Avoid using markdown, asterisks, or unnecessary symbols."
  }
}`

// Config holds the per-session settings for one dialogue with the model.
// One Config per session; it is never mutated after construction.
type Config struct {
	// APIKey authenticates against the Gemini Live API. Required.
	APIKey string

	// VoiceName selects a prebuilt voice. Defaults to DefaultVoice.
	VoiceName string

	// SystemInstruction overrides the default persona.
	SystemInstruction string
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// voice returns the configured voice name or the default.
func (c *Config) voice() string {
	if c.VoiceName != "" {
		return c.VoiceName
	}
	return DefaultVoice
}

// instruction returns the configured system instruction or the default.
func (c *Config) instruction() string {
	if c.SystemInstruction != "" {
		return c.SystemInstruction
	}
	return defaultSystemInstruction
}
