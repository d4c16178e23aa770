package voice

// ServerMessage is one unit pushed by the Live API over the WebSocket.
// Exactly one of the fields is set per message.
type ServerMessage struct {
	SetupComplete *SetupComplete `json:"setupComplete,omitempty"`
	ServerContent *ServerContent `json:"serverContent,omitempty"`
}

// SetupComplete acknowledges the session setup message.
type SetupComplete struct{}

// ServerContent carries one slice of the model's reply.
type ServerContent struct {
	// TurnComplete marks the last message of a turn.
	TurnComplete bool `json:"turnComplete,omitempty"`

	// Interrupted is set when generation was cut off server-side.
	Interrupted bool `json:"interrupted,omitempty"`

	ModelTurn *ModelTurn `json:"modelTurn,omitempty"`
}

// ModelTurn holds the content parts of a reply slice.
type ModelTurn struct {
	Parts []Part `json:"parts,omitempty"`
}

// Part is a single content fragment: inline binary audio or plain text.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData is base64-encoded binary content with its MIME descriptor.
type InlineData struct {
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// turnComplete reports whether this message terminates the current turn.
func (m *ServerMessage) turnComplete() bool {
	return m.ServerContent != nil && m.ServerContent.TurnComplete
}
