package voice

import (
	"encoding/json"
	"testing"
)

func TestServerMessageDecode(t *testing.T) {
	raw := `{
		"serverContent": {
			"modelTurn": {
				"parts": [
					{"inlineData": {"mimeType": "audio/L16;rate=24000", "data": "AAEC"}},
					{"text": "Hello from the model"}
				]
			}
		}
	}`

	var msg ServerMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if msg.turnComplete() {
		t.Error("message without marker reported turn complete")
	}
	if msg.ServerContent == nil || msg.ServerContent.ModelTurn == nil {
		t.Fatal("model turn not decoded")
	}

	parts := msg.ServerContent.ModelTurn.Parts
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != "audio/L16;rate=24000" {
		t.Errorf("inline data not decoded: %+v", parts[0])
	}
	if parts[0].InlineData.Data != "AAEC" {
		t.Errorf("data = %q, want AAEC", parts[0].InlineData.Data)
	}
	if parts[1].Text != "Hello from the model" {
		t.Errorf("text = %q", parts[1].Text)
	}
}

func TestServerMessageTurnComplete(t *testing.T) {
	var msg ServerMessage
	if err := json.Unmarshal([]byte(`{"serverContent": {"turnComplete": true}}`), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !msg.turnComplete() {
		t.Error("turn completion marker not decoded")
	}
}

func TestServerMessageSetupComplete(t *testing.T) {
	var msg ServerMessage
	if err := json.Unmarshal([]byte(`{"setupComplete": {}}`), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.SetupComplete == nil {
		t.Error("setupComplete not decoded")
	}
	if msg.turnComplete() {
		t.Error("setup acknowledgment reported turn complete")
	}
}
