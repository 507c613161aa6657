package whatsapp

import (
	"encoding/json"
	"testing"
)

const textPayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "id": "123",
    "changes": [{
      "field": "messages",
      "value": {
        "messaging_product": "whatsapp",
        "contacts": [{"profile": {"name": "Ada"}, "wa_id": "2348011112222"}],
        "messages": [{
          "from": "2348011112222",
          "id": "wamid.abc",
          "timestamp": "1724760000",
          "type": "text",
          "text": {"body": "/help"}
        }]
      }
    }]
  }]
}`

const buttonPayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "changes": [{
      "value": {
        "messages": [{
          "from": "2348011112222",
          "id": "wamid.def",
          "type": "interactive",
          "interactive": {
            "type": "button_reply",
            "button_reply": {"id": "reset_confirm", "title": "✅ Yes, Reset"}
          }
        }]
      }
    }]
  }]
}`

const statusPayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "changes": [{
      "value": {
        "messaging_product": "whatsapp"
      }
    }]
  }]
}`

func decode(t *testing.T, raw string) WebhookPayload {
	t.Helper()
	var p WebhookPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return p
}

func TestExtractMessagesText(t *testing.T) {
	msgs := ExtractMessages(decode(t, textPayload))

	if len(msgs) != 1 {
		t.Fatalf("extracted %d messages, want 1", len(msgs))
	}
	msg := msgs[0]
	if msg.From != "2348011112222" || msg.Text != "/help" || msg.ButtonID != "" {
		t.Errorf("message = %+v", msg)
	}
}

func TestExtractMessagesButtonReply(t *testing.T) {
	msgs := ExtractMessages(decode(t, buttonPayload))

	if len(msgs) != 1 {
		t.Fatalf("extracted %d messages, want 1", len(msgs))
	}
	msg := msgs[0]
	if msg.ButtonID != "reset_confirm" {
		t.Errorf("ButtonID = %q, want reset_confirm", msg.ButtonID)
	}
	if msg.Text != "✅ Yes, Reset" {
		t.Errorf("Text = %q, want the button title", msg.Text)
	}
}

func TestExtractMessagesStatusUpdate(t *testing.T) {
	if msgs := ExtractMessages(decode(t, statusPayload)); len(msgs) != 0 {
		t.Errorf("status-only payloads carry no messages, got %v", msgs)
	}
}
