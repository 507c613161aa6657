package whatsapp

import (
	"strings"
)

// WebhookPayload is the slice of the Cloud API webhook body we care about:
// inbound text messages and interactive button replies.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				MessagingProduct string `json:"messaging_product"`
				Contacts         []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
					WaID string `json:"wa_id"`
				} `json:"contacts"`
				Messages []struct {
					From      string `json:"from"`
					ID        string `json:"id"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      *struct {
						Body string `json:"body"`
					} `json:"text,omitempty"`
					Interactive *struct {
						Type        string `json:"type"`
						ButtonReply *struct {
							ID    string `json:"id"`
							Title string `json:"title"`
						} `json:"button_reply,omitempty"`
						ListReply *struct {
							ID    string `json:"id"`
							Title string `json:"title"`
						} `json:"list_reply,omitempty"`
					} `json:"interactive,omitempty"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// IncomingMessage is one inbound event: either free text or a structured
// button/list reply (ButtonID set).
type IncomingMessage struct {
	From     string
	ID       string
	Text     string
	ButtonID string
}

// ExtractMessages flattens the webhook payload into the message kinds the
// router understands. Statuses, reactions and media types are dropped.
func ExtractMessages(p WebhookPayload) []IncomingMessage {
	var out []IncomingMessage
	for _, e := range p.Entry {
		for _, c := range e.Changes {
			for _, msg := range c.Value.Messages {
				switch strings.ToLower(msg.Type) {
				case "text":
					if msg.Text != nil {
						out = append(out, IncomingMessage{
							From: msg.From,
							ID:   msg.ID,
							Text: msg.Text.Body,
						})
					}
				case "interactive":
					if msg.Interactive == nil {
						continue
					}
					if r := msg.Interactive.ButtonReply; r != nil {
						out = append(out, IncomingMessage{
							From:     msg.From,
							ID:       msg.ID,
							Text:     r.Title,
							ButtonID: r.ID,
						})
					} else if r := msg.Interactive.ListReply; r != nil {
						out = append(out, IncomingMessage{
							From:     msg.From,
							ID:       msg.ID,
							Text:     r.Title,
							ButtonID: r.ID,
						})
					}
				}
			}
		}
	}
	return out
}
