package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/paymint/paymint-bot/internal/config"
)

const graphBaseURL = "https://graph.facebook.com"

// Button is one reply button on an interactive message.
type Button struct {
	ID    string
	Title string
}

// Client sends messages through the WhatsApp Cloud API.
type Client struct {
	cfg        config.WhatsAppConfig
	httpClient *http.Client
}

func New(cfg config.WhatsAppConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) messagesURL() string {
	return fmt.Sprintf("%s/%s/%s/messages", graphBaseURL, c.cfg.APIVersion(), c.cfg.PhoneNumberID())
}

func (c *Client) post(ctx context.Context, url string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp api error: status=%d body=%s", resp.StatusCode, string(raw))
	}
	return nil
}

// SendText sends a plain text message.
func (c *Client) SendText(ctx context.Context, to string, text string) error {
	return c.post(ctx, c.messagesURL(), map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]any{
			"body": text,
		},
	})
}

// SendImage uploads the PNG bytes as media and sends them with a caption.
func (c *Client) SendImage(ctx context.Context, to string, image []byte, caption string) error {
	mediaID, err := c.uploadMedia(ctx, image)
	if err != nil {
		return err
	}

	return c.post(ctx, c.messagesURL(), map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "image",
		"image": map[string]any{
			"id":      mediaID,
			"caption": caption,
		},
	})
}

// SendButtons sends an interactive reply-button message. The Cloud API
// allows at most three buttons per message.
func (c *Client) SendButtons(ctx context.Context, to string, body string, buttons []Button) error {
	actionButtons := make([]map[string]any, 0, len(buttons))
	for _, b := range buttons {
		actionButtons = append(actionButtons, map[string]any{
			"type": "reply",
			"reply": map[string]any{
				"id":    b.ID,
				"title": b.Title,
			},
		})
	}

	return c.post(ctx, c.messagesURL(), map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type": "button",
			"body": map[string]any{
				"text": body,
			},
			"action": map[string]any{
				"buttons": actionButtons,
			},
		},
	})
}

func (c *Client) uploadMedia(ctx context.Context, image []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("messaging_product", "whatsapp"); err != nil {
		return "", err
	}
	if err := w.WriteField("type", "image/png"); err != nil {
		return "", err
	}
	part, err := w.CreateFormFile("file", "receipt.png")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(image); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/%s/media", graphBaseURL, c.cfg.APIVersion(), c.cfg.PhoneNumberID())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken())
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("whatsapp media upload error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("whatsapp media upload returned no id")
	}
	return parsed.ID, nil
}
