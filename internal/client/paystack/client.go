package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/paymint/paymint-bot/internal/config"
)

const baseURL = "https://api.paystack.co"

// Client talks to the Paystack REST API for subscription payments.
type Client struct {
	cfg        config.PaystackConfig
	httpClient *http.Client
}

func New(cfg config.PaystackConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BankTransfer is the dedicated account a vendor pays into.
type BankTransfer struct {
	Reference     string
	AccountNumber string
	AccountName   string
	BankName      string
	Amount        int64
	ExpiresAt     string
}

// Transaction is the subset of a verified transaction we act on.
type Transaction struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"` // minor units (kobo)
	Channel   string `json:"channel"`
}

func (c *Client) request(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("paystack api error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode paystack response: %w", err)
		}
	}
	return nil
}

// CreatePaymentLink initializes a transaction covering every channel and
// returns the hosted checkout URL, or an error when Paystack declines.
func (c *Client) CreatePaymentLink(ctx context.Context, email, phone string) (string, error) {
	reference := "pm-" + uuid.NewString()

	var parsed struct {
		Data struct {
			AuthorizationURL string `json:"authorization_url"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	err := c.request(ctx, http.MethodPost, "/transaction/initialize", map[string]any{
		"email":     email,
		"amount":    c.cfg.PlanAmount() * 100, // Paystack wants minor units
		"currency":  c.cfg.Currency(),
		"reference": reference,
		"channels":  []string{"card", "bank", "ussd", "qr", "mobile_money", "bank_transfer"},
		"metadata": map[string]any{
			"vendor": phone,
			"plan":   "premium",
		},
		"callback_url": c.cfg.CallbackURL(),
	}, &parsed)
	if err != nil {
		return "", err
	}
	if parsed.Data.AuthorizationURL == "" {
		return "", fmt.Errorf("paystack returned no authorization url")
	}
	return parsed.Data.AuthorizationURL, nil
}

// CreateBankTransfer initializes a bank-transfer-only transaction and asks
// Paystack for a dedicated account the vendor can pay into.
func (c *Client) CreateBankTransfer(ctx context.Context, email, phone string) (*BankTransfer, error) {
	reference := "pm-" + uuid.NewString()

	var initParsed struct {
		Data struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	err := c.request(ctx, http.MethodPost, "/transaction/initialize", map[string]any{
		"email":     email,
		"amount":    c.cfg.PlanAmount() * 100,
		"currency":  c.cfg.Currency(),
		"reference": reference,
		"channels":  []string{"bank_transfer"},
		"metadata": map[string]any{
			"vendor":         phone,
			"plan":           "premium",
			"payment_method": "bank_transfer",
		},
	}, &initParsed)
	if err != nil {
		return nil, err
	}

	var acctParsed struct {
		Data struct {
			AccountNumber string `json:"account_number"`
			AccountName   string `json:"account_name"`
			Bank          struct {
				Name string `json:"name"`
			} `json:"bank"`
			ExpiresAt string `json:"expires_at"`
		} `json:"data"`
	}
	err = c.request(ctx, http.MethodPost, "/dedicated_account", map[string]any{
		"email":          email,
		"first_name":     "Paymint",
		"last_name":      "Customer",
		"phone":          phone,
		"preferred_bank": "wema-bank",
		"country":        "NG",
		"amount":         c.cfg.PlanAmount() * 100,
		"currency":       c.cfg.Currency(),
		"metadata": map[string]any{
			"vendor":    phone,
			"reference": reference,
		},
	}, &acctParsed)
	if err != nil {
		return nil, err
	}

	return &BankTransfer{
		Reference:     reference,
		AccountNumber: acctParsed.Data.AccountNumber,
		AccountName:   acctParsed.Data.AccountName,
		BankName:      acctParsed.Data.Bank.Name,
		Amount:        c.cfg.PlanAmount(),
		ExpiresAt:     acctParsed.Data.ExpiresAt,
	}, nil
}

// VerifyTransaction fetches the current state of a transaction by reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	var parsed struct {
		Data Transaction `json:"data"`
	}
	err := c.request(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &parsed)
	if err != nil {
		return nil, err
	}
	return &parsed.Data, nil
}

// ValidateSignature checks the x-paystack-signature header: HMAC-SHA512 of
// the raw body keyed with the secret key.
func ValidateSignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
