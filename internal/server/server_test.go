package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paymint/paymint-bot/internal/client/paystack"
	"github.com/paymint/paymint-bot/internal/client/whatsapp"
	"github.com/paymint/paymint-bot/internal/handlers"
	"github.com/paymint/paymint-bot/internal/models"
	"github.com/paymint/paymint-bot/internal/services"
	"github.com/paymint/paymint-bot/internal/state"
)

type stubSender struct{}

func (stubSender) SendText(context.Context, string, string) error  { return nil }
func (stubSender) SendImage(context.Context, string, []byte, string) error {
	return nil
}
func (stubSender) SendButtons(context.Context, string, string, []whatsapp.Button) error {
	return nil
}

type stubVendorStore struct{}

func (stubVendorStore) FindByPhone(context.Context, string) (*models.Vendor, error) {
	return nil, nil
}
func (stubVendorStore) UpsertProfile(context.Context, *models.Vendor) error { return nil }
func (stubVendorStore) UpdateEmail(context.Context, string, string) error   { return nil }
func (stubVendorStore) DeleteByPhone(context.Context, string) error         { return nil }
func (stubVendorStore) UpgradeToPremium(context.Context, string, time.Time, string, string, int64) error {
	return nil
}
func (stubVendorStore) UpdatePaymentStatus(context.Context, string, string) error { return nil }

type stubSaleStore struct{}

func (stubSaleStore) Create(_ context.Context, sale *models.Sale) (*models.Sale, error) {
	return sale, nil
}
func (stubSaleStore) CountByVendor(context.Context, string) (int64, error) { return 0, nil }
func (stubSaleStore) FindByVendorInRange(context.Context, string, time.Time, time.Time) ([]models.Sale, error) {
	return nil, nil
}

type stubSummaryStore struct{}

func (stubSummaryStore) IncrementDaily(context.Context, string, string, float64, int64) error {
	return nil
}
func (stubSummaryStore) IncrementMonthly(context.Context, string, string, float64, int64) error {
	return nil
}

type stubPayments struct{}

func (stubPayments) CreatePaymentLink(context.Context, string, string) (string, error) {
	return "", nil
}
func (stubPayments) CreateBankTransfer(context.Context, string, string) (*paystack.BankTransfer, error) {
	return nil, nil
}

const (
	testVerifyToken    = "verify-me"
	testPaystackSecret = "sk_test_secret"
)

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)

	botHandler := handlers.NewBotHandler(
		stubSender{}, stubVendorStore{}, stubSaleStore{}, stubSummaryStore{},
		stubPayments{}, state.NewManager(), time.UTC,
	)
	billing := services.NewBillingService(stubVendorStore{}, stubSender{}, time.UTC)

	return New(testVerifyToken, testPaystackSecret, botHandler, billing)
}

func TestHealth(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestWhatsAppVerification(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode int
		wantBody string
	}{
		{
			name:     "valid subscription",
			query:    "hub.mode=subscribe&hub.verify_token=" + testVerifyToken + "&hub.challenge=12345",
			wantCode: http.StatusOK,
			wantBody: "12345",
		},
		{
			name:     "wrong token",
			query:    "hub.mode=subscribe&hub.verify_token=nope&hub.challenge=12345",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "wrong mode",
			query:    "hub.mode=unsubscribe&hub.verify_token=" + testVerifyToken + "&hub.challenge=12345",
			wantCode: http.StatusForbidden,
		},
	}

	srv := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/webhook/whatsapp?"+tt.query, nil))

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want the challenge echoed", w.Body.String())
			}
		})
	}
}

func TestWhatsAppWebhookAcknowledged(t *testing.T) {
	srv := newTestServer()

	body := `{"object":"whatsapp_business_account","entry":[]}`
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", bytes.NewBufferString(body)))

	if w.Code != http.StatusOK || w.Body.String() != "EVENT_RECEIVED" {
		t.Errorf("got %d %q, want 200 EVENT_RECEIVED", w.Code, w.Body.String())
	}
}

func TestPaystackWebhookSignature(t *testing.T) {
	srv := newTestServer()
	body := []byte(`{"event":"transfer.success","data":{}}`)

	mac := hmac.New(sha512.New, []byte(testPaystackSecret))
	mac.Write(body)
	goodSig := hex.EncodeToString(mac.Sum(nil))

	t.Run("valid signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader(body))
		req.Header.Set("x-paystack-signature", goodSig)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader(body))
		req.Header.Set("x-paystack-signature", "deadbeef")
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("missing signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader(body))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
