package handlers

import (
	"context"
	"log"
	"time"

	"github.com/paymint/paymint-bot/internal/client/paystack"
	"github.com/paymint/paymint-bot/internal/client/whatsapp"
	"github.com/paymint/paymint-bot/internal/models"
	"github.com/paymint/paymint-bot/internal/receipt"
	"github.com/paymint/paymint-bot/internal/state"
)

// MessageSender is the outbound side of the conversation.
type MessageSender interface {
	SendText(ctx context.Context, to string, text string) error
	SendImage(ctx context.Context, to string, image []byte, caption string) error
	SendButtons(ctx context.Context, to string, body string, buttons []whatsapp.Button) error
}

// VendorStore persists vendor profiles, keyed by phone.
type VendorStore interface {
	FindByPhone(ctx context.Context, phone string) (*models.Vendor, error)
	UpsertProfile(ctx context.Context, vendor *models.Vendor) error
	UpdateEmail(ctx context.Context, phone, email string) error
	DeleteByPhone(ctx context.Context, phone string) error
}

// SaleStore persists receipts.
type SaleStore interface {
	Create(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	CountByVendor(ctx context.Context, phone string) (int64, error)
	FindByVendorInRange(ctx context.Context, phone string, start, end time.Time) ([]models.Sale, error)
}

// SummaryStore maintains the per-day and per-month running totals.
type SummaryStore interface {
	IncrementDaily(ctx context.Context, phone, date string, amount float64, count int64) error
	IncrementMonthly(ctx context.Context, phone, month string, amount float64, count int64) error
}

// PaymentProvider initiates subscription payments.
type PaymentProvider interface {
	CreatePaymentLink(ctx context.Context, email, phone string) (string, error)
	CreateBankTransfer(ctx context.Context, email, phone string) (*paystack.BankTransfer, error)
}

// BotHandler routes every inbound WhatsApp message to exactly one of the
// session flows or slash commands.
type BotHandler struct {
	sender    MessageSender
	vendors   VendorStore
	sales     SaleStore
	summaries SummaryStore
	payments  PaymentProvider
	sessions  *state.Manager
	loc       *time.Location

	// swappable in tests
	renderImage func(vendor *models.Vendor, items []models.SaleItem, total float64, note, date, timeOfDay string) ([]byte, error)
	now         func() time.Time
}

func NewBotHandler(
	sender MessageSender,
	vendors VendorStore,
	sales SaleStore,
	summaries SummaryStore,
	payments PaymentProvider,
	sessions *state.Manager,
	loc *time.Location,
) *BotHandler {
	return &BotHandler{
		sender:      sender,
		vendors:     vendors,
		sales:       sales,
		summaries:   summaries,
		payments:    payments,
		sessions:    sessions,
		loc:         loc,
		renderImage: receipt.Render,
		now:         time.Now,
	}
}

// reply sends a text message, logging rather than propagating transport
// failures: one lost reply must not take the process down.
func (h *BotHandler) reply(ctx context.Context, to, text string) {
	if err := h.sender.SendText(ctx, to, text); err != nil {
		log.Printf("Failed to send message to %s: %v", to, err)
	}
}

func (h *BotHandler) replyGenericError(ctx context.Context, to string) {
	h.reply(ctx, to, "❌ Something went wrong. Please try again.")
}
