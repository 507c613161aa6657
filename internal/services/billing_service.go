package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/paymint/paymint-bot/internal/receipt"
)

// Event is a Paystack webhook event, already signature-checked by the
// HTTP layer.
type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

type EventData struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"` // minor units (kobo)
	Channel   string `json:"channel"`
	Metadata  struct {
		Vendor string `json:"vendor"`
		Plan   string `json:"plan"`
	} `json:"metadata"`
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
	GatewayResponse string `json:"gateway_response"`
}

type billingVendorStore interface {
	UpgradeToPremium(ctx context.Context, phone string, expiresOn time.Time, reference, method string, amount int64) error
	UpdatePaymentStatus(ctx context.Context, phone, status string) error
}

type textSender interface {
	SendText(ctx context.Context, to string, text string) error
}

// BillingService applies Paystack webhook events to vendor subscriptions
// and notifies the vendor over WhatsApp.
type BillingService struct {
	vendors billingVendorStore
	sender  textSender
	loc     *time.Location

	now func() time.Time
}

func NewBillingService(vendors billingVendorStore, sender textSender, loc *time.Location) *BillingService {
	return &BillingService{
		vendors: vendors,
		sender:  sender,
		loc:     loc,
		now:     time.Now,
	}
}

func (s *BillingService) HandleEvent(ctx context.Context, event Event) error {
	log.Printf("🔔 Paystack event: %s", event.Event)

	switch event.Event {
	case "charge.success":
		return s.handleChargeSuccess(ctx, event.Data)
	case "charge.failed":
		return s.handleChargeFailed(ctx, event.Data)
	default:
		log.Printf("Ignoring unhandled Paystack event: %s", event.Event)
		return nil
	}
}

func (s *BillingService) handleChargeSuccess(ctx context.Context, data EventData) error {
	phone := data.Metadata.Vendor
	if phone == "" {
		log.Printf("charge.success %s carries no vendor metadata, skipping", data.Reference)
		return nil
	}

	// One successful charge buys one month of premium.
	expires := s.now().In(s.loc).AddDate(0, 1, 0)
	amount := data.Amount / 100

	err := s.vendors.UpgradeToPremium(ctx, phone, expires, data.Reference, data.Channel, amount)
	if err != nil {
		return fmt.Errorf("failed to upgrade vendor %s: %w", phone, err)
	}
	log.Printf("✅ Vendor %s upgraded to premium via %s until %s", phone, data.Channel, expires.Format("2006-01-02"))

	msg := fmt.Sprintf(
		"🎉 *Payment Successful!*\n\n✅ Welcome to Paymint Premium!\n\n💰 Amount: %s\n🔗 Reference: %s\n📅 Valid until: %s\n\n🚀 Unlimited receipts are now unlocked. Type /help to explore.",
		receipt.FormatAmount(float64(amount)), data.Reference, expires.Format("Jan 2, 2006"))
	if err := s.sender.SendText(ctx, phone, msg); err != nil {
		log.Printf("Failed to send payment confirmation to %s: %v", phone, err)
	}
	return nil
}

func (s *BillingService) handleChargeFailed(ctx context.Context, data EventData) error {
	phone := data.Metadata.Vendor
	if phone == "" {
		log.Printf("charge.failed %s carries no vendor metadata, skipping", data.Reference)
		return nil
	}

	if err := s.vendors.UpdatePaymentStatus(ctx, phone, "failed"); err != nil {
		return fmt.Errorf("failed to record failed payment for %s: %w", phone, err)
	}

	msg := "❌ *Payment Failed*\n\n⚠️ Your payment could not be processed."
	if data.Reference != "" {
		msg += "\n🔗 Reference: " + data.Reference
	}
	if data.GatewayResponse != "" {
		msg += "\n📝 Reason: " + data.GatewayResponse
	}
	msg += "\n\n*Quick Actions:*\n• Type */card* - Try card payment\n• Type */transfer* - Use bank transfer\n\nDon't worry, you can try again! 💪"

	if err := s.sender.SendText(ctx, phone, msg); err != nil {
		log.Printf("Failed to send payment failure notice to %s: %v", phone, err)
	}
	return nil
}
