package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/paymint/paymint-bot/internal/client/whatsapp"
	"github.com/paymint/paymint-bot/internal/models"
)

func (h *BotHandler) handleSubscribe(ctx context.Context, vendor *models.Vendor, from string) {
	if vendor == nil {
		h.reply(ctx, from, "❌ You must set up your business first. Send any message to begin.")
		return
	}

	now := h.now().In(h.loc)
	if vendor.PremiumActive(now) {
		h.reply(ctx, from, fmt.Sprintf(
			"🎉 You're already on the *Premium* plan!\nValid until *%s*.",
			vendor.ExpiresOn.In(h.loc).Format("Jan 2, 2006")))
		return
	}

	if vendor.Email == "" {
		h.reply(ctx, from, "📧 I need your email for payment receipts first.\n\nType */email your@email.com* and then /subscribe again.")
		return
	}

	body := "🚀 *Upgrade to Premium* for:\n✅ Unlimited receipts\n✅ Logo on receipts\n✅ Sales reports\n\nHow would you like to pay?"
	err := h.sender.SendButtons(ctx, from, body, []whatsapp.Button{
		{ID: buttonPayCard, Title: "💳 Card"},
		{ID: buttonPayTransfer, Title: "🏦 Bank Transfer"},
		{ID: buttonPayOptions, Title: "📱 More Options"},
	})
	if err != nil {
		log.Printf("Failed to send payment menu to %s: %v", from, err)
		h.replyGenericError(ctx, from)
	}
}

// requirePayableVendor enforces the shared /card /transfer /pay
// preconditions: an onboarded vendor with an email on file.
func (h *BotHandler) requirePayableVendor(ctx context.Context, vendor *models.Vendor, from string) bool {
	if vendor == nil {
		h.reply(ctx, from, "❌ You must set up your business first. Send any message to begin.")
		return false
	}
	if vendor.Email == "" {
		h.reply(ctx, from, "📧 I need your email first.\n\nType */email your@email.com* and try again.")
		return false
	}
	return true
}

func (h *BotHandler) handleCardPayment(ctx context.Context, vendor *models.Vendor, from string) {
	if !h.requirePayableVendor(ctx, vendor, from) {
		return
	}

	link, err := h.payments.CreatePaymentLink(ctx, vendor.Email, from)
	if err != nil || link == "" {
		log.Printf("Failed to create payment link for %s: %v", from, err)
		h.reply(ctx, from, "❌ Couldn't create your payment link. Please try again in a moment.")
		return
	}

	h.reply(ctx, from, fmt.Sprintf(
		"💳 *Card Payment*\n\nPay securely here:\n%s\n\n⚡ Your premium features activate automatically after payment.", link))
}

func (h *BotHandler) handleBankTransfer(ctx context.Context, vendor *models.Vendor, from string) {
	if !h.requirePayableVendor(ctx, vendor, from) {
		return
	}

	transfer, err := h.payments.CreateBankTransfer(ctx, vendor.Email, from)
	if err != nil || transfer == nil {
		log.Printf("Failed to create bank transfer for %s: %v", from, err)
		h.reply(ctx, from, "❌ Couldn't set up a bank transfer. Please try again in a moment.")
		return
	}

	h.reply(ctx, from, fmt.Sprintf(
		"🏦 *Bank Transfer*\n\n💳 Account: %s\n👤 Name: %s\n🏦 Bank: %s\n💰 Amount: ₦%d\n\n⏰ Expires: %s\n🔗 Reference: %s\n\nTransfer the exact amount and your premium features activate automatically.",
		transfer.AccountNumber, transfer.AccountName, transfer.BankName,
		transfer.Amount, transfer.ExpiresAt, transfer.Reference))
}

func (h *BotHandler) handlePaymentOptions(ctx context.Context, vendor *models.Vendor, from string) {
	if !h.requirePayableVendor(ctx, vendor, from) {
		return
	}

	h.reply(ctx, from, "💡 *Payment Method Guide*\n\n"+
		"💳 *Card* - Instant\nAll debit/credit cards accepted.\nType */card*\n\n"+
		"🏦 *Bank Transfer* - 1-3 minutes\nNo card required.\nType */transfer*\n\n"+
		"*Need help choosing?* Just reply here! 💬")
}
