package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/paymint/paymint-bot/internal/client/whatsapp"
	"github.com/paymint/paymint-bot/internal/models"
	"github.com/paymint/paymint-bot/internal/state"
)

// Button reply identifiers carried in interactive payloads.
const (
	buttonResetConfirm = "reset_confirm"
	buttonResetCancel  = "reset_cancel"
	buttonPayCard      = "pay_card"
	buttonPayTransfer  = "pay_transfer"
	buttonPayOptions   = "pay_options"
)

// HandleMessage routes one inbound message. Exactly one of the following
// claims it, checked in this order:
//
//  1. a structured button reply;
//  2. unknown sender with no session: onboarding starts;
//  3. an active onboarding session, whatever the text says;
//  4. an active email-capture session;
//  5. the command table, with a static fallback.
//
// The order is load-bearing: a vendor mid-onboarding who types /help must
// land in onboarding, not in the help handler.
func (h *BotHandler) HandleMessage(ctx context.Context, msg whatsapp.IncomingMessage) {
	from := msg.From

	if msg.ButtonID != "" {
		h.handleButtonReply(ctx, from, msg.ButtonID)
		return
	}

	vendor, err := h.vendors.FindByPhone(ctx, from)
	if err != nil {
		log.Printf("Failed to look up vendor %s: %v", from, err)
		h.replyGenericError(ctx, from)
		return
	}

	session := h.sessions.Get(from)

	if vendor == nil && session == nil {
		h.startOnboarding(ctx, from)
		return
	}

	if session != nil {
		switch session.Kind {
		case state.KindOnboarding:
			h.advanceOnboarding(ctx, session, msg.Text)
			return
		case state.KindEmailCapture:
			// The session is cleared before validation: an invalid reply
			// does not re-arm capture, the user retypes /email.
			h.sessions.Delete(from)
			h.saveEmail(ctx, from, strings.TrimSpace(msg.Text))
			return
		}
		// A reset-confirmation marker never claims text; the decision
		// arrives as a button reply.
	}

	h.dispatchCommand(ctx, vendor, from, msg.Text)
}

func (h *BotHandler) dispatchCommand(ctx context.Context, vendor *models.Vendor, from, text string) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.HasPrefix(normalized, "/receipt"):
		h.handleReceipt(ctx, vendor, from, strings.TrimSpace(text))
	case normalized == "/sales today":
		h.handleSalesToday(ctx, vendor, from)
	case normalized == "/sales month":
		h.handleSalesMonth(ctx, vendor, from)
	case normalized == "/subscribe":
		h.handleSubscribe(ctx, vendor, from)
	case normalized == "/card":
		h.handleCardPayment(ctx, vendor, from)
	case normalized == "/transfer":
		h.handleBankTransfer(ctx, vendor, from)
	case normalized == "/pay":
		h.handlePaymentOptions(ctx, vendor, from)
	case strings.HasPrefix(normalized, "/email"):
		h.handleEmailCommand(ctx, from, strings.TrimSpace(text))
	case normalized == "/reset":
		h.handleReset(ctx, vendor, from)
	case normalized == "/help":
		h.handleHelp(ctx, from)
	default:
		h.reply(ctx, from, "🤖 I didn't understand that.\nType */help* to see what I can do.")
	}
}

func (h *BotHandler) handleButtonReply(ctx context.Context, from, buttonID string) {
	switch buttonID {
	case buttonResetConfirm, buttonResetCancel:
		h.handleResetButton(ctx, from, buttonID)
		return
	}

	vendor, err := h.vendors.FindByPhone(ctx, from)
	if err != nil {
		log.Printf("Failed to look up vendor %s: %v", from, err)
		h.replyGenericError(ctx, from)
		return
	}

	switch buttonID {
	case buttonPayCard:
		h.handleCardPayment(ctx, vendor, from)
	case buttonPayTransfer:
		h.handleBankTransfer(ctx, vendor, from)
	case buttonPayOptions:
		h.handlePaymentOptions(ctx, vendor, from)
	default:
		log.Printf("Ignoring unknown button reply %q from %s", buttonID, from)
	}
}
