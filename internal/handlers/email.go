package handlers

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/paymint/paymint-bot/internal/state"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// handleEmailCommand saves an inline address (/email me@shop.ng) or arms
// an email-capture session so the next message is read as the address.
func (h *BotHandler) handleEmailCommand(ctx context.Context, from, text string) {
	fields := strings.Fields(text)

	if len(fields) < 2 {
		h.sessions.Set(from, &state.Session{Kind: state.KindEmailCapture})
		h.reply(ctx, from, "📧 *Enter your email address*\n\nPlease reply with your email.")
		return
	}

	h.saveEmail(ctx, from, fields[1])
}

func (h *BotHandler) saveEmail(ctx context.Context, from, email string) {
	if !emailPattern.MatchString(email) {
		h.reply(ctx, from, "❌ Invalid email address. Type */email* to try again.")
		return
	}

	vendor, err := h.vendors.FindByPhone(ctx, from)
	if err != nil {
		log.Printf("Failed to look up vendor %s: %v", from, err)
		h.replyGenericError(ctx, from)
		return
	}
	if vendor == nil {
		h.reply(ctx, from, "❌ You must set up your business first. Send any message to begin.")
		return
	}

	if err := h.vendors.UpdateEmail(ctx, from, email); err != nil {
		log.Printf("Failed to save email for %s: %v", from, err)
		h.replyGenericError(ctx, from)
		return
	}

	h.reply(ctx, from, "✅ Your email has been saved as:\n\n📧 *"+email+"*")
}
