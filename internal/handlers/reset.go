package handlers

import (
	"context"
	"log"

	"github.com/paymint/paymint-bot/internal/client/whatsapp"
	"github.com/paymint/paymint-bot/internal/models"
	"github.com/paymint/paymint-bot/internal/state"
)

// handleReset asks for confirmation via buttons. The decision travels in
// the button payload; the ResetConfirm session is only a UI marker.
func (h *BotHandler) handleReset(ctx context.Context, vendor *models.Vendor, from string) {
	if vendor == nil {
		h.reply(ctx, from, "ℹ️ There's no business profile to reset.")
		return
	}

	h.sessions.Set(from, &state.Session{Kind: state.KindResetConfirm})

	warning := "⚠️ *WARNING*\n\nAre you sure you want to reset your vendor profile?\n\nThis will:\n• 🗑️ Delete your business account\n• ⚠️ This action cannot be undone\n\n*Please confirm below:*"
	err := h.sender.SendButtons(ctx, from, warning, []whatsapp.Button{
		{ID: buttonResetConfirm, Title: "✅ Yes, Reset"},
		{ID: buttonResetCancel, Title: "❌ Cancel"},
	})
	if err != nil {
		log.Printf("Failed to send reset confirmation to %s: %v", from, err)
		h.sessions.Delete(from)
		h.replyGenericError(ctx, from)
	}
}

// handleResetButton deletes the vendor row only: sales and summaries stay
// under the old phone and re-attach if the same number onboards again.
func (h *BotHandler) handleResetButton(ctx context.Context, from, buttonID string) {
	h.sessions.Delete(from)

	if buttonID != buttonResetConfirm {
		h.reply(ctx, from, "ℹ️ Reset cancelled. Your profile is safe.")
		return
	}

	if err := h.vendors.DeleteByPhone(ctx, from); err != nil {
		log.Printf("Failed to delete vendor %s: %v", from, err)
		h.replyGenericError(ctx, from)
		return
	}

	h.reply(ctx, from, "✅ Your vendor profile has been deleted.\n\nSend any message to set up a new business.")
}
