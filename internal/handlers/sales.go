package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/paymint/paymint-bot/internal/models"
	"github.com/paymint/paymint-bot/internal/receipt"
)

func (h *BotHandler) handleSalesToday(ctx context.Context, vendor *models.Vendor, from string) {
	if vendor == nil {
		h.reply(ctx, from, "❌ You must set up your business first. Send any message to begin.")
		return
	}

	now := h.now().In(h.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	sales, err := h.sales.FindByVendorInRange(ctx, from, start, end)
	if err != nil {
		log.Printf("Failed to query today's sales for %s: %v", from, err)
		h.replyGenericError(ctx, from)
		return
	}

	if len(sales) == 0 {
		h.reply(ctx, from, "📊 No sales recorded today.")
		return
	}

	var total float64
	for _, sale := range sales {
		total += sale.Total
	}

	h.reply(ctx, from, fmt.Sprintf(
		"📅 *Today's Sales Summary*\n🧾 Receipts: %d\n💵 Total: %s\n\n✅ Keep going! Consistency is profit.",
		len(sales), receipt.FormatAmount(total)))
}

func (h *BotHandler) handleSalesMonth(ctx context.Context, vendor *models.Vendor, from string) {
	if vendor == nil {
		h.reply(ctx, from, "❌ You must set up your business first. Send any message to begin.")
		return
	}

	now := h.now().In(h.loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	sales, err := h.sales.FindByVendorInRange(ctx, from, start, end)
	if err != nil {
		log.Printf("Failed to query month's sales for %s: %v", from, err)
		h.replyGenericError(ctx, from)
		return
	}

	if len(sales) == 0 {
		h.reply(ctx, from, "📆 No sales recorded this month.")
		return
	}

	var total float64
	for _, sale := range sales {
		total += sale.Total
	}

	h.reply(ctx, from, fmt.Sprintf(
		"📊 *This Month's Sales Summary*\n🧾 Receipts: %d\n💵 Total: %s\n\n🚀 You're building momentum. Keep pushing!",
		len(sales), receipt.FormatAmount(total)))
}
