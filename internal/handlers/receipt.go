package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/paymint/paymint-bot/internal/models"
	"github.com/paymint/paymint-bot/internal/receipt"
)

const receiptUsage = "📦 Send items like this:\n\n/receipt\nPants - 2500\nShoes - 4500\nCap - 1500\n\nAdd an optional Customer: name or Note: at the end."

func (h *BotHandler) handleReceipt(ctx context.Context, vendor *models.Vendor, from, text string) {
	if vendor == nil {
		h.reply(ctx, from, "❌ You must set up your business first. Send any message to begin.")
		return
	}

	body := ""
	if len(text) > len("/receipt") {
		body = strings.TrimSpace(text[len("/receipt"):])
	}
	if body == "" {
		h.reply(ctx, from, receiptUsage)
		return
	}

	parsed := receipt.ParseBody(body)
	if len(parsed.Items) == 0 {
		h.reply(ctx, from, "❌ No valid items found. Use format:\n\nItem - Price\nEg: Shirt - 3000")
		return
	}

	now := h.now().In(h.loc)

	// The free plan caps receipts; an unexpired premium plan lifts the cap.
	if !vendor.PremiumActive(now) {
		count, err := h.sales.CountByVendor(ctx, from)
		if err != nil {
			log.Printf("Failed to count sales for %s: %v", from, err)
			h.replyGenericError(ctx, from)
			return
		}
		if count >= models.FreePlanReceiptLimit {
			h.reply(ctx, from, fmt.Sprintf(
				"🚫 You've used all %d free receipts.\n\n💎 Type */subscribe* to upgrade to Premium and keep selling!",
				models.FreePlanReceiptLimit))
			return
		}
	}

	sale := &models.Sale{
		VendorPhone:  from,
		CustomerName: parsed.CustomerName,
		Items:        parsed.Items,
		Total:        parsed.Total,
		Note:         parsed.Note,
	}
	if _, err := h.sales.Create(ctx, sale); err != nil {
		log.Printf("Failed to save sale for %s: %v", from, err)
		h.replyGenericError(ctx, from)
		return
	}

	dateStr := now.Format("2006-01-02")
	monthStr := now.Format("2006-01")

	if err := h.summaries.IncrementDaily(ctx, from, dateStr, parsed.Total, 1); err != nil {
		log.Printf("Failed to increment daily summary for %s: %v", from, err)
	}
	if err := h.summaries.IncrementMonthly(ctx, from, monthStr, parsed.Total, 1); err != nil {
		log.Printf("Failed to increment monthly summary for %s: %v", from, err)
	}

	timeStr := now.Format("15:04:05")
	h.reply(ctx, from, receipt.FormatText(
		vendor.BusinessName, parsed.CustomerName, parsed.Items, parsed.Total,
		parsed.Note, dateStr, timeStr))

	image, err := h.renderImage(vendor, parsed.Items, parsed.Total, parsed.Note, dateStr, timeStr)
	if err != nil {
		log.Printf("Failed to render receipt image for %s: %v", from, err)
		return
	}

	caption := "🧾 Receipt (Image)"
	if url := vendor.PrimarySocialURL(); url != "" {
		caption += "\n\n📲 Follow us: " + url
	}
	if err := h.sender.SendImage(ctx, from, image, caption); err != nil {
		log.Printf("Failed to send receipt image to %s: %v", from, err)
	}
}
