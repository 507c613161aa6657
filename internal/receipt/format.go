package receipt

import (
	"fmt"
	"strings"

	"github.com/paymint/paymint-bot/internal/models"
)

// FormatAmount renders an amount in naira with thousands separators,
// dropping the decimals when the amount is whole: ₦2,500 / ₦2,500.50.
func FormatAmount(amount float64) string {
	whole := int64(amount)
	frac := amount - float64(whole)

	s := fmt.Sprintf("%d", whole)
	if whole < 0 {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := "₦" + b.String()
	if whole < 0 {
		out = "-" + out
	}
	if frac > 0.004 {
		out += fmt.Sprintf("%.2f", frac)[1:]
	}
	return out
}

// FormatText builds the plain-text receipt sent before the image version.
func FormatText(businessName, customerName string, items []models.SaleItem, total float64, note, date, timeOfDay string) string {
	if businessName == "" {
		businessName = "Your Business"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🧾 *%s*\n", businessName)

	if customerName != "" {
		fmt.Fprintf(&b, "👤 Customer: %s\n", customerName)
	}
	if date != "" && timeOfDay != "" {
		fmt.Fprintf(&b, "🗓️ %s %s\n", date, timeOfDay)
	}

	b.WriteString("\n")

	if len(items) > 0 {
		for _, item := range items {
			fmt.Fprintf(&b, "🛍️ %s - %s\n", item.Name, FormatAmount(item.Price))
		}
	} else {
		b.WriteString("🛍️ No items listed.\n")
	}

	fmt.Fprintf(&b, "\n💵 *Total:* %s\n", FormatAmount(total))

	if note != "" {
		fmt.Fprintf(&b, "📝 Note: %s\n", note)
	}

	b.WriteString("\n🙏🏽 Thanks for shopping with us!\n💚")
	return b.String()
}
