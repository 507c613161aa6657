package receipt

import (
	"strings"
	"testing"

	"github.com/paymint/paymint-bot/internal/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₦0"},
		{500, "₦500"},
		{2500, "₦2,500"},
		{1234567, "₦1,234,567"},
		{2500.50, "₦2,500.50"},
		{999.99, "₦999.99"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.amount); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatText(t *testing.T) {
	items := []models.SaleItem{
		{Name: "Pants", Price: 2500},
		{Name: "Shoes", Price: 4500},
	}

	text := FormatText("Ada Stores", "John", items, 7000, "paid cash", "2026-08-28", "14:05:00")

	for _, want := range []string{
		"*Ada Stores*",
		"Customer: John",
		"2026-08-28 14:05:00",
		"Pants - ₦2,500",
		"Shoes - ₦4,500",
		"*Total:* ₦7,000",
		"Note: paid cash",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("receipt text missing %q:\n%s", want, text)
		}
	}
}

func TestFormatTextDefaults(t *testing.T) {
	text := FormatText("", "", nil, 0, "", "", "")

	if !strings.Contains(text, "Your Business") {
		t.Error("empty business name should fall back to a placeholder")
	}
	if !strings.Contains(text, "No items listed.") {
		t.Error("empty item list should be called out")
	}
	if strings.Contains(text, "Customer:") {
		t.Error("customer line should be omitted when no name was given")
	}
}
