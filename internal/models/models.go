package models

import "time"

// Plan names stored on the vendor row.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// FreePlanReceiptLimit is how many receipts a free vendor can record
// before /subscribe is required.
const FreePlanReceiptLimit = 3

// Vendor - a registered business, keyed by WhatsApp phone number
type Vendor struct {
	ID           int64
	Phone        string
	Name         string // owner's first name
	BusinessName string
	Contact      string
	Address      string
	Description  string

	// Social handles are stored without the leading @
	Instagram string
	TikTok    string
	Twitter   string
	Facebook  string
	YouTube   string
	Website   string

	EnableSocialMarketing bool
	EnableShareIncentive  bool
	ShareIncentiveText    string

	Email string

	Plan               string
	ExpiresOn          *time.Time
	PaymentReference   string
	PaymentMethod      string
	PaymentStatus      string
	SubscriptionAmount int64 // major currency units
	SubscriptionDate   *time.Time
	LastPaymentDate    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PremiumActive reports whether the vendor has a paid plan that has not
// expired yet.
func (v *Vendor) PremiumActive(now time.Time) bool {
	return v.Plan == PlanPremium && v.ExpiresOn != nil && now.Before(*v.ExpiresOn)
}

// HasSocialMedia reports whether any handle is configured.
func (v *Vendor) HasSocialMedia() bool {
	return v.Instagram != "" || v.TikTok != "" || v.Twitter != "" ||
		v.Facebook != "" || v.YouTube != "" || v.Website != ""
}

// PrimarySocialURL returns the follow link used on receipt captions,
// picked by fixed priority: instagram > tiktok > twitter > facebook >
// youtube > website. Empty string when nothing is configured.
func (v *Vendor) PrimarySocialURL() string {
	switch {
	case v.Instagram != "":
		return "https://instagram.com/" + v.Instagram
	case v.TikTok != "":
		return "https://tiktok.com/@" + v.TikTok
	case v.Twitter != "":
		return "https://twitter.com/" + v.Twitter
	case v.Facebook != "":
		return "https://facebook.com/" + v.Facebook
	case v.YouTube != "":
		return "https://youtube.com/@" + v.YouTube
	case v.Website != "":
		return v.Website
	}
	return ""
}

// SaleItem - one line of a receipt
type SaleItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Sale - a recorded receipt; never mutated after creation
type Sale struct {
	ID           int64
	VendorPhone  string
	CustomerName string
	Items        []SaleItem
	Total        float64
	Note         string
	CreatedAt    time.Time
}

// DailySummary - per-vendor per-calendar-day running totals
type DailySummary struct {
	VendorPhone   string
	Date          string // YYYY-MM-DD
	TotalSales    float64
	TotalReceipts int64
}

// MonthlySummary - per-vendor per-calendar-month running totals
type MonthlySummary struct {
	VendorPhone   string
	Month         string // YYYY-MM
	TotalSales    float64
	TotalReceipts int64
}
