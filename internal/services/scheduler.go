package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/paymint/paymint-bot/internal/models"
	"github.com/paymint/paymint-bot/internal/receipt"
)

type vendorLister interface {
	All(ctx context.Context) ([]models.Vendor, error)
}

type dailySummaryGetter interface {
	GetDaily(ctx context.Context, phone, date string) (*models.DailySummary, error)
}

// Scheduler broadcasts an end-of-day recap to every vendor that recorded
// sales today. It checks hourly and fires once per calendar day at the
// configured hour.
type Scheduler struct {
	vendors   vendorLister
	summaries dailySummaryGetter
	sender    textSender
	loc       *time.Location
	hour      int

	lastSentDate string
}

func NewScheduler(vendors vendorLister, summaries dailySummaryGetter, sender textSender, loc *time.Location, hour int) *Scheduler {
	return &Scheduler{
		vendors:   vendors,
		summaries: summaries,
		sender:    sender,
		loc:       loc,
		hour:      hour,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️  Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now().In(s.loc)
	today := now.Format("2006-01-02")

	if now.Hour() != s.hour || s.lastSentDate == today {
		return
	}
	s.lastSentDate = today

	s.broadcast(ctx, today)
}

func (s *Scheduler) broadcast(ctx context.Context, date string) {
	vendors, err := s.vendors.All(ctx)
	if err != nil {
		log.Printf("Failed to list vendors for daily summary: %v", err)
		return
	}

	sent := 0
	for _, vendor := range vendors {
		summary, err := s.summaries.GetDaily(ctx, vendor.Phone, date)
		if err != nil {
			log.Printf("Failed to load daily summary for %s: %v", vendor.Phone, err)
			continue
		}
		if summary == nil || summary.TotalReceipts == 0 {
			continue
		}

		msg := fmt.Sprintf(
			"📊 *Daily Sales Summary*\n\nBusiness: %s\nTotal Sales Today: %s\nTransactions: %d\n\nKeep selling! 💰",
			vendor.BusinessName, receipt.FormatAmount(summary.TotalSales), summary.TotalReceipts)
		if err := s.sender.SendText(ctx, vendor.Phone, msg); err != nil {
			log.Printf("Failed to send daily summary to %s: %v", vendor.Phone, err)
			continue
		}
		sent++
	}

	log.Printf("✅ Daily summary sent to %d vendors", sent)
}
