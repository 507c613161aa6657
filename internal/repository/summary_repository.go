package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paymint/paymint-bot/internal/models"
)

type SummaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// IncrementDaily upserts the (vendor, date) row and bumps its counters.
// The increment is a single atomic statement so concurrent receipts from
// different requests never lose updates.
func (r *SummaryRepository) IncrementDaily(ctx context.Context, phone, date string, amount float64, count int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_summaries (vendor_phone, date, total_sales, total_receipts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (vendor_phone, date) DO UPDATE SET
			total_sales = daily_summaries.total_sales + EXCLUDED.total_sales,
			total_receipts = daily_summaries.total_receipts + EXCLUDED.total_receipts`,
		phone, date, amount, count)
	if err != nil {
		return fmt.Errorf("failed to increment daily summary: %w", err)
	}
	return nil
}

func (r *SummaryRepository) IncrementMonthly(ctx context.Context, phone, month string, amount float64, count int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO monthly_summaries (vendor_phone, month, total_sales, total_receipts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (vendor_phone, month) DO UPDATE SET
			total_sales = monthly_summaries.total_sales + EXCLUDED.total_sales,
			total_receipts = monthly_summaries.total_receipts + EXCLUDED.total_receipts`,
		phone, month, amount, count)
	if err != nil {
		return fmt.Errorf("failed to increment monthly summary: %w", err)
	}
	return nil
}

// GetDaily returns (nil, nil) when the vendor has no sales for that day.
func (r *SummaryRepository) GetDaily(ctx context.Context, phone, date string) (*models.DailySummary, error) {
	summary := &models.DailySummary{}
	err := r.db.QueryRowContext(ctx,
		`SELECT vendor_phone, date, total_sales, total_receipts
		FROM daily_summaries WHERE vendor_phone = $1 AND date = $2`,
		phone, date,
	).Scan(&summary.VendorPhone, &summary.Date, &summary.TotalSales, &summary.TotalReceipts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily summary: %w", err)
	}
	return summary, nil
}
