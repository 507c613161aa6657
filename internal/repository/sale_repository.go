package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paymint/paymint-bot/internal/models"
)

type SaleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	itemsJSON, err := json.Marshal(sale.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sale items: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO sales (vendor_phone, customer_name, items, total, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		sale.VendorPhone, sale.CustomerName, itemsJSON, sale.Total, sale.Note,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	return sale, nil
}

func (r *SaleRepository) CountByVendor(ctx context.Context, phone string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sales WHERE vendor_phone = $1`, phone,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return count, nil
}

func (r *SaleRepository) FindByVendorInRange(ctx context.Context, phone string, start, end time.Time) ([]models.Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vendor_phone, customer_name, items, total, note, created_at
		FROM sales
		WHERE vendor_phone = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at`,
		phone, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var sale models.Sale
		var itemsJSON []byte
		err := rows.Scan(&sale.ID, &sale.VendorPhone, &sale.CustomerName,
			&itemsJSON, &sale.Total, &sale.Note, &sale.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &sale.Items); err != nil {
			return nil, fmt.Errorf("failed to decode sale items: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}
