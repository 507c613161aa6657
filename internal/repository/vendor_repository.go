package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paymint/paymint-bot/internal/models"
)

type VendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

const vendorColumns = `id, phone, name, business_name, contact, address, description,
	instagram, tiktok, twitter, facebook, youtube, website,
	enable_social_marketing, enable_share_incentive, share_incentive_text,
	email, plan, expires_on, payment_reference, payment_method, payment_status,
	subscription_amount, subscription_date, last_payment_date, created_at, updated_at`

func scanVendor(row interface{ Scan(...any) error }) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	err := row.Scan(
		&vendor.ID, &vendor.Phone, &vendor.Name, &vendor.BusinessName,
		&vendor.Contact, &vendor.Address, &vendor.Description,
		&vendor.Instagram, &vendor.TikTok, &vendor.Twitter, &vendor.Facebook,
		&vendor.YouTube, &vendor.Website,
		&vendor.EnableSocialMarketing, &vendor.EnableShareIncentive, &vendor.ShareIncentiveText,
		&vendor.Email, &vendor.Plan, &vendor.ExpiresOn,
		&vendor.PaymentReference, &vendor.PaymentMethod, &vendor.PaymentStatus,
		&vendor.SubscriptionAmount, &vendor.SubscriptionDate, &vendor.LastPaymentDate,
		&vendor.CreatedAt, &vendor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

// FindByPhone returns (nil, nil) when the vendor does not exist; callers
// use the nil vendor to decide whether onboarding should start.
func (r *VendorRepository) FindByPhone(ctx context.Context, phone string) (*models.Vendor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE phone = $1`, phone)

	vendor, err := scanVendor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	return vendor, nil
}

// UpsertProfile writes the onboarding profile fields. A new row gets the
// free plan and a fresh created_at; an existing row keeps its plan and
// payment bookkeeping untouched.
func (r *VendorRepository) UpsertProfile(ctx context.Context, vendor *models.Vendor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vendors (phone, name, business_name, contact, address, description,
			instagram, tiktok, twitter, facebook, youtube, website,
			enable_social_marketing, enable_share_incentive, share_incentive_text, plan)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			business_name = EXCLUDED.business_name,
			contact = EXCLUDED.contact,
			address = EXCLUDED.address,
			description = EXCLUDED.description,
			instagram = EXCLUDED.instagram,
			tiktok = EXCLUDED.tiktok,
			twitter = EXCLUDED.twitter,
			facebook = EXCLUDED.facebook,
			youtube = EXCLUDED.youtube,
			website = EXCLUDED.website,
			enable_social_marketing = EXCLUDED.enable_social_marketing,
			enable_share_incentive = EXCLUDED.enable_share_incentive,
			share_incentive_text = EXCLUDED.share_incentive_text,
			updated_at = CURRENT_TIMESTAMP`,
		vendor.Phone, vendor.Name, vendor.BusinessName, vendor.Contact,
		vendor.Address, vendor.Description,
		vendor.Instagram, vendor.TikTok, vendor.Twitter, vendor.Facebook,
		vendor.YouTube, vendor.Website,
		vendor.EnableSocialMarketing, vendor.EnableShareIncentive, vendor.ShareIncentiveText,
		models.PlanFree,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vendor: %w", err)
	}
	return nil
}

func (r *VendorRepository) UpdateEmail(ctx context.Context, phone, email string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET email = $1, updated_at = CURRENT_TIMESTAMP WHERE phone = $2`,
		email, phone)
	if err != nil {
		return fmt.Errorf("failed to update vendor email: %w", err)
	}
	return nil
}

// UpgradeToPremium records a successful charge and flips the plan.
func (r *VendorRepository) UpgradeToPremium(ctx context.Context, phone string, expiresOn time.Time, reference, method string, amount int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET
			plan = $1,
			expires_on = $2,
			payment_reference = $3,
			payment_method = $4,
			payment_status = 'paid',
			subscription_amount = $5,
			subscription_date = CURRENT_TIMESTAMP,
			last_payment_date = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE phone = $6`,
		models.PlanPremium, expiresOn, reference, method, amount, phone)
	if err != nil {
		return fmt.Errorf("failed to upgrade vendor: %w", err)
	}
	return nil
}

func (r *VendorRepository) UpdatePaymentStatus(ctx context.Context, phone, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET payment_status = $1, updated_at = CURRENT_TIMESTAMP WHERE phone = $2`,
		status, phone)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return nil
}

// DeleteByPhone removes the vendor row only. Sales and summaries stay
// behind under the same phone and re-attach if the vendor onboards again.
func (r *VendorRepository) DeleteByPhone(ctx context.Context, phone string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vendors WHERE phone = $1`, phone)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	return nil
}

func (r *VendorRepository) All(ctx context.Context) ([]models.Vendor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, *vendor)
	}
	return vendors, rows.Err()
}
