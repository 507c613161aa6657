package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/paymint/paymint-bot/internal/client/db"
	"github.com/paymint/paymint-bot/migrations"

	_ "github.com/lib/pq"
)

type pgClient struct {
	db *sql.DB
}

func New(ctx context.Context, dsn string) (db.Client, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &pgClient{
		db: sqlDB,
	}, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(sqlDB *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (c *pgClient) DB() *sql.DB {
	return c.db
}

func (c *pgClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
