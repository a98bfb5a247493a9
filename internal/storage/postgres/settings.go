package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingRepo implements the storage.SettingRepository interface using PostgreSQL.
type SettingRepo struct {
	db Querier
}

// NewSettingRepo creates a new SettingRepo.
func NewSettingRepo(db *pgxpool.Pool) *SettingRepo {
	return &SettingRepo{db: db}
}

var _ storage.SettingRepository = (*SettingRepo)(nil)

// Get retrieves a setting by its name.
func (r *SettingRepo) Get(ctx context.Context, name string) (*models.Setting, error) {
	query := `SELECT name, value, updated_at FROM settings WHERE name = $1`

	var s models.Setting
	err := r.db.QueryRow(ctx, query, name).Scan(&s.Name, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning setting %q: %v\n", name, err)
		return nil, fmt.Errorf("failed to get setting %q: %w", name, err)
	}
	return &s, nil
}

// Upsert writes a setting, creating it if absent.
func (r *SettingRepo) Upsert(ctx context.Context, name, value string) (*models.Setting, error) {
	query := `
		INSERT INTO settings (name, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING name, value, updated_at
	`

	var s models.Setting
	err := r.db.QueryRow(ctx, query, name, value).Scan(&s.Name, &s.Value, &s.UpdatedAt)
	if err != nil {
		log.Printf("Error upserting setting %q: %v\n", name, err)
		return nil, fmt.Errorf("failed to upsert setting %q: %w", name, err)
	}
	return &s, nil
}
