package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"
	"invoicesflow/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProviderRepo implements the storage.ProviderRepository interface using PostgreSQL.
type ProviderRepo struct {
	db Querier
}

// NewProviderRepo creates a new ProviderRepo.
func NewProviderRepo(db *pgxpool.Pool) *ProviderRepo {
	return &ProviderRepo{db: db}
}

var _ storage.ProviderRepository = (*ProviderRepo)(nil)

func scanProvider(row pgx.Row) (*models.Provider, error) {
	var p models.Provider
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List retrieves providers, optionally filtered by the active flag.
func (r *ProviderRepo) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Provider, error) {
	baseQuery := `SELECT id, name, email, active, created_at, updated_at FROM providers`
	var conditions []string
	args := []interface{}{}

	if req.Active != nil {
		args = append(args, *req.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.OrderBy, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying providers: %v\n", err)
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	providers := []models.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan providers: %w", err)
		}
		providers = append(providers, *p)
	}
	return providers, rows.Err()
}

// GetByID retrieves a specific provider by its ID.
func (r *ProviderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Provider, error) {
	query := `SELECT id, name, email, active, created_at, updated_at FROM providers WHERE id = $1`

	p, err := scanProvider(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning provider by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get provider by ID %s: %w", id, err)
	}
	return p, nil
}

// Create saves a new provider.
func (r *ProviderRepo) Create(ctx context.Context, req *dto.CreateProviderRequest) (*models.Provider, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		INSERT INTO providers (id, name, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, email, active, created_at, updated_at
	`

	p, err := scanProvider(r.db.QueryRow(ctx, query, uuid.New(), req.Name, req.Email, active))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create provider: %w", storage.ErrConflict)
		}
		log.Printf("Error creating provider: %v\n", err)
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	log.Printf("Provider created successfully with ID: %s", p.ID)
	return p, nil
}

// Update modifies an existing provider based on non-nil fields in the request.
func (r *ProviderRepo) Update(ctx context.Context, req *dto.UpdateProviderRequest) (*models.Provider, error) {
	var setClauses []string
	args := []interface{}{}
	argID := 1

	if req.Name != nil {
		args = append(args, *req.Name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		argID++
	}
	if req.Email != nil {
		args = append(args, *req.Email)
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		argID++
	}
	if req.Active != nil {
		args = append(args, *req.Active)
		setClauses = append(setClauses, fmt.Sprintf("active = $%d", argID))
		argID++
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on provider %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE providers
		SET %s
		WHERE id = $%d
		RETURNING id, name, email, active, created_at, updated_at
	`, strings.Join(setClauses, ", "), argID)

	p, err := scanProvider(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating provider %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update provider %s: %w", req.ID, err)
	}
	return p, nil
}

// Delete removes a provider by its ID.
func (r *ProviderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM providers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("provider still referenced by jobs: %w", storage.ErrConflict)
		}
		log.Printf("Error deleting provider %s: %v\n", id, err)
		return fmt.Errorf("failed to delete provider %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
