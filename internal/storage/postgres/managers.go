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

// ManagerRepo implements the storage.ManagerRepository interface using PostgreSQL.
type ManagerRepo struct {
	db Querier
}

// NewManagerRepo creates a new ManagerRepo.
func NewManagerRepo(db *pgxpool.Pool) *ManagerRepo {
	return &ManagerRepo{db: db}
}

var _ storage.ManagerRepository = (*ManagerRepo)(nil)

func scanManager(row pgx.Row) (*models.Manager, error) {
	var m models.Manager
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// List retrieves managers, optionally filtered by the active flag.
func (r *ManagerRepo) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Manager, error) {
	baseQuery := `SELECT id, name, email, active, created_at, updated_at FROM managers`
	var conditions []string
	args := []interface{}{}

	if req.Active != nil {
		args = append(args, *req.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.OrderBy, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying managers: %v\n", err)
		return nil, fmt.Errorf("failed to query managers: %w", err)
	}
	defer rows.Close()

	managers := []models.Manager{}
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan managers: %w", err)
		}
		managers = append(managers, *m)
	}
	return managers, rows.Err()
}

// GetByID retrieves a specific manager by its ID.
func (r *ManagerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Manager, error) {
	query := `SELECT id, name, email, active, created_at, updated_at FROM managers WHERE id = $1`

	m, err := scanManager(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning manager by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get manager by ID %s: %w", id, err)
	}
	return m, nil
}

// Create saves a new manager.
func (r *ManagerRepo) Create(ctx context.Context, req *dto.CreateManagerRequest) (*models.Manager, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		INSERT INTO managers (id, name, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, email, active, created_at, updated_at
	`

	m, err := scanManager(r.db.QueryRow(ctx, query, uuid.New(), req.Name, req.Email, active))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create manager: %w", storage.ErrConflict)
		}
		log.Printf("Error creating manager: %v\n", err)
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}

	log.Printf("Manager created successfully with ID: %s", m.ID)
	return m, nil
}

// Update modifies an existing manager based on non-nil fields in the request.
func (r *ManagerRepo) Update(ctx context.Context, req *dto.UpdateManagerRequest) (*models.Manager, error) {
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
		return nil, fmt.Errorf("no fields provided for update on manager %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE managers
		SET %s
		WHERE id = $%d
		RETURNING id, name, email, active, created_at, updated_at
	`, strings.Join(setClauses, ", "), argID)

	m, err := scanManager(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating manager %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update manager %s: %w", req.ID, err)
	}
	return m, nil
}

// Delete removes a manager by its ID.
func (r *ManagerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM managers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("manager still referenced by jobs: %w", storage.ErrConflict)
		}
		log.Printf("Error deleting manager %s: %v\n", id, err)
		return fmt.Errorf("failed to delete manager %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
