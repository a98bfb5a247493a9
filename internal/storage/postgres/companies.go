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

// CompanyRepo implements the storage.CompanyRepository interface using PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepo creates a new CompanyRepo.
func NewCompanyRepo(db *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{db: db}
}

var _ storage.CompanyRepository = (*CompanyRepo)(nil)

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves companies, optionally filtered by the active flag.
func (r *CompanyRepo) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Company, error) {
	baseQuery := `SELECT id, name, active, created_at, updated_at FROM companies`
	var conditions []string
	args := []interface{}{}

	if req.Active != nil {
		args = append(args, *req.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.OrderBy, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying companies: %v\n", err)
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan companies: %w", err)
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// GetByID retrieves a specific company by its ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM companies WHERE id = $1`

	c, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning company by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get company by ID %s: %w", id, err)
	}
	return c, nil
}

// Create saves a new company.
func (r *CompanyRepo) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		INSERT INTO companies (id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, active, created_at, updated_at
	`

	c, err := scanCompany(r.db.QueryRow(ctx, query, uuid.New(), req.Name, active))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create company: %w", storage.ErrConflict)
		}
		log.Printf("Error creating company: %v\n", err)
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	log.Printf("Company created successfully with ID: %s", c.ID)
	return c, nil
}

// Update modifies an existing company based on non-nil fields in the request.
func (r *CompanyRepo) Update(ctx context.Context, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	var setClauses []string
	args := []interface{}{}
	argID := 1

	if req.Name != nil {
		args = append(args, *req.Name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		argID++
	}
	if req.Active != nil {
		args = append(args, *req.Active)
		setClauses = append(setClauses, fmt.Sprintf("active = $%d", argID))
		argID++
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on company %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE companies
		SET %s
		WHERE id = $%d
		RETURNING id, name, active, created_at, updated_at
	`, strings.Join(setClauses, ", "), argID)

	c, err := scanCompany(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating company %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update company %s: %w", req.ID, err)
	}
	return c, nil
}

// Delete removes a company by its ID.
func (r *CompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("company still referenced by jobs: %w", storage.ErrConflict)
		}
		log.Printf("Error deleting company %s: %v\n", id, err)
		return fmt.Errorf("failed to delete company %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
