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

// ClientRepo implements the storage.ClientRepository interface using PostgreSQL.
type ClientRepo struct {
	db Querier
}

// NewClientRepo creates a new ClientRepo.
func NewClientRepo(db *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{db: db}
}

var _ storage.ClientRepository = (*ClientRepo)(nil)

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves clients, optionally filtered by the active flag and ordered
// ascending by a whitelisted column.
func (r *ClientRepo) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Client, error) {
	baseQuery := `SELECT id, name, email, active, created_at, updated_at FROM clients`
	var conditions []string
	args := []interface{}{}

	if req.Active != nil {
		args = append(args, *req.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.OrderBy, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying clients: %v\n", err)
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			log.Printf("Error scanning client row: %v\n", err)
			return nil, fmt.Errorf("failed to scan clients: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// GetByID retrieves a specific client by its ID.
func (r *ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	query := `SELECT id, name, email, active, created_at, updated_at FROM clients WHERE id = $1`

	c, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning client by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get client by ID %s: %w", id, err)
	}
	return c, nil
}

// Create saves a new client. Active defaults to true.
func (r *ClientRepo) Create(ctx context.Context, req *dto.CreateClientRequest) (*models.Client, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		INSERT INTO clients (id, name, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, email, active, created_at, updated_at
	`

	c, err := scanClient(r.db.QueryRow(ctx, query, uuid.New(), req.Name, req.Email, active))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create client: %w", storage.ErrConflict)
		}
		log.Printf("Error creating client: %v\n", err)
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	log.Printf("Client created successfully with ID: %s", c.ID)
	return c, nil
}

// Update modifies an existing client based on non-nil fields in the request.
func (r *ClientRepo) Update(ctx context.Context, req *dto.UpdateClientRequest) (*models.Client, error) {
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
		return nil, fmt.Errorf("no fields provided for update on client %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE clients
		SET %s
		WHERE id = $%d
		RETURNING id, name, email, active, created_at, updated_at
	`, strings.Join(setClauses, ", "), argID)

	c, err := scanClient(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating client %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update client %s: %w", req.ID, err)
	}
	return c, nil
}

// Delete removes a client by its ID. This is a hard delete; list views rely
// on the active flag instead.
func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("client still referenced by jobs or campaigns: %w", storage.ErrConflict)
		}
		log.Printf("Error deleting client %s: %v\n", id, err)
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
