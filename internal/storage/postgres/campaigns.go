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

// CampaignRepo implements the storage.CampaignRepository interface using PostgreSQL.
type CampaignRepo struct {
	db Querier
}

// NewCampaignRepo creates a new CampaignRepo.
func NewCampaignRepo(db *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{db: db}
}

var _ storage.CampaignRepository = (*CampaignRepo)(nil)

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var c models.Campaign
	if err := row.Scan(&c.ID, &c.Name, &c.ClientID, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves campaigns, optionally filtered by the active flag.
func (r *CampaignRepo) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Campaign, error) {
	baseQuery := `SELECT id, name, client_id, active, created_at, updated_at FROM campaigns`
	var conditions []string
	args := []interface{}{}

	if req.Active != nil {
		args = append(args, *req.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.OrderBy, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying campaigns: %v\n", err)
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaigns: %w", err)
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// ListByClient retrieves all campaigns owned by a client.
func (r *CampaignRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Campaign, error) {
	query := `SELECT id, name, client_id, active, created_at, updated_at FROM campaigns
		WHERE client_id = $1 ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		log.Printf("Error querying campaigns for client %s: %v\n", clientID, err)
		return nil, fmt.Errorf("failed to query campaigns by client: %w", err)
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaigns by client: %w", err)
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// GetByID retrieves a specific campaign by its ID.
func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	query := `SELECT id, name, client_id, active, created_at, updated_at FROM campaigns WHERE id = $1`

	c, err := scanCampaign(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning campaign by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get campaign by ID %s: %w", id, err)
	}
	return c, nil
}

// Create saves a new campaign under a client.
func (r *CampaignRepo) Create(ctx context.Context, req *dto.CreateCampaignRequest) (*models.Campaign, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		INSERT INTO campaigns (id, name, client_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, client_id, active, created_at, updated_at
	`

	c, err := scanCampaign(r.db.QueryRow(ctx, query, uuid.New(), req.Name, req.ClientID, active))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("failed to create campaign: invalid client: %w", storage.ErrConflict)
		}
		log.Printf("Error creating campaign: %v\n", err)
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	log.Printf("Campaign created successfully with ID: %s", c.ID)
	return c, nil
}

// Update modifies an existing campaign based on non-nil fields in the request.
func (r *CampaignRepo) Update(ctx context.Context, req *dto.UpdateCampaignRequest) (*models.Campaign, error) {
	var setClauses []string
	args := []interface{}{}
	argID := 1

	if req.Name != nil {
		args = append(args, *req.Name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		argID++
	}
	if req.ClientID != nil {
		args = append(args, *req.ClientID)
		setClauses = append(setClauses, fmt.Sprintf("client_id = $%d", argID))
		argID++
	}
	if req.Active != nil {
		args = append(args, *req.Active)
		setClauses = append(setClauses, fmt.Sprintf("active = $%d", argID))
		argID++
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on campaign %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE campaigns
		SET %s
		WHERE id = $%d
		RETURNING id, name, client_id, active, created_at, updated_at
	`, strings.Join(setClauses, ", "), argID)

	c, err := scanCampaign(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("failed to update campaign: invalid client: %w", storage.ErrConflict)
		}
		log.Printf("Error updating campaign %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update campaign %s: %w", req.ID, err)
	}
	return c, nil
}

// Delete removes a campaign by its ID.
func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("campaign still referenced by jobs: %w", storage.ErrConflict)
		}
		log.Printf("Error deleting campaign %s: %v\n", id, err)
		return fmt.Errorf("failed to delete campaign %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
