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

// JobTypeRepo implements the storage.JobTypeRepository interface using PostgreSQL.
type JobTypeRepo struct {
	db Querier
}

// NewJobTypeRepo creates a new JobTypeRepo.
func NewJobTypeRepo(db *pgxpool.Pool) *JobTypeRepo {
	return &JobTypeRepo{db: db}
}

var _ storage.JobTypeRepository = (*JobTypeRepo)(nil)

func scanJobType(row pgx.Row) (*models.JobType, error) {
	var jt models.JobType
	if err := row.Scan(&jt.ID, &jt.Name, &jt.Workflow, &jt.Active, &jt.CreatedAt, &jt.UpdatedAt); err != nil {
		return nil, err
	}
	return &jt, nil
}

// List retrieves job types, optionally filtered by the active flag.
func (r *JobTypeRepo) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.JobType, error) {
	baseQuery := `SELECT id, name, workflow, active, created_at, updated_at FROM job_types`
	var conditions []string
	args := []interface{}{}

	if req.Active != nil {
		args = append(args, *req.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.OrderBy, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying job types: %v\n", err)
		return nil, fmt.Errorf("failed to query job types: %w", err)
	}
	defer rows.Close()

	jobTypes := []models.JobType{}
	for rows.Next() {
		jt, err := scanJobType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job types: %w", err)
		}
		jobTypes = append(jobTypes, *jt)
	}
	return jobTypes, rows.Err()
}

// GetByID retrieves a specific job type by its ID.
func (r *JobTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobType, error) {
	query := `SELECT id, name, workflow, active, created_at, updated_at FROM job_types WHERE id = $1`

	jt, err := scanJobType(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job type by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job type by ID %s: %w", id, err)
	}
	return jt, nil
}

// Create saves a new job type.
func (r *JobTypeRepo) Create(ctx context.Context, req *dto.CreateJobTypeRequest) (*models.JobType, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	workflow := req.Workflow
	if workflow == nil {
		workflow = []string{}
	}

	query := `
		INSERT INTO job_types (id, name, workflow, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, workflow, active, created_at, updated_at
	`

	jt, err := scanJobType(r.db.QueryRow(ctx, query, uuid.New(), req.Name, workflow, active))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create job type: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job type: %v\n", err)
		return nil, fmt.Errorf("failed to create job type: %w", err)
	}

	log.Printf("Job type created successfully with ID: %s", jt.ID)
	return jt, nil
}

// Update modifies an existing job type based on non-nil fields in the request.
func (r *JobTypeRepo) Update(ctx context.Context, req *dto.UpdateJobTypeRequest) (*models.JobType, error) {
	var setClauses []string
	args := []interface{}{}
	argID := 1

	if req.Name != nil {
		args = append(args, *req.Name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		argID++
	}
	if req.Workflow != nil {
		args = append(args, req.Workflow)
		setClauses = append(setClauses, fmt.Sprintf("workflow = $%d", argID))
		argID++
	}
	if req.Active != nil {
		args = append(args, *req.Active)
		setClauses = append(setClauses, fmt.Sprintf("active = $%d", argID))
		argID++
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on job type %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE job_types
		SET %s
		WHERE id = $%d
		RETURNING id, name, workflow, active, created_at, updated_at
	`, strings.Join(setClauses, ", "), argID)

	jt, err := scanJobType(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating job type %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update job type %s: %w", req.ID, err)
	}
	return jt, nil
}

// Delete removes a job type by its ID.
func (r *JobTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM job_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("job type still referenced by jobs: %w", storage.ErrConflict)
		}
		log.Printf("Error deleting job type %s: %v\n", id, err)
		return fmt.Errorf("failed to delete job type %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
