package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"
	"invoicesflow/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, client_id, campaign_id, provider_id, manager_id, job_type_id, company_id,
		value, currency, status, paid, months, due_date, public_notes, private_notes,
		documents, invoice_reference, public_token, payment_token, provider_email_sent_at,
		created_at, updated_at`

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo bound to the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

func scanJob(row pgx.Row) (*models.Job, error) {
	var job models.Job
	err := row.Scan(
		&job.ID,
		&job.ClientID,
		&job.CampaignID,
		&job.ProviderID,
		&job.ManagerID,
		&job.JobTypeID,
		&job.CompanyID,
		&job.Value,
		&job.Currency,
		&job.Status,
		&job.Paid,
		&job.Months,
		&job.DueDate,
		&job.PublicNotes,
		&job.PrivateNotes,
		&job.Documents,
		&job.InvoiceReference,
		&job.PublicToken,
		&job.PaymentToken,
		&job.ProviderEmailSentAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Create saves a new job in draft status. The invoice reference is derived
// from the server-generated id so it is unique without a second sequence.
func (r *JobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	id := uuid.New()
	invoiceRef := fmt.Sprintf("INV-%s", strings.ToUpper(id.String()[:8]))

	months := req.Months
	if months == nil {
		months = []string{}
	}

	query := `
		INSERT INTO jobs (id, client_id, campaign_id, provider_id, manager_id, job_type_id, company_id,
			value, currency, status, paid, months, due_date, public_notes, private_notes,
			documents, invoice_reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false, $11, $12, $13, $14, '{}', $15, NOW(), NOW())
		RETURNING ` + jobColumns

	row := r.db.QueryRow(ctx, query,
		id,
		req.ClientID,
		req.CampaignID,
		req.ProviderID,
		req.ManagerID,
		req.JobTypeID,
		req.CompanyID,
		req.Value,
		req.Currency,
		models.JobStatusDraft,
		months,
		req.DueDate,
		req.PublicNotes,
		req.PrivateNotes,
		invoiceRef,
	)

	createdJob, err := scanJob(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Printf("Error creating job: foreign key violation: %v\n", err)
			return nil, fmt.Errorf("failed to create job: invalid reference: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Job created successfully with ID: %s", createdJob.ID)
	return createdJob, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	return job, nil
}

// GetByInvoiceReference retrieves a job by its invoice reference.
func (r *JobRepo) GetByInvoiceReference(ctx context.Context, ref string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE invoice_reference = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by invoice reference %s: %v\n", ref, err)
		return nil, fmt.Errorf("failed to get job by invoice reference: %w", err)
	}
	return job, nil
}

// List retrieves jobs matching the exact-match filters in the request.
func (r *JobRepo) List(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error) {
	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	var conditions []string
	args := []interface{}{}

	if req.Status != nil {
		args = append(args, *req.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if req.ClientID != nil {
		args = append(args, *req.ClientID)
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if req.CampaignID != nil {
		args = append(args, *req.CampaignID)
		conditions = append(conditions, fmt.Sprintf("campaign_id = $%d", len(args)))
	}
	if req.ProviderID != nil {
		args = append(args, *req.ProviderID)
		conditions = append(conditions, fmt.Sprintf("provider_id = $%d", len(args)))
	}
	if req.ManagerID != nil {
		args = append(args, *req.ManagerID)
		conditions = append(conditions, fmt.Sprintf("manager_id = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, "created_at", req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying jobs: %v\n", err)
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		log.Printf("Error scanning jobs: %v\n", err)
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	return jobs, nil
}

// ListActive retrieves jobs currently inside the workflow (neither draft nor
// paid), for the API-key-gated export endpoint.
func (r *JobRepo) ListActive(ctx context.Context) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE status NOT IN ($1, $2)
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, models.JobStatusDraft, models.JobStatusPaid)
	if err != nil {
		log.Printf("Error querying active jobs: %v\n", err)
		return nil, fmt.Errorf("failed to query active jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		log.Printf("Error scanning active jobs: %v\n", err)
		return nil, fmt.Errorf("failed to scan active jobs: %w", err)
	}
	return jobs, nil
}

func collectJobs(rows pgx.Rows) ([]models.Job, error) {
	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// Update modifies an existing job based on non-nil fields in the request.
// Status, paid and the tokens are never touched here; the transition methods
// own those columns.
func (r *JobRepo) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	var setClauses []string
	args := []interface{}{}
	argID := 1

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		argID++
	}

	if req.ClientID != nil {
		appendSet("client_id", *req.ClientID)
	}
	if req.CampaignID != nil {
		appendSet("campaign_id", *req.CampaignID)
	}
	if req.ProviderID != nil {
		appendSet("provider_id", *req.ProviderID)
	}
	if req.ManagerID != nil {
		appendSet("manager_id", *req.ManagerID)
	}
	if req.JobTypeID != nil {
		appendSet("job_type_id", *req.JobTypeID)
	}
	if req.CompanyID != nil {
		appendSet("company_id", *req.CompanyID)
	}
	if req.Value != nil {
		appendSet("value", *req.Value)
	}
	if req.Currency != nil {
		appendSet("currency", *req.Currency)
	}
	if req.Months != nil {
		appendSet("months", req.Months)
	}
	if req.DueDate != nil {
		appendSet("due_date", *req.DueDate)
	}
	if req.PublicNotes != nil {
		appendSet("public_notes", *req.PublicNotes)
	}
	if req.PrivateNotes != nil {
		appendSet("private_notes", *req.PrivateNotes)
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on job %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argID, jobColumns)

	updatedJob, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			log.Printf("Error updating job %s: foreign key violation: %v\n", req.ID, err)
			return nil, fmt.Errorf("failed to update job: invalid reference: %w", storage.ErrConflict)
		}
		log.Printf("Error updating job %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update job %s: %w", req.ID, err)
	}

	return updatedJob, nil
}

// Delete removes a job by its ID.
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting job %s: %v\n", id, err)
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- Workflow transitions ---
//
// Each of these is a single conditional UPDATE: the expected status (and,
// where applicable, the token) is part of the WHERE clause, so two racing
// calls can never both match. A call that matches nothing returns
// ErrNotFound; the service layer collapses that into a generic rejection.

// MarkInvoiceRequested moves draft/active to pending_invoice.
func (r *JobRepo) MarkInvoiceRequested(ctx context.Context, id uuid.UUID, publicToken string, sentAt time.Time) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1, public_token = $2, provider_email_sent_at = $3, updated_at = NOW()
		WHERE id = $4 AND status IN ($5, $6)
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query,
		models.JobStatusPendingInvoice, publicToken, sentAt,
		id, models.JobStatusDraft, models.JobStatusActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error marking invoice requested for job %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to mark invoice requested: %w", err)
	}
	return job, nil
}

// ReceiveInvoice appends the received document, clears the public token and
// moves the job to pending_validation.
func (r *JobRepo) ReceiveInvoice(ctx context.Context, id uuid.UUID, publicToken string, documentURL string) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1, documents = array_append(documents, $2), public_token = NULL, updated_at = NOW()
		WHERE id = $3 AND status = $4 AND public_token = $5
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query,
		models.JobStatusPendingValidation, documentURL,
		id, models.JobStatusPendingInvoice, publicToken,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error receiving invoice for job %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to receive invoice: %w", err)
	}
	return job, nil
}

// ReceiveInvoiceByReference is the invoice-received path: lookup by invoice
// reference with only the status precondition as guard.
func (r *JobRepo) ReceiveInvoiceByReference(ctx context.Context, invoiceReference string, documentURL string) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1, documents = array_append(documents, $2), public_token = NULL, updated_at = NOW()
		WHERE invoice_reference = $3 AND status = $4
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query,
		models.JobStatusPendingValidation, documentURL,
		invoiceReference, models.JobStatusPendingInvoice,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error receiving invoice by reference %s: %v\n", invoiceReference, err)
		return nil, fmt.Errorf("failed to receive invoice by reference: %w", err)
	}
	return job, nil
}

// ExpirePublicToken is the due-date expiry demotion: same guard as
// ReceiveInvoice but no document is stored.
func (r *JobRepo) ExpirePublicToken(ctx context.Context, id uuid.UUID, publicToken string) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1, public_token = NULL, updated_at = NOW()
		WHERE id = $2 AND status = $3 AND public_token = $4
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query,
		models.JobStatusPendingValidation,
		id, models.JobStatusPendingInvoice, publicToken,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error expiring public token for job %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to expire public token: %w", err)
	}
	return job, nil
}

// Approve moves pending_validation to pending_payment and stores the new
// payment token.
func (r *JobRepo) Approve(ctx context.Context, id uuid.UUID, paymentToken string) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1, payment_token = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query,
		models.JobStatusPendingPayment, paymentToken,
		id, models.JobStatusPendingValidation,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error approving job %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to approve job: %w", err)
	}
	return job, nil
}

// ConfirmPayment moves pending_payment to paid, sets the paid flag and
// clears the payment token, making the token single-use by construction.
func (r *JobRepo) ConfirmPayment(ctx context.Context, id uuid.UUID, paymentToken string) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1, paid = true, payment_token = NULL, updated_at = NOW()
		WHERE id = $2 AND status = $3 AND payment_token = $4
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query,
		models.JobStatusPaid,
		id, models.JobStatusPendingPayment, paymentToken,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error confirming payment for job %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}
	return job, nil
}
