package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"
	"invoicesflow/internal/storage/cache"
	"invoicesflow/internal/transport/dto"

	"github.com/google/uuid"
)

type jobService struct {
	jobRepo  storage.JobRepository
	userRepo storage.UserRepository
	cache    *cache.Cache
	notifier Notifier
}

// NewJobService creates a new instance of JobService.
func NewJobService(jobRepo storage.JobRepository, userRepo storage.UserRepository, c *cache.Cache, notifier Notifier) JobService {
	return &jobService{jobRepo: jobRepo, userRepo: userRepo, cache: c, notifier: notifier}
}

const jobsEntity = "jobs"

var activeJobsKey = cache.CollectionKey("jobs:active")

// invalidateJob drops the cached row and collections after any mutation.
func (s *jobService) invalidateJob(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx,
		cache.IDKey(jobsEntity, id.String()),
		cache.CollectionKey(jobsEntity),
		activeJobsKey,
	)
}

func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.Create(ctx, req)
	if err != nil {
		log.Printf("JobService: Error creating job: %v", err)
		return nil, mapRepoError(err, "creating job")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.CollectionKey(jobsEntity), activeJobsKey)
	}
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	if s.cache != nil {
		var cached models.Job
		if s.cache.GetJSON(ctx, cache.IDKey(jobsEntity, id.String()), &cached) {
			return &cached, nil
		}
	}

	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "getting job by ID")
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, cache.IDKey(jobsEntity, id.String()), job)
	}
	return job, nil
}

func (s *jobService) GetJobByInvoiceReference(ctx context.Context, ref string) (*models.Job, error) {
	job, err := s.jobRepo.GetByInvoiceReference(ctx, ref)
	if err != nil {
		return nil, mapRepoError(err, "getting job by invoice reference")
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error) {
	jobs, err := s.jobRepo.List(ctx, req)
	if err != nil {
		log.Printf("JobService: Error listing jobs: %v", err)
		return nil, fmt.Errorf("internal error listing jobs: %w", err)
	}
	return jobs, nil
}

func (s *jobService) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	if s.cache != nil {
		var cached []models.Job
		if s.cache.GetJSON(ctx, activeJobsKey, &cached) {
			return cached, nil
		}
	}

	jobs, err := s.jobRepo.ListActive(ctx)
	if err != nil {
		log.Printf("JobService: Error listing active jobs: %v", err)
		return nil, fmt.Errorf("internal error listing active jobs: %w", err)
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, activeJobsKey, jobs)
	}
	return jobs, nil
}

func (s *jobService) UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.Update(ctx, req)
	if err != nil {
		log.Printf("JobService: Error updating job %s: %v", req.ID, err)
		return nil, mapRepoError(err, "updating job")
	}
	s.invalidateJob(ctx, req.ID)
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		log.Printf("JobService: Error deleting job %s: %v", id, err)
		return mapRepoError(err, "deleting job")
	}
	s.invalidateJob(ctx, id)
	return nil
}

// RequestInvoice moves a draft/active job to pending_invoice. The caller's
// role is re-checked against the role table; the bearer claim alone is not
// trusted for this transition.
func (s *jobService) RequestInvoice(ctx context.Context, jobID, requestedBy uuid.UUID) (*models.Job, error) {
	role, err := s.userRepo.GetRole(ctx, requestedBy)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, mapRepoError(err, "looking up requester role")
	}
	if !role.CanRequestInvoice() {
		log.Printf("RequestInvoice: Forbidden attempt on job %s by user %s (role %s)", jobID, requestedBy, role)
		return nil, ErrForbidden
	}

	existing, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, "fetching job for invoice request")
	}
	if existing.Status != models.JobStatusDraft && existing.Status != models.JobStatusActive {
		return nil, fmt.Errorf("%w: cannot request invoice while %s", ErrInvalidState, existing.Status)
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.MarkInvoiceRequested(ctx, jobID, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Lost the race against a concurrent transition.
			return nil, fmt.Errorf("%w: job no longer awaiting invoice request", ErrInvalidState)
		}
		return nil, mapRepoError(err, "marking invoice requested")
	}

	s.invalidateJob(ctx, jobID)
	s.notifier.JobStatusChanged(ctx, job, "invoice_requested")
	return job, nil
}

// ValidateJobToken checks a provider token against a job. A token presented
// after the due date is treated as expired: the job is demoted to
// pending_validation for manual review and the token cleared, failing closed
// rather than honoring a stale financial link.
func (s *jobService) ValidateJobToken(ctx context.Context, jobID uuid.UUID, token string) (*models.Job, bool, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		// Missing job and bad token are indistinguishable to the caller.
		return nil, false, ErrInvalidToken
	}
	if job.Status != models.JobStatusPendingInvoice || job.PublicToken == nil || *job.PublicToken != token {
		return nil, false, ErrInvalidToken
	}

	if job.DueDate != nil && time.Now().After(*job.DueDate) {
		demoted, err := s.jobRepo.ExpirePublicToken(ctx, jobID, token)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Someone else consumed or expired the token first.
				return nil, false, ErrInvalidToken
			}
			return nil, false, mapRepoError(err, "expiring public token")
		}
		s.invalidateJob(ctx, jobID)
		s.notifier.JobStatusChanged(ctx, demoted, "invoice_request_expired")
		return demoted, true, nil
	}

	return job, false, nil
}

func (s *jobService) SubmitInvoice(ctx context.Context, jobID uuid.UUID, token, documentURL string) (*models.Job, error) {
	job, err := s.jobRepo.ReceiveInvoice(ctx, jobID, token, documentURL)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, mapRepoError(err, "receiving invoice")
	}

	s.invalidateJob(ctx, jobID)
	s.notifier.JobStatusChanged(ctx, job, "invoice_received")
	return job, nil
}

func (s *jobService) InvoiceReceived(ctx context.Context, invoiceReference, documentURL string) (*models.Job, error) {
	job, err := s.jobRepo.ReceiveInvoiceByReference(ctx, invoiceReference, documentURL)
	if err != nil {
		return nil, mapRepoError(err, "receiving invoice by reference")
	}

	s.invalidateJob(ctx, job.ID)
	s.notifier.JobStatusChanged(ctx, job, "invoice_received")
	return job, nil
}

func (s *jobService) ApproveJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	existing, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, "fetching job for approval")
	}
	if existing.Status != models.JobStatusPendingValidation {
		return nil, fmt.Errorf("%w: cannot approve while %s", ErrInvalidState, existing.Status)
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.Approve(ctx, jobID, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: job no longer awaiting validation", ErrInvalidState)
		}
		return nil, mapRepoError(err, "approving job")
	}

	s.invalidateJob(ctx, jobID)
	s.notifier.JobStatusChanged(ctx, job, "payment_requested")
	return job, nil
}

func (s *jobService) ConfirmPayment(ctx context.Context, jobID uuid.UUID, token string) (*models.Job, error) {
	job, err := s.jobRepo.ConfirmPayment(ctx, jobID, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, mapRepoError(err, "confirming payment")
	}

	s.invalidateJob(ctx, jobID)
	s.notifier.JobStatusChanged(ctx, job, "job_paid")
	return job, nil
}

func (s *jobService) ForwardDocumentUpload(ctx context.Context, payload *dto.DocumentUploadedWebhook) error {
	return s.notifier.ForwardDocumentUpload(ctx, payload)
}
