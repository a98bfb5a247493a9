package services

import (
	"context"

	"invoicesflow/internal/models"
	"invoicesflow/internal/transport/dto"

	"github.com/google/uuid"
)

// JobService defines the interface for job business logic, including every
// workflow transition.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	GetJobByInvoiceReference(ctx context.Context, ref string) (*models.Job, error)
	ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error)
	ListActiveJobs(ctx context.Context) ([]models.Job, error)
	UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error

	// RequestInvoice moves draft/active to pending_invoice. The caller's
	// role is re-checked against the role table, not just the bearer claim.
	RequestInvoice(ctx context.Context, jobID, requestedBy uuid.UUID) (*models.Job, error)
	// ValidateJobToken checks a provider token. When the due date has
	// passed it demotes the job to pending_validation, clears the token and
	// reports expired=true.
	ValidateJobToken(ctx context.Context, jobID uuid.UUID, token string) (job *models.Job, expired bool, err error)
	// SubmitInvoice is the tokenized provider upload: pending_invoice ->
	// pending_validation, storing the document.
	SubmitInvoice(ctx context.Context, jobID uuid.UUID, token, documentURL string) (*models.Job, error)
	// InvoiceReceived is the reference-keyed variant of SubmitInvoice used
	// by the document pipeline.
	InvoiceReceived(ctx context.Context, invoiceReference, documentURL string) (*models.Job, error)
	// ApproveJob moves pending_validation to pending_payment and issues the
	// payment token.
	ApproveJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	// ConfirmPayment moves pending_payment to paid when the token matches.
	ConfirmPayment(ctx context.Context, jobID uuid.UUID, token string) (*models.Job, error)
	// ForwardDocumentUpload relays an uploader webhook to the automation
	// service. Unlike the notifications, forwarding is the primary action
	// here, so its failure is returned.
	ForwardDocumentUpload(ctx context.Context, payload *dto.DocumentUploadedWebhook) error
}

// ClientService defines the interface for client business logic.
type ClientService interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Create(ctx context.Context, req *dto.CreateClientRequest) (*models.Client, error)
	Update(ctx context.Context, req *dto.UpdateClientRequest) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CampaignService defines the interface for campaign business logic.
type CampaignService interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Campaign, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	Create(ctx context.Context, req *dto.CreateCampaignRequest) (*models.Campaign, error)
	Update(ctx context.Context, req *dto.UpdateCampaignRequest) (*models.Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProviderService defines the interface for provider business logic.
type ProviderService interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Provider, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Provider, error)
	Create(ctx context.Context, req *dto.CreateProviderRequest) (*models.Provider, error)
	Update(ctx context.Context, req *dto.UpdateProviderRequest) (*models.Provider, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ManagerService defines the interface for manager business logic.
type ManagerService interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Manager, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Manager, error)
	Create(ctx context.Context, req *dto.CreateManagerRequest) (*models.Manager, error)
	Update(ctx context.Context, req *dto.UpdateManagerRequest) (*models.Manager, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyService defines the interface for company business logic.
type CompanyService interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Create(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error)
	Update(ctx context.Context, req *dto.UpdateCompanyRequest) (*models.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JobTypeService defines the interface for job type business logic.
type JobTypeService interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.JobType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobType, error)
	Create(ctx context.Context, req *dto.CreateJobTypeRequest) (*models.JobType, error)
	Update(ctx context.Context, req *dto.UpdateJobTypeRequest) (*models.JobType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingService defines the interface for settings business logic.
type SettingService interface {
	Get(ctx context.Context, name string) (*models.Setting, error)
	Upsert(ctx context.Context, name, value string) (*models.Setting, error)
	// StorageDirectory returns the configured document storage directory
	// identifier read by both the UI and the document pipeline.
	StorageDirectory(ctx context.Context) (string, error)
}

// UserService defines the interface for user business logic.
type UserService interface {
	// CreateUser provisions identity, profile and role sequentially and
	// deletes the identity if a later step fails.
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// InvitationService defines the interface for invitation business logic.
type InvitationService interface {
	Send(ctx context.Context, req *dto.SendInvitationRequest) (*models.Invitation, error)
	// Accept consumes a pending invitation exactly once and provisions the
	// invited account.
	Accept(ctx context.Context, req *dto.AcceptInvitationRequest) (*models.User, error)
}

// Notifier delivers outbound side effects. JobStatusChanged and
// InvitationCreated are fire-and-forget: implementations log failures and
// never surface them. ForwardDocumentUpload returns its error because the
// forward is the caller's primary action.
type Notifier interface {
	JobStatusChanged(ctx context.Context, job *models.Job, event string)
	InvitationCreated(ctx context.Context, inv *models.Invitation, link string)
	ForwardDocumentUpload(ctx context.Context, payload *dto.DocumentUploadedWebhook) error
}
