package storage

import (
	"context"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/transport/dto"

	"github.com/google/uuid"
)

// One explicit, typed repository per entity. The dynamic table-name dispatch
// the original UI hooks used is deliberately not reproduced; every table gets
// its own interface so misuse fails at compile time.

// JobRepository defines data operations on jobs, including the guarded
// workflow transitions. Every transition method performs its status/token
// precondition check inside the UPDATE statement itself, so concurrent
// redemptions race on the database row, not in Go.
type JobRepository interface {
	Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	GetByInvoiceReference(ctx context.Context, ref string) (*models.Job, error)
	List(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error)
	ListActive(ctx context.Context) ([]models.Job, error)
	Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkInvoiceRequested moves a draft/active job to pending_invoice,
	// stamping the provider-email date and storing the new public token.
	MarkInvoiceRequested(ctx context.Context, id uuid.UUID, publicToken string, sentAt time.Time) (*models.Job, error)
	// ReceiveInvoice moves pending_invoice to pending_validation when the
	// public token matches, storing the received document and clearing the
	// token. Returns ErrNotFound when no row matched the guard.
	ReceiveInvoice(ctx context.Context, id uuid.UUID, publicToken string, documentURL string) (*models.Job, error)
	// ReceiveInvoiceByReference is the weaker invoice-received guard: lookup
	// by invoice reference, still gated on status = pending_invoice.
	ReceiveInvoiceByReference(ctx context.Context, invoiceReference string, documentURL string) (*models.Job, error)
	// ExpirePublicToken demotes pending_invoice to pending_validation with
	// the token cleared and no document stored (due-date expiry path).
	ExpirePublicToken(ctx context.Context, id uuid.UUID, publicToken string) (*models.Job, error)
	// Approve moves pending_validation to pending_payment, storing the new
	// payment token.
	Approve(ctx context.Context, id uuid.UUID, paymentToken string) (*models.Job, error)
	// ConfirmPayment moves pending_payment to paid when the payment token
	// matches, setting paid and clearing the token.
	ConfirmPayment(ctx context.Context, id uuid.UUID, paymentToken string) (*models.Job, error)
}

// ClientRepository defines the interface for client data operations.
type ClientRepository interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Create(ctx context.Context, req *dto.CreateClientRequest) (*models.Client, error)
	Update(ctx context.Context, req *dto.UpdateClientRequest) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CampaignRepository defines the interface for campaign data operations.
type CampaignRepository interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Campaign, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	Create(ctx context.Context, req *dto.CreateCampaignRequest) (*models.Campaign, error)
	Update(ctx context.Context, req *dto.UpdateCampaignRequest) (*models.Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProviderRepository defines the interface for provider data operations.
type ProviderRepository interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Provider, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Provider, error)
	Create(ctx context.Context, req *dto.CreateProviderRequest) (*models.Provider, error)
	Update(ctx context.Context, req *dto.UpdateProviderRequest) (*models.Provider, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ManagerRepository defines the interface for manager data operations.
type ManagerRepository interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Manager, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Manager, error)
	Create(ctx context.Context, req *dto.CreateManagerRequest) (*models.Manager, error)
	Update(ctx context.Context, req *dto.UpdateManagerRequest) (*models.Manager, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository defines the interface for company data operations.
type CompanyRepository interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Create(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error)
	Update(ctx context.Context, req *dto.UpdateCompanyRequest) (*models.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JobTypeRepository defines the interface for job type data operations.
type JobTypeRepository interface {
	List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.JobType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobType, error)
	Create(ctx context.Context, req *dto.CreateJobTypeRequest) (*models.JobType, error)
	Update(ctx context.Context, req *dto.UpdateJobTypeRequest) (*models.JobType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingRepository defines the interface for setting data operations.
type SettingRepository interface {
	Get(ctx context.Context, name string) (*models.Setting, error)
	Upsert(ctx context.Context, name, value string) (*models.Setting, error)
}

// UserRepository defines the interface for user/identity data operations.
// Identity, profile and role assignment are separate rows; CreateIdentity,
// CreateProfile and AssignRole are the saga steps, DeleteIdentity the
// compensating action.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetRole(ctx context.Context, id uuid.UUID) (models.Role, error)
	CreateIdentity(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	CreateProfile(ctx context.Context, userID uuid.UUID, fullName string) error
	AssignRole(ctx context.Context, userID uuid.UUID, role models.Role) error
	DeleteIdentity(ctx context.Context, userID uuid.UUID) error
}

// InvitationRepository defines the interface for invitation data operations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error)
	GetPendingByToken(ctx context.Context, token string) (*models.Invitation, error)
	// MarkAccepted consumes a pending invitation; the status guard lives in
	// the UPDATE so a token can be redeemed exactly once.
	MarkAccepted(ctx context.Context, id uuid.UUID) error
}
