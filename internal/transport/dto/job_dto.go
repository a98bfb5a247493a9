package dto

import (
	"time"

	"invoicesflow/internal/models"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for creating a new job. Jobs always
// start in draft; tokens are never client-supplied.
type CreateJobRequest struct {
	ClientID     uuid.UUID       `json:"client_id" validate:"required"`
	CampaignID   uuid.UUID       `json:"campaign_id" validate:"required"`
	ProviderID   uuid.UUID       `json:"provider_id" validate:"required"`
	ManagerID    uuid.UUID       `json:"manager_id" validate:"required"`
	JobTypeID    uuid.UUID       `json:"job_type_id" validate:"required"`
	CompanyID    uuid.UUID       `json:"company_id" validate:"required"`
	Value        float64         `json:"value" validate:"required,gt=0"`
	Currency     models.Currency `json:"currency" validate:"required,oneof=EUR USD GBP"`
	Months       []string        `json:"months" validate:"omitempty,dive,min=1"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	PublicNotes  *string         `json:"public_notes,omitempty"`
	PrivateNotes *string         `json:"private_notes,omitempty"`
}

// ListJobsRequest defines filter parameters for listing jobs. All filters are
// exact-match equality, per the data-access contract.
type ListJobsRequest struct {
	Status     *models.JobStatus `form:"status" validate:"omitempty,oneof=draft active pending_invoice pending_validation pending_payment paid"`
	ClientID   *uuid.UUID        `form:"client_id"`
	CampaignID *uuid.UUID        `form:"campaign_id"`
	ProviderID *uuid.UUID        `form:"provider_id"`
	ManagerID  *uuid.UUID        `form:"manager_id"`
	Limit      int               `form:"limit,default=50"`
	Offset     int               `form:"offset,default=0"`
}

// UpdateJobRequest defines the structure for a partial job update. Status and
// tokens are deliberately absent: the workflow endpoints own those fields.
type UpdateJobRequest struct {
	ID           uuid.UUID        `json:"-"`
	ClientID     *uuid.UUID       `json:"client_id,omitempty"`
	CampaignID   *uuid.UUID       `json:"campaign_id,omitempty"`
	ProviderID   *uuid.UUID       `json:"provider_id,omitempty"`
	ManagerID    *uuid.UUID       `json:"manager_id,omitempty"`
	JobTypeID    *uuid.UUID       `json:"job_type_id,omitempty"`
	CompanyID    *uuid.UUID       `json:"company_id,omitempty"`
	Value        *float64         `json:"value,omitempty" validate:"omitempty,gt=0"`
	Currency     *models.Currency `json:"currency,omitempty" validate:"omitempty,oneof=EUR USD GBP"`
	Months       []string         `json:"months,omitempty"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	PublicNotes  *string          `json:"public_notes,omitempty"`
	PrivateNotes *string          `json:"private_notes,omitempty"`
}

// JobResponse defines the job data returned to staff clients. Tokens are
// never echoed back.
type JobResponse struct {
	ID                  uuid.UUID       `json:"id"`
	ClientID            uuid.UUID       `json:"client_id"`
	CampaignID          uuid.UUID       `json:"campaign_id"`
	ProviderID          uuid.UUID       `json:"provider_id"`
	ManagerID           uuid.UUID       `json:"manager_id"`
	JobTypeID           uuid.UUID       `json:"job_type_id"`
	CompanyID           uuid.UUID       `json:"company_id"`
	Value               float64         `json:"value"`
	Currency            models.Currency `json:"currency"`
	Status              string          `json:"status"`
	Paid                bool            `json:"paid"`
	Months              []string        `json:"months"`
	DueDate             *time.Time      `json:"due_date,omitempty"`
	PublicNotes         *string         `json:"public_notes,omitempty"`
	PrivateNotes        *string         `json:"private_notes,omitempty"`
	Documents           []string        `json:"documents"`
	InvoiceReference    string          `json:"invoice_reference"`
	ProviderEmailSentAt *time.Time      `json:"provider_email_sent_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// PublicJobResponse is the reduced view returned to token holders: enough to
// identify the job, nothing internal.
type PublicJobResponse struct {
	ID               uuid.UUID       `json:"id"`
	Value            float64         `json:"value"`
	Currency         models.Currency `json:"currency"`
	Status           string          `json:"status"`
	Months           []string        `json:"months"`
	DueDate          *time.Time      `json:"due_date,omitempty"`
	PublicNotes      *string         `json:"public_notes,omitempty"`
	InvoiceReference string          `json:"invoice_reference"`
}
