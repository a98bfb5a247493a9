package dto

import (
	"github.com/google/uuid"
)

// Reference entities share one list contract: an optional exact-match active
// filter and a single ascending order column.

// ListEntitiesRequest defines the common list parameters for lookup entities.
type ListEntitiesRequest struct {
	Active  *bool  `form:"active"`
	OrderBy string `form:"order_by,default=name" validate:"omitempty,oneof=name created_at"`
	Limit   int    `form:"limit,default=100"`
	Offset  int    `form:"offset,default=0"`
}

// --- Client ---

type CreateClientRequest struct {
	Name   string `json:"name" validate:"required,min=1"`
	Email  string `json:"email" validate:"omitempty,email"`
	Active *bool  `json:"active,omitempty"`
}

type UpdateClientRequest struct {
	ID     uuid.UUID `json:"-"`
	Name   *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Email  *string   `json:"email,omitempty" validate:"omitempty,email"`
	Active *bool     `json:"active,omitempty"`
}

// --- Campaign ---

type CreateCampaignRequest struct {
	Name     string    `json:"name" validate:"required,min=1"`
	ClientID uuid.UUID `json:"client_id" validate:"required"`
	Active   *bool     `json:"active,omitempty"`
}

type UpdateCampaignRequest struct {
	ID       uuid.UUID  `json:"-"`
	Name     *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	Active   *bool      `json:"active,omitempty"`
}

// --- Provider ---

type CreateProviderRequest struct {
	Name   string `json:"name" validate:"required,min=1"`
	Email  string `json:"email" validate:"required,email"`
	Active *bool  `json:"active,omitempty"`
}

type UpdateProviderRequest struct {
	ID     uuid.UUID `json:"-"`
	Name   *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Email  *string   `json:"email,omitempty" validate:"omitempty,email"`
	Active *bool     `json:"active,omitempty"`
}

// --- Manager ---

type CreateManagerRequest struct {
	Name   string `json:"name" validate:"required,min=1"`
	Email  string `json:"email" validate:"required,email"`
	Active *bool  `json:"active,omitempty"`
}

type UpdateManagerRequest struct {
	ID     uuid.UUID `json:"-"`
	Name   *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Email  *string   `json:"email,omitempty" validate:"omitempty,email"`
	Active *bool     `json:"active,omitempty"`
}

// --- Company ---

type CreateCompanyRequest struct {
	Name   string `json:"name" validate:"required,min=1"`
	Active *bool  `json:"active,omitempty"`
}

type UpdateCompanyRequest struct {
	ID     uuid.UUID `json:"-"`
	Name   *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Active *bool     `json:"active,omitempty"`
}

// --- JobType ---

type CreateJobTypeRequest struct {
	Name     string   `json:"name" validate:"required,min=1"`
	Workflow []string `json:"workflow" validate:"omitempty,dive,min=1"`
	Active   *bool    `json:"active,omitempty"`
}

type UpdateJobTypeRequest struct {
	ID       uuid.UUID `json:"-"`
	Name     *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Workflow []string  `json:"workflow,omitempty"`
	Active   *bool     `json:"active,omitempty"`
}
