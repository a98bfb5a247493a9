package dto

import (
	"time"

	"invoicesflow/internal/models"

	"github.com/google/uuid"
)

// CreateUserRequest provisions an auth identity plus its profile and role
// rows. Password is optional; when absent a random one is generated and the
// account must be recovered via invitation or reset.
type CreateUserRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	FullName string      `json:"fullname" validate:"required,min=1"`
	Role     models.Role `json:"role" validate:"required,oneof=super_admin admin member"`
	Password string      `json:"password,omitempty" validate:"omitempty,min=8"`
}

// LoginRequest authenticates a staff user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the signed bearer token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the user view returned to clients.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"fullname"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// SendInvitationRequest emails a single-use signup link. CreatedBy is set by
// the handler from the auth context, never from the body.
type SendInvitationRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Role      models.Role `json:"role" validate:"required,oneof=super_admin admin member"`
	CreatedBy uuid.UUID   `json:"-"`
}

// AcceptInvitationRequest consumes a pending invitation token and provisions
// the invited account.
type AcceptInvitationRequest struct {
	Token    string `json:"token" validate:"required,min=1"`
	FullName string `json:"fullname" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpsertSettingRequest writes a name/value pair. Value carries no enforced
// schema.
type UpsertSettingRequest struct {
	Value string `json:"value" validate:"required"`
}
