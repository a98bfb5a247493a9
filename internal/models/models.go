package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusDraft             JobStatus = "draft"
	JobStatusActive            JobStatus = "active"
	JobStatusPendingInvoice    JobStatus = "pending_invoice"
	JobStatusPendingValidation JobStatus = "pending_validation"
	JobStatusPendingPayment    JobStatus = "pending_payment"
	JobStatusPaid              JobStatus = "paid"
)

// Scan implements the sql.Scanner interface for JobStatus
func (js *JobStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan JobStatus: value is not string or []byte")
		}
	}
	v := JobStatus(strVal)
	switch v {
	case JobStatusDraft, JobStatusActive, JobStatusPendingInvoice,
		JobStatusPendingValidation, JobStatusPendingPayment, JobStatusPaid:
		*js = v
		return nil
	default:
		return fmt.Errorf("invalid JobStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobStatus
func (js JobStatus) Value() (driver.Value, error) {
	return string(js), nil
}

// --- Currency Enum ---
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// Scan implements the sql.Scanner interface for Currency
func (c *Currency) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Currency: value is not string or []byte")
		}
	}
	v := Currency(strVal)
	switch v {
	case CurrencyEUR, CurrencyUSD, CurrencyGBP:
		*c = v
		return nil
	default:
		return fmt.Errorf("invalid Currency value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Currency
func (c Currency) Value() (driver.Value, error) {
	return string(c), nil
}

// --- Role Enum ---
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleMember     Role = "member"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Role: value is not string or []byte")
		}
	}
	v := Role(strVal)
	switch v {
	case RoleSuperAdmin, RoleAdmin, RoleMember:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// CanRequestInvoice reports whether the role may push a job into the
// invoicing phase.
func (r Role) CanRequestInvoice() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Job is the central entity: a unit of invoicing work tracked from draft to
// paid. PublicToken is set only while the job waits for a provider invoice;
// PaymentToken only while it waits for payment confirmation. Paid mirrors
// Status == paid.
type Job struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	ClientID            uuid.UUID  `json:"client_id" db:"client_id"`
	CampaignID          uuid.UUID  `json:"campaign_id" db:"campaign_id"`
	ProviderID          uuid.UUID  `json:"provider_id" db:"provider_id"`
	ManagerID           uuid.UUID  `json:"manager_id" db:"manager_id"`
	JobTypeID           uuid.UUID  `json:"job_type_id" db:"job_type_id"`
	CompanyID           uuid.UUID  `json:"company_id" db:"company_id"`
	Value               float64    `json:"value" db:"value"`
	Currency            Currency   `json:"currency" db:"currency"`
	Status              JobStatus  `json:"status" db:"status"`
	Paid                bool       `json:"paid" db:"paid"`
	Months              []string   `json:"months" db:"months"`
	DueDate             *time.Time `json:"due_date,omitempty" db:"due_date"`
	PublicNotes         *string    `json:"public_notes,omitempty" db:"public_notes"`
	PrivateNotes        *string    `json:"private_notes,omitempty" db:"private_notes"`
	Documents           []string   `json:"documents" db:"documents"`
	InvoiceReference    string     `json:"invoice_reference" db:"invoice_reference"`
	PublicToken         *string    `json:"-" db:"public_token"`
	PaymentToken        *string    `json:"-" db:"payment_token"`
	ProviderEmailSentAt *time.Time `json:"provider_email_sent_at,omitempty" db:"provider_email_sent_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// User is an auth identity. FullName and Role live on the profile and
// role-assignment rows and are joined in on read.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"fullname" db:"fullname"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Setting is a free-form name/value pair read by both the UI and the API.
type Setting struct {
	Name      string    `json:"name" db:"name"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// --- Invitation Status ---
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// Invitation is a single-use emailed token that provisions a new user
// account with the given role.
type Invitation struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Email     string           `json:"email" db:"email"`
	Role      Role             `json:"role" db:"role"`
	Token     string           `json:"-" db:"token"`
	Status    InvitationStatus `json:"status" db:"status"`
	CreatedBy uuid.UUID        `json:"created_by" db:"created_by"`
	ExpiresAt time.Time        `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// IsRedeemable reports whether the invitation can still be consumed.
func (i *Invitation) IsRedeemable(now time.Time) bool {
	return i.Status == InvitationPending && now.Before(i.ExpiresAt)
}
