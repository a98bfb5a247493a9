package dto

// Public token-gated endpoint payloads. These carry no session; the token is
// the sole credential.

// ConfirmPaymentRequest authorizes the pending_payment -> paid transition.
type ConfirmPaymentRequest struct {
	JobID string `json:"jobId" validate:"required,uuid"`
	Token string `json:"token" validate:"required,min=1"`
}

// ConfirmPaymentResponse reports the outcome without leaking why a rejected
// call was rejected.
type ConfirmPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ValidateJobTokenRequest checks a provider's public token before the invoice
// upload form is shown.
type ValidateJobTokenRequest struct {
	JobID string `json:"jobId" validate:"required,uuid"`
	Token string `json:"token" validate:"required,min=1"`
}

// ValidateJobTokenResponse carries the job view on success, or an expired
// marker when the due date has passed and the token was demoted.
type ValidateJobTokenResponse struct {
	Valid   bool               `json:"valid"`
	Expired bool               `json:"expired,omitempty"`
	Job     *PublicJobResponse `json:"job,omitempty"`
}

// SubmitInvoiceRequest is the tokenized provider upload.
type SubmitInvoiceRequest struct {
	JobID      string `json:"jobId" validate:"required,uuid"`
	Token      string `json:"token" validate:"required,min=1"`
	InvoiceURL string `json:"invoiceUrl" validate:"required,url"`
}

// InvoiceReceivedRequest records a submitted invoice, looked up by invoice
// reference rather than id+token.
type InvoiceReceivedRequest struct {
	InvoiceReference string `json:"invoiceReference" validate:"required,min=1"`
	InvoiceURL       string `json:"invoiceUrl" validate:"required,url"`
}

// InvoiceReceivedResponse echoes the updated job.
type InvoiceReceivedResponse struct {
	Message string             `json:"message"`
	Job     *PublicJobResponse `json:"job"`
}

// DocumentUploadedWebhook is forwarded verbatim to the configured automation
// webhook; all four fields are required.
type DocumentUploadedWebhook struct {
	JobID     string `json:"job_id" validate:"required,uuid"`
	FileURL   string `json:"file_url" validate:"required,url"`
	FileName  string `json:"file_name" validate:"required,min=1"`
	Timestamp string `json:"timestamp" validate:"required,min=1"`
}
