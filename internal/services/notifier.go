package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/transport/dto"
)

// WebhookNotifier posts JSON events to the configured automation webhook and
// invitation-mail endpoints. Status-change and invitation notifications are
// best-effort: a delivery failure is logged and swallowed so it can never
// roll back the state change that triggered it.
type WebhookNotifier struct {
	webhookURL    string
	invitationURL string
	httpClient    *http.Client
}

// NewWebhookNotifier creates a notifier. Empty URLs disable the
// corresponding deliveries.
func NewWebhookNotifier(webhookURL, invitationURL string) *WebhookNotifier {
	return &WebhookNotifier{
		webhookURL:    webhookURL,
		invitationURL: invitationURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

var _ Notifier = (*WebhookNotifier)(nil)

type statusChangedEvent struct {
	Event            string    `json:"event"`
	JobID            string    `json:"job_id"`
	Status           string    `json:"status"`
	InvoiceReference string    `json:"invoice_reference"`
	Timestamp        time.Time `json:"timestamp"`
}

type invitationEvent struct {
	Event string `json:"event"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Link  string `json:"link"`
}

// JobStatusChanged notifies the automation service about a workflow
// transition. Failure is logged only.
func (n *WebhookNotifier) JobStatusChanged(ctx context.Context, job *models.Job, event string) {
	if n.webhookURL == "" {
		return
	}
	payload := statusChangedEvent{
		Event:            event,
		JobID:            job.ID.String(),
		Status:           string(job.Status),
		InvoiceReference: job.InvoiceReference,
		Timestamp:        time.Now().UTC(),
	}
	if err := n.post(ctx, n.webhookURL, payload); err != nil {
		log.Printf("Notifier: failed to deliver %s for job %s: %v", event, job.ID, err)
	}
}

// InvitationCreated hands the invitation link to the mail webhook. Failure
// is logged only; the invitation row is already stored and the link can be
// re-sent.
func (n *WebhookNotifier) InvitationCreated(ctx context.Context, inv *models.Invitation, link string) {
	if n.invitationURL == "" {
		return
	}
	payload := invitationEvent{
		Event: "invitation_created",
		Email: inv.Email,
		Role:  string(inv.Role),
		Link:  link,
	}
	if err := n.post(ctx, n.invitationURL, payload); err != nil {
		log.Printf("Notifier: failed to deliver invitation mail for %s: %v", inv.Email, err)
	}
}

// ForwardDocumentUpload relays the uploader webhook payload verbatim.
func (n *WebhookNotifier) ForwardDocumentUpload(ctx context.Context, payload *dto.DocumentUploadedWebhook) error {
	if n.webhookURL == "" {
		return fmt.Errorf("no automation webhook configured")
	}
	return n.post(ctx, n.webhookURL, payload)
}

func (n *WebhookNotifier) post(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
