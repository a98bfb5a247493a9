package services_test

import (
	"context"
	"testing"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/services"
	"invoicesflow/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func pendingPaymentJob(token string) *models.Job {
	return &models.Job{
		ID:               uuid.New(),
		Status:           models.JobStatusPendingPayment,
		PaymentToken:     strptr(token),
		InvoiceReference: "INV-AB12CD34",
	}
}

func TestConfirmPaymentTransitionsAndNotifies(t *testing.T) {
	jobRepo := new(MockJobRepository)
	notifier := new(MockNotifier)
	svc := services.NewJobService(jobRepo, nil, nil, notifier)

	job := pendingPaymentJob("T")
	paid := *job
	paid.Status = models.JobStatusPaid
	paid.Paid = true
	paid.PaymentToken = nil

	jobRepo.On("ConfirmPayment", mock.Anything, job.ID, "T").Return(&paid, nil).Once()
	notifier.On("JobStatusChanged", mock.Anything, &paid, "job_paid").Once()

	got, err := svc.ConfirmPayment(context.Background(), job.ID, "T")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPaid, got.Status)
	assert.True(t, got.Paid)
	assert.Nil(t, got.PaymentToken)

	jobRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestConfirmPaymentTokenIsSingleUse(t *testing.T) {
	jobRepo := new(MockJobRepository)
	notifier := new(MockNotifier)
	svc := services.NewJobService(jobRepo, nil, nil, notifier)

	job := pendingPaymentJob("T")
	paid := *job
	paid.Status = models.JobStatusPaid
	paid.Paid = true
	paid.PaymentToken = nil

	// First redemption matches the guard; the second finds no matching row.
	jobRepo.On("ConfirmPayment", mock.Anything, job.ID, "T").Return(&paid, nil).Once()
	jobRepo.On("ConfirmPayment", mock.Anything, job.ID, "T").Return(nil, storage.ErrNotFound).Once()
	notifier.On("JobStatusChanged", mock.Anything, mock.Anything, "job_paid").Once()

	_, err := svc.ConfirmPayment(context.Background(), job.ID, "T")
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(context.Background(), job.ID, "T")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	jobRepo.AssertExpectations(t)
	notifier.AssertNumberOfCalls(t, "JobStatusChanged", 1)
}

func TestConfirmPaymentCollapsesMissingJobToInvalidToken(t *testing.T) {
	jobRepo := new(MockJobRepository)
	svc := services.NewJobService(jobRepo, nil, nil, new(MockNotifier))

	id := uuid.New()
	jobRepo.On("ConfirmPayment", mock.Anything, id, "whatever").Return(nil, storage.ErrNotFound).Once()

	_, err := svc.ConfirmPayment(context.Background(), id, "whatever")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateJobTokenHappyPath(t *testing.T) {
	jobRepo := new(MockJobRepository)
	notifier := new(MockNotifier)
	svc := services.NewJobService(jobRepo, nil, nil, notifier)

	due := time.Now().Add(48 * time.Hour)
	job := &models.Job{
		ID:          uuid.New(),
		Status:      models.JobStatusPendingInvoice,
		PublicToken: strptr("X"),
		DueDate:     &due,
	}
	jobRepo.On("GetByID", mock.Anything, job.ID).Return(job, nil).Once()

	got, expired, err := svc.ValidateJobToken(context.Background(), job.ID, "X")
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, job.ID, got.ID)

	// No transition and no notification on a plain validation.
	jobRepo.AssertNotCalled(t, "ExpirePublicToken", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "JobStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateJobTokenPastDueDateDemotesJob(t *testing.T) {
	jobRepo := new(MockJobRepository)
	notifier := new(MockNotifier)
	svc := services.NewJobService(jobRepo, nil, nil, notifier)

	due := time.Now().Add(-time.Hour)
	job := &models.Job{
		ID:          uuid.New(),
		Status:      models.JobStatusPendingInvoice,
		PublicToken: strptr("X"),
		DueDate:     &due,
	}
	demoted := *job
	demoted.Status = models.JobStatusPendingValidation
	demoted.PublicToken = nil

	jobRepo.On("GetByID", mock.Anything, job.ID).Return(job, nil).Once()
	jobRepo.On("ExpirePublicToken", mock.Anything, job.ID, "X").Return(&demoted, nil).Once()
	notifier.On("JobStatusChanged", mock.Anything, &demoted, "invoice_request_expired").Once()

	got, expired, err := svc.ValidateJobToken(context.Background(), job.ID, "X")
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Equal(t, models.JobStatusPendingValidation, got.Status)
	assert.Nil(t, got.PublicToken)

	jobRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestValidateJobTokenMismatchPerformsNoMutation(t *testing.T) {
	jobRepo := new(MockJobRepository)
	notifier := new(MockNotifier)
	svc := services.NewJobService(jobRepo, nil, nil, notifier)

	job := &models.Job{
		ID:          uuid.New(),
		Status:      models.JobStatusPendingInvoice,
		PublicToken: strptr("X"),
	}
	jobRepo.On("GetByID", mock.Anything, job.ID).Return(job, nil).Once()

	_, _, err := svc.ValidateJobToken(context.Background(), job.ID, "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	jobRepo.AssertNotCalled(t, "ExpirePublicToken", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "JobStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateJobTokenWrongStatusCollapsesToInvalidToken(t *testing.T) {
	jobRepo := new(MockJobRepository)
	svc := services.NewJobService(jobRepo, nil, nil, new(MockNotifier))

	job := &models.Job{ID: uuid.New(), Status: models.JobStatusDraft}
	jobRepo.On("GetByID", mock.Anything, job.ID).Return(job, nil).Once()

	_, _, err := svc.ValidateJobToken(context.Background(), job.ID, "X")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestRequestInvoiceRequiresAdminRole(t *testing.T) {
	jobRepo := new(MockJobRepository)
	userRepo := new(MockUserRepository)
	svc := services.NewJobService(jobRepo, userRepo, nil, new(MockNotifier))

	jobID := uuid.New()
	staffID := uuid.New()
	userRepo.On("GetRole", mock.Anything, staffID).Return(models.RoleMember, nil).Once()

	_, err := svc.RequestInvoice(context.Background(), jobID, staffID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	jobRepo.AssertNotCalled(t, "MarkInvoiceRequested", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestInvoiceGeneratesTokenAndNotifies(t *testing.T) {
	jobRepo := new(MockJobRepository)
	userRepo := new(MockUserRepository)
	notifier := new(MockNotifier)
	svc := services.NewJobService(jobRepo, userRepo, nil, notifier)

	jobID := uuid.New()
	staffID := uuid.New()
	draft := &models.Job{ID: jobID, Status: models.JobStatusDraft}
	transitioned := &models.Job{ID: jobID, Status: models.JobStatusPendingInvoice}

	userRepo.On("GetRole", mock.Anything, staffID).Return(models.RoleAdmin, nil).Once()
	jobRepo.On("GetByID", mock.Anything, jobID).Return(draft, nil).Once()
	jobRepo.On("MarkInvoiceRequested", mock.Anything, jobID,
		mock.MatchedBy(func(token string) bool { return len(token) == 64 }),
		mock.AnythingOfType("time.Time")).Return(transitioned, nil).Once()
	notifier.On("JobStatusChanged", mock.Anything, transitioned, "invoice_requested").Once()

	got, err := svc.RequestInvoice(context.Background(), jobID, staffID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPendingInvoice, got.Status)

	jobRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRequestInvoiceRejectsWrongStatus(t *testing.T) {
	jobRepo := new(MockJobRepository)
	userRepo := new(MockUserRepository)
	svc := services.NewJobService(jobRepo, userRepo, nil, new(MockNotifier))

	jobID := uuid.New()
	staffID := uuid.New()
	userRepo.On("GetRole", mock.Anything, staffID).Return(models.RoleSuperAdmin, nil).Once()
	jobRepo.On("GetByID", mock.Anything, jobID).
		Return(&models.Job{ID: jobID, Status: models.JobStatusPaid}, nil).Once()

	_, err := svc.RequestInvoice(context.Background(), jobID, staffID)
	assert.ErrorIs(t, err, services.ErrInvalidState)
}

func TestSubmitInvoiceStoresDocumentAndNotifies(t *testing.T) {
	jobRepo := new(MockJobRepository)
	notifier := new(MockNotifier)
	svc := services.NewJobService(jobRepo, nil, nil, notifier)

	jobID := uuid.New()
	received := &models.Job{
		ID:        jobID,
		Status:    models.JobStatusPendingValidation,
		Documents: []string{"https://files.test/invoice.pdf"},
	}

	jobRepo.On("ReceiveInvoice", mock.Anything, jobID, "X", "https://files.test/invoice.pdf").
		Return(received, nil).Once()
	notifier.On("JobStatusChanged", mock.Anything, received, "invoice_received").Once()

	got, err := svc.SubmitInvoice(context.Background(), jobID, "X", "https://files.test/invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPendingValidation, got.Status)
	notifier.AssertExpectations(t)
}

func TestApproveJobIssuesPaymentToken(t *testing.T) {
	jobRepo := new(MockJobRepository)
	notifier := new(MockNotifier)
	svc := services.NewJobService(jobRepo, nil, nil, notifier)

	jobID := uuid.New()
	pending := &models.Job{ID: jobID, Status: models.JobStatusPendingValidation}
	approved := &models.Job{ID: jobID, Status: models.JobStatusPendingPayment}

	jobRepo.On("GetByID", mock.Anything, jobID).Return(pending, nil).Once()
	jobRepo.On("Approve", mock.Anything, jobID,
		mock.MatchedBy(func(token string) bool { return len(token) == 64 })).
		Return(approved, nil).Once()
	notifier.On("JobStatusChanged", mock.Anything, approved, "payment_requested").Once()

	got, err := svc.ApproveJob(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPendingPayment, got.Status)
	jobRepo.AssertExpectations(t)
}

func TestApproveJobRejectsWrongStatus(t *testing.T) {
	jobRepo := new(MockJobRepository)
	svc := services.NewJobService(jobRepo, nil, nil, new(MockNotifier))

	jobID := uuid.New()
	jobRepo.On("GetByID", mock.Anything, jobID).
		Return(&models.Job{ID: jobID, Status: models.JobStatusDraft}, nil).Once()

	_, err := svc.ApproveJob(context.Background(), jobID)
	assert.ErrorIs(t, err, services.ErrInvalidState)
	jobRepo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything)
}
