package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"invoicesflow/internal/api/handlers"
	"invoicesflow/internal/models"
	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockJobService is a mock type for the services.JobService interface
type MockJobService struct {
	mock.Mock
}

var _ services.JobService = (*MockJobService)(nil)

func jobResult(args mock.Arguments) (*models.Job, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	return jobResult(m.Called(ctx, req))
}

func (m *MockJobService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return jobResult(m.Called(ctx, id))
}

func (m *MockJobService) GetJobByInvoiceReference(ctx context.Context, ref string) (*models.Job, error) {
	return jobResult(m.Called(ctx, ref))
}

func (m *MockJobService) ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobService) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobService) UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	return jobResult(m.Called(ctx, req))
}

func (m *MockJobService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobService) RequestInvoice(ctx context.Context, jobID, requestedBy uuid.UUID) (*models.Job, error) {
	return jobResult(m.Called(ctx, jobID, requestedBy))
}

func (m *MockJobService) ValidateJobToken(ctx context.Context, jobID uuid.UUID, token string) (*models.Job, bool, error) {
	args := m.Called(ctx, jobID, token)
	var job *models.Job
	if args.Get(0) != nil {
		job = args.Get(0).(*models.Job)
	}
	return job, args.Bool(1), args.Error(2)
}

func (m *MockJobService) SubmitInvoice(ctx context.Context, jobID uuid.UUID, token, documentURL string) (*models.Job, error) {
	return jobResult(m.Called(ctx, jobID, token, documentURL))
}

func (m *MockJobService) InvoiceReceived(ctx context.Context, invoiceReference, documentURL string) (*models.Job, error) {
	return jobResult(m.Called(ctx, invoiceReference, documentURL))
}

func (m *MockJobService) ApproveJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	return jobResult(m.Called(ctx, jobID))
}

func (m *MockJobService) ConfirmPayment(ctx context.Context, jobID uuid.UUID, token string) (*models.Job, error) {
	return jobResult(m.Called(ctx, jobID, token))
}

func (m *MockJobService) ForwardDocumentUpload(ctx context.Context, payload *dto.DocumentUploadedWebhook) error {
	return m.Called(ctx, payload).Error(0)
}

func setupPublicRouter(svc services.JobService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handlers.NewPublicHandler(svc, validator.New())
	public := router.Group("/api/v1/public")
	{
		public.POST("/confirm-payment", h.ConfirmPayment)
		public.POST("/validate-job-token", h.ValidateJobToken)
		public.POST("/submit-invoice", h.SubmitInvoice)
		public.POST("/invoice-received", h.InvoiceReceived)
		public.POST("/job-document-uploader-webhook", h.DocumentUploaderWebhook)
	}
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestConfirmPaymentEndpointSuccess(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	jobID := uuid.New()
	paid := &models.Job{ID: jobID, Status: models.JobStatusPaid, Paid: true}
	svc.On("ConfirmPayment", mock.Anything, jobID, "T").Return(paid, nil).Once()

	w := postJSON(t, router, "/api/v1/public/confirm-payment",
		gin.H{"jobId": jobID.String(), "token": "T"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ConfirmPaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
}

func TestConfirmPaymentEndpointRejectionsAllLookAlike(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	// Wrong token, wrong status and missing job all surface identically.
	for i := 0; i < 3; i++ {
		jobID := uuid.New()
		svc.On("ConfirmPayment", mock.Anything, jobID, "bad").
			Return(nil, services.ErrInvalidToken).Once()

		w := postJSON(t, router, "/api/v1/public/confirm-payment",
			gin.H{"jobId": jobID.String(), "token": "bad"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp dto.ConfirmPaymentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid or expired token", resp.Error)
	}
}

func TestConfirmPaymentEndpointValidatesInput(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	w := postJSON(t, router, "/api/v1/public/confirm-payment", gin.H{"jobId": "not-a-uuid", "token": "T"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/api/v1/public/confirm-payment", gin.H{"jobId": uuid.New().String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateJobTokenEndpointReturnsPublicView(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	jobID := uuid.New()
	notes := "deliverables for March"
	job := &models.Job{
		ID:               jobID,
		Status:           models.JobStatusPendingInvoice,
		Value:            1200,
		Currency:         models.CurrencyEUR,
		PublicNotes:      &notes,
		PrivateNotes:     &notes,
		InvoiceReference: "INV-AB12CD34",
	}
	svc.On("ValidateJobToken", mock.Anything, jobID, "X").Return(job, false, nil).Once()

	w := postJSON(t, router, "/api/v1/public/validate-job-token",
		gin.H{"jobId": jobID.String(), "token": "X"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ValidateJobTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	require.NotNil(t, resp.Job)
	assert.Equal(t, "INV-AB12CD34", resp.Job.InvoiceReference)

	// The public view never includes private fields.
	assert.NotContains(t, w.Body.String(), "private_notes")
	assert.NotContains(t, w.Body.String(), "token")
}

func TestValidateJobTokenEndpointExpired(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	jobID := uuid.New()
	demoted := &models.Job{ID: jobID, Status: models.JobStatusPendingValidation}
	svc.On("ValidateJobToken", mock.Anything, jobID, "X").Return(demoted, true, nil).Once()

	w := postJSON(t, router, "/api/v1/public/validate-job-token",
		gin.H{"jobId": jobID.String(), "token": "X"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ValidateJobTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.True(t, resp.Expired)
	assert.Nil(t, resp.Job)
}

func TestValidateJobTokenEndpointInvalid(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	jobID := uuid.New()
	svc.On("ValidateJobToken", mock.Anything, jobID, "bad").
		Return(nil, false, services.ErrInvalidToken).Once()

	w := postJSON(t, router, "/api/v1/public/validate-job-token",
		gin.H{"jobId": jobID.String(), "token": "bad"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitInvoiceEndpoint(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	jobID := uuid.New()
	job := &models.Job{
		ID:               jobID,
		Status:           models.JobStatusPendingValidation,
		InvoiceReference: "INV-AB12CD34",
	}
	svc.On("SubmitInvoice", mock.Anything, jobID, "X", "https://files.test/invoice.pdf").
		Return(job, nil).Once()

	w := postJSON(t, router, "/api/v1/public/submit-invoice",
		gin.H{"jobId": jobID.String(), "token": "X", "invoiceUrl": "https://files.test/invoice.pdf"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.InvoiceReceivedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Job)
	assert.Equal(t, "pending_validation", resp.Job.Status)
}

func TestInvoiceReceivedEndpoint(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	job := &models.Job{
		ID:               uuid.New(),
		Status:           models.JobStatusPendingValidation,
		InvoiceReference: "INV-AB12CD34",
	}
	svc.On("InvoiceReceived", mock.Anything, "INV-AB12CD34", "https://files.test/invoice.pdf").
		Return(job, nil).Once()

	w := postJSON(t, router, "/api/v1/public/invoice-received",
		gin.H{"invoiceReference": "INV-AB12CD34", "invoiceUrl": "https://files.test/invoice.pdf"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvoiceReceivedEndpointUnknownReference(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	svc.On("InvoiceReceived", mock.Anything, "INV-UNKNOWN1", mock.Anything).
		Return(nil, services.ErrNotFound).Once()

	w := postJSON(t, router, "/api/v1/public/invoice-received",
		gin.H{"invoiceReference": "INV-UNKNOWN1", "invoiceUrl": "https://files.test/invoice.pdf"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentUploaderWebhookRequiresAllFields(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	w := postJSON(t, router, "/api/v1/public/job-document-uploader-webhook",
		gin.H{"job_id": uuid.New().String(), "file_url": "https://files.test/a.pdf", "file_name": "a.pdf"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ForwardDocumentUpload", mock.Anything, mock.Anything)
}

func TestDocumentUploaderWebhookForwards(t *testing.T) {
	svc := new(MockJobService)
	router := setupPublicRouter(svc)

	payload := gin.H{
		"job_id":    uuid.New().String(),
		"file_url":  "https://files.test/a.pdf",
		"file_name": "a.pdf",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	svc.On("ForwardDocumentUpload", mock.Anything, mock.AnythingOfType("*dto.DocumentUploadedWebhook")).
		Return(nil).Once()

	w := postJSON(t, router, "/api/v1/public/job-document-uploader-webhook", payload)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
