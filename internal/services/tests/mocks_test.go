package services_test

import (
	"context"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"
	"invoicesflow/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockJobRepository is a mock type for the storage.JobRepository interface
type MockJobRepository struct {
	mock.Mock
}

var _ storage.JobRepository = (*MockJobRepository)(nil)

func jobReturn(args mock.Arguments) (*models.Job, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	return jobReturn(m.Called(ctx, req))
}

func (m *MockJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return jobReturn(m.Called(ctx, id))
}

func (m *MockJobRepository) GetByInvoiceReference(ctx context.Context, ref string) (*models.Job, error) {
	return jobReturn(m.Called(ctx, ref))
}

func (m *MockJobRepository) List(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) ListActive(ctx context.Context) ([]models.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	return jobReturn(m.Called(ctx, req))
}

func (m *MockJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepository) MarkInvoiceRequested(ctx context.Context, id uuid.UUID, publicToken string, sentAt time.Time) (*models.Job, error) {
	return jobReturn(m.Called(ctx, id, publicToken, sentAt))
}

func (m *MockJobRepository) ReceiveInvoice(ctx context.Context, id uuid.UUID, publicToken, documentURL string) (*models.Job, error) {
	return jobReturn(m.Called(ctx, id, publicToken, documentURL))
}

func (m *MockJobRepository) ReceiveInvoiceByReference(ctx context.Context, invoiceReference, documentURL string) (*models.Job, error) {
	return jobReturn(m.Called(ctx, invoiceReference, documentURL))
}

func (m *MockJobRepository) ExpirePublicToken(ctx context.Context, id uuid.UUID, publicToken string) (*models.Job, error) {
	return jobReturn(m.Called(ctx, id, publicToken))
}

func (m *MockJobRepository) Approve(ctx context.Context, id uuid.UUID, paymentToken string) (*models.Job, error) {
	return jobReturn(m.Called(ctx, id, paymentToken))
}

func (m *MockJobRepository) ConfirmPayment(ctx context.Context, id uuid.UUID, paymentToken string) (*models.Job, error) {
	return jobReturn(m.Called(ctx, id, paymentToken))
}

// MockUserRepository is a mock type for the storage.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

var _ storage.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetRole(ctx context.Context, id uuid.UUID) (models.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Role), args.Error(1)
}

func (m *MockUserRepository) CreateIdentity(ctx context.Context, email, passwordHash string) (uuid.UUID, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) CreateProfile(ctx context.Context, userID uuid.UUID, fullName string) error {
	return m.Called(ctx, userID, fullName).Error(0)
}

func (m *MockUserRepository) AssignRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *MockUserRepository) DeleteIdentity(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// MockInvitationRepository is a mock type for the storage.InvitationRepository interface
type MockInvitationRepository struct {
	mock.Mock
}

var _ storage.InvitationRepository = (*MockInvitationRepository)(nil)

// Create echoes the stored invitation back when the expectation returns nil
// without an error, mirroring the real repository's insert-returning shape.
func (m *MockInvitationRepository) Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		if args.Error(1) == nil {
			return inv, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) GetPendingByToken(ctx context.Context, token string) (*models.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) MarkAccepted(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockNotifier records outbound notifications.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) JobStatusChanged(ctx context.Context, job *models.Job, event string) {
	m.Called(ctx, job, event)
}

func (m *MockNotifier) InvitationCreated(ctx context.Context, inv *models.Invitation, link string) {
	m.Called(ctx, inv, link)
}

func (m *MockNotifier) ForwardDocumentUpload(ctx context.Context, payload *dto.DocumentUploadedWebhook) error {
	return m.Called(ctx, payload).Error(0)
}
