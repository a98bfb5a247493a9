package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/services"
	"invoicesflow/internal/storage"
	"invoicesflow/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const inviteBase = "https://app.agency.test"

func TestSendInvitationStoresRowAndHandsLinkToNotifier(t *testing.T) {
	repo := new(MockInvitationRepository)
	users := new(MockUserRepository)
	notifier := new(MockNotifier)
	userSvc := services.NewUserService(users, testSecret, time.Hour)
	svc := services.NewInvitationService(repo, userSvc, notifier, inviteBase)

	createdBy := uuid.New()
	var storedToken string

	repo.On("Create", mock.Anything, mock.MatchedBy(func(inv *models.Invitation) bool {
		storedToken = inv.Token
		return inv.Email == "invitee@agency.test" &&
			inv.Role == models.RoleMember &&
			inv.Status == models.InvitationPending &&
			len(inv.Token) == 64 &&
			inv.ExpiresAt.After(time.Now().Add(6*24*time.Hour))
	})).Return(nil, nil).Once()
	notifier.On("InvitationCreated", mock.Anything, mock.Anything,
		mock.MatchedBy(func(link string) bool {
			return strings.HasPrefix(link, inviteBase+"/accept-invitation?token=")
		})).Once()

	inv, err := svc.Send(context.Background(), &dto.SendInvitationRequest{
		Email:     "invitee@agency.test",
		Role:      models.RoleMember,
		CreatedBy: createdBy,
	})
	require.NoError(t, err)
	assert.Equal(t, storedToken, inv.Token)
	notifier.AssertExpectations(t)
}

func TestAcceptInvitationProvisionsUserWithInvitedRole(t *testing.T) {
	repo := new(MockInvitationRepository)
	users := new(MockUserRepository)
	userSvc := services.NewUserService(users, testSecret, time.Hour)
	svc := services.NewInvitationService(repo, userSvc, new(MockNotifier), inviteBase)

	inv := &models.Invitation{
		ID:        uuid.New(),
		Email:     "invitee@agency.test",
		Role:      models.RoleAdmin,
		Token:     strings.Repeat("a", 64),
		Status:    models.InvitationPending,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	userID := uuid.New()
	created := &models.User{ID: userID, Email: inv.Email, FullName: "Invitee", Role: inv.Role}

	repo.On("GetPendingByToken", mock.Anything, inv.Token).Return(inv, nil).Once()
	repo.On("MarkAccepted", mock.Anything, inv.ID).Return(nil).Once()
	users.On("CreateIdentity", mock.Anything, inv.Email, mock.Anything).Return(userID, nil).Once()
	users.On("CreateProfile", mock.Anything, userID, "Invitee").Return(nil).Once()
	users.On("AssignRole", mock.Anything, userID, models.RoleAdmin).Return(nil).Once()
	users.On("GetByID", mock.Anything, userID).Return(created, nil).Once()

	user, err := svc.Accept(context.Background(), &dto.AcceptInvitationRequest{
		Token:    inv.Token,
		FullName: "Invitee",
		Password: "chosen-password",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	repo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestAcceptInvitationTokenIsSingleUse(t *testing.T) {
	repo := new(MockInvitationRepository)
	users := new(MockUserRepository)
	userSvc := services.NewUserService(users, testSecret, time.Hour)
	svc := services.NewInvitationService(repo, userSvc, new(MockNotifier), inviteBase)

	inv := &models.Invitation{
		ID:        uuid.New(),
		Email:     "invitee@agency.test",
		Role:      models.RoleMember,
		Token:     strings.Repeat("b", 64),
		Status:    models.InvitationPending,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	// Both requests find the pending row, but only one wins the guarded
	// accept.
	repo.On("GetPendingByToken", mock.Anything, inv.Token).Return(inv, nil).Twice()
	repo.On("MarkAccepted", mock.Anything, inv.ID).Return(nil).Once()
	repo.On("MarkAccepted", mock.Anything, inv.ID).Return(storage.ErrNotFound).Once()
	userID := uuid.New()
	users.On("CreateIdentity", mock.Anything, inv.Email, mock.Anything).Return(userID, nil).Once()
	users.On("CreateProfile", mock.Anything, userID, mock.Anything).Return(nil).Once()
	users.On("AssignRole", mock.Anything, userID, models.RoleMember).Return(nil).Once()
	users.On("GetByID", mock.Anything, userID).
		Return(&models.User{ID: userID, Email: inv.Email}, nil).Once()

	req := &dto.AcceptInvitationRequest{Token: inv.Token, FullName: "Invitee", Password: "chosen-password"}

	_, err := svc.Accept(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	users.AssertNumberOfCalls(t, "CreateIdentity", 1)
}

func TestAcceptExpiredInvitationRejected(t *testing.T) {
	repo := new(MockInvitationRepository)
	users := new(MockUserRepository)
	userSvc := services.NewUserService(users, testSecret, time.Hour)
	svc := services.NewInvitationService(repo, userSvc, new(MockNotifier), inviteBase)

	inv := &models.Invitation{
		ID:        uuid.New(),
		Token:     strings.Repeat("c", 64),
		Status:    models.InvitationPending,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	repo.On("GetPendingByToken", mock.Anything, inv.Token).Return(inv, nil).Once()

	_, err := svc.Accept(context.Background(), &dto.AcceptInvitationRequest{
		Token:    inv.Token,
		FullName: "Late",
		Password: "chosen-password",
	})
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	repo.AssertNotCalled(t, "MarkAccepted", mock.Anything, mock.Anything)
}

func TestAcceptUnknownTokenRejected(t *testing.T) {
	repo := new(MockInvitationRepository)
	users := new(MockUserRepository)
	userSvc := services.NewUserService(users, testSecret, time.Hour)
	svc := services.NewInvitationService(repo, userSvc, new(MockNotifier), inviteBase)

	repo.On("GetPendingByToken", mock.Anything, "nope").Return(nil, storage.ErrNotFound).Once()

	_, err := svc.Accept(context.Background(), &dto.AcceptInvitationRequest{
		Token:    "nope",
		FullName: "Nobody",
		Password: "chosen-password",
	})
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
