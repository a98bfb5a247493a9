package services_test

import (
	"context"
	"errors"
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

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func TestCreateUserProvisionsAllThreeRows(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, testSecret, time.Hour)

	userID := uuid.New()
	created := &models.User{
		ID:       userID,
		Email:    "new@agency.test",
		FullName: "New Person",
		Role:     models.RoleMember,
	}

	repo.On("CreateIdentity", mock.Anything, "new@agency.test", mock.AnythingOfType("string")).
		Return(userID, nil).Once()
	repo.On("CreateProfile", mock.Anything, userID, "New Person").Return(nil).Once()
	repo.On("AssignRole", mock.Anything, userID, models.RoleMember).Return(nil).Once()
	repo.On("GetByID", mock.Anything, userID).Return(created, nil).Once()

	user, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:    "new@agency.test",
		FullName: "New Person",
		Role:     models.RoleMember,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	repo.AssertExpectations(t)
}

func TestCreateUserRollsBackIdentityWhenProfileFails(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, testSecret, time.Hour)

	userID := uuid.New()
	repo.On("CreateIdentity", mock.Anything, "new@agency.test", mock.AnythingOfType("string")).
		Return(userID, nil).Once()
	repo.On("CreateProfile", mock.Anything, userID, "New Person").
		Return(errors.New("profiles table unavailable")).Once()
	repo.On("DeleteIdentity", mock.Anything, userID).Return(nil).Once()

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:    "new@agency.test",
		FullName: "New Person",
		Role:     models.RoleMember,
		Password: "s3cret-pass",
	})
	require.Error(t, err)

	repo.AssertCalled(t, "DeleteIdentity", mock.Anything, userID)
	repo.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUserRollsBackIdentityWhenRoleAssignmentFails(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, testSecret, time.Hour)

	userID := uuid.New()
	repo.On("CreateIdentity", mock.Anything, mock.Anything, mock.Anything).Return(userID, nil).Once()
	repo.On("CreateProfile", mock.Anything, userID, mock.Anything).Return(nil).Once()
	repo.On("AssignRole", mock.Anything, userID, models.RoleAdmin).
		Return(errors.New("role write failed")).Once()
	repo.On("DeleteIdentity", mock.Anything, userID).Return(nil).Once()

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:    "new@agency.test",
		FullName: "New Person",
		Role:     models.RoleAdmin,
		Password: "s3cret-pass",
	})
	require.Error(t, err)
	repo.AssertExpectations(t)
}

func TestCreateUserDuplicateEmailMapsToConflict(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, testSecret, time.Hour)

	repo.On("CreateIdentity", mock.Anything, mock.Anything, mock.Anything).
		Return(uuid.Nil, storage.ErrDuplicateEmail).Once()

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:    "taken@agency.test",
		FullName: "Any",
		Role:     models.RoleMember,
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, services.ErrConflict)
	repo.AssertNotCalled(t, "DeleteIdentity", mock.Anything, mock.Anything)
}

func TestLoginReturnsSignedTokenForValidCredentials(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, testSecret, time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Email:        "staff@agency.test",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	repo.On("GetByEmail", mock.Anything, "staff@agency.test").Return(user, nil).Twice()

	got, token, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "staff@agency.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "staff@agency.test",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginUnknownEmailIsInvalidCredentials(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, testSecret, time.Hour)

	repo.On("GetByEmail", mock.Anything, "nobody@agency.test").
		Return(nil, storage.ErrNotFound).Once()

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@agency.test",
		Password: "anything",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
