package services

import (
	"context"
	"fmt"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"
	"invoicesflow/internal/transport/dto"

	"github.com/google/uuid"
)

// Invitations stay redeemable for a week.
const invitationTTL = 7 * 24 * time.Hour

type invitationService struct {
	repo     storage.InvitationRepository
	users    UserService
	notifier Notifier
	baseURL  string
}

// NewInvitationService creates a new instance of InvitationService. baseURL
// is the public UI origin used to build signup links.
func NewInvitationService(repo storage.InvitationRepository, users UserService, notifier Notifier, baseURL string) InvitationService {
	return &invitationService{repo: repo, users: users, notifier: notifier, baseURL: baseURL}
}

func (s *invitationService) Send(ctx context.Context, req *dto.SendInvitationRequest) (*models.Invitation, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	inv := &models.Invitation{
		ID:        uuid.New(),
		Email:     req.Email,
		Role:      req.Role,
		Token:     token,
		Status:    models.InvitationPending,
		CreatedBy: req.CreatedBy,
		ExpiresAt: time.Now().UTC().Add(invitationTTL),
	}

	stored, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, mapRepoError(err, "creating invitation")
	}

	link := fmt.Sprintf("%s/accept-invitation?token=%s", s.baseURL, token)
	s.notifier.InvitationCreated(ctx, stored, link)
	return stored, nil
}

// Accept redeems a pending invitation. The status guard in MarkAccepted makes
// redemption single-use; the account is provisioned only after the token is
// consumed so a duplicate submit cannot create two users.
func (s *invitationService) Accept(ctx context.Context, req *dto.AcceptInvitationRequest) (*models.User, error) {
	inv, err := s.repo.GetPendingByToken(ctx, req.Token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !inv.IsRedeemable(time.Now()) {
		return nil, ErrInvalidToken
	}

	if err := s.repo.MarkAccepted(ctx, inv.ID); err != nil {
		// Lost the race: another request consumed the token first.
		return nil, ErrInvalidToken
	}

	user, err := s.users.CreateUser(ctx, &dto.CreateUserRequest{
		Email:    inv.Email,
		FullName: req.FullName,
		Role:     inv.Role,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
