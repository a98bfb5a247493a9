package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"
	"invoicesflow/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	repo      storage.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo storage.UserRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userService{repo: repo, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

// CreateUser provisions the identity, profile and role rows in sequence.
// There is no cross-table transaction here: if the profile or role step
// fails, the identity is deleted again and its cascades clean up the rest.
func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	password := req.Password
	if password == "" {
		// No password supplied: the account starts unreachable until an
		// invitation or reset sets one.
		random, err := newToken()
		if err != nil {
			return nil, err
		}
		password = random[:32]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.repo.CreateIdentity(ctx, req.Email, string(hash))
	if err != nil {
		return nil, mapRepoError(err, "creating user identity")
	}

	if err := s.repo.CreateProfile(ctx, userID, req.FullName); err != nil {
		s.compensate(ctx, userID, "profile", err)
		return nil, mapRepoError(err, "creating user profile")
	}

	if err := s.repo.AssignRole(ctx, userID, req.Role); err != nil {
		s.compensate(ctx, userID, "role", err)
		return nil, mapRepoError(err, "assigning user role")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "loading created user")
	}
	return user, nil
}

func (s *userService) compensate(ctx context.Context, userID uuid.UUID, step string, cause error) {
	log.Printf("UserService: %s step failed for %s, rolling back identity: %v", step, userID, cause)
	if err := s.repo.DeleteIdentity(ctx, userID); err != nil {
		// Orphaned identity rows are harmless (no profile, no role) but
		// worth flagging for cleanup.
		log.Printf("UserService: failed to roll back identity %s: %v", userID, err)
	}
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", mapRepoError(err, "looking up user for login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		log.Printf("UserService: Error signing token for %s: %v", user.ID, err)
		return nil, "", fmt.Errorf("internal error issuing token: %w", err)
	}
	return user, token, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "getting user by ID")
	}
	return user, nil
}

func (s *userService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
