package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo implements the storage.UserRepository interface using PostgreSQL.
// Identity (users), profile (profiles) and role (user_roles) are separate
// rows; provisioning writes them sequentially and compensates by deleting
// the identity when a later step fails. users has ON DELETE CASCADE to its
// children, so the compensating delete cleans up whatever was written.
type UserRepo struct {
	db Querier
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

var _ storage.UserRepository = (*UserRepo)(nil)

const userSelect = `
	SELECT u.id, u.email, COALESCE(p.fullname, ''), u.password_hash, COALESCE(r.role, 'member'),
		u.created_at, u.updated_at
	FROM users u
	LEFT JOIN profiles p ON p.user_id = u.id
	LEFT JOIN user_roles r ON r.user_id = u.id
`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user with profile and role joined in.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning user by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, userSelect+` WHERE u.email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning user by email %s: %v\n", email, err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// GetRole looks up only the role assignment for a user. The workflow uses
// this for the role re-check on invoice requests instead of trusting the
// token claim alone.
func (r *UserRepo) GetRole(ctx context.Context, id uuid.UUID) (models.Role, error) {
	var role models.Role
	err := r.db.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		log.Printf("Error scanning role for user %s: %v\n", id, err)
		return "", fmt.Errorf("failed to get role for user %s: %w", id, err)
	}
	return role, nil
}

// CreateIdentity inserts the auth identity row and returns its id.
func (r *UserRepo) CreateIdentity(ctx context.Context, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, id, email, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, storage.ErrDuplicateEmail
		}
		log.Printf("Error creating identity for %s: %v\n", email, err)
		return uuid.Nil, fmt.Errorf("failed to create identity: %w", err)
	}
	return id, nil
}

// CreateProfile inserts the profile row for an identity.
func (r *UserRepo) CreateProfile(ctx context.Context, userID uuid.UUID, fullName string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (user_id, fullname, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`, userID, fullName)
	if err != nil {
		log.Printf("Error creating profile for user %s: %v\n", userID, err)
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// AssignRole inserts the role-assignment row for an identity.
func (r *UserRepo) AssignRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_roles (user_id, role, created_at)
		VALUES ($1, $2, NOW())
	`, userID, role)
	if err != nil {
		log.Printf("Error assigning role %s to user %s: %v\n", role, userID, err)
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

// DeleteIdentity removes the identity row (and, via cascade, its profile and
// role). Used as the compensating action when provisioning fails partway.
func (r *UserRepo) DeleteIdentity(ctx context.Context, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		log.Printf("Error deleting identity %s: %v\n", userID, err)
		return fmt.Errorf("failed to delete identity %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
