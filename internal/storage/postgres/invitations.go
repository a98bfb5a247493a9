package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvitationRepo implements the storage.InvitationRepository interface using PostgreSQL.
type InvitationRepo struct {
	db Querier
}

// NewInvitationRepo creates a new InvitationRepo.
func NewInvitationRepo(db *pgxpool.Pool) *InvitationRepo {
	return &InvitationRepo{db: db}
}

var _ storage.InvitationRepository = (*InvitationRepo)(nil)

const invitationColumns = `id, email, role, token, status, created_by, expires_at, created_at`

func scanInvitation(row pgx.Row) (*models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(&inv.ID, &inv.Email, &inv.Role, &inv.Token, &inv.Status,
		&inv.CreatedBy, &inv.ExpiresAt, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create stores a new invitation.
func (r *InvitationRepo) Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	query := `
		INSERT INTO invitations (id, email, role, token, status, created_by, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + invitationColumns

	created, err := scanInvitation(r.db.QueryRow(ctx, query,
		inv.ID, inv.Email, inv.Role, inv.Token, inv.Status, inv.CreatedBy, inv.ExpiresAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create invitation: %w", storage.ErrConflict)
		}
		log.Printf("Error creating invitation for %s: %v\n", inv.Email, err)
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	log.Printf("Invitation created successfully with ID: %s", created.ID)
	return created, nil
}

// GetPendingByToken retrieves a pending, unexpired invitation by its token.
func (r *InvitationRepo) GetPendingByToken(ctx context.Context, token string) (*models.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
		WHERE token = $1 AND status = $2 AND expires_at > $3`

	inv, err := scanInvitation(r.db.QueryRow(ctx, query, token, models.InvitationPending, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning invitation by token: %v\n", err)
		return nil, fmt.Errorf("failed to get invitation by token: %w", err)
	}
	return inv, nil
}

// MarkAccepted consumes a pending invitation. The status guard is inside the
// UPDATE, so two racing redemptions cannot both succeed.
func (r *InvitationRepo) MarkAccepted(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE invitations SET status = $1 WHERE id = $2 AND status = $3
	`, models.InvitationAccepted, id, models.InvitationPending)
	if err != nil {
		log.Printf("Error accepting invitation %s: %v\n", id, err)
		return fmt.Errorf("failed to accept invitation %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
