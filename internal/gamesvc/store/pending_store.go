package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

type PendingActionStore struct {
	db Querier
}

func NewPendingActionStore(db Querier) *PendingActionStore {
	return &PendingActionStore{db: db}
}

const pendingColumns = `id, game_id, participant_id, action_type, payload, status, created_at, updated_at`

func scanPending(row interface{ Scan(...any) error }) (*models.PendingAction, error) {
	p := &models.PendingAction{}
	err := row.Scan(
		&p.ID,
		&p.GameID,
		&p.ParticipantID,
		&p.ActionType,
		&p.Payload,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetOpen returns the participant's single open obligation, if any. The
// partial unique index on (game_id, participant_id) keeps it single.
func (s *PendingActionStore) GetOpen(ctx context.Context, gameID, participantID int64) (*models.PendingAction, error) {
	query := `
		SELECT ` + pendingColumns + `
		FROM pending_actions
		WHERE game_id = $1 AND participant_id = $2 AND status = 'pending'
	`

	p, err := scanPending(s.db.QueryRow(ctx, query, gameID, participantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open pending action: %w", err)
	}
	return p, nil
}

func (s *PendingActionStore) GetByID(ctx context.Context, actionID int64) (*models.PendingAction, error) {
	query := `SELECT ` + pendingColumns + ` FROM pending_actions WHERE id = $1`

	p, err := scanPending(s.db.QueryRow(ctx, query, actionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending action: %w", err)
	}
	return p, nil
}

func (s *PendingActionStore) Create(ctx context.Context, p *models.PendingAction) error {
	query := `
		INSERT INTO pending_actions (game_id, participant_id, action_type, payload, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		p.GameID, p.ParticipantID, p.ActionType, p.Payload, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pending action: %w", err)
	}
	return nil
}

func (s *PendingActionStore) Update(ctx context.Context, p *models.PendingAction) error {
	query := `UPDATE pending_actions SET status = $2, updated_at = now() WHERE id = $1`

	if _, err := s.db.Exec(ctx, query, p.ID, p.Status); err != nil {
		return fmt.Errorf("failed to update pending action: %w", err)
	}
	return nil
}
