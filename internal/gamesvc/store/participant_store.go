package store

import (
	"context"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

type ParticipantStore struct {
	db Querier
}

func NewParticipantStore(db Querier) *ParticipantStore {
	return &ParticipantStore{db: db}
}

const participantColumns = `id, game_id, user_id, token, cash, position, in_jail, jail_turns, goojf_cards, is_bankrupt, created_at, updated_at`

func scanParticipant(row interface{ Scan(...any) error }) (*models.Participant, error) {
	p := &models.Participant{}
	err := row.Scan(
		&p.ID,
		&p.GameID,
		&p.UserID,
		&p.Token,
		&p.Cash,
		&p.Position,
		&p.InJail,
		&p.JailTurns,
		&p.GoojfCards,
		&p.IsBankrupt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ParticipantStore) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (game_id, user_id, token, cash, position, in_jail, jail_turns, goojf_cards, is_bankrupt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		p.GameID, p.UserID, p.Token, p.Cash, p.Position, p.InJail, p.JailTurns, p.GoojfCards, p.IsBankrupt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

// ListForUpdate locks every participant row of a game in join order.
func (s *ParticipantStore) ListForUpdate(ctx context.Context, gameID int64) ([]*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE game_id = $1 ORDER BY id FOR UPDATE`
	return s.list(ctx, query, gameID)
}

func (s *ParticipantStore) ListByGame(ctx context.Context, gameID int64) ([]*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE game_id = $1 ORDER BY id`
	return s.list(ctx, query, gameID)
}

func (s *ParticipantStore) list(ctx context.Context, query string, args ...any) ([]*models.Participant, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var parts []*models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (s *ParticipantStore) Update(ctx context.Context, p *models.Participant) error {
	query := `
		UPDATE participants
		SET cash = $2, position = $3, in_jail = $4, jail_turns = $5, goojf_cards = $6, is_bankrupt = $7, updated_at = now()
		WHERE id = $1
	`

	if _, err := s.db.Exec(ctx, query,
		p.ID, p.Cash, p.Position, p.InJail, p.JailTurns, p.GoojfCards, p.IsBankrupt,
	); err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return nil
}
