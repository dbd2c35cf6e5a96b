package store

import (
	"context"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

type TurnStore struct {
	db Querier
}

func NewTurnStore(db Querier) *TurnStore {
	return &TurnStore{db: db}
}

func (s *TurnStore) NextTurnNumber(ctx context.Context, gameID int64) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(turn_number), 0) + 1 FROM turns WHERE game_id = $1`, gameID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to get next turn number: %w", err)
	}
	return n, nil
}

func (s *TurnStore) Create(ctx context.Context, t *models.Turn) error {
	query := `
		INSERT INTO turns (game_id, participant_id, turn_number, die1, die2, is_doubles, prev_position, new_position, action)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query,
		t.GameID, t.ParticipantID, t.TurnNumber, t.Die1, t.Die2, t.IsDoubles, t.PrevPosition, t.NewPosition, t.Action,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create turn: %w", err)
	}
	return nil
}

func (s *TurnStore) Update(ctx context.Context, t *models.Turn) error {
	query := `
		UPDATE turns
		SET new_position = $2, action = $3
		WHERE id = $1
	`

	if _, err := s.db.Exec(ctx, query, t.ID, t.NewPosition, t.Action); err != nil {
		return fmt.Errorf("failed to update turn: %w", err)
	}
	return nil
}

func (s *TurnStore) ListRecent(ctx context.Context, gameID int64, limit int) ([]*models.Turn, error) {
	query := `
		SELECT id, game_id, participant_id, turn_number, die1, die2, is_doubles, prev_position, new_position, action, created_at
		FROM turns
		WHERE game_id = $1
		ORDER BY turn_number DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	var turns []*models.Turn
	for rows.Next() {
		t := &models.Turn{}
		err := rows.Scan(
			&t.ID,
			&t.GameID,
			&t.ParticipantID,
			&t.TurnNumber,
			&t.Die1,
			&t.Die2,
			&t.IsDoubles,
			&t.PrevPosition,
			&t.NewPosition,
			&t.Action,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
