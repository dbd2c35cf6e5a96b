package store

import (
	"context"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

type TransactionStore struct {
	db Querier
}

func NewTransactionStore(db Querier) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Create(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (game_id, from_participant_id, to_participant_id, amount, type, description, turn_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query,
		t.GameID, t.FromParticipantID, t.ToParticipantID, t.Amount, t.Type, t.Description, t.TurnID,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (s *TransactionStore) ListByGame(ctx context.Context, gameID int64, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, game_id, from_participant_id, to_participant_id, amount, type, description, turn_id, created_at
		FROM transactions
		WHERE game_id = $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		t := &models.Transaction{}
		err := rows.Scan(
			&t.ID,
			&t.GameID,
			&t.FromParticipantID,
			&t.ToParticipantID,
			&t.Amount,
			&t.Type,
			&t.Description,
			&t.TurnID,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
