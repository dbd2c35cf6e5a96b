package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// WalletStore is the platform wallet ledger. Balances are never stored,
// only derived from the completed dr/cr rows.
type WalletStore struct {
	db Querier
}

func NewWalletStore(db Querier) *WalletStore {
	return &WalletStore{db: db}
}

func (s *WalletStore) GetBalanceByUserID(ctx context.Context, userId int64) (decimal.Decimal, error) {
	var totalDr, totalCr decimal.Decimal

	err := s.db.QueryRow(ctx, `
        SELECT
            COALESCE(SUM(dr), 0),
            COALESCE(SUM(cr), 0)
        FROM wallets
        WHERE user_id = $1 AND status = 'completed'
    `, userId).Scan(&totalDr, &totalCr)

	if err != nil {
		return decimal.Zero, err
	}

	balance := totalDr.Sub(totalCr)
	return balance, nil
}

func (s *WalletStore) CreateEntry(ctx context.Context, e *models.WalletEntry) error {
	query := `
		INSERT INTO wallets (user_id, ttype, dr, cr, tref, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query, e.UserID, e.TType, e.Dr, e.Cr, e.TRef, e.Status).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wallet entry: %w", err)
	}
	return nil
}

func (s *WalletStore) ListByUserID(ctx context.Context, userId int64, limit int) ([]*models.WalletEntry, error) {
	query := `
		SELECT id, user_id, ttype, dr, cr, tref, status, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userId, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WalletEntry
	for rows.Next() {
		e := &models.WalletEntry{}
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.TType,
			&e.Dr,
			&e.Cr,
			&e.TRef,
			&e.Status,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
