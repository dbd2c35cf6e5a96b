package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

type OwnershipStore struct {
	db Querier
}

func NewOwnershipStore(db Querier) *OwnershipStore {
	return &OwnershipStore{db: db}
}

const ownershipColumns = `id, game_id, tile_id, participant_id, houses, hotels, is_mortgaged, created_at, updated_at`

func scanOwnership(row interface{ Scan(...any) error }) (*models.Ownership, error) {
	o := &models.Ownership{}
	err := row.Scan(
		&o.ID,
		&o.GameID,
		&o.TileID,
		&o.ParticipantID,
		&o.Houses,
		&o.Hotels,
		&o.IsMortgaged,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OwnershipStore) Create(ctx context.Context, o *models.Ownership) error {
	query := `
		INSERT INTO ownerships (game_id, tile_id, participant_id, houses, hotels, is_mortgaged)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		o.GameID, o.TileID, o.ParticipantID, o.Houses, o.Hotels, o.IsMortgaged,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ownership: %w", err)
	}
	return nil
}

func (s *OwnershipStore) GetByTile(ctx context.Context, gameID, tileID int64) (*models.Ownership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM ownerships WHERE game_id = $1 AND tile_id = $2`

	o, err := scanOwnership(s.db.QueryRow(ctx, query, gameID, tileID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ownership for tile: %w", err)
	}
	return o, nil
}

func (s *OwnershipStore) ListByOwner(ctx context.Context, gameID, participantID int64) ([]*models.Ownership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM ownerships WHERE game_id = $1 AND participant_id = $2 ORDER BY id`
	return s.list(ctx, query, gameID, participantID)
}

func (s *OwnershipStore) ListByGame(ctx context.Context, gameID int64) ([]*models.Ownership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM ownerships WHERE game_id = $1 ORDER BY id`
	return s.list(ctx, query, gameID)
}

func (s *OwnershipStore) list(ctx context.Context, query string, args ...any) ([]*models.Ownership, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ownerships: %w", err)
	}
	defer rows.Close()

	var owns []*models.Ownership
	for rows.Next() {
		o, err := scanOwnership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ownership: %w", err)
		}
		owns = append(owns, o)
	}
	return owns, rows.Err()
}

func (s *OwnershipStore) Update(ctx context.Context, o *models.Ownership) error {
	query := `
		UPDATE ownerships
		SET houses = $2, hotels = $3, is_mortgaged = $4, updated_at = now()
		WHERE id = $1
	`

	if _, err := s.db.Exec(ctx, query, o.ID, o.Houses, o.Hotels, o.IsMortgaged); err != nil {
		return fmt.Errorf("failed to update ownership: %w", err)
	}
	return nil
}

func (s *OwnershipStore) Delete(ctx context.Context, ownershipID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM ownerships WHERE id = $1`, ownershipID); err != nil {
		return fmt.Errorf("failed to delete ownership: %w", err)
	}
	return nil
}

func (s *OwnershipStore) DeleteByOwner(ctx context.Context, gameID, participantID int64) error {
	if _, err := s.db.Exec(ctx,
		`DELETE FROM ownerships WHERE game_id = $1 AND participant_id = $2`, gameID, participantID,
	); err != nil {
		return fmt.Errorf("failed to delete ownerships for participant: %w", err)
	}
	return nil
}
