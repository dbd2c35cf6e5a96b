package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

type TileStore struct {
	db Querier
}

func NewTileStore(db Querier) *TileStore {
	return &TileStore{db: db}
}

const tileColumns = `id, position, name, type, color_group, price, rent_base, created_at, updated_at`

func scanTile(row interface{ Scan(...any) error }) (*models.Tile, error) {
	t := &models.Tile{}
	err := row.Scan(
		&t.ID,
		&t.Position,
		&t.Name,
		&t.Type,
		&t.ColorGroup,
		&t.Price,
		&t.RentBase,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TileStore) Create(ctx context.Context, t *models.Tile) error {
	query := `
		INSERT INTO tiles (position, name, type, color_group, price, rent_base)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		t.Position, t.Name, t.Type, t.ColorGroup, t.Price, t.RentBase,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tile: %w", err)
	}
	return nil
}

func (s *TileStore) GetByPosition(ctx context.Context, position int) (*models.Tile, error) {
	query := `SELECT ` + tileColumns + ` FROM tiles WHERE position = $1`

	t, err := scanTile(s.db.QueryRow(ctx, query, position))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tile at position %d: %w", position, err)
	}
	return t, nil
}

func (s *TileStore) GetByID(ctx context.Context, tileID int64) (*models.Tile, error) {
	query := `SELECT ` + tileColumns + ` FROM tiles WHERE id = $1`

	t, err := scanTile(s.db.QueryRow(ctx, query, tileID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tile by id: %w", err)
	}
	return t, nil
}

func (s *TileStore) ListAll(ctx context.Context) ([]*models.Tile, error) {
	query := `SELECT ` + tileColumns + ` FROM tiles ORDER BY position`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiles: %w", err)
	}
	defer rows.Close()

	var tiles []*models.Tile
	for rows.Next() {
		t, err := scanTile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tile: %w", err)
		}
		tiles = append(tiles, t)
	}
	return tiles, rows.Err()
}

func (s *TileStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM tiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tiles: %w", err)
	}
	return n, nil
}
