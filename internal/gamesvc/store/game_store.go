package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

type GameStore struct {
	db Querier
}

func NewGameStore(db Querier) *GameStore {
	return &GameStore{db: db}
}

const gameColumns = `id, code, creator_user_id, max_players, starting_balance, turn_index, status, created_at, updated_at`

func scanGame(row interface{ Scan(...any) error }) (*models.Game, error) {
	g := &models.Game{}
	err := row.Scan(
		&g.ID,
		&g.Code,
		&g.CreatorUserID,
		&g.MaxPlayers,
		&g.StartingBalance,
		&g.TurnIndex,
		&g.Status,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GameStore) Create(ctx context.Context, g *models.Game) error {
	query := `
		INSERT INTO games (code, creator_user_id, max_players, starting_balance, turn_index, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		g.Code, g.CreatorUserID, g.MaxPlayers, g.StartingBalance, g.TurnIndex, g.Status,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// GetForUpdate locks the game row for the rest of the transaction. This is
// the per-game serialization point every mutation goes through.
func (s *GameStore) GetForUpdate(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1 FOR UPDATE`

	g, err := scanGame(s.db.QueryRow(ctx, query, gameID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game for update: %w", err)
	}
	return g, nil
}

func (s *GameStore) GetByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	g, err := scanGame(s.db.QueryRow(ctx, query, gameID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}
	return g, nil
}

func (s *GameStore) GetByCode(ctx context.Context, code string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE code = $1`

	g, err := scanGame(s.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game by code: %w", err)
	}
	return g, nil
}

func (s *GameStore) ListByStatus(ctx context.Context, status string) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE status = $1 ORDER BY id`

	rows, err := s.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *GameStore) Update(ctx context.Context, g *models.Game) error {
	query := `
		UPDATE games
		SET turn_index = $2, status = $3, updated_at = now()
		WHERE id = $1
	`

	if _, err := s.db.Exec(ctx, query, g.ID, g.TurnIndex, g.Status); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}
