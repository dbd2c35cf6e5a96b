package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// DeckStore covers the card reference rows, the per-game deck cursors and
// the draw audit trail.
type DeckStore struct {
	db Querier
}

func NewDeckStore(db Querier) *DeckStore {
	return &DeckStore{db: db}
}

func (s *DeckStore) CreateCard(ctx context.Context, c *models.Card) error {
	query := `
		INSERT INTO cards (deck_type, card_order, message, action_type, amount, move_to, collect_go)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		c.DeckType, c.CardOrder, c.Message, c.ActionType, c.Amount, c.MoveTo, c.CollectGo,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (s *DeckStore) GetCard(ctx context.Context, deckType string, order int) (*models.Card, error) {
	query := `
		SELECT id, deck_type, card_order, message, action_type, amount, move_to, collect_go, created_at, updated_at
		FROM cards
		WHERE deck_type = $1 AND card_order = $2
	`

	c := &models.Card{}
	err := s.db.QueryRow(ctx, query, deckType, order).Scan(
		&c.ID,
		&c.DeckType,
		&c.CardOrder,
		&c.Message,
		&c.ActionType,
		&c.Amount,
		&c.MoveTo,
		&c.CollectGo,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return c, nil
}

func (s *DeckStore) CountCards(ctx context.Context, deckType string) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM cards WHERE deck_type = $1`, deckType).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return n, nil
}

func (s *DeckStore) CreateDeck(ctx context.Context, d *models.CardDeck) error {
	query := `
		INSERT INTO card_decks (game_id, deck_type, current_index)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query, d.GameID, d.DeckType, d.CurrentIndex).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create card deck: %w", err)
	}
	return nil
}

func (s *DeckStore) GetDeckForUpdate(ctx context.Context, gameID int64, deckType string) (*models.CardDeck, error) {
	query := `
		SELECT id, game_id, deck_type, current_index, created_at, updated_at
		FROM card_decks
		WHERE game_id = $1 AND deck_type = $2
		FOR UPDATE
	`

	d := &models.CardDeck{}
	err := s.db.QueryRow(ctx, query, gameID, deckType).Scan(
		&d.ID,
		&d.GameID,
		&d.DeckType,
		&d.CurrentIndex,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card deck: %w", err)
	}
	return d, nil
}

func (s *DeckStore) UpdateDeck(ctx context.Context, d *models.CardDeck) error {
	query := `UPDATE card_decks SET current_index = $2, updated_at = now() WHERE id = $1`

	if _, err := s.db.Exec(ctx, query, d.ID, d.CurrentIndex); err != nil {
		return fmt.Errorf("failed to update card deck: %w", err)
	}
	return nil
}

func (s *DeckStore) CreateDraw(ctx context.Context, d *models.CardDraw) error {
	query := `
		INSERT INTO card_draws (game_id, card_id, participant_id, turn_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query, d.GameID, d.CardID, d.ParticipantID, d.TurnID).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record card draw: %w", err)
	}
	return nil
}
