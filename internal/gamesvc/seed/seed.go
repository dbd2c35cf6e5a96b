// Package seed installs the immutable reference data: the 40-tile board and
// the two card decks. Seeding is idempotent and verified, a half-seeded
// database fails loudly instead of producing broken games.
package seed

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
	"github.com/avvvet/monopoly-services/internal/gamesvc/store"
)

// Ensure inserts the board and decks when they are missing and verifies the
// counts when they are not.
func Ensure(ctx context.Context, q store.Querier) error {
	if err := ensureTiles(ctx, q); err != nil {
		return err
	}
	if err := ensureDeck(ctx, q, models.DeckChance, chanceCards); err != nil {
		return err
	}
	return ensureDeck(ctx, q, models.DeckCommunityChest, communityChestCards)
}

func ensureTiles(ctx context.Context, q store.Querier) error {
	tiles := store.NewTileStore(q)

	n, err := tiles.Count(ctx)
	if err != nil {
		return err
	}
	switch {
	case n == BoardSize:
		return nil
	case n != 0:
		return fmt.Errorf("tiles table holds %d rows, expected 0 or %d", n, BoardSize)
	}

	for i := range boardTiles {
		t := boardTiles[i]
		if err := tiles.Create(ctx, &t); err != nil {
			return fmt.Errorf("seeding tile %d: %w", t.Position, err)
		}
	}
	log.Infof("seeded %d board tiles", BoardSize)
	return nil
}

func ensureDeck(ctx context.Context, q store.Querier, deckType string, cards []models.Card) error {
	decks := store.NewDeckStore(q)

	n, err := decks.CountCards(ctx, deckType)
	if err != nil {
		return err
	}
	switch {
	case n == len(cards):
		return nil
	case n != 0:
		return fmt.Errorf("%s deck holds %d cards, expected 0 or %d", deckType, n, len(cards))
	}

	for i := range cards {
		c := cards[i]
		c.DeckType = deckType
		c.CardOrder = i
		if err := decks.CreateCard(ctx, &c); err != nil {
			return fmt.Errorf("seeding %s card %d: %w", deckType, i, err)
		}
	}
	log.Infof("seeded %d %s cards", len(cards), deckType)
	return nil
}
