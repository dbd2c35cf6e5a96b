package engine

import (
	"context"
	"testing"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// fixedDice returns a dice func that always rolls the given pair.
func fixedDice(d1, d2 int) func() (int, int) {
	return func() (int, int) { return d1, d2 }
}

// fix is a ready-to-play game against the in-memory ledger.
type fix struct {
	l    *memLedger
	e    *Engine
	game *models.Game
	// participants in join order
	parts []*models.Participant
}

// addTile registers a board tile; the tile id is position+1 so tests can
// reference tiles without bookkeeping.
func (f *fix) addTile(position int, tileType, name string, price, rentBase int64, colorGroup string) *models.Tile {
	t := &models.Tile{
		ID:         int64(position + 1),
		Position:   position,
		Name:       name,
		Type:       tileType,
		ColorGroup: colorGroup,
		Price:      price,
		RentBase:   rentBase,
	}
	f.l.tiles = append(f.l.tiles, t)
	return t
}

// addCard appends a card to a deck in draw order.
func (f *fix) addCard(deckType string, c models.Card) *models.Card {
	card := c
	card.DeckType = deckType
	card.CardOrder = len(f.l.cards[deckType])
	card.ID = f.l.id()
	f.l.cards[deckType] = append(f.l.cards[deckType], &card)
	return f.l.cards[deckType][card.CardOrder]
}

// own records purchased ownership directly in the ledger.
func (f *fix) own(p *models.Participant, tileID int64, houses, hotels int) *models.Ownership {
	o := &models.Ownership{
		ID:            f.l.id(),
		GameID:        f.game.ID,
		TileID:        tileID,
		ParticipantID: p.ID,
		Houses:        houses,
		Hotels:        hotels,
	}
	f.l.ownerships[o.ID] = o
	return o
}

func (f *fix) openPending(t *testing.T, p *models.Participant) *models.PendingAction {
	t.Helper()
	var open *models.PendingAction
	err := f.l.Mutate(context.Background(), f.game.ID, func(m Mutation) error {
		var err error
		open, err = m.OpenPendingFor(f.game.ID, p.ID)
		return err
	})
	if err != nil {
		t.Fatalf("reading pending action: %v", err)
	}
	return open
}

// newFix builds a playing game with n participants on a default board:
// GO at 0, jail at 9, go-to-jail at 30, plain free tiles elsewhere. Tests
// overwrite positions they care about with addTile before acting.
func newFix(t *testing.T, n int) *fix {
	t.Helper()
	f := &fix{l: newMemLedger()}
	f.e = New(f.l)

	f.game = &models.Game{
		ID:              f.l.id(),
		Code:            "TEST01",
		CreatorUserID:   100,
		MaxPlayers:      len(models.TokenPalette),
		StartingBalance: 1500,
		Status:          models.GamePlaying,
	}
	f.l.games[f.game.ID] = f.game

	for i := 0; i < n; i++ {
		p := &models.Participant{
			ID:     f.l.id(),
			GameID: f.game.ID,
			UserID: int64(100 + i),
			Token:  models.TokenPalette[i],
			Cash:   f.game.StartingBalance,
		}
		f.l.participants[p.ID] = p
		f.parts = append(f.parts, p)
	}

	f.addTile(0, models.TileGo, "GO", 0, 0, "")
	f.addTile(JailPosition, models.TileJail, "Jail", 0, 0, "")
	f.addTile(20, models.TileFreeParking, "Free Parking", 0, 0, "")
	f.addTile(30, models.TileGoToJail, "Go To Jail", 0, 0, "")

	for _, deckType := range []string{models.DeckChance, models.DeckCommunityChest} {
		d := &models.CardDeck{ID: f.l.id(), GameID: f.game.ID, DeckType: deckType}
		f.l.decks[d.ID] = d
	}
	return f
}

// tileAt fills any position not explicitly seeded with an inert tile so
// movement always lands somewhere; tests call this for destinations they
// don't care about.
func (f *fix) freeTile(position int) {
	for _, t := range f.l.tiles {
		if t.Position == position {
			return
		}
	}
	f.addTile(position, models.TileFreeParking, "Just Visiting", 0, 0, "")
}

func mustRoll(t *testing.T, f *fix, userID int64, opts RollOptions) *RollResult {
	t.Helper()
	res, err := f.e.Roll(context.Background(), f.game.ID, userID, opts)
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}
	return res
}
