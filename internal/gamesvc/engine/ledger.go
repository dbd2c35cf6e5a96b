package engine

import (
	"context"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// Ledger is the persistence contract the engine runs against. Mutate executes
// fn as one atomic unit scoped to a single game: the implementation must
// guarantee that two concurrent mutations of the same game never interleave
// (the pg store does this with row locks inside one transaction). Nothing is
// persisted when fn returns an error.
type Ledger interface {
	CreateGame(ctx context.Context, g *models.Game) error
	ListGamesByStatus(ctx context.Context, status string) ([]*models.Game, error)
	Mutate(ctx context.Context, gameID int64, fn func(m Mutation) error) error
}

// Mutation exposes the row operations available inside one atomic unit.
// GameForUpdate and ParticipantsForUpdate take the pessimistic locks; all
// other calls run under those locks. Lookups return (nil, nil) when the row
// does not exist.
type Mutation interface {
	// Games
	GameForUpdate(gameID int64) (*models.Game, error)
	UpdateGame(g *models.Game) error

	// Participants, ordered by join (id ascending). ForUpdate locks every row.
	ParticipantsForUpdate(gameID int64) ([]*models.Participant, error)
	CreateParticipant(p *models.Participant) error
	UpdateParticipant(p *models.Participant) error

	// Reference tiles, read-only after seeding.
	TileAt(position int) (*models.Tile, error)
	TileByID(tileID int64) (*models.Tile, error)

	// Ownerships
	OwnershipForTile(gameID, tileID int64) (*models.Ownership, error)
	OwnershipsByOwner(gameID, participantID int64) ([]*models.Ownership, error)
	OwnershipsByGame(gameID int64) ([]*models.Ownership, error)
	CreateOwnership(o *models.Ownership) error
	UpdateOwnership(o *models.Ownership) error
	DeleteOwnership(ownershipID int64) error
	DeleteOwnershipsByOwner(gameID, participantID int64) error

	// Turn history. The roll machine creates the row up front so transactions
	// and card draws can reference it, then finalizes position and summary.
	NextTurnNumber(gameID int64) (int, error)
	CreateTurn(t *models.Turn) error
	UpdateTurn(t *models.Turn) error
	RecentTurns(gameID int64, limit int) ([]*models.Turn, error)

	// Transactions (append-only)
	CreateTransaction(t *models.Transaction) error

	// Card decks
	CreateDeck(d *models.CardDeck) error
	DeckForUpdate(gameID int64, deckType string) (*models.CardDeck, error)
	UpdateDeck(d *models.CardDeck) error
	DeckSize(deckType string) (int, error)
	CardAt(deckType string, order int) (*models.Card, error)
	CreateCardDraw(d *models.CardDraw) error

	// Pending actions
	OpenPendingFor(gameID, participantID int64) (*models.PendingAction, error)
	PendingByID(actionID int64) (*models.PendingAction, error)
	CreatePendingAction(p *models.PendingAction) error
	UpdatePendingAction(p *models.PendingAction) error
}
