package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avvvet/monopoly-services/internal/gamesvc/engine"
	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// Ledger is the postgres implementation of the engine's ledger contract.
// Mutate opens a transaction and hands the engine a Mutation view bound to
// it; the engine's first GameForUpdate call takes the per-game row lock, so
// concurrent mutations of the same game serialize on the database.
type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

func (l *Ledger) CreateGame(ctx context.Context, g *models.Game) error {
	return NewGameStore(l.pool).Create(ctx, g)
}

func (l *Ledger) ListGamesByStatus(ctx context.Context, status string) ([]*models.Game, error) {
	return NewGameStore(l.pool).ListByStatus(ctx, status)
}

func (l *Ledger) Mutate(ctx context.Context, gameID int64, fn func(m engine.Mutation) error) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	m := &mutation{
		ctx:          ctx,
		games:        NewGameStore(tx),
		participants: NewParticipantStore(tx),
		tiles:        NewTileStore(tx),
		ownerships:   NewOwnershipStore(tx),
		turns:        NewTurnStore(tx),
		transactions: NewTransactionStore(tx),
		decks:        NewDeckStore(tx),
		pending:      NewPendingActionStore(tx),
	}
	if err := fn(m); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// mutation adapts the per-table stores to the engine's Mutation interface,
// pinning the caller's context for the duration of the transaction.
type mutation struct {
	ctx          context.Context
	games        *GameStore
	participants *ParticipantStore
	tiles        *TileStore
	ownerships   *OwnershipStore
	turns        *TurnStore
	transactions *TransactionStore
	decks        *DeckStore
	pending      *PendingActionStore
}

func (m *mutation) GameForUpdate(gameID int64) (*models.Game, error) {
	return m.games.GetForUpdate(m.ctx, gameID)
}

func (m *mutation) UpdateGame(g *models.Game) error {
	return m.games.Update(m.ctx, g)
}

func (m *mutation) ParticipantsForUpdate(gameID int64) ([]*models.Participant, error) {
	return m.participants.ListForUpdate(m.ctx, gameID)
}

func (m *mutation) CreateParticipant(p *models.Participant) error {
	return m.participants.Create(m.ctx, p)
}

func (m *mutation) UpdateParticipant(p *models.Participant) error {
	return m.participants.Update(m.ctx, p)
}

func (m *mutation) TileAt(position int) (*models.Tile, error) {
	return m.tiles.GetByPosition(m.ctx, position)
}

func (m *mutation) TileByID(tileID int64) (*models.Tile, error) {
	return m.tiles.GetByID(m.ctx, tileID)
}

func (m *mutation) OwnershipForTile(gameID, tileID int64) (*models.Ownership, error) {
	return m.ownerships.GetByTile(m.ctx, gameID, tileID)
}

func (m *mutation) OwnershipsByOwner(gameID, participantID int64) ([]*models.Ownership, error) {
	return m.ownerships.ListByOwner(m.ctx, gameID, participantID)
}

func (m *mutation) OwnershipsByGame(gameID int64) ([]*models.Ownership, error) {
	return m.ownerships.ListByGame(m.ctx, gameID)
}

func (m *mutation) CreateOwnership(o *models.Ownership) error {
	return m.ownerships.Create(m.ctx, o)
}

func (m *mutation) UpdateOwnership(o *models.Ownership) error {
	return m.ownerships.Update(m.ctx, o)
}

func (m *mutation) DeleteOwnership(ownershipID int64) error {
	return m.ownerships.Delete(m.ctx, ownershipID)
}

func (m *mutation) DeleteOwnershipsByOwner(gameID, participantID int64) error {
	return m.ownerships.DeleteByOwner(m.ctx, gameID, participantID)
}

func (m *mutation) NextTurnNumber(gameID int64) (int, error) {
	return m.turns.NextTurnNumber(m.ctx, gameID)
}

func (m *mutation) CreateTurn(t *models.Turn) error {
	return m.turns.Create(m.ctx, t)
}

func (m *mutation) UpdateTurn(t *models.Turn) error {
	return m.turns.Update(m.ctx, t)
}

func (m *mutation) RecentTurns(gameID int64, limit int) ([]*models.Turn, error) {
	return m.turns.ListRecent(m.ctx, gameID, limit)
}

func (m *mutation) CreateTransaction(t *models.Transaction) error {
	return m.transactions.Create(m.ctx, t)
}

func (m *mutation) CreateDeck(d *models.CardDeck) error {
	return m.decks.CreateDeck(m.ctx, d)
}

func (m *mutation) DeckForUpdate(gameID int64, deckType string) (*models.CardDeck, error) {
	return m.decks.GetDeckForUpdate(m.ctx, gameID, deckType)
}

func (m *mutation) UpdateDeck(d *models.CardDeck) error {
	return m.decks.UpdateDeck(m.ctx, d)
}

func (m *mutation) DeckSize(deckType string) (int, error) {
	return m.decks.CountCards(m.ctx, deckType)
}

func (m *mutation) CardAt(deckType string, order int) (*models.Card, error) {
	return m.decks.GetCard(m.ctx, deckType, order)
}

func (m *mutation) CreateCardDraw(d *models.CardDraw) error {
	return m.decks.CreateDraw(m.ctx, d)
}

func (m *mutation) OpenPendingFor(gameID, participantID int64) (*models.PendingAction, error) {
	return m.pending.GetOpen(m.ctx, gameID, participantID)
}

func (m *mutation) PendingByID(actionID int64) (*models.PendingAction, error) {
	return m.pending.GetByID(m.ctx, actionID)
}

func (m *mutation) CreatePendingAction(p *models.PendingAction) error {
	return m.pending.Create(m.ctx, p)
}

func (m *mutation) UpdatePendingAction(p *models.PendingAction) error {
	return m.pending.Update(m.ctx, p)
}
