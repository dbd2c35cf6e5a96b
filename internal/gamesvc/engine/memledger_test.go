package engine

import (
	"context"
	"sort"
	"sync"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// memLedger is an in-memory Ledger for engine tests. A single mutex stands in
// for the per-game row locks; fn runs under it, and nothing is rolled back on
// error, so tests asserting no-mutation-on-failure use fresh fixtures.
type memLedger struct {
	mu sync.Mutex

	games        map[int64]*models.Game
	codes        map[string]int64
	participants map[int64]*models.Participant
	tiles        []*models.Tile
	ownerships   map[int64]*models.Ownership
	turns        map[int64]*models.Turn
	transactions []*models.Transaction
	decks        map[int64]*models.CardDeck
	cards        map[string][]*models.Card
	draws        []*models.CardDraw
	pending      map[int64]*models.PendingAction

	nextID int64
}

func newMemLedger() *memLedger {
	return &memLedger{
		games:        map[int64]*models.Game{},
		codes:        map[string]int64{},
		participants: map[int64]*models.Participant{},
		ownerships:   map[int64]*models.Ownership{},
		turns:        map[int64]*models.Turn{},
		decks:        map[int64]*models.CardDeck{},
		cards:        map[string][]*models.Card{},
		pending:      map[int64]*models.PendingAction{},
	}
}

func (l *memLedger) id() int64 {
	l.nextID++
	return l.nextID
}

func (l *memLedger) CreateGame(ctx context.Context, g *models.Game) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.codes[g.Code]; taken {
		return ErrDuplicateCode
	}
	g.ID = l.id()
	l.codes[g.Code] = g.ID
	l.games[g.ID] = g
	return nil
}

func (l *memLedger) ListGamesByStatus(ctx context.Context, status string) ([]*models.Game, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*models.Game
	for _, g := range l.games {
		if g.Status == status {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *memLedger) Mutate(ctx context.Context, gameID int64, fn func(m Mutation) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(&memMutation{l: l})
}

type memMutation struct {
	l *memLedger
}

func (m *memMutation) GameForUpdate(gameID int64) (*models.Game, error) {
	return m.l.games[gameID], nil
}

func (m *memMutation) UpdateGame(g *models.Game) error {
	m.l.games[g.ID] = g
	return nil
}

func (m *memMutation) ParticipantsForUpdate(gameID int64) ([]*models.Participant, error) {
	var out []*models.Participant
	for _, p := range m.l.participants {
		if p.GameID == gameID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memMutation) CreateParticipant(p *models.Participant) error {
	p.ID = m.l.id()
	m.l.participants[p.ID] = p
	return nil
}

func (m *memMutation) UpdateParticipant(p *models.Participant) error {
	m.l.participants[p.ID] = p
	return nil
}

func (m *memMutation) TileAt(position int) (*models.Tile, error) {
	for _, t := range m.l.tiles {
		if t.Position == position {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memMutation) TileByID(tileID int64) (*models.Tile, error) {
	for _, t := range m.l.tiles {
		if t.ID == tileID {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memMutation) OwnershipForTile(gameID, tileID int64) (*models.Ownership, error) {
	for _, o := range m.l.ownerships {
		if o.GameID == gameID && o.TileID == tileID {
			return o, nil
		}
	}
	return nil, nil
}

func (m *memMutation) OwnershipsByOwner(gameID, participantID int64) ([]*models.Ownership, error) {
	var out []*models.Ownership
	for _, o := range m.l.ownerships {
		if o.GameID == gameID && o.ParticipantID == participantID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memMutation) OwnershipsByGame(gameID int64) ([]*models.Ownership, error) {
	var out []*models.Ownership
	for _, o := range m.l.ownerships {
		if o.GameID == gameID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memMutation) CreateOwnership(o *models.Ownership) error {
	o.ID = m.l.id()
	m.l.ownerships[o.ID] = o
	return nil
}

func (m *memMutation) UpdateOwnership(o *models.Ownership) error {
	m.l.ownerships[o.ID] = o
	return nil
}

func (m *memMutation) DeleteOwnership(ownershipID int64) error {
	delete(m.l.ownerships, ownershipID)
	return nil
}

func (m *memMutation) DeleteOwnershipsByOwner(gameID, participantID int64) error {
	for id, o := range m.l.ownerships {
		if o.GameID == gameID && o.ParticipantID == participantID {
			delete(m.l.ownerships, id)
		}
	}
	return nil
}

func (m *memMutation) NextTurnNumber(gameID int64) (int, error) {
	max := 0
	for _, t := range m.l.turns {
		if t.GameID == gameID && t.TurnNumber > max {
			max = t.TurnNumber
		}
	}
	return max + 1, nil
}

func (m *memMutation) CreateTurn(t *models.Turn) error {
	t.ID = m.l.id()
	m.l.turns[t.ID] = t
	return nil
}

func (m *memMutation) UpdateTurn(t *models.Turn) error {
	m.l.turns[t.ID] = t
	return nil
}

func (m *memMutation) RecentTurns(gameID int64, limit int) ([]*models.Turn, error) {
	var out []*models.Turn
	for _, t := range m.l.turns {
		if t.GameID == gameID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TurnNumber > out[j].TurnNumber })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memMutation) CreateTransaction(t *models.Transaction) error {
	t.ID = m.l.id()
	m.l.transactions = append(m.l.transactions, t)
	return nil
}

func (m *memMutation) CreateDeck(d *models.CardDeck) error {
	d.ID = m.l.id()
	m.l.decks[d.ID] = d
	return nil
}

func (m *memMutation) DeckForUpdate(gameID int64, deckType string) (*models.CardDeck, error) {
	for _, d := range m.l.decks {
		if d.GameID == gameID && d.DeckType == deckType {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memMutation) UpdateDeck(d *models.CardDeck) error {
	m.l.decks[d.ID] = d
	return nil
}

func (m *memMutation) DeckSize(deckType string) (int, error) {
	return len(m.l.cards[deckType]), nil
}

func (m *memMutation) CardAt(deckType string, order int) (*models.Card, error) {
	for _, c := range m.l.cards[deckType] {
		if c.CardOrder == order {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memMutation) CreateCardDraw(d *models.CardDraw) error {
	d.ID = m.l.id()
	m.l.draws = append(m.l.draws, d)
	return nil
}

func (m *memMutation) OpenPendingFor(gameID, participantID int64) (*models.PendingAction, error) {
	for _, pa := range m.l.pending {
		if pa.GameID == gameID && pa.ParticipantID == participantID && pa.Status == models.PendingOpen {
			return pa, nil
		}
	}
	return nil, nil
}

func (m *memMutation) PendingByID(actionID int64) (*models.PendingAction, error) {
	return m.l.pending[actionID], nil
}

func (m *memMutation) CreatePendingAction(p *models.PendingAction) error {
	p.ID = m.l.id()
	m.l.pending[p.ID] = p
	return nil
}

func (m *memMutation) UpdatePendingAction(p *models.PendingAction) error {
	m.l.pending[p.ID] = p
	return nil
}
