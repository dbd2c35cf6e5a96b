package engine

import (
	"context"
	"errors"
	"math/rand"

	"github.com/avvvet/monopoly-services/internal/comm"
	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

const (
	defaultMaxPlayers      = 4
	defaultStartingBalance = 1500
	codeLength             = 6
	codeAlphabet           = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeRetries            = 5
)

// JoinResult reports a successful join plus the events to fan out.
type JoinResult struct {
	Participant *models.Participant
	Snapshot    *comm.GameSnapshot
	Events      []comm.Event
}

// StartResult reports a successful game start.
type StartResult struct {
	Snapshot *comm.GameSnapshot
	Events   []comm.Event
}

func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// CreateGame opens a new waiting game with a short unique join code. Code
// collisions are retried a bounded number of times; running out is a hard
// failure, not something the caller can correct.
func (e *Engine) CreateGame(ctx context.Context, creatorUserID int64, maxPlayers int, startingBalance int64) (*models.Game, error) {
	if maxPlayers <= 0 {
		maxPlayers = defaultMaxPlayers
	}
	if maxPlayers < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if maxPlayers > len(models.TokenPalette) {
		maxPlayers = len(models.TokenPalette)
	}
	if startingBalance <= 0 {
		startingBalance = defaultStartingBalance
	}

	for i := 0; i < codeRetries; i++ {
		g := &models.Game{
			Code:            randomCode(),
			CreatorUserID:   creatorUserID,
			MaxPlayers:      maxPlayers,
			StartingBalance: startingBalance,
			Status:          models.GameWaiting,
		}
		err := e.ledger.CreateGame(ctx, g)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, ErrDuplicateCode) {
			return nil, err
		}
	}
	return nil, ErrCodeExhausted
}

// ListOpenGames returns the waiting lobby.
func (e *Engine) ListOpenGames(ctx context.Context) ([]*models.Game, error) {
	return e.ledger.ListGamesByStatus(ctx, models.GameWaiting)
}

// JoinGame adds a user to a waiting game, handing out the next free token
// from the palette and the game's starting balance.
func (e *Engine) JoinGame(ctx context.Context, gameID, userID int64) (*JoinResult, error) {
	res := &JoinResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		game, err := m.GameForUpdate(gameID)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		if game.Status != models.GameWaiting {
			return ErrWrongPhase
		}
		parts, err := m.ParticipantsForUpdate(gameID)
		if err != nil {
			return err
		}
		if findByUser(parts, userID) != nil {
			return ErrAlreadyJoined
		}
		if len(parts) >= game.MaxPlayers || len(parts) >= len(models.TokenPalette) {
			return ErrGameFull
		}

		p := &models.Participant{
			GameID: gameID,
			UserID: userID,
			Token:  models.TokenPalette[len(parts)],
			Cash:   game.StartingBalance,
		}
		if err := m.CreateParticipant(p); err != nil {
			return err
		}
		parts = append(parts, p)

		snap, err := buildSnapshot(m, game, parts)
		if err != nil {
			return err
		}
		res.Participant = p
		res.Snapshot = snap
		res.Events = []comm.Event{
			comm.NewEvent(comm.EventPlayerJoined, gameID, 0, p),
			comm.NewEvent(comm.EventGameState, gameID, 0, snap),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// StartGame flips a waiting game to playing. Creator only, two players
// minimum; both card decks are dealt their per-game cursor here.
func (e *Engine) StartGame(ctx context.Context, gameID, userID int64) (*StartResult, error) {
	res := &StartResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		game, err := m.GameForUpdate(gameID)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		if game.Status != models.GameWaiting {
			return ErrWrongPhase
		}
		if game.CreatorUserID != userID {
			return ErrNotCreator
		}
		parts, err := m.ParticipantsForUpdate(gameID)
		if err != nil {
			return err
		}
		if len(parts) < 2 {
			return ErrNotEnoughPlayers
		}

		game.Status = models.GamePlaying
		game.TurnIndex = 0
		if err := m.UpdateGame(game); err != nil {
			return err
		}
		for _, deckType := range []string{models.DeckChance, models.DeckCommunityChest} {
			if err := m.CreateDeck(&models.CardDeck{GameID: gameID, DeckType: deckType}); err != nil {
				return err
			}
		}

		current, err := currentOf(game, parts)
		if err != nil {
			return err
		}
		snap, err := buildSnapshot(m, game, parts)
		if err != nil {
			return err
		}
		res.Snapshot = snap
		res.Events = []comm.Event{
			comm.NewEvent(comm.EventGameState, gameID, 0, snap),
			comm.NewEvent(comm.EventTurnChanged, gameID, 0, comm.TurnChange{
				GameID:        gameID,
				ParticipantID: current.ID,
				UserID:        current.UserID,
			}),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
