package engine

import (
	"context"

	"github.com/avvvet/monopoly-services/internal/comm"
	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

const recentTurnLimit = 10

// buildSnapshot assembles the public view inside an active mutation, so it
// can never observe a half-settled game.
func buildSnapshot(m Mutation, game *models.Game, parts []*models.Participant) (*comm.GameSnapshot, error) {
	ownerships, err := m.OwnershipsByGame(game.ID)
	if err != nil {
		return nil, err
	}
	turns, err := m.RecentTurns(game.ID, recentTurnLimit)
	if err != nil {
		return nil, err
	}

	snap := &comm.GameSnapshot{
		Game:        game,
		Players:     parts,
		Ownerships:  ownerships,
		RecentTurns: turns,
	}

	if game.Status == models.GamePlaying {
		current, err := currentOf(game, parts)
		if err != nil {
			return nil, err
		}
		snap.CurrentParticipantID = current.ID
		snap.CurrentUserID = current.UserID
	}

	return snap, nil
}

// Snapshot returns the public state of one game.
func (e *Engine) Snapshot(ctx context.Context, gameID int64) (*comm.GameSnapshot, error) {
	var snap *comm.GameSnapshot
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		game, err := m.GameForUpdate(gameID)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		parts, err := m.ParticipantsForUpdate(gameID)
		if err != nil {
			return err
		}
		snap, err = buildSnapshot(m, game, parts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
