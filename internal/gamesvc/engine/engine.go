package engine

import (
	"math/rand"

	"github.com/avvvet/monopoly-services/internal/comm"
	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// Engine owns the turn state machine, the settlement actions and the game
// lifecycle. Every operation is one atomic ledger mutation; the Ledger
// serializes concurrent operations per game, so the engine itself keeps no
// mutable state.
type Engine struct {
	ledger Ledger
	roll   func() (int, int)
}

func New(ledger Ledger) *Engine {
	return &Engine{ledger: ledger, roll: RollDice}
}

// RollDice returns two independent dice, each uniform over 1..6.
func RollDice() (int, int) {
	return rand.Intn(6) + 1, rand.Intn(6) + 1
}

func findByUser(parts []*models.Participant, userID int64) *models.Participant {
	for _, p := range parts {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

func findByID(parts []*models.Participant, participantID int64) *models.Participant {
	for _, p := range parts {
		if p.ID == participantID {
			return p
		}
	}
	return nil
}

// pendingInfoFor assembles the client-facing view of an open obligation,
// including the resolution options the participant can act on right now.
// Options shift as the participant's cash and holdings change, so callers
// recompute after every mutation that touches either.
func pendingInfoFor(m Mutation, parts []*models.Participant, pa *models.PendingAction) (*comm.PendingInfo, error) {
	actor := findByID(parts, pa.ParticipantID)
	if actor == nil {
		return nil, badStatef("pending action %d references unknown participant %d", pa.ID, pa.ParticipantID)
	}

	info := &comm.PendingInfo{
		ID:            pa.ID,
		ActionType:    pa.ActionType,
		ParticipantID: pa.ParticipantID,
		UserID:        actor.UserID,
	}

	owned, err := m.OwnershipsByOwner(pa.GameID, pa.ParticipantID)
	if err != nil {
		return nil, err
	}

	switch pa.ActionType {
	case models.ActionBuyProperty:
		pl, err := pa.BuyProperty()
		if err != nil {
			return nil, badStatef("%v", err)
		}
		tile, err := m.TileByID(pl.TileID)
		if err != nil {
			return nil, err
		}
		if tile != nil {
			info.TileName = tile.Name
		}
		info.TileID = pl.TileID
		info.Amount = pl.Cost
		info.CanAfford = actor.Cash >= pl.Cost
		info.Options = []string{"buy", "skip"}
	case models.ActionPayRent:
		pl, err := pa.PayRent()
		if err != nil {
			return nil, badStatef("%v", err)
		}
		tile, err := m.TileByID(pl.TileID)
		if err != nil {
			return nil, err
		}
		if tile != nil {
			info.TileName = tile.Name
		}
		info.TileID = pl.TileID
		info.OwnerID = pl.OwnerID
		info.Amount = pl.Amount
		info.CanAfford = actor.Cash >= pl.Amount
		info.Options = debtOptions(info.CanAfford, len(owned) > 0)
	case models.ActionPayBankDebt:
		pl, err := pa.PayBankDebt()
		if err != nil {
			return nil, badStatef("%v", err)
		}
		info.Amount = pl.Amount
		info.Description = pl.Description
		info.CanAfford = actor.Cash >= pl.Amount
		info.Options = debtOptions(info.CanAfford, len(owned) > 0)
	default:
		return nil, badStatef("pending action %d has unknown type %q", pa.ID, pa.ActionType)
	}

	return info, nil
}

// debtOptions lists what a debtor can do: pay when affordable, raise cash by
// selling while holdings remain, or fold once nothing is left to sell.
func debtOptions(canAfford, ownsProperties bool) []string {
	var opts []string
	if canAfford {
		opts = append(opts, "pay")
	}
	if ownsProperties {
		opts = append(opts, "sell_property")
	} else {
		opts = append(opts, "declare_bankruptcy")
	}
	return opts
}
