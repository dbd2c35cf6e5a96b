package engine

import (
	"context"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/comm"
	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// ActionResult is the outcome of one settlement action.
type ActionResult struct {
	Messages   []string
	Pending    *comm.PendingInfo // recomputed open obligation, when one remains
	Snapshot   *comm.GameSnapshot
	GameEnded  bool
	NextUserID int64 // whose turn it is after the action, 0 when the game ended
	Events     []comm.Event
}

// settleScope is the locked working set shared by every settlement action.
type settleScope struct {
	m     Mutation
	game  *models.Game
	parts []*models.Participant
	actor *models.Participant
}

// beginSettle takes the per-game locks and resolves the acting participant.
func beginSettle(m Mutation, gameID, userID int64) (*settleScope, error) {
	game, err := m.GameForUpdate(gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status != models.GamePlaying {
		return nil, ErrWrongPhase
	}
	parts, err := m.ParticipantsForUpdate(gameID)
	if err != nil {
		return nil, err
	}
	actor := findByUser(parts, userID)
	if actor == nil {
		return nil, ErrNotParticipant
	}
	return &settleScope{m: m, game: game, parts: parts, actor: actor}, nil
}

// openPendingByID loads a pending action by id and verifies it belongs to the
// actor and is still open.
func (s *settleScope) openPendingByID(actionID int64) (*models.PendingAction, error) {
	pa, err := s.m.PendingByID(actionID)
	if err != nil {
		return nil, err
	}
	if pa == nil || pa.GameID != s.game.ID || pa.ParticipantID != s.actor.ID || pa.Status != models.PendingOpen {
		return nil, ErrNoPendingAction
	}
	return pa, nil
}

func (s *settleScope) complete(pa *models.PendingAction) error {
	pa.Status = models.PendingCompleted
	return s.m.UpdatePendingAction(pa)
}

// finish runs the uniform aftermath hook, rebuilds the snapshot and collects
// the standard events for a settlement action.
func (s *settleScope) finish(res *ActionResult, extra ...comm.Event) error {
	ended, current, endEvents, err := settleAftermath(s.m, s.game, s.parts)
	if err != nil {
		return err
	}
	snap, err := buildSnapshot(s.m, s.game, s.parts)
	if err != nil {
		return err
	}
	res.Snapshot = snap
	res.GameEnded = ended
	if current != nil {
		res.NextUserID = current.UserID
	}
	res.Events = append(res.Events, comm.NewEvent(comm.EventGameState, s.game.ID, 0, snap))
	res.Events = append(res.Events, extra...)
	res.Events = append(res.Events, endEvents...)
	return nil
}

// BuyProperty settles an open buy_property obligation: the named tile is
// paid for and deeded to the buyer.
func (e *Engine) BuyProperty(ctx context.Context, gameID, userID, actionID, tileID int64) (*ActionResult, error) {
	res := &ActionResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		s, err := beginSettle(m, gameID, userID)
		if err != nil {
			return err
		}
		pa, err := s.openPendingByID(actionID)
		if err != nil {
			return err
		}
		if pa.ActionType != models.ActionBuyProperty {
			return ErrWrongPendingAction
		}
		pl, err := pa.BuyProperty()
		if err != nil {
			return badStatef("%v", err)
		}
		if pl.TileID != tileID {
			return ErrTileMismatch
		}
		tile, err := m.TileByID(pl.TileID)
		if err != nil {
			return err
		}
		if tile == nil {
			return badStatef("pending action %d references missing tile %d", pa.ID, pl.TileID)
		}
		if s.actor.Cash < pl.Cost {
			return ErrInsufficientFunds
		}
		if own, err := m.OwnershipForTile(gameID, tile.ID); err != nil {
			return err
		} else if own != nil {
			return badStatef("tile %d already owned while buy was pending", tile.ID)
		}

		s.actor.Cash -= pl.Cost
		if err := m.UpdateParticipant(s.actor); err != nil {
			return err
		}
		if err := m.CreateOwnership(&models.Ownership{
			GameID:        gameID,
			TileID:        tile.ID,
			ParticipantID: s.actor.ID,
		}); err != nil {
			return err
		}
		if err := debitBank(m, gameID, s.actor.ID, pl.Cost, models.TxPurchase, tile.Name, 0); err != nil {
			return err
		}
		if err := s.complete(pa); err != nil {
			return err
		}

		res.Messages = append(res.Messages, fmt.Sprintf("bought %s for $%d", tile.Name, pl.Cost))
		return s.finish(res, balanceEvent(gameID, s.actor))
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// PayRent settles an open pay_rent obligation. An unaffordable rent returns
// ErrInsufficientFunds and leaves the obligation open: the debtor must sell
// assets and retry, bankruptcy here is never implicit.
func (e *Engine) PayRent(ctx context.Context, gameID, userID, actionID int64) (*ActionResult, error) {
	res := &ActionResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		s, err := beginSettle(m, gameID, userID)
		if err != nil {
			return err
		}
		pa, err := s.openPendingByID(actionID)
		if err != nil {
			return err
		}
		if pa.ActionType != models.ActionPayRent {
			return ErrWrongPendingAction
		}
		pl, err := pa.PayRent()
		if err != nil {
			return badStatef("%v", err)
		}
		owner := findByID(s.parts, pl.OwnerID)
		if owner == nil {
			return badStatef("pending action %d references unknown owner %d", pa.ID, pl.OwnerID)
		}
		if s.actor.Cash < pl.Amount {
			return ErrInsufficientFunds
		}

		tile, err := m.TileByID(pl.TileID)
		if err != nil {
			return err
		}
		tileName := fmt.Sprintf("tile %d", pl.TileID)
		if tile != nil {
			tileName = tile.Name
		}

		s.actor.Cash -= pl.Amount
		owner.Cash += pl.Amount
		if err := m.UpdateParticipant(s.actor); err != nil {
			return err
		}
		if err := m.UpdateParticipant(owner); err != nil {
			return err
		}
		if err := transfer(m, gameID, s.actor.ID, owner.ID, pl.Amount, models.TxRent, "rent for "+tileName); err != nil {
			return err
		}
		if err := s.complete(pa); err != nil {
			return err
		}

		res.Messages = append(res.Messages, fmt.Sprintf("paid $%d rent for %s", pl.Amount, tileName))
		return s.finish(res, balanceEvent(gameID, s.actor), balanceEvent(gameID, owner))
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// PayBankDebt settles a tax or card debt recorded in the pending payload.
func (e *Engine) PayBankDebt(ctx context.Context, gameID, userID, actionID int64) (*ActionResult, error) {
	res := &ActionResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		s, err := beginSettle(m, gameID, userID)
		if err != nil {
			return err
		}
		pa, err := s.openPendingByID(actionID)
		if err != nil {
			return err
		}
		if pa.ActionType != models.ActionPayBankDebt {
			return ErrWrongPendingAction
		}
		pl, err := pa.PayBankDebt()
		if err != nil {
			return badStatef("%v", err)
		}
		if s.actor.Cash < pl.Amount {
			return ErrInsufficientFunds
		}

		s.actor.Cash -= pl.Amount
		if err := m.UpdateParticipant(s.actor); err != nil {
			return err
		}
		if err := debitBank(m, gameID, s.actor.ID, pl.Amount, pl.TType, pl.Description, pl.TurnID); err != nil {
			return err
		}
		if err := s.complete(pa); err != nil {
			return err
		}

		res.Messages = append(res.Messages, fmt.Sprintf("paid $%d to the bank (%s)", pl.Amount, pl.Description))
		return s.finish(res, balanceEvent(gameID, s.actor))
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeclareBankruptcy resolves an open obligation by folding. Only legal once
// the participant holds no properties; everything must be liquidated first.
func (e *Engine) DeclareBankruptcy(ctx context.Context, gameID, userID, actionID int64) (*ActionResult, error) {
	res := &ActionResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		s, err := beginSettle(m, gameID, userID)
		if err != nil {
			return err
		}
		pa, err := s.openPendingByID(actionID)
		if err != nil {
			return err
		}
		owned, err := m.OwnershipsByOwner(gameID, s.actor.ID)
		if err != nil {
			return err
		}
		if len(owned) > 0 {
			return ErrMustSellProperties
		}

		if err := s.complete(pa); err != nil {
			return err
		}
		if err := bankruptToBank(m, gameID, s.actor, 0, "declared bankruptcy"); err != nil {
			return err
		}

		res.Messages = append(res.Messages, "declared bankruptcy")
		if err := s.finish(res); err != nil {
			return err
		}
		if !res.GameEnded && res.NextUserID != 0 {
			next, err := currentOf(s.game, s.parts)
			if err != nil {
				return err
			}
			res.Events = append(res.Events, comm.NewEvent(comm.EventTurnChanged, gameID, 0, comm.TurnChange{
				GameID:        gameID,
				ParticipantID: next.ID,
				UserID:        next.UserID,
			}))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SellProperty returns a deed to the bank for half its price plus half the
// building investment. When the seller still has an open obligation its
// resolution options are recomputed, since their cash position just changed.
func (e *Engine) SellProperty(ctx context.Context, gameID, userID, tileID int64) (*ActionResult, error) {
	res := &ActionResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		s, err := beginSettle(m, gameID, userID)
		if err != nil {
			return err
		}
		tile, err := m.TileByID(tileID)
		if err != nil {
			return err
		}
		if tile == nil {
			return ErrTileNotFound
		}
		own, err := m.OwnershipForTile(gameID, tileID)
		if err != nil {
			return err
		}
		if own == nil || own.ParticipantID != s.actor.ID {
			return ErrNotOwned
		}
		if tile.Price <= 0 {
			return badStatef("owned tile %d has no purchase price", tileID)
		}

		value := saleValue(tile, own)
		if err := m.DeleteOwnership(own.ID); err != nil {
			return err
		}
		s.actor.Cash += value
		if err := m.UpdateParticipant(s.actor); err != nil {
			return err
		}
		if err := creditBank(m, gameID, s.actor.ID, value, models.TxSale, "sold "+tile.Name, 0); err != nil {
			return err
		}

		res.Messages = append(res.Messages, fmt.Sprintf("sold %s for $%d", tile.Name, value))

		extra := []comm.Event{balanceEvent(gameID, s.actor)}
		if open, err := m.OpenPendingFor(gameID, s.actor.ID); err != nil {
			return err
		} else if open != nil {
			info, err := pendingInfoFor(m, s.parts, open)
			if err != nil {
				return err
			}
			res.Pending = info
			extra = append(extra, comm.NewEvent(comm.EventPrivateOptions, gameID, userID, info))
		}
		return s.finish(res, extra...)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UpgradeProperty builds one house (or the hotel after four houses) on a
// color-group property. Current turn only, no open obligations.
func (e *Engine) UpgradeProperty(ctx context.Context, gameID, userID, tileID int64) (*ActionResult, error) {
	res := &ActionResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		s, err := beginSettle(m, gameID, userID)
		if err != nil {
			return err
		}
		current, err := currentOf(s.game, s.parts)
		if err != nil {
			return err
		}
		if current.ID != s.actor.ID {
			return ErrNotYourTurn
		}
		if open, err := m.OpenPendingFor(gameID, s.actor.ID); err != nil {
			return err
		} else if open != nil {
			return ErrPendingActionOpen
		}
		tile, err := m.TileByID(tileID)
		if err != nil {
			return err
		}
		if tile == nil {
			return ErrTileNotFound
		}
		if tile.Type != models.TileProperty {
			return ErrNotUpgradable
		}
		own, err := m.OwnershipForTile(gameID, tileID)
		if err != nil {
			return err
		}
		if own == nil || own.ParticipantID != s.actor.ID {
			return ErrNotOwned
		}
		if own.IsMortgaged || own.Hotels >= 1 {
			return ErrNotUpgradable
		}
		cost, ok := upgradeCost(tile)
		if !ok {
			return ErrNoColorGroup
		}
		if s.actor.Cash < cost {
			return ErrInsufficientFunds
		}

		s.actor.Cash -= cost
		if own.Houses < MaxHouses {
			own.Houses++
		} else {
			own.Hotels = 1
			own.Houses = 0
		}
		if err := m.UpdateParticipant(s.actor); err != nil {
			return err
		}
		if err := m.UpdateOwnership(own); err != nil {
			return err
		}
		if err := debitBank(m, gameID, s.actor.ID, cost, models.TxUpgrade, "upgraded "+tile.Name, 0); err != nil {
			return err
		}

		if own.Hotels == 1 {
			res.Messages = append(res.Messages, fmt.Sprintf("built a hotel on %s", tile.Name))
		} else {
			res.Messages = append(res.Messages, fmt.Sprintf("built house %d on %s", own.Houses, tile.Name))
		}
		return s.finish(res, balanceEvent(gameID, s.actor))
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// EndTurn passes play to the next active participant. An unresolved optional
// buy is auto-cancelled; any other open obligation blocks the handover. The
// single-survivor check runs here too, so a game whose last opponent went
// bankrupt ends the moment the survivor ends their turn.
func (e *Engine) EndTurn(ctx context.Context, gameID, userID int64) (*ActionResult, error) {
	res := &ActionResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		s, err := beginSettle(m, gameID, userID)
		if err != nil {
			return err
		}
		current, err := currentOf(s.game, s.parts)
		if err != nil {
			return err
		}
		if current.ID != s.actor.ID {
			return ErrNotYourTurn
		}
		if open, err := m.OpenPendingFor(gameID, s.actor.ID); err != nil {
			return err
		} else if open != nil {
			if open.ActionType != models.ActionBuyProperty {
				return ErrPendingActionOpen
			}
			open.Status = models.PendingCancelled
			if err := m.UpdatePendingAction(open); err != nil {
				return err
			}
			res.Messages = append(res.Messages, "declined the purchase")
		}

		if len(activeOf(s.parts)) > 1 {
			s.game.TurnIndex++
			if err := m.UpdateGame(s.game); err != nil {
				return err
			}
		}

		if err := s.finish(res); err != nil {
			return err
		}
		if !res.GameEnded {
			next, err := currentOf(s.game, s.parts)
			if err != nil {
				return err
			}
			res.Events = append(res.Events, comm.NewEvent(comm.EventTurnChanged, gameID, 0, comm.TurnChange{
				GameID:        gameID,
				ParticipantID: next.ID,
				UserID:        next.UserID,
			}))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// transfer records a participant-to-participant ledger entry.
func transfer(m Mutation, gameID, fromID, toID, amount int64, txType, description string) error {
	return m.CreateTransaction(&models.Transaction{
		GameID:            gameID,
		FromParticipantID: nullableID(fromID),
		ToParticipantID:   nullableID(toID),
		Amount:            amount,
		Type:              txType,
		Description:       description,
	})
}

func balanceEvent(gameID int64, p *models.Participant) comm.Event {
	return comm.NewEvent(comm.EventPrivateBalance, gameID, p.UserID, map[string]int64{"cash": p.Cash})
}
