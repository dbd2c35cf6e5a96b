package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avvvet/monopoly-services/internal/comm"
	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// RollOptions carries the jail flags a player may set on their roll command.
// The two are mutually exclusive.
type RollOptions struct {
	PayJail bool
	UseCard bool
}

// RollResult is everything a boundary needs to answer a roll command.
type RollResult struct {
	Report   *comm.RollReport
	Snapshot *comm.GameSnapshot
	Events   []comm.Event
}

// Roll processes one complete turn for the participant whose turn it is:
// dice, jail resolution, movement, landing resolution and pending-action
// creation, all inside a single ledger mutation.
func (e *Engine) Roll(ctx context.Context, gameID, userID int64, opts RollOptions) (*RollResult, error) {
	if opts.PayJail && opts.UseCard {
		return nil, ErrJailFlagsExclusive
	}

	res := &RollResult{}
	err := e.ledger.Mutate(ctx, gameID, func(m Mutation) error {
		game, err := m.GameForUpdate(gameID)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
		if game.Status != models.GamePlaying {
			return ErrWrongPhase
		}
		parts, err := m.ParticipantsForUpdate(gameID)
		if err != nil {
			return err
		}
		p := findByUser(parts, userID)
		if p == nil {
			return ErrNotParticipant
		}
		current, err := currentOf(game, parts)
		if err != nil {
			return err
		}
		if current.ID != p.ID {
			return ErrNotYourTurn
		}
		if open, err := m.OpenPendingFor(gameID, p.ID); err != nil {
			return err
		} else if open != nil {
			return ErrPendingActionOpen
		}

		d1, d2 := e.roll()
		doubles := d1 == d2
		prev := p.Position
		startCash := p.Cash
		var notes []string

		turnNo, err := m.NextTurnNumber(gameID)
		if err != nil {
			return err
		}
		turn := &models.Turn{
			GameID:        gameID,
			ParticipantID: p.ID,
			TurnNumber:    turnNo,
			Die1:          d1,
			Die2:          d2,
			IsDoubles:     doubles,
			PrevPosition:  prev,
			NewPosition:   prev,
		}
		if err := m.CreateTurn(turn); err != nil {
			return err
		}

		blocked := false      // stayed in jail, no movement this roll
		forcedBankrupt := false
		var pending *models.PendingAction

		if p.InJail {
			blocked, forcedBankrupt, err = e.resolveJail(m, game, p, turn, opts, doubles, &notes)
			if err != nil {
				return err
			}
		}

		if !blocked && !forcedBankrupt {
			newPos, passedGo := advance(p.Position, d1+d2)
			p.Position = newPos
			if passedGo {
				p.Cash += PassGoCredit
				if err := creditBank(m, game.ID, p.ID, PassGoCredit, models.TxPassGo, "passed GO", turn.ID); err != nil {
					return err
				}
				notes = append(notes, fmt.Sprintf("passed GO, collected $%d", PassGoCredit))
			}
			pending, err = e.resolveLanding(m, game, p, turn, &notes)
			if err != nil {
				return err
			}
		}

		if err := m.UpdateParticipant(p); err != nil {
			return err
		}
		turn.NewPosition = p.Position
		turn.Action = strings.Join(notes, " | ")
		if err := m.UpdateTurn(turn); err != nil {
			return err
		}

		// Win detection and the public snapshot run even when resolution
		// stopped early, so collaborators never see stale state.
		ended, _, endEvents, err := settleAftermath(m, game, parts)
		if err != nil {
			return err
		}

		snap, err := buildSnapshot(m, game, parts)
		if err != nil {
			return err
		}

		report := &comm.RollReport{
			GameID:       gameID,
			UserID:       userID,
			Die1:         d1,
			Die2:         d2,
			Doubles:      doubles,
			PrevPosition: prev,
			NewPosition:  p.Position,
			Messages:     notes,
			GameEnded:    ended,
		}

		events := []comm.Event{comm.NewEvent(comm.EventGameState, gameID, 0, snap)}
		if pending != nil {
			info, err := pendingInfoFor(m, parts, pending)
			if err != nil {
				return err
			}
			report.Pending = info
			events = append(events, comm.NewEvent(comm.EventPrivateOptions, gameID, userID, info))
		}
		if p.Cash != startCash {
			events = append(events, comm.NewEvent(comm.EventPrivateBalance, gameID, userID, map[string]int64{"cash": p.Cash}))
		}
		if forcedBankrupt && !ended {
			next, err := currentOf(game, parts)
			if err != nil {
				return err
			}
			events = append(events, comm.NewEvent(comm.EventTurnChanged, gameID, 0, comm.TurnChange{
				GameID:        gameID,
				ParticipantID: next.ID,
				UserID:        next.UserID,
			}))
		}
		events = append(events, endEvents...)

		res.Report = report
		res.Snapshot = snap
		res.Events = events
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// resolveJail works through the escape options for a jailed roller. It
// reports blocked=true when the participant stays put this roll.
func (e *Engine) resolveJail(m Mutation, game *models.Game, p *models.Participant, turn *models.Turn, opts RollOptions, doubles bool, notes *[]string) (blocked, forcedBankrupt bool, err error) {
	switch {
	case opts.UseCard && p.GoojfCards > 0:
		p.GoojfCards--
		p.InJail = false
		p.JailTurns = 0
		*notes = append(*notes, "used a get-out-of-jail-free card")
	case opts.PayJail && p.Cash >= JailFee:
		p.Cash -= JailFee
		if err := debitBank(m, game.ID, p.ID, JailFee, models.TxJailFee, "paid to leave jail", turn.ID); err != nil {
			return false, false, err
		}
		p.InJail = false
		p.JailTurns = 0
		*notes = append(*notes, fmt.Sprintf("paid $%d to leave jail", JailFee))
	}

	if !p.InJail {
		return false, false, nil
	}

	if doubles {
		p.InJail = false
		p.JailTurns = 0
		*notes = append(*notes, "rolled doubles and left jail")
		return false, false, nil
	}

	if p.JailTurns < 2 {
		p.JailTurns++
		*notes = append(*notes, fmt.Sprintf("failed to roll doubles, attempt %d of 3", p.JailTurns))
		return true, false, nil
	}

	// Third failed attempt: the fee is mandatory.
	if p.Cash < JailFee {
		if err := bankruptToBank(m, game.ID, p, turn.ID, "failed third jail attempt"); err != nil {
			return false, false, err
		}
		*notes = append(*notes, "could not pay the mandatory jail fee, bankrupt")
		return false, true, nil
	}
	p.Cash -= JailFee
	if err := debitBank(m, game.ID, p.ID, JailFee, models.TxJailFee, "mandatory fee on third jail attempt", turn.ID); err != nil {
		return false, false, err
	}
	p.InJail = false
	p.JailTurns = 0
	*notes = append(*notes, fmt.Sprintf("paid the mandatory $%d jail fee", JailFee))
	return false, false, nil
}

// resolveLanding applies the effects of the tile under the token: card draws
// (with their own movement and the go-to-jail re-check), taxes, and the
// property obligations. At most one pending action comes out of a roll; once
// one exists resolution stops.
func (e *Engine) resolveLanding(m Mutation, game *models.Game, p *models.Participant, turn *models.Turn, notes *[]string) (*models.PendingAction, error) {
	tile, err := m.TileAt(p.Position)
	if err != nil {
		return nil, err
	}
	if tile == nil {
		return nil, badStatef("no tile seeded at position %d", p.Position)
	}

	if tile.Type == models.TileChance || tile.Type == models.TileCommunityChest {
		pending, stop, err := e.drawCard(m, game, p, turn, tile.Type, notes)
		if err != nil || pending != nil || stop {
			return pending, err
		}
		// The card may have moved the token; resolve the tile underneath it.
		tile, err = m.TileAt(p.Position)
		if err != nil {
			return nil, err
		}
		if tile == nil {
			return nil, badStatef("no tile seeded at position %d", p.Position)
		}
	}

	switch tile.Type {
	case models.TileGoToJail:
		p.Position = JailPosition
		p.InJail = true
		p.JailTurns = 0
		*notes = append(*notes, "sent to jail")
		return nil, nil
	case models.TileTax:
		amount := taxAmount(tile)
		if p.Cash >= amount {
			p.Cash -= amount
			if err := debitBank(m, game.ID, p.ID, amount, models.TxTax, tile.Name, turn.ID); err != nil {
				return nil, err
			}
			*notes = append(*notes, fmt.Sprintf("paid $%d %s", amount, tile.Name))
			return nil, nil
		}
		pa, err := createPending(m, game.ID, p.ID, models.ActionPayBankDebt, models.PayBankDebtPayload{
			Amount:      amount,
			TType:       models.TxTax,
			Description: tile.Name,
			TurnID:      turn.ID,
		})
		if err != nil {
			return nil, err
		}
		*notes = append(*notes, fmt.Sprintf("owes $%d %s", amount, tile.Name))
		return pa, nil
	case models.TileProperty, models.TileRailroad, models.TileUtility:
		own, err := m.OwnershipForTile(game.ID, tile.ID)
		if err != nil {
			return nil, err
		}
		switch {
		case own == nil && tile.Price > 0:
			pa, err := createPending(m, game.ID, p.ID, models.ActionBuyProperty, models.BuyPropertyPayload{
				TileID: tile.ID,
				Cost:   tile.Price,
			})
			if err != nil {
				return nil, err
			}
			*notes = append(*notes, fmt.Sprintf("may buy %s for $%d", tile.Name, tile.Price))
			return pa, nil
		case own != nil && own.ParticipantID != p.ID:
			rent := rentFor(tile)
			pa, err := createPending(m, game.ID, p.ID, models.ActionPayRent, models.PayRentPayload{
				TileID:  tile.ID,
				OwnerID: own.ParticipantID,
				Amount:  rent,
			})
			if err != nil {
				return nil, err
			}
			*notes = append(*notes, fmt.Sprintf("owes $%d rent on %s", rent, tile.Name))
			return pa, nil
		}
	}
	return nil, nil
}

// drawCard advances the deck's cyclic cursor, audits the draw and applies
// the card. stop=true means no further landing resolution should happen
// (the token went to jail).
func (e *Engine) drawCard(m Mutation, game *models.Game, p *models.Participant, turn *models.Turn, deckType string, notes *[]string) (pending *models.PendingAction, stop bool, err error) {
	deck, err := m.DeckForUpdate(game.ID, deckType)
	if err != nil {
		return nil, false, err
	}
	if deck == nil {
		return nil, false, badStatef("game %d has no %s deck", game.ID, deckType)
	}
	size, err := m.DeckSize(deckType)
	if err != nil {
		return nil, false, err
	}
	if size == 0 {
		return nil, false, badStatef("%s deck has no cards", deckType)
	}
	card, err := m.CardAt(deckType, deck.CurrentIndex%size)
	if err != nil {
		return nil, false, err
	}
	if card == nil {
		return nil, false, badStatef("%s deck missing card at order %d", deckType, deck.CurrentIndex%size)
	}
	deck.CurrentIndex++
	if err := m.UpdateDeck(deck); err != nil {
		return nil, false, err
	}
	if err := m.CreateCardDraw(&models.CardDraw{
		GameID:        game.ID,
		CardID:        card.ID,
		ParticipantID: p.ID,
		TurnID:        turn.ID,
	}); err != nil {
		return nil, false, err
	}
	*notes = append(*notes, card.Message)

	switch card.ActionType {
	case models.CardCollect:
		p.Cash += card.Amount
		if err := creditBank(m, game.ID, p.ID, card.Amount, models.TxCard, card.Message, turn.ID); err != nil {
			return nil, false, err
		}
	case models.CardPay:
		if p.Cash < card.Amount {
			pa, err := createPending(m, game.ID, p.ID, models.ActionPayBankDebt, models.PayBankDebtPayload{
				Amount:      card.Amount,
				TType:       models.TxCard,
				Description: card.Message,
				TurnID:      turn.ID,
			})
			if err != nil {
				return nil, false, err
			}
			*notes = append(*notes, fmt.Sprintf("owes $%d to the bank", card.Amount))
			return pa, false, nil
		}
		p.Cash -= card.Amount
		if err := debitBank(m, game.ID, p.ID, card.Amount, models.TxCard, card.Message, turn.ID); err != nil {
			return nil, false, err
		}
	case models.CardMove:
		if card.CollectGo && card.MoveTo < p.Position {
			p.Cash += PassGoCredit
			if err := creditBank(m, game.ID, p.ID, PassGoCredit, models.TxPassGo, "passed GO", turn.ID); err != nil {
				return nil, false, err
			}
			*notes = append(*notes, fmt.Sprintf("passed GO, collected $%d", PassGoCredit))
		}
		p.Position = card.MoveTo
	case models.CardGoToJail:
		p.Position = JailPosition
		p.InJail = true
		p.JailTurns = 0
		return nil, true, nil
	case models.CardGoojf:
		p.GoojfCards++
	default:
		return nil, false, badStatef("card %d has unknown action %q", card.ID, card.ActionType)
	}
	return nil, false, nil
}

// createPending enforces the single-slot invariant before inserting.
func createPending(m Mutation, gameID, participantID int64, actionType string, payload any) (*models.PendingAction, error) {
	open, err := m.OpenPendingFor(gameID, participantID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, badStatef("participant %d already has pending action %d", participantID, open.ID)
	}
	pa, err := models.NewPendingAction(gameID, participantID, actionType, payload)
	if err != nil {
		return nil, badStatef("%v", err)
	}
	if err := m.CreatePendingAction(pa); err != nil {
		return nil, err
	}
	return pa, nil
}

// creditBank records a bank-to-participant transfer.
func creditBank(m Mutation, gameID, participantID, amount int64, txType, description string, turnID int64) error {
	return m.CreateTransaction(&models.Transaction{
		GameID:          gameID,
		ToParticipantID: sql.NullInt64{Int64: participantID, Valid: true},
		Amount:          amount,
		Type:            txType,
		Description:     description,
		TurnID:          nullableID(turnID),
	})
}

// debitBank records a participant-to-bank transfer.
func debitBank(m Mutation, gameID, participantID, amount int64, txType, description string, turnID int64) error {
	return m.CreateTransaction(&models.Transaction{
		GameID:            gameID,
		FromParticipantID: sql.NullInt64{Int64: participantID, Valid: true},
		Amount:            amount,
		Type:              txType,
		Description:       description,
		TurnID:            nullableID(turnID),
	})
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// bankruptToBank liquidates a participant: their remaining cash is recorded
// as a bankruptcy transaction, their jail and card state is cleared, and
// every deed they hold goes back to the bank.
func bankruptToBank(m Mutation, gameID int64, p *models.Participant, turnID int64, reason string) error {
	if err := debitBank(m, gameID, p.ID, p.Cash, models.TxBankruptcy, reason, turnID); err != nil {
		return err
	}
	p.Cash = 0
	p.GoojfCards = 0
	p.InJail = false
	p.JailTurns = 0
	p.IsBankrupt = true
	if err := m.DeleteOwnershipsByOwner(gameID, p.ID); err != nil {
		return err
	}
	return m.UpdateParticipant(p)
}
