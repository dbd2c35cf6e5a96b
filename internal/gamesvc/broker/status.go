package broker

import (
	"errors"

	"github.com/avvvet/monopoly-services/internal/gamesvc/engine"
)

// statusOf maps engine errors to the stable status codes clients switch on.
// Anything unmapped is an internal error and must not leak details.
func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, engine.ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, engine.ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, engine.ErrNotParticipant):
		return "not_participant"
	case errors.Is(err, engine.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, engine.ErrNotCreator):
		return "not_creator"
	case errors.Is(err, engine.ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, engine.ErrGameFull):
		return "game_full"
	case errors.Is(err, engine.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, engine.ErrPendingActionOpen):
		return "pending_action_open"
	case errors.Is(err, engine.ErrNoPendingAction):
		return "no_pending_action"
	case errors.Is(err, engine.ErrWrongPendingAction):
		return "wrong_pending_action"
	case errors.Is(err, engine.ErrTileMismatch):
		return "tile_mismatch"
	case errors.Is(err, engine.ErrTileNotFound):
		return "tile_not_found"
	case errors.Is(err, engine.ErrNotOwned):
		return "not_owned"
	case errors.Is(err, engine.ErrNotUpgradable):
		return "not_upgradable"
	case errors.Is(err, engine.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, engine.ErrMustSellProperties):
		return "must_sell_properties"
	case errors.Is(err, engine.ErrNoColorGroup):
		return "no_color_group"
	case errors.Is(err, engine.ErrJailFlagsExclusive):
		return "jail_flags_exclusive"
	default:
		return "internal_error"
	}
}
