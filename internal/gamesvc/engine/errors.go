package engine

import (
	"errors"
	"fmt"
)

// Precondition failures. These never mutate state and are safe for the
// caller to retry with corrected input.
var (
	ErrGameNotFound       = errors.New("game not found")
	ErrWrongPhase         = errors.New("game is not in the required phase")
	ErrNotParticipant     = errors.New("user is not a participant of this game")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrNotCreator         = errors.New("only the game creator may do this")
	ErrNotEnoughPlayers   = errors.New("at least two players are required")
	ErrGameFull           = errors.New("game is full")
	ErrAlreadyJoined      = errors.New("user already joined this game")
	ErrPendingActionOpen  = errors.New("an unresolved pending action blocks this")
	ErrNoPendingAction    = errors.New("pending action not found")
	ErrWrongPendingAction = errors.New("pending action does not match the request")
	ErrTileMismatch       = errors.New("tile does not match the pending action")
	ErrTileNotFound       = errors.New("tile not found")
	ErrNotOwned           = errors.New("tile is not owned by the caller")
	ErrNotUpgradable      = errors.New("tile cannot be upgraded further")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrMustSellProperties = errors.New("must sell all properties before declaring bankruptcy")
	ErrNoColorGroup       = errors.New("no upgrade cost for this color group")
	ErrJailFlagsExclusive = errors.New("pay-jail and use-card are mutually exclusive")

	// ErrBadState marks invariant violations: malformed payloads, zero active
	// participants mid-turn. These indicate a bug, not caller error.
	ErrBadState = errors.New("inconsistent game state")

	// ErrCodeExhausted is raised when a unique game code cannot be generated
	// within the retry budget.
	ErrCodeExhausted = errors.New("unable to generate a unique game code")

	// ErrDuplicateCode is returned by Ledger.CreateGame on a code collision.
	ErrDuplicateCode = errors.New("game code already in use")
)

// badStatef wraps ErrBadState with detail about the broken invariant.
func badStatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadState, fmt.Sprintf(format, args...))
}
