package models

import "time"

// TokenPalette is the fixed set of board tokens; each game hands them out
// in join order and never repeats one.
var TokenPalette = []string{
	"top_hat", "boot", "dog", "ship", "car", "thimble", "wheelbarrow", "cat",
}

type Participant struct {
	ID         int64     `json:"id"`      // Primary key, join order within a game
	GameID     int64     `json:"game_id"` // FK to games(id)
	UserID     int64     `json:"user_id"` // FK to users(user_id)
	Token      string    `json:"token"`   // One of TokenPalette, unique per game
	Cash       int64     `json:"cash"`    // Never negative after settlement completes
	Position   int       `json:"position"`
	InJail     bool      `json:"in_jail"`
	JailTurns  int       `json:"jail_turns"`  // Failed escape attempts this jail stay, 0..2
	GoojfCards int       `json:"goojf_cards"` // Get-out-of-jail-free cards held
	IsBankrupt bool      `json:"is_bankrupt"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
