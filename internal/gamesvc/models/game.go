package models

import "time"

// Game statuses
const (
	GameWaiting = "waiting"
	GamePlaying = "playing"
	GameEnded   = "ended"
)

type Game struct {
	ID              int64     `json:"id"`               // Primary key
	Code            string    `json:"code"`             // Short join code, unique
	CreatorUserID   int64     `json:"creator_user_id"`  // FK to users(user_id)
	MaxPlayers      int       `json:"max_players"`      // 2..8
	StartingBalance int64     `json:"starting_balance"` // Cash handed to every participant on join
	TurnIndex       int       `json:"turn_index"`       // Rotation pointer, meaningful modulo active participants
	Status          string    `json:"status"`           // 'waiting', 'playing', 'ended'
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
