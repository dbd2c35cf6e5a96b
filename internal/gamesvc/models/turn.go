package models

import "time"

// Turn is one append-only history row per dice roll.
type Turn struct {
	ID            int64     `json:"id"`
	GameID        int64     `json:"game_id"`
	ParticipantID int64     `json:"participant_id"`
	TurnNumber    int       `json:"turn_number"` // Monotonic per game
	Die1          int       `json:"die1"`
	Die2          int       `json:"die2"`
	IsDoubles     bool      `json:"is_doubles"`
	PrevPosition  int       `json:"prev_position"`
	NewPosition   int       `json:"new_position"`
	Action        string    `json:"action"` // Pipe-joined summary of what the roll did
	CreatedAt     time.Time `json:"created_at"`
}
