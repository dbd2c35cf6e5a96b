package models

import "time"

// Ownership links a tile to the participant holding its deed. Unique per
// (game_id, tile_id); deleted on sale or bankruptcy.
type Ownership struct {
	ID            int64     `json:"id"`
	GameID        int64     `json:"game_id"`
	TileID        int64     `json:"tile_id"`
	ParticipantID int64     `json:"participant_id"`
	Houses        int       `json:"houses"` // 0..4, resets to 0 when the hotel goes up
	Hotels        int       `json:"hotels"` // 0 or 1
	IsMortgaged   bool      `json:"is_mortgaged"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
