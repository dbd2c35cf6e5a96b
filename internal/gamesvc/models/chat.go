package models

import "time"

// ChatMessage is a game-room chat line, kept in mongo with a TTL index so
// old rooms clean themselves up.
type ChatMessage struct {
	ID        string    `json:"id" bson:"_id"`
	GameID    int64     `json:"game_id" bson:"game_id"`
	UserID    int64     `json:"user_id" bson:"user_id"`
	Name      string    `json:"name" bson:"name"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"-" bson:"expires_at"`
}
