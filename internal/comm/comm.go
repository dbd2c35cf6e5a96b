package comm

import (
	"encoding/json"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// WSMessage is the envelope carried between the socket service and the game
// service over NATS, and between web clients and the socket service.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "roll", "buy-property"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// Realtime event types fanned out to game rooms or single users.
const (
	EventGameState      = "game-state-updated"
	EventTurnChanged    = "turn-changed"
	EventPlayerJoined   = "player-joined"
	EventPrivateOptions = "private-options-for-user"
	EventPrivateBalance = "private-balance-update-for-user"
	EventGameEnded      = "game-ended"
	EventChatMessage    = "chat-message"
)

// Event is one realtime notification. UserID zero targets the whole game
// room; non-zero targets that user's sockets only.
type Event struct {
	Type   string          `json:"type"`
	GameID int64           `json:"game_id"`
	UserID int64           `json:"user_id,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// NewEvent marshals payload into an Event. Marshal failures of our own value
// types surface as empty data rather than an error at every call site.
func NewEvent(eventType string, gameID, userID int64, payload any) Event {
	data, _ := json.Marshal(payload)
	return Event{Type: eventType, GameID: gameID, UserID: userID, Data: data}
}

// PendingInfo summarizes an outstanding obligation plus the resolution
// options currently open to its participant.
type PendingInfo struct {
	ID            int64    `json:"id"`
	ActionType    string   `json:"action_type"`
	ParticipantID int64    `json:"participant_id"`
	UserID        int64    `json:"user_id"`
	TileID        int64    `json:"tile_id,omitempty"`
	TileName      string   `json:"tile_name,omitempty"`
	OwnerID       int64    `json:"owner_id,omitempty"`
	Amount        int64    `json:"amount"`
	Description   string   `json:"description,omitempty"`
	CanAfford     bool     `json:"can_afford"`
	Options       []string `json:"options"`
}

// GameSnapshot is the consistent public view assembled after every mutation.
type GameSnapshot struct {
	Game                 *models.Game          `json:"game"`
	Players              []*models.Participant `json:"players"`
	Ownerships           []*models.Ownership   `json:"ownerships"`
	RecentTurns          []*models.Turn        `json:"recent_turns"`
	CurrentParticipantID int64                 `json:"current_participant_id"`
	CurrentUserID        int64                 `json:"current_user_id"`
}

// TurnChange announces whose turn it now is.
type TurnChange struct {
	GameID        int64 `json:"game_id"`
	ParticipantID int64 `json:"participant_id"`
	UserID        int64 `json:"user_id"`
}

// Standing is one row of the final ranking.
type Standing struct {
	ParticipantID int64  `json:"participant_id"`
	UserID        int64  `json:"user_id"`
	Token         string `json:"token"`
	Cash          int64  `json:"cash"`
	IsBankrupt    bool   `json:"is_bankrupt"`
	Rank          int    `json:"rank"`
}

// GameOver carries the final standings; the first entry is the winner.
type GameOver struct {
	GameID    int64      `json:"game_id"`
	WinnerID  int64      `json:"winner_user_id"`
	Standings []Standing `json:"standings"`
}

// PlayerData is the private profile/balance view sent on init.
type PlayerData struct {
	Name    string `json:"name"`
	UserId  int64  `json:"user_id"`
	Balance string `json:"balance"`
}

// RollReport is the public outcome of one dice roll.
type RollReport struct {
	GameID       int64        `json:"game_id"`
	UserID       int64        `json:"user_id"`
	Die1         int          `json:"die1"`
	Die2         int          `json:"die2"`
	Doubles      bool         `json:"doubles"`
	PrevPosition int          `json:"prev_position"`
	NewPosition  int          `json:"new_position"`
	Messages     []string     `json:"messages"`
	Pending      *PendingInfo `json:"pending,omitempty"`
	GameEnded    bool         `json:"game_ended"`
}
