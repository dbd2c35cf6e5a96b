package models

import "time"

// Deck types
const (
	DeckChance         = "chance"
	DeckCommunityChest = "community_chest"
)

// Card action types
const (
	CardMove     = "move"
	CardCollect  = "collect"
	CardPay      = "pay"
	CardGoToJail = "go_to_jail"
	CardGoojf    = "get_out_of_jail_free"
)

// Card is one immutable reference row of a deck's fixed sequence.
type Card struct {
	ID         int64     `json:"id"`
	DeckType   string    `json:"deck_type"`
	CardOrder  int       `json:"card_order"` // 0-based position in the deck sequence
	Message    string    `json:"message"`
	ActionType string    `json:"action_type"`
	Amount     int64     `json:"amount"`      // collect/pay
	MoveTo     int       `json:"move_to"`     // move: absolute board position
	CollectGo  bool      `json:"collect_go"`  // move: credit 200 when passing Go
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CardDeck is the per-(game, deck_type) cyclic cursor. CurrentIndex only ever
// grows; reads take it modulo the deck size.
type CardDeck struct {
	ID           int64     `json:"id"`
	GameID       int64     `json:"game_id"`
	DeckType     string    `json:"deck_type"`
	CurrentIndex int       `json:"current_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CardDraw is the audit record of one draw.
type CardDraw struct {
	ID            int64     `json:"id"`
	GameID        int64     `json:"game_id"`
	CardID        int64     `json:"card_id"`
	ParticipantID int64     `json:"participant_id"`
	TurnID        int64     `json:"turn_id"`
	CreatedAt     time.Time `json:"created_at"`
}
