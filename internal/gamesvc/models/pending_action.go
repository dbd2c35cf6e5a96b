package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Pending action types
const (
	ActionBuyProperty = "buy_property"
	ActionPayRent     = "pay_rent"
	ActionPayBankDebt = "pay_bank_debt"
)

// Pending action statuses
const (
	PendingOpen      = "pending"
	PendingCompleted = "completed"
	PendingCancelled = "cancelled"
)

// PendingAction is the single-slot obligation gate: at most one row with
// status='pending' per (game_id, participant_id). The payload shape is keyed
// by ActionType; use the typed decode helpers below.
type PendingAction struct {
	ID            int64           `json:"id"`
	GameID        int64           `json:"game_id"`
	ParticipantID int64           `json:"participant_id"`
	ActionType    string          `json:"action_type"`
	Payload       json.RawMessage `json:"payload"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type BuyPropertyPayload struct {
	TileID int64 `json:"tile_id"`
	Cost   int64 `json:"cost"`
}

type PayRentPayload struct {
	TileID  int64 `json:"tile_id"`
	OwnerID int64 `json:"owner_id"` // Participant owed the rent
	Amount  int64 `json:"amount"`
}

type PayBankDebtPayload struct {
	Amount      int64  `json:"amount"`
	TType       string `json:"ttype"` // Transaction type to record on settlement
	Description string `json:"description"`
	TurnID      int64  `json:"turn_id"` // Originating roll, 0 if none
}

func NewPendingAction(gameID, participantID int64, actionType string, payload any) (*PendingAction, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", actionType, err)
	}
	return &PendingAction{
		GameID:        gameID,
		ParticipantID: participantID,
		ActionType:    actionType,
		Payload:       raw,
		Status:        PendingOpen,
	}, nil
}

func (p *PendingAction) BuyProperty() (*BuyPropertyPayload, error) {
	if p.ActionType != ActionBuyProperty {
		return nil, fmt.Errorf("pending action %d is %s, not %s", p.ID, p.ActionType, ActionBuyProperty)
	}
	v := &BuyPropertyPayload{}
	if err := json.Unmarshal(p.Payload, v); err != nil {
		return nil, fmt.Errorf("malformed buy_property payload on action %d: %w", p.ID, err)
	}
	return v, nil
}

func (p *PendingAction) PayRent() (*PayRentPayload, error) {
	if p.ActionType != ActionPayRent {
		return nil, fmt.Errorf("pending action %d is %s, not %s", p.ID, p.ActionType, ActionPayRent)
	}
	v := &PayRentPayload{}
	if err := json.Unmarshal(p.Payload, v); err != nil {
		return nil, fmt.Errorf("malformed pay_rent payload on action %d: %w", p.ID, err)
	}
	return v, nil
}

func (p *PendingAction) PayBankDebt() (*PayBankDebtPayload, error) {
	if p.ActionType != ActionPayBankDebt {
		return nil, fmt.Errorf("pending action %d is %s, not %s", p.ID, p.ActionType, ActionPayBankDebt)
	}
	v := &PayBankDebtPayload{}
	if err := json.Unmarshal(p.Payload, v); err != nil {
		return nil, fmt.Errorf("malformed pay_bank_debt payload on action %d: %w", p.ID, err)
	}
	return v, nil
}
