package models

import (
	"database/sql"
	"time"
)

// Transaction types
const (
	TxRent       = "rent"
	TxPurchase   = "purchase"
	TxTax        = "tax"
	TxPassGo     = "pass_go"
	TxCard       = "card"
	TxJailFee    = "jail_fee"
	TxSale       = "sale"
	TxBankruptcy = "bankruptcy"
	TxUpgrade    = "upgrade_property"
)

// Transaction is an append-only ledger entry. A null participant side means
// the bank.
type Transaction struct {
	ID                int64         `json:"id"`
	GameID            int64         `json:"game_id"`
	FromParticipantID sql.NullInt64 `json:"from_participant_id"`
	ToParticipantID   sql.NullInt64 `json:"to_participant_id"`
	Amount            int64         `json:"amount"`
	Type              string        `json:"type"`
	Description       string        `json:"description"`
	TurnID            sql.NullInt64 `json:"turn_id"` // Triggering roll, if any
	CreatedAt         time.Time     `json:"created_at"`
}
