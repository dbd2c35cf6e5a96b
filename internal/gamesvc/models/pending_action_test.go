package models

import (
	"encoding/json"
	"testing"
)

func TestNewPendingAction(t *testing.T) {
	pa, err := NewPendingAction(7, 3, ActionBuyProperty, BuyPropertyPayload{TileID: 12, Cost: 140})
	if err != nil {
		t.Fatalf("NewPendingAction: %v", err)
	}
	if pa.GameID != 7 || pa.ParticipantID != 3 {
		t.Errorf("got game %d participant %d", pa.GameID, pa.ParticipantID)
	}
	if pa.Status != PendingOpen {
		t.Errorf("status = %q, want %q", pa.Status, PendingOpen)
	}

	payload, err := pa.BuyProperty()
	if err != nil {
		t.Fatalf("BuyProperty: %v", err)
	}
	if payload.TileID != 12 || payload.Cost != 140 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestPendingActionDecodeWrongType(t *testing.T) {
	pa, err := NewPendingAction(1, 1, ActionPayRent, PayRentPayload{TileID: 5, OwnerID: 2, Amount: 25})
	if err != nil {
		t.Fatalf("NewPendingAction: %v", err)
	}

	if _, err := pa.BuyProperty(); err == nil {
		t.Error("BuyProperty decoded a pay_rent action")
	}
	if _, err := pa.PayBankDebt(); err == nil {
		t.Error("PayBankDebt decoded a pay_rent action")
	}

	payload, err := pa.PayRent()
	if err != nil {
		t.Fatalf("PayRent: %v", err)
	}
	if payload.OwnerID != 2 || payload.Amount != 25 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestPendingActionMalformedPayload(t *testing.T) {
	pa := &PendingAction{
		ID:         9,
		ActionType: ActionPayBankDebt,
		Payload:    json.RawMessage(`{"amount":`),
	}
	if _, err := pa.PayBankDebt(); err == nil {
		t.Error("PayBankDebt decoded a truncated payload")
	}
}

func TestPayBankDebtPayloadRoundTrip(t *testing.T) {
	pa, err := NewPendingAction(2, 4, ActionPayBankDebt, PayBankDebtPayload{
		Amount:      200,
		TType:       "tax",
		Description: "Income Tax",
		TurnID:      31,
	})
	if err != nil {
		t.Fatalf("NewPendingAction: %v", err)
	}
	payload, err := pa.PayBankDebt()
	if err != nil {
		t.Fatalf("PayBankDebt: %v", err)
	}
	if payload.TType != "tax" || payload.Description != "Income Tax" || payload.TurnID != 31 {
		t.Errorf("payload = %+v", payload)
	}
}
