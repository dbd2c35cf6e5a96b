package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// seedPending inserts an open obligation directly into the ledger.
func (f *fix) seedPending(t *testing.T, p *models.Participant, actionType string, payload any) *models.PendingAction {
	t.Helper()
	pa, err := models.NewPendingAction(f.game.ID, p.ID, actionType, payload)
	if err != nil {
		t.Fatalf("building pending action: %v", err)
	}
	pa.ID = f.l.id()
	f.l.pending[pa.ID] = pa
	return pa
}

func TestBuyProperty(t *testing.T) {
	f := newFix(t, 2)
	tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	p := f.parts[0]
	pa := f.seedPending(t, p, models.ActionBuyProperty, models.BuyPropertyPayload{TileID: tile.ID, Cost: 100})

	res, err := f.e.BuyProperty(context.Background(), f.game.ID, p.UserID, pa.ID, tile.ID)
	if err != nil {
		t.Fatalf("BuyProperty: %v", err)
	}

	if p.Cash != 1400 {
		t.Errorf("cash = %d, want 1400", p.Cash)
	}
	own, _ := (&memMutation{l: f.l}).OwnershipForTile(f.game.ID, tile.ID)
	if own == nil || own.ParticipantID != p.ID {
		t.Fatalf("ownership not recorded: %+v", own)
	}
	if pa.Status != models.PendingCompleted {
		t.Errorf("pending status = %q, want completed", pa.Status)
	}
	if len(res.Messages) == 0 {
		t.Error("expected a purchase message")
	}
	var purchase bool
	for _, tx := range f.l.transactions {
		if tx.Type == models.TxPurchase && tx.Amount == 100 {
			purchase = true
		}
	}
	if !purchase {
		t.Error("expected a purchase transaction of 100")
	}
}

func TestBuyPropertyFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong pending type", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
		pa := f.seedPending(t, f.parts[0], models.ActionPayBankDebt, models.PayBankDebtPayload{Amount: 50, TType: models.TxTax})
		if _, err := f.e.BuyProperty(ctx, f.game.ID, f.parts[0].UserID, pa.ID, tile.ID); !errors.Is(err, ErrWrongPendingAction) {
			t.Errorf("got %v, want ErrWrongPendingAction", err)
		}
	})

	t.Run("tile mismatch", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
		other := f.addTile(8, models.TileProperty, "Vermont Avenue", 100, 6, "light_blue")
		pa := f.seedPending(t, f.parts[0], models.ActionBuyProperty, models.BuyPropertyPayload{TileID: tile.ID, Cost: 100})
		if _, err := f.e.BuyProperty(ctx, f.game.ID, f.parts[0].UserID, pa.ID, other.ID); !errors.Is(err, ErrTileMismatch) {
			t.Errorf("got %v, want ErrTileMismatch", err)
		}
	})

	t.Run("insufficient funds leaves pending open", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
		p := f.parts[0]
		p.Cash = 40
		pa := f.seedPending(t, p, models.ActionBuyProperty, models.BuyPropertyPayload{TileID: tile.ID, Cost: 100})
		if _, err := f.e.BuyProperty(ctx, f.game.ID, p.UserID, pa.ID, tile.ID); !errors.Is(err, ErrInsufficientFunds) {
			t.Errorf("got %v, want ErrInsufficientFunds", err)
		}
		if pa.Status != models.PendingOpen {
			t.Errorf("pending status = %q, must stay open", pa.Status)
		}
		if p.Cash != 40 {
			t.Errorf("cash = %d, failed buy must not debit", p.Cash)
		}
	})

	t.Run("someone else's pending", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
		pa := f.seedPending(t, f.parts[0], models.ActionBuyProperty, models.BuyPropertyPayload{TileID: tile.ID, Cost: 100})
		if _, err := f.e.BuyProperty(ctx, f.game.ID, f.parts[1].UserID, pa.ID, tile.ID); !errors.Is(err, ErrNoPendingAction) {
			t.Errorf("got %v, want ErrNoPendingAction", err)
		}
	})

	t.Run("already completed", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
		pa := f.seedPending(t, f.parts[0], models.ActionBuyProperty, models.BuyPropertyPayload{TileID: tile.ID, Cost: 100})
		pa.Status = models.PendingCompleted
		if _, err := f.e.BuyProperty(ctx, f.game.ID, f.parts[0].UserID, pa.ID, tile.ID); !errors.Is(err, ErrNoPendingAction) {
			t.Errorf("got %v, want ErrNoPendingAction", err)
		}
	})
}

func TestPayRent(t *testing.T) {
	f := newFix(t, 2)
	tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	debtor, owner := f.parts[0], f.parts[1]
	f.own(owner, tile.ID, 0, 0)
	pa := f.seedPending(t, debtor, models.ActionPayRent, models.PayRentPayload{TileID: tile.ID, OwnerID: owner.ID, Amount: 6})

	res, err := f.e.PayRent(context.Background(), f.game.ID, debtor.UserID, pa.ID)
	if err != nil {
		t.Fatalf("PayRent: %v", err)
	}

	if debtor.Cash != 1494 || owner.Cash != 1506 {
		t.Errorf("cash = %d/%d, want 1494/1506", debtor.Cash, owner.Cash)
	}
	if pa.Status != models.PendingCompleted {
		t.Errorf("pending status = %q, want completed", pa.Status)
	}
	var rent *models.Transaction
	for _, tx := range f.l.transactions {
		if tx.Type == models.TxRent {
			rent = tx
		}
	}
	if rent == nil || rent.FromParticipantID.Int64 != debtor.ID || rent.ToParticipantID.Int64 != owner.ID {
		t.Fatalf("rent transaction missing or wrong parties: %+v", rent)
	}
	// Both sides get a private balance event.
	var balances int
	for _, ev := range res.Events {
		if ev.Type == "private-balance-update-for-user" {
			balances++
		}
	}
	if balances != 2 {
		t.Errorf("balance events = %d, want 2", balances)
	}
}

func TestPayRentInsufficientLeavesPendingOpen(t *testing.T) {
	f := newFix(t, 2)
	tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	debtor, owner := f.parts[0], f.parts[1]
	f.own(owner, tile.ID, 0, 0)
	debtor.Cash = 3
	pa := f.seedPending(t, debtor, models.ActionPayRent, models.PayRentPayload{TileID: tile.ID, OwnerID: owner.ID, Amount: 6})

	if _, err := f.e.PayRent(context.Background(), f.game.ID, debtor.UserID, pa.ID); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
	if pa.Status != models.PendingOpen {
		t.Errorf("pending status = %q, must stay open so the debtor can sell and retry", pa.Status)
	}
	if debtor.Cash != 3 || owner.Cash != 1500 {
		t.Errorf("cash = %d/%d, failed rent must not move money", debtor.Cash, owner.Cash)
	}
}

func TestPayBankDebt(t *testing.T) {
	f := newFix(t, 2)
	p := f.parts[0]
	pa := f.seedPending(t, p, models.ActionPayBankDebt, models.PayBankDebtPayload{
		Amount:      200,
		TType:       models.TxTax,
		Description: "Income Tax",
	})

	if _, err := f.e.PayBankDebt(context.Background(), f.game.ID, p.UserID, pa.ID); err != nil {
		t.Fatalf("PayBankDebt: %v", err)
	}
	if p.Cash != 1300 {
		t.Errorf("cash = %d, want 1300", p.Cash)
	}
	if pa.Status != models.PendingCompleted {
		t.Errorf("pending status = %q, want completed", pa.Status)
	}
	var tax bool
	for _, tx := range f.l.transactions {
		if tx.Type == models.TxTax && tx.Description == "Income Tax" && tx.Amount == 200 {
			tax = true
		}
	}
	if !tax {
		t.Error("expected a tax transaction carrying the payload description")
	}
}

func TestDeclareBankruptcyRequiresLiquidation(t *testing.T) {
	f := newFix(t, 3)
	tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	p := f.parts[0]
	f.own(p, tile.ID, 0, 0)
	pa := f.seedPending(t, p, models.ActionPayBankDebt, models.PayBankDebtPayload{Amount: 5000, TType: models.TxTax})

	if _, err := f.e.DeclareBankruptcy(context.Background(), f.game.ID, p.UserID, pa.ID); !errors.Is(err, ErrMustSellProperties) {
		t.Fatalf("got %v, want ErrMustSellProperties", err)
	}
	if p.IsBankrupt {
		t.Error("refused bankruptcy must not mark the participant")
	}
}

func TestDeclareBankruptcy(t *testing.T) {
	f := newFix(t, 3)
	p := f.parts[0]
	p.Cash = 30
	pa := f.seedPending(t, p, models.ActionPayBankDebt, models.PayBankDebtPayload{Amount: 5000, TType: models.TxTax})

	res, err := f.e.DeclareBankruptcy(context.Background(), f.game.ID, p.UserID, pa.ID)
	if err != nil {
		t.Fatalf("DeclareBankruptcy: %v", err)
	}

	if !p.IsBankrupt || p.Cash != 0 {
		t.Errorf("want bankrupt with zero cash, got bankrupt=%v cash=%d", p.IsBankrupt, p.Cash)
	}
	if pa.Status != models.PendingCompleted {
		t.Errorf("pending status = %q, want completed", pa.Status)
	}
	if res.GameEnded {
		t.Error("two actives remain, the game must continue")
	}
	if res.NextUserID != f.parts[1].UserID {
		t.Errorf("next user = %d, want %d", res.NextUserID, f.parts[1].UserID)
	}
	var turnChanged bool
	for _, ev := range res.Events {
		if ev.Type == "turn-changed" {
			turnChanged = true
		}
	}
	if !turnChanged {
		t.Error("expected a turn-changed event after the fold")
	}
}

func TestDeclareBankruptcyEndsTwoPlayerGame(t *testing.T) {
	f := newFix(t, 2)
	p := f.parts[0]
	pa := f.seedPending(t, p, models.ActionPayBankDebt, models.PayBankDebtPayload{Amount: 5000, TType: models.TxTax})

	res, err := f.e.DeclareBankruptcy(context.Background(), f.game.ID, p.UserID, pa.ID)
	if err != nil {
		t.Fatalf("DeclareBankruptcy: %v", err)
	}
	if !res.GameEnded || f.game.Status != models.GameEnded {
		t.Fatal("folding against the last opponent must end the game")
	}
	var over bool
	for _, ev := range res.Events {
		if ev.Type == "game-ended" {
			over = true
		}
	}
	if !over {
		t.Error("expected a game-ended event")
	}
}

func TestSellProperty(t *testing.T) {
	f := newFix(t, 2)
	tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	p := f.parts[0]
	f.own(p, tile.ID, 2, 0)

	res, err := f.e.SellProperty(context.Background(), f.game.ID, p.UserID, tile.ID)
	if err != nil {
		t.Fatalf("SellProperty: %v", err)
	}

	// 100/2 plus half the two light_blue houses at 50 apiece.
	if p.Cash != 1600 {
		t.Errorf("cash = %d, want 1600", p.Cash)
	}
	if own, _ := (&memMutation{l: f.l}).OwnershipForTile(f.game.ID, tile.ID); own != nil {
		t.Error("deed must return to the bank")
	}
	if res.Pending != nil {
		t.Error("no obligation was open, nothing to recompute")
	}
}

func TestSellPropertyRecomputesOpenObligation(t *testing.T) {
	f := newFix(t, 2)
	rented := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	asset := f.addTile(8, models.TileProperty, "Vermont Avenue", 100, 6, "light_blue")
	debtor, owner := f.parts[0], f.parts[1]
	f.own(owner, rented.ID, 0, 0)
	f.own(debtor, asset.ID, 0, 0)
	debtor.Cash = 10
	pa := f.seedPending(t, debtor, models.ActionPayRent, models.PayRentPayload{TileID: rented.ID, OwnerID: owner.ID, Amount: 40})

	res, err := f.e.SellProperty(context.Background(), f.game.ID, debtor.UserID, asset.ID)
	if err != nil {
		t.Fatalf("SellProperty: %v", err)
	}

	if debtor.Cash != 60 {
		t.Errorf("cash = %d, want 60 after the sale", debtor.Cash)
	}
	if res.Pending == nil || res.Pending.ID != pa.ID {
		t.Fatalf("expected the open obligation back, got %+v", res.Pending)
	}
	if !res.Pending.CanAfford {
		t.Error("after the sale the rent is affordable, options must reflect that")
	}
}

func TestSellPropertyFailures(t *testing.T) {
	ctx := context.Background()
	f := newFix(t, 2)
	tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	f.own(f.parts[1], tile.ID, 0, 0)

	if _, err := f.e.SellProperty(ctx, f.game.ID, f.parts[0].UserID, 999); !errors.Is(err, ErrTileNotFound) {
		t.Errorf("unknown tile: got %v, want ErrTileNotFound", err)
	}
	if _, err := f.e.SellProperty(ctx, f.game.ID, f.parts[0].UserID, tile.ID); !errors.Is(err, ErrNotOwned) {
		t.Errorf("someone else's tile: got %v, want ErrNotOwned", err)
	}
}

func TestUpgradeProperty(t *testing.T) {
	f := newFix(t, 2)
	tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	p := f.parts[0]
	own := f.own(p, tile.ID, 0, 0)

	if _, err := f.e.UpgradeProperty(context.Background(), f.game.ID, p.UserID, tile.ID); err != nil {
		t.Fatalf("UpgradeProperty: %v", err)
	}
	if own.Houses != 1 || own.Hotels != 0 {
		t.Errorf("want one house, got houses=%d hotels=%d", own.Houses, own.Hotels)
	}
	if p.Cash != 1450 {
		t.Errorf("cash = %d, want 1450 after a $50 light_blue house", p.Cash)
	}
}

func TestUpgradePropertyHotelAfterFourHouses(t *testing.T) {
	f := newFix(t, 2)
	tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	p := f.parts[0]
	own := f.own(p, tile.ID, MaxHouses, 0)

	if _, err := f.e.UpgradeProperty(context.Background(), f.game.ID, p.UserID, tile.ID); err != nil {
		t.Fatalf("UpgradeProperty: %v", err)
	}
	if own.Hotels != 1 || own.Houses != 0 {
		t.Errorf("want the hotel, got houses=%d hotels=%d", own.Houses, own.Hotels)
	}

	if _, err := f.e.UpgradeProperty(context.Background(), f.game.ID, p.UserID, tile.ID); !errors.Is(err, ErrNotUpgradable) {
		t.Errorf("hotel tile: got %v, want ErrNotUpgradable", err)
	}
}

func TestUpgradePropertyFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("not your turn", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
		f.own(f.parts[1], tile.ID, 0, 0)
		if _, err := f.e.UpgradeProperty(ctx, f.game.ID, f.parts[1].UserID, tile.ID); !errors.Is(err, ErrNotYourTurn) {
			t.Errorf("got %v, want ErrNotYourTurn", err)
		}
	})

	t.Run("open obligation blocks building", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
		p := f.parts[0]
		f.own(p, tile.ID, 0, 0)
		f.seedPending(t, p, models.ActionPayBankDebt, models.PayBankDebtPayload{Amount: 100, TType: models.TxTax})
		if _, err := f.e.UpgradeProperty(ctx, f.game.ID, p.UserID, tile.ID); !errors.Is(err, ErrPendingActionOpen) {
			t.Errorf("got %v, want ErrPendingActionOpen", err)
		}
	})

	t.Run("railroads cannot be built on", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(5, models.TileRailroad, "Reading Railroad", 200, 25, "")
		p := f.parts[0]
		f.own(p, tile.ID, 0, 0)
		if _, err := f.e.UpgradeProperty(ctx, f.game.ID, p.UserID, tile.ID); !errors.Is(err, ErrNotUpgradable) {
			t.Errorf("got %v, want ErrNotUpgradable", err)
		}
	})

	t.Run("mortgaged", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
		p := f.parts[0]
		own := f.own(p, tile.ID, 0, 0)
		own.IsMortgaged = true
		if _, err := f.e.UpgradeProperty(ctx, f.game.ID, p.UserID, tile.ID); !errors.Is(err, ErrNotUpgradable) {
			t.Errorf("got %v, want ErrNotUpgradable", err)
		}
	})

	t.Run("no color group price", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Odd Lot", 100, 6, "chartreuse")
		p := f.parts[0]
		f.own(p, tile.ID, 0, 0)
		if _, err := f.e.UpgradeProperty(ctx, f.game.ID, p.UserID, tile.ID); !errors.Is(err, ErrNoColorGroup) {
			t.Errorf("got %v, want ErrNoColorGroup", err)
		}
	})

	t.Run("insufficient funds", func(t *testing.T) {
		f := newFix(t, 2)
		tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
		p := f.parts[0]
		p.Cash = 20
		f.own(p, tile.ID, 0, 0)
		if _, err := f.e.UpgradeProperty(ctx, f.game.ID, p.UserID, tile.ID); !errors.Is(err, ErrInsufficientFunds) {
			t.Errorf("got %v, want ErrInsufficientFunds", err)
		}
	})
}

func TestEndTurnRotation(t *testing.T) {
	f := newFix(t, 3)
	ctx := context.Background()

	res, err := f.e.EndTurn(ctx, f.game.ID, f.parts[0].UserID)
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if f.game.TurnIndex != 1 {
		t.Errorf("turn index = %d, want 1", f.game.TurnIndex)
	}
	if res.NextUserID != f.parts[1].UserID {
		t.Errorf("next user = %d, want %d", res.NextUserID, f.parts[1].UserID)
	}

	if _, err := f.e.EndTurn(ctx, f.game.ID, f.parts[0].UserID); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("stale actor: got %v, want ErrNotYourTurn", err)
	}
}

func TestEndTurnSkipsBankruptParticipants(t *testing.T) {
	f := newFix(t, 3)
	f.parts[1].IsBankrupt = true

	res, err := f.e.EndTurn(context.Background(), f.game.ID, f.parts[0].UserID)
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if res.NextUserID != f.parts[2].UserID {
		t.Errorf("next user = %d, want %d (bankrupt seat skipped)", res.NextUserID, f.parts[2].UserID)
	}
}

func TestEndTurnAutoCancelsDeclinedPurchase(t *testing.T) {
	f := newFix(t, 2)
	tile := f.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	p := f.parts[0]
	pa := f.seedPending(t, p, models.ActionBuyProperty, models.BuyPropertyPayload{TileID: tile.ID, Cost: 100})

	res, err := f.e.EndTurn(context.Background(), f.game.ID, p.UserID)
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if pa.Status != models.PendingCancelled {
		t.Errorf("pending status = %q, want cancelled", pa.Status)
	}
	if own, _ := (&memMutation{l: f.l}).OwnershipForTile(f.game.ID, tile.ID); own != nil {
		t.Error("declined purchase must not create ownership")
	}
	if res.NextUserID != f.parts[1].UserID {
		t.Errorf("next user = %d, want %d", res.NextUserID, f.parts[1].UserID)
	}
}

func TestEndTurnBlockedByDebt(t *testing.T) {
	f := newFix(t, 2)
	p := f.parts[0]
	f.seedPending(t, p, models.ActionPayBankDebt, models.PayBankDebtPayload{Amount: 200, TType: models.TxTax})

	if _, err := f.e.EndTurn(context.Background(), f.game.ID, p.UserID); !errors.Is(err, ErrPendingActionOpen) {
		t.Errorf("got %v, want ErrPendingActionOpen", err)
	}

	f2 := newFix(t, 2)
	tile := f2.addTile(6, models.TileProperty, "Oriental Avenue", 100, 6, "light_blue")
	f2.own(f2.parts[1], tile.ID, 0, 0)
	f2.seedPending(t, f2.parts[0], models.ActionPayRent, models.PayRentPayload{TileID: tile.ID, OwnerID: f2.parts[1].ID, Amount: 6})
	if _, err := f2.e.EndTurn(context.Background(), f2.game.ID, f2.parts[0].UserID); !errors.Is(err, ErrPendingActionOpen) {
		t.Errorf("open rent: got %v, want ErrPendingActionOpen", err)
	}
}
