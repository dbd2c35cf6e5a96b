package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
	"github.com/avvvet/monopoly-services/internal/gamesvc/store"
)

// WalletService exposes the platform wallet: the real site currency, kept
// separate from in-game cash.
type WalletService struct {
	walletStore *store.WalletStore
}

func NewWalletService(store *store.WalletStore) *WalletService {
	return &WalletService{walletStore: store}
}

func (s *WalletService) GetUserBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.walletStore.GetBalanceByUserID(ctx, userID)
}

// Credit records a dr entry in the user's favor.
func (s *WalletService) Credit(ctx context.Context, userID int64, amount decimal.Decimal, ttype, tref string) error {
	return s.walletStore.CreateEntry(ctx, &models.WalletEntry{
		UserID: userID,
		TType:  ttype,
		Dr:     amount,
		Cr:     decimal.Zero,
		TRef:   tref,
		Status: "completed",
	})
}

// Debit records a cr entry against the user.
func (s *WalletService) Debit(ctx context.Context, userID int64, amount decimal.Decimal, ttype, tref string) error {
	return s.walletStore.CreateEntry(ctx, &models.WalletEntry{
		UserID: userID,
		TType:  ttype,
		Dr:     decimal.Zero,
		Cr:     amount,
		TRef:   tref,
		Status: "completed",
	})
}
