package engine

import (
	"context"
	"testing"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

func TestCurrentOfWrapsAndSkipsBankrupt(t *testing.T) {
	game := &models.Game{ID: 1}
	parts := []*models.Participant{
		{ID: 1, UserID: 100},
		{ID: 2, UserID: 101, IsBankrupt: true},
		{ID: 3, UserID: 102},
	}

	cases := []struct {
		turnIndex int
		wantID    int64
	}{
		{0, 1},
		{1, 3},
		{2, 1}, // wraps over the two actives
		{5, 3},
	}
	for _, c := range cases {
		game.TurnIndex = c.turnIndex
		got, err := currentOf(game, parts)
		if err != nil {
			t.Fatalf("currentOf(index=%d): %v", c.turnIndex, err)
		}
		if got.ID != c.wantID {
			t.Errorf("currentOf(index=%d) = %d, want %d", c.turnIndex, got.ID, c.wantID)
		}
	}
}

func TestCurrentOfNoActives(t *testing.T) {
	game := &models.Game{ID: 1}
	parts := []*models.Participant{{ID: 1, IsBankrupt: true}}
	if _, err := currentOf(game, parts); err == nil {
		t.Fatal("expected an error with no active participants")
	}
}

func TestStandingsOf(t *testing.T) {
	parts := []*models.Participant{
		{ID: 1, UserID: 100, Cash: 500},
		{ID: 2, UserID: 101, Cash: 0, IsBankrupt: true},
		{ID: 3, UserID: 102, Cash: 900},
	}

	standings := standingsOf(parts)
	wantOrder := []int64{3, 1, 2}
	for i, s := range standings {
		if s.ParticipantID != wantOrder[i] {
			t.Errorf("rank %d = participant %d, want %d", i+1, s.ParticipantID, wantOrder[i])
		}
		if s.Rank != i+1 {
			t.Errorf("standing %d carries rank %d", i, s.Rank)
		}
	}
}

func TestSettleAftermathEndsOnSingleSurvivor(t *testing.T) {
	f := newFix(t, 2)
	f.parts[1].IsBankrupt = true

	var ended bool
	err := f.l.Mutate(context.Background(), f.game.ID, func(m Mutation) error {
		var err error
		ended, _, _, err = settleAftermath(m, f.game, f.parts)
		return err
	})
	if err != nil {
		t.Fatalf("settleAftermath: %v", err)
	}
	if !ended || f.game.Status != models.GameEnded {
		t.Fatalf("want the game ended, got ended=%v status=%q", ended, f.game.Status)
	}
}

func TestSettleAftermathContinuesWithTwoActives(t *testing.T) {
	f := newFix(t, 3)
	f.parts[2].IsBankrupt = true

	err := f.l.Mutate(context.Background(), f.game.ID, func(m Mutation) error {
		ended, current, events, err := settleAftermath(m, f.game, f.parts)
		if err != nil {
			return err
		}
		if ended || len(events) != 0 {
			t.Errorf("game must continue: ended=%v events=%d", ended, len(events))
		}
		if current == nil || current.ID != f.parts[0].ID {
			t.Errorf("current = %+v, want participant %d", current, f.parts[0].ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
}
