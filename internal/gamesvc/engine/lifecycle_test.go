package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

func TestCreateGameDefaults(t *testing.T) {
	l := newMemLedger()
	e := New(l)

	g, err := e.CreateGame(context.Background(), 100, 0, 0)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if g.MaxPlayers != defaultMaxPlayers {
		t.Errorf("max players = %d, want %d", g.MaxPlayers, defaultMaxPlayers)
	}
	if g.StartingBalance != defaultStartingBalance {
		t.Errorf("starting balance = %d, want %d", g.StartingBalance, defaultStartingBalance)
	}
	if g.Status != models.GameWaiting {
		t.Errorf("status = %q, want waiting", g.Status)
	}
	if len(g.Code) != codeLength {
		t.Errorf("code %q has length %d, want %d", g.Code, len(g.Code), codeLength)
	}
	if g.CreatorUserID != 100 {
		t.Errorf("creator = %d, want 100", g.CreatorUserID)
	}
}

func TestCreateGameRejectsSoloGames(t *testing.T) {
	l := newMemLedger()
	e := New(l)
	if _, err := e.CreateGame(context.Background(), 100, 1, 0); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("got %v, want ErrNotEnoughPlayers", err)
	}
}

func TestCreateGameClampsToTokenPalette(t *testing.T) {
	l := newMemLedger()
	e := New(l)
	g, err := e.CreateGame(context.Background(), 100, 50, 0)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if g.MaxPlayers != len(models.TokenPalette) {
		t.Errorf("max players = %d, want palette size %d", g.MaxPlayers, len(models.TokenPalette))
	}
}

func TestListOpenGames(t *testing.T) {
	l := newMemLedger()
	e := New(l)
	ctx := context.Background()

	a, _ := e.CreateGame(ctx, 100, 4, 0)
	b, _ := e.CreateGame(ctx, 101, 4, 0)
	b.Status = models.GamePlaying

	open, err := e.ListOpenGames(ctx)
	if err != nil {
		t.Fatalf("ListOpenGames: %v", err)
	}
	if len(open) != 1 || open[0].ID != a.ID {
		t.Errorf("open games = %+v, want only game %d", open, a.ID)
	}
}

func TestJoinGame(t *testing.T) {
	l := newMemLedger()
	e := New(l)
	ctx := context.Background()

	g, err := e.CreateGame(ctx, 100, 4, 2000)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	first, err := e.JoinGame(ctx, g.ID, 100)
	if err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	second, err := e.JoinGame(ctx, g.ID, 101)
	if err != nil {
		t.Fatalf("JoinGame: %v", err)
	}

	if first.Participant.Token != models.TokenPalette[0] || second.Participant.Token != models.TokenPalette[1] {
		t.Errorf("tokens = %q/%q, want palette order", first.Participant.Token, second.Participant.Token)
	}
	if first.Participant.Cash != 2000 {
		t.Errorf("cash = %d, want the game's starting balance", first.Participant.Cash)
	}
	var joined bool
	for _, ev := range second.Events {
		if ev.Type == "player-joined" {
			joined = true
		}
	}
	if !joined {
		t.Error("expected a player-joined event")
	}
	if len(second.Snapshot.Players) != 2 {
		t.Errorf("snapshot players = %d, want 2", len(second.Snapshot.Players))
	}
}

func TestJoinGameFailures(t *testing.T) {
	l := newMemLedger()
	e := New(l)
	ctx := context.Background()

	g, _ := e.CreateGame(ctx, 100, 2, 0)
	if _, err := e.JoinGame(ctx, 999, 100); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unknown game: got %v, want ErrGameNotFound", err)
	}

	if _, err := e.JoinGame(ctx, g.ID, 100); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	if _, err := e.JoinGame(ctx, g.ID, 100); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("duplicate join: got %v, want ErrAlreadyJoined", err)
	}

	if _, err := e.JoinGame(ctx, g.ID, 101); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	if _, err := e.JoinGame(ctx, g.ID, 102); !errors.Is(err, ErrGameFull) {
		t.Errorf("full game: got %v, want ErrGameFull", err)
	}

	g.Status = models.GamePlaying
	if _, err := e.JoinGame(ctx, g.ID, 103); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("playing game: got %v, want ErrWrongPhase", err)
	}
}

func TestStartGame(t *testing.T) {
	l := newMemLedger()
	e := New(l)
	ctx := context.Background()

	g, _ := e.CreateGame(ctx, 100, 4, 0)
	first, _ := e.JoinGame(ctx, g.ID, 100)
	if _, err := e.JoinGame(ctx, g.ID, 101); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}

	res, err := e.StartGame(ctx, g.ID, 100)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	if g.Status != models.GamePlaying || g.TurnIndex != 0 {
		t.Errorf("game = status %q index %d, want playing at index 0", g.Status, g.TurnIndex)
	}
	if len(l.decks) != 2 {
		t.Errorf("decks = %d, want a chance and a community chest deck", len(l.decks))
	}
	if res.Snapshot.CurrentParticipantID != first.Participant.ID {
		t.Errorf("current = %d, want the first joiner %d", res.Snapshot.CurrentParticipantID, first.Participant.ID)
	}
	var turnChanged bool
	for _, ev := range res.Events {
		if ev.Type == "turn-changed" {
			turnChanged = true
		}
	}
	if !turnChanged {
		t.Error("expected a turn-changed event announcing the opening turn")
	}

	if _, err := e.StartGame(ctx, g.ID, 100); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("double start: got %v, want ErrWrongPhase", err)
	}
}

func TestStartGameFailures(t *testing.T) {
	l := newMemLedger()
	e := New(l)
	ctx := context.Background()

	g, _ := e.CreateGame(ctx, 100, 4, 0)
	if _, err := e.JoinGame(ctx, g.ID, 100); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}

	if _, err := e.StartGame(ctx, g.ID, 100); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("single player: got %v, want ErrNotEnoughPlayers", err)
	}

	if _, err := e.JoinGame(ctx, g.ID, 101); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	if _, err := e.StartGame(ctx, g.ID, 101); !errors.Is(err, ErrNotCreator) {
		t.Errorf("non-creator: got %v, want ErrNotCreator", err)
	}
}

func TestSnapshotWaitingGameHasNoCurrent(t *testing.T) {
	l := newMemLedger()
	e := New(l)
	ctx := context.Background()

	g, _ := e.CreateGame(ctx, 100, 4, 0)
	if _, err := e.JoinGame(ctx, g.ID, 100); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}

	snap, err := e.Snapshot(ctx, g.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.CurrentParticipantID != 0 || snap.CurrentUserID != 0 {
		t.Errorf("waiting snapshot carries a current participant: %+v", snap)
	}
}
