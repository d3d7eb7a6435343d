package usecase

import (
	"errors"
	"math"
	"testing"

	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
	"github.com/riskibarqy/futsal-ledger/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
)

func newRosterFixture(seed []player.Player) (*RosterService, *memory.Store) {
	store := memory.NewStore(seed)
	return NewRosterService(memory.NewPlayerRepository(store), logging.NewNop()), store
}

func TestRosterService_AddPlayer(t *testing.T) {
	svc, _ := newRosterFixture(nil)
	admin := adminCapability(t)

	created, err := svc.AddPlayer(t.Context(), admin, "  Ali  ")
	if err != nil {
		t.Fatalf("add player: %v", err)
	}
	if created.Name != "Ali" || created.Debt != 0 || created.ID <= 0 {
		t.Fatalf("unexpected player: %+v", created)
	}

	if _, err := svc.AddPlayer(t.Context(), admin, "Ali"); err != nil {
		t.Fatalf("duplicate names are allowed: %v", err)
	}

	players, err := svc.ListPlayers(t.Context())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("unexpected player count: %d", len(players))
	}
}

func TestRosterService_AddPlayer_RejectsBlankName(t *testing.T) {
	svc, _ := newRosterFixture(nil)

	_, err := svc.AddPlayer(t.Context(), adminCapability(t), "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_RequiresAdmin(t *testing.T) {
	svc, _ := newRosterFixture(memory.SeedPlayers())
	var anonymous auth.Capability

	if _, err := svc.AddPlayer(t.Context(), anonymous, "Ali"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("add: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.DeletePlayer(t.Context(), anonymous, 1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("delete: expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := svc.ReduceDebt(t.Context(), anonymous, 1, 10); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("pay: expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := svc.IncreaseDebt(t.Context(), anonymous, 1, 10); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("add debt: expected ErrUnauthorized, got %v", err)
	}
}

func TestRosterService_ReduceDebt(t *testing.T) {
	svc, _ := newRosterFixture([]player.Player{{ID: 1, Name: "Ali", Debt: 500}})
	admin := adminCapability(t)

	updated, ok, err := svc.ReduceDebt(t.Context(), admin, 1, 800)
	if err != nil || !ok {
		t.Fatalf("reduce debt: ok=%v err=%v", ok, err)
	}
	if updated.Debt != 0 {
		t.Fatalf("expected debt clamped to 0, got %d", updated.Debt)
	}

	if _, _, err := svc.ReduceDebt(t.Context(), admin, 1, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative payment, got %v", err)
	}

	_, ok, err = svc.ReduceDebt(t.Context(), admin, 77, 100)
	if err != nil || ok {
		t.Fatalf("missing player must be a silent no-op: ok=%v err=%v", ok, err)
	}
}

func TestRosterService_IncreaseDebt_NonPositiveIsNoop(t *testing.T) {
	svc, _ := newRosterFixture([]player.Player{{ID: 1, Name: "Ali", Debt: 3000}})
	admin := adminCapability(t)

	for _, amount := range []int64{0, -5} {
		got, ok, err := svc.IncreaseDebt(t.Context(), admin, 1, amount)
		if err != nil || !ok {
			t.Fatalf("increase by %d: ok=%v err=%v", amount, ok, err)
		}
		if got.Debt != 3000 {
			t.Fatalf("increase by %d changed debt to %d", amount, got.Debt)
		}
	}

	got, _, err := svc.IncreaseDebt(t.Context(), admin, 1, 2000)
	if err != nil {
		t.Fatalf("increase: %v", err)
	}
	if got.Debt != 5000 {
		t.Fatalf("expected debt 5000, got %d", got.Debt)
	}
}

func TestRosterService_IncreaseDebt_OverflowIsInvalidInput(t *testing.T) {
	svc, _ := newRosterFixture([]player.Player{{ID: 1, Name: "Ali", Debt: 8000}})

	_, _, err := svc.IncreaseDebt(t.Context(), adminCapability(t), 1, math.MaxInt64)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, player.ErrDebtOverflow) {
		t.Fatalf("expected overflow as invalid input, got %v", err)
	}

	players, err := svc.ListPlayers(t.Context())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 1 || players[0].Debt != 8000 {
		t.Fatalf("debt changed by refused increase: %+v", players)
	}
}

func TestRosterService_DeletePlayer_MissingIsNoop(t *testing.T) {
	svc, _ := newRosterFixture(memory.SeedPlayers())
	admin := adminCapability(t)

	if err := svc.DeletePlayer(t.Context(), admin, 404); err != nil {
		t.Fatalf("delete missing player: %v", err)
	}
	if err := svc.DeletePlayer(t.Context(), admin, 1); err != nil {
		t.Fatalf("delete player: %v", err)
	}

	players, _ := svc.ListPlayers(t.Context())
	for _, p := range players {
		if p.ID == 1 {
			t.Fatalf("player 1 still listed after delete")
		}
	}

	if err := svc.DeletePlayer(t.Context(), admin, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero id, got %v", err)
	}
}
