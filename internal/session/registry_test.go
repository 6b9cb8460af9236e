package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ashvale/arena/internal/game"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testCombatants() (game.Combatant, game.Combatant) {
	player := game.Combatant{Name: "Hero", MaxHP: 100, CurrentHP: 100}
	monster := game.Combatant{Name: "Goblin", MaxHP: 60, CurrentHP: 60}
	return player, monster
}

func TestCreateEnforcesOneActiveBattle(t *testing.T) {
	r := NewRegistry()
	player, monster := testCombatants()

	b, err := r.Create(1, player, monster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Turn != 1 || b.Status != game.StatusActive {
		t.Fatalf("new battles start active on turn 1, got turn=%d status=%s", b.Turn, b.Status)
	}

	if _, err := r.Create(1, player, monster); !errors.Is(err, ErrAlreadyInBattle) {
		t.Fatalf("expected ErrAlreadyInBattle, got %v", err)
	}

	// A different actor is unaffected.
	if _, err := r.Create(2, player, monster); err != nil {
		t.Fatalf("other actors may start battles: %v", err)
	}
}

func TestCreateReplacesLingeringCompletedBattle(t *testing.T) {
	r := NewRegistry()
	player, monster := testCombatants()

	b, _ := r.Create(1, player, monster)
	b.Status = game.StatusCompleted

	b2, err := r.Create(1, player, monster)
	if err != nil {
		t.Fatalf("a completed battle must not block a new one: %v", err)
	}
	if _, ok := r.Get(b.BattleID); ok {
		t.Fatalf("the lingering completed session should be replaced")
	}
	if got, ok := r.ForActor(1); !ok || got.BattleID != b2.BattleID {
		t.Fatalf("actor index should point at the new battle")
	}
}

func TestBattleIdentityIsStable(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	player, monster := testCombatants()

	a := NewRegistry()
	a.now = fixedClock(now)
	b := NewRegistry()
	b.now = fixedClock(now)

	ba, _ := a.Create(7, player, monster)
	bb, _ := b.Create(7, player, monster)

	if ba.BattleID != bb.BattleID {
		t.Fatalf("battle id derives from actor and time: %s vs %s", ba.BattleID, bb.BattleID)
	}
	if ba.Seed != bb.Seed {
		t.Fatalf("seed derives from battle identity: %d vs %d", ba.Seed, bb.Seed)
	}
}

func TestSweepCollectsOnlyExpiredCompleted(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry()
	r.now = fixedClock(now)
	player, monster := testCombatants()

	old, _ := r.Create(1, player, monster)
	old.Status = game.StatusCompleted
	old.EndTime = now.Add(-time.Hour)

	fresh, _ := r.Create(2, player, monster)
	fresh.Status = game.StatusCompleted
	fresh.EndTime = now.Add(-time.Minute)

	active, _ := r.Create(3, player, monster)

	if removed := r.Sweep(10 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 swept session, got %d", removed)
	}
	if _, ok := r.Get(old.BattleID); ok {
		t.Fatalf("expired completed session should be gone")
	}
	if _, ok := r.Get(fresh.BattleID); !ok {
		t.Fatalf("recently completed session stays")
	}
	if _, ok := r.Get(active.BattleID); !ok {
		t.Fatalf("active sessions are never swept")
	}
	if _, ok := r.ForActor(1); ok {
		t.Fatalf("sweep must clear the actor index too")
	}
}

func TestRemoveClearsActorIndex(t *testing.T) {
	r := NewRegistry()
	player, monster := testCombatants()

	b, _ := r.Create(1, player, monster)
	r.Remove(b.BattleID)

	if _, ok := r.Get(b.BattleID); ok {
		t.Fatalf("removed session should be gone")
	}
	if _, ok := r.ForActor(1); ok {
		t.Fatalf("actor index entry should be gone")
	}
	if r.Len() != 0 {
		t.Fatalf("registry should be empty, got %d", r.Len())
	}
}

func TestConcurrentCreatesAdmitExactlyOne(t *testing.T) {
	r := NewRegistry()
	player, monster := testCombatants()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.Create(99, player, monster)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else if !errors.Is(err, ErrAlreadyInBattle) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Fatalf("exactly one concurrent create may win, got %d", created)
	}
}
