package engine

import (
	"testing"

	"github.com/ashvale/arena/internal/game"
)

func TestChooseAttackStyleDesperateAtLowHP(t *testing.T) {
	monster := &game.Combatant{MaxHP: 100, CurrentHP: 10}
	player := &game.Combatant{MaxHP: 100, CurrentHP: 100}

	style := ChooseAttackStyle(monster, player, testRegistry(), &scriptRand{floats: []float64{0.5}})
	if style != StyleDesperate {
		t.Fatalf("low HP monster with roll below 0.7 goes desperate, got %s", style)
	}
}

func TestChooseAttackStyleRulesFallThrough(t *testing.T) {
	monster := &game.Combatant{MaxHP: 100, CurrentHP: 10}
	player := &game.Combatant{MaxHP: 100, CurrentHP: 100}

	// Desperate rule draws 0.9 and fails; no other rule matches (10% HP is
	// outside the 20-50 band); the final mix draw 0.5 lands on normal.
	rng := &scriptRand{floats: []float64{0.9, 0.5}}
	style := ChooseAttackStyle(monster, player, testRegistry(), rng)
	if style != StyleNormal {
		t.Fatalf("expected fall-through to normal, got %s", style)
	}
	if rng.drawn() != 2 {
		t.Fatalf("expected exactly 2 draws, got %d", rng.drawn())
	}
}

func TestChooseAttackStyleAgainstWeakPlayer(t *testing.T) {
	monster := &game.Combatant{MaxHP: 100, CurrentHP: 100}
	player := &game.Combatant{MaxHP: 100, CurrentHP: 20}

	style := ChooseAttackStyle(monster, player, testRegistry(), &scriptRand{floats: []float64{0.5}})
	if style != StyleAggressive {
		t.Fatalf("weak player with roll below 0.6 draws aggression, got %s", style)
	}
}

func TestChooseAttackStyleDoTPressure(t *testing.T) {
	monster := &game.Combatant{MaxHP: 100, CurrentHP: 90,
		Statuses: []game.StatusInstance{{EffectID: "burn", Remaining: 2}}}
	player := &game.Combatant{MaxHP: 100, CurrentHP: 100}

	style := ChooseAttackStyle(monster, player, testRegistry(), &scriptRand{floats: []float64{0.4}})
	if style != StyleAggressive {
		t.Fatalf("a burning monster with roll below 0.5 turns aggressive, got %s", style)
	}
}

func TestChooseAttackStyleDefaultMix(t *testing.T) {
	monster := &game.Combatant{MaxHP: 100, CurrentHP: 100}
	player := &game.Combatant{MaxHP: 100, CurrentHP: 100}
	reg := testRegistry()

	cases := []struct {
		roll float64
		want AttackStyle
	}{
		{0.10, StyleAggressive},
		{0.20, StyleDefensive},
		{0.90, StyleNormal},
	}
	for _, tc := range cases {
		if got := ChooseAttackStyle(monster, player, reg, &scriptRand{floats: []float64{tc.roll}}); got != tc.want {
			t.Fatalf("roll %v: expected %s, got %s", tc.roll, tc.want, got)
		}
	}
}

func TestStyleModifiers(t *testing.T) {
	cases := []struct {
		style   AttackStyle
		power   float64
		accMult float64
	}{
		{StyleAggressive, 130, 0.8},
		{StyleDefensive, 70, 1.2},
		{StyleDesperate, 150, 0.6},
		{StyleNormal, 100, 1.0},
	}
	for _, tc := range cases {
		power, accMult, _ := styleModifiers(tc.style, "Goblin")
		if power != tc.power || accMult != tc.accMult {
			t.Fatalf("%s: expected (%v, %v), got (%v, %v)", tc.style, tc.power, tc.accMult, power, accMult)
		}
	}
}

func TestThinkingLineIsDeterministic(t *testing.T) {
	monster := &game.Combatant{Name: "Goblin", MaxHP: 100, CurrentHP: 100}
	player := &game.Combatant{Name: "Hero", MaxHP: 100, CurrentHP: 100}

	a := ThinkingLine(monster, player, 3, &scriptRand{ints: []int{1}})
	b := ThinkingLine(monster, player, 3, &scriptRand{ints: []int{1}})
	if a != b {
		t.Fatalf("same draw must produce the same line: %q vs %q", a, b)
	}
	if a == "" {
		t.Fatalf("thinking line must not be empty")
	}
}
