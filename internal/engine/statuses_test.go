package engine

import (
	"testing"

	"github.com/ashvale/arena/internal/game"
)

func testRegistry() *game.EffectRegistry {
	return game.NewEffectRegistry([]game.StatusEffect{
		{ID: "burn", Name: "Burn", Class: game.ClassDebuff, DoT: 8},
		{ID: "poison", Name: "Poison", Class: game.ClassDebuff, DoT: 6},
		{ID: "regeneration", Name: "Regeneration", Class: game.ClassBuff, HoT: 12},
		{ID: "shock", Name: "Shock", Class: game.ClassDebuff, Stuns: true},
		{ID: "blessing", Name: "Blessing", Class: game.ClassBuff, Mods: []game.StatMod{
			{Stat: game.StatAttack, Mod: game.Modifier{Kind: game.ModifierPercent, Value: 0.15}},
			{Stat: game.StatAccuracy, Mod: game.Modifier{Kind: game.ModifierFlat, Value: 10}},
		}},
	})
}

func TestApplyStatusRefreshesInsteadOfStacking(t *testing.T) {
	c := &game.Combatant{Name: "Hero"}

	if refreshed := ApplyStatus(c, "burn", 3, "Fireball"); refreshed {
		t.Fatalf("first application is not a refresh")
	}
	if refreshed := ApplyStatus(c, "burn", 2, "Fireball"); !refreshed {
		t.Fatalf("second application must refresh")
	}
	if len(c.Statuses) != 1 {
		t.Fatalf("statuses never stack, got %d instances", len(c.Statuses))
	}
	if c.Statuses[0].Remaining != 3 {
		t.Fatalf("refresh keeps the larger duration, got %d", c.Statuses[0].Remaining)
	}

	ApplyStatus(c, "burn", 5, "Fireball")
	if c.Statuses[0].Remaining != 5 {
		t.Fatalf("refresh extends to the larger duration, got %d", c.Statuses[0].Remaining)
	}
}

func TestStatusTargetByClass(t *testing.T) {
	reg := testRegistry()
	caster := &game.Combatant{Name: "Caster"}
	opponent := &game.Combatant{Name: "Opponent"}

	buff, _ := reg.Get("regeneration")
	if StatusTarget(buff, caster, opponent) != caster {
		t.Fatalf("buffs land on the caster")
	}
	debuff, _ := reg.Get("burn")
	if StatusTarget(debuff, caster, opponent) != opponent {
		t.Fatalf("debuffs land on the opponent")
	}
}

func TestTickStatusesDamageGoesThroughShieldFirst(t *testing.T) {
	b := &game.BattleSession{
		Player: game.Combatant{Name: "Hero", MaxHP: 100, CurrentHP: 20, Shield: 5,
			Statuses: []game.StatusInstance{{EffectID: "burn", Remaining: 3}}},
		Monster: game.Combatant{Name: "Goblin", MaxHP: 60, CurrentHP: 60},
	}

	TickStatuses(b, testRegistry())

	if b.Player.Shield != 0 {
		t.Fatalf("shield should absorb first, got %d left", b.Player.Shield)
	}
	if b.Player.CurrentHP != 17 {
		t.Fatalf("expected 20 - (8-5) = 17 HP, got %d", b.Player.CurrentHP)
	}
	if b.Player.Statuses[0].Remaining != 2 {
		t.Fatalf("duration should decrement to 2, got %d", b.Player.Statuses[0].Remaining)
	}
}

func TestTickStatusesAccumulatesAndClampsAtZero(t *testing.T) {
	b := &game.BattleSession{
		Player: game.Combatant{Name: "Hero", MaxHP: 100, CurrentHP: 10,
			Statuses: []game.StatusInstance{
				{EffectID: "burn", Remaining: 2},
				{EffectID: "poison", Remaining: 2},
			}},
		Monster: game.Combatant{Name: "Goblin", MaxHP: 60, CurrentHP: 60},
	}

	TickStatuses(b, testRegistry())

	if b.Player.CurrentHP != 0 {
		t.Fatalf("14 damage against 10 HP clamps at 0, got %d", b.Player.CurrentHP)
	}
}

func TestTickStatusesHealingClampsAtMax(t *testing.T) {
	b := &game.BattleSession{
		Player: game.Combatant{Name: "Hero", MaxHP: 100, CurrentHP: 95,
			Statuses: []game.StatusInstance{{EffectID: "regeneration", Remaining: 2}}},
		Monster: game.Combatant{Name: "Goblin", MaxHP: 60, CurrentHP: 60},
	}

	TickStatuses(b, testRegistry())

	if b.Player.CurrentHP != 100 {
		t.Fatalf("healing clamps at max HP, got %d", b.Player.CurrentHP)
	}
}

func TestTickStatusesExpiry(t *testing.T) {
	b := &game.BattleSession{
		Player: game.Combatant{Name: "Hero", MaxHP: 100, CurrentHP: 50,
			Statuses: []game.StatusInstance{{EffectID: "burn", Remaining: 1}}},
		Monster: game.Combatant{Name: "Goblin", MaxHP: 60, CurrentHP: 60},
	}

	TickStatuses(b, testRegistry())

	if len(b.Player.Statuses) != 0 {
		t.Fatalf("expired statuses must be removed")
	}
	// The final tick still deals its damage.
	if b.Player.CurrentHP != 42 {
		t.Fatalf("expected 50-8=42 HP on the final tick, got %d", b.Player.CurrentHP)
	}
}

func TestTickCooldowns(t *testing.T) {
	c := &game.Combatant{Cooldowns: map[string]int{"fireball": 2, "war_cry": 0}}
	TickCooldowns(c)
	if c.Cooldowns["fireball"] != 1 {
		t.Fatalf("cooldown should decrement, got %d", c.Cooldowns["fireball"])
	}
	if c.Cooldowns["war_cry"] != 0 {
		t.Fatalf("cooldowns never go negative, got %d", c.Cooldowns["war_cry"])
	}
}

func TestStunned(t *testing.T) {
	reg := testRegistry()
	c := &game.Combatant{Statuses: []game.StatusInstance{{EffectID: "burn", Remaining: 2}}}
	if Stunned(c, reg) {
		t.Fatalf("burn does not stun")
	}
	c.Statuses = append(c.Statuses, game.StatusInstance{EffectID: "shock", Remaining: 1})
	if !Stunned(c, reg) {
		t.Fatalf("shock stuns")
	}
}
