package engine

import (
	"fmt"

	"github.com/ashvale/arena/internal/game"
)

// EffectiveStats is a combatant's stat block for the current turn, after
// folding active statuses onto the base values. Applied holds
// human-readable deltas for narration only; it never feeds back into math.
type EffectiveStats struct {
	Attack   int
	Defense  int
	Speed    int
	Accuracy int
	Evasion  int

	Applied []string
}

// StatsWithModifiers derives effective combat stats from base values plus
// the combatant's active statuses. Statuses fold in application order, and
// each status's modifiers fold in declaration order; the accumulation is
// sequential, so ordering matters. Folded stats clamp at zero.
func StatsWithModifiers(c *game.Combatant, reg *game.EffectRegistry) EffectiveStats {
	stats := map[string]int{
		game.StatAttack:   c.Attack,
		game.StatDefense:  c.Defense,
		game.StatSpeed:    c.Speed,
		game.StatAccuracy: c.Accuracy,
		game.StatEvasion:  c.Evasion,
	}
	original := map[string]int{}
	for k, v := range stats {
		original[k] = v
	}

	for i := range c.Statuses {
		def, ok := reg.Get(c.Statuses[i].EffectID)
		if !ok {
			continue
		}
		for _, sm := range def.Mods {
			cur, known := stats[sm.Stat]
			if !known {
				continue
			}
			stats[sm.Stat] = applyModifier(cur, sm.Mod)
		}
	}

	es := EffectiveStats{
		Attack:   clampStat(stats[game.StatAttack]),
		Defense:  clampStat(stats[game.StatDefense]),
		Speed:    clampStat(stats[game.StatSpeed]),
		Accuracy: clampStat(stats[game.StatAccuracy]),
		Evasion:  clampStat(stats[game.StatEvasion]),
	}

	// Deterministic order for the cosmetic delta list.
	for _, name := range []string{game.StatAttack, game.StatDefense, game.StatSpeed, game.StatAccuracy, game.StatEvasion} {
		folded := clampStat(stats[name])
		if diff := folded - original[name]; diff != 0 {
			es.Applied = append(es.Applied, fmt.Sprintf("%+d %s", diff, name))
		}
	}
	return es
}

func applyModifier(stat int, m game.Modifier) int {
	switch m.Kind {
	case game.ModifierPercent:
		return int(float64(stat) * (1 + m.Value))
	default:
		return stat + int(m.Value)
	}
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
