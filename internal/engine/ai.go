package engine

import (
	"context"
	"fmt"

	"github.com/ashvale/arena/internal/game"
)

// AttackStyle is the monster AI's chosen stance for its attack.
type AttackStyle string

const (
	StyleNormal     AttackStyle = "normal"
	StyleAggressive AttackStyle = "aggressive"
	StyleDefensive  AttackStyle = "defensive"
	StyleDesperate  AttackStyle = "desperate"
)

// DelayHook is an optional presentation pause invoked between the AI's
// decision and its application. All combat rolls are drawn before the hook
// runs, so cancelling or skipping the delay never changes the outcome.
type DelayHook func(ctx context.Context, line string)

// ChooseAttackStyle picks a stance from battle-state heuristics. Rules are
// evaluated in strict priority order; each matching rule draws once and
// either returns its style or falls through to the next.
func ChooseAttackStyle(monster, player *game.Combatant, reg *game.EffectRegistry, rng Rand) AttackStyle {
	monsterHP := monster.HPPercent()
	playerHP := player.HPPercent()

	if monsterHP < 20 {
		if rng.Float64() < 0.7 {
			return StyleDesperate
		}
	}
	if playerHP < 30 {
		if rng.Float64() < 0.6 {
			return StyleAggressive
		}
	}
	if monsterHP < 50 && monsterHP > 20 {
		if rng.Float64() < 0.4 {
			return StyleDefensive
		}
	}
	if hasDamageOverTime(monster, reg) {
		if rng.Float64() < 0.5 {
			return StyleAggressive
		}
	}

	roll := rng.Float64()
	switch {
	case roll < 0.15:
		return StyleAggressive
	case roll < 0.25:
		return StyleDefensive
	default:
		return StyleNormal
	}
}

func hasDamageOverTime(c *game.Combatant, reg *game.EffectRegistry) bool {
	for i := range c.Statuses {
		if def, ok := reg.Get(c.Statuses[i].EffectID); ok && def.DoT > 0 {
			return true
		}
	}
	return false
}

// styleModifiers returns the attack power and the accuracy multiplier for a
// stance, plus its narration line (empty for a normal attack).
func styleModifiers(style AttackStyle, name string) (power float64, accMult float64, line string) {
	switch style {
	case StyleAggressive:
		return 130.0, 0.8, fmt.Sprintf("%s attacks aggressively!", name)
	case StyleDefensive:
		return 70.0, 1.2, fmt.Sprintf("%s attacks carefully!", name)
	case StyleDesperate:
		return 150.0, 0.6, fmt.Sprintf("%s attacks desperately!", name)
	default:
		return 100.0, 1.0, ""
	}
}

// ThinkingLine produces a flavor line for the monster's decision phase,
// keyed to HP bands and the turn number. It draws from its own RNG stream
// (OffsetFlavor) so presentation never consumes combat rolls.
func ThinkingLine(monster, player *game.Combatant, turn int, rng Rand) string {
	var pool []string
	name := monster.Name

	switch {
	case monster.HPPercent() < 25:
		pool = []string{
			fmt.Sprintf("%s looks desperate...", name),
			fmt.Sprintf("%s snarls with rage!", name),
			fmt.Sprintf("%s prepares a desperate attack...", name),
		}
	case monster.HPPercent() < 50:
		pool = []string{
			fmt.Sprintf("%s assesses the situation...", name),
			fmt.Sprintf("%s plans its next move...", name),
			fmt.Sprintf("%s studies your stance...", name),
		}
	default:
		pool = []string{
			fmt.Sprintf("%s eyes you confidently...", name),
			fmt.Sprintf("%s prepares to strike...", name),
			fmt.Sprintf("%s looks for an opening...", name),
		}
	}

	if player.HPPercent() < 30 {
		pool = append(pool,
			fmt.Sprintf("%s senses your weakness...", name),
			fmt.Sprintf("%s moves in for the kill...", name),
		)
	}
	if turn == 1 {
		pool = append(pool,
			fmt.Sprintf("%s sizes you up...", name),
			fmt.Sprintf("%s enters combat stance...", name),
		)
	} else if turn > 8 {
		pool = append(pool,
			fmt.Sprintf("%s is getting tired...", name),
			fmt.Sprintf("%s pushes through fatigue...", name),
		)
	}

	return pool[rng.Intn(len(pool))]
}
