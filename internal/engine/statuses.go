package engine

import (
	"fmt"

	"github.com/ashvale/arena/internal/game"
)

// ApplyStatus attaches an effect to the target. If an instance of the same
// effect id is already active the duration refreshes to the larger of the
// two values; statuses never stack. Returns true when an existing instance
// was refreshed.
func ApplyStatus(target *game.Combatant, effectID string, duration int, appliedBy string) bool {
	for i := range target.Statuses {
		if target.Statuses[i].EffectID == effectID {
			if duration > target.Statuses[i].Remaining {
				target.Statuses[i].Remaining = duration
			}
			return true
		}
	}
	target.Statuses = append(target.Statuses, game.StatusInstance{
		EffectID:  effectID,
		Remaining: duration,
		AppliedBy: appliedBy,
	})
	return false
}

// StatusTarget picks which side an effect lands on: buffs always target the
// caster, debuffs always the opponent.
func StatusTarget(def game.StatusEffect, caster, opponent *game.Combatant) *game.Combatant {
	if def.Class == game.ClassBuff {
		return caster
	}
	return opponent
}

// TickStatuses runs one status tick for both sides, player first. Per side:
// accumulate DoT and HoT from active effects, decrement durations and drop
// expired instances (logging each), then apply the accumulated damage to
// shield first and the remainder to HP, and the accumulated healing to HP.
// One log line per nonzero total, not per status.
func TickStatuses(b *game.BattleSession, reg *game.EffectRegistry) {
	tickSide(b, &b.Player, reg)
	tickSide(b, &b.Monster, reg)
}

func tickSide(b *game.BattleSession, c *game.Combatant, reg *game.EffectRegistry) {
	totalDoT := 0
	totalHoT := 0
	kept := c.Statuses[:0]

	for i := range c.Statuses {
		st := c.Statuses[i]
		def, known := reg.Get(st.EffectID)
		if known {
			totalDoT += def.DoT
			totalHoT += def.HoT
		}
		st.Remaining--
		if st.Remaining > 0 {
			kept = append(kept, st)
			continue
		}
		name := st.EffectID
		if known {
			name = def.Name
		}
		b.Logf(fmt.Sprintf("%s wore off %s", name, c.Name))
	}
	c.Statuses = kept

	if totalDoT > 0 {
		remaining := totalDoT
		if c.Shield > 0 {
			absorbed := remaining
			if c.Shield < absorbed {
				absorbed = c.Shield
			}
			c.Shield -= absorbed
			remaining -= absorbed
		}
		if remaining > 0 {
			c.CurrentHP -= remaining
			if c.CurrentHP < 0 {
				c.CurrentHP = 0
			}
			b.Logf(fmt.Sprintf("%s takes %d damage from status effects", c.Name, remaining))
		}
	}

	if totalHoT > 0 {
		before := c.CurrentHP
		c.CurrentHP += totalHoT
		if c.CurrentHP > c.MaxHP {
			c.CurrentHP = c.MaxHP
		}
		if healed := c.CurrentHP - before; healed > 0 {
			b.Logf(fmt.Sprintf("%s heals %d HP from regeneration", c.Name, healed))
		}
	}
}

// TickCooldowns decrements every positive skill cooldown by one turn.
func TickCooldowns(c *game.Combatant) {
	for id, left := range c.Cooldowns {
		if left > 0 {
			c.Cooldowns[id] = left - 1
		}
	}
}

// Stunned reports whether any active status flags the combatant as unable
// to act.
func Stunned(c *game.Combatant, reg *game.EffectRegistry) bool {
	for i := range c.Statuses {
		if def, ok := reg.Get(c.Statuses[i].EffectID); ok && def.Stuns {
			return true
		}
	}
	return false
}
