package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ashvale/arena/internal/game"
)

const (
	basicAttackPower = 100.0

	attackSPRegen = 20
	defendSPRegen = 15

	// UltimateSPCost is the full SP pool; ultimates consume all of it.
	UltimateSPCost = 100

	ultimatePowerMultiplier = 3
	ultimateCritMultiplier  = 1.5

	skillCritMultiplier = 2
	skillMagicIntBonus  = 0.1
	defaultEffectTurns  = 3

	defendShieldFactor = 0.6
	defendShieldFloor  = 5
)

// absorb routes incoming damage through the shield pool first and returns
// (absorbed, remainder). Damage never double-subtracts: shield loss plus HP
// loss always equals the raw amount.
func absorb(c *game.Combatant, damage int) (int, int) {
	if c.Shield <= 0 || damage <= 0 {
		return 0, damage
	}
	absorbed := damage
	if c.Shield < absorbed {
		absorbed = c.Shield
	}
	c.Shield -= absorbed
	return absorbed, damage - absorbed
}

func damageHP(c *game.Combatant, damage int) {
	c.CurrentHP -= damage
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

func regenSP(c *game.Combatant, amount int) {
	c.CurrentSP += amount
	if c.CurrentSP > c.MaxSP {
		c.CurrentSP = c.MaxSP
	}
}

// PlayerAttack resolves the player's basic attack against the monster using
// status-modified stats. Returns true when the monster drops to 0 HP.
//
// Roll order is fixed: hit, then damage variance, then crit. Changing it
// would break replay compatibility for recorded seeds.
func PlayerAttack(b *game.BattleSession, reg *game.EffectRegistry, rng Rand) bool {
	playerStats := StatsWithModifiers(&b.Player, reg)
	monsterStats := StatsWithModifiers(&b.Monster, reg)

	kind, mult, pHit := HitRoll(rng, playerStats.Accuracy, monsterStats.Evasion)
	bits := []string{fmt.Sprintf("%s p=%.2f", strings.ToUpper(string(kind)), pHit)}
	damage := 0
	crit := false
	if kind != HitMiss {
		base := PhysicalDamage(rng, basicAttackPower, playerStats.Attack, monsterStats.Defense, b.Player.Penetration)
		crit = CritRoll(rng, b.Player.CritBase, b.Player.Luck)
		if crit {
			base = int(math.Round(float64(base) * b.Player.CritDamage))
		}
		damage = int(math.Round(float64(base) * mult))
	}

	if absorbed, rest := absorb(&b.Monster, damage); absorbed > 0 {
		bits = append(bits, fmt.Sprintf("%d absorbed", absorbed))
		damage = rest
	}
	if damage > 0 {
		damageHP(&b.Monster, damage)
	}
	regenSP(&b.Player, attackSPRegen)

	line := fmt.Sprintf("%s -> %s: %d damage", b.Player.Name, b.Monster.Name, damage)
	if crit {
		line += " (CRIT)"
	}
	b.Logf(line + " [" + strings.Join(bits, "; ") + "]")

	return b.Monster.CurrentHP <= 0
}

// Defend grants the player a shield proportional to defense plus a fixed SP
// regen. The monster still acts afterwards.
func Defend(b *game.BattleSession) int {
	gain := int(math.Floor(float64(b.Player.Defense) * defendShieldFactor))
	if gain < defendShieldFloor {
		gain = defendShieldFloor
	}
	b.Player.Shield += gain
	regenSP(&b.Player, defendSPRegen)
	b.Logf(fmt.Sprintf("%s defends: +%d shield, +%d SP", b.Player.Name, gain, defendSPRegen))
	return gain
}

// SkillResult reports how a skill resolved.
type SkillResult struct {
	Missed  bool
	Crit    bool
	Damage  int
	Applied []string
	Killed  bool
}

// UseSkill resolves an already-validated skill: SP is consumed
// unconditionally, the cooldown starts, and a d100 accuracy check decides
// whether the skill lands. A miss is a combat outcome, not a failure; the
// turn still ends. Magic skills gain +0.1 multiplier per point of
// intelligence. Configured status effects land on hit only: buffs on the
// player, debuffs on the monster.
func UseSkill(b *game.BattleSession, reg *game.EffectRegistry, rng Rand, skill game.SkillDefinition) SkillResult {
	b.Player.CurrentSP -= skill.SPCost
	if b.Player.Cooldowns == nil {
		b.Player.Cooldowns = make(map[string]int)
	}
	b.Player.Cooldowns[skill.ID] = skill.Cooldown

	multiplier := skill.Multiplier
	if skill.Type == game.SkillMagic {
		multiplier += float64(b.Player.Intelligence) * skillMagicIntBonus
	}
	damage := int(float64(skill.Power) * multiplier)

	if rng.Intn(100)+1 > b.Player.Accuracy {
		b.Logf(fmt.Sprintf("%s uses %s... it misses!", b.Player.Name, skill.Name))
		return SkillResult{Missed: true}
	}

	crit := rng.Intn(100)+1 <= int(float64(b.Player.Luck)*0.5)
	if crit {
		damage *= skillCritMultiplier
	}

	if absorbed, rest := absorb(&b.Monster, damage); absorbed > 0 {
		b.Logf(fmt.Sprintf("%s's shield absorbs %d", b.Monster.Name, absorbed))
		damage = rest
	}
	damageHP(&b.Monster, damage)

	line := fmt.Sprintf("%s uses %s for %d damage!", b.Player.Name, skill.Name, damage)
	if crit {
		line = "Critical hit! " + line
	}
	b.Logf(line)

	res := SkillResult{Crit: crit, Damage: damage}
	duration := skill.EffectDuration
	if duration <= 0 {
		duration = defaultEffectTurns
	}
	for _, effectID := range skill.Effects {
		def, ok := reg.Get(effectID)
		if !ok {
			continue
		}
		target := StatusTarget(def, &b.Player, &b.Monster)
		ApplyStatus(target, effectID, duration, skill.Name)
		b.Logf(fmt.Sprintf("%s is affected by %s!", target.Name, def.Name))
		res.Applied = append(res.Applied, effectID)
	}

	res.Killed = b.Monster.CurrentHP <= 0
	return res
}

// UltimateResult reports how an ultimate resolved.
type UltimateResult struct {
	Crit   bool
	Damage int
	Killed bool
}

// Ultimate consumes the full SP pool unconditionally and deals 3x attack,
// with a luck-derived crit chance (luck/100) for a 1.5x multiplier.
func Ultimate(b *game.BattleSession, rng Rand, ult game.UltimateDefinition) UltimateResult {
	b.Player.CurrentSP = 0

	damage := b.Player.Attack * ultimatePowerMultiplier
	crit := rng.Float64() < float64(b.Player.Luck)/100.0
	if crit {
		damage = int(float64(damage) * ultimateCritMultiplier)
	}

	if absorbed, rest := absorb(&b.Monster, damage); absorbed > 0 {
		b.Logf(fmt.Sprintf("%s's shield absorbs %d", b.Monster.Name, absorbed))
		damage = rest
	}
	damageHP(&b.Monster, damage)

	line := fmt.Sprintf("%s unleashes %s! %d damage!", b.Player.Name, ult.Name, damage)
	if crit {
		line = "CRITICAL! " + line
	}
	b.Logf(line)

	return UltimateResult{Crit: crit, Damage: damage, Killed: b.Monster.CurrentHP <= 0}
}

// ApplyItemEffects folds a consumed item's effects onto the player
// snapshot: healing and SP clamp to the maxima, shield and stat boosts add
// flat.
func ApplyItemEffects(b *game.BattleSession, eff game.ItemEffects) {
	p := &b.Player
	if eff.HealHP > 0 {
		before := p.CurrentHP
		p.CurrentHP += eff.HealHP
		if p.CurrentHP > p.MaxHP {
			p.CurrentHP = p.MaxHP
		}
		b.Logf(fmt.Sprintf("%s uses %s and heals %d HP", p.Name, eff.ItemName, p.CurrentHP-before))
	}
	if eff.RestoreSP > 0 {
		before := p.CurrentSP
		regenSP(p, eff.RestoreSP)
		b.Logf(fmt.Sprintf("Restored %d SP", p.CurrentSP-before))
	}
	if eff.Shield > 0 {
		p.Shield += eff.Shield
		b.Logf(fmt.Sprintf("Gained %d shield", eff.Shield))
	}
	for _, boost := range eff.Boosts {
		if applyBoost(p, boost) {
			b.Logf(fmt.Sprintf("%s increased by %d", boost.Stat, boost.Amount))
		}
	}
}

func applyBoost(c *game.Combatant, boost game.StatBoost) bool {
	switch boost.Stat {
	case game.StatAttack:
		c.Attack += boost.Amount
	case game.StatDefense:
		c.Defense += boost.Amount
	case game.StatSpeed:
		c.Speed += boost.Amount
	case game.StatAccuracy:
		c.Accuracy += boost.Amount
	case game.StatEvasion:
		c.Evasion += boost.Amount
	case "intelligence":
		c.Intelligence += boost.Amount
	case "luck":
		c.Luck += boost.Amount
	case "agility":
		c.Agility += boost.Amount
	default:
		return false
	}
	return true
}

// MonsterAttack resolves the monster's action. A stunned monster skips the
// action entirely without consuming any combat draw. Every roll (style,
// hit, damage, crit) is made before the delay hook runs, so the hook is
// purely presentational. Returns true when the player drops to 0 HP.
func MonsterAttack(ctx context.Context, b *game.BattleSession, reg *game.EffectRegistry, rng, flavor Rand, hook DelayHook) bool {
	if Stunned(&b.Monster, reg) {
		b.Logf(fmt.Sprintf("%s is stunned and cannot act!", b.Monster.Name))
		return false
	}

	playerStats := StatsWithModifiers(&b.Player, reg)
	monsterStats := StatsWithModifiers(&b.Monster, reg)

	style := ChooseAttackStyle(&b.Monster, &b.Player, reg, rng)
	power, accMult, styleLine := styleModifiers(style, b.Monster.Name)
	accuracy := int(float64(monsterStats.Accuracy) * accMult)

	kind, mult, pHit := HitRoll(rng, accuracy, playerStats.Evasion)
	damage := 0
	crit := false
	if kind != HitMiss {
		var base int
		if b.Monster.Kind == game.AttackMagical {
			base = MagicalDamage(rng, power, b.Monster.Intelligence, b.Player.Intelligence, 0)
		} else {
			base = PhysicalDamage(rng, power, monsterStats.Attack, playerStats.Defense, 0)
		}
		crit = CritRoll(rng, 0.05, b.Monster.Level)
		if crit {
			base = int(math.Round(float64(base) * 1.5))
		}
		damage = int(math.Round(float64(base) * mult))
	}

	// Decision and rolls are final; the delay below is skippable flavor.
	thinking := ThinkingLine(&b.Monster, &b.Player, b.Turn, flavor)
	b.Logf(thinking)
	if hook != nil {
		hook(ctx, thinking)
	}
	if styleLine != "" {
		b.Logf(styleLine)
	}

	bits := []string{fmt.Sprintf("%s p=%.2f", strings.ToUpper(string(kind)), pHit)}
	if absorbed, rest := absorb(&b.Player, damage); absorbed > 0 {
		bits = append(bits, fmt.Sprintf("%d absorbed", absorbed))
		damage = rest
	}
	if damage > 0 {
		damageHP(&b.Player, damage)
	}

	line := fmt.Sprintf("%s -> %s: %d damage", b.Monster.Name, b.Player.Name, damage)
	if crit {
		line += " (CRIT)"
	}
	b.Logf(line + " [" + strings.Join(bits, "; ") + "]")

	return b.Player.CurrentHP <= 0
}

// Complete transitions the session to its terminal state exactly once. On a
// player win the monster's configured rewards are recorded on the session;
// persisting them is the caller's concern.
func Complete(b *game.BattleSession, winner game.Winner) {
	if b.Status == game.StatusCompleted {
		return
	}
	b.Status = game.StatusCompleted
	b.Winner = winner
	b.EndTime = time.Now().UTC()

	switch winner {
	case game.WinnerPlayer:
		b.Rewards = game.Rewards{XP: b.Monster.XPReward, Gold: b.Monster.GoldReward}
		b.Logf(fmt.Sprintf("Victory! +%d XP, +%d gold", b.Rewards.XP, b.Rewards.Gold))
	case game.WinnerMonster:
		b.Logf("Defeat! Better luck next time.")
	case game.WinnerFled:
		b.Logf("You escaped the battle.")
	}
}
