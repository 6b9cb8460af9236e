package game

import (
	"sync"
	"time"
)

// BattleStatus is the lifecycle state of a battle session.
type BattleStatus string

const (
	StatusActive    BattleStatus = "active"
	StatusCompleted BattleStatus = "completed"
)

// Winner identifies how a completed battle ended.
type Winner string

const (
	WinnerNone    Winner = ""
	WinnerPlayer  Winner = "player"
	WinnerMonster Winner = "monster"
	WinnerFled    Winner = "fled"
)

// StatusInstance is one active status effect on a combatant. Instances are
// kept in application order; applying an effect a combatant already has
// refreshes the duration instead of stacking a second instance.
type StatusInstance struct {
	EffectID  string `json:"effect_id"`
	Remaining int    `json:"remaining"`
	AppliedBy string `json:"applied_by"`
}

// Combatant is a battle-scoped snapshot of either side. It is independent of
// the persisted Character record: mutating it never touches storage.
type Combatant struct {
	Name string `json:"name"`

	MaxHP     int `json:"max_hp"`
	CurrentHP int `json:"current_hp"`
	MaxSP     int `json:"max_sp"`
	CurrentSP int `json:"current_sp"`

	Attack       int `json:"attack"`
	Defense      int `json:"defense"`
	Speed        int `json:"speed"`
	Intelligence int `json:"intelligence"`
	Luck         int `json:"luck"`
	Agility      int `json:"agility"`
	Accuracy     int `json:"accuracy"`
	Evasion      int `json:"evasion"`
	Penetration  int `json:"penetration"`

	CritBase   float64 `json:"crit_base"`
	CritDamage float64 `json:"crit_damage"`

	// Shield is a nonnegative absorption pool consumed before HP.
	Shield int `json:"shield"`

	Statuses []StatusInstance `json:"statuses"`

	// Player-only fields.
	Skills    []string       `json:"skills,omitempty"`
	Cooldowns map[string]int `json:"cooldowns,omitempty"`

	// Monster-only fields.
	Level      int        `json:"level,omitempty"`
	XPReward   int        `json:"xp_reward,omitempty"`
	GoldReward int        `json:"gold_reward,omitempty"`
	Kind       AttackKind `json:"kind,omitempty"`
}

// HPPercent returns current HP as a percentage of max, for AI heuristics.
func (c *Combatant) HPPercent() float64 {
	max := c.MaxHP
	if max < 1 {
		max = 1
	}
	return float64(c.CurrentHP) / float64(max) * 100.0
}

// HasStatus reports whether an instance of the given effect id is active.
func (c *Combatant) HasStatus(effectID string) bool {
	for i := range c.Statuses {
		if c.Statuses[i].EffectID == effectID {
			return true
		}
	}
	return false
}

// KnowsSkill reports whether the combatant has learned the given skill.
func (c *Combatant) KnowsSkill(skillID string) bool {
	for _, s := range c.Skills {
		if s == skillID {
			return true
		}
	}
	return false
}

// AttackKind selects the damage formula a monster attacks with.
type AttackKind string

const (
	AttackPhysical AttackKind = "physical"
	AttackMagical  AttackKind = "magical"
)

// Monster is the definition supplied by the monster provider at battle
// start. The engine never fetches monsters itself.
type Monster struct {
	ID           string     `yaml:"id" json:"id"`
	Name         string     `yaml:"name" json:"name"`
	HP           int        `yaml:"hp" json:"hp"`
	Attack       int        `yaml:"attack" json:"attack"`
	Defense      int        `yaml:"defense" json:"defense"`
	Level        int        `yaml:"level" json:"level"`
	XPReward     int        `yaml:"xp_reward" json:"xp_reward"`
	GoldReward   int        `yaml:"gold_reward" json:"gold_reward"`
	Accuracy     int        `yaml:"accuracy" json:"accuracy"`
	Evasion      int        `yaml:"evasion" json:"evasion"`
	Kind         AttackKind `yaml:"kind" json:"kind"`
	Intelligence int        `yaml:"intelligence" json:"intelligence"`
}

// Rewards accumulated by a battle on victory.
type Rewards struct {
	XP   int `json:"xp"`
	Gold int `json:"gold"`
}

// BattleSession is the aggregate root for one player-vs-monster encounter.
// Sessions are ephemeral: they live in the session registry for the process
// lifetime and are never persisted.
//
// All randomness for the session derives from Seed plus the turn number and
// an action-specific offset, so any turn's outcome is reproducible.
type BattleSession struct {
	mu sync.Mutex

	BattleID string       `json:"battle_id"`
	ActorID  int64        `json:"actor_id"`
	Seed     int64        `json:"seed"`
	Turn     int          `json:"turn"`
	Status   BattleStatus `json:"status"`
	Winner   Winner       `json:"winner"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Player  Combatant `json:"player"`
	Monster Combatant `json:"monster"`

	Rewards Rewards `json:"rewards"`

	// Log is append-only narration; consumers truncate at display time.
	Log []string `json:"log"`
}

// Lock serializes action handling for this session. The design allows at
// most one in-flight action per session; concurrent sessions for different
// actors proceed independently.
func (b *BattleSession) Lock() { b.mu.Lock() }

// Unlock releases the per-session lock.
func (b *BattleSession) Unlock() { b.mu.Unlock() }

// Logf appends one narration line to the battle log.
func (b *BattleSession) Logf(line string) {
	b.Log = append(b.Log, line)
}

// Active reports whether the session still accepts actions.
func (b *BattleSession) Active() bool { return b.Status == StatusActive }
