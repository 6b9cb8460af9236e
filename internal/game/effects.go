package game

// EffectClass splits status effects into buffs (always applied to the
// caster) and debuffs (always applied to the opponent). The assignment rule
// depends only on the class, never on caller intent.
type EffectClass string

const (
	ClassBuff   EffectClass = "buff"
	ClassDebuff EffectClass = "debuff"
)

// ModifierKind tags how a stat modifier is interpreted.
type ModifierKind string

const (
	// ModifierPercent multiplies the stat by (1 + value).
	ModifierPercent ModifierKind = "percent"
	// ModifierFlat adds the (truncated) value to the stat.
	ModifierFlat ModifierKind = "flat"
)

// Modifier is one tagged stat delta. Tagging replaces the legacy habit of
// inferring percent-vs-flat from the numeric magnitude at apply time; the
// inference rule survives only at the configuration boundary, in
// ModifierFromNumber.
type Modifier struct {
	Kind  ModifierKind `json:"kind"`
	Value float64      `json:"value"`
}

// ModifierFromNumber converts a bare numeric modifier using the legacy
// rule: a value strictly between 0 and 1 is a percentage bonus, a negative
// value is a percentage reduction, anything else (including exactly 0 and
// exactly 1) is a flat delta.
func ModifierFromNumber(v float64) Modifier {
	if v < 0 || (v > 0 && v < 1) {
		return Modifier{Kind: ModifierPercent, Value: v}
	}
	return Modifier{Kind: ModifierFlat, Value: v}
}

// StatMod binds a modifier to a named stat. Mods are an ordered slice, not
// a map: modifiers to the same stat fold sequentially in declaration order
// and the result is not commutative in general.
type StatMod struct {
	Stat string   `json:"stat"`
	Mod  Modifier `json:"mod"`
}

// Stat names accepted in StatMod entries.
const (
	StatAttack   = "attack"
	StatDefense  = "defense"
	StatSpeed    = "speed"
	StatAccuracy = "accuracy"
	StatEvasion  = "evasion"
)

// StatusEffect is a static effect definition from the registry. Definitions
// carry the semantics; StatusInstance carries per-combatant bookkeeping.
type StatusEffect struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Class       EffectClass `json:"class"`
	Mods        []StatMod   `json:"mods,omitempty"`
	// DoT and HoT apply once per tick; an effect may carry both.
	DoT   int  `json:"dot,omitempty"`
	HoT   int  `json:"hot,omitempty"`
	Stuns bool `json:"stuns,omitempty"`
}

// EffectRegistry is the read-only catalogue of status effect definitions.
type EffectRegistry struct {
	effects map[string]StatusEffect
}

// NewEffectRegistry builds a registry from definitions. Later duplicates of
// the same id overwrite earlier ones; loaders validate uniqueness upstream.
func NewEffectRegistry(defs []StatusEffect) *EffectRegistry {
	m := make(map[string]StatusEffect, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return &EffectRegistry{effects: m}
}

// Get returns the definition for an effect id.
func (r *EffectRegistry) Get(id string) (StatusEffect, bool) {
	e, ok := r.effects[id]
	return e, ok
}

// Has reports whether the registry knows the effect id.
func (r *EffectRegistry) Has(id string) bool {
	_, ok := r.effects[id]
	return ok
}

// Len returns the number of registered effects.
func (r *EffectRegistry) Len() int { return len(r.effects) }
