package game

// SkillType selects the skill damage flavor; magic skills gain a scaling
// bonus from intelligence.
type SkillType string

const (
	SkillPhysical SkillType = "physical"
	SkillMagic    SkillType = "magic"
)

// SkillDefinition is a catalogue entry consumed through the character
// store. Effects name status ids applied on hit; the effect's class decides
// whether it lands on the caster or the opponent.
type SkillDefinition struct {
	ID             string    `yaml:"id" json:"id"`
	Name           string    `yaml:"name" json:"name"`
	Description    string    `yaml:"description" json:"description"`
	SPCost         int       `yaml:"sp_cost" json:"sp_cost"`
	Cooldown       int       `yaml:"cooldown" json:"cooldown"`
	Power          int       `yaml:"power" json:"power"`
	Multiplier     float64   `yaml:"multiplier" json:"multiplier"`
	Type           SkillType `yaml:"type" json:"type"`
	Effects        []string  `yaml:"effects" json:"effects"`
	EffectDuration int       `yaml:"effect_duration" json:"effect_duration"`
}

// UltimateDefinition describes a character's ultimate ability. Ultimates
// always cost the full SP pool and scale from attack.
type UltimateDefinition struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// StatBoost is one flat stat increase granted by an item. Boosts are an
// ordered slice so narration and application order are stable.
type StatBoost struct {
	Stat   string `yaml:"stat" json:"stat"`
	Amount int    `yaml:"amount" json:"amount"`
}

// ItemDefinition is a catalogue entry for a usable item.
type ItemDefinition struct {
	ID        string      `yaml:"id" json:"id"`
	Name      string      `yaml:"name" json:"name"`
	Type      string      `yaml:"type" json:"type"`
	HealHP    int         `yaml:"heal_hp" json:"heal_hp"`
	RestoreSP int         `yaml:"restore_sp" json:"restore_sp"`
	Shield    int         `yaml:"shield" json:"shield"`
	Boosts    []StatBoost `yaml:"boosts" json:"boosts"`
}

// ItemEffects is what the inventory store reports back after consuming an
// item; the engine applies it to the player snapshot.
type ItemEffects struct {
	ItemName  string      `json:"item_name"`
	HealHP    int         `json:"heal_hp"`
	RestoreSP int         `json:"restore_sp"`
	Shield    int         `json:"shield"`
	Boosts    []StatBoost `json:"boosts"`
}
