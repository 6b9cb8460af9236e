package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ashvale/arena/internal/game"
)

// modifierEntry is one stat modifier as authored in YAML. New data uses the
// explicit percent/flat keys; value is the legacy bare-number form and goes
// through the magnitude inference rule.
type modifierEntry struct {
	Stat    string   `yaml:"stat"`
	Percent *float64 `yaml:"percent"`
	Flat    *float64 `yaml:"flat"`
	Value   *float64 `yaml:"value"`
}

type effectEntry struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Class       string          `yaml:"class"`
	Mods        []modifierEntry `yaml:"mods"`
	DoT         int             `yaml:"dot"`
	HoT         int             `yaml:"hot"`
	Stuns       bool            `yaml:"stuns"`
}

type rawGameData struct {
	Effects   []effectEntry             `yaml:"effects"`
	Skills    []game.SkillDefinition    `yaml:"skills"`
	Ultimates []game.UltimateDefinition `yaml:"ultimates"`
	Monsters  []game.Monster            `yaml:"monsters"`
	Items     []game.ItemDefinition     `yaml:"items"`
}

// GameData is the loaded and validated catalogue set.
type GameData struct {
	Effects   []game.StatusEffect
	Skills    []game.SkillDefinition
	Ultimates []game.UltimateDefinition
	Monsters  []game.Monster
	Items     []game.ItemDefinition
}

// LoadGameData reads the YAML catalogue file at path. It validates unique
// ids per catalogue, known effect classes and stat names, and that every
// skill effect reference resolves.
func LoadGameData(path string) (*GameData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game data file %s: %w", path, err)
	}
	var raw rawGameData
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse game data file %s: %w", path, err)
	}

	if len(raw.Effects) == 0 {
		return nil, fmt.Errorf("game data file %s: effects is empty", path)
	}
	if len(raw.Monsters) == 0 {
		return nil, fmt.Errorf("game data file %s: monsters is empty", path)
	}

	effects := make([]game.StatusEffect, 0, len(raw.Effects))
	effectIDs := make(map[string]struct{}, len(raw.Effects))
	for _, e := range raw.Effects {
		def, err := effectFromEntry(e)
		if err != nil {
			return nil, fmt.Errorf("game data file %s: %w", path, err)
		}
		if _, dup := effectIDs[def.ID]; dup {
			return nil, fmt.Errorf("game data file %s: duplicate effect id '%s'", path, def.ID)
		}
		effectIDs[def.ID] = struct{}{}
		effects = append(effects, def)
	}

	skillIDs := make(map[string]struct{}, len(raw.Skills))
	for _, s := range raw.Skills {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("game data file %s: skill entry missing 'id'", path)
		}
		if _, dup := skillIDs[s.ID]; dup {
			return nil, fmt.Errorf("game data file %s: duplicate skill id '%s'", path, s.ID)
		}
		skillIDs[s.ID] = struct{}{}
		if s.Type != game.SkillPhysical && s.Type != game.SkillMagic {
			return nil, fmt.Errorf("game data file %s: skill '%s' has unknown type '%s'", path, s.ID, s.Type)
		}
		for _, ref := range s.Effects {
			if _, ok := effectIDs[ref]; !ok {
				return nil, fmt.Errorf("game data file %s: skill '%s' references unknown effect '%s'", path, s.ID, ref)
			}
		}
	}

	ultIDs := make(map[string]struct{}, len(raw.Ultimates))
	for _, u := range raw.Ultimates {
		if strings.TrimSpace(u.ID) == "" {
			return nil, fmt.Errorf("game data file %s: ultimate entry missing 'id'", path)
		}
		if _, dup := ultIDs[u.ID]; dup {
			return nil, fmt.Errorf("game data file %s: duplicate ultimate id '%s'", path, u.ID)
		}
		ultIDs[u.ID] = struct{}{}
	}

	monsterIDs := make(map[string]struct{}, len(raw.Monsters))
	for _, m := range raw.Monsters {
		if strings.TrimSpace(m.ID) == "" {
			return nil, fmt.Errorf("game data file %s: monster entry missing 'id'", path)
		}
		if _, dup := monsterIDs[m.ID]; dup {
			return nil, fmt.Errorf("game data file %s: duplicate monster id '%s'", path, m.ID)
		}
		monsterIDs[m.ID] = struct{}{}
		if m.HP < 1 {
			return nil, fmt.Errorf("game data file %s: monster '%s' needs positive hp", path, m.ID)
		}
		if m.Kind != "" && m.Kind != game.AttackPhysical && m.Kind != game.AttackMagical {
			return nil, fmt.Errorf("game data file %s: monster '%s' has unknown kind '%s'", path, m.ID, m.Kind)
		}
	}

	itemIDs := make(map[string]struct{}, len(raw.Items))
	for _, it := range raw.Items {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("game data file %s: item entry missing 'id'", path)
		}
		if _, dup := itemIDs[it.ID]; dup {
			return nil, fmt.Errorf("game data file %s: duplicate item id '%s'", path, it.ID)
		}
		itemIDs[it.ID] = struct{}{}
		for _, boost := range it.Boosts {
			if !validBoostStat(boost.Stat) {
				return nil, fmt.Errorf("game data file %s: item '%s' boosts unknown stat '%s'", path, it.ID, boost.Stat)
			}
		}
	}

	return &GameData{
		Effects:   effects,
		Skills:    raw.Skills,
		Ultimates: raw.Ultimates,
		Monsters:  raw.Monsters,
		Items:     raw.Items,
	}, nil
}

func effectFromEntry(e effectEntry) (game.StatusEffect, error) {
	var zero game.StatusEffect
	if strings.TrimSpace(e.ID) == "" {
		return zero, fmt.Errorf("effect entry missing 'id'")
	}
	class := game.EffectClass(e.Class)
	if class != game.ClassBuff && class != game.ClassDebuff {
		return zero, fmt.Errorf("effect '%s' has unknown class '%s'", e.ID, e.Class)
	}

	mods := make([]game.StatMod, 0, len(e.Mods))
	for _, m := range e.Mods {
		if !validStat(m.Stat) {
			return zero, fmt.Errorf("effect '%s' modifies unknown stat '%s'", e.ID, m.Stat)
		}
		mod, err := modifierFromEntry(m)
		if err != nil {
			return zero, fmt.Errorf("effect '%s': %w", e.ID, err)
		}
		mods = append(mods, game.StatMod{Stat: m.Stat, Mod: mod})
	}

	return game.StatusEffect{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Class:       class,
		Mods:        mods,
		DoT:         e.DoT,
		HoT:         e.HoT,
		Stuns:       e.Stuns,
	}, nil
}

// modifierFromEntry resolves the three authoring forms. Exactly one of
// percent, flat or value must be set; the legacy value form infers the kind
// from the number's magnitude.
func modifierFromEntry(m modifierEntry) (game.Modifier, error) {
	set := 0
	if m.Percent != nil {
		set++
	}
	if m.Flat != nil {
		set++
	}
	if m.Value != nil {
		set++
	}
	if set != 1 {
		return game.Modifier{}, fmt.Errorf("stat '%s' needs exactly one of percent, flat or value", m.Stat)
	}
	switch {
	case m.Percent != nil:
		return game.Modifier{Kind: game.ModifierPercent, Value: *m.Percent}, nil
	case m.Flat != nil:
		return game.Modifier{Kind: game.ModifierFlat, Value: *m.Flat}, nil
	default:
		return game.ModifierFromNumber(*m.Value), nil
	}
}

func validStat(name string) bool {
	switch name {
	case game.StatAttack, game.StatDefense, game.StatSpeed, game.StatAccuracy, game.StatEvasion:
		return true
	}
	return false
}

// validBoostStat covers the wider set item boosts may target.
func validBoostStat(name string) bool {
	if validStat(name) {
		return true
	}
	switch name {
	case "intelligence", "luck", "agility":
		return true
	}
	return false
}
