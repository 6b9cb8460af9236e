package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashvale/arena/internal/game"
)

func writeGameData(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gamedata.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

const validGameData = `
effects:
  - id: burn
    name: Burn
    class: debuff
    dot: 8
  - id: slow
    name: Slow
    class: debuff
    mods:
      - stat: speed
        percent: -0.3
      - stat: accuracy
        flat: -10
  - id: legacy_bless
    name: Legacy Blessing
    class: buff
    mods:
      - stat: attack
        value: 0.15
      - stat: evasion
        value: 5
skills:
  - id: fireball
    name: Fireball
    sp_cost: 25
    cooldown: 3
    power: 120
    multiplier: 1.6
    type: magic
    effects: [burn]
monsters:
  - id: goblin
    name: Goblin
    hp: 60
    attack: 10
    defense: 4
    level: 1
items:
  - id: health_potion
    name: Health Potion
    heal_hp: 50
`

func TestLoadGameDataParsesModifierForms(t *testing.T) {
	data, err := LoadGameData(writeGameData(t, validGameData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var slow, legacy game.StatusEffect
	for _, e := range data.Effects {
		switch e.ID {
		case "slow":
			slow = e
		case "legacy_bless":
			legacy = e
		}
	}

	if slow.Mods[0].Mod.Kind != game.ModifierPercent || slow.Mods[0].Mod.Value != -0.3 {
		t.Fatalf("explicit percent: got %+v", slow.Mods[0].Mod)
	}
	if slow.Mods[1].Mod.Kind != game.ModifierFlat || slow.Mods[1].Mod.Value != -10 {
		t.Fatalf("explicit flat keeps negative numbers flat: got %+v", slow.Mods[1].Mod)
	}

	// Legacy bare values go through magnitude inference.
	if legacy.Mods[0].Mod.Kind != game.ModifierPercent {
		t.Fatalf("legacy 0.15 infers percent: got %+v", legacy.Mods[0].Mod)
	}
	if legacy.Mods[1].Mod.Kind != game.ModifierFlat {
		t.Fatalf("legacy 5 infers flat: got %+v", legacy.Mods[1].Mod)
	}

	if len(data.Skills) != 1 || data.Skills[0].Type != game.SkillMagic {
		t.Fatalf("skills parse: got %+v", data.Skills)
	}
	if len(data.Monsters) != 1 || data.Monsters[0].HP != 60 {
		t.Fatalf("monsters parse: got %+v", data.Monsters)
	}
}

func TestLoadGameDataRejectsDuplicates(t *testing.T) {
	body := strings.Replace(validGameData, "id: slow", "id: burn", 1)
	if _, err := LoadGameData(writeGameData(t, body)); err == nil || !strings.Contains(err.Error(), "duplicate effect id") {
		t.Fatalf("expected duplicate effect error, got %v", err)
	}
}

func TestLoadGameDataRejectsDanglingEffectRef(t *testing.T) {
	body := strings.Replace(validGameData, "effects: [burn]", "effects: [frostbite]", 1)
	if _, err := LoadGameData(writeGameData(t, body)); err == nil || !strings.Contains(err.Error(), "unknown effect") {
		t.Fatalf("expected dangling reference error, got %v", err)
	}
}

func TestLoadGameDataRejectsAmbiguousModifier(t *testing.T) {
	body := strings.Replace(validGameData, "        percent: -0.3", "        percent: -0.3\n        flat: 2", 1)
	if _, err := LoadGameData(writeGameData(t, body)); err == nil || !strings.Contains(err.Error(), "exactly one of") {
		t.Fatalf("expected ambiguous modifier error, got %v", err)
	}
}

func TestLoadGameDataRejectsUnknownClassAndStat(t *testing.T) {
	body := strings.Replace(validGameData, "class: debuff", "class: curse", 1)
	if _, err := LoadGameData(writeGameData(t, body)); err == nil || !strings.Contains(err.Error(), "unknown class") {
		t.Fatalf("expected unknown class error, got %v", err)
	}

	body = strings.Replace(validGameData, "stat: speed", "stat: charm", 1)
	if _, err := LoadGameData(writeGameData(t, body)); err == nil || !strings.Contains(err.Error(), "unknown stat") {
		t.Fatalf("expected unknown stat error, got %v", err)
	}
}

func TestLoadGameDataMissingFile(t *testing.T) {
	if _, err := LoadGameData(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
