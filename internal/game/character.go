package game

import "gorm.io/gorm"

// Character is the persisted player record. Combat never mutates it
// directly; the service layer applies deltas (XP, gold, SP, flee penalties)
// through the character store at action boundaries.
type Character struct {
	gorm.Model
	ActorID int64  `json:"actor_id" gorm:"uniqueIndex"`
	Name    string `json:"name"`

	Level int `json:"level"`
	XP    int `json:"xp"`
	Gold  int `json:"gold"`

	// Current pools persist between battles; max values are derived.
	HP int `json:"hp"`
	SP int `json:"sp"`

	MaxHP        int `json:"max_hp"`
	MaxSP        int `json:"max_sp"`
	Attack       int `json:"attack"`
	Defense      int `json:"defense"`
	Speed        int `json:"speed"`
	Intelligence int `json:"intelligence"`
	Luck         int `json:"luck"`
	Agility      int `json:"agility"`
	Accuracy     int `json:"accuracy"`
	Evasion      int `json:"evasion"`
	Penetration  int `json:"penetration"`

	// Companion skill points. Attack and defense fold into the battle
	// snapshot at start; hunting drives the victory loot roll.
	CompanionAttack  int `json:"companion_attack"`
	CompanionDefense int `json:"companion_defense"`
	CompanionHunting int `json:"companion_hunting"`

	UltimateID string `json:"ultimate_id"`

	Skills []CharacterSkill `json:"skills"`
}

func (Character) TableName() string { return "characters" }

// CharacterSkill records one learned skill id for a character.
type CharacterSkill struct {
	gorm.Model
	CharacterID uint   `json:"-" gorm:"index"`
	SkillID     string `json:"skill_id"`
}

func (CharacterSkill) TableName() string { return "character_skills" }

// InventoryItem is one stack of a catalogue item owned by an actor.
type InventoryItem struct {
	gorm.Model
	ActorID  int64  `json:"actor_id" gorm:"index:idx_inventory_actor_item,unique"`
	ItemID   string `json:"item_id" gorm:"index:idx_inventory_actor_item,unique"`
	Quantity int    `json:"quantity"`
}

func (InventoryItem) TableName() string { return "inventory_items" }
