package storage

import (
	"github.com/ashvale/arena/internal/game"
)

// Repository is the persistence surface for characters, inventory and the
// static catalogues. The battle service consumes it through its own narrow
// interfaces; this type is the one concrete implementation behind them.
type Repository interface {
	// Character state.
	GetCharacter(actorID int64) (*game.Character, error)
	GetOrCreateCharacter(actorID int64, name string) (*game.Character, error)
	SaveCharacter(c *game.Character) error
	AddXP(actorID int64, amount int) error
	AddGold(actorID int64, amount int) error
	RestoreSP(actorID int64, delta int) error
	LearnSkill(actorID int64, skillID string) error

	// Catalogue lookups. Catalogues come from the game data file and are
	// immutable after load.
	SkillInfo(skillID string) (*game.SkillDefinition, bool)
	UltimateInfo(actorID int64) (*game.UltimateDefinition, error)
	Monster(id string) (*game.Monster, bool)
	Monsters() []game.Monster
	ItemCatalogue() (map[string]game.ItemDefinition, error)

	// Inventory.
	UseItem(actorID int64, itemID string, quantity int) (*game.ItemEffects, error)
	AddItem(actorID int64, itemID string, quantity int) error
	Inventory(actorID int64) ([]game.InventoryItem, error)
}
