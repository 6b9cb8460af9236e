package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ashvale/arena/internal/game"
)

// OpenAndMigrate opens the SQLite database and keeps the schema updated via
// AutoMigrate. Catalogue data (skills, monsters, items, effects) never lives
// in the database; the game data file is the single source of truth and only
// per-actor state is persisted.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&game.Character{}, &game.CharacterSkill{}, &game.InventoryItem{}); err != nil {
		return nil, err
	}
	return db, nil
}
