package storage

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashvale/arena/internal/dedupe"
	"github.com/ashvale/arena/internal/game"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrItemNotOwned      = errors.New("item not in inventory")
	ErrItemNotInCatalog  = errors.New("item not in catalogue")
)

type sqliteRepository struct {
	db *gorm.DB

	// Catalogues indexed by id. The game data file is the source of truth;
	// the database never stores catalogue rows.
	skills       map[string]game.SkillDefinition
	ultimates    map[string]game.UltimateDefinition
	monsters     map[string]game.Monster
	monsterOrder []string
	items        map[string]game.ItemDefinition
}

func NewSQLiteRepository(db *gorm.DB, skills []game.SkillDefinition, ultimates []game.UltimateDefinition, monsters []game.Monster, items []game.ItemDefinition) Repository {
	r := &sqliteRepository{
		db:        db,
		skills:    make(map[string]game.SkillDefinition, len(skills)),
		ultimates: make(map[string]game.UltimateDefinition, len(ultimates)),
		monsters:  make(map[string]game.Monster, len(monsters)),
		items:     make(map[string]game.ItemDefinition, len(items)),
	}
	for _, s := range skills {
		r.skills[s.ID] = s
	}
	for _, u := range ultimates {
		r.ultimates[u.ID] = u
	}
	for _, m := range monsters {
		r.monsters[m.ID] = m
		r.monsterOrder = append(r.monsterOrder, m.ID)
	}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *sqliteRepository) GetCharacter(actorID int64) (*game.Character, error) {
	var c game.Character
	if err := r.db.Preload("Skills").Where("actor_id = ?", actorID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetOrCreateCharacter returns the actor's character, creating a fresh one
// with starter stats when none exists. Creation goes through singleflight so
// concurrent first requests for the same actor insert exactly once.
func (r *sqliteRepository) GetOrCreateCharacter(actorID int64, name string) (*game.Character, error) {
	if c, err := r.GetCharacter(actorID); err == nil {
		return c, nil
	} else if !errors.Is(err, ErrCharacterNotFound) {
		return nil, err
	}

	key := fmt.Sprintf("%d", actorID)
	v, err, _ := dedupe.CharacterGroup.Do(key, func() (interface{}, error) {
		// Re-check under the flight; a concurrent caller may have created it.
		if c, err := r.GetCharacter(actorID); err == nil {
			return c, nil
		}
		c := newCharacter(actorID, name)
		if err := r.db.Create(c).Error; err != nil {
			return nil, err
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Character), nil
}

// newCharacter builds the starter record for a first-time actor.
func newCharacter(actorID int64, name string) *game.Character {
	if name == "" {
		name = fmt.Sprintf("Adventurer %d", actorID)
	}
	return &game.Character{
		ActorID:      actorID,
		Name:         name,
		Level:        1,
		Gold:         100,
		HP:           100,
		SP:           50,
		MaxHP:        100,
		MaxSP:        50,
		Attack:       12,
		Defense:      8,
		Speed:        10,
		Intelligence: 10,
		Luck:         5,
		Agility:      10,
		Accuracy:     80,
		Evasion:      15,
	}
}

func (r *sqliteRepository) SaveCharacter(c *game.Character) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error
}

// AddXP credits experience and resolves level-ups. Each level requires
// level*100 XP; overflow carries into the next level.
func (r *sqliteRepository) AddXP(actorID int64, amount int) error {
	if amount <= 0 {
		return nil
	}
	c, err := r.GetCharacter(actorID)
	if err != nil {
		return err
	}
	c.XP += amount
	for c.XP >= c.Level*100 {
		c.XP -= c.Level * 100
		c.Level++
	}
	return r.db.Model(&game.Character{}).Where("actor_id = ?", actorID).
		Updates(map[string]interface{}{"xp": c.XP, "level": c.Level}).Error
}

func (r *sqliteRepository) AddGold(actorID int64, amount int) error {
	if amount == 0 {
		return nil
	}
	return r.db.Model(&game.Character{}).Where("actor_id = ?", actorID).
		Update("gold", gorm.Expr("MAX(gold + ?, 0)", amount)).Error
}

// RestoreSP applies a signed SP delta clamped to [0, max_sp].
func (r *sqliteRepository) RestoreSP(actorID int64, delta int) error {
	if delta == 0 {
		return nil
	}
	return r.db.Model(&game.Character{}).Where("actor_id = ?", actorID).
		Update("sp", gorm.Expr("MIN(MAX(sp + ?, 0), max_sp)", delta)).Error
}

// LearnSkill records a catalogue skill on the character. Learning the same
// skill twice is a no-op.
func (r *sqliteRepository) LearnSkill(actorID int64, skillID string) error {
	if _, ok := r.skills[skillID]; !ok {
		return fmt.Errorf("skill %q not in catalogue", skillID)
	}
	c, err := r.GetCharacter(actorID)
	if err != nil {
		return err
	}
	for _, s := range c.Skills {
		if s.SkillID == skillID {
			return nil
		}
	}
	return r.db.Create(&game.CharacterSkill{CharacterID: c.ID, SkillID: skillID}).Error
}

func (r *sqliteRepository) SkillInfo(skillID string) (*game.SkillDefinition, bool) {
	s, ok := r.skills[skillID]
	if !ok {
		return nil, false
	}
	return &s, true
}

func (r *sqliteRepository) UltimateInfo(actorID int64) (*game.UltimateDefinition, error) {
	c, err := r.GetCharacter(actorID)
	if err != nil {
		return nil, err
	}
	if c.UltimateID == "" {
		return nil, nil
	}
	u, ok := r.ultimates[c.UltimateID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *sqliteRepository) Monster(id string) (*game.Monster, bool) {
	m, ok := r.monsters[id]
	if !ok {
		return nil, false
	}
	return &m, true
}

// Monsters lists the catalogue in the game data file's declaration order.
func (r *sqliteRepository) Monsters() []game.Monster {
	out := make([]game.Monster, 0, len(r.monsterOrder))
	for _, id := range r.monsterOrder {
		out = append(out, r.monsters[id])
	}
	return out
}

func (r *sqliteRepository) ItemCatalogue() (map[string]game.ItemDefinition, error) {
	return r.items, nil
}

// UseItem consumes quantity units of an owned item inside one transaction
// and reports the effects for the engine to apply.
func (r *sqliteRepository) UseItem(actorID int64, itemID string, quantity int) (*game.ItemEffects, error) {
	def, ok := r.items[itemID]
	if !ok {
		return nil, ErrItemNotInCatalog
	}
	if quantity < 1 {
		quantity = 1
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var row game.InventoryItem
		if err := tx.Where("actor_id = ? AND item_id = ?", actorID, itemID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotOwned
			}
			return err
		}
		if row.Quantity < quantity {
			return ErrItemNotOwned
		}
		row.Quantity -= quantity
		if row.Quantity == 0 {
			return tx.Delete(&row).Error
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}

	eff := &game.ItemEffects{
		ItemName:  def.Name,
		HealHP:    def.HealHP * quantity,
		RestoreSP: def.RestoreSP * quantity,
		Shield:    def.Shield * quantity,
		Boosts:    def.Boosts,
	}
	return eff, nil
}

// AddItem grants quantity units, creating the stack on first grant.
func (r *sqliteRepository) AddItem(actorID int64, itemID string, quantity int) error {
	if _, ok := r.items[itemID]; !ok {
		return ErrItemNotInCatalog
	}
	if quantity < 1 {
		quantity = 1
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", quantity)}),
	}).Create(&game.InventoryItem{ActorID: actorID, ItemID: itemID, Quantity: quantity}).Error
}

// Inventory lists the actor's stacks ordered by item id for stable display.
func (r *sqliteRepository) Inventory(actorID int64) ([]game.InventoryItem, error) {
	var rows []game.InventoryItem
	if err := r.db.Where("actor_id = ? AND quantity > 0", actorID).Find(&rows).Error; err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemID < rows[j].ItemID })
	return rows, nil
}
