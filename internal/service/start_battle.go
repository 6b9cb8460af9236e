package service

import (
	"fmt"

	"github.com/ashvale/arena/internal/game"
)

const (
	playerCritBase   = 0.05
	playerCritDamage = 1.5
)

// StartBattle seeds a new session for the actor against the given monster.
// The player snapshot derives from the persisted character plus companion
// bonuses; the monster snapshot comes from the provider. At most one active
// battle per actor is enforced atomically by the registry.
func (s *BattleService) StartBattle(actorID int64, monsterID string) (*game.BattleSession, error) {
	record, err := s.Chars.GetCharacter(actorID)
	if err != nil {
		return nil, ErrCharacterNotFound
	}

	def, ok := s.Monsters.Monster(monsterID)
	if !ok {
		return nil, ErrMonsterNotFound
	}

	player := playerSnapshot(record)
	monster := monsterSnapshot(def)

	b, err := s.Sessions.Create(actorID, player, monster)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// playerSnapshot copies derived character stats into a battle-scoped
// combatant. Mutating the snapshot never touches the stored record.
func playerSnapshot(c *game.Character) game.Combatant {
	skills := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		skills = append(skills, s.SkillID)
	}
	return game.Combatant{
		Name:         c.Name,
		MaxHP:        c.MaxHP,
		CurrentHP:    c.MaxHP,
		MaxSP:        c.MaxSP,
		CurrentSP:    c.MaxSP,
		Attack:       c.Attack + c.CompanionAttack,
		Defense:      c.Defense + c.CompanionDefense,
		Speed:        c.Speed,
		Intelligence: c.Intelligence,
		Luck:         c.Luck,
		Agility:      c.Agility,
		Accuracy:     c.Accuracy,
		Evasion:      c.Evasion,
		Penetration:  c.Penetration,
		CritBase:     playerCritBase,
		CritDamage:   playerCritDamage,
		Skills:       skills,
		Cooldowns:    make(map[string]int),
	}
}

func monsterSnapshot(m *game.Monster) game.Combatant {
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("Monster %s", m.ID)
	}
	kind := m.Kind
	if kind == "" {
		kind = game.AttackPhysical
	}
	return game.Combatant{
		Name:         name,
		MaxHP:        m.HP,
		CurrentHP:    m.HP,
		Attack:       m.Attack,
		Defense:      m.Defense,
		Level:        m.Level,
		XPReward:     m.XPReward,
		GoldReward:   m.GoldReward,
		Accuracy:     m.Accuracy,
		Evasion:      m.Evasion,
		Kind:         kind,
		Intelligence: m.Intelligence,
		CritBase:     playerCritBase,
		CritDamage:   playerCritDamage,
	}
}
