package service

import (
	"github.com/ashvale/arena/internal/game"
)

// logTail is how many narration lines a snapshot carries.
const logTail = 12

// CombatantView is the client-facing projection of one side of a battle.
type CombatantView struct {
	Name      string   `json:"name"`
	CurrentHP int      `json:"current_hp"`
	MaxHP     int      `json:"max_hp"`
	CurrentSP int      `json:"current_sp"`
	MaxSP     int      `json:"max_sp"`
	Shield    int      `json:"shield,omitempty"`
	Statuses  []string `json:"statuses,omitempty"`
}

// BattleView is a read-only snapshot of a session, safe to serialize while
// the battle continues.
type BattleView struct {
	BattleID string             `json:"battle_id"`
	Turn     int                `json:"turn"`
	Status   game.BattleStatus  `json:"status"`
	Winner   game.Winner        `json:"winner,omitempty"`
	Player   CombatantView      `json:"player"`
	Monster  CombatantView      `json:"monster"`
	Rewards  *game.Rewards      `json:"rewards,omitempty"`
	Log      []string           `json:"log"`
}

// Snapshot returns the current view of the actor's battle. The session lock
// is held only long enough to copy, so snapshots never block a turn for
// long.
func (s *BattleService) Snapshot(battleID string, actorID int64) (*BattleView, error) {
	b, ok := s.Sessions.Get(battleID)
	if !ok {
		return nil, ErrBattleNotFound
	}

	b.Lock()
	defer b.Unlock()

	if b.ActorID != actorID {
		return nil, ErrNotYourBattle
	}

	view := &BattleView{
		BattleID: b.BattleID,
		Turn:     b.Turn,
		Status:   b.Status,
		Winner:   b.Winner,
		Player:   combatantView(&b.Player),
		Monster:  combatantView(&b.Monster),
	}
	if b.Status == game.StatusCompleted && b.Winner == game.WinnerPlayer {
		r := b.Rewards
		view.Rewards = &r
	}

	start := 0
	if len(b.Log) > logTail {
		start = len(b.Log) - logTail
	}
	view.Log = append(view.Log, b.Log[start:]...)
	return view, nil
}

func combatantView(c *game.Combatant) CombatantView {
	v := CombatantView{
		Name:      c.Name,
		CurrentHP: c.CurrentHP,
		MaxHP:     c.MaxHP,
		CurrentSP: c.CurrentSP,
		MaxSP:     c.MaxSP,
		Shield:    c.Shield,
	}
	for i := range c.Statuses {
		v.Statuses = append(v.Statuses, c.Statuses[i].EffectID)
	}
	return v
}
