package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ashvale/arena/internal/engine"
	"github.com/ashvale/arena/internal/game"
	"github.com/ashvale/arena/internal/logging"
)

// ActionType names a battle action requested by the player.
type ActionType string

const (
	ActionAttack   ActionType = "attack"
	ActionDefend   ActionType = "defend"
	ActionFlee     ActionType = "flee"
	ActionSkill    ActionType = "skill"
	ActionItem     ActionType = "item"
	ActionUltimate ActionType = "ultimate"
)

// PerformAction runs one player action against the actor's battle. The
// session lock serializes handling; validation failures return before any
// mutation. The returned session reflects the full turn, including the
// status tick and the monster's response.
func (s *BattleService) PerformAction(ctx context.Context, battleID string, actorID int64, action ActionType, arg string) (*game.BattleSession, error) {
	b, ok := s.Sessions.Get(battleID)
	if !ok {
		return nil, ErrBattleNotFound
	}

	b.Lock()
	defer b.Unlock()

	if b.ActorID != actorID {
		return nil, ErrNotYourBattle
	}
	if !b.Active() {
		return nil, ErrBattleNotActive
	}

	switch action {
	case ActionAttack:
		return s.attack(ctx, b)
	case ActionDefend:
		return s.defend(ctx, b)
	case ActionFlee:
		return s.flee(ctx, b)
	case ActionSkill:
		if arg == "" {
			return nil, ErrMissingArgument
		}
		return s.skill(ctx, b, arg)
	case ActionItem:
		if arg == "" {
			return nil, ErrMissingArgument
		}
		return s.item(ctx, b, arg)
	case ActionUltimate:
		return s.ultimate(ctx, b)
	default:
		return nil, ErrUnknownAction
	}
}

func (s *BattleService) attack(ctx context.Context, b *game.BattleSession) (*game.BattleSession, error) {
	rng := s.RNG(b.Seed, b.Turn, engine.OffsetPlayer)
	if engine.PlayerAttack(b, s.Effects, rng) {
		s.finish(b, game.WinnerPlayer)
		return b, nil
	}
	s.endPlayerTurn(ctx, b)
	return b, nil
}

func (s *BattleService) defend(ctx context.Context, b *game.BattleSession) (*game.BattleSession, error) {
	engine.Defend(b)
	s.endPlayerTurn(ctx, b)
	return b, nil
}

// flee succeeds 70% of the time. Success applies the documented gold and HP
// penalties to the persisted character (best-effort: a storage failure is
// logged, combat state is never rolled back) and ends the battle as fled.
// Failure gives the monster an immediate unopposed attack; the battle stays
// active and the turn does not advance.
func (s *BattleService) flee(ctx context.Context, b *game.BattleSession) (*game.BattleSession, error) {
	rng := s.RNG(b.Seed, b.Turn, engine.OffsetFlee)
	if rng.Float64() < 0.7 {
		goldPenalty := 1
		hpPenalty := b.Player.CurrentHP / 4
		if hpPenalty < 1 {
			hpPenalty = 1
		}
		if record, err := s.Chars.GetCharacter(b.ActorID); err == nil {
			if p := record.Gold / 20; p > 1 {
				goldPenalty = p
			}
			record.Gold -= goldPenalty
			if record.Gold < 0 {
				record.Gold = 0
			}
			record.HP = b.Player.CurrentHP - hpPenalty
			if record.HP < 1 {
				record.HP = 1
			}
			if err := s.Chars.SaveCharacter(record); err != nil {
				logging.Error("flee penalty save failed", err, logging.Fields{"battle_id": b.BattleID})
			}
		} else {
			logging.Error("flee penalty lookup failed", err, logging.Fields{"battle_id": b.BattleID})
		}
		b.Logf(fmt.Sprintf("You fled successfully! Lost %d gold and %d HP as penalty!", goldPenalty, hpPenalty))
		s.finish(b, game.WinnerFled)
		return b, nil
	}

	b.Logf("Failed to flee! The monster gets a free attack!")
	monsterRNG := s.RNG(b.Seed, b.Turn, engine.OffsetMonster)
	flavorRNG := s.RNG(b.Seed, b.Turn, engine.OffsetFlavor)
	if engine.MonsterAttack(ctx, b, s.Effects, monsterRNG, flavorRNG, s.Delay) {
		s.finish(b, game.WinnerMonster)
	}
	return b, nil
}

// skill validates ownership, cooldown and SP before any mutation; once
// those pass, SP is committed and the single consolidated skill path in the
// engine resolves damage, crit and status application.
func (s *BattleService) skill(ctx context.Context, b *game.BattleSession, skillID string) (*game.BattleSession, error) {
	if !b.Player.KnowsSkill(skillID) {
		return nil, ErrSkillNotKnown
	}
	def, ok := s.Chars.SkillInfo(skillID)
	if !ok {
		return nil, ErrSkillNotFound
	}
	if b.Player.Cooldowns[skillID] > 0 {
		return nil, ErrSkillOnCooldown
	}
	if b.Player.CurrentSP < def.SPCost {
		return nil, ErrInsufficientSP
	}

	rng := s.RNG(b.Seed, b.Turn, engine.OffsetSkill)
	res := engine.UseSkill(b, s.Effects, rng, *def)

	// Mirror the SP spend on the persisted record; combat already happened.
	if err := s.Chars.RestoreSP(b.ActorID, -def.SPCost); err != nil {
		logging.Error("skill SP persist failed", err, logging.Fields{"battle_id": b.BattleID, "skill_id": skillID})
	}

	if res.Killed {
		s.finish(b, game.WinnerPlayer)
		return b, nil
	}
	s.endPlayerTurn(ctx, b)
	return b, nil
}

func (s *BattleService) item(ctx context.Context, b *game.BattleSession, itemID string) (*game.BattleSession, error) {
	effects, err := s.Inventory.UseItem(b.ActorID, itemID, 1)
	if err != nil {
		return nil, fmt.Errorf("use item: %w", err)
	}
	engine.ApplyItemEffects(b, *effects)
	s.endPlayerTurn(ctx, b)
	return b, nil
}

func (s *BattleService) ultimate(ctx context.Context, b *game.BattleSession) (*game.BattleSession, error) {
	if b.Player.CurrentSP < engine.UltimateSPCost {
		return nil, ErrInsufficientSP
	}
	ult, err := s.Chars.UltimateInfo(b.ActorID)
	if err != nil || ult == nil {
		return nil, ErrNoUltimate
	}

	rng := s.RNG(b.Seed, b.Turn, engine.OffsetUltimate)
	res := engine.Ultimate(b, rng, *ult)

	if err := s.Chars.RestoreSP(b.ActorID, -engine.UltimateSPCost); err != nil {
		logging.Error("ultimate SP persist failed", err, logging.Fields{"battle_id": b.BattleID})
	}

	if res.Killed {
		s.finish(b, game.WinnerPlayer)
		return b, nil
	}
	s.endPlayerTurn(ctx, b)
	return b, nil
}

// endPlayerTurn runs the shared end-of-turn sequence: cooldown tick, status
// tick (player first, then monster), termination checks, the monster's
// counter-attack, then the turn increment.
func (s *BattleService) endPlayerTurn(ctx context.Context, b *game.BattleSession) {
	engine.TickCooldowns(&b.Player)
	engine.TickStatuses(b, s.Effects)

	// DoT may end the battle before the monster moves.
	if b.Monster.CurrentHP <= 0 {
		s.finish(b, game.WinnerPlayer)
		return
	}
	if b.Player.CurrentHP <= 0 {
		s.finish(b, game.WinnerMonster)
		return
	}

	monsterRNG := s.RNG(b.Seed, b.Turn, engine.OffsetMonster)
	flavorRNG := s.RNG(b.Seed, b.Turn, engine.OffsetFlavor)
	if engine.MonsterAttack(ctx, b, s.Effects, monsterRNG, flavorRNG, s.Delay) {
		s.finish(b, game.WinnerMonster)
		return
	}
	b.Turn++
}

// finish completes the session and persists victory rewards. Persistence is
// best-effort: failures are logged and never mutate combat state.
func (s *BattleService) finish(b *game.BattleSession, winner game.Winner) {
	engine.Complete(b, winner)
	if winner != game.WinnerPlayer {
		return
	}

	if err := s.Chars.AddXP(b.ActorID, b.Rewards.XP); err != nil {
		logging.Error("reward XP persist failed", err, logging.Fields{"battle_id": b.BattleID})
	}
	if err := s.Chars.AddGold(b.ActorID, b.Rewards.Gold); err != nil {
		logging.Error("reward gold persist failed", err, logging.Fields{"battle_id": b.BattleID})
	}
	s.rollCompanionLoot(b)
}

// rollCompanionLoot grants one extra catalogue item with probability
// min(0.35, 0.05*huntingSkillPoints). The roll uses its own RNG offset so
// replays stay stable, and the item pick iterates the catalogue in sorted
// id order for the same reason.
func (s *BattleService) rollCompanionLoot(b *game.BattleSession) {
	record, err := s.Chars.GetCharacter(b.ActorID)
	if err != nil || record.CompanionHunting <= 0 {
		return
	}
	chance := 0.05 * float64(record.CompanionHunting)
	if chance > 0.35 {
		chance = 0.35
	}

	rng := s.RNG(b.Seed, b.Turn, engine.OffsetLoot)
	if rng.Float64() >= chance {
		return
	}

	catalogue, err := s.Inventory.ItemCatalogue()
	if err != nil || len(catalogue) == 0 {
		return
	}
	ids := make([]string, 0, len(catalogue))
	for id := range catalogue {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	picked := ids[rng.Intn(len(ids))]

	if err := s.Inventory.AddItem(b.ActorID, picked, 1); err != nil {
		logging.Error("companion loot grant failed", err, logging.Fields{"battle_id": b.BattleID, "item_id": picked})
		return
	}
	b.Logf(fmt.Sprintf("Companion found extra loot: %s", catalogue[picked].Name))
}
