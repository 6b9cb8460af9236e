package service

import (
	"errors"

	"github.com/ashvale/arena/internal/engine"
	"github.com/ashvale/arena/internal/game"
	"github.com/ashvale/arena/internal/session"
)

// Validation failures: reported to the caller, no state mutation. All are
// local, recoverable and retriable, never fatal to the session.
var (
	ErrBattleNotFound     = errors.New("no active battle")
	ErrBattleNotActive    = errors.New("battle is not active")
	ErrBattleStillActive  = errors.New("battle is still active")
	ErrNotYourBattle      = errors.New("not your battle")
	ErrUnknownAction      = errors.New("unknown action")
	ErrAlreadyInBattle    = session.ErrAlreadyInBattle
	ErrCharacterNotFound  = errors.New("character not found")
	ErrMonsterNotFound    = errors.New("monster not found")
	ErrSkillNotKnown      = errors.New("you don't know this skill")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrSkillOnCooldown    = errors.New("skill is on cooldown")
	ErrInsufficientSP     = errors.New("not enough SP")
	ErrNoUltimate         = errors.New("no ultimate ability available")
	ErrMissingArgument    = errors.New("action requires an argument")
)

// CharacterStore is the persistent character collaborator. Calls happen at
// action boundaries; failures are reported but never roll back in-memory
// combat state.
type CharacterStore interface {
	GetCharacter(actorID int64) (*game.Character, error)
	SaveCharacter(c *game.Character) error
	AddXP(actorID int64, amount int) error
	AddGold(actorID int64, amount int) error
	RestoreSP(actorID int64, delta int) error
	SkillInfo(skillID string) (*game.SkillDefinition, bool)
	UltimateInfo(actorID int64) (*game.UltimateDefinition, error)
}

// InventoryStore resolves item usage and grants.
type InventoryStore interface {
	UseItem(actorID int64, itemID string, quantity int) (*game.ItemEffects, error)
	AddItem(actorID int64, itemID string, quantity int) error
	ItemCatalogue() (map[string]game.ItemDefinition, error)
}

// MonsterProvider supplies monster definitions at battle start; the engine
// never fetches monsters itself.
type MonsterProvider interface {
	Monster(id string) (*game.Monster, bool)
}

// BattleService wires the session registry, the collaborator stores and the
// effect registry into the action handlers.
type BattleService struct {
	Sessions  *session.Registry
	Chars     CharacterStore
	Inventory InventoryStore
	Monsters  MonsterProvider
	Effects   *game.EffectRegistry

	// RNG builds per-action deterministic streams; tests swap in scripted
	// sources.
	RNG engine.RNGFactory

	// Delay is the optional presentation pause before the monster acts.
	Delay engine.DelayHook
}

// New creates a BattleService with the production RNG factory.
func New(reg *session.Registry, chars CharacterStore, inv InventoryStore, monsters MonsterProvider, effects *game.EffectRegistry) *BattleService {
	return &BattleService{
		Sessions:  reg,
		Chars:     chars,
		Inventory: inv,
		Monsters:  monsters,
		Effects:   effects,
		RNG:       engine.DefaultRNG,
	}
}

// Cleanup removes a completed battle from the registry. Active battles are
// never removed implicitly.
func (s *BattleService) Cleanup(battleID string) error {
	b, ok := s.Sessions.Get(battleID)
	if !ok {
		return ErrBattleNotFound
	}
	if b.Active() {
		return ErrBattleStillActive
	}
	s.Sessions.Remove(battleID)
	return nil
}
