package session

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/ashvale/arena/internal/game"
)

var (
	ErrAlreadyInBattle = errors.New("actor already has an active battle")
	ErrNotFound        = errors.New("battle not found")
)

// Registry owns the set of live battle sessions. It keys sessions by battle
// id with a secondary index by actor id; insert, lookup and delete are
// atomic under one mutex so the one-active-battle-per-actor invariant holds
// against concurrent starts.
type Registry struct {
	mu      sync.Mutex
	byID    map[string]*game.BattleSession
	byActor map[int64]string

	now func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]*game.BattleSession),
		byActor: make(map[int64]string),
		now:     time.Now,
	}
}

// Create builds and registers a new session for the actor. It fails when
// the actor already has an active battle; a lingering completed session is
// replaced. The battle id derives from the actor id and creation time, and
// the seed is a stable hash of actor, monster and battle id so the whole
// encounter replays from its identity.
func (r *Registry) Create(actorID int64, player, monster game.Combatant) (*game.BattleSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existingID, ok := r.byActor[actorID]; ok {
		if existing, live := r.byID[existingID]; live && existing.Active() {
			return nil, ErrAlreadyInBattle
		}
		delete(r.byID, existingID)
	}

	createdAt := r.now().UTC()
	battleID := fmt.Sprintf("%d_%d", actorID, createdAt.UnixNano())
	b := &game.BattleSession{
		BattleID:  battleID,
		ActorID:   actorID,
		Seed:      battleSeed(actorID, monster.Name, battleID),
		Turn:      1,
		Status:    game.StatusActive,
		StartTime: createdAt,
		Player:    player,
		Monster:   monster,
	}
	b.Logf(fmt.Sprintf("Battle started! %s vs %s (seed %d)", player.Name, monster.Name, b.Seed%10000))

	r.byID[battleID] = b
	r.byActor[actorID] = battleID
	return b, nil
}

// battleSeed hashes the battle identity into a 32-bit seed.
func battleSeed(actorID int64, monsterName, battleID string) int64 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%s:%s", actorID, monsterName, battleID)
	return int64(h.Sum32())
}

// Get returns the session with the given battle id.
func (r *Registry) Get(battleID string) (*game.BattleSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[battleID]
	return b, ok
}

// ForActor returns the actor's registered session, if any.
func (r *Registry) ForActor(actorID int64) (*game.BattleSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byActor[actorID]
	if !ok {
		return nil, false
	}
	b, ok := r.byID[id]
	return b, ok
}

// Remove deletes a session and its actor index entry.
func (r *Registry) Remove(battleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[battleID]
	if !ok {
		return
	}
	delete(r.byID, battleID)
	if cur, ok := r.byActor[b.ActorID]; ok && cur == battleID {
		delete(r.byActor, b.ActorID)
	}
}

// Sweep removes completed sessions whose battle ended at least ttl ago and
// returns how many were collected. The host decides when to call it;
// removal is never implicit in action handling.
func (r *Registry) Sweep(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-ttl)
	removed := 0
	for id, b := range r.byID {
		if b.Status != game.StatusCompleted || b.EndTime.After(cutoff) {
			continue
		}
		delete(r.byID, id)
		if cur, ok := r.byActor[b.ActorID]; ok && cur == id {
			delete(r.byActor, b.ActorID)
		}
		removed++
	}
	return removed
}

// Len reports the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
