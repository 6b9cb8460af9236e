package engine

import (
	"math"
	"math/rand"
)

// Rand is the random source injected into every combat roll. *math/rand.Rand
// satisfies it; tests substitute scripted sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Per-action RNG stream offsets. A stream is a pure function of
// (seed, turn, offset): the same triple always reproduces the same roll
// sequence, which makes any turn replayable.
const (
	OffsetPlayer   int64 = 0
	OffsetSkill    int64 = 137
	OffsetUltimate int64 = 223
	OffsetFlee     int64 = 421
	OffsetLoot     int64 = 577
	OffsetMonster  int64 = 999
	// OffsetFlavor feeds presentation-only draws (thinking lines) so
	// narration never perturbs combat outcomes.
	OffsetFlavor int64 = 1543
)

// TurnRNG derives the deterministic random stream for one action on one
// turn.
func TurnRNG(seed int64, turn int, offset int64) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(turn) + offset))
}

// RNGFactory builds an action stream; the service keeps one as a field so
// tests can swap in scripted sources.
type RNGFactory func(seed int64, turn int, offset int64) Rand

// DefaultRNG is the production RNGFactory.
func DefaultRNG(seed int64, turn int, offset int64) Rand {
	return TurnRNG(seed, turn, offset)
}

// HitKind is the three-way outcome of an accuracy contest.
type HitKind string

const (
	HitFull  HitKind = "hit"
	HitGraze HitKind = "graze"
	HitMiss  HitKind = "miss"
)

const (
	grazeWindow     = 0.1
	grazeMultiplier = 0.6
	// pHit clamps so neither side ever has a guaranteed or impossible hit.
	minHitChance = 0.05
	maxHitChance = 0.95

	critLuckCoefficient = 0.002
	critCap             = 0.75

	damageAlpha    = 1.2
	damageVariance = 0.05
)

func clampF(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// uniform draws from [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// HitRoll resolves accuracy against evasion. It returns the outcome, the
// damage multiplier for that outcome (1.0 full, 0.6 graze, 0 miss) and the
// clamped hit probability, and consumes exactly one draw.
func HitRoll(rng Rand, accuracy, evasion int) (HitKind, float64, float64) {
	eva := evasion
	if eva < 1 {
		eva = 1
	}
	pHit := clampF(float64(accuracy)/float64(accuracy+eva), minHitChance, maxHitChance)
	roll := rng.Float64()
	switch {
	case roll <= pHit*(1-grazeWindow):
		return HitFull, 1.0, pHit
	case roll <= pHit:
		return HitGraze, grazeMultiplier, pHit
	default:
		return HitMiss, 0.0, pHit
	}
}

// CritRoll succeeds with probability clamp(base + luck*0.002, 0, 0.75).
func CritRoll(rng Rand, base float64, luck int) bool {
	return rng.Float64() < clampF(base+float64(luck)*critLuckCoefficient, 0, critCap)
}

// PhysicalDamage computes attack-vs-defense damage. Penetration reduces
// effective defense, never below zero; variance multiplies the scaled base
// by a uniform draw in [0.95, 1.05]. Landed attacks never deal less than 1.
func PhysicalDamage(rng Rand, power float64, attack, defense, penetration int) int {
	return scaledDamage(rng, power, attack, defense, penetration)
}

// MagicalDamage mirrors PhysicalDamage with intelligence against
// resistance; the penetration subtraction pattern is the same.
func MagicalDamage(rng Rand, power float64, intelligence, resistance, penetration int) int {
	return scaledDamage(rng, power, intelligence, resistance, penetration)
}

func scaledDamage(rng Rand, power float64, offense, mitigation, penetration int) int {
	pen := penetration
	if pen < 0 {
		pen = 0
	}
	eff := mitigation - pen
	if eff < 0 {
		eff = 0
	}
	if eff < 1 {
		eff = 1
	}
	scale := math.Pow(float64(offense)/float64(offense+eff), damageAlpha)
	base := power * scale
	dmg := int(math.Round(base * uniform(rng, 1-damageVariance, 1+damageVariance)))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
