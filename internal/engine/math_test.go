package engine

import (
	"math"
	"testing"
)

func TestHitRollClampsProbability(t *testing.T) {
	// Overwhelming accuracy still caps at 0.95.
	rng := &scriptRand{floats: []float64{0.96}}
	kind, mult, pHit := HitRoll(rng, 10000, 1)
	if pHit != 0.95 {
		t.Fatalf("expected pHit capped at 0.95, got %v", pHit)
	}
	if kind != HitMiss || mult != 0 {
		t.Fatalf("roll above pHit must miss, got %s mult=%v", kind, mult)
	}

	// Zero accuracy still floors at 0.05.
	rng = &scriptRand{floats: []float64{0.01}}
	kind, _, pHit = HitRoll(rng, 0, 50)
	if pHit != 0.05 {
		t.Fatalf("expected pHit floored at 0.05, got %v", pHit)
	}
	if kind == HitMiss {
		t.Fatalf("roll below pHit should land")
	}
}

func TestHitRollGrazeWindow(t *testing.T) {
	// pHit = 0.95; full-hit band ends at 0.855, graze band at 0.95.
	rng := &scriptRand{floats: []float64{0.9}}
	kind, mult, _ := HitRoll(rng, 10000, 1)
	if kind != HitGraze {
		t.Fatalf("expected graze, got %s", kind)
	}
	if mult != 0.6 {
		t.Fatalf("expected graze multiplier 0.6, got %v", mult)
	}

	rng = &scriptRand{floats: []float64{0.8}}
	kind, mult, _ = HitRoll(rng, 10000, 1)
	if kind != HitFull || mult != 1.0 {
		t.Fatalf("expected full hit, got %s mult=%v", kind, mult)
	}
}

func TestHitRollEvasionFloor(t *testing.T) {
	// Evasion 0 is treated as 1, not a guaranteed hit.
	rng := &scriptRand{floats: []float64{0.0}}
	_, _, pHit := HitRoll(rng, 19, 0)
	if pHit != 0.95 {
		t.Fatalf("expected 19/(19+1) = 0.95, got %v", pHit)
	}
}

func TestCritRoll(t *testing.T) {
	// base 0.05 + 100*0.002 = 0.25
	if !CritRoll(&scriptRand{floats: []float64{0.24}}, 0.05, 100) {
		t.Fatalf("roll below chance should crit")
	}
	if CritRoll(&scriptRand{floats: []float64{0.26}}, 0.05, 100) {
		t.Fatalf("roll above chance should not crit")
	}
	// chance caps at 0.75 regardless of luck
	if CritRoll(&scriptRand{floats: []float64{0.76}}, 0.5, 1000) {
		t.Fatalf("crit chance must cap at 0.75")
	}
}

func TestPhysicalDamageFormula(t *testing.T) {
	// attack 50 vs defense 50: scale = 0.5^1.2, variance draw 0.5 -> x1.0
	rng := &scriptRand{floats: []float64{0.5}}
	got := PhysicalDamage(rng, 100, 50, 50, 0)
	want := int(math.Round(100 * math.Pow(0.5, 1.2)))
	if got != want {
		t.Fatalf("expected %d damage, got %d", want, got)
	}
}

func TestDamageFloorsAtOne(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.0}}
	if got := PhysicalDamage(rng, 1, 1, 1000, 0); got != 1 {
		t.Fatalf("landed attacks deal at least 1, got %d", got)
	}
}

func TestPenetrationReducesDefense(t *testing.T) {
	full := PhysicalDamage(&scriptRand{floats: []float64{0.5}}, 100, 50, 50, 0)
	pierced := PhysicalDamage(&scriptRand{floats: []float64{0.5}}, 100, 50, 50, 30)
	if pierced <= full {
		t.Fatalf("penetration should raise damage: %d vs %d", pierced, full)
	}
	// Negative penetration is ignored, and defense never goes below zero.
	neg := PhysicalDamage(&scriptRand{floats: []float64{0.5}}, 100, 50, 50, -10)
	if neg != full {
		t.Fatalf("negative penetration must be treated as zero: %d vs %d", neg, full)
	}
	over := PhysicalDamage(&scriptRand{floats: []float64{0.5}}, 100, 50, 5, 100)
	min := PhysicalDamage(&scriptRand{floats: []float64{0.5}}, 100, 50, 1, 0)
	if over != min {
		t.Fatalf("over-penetration caps at effective mitigation 1: %d vs %d", over, min)
	}
}

func TestMagicalMirrorsPhysical(t *testing.T) {
	p := PhysicalDamage(&scriptRand{floats: []float64{0.5}}, 120, 30, 20, 4)
	m := MagicalDamage(&scriptRand{floats: []float64{0.5}}, 120, 30, 20, 4)
	if p != m {
		t.Fatalf("same inputs must produce same damage: %d vs %d", p, m)
	}
}

func TestTurnRNGIsReproducible(t *testing.T) {
	a := TurnRNG(42, 3, OffsetPlayer)
	b := TurnRNG(42, 3, OffsetPlayer)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("same (seed, turn, offset) must replay identically")
		}
	}
	c := TurnRNG(42, 3, OffsetMonster)
	d := TurnRNG(42, 3, OffsetPlayer)
	same := true
	for i := 0; i < 10; i++ {
		if c.Float64() != d.Float64() {
			same = false
		}
	}
	if same {
		t.Fatalf("different offsets should produce different streams")
	}
}
