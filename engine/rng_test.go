package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Roll(20) != b.Roll(20) {
			t.Fatal("same seed produced different rolls")
		}
	}
}

func TestRoll_Range(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 1000; i++ {
		v := rng.Roll(6)
		if v < 1 || v > 6 {
			t.Fatalf("roll out of range: %d", v)
		}
	}
}

func TestBetween_Range(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 1000; i++ {
		v := rng.Between(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("between out of range: %d", v)
		}
	}
}

func TestBetween_DegenerateRange(t *testing.T) {
	rng := NewRNG(1)
	if v := rng.Between(5, 5); v != 5 {
		t.Errorf("Between(5,5) = %d, want 5", v)
	}
	if v := rng.Between(5, 2); v != 5 {
		t.Errorf("Between(5,2) = %d, want min", v)
	}
}

func TestChance_Extremes(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 100; i++ {
		if rng.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !rng.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}

func TestPick_Range(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 1000; i++ {
		if v := rng.Pick(4); v < 0 || v > 3 {
			t.Fatalf("pick out of range: %d", v)
		}
	}
}

func TestWeightedSelect_Range(t *testing.T) {
	rng := NewRNG(1)
	weights := []int{1, 5, 10}
	counts := make([]int, len(weights))
	for i := 0; i < 1000; i++ {
		idx := rng.WeightedSelect(weights)
		if idx < 0 || idx >= len(weights) {
			t.Fatalf("index out of range: %d", idx)
		}
		counts[idx]++
	}
	// The heaviest bucket should dominate over 1000 draws.
	if counts[2] <= counts[0] {
		t.Errorf("weighted selection ignored weights: %v", counts)
	}
}
