package core

import "testing"

func TestSimpleRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)

	for i := range 100 {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSimpleRNGIntnRange(t *testing.T) {
	rng := NewRNG(7)
	for range 1000 {
		v := rng.Intn(17)
		if v < 0 || v >= 17 {
			t.Fatalf("Intn(17) = %d, out of range", v)
		}
	}
}

func TestSimpleRNGIntnNonPositive(t *testing.T) {
	rng := NewRNG(7)
	if v := rng.Intn(0); v != 0 {
		t.Errorf("Intn(0) = %d, expected 0", v)
	}
	if v := rng.Intn(-3); v != 0 {
		t.Errorf("Intn(-3) = %d, expected 0", v)
	}
}

func TestZeroSeedUsesDefault(t *testing.T) {
	a := NewRNG(0)
	b := NewRNG(88172645463325252)
	if a.Next() != b.Next() {
		t.Error("seed 0 should fall back to the default seed")
	}
}

func TestRuntimeConfigRNG(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	a, b := cfg.RNG(), NewRNG(99)
	if a.Next() != b.Next() {
		t.Error("RuntimeConfig.RNG should use Seed when non-zero")
	}
}

func TestInputFrameDirection(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionUp)

	d := f.Direction()
	if d.X != 1 || d.Z != -1 || d.Y != 0 {
		t.Errorf("Direction() = %+v, expected {1 0 -1}", d)
	}

	f.Clear()
	if d := f.Direction(); d != (Vec3{}) {
		t.Errorf("Direction() after Clear = %+v, expected zero", d)
	}
}
