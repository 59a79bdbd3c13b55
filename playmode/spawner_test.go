package playmode

import "testing"

func TestSpawnerInterval(t *testing.T) {
	s := NewSpawner(4, 10)
	if !s.Tick(0.5, 0) {
		t.Fatalf("expected the first spawn as soon as time has passed")
	}

	spawns := 0
	for range 16 { // 8 seconds
		if s.Tick(0.5, 1) {
			spawns++
		}
	}
	if spawns != 1 {
		t.Fatalf("expected exactly one spawn in the following 8 seconds, got %d", spawns)
	}
	if s.Next() <= s.Elapsed() {
		t.Fatalf("expected the next spawn to be scheduled in the future, next=%f elapsed=%f", s.Next(), s.Elapsed())
	}
}

func TestSpawnerCap(t *testing.T) {
	s := NewSpawner(4, 10)
	population := 0
	for range 100 {
		if s.Tick(1, population) {
			population++
		}
	}
	if population != 10 {
		t.Fatalf("expected population to be capped at 10, got %d", population)
	}

	// The timer has long expired, but nothing spawns while at the cap.
	if s.Tick(10, population) {
		t.Fatalf("expected no spawn at the cap")
	}
	if !s.Tick(0.1, population-1) {
		t.Fatalf("expected a spawn as soon as the population drops below the cap")
	}
}

func TestSpawnerNoTimePassed(t *testing.T) {
	s := NewSpawner(4, 10)
	if s.Tick(0, 0) {
		t.Fatalf("expected no spawn before any time has passed")
	}
}
