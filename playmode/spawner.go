package playmode

// Spawner decides when a new actor should spawn. It accumulates elapsed time, and once the accumulated time
// passes the next spawn time while the population is below the cap, a spawn is due and the next spawn is
// scheduled Interval seconds later.
type Spawner struct {
	Interval float32
	Cap      int

	gen  float32
	next float32
}

// NewSpawner returns a spawner whose first spawn is due as soon as any time has passed.
func NewSpawner(interval float32, cap int) *Spawner {
	return &Spawner{Interval: interval, Cap: cap}
}

// Tick advances the spawner by elapsed seconds and returns true if an actor should be spawned. A due spawn
// is held back until the population drops below the cap.
func (s *Spawner) Tick(elapsed float32, population int) bool {
	s.gen += elapsed
	if s.gen > s.next && population < s.Cap {
		s.next = s.gen + s.Interval
		return true
	}
	return false
}

// Elapsed returns the time accumulated by the spawner.
func (s *Spawner) Elapsed() float32 {
	return s.gen
}

// Next returns the accumulated time after which the next spawn is due.
func (s *Spawner) Next() float32 {
	return s.next
}
