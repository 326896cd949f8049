package ecs

// entityStore tracks slot generations and free slots. Slot 0 is never
// issued so the zero Entity is always invalid.
type entityStore struct {
	gens  []generation
	alive []bool
	free  []entityID
}

func (s *entityStore) create() Entity {
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		s.alive[id] = true
		return makeEntity(id, s.gens[id])
	}
	if len(s.gens) == 0 {
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
	}
	id := entityID(len(s.gens))
	s.gens = append(s.gens, 0)
	s.alive = append(s.alive, true)
	return makeEntity(id, 0)
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.alive[id] = false
	s.gens[id]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(s.gens) {
		return false
	}
	return s.alive[id] && s.gens[id] == e.generation()
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, len(s.gens))
	for i := 1; i < len(s.gens); i++ {
		if s.alive[i] {
			out = append(out, makeEntity(entityID(i), s.gens[i]))
		}
	}
	return out
}
