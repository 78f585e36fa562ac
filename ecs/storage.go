package ecs

// entityStore tracks entity generations and free slot ids. Slot ids start at 1
// so that the zero Entity is never a live handle.
type entityStore struct {
	gens  []uint32
	alive []bool
	free  []uint32
	count int
}

func (s *entityStore) create() Entity {
	var id uint32
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
		id = uint32(len(s.gens))
	}
	s.alive[id-1] = true
	s.count++
	return packEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.Slot() - 1
	s.alive[idx] = false
	s.gens[idx]++
	s.free = append(s.free, e.Slot())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.Slot()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.alive[id-1] && s.gens[id-1] == e.Generation()
}

// current returns the live handle for a slot id, if any.
func (s *entityStore) current(id int) (Entity, bool) {
	if id <= 0 || id > len(s.gens) || !s.alive[id-1] {
		return 0, false
	}
	return packEntity(uint32(id), s.gens[id-1]), true
}
