package ecs

// IntersectEntities returns entity ids present in every set. The smallest set
// drives the iteration.
func IntersectEntities(sets ...*SparseSet) []int {
	if len(sets) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	base := sets[smallest].Entities()
	out := make([]int, 0, len(base))
outer:
	for _, id := range base {
		for i, s := range sets {
			if i != smallest && !s.Has(id) {
				continue outer
			}
		}
		out = append(out, id)
	}
	return out
}
