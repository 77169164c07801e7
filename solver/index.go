package solver

// index deduplicates visited board states by their canonical keys. A
// state is skipped when it was already expanded, or when it was already
// discovered at an equal or lower move count.
type index struct {
	gscores map[string]uint32
	closed  map[string]struct{}
}

func newIndex() *index {
	return &index{
		gscores: make(map[string]uint32, 1<<12),
		closed:  make(map[string]struct{}, 1<<12),
	}
}

// close marks a key as expanded. Reports false if it already was.
func (ix *index) close(key string) bool {
	if _, ok := ix.closed[key]; ok {
		return false
	}
	ix.closed[key] = struct{}{}
	return true
}

// admit records a discovery of key at move count g. Reports false if
// the key is closed or known at an equal or better g.
func (ix *index) admit(key string, g uint32) bool {
	if _, ok := ix.closed[key]; ok {
		return false
	}
	if prev, ok := ix.gscores[key]; ok && prev <= g {
		return false
	}
	ix.gscores[key] = g
	return true
}

func (ix *index) size() int {
	return len(ix.gscores)
}
