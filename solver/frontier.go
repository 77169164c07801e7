package solver

import (
	"container/heap"

	"github.com/cardgrift/shenzhen/engine"
)

// node is one discovered board in the search graph. Parent pointers
// allow path reconstruction without a separate came-from map.
type node struct {
	board  engine.Board
	move   engine.Move // move that produced this board; zero for the root
	parent *node
	g      uint32
}

type entry struct {
	node *node
	f    uint32
	g    uint32
	seq  uint64 // insertion order, final deterministic tie-break
}

// frontier is a min-heap of discovered-but-unexpanded states ordered by
// f, then lower g, then insertion order.
type frontier struct {
	entries []entry
	seq     uint64
}

func (fr *frontier) Len() int { return len(fr.entries) }

func (fr *frontier) Less(i, j int) bool {
	a, b := fr.entries[i], fr.entries[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	return a.seq < b.seq
}

func (fr *frontier) Swap(i, j int) {
	fr.entries[i], fr.entries[j] = fr.entries[j], fr.entries[i]
}

func (fr *frontier) Push(x any) {
	fr.entries = append(fr.entries, x.(entry))
}

func (fr *frontier) Pop() any {
	old := fr.entries
	n := len(old)
	e := old[n-1]
	fr.entries = old[:n-1]
	return e
}

func (fr *frontier) push(n *node, f uint32) {
	fr.seq++
	heap.Push(fr, entry{node: n, f: f, g: n.g, seq: fr.seq})
}

func (fr *frontier) pop() *node {
	return heap.Pop(fr).(entry).node
}
