package lazy

import (
	"github.com/coregx/symregex/internal/conv"
	"github.com/coregx/symregex/sre"
)

// Cache is the bounded store of interned DFA states.
//
// States are keyed by their symbolic term: hash consing in the AST
// builder makes the NodeID a canonical key, so no separate state hash
// is needed. When the cache reaches its capacity it is cleared in one
// step and states are rebuilt on demand; derivatives are deterministic,
// so a rebuild reproduces exactly the states the scan still needs.
// Start states are re-interned on first use after a clear and are
// therefore never lost.
//
// Clearing bumps the generation counter. State pointers from an older
// generation are stale: their IDs and transition slots refer to the
// previous table. The DFA revalidates the generation before trusting
// either.
//
// The cache is not synchronized. The owning DFA serializes all access
// through its RWMutex, because inserting a state also mutates the AST
// builder (derivative construction interns new terms) and the two must
// move under one lock.
type Cache struct {
	states map[sre.NodeID]*State
	byID   []*State

	maxStates uint32
	gen       uint64

	clears int
	hits   uint64
	misses uint64
}

// NewCache creates a cache holding at most maxStates states per
// generation.
func NewCache(maxStates uint32) *Cache {
	return &Cache{
		states:    make(map[sre.NodeID]*State),
		maxStates: maxStates,
	}
}

// Lookup returns the interned state for node in the current
// generation.
func (c *Cache) Lookup(node sre.NodeID) (*State, bool) {
	s, ok := c.states[node]
	if ok {
		c.hits++
	}
	return s, ok
}

// Insert interns a state for node, clearing the cache first if it is
// at capacity. The build callback constructs the state once its ID is
// known; it must not touch the cache.
func (c *Cache) Insert(node sre.NodeID, build func(id StateID, gen uint64) *State) *State {
	if conv.IntToUint32(len(c.byID)) >= c.maxStates {
		c.clearKeepMemory()
	}
	c.misses++
	s := build(StateID(conv.IntToUint32(len(c.byID))), c.gen)
	c.states[node] = s
	c.byID = append(c.byID, s)
	return s
}

// ByID resolves a state ID of the current generation.
func (c *Cache) ByID(id StateID) *State {
	return c.byID[id]
}

// Gen returns the current generation. States whose generation differs
// are stale and must be re-interned by node.
func (c *Cache) Gen() uint64 {
	return c.gen
}

// Size returns the number of states in the current generation.
func (c *Cache) Size() int {
	return len(c.byID)
}

// clearKeepMemory discards every state while keeping the map's bucket
// memory, and moves to the next generation. Rebuilding is deterministic
// and the scan resumes from its current term, so this trades a burst of
// recomputation for bounded memory, never a failure.
func (c *Cache) clearKeepMemory() {
	for k := range c.states {
		delete(c.states, k)
	}
	c.byID = c.byID[:0]
	c.gen++
	c.clears++
}

// Stats returns the cache counters accumulated since construction.
func (c *Cache) Stats() CacheStats {
	total := c.hits + c.misses
	st := CacheStats{
		States: len(c.byID),
		Hits:   c.hits,
		Misses: c.misses,
		Clears: c.clears,
	}
	if total > 0 {
		st.HitRate = float64(c.hits) / float64(total)
	}
	return st
}

// CacheStats describes transition-cache behavior for one DFA. The
// engine exposes these for tuning MaxStates: a high clear count with a
// low hit rate means the working set exceeds the cap.
type CacheStats struct {
	// States is the number of states in the current generation.
	States int

	// Hits counts state lookups answered from the cache.
	Hits uint64

	// Misses counts lookups that had to construct a state.
	Misses uint64

	// Clears counts whole-cache evictions.
	Clears int

	// HitRate is Hits / (Hits + Misses), or 0 before any lookup.
	HitRate float64
}
