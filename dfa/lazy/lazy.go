// Package lazy implements a lazy DFA over symbolic regex terms.
//
// States are Brzozowski derivatives of the pattern, constructed on
// demand: the first time a scan leaves a state through a minterm, the
// derivative for that minterm is computed, interned, and recorded in
// the state's transition slot. Positions that reach the same
// derivative share a state, which keeps the table far smaller than an
// eager determinization would be.
//
// The cache is bounded. When it fills it is cleared in one step and
// the scan rebuilds the states it still needs; derivatives are
// deterministic, so the rebuild reproduces them exactly. Matching
// therefore degrades to recomputation under memory pressure, never to
// failure.
//
// A DFA is safe for concurrent use. The fast path takes a read lock
// and follows a filled transition slot; the slow path takes the write
// lock to extend the table. The write lock also covers the AST
// builder, because computing a derivative interns new terms.
package lazy

import (
	"sync"

	"github.com/coregx/symregex/predicate"
	"github.com/coregx/symregex/sre"
)

// DFA is a lazily determinized automaton for one symbolic regex term.
//
// The zero value is not usable; construct with New. The builder passed
// to New must not be mutated elsewhere while the DFA is live, because
// derivative construction interns terms into it under the DFA's lock.
type DFA struct {
	mu      sync.RWMutex
	builder *sre.Builder
	root    sre.NodeID
	cls     *predicate.Classifier
	cache   *Cache
	config  Config

	// starts holds the root term rewritten for each entry context.
	// These are node IDs, not states: the states are interned on
	// first use and again after every cache clear.
	starts [startKindCount]sre.NodeID

	// newlineMinterm is the minterm holding exactly '\n', or -1 when
	// border folding does not apply. Transitions on it resolve end
	// anchors before the character and begin anchors after it.
	newlineMinterm int

	hasAnchors bool
}

// New builds a DFA for root over the minterm alphabet of cls. The
// classifier must partition the predicates mentioned by root; when the
// term carries anchors it must also isolate '\n' in its own minterm,
// or line anchors will not resolve.
func New(builder *sre.Builder, root sre.NodeID, cls *predicate.Classifier, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	d := &DFA{
		builder:        builder,
		root:           root,
		cls:            cls,
		cache:          NewCache(config.MaxStates),
		config:         config,
		newlineMinterm: -1,
		hasAnchors:     builder.HasAnchors(root),
	}
	d.starts[StartText] = builder.DeriveBegin(root, true)
	d.starts[StartLine] = builder.DeriveBegin(root, false)
	d.starts[StartInner] = root
	if d.hasAnchors {
		m := int(cls.Lookup('\n'))
		if cls.Minterm(m).Equivalent(predicate.MkChar('\n', false)) {
			d.newlineMinterm = m
		}
	}
	return d, nil
}

// StartState returns the state for entering a scan in the given border
// context. The state is interned on first use, and re-interned
// transparently after a cache clear.
func (d *DFA) StartState(kind StartKind) *State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.intern(d.starts[kind])
}

// State returns the state for an arbitrary term, interned on first
// use. Callers that scan with rewritten roots (a reverse term, a
// seek term) enter the automaton here instead of StartState.
func (d *DFA) State(node sre.NodeID) *State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.intern(node)
}

// Next returns the successor of q on minterm m.
//
// q may be stale (from before a cache clear); it is revalidated by its
// term. The returned state is current as of this call, which is all a
// scan loop needs: it comes back through Next for every step.
func (d *DFA) Next(q *State, m uint16) *State {
	d.mu.RLock()
	if q.gen == d.cache.Gen() {
		if id := q.next[m]; id != InvalidState {
			s := d.cache.ByID(id)
			d.mu.RUnlock()
			return s
		}
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	if q.gen != d.cache.Gen() {
		q = d.intern(q.node)
	}
	if id := q.next[m]; id != InvalidState {
		return d.cache.ByID(id)
	}

	t := d.intern(d.deltaNode(q.node, m))

	// Interning can clear the cache, invalidating q or even t. Record
	// the transition only when both survived in the current
	// generation; the result itself is correct either way.
	if q.gen == d.cache.Gen() && t.gen == d.cache.Gen() {
		q.next[m] = t.id
	}
	return t
}

// deltaNode computes the derivative term for one minterm. On the
// newline minterm, end anchors resolve against the end-of-line
// boundary before the character and begin anchors against the
// line-start boundary after it.
func (d *DFA) deltaNode(node sre.NodeID, m uint16) sre.NodeID {
	alpha := d.cls.Minterm(int(m))
	if int(m) == d.newlineMinterm {
		t := d.builder.DeriveEnd(node, false)
		t = d.builder.Derivative(t, alpha)
		return d.builder.DeriveBegin(t, false)
	}
	return d.builder.Derivative(node, alpha)
}

// intern returns the current-generation state for node, constructing
// it if needed. Callers must hold the write lock.
func (d *DFA) intern(node sre.NodeID) *State {
	if s, ok := d.cache.Lookup(node); ok {
		return s
	}
	return d.cache.Insert(node, func(id StateID, gen uint64) *State {
		return d.buildState(node, id, gen)
	})
}

// buildState constructs the state for node: empty transition slots and
// the per-border-context accept answers the scan loop reads without
// touching the builder.
func (d *DFA) buildState(node sre.NodeID, id StateID, gen uint64) *State {
	s := &State{
		id:   id,
		gen:  gen,
		node: node,
		next: make([]StateID, d.cls.Len()),
		dead: node == d.builder.Empty(),
	}
	for i := range s.next {
		s.next[i] = InvalidState
	}
	for ctx := 0; ctx < borderContexts; ctx++ {
		s.final[ctx] = d.builder.NullableAt(node, sre.Borders(ctx))
		s.watchdog[ctx] = int32(d.builder.WatchdogLengthAt(node, sre.Borders(ctx)))
	}
	return s
}

// NumMinterms returns the size of the minterm alphabet.
func (d *DFA) NumMinterms() int {
	return d.cls.Len()
}

// Classify maps a code point to its minterm ID.
func (d *DFA) Classify(r rune) uint16 {
	return d.cls.Lookup(r)
}

// CacheStats returns a snapshot of the state cache counters.
func (d *DFA) CacheStats() CacheStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cache.Stats()
}
