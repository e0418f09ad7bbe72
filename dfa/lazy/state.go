package lazy

import (
	"fmt"

	"github.com/coregx/symregex/sre"
)

// StateID identifies a DFA state within one cache generation.
// IDs are dense indexes into the cache's state table.
type StateID uint32

// InvalidState marks an absent state: an unfilled transition slot or an
// uninitialized ID.
const InvalidState StateID = 0xFFFFFFFF

// borderContexts is the number of distinct border-condition bit
// patterns a position can present (the four sre.Borders bits).
const borderContexts = 16

// State is one state of the lazy DFA: a symbolic regex term together
// with everything the scan loop reads per character.
//
// A state is identified by its term: two positions of the scan that
// reach the same derivative share the state, which is what keeps the
// table small. Per-minterm transitions are filled on demand; an
// InvalidState slot means the transition has not been computed yet.
//
// Final and watchdog answers are precomputed per border context at
// construction, so the hot loop never touches the AST builder.
type State struct {
	id   StateID
	gen  uint64
	node sre.NodeID

	// next is indexed by minterm ID. Slots start at InvalidState and
	// are filled under the DFA's write lock.
	next []StateID

	dead     bool
	final    [borderContexts]bool
	watchdog [borderContexts]int32
}

// ID returns the state's index in the current cache generation.
func (s *State) ID() StateID {
	return s.id
}

// Node returns the symbolic term this state represents.
func (s *State) Node() sre.NodeID {
	return s.node
}

// IsDead reports whether the state's language is empty. A dead state
// can never reach a match; the scan loop stops on it.
func (s *State) IsDead() bool {
	return s.dead
}

// IsFinal reports whether the state accepts at a position where
// exactly the conditions in ctx hold.
func (s *State) IsFinal(ctx sre.Borders) bool {
	return s.final[ctx&0xF]
}

// WatchdogLength returns the committed match length if the state
// accepts through a watchdog in the given border context, or -1.
func (s *State) WatchdogLength(ctx sre.Borders) int {
	return int(s.watchdog[ctx&0xF])
}

// String returns a compact debugging form.
func (s *State) String() string {
	return fmt.Sprintf("State(id=%d, node=%d, dead=%v, final=%v)", s.id, s.node, s.dead, s.final[0])
}
