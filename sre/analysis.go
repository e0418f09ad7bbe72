package sre

import (
	"github.com/coregx/symregex/internal/sparse"
	"github.com/coregx/symregex/predicate"
)

// Nullable reports whether id accepts the empty word when no border
// condition holds. Anchors are not nullable in this sense; use
// NullableAt to resolve them against a position's borders.
func (b *Builder) Nullable(id NodeID) bool {
	return b.nodes[id].nullable
}

// MaybeEmpty reports whether id accepts the empty word under some
// combination of border conditions. This is the right zero-width test
// for analyses that must not depend on a concrete position, such as
// first-set computation.
func (b *Builder) MaybeEmpty(id NodeID) bool {
	return b.nodes[id].maybeEmpty
}

// HasAnchors reports whether any anchor occurs in the term.
func (b *Builder) HasAnchors(id NodeID) bool {
	return b.nodes[id].hasAnchors
}

// FixedLength returns the length in code points shared by every word
// the term accepts, or -1 if lengths vary. ∅ reports -1.
func (b *Builder) FixedLength(id NodeID) int {
	return int(b.nodes[id].fixedLen)
}

// FirstSet returns an over-approximation of the characters a non-empty
// accepted word can start with. Used to seed start-state acceleration
// and literal extraction; never used for correctness decisions.
func (b *Builder) FirstSet(id NodeID) predicate.Pred {
	return b.nodes[id].first
}

// NullableAt reports whether id accepts the empty word at a position
// where exactly the conditions in ctx hold. Anchors resolve against
// their bit; everything else follows the usual structural rules.
func (b *Builder) NullableAt(id NodeID, ctx Borders) bool {
	n := &b.nodes[id]
	if !n.hasAnchors {
		return n.nullable
	}
	switch n.kind {
	case KindStartAnchor:
		return ctx&BegInput != 0
	case KindBolAnchor:
		return ctx&BegLine != 0
	case KindEolAnchor:
		return ctx&EndLine != 0
	case KindEndAnchor:
		return ctx&EndInput != 0
	case KindConcat:
		return b.NullableAt(n.args[0], ctx) && b.NullableAt(n.args[1], ctx)
	case KindOr:
		for _, a := range n.args {
			if b.NullableAt(a, ctx) {
				return true
			}
		}
		return false
	case KindAnd:
		for _, a := range n.args {
			if !b.NullableAt(a, ctx) {
				return false
			}
		}
		return true
	case KindLoop:
		return n.lo == 0 || b.NullableAt(n.args[0], ctx)
	case KindIfThenElse:
		if b.NullableAt(n.args[0], ctx) {
			return b.NullableAt(n.args[1], ctx)
		}
		return b.NullableAt(n.args[2], ctx)
	default:
		return n.nullable
	}
}

// WatchdogLengthAt returns the length carried by a watchdog on an
// empty-word path through id at a position where the conditions in ctx
// hold, or -1 if no watchdog commits there. The matcher uses this to
// resolve the match start of fixed-length patterns without a reverse
// scan.
func (b *Builder) WatchdogLengthAt(id NodeID, ctx Borders) int {
	n := &b.nodes[id]
	switch n.kind {
	case KindWatchdog:
		return int(n.lo)
	case KindConcat:
		head, tail := n.args[0], n.args[1]
		if !b.NullableAt(head, ctx) || !b.NullableAt(tail, ctx) {
			return -1
		}
		if w := b.WatchdogLengthAt(tail, ctx); w >= 0 {
			return w
		}
		return b.WatchdogLengthAt(head, ctx)
	case KindOr:
		best := -1
		for _, a := range n.args {
			if w := b.WatchdogLengthAt(a, ctx); w > best {
				best = w
			}
		}
		return best
	case KindAnd:
		if !b.NullableAt(id, ctx) {
			return -1
		}
		for _, a := range n.args {
			if w := b.WatchdogLengthAt(a, ctx); w >= 0 {
				return w
			}
		}
		return -1
	case KindLoop:
		if b.NullableAt(n.args[0], ctx) {
			return b.WatchdogLengthAt(n.args[0], ctx)
		}
		return -1
	case KindIfThenElse:
		if b.NullableAt(n.args[0], ctx) {
			return b.WatchdogLengthAt(n.args[1], ctx)
		}
		return b.WatchdogLengthAt(n.args[2], ctx)
	default:
		return -1
	}
}

// CollectPredicates returns the distinct predicates mentioned by
// Singleton terms in id, in first-visit order. Shared subterms are
// visited once.
func (b *Builder) CollectPredicates(id NodeID) []predicate.Pred {
	visited := sparse.NewSet(uint32(len(b.nodes)))
	seen := make(map[uint64][]predicate.Pred)
	var preds []predicate.Pred
	var walk func(NodeID)
	walk = func(id NodeID) {
		if !visited.Insert(uint32(id)) {
			return
		}
		n := &b.nodes[id]
		if n.kind == KindSingleton {
			h := n.pred.Hash()
			for _, p := range seen[h] {
				if p.Equivalent(n.pred) {
					return
				}
			}
			seen[h] = append(seen[h], n.pred)
			preds = append(preds, n.pred)
			return
		}
		for _, a := range n.args {
			walk(a)
		}
	}
	walk(id)
	return preds
}
