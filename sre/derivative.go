package sre

import "github.com/coregx/symregex/predicate"

// Character and border derivatives.
//
// Derivative(α, R) is the regex accepting exactly the words w such
// that R accepts c·w for the characters c ∈ α. At match time α is
// always a minterm of the pattern's predicates, so the Singleton case
// reduces to a subset test: a minterm is either fully inside or fully
// outside every mentioned predicate.
//
// Border derivatives handle anchors. They rewrite anchors that are
// reachable at the current position (before any character is
// consumed) against the border conditions holding there, and leave
// the rest of the term untouched. Anchors that are not rewritten die
// through the ordinary character derivative, which maps every anchor
// to ∅.

// Derivative returns the derivative of id with respect to the
// character class alpha. alpha must be a minterm of the predicates
// mentioned by the term.
func (b *Builder) Derivative(id NodeID, alpha predicate.Pred) NodeID {
	memo := make(map[NodeID]NodeID)
	return b.derive(id, alpha, memo)
}

func (b *Builder) derive(id NodeID, alpha predicate.Pred, memo map[NodeID]NodeID) NodeID {
	if d, ok := memo[id]; ok {
		return d
	}
	n := &b.nodes[id]
	var d NodeID
	switch n.kind {
	case KindSingleton:
		if alpha.SubsetOf(n.pred) {
			d = b.epsilon
		} else {
			d = b.empty
		}
	case KindConcat:
		head, tail := n.args[0], n.args[1]
		d = b.Concat(b.derive(head, alpha, memo), tail)
		if b.nodes[head].nullable {
			d = b.Or(d, b.derive(tail, alpha, memo))
		}
	case KindOr:
		parts := make([]NodeID, len(n.args))
		for i, a := range n.args {
			parts[i] = b.derive(a, alpha, memo)
		}
		d = b.Or(parts...)
	case KindAnd:
		parts := make([]NodeID, len(n.args))
		for i, a := range n.args {
			parts[i] = b.derive(a, alpha, memo)
		}
		d = b.And(parts...)
	case KindLoop:
		body := n.args[0]
		lo := n.lo
		if lo > 0 {
			lo--
		}
		hi := n.hi
		if hi != Inf {
			hi--
		}
		d = b.Concat(b.derive(body, alpha, memo), b.mkLoop(body, lo, hi, n.lazy))
	case KindIfThenElse:
		d = b.IfThenElse(
			b.derive(n.args[0], alpha, memo),
			b.derive(n.args[1], alpha, memo),
			b.derive(n.args[2], alpha, memo),
		)
	default:
		// ε, ∅, anchors, and watchdogs consume nothing.
		d = b.empty
	}
	memo[id] = d
	return d
}

// DeriveBegin resolves begin anchors reachable at a line-start
// position. ^ rewrites to ε; \A rewrites to ε at position 0 and to ∅
// elsewhere. End anchors are left for DeriveEnd and nullability.
//
// The rewrite runs to a fixpoint: resolving one anchor can expose
// another at the same boundary (as in \A^a).
func (b *Builder) DeriveBegin(id NodeID, atInputStart bool) NodeID {
	ctx := BegLine
	if atInputStart {
		ctx |= BegInput
	}
	return b.borderFixpoint(id, ctx, true)
}

// DeriveEnd resolves end anchors reachable at an end-of-line position
// (just before a '\n', or the end of input). $ rewrites to ε; \z
// rewrites to ε at end of input and to ∅ elsewhere.
func (b *Builder) DeriveEnd(id NodeID, atInputEnd bool) NodeID {
	ctx := EndLine
	if atInputEnd {
		ctx |= EndInput
	}
	return b.borderFixpoint(id, ctx, false)
}

func (b *Builder) borderFixpoint(id NodeID, ctx Borders, begin bool) NodeID {
	// Anchor chains are shallow; the bound only guards against
	// pathological self-feeding rewrites.
	for i := 0; i < 64; i++ {
		memo := make(map[NodeID]NodeID)
		next := b.borderStep(id, ctx, begin, memo)
		if next == id {
			return id
		}
		id = next
	}
	return id
}

func (b *Builder) borderStep(id NodeID, ctx Borders, begin bool, memo map[NodeID]NodeID) NodeID {
	n := &b.nodes[id]
	if !n.hasAnchors {
		return id
	}
	if d, ok := memo[id]; ok {
		return d
	}
	var d NodeID
	switch n.kind {
	case KindStartAnchor:
		switch {
		case !begin:
			d = id
		case ctx&BegInput != 0:
			d = b.epsilon
		default:
			d = b.empty
		}
	case KindBolAnchor:
		if begin {
			d = b.epsilon
		} else {
			d = id
		}
	case KindEolAnchor:
		if begin {
			d = id
		} else {
			d = b.epsilon
		}
	case KindEndAnchor:
		switch {
		case begin:
			d = id
		case ctx&EndInput != 0:
			d = b.epsilon
		default:
			d = b.empty
		}
	case KindConcat:
		head, tail := n.args[0], n.args[1]
		d = b.Concat(b.borderStep(head, ctx, begin, memo), tail)
		if b.nodes[head].nullable {
			// The head can vanish here, exposing the tail's anchors at
			// this same boundary.
			d = b.Or(d, b.borderStep(tail, ctx, begin, memo))
		}
	case KindOr:
		parts := make([]NodeID, len(n.args))
		for i, a := range n.args {
			parts[i] = b.borderStep(a, ctx, begin, memo)
		}
		d = b.Or(parts...)
	case KindAnd:
		parts := make([]NodeID, len(n.args))
		for i, a := range n.args {
			parts[i] = b.borderStep(a, ctx, begin, memo)
		}
		d = b.And(parts...)
	case KindLoop:
		// One unrolling exposes the first iteration's anchors; the
		// residual loop keeps the rest intact.
		body := n.args[0]
		lo := n.lo
		if lo > 0 {
			lo--
		}
		hi := n.hi
		if hi != Inf {
			hi--
		}
		d = b.Concat(b.borderStep(body, ctx, begin, memo), b.mkLoop(body, lo, hi, n.lazy))
		if n.lo == 0 {
			d = b.Or(b.epsilon, d)
		}
	case KindIfThenElse:
		d = b.IfThenElse(
			b.borderStep(n.args[0], ctx, begin, memo),
			b.borderStep(n.args[1], ctx, begin, memo),
			b.borderStep(n.args[2], ctx, begin, memo),
		)
	default:
		d = id
	}
	memo[id] = d
	return d
}
