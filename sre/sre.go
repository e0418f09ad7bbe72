// Package sre implements the symbolic regular expression AST.
//
// Nodes are hash-consed into a builder-owned arena: structurally equal
// terms share a NodeID, so term equality is integer equality and
// per-term analyses can be cached at construction time. All
// constructors normalize bottom-up, which keeps the state space of the
// derivative-based DFA small: two syntactically different but
// normalization-equal derivatives land on the same NodeID and
// therefore on the same DFA state.
//
// The builder is not safe for concurrent use. Compiled matchers share
// one builder and serialize access through the lazy DFA's cache lock,
// which is the only place nodes are created after compilation.
package sre

import (
	"math"

	"github.com/coregx/symregex/internal/conv"
	"github.com/coregx/symregex/predicate"
)

// NodeID identifies a term in the builder's arena. IDs are dense and
// stable for the builder's lifetime.
type NodeID uint32

// Inf is the upper loop bound representing an unbounded repetition.
const Inf uint32 = math.MaxUint32

// Kind discriminates the term variants.
type Kind uint8

const (
	KindEmpty      Kind = iota // ∅, matches nothing
	KindEpsilon                // ε, matches the empty word
	KindSingleton              // one character satisfying a predicate
	KindConcat                 // sequence, right-associated
	KindOr                     // alternation over a canonical set
	KindAnd                    // intersection over a canonical set
	KindLoop                   // bounded or unbounded repetition
	KindIfThenElse             // conditional, (c∧t) ∨ (¬c∧e)
	KindStartAnchor            // \A
	KindEndAnchor              // \z
	KindBolAnchor              // ^
	KindEolAnchor              // $
	KindWatchdog               // zero-width accept marker with a length
)

// Borders is a bitmask of zero-width conditions holding at a position.
type Borders uint8

const (
	BegInput Borders = 1 << iota // position 0
	BegLine                      // position 0 or preceded by '\n'
	EndLine                      // end of input or followed by '\n'
	EndInput                     // end of input
)

// AllBorders has every border condition set. Useful for
// "could this term be zero-width in any context" queries.
const AllBorders = BegInput | BegLine | EndLine | EndInput

type node struct {
	kind Kind
	lazy bool
	lo   uint32 // Loop lower bound; Watchdog length
	hi   uint32 // Loop upper bound (Inf for unbounded)
	pred predicate.Pred
	args []NodeID // Concat: [head, tail]; Or/And: sorted set; ITE: [c, t, e]

	hash       uint64
	nullable   bool // accepts ε with no border condition
	maybeEmpty bool // accepts ε under some border condition
	hasAnchors bool
	fixedLen   int32 // length in code points of every accepted word, -1 if variable
	first      predicate.Pred
}

// Builder owns the arena and the interning table. All terms produced
// by one Builder may be combined freely; terms from different builders
// must never be mixed.
type Builder struct {
	nodes  []node
	intern map[uint64][]NodeID

	empty   NodeID
	epsilon NodeID
	anyChar NodeID
	dotStar NodeID
	anchors [4]NodeID // \A, \z, ^, $

	reverseMemo map[NodeID]NodeID
}

// NewBuilder creates an empty builder with the shared leaf terms
// preallocated.
func NewBuilder() *Builder {
	b := &Builder{
		intern:      make(map[uint64][]NodeID),
		reverseMemo: make(map[NodeID]NodeID),
	}
	b.empty = b.newNode(node{kind: KindEmpty, fixedLen: -1})
	b.epsilon = b.newNode(node{kind: KindEpsilon, nullable: true, maybeEmpty: true})
	b.anchors[0] = b.newNode(node{kind: KindStartAnchor, maybeEmpty: true, hasAnchors: true})
	b.anchors[1] = b.newNode(node{kind: KindEndAnchor, maybeEmpty: true, hasAnchors: true})
	b.anchors[2] = b.newNode(node{kind: KindBolAnchor, maybeEmpty: true, hasAnchors: true})
	b.anchors[3] = b.newNode(node{kind: KindEolAnchor, maybeEmpty: true, hasAnchors: true})
	b.anyChar = b.Singleton(predicate.Any())
	b.dotStar = b.mkLoop(b.anyChar, 0, Inf, false)
	return b
}

// Len returns the number of interned terms.
func (b *Builder) Len() int {
	return len(b.nodes)
}

// Empty returns ∅.
func (b *Builder) Empty() NodeID { return b.empty }

// Epsilon returns ε.
func (b *Builder) Epsilon() NodeID { return b.epsilon }

// AnyChar returns Singleton(⊤).
func (b *Builder) AnyChar() NodeID { return b.anyChar }

// DotStar returns ⊤*, the universal language.
func (b *Builder) DotStar() NodeID { return b.dotStar }

// StartAnchor returns \A.
func (b *Builder) StartAnchor() NodeID { return b.anchors[0] }

// EndAnchor returns \z.
func (b *Builder) EndAnchor() NodeID { return b.anchors[1] }

// BolAnchor returns ^.
func (b *Builder) BolAnchor() NodeID { return b.anchors[2] }

// EolAnchor returns $.
func (b *Builder) EolAnchor() NodeID { return b.anchors[3] }

// Singleton returns the term matching exactly one character satisfying
// p. An unsatisfiable predicate yields ∅.
func (b *Builder) Singleton(p predicate.Pred) NodeID {
	if !p.IsSatisfiable() {
		return b.empty
	}
	return b.internNode(node{kind: KindSingleton, pred: p, fixedLen: 1, first: p})
}

// Watchdog returns the zero-width accept marker carrying length n.
func (b *Builder) Watchdog(n uint32) NodeID {
	return b.internNode(node{kind: KindWatchdog, lo: n, nullable: true, maybeEmpty: true})
}

// Concat returns the sequence a·tail. ε is the unit and ∅ absorbs.
// The result is right-associated: the head of a Concat is never
// itself a Concat.
func (b *Builder) Concat(a, tail NodeID) NodeID {
	if a == b.empty || tail == b.empty {
		return b.empty
	}
	if a == b.epsilon {
		return tail
	}
	if tail == b.epsilon {
		return a
	}
	if b.nodes[a].kind == KindConcat {
		// Re-thread left-leaning chains to the right.
		return b.Concat(b.nodes[a].args[0], b.Concat(b.nodes[a].args[1], tail))
	}
	an, tn := &b.nodes[a], &b.nodes[tail]
	n := node{
		kind:       KindConcat,
		args:       []NodeID{a, tail},
		nullable:   an.nullable && tn.nullable,
		maybeEmpty: an.maybeEmpty && tn.maybeEmpty,
		hasAnchors: an.hasAnchors || tn.hasAnchors,
		fixedLen:   addFixed(an.fixedLen, tn.fixedLen),
		first:      an.first,
	}
	if an.maybeEmpty {
		n.first = n.first.Or(tn.first)
	}
	return b.internNode(n)
}

// ConcatAll folds Concat over ids left to right.
func (b *Builder) ConcatAll(ids ...NodeID) NodeID {
	out := b.epsilon
	for i := len(ids) - 1; i >= 0; i-- {
		out = b.Concat(ids[i], out)
	}
	return out
}

// Or returns the alternation of ids as a canonical set: nested
// alternations are flattened, duplicates and ∅ removed, ⊤* absorbs
// everything, and a singleton set collapses to its element.
//
// Bounded zero-loops over the same body and tail are folded to the
// widest bound: R{0,j}·S and R{0,k}·S collapse to R{0,max(j,k)}·S.
// This keeps the disjunctions produced by loop derivatives compact.
func (b *Builder) Or(ids ...NodeID) NodeID {
	flat := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if id == b.empty {
			continue
		}
		if b.isTopStar(id) {
			return b.dotStar
		}
		if b.nodes[id].kind == KindOr {
			flat = append(flat, b.nodes[id].args...)
			continue
		}
		flat = append(flat, id)
	}
	flat = b.foldZeroLoops(flat)
	set := sortedSet(flat)
	switch len(set) {
	case 0:
		return b.empty
	case 1:
		return set[0]
	}
	n := node{kind: KindOr, args: set, fixedLen: -2}
	for _, id := range set {
		cn := &b.nodes[id]
		n.nullable = n.nullable || cn.nullable
		n.maybeEmpty = n.maybeEmpty || cn.maybeEmpty
		n.hasAnchors = n.hasAnchors || cn.hasAnchors
		n.first = n.first.Or(cn.first)
		switch {
		case n.fixedLen == -2:
			n.fixedLen = cn.fixedLen
		case n.fixedLen != cn.fixedLen:
			n.fixedLen = -1
		}
	}
	return b.internNode(n)
}

// And returns the intersection of ids as a canonical set: flattened,
// deduplicated, with ⊤* dropped as the unit and ∅ absorbing.
func (b *Builder) And(ids ...NodeID) NodeID {
	flat := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if id == b.empty {
			return b.empty
		}
		if b.isTopStar(id) {
			continue
		}
		if b.nodes[id].kind == KindAnd {
			flat = append(flat, b.nodes[id].args...)
			continue
		}
		flat = append(flat, id)
	}
	set := sortedSet(flat)
	switch len(set) {
	case 0:
		return b.dotStar
	case 1:
		return set[0]
	}
	n := node{
		kind:       KindAnd,
		args:       set,
		nullable:   true,
		maybeEmpty: true,
		fixedLen:   -1,
		first:      predicate.Any(),
	}
	for _, id := range set {
		cn := &b.nodes[id]
		n.nullable = n.nullable && cn.nullable
		n.maybeEmpty = n.maybeEmpty && cn.maybeEmpty
		n.hasAnchors = n.hasAnchors || cn.hasAnchors
		n.first = n.first.And(cn.first)
		if cn.fixedLen >= 0 && n.fixedLen < 0 {
			n.fixedLen = cn.fixedLen
		}
	}
	return b.internNode(n)
}

// Loop returns body{lo,hi} (hi may be Inf). Inverted bounds are
// rejected; {0,0} is ε and {1,1} is the body itself.
func (b *Builder) Loop(body NodeID, lo, hi uint32, lazy bool) (NodeID, error) {
	if lo > hi {
		return b.empty, &Error{Kind: InvalidRegex, Message: "loop lower bound exceeds upper bound"}
	}
	return b.mkLoop(body, lo, hi, lazy), nil
}

// mkLoop is Loop without bound validation. Callers guarantee lo ≤ hi.
func (b *Builder) mkLoop(body NodeID, lo, hi uint32, lazy bool) NodeID {
	if hi == 0 || body == b.epsilon {
		return b.epsilon
	}
	if body == b.empty {
		if lo == 0 {
			return b.epsilon
		}
		return b.empty
	}
	if lo == 1 && hi == 1 {
		return body
	}
	bn := &b.nodes[body]
	n := node{
		kind:       KindLoop,
		lazy:       lazy,
		lo:         lo,
		hi:         hi,
		args:       []NodeID{body},
		nullable:   lo == 0 || bn.nullable,
		maybeEmpty: lo == 0 || bn.maybeEmpty,
		hasAnchors: bn.hasAnchors,
		fixedLen:   loopFixed(bn.fixedLen, lo, hi),
		first:      bn.first,
	}
	return b.internNode(n)
}

// IfThenElse returns the conditional (c∧t) ∨ (¬c∧e). A ∅ else-branch
// lowers to the plain intersection And(c, t).
func (b *Builder) IfThenElse(c, t, e NodeID) NodeID {
	if e == b.empty {
		return b.And(c, t)
	}
	if c == b.empty {
		return e
	}
	if b.isTopStar(c) {
		return t
	}
	if t == e {
		return t
	}
	cn, tn, en := &b.nodes[c], &b.nodes[t], &b.nodes[e]
	nullable := tn.nullable
	maybeEmpty := tn.maybeEmpty
	if !cn.nullable {
		nullable = en.nullable
	}
	if !cn.maybeEmpty {
		maybeEmpty = maybeEmpty || en.maybeEmpty
	}
	n := node{
		kind:       KindIfThenElse,
		args:       []NodeID{c, t, e},
		nullable:   nullable,
		maybeEmpty: maybeEmpty,
		hasAnchors: cn.hasAnchors || tn.hasAnchors || en.hasAnchors,
		fixedLen:   -1,
		first:      cn.first.And(tn.first).Or(en.first),
	}
	if tn.fixedLen >= 0 && tn.fixedLen == en.fixedLen {
		n.fixedLen = tn.fixedLen
	}
	return b.internNode(n)
}

// Kind returns the variant tag of id.
func (b *Builder) Kind(id NodeID) Kind {
	return b.nodes[id].kind
}

// Pred returns the predicate of a Singleton term.
func (b *Builder) Pred(id NodeID) predicate.Pred {
	return b.nodes[id].pred
}

// Args returns the children of id: [head, tail] for Concat, the
// canonical set for Or/And, [cond, then, else] for IfThenElse, and
// [body] for Loop. The slice must not be modified.
func (b *Builder) Args(id NodeID) []NodeID {
	return b.nodes[id].args
}

// LoopInfo returns the bounds and laziness of a Loop term.
func (b *Builder) LoopInfo(id NodeID) (lo, hi uint32, lazy bool) {
	n := &b.nodes[id]
	return n.lo, n.hi, n.lazy
}

// WatchdogLen returns the length carried by a Watchdog term.
func (b *Builder) WatchdogLen(id NodeID) uint32 {
	return b.nodes[id].lo
}

// isTopStar reports whether id is ⊤{0,∞} regardless of laziness.
func (b *Builder) isTopStar(id NodeID) bool {
	n := &b.nodes[id]
	return n.kind == KindLoop && n.lo == 0 && n.hi == Inf && n.args[0] == b.anyChar
}

func (b *Builder) newNode(n node) NodeID {
	n.hash = b.hashNode(&n)
	id := NodeID(conv.IntToUint32(len(b.nodes)))
	b.nodes = append(b.nodes, n)
	b.intern[n.hash] = append(b.intern[n.hash], id)
	return id
}

// internNode returns the existing identity of a structurally equal
// term, or allocates a new one.
func (b *Builder) internNode(n node) NodeID {
	n.hash = b.hashNode(&n)
	for _, id := range b.intern[n.hash] {
		if b.shallowEqual(&b.nodes[id], &n) {
			return id
		}
	}
	id := NodeID(conv.IntToUint32(len(b.nodes)))
	b.nodes = append(b.nodes, n)
	b.intern[n.hash] = append(b.intern[n.hash], id)
	return id
}

// shallowEqual compares terms by tag, payload, and child identity.
// Children are already hash-consed, so this is full structural
// equality.
func (b *Builder) shallowEqual(x, y *node) bool {
	if x.kind != y.kind || x.lazy != y.lazy || x.lo != y.lo || x.hi != y.hi {
		return false
	}
	if len(x.args) != len(y.args) {
		return false
	}
	for i := range x.args {
		if x.args[i] != y.args[i] {
			return false
		}
	}
	if x.kind == KindSingleton && !x.pred.Equivalent(y.pred) {
		return false
	}
	return true
}

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func (b *Builder) hashNode(n *node) uint64 {
	h := uint64(fnvOffset)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			h ^= (v >> (8 * i)) & 0xFF
			h *= fnvPrime
		}
	}
	lazyBit := uint64(0)
	if n.lazy {
		lazyBit = 1
	}
	mix(uint64(n.kind)<<1 | lazyBit)
	mix(uint64(n.lo)<<32 | uint64(n.hi))
	if n.kind == KindSingleton {
		mix(n.pred.Hash())
	}
	for _, a := range n.args {
		mix(uint64(a))
	}
	return h
}

// foldZeroLoops folds alternation entries of the form body{0,k}·tail
// (tail possibly ε) into one entry per (body, tail, laziness) with the
// maximum bound.
func (b *Builder) foldZeroLoops(ids []NodeID) []NodeID {
	type key struct {
		body NodeID
		tail NodeID
		lazy bool
	}
	var folded map[key]uint32
	out := ids[:0]
	for _, id := range ids {
		loop, tail := id, b.epsilon
		if b.nodes[id].kind == KindConcat {
			loop, tail = b.nodes[id].args[0], b.nodes[id].args[1]
		}
		n := &b.nodes[loop]
		if n.kind != KindLoop || n.lo != 0 {
			out = append(out, id)
			continue
		}
		k := key{body: n.args[0], tail: tail, lazy: n.lazy}
		if folded == nil {
			folded = make(map[key]uint32)
		}
		if hi, ok := folded[k]; !ok || n.hi > hi {
			folded[k] = n.hi
		}
	}
	if folded == nil {
		return out
	}
	// Reconstitution goes through the constructors so a folded entry is
	// indistinguishable from one built directly.
	extra := make([]NodeID, 0, len(folded))
	for k, hi := range folded {
		extra = append(extra, b.Concat(b.mkLoop(k.body, 0, hi, k.lazy), k.tail))
	}
	return append(out, sortedSet(extra)...)
}

func sortedSet(ids []NodeID) []NodeID {
	if len(ids) < 2 {
		return ids
	}
	// Insertion sort with dedup; alternation sets are small.
	out := ids[:0]
	for _, id := range ids {
		pos := len(out)
		for pos > 0 && out[pos-1] > id {
			pos--
		}
		if pos > 0 && out[pos-1] == id {
			continue
		}
		out = append(out, 0)
		copy(out[pos+1:], out[pos:])
		out[pos] = id
	}
	return out
}

func addFixed(a, t int32) int32 {
	if a < 0 || t < 0 {
		return -1
	}
	sum := int64(a) + int64(t)
	if sum > math.MaxInt32 {
		return -1
	}
	return int32(sum)
}

func loopFixed(body int32, lo, hi uint32) int32 {
	if body == 0 {
		return 0
	}
	if body < 0 || lo != hi {
		return -1
	}
	total := int64(body) * int64(lo)
	if total > math.MaxInt32 {
		return -1
	}
	return int32(total)
}
