package predicate

import "sort"

// Minterm generation.
//
// Given the predicates a pattern mentions, the minterms are the
// equivalence classes of the relation "no mentioned predicate
// distinguishes these code points". They form the coarsest partition
// of the BMP such that every mentioned predicate is a union of blocks,
// so a DFA transition function over minterms is exactly as precise as
// one over code points.

// Minterms computes the partition induced by preds using incremental
// refinement: starting from the single block ⊤, each predicate splits
// every existing block into its intersection with the predicate and
// with its complement, keeping only satisfiable blocks.
//
// The result is deterministic for a given predicate order. For k
// predicates there are at most 2^k blocks, but in practice patterns
// produce far fewer since most splits are empty.
func Minterms(preds []Pred) []Pred {
	blocks := []Pred{Any()}
	for _, p := range preds {
		next := make([]Pred, 0, len(blocks)+1)
		for _, b := range blocks {
			if in := b.And(p); in.IsSatisfiable() {
				next = append(next, in)
			}
			if out := b.Minus(p); out.IsSatisfiable() {
				next = append(next, out)
			}
		}
		blocks = next
	}
	// Canonical order: by smallest member. Makes minterm indices stable
	// across equivalent predicate sets.
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Min() < blocks[j].Min() })
	return blocks
}

// Classifier maps code points to minterm indices.
//
// ASCII lookups hit a dense table; the rest of the BMP is resolved by
// binary search over segment boundaries. Both structures are built
// once at compile time and never mutated, so lookups are safe for
// concurrent use.
type Classifier struct {
	minterms []Pred
	ascii    [128]uint16
	lows     []rune   // segment start points, ascending
	classes  []uint16 // minterm index per segment
}

// NewClassifier builds a classifier for the given minterms. The
// minterms must partition the BMP (as produced by Minterms).
func NewClassifier(minterms []Pred) *Classifier {
	c := &Classifier{minterms: minterms}
	type seg struct {
		lo    rune
		class uint16
	}
	var segs []seg
	for i, m := range minterms {
		for _, r := range m.Ranges() {
			segs = append(segs, seg{r.Lo, uint16(i)})
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].lo < segs[j].lo })
	c.lows = make([]rune, len(segs))
	c.classes = make([]uint16, len(segs))
	for i, s := range segs {
		c.lows[i] = s.lo
		c.classes[i] = s.class
	}
	for r := rune(0); r < 128; r++ {
		c.ascii[r] = c.lookupSlow(r)
	}
	return c
}

// Len returns the number of minterms.
func (c *Classifier) Len() int {
	return len(c.minterms)
}

// Minterm returns the i'th minterm predicate.
func (c *Classifier) Minterm(i int) Pred {
	return c.minterms[i]
}

// Minterms returns the full partition. The slice must not be modified.
func (c *Classifier) Minterms() []Pred {
	return c.minterms
}

// Lookup returns the minterm index of r. Code points above the BMP
// classify as MaxRune: they can only ever satisfy predicates whose top
// range reaches the end of the BMP, which is how ⊤ (and nothing
// narrower) covers them.
func (c *Classifier) Lookup(r rune) uint16 {
	if r >= 0 && r < 128 {
		return c.ascii[r]
	}
	if r > MaxRune {
		r = MaxRune
	}
	if r < 0 {
		r = 0
	}
	return c.lookupSlow(r)
}

func (c *Classifier) lookupSlow(r rune) uint16 {
	// Greatest segment start ≤ r.
	lo, hi := 0, len(c.lows)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.lows[mid] <= r {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return c.classes[lo-1]
}
