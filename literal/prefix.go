package literal

import (
	"github.com/coregx/symregex/sre"
)

const (
	// maxLiterals caps the candidate set. Past this an alternation
	// collapses to its common prefix.
	maxLiterals = 32

	// maxLiteralLen caps each literal's length in code points. Longer
	// candidates are cut and become plain prefixes.
	maxLiteralLen = 5

	// maxClassSize caps character-class enumeration. A wider class
	// contributes nothing to the candidate set.
	maxClassSize = 4

	// maxUnroll caps loop enumeration beyond the mandatory count.
	maxUnroll = 4
)

// cand is a candidate prefix during extraction. complete mirrors
// Literal.Complete: the runes are a whole word of the subterm.
type cand struct {
	runes    []rune
	complete bool
}

// Prefixes extracts the literal prefix set of id: a Seq such that
// every word id accepts starts with one of the literals. Patterns
// whose start is not literal enough yield a useless sequence; callers
// check IsUseful before building a prefilter.
//
// Anchored patterns keep their literals but lose completeness, since a
// literal hit still needs its border verified.
func Prefixes(b *sre.Builder, id sre.NodeID) *Seq {
	e := &extractor{b: b}
	cands := e.extract(id)
	seq := &Seq{}
	for _, c := range cands {
		seq.literals = append(seq.literals, Literal{
			Bytes:    []byte(string(c.runes)),
			Complete: c.complete && !e.sawAnchor,
		})
	}
	seq.minimize()
	return seq
}

type extractor struct {
	b         *sre.Builder
	sawAnchor bool
}

func (e *extractor) extract(id sre.NodeID) []cand {
	b := e.b
	switch b.Kind(id) {
	case sre.KindEmpty:
		return nil
	case sre.KindEpsilon:
		return []cand{{complete: true}}
	case sre.KindStartAnchor, sre.KindBolAnchor, sre.KindEolAnchor, sre.KindEndAnchor:
		e.sawAnchor = true
		return []cand{{complete: true}}
	case sre.KindWatchdog:
		return []cand{{complete: true}}
	case sre.KindSingleton:
		return e.class(id)
	case sre.KindConcat:
		args := b.Args(id)
		return e.concat(e.extract(args[0]), args[1])
	case sre.KindOr:
		return e.union(b.Args(id))
	case sre.KindAnd:
		// Every word of the conjunction is a word of the first arm.
		return incomplete(e.extract(b.Args(id)[0]))
	case sre.KindIfThenElse:
		args := b.Args(id)
		return incomplete(append(e.extract(args[1]), e.extract(args[2])...))
	case sre.KindLoop:
		lo, hi, _ := b.LoopInfo(id)
		return e.loop(b.Args(id)[0], lo, hi)
	default:
		return []cand{{}}
	}
}

func (e *extractor) class(id sre.NodeID) []cand {
	p := e.b.Pred(id)
	if p.Count() > maxClassSize {
		return []cand{{}}
	}
	var out []cand
	for _, r := range p.Ranges() {
		for c := r.Lo; c <= r.Hi; c++ {
			out = append(out, cand{runes: []rune{c}, complete: true})
		}
	}
	return out
}

// concat extends every complete head candidate with the tail's
// candidates. Incomplete heads are already valid prefixes and pass
// through unchanged.
func (e *extractor) concat(head []cand, tail sre.NodeID) []cand {
	allIncomplete := true
	for _, c := range head {
		if c.complete {
			allIncomplete = false
			break
		}
	}
	if allIncomplete {
		return head
	}

	tc := e.extract(tail)
	var out []cand
	for _, c := range head {
		if !c.complete {
			out = append(out, c)
			continue
		}
		for _, t := range tc {
			out = append(out, join(c, t))
		}
		if len(out) > maxLiterals {
			// Too many shapes; the bare heads still cover every match.
			return incomplete(head)
		}
	}
	return out
}

func (e *extractor) union(args []sre.NodeID) []cand {
	var out []cand
	for _, a := range args {
		out = append(out, e.extract(a)...)
		if len(out) > maxLiterals {
			return []cand{{runes: commonPrefix(out)}}
		}
	}
	return out
}

// loop enumerates iteration counts lo..hi. Counts past the unroll cap
// are covered by the last enumerated power marked incomplete: any
// longer word starts with it.
func (e *extractor) loop(body sre.NodeID, lo, hi uint32) []cand {
	bc := e.extract(body)
	if len(bc) == 0 {
		if lo == 0 {
			return []cand{{complete: true}}
		}
		return nil
	}
	for _, c := range bc {
		if len(c.runes) == 0 {
			return incomplete(bc)
		}
	}

	pow := []cand{{complete: true}}
	for i := uint32(0); i < lo; i++ {
		var ok bool
		pow, ok = cross(pow, bc)
		if !ok {
			return incomplete(pow)
		}
	}

	limit := lo + maxUnroll
	if hi != sre.Inf && hi < limit {
		limit = hi
	}
	var out []cand
	for k := lo; ; k++ {
		if k == limit && (hi == sre.Inf || hi > limit) {
			return append(out, incomplete(pow)...)
		}
		out = append(out, pow...)
		if k == limit {
			return out
		}
		var ok bool
		pow, ok = cross(pow, bc)
		if !ok {
			return append(out, incomplete(pow)...)
		}
	}
}

// cross concatenates every pair. Reports false when the product blows
// a cap; the returned slice is then the truncated left side.
func cross(xs, ys []cand) ([]cand, bool) {
	if len(xs)*len(ys) > maxLiterals {
		return xs, false
	}
	out := make([]cand, 0, len(xs)*len(ys))
	for _, x := range xs {
		if !x.complete {
			out = append(out, x)
			continue
		}
		for _, y := range ys {
			j := join(x, y)
			if len(j.runes) > maxLiteralLen {
				j.runes = j.runes[:maxLiteralLen]
				j.complete = false
			}
			out = append(out, j)
		}
	}
	return out, true
}

func join(x, y cand) cand {
	runes := make([]rune, 0, len(x.runes)+len(y.runes))
	runes = append(runes, x.runes...)
	runes = append(runes, y.runes...)
	c := cand{runes: runes, complete: y.complete}
	if len(c.runes) > maxLiteralLen {
		c.runes = c.runes[:maxLiteralLen]
		c.complete = false
	}
	return c
}

func incomplete(cs []cand) []cand {
	out := make([]cand, len(cs))
	for i, c := range cs {
		out[i] = cand{runes: c.runes, complete: false}
	}
	return out
}

func commonPrefix(cs []cand) []rune {
	if len(cs) == 0 {
		return nil
	}
	lcp := cs[0].runes
	for _, c := range cs[1:] {
		n := 0
		for n < len(lcp) && n < len(c.runes) && lcp[n] == c.runes[n] {
			n++
		}
		lcp = lcp[:n]
	}
	return lcp
}
