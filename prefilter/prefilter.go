// Package prefilter provides fast candidate skipping for the matcher.
//
// A prefilter scans the haystack for literal prefixes extracted from
// the pattern and reports positions where a match could start. The
// driver only enters the DFA at those positions, which turns scans of
// literal-bearing patterns into byte searches.
//
// A candidate is not a match: unless IsComplete reports otherwise, the
// driver must verify each candidate with the automaton. The selection
// in FromSeq picks the cheapest primitive that covers the literal set:
// a single byte probe, a substring search, a small multi-byte probe,
// or an Aho-Corasick automaton for wider sets.
package prefilter

import (
	"github.com/coregx/symregex/literal"
	"github.com/coregx/symregex/simd"
)

// Prefilter finds candidate match positions in a haystack.
//
// Implementations are immutable after construction and safe for
// concurrent use.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start,
	// or -1 if no candidate exists. A candidate is a position where one
	// of the prefilter's literals occurs.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is already a whole match,
	// so the driver can skip verification.
	IsComplete() bool

	// LiteralLen returns the byte length of every literal when all
	// literals share one length, and 0 otherwise. With IsComplete this
	// gives the match bounds without running the automaton.
	LiteralLen() int
}

// MatchFinder is implemented by prefilters that know the extent of the
// literal they found, not just its start.
type MatchFinder interface {
	// FindMatch returns the bounds of the first literal occurrence at
	// or after start, or (-1, -1).
	FindMatch(haystack []byte, start int) (s, e int)
}

// FromSeq selects a prefilter for the extracted literal prefixes, or
// returns nil when the sequence cannot drive one.
func FromSeq(seq *literal.Seq) Prefilter {
	if seq == nil || !seq.IsUseful() {
		return nil
	}
	complete := seq.IsComplete()
	lits := seq.Literals()
	if len(lits) == 1 {
		if len(lits[0].Bytes) == 1 {
			return &memchrPrefilter{needle: lits[0].Bytes[0], complete: complete}
		}
		needle := make([]byte, len(lits[0].Bytes))
		copy(needle, lits[0].Bytes)
		return &memmemPrefilter{needle: needle, complete: complete}
	}

	// A handful of single-byte literals collapses to a multi-byte probe.
	if bs, ok := singleBytes(lits); ok {
		return FromBytes(bs)
	}
	return fromAutomaton(lits, complete)
}

// FromBytes builds a start-byte prefilter over at most three bytes.
// The driver uses this for patterns without usable literals whose
// first-character set is a few ASCII bytes. The result is never
// complete: a start byte proves nothing about the rest of the match.
func FromBytes(bs []byte) Prefilter {
	switch len(bs) {
	case 1:
		return &memchrPrefilter{needle: bs[0]}
	case 2:
		return &memchr2Prefilter{n1: bs[0], n2: bs[1]}
	case 3:
		return &memchr3Prefilter{n1: bs[0], n2: bs[1], n3: bs[2]}
	default:
		return nil
	}
}

// singleBytes extracts the distinct bytes of an all-single-byte literal
// set, reporting false when any literal is longer or the set exceeds
// three bytes.
func singleBytes(lits []literal.Literal) ([]byte, bool) {
	var bs []byte
	for _, l := range lits {
		if len(l.Bytes) != 1 {
			return nil, false
		}
		b := l.Bytes[0]
		seen := false
		for _, x := range bs {
			if x == b {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		if len(bs) == 3 {
			return nil, false
		}
		bs = append(bs, b)
	}
	return bs, true
}

// uniformLen returns the shared byte length of the literals, or 0.
func uniformLen(lits []literal.Literal) int {
	n := len(lits[0].Bytes)
	for _, l := range lits[1:] {
		if len(l.Bytes) != n {
			return 0
		}
	}
	return n
}

type memchrPrefilter struct {
	needle   byte
	complete bool
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	i := simd.Memchr(haystack[start:], p.needle)
	if i < 0 {
		return -1
	}
	return start + i
}

func (p *memchrPrefilter) IsComplete() bool { return p.complete }

func (p *memchrPrefilter) LiteralLen() int { return 1 }

type memchr2Prefilter struct {
	n1, n2 byte
}

func (p *memchr2Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	i := simd.Memchr2(haystack[start:], p.n1, p.n2)
	if i < 0 {
		return -1
	}
	return start + i
}

func (p *memchr2Prefilter) IsComplete() bool { return false }

func (p *memchr2Prefilter) LiteralLen() int { return 1 }

type memchr3Prefilter struct {
	n1, n2, n3 byte
}

func (p *memchr3Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	i := simd.Memchr3(haystack[start:], p.n1, p.n2, p.n3)
	if i < 0 {
		return -1
	}
	return start + i
}

func (p *memchr3Prefilter) IsComplete() bool { return false }

func (p *memchr3Prefilter) LiteralLen() int { return 1 }

type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	i := simd.Memmem(haystack[start:], p.needle)
	if i < 0 {
		return -1
	}
	return start + i
}

func (p *memmemPrefilter) IsComplete() bool { return p.complete }

func (p *memmemPrefilter) LiteralLen() int { return len(p.needle) }

func (p *memmemPrefilter) FindMatch(haystack []byte, start int) (int, int) {
	i := p.Find(haystack, start)
	if i < 0 {
		return -1, -1
	}
	return i, i + len(p.needle)
}
