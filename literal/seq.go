// Package literal extracts literal prefixes from symbolic regex terms.
//
// A prefilter needs a small set of byte strings such that every match
// of the pattern starts with one of them. This package walks the term
// and produces that set, together with a completeness flag that tells
// the caller whether finding a literal already proves a match.
package literal

import (
	"bytes"
	"sort"
)

// Literal is one candidate prefix. Complete means the literal is an
// entire match on its own: verification can be skipped when it is
// found.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

func (l Literal) String() string {
	if l.Complete {
		return "literal{" + string(l.Bytes) + ", complete}"
	}
	return "literal{" + string(l.Bytes) + "}"
}

// Seq is a set of alternative literal prefixes. Every match of the
// originating pattern starts with one of the literals; that is the
// only guarantee, and it is what a prefilter needs.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals.
func (s *Seq) Len() int {
	return len(s.literals)
}

// IsEmpty reports whether the sequence has no literals. An empty
// sequence means the pattern's language is empty, not that extraction
// failed; failure surfaces as a useless sequence instead.
func (s *Seq) IsEmpty() bool {
	return len(s.literals) == 0
}

// Literals returns the underlying literals. The slice is owned by the
// sequence.
func (s *Seq) Literals() []Literal {
	return s.literals
}

// IsComplete reports whether every literal is a whole match, so a
// prefilter hit needs no verification.
func (s *Seq) IsComplete() bool {
	for _, l := range s.literals {
		if !l.Complete {
			return false
		}
	}
	return len(s.literals) > 0
}

// IsUseful reports whether the sequence can drive a prefilter: at
// least one literal, and none of them empty. An empty literal makes
// every position a candidate.
func (s *Seq) IsUseful() bool {
	if len(s.literals) == 0 {
		return false
	}
	for _, l := range s.literals {
		if len(l.Bytes) == 0 {
			return false
		}
	}
	return true
}

// LongestCommonPrefix returns the longest byte prefix shared by every
// literal, or nil for an empty sequence.
func (s *Seq) LongestCommonPrefix() []byte {
	if len(s.literals) == 0 {
		return nil
	}
	lcp := s.literals[0].Bytes
	for _, l := range s.literals[1:] {
		n := 0
		for n < len(lcp) && n < len(l.Bytes) && lcp[n] == l.Bytes[n] {
			n++
		}
		lcp = lcp[:n]
	}
	return lcp
}

// minimize sorts the literals, removes duplicates, and drops every
// literal that extends a shorter one. For prefix candidate search the
// shorter literal already covers the longer one's positions.
func (s *Seq) minimize() {
	if len(s.literals) < 2 {
		return
	}
	sort.Slice(s.literals, func(i, j int) bool {
		return bytes.Compare(s.literals[i].Bytes, s.literals[j].Bytes) < 0
	})
	out := s.literals[:1]
	for _, l := range s.literals[1:] {
		last := out[len(out)-1]
		if bytes.HasPrefix(l.Bytes, last.Bytes) {
			continue
		}
		out = append(out, l)
	}
	s.literals = out
}

func (s *Seq) String() string {
	var b bytes.Buffer
	b.WriteString("seq[")
	for i, l := range s.literals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l.String())
	}
	b.WriteString("]")
	return b.String()
}
