package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/symregex/literal"
)

// ahoPrefilter searches for any of the literal prefixes with an
// Aho-Corasick automaton. It covers the sets the byte probes cannot:
// more than three literals, or literals of mixed content, up to the
// extraction cap.
type ahoPrefilter struct {
	auto     *ahocorasick.Automaton
	complete bool
	litLen   int
}

// fromAutomaton builds the automaton prefilter, or nil when the
// automaton cannot be constructed.
func fromAutomaton(lits []literal.Literal, complete bool) Prefilter {
	builder := ahocorasick.NewBuilder()
	for _, l := range lits {
		builder.AddPattern(l.Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoPrefilter{
		auto:     auto,
		complete: complete,
		litLen:   uniformLen(lits),
	}
}

func (p *ahoPrefilter) Find(haystack []byte, start int) int {
	s, _ := p.FindMatch(haystack, start)
	return s
}

func (p *ahoPrefilter) FindMatch(haystack []byte, start int) (int, int) {
	if start < 0 || start > len(haystack) {
		return -1, -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1, -1
	}
	return m.Start, m.End
}

func (p *ahoPrefilter) IsComplete() bool { return p.complete }

func (p *ahoPrefilter) LiteralLen() int { return p.litLen }
