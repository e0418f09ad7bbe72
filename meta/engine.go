// Package meta drives matching over a compiled symbolic regex.
//
// The engine runs up to three scans per match. A seek scan over the
// pattern prefixed with an unanchored gap finds the earliest position
// where some match ends. A reverse scan from that end over the
// reversed pattern finds the leftmost start. A forward scan from that
// start finds the committed, greedy end. Patterns with a fixed match
// length carry a watchdog marker, which lets the seek scan report the
// length directly and skips the other two passes.
//
// All three scans share one lazy DFA and one transition cache. A
// compiled engine is immutable apart from that cache and is safe for
// concurrent use.
package meta

import (
	"math"

	"github.com/coregx/symregex/dfa/lazy"
	"github.com/coregx/symregex/literal"
	"github.com/coregx/symregex/predicate"
	"github.com/coregx/symregex/prefilter"
	"github.com/coregx/symregex/sre"
)

// Engine is a compiled matcher for one pattern.
type Engine struct {
	builder *sre.Builder
	pattern sre.NodeID
	root    sre.NodeID
	dfa     *lazy.DFA

	// seekStart and revStart hold the scan roots rewritten for each
	// entry context, indexed by lazy.StartKind. The forward scan uses
	// the DFA's own start states.
	seekStart [3]sre.NodeID
	revStart  [3]sre.NodeID

	pf       prefilter.Prefilter
	complete prefilter.MatchFinder

	// fixedLen is the match length in code points, or -1 when the
	// pattern matches variable lengths.
	fixedLen int

	config Config
	stats  engineStats
}

// Compile builds an engine for the pattern term. The builder must be
// the one the term was constructed in; the engine holds it for its
// lifetime and interns derivative terms into it during matching.
func Compile(b *sre.Builder, pattern sre.NodeID, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	root := pattern
	fixedLen := b.FixedLength(pattern)
	if fixedLen >= 0 {
		root = b.Concat(pattern, b.Watchdog(uint32(fixedLen)))
	}
	seekRoot := b.Concat(b.DotStar(), root)
	revRoot := b.Reverse(root)

	preds := b.CollectPredicates(seekRoot)
	if b.HasAnchors(root) {
		// Line anchors resolve on newline transitions; '\n' must sit
		// in a minterm of its own for the border fold to fire.
		preds = append(preds, predicate.MkChar('\n', false))
	}
	cls := predicate.NewClassifier(predicate.Minterms(preds))

	lazyCfg := lazy.DefaultConfig().WithMaxStates(math.MaxUint32)
	if config.StateCacheLimit > 0 {
		lazyCfg = lazyCfg.WithMaxStates(config.StateCacheLimit)
	}
	d, err := lazy.New(b, root, cls, lazyCfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		builder:  b,
		pattern:  pattern,
		root:     root,
		dfa:      d,
		fixedLen: fixedLen,
		config:   config,
	}
	e.seekStart[lazy.StartText] = b.DeriveBegin(seekRoot, true)
	e.seekStart[lazy.StartLine] = b.DeriveBegin(seekRoot, false)
	e.seekStart[lazy.StartInner] = seekRoot
	e.revStart[lazy.StartText] = b.DeriveBegin(revRoot, true)
	e.revStart[lazy.StartLine] = b.DeriveBegin(revRoot, false)
	e.revStart[lazy.StartInner] = revRoot

	if config.Vectorize && !b.MaybeEmpty(root) {
		e.pf = buildPrefilter(b, root)
		if e.pf != nil && e.pf.IsComplete() && fixedLen >= 0 && e.pf.LiteralLen() > 0 {
			// Every candidate is a whole match of known extent, so a
			// hit settles all three scans at once.
			if mf, ok := e.pf.(prefilter.MatchFinder); ok {
				e.complete = mf
			}
		}
	}
	return e, nil
}

// buildPrefilter selects a candidate skipper for the pattern: the
// extracted literal prefixes when they are usable, otherwise a probe
// over the start-byte set when it is a few ASCII bytes.
func buildPrefilter(b *sre.Builder, root sre.NodeID) prefilter.Prefilter {
	if pf := prefilter.FromSeq(literal.Prefixes(b, root)); pf != nil {
		return pf
	}
	fs := b.FirstSet(root)
	if fs.Count() == 0 || fs.Count() > 3 {
		return nil
	}
	var bs []byte
	for _, r := range fs.Ranges() {
		if r.Hi > 0x7F {
			return nil
		}
		for c := r.Lo; c <= r.Hi; c++ {
			bs = append(bs, byte(c))
		}
	}
	return prefilter.FromBytes(bs)
}

// Serialize returns the engine's pattern in the textual v1 form. The
// DFA is not externalized; a deserialized pattern rebuilds its states
// on demand.
func (e *Engine) Serialize() string {
	return e.builder.Serialize(e.pattern)
}

// Pattern returns the compiled pattern term.
func (e *Engine) Pattern() sre.NodeID {
	return e.pattern
}

// Builder returns the AST builder the engine was compiled in.
func (e *Engine) Builder() *sre.Builder {
	return e.builder
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// CacheStats returns a snapshot of the DFA transition cache counters.
func (e *Engine) CacheStats() lazy.CacheStats {
	return e.dfa.CacheStats()
}
