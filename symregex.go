// Package symregex implements a symbolic regular expression matcher.
//
// Patterns are lowered from regexp/syntax into a hash-consed symbolic
// AST (package sre) and matched by taking Brzozowski derivatives over
// predicate minterms, determinized lazily (package dfa/lazy). A match
// is found in up to three scans over that automaton (package meta): an
// unanchored seek for the earliest possible end, a reverse scan for
// the leftmost start, and a forward scan from that start for the
// greedy committed end. Patterns with a single fixed length carry a
// zero-width watchdog marker that settles the match from the seek
// scan alone.
//
// The public surface mirrors stdlib regexp where the two engines agree.
// It deliberately does not: submatch extraction, back-references,
// lookaround, or word-boundary assertions. Capturing groups are accepted
// as plain grouping; patterns using the other constructs are rejected at
// Compile time.
//
// Basic usage:
//
//	re, err := symregex.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("room 42") {
//	    fmt.Println(re.FindString("room 42")) // "42"
//	}
package symregex

import (
	"regexp/syntax"
	"strings"

	"github.com/coregx/symregex/dfa/lazy"
	"github.com/coregx/symregex/meta"
	"github.com/coregx/symregex/sre"
)

// Regexp is a compiled symbolic regular expression. A Regexp is
// immutable after Compile apart from the lazy DFA's transition cache,
// and is safe for concurrent use.
type Regexp struct {
	builder *sre.Builder
	engine  *meta.Engine
	pattern string
}

// Match is one occurrence of a pattern in an input, holding a
// reference to the source bytes it was found in.
type Match struct {
	Start, End int
	input      []byte
}

// Bytes returns the matched text.
func (m Match) Bytes() []byte { return m.input[m.Start:m.End] }

// String returns the matched text as a string.
func (m Match) String() string { return string(m.Bytes()) }

// Index returns the byte offset where the match begins.
func (m Match) Index() int { return m.Start }

// Length returns the match length in bytes.
func (m Match) Length() int { return m.End - m.Start }

// compileOptions collects both the front-end parse flags and the
// engine's runtime configuration, so one Option type covers Compile
// and CompileSyntax alike; syntax-only options are no-ops when the
// caller supplies an already-parsed tree.
type compileOptions struct {
	syntaxFlags syntax.Flags
	engineCfg   meta.Config
}

func newCompileOptions() compileOptions {
	return compileOptions{
		syntaxFlags: syntax.Perl,
		engineCfg:   meta.DefaultConfig(),
	}
}

// Option configures Compile, CompileSyntax, or Deserialize.
type Option func(*compileOptions)

// WithFoldCase makes the pattern match case-insensitively.
func WithFoldCase() Option {
	return func(o *compileOptions) { o.syntaxFlags |= syntax.FoldCase }
}

// WithMultiline makes ^ and $ match at line boundaries in addition to
// the start and end of the input, instead of only the latter.
func WithMultiline() Option {
	return func(o *compileOptions) { o.syntaxFlags &^= syntax.OneLine }
}

// WithDotNL makes . match \n as well as every other character.
func WithDotNL() Option {
	return func(o *compileOptions) { o.syntaxFlags |= syntax.DotNL }
}

// WithVectorize toggles the literal prefilter. It is enabled by
// default; callers with pathological literal extraction can disable it
// to fall back to stepping the DFA over every character.
func WithVectorize(on bool) Option {
	return func(o *compileOptions) { o.engineCfg.Vectorize = on }
}

// WithStateCacheLimit caps the number of lazy DFA states retained
// before the transition cache is cleared and rebuilt.
func WithStateCacheLimit(limit uint32) Option {
	return func(o *compileOptions) { o.engineCfg.StateCacheLimit = limit }
}

// WithStepLimit sets the cooperative cancellation budget, in input
// characters per search call. Exceeding it reports an error of kind
// sre.MatchAborted instead of hanging on a pathological input.
func WithStepLimit(limit uint64) Option {
	return func(o *compileOptions) { o.engineCfg.StepLimit = limit }
}

// Compile parses pattern with regexp/syntax and compiles the result.
// Syntax is Perl-compatible, the same as stdlib regexp's default.
func Compile(pattern string, opts ...Option) (*Regexp, error) {
	o := newCompileOptions()
	for _, opt := range opts {
		opt(&o)
	}
	parsed, err := syntax.Parse(pattern, o.syntaxFlags)
	if err != nil {
		return nil, &sre.Error{Kind: sre.InvalidRegex, Message: "parse error", Cause: err}
	}
	return compileParsed(parsed, pattern, o)
}

// MustCompile is like Compile but panics if the pattern cannot be
// compiled. It is intended for patterns known to be valid, such as
// those built into a program.
func MustCompile(pattern string, opts ...Option) *Regexp {
	re, err := Compile(pattern, opts...)
	if err != nil {
		panic("symregex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileSyntax compiles an already-parsed regexp/syntax tree,
// skipping the parse step for callers that built or transformed the
// tree themselves. Syntax-flag options have no effect here since
// parsing already happened; engine options still apply.
func CompileSyntax(parsed *syntax.Regexp, opts ...Option) (*Regexp, error) {
	o := newCompileOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return compileParsed(parsed, parsed.String(), o)
}

func compileParsed(parsed *syntax.Regexp, source string, o compileOptions) (*Regexp, error) {
	b := sre.NewBuilder()
	root, err := fromSyntax(b, parsed.Simplify())
	if err != nil {
		return nil, err
	}
	engine, err := meta.Compile(b, root, o.engineCfg)
	if err != nil {
		return nil, err
	}
	return &Regexp{builder: b, engine: engine, pattern: source}, nil
}

// Deserialize rebuilds a Regexp from the textual form written by
// Serialize. The DFA is not part of that form; states are re-derived
// on first use exactly as they would be for a freshly compiled
// pattern.
func Deserialize(s string, opts ...Option) (*Regexp, error) {
	o := newCompileOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := sre.NewBuilder()
	root, err := b.Deserialize(s)
	if err != nil {
		return nil, err
	}
	engine, err := meta.Compile(b, root, o.engineCfg)
	if err != nil {
		return nil, err
	}
	return &Regexp{builder: b, engine: engine, pattern: s}, nil
}

// MustDeserialize is like Deserialize but panics if s cannot be parsed.
// It is intended for serialized forms embedded at build time, such as
// those emitted by cmd/sregen, which are known to be valid.
func MustDeserialize(s string, opts ...Option) *Regexp {
	re, err := Deserialize(s, opts...)
	if err != nil {
		panic("symregex: Deserialize: " + err.Error())
	}
	return re
}

// Serialize renders the compiled pattern in the textual v1 form.
func (r *Regexp) Serialize() string {
	return r.engine.Serialize()
}

// String returns the source text or serialized form the Regexp was
// compiled from.
func (r *Regexp) String() string {
	return r.pattern
}

// Stats returns a snapshot of the engine's scan counters.
func (r *Regexp) Stats() meta.Stats {
	return r.engine.Stats()
}

// CacheStats returns a snapshot of the lazy DFA's transition cache
// counters.
func (r *Regexp) CacheStats() lazy.CacheStats {
	return r.engine.CacheStats()
}

// QuoteMeta returns a pattern that matches the literal text s,
// escaping every character regexp/syntax treats as a metacharacter.
func QuoteMeta(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isMetaByte(c) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isMetaByte(c byte) bool {
	switch c {
	case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$':
		return true
	default:
		return false
	}
}
