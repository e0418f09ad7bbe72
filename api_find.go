package symregex

import (
	"iter"

	"github.com/coregx/symregex/meta"
)

// Match reports whether b contains any match of the pattern.
func (r *Regexp) Match(b []byte) bool {
	ok, _ := r.engine.IsMatch(b)
	return ok
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regexp) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns the leftmost match in b, or nil if there is none.
func (r *Regexp) Find(b []byte) []byte {
	m, ok, _ := r.engine.Find(b, 0)
	if !ok {
		return nil
	}
	return b[m.Start:m.End]
}

// FindString returns the leftmost match in s, or "" if there is none.
func (r *Regexp) FindString(s string) string {
	return string(r.Find([]byte(s)))
}

// FindIndex returns the [start, end) byte offsets of the leftmost
// match in b, or nil if there is none.
func (r *Regexp) FindIndex(b []byte) []int {
	m, ok, _ := r.engine.Find(b, 0)
	if !ok {
		return nil
	}
	return []int{m.Start, m.End}
}

// FindStringIndex is FindIndex for a string argument.
func (r *Regexp) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindAt searches for a match starting at or after the byte offset
// from, and reports a non-nil error only when the step budget fires.
// Unlike the stdlib-compatible Find methods, FindAt surfaces that
// error instead of treating it as "no match".
func (r *Regexp) FindAt(b []byte, from int) (Match, bool, error) {
	m, ok, err := r.engine.Find(b, from)
	if err != nil || !ok {
		return Match{}, false, err
	}
	return Match{Start: m.Start, End: m.End, input: b}, true, nil
}

// Matches returns an iterator over the pattern's non-overlapping
// matches in b, left to right. Iteration stops early, without
// signaling an error, if a scan aborts on the step budget.
func (r *Regexp) Matches(b []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		r.engine.FindAllFunc(b, func(m meta.Match, err error) bool {
			if err != nil {
				return false
			}
			return yield(Match{Start: m.Start, End: m.End, input: b})
		})
	}
}

// FindAll returns the non-overlapping matches of the pattern in b, in
// order. n bounds the count: n < 0 means unbounded, n == 0 returns nil.
func (r *Regexp) FindAll(b []byte, n int) [][]byte {
	idx := r.FindAllIndex(b, n)
	if idx == nil {
		return nil
	}
	out := make([][]byte, len(idx))
	for i, p := range idx {
		out[i] = b[p[0]:p[1]]
	}
	return out
}

// FindAllString is FindAll for a string argument.
func (r *Regexp) FindAllString(s string, n int) []string {
	idx := r.FindAllStringIndex(s, n)
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx))
	for i, p := range idx {
		out[i] = s[p[0]:p[1]]
	}
	return out
}

// FindAllIndex returns the [start, end) byte offsets of the
// pattern's non-overlapping matches in b. n bounds the count: n < 0
// means unbounded, n == 0 returns nil.
func (r *Regexp) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	var out [][]int
	r.engine.FindAllFunc(b, func(m meta.Match, err error) bool {
		if err != nil {
			return false
		}
		out = append(out, []int{m.Start, m.End})
		return n < 0 || len(out) < n
	})
	return out
}

// FindAllStringIndex is FindAllIndex for a string argument.
func (r *Regexp) FindAllStringIndex(s string, n int) [][]int {
	return r.FindAllIndex([]byte(s), n)
}

// Count returns the number of non-overlapping matches of the pattern
// in b. n bounds the count the same way it does in FindAllIndex.
func (r *Regexp) Count(b []byte, n int) int {
	if n == 0 {
		return 0
	}
	count := 0
	r.engine.FindAllFunc(b, func(_ meta.Match, err error) bool {
		if err != nil {
			return false
		}
		count++
		return n < 0 || count < n
	})
	return count
}

// CountString is Count for a string argument.
func (r *Regexp) CountString(s string, n int) int {
	return r.Count([]byte(s), n)
}

// Split slices s around matches of the pattern and returns the
// substrings between them. n bounds the number of substrings the same
// way strings.SplitN does: n > 0 returns at most n substrings with the
// last holding the unsplit remainder, n == 0 returns nil, n < 0
// returns every substring.
func (r *Regexp) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}
	idx := r.FindAllStringIndex(s, -1)
	if len(idx) == 0 {
		return []string{s}
	}
	out := make([]string, 0, len(idx)+1)
	last := 0
	for _, p := range idx {
		if n > 0 && len(out) == n-1 {
			break
		}
		out = append(out, s[last:p[0]])
		last = p[1]
	}
	return append(out, s[last:])
}

// ReplaceAllLiteral returns a copy of src with every match of the
// pattern replaced by repl, inserted verbatim.
func (r *Regexp) ReplaceAllLiteral(src, repl []byte) []byte {
	idx := r.FindAllIndex(src, -1)
	if idx == nil {
		out := make([]byte, len(src))
		copy(out, src)
		return out
	}
	var out []byte
	last := 0
	for _, p := range idx {
		out = append(out, src[last:p[0]]...)
		out = append(out, repl...)
		last = p[1]
	}
	return append(out, src[last:]...)
}

// ReplaceAllLiteralString is ReplaceAllLiteral for string arguments.
func (r *Regexp) ReplaceAllLiteralString(src, repl string) string {
	return string(r.ReplaceAllLiteral([]byte(src), []byte(repl)))
}

// ReplaceAllFunc returns a copy of src with every match of the pattern
// replaced by the result of calling repl on the matched bytes.
func (r *Regexp) ReplaceAllFunc(src []byte, repl func([]byte) []byte) []byte {
	idx := r.FindAllIndex(src, -1)
	if idx == nil {
		out := make([]byte, len(src))
		copy(out, src)
		return out
	}
	var out []byte
	last := 0
	for _, p := range idx {
		out = append(out, src[last:p[0]]...)
		out = append(out, repl(src[p[0]:p[1]])...)
		last = p[1]
	}
	return append(out, src[last:]...)
}

// ReplaceAllStringFunc is ReplaceAllFunc for string arguments.
func (r *Regexp) ReplaceAllStringFunc(src string, repl func(string) string) string {
	idx := r.FindAllStringIndex(src, -1)
	if idx == nil {
		return src
	}
	var sb []byte
	last := 0
	for _, p := range idx {
		sb = append(sb, src[last:p[0]]...)
		sb = append(sb, repl(src[p[0]:p[1]])...)
		last = p[1]
	}
	sb = append(sb, src[last:]...)
	return string(sb)
}
