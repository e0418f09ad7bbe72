package meta

import (
	"unicode/utf8"

	"github.com/coregx/symregex/dfa/lazy"
	"github.com/coregx/symregex/sre"
)

// Find locates the first match of the engine's pattern in input at or
// after the byte offset from. It returns the match, whether one was
// found, and an error only when the step budget fires.
//
// The search runs up to three passes sharing the engine's lazy DFA:
//
//  1. Seek: scan the pattern prefixed with an unanchored gap (⊤*·R)
//     forward from `from`, stopping at the first position some match
//     could end. Fixed-length patterns carry a watchdog, which settles
//     the match outright and skips the remaining passes.
//  2. Reverse: scan the reversed pattern backward from that end to the
//     leftmost position a match can start.
//  3. Commit: scan the plain pattern forward from that start, tracking
//     the last accepting position before the state dies, which is the
//     match's greedy end.
func (e *Engine) Find(input []byte, from int) (Match, bool, error) {
	if from < 0 || from > len(input) {
		return Match{}, false, nil
	}
	e.stats.scans.Add(1)

	var budget *uint64
	if e.config.StepLimit > 0 {
		b := e.config.StepLimit
		budget = &b
	}

	pos := from
	if e.pf != nil {
		cand := e.pf.Find(input, pos)
		if cand < 0 {
			return Match{}, false, nil
		}
		e.stats.prefilterSkips.Add(1)
		if e.complete != nil {
			s, end := e.complete.FindMatch(input, cand)
			if s < 0 {
				return Match{}, false, nil
			}
			e.stats.matches.Add(1)
			return Match{Start: s, End: end}, true, nil
		}
		pos = cand
	}

	end, watchdog, found, err := e.scanSeek(input, pos, budget)
	if err != nil {
		return Match{}, false, err
	}
	if !found {
		return Match{}, false, nil
	}

	var m Match
	if watchdog >= 0 {
		m = Match{Start: rewindRunes(input, end, watchdog), End: end}
	} else {
		start, err := e.scanReverse(input, end, pos, budget)
		if err != nil {
			return Match{}, false, err
		}
		commitEnd, err := e.scanCommit(input, start, budget)
		if err != nil {
			return Match{}, false, err
		}
		m = Match{Start: start, End: commitEnd}
	}
	e.stats.matches.Add(1)
	return m, true, nil
}

// IsMatch reports whether the pattern matches anywhere in input.
func (e *Engine) IsMatch(input []byte) (bool, error) {
	_, ok, err := e.Find(input, 0)
	return ok, err
}

// scanSeek runs the unanchored seek pass: the earliest position at or
// after pos where some match could end, with the watchdog length
// carried there if the pattern is fixed-length.
func (e *Engine) scanSeek(input []byte, pos int, budget *uint64) (end, watchdog int, found bool, err error) {
	q := e.dfa.State(e.seekStart[forwardStartKind(input, pos)])
	for {
		ctx := borderAt(input, pos)
		if q.IsFinal(ctx) {
			return pos, q.WatchdogLength(ctx), true, nil
		}
		if q.IsDead() || pos >= len(input) {
			return 0, -1, false, nil
		}
		r, size := utf8.DecodeRune(input[pos:])
		if stepErr := e.step(budget, pos); stepErr != nil {
			return 0, -1, false, stepErr
		}
		q = e.dfa.Next(q, e.dfa.Classify(r))
		pos += size
	}
}

// scanReverse runs the reverse pass over the reversed pattern from end
// backward to lowerBound, yielding the leftmost start of a match
// ending at end. lowerBound is the position the overall search began
// at: a match cannot start earlier than where the caller asked to look.
func (e *Engine) scanReverse(input []byte, end, lowerBound int, budget *uint64) (int, error) {
	q := e.dfa.State(e.revStart[reverseStartKind(input, end)])
	pos := end
	last := -1
	for {
		ctx := swapBorders(borderAt(input, pos))
		if q.IsFinal(ctx) {
			last = pos
		}
		if q.IsDead() || pos <= lowerBound {
			break
		}
		r, size := utf8.DecodeLastRune(input[lowerBound:pos])
		if stepErr := e.step(budget, pos); stepErr != nil {
			return 0, stepErr
		}
		q = e.dfa.Next(q, e.dfa.Classify(r))
		pos -= size
	}
	if last < 0 {
		return 0, &sre.Error{Kind: sre.Internal, Message: "reverse scan found no accepting start for a reported end"}
	}
	return last, nil
}

// scanCommit runs the anchored forward pass from a known-good start,
// tracking the last accepting position before the state dies. This is
// the pattern's greedy extent from that start.
func (e *Engine) scanCommit(input []byte, pos int, budget *uint64) (int, error) {
	q := e.dfa.StartState(forwardStartKind(input, pos))
	last := -1
	for {
		ctx := borderAt(input, pos)
		if q.IsFinal(ctx) {
			last = pos
		}
		if q.IsDead() || pos >= len(input) {
			break
		}
		r, size := utf8.DecodeRune(input[pos:])
		if stepErr := e.step(budget, pos); stepErr != nil {
			return 0, stepErr
		}
		q = e.dfa.Next(q, e.dfa.Classify(r))
		pos += size
	}
	if last < 0 {
		return 0, &sre.Error{Kind: sre.Internal, Message: "forward scan found no accepting end for a reported start"}
	}
	return last, nil
}

// step charges one character against the step budget. A nil budget
// means no limit.
func (e *Engine) step(budget *uint64, pos int) error {
	e.stats.steps.Add(1)
	if budget == nil {
		return nil
	}
	if *budget == 0 {
		return &sre.Error{Kind: sre.MatchAborted, Message: "match aborted by step budget", Pos: pos}
	}
	*budget--
	return nil
}

// rewindRunes returns the byte offset n runes before end.
func rewindRunes(input []byte, end, n int) int {
	pos := end
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeLastRune(input[:pos])
		pos -= size
	}
	return pos
}

// nextRuneOffset returns the byte offset one rune past pos, or pos+1
// past the end of input.
func nextRuneOffset(input []byte, pos int) int {
	if pos >= len(input) {
		return pos + 1
	}
	_, size := utf8.DecodeRune(input[pos:])
	return pos + size
}

// forwardStartKind classifies a forward scan's entry position.
func forwardStartKind(input []byte, pos int) lazy.StartKind {
	var prev rune
	if pos > 0 {
		prev = rune(input[pos-1])
	}
	return lazy.StartKindAt(pos, prev)
}

// reverseStartKind classifies a reverse scan's entry position. Input
// end plays the role forward scans give position zero, since the
// reversed term has already swapped \A/\z and ^/$; the "previous"
// character in that flipped sense is the one at pos, not pos-1.
func reverseStartKind(input []byte, pos int) lazy.StartKind {
	var prev rune
	if pos < len(input) {
		prev = rune(input[pos])
	}
	return lazy.StartKindAt(len(input)-pos, prev)
}

// borderAt reports the zero-width conditions holding at pos in input,
// in the usual forward sense.
func borderAt(input []byte, pos int) sre.Borders {
	var c sre.Borders
	if pos == 0 {
		c |= sre.BegInput | sre.BegLine
	} else if input[pos-1] == '\n' {
		c |= sre.BegLine
	}
	if pos == len(input) {
		c |= sre.EndInput | sre.EndLine
	} else if input[pos] == '\n' {
		c |= sre.EndLine
	}
	return c
}

// swapBorders exchanges begin- and end-conditions. A reverse scan
// walks a term whose anchors were already swapped by sre.Reverse; the
// border conditions it tests against must be swapped the same way.
func swapBorders(c sre.Borders) sre.Borders {
	var o sre.Borders
	if c&sre.BegInput != 0 {
		o |= sre.EndInput
	}
	if c&sre.EndInput != 0 {
		o |= sre.BegInput
	}
	if c&sre.BegLine != 0 {
		o |= sre.EndLine
	}
	if c&sre.EndLine != 0 {
		o |= sre.BegLine
	}
	return o
}
