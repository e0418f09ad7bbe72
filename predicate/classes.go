package predicate

import (
	"fmt"
	"sync"
	"unicode"
)

// Character classes backed by the runtime's Unicode tables.
//
// Perl classes follow the reference definitions used throughout the
// engine: \d is the Nd category, \s is the White_Space property, and
// \w is letters, nonspacing marks, decimal digits, and connector
// punctuation.

var classOnce sync.Once
var digitPred, spacePred, wordPred Pred

func initClasses() {
	digitPred = FromRangeTable(unicode.Nd)
	spacePred = FromRangeTable(unicode.White_Space)
	wordPred = FromRangeTable(unicode.L).
		Or(FromRangeTable(unicode.Mn)).
		Or(FromRangeTable(unicode.Nd)).
		Or(FromRangeTable(unicode.Pc))
}

// Digit returns the \d class (Unicode decimal digits, category Nd).
func Digit(foldCase bool) Pred {
	classOnce.Do(initClasses)
	return digitPred // folding is a no-op: Nd has no cased members
}

// Space returns the \s class (the White_Space property).
func Space(foldCase bool) Pred {
	classOnce.Do(initClasses)
	return spacePred
}

// Word returns the \w class: L ∪ Mn ∪ Nd ∪ Pc.
// The class is already closed under case folding within the BMP.
func Word(foldCase bool) Pred {
	classOnce.Do(initClasses)
	return wordPred
}

// Category returns the predicate for a Unicode general category by
// name. Two-letter names (Lu, Ll, Nd, ...) resolve to the specific
// category; one-letter names (L, M, N, P, S, Z, C) resolve to the
// union of their subcategories. Unknown names are an error.
func Category(name string, foldCase bool) (Pred, error) {
	tab, ok := unicode.Categories[name]
	if !ok {
		return Pred{}, fmt.Errorf("predicate: unknown Unicode category %q", name)
	}
	p := FromRangeTable(tab)
	if foldCase {
		p = foldRanges(p)
	}
	return p, nil
}

// FromRangeTable converts a unicode.RangeTable into a predicate,
// clamping to the BMP and honoring strides.
func FromRangeTable(tab *unicode.RangeTable) Pred {
	var ranges []Range
	for _, r16 := range tab.R16 {
		if r16.Stride == 1 {
			ranges = append(ranges, Range{rune(r16.Lo), rune(r16.Hi)})
			continue
		}
		for c := rune(r16.Lo); c <= rune(r16.Hi); c += rune(r16.Stride) {
			ranges = append(ranges, Range{c, c})
		}
	}
	for _, r32 := range tab.R32 {
		if r32.Lo > uint32(MaxRune) {
			break
		}
		hi := rune(r32.Hi)
		if hi > MaxRune {
			hi = MaxRune
		}
		if r32.Stride == 1 {
			ranges = append(ranges, Range{rune(r32.Lo), hi})
			continue
		}
		for c := rune(r32.Lo); c <= hi; c += rune(r32.Stride) {
			ranges = append(ranges, Range{c, c})
		}
	}
	return FromRanges(ranges)
}
