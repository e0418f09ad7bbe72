package predicate

import "unicode"

// foldRanges closes p under simple case folding: for every member, all
// code points in its fold orbit are added. Orbits are walked with
// unicode.SimpleFold; members outside the BMP are discarded.
//
// Folding runs at compile time only, so the per-rune walk over each
// range is acceptable. Ranges that already cover the whole BMP are
// returned unchanged since no orbit can leave them.
func foldRanges(p Pred) Pred {
	if p.IsAny() {
		return p
	}
	extra := make([]Range, 0, 8)
	for _, r := range p.ranges {
		for c := r.Lo; c <= r.Hi; c++ {
			for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
				if f > MaxRune || (f >= r.Lo && f <= r.Hi) {
					continue
				}
				extra = append(extra, Range{f, f})
			}
		}
	}
	if len(extra) == 0 {
		return p
	}
	return p.Or(FromRanges(extra))
}
