package simd

// Rank buckets a byte into a coarse rarity class. Lower means rarer.
// The buckets are intentionally coarse: Memmem only needs to tell "this
// byte is unusual" from "this byte is everywhere", not a precise
// frequency order, since the real filter is the two-byte-at-a-fixed-
// offset probe in MemchrPair, not the rank itself.
func Rank(b byte) byte {
	switch {
	case b >= 0x80:
		// UTF-8 continuation and lead bytes: rare in ASCII-heavy text.
		return 10
	case b < 0x20 && b != '\t' && b != '\n' && b != '\r':
		// Control characters other than common whitespace.
		return 0
	case b == ' ':
		return 250
	case b == '\t' || b == '\n' || b == '\r':
		return 190
	case b >= '0' && b <= '9':
		return 150
	case isVowel(b):
		return 210
	case isLetter(b):
		return 120
	default:
		// Punctuation and symbols.
		return 60
	}
}

func isVowel(b byte) bool {
	switch b | 0x20 { // fold to lowercase
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

func isLetter(b byte) bool {
	c := b | 0x20
	return c >= 'a' && c <= 'z'
}

// rarestPair returns the positions of the two rarest bytes of needle,
// in index order. The needle must have at least two bytes.
//
// It runs two independent single-minimum scans: one over the whole
// needle, one over the needle with that position excluded. Memmem only
// calls this once per search, so the second pass costs nothing that
// matters next to the probe it sets up.
func rarestPair(needle []byte) (int, int) {
	i1 := rarestIndex(needle, -1)
	i2 := rarestIndex(needle, i1)
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	return i1, i2
}

// rarestIndex returns the index of the rarest byte in needle, skipping
// the position at exclude (or -1 to skip nothing).
func rarestIndex(needle []byte, exclude int) int {
	best := -1
	for i, b := range needle {
		if i == exclude {
			continue
		}
		if best == -1 || Rank(b) < Rank(needle[best]) {
			best = i
		}
	}
	return best
}
