package simd

import "bytes"

// Memmem returns the index of the first instance of needle in
// haystack, or -1 if needle is not present. An empty needle matches at
// position 0, like bytes.Index.
//
// Candidates come from a paired-byte probe: the two rarest bytes of
// the needle must appear at their exact distance. Each candidate is
// then verified with a full comparison. Rare bytes keep the candidate
// set sparse even in haystacks full of the needle's common bytes.
func Memmem(haystack, needle []byte) int {
	n := len(needle)
	if n == 0 {
		return 0
	}
	if n > len(haystack) {
		return -1
	}
	if n == 1 {
		return Memchr(haystack, needle[0])
	}

	i1, i2 := rarestPair(needle)
	b1, b2 := needle[i1], needle[i2]
	offset := i2 - i1

	pos := 0
	for {
		cand := MemchrPair(haystack[pos:], b1, b2, offset)
		if cand == -1 {
			return -1
		}
		start := pos + cand - i1
		if start >= 0 && start+n <= len(haystack) &&
			bytes.Equal(haystack[start:start+n], needle) {
			return start
		}
		pos += cand + 1
		if pos+offset >= len(haystack) {
			return -1
		}
	}
}
