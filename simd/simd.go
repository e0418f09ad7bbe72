// Package simd provides accelerated byte searching for prefilters.
//
// The kernels are pure Go using the SWAR technique: a 64-bit word holds
// eight haystack bytes and bitwise arithmetic tests all eight positions
// at once. On CPUs with fast unaligned vector loads a wider variant
// processes 32 bytes per iteration; the choice is made once at package
// initialization from CPU feature flags.
package simd

import "golang.org/x/sys/cpu"

// useWide selects the 32-bytes-per-iteration kernels. Unaligned
// multi-word loads are cheap exactly where these features are present.
var useWide = cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD

// Memchr returns the index of the first instance of needle in
// haystack, or -1 if needle is not present.
func Memchr(haystack []byte, needle byte) int {
	if useWide && len(haystack) >= 32 {
		return memchrWide(haystack, needle)
	}
	return memchrSwar(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle in
// haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchr2Swar(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first instance of any of the three
// needles in haystack, or -1 if none is present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchr3Swar(haystack, needle1, needle2, needle3)
}

// MemchrPair returns the first index i with haystack[i] == byte1 and
// haystack[i+offset] == byte2, or -1. Requiring two bytes at a fixed
// distance is far more selective than a single-byte probe, which is
// what makes it a good substring prefilter.
func MemchrPair(haystack []byte, byte1, byte2 byte, offset int) int {
	return memchrPairSwar(haystack, byte1, byte2, offset)
}
