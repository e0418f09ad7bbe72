package simd

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestMemmem(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		want     int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"", "a", -1},
		{"hello world", "world", 6},
		{"hello world", "hello", 0},
		{"hello world", "xyz", -1},
		{"aaaaaabaaaa", "aab", 4},
		{"abc", "abcd", -1},
		{"abababab", "bab", 1},
		{strings.Repeat("ab", 50) + "axb", "axb", 100},
		{"needle at the very end of a long haystack: needle", "needle", 0},
	}
	for _, tt := range tests {
		if got := Memmem([]byte(tt.haystack), []byte(tt.needle)); got != tt.want {
			t.Errorf("Memmem(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestMemmemAgainstStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	alphabet := []byte("abcab ")
	for trial := 0; trial < 500; trial++ {
		n := rng.Intn(300)
		haystack := make([]byte, n)
		for i := range haystack {
			haystack[i] = alphabet[rng.Intn(len(alphabet))]
		}
		m := 1 + rng.Intn(8)
		needle := make([]byte, m)
		for i := range needle {
			needle[i] = alphabet[rng.Intn(len(alphabet))]
		}
		want := bytes.Index(haystack, needle)
		if got := Memmem(haystack, needle); got != want {
			t.Fatalf("Memmem(%q, %q) = %d, want %d", haystack, needle, got, want)
		}
	}
}

func TestMemmemRepeatedNeedleBytes(t *testing.T) {
	// All needle bytes share one rank; the pair probe degenerates to a
	// same-byte pair and must still find every occurrence in order.
	haystack := []byte("xxaxxaaxxaaa")
	if got := Memmem(haystack, []byte("aaa")); got != 9 {
		t.Errorf("Memmem = %d, want 9", got)
	}
}
