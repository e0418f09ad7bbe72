package simd

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		haystack string
		needle   byte
		want     int
	}{
		{"", 'a', -1},
		{"a", 'a', 0},
		{"b", 'a', -1},
		{"hello world", 'o', 4},
		{"hello world", 'x', -1},
		{strings.Repeat("x", 100) + "y", 'y', 100},
		{strings.Repeat("x", 31) + "y", 'y', 31},
		{"short", 't', 4},
	}
	for _, tt := range tests {
		if got := Memchr([]byte(tt.haystack), tt.needle); got != tt.want {
			t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestMemchrAgainsStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		n := rng.Intn(200)
		haystack := make([]byte, n)
		for i := range haystack {
			haystack[i] = byte('a' + rng.Intn(4))
		}
		needle := byte('a' + rng.Intn(5))
		want := bytes.IndexByte(haystack, needle)
		if got := Memchr(haystack, needle); got != want {
			t.Fatalf("Memchr(%q, %q) = %d, want %d", haystack, needle, got, want)
		}
		if got := memchrSwar(haystack, needle); got != want {
			t.Fatalf("memchrSwar(%q, %q) = %d, want %d", haystack, needle, got, want)
		}
		if n >= 32 {
			if got := memchrWide(haystack, needle); got != want {
				t.Fatalf("memchrWide(%q, %q) = %d, want %d", haystack, needle, got, want)
			}
		}
	}
}

func TestMemchr2(t *testing.T) {
	tests := []struct {
		haystack string
		n1, n2   byte
		want     int
	}{
		{"", 'a', 'b', -1},
		{"xyz", 'a', 'z', 2},
		{"xyz", 'y', 'z', 1},
		{"hello world", 'w', 'o', 4},
		{strings.Repeat("x", 50) + "ab", 'b', 'a', 50},
	}
	for _, tt := range tests {
		if got := Memchr2([]byte(tt.haystack), tt.n1, tt.n2); got != tt.want {
			t.Errorf("Memchr2(%q, %q, %q) = %d, want %d", tt.haystack, tt.n1, tt.n2, got, tt.want)
		}
	}
}

func TestMemchr3(t *testing.T) {
	tests := []struct {
		haystack   string
		n1, n2, n3 byte
		want       int
	}{
		{"", 'a', 'b', 'c', -1},
		{"wxyz", 'a', 'b', 'z', 3},
		{"wxyz", 'z', 'y', 'x', 1},
		{strings.Repeat("q", 40) + "c", 'a', 'b', 'c', 40},
	}
	for _, tt := range tests {
		if got := Memchr3([]byte(tt.haystack), tt.n1, tt.n2, tt.n3); got != tt.want {
			t.Errorf("Memchr3(%q) = %d, want %d", tt.haystack, got, tt.want)
		}
	}
}

func TestMemchrPair(t *testing.T) {
	tests := []struct {
		haystack string
		b1, b2   byte
		offset   int
		want     int
	}{
		{"", 'a', 'b', 1, -1},
		{"ab", 'a', 'b', 1, 0},
		{"aab", 'a', 'b', 1, 1},
		{"axxb", 'a', 'b', 3, 0},
		{"axb" + strings.Repeat("z", 40) + "ayb", 'a', 'b', 2, 0},
		{strings.Repeat("z", 40) + "ayb", 'a', 'b', 2, 40},
		{"ab", 'a', 'b', 5, -1},
		{"aaaa", 'a', 'a', 0, 0},
	}
	for _, tt := range tests {
		if got := MemchrPair([]byte(tt.haystack), tt.b1, tt.b2, tt.offset); got != tt.want {
			t.Errorf("MemchrPair(%q, %q, %q, %d) = %d, want %d",
				tt.haystack, tt.b1, tt.b2, tt.offset, got, tt.want)
		}
	}
}

func TestMemchrPairAgainstScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 300; trial++ {
		n := rng.Intn(120)
		haystack := make([]byte, n)
		for i := range haystack {
			haystack[i] = byte('a' + rng.Intn(3))
		}
		b1 := byte('a' + rng.Intn(3))
		b2 := byte('a' + rng.Intn(3))
		offset := rng.Intn(10)

		want := -1
		for i := 0; i+offset < n; i++ {
			if haystack[i] == b1 && haystack[i+offset] == b2 {
				want = i
				break
			}
		}
		if got := MemchrPair(haystack, b1, b2, offset); got != want {
			t.Fatalf("MemchrPair(%q, %q, %q, %d) = %d, want %d",
				haystack, b1, b2, offset, got, want)
		}
	}
}

func TestRankOrdersCommonAboveRare(t *testing.T) {
	if Rank(' ') <= Rank('Q') {
		t.Error("space ranked rarer than Q")
	}
	if Rank('e') <= Rank('z') {
		t.Error("e ranked rarer than z")
	}
}

func TestRarestPair(t *testing.T) {
	i1, i2 := rarestPair([]byte("Queue"))
	if i1 >= i2 {
		t.Fatalf("indexes out of order: %d, %d", i1, i2)
	}
	if i1 != 0 {
		t.Errorf("rarest byte of %q at %d, want 0 (Q)", "Queue", i1)
	}
}
