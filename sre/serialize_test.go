package sre

import (
	"errors"
	"testing"

	"github.com/coregx/symregex/predicate"
)

func TestSerializeRoundTrip(t *testing.T) {
	b := NewBuilder()
	terms := map[string]NodeID{
		"epsilon":   b.Epsilon(),
		"empty":     b.Empty(),
		"any":       b.AnyChar(),
		"dotstar":   b.DotStar(),
		"literal":   lit(b, "abc"),
		"class":     b.Singleton(predicate.MkRange('a', 'f', false).Or(predicate.MkChar('0', false))),
		"or":        b.Or(lit(b, "bcd"), mustLoop(t, b, lit(b, "cc"), 1, Inf, false), lit(b, "e")),
		"and":       b.And(mustLoop(t, b, b.Singleton(predicate.MkRange('a', 'z', false)), 2, 2, false), lit(b, "ab")),
		"loop":      mustLoop(t, b, lit(b, "a"), 2, 4, false),
		"lazy loop": mustLoop(t, b, lit(b, "a"), 0, Inf, true),
		"ite": b.IfThenElse(
			b.Singleton(predicate.MkChar('a', false)),
			lit(b, "x"),
			lit(b, "y"),
		),
		"anchored": b.ConcatAll(b.StartAnchor(), lit(b, "ab"), b.EolAnchor()),
		"bol eol":  b.ConcatAll(b.BolAnchor(), lit(b, "a"), b.EndAnchor()),
		"watchdog": b.Concat(lit(b, "abc"), b.Watchdog(3)),
	}
	for name, id := range terms {
		t.Run(name, func(t *testing.T) {
			s := b.Serialize(id)
			got, err := b.Deserialize(s)
			if err != nil {
				t.Fatalf("Deserialize(%q): %v", s, err)
			}
			// The same builder interns the reconstruction, so semantic
			// identity is literal identity.
			if got != id {
				t.Fatalf("round trip of %q: got node %d, want %d (re-serialized %q)",
					s, got, id, b.Serialize(got))
			}
		})
	}
}

func TestSerializeAcrossBuilders(t *testing.T) {
	b := NewBuilder()
	id := b.Or(
		b.ConcatAll(b.BolAnchor(), mustLoop(t, b, lit(b, "a"), 2, 4, false)),
		b.Concat(b.Singleton(predicate.Digit(false)), b.Watchdog(2)),
	)
	s := b.Serialize(id)

	b2 := NewBuilder()
	got, err := b2.Deserialize(s)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if b2.Serialize(got) != s {
		t.Fatalf("cross-builder round trip changed the form:\n  in:  %s\n  out: %s", s, b2.Serialize(got))
	}

	// Identical minterms and first set (the properties the DFA depends on).
	mts := predicate.Minterms(b.CollectPredicates(id))
	mts2 := predicate.Minterms(b2.CollectPredicates(got))
	if len(mts) != len(mts2) {
		t.Fatalf("minterm count changed: %d vs %d", len(mts), len(mts2))
	}
	for i := range mts {
		if !mts[i].Equivalent(mts2[i]) {
			t.Errorf("minterm %d differs: %v vs %v", i, mts[i], mts2[i])
		}
	}
	if !b.FirstSet(id).Equivalent(b2.FirstSet(got)) {
		t.Error("first set changed across the round trip")
	}
}

func TestDeserializeRejectsBadInput(t *testing.T) {
	b := NewBuilder()
	bad := []struct {
		name string
		in   string
	}{
		{"no version", "S([u0061],[u0062])"},
		{"future version", "v2:E"},
		{"truncated", "v1:S([u0061]"},
		{"junk", "v1:Q(E)"},
		{"bad code point", "v1:[u00GZ]"},
		{"inverted class range", "v1:[u0062-u0061]"},
		{"inverted loop", "v1:L(4,2,[u0061])"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Deserialize(tt.in)
			if err == nil {
				t.Fatalf("Deserialize(%q) accepted malformed input", tt.in)
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Deserialize(%q) error kind = %v, want InvalidFormat", tt.in, err)
			}
		})
	}
}

func TestSerializeStableUnderNormalization(t *testing.T) {
	b := NewBuilder()
	// Two routes to the same canonical term serialize identically.
	x := b.Concat(b.Concat(lit(b, "a"), lit(b, "b")), lit(b, "c"))
	y := b.Concat(lit(b, "a"), b.Concat(lit(b, "b"), lit(b, "c")))
	if b.Serialize(x) != b.Serialize(y) {
		t.Errorf("association leaked into the form: %q vs %q", b.Serialize(x), b.Serialize(y))
	}
}
