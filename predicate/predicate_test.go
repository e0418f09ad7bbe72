package predicate

import "testing"

func TestMkRangeCanonical(t *testing.T) {
	tests := []struct {
		name string
		pred Pred
		want string
	}{
		{"single char", MkChar('a', false), "u0061"},
		{"plain range", MkRange('a', 'z', false), "u0061-u007A"},
		{"inverted is empty", MkRange('z', 'a', false), ""},
		{"clamped to bmp", MkRange(0xFF00, 0x10FFFF, false), "uFF00-uFFFF"},
		{"merge adjacent", FromRanges([]Range{{'a', 'm'}, {'n', 'z'}}), "u0061-u007A"},
		{"merge overlapping", FromRanges([]Range{{'a', 'p'}, {'g', 'z'}}), "u0061-u007A"},
		{"keep disjoint", FromRanges([]Range{{'0', '9'}, {'a', 'z'}}), "u0030-u0039 u0061-u007A"},
		{"unsorted input", FromRanges([]Range{{'x', 'z'}, {'a', 'c'}}), "u0061-u0063 u0078-u007A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBooleanOps(t *testing.T) {
	az := MkRange('a', 'z', false)
	digits := MkRange('0', '9', false)
	am := MkRange('a', 'm', false)

	t.Run("and disjoint", func(t *testing.T) {
		if az.And(digits).IsSatisfiable() {
			t.Error("[a-z] ∩ [0-9] should be empty")
		}
	})
	t.Run("and overlap", func(t *testing.T) {
		got := az.And(MkRange('g', '~', false))
		if !got.Equivalent(MkRange('g', 'z', false)) {
			t.Errorf("got %v, want [g-z]", got)
		}
	})
	t.Run("or merges", func(t *testing.T) {
		got := am.Or(MkRange('n', 'z', false))
		if !got.Equivalent(az) {
			t.Errorf("got %v, want [a-z]", got)
		}
	})
	t.Run("not roundtrip", func(t *testing.T) {
		if !az.Not().Not().Equivalent(az) {
			t.Error("double complement should be identity")
		}
	})
	t.Run("not covers bmp", func(t *testing.T) {
		if !az.Or(az.Not()).IsAny() {
			t.Error("p ∪ ¬p should be ⊤")
		}
		if az.And(az.Not()).IsSatisfiable() {
			t.Error("p ∩ ¬p should be ∅")
		}
	})
	t.Run("minus", func(t *testing.T) {
		got := az.Minus(am)
		if !got.Equivalent(MkRange('n', 'z', false)) {
			t.Errorf("got %v, want [n-z]", got)
		}
	})
	t.Run("empty absorbs", func(t *testing.T) {
		if !None().Or(az).Equivalent(az) {
			t.Error("∅ ∪ p should be p")
		}
		if None().And(az).IsSatisfiable() {
			t.Error("∅ ∩ p should be ∅")
		}
	})
}

func TestContains(t *testing.T) {
	p := FromRanges([]Range{{'0', '9'}, {'A', 'Z'}, {'a', 'z'}})
	tests := []struct {
		c    rune
		want bool
	}{
		{'0', true}, {'9', true}, {'/', false}, {':', false},
		{'A', true}, {'Z', true}, {'@', false}, {'[', false},
		{'a', true}, {'m', true}, {'z', true}, {'{', false},
		{0, false}, {MaxRune, false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.c); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestSubsetOf(t *testing.T) {
	tests := []struct {
		name string
		p, q Pred
		want bool
	}{
		{"equal", MkRange('a', 'z', false), MkRange('a', 'z', false), true},
		{"strict subset", MkRange('c', 'f', false), MkRange('a', 'z', false), true},
		{"empty subset of all", None(), MkChar('x', false), true},
		{"overlap only", MkRange('a', 'm', false), MkRange('g', 'z', false), false},
		{"split superset", MkRange('b', 'c', false), FromRanges([]Range{{'a', 'd'}, {'x', 'z'}}), true},
		{"straddles gap", MkRange('c', 'y', false), FromRanges([]Range{{'a', 'd'}, {'x', 'z'}}), false},
		{"anything in top", MkRange(0x100, 0x2FF, false), Any(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.SubsetOf(tt.q); got != tt.want {
				t.Errorf("SubsetOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCaseFolding(t *testing.T) {
	t.Run("ascii letter", func(t *testing.T) {
		p := MkChar('k', true)
		// k folds with K and the Kelvin sign U+212A.
		for _, c := range []rune{'k', 'K', 0x212A} {
			if !p.Contains(c) {
				t.Errorf("folded 'k' should contain %U", c)
			}
		}
		if p.Contains('l') {
			t.Error("folded 'k' should not contain 'l'")
		}
	})
	t.Run("range", func(t *testing.T) {
		p := MkRange('a', 'z', true)
		if !p.Contains('A') || !p.Contains('Z') {
			t.Error("folded [a-z] should contain uppercase letters")
		}
	})
	t.Run("uncased unchanged", func(t *testing.T) {
		p := MkRange('0', '9', true)
		if !p.Equivalent(MkRange('0', '9', false)) {
			t.Error("folding digits should be a no-op")
		}
	})
	t.Run("total unchanged", func(t *testing.T) {
		if !MkRange(0, MaxRune, true).IsAny() {
			t.Error("folding ⊤ should be ⊤")
		}
	})
}

func TestFormatParseRoundTrip(t *testing.T) {
	preds := []Pred{
		None(),
		Any(),
		MkChar('\n', false),
		MkRange('a', 'z', false),
		FromRanges([]Range{{'0', '9'}, {'A', 'F'}, {0x4E00, 0x9FFF}}),
	}
	for _, p := range preds {
		got, err := Parse(p.Format())
		if err != nil {
			t.Fatalf("Parse(%q): %v", p.Format(), err)
		}
		if !got.Equivalent(p) {
			t.Errorf("round trip of %v gave %v", p, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"u12", "x0041", "u0041-", "u0041-u003G", "u005A-u0041"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}

func TestHashEquivalence(t *testing.T) {
	a := FromRanges([]Range{{'a', 'm'}, {'n', 'z'}})
	b := MkRange('a', 'z', false)
	if a.Hash() != b.Hash() {
		t.Error("equivalent predicates must hash identically")
	}
	if a.Hash() == MkRange('a', 'y', false).Hash() {
		t.Error("distinct predicates should not collide here")
	}
}

func TestClasses(t *testing.T) {
	t.Run("digit", func(t *testing.T) {
		d := Digit(false)
		for _, c := range []rune{'0', '7', '9', 0x0660} { // ARABIC-INDIC DIGIT ZERO
			if !d.Contains(c) {
				t.Errorf("\\d should contain %U", c)
			}
		}
		for _, c := range []rune{'a', ' ', 0x00B2} { // superscript two is No, not Nd
			if d.Contains(c) {
				t.Errorf("\\d should not contain %U", c)
			}
		}
	})
	t.Run("space", func(t *testing.T) {
		s := Space(false)
		for _, c := range []rune{' ', '\t', '\n', '\r', 0x2028} {
			if !s.Contains(c) {
				t.Errorf("\\s should contain %U", c)
			}
		}
		if s.Contains('x') {
			t.Error("\\s should not contain 'x'")
		}
	})
	t.Run("word", func(t *testing.T) {
		w := Word(false)
		for _, c := range []rune{'a', 'Z', '0', '_', 0x00E9, 0x4E2D} {
			if !w.Contains(c) {
				t.Errorf("\\w should contain %U", c)
			}
		}
		for _, c := range []rune{' ', '-', '.', '!'} {
			if w.Contains(c) {
				t.Errorf("\\w should not contain %U", c)
			}
		}
	})
	t.Run("category specific", func(t *testing.T) {
		lu, err := Category("Lu", false)
		if err != nil {
			t.Fatal(err)
		}
		if !lu.Contains('A') || lu.Contains('a') {
			t.Error("Lu should contain 'A' and not 'a'")
		}
	})
	t.Run("category group", func(t *testing.T) {
		l, err := Category("L", false)
		if err != nil {
			t.Fatal(err)
		}
		if !l.Contains('A') || !l.Contains('a') || l.Contains('0') {
			t.Error("L should contain letters of both cases and no digits")
		}
	})
	t.Run("category unknown", func(t *testing.T) {
		if _, err := Category("Xx", false); err == nil {
			t.Error("unknown category should fail")
		}
	})
}
