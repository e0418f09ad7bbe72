package predicate

import "testing"

func TestMintermsPartition(t *testing.T) {
	tests := []struct {
		name  string
		preds []Pred
		want  int // number of blocks
	}{
		{"no predicates", nil, 1},
		{"one range", []Pred{MkRange('a', 'z', false)}, 2},
		{"disjoint ranges", []Pred{MkRange('a', 'z', false), MkRange('0', '9', false)}, 3},
		{"overlapping ranges", []Pred{MkRange('a', 'm', false), MkRange('g', 'z', false)}, 4},
		{"duplicate predicate", []Pred{MkChar('x', false), MkChar('x', false)}, 2},
		{"total predicate", []Pred{Any()}, 1},
		{"char and superset", []Pred{MkChar('b', false), MkRange('a', 'c', false)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Minterms(tt.preds)
			if len(blocks) != tt.want {
				t.Fatalf("got %d blocks, want %d", len(blocks), tt.want)
			}
			// Blocks must be pairwise disjoint and cover the BMP.
			union := None()
			for i, b := range blocks {
				if !b.IsSatisfiable() {
					t.Errorf("block %d is empty", i)
				}
				if union.And(b).IsSatisfiable() {
					t.Errorf("block %d overlaps an earlier block", i)
				}
				union = union.Or(b)
			}
			if !union.IsAny() {
				t.Error("blocks do not cover the BMP")
			}
			// Every input predicate must be a union of blocks.
			for _, p := range tt.preds {
				for _, b := range blocks {
					in := b.And(p).IsSatisfiable()
					out := b.Minus(p).IsSatisfiable()
					if in && out {
						t.Errorf("block %v straddles predicate %v", b, p)
					}
				}
			}
		})
	}
}

func TestMintermsOrdering(t *testing.T) {
	blocks := Minterms([]Pred{MkRange('a', 'z', false), MkRange('0', '9', false)})
	for i := 1; i < len(blocks); i++ {
		if blocks[i-1].Min() >= blocks[i].Min() {
			t.Fatal("blocks must be ordered by smallest member")
		}
	}
}

func TestClassifierLookup(t *testing.T) {
	blocks := Minterms([]Pred{
		MkRange('a', 'z', false),
		MkRange('0', '9', false),
		MkChar('\n', false),
	})
	c := NewClassifier(blocks)

	sameClass := func(x, y rune) bool { return c.Lookup(x) == c.Lookup(y) }

	if !sameClass('a', 'q') || !sameClass('a', 'z') {
		t.Error("all of [a-z] should share a class")
	}
	if !sameClass('0', '9') {
		t.Error("all of [0-9] should share a class")
	}
	if sameClass('a', '0') || sameClass('a', '\n') || sameClass('0', '\n') {
		t.Error("distinct predicates should land in distinct classes")
	}
	if sameClass('a', ' ') {
		t.Error("members and non-members must not share a class")
	}
	// Residue class: code points no predicate mentions.
	if !sameClass(' ', 0x4E00) || !sameClass('A', '!') {
		t.Error("unmentioned code points should share the residue class")
	}

	// Lookup must agree with direct membership for every block.
	for _, r := range []rune{0, '\n', ' ', '0', '5', '9', 'a', 'z', '{', 0x7F, 0x80, 0x4E00, MaxRune} {
		cls := int(c.Lookup(r))
		if !c.Minterm(cls).Contains(r) {
			t.Errorf("Lookup(%U) = class %d which does not contain it", r, cls)
		}
	}
}

func TestClassifierAboveBMP(t *testing.T) {
	blocks := Minterms([]Pred{MkRange('a', 'z', false)})
	c := NewClassifier(blocks)
	if c.Lookup(0x1F600) != c.Lookup(MaxRune) {
		t.Error("supplementary-plane input should classify as MaxRune")
	}
	// ⊤ covers astral input, a narrow class does not.
	if c.Minterm(int(c.Lookup(0x1F600))).Contains('a') {
		t.Error("astral input must not land in the [a-z] class")
	}
}
