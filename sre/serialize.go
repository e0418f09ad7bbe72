package sre

import (
	"fmt"
	"strings"
)

// Textual pattern form, version v1.
//
// The form is a single line: the version tag "v1:" followed by a
// prefix-coded term. Sequences are S(...), disjunctions D(...),
// conjunctions C(...), eager loops L(lo,hi,body) and lazy loops
// Z(lo,hi,body) with "*" for an unbounded hi, conditionals I(c,t,e),
// watchdogs #(n), and the anchors A, z, ^, $. ε is E, ⊤ is ".", and
// any other character class is its range form in brackets, e.g.
// [u0061-u007A u0030]. ∅ serializes as the empty class [].
//
// Deserializing the output reconstructs a term with identical
// semantics, identical minterms, and an identical first set; node
// identities are freshly interned by the receiving builder.

// FormatVersion is the leading tag of the serialized form.
const FormatVersion = "v1:"

// Serialize renders id in the v1 textual form.
func (b *Builder) Serialize(id NodeID) string {
	var sb strings.Builder
	sb.WriteString(FormatVersion)
	b.writeTerm(&sb, id)
	return sb.String()
}

func (b *Builder) writeTerm(sb *strings.Builder, id NodeID) {
	n := &b.nodes[id]
	switch n.kind {
	case KindEmpty:
		sb.WriteString("[]")
	case KindEpsilon:
		sb.WriteByte('E')
	case KindSingleton:
		if n.pred.IsAny() {
			sb.WriteByte('.')
			return
		}
		sb.WriteByte('[')
		sb.WriteString(n.pred.Format())
		sb.WriteByte(']')
	case KindConcat:
		// Right-associated chains flatten into one sequence.
		sb.WriteString("S(")
		b.writeTerm(sb, n.args[0])
		rest := n.args[1]
		for b.nodes[rest].kind == KindConcat {
			sb.WriteByte(',')
			b.writeTerm(sb, b.nodes[rest].args[0])
			rest = b.nodes[rest].args[1]
		}
		sb.WriteByte(',')
		b.writeTerm(sb, rest)
		sb.WriteByte(')')
	case KindOr:
		b.writeSet(sb, 'D', n.args)
	case KindAnd:
		b.writeSet(sb, 'C', n.args)
	case KindLoop:
		if n.lazy {
			sb.WriteByte('Z')
		} else {
			sb.WriteByte('L')
		}
		fmt.Fprintf(sb, "(%d,", n.lo)
		if n.hi == Inf {
			sb.WriteByte('*')
		} else {
			fmt.Fprintf(sb, "%d", n.hi)
		}
		sb.WriteByte(',')
		b.writeTerm(sb, n.args[0])
		sb.WriteByte(')')
	case KindIfThenElse:
		sb.WriteString("I(")
		b.writeTerm(sb, n.args[0])
		sb.WriteByte(',')
		b.writeTerm(sb, n.args[1])
		sb.WriteByte(',')
		b.writeTerm(sb, n.args[2])
		sb.WriteByte(')')
	case KindStartAnchor:
		sb.WriteByte('A')
	case KindEndAnchor:
		sb.WriteByte('z')
	case KindBolAnchor:
		sb.WriteByte('^')
	case KindEolAnchor:
		sb.WriteByte('$')
	case KindWatchdog:
		fmt.Fprintf(sb, "#(%d)", n.lo)
	}
}

func (b *Builder) writeSet(sb *strings.Builder, tag byte, args []NodeID) {
	sb.WriteByte(tag)
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		b.writeTerm(sb, a)
	}
	sb.WriteByte(')')
}
