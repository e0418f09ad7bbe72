package sre

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/coregx/symregex/predicate"
)

// Deserializer for the v1 textual form. The grammar mirrors the output
// of Serialize exactly; anything else is InvalidFormat.

var formLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "CodePoint", Pattern: `u[0-9A-Fa-f]{4}`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Tag", Pattern: `[SDCLZIAEz]`},
	{Name: "Punct", Pattern: `[()\[\],*#^$.\-]`},
	{Name: "whitespace", Pattern: `[ \t]+`},
})

var formParser = participle.MustBuild[formTerm](
	participle.Lexer(formLexer),
	participle.UseLookahead(2),
)

type formTerm struct {
	Seq   []formTerm `parser:"  'S' '(' @@ ( ',' @@ )* ')'"`
	Alt   []formTerm `parser:"| 'D' '(' @@ ( ',' @@ )* ')'"`
	Conj  []formTerm `parser:"| 'C' '(' @@ ( ',' @@ )* ')'"`
	Loop  *formLoop  `parser:"| @@"`
	Cond  *formCond  `parser:"| @@"`
	Watch *formWatch `parser:"| @@"`
	Leaf  *string    `parser:"| @( 'A' | 'z' | '^' | '$' | 'E' | '.' )"`
	Class *formClass `parser:"| @@"`
}

type formLoop struct {
	Lazy bool      `parser:"( @'Z' | 'L' )"`
	Lo   uint32    `parser:"'(' @Int ','"`
	Star bool      `parser:"( @'*'"`
	Hi   uint32    `parser:"| @Int )"`
	Body *formTerm `parser:"',' @@ ')'"`
}

type formCond struct {
	If   *formTerm `parser:"'I' '(' @@"`
	Then *formTerm `parser:"',' @@"`
	Else *formTerm `parser:"',' @@ ')'"`
}

type formWatch struct {
	Len uint32 `parser:"'#' '(' @Int ')'"`
}

type formClass struct {
	Entries []formRange `parser:"'[' @@* ']'"`
}

type formRange struct {
	Lo string  `parser:"@CodePoint"`
	Hi *string `parser:"( '-' @CodePoint )?"`
}

// Deserialize parses the v1 textual form into a term interned by this
// builder. The input must carry the "v1:" version tag; any other tag
// is rejected with InvalidFormat.
func (b *Builder) Deserialize(s string) (NodeID, error) {
	body, ok := strings.CutPrefix(s, FormatVersion)
	if !ok {
		return b.empty, &Error{Kind: InvalidFormat, Message: "unknown serialized pattern version tag"}
	}
	t, err := formParser.ParseString("", body)
	if err != nil {
		return b.empty, &Error{Kind: InvalidFormat, Message: "malformed serialized pattern", Cause: err}
	}
	return b.fromForm(t)
}

func (b *Builder) fromForm(t *formTerm) (NodeID, error) {
	switch {
	case t.Seq != nil:
		ids, err := b.fromForms(t.Seq)
		if err != nil {
			return b.empty, err
		}
		return b.ConcatAll(ids...), nil
	case t.Alt != nil:
		ids, err := b.fromForms(t.Alt)
		if err != nil {
			return b.empty, err
		}
		return b.Or(ids...), nil
	case t.Conj != nil:
		ids, err := b.fromForms(t.Conj)
		if err != nil {
			return b.empty, err
		}
		return b.And(ids...), nil
	case t.Loop != nil:
		body, err := b.fromForm(t.Loop.Body)
		if err != nil {
			return b.empty, err
		}
		hi := t.Loop.Hi
		if t.Loop.Star {
			hi = Inf
		}
		id, err := b.Loop(body, t.Loop.Lo, hi, t.Loop.Lazy)
		if err != nil {
			return b.empty, &Error{Kind: InvalidFormat, Message: "inverted loop bounds in serialized pattern", Cause: err}
		}
		return id, nil
	case t.Cond != nil:
		c, err := b.fromForm(t.Cond.If)
		if err != nil {
			return b.empty, err
		}
		th, err := b.fromForm(t.Cond.Then)
		if err != nil {
			return b.empty, err
		}
		el, err := b.fromForm(t.Cond.Else)
		if err != nil {
			return b.empty, err
		}
		return b.IfThenElse(c, th, el), nil
	case t.Watch != nil:
		return b.Watchdog(t.Watch.Len), nil
	case t.Leaf != nil:
		switch *t.Leaf {
		case "A":
			return b.anchors[0], nil
		case "z":
			return b.anchors[1], nil
		case "^":
			return b.anchors[2], nil
		case "$":
			return b.anchors[3], nil
		case "E":
			return b.epsilon, nil
		case ".":
			return b.anyChar, nil
		}
		return b.empty, &Error{Kind: Internal, Message: "unreachable serialized leaf"}
	case t.Class != nil:
		var sb strings.Builder
		for i, e := range t.Class.Entries {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(e.Lo)
			if e.Hi != nil {
				sb.WriteByte('-')
				sb.WriteString(*e.Hi)
			}
		}
		p, err := predicate.Parse(sb.String())
		if err != nil {
			return b.empty, &Error{Kind: InvalidFormat, Message: "malformed character class in serialized pattern", Cause: err}
		}
		return b.Singleton(p), nil
	}
	return b.empty, &Error{Kind: InvalidFormat, Message: "empty serialized term"}
}

func (b *Builder) fromForms(ts []formTerm) ([]NodeID, error) {
	ids := make([]NodeID, len(ts))
	for i := range ts {
		id, err := b.fromForm(&ts[i])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
