package symregex

import (
	"regexp/syntax"

	"github.com/coregx/symregex/predicate"
	"github.com/coregx/symregex/sre"
)

// fromSyntax lowers a parsed regexp/syntax tree into the symbolic AST.
// The parser is the accepted front end (see regexp/syntax.Parse); this
// function only translates operators, it does no further simplification
// beyond what the builder's constructors already do on the way in.
func fromSyntax(b *sre.Builder, re *syntax.Regexp) (sre.NodeID, error) {
	switch re.Op {
	case syntax.OpNoMatch:
		return b.Empty(), nil

	case syntax.OpEmptyMatch:
		return b.Epsilon(), nil

	case syntax.OpLiteral:
		fold := re.Flags&syntax.FoldCase != 0
		ids := make([]sre.NodeID, len(re.Rune))
		for i, c := range re.Rune {
			ids[i] = b.Singleton(predicate.MkChar(c, fold))
		}
		return b.ConcatAll(ids...), nil

	case syntax.OpCharClass:
		return b.Singleton(classPred(re.Rune)), nil

	case syntax.OpAnyCharNotNL:
		return b.Singleton(predicate.MkChar('\n', false).Not()), nil

	case syntax.OpAnyChar:
		return b.AnyChar(), nil

	case syntax.OpBeginLine:
		return b.BolAnchor(), nil

	case syntax.OpEndLine:
		return b.EolAnchor(), nil

	case syntax.OpBeginText:
		return b.StartAnchor(), nil

	case syntax.OpEndText:
		return b.EndAnchor(), nil

	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return b.Empty(), &sre.Error{
			Kind:    sre.UnsupportedFeature,
			Message: "word boundary assertions are not supported",
		}

	case syntax.OpCapture:
		// Capture groups carry no submatch semantics here; the group
		// is transparent grouping syntax over its single operand.
		return fromSyntax(b, re.Sub[0])

	case syntax.OpStar:
		return fromRepeat(b, re, 0, sre.Inf)

	case syntax.OpPlus:
		return fromRepeat(b, re, 1, sre.Inf)

	case syntax.OpQuest:
		return fromRepeat(b, re, 0, 1)

	case syntax.OpRepeat:
		hi := sre.Inf
		if re.Max >= 0 {
			hi = uint32(re.Max)
		}
		return fromRepeat(b, re, uint32(re.Min), hi)

	case syntax.OpConcat:
		ids, err := fromSyntaxAll(b, re.Sub)
		if err != nil {
			return b.Empty(), err
		}
		return b.ConcatAll(ids...), nil

	case syntax.OpAlternate:
		ids, err := fromSyntaxAll(b, re.Sub)
		if err != nil {
			return b.Empty(), err
		}
		return b.Or(ids...), nil

	default:
		return b.Empty(), &sre.Error{
			Kind:    sre.UnsupportedFeature,
			Message: "unsupported syntax operator",
		}
	}
}

func fromRepeat(b *sre.Builder, re *syntax.Regexp, lo, hi uint32) (sre.NodeID, error) {
	body, err := fromSyntax(b, re.Sub[0])
	if err != nil {
		return b.Empty(), err
	}
	lazy := re.Flags&syntax.NonGreedy != 0
	return b.Loop(body, lo, hi, lazy)
}

func fromSyntaxAll(b *sre.Builder, subs []*syntax.Regexp) ([]sre.NodeID, error) {
	ids := make([]sre.NodeID, len(subs))
	for i, s := range subs {
		id, err := fromSyntax(b, s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// classPred converts regexp/syntax's flat [lo,hi,lo,hi,...] rune-pair
// encoding of a character class into a predicate. Parsing has already
// applied case folding to class members, so no extra fold step runs
// here.
func classPred(pairs []rune) predicate.Pred {
	ranges := make([]predicate.Range, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ranges = append(ranges, predicate.Range{Lo: pairs[i], Hi: pairs[i+1]})
	}
	return predicate.FromRanges(ranges)
}
