package sre

// Reverse returns a term accepting exactly the reversed words of id.
// Sequences flip, begin anchors swap with end anchors, and loop
// bounds carry over. Watchdog markers are forward-scan bookkeeping and
// reverse to ε.
//
// The matcher builds the reverse once per compiled pattern and scans
// it leftward to locate match starts; border conditions are mirrored
// by the driver, which is why the anchor swap is exact.
func (b *Builder) Reverse(id NodeID) NodeID {
	if r, ok := b.reverseMemo[id]; ok {
		return r
	}
	n := &b.nodes[id]
	var r NodeID
	switch n.kind {
	case KindConcat:
		r = b.Concat(b.Reverse(n.args[1]), b.Reverse(n.args[0]))
	case KindOr:
		parts := make([]NodeID, len(n.args))
		for i, a := range n.args {
			parts[i] = b.Reverse(a)
		}
		r = b.Or(parts...)
	case KindAnd:
		parts := make([]NodeID, len(n.args))
		for i, a := range n.args {
			parts[i] = b.Reverse(a)
		}
		r = b.And(parts...)
	case KindLoop:
		r = b.mkLoop(b.Reverse(n.args[0]), n.lo, n.hi, n.lazy)
	case KindIfThenElse:
		r = b.IfThenElse(b.Reverse(n.args[0]), b.Reverse(n.args[1]), b.Reverse(n.args[2]))
	case KindStartAnchor:
		r = b.anchors[1]
	case KindEndAnchor:
		r = b.anchors[0]
	case KindBolAnchor:
		r = b.anchors[3]
	case KindEolAnchor:
		r = b.anchors[2]
	case KindWatchdog:
		r = b.epsilon
	default:
		r = id
	}
	b.reverseMemo[id] = r
	return r
}
