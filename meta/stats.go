package meta

import "sync/atomic"

// Stats is a snapshot of the engine's scan counters.
type Stats struct {
	// Scans is the number of match attempts started.
	Scans uint64

	// Matches is the number of matches reported.
	Matches uint64

	// PrefilterSkips is the number of candidate positions the prefilter
	// reported, whether or not they lay past the scan's starting point.
	PrefilterSkips uint64

	// Steps is the number of characters consumed across all scans.
	Steps uint64
}

type engineStats struct {
	scans          atomic.Uint64
	matches        atomic.Uint64
	prefilterSkips atomic.Uint64
	steps          atomic.Uint64
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Scans:          e.stats.scans.Load(),
		Matches:        e.stats.matches.Load(),
		PrefilterSkips: e.stats.prefilterSkips.Load(),
		Steps:          e.stats.steps.Load(),
	}
}
