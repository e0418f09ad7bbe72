package prefilter

// Tracker monitors a prefilter's effectiveness during one scan and
// retires it when too many candidates fail verification. A literal that
// saturates the haystack makes the prefilter pure overhead: every probe
// hits, every hit is verified, and the verification fails. Retiring the
// prefilter returns the scan to plain DFA speed.
//
// A Tracker carries per-scan state. Create one per search; the wrapped
// prefilter itself stays shared.
type Tracker struct {
	inner Prefilter

	candidates uint64
	confirms   uint64
	checkpoint uint64
	active     bool
}

const (
	// trackerInterval is how many candidates pass between
	// effectiveness checks.
	trackerInterval = 64

	// trackerWarmup is the number of candidates observed before the
	// first check. Small samples retire good prefilters.
	trackerWarmup = 128

	// trackerMinRate is the confirm rate below which the prefilter is
	// retired.
	trackerMinRate = 0.1
)

// NewTracker wraps pf for one scan. A nil pf yields an inactive
// tracker, which callers treat the same as having no prefilter.
func NewTracker(pf Prefilter) *Tracker {
	return &Tracker{inner: pf, active: pf != nil}
}

// IsActive reports whether the prefilter should still be consulted.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Find forwards to the wrapped prefilter and counts the candidate.
func (t *Tracker) Find(haystack []byte, start int) int {
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.maybeRetire()
	}
	return pos
}

// Confirm records that the most recent candidate verified as a match.
func (t *Tracker) Confirm() {
	t.confirms++
}

// Candidates returns the number of candidates produced so far.
func (t *Tracker) Candidates() uint64 {
	return t.candidates
}

func (t *Tracker) maybeRetire() {
	if t.candidates < trackerWarmup || t.candidates-t.checkpoint < trackerInterval {
		return
	}
	t.checkpoint = t.candidates
	if float64(t.confirms)/float64(t.candidates) < trackerMinRate {
		t.active = false
	}
}
