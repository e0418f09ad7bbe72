package meta

// FindAll returns an iterator (Go 1.23 range-over-func) over the
// pattern's non-overlapping matches in input, left to right. An empty
// match advances by one rune so the iteration always terminates.
//
// Iteration stops early, without error, if a scan aborts on the step
// budget; callers that need to distinguish that case from "no more
// matches" should drive FindAllFunc directly.
func (e *Engine) FindAll(input []byte) func(func(Match) bool) {
	return func(yield func(Match) bool) {
		e.FindAllFunc(input, func(m Match, err error) bool {
			if err != nil {
				return false
			}
			return yield(m)
		})
	}
}

// FindAllFunc drives non-overlapping matching over input, calling fn
// for each match found and for a terminal error, if any. fn's second
// argument is non-nil only on the call that ends iteration due to a
// step-budget abort; fn is not called again after returning false or
// after an error.
func (e *Engine) FindAllFunc(input []byte, fn func(Match, error) bool) {
	pos := 0
	for pos <= len(input) {
		m, ok, err := e.Find(input, pos)
		if err != nil {
			fn(Match{}, err)
			return
		}
		if !ok {
			return
		}
		if !fn(m, nil) {
			return
		}
		if m.Length() > 0 {
			pos = m.End
		} else {
			pos = nextRuneOffset(input, m.End)
		}
	}
}
