package meta

import "fmt"

// Match is one occurrence of the pattern in an input. Start and End
// are byte offsets; the matched text is input[Start:End]. End equals
// Start for an empty match.
type Match struct {
	Start int
	End   int
}

// Index returns the byte offset where the match begins.
func (m Match) Index() int {
	return m.Start
}

// Length returns the match length in bytes.
func (m Match) Length() int {
	return m.End - m.Start
}

func (m Match) String() string {
	return fmt.Sprintf("(%d,%d)", m.Start, m.End-m.Start)
}
