package mgmatch

import (
	"strings"
	"unicode"

	"github.com/coregx/microgrammar/mgstream"
)

// readyToMatch is the whitespace strategy's "ready to match" routine
// (spec.md C5): consulted before every Concat/Rep step when whitespace
// consumption between tokens is enabled. It always succeeds (zero
// whitespace is a valid amount to skip).
func readyToMatch(state mgstream.InputState) (skipped string, next mgstream.InputState) {
	skipped, next, _ = state.SkipWhile(unicode.IsSpace, 0)
	return skipped, next
}

// SkipWhitespace is readyToMatch exported for the driver, which applies
// the same "skip whitespace before attempting a match" rule at the top
// of its scan loop (spec.md C7 step 2a).
func SkipWhitespace(state mgstream.InputState) (skipped string, next mgstream.InputState) {
	return readyToMatch(state)
}

// TrimmedValue returns a slot's scalar string value with leading and
// trailing whitespace removed. A Break that skips whitespace as part
// of its skipped prefix leaves that whitespace in the captured value;
// the engine doesn't trim it automatically, since a caller matching
// exact formatting may care about it. This is the opt-in trim.
func TrimmedValue(slot Slot) string {
	s, _ := valueOf(slot).(string)
	return strings.TrimSpace(s)
}
