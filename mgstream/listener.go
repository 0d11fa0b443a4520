package mgstream

// Listener receives character and match notifications as matching
// proceeds. Implementations must be side-effect-only: return values
// aren't consulted, and a listener must never block matching (no
// synchronous I/O that could stall the whole run).
//
// Character events fire in offset order, once per byte first read past
// the caller's cursor. Match events fire with the matcher id, the span
// that matched, and the observer-vs-primary depth (0 for the primary
// matcher, >0 for nested observers), in the order guaranteed by
// MatchingMachine: an observer's event for a region always follows the
// primary match's event for the same region.
type Listener interface {
	OnChar(ch byte, offset int)
	OnMatch(matcherID string, offset, length, depth int)
}

// Listeners is an ordered set of Listener fanned out to together.
type Listeners []Listener

func (ls Listeners) notifyChar(ch byte, offset int) {
	for _, l := range ls {
		l.OnChar(ch, offset)
	}
}

func (ls Listeners) notifyMatch(matcherID string, offset, length, depth int) {
	for _, l := range ls {
		l.OnMatch(matcherID, offset, length, depth)
	}
}

// NopListener implements Listener by ignoring every event; embed it to
// satisfy the interface while overriding only the callback you need.
type NopListener struct{}

func (NopListener) OnChar(ch byte, offset int)                          {}
func (NopListener) OnMatch(matcherID string, offset, length, depth int) {}
