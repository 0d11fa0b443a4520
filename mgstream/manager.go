package mgstream

// InputStateManager owns the stream and a sliding window buf covering
// the half-open byte range [left, left+len(buf)). Cursors issued as
// InputState values only ever refer to offsets >= left; DropLeft moves
// that boundary forward to bound memory use, and it is a caller bug to
// drop past a cursor still in scope.
type InputStateManager struct {
	stream     InputStream
	buf        []byte
	left       int
	listeners  Listeners
	notifiedTo int
}

// NewInputStateManager wraps stream with a fresh sliding window and
// attaches listeners that will observe every character consumed through
// cursors this manager issues.
func NewInputStateManager(stream InputStream, listeners ...Listener) *InputStateManager {
	return &InputStateManager{stream: stream, listeners: Listeners(listeners)}
}

// Root returns the cursor at offset zero.
func (m *InputStateManager) Root() InputState {
	return InputState{manager: m, offset: 0}
}

const readChunk = 4096

func (m *InputStateManager) ensure(upto int) {
	for m.left+len(m.buf) < upto && !m.stream.Exhausted() {
		chunk := m.stream.Read(readChunk)
		if chunk == "" {
			break
		}
		m.buf = append(m.buf, chunk...)
	}
}

func (m *InputStateManager) peek(offset, n int) string {
	if n <= 0 {
		return ""
	}
	m.ensure(offset + n)
	start := offset - m.left
	if start < 0 {
		return ""
	}
	end := start + n
	if end > len(m.buf) {
		end = len(m.buf)
	}
	if start >= end {
		return ""
	}
	return string(m.buf[start:end])
}

func (m *InputStateManager) exhausted(offset int) bool {
	m.ensure(offset + 1)
	return offset >= m.left+len(m.buf) && m.stream.Exhausted()
}

// DropLeft releases buffered bytes strictly before offset. It is a
// no-op if offset is not past the current left boundary.
func (m *InputStateManager) DropLeft(offset int) {
	if offset <= m.left {
		return
	}
	m.ensure(offset)
	cut := offset - m.left
	if cut > len(m.buf) {
		cut = len(m.buf)
	}
	m.buf = m.buf[cut:]
	m.left += cut
}

// notifyConsumed fires OnChar for bytes in [from, to) that haven't been
// reported yet, so repeated attempts over the same span (backtracking
// inside Alt/Opt) don't double-notify.
func (m *InputStateManager) notifyConsumed(from, to int, text string) {
	if len(m.listeners) == 0 || to <= m.notifiedTo {
		return
	}
	start := from
	if start < m.notifiedTo {
		start = m.notifiedTo
	}
	for i := start; i < to; i++ {
		m.listeners.notifyChar(text[i-from], i)
	}
	m.notifiedTo = to
}

// NotifyMatch reports a successful match to the manager's listeners.
// The driver calls this directly (rather than routing it through a
// cursor) since matches, unlike characters, aren't deduplicated by
// offset watermark.
func (m *InputStateManager) NotifyMatch(matcherID string, offset, length, depth int) {
	m.listeners.notifyMatch(matcherID, offset, length, depth)
}
