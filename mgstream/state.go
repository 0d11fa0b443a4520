package mgstream

import (
	"strings"
	"unicode/utf8"
)

// InputState is an immutable cursor (manager, offset) into the text a
// manager is streaming. Producing a new state (Consume, Advance,
// SkipWhile) never invalidates any other InputState still held by a
// caller higher up the call stack: every value is a plain snapshot.
type InputState struct {
	manager *InputStateManager
	offset  int
}

// Offset reports the byte offset this cursor sits at.
func (s InputState) Offset() int {
	return s.offset
}

// Peek returns up to n bytes starting at the cursor without advancing
// it and without notifying listeners.
func (s InputState) Peek(n int) string {
	return s.manager.peek(s.offset, n)
}

// Exhausted reports whether the cursor has reached the end of input.
func (s InputState) Exhausted() bool {
	return s.manager.exhausted(s.offset)
}

// Consume returns the state past str, which the caller must already
// have confirmed matches the text at this cursor. why labels the
// consumption for diagnostics; it has no effect on listener output.
func (s InputState) Consume(str string, why string) InputState {
	next := InputState{manager: s.manager, offset: s.offset + len(str)}
	s.manager.notifyConsumed(s.offset, next.offset, str)
	return next
}

// Advance steps over exactly one byte, the fallback move after a
// failed prefix match so the driver can retry further along.
func (s InputState) Advance() InputState {
	ch := s.manager.peek(s.offset, 1)
	if ch == "" {
		return s
	}
	return s.Consume(ch, "advance")
}

// SkipWhile consumes runes while pred holds, stopping at the first rune
// that fails pred or at end of input. ok is false if fewer than min
// runes were available to skip, in which case the original state is
// returned unchanged.
func (s InputState) SkipWhile(pred func(rune) bool, min int) (skipped string, next InputState, ok bool) {
	cur := s
	var sb strings.Builder
	count := 0
	for {
		r, size := cur.peekRune()
		if size == 0 || !pred(r) {
			break
		}
		chunk := cur.Peek(size)
		sb.WriteString(chunk)
		cur = cur.Consume(chunk, "skip")
		count++
	}
	if count < min {
		return "", s, false
	}
	return sb.String(), cur, true
}

func (s InputState) peekRune() (rune, int) {
	head := s.manager.peek(s.offset, utf8.UTFMax)
	if head == "" {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(head)
	if r == utf8.RuneError && size <= 1 {
		return 0, 0
	}
	return r, size
}
