package mgmatch

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/microgrammar/mgstream"
)

// RuneClass matches exactly one rune at the cursor satisfying a
// predicate. Use NewRuneSet or NewRuneRange to build the common cases;
// use NewRuneClass for an arbitrary test.
type RuneClass struct {
	id   string
	test func(rune) bool
}

// NewRuneClass builds a RuneClass named id from an arbitrary predicate.
func NewRuneClass(id string, test func(rune) bool) *RuneClass {
	return &RuneClass{id: id, test: test}
}

// NewRuneSet matches any single rune present in set.
func NewRuneSet(set string) *RuneClass {
	members := map[rune]bool{}
	for _, r := range set {
		members[r] = true
	}
	return NewRuneClass(fmt.Sprintf("runeSet(%q)", set), func(r rune) bool { return members[r] })
}

// NewRuneRange matches any single rune falling within one of the
// inclusive [low, high] pairs given: low, high, low2, high2, ...
func NewRuneRange(low, high rune, rest ...rune) *RuneClass {
	type span struct{ low, high rune }
	spans := make([]span, 0, 1+len(rest)/2)
	spans = append(spans, span{low, high})
	for i := 0; i+1 < len(rest); i += 2 {
		spans = append(spans, span{rest[i], rest[i+1]})
	}
	return NewRuneClass("runeRange", func(r rune) bool {
		for _, sp := range spans {
			if r >= sp.low && r <= sp.high {
				return true
			}
		}
		return false
	})
}

func (c *RuneClass) ID() string { return c.id }

func (c *RuneClass) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	head := state.Peek(utf8.UTFMax)
	if head == "" {
		return Failure(c.id, state.Offset(), "expected a rune matching %s, got end of input", c.id), nil
	}
	r, size := utf8.DecodeRuneInString(head)
	if r == utf8.RuneError && size <= 1 {
		return Failure(c.id, state.Offset(), "invalid encoding"), nil
	}
	if !c.test(r) {
		return Failure(c.id, state.Offset(), "expected a rune matching %s", c.id), nil
	}
	chunk := head[:size]
	return Success(NewTerminal(c.id, chunk, state.Offset(), r)), nil
}

func (c *RuneClass) String() string { return c.id }
