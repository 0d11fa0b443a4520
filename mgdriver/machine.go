// Package mgdriver implements the scanning loop spec.md section 4.7
// describes: given a starting matcher, walk an input end to end,
// collecting matches, running an optional secondary observer matcher
// alongside the primary one, and bounding memory via the manager's
// dropLeft.
package mgdriver

import (
	"github.com/coregx/microgrammar/mgmatch"
	"github.com/coregx/microgrammar/mgstream"
)

// OnMatch is called with every successful top-level match; its return
// value becomes the matcher used for the next scan position. Returning
// the same matcher continues scanning with it; returning nil stops the
// run.
type OnMatch func(match mgmatch.PatternMatch) mgmatch.MatchingLogic

// OnObserve is called with every successful observer match. Observers
// are side-effect-only: their return value, if any, is ignored.
type OnObserve func(match mgmatch.PatternMatch)

// Option configures a MatchingMachine beyond its required starting
// matcher.
type Option func(*MatchingMachine)

// WithOnMatch overrides the default "keep using the same matcher"
// behavior.
func WithOnMatch(fn OnMatch) Option {
	return func(m *MatchingMachine) { m.onMatch = fn }
}

// WithObserver attaches a secondary matcher run alongside the primary
// one purely for its side effects (tracking contextual state such as
// nesting depth), reported through onObserve.
func WithObserver(observer mgmatch.MatchingLogic, onObserve OnObserve) Option {
	return func(m *MatchingMachine) { m.observer = observer; m.onObserve = onObserve }
}

// WithoutWhitespaceSkip disables the scan loop's whitespace skip before
// each match attempt. It's on by default.
func WithoutWhitespaceSkip() Option {
	return func(m *MatchingMachine) { m.skipWhitespace = false }
}

// MatchingMachine drives a MatchingLogic across an entire input.
type MatchingMachine struct {
	start          mgmatch.MatchingLogic
	onMatch        OnMatch
	observer       mgmatch.MatchingLogic
	onObserve      OnObserve
	skipWhitespace bool
	prefilter      *anchorPrefilter
}

// New builds a MatchingMachine starting from logic. By default onMatch
// keeps using the same starting matcher for every subsequent position,
// i.e. findMatches scans the whole input for repeated matches of the
// one grammar.
func New(start mgmatch.MatchingLogic, opts ...Option) *MatchingMachine {
	m := &MatchingMachine{
		start:          start,
		onMatch:        func(mgmatch.PatternMatch) mgmatch.MatchingLogic { return start },
		skipWhitespace: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.prefilter = newAnchorPrefilter(start)
	return m
}

// FindMatches scans input from offset zero, collecting every match
// until the current matcher is exhausted (nil), input runs out, or
// stopAfter reports true for a just-collected match. A nil pc gets a
// fresh, empty one; a nil stopAfter collects every match.
func (m *MatchingMachine) FindMatches(input string, pc *mgmatch.ParseContext, listeners mgstream.Listeners, stopAfter func(mgmatch.PatternMatch) bool) ([]mgmatch.PatternMatch, error) {
	if pc == nil {
		pc = mgmatch.NewParseContext()
	}
	manager := mgstream.NewInputStateManager(mgstream.NewStringInputStream(input), listeners...)
	cursor := manager.Root()
	current := m.start

	var results []mgmatch.PatternMatch
	for current != nil && !cursor.Exhausted() {
		if m.skipWhitespace {
			_, cursor = mgmatch.SkipWhitespace(cursor)
			if cursor.Exhausted() {
				break
			}
		}

		res, err := current.MatchPrefix(cursor, pc)
		if err != nil {
			return results, err
		}

		if res.Ok() && len(res.Match().Matched()) > 0 {
			match := res.Match()
			manager.NotifyMatch(match.MatcherID(), match.Offset(), len(match.Matched()), 0)
			if m.observer != nil {
				if err := m.runObserver(cursor, pc, manager); err != nil {
					return results, err
				}
			}
			results = append(results, match)
			cursor = cursor.Consume(match.Matched(), match.MatcherID())
			current = m.onMatch(match)
			manager.DropLeft(cursor.Offset())
			if stopAfter != nil && stopAfter(match) {
				break
			}
			continue
		}

		if m.observer != nil {
			if err := m.runObserver(cursor, pc, manager); err != nil {
				return results, err
			}
		}
		cursor = m.advance(cursor, current)
		manager.DropLeft(cursor.Offset())
	}
	return results, nil
}

// FirstMatch is findMatches with a stopAfter that always stops after
// the first collected match.
func (m *MatchingMachine) FirstMatch(input string, listeners mgstream.Listeners) (mgmatch.PatternMatch, error) {
	matches, err := m.FindMatches(input, nil, listeners, func(mgmatch.PatternMatch) bool { return true })
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (m *MatchingMachine) runObserver(at mgstream.InputState, pc *mgmatch.ParseContext, manager *mgstream.InputStateManager) error {
	res, err := m.observer.MatchPrefix(at, pc)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return nil
	}
	match := res.Match()
	manager.NotifyMatch(match.MatcherID(), match.Offset(), len(match.Matched()), 1)
	if m.onObserve != nil {
		m.onObserve(match)
	}
	return nil
}

// advance steps the cursor forward after a failed or zero-length
// attempt. When the prefilter applies to the matcher currently in use
// (it was built for m.start, so it's only trusted while current is
// still m.start) it can skip most of a window at once instead of one
// byte, as long as none of the matcher's required literal anchors
// occur anywhere within it. Unless the window reaches the end of input,
// its last len(longest anchor)-1 bytes are not skipped, since an anchor
// could start there and end past the window.
func (m *MatchingMachine) advance(cursor mgstream.InputState, current mgmatch.MatchingLogic) mgstream.InputState {
	if m.prefilter == nil || current != m.start {
		return cursor.Advance()
	}
	window := cursor.Peek(anchorWindow)
	if window == "" {
		return cursor.Advance()
	}
	if m.prefilter.anyAnchorIn(window) {
		return cursor.Advance()
	}
	if len(window) == anchorWindow {
		longest := 0
		for _, p := range requiredPrefixesOf(m.start) {
			if len(p) > longest {
				longest = len(p)
			}
		}
		if longest > 1 {
			if longest-1 >= len(window) {
				return cursor.Advance()
			}
			window = window[:len(window)-(longest-1)]
		}
	}
	return cursor.Consume(window, "anchor-skip")
}
