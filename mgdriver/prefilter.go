package mgdriver

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/microgrammar/mgmatch"
)

// anchorWindow bounds how far ahead the prefilter peeks before deciding
// whether to bother trying matchPrefix byte-by-byte across it. Peeking
// doesn't retain anything past the manager's own sliding buffer, so
// this keeps the scan's memory bound intact.
const anchorWindow = 512

// anchorPrefilter wraps a multi-literal Aho-Corasick automaton over a
// matcher's required literal prefixes, letting the driver skip whole
// windows of input that can't possibly start a match instead of
// retrying matchPrefix at every byte. It is nil, and every query
// trivially answers "maybe", when the starting matcher names no
// literal anchors at all (e.g. it starts with a Regex or an undefined
// slot).
type anchorPrefilter struct {
	matcher *ahocorasick.Matcher
}

// newAnchorPrefilter builds a prefilter over logic's required literal
// prefixes, or returns nil if none can be named.
func newAnchorPrefilter(logic mgmatch.MatchingLogic) *anchorPrefilter {
	prefixes := requiredPrefixesOf(logic)
	if len(prefixes) == 0 {
		return nil
	}
	return &anchorPrefilter{matcher: ahocorasick.NewStringMatcher(prefixes)}
}

// requiredPrefixesOf collects every literal a matcher could possibly
// begin with: a single RequiredPrefix, or (for an Alt) each choice's.
func requiredPrefixesOf(logic mgmatch.MatchingLogic) []string {
	if alt, ok := logic.(*mgmatch.Alt); ok {
		return alt.RequiredPrefixes()
	}
	if hinted, ok := logic.(mgmatch.PrefixHinting); ok {
		if p, ok := hinted.RequiredPrefix(); ok {
			return []string{p}
		}
	}
	return nil
}

// anyAnchorIn reports whether any of the prefilter's literals occur
// anywhere in window. A nil prefilter always answers true: with no
// literal anchors to rule out, every window might still match.
func (p *anchorPrefilter) anyAnchorIn(window string) bool {
	if p == nil {
		return true
	}
	return len(p.matcher.MatchString(window)) > 0
}
