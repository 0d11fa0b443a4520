// Package mgmatch implements the matching algebra: the MatchingLogic
// contract every matcher satisfies, the PatternMatch tree matches are
// reported as, and the combinators (Concat, Rep/RepSep, Alt, Opt,
// Break, Not) spec.md section 4 describes.
package mgmatch

import (
	"fmt"

	"github.com/coregx/microgrammar/mgstream"
)

// ParseContext threads caller-supplied, read-write state through a
// whole matching run. It is never interpreted by the engine itself;
// custom MatchingLogic implementations, which receive it in
// MatchPrefix, may stash and retrieve values from it to track state
// that spans multiple Concat steps or multiple matches (e.g. a running
// counter, or the observer's idea of nesting depth). Veto and compute
// functions see only their Bindings, not the ParseContext.
type ParseContext struct {
	values map[string]interface{}
}

// NewParseContext returns an empty context.
func NewParseContext() *ParseContext {
	return &ParseContext{values: map[string]interface{}{}}
}

func (pc *ParseContext) Get(key string) (interface{}, bool) {
	if pc == nil {
		return nil, false
	}
	v, ok := pc.values[key]
	return v, ok
}

func (pc *ParseContext) Set(key string, value interface{}) {
	if pc == nil {
		return
	}
	pc.values[key] = value
}

// MatchingLogic is the contract every matcher in the algebra satisfies.
// MatchPrefix either succeeds (with a PatternMatch) or fails (with a
// MatchFailure describing where and why) through its MatchPrefixResult
// return value; the error return is reserved for grammar-fatal faults
// (a degenerate repetition) that must abort the whole run rather than
// be treated as an ordinary dismatch. Reaching a Limits bound is not
// such a fault: Break reports an ordinary failure and Rep stops
// iterating.
type MatchingLogic interface {
	// ID is the matcher's stable diagnostic identifier.
	ID() string

	MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error)
}

// PrefixHinting is an optional capability a matcher can implement to
// let callers (Concat, MatchingMachine) fast-reject or fast-route
// without actually attempting a match.
type PrefixHinting interface {
	// CanStartWith reports whether the matcher could possibly begin a
	// match at a position whose first byte is c. Returning true is
	// always safe; returning false must be certain.
	CanStartWith(c byte) bool

	// RequiredPrefix returns the literal string every successful match
	// must begin with, if the matcher can name one.
	RequiredPrefix() (string, bool)
}

// MatchFailure describes a declared match failure: which matcher
// declared it, at what offset, and why. Failures never mutate shared
// state and never advance the caller's cursor.
type MatchFailure struct {
	MatcherID string
	Offset    int
	Reason    string
}

func (f *MatchFailure) Error() string {
	return fmt.Sprintf("%s@%d: %s", f.MatcherID, f.Offset, f.Reason)
}

// MatchPrefixResult is the tagged Success/Failure union MatchPrefix
// returns on its ordinary (non-fatal) control path.
type MatchPrefixResult struct {
	match PatternMatch
	fail  *MatchFailure
}

// Success wraps a PatternMatch as a successful result.
func Success(m PatternMatch) MatchPrefixResult {
	return MatchPrefixResult{match: m}
}

// Failure builds a failed result.
func Failure(matcherID string, offset int, reason string, args ...interface{}) MatchPrefixResult {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return MatchPrefixResult{fail: &MatchFailure{MatcherID: matcherID, Offset: offset, Reason: reason}}
}

// Ok reports whether this result is a success.
func (r MatchPrefixResult) Ok() bool {
	return r.fail == nil
}

// Match returns the successful match, or nil on failure.
func (r MatchPrefixResult) Match() PatternMatch {
	return r.match
}

// Fail returns the failure detail, or nil on success.
func (r MatchPrefixResult) Fail() *MatchFailure {
	return r.fail
}
