package mgmatch

import (
	"fmt"

	"github.com/coregx/microgrammar/internal/mgerr"
	"github.com/coregx/microgrammar/mgstream"
)

// Rep matches an inner matcher min or more times, optionally separated
// by sep (RepSep). An inner match that consumes zero characters is a
// hard error: looping on it would never terminate, so the engine
// raises a fatal error instead of silently spinning.
type Rep struct {
	id            string
	inner         MatchingLogic
	min           int
	sep           MatchingLogic
	consumeWS     bool
	limits        Limits
}

// RepOption configures a Rep/RepSep beyond its required arguments.
type RepOption func(*Rep)

// WithSeparator sets the separator pattern for RepSep-style repetition.
func WithSeparator(sep MatchingLogic) RepOption {
	return func(r *Rep) { r.sep = sep }
}

// WithoutWhitespaceBetween disables whitespace skipping between the
// inner matcher and, if present, its separator.
func WithoutWhitespaceBetween() RepOption {
	return func(r *Rep) { r.consumeWS = false }
}

// WithRepLimits overrides the default iteration bound.
func WithRepLimits(l Limits) RepOption {
	return func(r *Rep) { r.limits = l }
}

// NewRep builds a repetition of inner requiring at least min matches.
// Use WithSeparator to build the RepSep form. Panics if inner is nil:
// with ErrSeparatorNoInner when a separator was configured (a RepSep
// with nothing to separate makes no sense), or ErrNilStep otherwise.
func NewRep(min int, inner MatchingLogic, opts ...RepOption) *Rep {
	r := &Rep{inner: inner, min: min, consumeWS: true, limits: DefaultLimits()}
	for _, opt := range opts {
		opt(r)
	}
	if r.inner == nil {
		if r.sep != nil {
			panic(mgerr.ErrSeparatorNoInner)
		}
		panic(mgerr.ErrNilStep)
	}
	r.id = fmt.Sprintf("rep<%d,>(%s)", min, r.inner.ID())
	return r
}

func (r *Rep) ID() string { return r.id }

func (r *Rep) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	initial := state.Offset()
	cur := state
	var matched []byte
	var values []interface{}
	var items []PatternMatch
	count := 0

	for {
		attempt := cur
		var gap string
		if r.consumeWS {
			gap, attempt = readyToMatch(cur)
		}

		res, err := r.inner.MatchPrefix(attempt, pc)
		if err != nil {
			return MatchPrefixResult{}, err
		}
		if !res.Ok() {
			break
		}
		m := res.Match()
		if len(m.Matched()) == 0 {
			return MatchPrefixResult{}, mgerr.DegenerateRepeat(r.id)
		}

		matched = append(matched, gap...)
		matched = append(matched, m.Matched()...)
		values = append(values, m.Value())
		items = append(items, m)
		cur = attempt.Consume(m.Matched(), "rep-item")
		count++

		if r.limits.MaxRepeatSteps > 0 && count >= r.limits.MaxRepeatSteps {
			break
		}

		if r.sep != nil {
			sepAttempt := cur
			var sepGap string
			if r.consumeWS {
				sepGap, sepAttempt = readyToMatch(cur)
			}
			sres, serr := r.sep.MatchPrefix(sepAttempt, pc)
			if serr != nil {
				return MatchPrefixResult{}, serr
			}
			if !sres.Ok() {
				break
			}
			sm := sres.Match()
			matched = append(matched, sepGap...)
			matched = append(matched, sm.Matched()...)
			cur = sepAttempt.Consume(sm.Matched(), "rep-sep")
		}
	}

	if count < r.min {
		return Failure(r.id, initial, "expected at least %d repetitions, got %d", r.min, count), nil
	}
	return Success(NewArray(r.id, string(matched), initial, values, items)), nil
}

func (r *Rep) String() string {
	if r.sep != nil {
		return fmt.Sprintf("%s<%d,>/%s", r.inner, r.min, r.sep)
	}
	return fmt.Sprintf("%s<%d,>", r.inner, r.min)
}
