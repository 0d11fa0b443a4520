package mgmatch

import (
	"fmt"
	"strings"

	"github.com/coregx/microgrammar/mgstream"
)

// Alt tries each choice in order at the same offset and returns the
// first success, or a failure if none match.
type Alt struct {
	id      string
	choices []MatchingLogic
}

// NewAlt builds an Alt over choices, tried in order.
func NewAlt(choices ...MatchingLogic) *Alt {
	return &Alt{id: "alt", choices: choices}
}

func (a *Alt) ID() string { return a.id }

func (a *Alt) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	for _, choice := range a.choices {
		res, err := choice.MatchPrefix(state, pc)
		if err != nil {
			return MatchPrefixResult{}, err
		}
		if res.Ok() {
			return res, nil
		}
	}
	return Failure(a.id, state.Offset(), "no alternative matched"), nil
}

// CanStartWith is true if any choice could start with c, or if any
// choice doesn't expose the hint (safe default: assume it could).
func (a *Alt) CanStartWith(c byte) bool {
	for _, choice := range a.choices {
		if hinted, ok := choice.(PrefixHinting); ok {
			if hinted.CanStartWith(c) {
				return true
			}
			continue
		}
		return true
	}
	return false
}

// RequiredPrefix reports a shared literal prefix only when every choice
// names the exact same one.
func (a *Alt) RequiredPrefix() (string, bool) {
	var prefix string
	for i, choice := range a.choices {
		hinted, ok := choice.(PrefixHinting)
		if !ok {
			return "", false
		}
		p, ok := hinted.RequiredPrefix()
		if !ok {
			return "", false
		}
		if i == 0 {
			prefix = p
		} else if p != prefix {
			return "", false
		}
	}
	return prefix, prefix != ""
}

// RequiredPrefixes returns every choice's RequiredPrefix, used by the
// driver to build a multi-literal anchor prefilter even when the
// choices don't all share a single prefix. It returns nil if any choice
// names no prefix, since that choice could then start anywhere.
func (a *Alt) RequiredPrefixes() []string {
	var out []string
	for _, choice := range a.choices {
		hinted, ok := choice.(PrefixHinting)
		if !ok {
			return nil
		}
		p, ok := hinted.RequiredPrefix()
		if !ok {
			return nil
		}
		out = append(out, p)
	}
	return out
}

func (a *Alt) String() string {
	strs := make([]string, len(a.choices))
	for i, c := range a.choices {
		strs[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("(%s)", strings.Join(strs, " | "))
}

// Opt tries inner; on failure it succeeds anyway with a zero-length
// Undefined match rather than propagating the failure.
type Opt struct {
	id    string
	inner MatchingLogic
}

// NewOpt builds an Opt wrapping inner.
func NewOpt(inner MatchingLogic) *Opt {
	return &Opt{id: "opt(" + inner.ID() + ")", inner: inner}
}

func (o *Opt) ID() string { return o.id }

func (o *Opt) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	res, err := o.inner.MatchPrefix(state, pc)
	if err != nil {
		return MatchPrefixResult{}, err
	}
	if !res.Ok() {
		return Success(NewUndefined(o.id, state.Offset())), nil
	}
	return res, nil
}

func (o *Opt) CanStartWith(c byte) bool { return true }

func (o *Opt) String() string { return fmt.Sprintf("[%s]", o.inner) }

// Not is a negative lookahead: it succeeds with zero consumption iff
// inner fails at the cursor.
type Not struct {
	id    string
	inner MatchingLogic
}

// NewNot builds a Not wrapping inner.
func NewNot(inner MatchingLogic) *Not {
	return &Not{id: "not(" + inner.ID() + ")", inner: inner}
}

func (n *Not) ID() string { return n.id }

func (n *Not) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	res, err := n.inner.MatchPrefix(state, pc)
	if err != nil {
		return MatchPrefixResult{}, err
	}
	if res.Ok() {
		return Failure(n.id, state.Offset(), "negative lookahead %s matched", n.inner.ID()), nil
	}
	return Success(NewUndefined(n.id, state.Offset())), nil
}

func (n *Not) String() string { return fmt.Sprintf("!%s", n.inner) }
