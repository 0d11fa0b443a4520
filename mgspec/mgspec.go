// Package mgspec compiles a template string such as
// "foo⤞${num}" or "->${fruit}<-${drink}!" into a *mgmatch.Concat, the
// spec-string compiler described in spec.md section 4.6.
//
// `${name}` introduces a slot: when name has a supplied matcher it is
// used verbatim, otherwise the slot becomes a non-greedy "anything up
// to the next anchor" match. The gap rune '⤞' between two anchors
// inserts an explicit, unnamed skip. Both forms lower to the same
// underlying mgmatch.Break; see DESIGN.md for how the two cases share
// one canonical representation without losing either side's binding.
package mgspec

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/coregx/microgrammar/internal/mgerr"
	"github.com/coregx/microgrammar/mgmatch"
)

// GapRune is the explicit gap token recognized between two anchors.
const GapRune = '⤞'

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokWS
	tokSlot
	tokGap
)

type token struct {
	kind tokenKind
	text string // literal text, tokLiteral only
	name string // slot name, tokSlot only
}

// Options carries the spec-compile-time options recognized by
// FromString. Unrecognized keys in the raw map form (Compile) are
// rejected; construct Options directly to avoid that check entirely.
type Options struct {
	// Terminator matches what a trailing undefined slot (one with no
	// anchor after it in the template) stops at. When nil, a trailing
	// undefined slot consumes to the end of input.
	Terminator mgmatch.MatchingLogic

	// ConsumeWhitespaceBetweenTokens defaults to true; threaded
	// straight through to the compiled Concat.
	ConsumeWhitespaceBetweenTokens bool

	ID string
}

// DefaultOptions returns the FromString defaults.
func DefaultOptions() Options {
	return Options{ConsumeWhitespaceBetweenTokens: true}
}

var recognizedOptionKeys = map[string]bool{
	"terminator":                     true,
	"consumeWhiteSpaceBetweenTokens": true,
	"id":                             true,
}

// ParseOptions converts the dynamic-language-shaped raw options map
// spec.md's external interface describes into an Options value,
// rejecting any key it doesn't recognize.
func ParseOptions(raw map[string]interface{}) (Options, error) {
	opts := DefaultOptions()
	for key, v := range raw {
		if !recognizedOptionKeys[key] {
			return Options{}, mgerr.UnknownOption(key)
		}
		switch key {
		case "terminator":
			m, ok := v.(mgmatch.MatchingLogic)
			if !ok {
				return Options{}, mgerr.Newf("option %q must be a MatchingLogic", key)
			}
			opts.Terminator = m
		case "consumeWhiteSpaceBetweenTokens":
			b, ok := v.(bool)
			if !ok {
				return Options{}, mgerr.Newf("option %q must be a bool", key)
			}
			opts.ConsumeWhitespaceBetweenTokens = b
		case "id":
			s, ok := v.(string)
			if !ok {
				return Options{}, mgerr.Newf("option %q must be a string", key)
			}
			opts.ID = s
		}
	}
	return opts, nil
}

// FromString compiles template into a Concat, using slots to supply
// matchers for named holes that need one.
func FromString(template string, slots map[string]mgmatch.MatchingLogic, opts Options) (*mgmatch.Concat, error) {
	toks, err := tokenize(template)
	if err != nil {
		return nil, err
	}
	return compile(toks, slots, opts)
}

// Compile is FromString with the raw options-map surface spec.md's
// external interface describes (accepting and validating unknown
// keys) rather than a typed Options value.
func Compile(template string, slots map[string]mgmatch.MatchingLogic, rawOptions map[string]interface{}) (*mgmatch.Concat, error) {
	opts, err := ParseOptions(rawOptions)
	if err != nil {
		return nil, err
	}
	return FromString(template, slots, opts)
}

var wsOrNonWS = regexp.MustCompile(`\s+|\S+`)

func isAllSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func tokenize(template string) ([]token, error) {
	var toks []token
	var lit strings.Builder
	runes := []rune(template)

	// flush splits the accumulated literal run into alternating
	// whitespace and non-whitespace chunks rather than emitting it as
	// one token: a template's own " = "-style spacing needs to be
	// distinguishable from its non-space text so compile can decide,
	// per $consumeWhiteSpaceBetweenTokens, whether that spacing is
	// elastic (left to Concat's own skip) or an exact literal.
	flush := func() {
		if lit.Len() == 0 {
			return
		}
		text := lit.String()
		lit.Reset()
		for _, chunk := range wsOrNonWS.FindAllString(text, -1) {
			if isAllSpace(chunk) {
				toks = append(toks, token{kind: tokWS, text: chunk})
			} else {
				toks = append(toks, token{kind: tokLiteral, text: chunk})
			}
		}
	}

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == GapRune:
			flush()
			toks = append(toks, token{kind: tokGap})
			i++
		case r == '$' && i+1 < len(runes) && runes[i+1] == '{':
			end := i + 2
			for end < len(runes) && runes[end] != '}' {
				end++
			}
			if end >= len(runes) {
				return nil, mgerr.Newf("unterminated %q in spec string", "${")
			}
			name := string(runes[i+2 : end])
			if !identPattern.MatchString(name) {
				return nil, mgerr.ErrInvalidSlotName
			}
			flush()
			toks = append(toks, token{kind: tokSlot, name: name})
			i = end + 1
		default:
			lit.WriteRune(r)
			i++
		}
	}
	flush()
	return toks, nil
}

// resolveWhitespace removes tokWS entries when the template's own
// inter-token whitespace is elastic (Concat's readyToMatch already
// skips it ahead of every step), or turns them into ordinary literal
// tokens when whitespace is exact. Doing this once up front keeps the
// rest of compile free of a third token kind to special-case.
func resolveWhitespace(toks []token, exact bool) []token {
	out := make([]token, 0, len(toks))
	for _, t := range toks {
		if t.kind != tokWS {
			out = append(out, t)
			continue
		}
		if exact {
			out = append(out, token{kind: tokLiteral, text: t.text})
		}
	}
	return out
}

func compile(toks []token, slots map[string]mgmatch.MatchingLogic, opts Options) (*mgmatch.Concat, error) {
	toks = resolveWhitespace(toks, !opts.ConsumeWhitespaceBetweenTokens)

	var steps []mgmatch.Step
	pendingGap := false
	litCount := 0
	gapCount := 0

	nextAnchorMatcher := func(i int) (mgmatch.MatchingLogic, error) {
		if i >= len(toks) {
			return nil, nil
		}
		switch toks[i].kind {
		case tokLiteral:
			return mgmatch.NewLiteral(toks[i].text), nil
		case tokSlot:
			m, ok := slots[toks[i].name]
			if !ok {
				return nil, mgerr.ErrConsecutiveUndefined
			}
			return m, nil
		default:
			return nil, mgerr.ErrAmbiguousGap
		}
	}

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.kind {
		case tokGap:
			if pendingGap {
				return nil, mgerr.ErrAmbiguousGap
			}
			pendingGap = true

		case tokLiteral:
			var matcher mgmatch.MatchingLogic = mgmatch.NewLiteral(tok.text)
			if pendingGap {
				matcher = mgmatch.NewBreak(matcher, mgmatch.BreakOptions{Bind: true})
				pendingGap = false
			}
			name := fmt.Sprintf("_lit%d", litCount)
			litCount++
			steps = append(steps, mgmatch.Match(name, matcher))

		case tokSlot:
			if defined, ok := slots[tok.name]; ok {
				var matcher mgmatch.MatchingLogic = defined
				if pendingGap {
					matcher = mgmatch.NewBreak(defined, mgmatch.BreakOptions{Bind: true})
					pendingGap = false
				}
				steps = append(steps, mgmatch.Match(tok.name, matcher))
				continue
			}

			// Undefined slot: becomes a non-greedy Break up to
			// whatever comes next, without consuming it — the
			// following token (literal or defined slot) still gets
			// its own ordinary step and its own binding.
			if pendingGap {
				return nil, mgerr.ErrAmbiguousGap
			}
			anchor, err := nextAnchorMatcher(i + 1)
			if err != nil {
				return nil, err
			}
			var matcher mgmatch.MatchingLogic
			switch {
			case anchor != nil:
				matcher = mgmatch.NewBreak(anchor, mgmatch.BreakOptions{Peek: true})
			case opts.Terminator != nil:
				matcher = mgmatch.NewBreak(opts.Terminator, mgmatch.BreakOptions{Peek: true})
			default:
				matcher = mgmatch.NewRestOfInput()
			}
			steps = append(steps, mgmatch.Match(tok.name, matcher))
		}
	}

	if pendingGap {
		// a trailing gap with nothing after it: treat it as matching
		// to the configured terminator, or to end of input.
		var matcher mgmatch.MatchingLogic
		if opts.Terminator != nil {
			matcher = mgmatch.NewBreak(opts.Terminator, mgmatch.BreakOptions{Bind: false})
		} else {
			matcher = mgmatch.NewRestOfInput()
		}
		name := fmt.Sprintf("_gap%d", gapCount)
		gapCount++
		steps = append(steps, mgmatch.Match(name, matcher))
	}

	copts := mgmatch.DefaultConcatOptions()
	copts.ConsumeWhitespaceBetweenTokens = opts.ConsumeWhitespaceBetweenTokens
	copts.ID = opts.ID
	return mgmatch.NewConcat(copts, steps...), nil
}
