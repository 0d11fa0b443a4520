package mgmatch

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/microgrammar/mgstream"
)

// Literal matches a fixed string verbatim.
type Literal struct {
	id   string
	text string
}

// NewLiteral builds a Literal matcher for s.
func NewLiteral(s string) *Literal {
	return &Literal{id: "literal:" + s, text: s}
}

func (l *Literal) ID() string { return l.id }

func (l *Literal) CanStartWith(c byte) bool {
	return len(l.text) > 0 && l.text[0] == c
}

func (l *Literal) RequiredPrefix() (string, bool) {
	return l.text, true
}

func (l *Literal) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	if state.Peek(len(l.text)) != l.text {
		return Failure(l.id, state.Offset(), "expected %q", l.text), nil
	}
	return Success(NewTerminal(l.id, l.text, state.Offset(), l.text)), nil
}

func (l *Literal) String() string { return l.id }

// CaseInsensitiveLiteral matches text rune-by-rune under Unicode simple
// case folding, so e.g. "TRUE" matches a CaseInsensitiveLiteral("true").
type CaseInsensitiveLiteral struct {
	id   string
	text string
}

// NewCaseInsensitiveLiteral builds a case-folding Literal for s.
func NewCaseInsensitiveLiteral(s string) *CaseInsensitiveLiteral {
	return &CaseInsensitiveLiteral{id: "caseless:" + s, text: s}
}

func (l *CaseInsensitiveLiteral) ID() string { return l.id }

func (l *CaseInsensitiveLiteral) CanStartWith(c byte) bool {
	if len(l.text) == 0 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(l.text)
	return runeFoldCase(r) == runeFoldCase(rune(c)) || l.text[0] == c
}

func (l *CaseInsensitiveLiteral) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	cur := state
	var matched strings.Builder
	for _, want := range l.text {
		head := cur.Peek(utf8.UTFMax)
		if head == "" {
			return Failure(l.id, state.Offset(), "expected %q (case-insensitive)", l.text), nil
		}
		r, size := utf8.DecodeRuneInString(head)
		if runeFoldCase(r) != runeFoldCase(want) {
			return Failure(l.id, state.Offset(), "expected %q (case-insensitive)", l.text), nil
		}
		chunk := head[:size]
		matched.WriteString(chunk)
		cur = cur.Consume(chunk, "caseless")
	}
	text := matched.String()
	return Success(NewTerminal(l.id, text, state.Offset(), text)), nil
}

func (l *CaseInsensitiveLiteral) String() string { return l.id }

// Regex matches the longest prefix satisfying a pattern, anchored at
// the cursor. Input is read through a growing window so arbitrarily
// large inputs don't need to be materialized just to anchor a regex;
// the window doubles until the match stabilizes (it ends strictly
// before the window's edge) or the whole remaining input is consumed.
type Regex struct {
	id string
	re *regexp.Regexp
}

// NewRegex compiles pattern and anchors it at the cursor. pattern
// should not itself contain a leading "^"; NewRegex adds the anchor.
func NewRegex(pattern string) *Regex {
	re := regexp.MustCompile(`^(?:` + pattern + `)`)
	return &Regex{id: "regex:" + pattern, re: re}
}

const regexInitialWindow = 256

func (r *Regex) ID() string { return r.id }

func (r *Regex) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	window := regexInitialWindow
	for {
		chunk := state.Peek(window)
		loc := r.re.FindStringIndex(chunk)
		if loc == nil {
			return Failure(r.id, state.Offset(), "no match for /%s/", r.re.String()), nil
		}
		// The match is trustworthy once it ends before the window's
		// edge (regexp can't have been truncated), or once the window
		// already covers everything there is to read.
		if loc[1] < len(chunk) || len(chunk) < window {
			matched := chunk[loc[0]:loc[1]]
			return Success(NewTerminal(r.id, matched, state.Offset(), matched)), nil
		}
		window *= 2
	}
}

func (r *Regex) String() string { return r.id }

// Integer matches an optionally-signed decimal integer, producing an
// int64 value.
type Integer struct {
	re *Regex
}

// NewInteger builds the Integer primitive.
func NewInteger() *Integer {
	return &Integer{re: NewRegex(`[+-]?[0-9]+`)}
}

func (n *Integer) ID() string { return "integer" }

func (n *Integer) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	res, err := n.re.MatchPrefix(state, pc)
	if err != nil || !res.Ok() {
		return res, err
	}
	m := res.Match().(*Terminal)
	v, err := strconv.ParseInt(m.matched, 10, 64)
	if err != nil {
		return Failure(n.ID(), state.Offset(), "malformed integer %q", m.matched), nil
	}
	return Success(NewTerminal(n.ID(), m.matched, m.offset, v)), nil
}

func (n *Integer) String() string { return "integer" }

// LowercaseBoolean matches the literal tokens "true" or "false",
// producing a bool value.
type LowercaseBoolean struct {
	re *Regex
}

// NewLowercaseBoolean builds the LowercaseBoolean primitive.
func NewLowercaseBoolean() *LowercaseBoolean {
	return &LowercaseBoolean{re: NewRegex(`true|false`)}
}

func (b *LowercaseBoolean) ID() string { return "lowercaseBoolean" }

func (b *LowercaseBoolean) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	res, err := b.re.MatchPrefix(state, pc)
	if err != nil || !res.Ok() {
		return res, err
	}
	m := res.Match().(*Terminal)
	return Success(NewTerminal(b.ID(), m.matched, m.offset, m.matched == "true")), nil
}

func (b *LowercaseBoolean) String() string { return "lowercaseBoolean" }

// RestOfInput always succeeds, consuming everything from the cursor to
// the end of the stream.
type RestOfInput struct{}

// NewRestOfInput builds the RestOfInput primitive.
func NewRestOfInput() *RestOfInput { return &RestOfInput{} }

func (RestOfInput) ID() string { return "restOfInput" }

func (r RestOfInput) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	const window = 4096
	var all []byte
	cur := state
	for {
		chunk := cur.Peek(window)
		if chunk == "" {
			break
		}
		all = append(all, chunk...)
		cur = cur.Consume(chunk, "restOfInput")
	}
	matched := string(all)
	return Success(NewTerminal(r.ID(), matched, state.Offset(), matched)), nil
}

func (RestOfInput) String() string { return "restOfInput" }

// Whitespace matches a run of Unicode whitespace, at least min runes
// long (0 makes it optional).
type Whitespace struct {
	min int
}

// NewWhitespace builds a Whitespace primitive requiring at least min
// runes of whitespace.
func NewWhitespace(min int) *Whitespace {
	return &Whitespace{min: min}
}

func (w *Whitespace) ID() string { return "whitespace" }

func (w *Whitespace) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	skipped, next, ok := state.SkipWhile(unicode.IsSpace, w.min)
	if !ok {
		return Failure(w.ID(), state.Offset(), "expected at least %d whitespace runes", w.min), nil
	}
	_ = next
	return Success(NewTerminal(w.ID(), skipped, state.Offset(), skipped)), nil
}

func (w *Whitespace) String() string { return "whitespace" }
