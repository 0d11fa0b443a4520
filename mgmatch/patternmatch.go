package mgmatch

import (
	"fmt"
	"strings"
)

// PatternMatch is the tree of values a successful MatchPrefix call
// produces: Terminal (atomic), Tree (a Concat's structured children),
// Array (a Rep/RepSep's repeated children) or Undefined (an Opt that
// didn't match). invariant: offset + len(Matched()) never exceeds the
// length of the input the match was taken from.
type PatternMatch interface {
	MatcherID() string
	Matched() string
	Offset() int
	// Value is the scalar/tree/slice value this match contributes to
	// an enclosing slot; a Tree returns itself.
	Value() interface{}
	String() string
}

// Terminal is an atomic match: a literal, a regex, a primitive. Value
// may be a typed scalar (an int64, a bool) or, for matchers with no
// richer notion of value, the raw matched text.
type Terminal struct {
	matcherID string
	matched   string
	offset    int
	value     interface{}
}

// NewTerminal builds a Terminal match.
func NewTerminal(matcherID, matched string, offset int, value interface{}) *Terminal {
	return &Terminal{matcherID: matcherID, matched: matched, offset: offset, value: value}
}

func (t *Terminal) MatcherID() string   { return t.matcherID }
func (t *Terminal) Matched() string     { return t.matched }
func (t *Terminal) Offset() int         { return t.offset }
func (t *Terminal) Value() interface{}  { return t.value }
func (t *Terminal) String() string {
	return fmt.Sprintf("%s:%q@%d", t.matcherID, t.matched, t.offset)
}

// SlotKind distinguishes the three things a Tree's children can be.
type SlotKind int

const (
	SlotScalar SlotKind = iota
	SlotNested
	SlotComputed
)

// Slot is one named child of a Tree, in declaration order. Names
// beginning with "_" are special: vetoes and discardable steps, never
// exposed through Tree.Get as user data. Names beginning with "$" are
// reserved for engine metadata and never appear as Slot names.
type Slot struct {
	Name  string
	Kind  SlotKind
	Term  *Terminal // set iff Kind == SlotScalar
	Tree  *Tree     // set iff Kind == SlotNested
	Value interface{} // set iff Kind == SlotComputed
}

// IsSpecial reports whether this slot is internal bookkeeping (a veto
// marker or discardable step) rather than user-visible data.
func (s Slot) IsSpecial() bool {
	return strings.HasPrefix(s.Name, "_")
}

// Tree is a structured match produced by Concat: its matched text is
// exactly the concatenation of its steps' matched text plus whatever
// whitespace was skipped between them.
type Tree struct {
	matcherID string
	matched   string
	offset    int
	slots     []Slot
}

// NewTree builds a Tree match from its ordered slots.
func NewTree(matcherID, matched string, offset int, slots []Slot) *Tree {
	return &Tree{matcherID: matcherID, matched: matched, offset: offset, slots: slots}
}

func (t *Tree) MatcherID() string  { return t.matcherID }
func (t *Tree) Matched() string    { return t.matched }
func (t *Tree) Offset() int        { return t.offset }
func (t *Tree) Value() interface{} { return t }
func (t *Tree) Slots() []Slot      { return t.slots }

// Get looks up a non-special slot by name, returning its scalar value,
// nested *Tree, or computed value.
func (t *Tree) Get(name string) (interface{}, bool) {
	for _, s := range t.slots {
		if s.Name != name || s.IsSpecial() {
			continue
		}
		switch s.Kind {
		case SlotScalar:
			return s.Term.Value(), true
		case SlotNested:
			return s.Tree, true
		case SlotComputed:
			return s.Value, true
		}
	}
	return nil, false
}

// ValueMatches returns, for every scalar slot, its underlying Terminal
// match so callers can recover the slot's original span for an
// offset-preserving update.
func (t *Tree) ValueMatches() map[string]*Terminal {
	out := map[string]*Terminal{}
	for _, s := range t.slots {
		if s.Kind == SlotScalar && !s.IsSpecial() {
			out[s.Name] = s.Term
		}
	}
	return out
}

func (t *Tree) String() string {
	parts := make([]string, 0, len(t.slots))
	for _, s := range t.slots {
		switch s.Kind {
		case SlotScalar:
			parts = append(parts, fmt.Sprintf("%s=%v", s.Name, s.Term.Value()))
		case SlotNested:
			parts = append(parts, fmt.Sprintf("%s=%s", s.Name, s.Tree))
		case SlotComputed:
			parts = append(parts, fmt.Sprintf("%s:=%v", s.Name, s.Value))
		}
	}
	return fmt.Sprintf("%s{%s}@%d", t.matcherID, strings.Join(parts, ", "), t.offset)
}

// Array is a Rep/RepSep match: the ordered sequence of its inner
// matcher's values (scalar if the inner matcher produces Terminals,
// *Tree if it produces trees), plus the full item matches for update
// overlays that need to address an individual repetition.
type Array struct {
	matcherID string
	matched   string
	offset    int
	values    []interface{}
	items     []PatternMatch
}

// NewArray builds an Array match.
func NewArray(matcherID, matched string, offset int, values []interface{}, items []PatternMatch) *Array {
	return &Array{matcherID: matcherID, matched: matched, offset: offset, values: values, items: items}
}

func (a *Array) MatcherID() string       { return a.matcherID }
func (a *Array) Matched() string         { return a.matched }
func (a *Array) Offset() int             { return a.offset }
func (a *Array) Value() interface{}      { return a.values }
func (a *Array) Values() []interface{}   { return a.values }
func (a *Array) Items() []PatternMatch   { return a.items }
func (a *Array) Len() int                { return len(a.items) }

func (a *Array) String() string {
	strs := make([]string, len(a.items))
	for i, it := range a.items {
		strs[i] = fmt.Sprint(it)
	}
	return fmt.Sprintf("%s[%s]@%d", a.matcherID, strings.Join(strs, ", "), a.offset)
}

// Undefined is the zero-consumption placeholder an Opt or Not produces
// when its inner pattern didn't match.
type Undefined struct {
	matcherID string
	offset    int
}

// NewUndefined builds an Undefined match at offset.
func NewUndefined(matcherID string, offset int) *Undefined {
	return &Undefined{matcherID: matcherID, offset: offset}
}

func (u *Undefined) MatcherID() string  { return u.matcherID }
func (u *Undefined) Matched() string    { return "" }
func (u *Undefined) Offset() int        { return u.offset }
func (u *Undefined) Value() interface{} { return nil }
func (u *Undefined) String() string {
	return fmt.Sprintf("%s:undefined@%d", u.matcherID, u.offset)
}

// rewrap reproduces src's payload under a new matcher id, offset and
// matched span. Break uses it to attach its own id/span to a
// terminator's captured value.
func rewrap(id string, offset int, matched string, src PatternMatch) PatternMatch {
	switch s := src.(type) {
	case *Terminal:
		return NewTerminal(id, matched, offset, s.value)
	case *Tree:
		return NewTree(id, matched, offset, s.slots)
	case *Array:
		return NewArray(id, matched, offset, s.values, s.items)
	case *Undefined:
		return NewUndefined(id, offset)
	default:
		return NewTerminal(id, matched, offset, matched)
	}
}
