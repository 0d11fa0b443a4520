package mgmatch

import (
	"fmt"
	"strings"

	"github.com/coregx/microgrammar/internal/mgerr"
	"github.com/coregx/microgrammar/mgstream"
)

// Bindings is the read-only view of previously-bound slot values a
// veto predicate or computed-slot function receives. Keys are slot
// names in declaration order up to (not including) the current step.
type Bindings map[string]interface{}

type stepKind int

const (
	stepMatch stepKind = iota
	stepVeto
	stepCompute
)

// Step is one entry in a Concat's step list. Build steps with Match,
// Veto or Compute rather than constructing Step directly.
type Step struct {
	name    string
	kind    stepKind
	matcher MatchingLogic
	veto    func(Bindings) bool
	compute func(Bindings) interface{}
}

// Match declares a named step bound to a sub-matcher. A name starting
// with "_" is special: bound but never exposed through Tree.Get. Panics
// with ErrNilStep if matcher is nil.
func Match(name string, matcher MatchingLogic) Step {
	if matcher == nil {
		panic(mgerr.ErrNilStep)
	}
	return Step{name: name, kind: stepMatch, matcher: matcher}
}

// Veto declares a predicate step: if fn returns strictly false given
// the bindings accumulated so far, the whole Concat fails at that step.
// Any other outcome just continues. Go's func(Bindings) bool has a
// fixed arity of one at compile time, unlike a dynamic-language
// closure, so there is no "zero-argument function" case to guard
// against here; fn itself still has to be non-nil, so that's the one
// check Veto makes. Panics with ErrNilStep otherwise.
func Veto(name string, fn func(Bindings) bool) Step {
	if fn == nil {
		panic(mgerr.ErrNilStep)
	}
	return Step{name: name, kind: stepVeto, veto: fn}
}

// Compute declares a derived, non-consuming slot: fn's return value is
// stored as a ComputedSlot, visible to later veto/compute steps. Panics
// with ErrNilStep if fn is nil.
func Compute(name string, fn func(Bindings) interface{}) Step {
	if fn == nil {
		panic(mgerr.ErrNilStep)
	}
	return Step{name: name, kind: stepCompute, compute: fn}
}

// ConcatOptions configures a Concat's whitespace and gap-skipping
// behavior (spec.md C5 and the `$skipGaps` option of C4.2).
type ConcatOptions struct {
	// ConsumeWhitespaceBetweenTokens skips whitespace before every
	// matcher step. DefaultConcatOptions sets it to true; set it to
	// false explicitly to disable it.
	ConsumeWhitespaceBetweenTokens bool

	// SkipGaps wraps every matcher step in a Break with Bind set, so
	// arbitrary intervening text is allowed before each one while the
	// step's bound value is still the step's own match.
	SkipGaps bool

	ID string
}

// DefaultConcatOptions returns the Concat defaults: whitespace
// consumption on, gap skipping off.
func DefaultConcatOptions() ConcatOptions {
	return ConcatOptions{ConsumeWhitespaceBetweenTokens: true}
}

// Concat is the structural core of the algebra: it runs each step in
// order, interleaving whitespace consumption, slot binding, vetoes and
// computed values, and reports a Tree whose matched text is exactly
// the concatenation of its steps' matched text plus the whitespace
// consumed between them.
type Concat struct {
	id    string
	steps []Step
	opts  ConcatOptions
}

// NewConcat builds a Concat from an ordered step list. Panics with
// ErrNilStep if any step was built by zero value rather than Match,
// Veto or Compute and so carries a nil matcher or function.
func NewConcat(opts ConcatOptions, steps ...Step) *Concat {
	for _, step := range steps {
		switch step.kind {
		case stepMatch:
			if step.matcher == nil {
				panic(mgerr.ErrNilStep)
			}
		case stepVeto:
			if step.veto == nil {
				panic(mgerr.ErrNilStep)
			}
		case stepCompute:
			if step.compute == nil {
				panic(mgerr.ErrNilStep)
			}
		}
	}
	id := opts.ID
	if id == "" {
		id = "concat"
	}
	return &Concat{id: id, steps: steps, opts: opts}
}

func (c *Concat) ID() string { return c.id }

func (c *Concat) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	initial := state.Offset()
	cur := state
	var matched strings.Builder
	bindings := Bindings{}
	var slots []Slot

	for _, step := range c.steps {
		switch step.kind {
		case stepMatch:
			matcher := step.matcher
			if c.opts.SkipGaps {
				matcher = NewBreak(matcher, BreakOptions{Bind: true})
			}
			if c.opts.ConsumeWhitespaceBetweenTokens {
				var gap string
				gap, cur = readyToMatch(cur)
				matched.WriteString(gap)
			}
			res, err := matcher.MatchPrefix(cur, pc)
			if err != nil {
				return MatchPrefixResult{}, err
			}
			if !res.Ok() {
				return Failure(c.id, initial, "failed at step '%s': %s", step.name, res.Fail().Reason), nil
			}
			m := res.Match()
			matched.WriteString(m.Matched())
			cur = cur.Consume(m.Matched(), step.name)
			slot := slotFor(step.name, m)
			slots = append(slots, slot)
			if !slot.IsSpecial() {
				bindings[step.name] = valueOf(slot)
			}

		case stepVeto:
			if !step.veto(bindings) {
				return Failure(c.id, initial, "match vetoed by %s", step.name), nil
			}

		case stepCompute:
			v := step.compute(bindings)
			bindings[step.name] = v
			slots = append(slots, Slot{Name: step.name, Kind: SlotComputed, Value: v})
		}
	}
	return Success(NewTree(c.id, matched.String(), initial, slots)), nil
}

// slotFor classifies a step's resulting PatternMatch as a scalar or
// nested slot.
func slotFor(name string, m PatternMatch) Slot {
	if tree, ok := m.(*Tree); ok {
		return Slot{Name: name, Kind: SlotNested, Tree: tree}
	}
	term, ok := m.(*Terminal)
	if !ok {
		// Array/Undefined results bound directly: treat as scalar with
		// their own Value().
		term = NewTerminal(m.MatcherID(), m.Matched(), m.Offset(), m.Value())
	}
	return Slot{Name: name, Kind: SlotScalar, Term: term}
}

func valueOf(s Slot) interface{} {
	switch s.Kind {
	case SlotNested:
		return s.Tree
	default:
		return s.Term.Value()
	}
}

// CanStartWith delegates to the first matcher step.
func (c *Concat) CanStartWith(ch byte) bool {
	for _, step := range c.steps {
		if step.kind != stepMatch {
			continue
		}
		if hinted, ok := step.matcher.(PrefixHinting); ok {
			return hinted.CanStartWith(ch)
		}
		return true
	}
	return true
}

// RequiredPrefix delegates to the first matcher step.
func (c *Concat) RequiredPrefix() (string, bool) {
	for _, step := range c.steps {
		if step.kind != stepMatch {
			continue
		}
		if hinted, ok := step.matcher.(PrefixHinting); ok {
			return hinted.RequiredPrefix()
		}
		return "", false
	}
	return "", false
}

func (c *Concat) String() string {
	strs := make([]string, 0, len(c.steps))
	for _, step := range c.steps {
		switch step.kind {
		case stepMatch:
			strs = append(strs, fmt.Sprintf("%s:%s", step.name, step.matcher))
		case stepVeto:
			strs = append(strs, fmt.Sprintf("_%s?", step.name))
		case stepCompute:
			strs = append(strs, fmt.Sprintf("%s:=fn", step.name))
		}
	}
	return fmt.Sprintf("concat(%s)", strings.Join(strs, " "))
}
