// Package microgrammar finds and updates small, well-defined patterns
// embedded in arbitrary text — a "microgrammar" of literal anchors and
// named holes — without requiring a full grammar for the surrounding
// document. See SPEC_FULL.md for the complete design.
package microgrammar

import (
	"github.com/coregx/microgrammar/internal/mgerr"
	"github.com/coregx/microgrammar/mgdriver"
	"github.com/coregx/microgrammar/mgmatch"
	"github.com/coregx/microgrammar/mgspec"
	"github.com/coregx/microgrammar/mgstream"
	"github.com/coregx/microgrammar/mgupdate"
)

// Microgrammar is a compiled matcher ready to scan input.
type Microgrammar struct {
	logic mgmatch.MatchingLogic
}

// FromString compiles a spec-string template (section 4.6) into a
// Microgrammar. slots supplies matchers for named holes that need one;
// rawOptions accepts the dynamic-language-shaped options map, rejecting
// any key it doesn't recognize.
func FromString(spec string, slots map[string]mgmatch.MatchingLogic, rawOptions map[string]interface{}) (*Microgrammar, error) {
	concat, err := mgspec.Compile(spec, slots, rawOptions)
	if err != nil {
		return nil, err
	}
	return &Microgrammar{logic: concat}, nil
}

// Definition is one named entry in a FromDefinitions grammar, kept as
// an ordered slice rather than a map since the declaration order
// becomes the Concat's step order.
type Definition struct {
	Name  string
	Value interface{} // mgmatch.MatchingLogic, string (literal), or func(mgmatch.Bindings) bool (veto)
}

// FromDefinitions builds a Microgrammar directly from an ordered list
// of named steps, without going through the spec-string template
// syntax. A string value becomes a literal; a MatchingLogic is used
// verbatim; a func(Bindings) bool becomes a veto step gated on that
// name's previously bound slots.
func FromDefinitions(defs []Definition) (*Microgrammar, error) {
	steps := make([]mgmatch.Step, 0, len(defs))
	for _, def := range defs {
		switch v := def.Value.(type) {
		case mgmatch.MatchingLogic:
			steps = append(steps, mgmatch.Match(def.Name, v))
		case string:
			steps = append(steps, mgmatch.Match(def.Name, mgmatch.NewLiteral(v)))
		case func(mgmatch.Bindings) bool:
			steps = append(steps, mgmatch.Veto(def.Name, v))
		default:
			return nil, mgerr.Newf("definition %q has unsupported value type %T", def.Name, def.Value)
		}
	}
	return &Microgrammar{logic: mgmatch.NewConcat(mgmatch.DefaultConcatOptions(), steps...)}, nil
}

// FindMatches scans input end to end, returning every match. A nil pc
// gets a fresh one; a nil stopAfter collects every match found.
func (mg *Microgrammar) FindMatches(input string, pc *mgmatch.ParseContext, listeners mgstream.Listeners, stopAfter func(mgmatch.PatternMatch) bool) ([]mgmatch.PatternMatch, error) {
	return mgdriver.New(mg.logic).FindMatches(input, pc, listeners, stopAfter)
}

// FirstMatch returns the first match in input, or nil if there is none.
func (mg *Microgrammar) FirstMatch(input string, listeners mgstream.Listeners) (mgmatch.PatternMatch, error) {
	return mgdriver.New(mg.logic).FirstMatch(input, listeners)
}

// ExactMatch succeeds only if the grammar matches the entirety of
// input; otherwise it reports how far the match reached.
func (mg *Microgrammar) ExactMatch(input string, pc *mgmatch.ParseContext) (mgmatch.PatternMatch, *mgmatch.MatchFailure, error) {
	return mgdriver.ExactMatch(mg.logic, input, pc)
}

// UpdatableMatch builds a writable overlay over a single match taken
// from content.
func UpdatableMatch(match mgmatch.PatternMatch, content string) (*mgupdate.Overlay, error) {
	tree, ok := match.(*mgmatch.Tree)
	if !ok {
		return nil, mgerr.Newf("updatable match must be a Tree, got %T", match)
	}
	return mgupdate.NewOverlay(tree, content), nil
}

// Updatable builds a bulk overlay over several matches taken from the
// same content, sharing one change set so edits to one don't clobber
// edits made to another.
func Updatable(matches []mgmatch.PatternMatch, content string) (*mgupdate.Bulk, error) {
	trees := make([]*mgmatch.Tree, len(matches))
	for i, m := range matches {
		tree, ok := m.(*mgmatch.Tree)
		if !ok {
			return nil, mgerr.Newf("updatable match %d must be a Tree, got %T", i, m)
		}
		trees[i] = tree
	}
	return mgupdate.NewBulk(trees, content), nil
}
