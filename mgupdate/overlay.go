package mgupdate

import (
	"fmt"

	"github.com/coregx/microgrammar/internal/mgerr"
	"github.com/coregx/microgrammar/mgmatch"
)

// Overlay is the writable view over one Tree match: a setter per
// scalar/nested slot, backed by a shared ChangeSet. Assigning to a
// nested slot directly invalidates any Overlay already built for its
// children, since the parent write has replaced the span they point
// into.
type Overlay struct {
	tree     *mgmatch.Tree
	source   string
	changes  *ChangeSet
	invalid  bool
	children map[string]*Overlay
}

// NewOverlay builds the root overlay for a single match (the
// Microgrammar.updatableMatch entry point). Use NewBulk for several
// matches over the same source sharing one ChangeSet.
func NewOverlay(match *mgmatch.Tree, source string) *Overlay {
	return newOverlay(match, source, NewChangeSet(source))
}

func newOverlay(tree *mgmatch.Tree, source string, changes *ChangeSet) *Overlay {
	return &Overlay{tree: tree, source: source, changes: changes, children: map[string]*Overlay{}}
}

func (o *Overlay) checkValid() error {
	if o.invalid {
		return mgerr.InvalidatedOverlay(o.tree.MatcherID())
	}
	return nil
}

// Set assigns value to the named slot, recording the edit in the
// shared ChangeSet. Computed slots are read-only. Assigning to a
// nested slot replaces its entire span and invalidates any child
// overlay already obtained through Child.
func (o *Overlay) Set(name string, value interface{}) error {
	if err := o.checkValid(); err != nil {
		return err
	}
	for _, s := range o.tree.Slots() {
		if s.Name != name {
			continue
		}
		switch s.Kind {
		case mgmatch.SlotComputed:
			return mgerr.ErrComputedSlotReadOnly
		case mgmatch.SlotScalar:
			if err := o.changes.Add(s.Term.Offset(), len(s.Term.Matched()), toText(value)); err != nil {
				return err
			}
			delete(o.children, name)
			return nil
		case mgmatch.SlotNested:
			if err := o.changes.Add(s.Tree.Offset(), len(s.Tree.Matched()), toText(value)); err != nil {
				return err
			}
			child, ok := o.children[name]
			if !ok {
				child = newOverlay(s.Tree, o.source, o.changes)
				o.children[name] = child
			}
			child.invalid = true
			return nil
		}
	}
	return mgerr.Newf("overlay: no such slot %q", name)
}

// Child returns the overlay for a nested slot, building it on first
// access. It errors if name isn't a nested slot, or if a prior write
// through Set already replaced its span.
func (o *Overlay) Child(name string) (*Overlay, error) {
	if err := o.checkValid(); err != nil {
		return nil, err
	}
	if child, ok := o.children[name]; ok {
		if child.invalid {
			return nil, mgerr.InvalidatedOverlay(name)
		}
		return child, nil
	}
	v, ok := o.tree.Get(name)
	if !ok {
		return nil, mgerr.Newf("overlay: no such slot %q", name)
	}
	nested, ok := v.(*mgmatch.Tree)
	if !ok {
		return nil, mgerr.Newf("overlay: slot %q is not nested", name)
	}
	child := newOverlay(nested, o.source, o.changes)
	o.children[name] = child
	return child, nil
}

// ReplaceAll replaces this overlay's entire matched span with newText,
// invalidating any child overlays built from it.
func (o *Overlay) ReplaceAll(newText string) error {
	if err := o.checkValid(); err != nil {
		return err
	}
	if err := o.changes.Add(o.tree.Offset(), len(o.tree.Matched()), newText); err != nil {
		return err
	}
	for name, child := range o.children {
		child.invalid = true
		delete(o.children, name)
	}
	return nil
}

// NewContent returns the source with every edit made through this
// overlay, or any overlay sharing its ChangeSet, applied.
func (o *Overlay) NewContent() (string, error) {
	return o.changes.Updated()
}

// Bulk is the shared-ChangeSet overlay over several matches found in
// the same source, e.g. via findMatches, so edits to one don't lose
// edits made to the others.
type Bulk struct {
	changes  *ChangeSet
	Overlays []*Overlay
}

// NewBulk builds one Overlay per match, all writing into a single
// ChangeSet over source.
func NewBulk(matches []*mgmatch.Tree, source string) *Bulk {
	cs := NewChangeSet(source)
	overlays := make([]*Overlay, len(matches))
	for i, m := range matches {
		overlays[i] = newOverlay(m, source, cs)
	}
	return &Bulk{changes: cs, Overlays: overlays}
}

// NewContent returns source with every edit made across every overlay
// in this bulk applied.
func (b *Bulk) NewContent() (string, error) {
	return b.changes.Updated()
}

func toText(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
