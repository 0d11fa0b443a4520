// Package mgupdate implements the update overlay described in spec.md
// section 4.9: a ChangeSet of byte-ranged text edits over a match's
// original source, and the per-slot Overlay view that records writes
// into it.
package mgupdate

import (
	"sort"
	"strings"

	"github.com/coregx/microgrammar/internal/mgerr"
)

type edit struct {
	offset int
	length int
	text   string
}

// ChangeSet accumulates non-overlapping byte-range edits over a fixed
// source string. Edits are applied left-to-right by Updated regardless
// of the order they were added in.
type ChangeSet struct {
	source string
	edits  []edit
}

// NewChangeSet builds an empty ChangeSet over source.
func NewChangeSet(source string) *ChangeSet {
	return &ChangeSet{source: source}
}

// Add records that the byte range [offset, offset+length) should be
// replaced with text. It returns ErrOverlappingEdit if the new range
// intersects one already recorded.
func (cs *ChangeSet) Add(offset, length int, text string) error {
	end := offset + length
	for _, e := range cs.edits {
		eEnd := e.offset + e.length
		if offset < eEnd && e.offset < end {
			return mgerr.ErrOverlappingEdit
		}
	}
	cs.edits = append(cs.edits, edit{offset: offset, length: length, text: text})
	return nil
}

// Updated returns the source with every recorded edit applied, in
// offset order.
func (cs *ChangeSet) Updated() (string, error) {
	edits := make([]edit, len(cs.edits))
	copy(edits, cs.edits)
	sort.Slice(edits, func(i, j int) bool { return edits[i].offset < edits[j].offset })

	var out strings.Builder
	cursor := 0
	for _, e := range edits {
		if e.offset < cursor {
			return "", mgerr.ErrOverlappingEdit
		}
		out.WriteString(cs.source[cursor:e.offset])
		out.WriteString(e.text)
		cursor = e.offset + e.length
	}
	out.WriteString(cs.source[cursor:])
	return out.String(), nil
}
