// Package mgerr collects the sentinel errors raised during microgrammar
// construction and match-tree mutation. Runtime dismatches are never
// reported through this package: they are ordinary values returned from
// mgmatch, never errors. See the taxonomy in spec.md section 7.
package mgerr

import "fmt"

type mgError struct {
	value string
}

func (err *mgError) Error() string {
	return "microgrammar: " + err.value
}

// Newf builds an ad-hoc sentinel error, used for conditions that carry
// a dynamic identifier (a matcher id, a slot name) into the message.
func Newf(format string, v ...interface{}) error {
	return &mgError{fmt.Sprintf(format, v...)}
}

// Grammar construction errors: raised synchronously while building a
// matcher tree, never while matching. ErrNilStep and ErrSeparatorNoInner
// are panicked with, not returned: a nil step or a separator-less
// repetition is a programming mistake in the caller's own
// grammar-building code, not a recoverable condition, the same way the
// teacher's Let() panics on a nil bound pattern rather than threading
// an error return through every combinator constructor. The spec-string
// errors (ErrAmbiguousGap, ErrConsecutiveUndefined, ErrInvalidSlotName)
// are returned from mgspec's compiler instead.
var (
	ErrNilStep              = Newf("a step's matcher or function must not be nil")
	ErrSeparatorNoInner     = Newf("RepSep requires a non-nil inner matcher")
	ErrAmbiguousGap         = Newf("a gap must sit between two anchors: it cannot follow another gap or sit next to an undefined slot")
	ErrConsecutiveUndefined = Newf("consecutive undefined slots must be separated by a literal or defined matcher")
	ErrInvalidSlotName      = Newf("slot name is not a valid identifier")
)

// UnknownOption reports a spec-compile-time option key the compiler does
// not recognize.
func UnknownOption(key string) error {
	return Newf("unknown spec option %q", key)
}

// Runtime degenerate-grammar faults: not ordinary dismatches, these
// indicate the grammar itself cannot make progress and matching must
// stop rather than loop forever.
func DegenerateRepeat(matcherID string) error {
	return Newf("repetition %q matched zero characters; grammar is non-productive", matcherID)
}

// Update/overlay errors: raised synchronously at mutation time.
var (
	ErrComputedSlotReadOnly = Newf("computed slots are read-only")
	ErrOverlappingEdit      = Newf("edit overlaps a previously recorded change")
)

// InvalidatedOverlay reports access to a child overlay whose parent slot
// was since reassigned wholesale.
func InvalidatedOverlay(slot string) error {
	return Newf("overlay for slot %q was invalidated by a parent change", slot)
}
