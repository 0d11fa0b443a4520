package mgmatch

import (
	"fmt"
	"strings"

	"github.com/coregx/microgrammar/mgstream"
)

// BreakOptions configures a Break matcher.
type BreakOptions struct {
	// Bind, when true, makes the bound value the terminator's own
	// match rather than the skipped prefix (the "yada-yada" idiom).
	Bind bool

	// Excluded, when set, fails the Break if it would match at any
	// intermediate position before the terminator is found: "A
	// eventually, but not if B appears first".
	Excluded MatchingLogic

	// Peek, when true, stops at the terminator without consuming it:
	// the match span and the skipped-prefix value cover only the
	// skipped text, and the cursor is left positioned exactly where
	// the terminator starts. This is how the spec-string compiler
	// threads an undefined slot into the anchor that follows it
	// without swallowing that anchor's own text, so the anchor can
	// still be matched (and, if it's itself a named slot, bound) by
	// the very next Concat step. Mutually exclusive with Bind in
	// practice: Peek never consumes the terminator, so there's
	// nothing of its for Bind to surface.
	Peek bool

	Limits Limits
}

// Break consumes characters until terminator matches at the cursor. By
// default the bound value is the skipped prefix and the match itself
// (the span reported to an enclosing Concat) also includes the
// terminator's own text, since Break consumes it as part of making
// progress.
type Break struct {
	id         string
	terminator MatchingLogic
	opts       BreakOptions
}

// NewBreak builds a Break matcher that scans for terminator.
func NewBreak(terminator MatchingLogic, opts BreakOptions) *Break {
	if opts.Limits == (Limits{}) {
		opts.Limits = DefaultLimits()
	}
	return &Break{id: "break(" + terminator.ID() + ")", terminator: terminator, opts: opts}
}

func (b *Break) ID() string { return b.id }

func (b *Break) MatchPrefix(state mgstream.InputState, pc *ParseContext) (MatchPrefixResult, error) {
	initial := state.Offset()
	cur := state
	var skipped strings.Builder
	scanned := 0

	for {
		if b.opts.Excluded != nil {
			res, err := b.opts.Excluded.MatchPrefix(cur, pc)
			if err != nil {
				return MatchPrefixResult{}, err
			}
			if res.Ok() {
				return Failure(b.id, initial, "excluded pattern %s matched before terminator", b.opts.Excluded.ID()), nil
			}
		}

		res, err := b.terminator.MatchPrefix(cur, pc)
		if err != nil {
			return MatchPrefixResult{}, err
		}
		if res.Ok() {
			if b.opts.Peek {
				return Success(NewTerminal(b.id, skipped.String(), initial, skipped.String())), nil
			}
			term := res.Match()
			full := skipped.String() + term.Matched()
			if b.opts.Bind {
				return Success(rewrap(b.id, initial, full, term)), nil
			}
			return Success(NewTerminal(b.id, full, initial, skipped.String())), nil
		}

		if cur.Exhausted() {
			return Failure(b.id, initial, "terminator %s not found before end of input", b.terminator.ID()), nil
		}

		ch := cur.Peek(1)
		skipped.WriteString(ch)
		cur = cur.Consume(ch, "break-skip")
		scanned++
		if b.opts.Limits.MaxBreakScan > 0 && scanned > b.opts.Limits.MaxBreakScan {
			return Failure(b.id, initial, "break scan limit exceeded looking for %s", b.terminator.ID()), nil
		}
	}
}

func (b *Break) String() string {
	if b.opts.Bind {
		return fmt.Sprintf("...->%s", b.terminator)
	}
	return fmt.Sprintf("...%s", b.terminator)
}
