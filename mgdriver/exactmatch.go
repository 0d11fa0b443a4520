package mgdriver

import (
	"fmt"

	"github.com/coregx/microgrammar/mgmatch"
	"github.com/coregx/microgrammar/mgstream"
)

// ExactMatch runs logic's matchPrefix once at offset zero and succeeds
// if the match consumes the whole of input, or everything but trailing
// whitespace (spec.md C8 and the trailing-whitespace tolerance its §8
// worked example requires: a grammar's last anchor need not itself
// consume the input's own trailing padding for the match to count as
// exact). On a short match it reports a MatchFailure describing how far
// the match reached and what text remained, rather than the underlying
// MatchFailure (if any) matchPrefix itself returned.
func ExactMatch(logic mgmatch.MatchingLogic, input string, pc *mgmatch.ParseContext) (mgmatch.PatternMatch, *mgmatch.MatchFailure, error) {
	if pc == nil {
		pc = mgmatch.NewParseContext()
	}
	manager := mgstream.NewInputStateManager(mgstream.NewStringInputStream(input))
	cursor := manager.Root()

	res, err := logic.MatchPrefix(cursor, pc)
	if err != nil {
		return nil, nil, err
	}
	if !res.Ok() {
		return nil, res.Fail(), nil
	}

	match := res.Match()
	rest := cursor.Consume(match.Matched(), match.MatcherID())
	_, rest = mgmatch.SkipWhitespace(rest)
	if !rest.Exhausted() {
		stopped := rest.Offset()
		remainder := input[stopped:]
		pos := mgstream.NewPositionCalculator(input).At(stopped)
		return nil, &mgmatch.MatchFailure{
			MatcherID: logic.ID(),
			Offset:    stopped,
			Reason:    fmt.Sprintf("matched %d of %d bytes, stopping at %s; %q remained", stopped, len(input), pos, remainder),
		}, nil
	}
	return match, nil, nil
}
