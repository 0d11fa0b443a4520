package mgdriver

import (
	"testing"

	"github.com/coregx/microgrammar/mgmatch"
)

func TestExactMatchFullConsumption(t *testing.T) {
	match, fail, err := ExactMatch(mgmatch.NewInteger(), "42", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if fail != nil {
		t.Fatalf("unexpected failure: %s", fail)
	}
	if match.Value() != int64(42) {
		t.Fatalf("Value() = %v, want 42", match.Value())
	}
}

func TestExactMatchShortMatchReportsRemainder(t *testing.T) {
	match, fail, err := ExactMatch(mgmatch.NewInteger(), "42 trailing junk", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if match != nil {
		t.Fatal("expected no match value when input isn't fully consumed")
	}
	if fail == nil {
		t.Fatal("expected a failure describing the unconsumed remainder")
	}
	// "42" matches, then ExactMatch skips the one trailing space before
	// deciding whether input was fully consumed, so the remainder starts
	// at offset 3 ("trailing junk"), not offset 2.
	if fail.Offset != 3 {
		t.Fatalf("Offset = %d, want 3", fail.Offset)
	}
}

func TestExactMatchToleratesTrailingWhitespace(t *testing.T) {
	fruit := mgmatch.NewBreak(mgmatch.NewLiteral("<-"), mgmatch.BreakOptions{Peek: true})
	grammar := mgmatch.NewConcat(mgmatch.DefaultConcatOptions(),
		mgmatch.Match("_open", mgmatch.NewLiteral("->")),
		mgmatch.Match("fruit", fruit),
		mgmatch.Match("_close", mgmatch.NewLiteral("<-")),
	)

	match, fail, err := ExactMatch(grammar, "->banana<- ", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if fail != nil {
		t.Fatalf("unexpected failure: %s", fail)
	}
	tree := match.(*mgmatch.Tree)
	if v, ok := tree.Get("fruit"); !ok || v != "banana" {
		t.Fatalf("fruit = %v, ok=%v, want \"banana\"", v, ok)
	}
}

func TestExactMatchUnderlyingFailure(t *testing.T) {
	match, fail, err := ExactMatch(mgmatch.NewLiteral("yes"), "no", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if match != nil {
		t.Fatal("expected no match")
	}
	if fail == nil {
		t.Fatal("expected a failure")
	}
}
