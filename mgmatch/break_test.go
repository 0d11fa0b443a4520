package mgmatch

import "testing"

func TestBreakBindConsumesTerminatorValue(t *testing.T) {
	b := NewBreak(NewInteger(), BreakOptions{Bind: true})
	res := matchAll(t, b, "foo (and some junk) 63")
	if !res.Ok() {
		t.Fatalf("expected a match, got %v", res.Fail())
	}
	m := res.Match()
	if m.Matched() != "foo (and some junk) 63" {
		t.Fatalf("Matched() = %q", m.Matched())
	}
	if m.Value() != int64(63) {
		t.Fatalf("Value() = %#v, want bound terminator value 63", m.Value())
	}
}

func TestBreakUnboundSkippedValue(t *testing.T) {
	b := NewBreak(NewLiteral("!"), BreakOptions{})
	res := matchAll(t, b, "hello!")
	if !res.Ok() {
		t.Fatalf("expected a match, got %v", res.Fail())
	}
	m := res.Match()
	if m.Matched() != "hello!" {
		t.Fatalf("Matched() = %q, want %q", m.Matched(), "hello!")
	}
	if m.Value() != "hello" {
		t.Fatalf("Value() = %#v, want the skipped prefix %q", m.Value(), "hello")
	}
}

func TestBreakPeekLeavesTerminatorForNextStep(t *testing.T) {
	b := NewBreak(NewLiteral("<-"), BreakOptions{Peek: true})
	res := matchAll(t, b, "banana<-rest")
	if !res.Ok() {
		t.Fatalf("expected a match, got %v", res.Fail())
	}
	m := res.Match()
	if m.Matched() != "banana" {
		t.Fatalf("Matched() = %q, want %q (terminator left unconsumed)", m.Matched(), "banana")
	}
}

func TestBreakTerminatorNotFound(t *testing.T) {
	b := NewBreak(NewLiteral("!"), BreakOptions{})
	if res := matchAll(t, b, "no terminator here"); res.Ok() {
		t.Fatal("expected failure when the terminator never appears")
	}
}

func TestBreakExcludedPatternVetoes(t *testing.T) {
	b := NewBreak(NewLiteral("end"), BreakOptions{Excluded: NewLiteral("stop")})
	if res := matchAll(t, b, "go go stop go end"); res.Ok() {
		t.Fatal("expected failure: excluded pattern appears before the terminator")
	}
	if res := matchAll(t, b, "go go go end"); !res.Ok() {
		t.Fatal("expected success when the excluded pattern never appears")
	}
}

func TestBreakScanLimit(t *testing.T) {
	b := NewBreak(NewLiteral("!"), BreakOptions{Limits: Limits{MaxBreakScan: 3}})
	if res := matchAll(t, b, "abcdef!"); res.Ok() {
		t.Fatal("expected the scan limit to stop the search before reaching the terminator")
	}
}
