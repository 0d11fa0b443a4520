package mgmatch

import (
	"testing"

	"github.com/coregx/microgrammar/internal/mgerr"
	"github.com/coregx/microgrammar/mgstream"
)

func matchAll(t *testing.T, logic MatchingLogic, input string) MatchPrefixResult {
	t.Helper()
	m := mgstream.NewInputStateManager(mgstream.NewStringInputStream(input))
	res, err := logic.MatchPrefix(m.Root(), NewParseContext())
	if err != nil {
		t.Fatalf("unexpected fatal error: %s", err)
	}
	return res
}

func TestConcatBasic(t *testing.T) {
	c := NewConcat(DefaultConcatOptions(),
		Match("key", NewRegex(`[a-z_]+`)),
		Match("_eq", NewLiteral("=")),
		Match("value", NewInteger()),
	)

	res := matchAll(t, c, "count = 2")
	if !res.Ok() {
		t.Fatalf("expected match, got failure: %v", res.Fail())
	}
	tree := res.Match().(*Tree)
	if tree.Matched() != "count = 2" {
		t.Fatalf("Matched() = %q, want %q", tree.Matched(), "count = 2")
	}
	key, _ := tree.Get("key")
	value, _ := tree.Get("value")
	if key != "count" || value != int64(2) {
		t.Fatalf("key=%v value=%v, want count/2", key, value)
	}
	if _, ok := tree.Get("_eq"); ok {
		t.Fatal("a step named with a leading underscore must not be exposed through Get")
	}
}

func TestConcatVetoBlocksMatch(t *testing.T) {
	c := NewConcat(DefaultConcatOptions(),
		Match("n", NewInteger()),
		Veto("positive", func(b Bindings) bool {
			return b["n"].(int64) > 0
		}),
	)

	if res := matchAll(t, c, "5"); !res.Ok() {
		t.Fatal("expected 5 to pass the positive veto")
	}
	if res := matchAll(t, c, "-5"); res.Ok() {
		t.Fatal("expected -5 to be vetoed")
	}
}

func TestConcatComputedSlot(t *testing.T) {
	c := NewConcat(DefaultConcatOptions(),
		Match("a", NewInteger()),
		Match("b", NewInteger()),
		Compute("sum", func(b Bindings) interface{} {
			return b["a"].(int64) + b["b"].(int64)
		}),
	)
	res := matchAll(t, c, "2 3")
	if !res.Ok() {
		t.Fatalf("expected match, got %v", res.Fail())
	}
	sum, _ := res.Match().(*Tree).Get("sum")
	if sum.(int64) != 5 {
		t.Fatalf("sum = %v, want 5", sum)
	}
}

func TestConcatWhitespaceElastic(t *testing.T) {
	c := NewConcat(DefaultConcatOptions(),
		Match("a", NewLiteral("foo")),
		Match("b", NewLiteral("bar")),
	)
	for _, in := range []string{"foobar", "foo bar", "foo   bar"} {
		res := matchAll(t, c, in)
		if !res.Ok() {
			t.Fatalf("input %q: expected match", in)
		}
		if res.Match().Matched() != in {
			t.Fatalf("input %q: matched %q", in, res.Match().Matched())
		}
	}
}

func TestTrimmedValueStripsSkippedWhitespace(t *testing.T) {
	c := NewConcat(DefaultConcatOptions(),
		Match("gap", NewBreak(NewLiteral("!"), BreakOptions{})),
	)
	res := matchAll(t, c, "  padded  !")
	if !res.Ok() {
		t.Fatalf("expected match, got %v", res.Fail())
	}
	tree := res.Match().(*Tree)
	var slot Slot
	for _, s := range tree.Slots() {
		if s.Name == "gap" {
			slot = s
		}
	}
	if got := TrimmedValue(slot); got != "padded" {
		t.Fatalf("TrimmedValue() = %q, want %q", got, "padded")
	}
}

func TestConcatWhitespaceExact(t *testing.T) {
	opts := DefaultConcatOptions()
	opts.ConsumeWhitespaceBetweenTokens = false
	c := NewConcat(opts,
		Match("a", NewLiteral("foo")),
		Match("b", NewLiteral("bar")),
	)
	if res := matchAll(t, c, "foobar"); !res.Ok() {
		t.Fatal("expected exact adjacency to match")
	}
	if res := matchAll(t, c, "foo bar"); res.Ok() {
		t.Fatal("expected whitespace skip to be disabled")
	}
}

func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic, got none")
		}
		err, ok := r.(error)
		if !ok || err.Error() != want.Error() {
			t.Fatalf("panic value = %v, want %v", r, want)
		}
	}()
	fn()
}

func TestMatchPanicsOnNilMatcher(t *testing.T) {
	expectPanic(t, mgerr.ErrNilStep, func() {
		Match("x", nil)
	})
}

func TestVetoPanicsOnNilFunc(t *testing.T) {
	expectPanic(t, mgerr.ErrNilStep, func() {
		Veto("x", nil)
	})
}

func TestComputePanicsOnNilFunc(t *testing.T) {
	expectPanic(t, mgerr.ErrNilStep, func() {
		Compute("x", nil)
	})
}

func TestNewConcatPanicsOnRawNilStep(t *testing.T) {
	expectPanic(t, mgerr.ErrNilStep, func() {
		NewConcat(DefaultConcatOptions(), Step{name: "x", kind: stepMatch})
	})
}
