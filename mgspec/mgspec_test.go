package mgspec

import (
	"testing"

	"github.com/coregx/microgrammar/mgdriver"
	"github.com/coregx/microgrammar/mgmatch"
	"github.com/coregx/microgrammar/mgstream"
)

func matchAll(t *testing.T, c *mgmatch.Concat, input string) mgmatch.MatchPrefixResult {
	t.Helper()
	m := mgstream.NewInputStateManager(mgstream.NewStringInputStream(input))
	res, err := c.MatchPrefix(m.Root(), mgmatch.NewParseContext())
	if err != nil {
		t.Fatalf("unexpected fatal error: %s", err)
	}
	return res
}

// S1: an explicit gap between two anchors skips whatever sits between
// them without binding it to anything a caller can see.
func TestGapBetweenAnchors(t *testing.T) {
	c, err := FromString("->⤞<-", nil, DefaultOptions())
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	res := matchAll(t, c, "->banana<-")
	if !res.Ok() {
		t.Fatalf("expected a match, got %v", res.Fail())
	}
	if res.Match().Matched() != "->banana<-" {
		t.Fatalf("Matched() = %q", res.Match().Matched())
	}
}

// S2: an undefined slot (no matcher supplied) is non-greedy, giving way
// to the literal anchor that follows it as soon as that anchor can
// match, and trailing whitespace after the anchor doesn't stop the
// whole grammar from counting as an exact match of the input.
func TestUndefinedSlotNonGreedy(t *testing.T) {
	c, err := FromString("->${fruit}<-", nil, DefaultOptions())
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	match, fail, err := mgdriver.ExactMatch(c, "->banana<- ", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if fail != nil {
		t.Fatalf("expected a match, got failure: %s", fail)
	}
	tree := match.(*mgmatch.Tree)
	fruit, ok := tree.Get("fruit")
	if !ok || fruit != "banana" {
		t.Fatalf("fruit = %v, ok=%v, want \"banana\"", fruit, ok)
	}
}

// S3: two undefined slots separated by a literal anchor each capture
// their own span independently.
func TestTwoUndefinedSlotsSeparatedByLiteral(t *testing.T) {
	c, err := FromString("->${fruit}<-${drink}!", nil, DefaultOptions())
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	res := matchAll(t, c, "->banana<-coffee!")
	if !res.Ok() {
		t.Fatalf("expected a match, got %v", res.Fail())
	}
	tree := res.Match().(*mgmatch.Tree)
	fruit, _ := tree.Get("fruit")
	drink, _ := tree.Get("drink")
	if fruit != "banana" {
		t.Fatalf("fruit = %v, want banana", fruit)
	}
	if drink != "coffee" {
		t.Fatalf("drink = %v, want coffee", drink)
	}
}

// S4: a supplied slot matcher (an Alt of literals standing in for an
// HCL-like block keyword) combines with plain literal anchors.
func TestSuppliedSlotWithAlternation(t *testing.T) {
	kw := mgmatch.NewAlt(mgmatch.NewLiteral("resource"), mgmatch.NewLiteral("variable"))
	c, err := FromString("${kw} \"${name}\" {", map[string]mgmatch.MatchingLogic{
		"kw":   kw,
		"name": mgmatch.NewRegex(`[a-z_]+`),
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	res := matchAll(t, c, `resource "aws_instance" {`)
	if !res.Ok() {
		t.Fatalf("expected a match, got %v", res.Fail())
	}
	tree := res.Match().(*mgmatch.Tree)
	kwVal, _ := tree.Get("kw")
	nameVal, _ := tree.Get("name")
	if kwVal != "resource" {
		t.Fatalf("kw = %v, want resource", kwVal)
	}
	if nameVal != "aws_instance" {
		t.Fatalf("name = %v, want aws_instance", nameVal)
	}
}

func TestExactWhitespaceTemplateRejectsExtraSpace(t *testing.T) {
	opts := DefaultOptions()
	opts.ConsumeWhitespaceBetweenTokens = false
	c, err := FromString("a = b", map[string]mgmatch.MatchingLogic{}, opts)
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	if res := matchAll(t, c, "a = b"); !res.Ok() {
		t.Fatal("expected the template's own exact spacing to match")
	}
	if res := matchAll(t, c, "a  =  b"); res.Ok() {
		t.Fatal("expected extra whitespace to be rejected when spacing is exact")
	}
}

func TestParseOptionsRejectsUnknownKey(t *testing.T) {
	_, err := ParseOptions(map[string]interface{}{"bogus": true})
	if err == nil {
		t.Fatal("expected an error for an unrecognized option key")
	}
}

func TestParseOptionsTypeMismatch(t *testing.T) {
	_, err := ParseOptions(map[string]interface{}{"consumeWhiteSpaceBetweenTokens": "yes"})
	if err == nil {
		t.Fatal("expected an error for a wrong-typed option value")
	}
}

func TestInvalidSlotNameRejected(t *testing.T) {
	_, err := FromString("${1bad}", nil, DefaultOptions())
	if err == nil {
		t.Fatal("expected an error for a slot name that isn't a valid identifier")
	}
}

func TestAmbiguousConsecutiveGaps(t *testing.T) {
	_, err := FromString("a⤞⤞b", nil, DefaultOptions())
	if err == nil {
		t.Fatal("expected an error for two consecutive gaps")
	}
}
