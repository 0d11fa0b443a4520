package mgmatch

import "unicode"

// foldCaseWorkAround corrects a couple of runes whose default simple
// case fold, strictly applied, would drift away from the ASCII rune a
// caller almost always means: the long s and Kelvin sign fold to
// themselves here rather than to their Unicode-canonical partners.
var foldCaseWorkAround = map[rune]rune{
	'ſ': 'ſ', // long s; not folded to ASCII 's'
	'K': 'K', // Kelvin sign; not folded to ASCII 'k'
}

// runeFoldCase returns r's case-folded form, walking unicode.SimpleFold
// around its orbit until it reaches r's canonical representative.
func runeFoldCase(r rune) rune {
	if w, ok := foldCaseWorkAround[r]; ok {
		return w
	}
	r0 := unicode.SimpleFold(r)
	if r0 == r {
		return r
	}
	for r0 > r {
		r0 = unicode.SimpleFold(r0)
	}
	return r0
}
