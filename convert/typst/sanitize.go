package typst

import "regexp"

// A generated call followed directly by a literal open parenthesis from the
// source text reads as another argument list in Typst. sanitize inserts a
// space between the two. The pattern set below is a syntactic heuristic over
// fragment text, not a grammar. Every call shape the handlers emit is listed
// here, new call-emitting handlers need their shape added.
// Bracket bodies allow one level of generated brackets inside, calls nest one
// deep in practice: #strike([a#underline([b])]).
const bracketBody = `(?:[^\[\]]|\[[^\[\]]*\])*`

var separatorPatterns = []*regexp.Regexp{
	// single bracketed argument: #strike([gone])(text)
	regexp.MustCompile(`(#[a-z]+\(\[` + bracketBody + `\]\))\(`),
	// argument list plus bracket body, one level of nested parens in the
	// list for color expressions: #text(fill: rgb("#ff0000"))[red](text)
	regexp.MustCompile(`(#[a-z]+\((?:[^()]|\([^()]*\))*\)\[` + bracketBody + `\])\(`),
	// bare bracket body: #underline[u](text)
	regexp.MustCompile(`(#[a-z]+\[` + bracketBody + `\])\(`),
}

func sanitize(s string) string {
	for _, re := range separatorPatterns {
		s = re.ReplaceAllString(s, "$1 (")
	}
	return s
}
