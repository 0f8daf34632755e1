package checkparse

import "regexp"

var whitespaceRE = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every run of whitespace (spaces, tabs,
// newlines) with a single space. OCR line-wrapping breaks multi-word payee
// names across lines, so the payee extractor normalizes before matching;
// the other extractors work on the raw text because their patterns are
// narrow enough to tolerate line breaks.
func CollapseWhitespace(s string) string {
	return whitespaceRE.ReplaceAllString(s, " ")
}
