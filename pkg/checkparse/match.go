package checkparse

import "regexp"

// matchResult is the outcome of one pattern attempt: either a captured value
// or nothing. Using an explicit result type keeps the "first success wins"
// loops free of sentinel strings.
type matchResult struct {
	value string
	ok    bool
}

// matcher is one attempt in an ordered cascade over the input text.
type matcher func(text string) matchResult

// firstMatch tries matchers in order and returns the first success.
func firstMatch(text string, matchers []matcher) matchResult {
	for _, m := range matchers {
		if r := m(text); r.ok {
			return r
		}
	}
	return matchResult{}
}

// submatch wraps a regexp into a matcher that yields its first capture group.
func submatch(re *regexp.Regexp) matcher {
	return func(text string) matchResult {
		if m := re.FindStringSubmatch(text); len(m) >= 2 {
			return matchResult{value: m[1], ok: true}
		}
		return matchResult{}
	}
}
