package checkparse

import "regexp"

// MICR delimiter glyphs rarely survive OCR intact, so every field runs a
// cascade from structurally confident patterns down to best-effort digit
// scraping, always preferring the most specific match available.

var routingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\|[:\s]*(\d{9})\|`),          // |:021000021| delimiter survived
	regexp.MustCompile(`(?m)(?:^|\D)(\d{9})(?:\D|$)`), // nine digits with non-digit boundaries
	regexp.MustCompile(`\b(\d{9})\b`),                // generic word boundary
}

var digitRunRE = regexp.MustCompile(`\d+`)

// ExtractRoutingNumber finds the 9-digit bank routing number. Patterns are
// tried in order; within a pattern, matches are scanned in document order
// and the first 9-digit capture wins. If no structural pattern matches, the
// fallback takes the first 9 digits of the first digit run of length >= 9
// (OCR tends to merge the whole MICR line into one run). No checksum
// validation is applied.
func ExtractRoutingNumber(text string) (string, bool) {
	for _, re := range routingPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m[1]) == 9 {
				return m[1], true
			}
		}
	}
	for _, run := range digitRunRE.FindAllString(text, -1) {
		if len(run) >= 9 {
			return run[:9], true
		}
	}
	return "", false
}

var (
	// routing number followed by optional non-digit filler and the account.
	// The filler is \D* rather than \D+ on purpose: OCR often drops the MICR
	// delimiters entirely and merges routing+account into one digit run, and
	// this pattern then splits that run as 9 digits of routing plus the rest.
	accountAfterRoutingRE = regexp.MustCompile(`(?m)(?:^|\D)(\d{9})\D*(\d{8,17})(?:\D|$)`)
	// looser routing / account / check layout with whitespace between fields
	accountMicrLayoutRE = regexp.MustCompile(`\d{9}\s+(\d{8,17})\s+\d{3,5}`)
	longDigitRunRE      = regexp.MustCompile(`\d{8,}`)
)

const maxAccountDigits = 17

// ExtractAccountNumber finds the 8-17 digit account number that typically
// follows the routing number. A single merged run of 17+ digits is split
// into routing and account, mirroring how ExtractRoutingNumber treats merged
// runs. The last resort assumes the second digit run
// of length >= 8 is the account (the first being the routing number); that
// heuristic can misfire on layouts with extra long digit runs such as phone
// numbers, which is a known limitation.
func ExtractAccountNumber(text string) (string, bool) {
	if m := accountAfterRoutingRE.FindStringSubmatch(text); len(m) >= 3 && m[2] != "" {
		return m[2], true
	}
	if m := accountMicrLayoutRE.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	runs := longDigitRunRE.FindAllString(text, -1)
	if len(runs) >= 2 {
		second := runs[1]
		if len(second) > maxAccountDigits {
			second = second[:maxAccountDigits]
		}
		return second, true
	}
	return "", false
}

var checkNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:Check\s*(?:#|No\.?|Number)\s*)(\d{3,5})`), // "Check #1234"
	regexp.MustCompile(`(?im)\d{8,17}\s+(\d{3,5})\s*\|`),                  // account, check number, trailing delimiter
	regexp.MustCompile(`(?im)\d{8,17}\s+(\d{3,5})(?:\s|$)`),               // account followed by check number
	regexp.MustCompile(`(?m)(?:^|\n)\s*(\d{3,5})\s*(?:\n|$)`),             // isolated number on its own line
}

// ExtractCheckNumber finds the 3-5 digit check number, preferring an
// explicit "Check #"-style label over MICR-positional matches.
func ExtractCheckNumber(text string) (string, bool) {
	for _, re := range checkNumberPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}
