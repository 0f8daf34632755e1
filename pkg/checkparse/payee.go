package checkparse

import (
	"regexp"
	"strings"
)

// Each pattern anchors on a variant of "pay to the order of" and captures
// letters/spaces/periods non-greedily up to whatever usually follows the
// name on a check: a dollar sign, the start of a numeric amount, the Date
// label, or the first word of a spelled-out amount. OCR frequently merges
// "order of" into "orderof", hence the variants.
var payeePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Pay\s+to\s+the\s+order\s*of\s*[:\-]?\s*([A-Za-z\s\.]+?)(?:\s*\$|\s+\d+[,\.]|\s*Date|\s*One|\s*Two|\s*Three|\s*Four|\s*Five)`),
	regexp.MustCompile(`(?i)Pay\s+to\s+the\s+orderof\s*[:\-]?\s*([A-Za-z\s\.]+?)(?:\s*\$|\s+\d+[,\.]|\s*Date|\s*One|\s*Two|\s*Three|\s*Four|\s*Five)`),
	regexp.MustCompile(`(?i)orderof\s+([A-Za-z\s\.]+?)(?:\s*\$|\s+\d+[,\.]|\s*Date|\s*One|\s*Two|\s*Three|\s*Four|\s*Five)`),
	regexp.MustCompile(`(?i)order\s*of\s*[:\-]?\s*([A-Za-z\s\.]+?)(?:\s*\$|\s+\d+[,\.])`),
}

var digitsOnlyRE = regexp.MustCompile(`^\d+$`)

// ExtractPayee finds the name following "pay to the order of". Candidates
// shorter than 3 characters or made entirely of digits are rejected; stray
// MICR digits otherwise get misread as a name. Returns "" when no candidate
// qualifies.
func ExtractPayee(text string) string {
	normalized := CollapseWhitespace(text)
	for _, re := range payeePatterns {
		for _, m := range re.FindAllStringSubmatch(normalized, -1) {
			cand := strings.TrimSpace(CollapseWhitespace(strings.TrimSpace(m[1])))
			if len(cand) >= 3 && !digitsOnlyRE.MatchString(cand) {
				return cand
			}
		}
	}
	return ""
}
