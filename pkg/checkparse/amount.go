package checkparse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Ordered by confidence: an explicit dollar sign beats a bare decimal
// number. The second pattern requires the cents portion so it won't pick up
// plain integers (check numbers, account fragments).
var amountMatchers = []matcher{
	submatch(regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)), // $1,234.56 or $ 99.99
	submatch(regexp.MustCompile(`(\d{1,3}(?:,\d{3})*\.\d{2})`)),           // 1,234.56
}

var amountCleaner = strings.NewReplacer("$", "", ",", "")

// ExtractAmount finds the monetary value on the check. When several dollar
// amounts appear, the left-most match of the highest-priority pattern wins;
// checks show the numeric amount before the written one. Returns zero when
// nothing matches or the matched text fails to parse.
func ExtractAmount(text string) decimal.Decimal {
	r := firstMatch(text, amountMatchers)
	if !r.ok {
		return decimal.Zero
	}
	cleaned := amountCleaner.Replace(strings.TrimSpace(r.value))
	amt, err := decimal.NewFromString(cleaned)
	if err != nil || amt.IsNegative() {
		return decimal.Zero
	}
	return amt
}
