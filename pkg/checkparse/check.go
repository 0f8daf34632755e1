package checkparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Check holds everything the extractors could recover from one check's OCR
// text. It is built once by ParseCheck and never mutated afterwards; each
// field carries its own "not found" convention (zero amount, empty payee
// name, Digits.Found=false, nil date).
type Check struct {
	Amount  Amount
	Payee   Payee
	Micr    Micr
	Date    *time.Time
	RawText string
}

// Amount is the monetary value written on the check. A zero Value means no
// amount was found. Currency is always USD for current inputs.
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

// Payee is the named recipient. An empty Name means not found.
type Payee struct {
	Name string
}

// Digits is an optionally present run of digits taken from the MICR line.
// Found distinguishes "not found" from a (never produced) empty capture, so
// callers don't have to treat "" as a sentinel.
type Digits struct {
	Value string
	Found bool
}

// Micr carries the three fields encoded in the magnetic-ink line at the
// bottom of a check.
type Micr struct {
	Routing     Digits
	Account     Digits
	CheckNumber Digits
}

func (d Digits) orNotFound() string {
	if !d.Found {
		return "not found"
	}
	return d.Value
}

// String renders a human-readable summary, used by the workers when logging
// a processed check.
func (c Check) String() string {
	var b strings.Builder
	b.WriteString("check")
	fmt.Fprintf(&b, " number=%s", c.Micr.CheckNumber.orNotFound())
	payee := c.Payee.Name
	if payee == "" {
		payee = "not found"
	}
	fmt.Fprintf(&b, " payee=%q", payee)
	fmt.Fprintf(&b, " amount=%s %s", c.Amount.Value.StringFixed(2), c.Amount.Currency)
	if c.Date != nil {
		fmt.Fprintf(&b, " date=%s", c.Date.Format("2006-01-02"))
	} else {
		b.WriteString(" date=not found")
	}
	fmt.Fprintf(&b, " routing=%s account=%s", c.Micr.Routing.orNotFound(), c.Micr.Account.orNotFound())
	return b.String()
}
