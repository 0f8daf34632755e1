package checkparse

// ParseCheck runs every field extractor independently over the same raw
// text and composes the results. Extractors are pure functions, so assembly
// order has no effect and identical text always yields an identical Check.
// There is no failure mode: empty or garbage input produces a Check with
// every field at its own "not found" default, and the caller decides what
// an all-defaults result means.
func ParseCheck(text string) Check {
	check := Check{
		RawText: text,
		Amount:  Amount{Value: ExtractAmount(text), Currency: "USD"},
		Payee:   Payee{Name: ExtractPayee(text)},
		Micr: Micr{
			Routing:     digitsOf(ExtractRoutingNumber(text)),
			Account:     digitsOf(ExtractAccountNumber(text)),
			CheckNumber: digitsOf(ExtractCheckNumber(text)),
		},
	}
	if d, err := ExtractDate(text); err == nil {
		check.Date = &d
	}
	return check
}

func digitsOf(value string, found bool) Digits {
	return Digits{Value: value, Found: found}
}
