package checkparse

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const sampleCheckText = "Check #1234\n" +
	"Date: 01/15/2024\n" +
	"Pay to the order of John Smith $1,500.00\n" +
	"One Thousand Five Hundred Dollars\n" +
	"021000021 9876543210 1234"

func TestParseCheckFullText(t *testing.T) {
	check := ParseCheck(sampleCheckText)

	if check.Payee.Name != "John Smith" {
		t.Fatalf("payee: %q", check.Payee.Name)
	}
	if !check.Amount.Value.Equal(decimal.RequireFromString("1500.00")) {
		t.Fatalf("amount: %s", check.Amount.Value)
	}
	if check.Amount.Currency != "USD" {
		t.Fatalf("currency: %q", check.Amount.Currency)
	}
	if check.Date == nil || !check.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date: %v", check.Date)
	}
	if check.Micr.Routing != (Digits{Value: "021000021", Found: true}) {
		t.Fatalf("routing: %+v", check.Micr.Routing)
	}
	if check.Micr.Account != (Digits{Value: "9876543210", Found: true}) {
		t.Fatalf("account: %+v", check.Micr.Account)
	}
	if check.Micr.CheckNumber != (Digits{Value: "1234", Found: true}) {
		t.Fatalf("check number: %+v", check.Micr.CheckNumber)
	}
	if check.RawText != sampleCheckText {
		t.Fatal("raw text not preserved")
	}
}

func TestParseCheckBareMicrLine(t *testing.T) {
	check := ParseCheck("021000021 9876543210 1234")
	if check.Micr.Routing.Value != "021000021" || check.Micr.Account.Value != "9876543210" || check.Micr.CheckNumber.Value != "1234" {
		t.Fatalf("micr: %+v", check.Micr)
	}
}

func TestParseCheckEmptyInput(t *testing.T) {
	check := ParseCheck("")
	if !check.Amount.Value.IsZero() {
		t.Fatalf("amount: %s", check.Amount.Value)
	}
	if check.Payee.Name != "" {
		t.Fatalf("payee: %q", check.Payee.Name)
	}
	if check.Date != nil {
		t.Fatalf("date: %v", check.Date)
	}
	if check.Micr.Routing.Found || check.Micr.Account.Found || check.Micr.CheckNumber.Found {
		t.Fatalf("micr: %+v", check.Micr)
	}
}

func TestParseCheckIdempotent(t *testing.T) {
	first := ParseCheck(sampleCheckText)
	second := ParseCheck(sampleCheckText)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse is not deterministic:\n%+v\n%+v", first, second)
	}
}

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	return s.text, s.err
}

func TestReaderReadCheck(t *testing.T) {
	reader := NewReader(stubExtractor{text: sampleCheckText})
	check, err := reader.ReadCheck(context.Background(), []byte{0x00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Payee.Name != "John Smith" || check.Micr.CheckNumber.Value != "1234" {
		t.Fatalf("unexpected check: %+v", check)
	}
}

func TestReaderPropagatesOCRError(t *testing.T) {
	recogErr := errors.New("recognition failed")
	reader := NewReader(stubExtractor{err: recogErr})
	_, err := reader.ReadCheck(context.Background(), []byte{0x00})
	if !errors.Is(err, recogErr) {
		t.Fatalf("expected wrapped OCR error, got %v", err)
	}
}

func TestReaderEmptyTextStillParses(t *testing.T) {
	reader := NewReader(stubExtractor{text: ""})
	check, err := reader.ReadCheck(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Payee.Name != "" || check.Micr.Routing.Found {
		t.Fatalf("unexpected check: %+v", check)
	}
}
