package checkparse

import (
	"context"
	"fmt"
)

// TextExtractor produces OCR text from raw image bytes. Implementations may
// fail with recognition or I/O errors; any returned string, including the
// empty string, is valid parser input.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Reader couples an OCR engine with the field extractors.
type Reader struct {
	ocr TextExtractor
}

func NewReader(ocr TextExtractor) *Reader {
	return &Reader{ocr: ocr}
}

// ReadCheck extracts text from the check image and parses it. Only OCR
// failures surface as errors; parsing itself always succeeds.
func (r *Reader) ReadCheck(ctx context.Context, image []byte) (Check, error) {
	text, err := r.ocr.ExtractText(ctx, image)
	if err != nil {
		return Check{}, fmt.Errorf("extract text: %w", err)
	}
	return ParseCheck(text), nil
}
