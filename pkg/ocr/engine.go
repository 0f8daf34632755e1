// Package ocr turns check images into text with Tesseract. It only produces
// a raw string; all interpretation of that string lives in pkg/checkparse.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// ErrEmptyImage is returned when no image bytes were supplied.
var ErrEmptyImage = errors.New("empty image data")

// checkGlyphs restricts Tesseract to the characters that legitimately appear
// on a check face and its MICR line. Keeping the whitelist tight cuts down
// on stray punctuation in the output.
const checkGlyphs = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz .,$/:|#-"

// Engine runs Tesseract over preprocessed check images. It implements
// checkparse.TextExtractor. The zero value is not usable; call NewEngine.
type Engine struct {
	lang string
}

func NewEngine() *Engine {
	return &Engine{lang: "eng"}
}

// ExtractText decodes the image, runs the standard preprocessing pipeline,
// and performs a Tesseract pass. If the first pass yields no digits at all
// (the MICR band is often too low-contrast for a global threshold), a second
// pass runs over an adaptively thresholded variant and the longer result
// wins.
func (e *Engine) ExtractText(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	gray := prepare(img)
	text, err := e.recognize(gray)
	if err != nil {
		return "", err
	}
	if !containsDigit(text) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		adaptive := dilate(adaptiveBinarize(gray, 15, 7), 1)
		retry, err := e.recognize(adaptive)
		if err == nil && len(retry) > len(text) {
			log.Printf("ocr: adaptive retry recovered %d bytes (first pass %d)", len(retry), len(text))
			text = retry
		}
	}
	log.Printf("ocr: extracted %d bytes snippet=%q", len(text), snippet(text, 120))
	return text, nil
}

// recognize writes the image to a temp file and runs one Tesseract pass.
func (e *Engine) recognize(img image.Image) (string, error) {
	tmp, err := os.CreateTemp("", "check-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(path)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("save preprocessed image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(e.lang)
	_ = client.SetWhitelist(checkGlyphs)
	client.SetImage(path)
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return text, nil
}

// prepare applies grayscale, mild contrast and sharpening, upscales small
// captures, and binarizes with a global threshold.
func prepare(img image.Image) *image.NRGBA {
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)
	if gray.Bounds().Dy() < 900 {
		gray = imaging.Resize(gray, 0, 1300, imaging.Lanczos)
	}
	return binarize(gray, 210)
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// snippet shortens text for logging.
func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
