package ocr

import (
	"context"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestBinarizeSplitsOnThreshold(t *testing.T) {
	img := imaging.New(2, 1, color.NRGBA{255, 255, 255, 255})
	img.Set(0, 0, color.NRGBA{10, 10, 10, 255})

	out := binarize(img, 128)
	if got := luminance(out, 0, 0); got != 0 {
		t.Fatalf("dark pixel should binarize to black, got %d", got)
	}
	if got := luminance(out, 1, 0); got != 255 {
		t.Fatalf("light pixel should binarize to white, got %d", got)
	}
}

func TestAdaptiveBinarizeKeepsDimensions(t *testing.T) {
	img := imaging.New(40, 30, color.NRGBA{200, 200, 200, 255})
	out := adaptiveBinarize(img, 15, 7)
	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 30 {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
}

func TestDilateThickensStroke(t *testing.T) {
	img := imaging.New(5, 5, color.NRGBA{255, 255, 255, 255})
	img.Set(2, 2, color.NRGBA{0, 0, 0, 255})

	out := dilate(img, 1)
	for _, p := range [][2]int{{2, 2}, {1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		if luminance(out, p[0], p[1]) != 0 {
			t.Fatalf("pixel %v should be black after dilation", p)
		}
	}
	if luminance(out, 0, 0) != 255 {
		t.Fatal("corner should stay white")
	}
}

func TestExtractTextRejectsEmptyInput(t *testing.T) {
	engine := NewEngine()
	if _, err := engine.ExtractText(context.Background(), nil); err != ErrEmptyImage {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}
