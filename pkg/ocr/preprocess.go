package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

func luminance(img image.Image, x, y int) int {
	r, g, b, _ := img.At(x, y).RGBA()
	return int((r + g + b) / 3 >> 8)
}

// binarize applies a global threshold: pixels at or below the threshold
// become black, the rest white.
func binarize(img image.Image, threshold int) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := uint8(255)
			if luminance(img, x, y) <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}

// adaptiveBinarize thresholds each pixel against the mean of its
// window-sized neighborhood minus a bias, using a summed-area table so the
// window mean is O(1) per pixel. It handles uneven lighting (shadows across
// a photographed check) much better than a single global threshold.
func adaptiveBinarize(img image.Image, window, bias int) *image.NRGBA {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	half := window / 2

	sums := make([]int, w*h)
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			rowSum += luminance(img, x, y)
			idx := y*w + x
			sums[idx] = rowSum
			if y > 0 {
				sums[idx] += sums[idx-w]
			}
		}
	}
	area := func(x0, y0, x1, y1 int) int {
		s := sums[y1*w+x1]
		if x0 > 0 {
			s -= sums[y1*w+x0-1]
		}
		if y0 > 0 {
			s -= sums[(y0-1)*w+x1]
		}
		if x0 > 0 && y0 > 0 {
			s += sums[(y0-1)*w+x0-1]
		}
		return s
	}

	out := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := max(0, x-half), max(0, y-half)
			x1, y1 := min(w-1, x+half), min(h-1, y+half)
			mean := area(x0, y0, x1, y1) / ((x1 - x0 + 1) * (y1 - y0 + 1))
			th := mean - bias
			if th < 0 {
				th = 0
			}
			if luminance(img, x, y) < th {
				out.Set(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return out
}

var neighborhood = [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// dilate thickens black strokes by the given radius using a 4-neighborhood.
// MICR digits come out thin after adaptive thresholding; one round of
// dilation makes them legible to Tesseract again.
func dilate(img *image.NRGBA, radius int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	cur := img
	for r := 0; r < radius; r++ {
		next := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				for _, d := range neighborhood {
					nx, ny := x+d[0], y+d[1]
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					if luminance(cur, nx, ny) == 0 {
						next.Set(x, y, color.NRGBA{0, 0, 0, 255})
						break
					}
				}
			}
		}
		cur = next
	}
	return cur
}
