package images

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// Preview frames are re-encoded for Tk on every poll.
var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// EncodePNG encodes img for a Tk photo. It returns nil for a nil image or on encode failure.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// Placeholder returns a blank image of the given size, shown until the first frame arrives.
func Placeholder(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
}

// FitSize returns the largest size with the aspect ratio of w x h that fits in maxW x maxH.
// Sizes that already fit are returned as is; frames are never enlarged.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	maxW, maxH = max(maxW, 1), max(maxH, 1)
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(int(float64(w)*ratio+0.5), 1), max(int(float64(h)*ratio+0.5), 1)
}

// ScaleToFit shrinks src bilinearly to fit maxW x maxH. A source that already fits is
// returned unchanged.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if w == b.Dx() && h == b.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
