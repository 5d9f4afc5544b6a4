package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestScaleToFit_KeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 480))
	green := color.RGBA{G: 255, A: 255}
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			src.SetRGBA(x, y, green)
		}
	}
	got := ScaleToFit(src, 320, 320)
	if b := got.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if c := got.(*image.RGBA).RGBAAt(319, 239); c.G < 250 || c.R > 5 || c.A < 250 {
		t.Fatalf("corner pixel=%v want~=%v", c, green)
	}
}

func TestFitSize(t *testing.T) {
	cases := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{640, 480, 320, 240, 320, 240},
		{640, 480, 320, 320, 320, 240},
		{480, 640, 320, 320, 240, 320},
		{100, 50, 400, 300, 100, 50},
		{1000, 1, 10, 10, 10, 1},
		{50, 50, 0, 0, 1, 1},
		{0, 10, 5, 5, 0, 10},
	}
	for _, tc := range cases {
		w, h := FitSize(tc.w, tc.h, tc.maxW, tc.maxH)
		if w != tc.wantW || h != tc.wantH {
			t.Fatalf("src=%dx%d max=%dx%d got=%dx%d want=%dx%d", tc.w, tc.h, tc.maxW, tc.maxH, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestScaleToFit_SmallSourceUnchanged(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if got := ScaleToFit(src, 100, 100); got != image.Image(src) {
		t.Fatalf("expected original image to be returned")
	}
	if ScaleToFit(nil, 10, 10) != nil {
		t.Fatalf("nil source should give nil")
	}
}

func TestEncodePNG(t *testing.T) {
	data := EncodePNG(Placeholder(0, 3))
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 3 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
}
