package render

import (
	"image/color"
	"testing"
)

func whiteFrame(w, h int) *Frame {
	f := NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return f
}

func TestVignette_DarkensEdges(t *testing.T) {
	f := whiteFrame(40, 30)
	vignette(f, 0, 0.85)
	center := f.At(20, 15)
	corner := f.At(0, 0)
	if corner.R >= center.R {
		t.Fatalf("corner %d should be darker than centre %d", corner.R, center.R)
	}
	if center.R < 250 {
		t.Fatalf("centre darkened to %d", center.R)
	}
}

func TestVignette_FlashlightSoftens(t *testing.T) {
	dim := whiteFrame(40, 30)
	lit := whiteFrame(40, 30)
	vignette(dim, 0, 0.85)
	vignette(lit, 1, 0.85)
	if lit.At(0, 0).R <= dim.At(0, 0).R {
		t.Fatalf("boosted corner %d not brighter than %d", lit.At(0, 0).R, dim.At(0, 0).R)
	}
}

func TestVignette_DisabledAndBlack(t *testing.T) {
	f := whiteFrame(10, 10)
	vignette(f, 0, 0)
	if f.At(0, 0).R != 255 {
		t.Fatal("zero strength should leave the frame untouched")
	}
	black := NewFrame(4, 4)
	vignette(black, 0, 1)
	if black.At(0, 0).A != 0 {
		t.Fatal("vignette should skip untouched black pixels")
	}
}
