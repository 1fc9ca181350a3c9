package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func TestDownsampleNoop(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if got := Downsample(img, 8); got != img {
		t.Error("expected the same image when already at target size")
	}
}

func TestDownsampleKeepsColorAtTransparentEdge(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{200, 40, 40, 255})
		}
	}
	dst := Downsample(src, 8)
	if dst.Bounds().Dx() != 8 || dst.Bounds().Dy() != 8 {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if c := dst.NRGBAAt(0, 4); c.A != 255 || c.R < 190 {
		t.Errorf("opaque side = %+v", c)
	}
	if c := dst.NRGBAAt(7, 4); c.A > 10 {
		t.Errorf("transparent side alpha = %d", c.A)
	}
	// the edge pixel keeps its hue instead of darkening toward black
	if c := dst.NRGBAAt(3, 4); c.A > 0 && c.R < 150 {
		t.Errorf("edge pixel darkened: %+v", c)
	}
}
