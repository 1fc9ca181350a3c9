package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales img to size×size with premultiplied-alpha CatmullRom
// filtering, which keeps transparent edges free of dark fringes.
// Images already at or below size are returned unchanged.
func Downsample(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premultiply(img), b, draw.Src, nil)
	return unpremultiply(dst)
}

func premultiply(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			for c := 0; c < 3; c++ {
				out.Pix[di+c] = uint8(float64(img.Pix[si+c])*a + 0.5)
			}
			out.Pix[di+3] = img.Pix[si+3]
		}
	}
	return out
}

func unpremultiply(img *image.RGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := float64(img.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				for c := 0; c < 3; c++ {
					out.Pix[di+c] = clamp8(float64(img.Pix[si+c]) * inv)
				}
			}
			out.Pix[di+3] = img.Pix[si+3]
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
