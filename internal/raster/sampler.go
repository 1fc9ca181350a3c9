package raster

import (
	"image"
	"math"
)

// Filter selects how texels are combined when sampling.
type Filter int

const (
	FilterLinear Filter = iota
	FilterPoint
)

// Sampler describes texture lookup state. Addressing always wraps.
type Sampler struct {
	Filter Filter
}

// DefaultSampler is bilinear with wrap addressing.
var DefaultSampler = Sampler{Filter: FilterLinear}

// wrap01 maps t into [0, 1). Callers reject non-finite input first.
func wrap01(t float64) float64 {
	t -= math.Floor(t)
	if t >= 1 {
		t = 0
	}
	return t
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Sample returns the texel color at (u, v) with the origin at the top-left.
// Accesses tex.Pix directly. Non-finite coordinates return texel (0, 0).
func (s Sampler) Sample(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}
	if !finite(u) || !finite(v) {
		u, v = 0, 0
	}
	u, v = wrap01(u), wrap01(v)
	stride := tex.Stride
	pix := tex.Pix

	if s.Filter == FilterPoint {
		x := clampIndex(int(u*float64(w)), w)
		y := clampIndex(int(v*float64(h)), h)
		i := y*stride + x*4
		return pix[i], pix[i+1], pix[i+2], pix[i+3]
	}

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := clampIndex(int(fx), w)
	y0 := clampIndex(int(fy), h)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	mix := func(c int) uint8 {
		f := float64(pix[i00+c])*w00 + float64(pix[i10+c])*w10 +
			float64(pix[i01+c])*w01 + float64(pix[i11+c])*w11
		return uint8(f + 0.5)
	}
	return mix(0), mix(1), mix(2), mix(3)
}
