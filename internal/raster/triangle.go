package raster

import (
	"image"
	"math"
)

// screenVertex is a vertex after projection: pixel position, depth and UV.
type screenVertex struct {
	x, y, z float64
	u, v    float64
}

// rasterizeTriangle fills one triangle with texture mapping, z-test,
// flat lighting and ACES tone mapping. It allocates nothing.
func (d *Device) rasterizeTriangle(v0, v1, v2 screenVertex) {
	fb := d.fb
	lc := &d.light

	// Face normal in view space (screen y points down).
	e1x, e1y, e1z := v1.x-v0.x, v0.y-v1.y, v1.z-v0.z
	e2x, e2y, e2z := v2.x-v0.x, v0.y-v2.y, v2.z-v0.z
	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x
	nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nl < 1e-8 {
		return
	}
	shade := lc.Shade(nx/nl, ny/nl, nz/nl)

	minX := int(math.Floor(math.Min(math.Min(v0.x, v1.x), v2.x)))
	maxX := int(math.Ceil(math.Max(math.Max(v0.x, v1.x), v2.x)))
	minY := int(math.Floor(math.Min(math.Min(v0.y, v1.y), v2.y)))
	maxY := int(math.Ceil(math.Max(math.Max(v0.y, v1.y), v2.y)))
	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (v1.y-v2.y)*(v0.x-v2.x) + (v2.x-v1.x)*(v0.y-v2.y)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := v1.y - v2.y
	dx21 := v2.x - v1.x
	dy20 := v2.y - v0.y
	dx02 := v0.x - v2.x

	tex := d.tex
	for sy := minY; sy <= maxY; sy++ {
		// sample at pixel centers
		dsy := float64(sy) + 0.5 - v2.y
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - v2.x
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*v0.z + w1*v1.z + w2*v2.z
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := d.baseColor[0], d.baseColor[1], d.baseColor[2], d.baseColor[3]
			if tex != nil {
				u := w0*v0.u + w1*v1.u + w2*v2.u
				v := w0*v0.v + w1*v1.v + w2*v2.v
				cr, cg, cb, ca = d.sampler.Sample(tex, u, v)
			}
			// cut-out transparency
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			px := zIdx * 4
			fb.Color[px] = lc.shadeTexel(cr, shade)
			fb.Color[px+1] = lc.shadeTexel(cg, shade)
			fb.Color[px+2] = lc.shadeTexel(cb, shade)
			fb.Color[px+3] = ca
		}
	}
}

// AverageColor returns the mean RGB of a texture with full alpha.
func AverageColor(tex *image.NRGBA) [4]uint8 {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return DefaultBaseColor
	}
	var sr, sg, sb float64
	for y := 0; y < h; y++ {
		off := y * tex.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sr += float64(tex.Pix[i])
			sg += float64(tex.Pix[i+1])
			sb += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return [4]uint8{uint8(sr/n + 0.5), uint8(sg/n + 0.5), uint8(sb/n + 0.5), 255}
}
