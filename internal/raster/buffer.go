package raster

import (
	"image"
	"math"
)

// FrameBuffer holds the render target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, larger is closer
}

// NewFrameBuffer allocates a transparent color buffer and a cleared z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		ZBuf:   make([]float64, w*h),
	}
	fb.ClearDepth()
	return fb
}

// Clear fills the color buffer with c and resets depth.
func (fb *FrameBuffer) Clear(r, g, b, a uint8) {
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = r
		fb.Color[i+1] = g
		fb.Color[i+2] = b
		fb.Color[i+3] = a
	}
	fb.ClearDepth()
}

func (fb *FrameBuffer) ClearDepth() {
	for i := range fb.ZBuf {
		fb.ZBuf[i] = math.Inf(-1)
	}
}

// Image copies the color buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
