package raster

import (
	"errors"
	"fmt"
	"image"

	"obj-mesh-renderer/internal/obj"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrEmptyBuffer is returned when creating or drawing a buffer with no data.
	ErrEmptyBuffer = errors.New("raster: empty buffer")
	// ErrIndexRange is returned when a draw call references data outside its buffers.
	ErrIndexRange = errors.New("raster: index out of range")
)

// DefaultBaseColor is used for untextured meshes.
var DefaultBaseColor = [4]uint8{160, 160, 170, 255}

// Projection maps a model-space position to screen pixels and depth.
type Projection interface {
	Project(pos mgl32.Vec3) (x, y, z float64)
}

// VertexBuffer is an immutable copy of a vertex array owned by a Device.
type VertexBuffer struct {
	verts []obj.Vertex
}

func (vb *VertexBuffer) Len() int { return len(vb.verts) }

// Release drops the buffer's storage. Drawing it afterwards fails.
func (vb *VertexBuffer) Release() { vb.verts = nil }

// IndexBuffer is an immutable copy of a 32-bit index array.
type IndexBuffer struct {
	indices []uint32
}

func (ib *IndexBuffer) Len() int { return len(ib.indices) }

func (ib *IndexBuffer) Release() { ib.indices = nil }

// Device is a software graphics device: it owns a framebuffer and draws
// indexed triangle lists into it.
type Device struct {
	fb        *FrameBuffer
	light     LightConfig
	sampler   Sampler
	tex       *image.NRGBA
	baseColor [4]uint8

	projected []screenVertex
}

// NewDevice creates a device with a w×h transparent render target.
func NewDevice(w, h int) *Device {
	return &Device{
		fb:        NewFrameBuffer(w, h),
		light:     DefaultLightConfig(),
		sampler:   DefaultSampler,
		baseColor: DefaultBaseColor,
	}
}

func (d *Device) FrameBuffer() *FrameBuffer { return d.fb }

// Image returns a snapshot of the render target.
func (d *Device) Image() *image.NRGBA { return d.fb.Image() }

// CreateVertexBuffer copies verts into a new vertex buffer.
func (d *Device) CreateVertexBuffer(verts []obj.Vertex) (*VertexBuffer, error) {
	if len(verts) == 0 {
		return nil, fmt.Errorf("%w: vertex buffer", ErrEmptyBuffer)
	}
	return &VertexBuffer{verts: append([]obj.Vertex(nil), verts...)}, nil
}

// CreateIndexBuffer copies indices into a new index buffer.
func (d *Device) CreateIndexBuffer(indices []uint32) (*IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: index buffer", ErrEmptyBuffer)
	}
	return &IndexBuffer{indices: append([]uint32(nil), indices...)}, nil
}

// SetTexture binds tex for subsequent draws; nil draws with the base color.
func (d *Device) SetTexture(tex *image.NRGBA) { d.tex = tex }

func (d *Device) SetSampler(s Sampler) { d.sampler = s }

func (d *Device) SetBaseColor(c [4]uint8) { d.baseColor = c }

func (d *Device) SetLight(lc LightConfig) { d.light = lc }

// DrawIndexed draws the first count indices of ib as a triangle list.
// The call is validated up front and draws nothing if it fails.
func (d *Device) DrawIndexed(vb *VertexBuffer, ib *IndexBuffer, count int, proj Projection) error {
	if vb == nil || ib == nil || len(vb.verts) == 0 || len(ib.indices) == 0 {
		return fmt.Errorf("%w: draw", ErrEmptyBuffer)
	}
	if count < 0 || count > len(ib.indices) || count%3 != 0 {
		return fmt.Errorf("%w: count %d with %d indices", ErrIndexRange, count, len(ib.indices))
	}
	nv := uint32(len(vb.verts))
	for i, idx := range ib.indices[:count] {
		if idx >= nv {
			return fmt.Errorf("%w: index[%d]=%d with %d vertices", ErrIndexRange, i, idx, nv)
		}
	}

	if cap(d.projected) < len(vb.verts) {
		d.projected = make([]screenVertex, len(vb.verts))
	}
	sv := d.projected[:len(vb.verts)]
	for i, v := range vb.verts {
		x, y, z := proj.Project(v.Pos)
		sv[i] = screenVertex{x: x, y: y, z: z, u: float64(v.Tex[0]), v: float64(v.Tex[1])}
	}

	idx := ib.indices[:count]
	for i := 0; i < count; i += 3 {
		d.rasterizeTriangle(sv[idx[i]], sv[idx[i+1]], sv[idx[i+2]])
	}
	return nil
}
