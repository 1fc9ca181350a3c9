package raster

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"obj-mesh-renderer/internal/camera"
	"obj-mesh-renderer/internal/obj"

	"github.com/go-gl/mathgl/mgl32"
)

// screenProj treats model positions as pixel coordinates.
type screenProj struct{}

func (screenProj) Project(p mgl32.Vec3) (float64, float64, float64) {
	return float64(p[0]), float64(p[1]), float64(p[2])
}

func flatTri(z float32) []obj.Vertex {
	return []obj.Vertex{
		{Pos: mgl32.Vec3{0, 0, z}},
		{Pos: mgl32.Vec3{16, 0, z}},
		{Pos: mgl32.Vec3{0, 16, z}},
	}
}

func TestCreateBuffersRejectEmpty(t *testing.T) {
	d := NewDevice(4, 4)
	if _, err := d.CreateVertexBuffer(nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("vertex buffer err = %v", err)
	}
	if _, err := d.CreateIndexBuffer([]uint32{}); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("index buffer err = %v", err)
	}
}

func TestCreateBufferCopies(t *testing.T) {
	d := NewDevice(4, 4)
	idx := []uint32{0, 1, 2}
	ib, err := d.CreateIndexBuffer(idx)
	if err != nil {
		t.Fatal(err)
	}
	idx[0] = 99
	if ib.indices[0] != 0 {
		t.Errorf("index buffer aliases caller slice")
	}
}

func TestDrawIndexedValidation(t *testing.T) {
	d := NewDevice(16, 16)
	vb, _ := d.CreateVertexBuffer(flatTri(0))
	ib, _ := d.CreateIndexBuffer([]uint32{0, 1, 3})

	if err := d.DrawIndexed(vb, ib, 3, screenProj{}); !errors.Is(err, ErrIndexRange) {
		t.Errorf("out-of-range index err = %v", err)
	}
	if err := d.DrawIndexed(vb, ib, 2, screenProj{}); !errors.Is(err, ErrIndexRange) {
		t.Errorf("partial triangle err = %v", err)
	}
	if err := d.DrawIndexed(vb, ib, 6, screenProj{}); !errors.Is(err, ErrIndexRange) {
		t.Errorf("count beyond buffer err = %v", err)
	}
	for i, a := range d.FrameBuffer().Color {
		if a != 0 {
			t.Fatalf("failed draw touched framebuffer at %d", i)
		}
	}

	vb.Release()
	good, _ := d.CreateIndexBuffer([]uint32{0, 1, 2})
	if err := d.DrawIndexed(vb, good, 3, screenProj{}); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("released buffer err = %v", err)
	}
}

func TestDepthTest(t *testing.T) {
	d := NewDevice(16, 16)
	ib, _ := d.CreateIndexBuffer([]uint32{0, 1, 2})

	near, _ := d.CreateVertexBuffer(flatTri(1))
	d.SetBaseColor([4]uint8{255, 0, 0, 255})
	if err := d.DrawIndexed(near, ib, 3, screenProj{}); err != nil {
		t.Fatal(err)
	}

	far, _ := d.CreateVertexBuffer(flatTri(0))
	d.SetBaseColor([4]uint8{0, 0, 255, 255})
	if err := d.DrawIndexed(far, ib, 3, screenProj{}); err != nil {
		t.Fatal(err)
	}

	c := d.Image().NRGBAAt(2, 2)
	if c.A != 255 || c.R <= c.B {
		t.Errorf("pixel = %+v, want near red triangle", c)
	}
	if a := d.Image().NRGBAAt(15, 15).A; a != 0 {
		t.Errorf("pixel outside triangle alpha = %d", a)
	}
}

func TestSamplerPointAndLinear(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	tex.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	tex.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	tex.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})

	r, g, b, _ := Sampler{Filter: FilterPoint}.Sample(tex, 0.75, 0.25)
	if r != 0 || g != 255 || b != 0 {
		t.Errorf("point sample = %d,%d,%d, want green", r, g, b)
	}
	r, g, b, _ = Sampler{Filter: FilterPoint}.Sample(tex, 1.25, 0.75)
	if r != 0 || g != 0 || b != 255 {
		t.Errorf("wrapped point sample = %d,%d,%d, want blue", r, g, b)
	}
	r, g, b, _ = DefaultSampler.Sample(tex, 0, 0)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("linear sample at origin = %d,%d,%d, want red", r, g, b)
	}
}

func TestSamplerExtremeCoords(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	tex.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})
	coords := []float64{1e30, -1e30, math.Inf(1), math.Inf(-1), math.NaN(), -0.25, 3.999999}
	for _, f := range []Filter{FilterLinear, FilterPoint} {
		s := Sampler{Filter: f}
		for _, c := range coords {
			s.Sample(tex, c, 0)
			s.Sample(tex, 0, c)
			s.Sample(tex, c, c)
		}
		r, g, b, _ := s.Sample(tex, math.NaN(), math.Inf(1))
		if r != 10 || g != 20 || b != 30 {
			t.Errorf("filter %d: non-finite sample = %d,%d,%d, want texel 0", f, r, g, b)
		}
	}
}

func TestRenderMeshHugeTexcoords(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 1e30 0\nvt 0 -1e30\nvt -1e30 1e30\nf 1/1 2/2 3/3\n"
	mesh, _, err := obj.Load(strings.NewReader(src), "huge", obj.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	tex := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := RenderMesh(mesh, tex, camera.DefaultParams(), 128, 1); err != nil {
		t.Fatal(err)
	}
}

func TestRenderMeshQuad(t *testing.T) {
	mesh, _, err := obj.LoadFile("../obj/testdata/quad.obj", obj.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	img, err := RenderMesh(mesh, nil, camera.Params{}, 64, 1)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 {
		t.Fatalf("size = %v", img.Bounds())
	}
	if a := img.NRGBAAt(32, 32).A; a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}
	if a := img.NRGBAAt(2, 2).A; a != 0 {
		t.Errorf("margin alpha = %d, want 0", a)
	}
}

func TestRenderMeshTextured(t *testing.T) {
	mesh, _, err := obj.LoadFile("../obj/testdata/quad.obj", obj.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	tex := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(tex.Pix); i += 4 {
		tex.Pix[i], tex.Pix[i+1], tex.Pix[i+2], tex.Pix[i+3] = 0, 200, 0, 255
	}
	img, err := RenderMesh(mesh, tex, camera.Params{}, 64, 2)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 128 {
		t.Fatalf("supersampled size = %v", img.Bounds())
	}
	c := img.NRGBAAt(64, 64)
	if c.G == 0 || c.R != 0 || c.B != 0 {
		t.Errorf("center = %+v, want green texel", c)
	}
}

func TestAverageColor(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{100, 0, 0, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{200, 50, 0, 255})
	if got := AverageColor(tex); got != [4]uint8{150, 25, 0, 255} {
		t.Errorf("AverageColor = %v", got)
	}
}
