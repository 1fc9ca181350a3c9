package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"obj-mesh-renderer/internal/obj"
	"obj-mesh-renderer/internal/raster"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ebiten indices are 16-bit; triangles are emitted unshared, so one batch
// holds at most this many.
const maxBatchTriangles = math.MaxUint16 / 3

type game struct {
	mesh  *obj.Mesh
	model mgl32.Mat4 // centers the mesh in a unit sphere

	tex      *ebiten.Image
	texW     float32
	texH     float32
	light    raster.LightConfig
	yaw      float32
	pitch    float32
	distance float32
	spin     bool

	dragging       bool
	lastX, lastY   int
	width, height  int
	clip           []mgl32.Vec4
	view           []mgl32.Vec3
	order          []drawTri
	vertices       []ebiten.Vertex
	indices        []uint16
	drawnTriangles int
}

type drawTri struct {
	base  int // first index into mesh.Indices
	depth float32
	shade float32
}

func newGame(mesh *obj.Mesh, tex *image.NRGBA) *game {
	lo, hi := mesh.Bounds()
	center := lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius < 1e-6 {
		radius = 1
	}

	g := &game{
		mesh:     mesh,
		model:    mgl32.Scale3D(1/radius, 1/radius, 1/radius).Mul4(mgl32.Translate3D(-center[0], -center[1], -center[2])),
		light:    raster.DefaultLightConfig(),
		pitch:    mgl32.DegToRad(-20),
		distance: 3,
		spin:     true,
	}

	if tex == nil {
		// untextured meshes sample a single flat texel
		tex = image.NewNRGBA(image.Rect(0, 0, 1, 1))
		c := raster.DefaultBaseColor
		tex.SetNRGBA(0, 0, color.NRGBA{c[0], c[1], c[2], c[3]})
	}
	g.tex = ebiten.NewImageFromImage(tex)
	g.texW = float32(tex.Bounds().Dx())
	g.texH = float32(tex.Bounds().Dy())
	return g
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.spin = !g.spin
	}

	const step = 0.03
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.yaw -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.yaw += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.pitch -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.pitch += step
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		if g.dragging {
			g.yaw += float32(cx-g.lastX) * 0.01
			g.pitch += float32(cy-g.lastY) * 0.01
			g.spin = false
		}
		g.dragging = true
		g.lastX, g.lastY = cx, cy
	} else {
		g.dragging = false
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.distance = mgl32.Clamp(g.distance-float32(dy)*0.2, 1.2, 20)
	}

	if g.spin {
		g.yaw += 0.01
	}
	g.pitch = mgl32.Clamp(g.pitch, -math.Pi/2, math.Pi/2)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{0x20, 0x22, 0x28, 0xff})
	if g.width == 0 || g.height == 0 {
		return
	}

	aspect := float32(g.width) / float32(g.height)
	proj := mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, g.distance}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	rot := mgl32.HomogRotate3DX(g.pitch).Mul4(mgl32.HomogRotate3DY(g.yaw))
	modelView := view.Mul4(rot).Mul4(g.model)
	mvp := proj.Mul4(modelView)

	g.transform(modelView, mvp)
	g.sortTriangles()
	g.emit(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s\nV:%d I:%d drawn:%d\nFPS: %.0f  drag/arrows rotate, wheel zoom, space spin",
		g.mesh.Name, g.mesh.NumVertex(), g.mesh.NumIndex(), g.drawnTriangles, ebiten.ActualFPS()))
}

// transform moves every vertex to view and clip space once per frame.
func (g *game) transform(modelView, mvp mgl32.Mat4) {
	n := len(g.mesh.Vertices)
	if cap(g.clip) < n {
		g.clip = make([]mgl32.Vec4, n)
		g.view = make([]mgl32.Vec3, n)
	}
	g.clip = g.clip[:n]
	g.view = g.view[:n]
	for i, v := range g.mesh.Vertices {
		p := v.Pos.Vec4(1)
		g.clip[i] = mvp.Mul4x1(p)
		g.view[i] = modelView.Mul4x1(p).Vec3()
	}
}

// sortTriangles drops triangles crossing the near plane and orders the rest
// back to front, since ebiten has no depth buffer.
func (g *game) sortTriangles() {
	g.order = g.order[:0]
	idx := g.mesh.Indices
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		if g.clip[a].W() <= 0.1 || g.clip[b].W() <= 0.1 || g.clip[c].W() <= 0.1 {
			continue
		}
		va, vb, vc := g.view[a], g.view[b], g.view[c]
		n := vb.Sub(va).Cross(vc.Sub(va))
		if n.Len() < 1e-12 {
			continue
		}
		n = n.Normalize()
		shade := g.light.Shade(float64(n[0]), float64(n[1]), float64(n[2]))
		g.order = append(g.order, drawTri{
			base:  i,
			depth: va[2] + vb[2] + vc[2],
			shade: float32(raster.ACESTonemap(shade * 0.6)),
		})
	}
	// view space looks down -Z: most negative is farthest
	sort.Slice(g.order, func(i, j int) bool { return g.order[i].depth < g.order[j].depth })
}

func (g *game) emit(screen *ebiten.Image) {
	halfW := float32(g.width) / 2
	halfH := float32(g.height) / 2
	opts := &ebiten.DrawTrianglesOptions{
		Address: ebiten.AddressRepeat,
		Filter:  ebiten.FilterLinear,
	}

	g.drawnTriangles = 0
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	flush := func() {
		if len(g.indices) > 0 {
			screen.DrawTriangles(g.vertices, g.indices, g.tex, opts)
		}
		g.vertices = g.vertices[:0]
		g.indices = g.indices[:0]
	}

	idx := g.mesh.Indices
	for _, t := range g.order {
		if len(g.indices)/3 >= maxBatchTriangles {
			flush()
		}
		for k := 0; k < 3; k++ {
			vi := idx[t.base+k]
			c := g.clip[vi]
			inv := 1 / c.W()
			tex := g.mesh.Vertices[vi].Tex
			g.indices = append(g.indices, uint16(len(g.vertices)))
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX:   halfW + c.X()*inv*halfW,
				DstY:   halfH - c.Y()*inv*halfH,
				SrcX:   tex[0] * g.texW,
				SrcY:   tex[1] * g.texH,
				ColorR: t.shade,
				ColorG: t.shade,
				ColorB: t.shade,
				ColorA: 1,
			})
		}
		g.drawnTriangles++
	}
	flush()
}
