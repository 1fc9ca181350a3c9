package obj

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmptyMesh is returned when a full pass produced no vertices or no indices.
var ErrEmptyMesh = errors.New("obj: empty or malformed model")

// Vertex is the GPU-ready vertex layout: position and texture coordinates.
type Vertex struct {
	Pos mgl32.Vec3
	Tex mgl32.Vec2
}

// Mesh is a deduplicated vertex list plus a flat triangle-list index buffer.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	// Normals is parallel to Vertices and only filled when Options.KeepNormals is set.
	// Corners without a valid normal reference get the zero vector.
	Normals []mgl32.Vec3
}

func (m *Mesh) NumVertex() int    { return len(m.Vertices) }
func (m *Mesh) NumIndex() int     { return len(m.Indices) }
func (m *Mesh) NumTriangles() int { return len(m.Indices) / 3 }

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	inf := float32(math.Inf(1))
	lo = mgl32.Vec3{inf, inf, inf}
	hi = mgl32.Vec3{-inf, -inf, -inf}
	for _, v := range m.Vertices {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v.Pos[k])
			hi[k] = max(hi[k], v.Pos[k])
		}
	}
	return lo, hi
}

// Options controls index resolution and texture-space conversion.
type Options struct {
	FlipV         bool // store V as 1-v (bottom-left origin → top-left origin)
	AllowNegative bool // negative references count back from the end of a table
	KeepNormals   bool
}

// DefaultOptions returns FlipV and AllowNegative enabled.
func DefaultOptions() Options {
	return Options{FlipV: true, AllowNegative: true}
}

// maxWarnings caps Stats.Warnings; counters keep counting past it.
const maxWarnings = 64

// Warning records one non-fatal condition absorbed during a load.
type Warning struct {
	Line   int
	Reason string
}

// Stats holds load diagnostics. It never affects whether a load succeeds.
type Stats struct {
	Lines     int
	Positions int
	TexCoords int
	Normals   int
	Faces     int

	SkippedLines    int // v/vt/vn lines with too few parseable fields
	SkippedFaces    int // faces with fewer than 3 tokens or 3 valid corners
	DroppedCorners  int // malformed or out-of-range corner references
	BadNormalRefs   int // normal references outside the normal table
	Warnings        []Warning
	WarningsDropped int
}

func (s *Stats) warn(line int, reason string) {
	if len(s.Warnings) >= maxWarnings {
		s.WarningsDropped++
		return
	}
	s.Warnings = append(s.Warnings, Warning{Line: line, Reason: reason})
}
