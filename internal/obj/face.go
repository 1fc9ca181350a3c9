package obj

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ResolveIndex converts a 1-based (or negative, relative) reference into a
// 0-based table index. Zero has no valid meaning and yields -1. The result is
// not bounds-checked.
func ResolveIndex(raw, count int, allowNegative bool) int {
	if raw == 0 {
		return -1
	}
	if raw < 0 && allowNegative {
		return count + raw
	}
	return raw - 1
}

// builder accumulates one load: attribute tables, output buffers and the
// token → vertex dedup table. A builder is never shared between loads.
type builder struct {
	opts Options

	positions []mgl32.Vec3
	texcoords []mgl32.Vec2
	normals   []mgl32.Vec3

	vertices   []Vertex
	vnormals   []mgl32.Vec3
	indices    []uint32
	uniq       map[string]uint32
	faceCorner []uint32 // reused per face

	stats Stats
}

func newBuilder(opts Options) *builder {
	return &builder{
		opts: opts,
		uniq: make(map[string]uint32),
	}
}

// addFace resolves every corner token of one face and fan-triangulates the
// surviving corners. Bad corners are dropped; a face left with fewer than
// three corners contributes nothing.
func (b *builder) addFace(line int, tokens []string) {
	corners := b.faceCorner[:0]
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		if idx, ok := b.uniq[tok]; ok {
			corners = append(corners, idx)
			continue
		}
		idx, ok := b.addCorner(line, tok)
		if !ok {
			b.stats.DroppedCorners++
			continue
		}
		corners = append(corners, idx)
	}
	b.faceCorner = corners

	if len(corners) < 3 {
		b.stats.SkippedFaces++
		b.stats.warn(line, "degenerate face")
		return
	}

	// Fan from the first corner; assumes convex planar polygons.
	i0 := corners[0]
	for i := 1; i+1 < len(corners); i++ {
		b.indices = append(b.indices, i0, corners[i], corners[i+1])
	}
	b.stats.Faces++
}

// addCorner parses a "v[/vt][/vn]" token, appends a new output vertex and
// records it in the dedup table.
func (b *builder) addCorner(line int, tok string) (uint32, bool) {
	var refs [3]int
	parts := strings.Split(tok, "/")
	for k := 0; k < len(parts) && k < 3; k++ {
		if parts[k] == "" {
			continue
		}
		n, err := strconv.Atoi(parts[k])
		if err != nil {
			b.stats.warn(line, "bad corner reference "+strconv.Quote(tok))
			return 0, false
		}
		refs[k] = n
	}

	pv := ResolveIndex(refs[0], len(b.positions), b.opts.AllowNegative)
	if pv < 0 || pv >= len(b.positions) {
		b.stats.warn(line, "position reference out of range "+strconv.Quote(tok))
		return 0, false
	}
	pt := ResolveIndex(refs[1], len(b.texcoords), b.opts.AllowNegative)
	pn := ResolveIndex(refs[2], len(b.normals), b.opts.AllowNegative)
	normalOK := pn >= 0 && pn < len(b.normals)
	if refs[2] != 0 && !normalOK {
		b.stats.BadNormalRefs++
	}

	v := Vertex{Pos: b.positions[pv]}
	if pt >= 0 && pt < len(b.texcoords) {
		v.Tex = b.texcoords[pt]
		if b.opts.FlipV {
			v.Tex[1] = 1 - v.Tex[1]
		}
	}

	idx := uint32(len(b.vertices))
	b.vertices = append(b.vertices, v)
	if b.opts.KeepNormals {
		var n mgl32.Vec3
		if normalOK {
			n = b.normals[pn]
		}
		b.vnormals = append(b.vnormals, n)
	}
	b.uniq[tok] = idx
	return idx, true
}
