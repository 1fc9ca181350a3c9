package obj

import (
	"bufio"
	"fmt"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadFile opens and parses a model file. See Load.
func LoadFile(path string, opts Options) (*Mesh, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, path, opts)
}

// Load parses a v/vt/vn/f description in a single pass and returns a
// deduplicated triangle mesh.
//
// Malformed lines, corners and faces are skipped and only reported through
// Stats. The load fails on a read error or when the result has no vertices or
// no indices (ErrEmptyMesh). On failure the returned mesh is nil.
func Load(r io.Reader, name string, opts Options) (*Mesh, Stats, error) {
	b := newBuilder(opts)

	// Lines have no length limit.
	br := bufio.NewReaderSize(r, 64*1024)
	line := 0
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			line++
			b.parseLine(line, text)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			b.stats.Lines = line
			return nil, b.stats, fmt.Errorf("obj: read %s: %w", name, err)
		}
	}
	b.stats.Lines = line

	if len(b.vertices) == 0 || len(b.indices) == 0 {
		return nil, b.stats, fmt.Errorf("%w: %s", ErrEmptyMesh, name)
	}

	return &Mesh{
		Name:     name,
		Vertices: b.vertices,
		Indices:  b.indices,
		Normals:  b.vnormals,
	}, b.stats, nil
}

// parseLine classifies one line by its leading tag. Unknown tags (o, g,
// usemtl, s, ...) are ignored.
func (b *builder) parseLine(line int, text string) {
	text = strings.TrimSpace(text)
	if text == "" || text[0] == '#' {
		return
	}
	fields := strings.Fields(text)
	tag, args := fields[0], fields[1:]

	switch tag {
	case "v":
		var p [3]float32
		if !parseFloats(args, p[:]) {
			b.skipLine(line, "position needs 3 numbers")
			return
		}
		b.positions = append(b.positions, mgl32.Vec3(p))
		b.stats.Positions++
	case "vt":
		var t [2]float32
		if !parseFloats(args, t[:]) {
			b.skipLine(line, "texcoord needs 2 numbers")
			return
		}
		b.texcoords = append(b.texcoords, mgl32.Vec2(t))
		b.stats.TexCoords++
	case "vn":
		var n [3]float32
		if !parseFloats(args, n[:]) {
			b.skipLine(line, "normal needs 3 numbers")
			return
		}
		b.normals = append(b.normals, mgl32.Vec3(n))
		b.stats.Normals++
	case "f":
		if len(args) < 3 {
			b.stats.SkippedFaces++
			b.stats.warn(line, "face needs 3 corners")
			return
		}
		b.addFace(line, args)
	}
}

func (b *builder) skipLine(line int, reason string) {
	b.stats.SkippedLines++
	b.stats.warn(line, reason)
}

// parseFloats fills dst from the leading fields. Extra fields (e.g. a w
// component) are ignored. nan and inf are rejected.
func parseFloats(fields []string, dst []float32) bool {
	if len(fields) < len(dst) {
		return false
	}
	for i := range dst {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		dst[i] = float32(f)
	}
	return true
}
