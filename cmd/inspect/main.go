package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"obj-mesh-renderer/internal/obj"
)

func main() {
	noFlip := flag.Bool("no-flip-v", false, "Keep texture V as stored in the file")
	noNeg := flag.Bool("no-negative", false, "Reject negative (relative) indices")
	normals := flag.Bool("normals", false, "Keep per-vertex normals")
	warnings := flag.Bool("warnings", false, "Print every absorbed warning")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [flags] model.obj")
		os.Exit(2)
	}
	path := flag.Arg(0)

	opts := obj.DefaultOptions()
	opts.FlipV = !*noFlip
	opts.AllowNegative = !*noNeg
	opts.KeepNormals = *normals

	mesh, stats, err := obj.LoadFile(path, opts)
	fmt.Printf("Lines: %d  v: %d  vt: %d  vn: %d  faces: %d\n",
		stats.Lines, stats.Positions, stats.TexCoords, stats.Normals, stats.Faces)
	fmt.Printf("Skipped lines: %d  skipped faces: %d  dropped corners: %d  bad normal refs: %d\n",
		stats.SkippedLines, stats.SkippedFaces, stats.DroppedCorners, stats.BadNormalRefs)
	if *warnings {
		for _, w := range stats.Warnings {
			fmt.Printf("  line %d: %s\n", w.Line, w.Reason)
		}
		if stats.WarningsDropped > 0 {
			fmt.Printf("  ... %d more\n", stats.WarningsDropped)
		}
	}

	if err != nil {
		if errors.Is(err, obj.ErrEmptyMesh) {
			fmt.Fprintf(os.Stderr, "Error: no triangles produced: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("OK %s [V:%d I:%d]\n", mesh.Name, mesh.NumVertex(), mesh.NumIndex())
	fmt.Printf("  Triangles: %d\n", mesh.NumTriangles())
	if len(mesh.Normals) > 0 {
		fmt.Printf("  Normals: %d\n", len(mesh.Normals))
	}
	lo, hi := mesh.Bounds()
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	size := hi.Sub(lo)
	fmt.Printf("  Size: %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
}
