package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"obj-mesh-renderer/internal/obj"
	"obj-mesh-renderer/internal/texture"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	windowWidth  = 960
	windowHeight = 720
)

func main() {
	texPath := flag.String("texture", "", "Texture image (default: same stem next to the model)")
	noFlip := flag.Bool("no-flip-v", false, "Keep texture V as stored in the file")
	noNeg := flag.Bool("no-negative", false, "Reject negative (relative) indices")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: objview [flags] model.obj")
		os.Exit(2)
	}
	path := flag.Arg(0)

	opts := obj.DefaultOptions()
	opts.FlipV = !*noFlip
	opts.AllowNegative = !*noNeg

	mesh, stats, err := obj.LoadFile(path, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK %s [V:%d I:%d]\n", mesh.Name, mesh.NumVertex(), mesh.NumIndex())
	if n := stats.SkippedLines + stats.SkippedFaces + stats.DroppedCorners; n > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d malformed records skipped\n", n)
	}

	tex := loadTexture(*texPath, path)

	g := newGame(mesh, tex)
	ebiten.SetWindowTitle("objview - " + filepath.Base(path))
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadTexture returns the explicit texture, or the first image sharing the
// model's stem in the model's directory. nil means untextured.
func loadTexture(explicit, modelPath string) *image.NRGBA {
	if explicit != "" {
		img, err := texture.LoadTexture(explicit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		return img
	}
	cache := texture.NewCache(texture.BuildIndex(filepath.Dir(modelPath)))
	return cache.Resolve(modelPath)
}
