package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"obj-mesh-renderer/internal/batch"
	"obj-mesh-renderer/internal/config"
	"obj-mesh-renderer/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	testN := flag.Int("test", 0, "Render only first N models for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	dataDir := flag.String("data", "", "Base directory for relative paths (default: cwd)")
	modelDir := flag.String("models", "", "Directory scanned for .obj files (default: <data>/models)")
	textureDir := flag.String("textures", "", "Directory scanned for textures (default: <data>/textures)")
	outputDir := flag.String("output", "", "Output directory (default: <data>/renders)")
	size := flag.Int("size", 0, "Output image size in pixels (default: 256)")
	noFlipV := flag.Bool("no-flip-v", false, "Keep texture V as stored in the file")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		DataDir:    *dataDir,
		ModelDir:   *modelDir,
		TextureDir: *textureDir,
		OutputDir:  *outputDir,
		Workers:    *workers,
		Size:       *size,
		NoFlipV:    *noFlipV,
	})

	// explicit files on the command line replace the directory scan
	models := flag.Args()
	if len(models) == 0 {
		var err error
		models, err = batch.FindModels(cfg.ModelDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *testN > 0 && *testN < len(models) {
		models = models[:*testN]
	}

	if len(models) == 0 {
		fmt.Println("No models to render.")
		os.Exit(0)
	}

	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex)
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())

	fmt.Println("OBJ mesh renderer → WebP")
	fmt.Printf("Models: %d, Workers: %d\n", len(models), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		ModelDir:    cfg.ModelDir,
		OutputDir:   cfg.OutputDir,
		TexResolver: texCache,
		LoadOptions: cfg.LoadOptions(),
		Camera:      cfg.Camera(),
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Progress:    2 * time.Second,
	}, models)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success := 0
	var failed []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			fmt.Printf("OK %s [V:%d I:%d]\n", r.Name, r.Vertices, r.Indices)
		} else {
			failed = append(failed, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(models))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(20, len(failed))
		for _, e := range failed[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, cfg.ModelDir, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}
