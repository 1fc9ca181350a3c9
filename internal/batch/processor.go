package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"obj-mesh-renderer/internal/camera"
	"obj-mesh-renderer/internal/obj"
	"obj-mesh-renderer/internal/postprocess"
	"obj-mesh-renderer/internal/raster"
	"obj-mesh-renderer/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	ModelDir    string
	OutputDir   string
	TexResolver texture.Resolver
	LoadOptions obj.Options
	Camera      camera.Params
	RenderSize  int
	Supersample int
	Workers     int
	Progress    time.Duration // 0 disables progress output
}

// Result holds the outcome of processing one model file.
type Result struct {
	Name     string
	Model    string
	Image    string // path relative to OutputDir
	Success  bool
	Error    string
	Vertices int
	Indices  int
	Skipped  int // lines, faces and corners absorbed by the loader
}

// FindModels returns every .obj file under dir, sorted.
func FindModels(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".obj") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run processes all model files using a worker pool. Every load runs with its
// own parser state; only the texture cache is shared.
func Run(cfg Config, models []string) []Result {
	total := len(models)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if p := processed.Load(); p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processModel(cfg, models[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range models {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func processModel(cfg Config, path string) Result {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res := Result{Name: stem, Model: path}
	// mirror the model tree so equal stems in different dirs don't collide
	rel := stem
	if r, err := filepath.Rel(cfg.ModelDir, path); cfg.ModelDir != "" && err == nil && !strings.HasPrefix(r, "..") {
		rel = strings.TrimSuffix(r, filepath.Ext(r))
	}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	mesh, stats, err := obj.LoadFile(path, cfg.LoadOptions)
	res.Skipped = stats.SkippedLines + stats.SkippedFaces + stats.DroppedCorners
	if err != nil {
		return fail(err)
	}
	res.Vertices = mesh.NumVertex()
	res.Indices = mesh.NumIndex()

	tex := cfg.resolveTexture(path)
	img, err := raster.RenderMesh(mesh, tex, cfg.Camera, cfg.RenderSize, cfg.Supersample)
	if err != nil {
		return fail(err)
	}
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	res.Image = filepath.ToSlash(rel) + ".webp"
	outPath := filepath.Join(cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fail(err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fail(fmt.Errorf("WebP encode: %w", err))
	}

	res.Success = true
	return res
}

func (cfg Config) resolveTexture(modelPath string) *image.NRGBA {
	if cfg.TexResolver == nil {
		return nil
	}
	return cfg.TexResolver.Resolve(modelPath)
}
