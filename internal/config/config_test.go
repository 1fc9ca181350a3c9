package config

import (
	"os"
	"path/filepath"
	"testing"

	"obj-mesh-renderer/internal/camera"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndResolve(t *testing.T) {
	path := writeConfig(t, `{
		"base_dir": "/data",
		"model_dir": "meshes",
		"output_dir": "/tmp/out",
		"flip_v": false,
		"render_size": 128,
		"yaw": 0,
		"pitch": 0
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Resolve(Flags{Workers: 3})

	if cfg.ModelDir != filepath.Join("/data", "meshes") {
		t.Errorf("ModelDir = %q", cfg.ModelDir)
	}
	if cfg.TextureDir != filepath.Join("/data", "textures") {
		t.Errorf("TextureDir = %q", cfg.TextureDir)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.RenderSize != 128 || cfg.Supersample != 2 || cfg.Workers != 3 {
		t.Errorf("render settings = %+v", cfg)
	}

	opts := cfg.LoadOptions()
	if opts.FlipV || !opts.AllowNegative {
		t.Errorf("LoadOptions = %+v, want FlipV=false AllowNegative=true", opts)
	}
	// explicit zero angles are kept
	if cam := cfg.Camera(); cam.Yaw != 0 || cam.Pitch != 0 || cam.FOV != camera.DefaultFOV {
		t.Errorf("Camera = %+v", cam)
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{DataDir: "/srv", NoFlipV: true, Size: 64})

	if cfg.ModelDir != filepath.Join("/srv", "models") {
		t.Errorf("ModelDir = %q", cfg.ModelDir)
	}
	if cfg.RenderSize != 64 || cfg.Workers <= 0 {
		t.Errorf("settings = %+v", cfg)
	}
	if opts := cfg.LoadOptions(); opts.FlipV || !opts.AllowNegative {
		t.Errorf("LoadOptions = %+v", opts)
	}
	if cam := cfg.Camera(); cam.Yaw != camera.DefaultYaw || cam.Pitch != camera.DefaultPitch {
		t.Errorf("Camera = %+v, want defaults", cam)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, `{"render_size": "big"}`)); err == nil {
		t.Error("expected parse error")
	}
}
