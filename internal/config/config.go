package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"obj-mesh-renderer/internal/camera"
	"obj-mesh-renderer/internal/obj"
)

// Config holds all configurable paths plus load and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	ModelDir   string `json:"model_dir"`
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Loader settings. Pointers so an absent key keeps the default (true).
	FlipV         *bool `json:"flip_v"`
	AllowNegative *bool `json:"allow_negative"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Yaw         float64 `json:"yaw"`
	Pitch       float64 `json:"pitch"`
	Perspective bool    `json:"perspective"`
	FOV         float64 `json:"fov"`

	camSet bool
}

// Load reads a JSON config file. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// yaw/pitch of 0 are meaningful when given explicitly
	var keys map[string]json.RawMessage
	if json.Unmarshal(data, &keys) == nil {
		_, hasYaw := keys["yaw"]
		_, hasPitch := keys["pitch"]
		cfg.camSet = hasYaw || hasPitch
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values mean "not given".
type Flags struct {
	DataDir    string
	ModelDir   string
	TextureDir string
	OutputDir  string
	Workers    int
	Size       int
	NoFlipV    bool
}

// Resolve applies flag overrides, resolves relative paths against BaseDir and
// fills defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.DataDir != "" {
		c.BaseDir = flags.DataDir
	}
	if flags.ModelDir != "" {
		c.ModelDir = flags.ModelDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.NoFlipV {
		f := false
		c.FlipV = &f
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	c.ModelDir = resolvePath(c.BaseDir, c.ModelDir, "models")
	c.TextureDir = resolvePath(c.BaseDir, c.TextureDir, "textures")
	c.OutputDir = resolvePath(c.BaseDir, c.OutputDir, "renders")

	if c.FlipV == nil {
		t := true
		c.FlipV = &t
	}
	if c.AllowNegative == nil {
		t := true
		c.AllowNegative = &t
	}

	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if !c.camSet && c.Yaw == 0 && c.Pitch == 0 {
		c.Yaw, c.Pitch = camera.DefaultYaw, camera.DefaultPitch
		c.camSet = true
	}
	if c.FOV <= 0 {
		c.FOV = camera.DefaultFOV
	}
}

// LoadOptions returns loader options. Call after Resolve.
func (c *Config) LoadOptions() obj.Options {
	opts := obj.DefaultOptions()
	if c.FlipV != nil {
		opts.FlipV = *c.FlipV
	}
	if c.AllowNegative != nil {
		opts.AllowNegative = *c.AllowNegative
	}
	return opts
}

// Camera returns the view parameters. Call after Resolve.
func (c *Config) Camera() camera.Params {
	return camera.Params{
		Yaw:         c.Yaw,
		Pitch:       c.Pitch,
		Perspective: c.Perspective,
		FOV:         c.FOV,
	}
}

func resolvePath(base, p, def string) string {
	switch {
	case p == "":
		return filepath.Join(base, def)
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(base, p)
	}
}
