package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LightConfig holds precomputed lighting parameters. Directions are in view
// space: +Y up, +Z toward the viewer.
type LightConfig struct {
	LightDir  mgl32.Vec3
	RimDir    mgl32.Vec3
	HalfMain  mgl32.Vec3 // Blinn-Phong half-vector of LightDir and the view direction
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a key light from the upper right plus a rim light
// from behind.
func DefaultLightConfig() LightConfig {
	lightDir := mgl32.Vec3{0.45, 0.65, 0.6}.Normalize()
	rimDir := mgl32.Vec3{-0.5, 0.4, -0.75}.Normalize()
	viewDir := mgl32.Vec3{0, 0, 1}

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		HalfMain:  lightDir.Add(viewDir).Normalize(),
		Ambient:   0.35,
		Hemi:      0.30,
		Direct:    0.90,
		Rim:       0.35,
		SpecInt:   0.25,
		SpecPow:   16.0,
		Exposure:  1.0,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// Shade returns the combined lighting scalar for a unit face normal.
// Faces are lit double-sided.
func (lc *LightConfig) Shade(nx, ny, nz float64) float64 {
	dot := func(d mgl32.Vec3) float64 {
		return nx*float64(d[0]) + ny*float64(d[1]) + nz*float64(d[2])
	}

	ndlMain := math.Abs(dot(lc.LightDir))
	ndlRim := math.Abs(dot(lc.RimDir))
	hemi := (ny*0.5 + 0.5) * lc.Hemi

	ndh := math.Abs(dot(lc.HalfMain))
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemi + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Precomputed sRGB-to-linear lookup table.
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// shadeTexel lights an sRGB texel and returns the tone-mapped sRGB result.
func (lc *LightConfig) shadeTexel(c uint8, shade float64) uint8 {
	l := srgbToLinear[c] * shade * lc.Exposure
	return clamp255(math.Pow(ACESTonemap(l), lc.InvGamma) * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
