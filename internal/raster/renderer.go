package raster

import (
	"fmt"
	"image"

	"obj-mesh-renderer/internal/camera"
	"obj-mesh-renderer/internal/obj"
)

// RenderMesh uploads a mesh to a fresh device, fits it to a square target of
// size*supersample pixels and draws it with tex (nil for untextured).
func RenderMesh(mesh *obj.Mesh, tex *image.NRGBA, cam camera.Params, size, supersample int) (*image.NRGBA, error) {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample

	dev := NewDevice(renderSize, renderSize)
	vb, err := dev.CreateVertexBuffer(mesh.Vertices)
	if err != nil {
		return nil, fmt.Errorf("raster: %s: %w", mesh.Name, err)
	}
	defer vb.Release()
	ib, err := dev.CreateIndexBuffer(mesh.Indices)
	if err != nil {
		return nil, fmt.Errorf("raster: %s: %w", mesh.Name, err)
	}
	defer ib.Release()

	dev.SetTexture(tex)

	margin := 16 * supersample
	proj := camera.Fit(mesh.Vertices, cam, renderSize, margin)
	if err := dev.DrawIndexed(vb, ib, ib.Len(), proj); err != nil {
		return nil, fmt.Errorf("raster: %s: %w", mesh.Name, err)
	}

	return dev.Image(), nil
}
