package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry describes one rendered model in manifest.json.
type ManifestEntry struct {
	Name      string `json:"name"`
	Model     string `json:"model_file"`
	Image     string `json:"image"`
	Vertices  int    `json:"vertices"`
	Indices   int    `json:"indices"`
	Triangles int    `json:"triangles"`
	Skipped   int    `json:"skipped,omitempty"`
}

// WriteManifest writes an entry for every successful result to path.
// Model paths are stored relative to modelDir when possible.
func WriteManifest(path, modelDir string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		model := r.Model
		if rel, err := filepath.Rel(modelDir, r.Model); err == nil {
			model = filepath.ToSlash(rel)
		}
		entries = append(entries, ManifestEntry{
			Name:      r.Name,
			Model:     model,
			Image:     r.Image,
			Vertices:  r.Vertices,
			Indices:   r.Indices,
			Triangles: r.Indices / 3,
			Skipped:   r.Skipped,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
