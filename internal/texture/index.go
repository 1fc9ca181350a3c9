package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// extPriority ranks image extensions; lower wins when two files share a stem.
// Formats with alpha come first.
var extPriority = map[string]int{
	".png":  0,
	".tga":  1,
	".bmp":  2,
	".jpg":  3,
	".jpeg": 3,
}

// Index maps lowercase file stems to image paths.
type Index struct {
	entries map[string]string
}

// BuildIndex walks dir recursively and indexes every supported image.
// A missing or unreadable dir yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		prio, ok := extPriority[ext]
		if !ok {
			return nil
		}
		stem := stemOf(path)
		existing, exists := idx.entries[stem]
		if !exists || prio < extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the image path for a texture or model name, matched by
// lowercase stem ("models\\Crate.obj" → "crate").
func (idx *Index) ResolvePath(name string) (string, bool) {
	path, ok := idx.entries[stemOf(name)]
	return path, ok
}

func (idx *Index) Len() int {
	return len(idx.entries)
}

func stemOf(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
