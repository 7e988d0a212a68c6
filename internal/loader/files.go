package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Recognized upload extensions.
const (
	ExtGrouped = ".obj"
	ExtSidecar = ".mtl"
	ExtSingle  = ".stl"
)

// File is one uploaded file.
type File struct {
	Name string
	Data []byte
}

// ReadFiles reads paths from disk into Files named by their base name.
func ReadFiles(paths ...string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

// Parts is an upload split by role.
type Parts struct {
	Grouped  []File // grouped-mesh primaries
	Sidecars []File // material sidecars
	Single   []File // single-mesh primaries
}

// Recognized reports whether the parts hold at least one primary.
func (p Parts) Recognized() bool {
	return len(p.Grouped) > 0 || len(p.Single) > 0
}

// Partition splits files by extension, ignoring case. Unrecognized files are dropped.
func Partition(files []File) Parts {
	var p Parts
	for _, f := range files {
		switch {
		case hasExt(f.Name, ExtGrouped):
			p.Grouped = append(p.Grouped, f)
		case hasExt(f.Name, ExtSidecar):
			p.Sidecars = append(p.Sidecars, f)
		case hasExt(f.Name, ExtSingle):
			p.Single = append(p.Single, f)
		}
	}
	return p
}

// MatchSidecar returns the first sidecar whose name starts with the grouped
// primary's base name.
func MatchSidecar(primary File, sidecars []File) (File, bool) {
	base := baseName(primary.Name)
	for _, s := range sidecars {
		if strings.HasPrefix(s.Name, base) {
			return s, true
		}
	}
	return File{}, false
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
