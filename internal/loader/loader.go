// Package loader turns uploaded mesh files into models the viewer can display.
package loader

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Faultbox/dentaview/internal/config"
	"github.com/Faultbox/dentaview/internal/logger"
	"github.com/Faultbox/dentaview/internal/resource"
	"github.com/Faultbox/dentaview/internal/teeth"
	"github.com/Faultbox/dentaview/pkg/math"
	"github.com/Faultbox/dentaview/pkg/mesh"
)

// ErrNoValidFiles is returned when an upload holds neither grouped- nor single-mesh primaries.
var ErrNoValidFiles = errors.New("loader: upload at least one .obj or .stl file")

// DecodeError reports a primary or sidecar that could not be parsed.
type DecodeError struct {
	File string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("loader: decoding %s: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind is a model's source format.
type Kind int

const (
	GroupedMesh Kind = iota // OBJ, optional MTL sidecar
	SingleMesh              // STL
)

func (k Kind) String() string {
	switch k {
	case GroupedMesh:
		return "grouped"
	case SingleMesh:
		return "single"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalYAML encodes the kind by name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Model is one loaded primary file. Its handles are owned by the model and
// revoked by Loader.Release.
type Model struct {
	Kind        Kind
	Primary     resource.Handle
	Material    *resource.Handle
	DisplayName string // lowercased filename
	Key         string // original filename
	Jaw         teeth.Jaw

	Bounds    math.Box
	Triangles int
	Materials mesh.MaterialLib
}

// Handles returns every handle the model owns.
func (m Model) Handles() []resource.Handle {
	hs := []resource.Handle{m.Primary}
	if m.Material != nil {
		hs = append(hs, *m.Material)
	}
	return hs
}

// Batch is the prepared result of one upload.
type Batch struct {
	Models       []Model
	RestPosition float32 // upper-jaw rest height for grouped meshes
}

// Classifier assigns a jaw from a model's lowercased display name.
type Classifier func(displayName string) teeth.Jaw

// FilenameClassifier treats any name containing "upper_jaw" as the upper jaw.
func FilenameClassifier(displayName string) teeth.Jaw {
	if strings.Contains(displayName, "upper_jaw") {
		return teeth.Upper
	}
	return teeth.Lower
}

// Loader prepares uploads against a resource registry.
type Loader struct {
	reg      *resource.Registry
	rest     config.RestPositions
	classify Classifier
}

// Option configures a Loader.
type Option func(*Loader)

// WithClassifier replaces the jaw classifier.
func WithClassifier(c Classifier) Option {
	return func(l *Loader) { l.classify = c }
}

// New creates a loader issuing handles from reg.
func New(reg *resource.Registry, rest config.RestPositions, opts ...Option) *Loader {
	l := &Loader{
		reg:      reg,
		rest:     rest,
		classify: FilenameClassifier,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Registry returns the registry backing model handles.
func (l *Loader) Registry() *resource.Registry {
	return l.reg
}

// SingleMeshRest returns the rest height for single-mesh upper jaws.
func (l *Loader) SingleMeshRest() float32 {
	return l.rest.SingleMesh
}

// Prepare creates handles for every primary and matched sidecar, decodes
// them, and classifies each model. Grouped models precede single models.
// On error every handle created for the batch is revoked.
func (l *Loader) Prepare(files []File) (*Batch, error) {
	parts := Partition(files)
	if !parts.Recognized() {
		return nil, ErrNoValidFiles
	}

	var models []Model
	fail := func(err error) (*Batch, error) {
		if rerr := l.Release(models); rerr != nil {
			logger.Named("loader").Warn("releasing failed batch", zap.Error(rerr))
		}
		return nil, err
	}

	for _, f := range parts.Grouped {
		m := l.newModel(GroupedMesh, f)
		if sc, ok := MatchSidecar(f, parts.Sidecars); ok {
			h := l.reg.Create(sc.Name, sc.Data)
			m.Material = &h
		}
		models = append(models, m)
		if err := l.decode(&models[len(models)-1]); err != nil {
			return fail(err)
		}
	}
	for _, f := range parts.Single {
		models = append(models, l.newModel(SingleMesh, f))
		if err := l.decode(&models[len(models)-1]); err != nil {
			return fail(err)
		}
	}

	logger.Named("loader").Debug("prepared upload",
		zap.Int("grouped", len(parts.Grouped)),
		zap.Int("single", len(parts.Single)),
		zap.Int("sidecars", len(parts.Sidecars)))

	return &Batch{
		Models:       models,
		RestPosition: RestPosition(models, l.rest),
	}, nil
}

func (l *Loader) newModel(kind Kind, f File) Model {
	display := cases.Lower(language.Und).String(f.Name)
	return Model{
		Kind:        kind,
		Primary:     l.reg.Create(f.Name, f.Data),
		DisplayName: display,
		Key:         f.Name,
		Jaw:         l.classify(display),
	}
}

func (l *Loader) decode(m *Model) error {
	r, err := l.reg.Open(m.Primary)
	if err != nil {
		return &DecodeError{File: m.Key, Err: err}
	}

	var msh *mesh.Mesh
	switch m.Kind {
	case GroupedMesh:
		msh, err = mesh.ParseOBJ(r)
	case SingleMesh:
		msh, err = mesh.ParseSTL(r)
	}
	if err != nil {
		return &DecodeError{File: m.Key, Err: err}
	}
	m.Bounds = msh.Bounds()
	m.Triangles = msh.TriangleCount()

	if m.Material != nil {
		mr, err := l.reg.Open(*m.Material)
		if err != nil {
			return &DecodeError{File: m.Material.Name, Err: err}
		}
		lib, err := mesh.ParseMTL(mr)
		if err != nil {
			return &DecodeError{File: m.Material.Name, Err: err}
		}
		m.Materials = lib
	}
	return nil
}

// Release revokes every handle owned by models.
func (l *Loader) Release(models []Model) error {
	var hs []resource.Handle
	for _, m := range models {
		hs = append(hs, m.Handles()...)
	}
	return l.reg.RevokeAll(hs...)
}

// RestPosition picks the grouped-mesh upper-jaw rest height: GroupedUpper when
// some grouped model is an upper jaw, Default otherwise.
func RestPosition(models []Model, rest config.RestPositions) float32 {
	for _, m := range models {
		if m.Kind == GroupedMesh && m.Jaw == teeth.Upper {
			return rest.GroupedUpper
		}
	}
	return rest.Default
}
