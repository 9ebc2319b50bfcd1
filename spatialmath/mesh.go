// Package spatialmath implements triangle meshes and the rigid-body mass
// properties derived from them.
package spatialmath

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Mesh is a triangulated surface loaded from a 3D model file. A Mesh is
// immutable once constructed; geometric integrals over the enclosed solid are
// computed on first use and cached.
type Mesh struct {
	label     string
	triangles []*Triangle

	integrateOnce sync.Once
	integrals     meshIntegrals
}

// NewMesh creates a mesh from a label and a set of triangles.
func NewMesh(label string, triangles []*Triangle) *Mesh {
	return &Mesh{
		label:     label,
		triangles: triangles,
	}
}

// NewMeshFromFile loads a triangle mesh from the file at the given path,
// dispatching on the file extension. Only geometry is read; material, texture
// and scene information is ignored. The mesh label is the file's base name
// without its extension.
func NewMeshFromFile(path string) (*Mesh, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read mesh file")
	}
	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return NewMeshFromSTLBytes(data, label)
	case ".ply":
		return NewMeshFromPLYBytes(data, label)
	case ".obj":
		return NewMeshFromOBJBytes(data, label)
	case ".dae":
		return NewMeshFromColladaBytes(data, label)
	default:
		return nil, errors.Errorf("unsupported mesh file format %q (must be .stl, .ply, .obj, or .dae)", ext)
	}
}

// Label returns the name of the mesh.
func (m *Mesh) Label() string {
	return m.label
}

// Triangles returns the triangles that compose the mesh surface.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}
