package spatialmath

import (
	"bytes"

	"github.com/chenzhekl/goply"
	"github.com/golang/geo/r3"
)

// NewMeshFromPLYBytes parses PLY data in either the ASCII or the binary
// encoding. Faces with more than three vertices are fan-triangulated.
func NewMeshFromPLYBytes(data []byte, label string) (mesh *Mesh, err error) {
	// The parser panics on malformed input rather than returning an error.
	defer func() {
		if r := recover(); r != nil {
			mesh = nil
			err = newMalformedMeshFileError("PLY", "cannot parse data")
		}
	}()

	ply := goply.New(bytes.NewReader(data))
	vertices := ply.Elements("vertex")
	points := make([]r3.Vector, 0, len(vertices))
	for _, vertex := range vertices {
		var pt r3.Vector
		for _, coord := range []struct {
			name string
			dst  *float64
		}{{"x", &pt.X}, {"y", &pt.Y}, {"z", &pt.Z}} {
			val, ok := plyScalar(vertex[coord.name])
			if !ok {
				return nil, newMalformedMeshFileError("PLY", "vertex has no numeric "+coord.name+" property")
			}
			*coord.dst = val
		}
		points = append(points, pt)
	}

	faces := ply.Elements("face")
	triangles := make([]*Triangle, 0, len(faces))
	for _, face := range faces {
		raw, ok := face["vertex_indices"]
		if !ok {
			raw, ok = face["vertex_index"]
		}
		if !ok {
			return nil, newMalformedMeshFileError("PLY", "face has no vertex index list")
		}
		list, ok := raw.([]interface{})
		if !ok {
			return nil, newMalformedMeshFileError("PLY", "face vertex indices are not a list")
		}
		idxs := make([]int, 0, len(list))
		for _, entry := range list {
			val, ok := plyScalar(entry)
			if !ok {
				return nil, newMalformedMeshFileError("PLY", "face vertex index is not numeric")
			}
			idx := int(val)
			if idx < 0 || idx >= len(points) {
				return nil, newMalformedMeshFileError("PLY", "face vertex index out of range")
			}
			idxs = append(idxs, idx)
		}
		if len(idxs) < 3 {
			return nil, newMalformedMeshFileError("PLY", "face has fewer than three vertices")
		}
		for i := 1; i+1 < len(idxs); i++ {
			triangles = append(triangles, NewTriangle(points[idxs[0]], points[idxs[i]], points[idxs[i+1]]))
		}
	}
	return NewMesh(label, triangles), nil
}

// plyScalar widens any scalar type the PLY format declares to a float64.
func plyScalar(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int8:
		return float64(v), true
	case uint8:
		return float64(v), true
	case int16:
		return float64(v), true
	case uint16:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
