package spatialmath

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// NewMeshFromOBJBytes parses Wavefront OBJ data into a triangle mesh. Only
// vertex and face statements are honored; texture coordinates, normals,
// groups and material statements are skipped. Faces with more than three
// vertices are fan-triangulated.
func NewMeshFromOBJBytes(data []byte, label string) (*Mesh, error) {
	var points []r3.Vector
	var triangles []*Triangle
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, newMalformedMeshFileError("OBJ", "vertex line must have at least three coordinates")
			}
			var pt r3.Vector
			for i, coord := range []*float64{&pt.X, &pt.Y, &pt.Z} {
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, errors.Errorf("invalid OBJ vertex coordinate %s: %s", fields[i+1], err)
				}
				*coord = val
			}
			points = append(points, pt)
		case "f":
			if len(fields) < 4 {
				return nil, newMalformedMeshFileError("OBJ", "face line must reference at least three vertices")
			}
			idxs := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := resolveOBJIndex(ref, len(points))
				if err != nil {
					return nil, err
				}
				idxs = append(idxs, idx)
			}
			for i := 1; i+1 < len(idxs); i++ {
				triangles = append(triangles, NewTriangle(points[idxs[0]], points[idxs[i]], points[idxs[i+1]]))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan OBJ data")
	}
	return NewMesh(label, triangles), nil
}

// resolveOBJIndex converts a face vertex reference of the form v, v/vt, v//vn,
// or v/vt/vn into a zero-based index into the vertex list. Negative references
// count back from the most recently read vertex.
func resolveOBJIndex(ref string, numPoints int) (int, error) {
	field := ref
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	idx, err := strconv.Atoi(field)
	if err != nil {
		return 0, errors.Errorf("invalid OBJ face vertex reference %s: %s", ref, err)
	}
	switch {
	case idx > 0 && idx <= numPoints:
		return idx - 1, nil
	case idx < 0 && numPoints+idx >= 0:
		return numPoints + idx, nil
	}
	return 0, newMalformedMeshFileError("OBJ", "face vertex reference out of range")
}
