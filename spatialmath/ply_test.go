package spatialmath

import (
	"strconv"
	"strings"
	"testing"

	"go.viam.com/test"
)

const plyTetraHeader = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face %FACES%
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
0 0 1
`

func plyTetra(faces ...string) []byte {
	header := strings.ReplaceAll(plyTetraHeader, "%FACES%", strconv.Itoa(len(faces)))
	return []byte(header + strings.Join(faces, "\n") + "\n")
}

func TestPLYTriangleFaces(t *testing.T) {
	mesh, err := NewMeshFromPLYBytes(plyTetra("3 0 2 1", "3 0 1 3", "3 0 3 2", "3 1 2 3"), "tetra")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mesh.Label(), test.ShouldEqual, "tetra")
	test.That(t, len(mesh.Triangles()), test.ShouldEqual, 4)
	test.That(t, mesh.Volume(), test.ShouldAlmostEqual, 1./6.)
}

func TestPLYIndexOutOfRange(t *testing.T) {
	_, err := NewMeshFromPLYBytes(plyTetra("3 0 1 9"), "bad")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
}

func TestPLYFaceTooShort(t *testing.T) {
	_, err := NewMeshFromPLYBytes(plyTetra("2 0 1"), "bad")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "fewer than three vertices")
}

func TestPLYVertexIndexPropertyName(t *testing.T) {
	// Some exporters name the face list vertex_index instead of
	// vertex_indices.
	data := `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar int vertex_index
end_header
0 0 0
1 0 0
0 1 0
3 0 1 2
`
	mesh, err := NewMeshFromPLYBytes([]byte(data), "sheet")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(mesh.Triangles()), test.ShouldEqual, 1)
}
