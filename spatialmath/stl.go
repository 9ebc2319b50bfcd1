package spatialmath

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Binary STL is an 80 byte header and a uint32 facet count, followed by 50
// byte facet records of four float32 triples and a two byte attribute field.
const (
	stlBinaryHeaderSize = 84
	stlBinaryFacetSize  = 50
)

// NewMeshFromSTLBytes parses STL data in either the ASCII or the binary
// encoding. Facet normals stored in the file are ignored and recomputed from
// the winding order of the vertices.
func NewMeshFromSTLBytes(data []byte, label string) (*Mesh, error) {
	if isBinarySTL(data) {
		return newMeshFromBinarySTL(data, label)
	}
	return newMeshFromASCIISTL(data, label)
}

// isBinarySTL reports whether the data carries the fixed-size binary layout.
// A leading "solid" keyword alone is not trusted because some exporters write
// it into binary headers as well.
func isBinarySTL(data []byte) bool {
	if len(data) < stlBinaryHeaderSize {
		return false
	}
	count := binary.LittleEndian.Uint32(data[80:stlBinaryHeaderSize])
	return len(data) == stlBinaryHeaderSize+stlBinaryFacetSize*int(count)
}

func newMeshFromBinarySTL(data []byte, label string) (*Mesh, error) {
	count := int(binary.LittleEndian.Uint32(data[80:stlBinaryHeaderSize]))
	body := data[stlBinaryHeaderSize:]
	triangles := make([]*Triangle, 0, count)
	for i := 0; i < count; i++ {
		facet := body[stlBinaryFacetSize*i : stlBinaryFacetSize*(i+1)]
		var pts [3]r3.Vector
		for j := range pts {
			// Skip the 12 byte facet normal at the front of the record.
			off := 12 * (j + 1)
			pts[j] = r3.Vector{
				X: float64(math.Float32frombits(binary.LittleEndian.Uint32(facet[off:]))),
				Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(facet[off+4:]))),
				Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(facet[off+8:]))),
			}
		}
		triangles = append(triangles, NewTriangle(pts[0], pts[1], pts[2]))
	}
	return NewMesh(label, triangles), nil
}

func newMeshFromASCIISTL(data []byte, label string) (*Mesh, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return nil, newMalformedMeshFileError("STL", "expected a binary layout or a leading solid keyword")
	}
	var triangles []*Triangle
	var pts []r3.Vector
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "vertex" {
			continue
		}
		if len(fields) != 4 {
			return nil, newMalformedMeshFileError("STL", "vertex line must have exactly three coordinates")
		}
		var pt r3.Vector
		for i, coord := range []*float64{&pt.X, &pt.Y, &pt.Z} {
			val, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, errors.Errorf("invalid STL vertex coordinate %s: %s", fields[i+1], err)
			}
			*coord = val
		}
		pts = append(pts, pt)
		if len(pts) == 3 {
			triangles = append(triangles, NewTriangle(pts[0], pts[1], pts[2]))
			pts = pts[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan STL data")
	}
	if len(pts) != 0 {
		return nil, newMalformedMeshFileError("STL", "facet with fewer than three vertices")
	}
	return NewMesh(label, triangles), nil
}
