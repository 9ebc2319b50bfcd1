package spatialmath

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// colladaDoc details the subset of a COLLADA document needed to recover
// triangle geometry.
type colladaDoc struct {
	XMLName    xml.Name          `xml:"COLLADA"`
	Asset      colladaAsset      `xml:"asset"`
	Geometries []colladaGeometry `xml:"library_geometries>geometry"`
}

// colladaAsset details the XML used in a COLLADA asset element.
type colladaAsset struct {
	Unit struct {
		Meter string `xml:"meter,attr"`
	} `xml:"unit"`
}

// colladaGeometry details the XML used in a COLLADA geometry element.
type colladaGeometry struct {
	ID   string      `xml:"id,attr"`
	Mesh colladaMesh `xml:"mesh"`
}

type colladaMesh struct {
	Sources   []colladaSource    `xml:"source"`
	Vertices  colladaVertices    `xml:"vertices"`
	Triangles []colladaTriangles `xml:"triangles"`
	Polylists []colladaPolylist  `xml:"polylist"`
}

type colladaSource struct {
	ID         string `xml:"id,attr"`
	FloatArray struct {
		Text string `xml:",chardata"`
	} `xml:"float_array"`
}

type colladaVertices struct {
	ID     string         `xml:"id,attr"`
	Inputs []colladaInput `xml:"input"`
}

type colladaInput struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   int    `xml:"offset,attr"`
}

type colladaTriangles struct {
	Inputs []colladaInput `xml:"input"`
	P      string         `xml:"p"`
}

type colladaPolylist struct {
	Inputs []colladaInput `xml:"input"`
	VCount string         `xml:"vcount"`
	P      string         `xml:"p"`
}

// NewMeshFromColladaBytes parses the geometry libraries of a COLLADA document
// into a single triangle mesh. All geometries are merged, while scene
// transforms, materials, and every other library are ignored. Polygons are
// fan-triangulated, and coordinates are scaled by the document unit so the
// result is in meters.
func NewMeshFromColladaBytes(data []byte, label string) (*Mesh, error) {
	doc := &colladaDoc{}
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse COLLADA data")
	}
	scale := 1.0
	if doc.Asset.Unit.Meter != "" {
		var err error
		scale, err = strconv.ParseFloat(doc.Asset.Unit.Meter, 64)
		if err != nil {
			return nil, errors.Errorf("invalid COLLADA unit %s: %s", doc.Asset.Unit.Meter, err)
		}
	}
	var triangles []*Triangle
	for _, geom := range doc.Geometries {
		tris, err := geom.triangulate(scale)
		if err != nil {
			return nil, err
		}
		triangles = append(triangles, tris...)
	}
	return NewMesh(label, triangles), nil
}

func (g *colladaGeometry) triangulate(scale float64) ([]*Triangle, error) {
	positions, err := g.positions(scale)
	if err != nil {
		return nil, err
	}
	var triangles []*Triangle
	for _, prim := range g.Mesh.Triangles {
		verts, err := vertexIndices(prim.Inputs, prim.P)
		if err != nil {
			return nil, err
		}
		if len(verts)%3 != 0 {
			return nil, newMalformedMeshFileError("COLLADA", "triangles index count is not a multiple of three")
		}
		for i := 0; i+2 < len(verts); i += 3 {
			tri, err := triangleFromIndices(positions, verts[i], verts[i+1], verts[i+2])
			if err != nil {
				return nil, err
			}
			triangles = append(triangles, tri)
		}
	}
	for _, prim := range g.Mesh.Polylists {
		verts, err := vertexIndices(prim.Inputs, prim.P)
		if err != nil {
			return nil, err
		}
		vcounts, err := spaceDelimitedInts(prim.VCount)
		if err != nil {
			return nil, err
		}
		pos := 0
		for _, vcount := range vcounts {
			if vcount < 3 || pos+vcount > len(verts) {
				return nil, newMalformedMeshFileError("COLLADA", "polylist vertex counts do not match its indices")
			}
			face := verts[pos : pos+vcount]
			for i := 1; i+1 < len(face); i++ {
				tri, err := triangleFromIndices(positions, face[0], face[i], face[i+1])
				if err != nil {
					return nil, err
				}
				triangles = append(triangles, tri)
			}
			pos += vcount
		}
		if pos != len(verts) {
			return nil, newMalformedMeshFileError("COLLADA", "polylist vertex counts do not match its indices")
		}
	}
	return triangles, nil
}

// positions resolves the POSITION input of the geometry's vertices element to
// its backing float array.
func (g *colladaGeometry) positions(scale float64) ([]r3.Vector, error) {
	var sourceID string
	for _, input := range g.Mesh.Vertices.Inputs {
		if input.Semantic == "POSITION" {
			sourceID = strings.TrimPrefix(input.Source, "#")
		}
	}
	if sourceID == "" {
		return nil, newMalformedMeshFileError("COLLADA", "geometry "+g.ID+" has no POSITION input")
	}
	for _, source := range g.Mesh.Sources {
		if source.ID != sourceID {
			continue
		}
		coords, err := spaceDelimitedFloats(source.FloatArray.Text)
		if err != nil {
			return nil, err
		}
		if len(coords)%3 != 0 {
			return nil, newMalformedMeshFileError("COLLADA", "position array length is not a multiple of three")
		}
		points := make([]r3.Vector, 0, len(coords)/3)
		for i := 0; i+2 < len(coords); i += 3 {
			points = append(points, r3.Vector{X: coords[i], Y: coords[i+1], Z: coords[i+2]}.Mul(scale))
		}
		return points, nil
	}
	return nil, newMalformedMeshFileError("COLLADA", "geometry "+g.ID+" is missing position source "+sourceID)
}

// vertexIndices extracts the VERTEX indices of a primitive's index array,
// which interleaves one index per input per corner.
func vertexIndices(inputs []colladaInput, p string) ([]int, error) {
	offset, stride := -1, 0
	for _, input := range inputs {
		if input.Offset+1 > stride {
			stride = input.Offset + 1
		}
		if input.Semantic == "VERTEX" {
			offset = input.Offset
		}
	}
	if offset < 0 {
		return nil, newMalformedMeshFileError("COLLADA", "primitive has no VERTEX input")
	}
	idxs, err := spaceDelimitedInts(p)
	if err != nil {
		return nil, err
	}
	if len(idxs)%stride != 0 {
		return nil, newMalformedMeshFileError("COLLADA", "primitive index count does not match its inputs")
	}
	verts := make([]int, 0, len(idxs)/stride)
	for i := offset; i < len(idxs); i += stride {
		verts = append(verts, idxs[i])
	}
	return verts, nil
}

func triangleFromIndices(positions []r3.Vector, i0, i1, i2 int) (*Triangle, error) {
	for _, idx := range []int{i0, i1, i2} {
		if idx < 0 || idx >= len(positions) {
			return nil, newMalformedMeshFileError("COLLADA", "vertex index out of range")
		}
	}
	return NewTriangle(positions[i0], positions[i1], positions[i2]), nil
}

// spaceDelimitedFloats converts a whitespace delimited string into a slice of floats.
func spaceDelimitedFloats(text string) ([]float64, error) {
	fields := strings.Fields(text)
	converted := make([]float64, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Errorf("invalid float value %s: %s", field, err)
		}
		converted = append(converted, value)
	}
	return converted, nil
}

// spaceDelimitedInts converts a whitespace delimited string into a slice of ints.
func spaceDelimitedInts(text string) ([]int, error) {
	fields := strings.Fields(text)
	converted := make([]int, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Errorf("invalid integer value %s: %s", field, err)
		}
		converted = append(converted, value)
	}
	return converted, nil
}
