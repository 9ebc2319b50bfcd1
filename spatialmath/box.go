package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Ordered list of box vertices.
var boxVertices = [8]r3.Vector{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
}

// The sets of indices of the box vertices that tile the box exterior.
var boxTriangles = [12][3]int{
	{0, 1, 3},
	{0, 2, 3},
	{0, 1, 5},
	{0, 4, 5},
	{0, 2, 6},
	{0, 4, 6},
	{7, 1, 3},
	{7, 2, 3},
	{7, 1, 5},
	{7, 4, 5},
	{7, 2, 6},
	{7, 4, 6},
}

// NewBoxMesh creates the closed triangle mesh of a rectangular box with the
// given full dimensions, centered at the given point. Negative dimensions are
// not allowed; zero dimensions yield a degenerate mesh enclosing no volume.
func NewBoxMesh(label string, center, dims r3.Vector) (*Mesh, error) {
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return nil, errors.Errorf("box dimensions must be non-negative, got %f %f %f", dims.X, dims.Y, dims.Z)
	}
	halfSize := dims.Mul(0.5)
	verts := make([]r3.Vector, len(boxVertices))
	for i, v := range boxVertices {
		verts[i] = r3.Vector{X: v.X * halfSize.X, Y: v.Y * halfSize.Y, Z: v.Z * halfSize.Z}.Add(center)
	}
	triangles := make([]*Triangle, 0, len(boxTriangles))
	for _, tri := range boxTriangles {
		p0, p1, p2 := verts[tri[0]], verts[tri[1]], verts[tri[2]]
		// Wind each face outward so the surface integrates to a positive
		// volume. The box is convex, so outward is away from its center.
		if PlaneNormal(p0, p1, p2).Dot(p0.Add(p1).Add(p2).Mul(1./3.).Sub(center)) < 0 {
			p1, p2 = p2, p1
		}
		triangles = append(triangles, NewTriangle(p0, p1, p2))
	}
	return NewMesh(label, triangles), nil
}
