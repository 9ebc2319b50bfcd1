package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// simplexSecondMoment is the integral of x*xT over the canonical tetrahedron
// spanned by the origin and the three unit basis points.
var simplexSecondMoment = mat.NewDense(3, 3, []float64{
	1. / 60, 1. / 120, 1. / 120,
	1. / 120, 1. / 60, 1. / 120,
	1. / 120, 1. / 120, 1. / 60,
})

// MassProperties are the inertial properties of a rigid body of uniform
// density bounded by a closed triangle mesh.
type MassProperties struct {
	// Volume is the volume enclosed by the mesh surface.
	Volume float64
	// Mass is the total mass of the body at the requested density.
	Mass float64
	// CenterOfMass is the centroid of the enclosed solid, in the mesh frame.
	CenterOfMass r3.Vector
	// Inertia is the rotational inertia tensor taken about the center of
	// mass, expressed in the mesh frame.
	Inertia *mat.SymDense
}

// meshIntegrals are the volume integrals of 1, x, and x*xT over the solid
// enclosed by a mesh.
type meshIntegrals struct {
	volume       float64
	firstMoment  r3.Vector
	secondMoment *mat.Dense
}

// computeMeshIntegrals evaluates the volume integrals of a closed mesh by
// summing the signed contributions of the tetrahedra formed by each triangle
// and the origin. Faces wound towards the origin subtract, so concavities and
// interior cavities cancel correctly.
func computeMeshIntegrals(triangles []*Triangle) meshIntegrals {
	var volume float64
	var firstMoment r3.Vector
	secondMoment := mat.NewDense(3, 3, nil)
	for _, tri := range triangles {
		// det is six times the signed volume of the tetrahedron {0, p0, p1, p2}.
		det := tri.p0.Dot(tri.p1.Cross(tri.p2))
		volume += det / 6
		firstMoment = firstMoment.Add(tri.p0.Add(tri.p1).Add(tri.p2).Mul(det / 24))

		// Map the canonical tetrahedron onto this one and transform its
		// second moment along with it.
		basis := mat.NewDense(3, 3, []float64{
			tri.p0.X, tri.p1.X, tri.p2.X,
			tri.p0.Y, tri.p1.Y, tri.p2.Y,
			tri.p0.Z, tri.p1.Z, tri.p2.Z,
		})
		var cov mat.Dense
		cov.Mul(basis, simplexSecondMoment)
		cov.Mul(&cov, basis.T())
		cov.Scale(det, &cov)
		secondMoment.Add(secondMoment, &cov)
	}
	if volume < 0 {
		// The winding faces uniformly inward; every integral carries the
		// opposite sign but is otherwise intact.
		volume = -volume
		firstMoment = firstMoment.Mul(-1)
		secondMoment.Scale(-1, secondMoment)
	}
	return meshIntegrals{
		volume:       volume,
		firstMoment:  firstMoment,
		secondMoment: secondMoment,
	}
}

func (m *Mesh) geometricIntegrals() meshIntegrals {
	m.integrateOnce.Do(func() {
		m.integrals = computeMeshIntegrals(m.triangles)
	})
	return m.integrals
}

// Volume returns the volume enclosed by the mesh surface. The result does not
// depend on the winding orientation of the triangles, but the mesh must be
// closed for it to be meaningful.
func (m *Mesh) Volume() float64 {
	return m.geometricIntegrals().volume
}

// CenterOfMass returns the centroid of the solid enclosed by the mesh,
// assuming uniform density. An error is returned if the mesh encloses no
// volume.
func (m *Mesh) CenterOfMass() (r3.Vector, error) {
	ints := m.geometricIntegrals()
	if ints.volume == 0 {
		return r3.Vector{}, newZeroVolumeMeshError(m.label)
	}
	return ints.firstMoment.Mul(1 / ints.volume), nil
}

// MassProperties computes the mass, center of mass, and inertia tensor of the
// solid enclosed by the mesh at the given uniform density.
func (m *Mesh) MassProperties(density float64) (*MassProperties, error) {
	if density <= 0 || math.IsInf(density, 1) || math.IsNaN(density) {
		return nil, newInvalidDensityError(density)
	}
	ints := m.geometricIntegrals()
	if ints.volume == 0 {
		return nil, newZeroVolumeMeshError(m.label)
	}
	mass := density * ints.volume
	com := ints.firstMoment.Mul(1 / ints.volume)

	var s mat.Dense
	s.Scale(density, ints.secondMoment)
	trace := s.At(0, 0) + s.At(1, 1) + s.At(2, 2)
	// The second moment is symmetric up to floating point error, so average
	// the mirrored entries.
	sxy := (s.At(0, 1) + s.At(1, 0)) / 2
	sxz := (s.At(0, 2) + s.At(2, 0)) / 2
	syz := (s.At(1, 2) + s.At(2, 1)) / 2

	// Inertia about the origin is tr(S)*1 - S. The parallel axis theorem then
	// moves it to the center of mass.
	ixx := trace - s.At(0, 0) - mass*(com.Norm2()-com.X*com.X)
	iyy := trace - s.At(1, 1) - mass*(com.Norm2()-com.Y*com.Y)
	izz := trace - s.At(2, 2) - mass*(com.Norm2()-com.Z*com.Z)
	ixy := -sxy + mass*com.X*com.Y
	ixz := -sxz + mass*com.X*com.Z
	iyz := -syz + mass*com.Y*com.Z

	return &MassProperties{
		Volume:       ints.volume,
		Mass:         mass,
		CenterOfMass: com,
		Inertia: mat.NewSymDense(3, []float64{
			ixx, ixy, ixz,
			ixy, iyy, iyz,
			ixz, iyz, izz,
		}),
	}, nil
}
