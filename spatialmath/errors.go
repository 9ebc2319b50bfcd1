package spatialmath

import (
	"github.com/pkg/errors"
)

// newZeroVolumeMeshError returns an error for when a mesh encloses no volume
// and mass properties cannot be derived from it.
func newZeroVolumeMeshError(label string) error {
	return errors.Errorf("mesh %q encloses no volume", label)
}

// newInvalidDensityError returns an error for when a non-physical density is
// requested.
func newInvalidDensityError(density float64) error {
	return errors.Errorf("density must be positive and finite, got %f", density)
}

// newMalformedMeshFileError returns an error for a mesh file that does not
// conform to its format.
func newMalformedMeshFileError(format, reason string) error {
	return errors.Errorf("malformed %s data: %s", format, reason)
}
