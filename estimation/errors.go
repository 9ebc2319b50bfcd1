package estimation

import (
	"strings"

	"github.com/pkg/errors"
)

// newNoDistinguishedLinkError is returned when classification leaves the
// model without a link to redistribute mass from.
func newNoDistinguishedLinkError() error {
	return errors.Errorf("no link was classified as %s, expected exactly one", RoleDistinguished)
}

// newMultipleDistinguishedLinksError is returned when more than one link
// claims the distinguished role.
func newMultipleDistinguishedLinksError(names []string) error {
	return errors.Errorf("links %s were all classified as %s, expected exactly one",
		strings.Join(names, ", "), RoleDistinguished)
}

// newUnknownRoleError is returned for a role name outside the known set.
func newUnknownRoleError(role Role, link string) error {
	return errors.Errorf("unknown role %q for link %q (must be %q, %q, or %q)",
		role, link, RoleOrdinary, RoleRepeated, RoleDistinguished)
}

// newUnknownOverrideLinkError is returned when a role override names a link
// that no mesh provides.
func newUnknownOverrideLinkError(name string) error {
	return errors.Errorf("role override refers to unknown link %q", name)
}

// newNoMeshesFoundError is returned for a mesh directory with no files.
func newNoMeshesFoundError(dir string) error {
	return errors.Errorf("no mesh files found in %q", dir)
}

// newNonPositiveMassError is returned for a target mass outside (0, +Inf).
func newNonPositiveMassError(mass float64) error {
	return errors.Errorf("target mass must be positive and finite, got %g", mass)
}

// newInvalidFractionError is returned for a redistribution fraction outside
// [0, 1).
func newInvalidFractionError(fraction float64) error {
	return errors.Errorf("mass redistribution fraction must be in [0, 1), got %g", fraction)
}

// newNonPositiveVolumeError is returned when the model's links enclose no
// volume in total.
func newNonPositiveVolumeError(volume float64) error {
	return errors.Errorf("total mesh volume must be positive, got %g m^3", volume)
}

// newNoRedistributionTargetsError is returned when the distinguished link is
// the model's entire volume, leaving nothing to shift mass onto.
func newNoRedistributionTargetsError() error {
	return errors.New("the distinguished link encloses the entire model volume, leaving no links to redistribute mass onto")
}
