package estimation

import (
	"math"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

const (
	// DefaultTargetMassKg is the measured mass of the assembled Shadow Hand.
	DefaultTargetMassKg = 4.2
	// DefaultRedistributedFraction is the portion of the distinguished
	// link's proportional mass handed to the remaining links.
	DefaultRedistributedFraction = 0.5
	// DefaultRepeatedCopies is how many instances of each repeated link the
	// assembled model contains, one per finger.
	DefaultRepeatedCopies = 4
)

// A Config holds the tunable parameters of an estimation run.
type Config struct {
	// TargetMassKg is the total mass of the assembled model.
	TargetMassKg float64 `json:"target_mass_kg"`
	// RedistributedFraction is the portion of the distinguished link's mass
	// moved onto the other links, in [0, 1).
	RedistributedFraction float64 `json:"redistributed_fraction"`
	// RepeatedCopies is how many copies of each repeated link the assembled
	// model contains.
	RepeatedCopies int `json:"repeated_copies"`
	// RoleOverrides replaces the classified role of the named links.
	RoleOverrides map[string]Role `json:"role_overrides,omitempty"`
}

// DefaultConfig returns the configuration the reference Shadow Hand estimate
// was produced with.
func DefaultConfig() *Config {
	return &Config{
		TargetMassKg:          DefaultTargetMassKg,
		RedistributedFraction: DefaultRedistributedFraction,
		RepeatedCopies:        DefaultRepeatedCopies,
	}
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if math.IsNaN(conf.TargetMassKg) || math.IsInf(conf.TargetMassKg, 0) || conf.TargetMassKg <= 0 {
		return utils.NewConfigValidationError(path, newNonPositiveMassError(conf.TargetMassKg))
	}
	if math.IsNaN(conf.RedistributedFraction) || conf.RedistributedFraction < 0 || conf.RedistributedFraction >= 1 {
		return utils.NewConfigValidationError(path, newInvalidFractionError(conf.RedistributedFraction))
	}
	if conf.RepeatedCopies < 1 {
		return utils.NewConfigValidationError(path, errors.Errorf("repeated link copy count must be at least 1, got %d", conf.RepeatedCopies))
	}
	for name, role := range conf.RoleOverrides {
		if !role.valid() {
			return utils.NewConfigValidationError(path, newUnknownRoleError(role, name))
		}
	}
	return nil
}
