// Package estimation turns the visual meshes of a robot model into per-link
// mass and inertia estimates consistent with a measured total mass.
//
// Links are classified into roles first. The distinguished link (the forearm
// of the Shadow Hand) keeps only part of the mass its volume would imply
// under a uniform density; the remainder is spread over the other links in
// proportion to their volume. Repeated links, such as fingers, count once
// per copy when volumes and masses are totalled but are estimated once.
package estimation

import (
	"math"

	"github.com/edaniels/golog"

	"github.com/AndrejOrsula/shadow-hand-ign/spatialmath"
)

// VolumeTotals aggregates the enclosed volumes of a model's links.
type VolumeTotals struct {
	// Total is the volume of the assembled model, counting repeated links
	// once per copy.
	Total float64
	// Distinguished is the raw volume of the distinguished link.
	Distinguished float64
}

// Densities holds the solved material densities in kg/m^3.
type Densities struct {
	// Average is the density of a uniform model with the target mass.
	Average float64
	// Distinguished is the density assigned to the distinguished link.
	Distinguished float64
	// Ordinary is the density assigned to every other link.
	Ordinary float64
}

// A LinkEstimate is the finished estimate for one link.
type LinkEstimate struct {
	Name       string
	Role       Role
	Density    float64
	Properties *spatialmath.MassProperties
}

// A Result is the outcome of an estimation run.
type Result struct {
	Links []*LinkEstimate
	// TotalVolume counts repeated links once per copy.
	TotalVolume float64
	// AverageDensity is the uniform density matching the target mass.
	AverageDensity float64
	// RecomputedMass sums the estimated link masses, counting repeated
	// links once per copy. It should land on the target mass.
	RecomputedMass float64
}

// AggregateVolumes measures every link and accumulates the model's volume
// totals, counting each repeated link copies times.
func AggregateVolumes(links []*LinkMesh, roles map[string]Role, copies int, logger golog.Logger) VolumeTotals {
	var totals VolumeTotals
	for _, link := range links {
		volume := link.Mesh.Volume()
		if roles[link.Name] == RoleRepeated {
			logger.Infof("volume of %s: %g m^3 (counted %d times)", link.Name, volume, copies)
			totals.Total += float64(copies) * volume
			continue
		}
		logger.Infof("volume of %s: %g m^3", link.Name, volume)
		totals.Total += volume
		if roles[link.Name] == RoleDistinguished {
			totals.Distinguished = volume
		}
	}
	return totals
}

// SolveDensities derives the model's material densities from the target mass
// and the volume totals. The distinguished link keeps 1-fraction of its
// uniform-density mass; the remainder spreads over the other links in
// proportion to their volume, so the weighted mass sum stays on target.
func SolveDensities(targetMass float64, totals VolumeTotals, fraction float64) (Densities, error) {
	if math.IsNaN(targetMass) || math.IsInf(targetMass, 0) || targetMass <= 0 {
		return Densities{}, newNonPositiveMassError(targetMass)
	}
	if math.IsNaN(fraction) || fraction < 0 || fraction >= 1 {
		return Densities{}, newInvalidFractionError(fraction)
	}
	if totals.Total <= 0 {
		return Densities{}, newNonPositiveVolumeError(totals.Total)
	}
	average := targetMass / totals.Total
	proportion := totals.Distinguished / totals.Total
	remainder := 1 - proportion
	if remainder <= 0 {
		return Densities{}, newNoRedistributionTargetsError()
	}
	return Densities{
		Average:       average,
		Distinguished: (1 - fraction) * average,
		Ordinary:      average + (fraction/remainder-fraction)*average,
	}, nil
}

// Estimate runs the pipeline over the loaded links: role assignment, volume
// aggregation, density solving, and per-link mass properties. A nil config
// uses the defaults.
func Estimate(links []*LinkMesh, conf *Config, logger golog.Logger) (*Result, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	if err := conf.Validate("config"); err != nil {
		return nil, err
	}
	roles, err := AssignRoles(links, nil, conf.RoleOverrides)
	if err != nil {
		return nil, err
	}
	totals := AggregateVolumes(links, roles, conf.RepeatedCopies, logger)
	densities, err := SolveDensities(conf.TargetMassKg, totals, conf.RedistributedFraction)
	if err != nil {
		return nil, err
	}
	logger.Infof("average density: %g kg/m^3", densities.Average)

	result := &Result{
		Links:          make([]*LinkEstimate, 0, len(links)),
		TotalVolume:    totals.Total,
		AverageDensity: densities.Average,
	}
	for _, link := range links {
		role := roles[link.Name]
		density := densities.Ordinary
		if role == RoleDistinguished {
			density = densities.Distinguished
		}
		logger.Infof("estimating inertial properties of %s", link.Name)
		props, err := link.Mesh.MassProperties(density)
		if err != nil {
			return nil, err
		}
		weight := 1.0
		if role == RoleRepeated {
			weight = float64(conf.RepeatedCopies)
		}
		result.RecomputedMass += weight * props.Mass
		result.Links = append(result.Links, &LinkEstimate{
			Name:       link.Name,
			Role:       role,
			Density:    density,
			Properties: props,
		})
	}
	logger.Infof("recomputed total mass: %g kg", result.RecomputedMass)
	return result, nil
}
