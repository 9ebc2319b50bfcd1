// Package main estimates per-link inertial properties of the Shadow Hand
// model from its visual meshes and writes them out as an SDF file.
package main

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/AndrejOrsula/shadow-hand-ign/estimation"
	"github.com/AndrejOrsula/shadow-hand-ign/sdf"
	"github.com/AndrejOrsula/shadow-hand-ign/utils"
)

func main() {
	goutils.ContextualMain(mainWithArgs, logger)
}

var (
	defaultMeshDir = utils.ResolveFile(filepath.Join("shadow_hand", "meshes", "visual"))
	logger         = golog.NewDevelopmentLogger("estimate_inertials")
)

// Arguments for the command. The positional argument is the total mass of
// the assembled model in kg.
type Arguments struct {
	TargetMass   string `flag:"0"`
	MeshDir      string `flag:"meshes,usage=directory of visual mesh files (one link per file)"`
	OutputPath   string `flag:"out,default=shadow_hand_inertial_out.sdf,usage=path of the written SDF file"`
	ModelName    string `flag:"model,default=shadow_hand,usage=name of the written SDF model"`
	RolesFile    string `flag:"roles,usage=JSON file overriding link roles"`
	Redistribute string `flag:"redistribute,default=0.5,usage=fraction of the forearm's proportional mass moved onto the other links"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := goutils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	conf := estimation.DefaultConfig()
	if argsParsed.TargetMass != "" {
		mass, err := strconv.ParseFloat(argsParsed.TargetMass, 64)
		if err != nil {
			return errors.Errorf("invalid target mass %q: %s", argsParsed.TargetMass, err)
		}
		conf.TargetMassKg = mass
	}
	if argsParsed.Redistribute != "" {
		fraction, err := strconv.ParseFloat(argsParsed.Redistribute, 64)
		if err != nil {
			return errors.Errorf("invalid redistribution fraction %q: %s", argsParsed.Redistribute, err)
		}
		conf.RedistributedFraction = fraction
	}
	if argsParsed.RolesFile != "" {
		overrides, err := estimation.ReadRoleOverrides(argsParsed.RolesFile)
		if err != nil {
			return err
		}
		conf.RoleOverrides = overrides
	}
	if err := conf.Validate("args"); err != nil {
		return err
	}
	if argsParsed.MeshDir == "" {
		argsParsed.MeshDir = defaultMeshDir
	}

	logger.Infof("estimating inertial properties for a total mass of %g kg", conf.TargetMassKg)
	links, err := estimation.LoadVisualMeshes(argsParsed.MeshDir, logger)
	if err != nil {
		return err
	}
	result, err := estimation.Estimate(links, conf, logger)
	if err != nil {
		return err
	}

	doc := sdf.NewDocument(argsParsed.ModelName)
	for _, link := range result.Links {
		if err := doc.AddLink(link.Name, link.Properties); err != nil {
			return err
		}
	}
	if err := doc.WriteFile(argsParsed.OutputPath); err != nil {
		return err
	}
	logger.Infof("wrote inertial properties of %d links to %s", doc.LinkCount(), argsParsed.OutputPath)
	return nil
}
