package estimation

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/AndrejOrsula/shadow-hand-ign/spatialmath"
)

// A LinkMesh pairs a model link with the visual mesh it derives from.
type LinkMesh struct {
	Name string
	Mesh *spatialmath.Mesh
}

// LoadVisualMeshes loads every mesh file in dir, one link per file, each
// link named after the file's base name. Links come back sorted by name.
func LoadVisualMeshes(dir string, logger golog.Logger) ([]*LinkMesh, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read mesh directory")
	}
	links := make([]*LinkMesh, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			return nil, errors.Errorf("mesh directory entry %q is a directory, expected only mesh files", entry.Name())
		}
		path := filepath.Join(dir, entry.Name())
		logger.Debugf("loading mesh %s", path)
		mesh, err := spatialmath.NewMeshFromFile(path)
		if err != nil {
			return nil, err
		}
		links = append(links, &LinkMesh{Name: mesh.Label(), Mesh: mesh})
	}
	if len(links) == 0 {
		return nil, newNoMeshesFoundError(dir)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Name < links[j].Name })
	return links, nil
}
