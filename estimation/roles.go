package estimation

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Role describes how a link participates in the mass bookkeeping of the
// assembled model.
type Role string

const (
	// RoleOrdinary links appear exactly once in the assembled model.
	RoleOrdinary Role = "ordinary"
	// RoleRepeated links stand for several identical copies, so their volume
	// and mass count once per copy.
	RoleRepeated Role = "repeated-symmetric"
	// RoleDistinguished marks the single structural link that cedes part of
	// its mass to the rest of the model.
	RoleDistinguished Role = "distinguished-primary"
)

func (r Role) valid() bool {
	switch r {
	case RoleOrdinary, RoleRepeated, RoleDistinguished:
		return true
	}
	return false
}

// A Classifier maps a link name to a role.
type Classifier func(name string) Role

// DefaultClassifier assigns roles from well-known name fragments: a link
// named after the forearm is distinguished, finger and knuckle links are
// repeated, and everything else is ordinary. The forearm fragment wins when
// a name matches more than one rule.
func DefaultClassifier(name string) Role {
	lowered := strings.ToLower(name)
	if strings.Contains(lowered, "forearm") {
		return RoleDistinguished
	}
	if strings.Contains(lowered, "finger") || strings.Contains(lowered, "knuckle") {
		return RoleRepeated
	}
	return RoleOrdinary
}

// AssignRoles determines the role of every link, applying overrides on top
// of the classifier, and checks that exactly one link ends up distinguished.
// A nil classifier falls back to DefaultClassifier.
func AssignRoles(links []*LinkMesh, classify Classifier, overrides map[string]Role) (map[string]Role, error) {
	if classify == nil {
		classify = DefaultClassifier
	}
	roles := make(map[string]Role, len(links))
	for _, link := range links {
		roles[link.Name] = classify(link.Name)
	}
	for name, role := range overrides {
		if _, ok := roles[name]; !ok {
			return nil, newUnknownOverrideLinkError(name)
		}
		if !role.valid() {
			return nil, newUnknownRoleError(role, name)
		}
		roles[name] = role
	}
	var distinguished []string
	for _, link := range links {
		if roles[link.Name] == RoleDistinguished {
			distinguished = append(distinguished, link.Name)
		}
	}
	switch len(distinguished) {
	case 0:
		return nil, newNoDistinguishedLinkError()
	case 1:
		return roles, nil
	default:
		return nil, newMultipleDistinguishedLinksError(distinguished)
	}
}

// ReadRoleOverrides parses a JSON file mapping link names to role names.
func ReadRoleOverrides(path string) (map[string]Role, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read role override file")
	}
	var overrides map[string]Role
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, errors.Wrap(err, "failed to parse role override file")
	}
	for name, role := range overrides {
		if !role.valid() {
			return nil, newUnknownRoleError(role, name)
		}
	}
	return overrides, nil
}
