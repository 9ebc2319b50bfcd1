package estimation

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func namedLinks(names ...string) []*LinkMesh {
	links := make([]*LinkMesh, 0, len(names))
	for _, name := range names {
		links = append(links, &LinkMesh{Name: name})
	}
	return links
}

func TestDefaultClassifier(t *testing.T) {
	for _, tc := range []struct {
		name string
		role Role
	}{
		{"forearm", RoleDistinguished},
		{"Forearm_Electric", RoleDistinguished},
		{"finger_middle", RoleRepeated},
		{"f_knuckle", RoleRepeated},
		{"palm", RoleOrdinary},
		{"wrist", RoleOrdinary},
		// the forearm rule wins over the repeated rules
		{"forearm_finger_mount", RoleDistinguished},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, DefaultClassifier(tc.name), test.ShouldEqual, tc.role)
		})
	}
}

func TestAssignRoles(t *testing.T) {
	links := namedLinks("forearm", "f_distal", "f_knuckle", "palm")
	roles, err := AssignRoles(links, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, roles["forearm"], test.ShouldEqual, RoleDistinguished)
	test.That(t, roles["f_distal"], test.ShouldEqual, RoleOrdinary)
	test.That(t, roles["f_knuckle"], test.ShouldEqual, RoleRepeated)
	test.That(t, roles["palm"], test.ShouldEqual, RoleOrdinary)
}

func TestAssignRolesOverrides(t *testing.T) {
	links := namedLinks("forearm", "palm", "thumb")

	roles, err := AssignRoles(links, nil, map[string]Role{"thumb": RoleRepeated})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, roles["thumb"], test.ShouldEqual, RoleRepeated)

	roles, err = AssignRoles(links, nil, map[string]Role{
		"forearm": RoleOrdinary,
		"palm":    RoleDistinguished,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, roles["forearm"], test.ShouldEqual, RoleOrdinary)
	test.That(t, roles["palm"], test.ShouldEqual, RoleDistinguished)

	_, err = AssignRoles(links, nil, map[string]Role{"pinky": RoleRepeated})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown link")

	_, err = AssignRoles(links, nil, map[string]Role{"palm": Role("heavy")})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown role")
}

func TestAssignRolesDistinguishedCount(t *testing.T) {
	_, err := AssignRoles(namedLinks("palm", "wrist"), nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no link was classified")

	_, err = AssignRoles(namedLinks("forearm_upper", "forearm_lower"), nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "forearm_upper, forearm_lower")
}

func TestReadRoleOverrides(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "roles.json")
	content := `{"palm": "repeated-symmetric", "wrist": "distinguished-primary"}`
	test.That(t, os.WriteFile(path, []byte(content), 0o644), test.ShouldBeNil)
	overrides, err := ReadRoleOverrides(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, overrides, test.ShouldResemble, map[string]Role{
		"palm":  RoleRepeated,
		"wrist": RoleDistinguished,
	})

	_, err = ReadRoleOverrides(filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to read role override file")

	badJSON := filepath.Join(dir, "bad.json")
	test.That(t, os.WriteFile(badJSON, []byte("{"), 0o644), test.ShouldBeNil)
	_, err = ReadRoleOverrides(badJSON)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to parse role override file")

	badRole := filepath.Join(dir, "badrole.json")
	test.That(t, os.WriteFile(badRole, []byte(`{"palm": "solid"}`), 0o644), test.ShouldBeNil)
	_, err = ReadRoleOverrides(badRole)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown role")
}
