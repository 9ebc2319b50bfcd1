package spatialmath

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

const colladaTetraTemplate = `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <asset><unit name="meter" meter="%METER%"/></asset>
  <library_geometries>
    <geometry id="tetra">
      <mesh>
        <source id="pos">
          <float_array id="pos-array" count="12">0 0 0 1 0 0 0 1 0 0 0 1</float_array>
        </source>
        <vertices id="verts"><input semantic="POSITION" source="#pos"/></vertices>
        <triangles count="4">
          <input semantic="VERTEX" source="#verts" offset="0"/>
          <p>0 2 1 0 1 3 0 3 2 1 2 3</p>
        </triangles>
      </mesh>
    </geometry>
  </library_geometries>
</COLLADA>`

func TestColladaTrianglesElement(t *testing.T) {
	doc := strings.ReplaceAll(colladaTetraTemplate, "%METER%", "1")
	mesh, err := NewMeshFromColladaBytes([]byte(doc), "tetra")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(mesh.Triangles()), test.ShouldEqual, 4)
	test.That(t, mesh.Volume(), test.ShouldAlmostEqual, 1./6.)

	com, err := mesh.CenterOfMass()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, com.X, test.ShouldAlmostEqual, 0.25)
}

func TestColladaUnitScale(t *testing.T) {
	// A millimeter document measures a million times smaller by volume.
	doc := strings.ReplaceAll(colladaTetraTemplate, "%METER%", "0.001")
	mesh, err := NewMeshFromColladaBytes([]byte(doc), "tetra")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mesh.Volume(), test.ShouldAlmostEqual, 1e-9/6.)
}

func TestColladaMergesGeometries(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <asset><unit name="meter" meter="1"/></asset>
  <library_geometries>
    <geometry id="a">
      <mesh>
        <source id="a-pos"><float_array id="a-pos-array" count="12">0 0 0 1 0 0 0 1 0 0 0 1</float_array></source>
        <vertices id="a-verts"><input semantic="POSITION" source="#a-pos"/></vertices>
        <triangles count="4">
          <input semantic="VERTEX" source="#a-verts" offset="0"/>
          <p>0 2 1 0 1 3 0 3 2 1 2 3</p>
        </triangles>
      </mesh>
    </geometry>
    <geometry id="b">
      <mesh>
        <source id="b-pos"><float_array id="b-pos-array" count="12">10 0 0 11 0 0 10 1 0 10 0 1</float_array></source>
        <vertices id="b-verts"><input semantic="POSITION" source="#b-pos"/></vertices>
        <triangles count="4">
          <input semantic="VERTEX" source="#b-verts" offset="0"/>
          <p>0 2 1 0 1 3 0 3 2 1 2 3</p>
        </triangles>
      </mesh>
    </geometry>
  </library_geometries>
</COLLADA>`
	mesh, err := NewMeshFromColladaBytes([]byte(doc), "pair")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(mesh.Triangles()), test.ShouldEqual, 8)
	test.That(t, mesh.Volume(), test.ShouldAlmostEqual, 1./3.)
}

func TestColladaMissingVertexInput(t *testing.T) {
	doc := `<?xml version="1.0"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <library_geometries>
    <geometry id="g">
      <mesh>
        <source id="pos"><float_array count="3">0 0 0</float_array></source>
        <vertices id="verts"><input semantic="POSITION" source="#pos"/></vertices>
        <triangles count="1">
          <input semantic="NORMAL" source="#pos" offset="0"/>
          <p>0 0 0</p>
        </triangles>
      </mesh>
    </geometry>
  </library_geometries>
</COLLADA>`
	_, err := NewMeshFromColladaBytes([]byte(doc), "bad")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no VERTEX input")
}

func TestColladaPolylistCountMismatch(t *testing.T) {
	doc := `<?xml version="1.0"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <library_geometries>
    <geometry id="g">
      <mesh>
        <source id="pos"><float_array count="12">0 0 0 1 0 0 0 1 0 0 0 1</float_array></source>
        <vertices id="verts"><input semantic="POSITION" source="#pos"/></vertices>
        <polylist count="2">
          <input semantic="VERTEX" source="#verts" offset="0"/>
          <vcount>3 3</vcount>
          <p>0 2 1 0 1</p>
        </polylist>
      </mesh>
    </geometry>
  </library_geometries>
</COLLADA>`
	_, err := NewMeshFromColladaBytes([]byte(doc), "bad")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "do not match")
}

func TestColladaInvalidXML(t *testing.T) {
	_, err := NewMeshFromColladaBytes([]byte("<COLLADA><unclosed"), "bad")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to parse COLLADA data")
}
