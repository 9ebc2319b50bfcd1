// Package sdf writes robot description documents in the Simulation
// Description Format.
package sdf

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/AndrejOrsula/shadow-hand-ign/spatialmath"
)

// Version is the SDF specification version emitted in documents.
const Version = "1.6"

// Document represents the root of an SDF robot description holding a single
// model.
type Document struct {
	XMLName xml.Name `xml:"sdf"`
	Version string   `xml:"version,attr"`
	Model   model    `xml:"model"`
}

// Note: unexported fields with XML tags don't work with encoding/xml, so the
// nested elements are unexported types with exported fields.

// model details the XML used in an SDF model element.
type model struct {
	Name  string `xml:"name,attr"`
	Links []link `xml:"link"`
}

// link details the XML used in an SDF link element.
type link struct {
	Name     string   `xml:"name,attr"`
	Inertial inertial `xml:"inertial"`
}

// inertial details the XML used in an SDF inertial element. Its pose is the
// offset of the center of mass in the link frame.
type inertial struct {
	Mass    float64 `xml:"mass"`
	Inertia inertia `xml:"inertia"`
	Pose    string  `xml:"pose"`
}

// inertia details the XML used in an SDF inertia element.
type inertia struct {
	Ixx float64 `xml:"ixx"`
	Ixy float64 `xml:"ixy"`
	Ixz float64 `xml:"ixz"`
	Iyy float64 `xml:"iyy"`
	Iyz float64 `xml:"iyz"`
	Izz float64 `xml:"izz"`
}

// NewDocument creates an empty SDF document for a model with the given name.
func NewDocument(modelName string) *Document {
	return &Document{
		Version: Version,
		Model:   model{Name: modelName},
	}
}

// AddLink appends a link with the given inertial properties to the document's
// model. The center of mass becomes the link's inertial pose, with zero
// rotation. Inertial properties containing NaN or infinite values are
// rejected.
func (d *Document) AddLink(name string, props *spatialmath.MassProperties) error {
	com := props.CenterOfMass
	for _, v := range []float64{
		props.Mass,
		com.X, com.Y, com.Z,
		props.Inertia.At(0, 0), props.Inertia.At(0, 1), props.Inertia.At(0, 2),
		props.Inertia.At(1, 1), props.Inertia.At(1, 2), props.Inertia.At(2, 2),
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newNonFiniteInertialError(name)
		}
	}
	d.Model.Links = append(d.Model.Links, link{
		Name: name,
		Inertial: inertial{
			Mass: props.Mass,
			Inertia: inertia{
				Ixx: props.Inertia.At(0, 0),
				Ixy: props.Inertia.At(0, 1),
				Ixz: props.Inertia.At(0, 2),
				Iyy: props.Inertia.At(1, 1),
				Iyz: props.Inertia.At(1, 2),
				Izz: props.Inertia.At(2, 2),
			},
			Pose: fmt.Sprintf("%g %g %g 0 0 0", com.X, com.Y, com.Z),
		},
	})
	return nil
}

// LinkCount returns the number of links added to the document so far.
func (d *Document) LinkCount() int {
	return len(d.Model.Links)
}

// Bytes renders the document as indented XML with the standard header.
func (d *Document) Bytes() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal SDF document")
	}
	return []byte(xml.Header + string(body) + "\n"), nil
}

// WriteFile renders the document and writes it to the given path, silently
// overwriting any existing file.
func (d *Document) WriteFile(path string) (err error) {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create SDF file")
	}
	defer func() {
		cerr := f.Close()
		err = multierr.Combine(err, cerr)
	}()
	_, err = f.Write(data)
	return err
}

// newNonFiniteInertialError returns an error for when a link's inertial
// properties contain a NaN or infinite value.
func newNonFiniteInertialError(linkName string) error {
	return errors.Errorf("inertial properties of link %q are not finite", linkName)
}
