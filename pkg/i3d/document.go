// Package i3d implements the I3D scene document model and its serializer.
// An I3D file is an XML document with a fixed top-level skeleton and a
// strict numeric attribute contract: integers as plain decimal, generic
// floats at 7 decimal places and booleans as lowercase literals.
package i3d

import (
	"strconv"
	"strings"
)

// Version is the I3D format version written to the document root.
const Version = "1.6"

// Schema attributes required by the format, even though most of the
// referenced links are dead.
const (
	schemaInstance = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://i3d.giants.ch/schema/i3d-1.6.xsd"
)

// Attr is a single XML attribute. Order of attributes is preserved
// exactly as written.
type Attr struct {
	Name  string
	Value string
}

// Element is a node in the document tree. Text and Tail carry the
// literal whitespace injected by Indent.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string
	Tail     string
}

// NewElement returns an element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Sub appends a new child element and returns it.
func (e *Element) Sub(tag string) *Element {
	child := &Element{Tag: tag}
	e.Children = append(e.Children, child)
	return child
}

// Get returns the value of a named attribute.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetString sets a string attribute. Setting an existing attribute
// replaces its value in place, keeping its original position.
func (e *Element) SetString(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// SetInt sets an integer attribute as plain decimal.
func (e *Element) SetInt(name string, value int) {
	e.SetString(name, strconv.Itoa(value))
}

// SetFloat sets a generic float attribute at 7 decimal places.
func (e *Element) SetFloat(name string, value float32) {
	e.SetString(name, strconv.FormatFloat(float64(value), 'f', 7, 64))
}

// SetBool sets a boolean attribute as a lowercase true/false literal.
func (e *Element) SetBool(name string, value bool) {
	if value {
		e.SetString(name, "true")
	} else {
		e.SetString(name, "false")
	}
}

// Document is an I3D document with its fixed top-level sections.
type Document struct {
	Root *Element

	Asset          *Element
	Files          *Element
	Materials      *Element
	Shapes         *Element
	Dynamics       *Element
	Scene          *Element
	Animation      *Element
	UserAttributes *Element

	export *Element
}

// NewDocument builds the document skeleton: the i3D root with its schema
// attributes and the eight fixed sections in order.
func NewDocument(name string) *Document {
	root := NewElement("i3D")
	root.SetString("name", name)
	root.SetString("version", Version)
	root.SetString("xmlns:xsi", schemaInstance)
	root.SetString("xsi:noNamespaceSchemaLocation", schemaLocation)

	d := &Document{Root: root}
	d.Asset = root.Sub("Asset")
	d.export = d.Asset.Sub("Export")
	d.Files = root.Sub("Files")
	d.Materials = root.Sub("Materials")
	d.Shapes = root.Sub("Shapes")
	d.Dynamics = root.Sub("Dynamics")
	d.Scene = root.Sub("Scene")
	d.Animation = root.Sub("Animation")
	d.UserAttributes = root.Sub("UserAttributes")
	return d
}

// SetProducer records the exporting program and its version in Asset/Export.
func (d *Document) SetProducer(program, version string) {
	d.export.SetString("program", program)
	d.export.SetString("version", version)
}

// Indent makes the document human readable by injecting literal
// newline plus two-spaces-per-level text and tail strings on every
// element that has children; the root's tail ends the file with a
// newline. The engine ignores the extra whitespace.
func (d *Document) Indent() {
	indent(d.Root, 0)
}

func indent(e *Element, level int) {
	indents := "\n" + strings.Repeat("  ", level)
	if len(e.Children) > 0 {
		e.Text = indents + "  "
		e.Tail = indents
		for _, child := range e.Children {
			indent(child, level+1)
		}
		// The last child closes its parent, so it dedents one level.
		e.Children[len(e.Children)-1].Tail = indents
	} else {
		e.Tail = indents
	}
}
