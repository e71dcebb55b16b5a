// Package scene models the read-only scene description consumed by the
// exporter: objects, groups, meshes, material graphs, lights and cameras.
// It mirrors what a host authoring tool exposes, without any of the host's
// editing or rendering concerns.
package scene

import "github.com/fieldworks/i3dgo/pkg/math"

// Kind is the object kind tag. The set is closed; the exporter dispatches
// on it rather than probing attributes.
type Kind int

const (
	KindMesh Kind = iota
	KindCurve
	KindEmpty
	KindCamera
	KindLight
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindCurve:
		return "curve"
	case KindEmpty:
		return "empty"
	case KindCamera:
		return "camera"
	case KindLight:
		return "light"
	default:
		return "unknown"
	}
}

// AllKinds lists every object kind, in declaration order.
func AllKinds() []Kind {
	return []Kind{KindMesh, KindCurve, KindEmpty, KindCamera, KindLight}
}

// Entity is the closed set of scene entities. Only *Object and *Group
// implement it; consumers dispatch with a type switch.
type Entity interface {
	EntityName() string
}

// Modifier is a procedural mesh modifier. It is applied to a transient
// evaluated copy, never to the source mesh.
type Modifier func(*Mesh)

// Object is a scene object: a placed entity with a kind, a local
// transform relative to its parent and optional typed data.
type Object struct {
	Name     string
	Kind     Kind
	Matrix   math.Mat4 // local transform relative to the parent
	Parent   *Object
	Children []*Object

	Mesh      *Mesh     // set for KindMesh and KindCurve
	Light     *Light    // set for KindLight
	Camera    *Camera   // set for KindCamera
	Instance  *Group    // set on empties that instance a group
	Modifiers []Modifier

	// Attributes is the ordered export attribute bag of the object
	// itself; data-level attributes live on the typed data.
	Attributes []Attribute
}

// EntityName implements Entity.
func (o *Object) EntityName() string { return o.Name }

// DataAttributes returns the attribute bag of the object's data block,
// if its kind carries one.
func (o *Object) DataAttributes() []Attribute {
	switch o.Kind {
	case KindLight:
		if o.Light != nil {
			return o.Light.Attributes
		}
	case KindCamera:
		if o.Camera != nil {
			return o.Camera.Attributes
		}
	}
	return nil
}

// EvaluatedMesh returns a transient deep copy of the object's mesh with
// modifiers optionally applied. The caller owns the copy and must Free
// it once geometry extraction is done.
func (o *Object) EvaluatedMesh(applyModifiers bool) *Mesh {
	if o.Mesh == nil {
		return nil
	}
	m := o.Mesh.Copy()
	if applyModifiers {
		for _, mod := range o.Modifiers {
			mod(m)
		}
	}
	return m
}

// Group is an organizational container of objects and nested groups.
// A group can be instanced as a subtree through an empty object.
type Group struct {
	Name     string
	Children []*Group
	Objects  []*Object
}

// EntityName implements Entity.
func (g *Group) EntityName() string { return g.Name }

// Scene is the root of a host scene.
type Scene struct {
	Name      string
	Root      *Group    // master group containing everything
	Active    *Group    // active group, may be nil
	Selected  []*Object // explicit selection, in selection order
	UnitScale float32   // scene unit scale length, 1.0 = meters
}
