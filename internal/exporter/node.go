package exporter

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/fieldworks/i3dgo/pkg/i3d"
	"github.com/fieldworks/i3dgo/pkg/scene"
)

const radToDeg = 180 / math32.Pi

// elementTag maps an entity to its I3D scene element name. The mapping
// is total over the supported entity set.
func elementTag(e scene.Entity) string {
	switch v := e.(type) {
	case *scene.Group:
		return "TransformGroup"
	case *scene.Object:
		return objectTag(v.Kind)
	default:
		return "TransformGroup"
	}
}

// objectTag maps an object kind to its I3D element name.
func objectTag(k scene.Kind) string {
	switch k {
	case scene.KindMesh, scene.KindCurve:
		return "Shape"
	case scene.KindCamera:
		return "Camera"
	case scene.KindLight:
		return "Light"
	default:
		return "TransformGroup"
	}
}

// compileScene emits one element per graph node under the Scene
// section, preserving the tree shape.
func (ex *Exporter) compileScene() {
	for _, child := range ex.graph.root.children {
		ex.compileNode(child, ex.doc.Scene.Sub(elementTag(child.entity)))
	}
}

func (ex *Exporter) compileNode(n *graphNode, el *i3d.Element) {
	ex.writeGeneralData(n, el)

	if obj, ok := n.entity.(*scene.Object); ok {
		switch obj.Kind {
		case scene.KindMesh, scene.KindCurve:
			ex.writeShape(obj, el)
		case scene.KindLight:
			ex.writeLight(obj, el)
		case scene.KindCamera:
			ex.writeCamera(obj, el)
		}
		ex.writeAttributes(el, obj.DataAttributes())
	}

	for _, child := range n.children {
		ex.compileNode(child, el.Sub(elementTag(child.entity)))
	}
}

// writeGeneralData emits the name, node id and local transform.
func (ex *Exporter) writeGeneralData(n *graphNode, el *i3d.Element) {
	el.SetString("name", n.entity.EntityName())
	el.SetInt("nodeId", n.id)

	obj, ok := n.entity.(*scene.Object)
	if !ok {
		// Groups are purely organisational; the transform group stays
		// at its parent's origin.
		el.SetString("translation", "0 0 0")
		el.SetString("rotation", "0 0 0")
		el.SetString("scale", "1 1 1")
		return
	}

	// Re-orthogonalize per node: G*L*G^-1 brings the local transform
	// into the engine's axis convention. Cameras and lights look down
	// a different axis in the engine, so they take G*L alone.
	var mat = ex.global.Mul(obj.Matrix)
	if !isViewKind(obj.Kind) {
		mat = mat.Mul(ex.globalInv)
	}
	// A camera/light parent already carries the uncorrected basis;
	// undo the double correction its children would inherit.
	if obj.Parent != nil && isViewKind(obj.Parent.Kind) {
		mat = ex.globalInv.Mul(mat)
	}

	t := mat.Translation().Scale(ex.scn.UnitScale)
	el.SetString("translation", fmt.Sprintf("%.6f %.6f %.6f", t.X, t.Y, t.Z))

	r := mat.EulerXYZ()
	el.SetString("rotation", fmt.Sprintf("%.3f %.3f %.3f", r.X*radToDeg, r.Y*radToDeg, r.Z*radToDeg))

	s := mat.ScaleFactors()
	el.SetString("scale", fmt.Sprintf("%.6f %.6f %.6f", s.X, s.Y, s.Z))

	ex.writeAttributes(el, obj.Attributes)
}

func isViewKind(k scene.Kind) bool {
	return k == scene.KindCamera || k == scene.KindLight
}

// writeAttributes emits an attribute bag, skipping entries still at
// their documented default.
func (ex *Exporter) writeAttributes(el *i3d.Element, attrs []scene.Attribute) {
	for _, a := range attrs {
		if a.IsDefault() {
			continue
		}
		// bool is matched before the integer case on purpose: hosts
		// with numeric booleans must not emit them as plain ints.
		switch v := a.Value.(type) {
		case float32:
			el.SetFloat(a.Name, v)
		case float64:
			el.SetFloat(a.Name, float32(v))
		case bool:
			el.SetBool(a.Name, v)
		case int:
			el.SetInt(a.Name, v)
		case string:
			el.SetString(a.Name, v)
		default:
			ex.log.Warnw("attribute with unsupported type skipped", "name", a.Name)
		}
	}
}

// writeLight emits the light parameters for a light node.
func (ex *Exporter) writeLight(obj *scene.Object, el *i3d.Element) {
	light := obj.Light
	if light == nil {
		return
	}

	lightType := ""
	hasFalloff := false
	switch light.Kind {
	case scene.LightPoint:
		lightType = "point"
		hasFalloff = true
	case scene.LightSun:
		lightType = "directional"
	case scene.LightSpot:
		lightType = "spot"
		hasFalloff = true
		el.SetFloat("coneAngle", light.SpotSize*radToDeg)
		// Host spot softness is normalized to [0,1]; the engine drop
		// off range is [0,5].
		el.SetFloat("dropOff", 5*light.SpotBlend)
	case scene.LightArea:
		lightType = "point"
		ex.log.Warnw("area lights are not supported by the engine, defaulting to point",
			"object", obj.Name)
	}

	el.SetString("type", lightType)
	el.SetString("color", fmt.Sprintf("%.6f %.6f %.6f",
		light.Color[0], light.Color[1], light.Color[2]))
	el.SetFloat("range", light.Distance)
	el.SetBool("castShadowMap", light.UseShadow)

	if hasFalloff {
		el.SetInt("decayRate", int(light.Falloff))
	}
}

// writeCamera emits the camera parameters for a camera node.
func (ex *Exporter) writeCamera(obj *scene.Object, el *i3d.Element) {
	cam := obj.Camera
	if cam == nil {
		return
	}

	el.SetFloat("fov", cam.Lens)
	el.SetFloat("nearClip", cam.ClipStart)
	el.SetFloat("farClip", cam.ClipEnd)
	if cam.Ortho {
		el.SetBool("orthographic", true)
		el.SetFloat("orthographicHeight", cam.OrthoScale)
	}
}
