package scene

import (
	"strings"
	"testing"

	"github.com/chewxy/math32"
)

const farmScene = `
name: farm
unit_scale: 1
materials:
  - name: painted
    diffuse: [0.8, 0.2, 0.2, 1]
    roughness: 0.4
    texture: paint_diffuse.png
  - name: plain
    flat: true
    diffuse: [0.5, 0.5, 0.5, 1]
meshes:
  - name: slab
    vertices:
      - [0, 0, 0]
      - [1, 0, 0]
      - [0, 1, 0]
    polygons:
      - indices: [0, 1, 2]
    materials: [painted]
objects:
  - name: slab1
    kind: mesh
    mesh: slab
    translation: [1, 2, 3]
  - name: lamp
    kind: light
    light:
      kind: spot
      color: [1, 1, 0.9]
      range: 40
      spot_size_deg: 90
      spot_blend: 0.5
      falloff: inverse-square
  - name: cam
    kind: camera
    camera:
      lens: 60
      clip_start: 0.1
      clip_end: 300
  - name: props
    kind: empty
    instance: deco
    children: [lamp]
groups:
  - name: yard
    objects: [slab1, props]
  - name: deco
    objects: [cam]
active_group: yard
selected: [slab1]
`

func TestParse(t *testing.T) {
	scn, err := Parse([]byte(farmScene))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if scn.Name != "farm" {
		t.Errorf("name: got %q, want farm", scn.Name)
	}
	if scn.UnitScale != 1 {
		t.Errorf("unit scale: got %f, want 1", scn.UnitScale)
	}
	if len(scn.Root.Children) != 2 {
		t.Fatalf("root groups: got %d, want 2", len(scn.Root.Children))
	}
	if scn.Active == nil || scn.Active.Name != "yard" {
		t.Error("active group not resolved")
	}
	if len(scn.Selected) != 1 || scn.Selected[0].Name != "slab1" {
		t.Error("selection not resolved")
	}
}

func TestParseHierarchy(t *testing.T) {
	scn, err := Parse([]byte(farmScene))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	yard := scn.Active
	if len(yard.Objects) != 2 {
		t.Fatalf("yard objects: got %d, want 2", len(yard.Objects))
	}

	props := yard.Objects[1]
	if props.Kind != KindEmpty {
		t.Errorf("props kind: got %v, want empty", props.Kind)
	}
	if props.Instance == nil || props.Instance.Name != "deco" {
		t.Error("instanced group not wired")
	}
	if len(props.Children) != 1 || props.Children[0].Name != "lamp" {
		t.Fatal("object children not wired")
	}
	if props.Children[0].Parent != props {
		t.Error("child parent pointer not set")
	}
}

func TestParseMesh(t *testing.T) {
	scn, err := Parse([]byte(farmScene))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	slab := scn.Active.Objects[0]
	mesh := slab.Mesh
	if mesh == nil {
		t.Fatal("mesh not attached")
	}
	if len(mesh.Vertices) != 3 || len(mesh.Loops) != 3 || len(mesh.Polygons) != 1 {
		t.Fatalf("mesh geometry: %d vertices, %d loops, %d polygons",
			len(mesh.Vertices), len(mesh.Loops), len(mesh.Polygons))
	}

	// Counter-clockwise triangle in the XY plane faces +Z.
	n := mesh.Loops[0].Normal
	if math32.Abs(n.Z-1) > 1e-5 {
		t.Errorf("computed face normal: got %v, want +Z", n)
	}

	if len(mesh.Materials) != 1 || mesh.Materials[0].Name != "painted" {
		t.Fatal("mesh material not resolved")
	}
	if mesh.Materials[0].NodeTree == nil {
		t.Error("textured material should build a shading graph")
	}
}

func TestParseMaterialShorthand(t *testing.T) {
	scn, err := Parse([]byte(farmScene))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	painted := scn.Active.Objects[0].Mesh.Materials[0]
	principled := painted.NodeTree.Node(NodeNamePrincipled)
	if principled == nil {
		t.Fatal("shading graph missing principled node")
	}

	base := principled.Input("Base Color")
	if base == nil || base.Link == nil || base.Link.Kind != NodeTexImage {
		t.Fatal("texture shorthand should link an image node to the base color")
	}
	if base.Link.Image.Filepath != "paint_diffuse.png" {
		t.Errorf("texture path: got %q", base.Link.Image.Filepath)
	}
	if got := principled.Input("Roughness").Float(); got != 0.4 {
		t.Errorf("roughness socket: got %f, want 0.4", got)
	}
}

func TestParseLightAndCamera(t *testing.T) {
	scn, err := Parse([]byte(farmScene))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	lamp := scn.Active.Objects[1].Children[0]
	if lamp.Light == nil {
		t.Fatal("light data not attached")
	}
	if lamp.Light.Kind != LightSpot {
		t.Errorf("light kind: got %v, want spot", lamp.Light.Kind)
	}
	if math32.Abs(lamp.Light.SpotSize-math32.Pi/2) > 1e-5 {
		t.Errorf("spot size: got %f rad, want pi/2", lamp.Light.SpotSize)
	}
	if lamp.Light.Falloff != FalloffInverseSquare {
		t.Errorf("falloff: got %v, want inverse-square", lamp.Light.Falloff)
	}
	if len(lamp.Light.Attributes) == 0 {
		t.Error("light should carry its attribute descriptors")
	}

	var deco *Group
	for _, g := range scn.Root.Children {
		if g.Name == "deco" {
			deco = g
		}
	}
	if deco == nil {
		t.Fatal("deco group missing from root")
	}
	cam := deco.Objects[0]
	if cam.Camera == nil {
		t.Fatal("camera data not attached")
	}
	if cam.Camera.Lens != 60 || cam.Camera.ClipEnd != 300 {
		t.Errorf("camera parameters: %+v", cam.Camera)
	}
}

func TestParseDefaultUnitScale(t *testing.T) {
	scn, err := Parse([]byte("name: tiny"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if scn.UnitScale != 1 {
		t.Errorf("unit scale default: got %f, want 1", scn.UnitScale)
	}
	if scn.Root == nil || scn.Root.Name != "tiny" {
		t.Error("master group not created")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			"unknown mesh",
			"objects:\n  - name: o\n    kind: mesh\n    mesh: missing\n",
			"unknown mesh",
		},
		{
			"unknown child",
			"objects:\n  - name: o\n    children: [ghost]\n",
			"unknown child",
		},
		{
			"duplicate material",
			"materials:\n  - name: m\n  - name: m\n",
			"duplicate material",
		},
		{
			"degenerate polygon",
			"meshes:\n  - name: m\n    vertices: [[0,0,0],[1,0,0]]\n    polygons:\n      - indices: [0, 1]\n",
			"polygon with 2 indices",
		},
		{
			"uv length mismatch",
			"meshes:\n  - name: m\n    vertices: [[0,0,0],[1,0,0],[0,1,0]]\n    polygons:\n      - indices: [0, 1, 2]\n    uv_layers:\n      - name: uv\n        data: [[0,0]]\n",
			"uv layer",
		},
		{
			"unknown light kind",
			"objects:\n  - name: o\n    kind: light\n    light:\n      kind: laser\n",
			"unknown light kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
