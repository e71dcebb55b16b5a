package exporter

import (
	"testing"

	"github.com/fieldworks/i3dgo/pkg/scene"
)

// nodeMaterial builds a shading-graph material around a principled node
// with the given scalar sockets.
func nodeMaterial(name string, roughness, specular, metallic float32) (*scene.Material, *scene.ShaderNode) {
	principled := &scene.ShaderNode{
		Name: scene.NodeNamePrincipled,
		Kind: scene.NodePrincipled,
		Inputs: map[string]*scene.Socket{
			"Base Color": {Value: [4]float32{0.8, 0.4, 0.2, 1}},
			"Roughness":  {Value: [4]float32{roughness}},
			"Specular":   {Value: [4]float32{specular}},
			"Metallic":   {Value: [4]float32{metallic}},
			"Normal":     {},
		},
	}
	mat := &scene.Material{
		Name:     name,
		NodeTree: &scene.NodeTree{Nodes: []*scene.ShaderNode{principled}},
	}
	return mat, principled
}

func textureNode(name, path string) *scene.ShaderNode {
	return &scene.ShaderNode{
		Name:  name,
		Kind:  scene.NodeTexImage,
		Image: &scene.Image{Filepath: path},
	}
}

func TestResolveMaterialCached(t *testing.T) {
	ex := newTestExporter(t, testConfig())
	ex.Compile(sceneWith(), "test.i3d")

	mat := &scene.Material{Name: "steel"}
	first := ex.resolveMaterial(mat)
	second := ex.resolveMaterial(mat)

	if first != second {
		t.Errorf("ids differ: %d vs %d", first, second)
	}
	if len(ex.doc.Materials.Children) != 1 {
		t.Errorf("material entries: got %d, want 1", len(ex.doc.Materials.Children))
	}
}

func TestNodeMaterialSocketColors(t *testing.T) {
	ex := newTestExporter(t, testConfig())
	ex.Compile(sceneWith(), "test.i3d")

	mat, _ := nodeMaterial("painted", 0.25, 0.5, 0.75)
	ex.resolveMaterial(mat)

	el := ex.doc.Materials.Children[0]
	if v := attr(t, el, "name"); v != "painted" {
		t.Errorf("name: got %q", v)
	}
	if v := attr(t, el, "materialId"); v != "1" {
		t.Errorf("materialId: got %q", v)
	}
	if v := attr(t, el, "diffuseColor"); v != "0.800000 0.400000 0.200000 1.000000" {
		t.Errorf("diffuseColor: got %q", v)
	}
	if v := attr(t, el, "specularColor"); v != "0.250000 0.500000 0.750000" {
		t.Errorf("specularColor: got %q", v)
	}
}

func TestNodeMaterialRGBNode(t *testing.T) {
	ex := newTestExporter(t, testConfig())
	ex.Compile(sceneWith(), "test.i3d")

	mat, principled := nodeMaterial("tinted", 0.5, 0.5, 0)
	rgb := &scene.ShaderNode{Name: "RGB", Kind: scene.NodeRGB, Color: [4]float32{0, 1, 0, 1}}
	principled.Inputs["Base Color"].Link = rgb
	mat.NodeTree.Nodes = append(mat.NodeTree.Nodes, rgb)

	ex.resolveMaterial(mat)

	el := ex.doc.Materials.Children[0]
	if v := attr(t, el, "diffuseColor"); v != "0.000000 1.000000 0.000000 1.000000" {
		t.Errorf("diffuseColor: got %q", v)
	}
}

func TestNodeMaterialDiffuseTexture(t *testing.T) {
	ex := newTestExporter(t, testConfig())
	ex.Compile(sceneWith(), "test.i3d")

	mat, principled := nodeMaterial("textured", 0.5, 0.5, 0)
	tex := textureNode("Image Texture", "paint_diffuse.png")
	principled.Inputs["Base Color"].Link = tex
	mat.NodeTree.Nodes = append(mat.NodeTree.Nodes, tex)

	ex.resolveMaterial(mat)

	el := ex.doc.Materials.Children[0]
	texEl := findChild(t, el, "Texture")
	if v := attr(t, texEl, "fileId"); v != "1" {
		t.Errorf("texture fileId: got %q", v)
	}
	if len(ex.doc.Files.Children) != 1 {
		t.Fatalf("file entries: got %d, want 1", len(ex.doc.Files.Children))
	}
	if v := attr(t, ex.doc.Files.Children[0], "filename"); v != "paint_diffuse.png" {
		t.Errorf("filename: got %q", v)
	}
}

func TestNodeMaterialNormalAndGlossChains(t *testing.T) {
	ex := newTestExporter(t, testConfig())
	ex.Compile(sceneWith(), "test.i3d")

	mat, principled := nodeMaterial("detailed", 0.5, 0.5, 0)

	normalTex := textureNode("Normal Texture", "paint_normal.png")
	normalMap := &scene.ShaderNode{
		Name:   "Normal Map",
		Kind:   scene.NodeNormalMap,
		Inputs: map[string]*scene.Socket{"Color": {Link: normalTex}},
	}
	principled.Inputs["Normal"].Link = normalMap

	glossTex := textureNode("Gloss Texture", "paint_gloss.png")
	separate := &scene.ShaderNode{
		Name:   scene.NodeNameSeparateRGB,
		Kind:   scene.NodeSeparateRGB,
		Inputs: map[string]*scene.Socket{"Image": {Link: glossTex}},
	}
	mat.NodeTree.Nodes = append(mat.NodeTree.Nodes, normalMap, normalTex, separate, glossTex)

	ex.resolveMaterial(mat)

	el := ex.doc.Materials.Children[0]
	if v := attr(t, findChild(t, el, "Normalmap"), "fileId"); v != "1" {
		t.Errorf("Normalmap fileId: got %q", v)
	}
	if v := attr(t, findChild(t, el, "Glossmap"), "fileId"); v != "2" {
		t.Errorf("Glossmap fileId: got %q", v)
	}
	if len(ex.doc.Files.Children) != 2 {
		t.Errorf("file entries: got %d, want 2", len(ex.doc.Files.Children))
	}
}

func TestNodeMaterialSharedTextureFile(t *testing.T) {
	ex := newTestExporter(t, testConfig())
	ex.Compile(sceneWith(), "test.i3d")

	mat, principled := nodeMaterial("reused", 0.5, 0.5, 0)
	tex := textureNode("Image Texture", "shared.png")
	principled.Inputs["Base Color"].Link = tex

	glossTex := textureNode("Gloss Texture", "shared.png")
	separate := &scene.ShaderNode{
		Name:   scene.NodeNameSeparateRGB,
		Kind:   scene.NodeSeparateRGB,
		Inputs: map[string]*scene.Socket{"Image": {Link: glossTex}},
	}
	mat.NodeTree.Nodes = append(mat.NodeTree.Nodes, tex, separate, glossTex)

	ex.resolveMaterial(mat)

	el := ex.doc.Materials.Children[0]
	if v := attr(t, findChild(t, el, "Texture"), "fileId"); v != "1" {
		t.Errorf("Texture fileId: got %q", v)
	}
	if v := attr(t, findChild(t, el, "Glossmap"), "fileId"); v != "1" {
		t.Errorf("Glossmap should reuse the file entry, got fileId %q", v)
	}
	if len(ex.doc.Files.Children) != 1 {
		t.Errorf("file entries: got %d, want 1", len(ex.doc.Files.Children))
	}
}

func TestFlatMaterial(t *testing.T) {
	ex := newTestExporter(t, testConfig())
	ex.Compile(sceneWith(), "test.i3d")

	ex.resolveMaterial(&scene.Material{
		Name:         "plain",
		DiffuseColor: [4]float32{0.25, 0.5, 0.75, 1},
		Roughness:    0.4,
		Metallic:     0.1,
	})

	el := ex.doc.Materials.Children[0]
	if v := attr(t, el, "diffuseColor"); v != "0.250000 0.500000 0.750000 1.000000" {
		t.Errorf("diffuseColor: got %q", v)
	}
	// Flat materials approximate specular from roughness and metallic.
	if v := attr(t, el, "specularColor"); v != "0.400000 1.000000 0.100000" {
		t.Errorf("specularColor: got %q", v)
	}
}
