package exporter

import (
	"fmt"

	"github.com/fieldworks/i3dgo/pkg/i3d"
	"github.com/fieldworks/i3dgo/pkg/scene"
)

// resolveMaterial returns the material id for mat, creating the
// Materials entry on first encounter. Identity is the material name.
func (ex *Exporter) resolveMaterial(mat *scene.Material) int {
	if id, ok := ex.materialIDs[mat.Name]; ok {
		return id
	}

	id := ex.nextMaterialID
	ex.nextMaterialID++
	ex.materialIDs[mat.Name] = id

	el := ex.doc.Materials.Sub("Material")
	el.SetString("name", mat.Name)
	el.SetInt("materialId", id)

	if mat.NodeTree != nil {
		ex.writeNodeMaterial(el, mat)
	} else {
		ex.writeFlatMaterial(el, mat)
	}

	return id
}

// writeNodeMaterial extracts colors and texture references from the
// material's shading graph. Unsupported node kinds are reported and
// skipped, never fatal.
func (ex *Exporter) writeNodeMaterial(el *i3d.Element, mat *scene.Material) {
	principled := mat.NodeTree.Node(scene.NodeNamePrincipled)
	if principled != nil {
		diffuse := [4]float32{}
		if base := principled.Input("Base Color"); base != nil {
			diffuse = base.Value
			if linked := base.Link; linked != nil {
				switch linked.Kind {
				case scene.NodeRGB:
					diffuse = linked.Color
				case scene.NodeTexImage:
					if linked.Image != nil {
						if fileID, ok := ex.resolveFile(linked.Image.Filepath); ok {
							el.Sub("Texture").SetInt("fileId", fileID)
						}
					}
				default:
					ex.log.Warnw("unsupported node on base color socket",
						"material", mat.Name, "node", linked.Kind.String())
				}
			}
		}

		el.SetString("diffuseColor", fmt.Sprintf("%.6f %.6f %.6f %.6f",
			diffuse[0], diffuse[1], diffuse[2], diffuse[3]))
		el.SetString("specularColor", fmt.Sprintf("%.6f %.6f %.6f",
			principled.Input("Roughness").Float(),
			principled.Input("Specular").Float(),
			principled.Input("Metallic").Float()))

		ex.writeNormalmap(el, mat, principled)
	}

	ex.writeGlossmap(el, mat)
}

// writeNormalmap follows the principled node's normal chain: a linked
// normal-map node whose color socket is fed by an image texture.
func (ex *Exporter) writeNormalmap(el *i3d.Element, mat *scene.Material, principled *scene.ShaderNode) {
	normalSocket := principled.Input("Normal")
	if normalSocket == nil || normalSocket.Link == nil {
		return
	}

	normalMap := normalSocket.Link
	if normalMap.Kind != scene.NodeNormalMap {
		ex.log.Warnw("unsupported node on normal socket",
			"material", mat.Name, "node", normalMap.Kind.String())
		return
	}

	colorSocket := normalMap.Input("Color")
	if colorSocket == nil || colorSocket.Link == nil {
		return
	}
	texture := colorSocket.Link
	if texture.Kind != scene.NodeTexImage {
		ex.log.Warnw("unsupported color input on normal map",
			"material", mat.Name, "node", texture.Kind.String())
		return
	}
	if texture.Image == nil {
		return
	}
	if fileID, ok := ex.resolveFile(texture.Image.Filepath); ok {
		el.Sub("Normalmap").SetInt("fileId", fileID)
	}
}

// writeGlossmap follows the channel-splitter node that carries the
// glossiness map on its image socket.
func (ex *Exporter) writeGlossmap(el *i3d.Element, mat *scene.Material) {
	separate := mat.NodeTree.Node(scene.NodeNameSeparateRGB)
	if separate == nil {
		return
	}

	imageSocket := separate.Input("Image")
	if imageSocket == nil || imageSocket.Link == nil {
		return
	}
	texture := imageSocket.Link
	if texture.Kind != scene.NodeTexImage {
		ex.log.Warnw("unsupported image input on channel splitter",
			"material", mat.Name, "node", texture.Kind.String())
		return
	}
	if texture.Image == nil {
		return
	}
	if fileID, ok := ex.resolveFile(texture.Image.Filepath); ok {
		el.Sub("Glossmap").SetInt("fileId", fileID)
	}
}

// writeFlatMaterial emits the viewport color parameters of a material
// without a shading graph.
func (ex *Exporter) writeFlatMaterial(el *i3d.Element, mat *scene.Material) {
	el.SetString("diffuseColor", fmt.Sprintf("%.6f %.6f %.6f %.6f",
		mat.DiffuseColor[0], mat.DiffuseColor[1], mat.DiffuseColor[2], mat.DiffuseColor[3]))
	el.SetString("specularColor", fmt.Sprintf("%.6f 1.000000 %.6f",
		mat.Roughness, mat.Metallic))
}
