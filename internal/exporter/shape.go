package exporter

import (
	"fmt"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/fieldworks/i3dgo/pkg/i3d"
	"github.com/fieldworks/i3dgo/pkg/math"
	"github.com/fieldworks/i3dgo/pkg/scene"
)

// maxUVLayers is the engine's per-vertex texture channel limit.
const maxUVLayers = 4

// writeShape wires the shape resource for a mesh node, compiling the
// mesh on first encounter and reusing the cached shape id afterwards.
func (ex *Exporter) writeShape(obj *scene.Object, el *i3d.Element) {
	if obj.Mesh == nil {
		ex.log.Warnw("mesh object without mesh data skipped", "object", obj.Name)
		return
	}

	shapeID, ok := ex.shapeIDs[obj.Mesh.Name]
	if !ok {
		shapeID = ex.compileMesh(obj)
	}

	el.SetInt("shapeId", shapeID)
	el.SetString("materialIds", ex.shapeMaterials[shapeID])
}

// subset is a contiguous run of triangles sharing one material.
type subset struct {
	material  *scene.Material
	triangles []scene.LoopTriangle
}

// compileMesh builds the IndexedTriangleSet for the object's mesh and
// returns the assigned shape id.
func (ex *Exporter) compileMesh(obj *scene.Object) int {
	shapeID := ex.nextShapeID
	ex.nextShapeID++
	ex.shapeIDs[obj.Mesh.Name] = shapeID

	triSet := ex.doc.Shapes.Sub("IndexedTriangleSet")
	triSet.SetString("name", obj.Mesh.Name)
	triSet.SetInt("shapeId", shapeID)

	// Transient evaluated copy; the buffers are released on every
	// exit path once extraction is done.
	mesh := obj.EvaluatedMesh(ex.cfg.ApplyModifiers)
	defer mesh.Free()

	conversion := ex.global
	if ex.cfg.ApplyUnitScale {
		conversion = math.UniformScale(ex.scn.UnitScale).Mul(conversion)
	}
	mesh.Transform(conversion)
	if conversion.Determinant() < 0 {
		mesh.FlipWinding()
	}

	triangles := mesh.LoopTriangles()

	verticesEl := triSet.Sub("Vertices")
	trianglesEl := triSet.Sub("Triangles")
	subsetsEl := triSet.Sub("Subsets")

	trianglesEl.SetInt("count", len(triangles))

	materials := mesh.Materials
	if len(materials) == 0 {
		materials = []*scene.Material{ex.fallbackMaterial()}
	}

	// Group triangles by material in first-encounter order; the i3d
	// format requires each subset's triangles to be contiguous.
	var subsets []*subset
	subsetByMaterial := make(map[string]*subset)
	var materialIDs []string
	for _, tri := range triangles {
		mat := materialAt(materials, tri.MaterialIndex)
		s, ok := subsetByMaterial[mat.Name]
		if !ok {
			s = &subset{material: mat}
			subsetByMaterial[mat.Name] = s
			subsets = append(subsets, s)
			materialIDs = append(materialIDs, fmt.Sprintf("%d", ex.resolveMaterial(mat)))
		}
		s.triangles = append(s.triangles, tri)
	}

	subsetsEl.SetInt("count", len(subsets))
	ex.shapeMaterials[shapeID] = strings.Join(materialIDs, ",")

	uvCount := len(mesh.UVLayers)
	if uvCount > maxUVLayers {
		ex.log.Warnw("mesh has more than four uv layers, extra layers dropped",
			"mesh", mesh.Name, "layers", uvCount)
		uvCount = maxUVLayers
	}
	for i := 0; i < uvCount; i++ {
		verticesEl.SetBool(fmt.Sprintf("uv%d", i), true)
	}

	// Per-mesh vertex cache: corners with identical position, normal,
	// uv set and material collapse into one vertex entry.
	vertexCache := make(map[uint64]int)
	vertexCount := 0
	indexTotal := 0

	for _, s := range subsets {
		subsetEl := subsetsEl.Sub("Subset")
		subsetEl.SetInt("firstIndex", indexTotal)
		subsetEl.SetInt("firstVertex", vertexCount)

		numIndices := 0
		numVertices := 0
		for _, tri := range s.triangles {
			triEl := trianglesEl.Sub("t")
			indices := make([]string, 0, 3)
			for _, loopIndex := range tri.Loops {
				corner := cornerData(mesh, loopIndex, uvCount)
				key := xxhash.Sum64String(s.material.Name + " " + corner.key())

				idx, seen := vertexCache[key]
				if !seen {
					idx = vertexCount
					vertexCache[key] = idx

					vertexEl := verticesEl.Sub("v")
					vertexEl.SetString("n", corner.normal)
					vertexEl.SetString("p", corner.position)
					for uvIndex, uv := range corner.uvs {
						vertexEl.SetString(fmt.Sprintf("t%d", uvIndex), uv)
					}

					vertexCount++
					numVertices++
				}
				indices = append(indices, fmt.Sprintf("%d", idx))
			}
			triEl.SetString("vi", strings.Join(indices, " "))
			numIndices += 3
		}

		subsetEl.SetInt("numIndices", numIndices)
		subsetEl.SetInt("numVertices", numVertices)
		indexTotal += numIndices
	}

	verticesEl.SetInt("count", vertexCount)
	verticesEl.SetBool("normal", true)
	verticesEl.SetBool("tangent", true)

	return shapeID
}

// corner is the formatted attribute tuple of one face corner. The
// strings are the post-rounding representations that also go into the
// document, so dedup equality matches output equality exactly.
type corner struct {
	position string
	normal   string
	uvs      []string
}

func (c corner) key() string {
	return c.position + " " + c.normal + " " + strings.Join(c.uvs, " ")
}

func cornerData(mesh *scene.Mesh, loopIndex, uvCount int) corner {
	loop := mesh.Loops[loopIndex]
	pos := mesh.Vertices[loop.Vertex]

	c := corner{
		position: fmt.Sprintf("%.6f %.6f %.6f", pos.X, pos.Y, pos.Z),
		normal:   fmt.Sprintf("%.6f %.6f %.6f", loop.Normal.X, loop.Normal.Y, loop.Normal.Z),
	}
	for i := 0; i < uvCount; i++ {
		uv := mesh.UVLayers[i].Data[loopIndex]
		c.uvs = append(c.uvs, fmt.Sprintf("%.6f %.6f", uv.X, uv.Y))
	}
	return c
}

// materialAt resolves a polygon material index, clamping out-of-range
// indices to the first slot.
func materialAt(materials []*scene.Material, index int) *scene.Material {
	if index < 0 || index >= len(materials) {
		return materials[0]
	}
	return materials[index]
}

// fallbackMaterial returns the run's shared default material, creating
// it on first use. Meshes without any material slot reference it.
func (ex *Exporter) fallbackMaterial() *scene.Material {
	if ex.defaultMaterial == nil {
		ex.defaultMaterial = &scene.Material{
			Name:         defaultMaterialName,
			DiffuseColor: [4]float32{0.8, 0.8, 0.8, 1},
			Roughness:    0.5,
		}
	}
	return ex.defaultMaterial
}
