package scene

import "github.com/fieldworks/i3dgo/pkg/math"

// Loop is a face corner: a vertex reference plus the split normal at
// that corner.
type Loop struct {
	Vertex int // index into Mesh.Vertices
	Normal math.Vec3
}

// UVLayer is one texture coordinate channel with one entry per loop.
type UVLayer struct {
	Name string
	Data []math.Vec2
}

// Polygon is a face defined by a contiguous run of loops.
type Polygon struct {
	LoopStart     int
	LoopTotal     int
	MaterialIndex int // index into Mesh.Materials
}

// LoopTriangle is one triangle of a triangulated polygon, referencing
// three loops of the owning mesh.
type LoopTriangle struct {
	Loops         [3]int
	MaterialIndex int
}

// Mesh is polygon geometry with per-loop attributes.
type Mesh struct {
	Name      string
	Vertices  []math.Vec3
	Loops     []Loop
	UVLayers  []UVLayer
	Polygons  []Polygon
	Materials []*Material
}

// Copy returns a deep copy of the mesh. Used for transient evaluated
// geometry so transforms and modifiers never touch the source.
func (m *Mesh) Copy() *Mesh {
	c := &Mesh{
		Name:      m.Name,
		Vertices:  append([]math.Vec3(nil), m.Vertices...),
		Loops:     append([]Loop(nil), m.Loops...),
		Polygons:  append([]Polygon(nil), m.Polygons...),
		Materials: append([]*Material(nil), m.Materials...),
	}
	c.UVLayers = make([]UVLayer, len(m.UVLayers))
	for i, layer := range m.UVLayers {
		c.UVLayers[i] = UVLayer{
			Name: layer.Name,
			Data: append([]math.Vec2(nil), layer.Data...),
		}
	}
	return c
}

// Free releases the mesh buffers. Only valid on copies; the mesh must
// not be used afterwards.
func (m *Mesh) Free() {
	m.Vertices = nil
	m.Loops = nil
	m.UVLayers = nil
	m.Polygons = nil
	m.Materials = nil
}

// Transform applies mat to the vertex positions and loop normals.
// Normals are re-normalized, which is exact for the signed permutation
// and uniform scale matrices used during export.
func (m *Mesh) Transform(mat math.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.TransformPoint(v)
	}
	for i, l := range m.Loops {
		m.Loops[i].Normal = mat.TransformDirection(l.Normal).Normalize()
	}
}

// FlipWinding reverses the loop order of every polygon and negates the
// loop normals. Called when a space conversion mirrors the geometry.
func (m *Mesh) FlipWinding() {
	for _, p := range m.Polygons {
		for i, j := p.LoopStart, p.LoopStart+p.LoopTotal-1; i < j; i, j = i+1, j-1 {
			m.Loops[i], m.Loops[j] = m.Loops[j], m.Loops[i]
			for k := range m.UVLayers {
				data := m.UVLayers[k].Data
				data[i], data[j] = data[j], data[i]
			}
		}
	}
	for i := range m.Loops {
		m.Loops[i].Normal = m.Loops[i].Normal.Neg()
	}
}

// LoopTriangles fan-triangulates every polygon and returns the
// triangles in polygon scan order.
func (m *Mesh) LoopTriangles() []LoopTriangle {
	var tris []LoopTriangle
	for _, p := range m.Polygons {
		for i := 1; i < p.LoopTotal-1; i++ {
			tris = append(tris, LoopTriangle{
				Loops:         [3]int{p.LoopStart, p.LoopStart + i, p.LoopStart + i + 1},
				MaterialIndex: p.MaterialIndex,
			})
		}
	}
	return tris
}
