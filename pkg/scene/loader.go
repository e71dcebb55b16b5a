package scene

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/fieldworks/i3dgo/pkg/math"
)

// Scene description loader. The YAML format is the authored counterpart
// of the in-memory model: meshes, materials with a texture shorthand
// that expands into a shading graph, groups and an object hierarchy.

type sceneFile struct {
	Name        string         `yaml:"name"`
	UnitScale   float32        `yaml:"unit_scale"`
	Materials   []materialFile `yaml:"materials"`
	Meshes      []meshFile     `yaml:"meshes"`
	Groups      []groupFile    `yaml:"groups"`
	Objects     []objectFile   `yaml:"objects"`
	RootObjects []string       `yaml:"root_objects"`
	ActiveGroup string         `yaml:"active_group"`
	Selected    []string       `yaml:"selected"`
}

type materialFile struct {
	Name      string     `yaml:"name"`
	Flat      bool       `yaml:"flat"`
	Diffuse   [4]float32 `yaml:"diffuse"`
	Roughness float32    `yaml:"roughness"`
	Specular  float32    `yaml:"specular"`
	Metallic  float32    `yaml:"metallic"`
	Texture   string     `yaml:"texture"`
	Normalmap string     `yaml:"normalmap"`
	Glossmap  string     `yaml:"glossmap"`
}

type meshFile struct {
	Name      string        `yaml:"name"`
	Vertices  [][3]float32  `yaml:"vertices"`
	Normals   [][3]float32  `yaml:"normals"` // per loop, optional
	Polygons  []polygonFile `yaml:"polygons"`
	UVLayers  []uvLayerFile `yaml:"uv_layers"`
	Materials []string      `yaml:"materials"`
}

type polygonFile struct {
	Indices  []int `yaml:"indices"`
	Material int   `yaml:"material"`
}

type uvLayerFile struct {
	Name string       `yaml:"name"`
	Data [][2]float32 `yaml:"data"` // per loop
}

type groupFile struct {
	Name    string   `yaml:"name"`
	Groups  []string `yaml:"groups"`
	Objects []string `yaml:"objects"`
}

type objectFile struct {
	Name        string      `yaml:"name"`
	Kind        string      `yaml:"kind"`
	Mesh        string      `yaml:"mesh"`
	Instance    string      `yaml:"instance"`
	Translation [3]float32  `yaml:"translation"`
	Rotation    [3]float32  `yaml:"rotation"` // euler XYZ, degrees
	Scale       *[3]float32 `yaml:"scale"`
	Children    []string    `yaml:"children"`
	Light       *lightFile  `yaml:"light"`
	Camera      *cameraFile `yaml:"camera"`
}

type lightFile struct {
	Kind         string     `yaml:"kind"`
	Color        [3]float32 `yaml:"color"`
	Range        float32    `yaml:"range"`
	Shadow       bool       `yaml:"shadow"`
	SpotSizeDeg  float32    `yaml:"spot_size_deg"`
	SpotBlend    float32    `yaml:"spot_blend"`
	Falloff      string     `yaml:"falloff"`
}

type cameraFile struct {
	Lens       float32 `yaml:"lens"`
	ClipStart  float32 `yaml:"clip_start"`
	ClipEnd    float32 `yaml:"clip_end"`
	Ortho      bool    `yaml:"ortho"`
	OrthoScale float32 `yaml:"ortho_scale"`
}

// LoadFile reads and builds a scene from a YAML description file.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// Parse builds a scene from YAML bytes.
func Parse(data []byte) (*Scene, error) {
	var sf sceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing scene description: %w", err)
	}
	return build(&sf)
}

func build(sf *sceneFile) (*Scene, error) {
	scn := &Scene{
		Name:      sf.Name,
		Root:      &Group{Name: sf.Name},
		UnitScale: sf.UnitScale,
	}
	if scn.UnitScale == 0 {
		scn.UnitScale = 1
	}

	materials := make(map[string]*Material, len(sf.Materials))
	for i := range sf.Materials {
		m := buildMaterial(&sf.Materials[i])
		if _, dup := materials[m.Name]; dup {
			return nil, fmt.Errorf("duplicate material %q", m.Name)
		}
		materials[m.Name] = m
	}

	meshes := make(map[string]*Mesh, len(sf.Meshes))
	for i := range sf.Meshes {
		m, err := buildMesh(&sf.Meshes[i], materials)
		if err != nil {
			return nil, err
		}
		meshes[m.Name] = m
	}

	objects := make(map[string]*Object, len(sf.Objects))
	for i := range sf.Objects {
		o, err := buildObject(&sf.Objects[i], meshes)
		if err != nil {
			return nil, err
		}
		objects[o.Name] = o
	}

	groups := make(map[string]*Group, len(sf.Groups))
	for _, gf := range sf.Groups {
		groups[gf.Name] = &Group{Name: gf.Name}
	}

	// Wire hierarchies after every entity exists.
	for i := range sf.Objects {
		of := &sf.Objects[i]
		o := objects[of.Name]
		for _, childName := range of.Children {
			child, ok := objects[childName]
			if !ok {
				return nil, fmt.Errorf("object %q: unknown child %q", of.Name, childName)
			}
			child.Parent = o
			o.Children = append(o.Children, child)
		}
		if of.Instance != "" {
			g, ok := groups[of.Instance]
			if !ok {
				return nil, fmt.Errorf("object %q: unknown instanced group %q", of.Name, of.Instance)
			}
			o.Instance = g
		}
	}

	childGroups := make(map[string]bool)
	for _, gf := range sf.Groups {
		g := groups[gf.Name]
		for _, name := range gf.Groups {
			child, ok := groups[name]
			if !ok {
				return nil, fmt.Errorf("group %q: unknown child group %q", gf.Name, name)
			}
			g.Children = append(g.Children, child)
			childGroups[name] = true
		}
		for _, name := range gf.Objects {
			o, ok := objects[name]
			if !ok {
				return nil, fmt.Errorf("group %q: unknown member object %q", gf.Name, name)
			}
			g.Objects = append(g.Objects, o)
		}
	}

	// Groups not nested anywhere hang off the master group.
	for _, gf := range sf.Groups {
		if !childGroups[gf.Name] {
			scn.Root.Children = append(scn.Root.Children, groups[gf.Name])
		}
	}
	for _, name := range sf.RootObjects {
		o, ok := objects[name]
		if !ok {
			return nil, fmt.Errorf("unknown root object %q", name)
		}
		scn.Root.Objects = append(scn.Root.Objects, o)
	}

	if sf.ActiveGroup != "" {
		g, ok := groups[sf.ActiveGroup]
		if !ok {
			return nil, fmt.Errorf("unknown active group %q", sf.ActiveGroup)
		}
		scn.Active = g
	}
	for _, name := range sf.Selected {
		o, ok := objects[name]
		if !ok {
			return nil, fmt.Errorf("unknown selected object %q", name)
		}
		scn.Selected = append(scn.Selected, o)
	}

	return scn, nil
}

func buildMaterial(mf *materialFile) *Material {
	m := &Material{
		Name:         mf.Name,
		DiffuseColor: mf.Diffuse,
		Roughness:    mf.Roughness,
		Metallic:     mf.Metallic,
	}
	if mf.Flat {
		return m
	}

	principled := &ShaderNode{
		Name: NodeNamePrincipled,
		Kind: NodePrincipled,
		Inputs: map[string]*Socket{
			"Base Color": {Value: mf.Diffuse},
			"Roughness":  {Value: [4]float32{mf.Roughness}},
			"Specular":   {Value: [4]float32{mf.Specular}},
			"Metallic":   {Value: [4]float32{mf.Metallic}},
			"Normal":     {},
		},
	}
	tree := &NodeTree{Nodes: []*ShaderNode{principled}}

	if mf.Texture != "" {
		tex := &ShaderNode{
			Name:  "Image Texture",
			Kind:  NodeTexImage,
			Image: &Image{Filepath: mf.Texture},
		}
		principled.Inputs["Base Color"].Link = tex
		tree.Nodes = append(tree.Nodes, tex)
	}
	if mf.Normalmap != "" {
		tex := &ShaderNode{
			Name:  "Normal Texture",
			Kind:  NodeTexImage,
			Image: &Image{Filepath: mf.Normalmap},
		}
		nm := &ShaderNode{
			Name:   "Normal Map",
			Kind:   NodeNormalMap,
			Inputs: map[string]*Socket{"Color": {Link: tex}},
		}
		principled.Inputs["Normal"].Link = nm
		tree.Nodes = append(tree.Nodes, nm, tex)
	}
	if mf.Glossmap != "" {
		tex := &ShaderNode{
			Name:  "Gloss Texture",
			Kind:  NodeTexImage,
			Image: &Image{Filepath: mf.Glossmap},
		}
		sep := &ShaderNode{
			Name:   NodeNameSeparateRGB,
			Kind:   NodeSeparateRGB,
			Inputs: map[string]*Socket{"Image": {Link: tex}},
		}
		tree.Nodes = append(tree.Nodes, sep, tex)
	}

	m.NodeTree = tree
	return m
}

func buildMesh(mf *meshFile, materials map[string]*Material) (*Mesh, error) {
	m := &Mesh{Name: mf.Name}
	for _, v := range mf.Vertices {
		m.Vertices = append(m.Vertices, math.Vec3{X: v[0], Y: v[1], Z: v[2]})
	}
	for _, name := range mf.Materials {
		mat, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("mesh %q: unknown material %q", mf.Name, name)
		}
		m.Materials = append(m.Materials, mat)
	}

	loopCount := 0
	for _, pf := range mf.Polygons {
		if len(pf.Indices) < 3 {
			return nil, fmt.Errorf("mesh %q: polygon with %d indices", mf.Name, len(pf.Indices))
		}
		m.Polygons = append(m.Polygons, Polygon{
			LoopStart:     loopCount,
			LoopTotal:     len(pf.Indices),
			MaterialIndex: pf.Material,
		})
		normal := faceNormal(m.Vertices, pf.Indices)
		for li, vi := range pf.Indices {
			if vi < 0 || vi >= len(m.Vertices) {
				return nil, fmt.Errorf("mesh %q: vertex index %d out of range", mf.Name, vi)
			}
			loop := Loop{Vertex: vi, Normal: normal}
			if loopCount+li < len(mf.Normals) {
				n := mf.Normals[loopCount+li]
				loop.Normal = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
			}
			m.Loops = append(m.Loops, loop)
		}
		loopCount += len(pf.Indices)
	}

	for _, lf := range mf.UVLayers {
		if len(lf.Data) != loopCount {
			return nil, fmt.Errorf("mesh %q: uv layer %q has %d entries, want %d",
				mf.Name, lf.Name, len(lf.Data), loopCount)
		}
		layer := UVLayer{Name: lf.Name}
		for _, uv := range lf.Data {
			layer.Data = append(layer.Data, math.Vec2{X: uv[0], Y: uv[1]})
		}
		m.UVLayers = append(m.UVLayers, layer)
	}

	return m, nil
}

func faceNormal(vertices []math.Vec3, indices []int) math.Vec3 {
	if len(indices) < 3 {
		return math.Vec3{}
	}
	for _, vi := range indices[:3] {
		if vi < 0 || vi >= len(vertices) {
			return math.Vec3{}
		}
	}
	a := vertices[indices[0]]
	b := vertices[indices[1]]
	c := vertices[indices[2]]
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

func buildObject(of *objectFile, meshes map[string]*Mesh) (*Object, error) {
	o := &Object{Name: of.Name, Matrix: objectMatrix(of)}

	switch of.Kind {
	case "mesh":
		o.Kind = KindMesh
	case "curve":
		o.Kind = KindCurve
	case "", "empty":
		o.Kind = KindEmpty
	case "camera":
		o.Kind = KindCamera
	case "light":
		o.Kind = KindLight
	default:
		return nil, fmt.Errorf("object %q: unknown kind %q", of.Name, of.Kind)
	}

	switch o.Kind {
	case KindMesh, KindCurve:
		m, ok := meshes[of.Mesh]
		if !ok {
			return nil, fmt.Errorf("object %q: unknown mesh %q", of.Name, of.Mesh)
		}
		o.Mesh = m
	case KindLight:
		l, err := buildLight(of)
		if err != nil {
			return nil, err
		}
		o.Light = l
	case KindCamera:
		o.Camera = buildCamera(of)
	}

	return o, nil
}

func objectMatrix(of *objectFile) math.Mat4 {
	const degToRad = math32.Pi / 180

	sx, sy, sz := float32(1), float32(1), float32(1)
	if of.Scale != nil {
		sx, sy, sz = of.Scale[0], of.Scale[1], of.Scale[2]
	}

	rot := math.RotateZ(of.Rotation[2] * degToRad).
		Mul(math.RotateY(of.Rotation[1] * degToRad)).
		Mul(math.RotateX(of.Rotation[0] * degToRad))
	return math.Translate(of.Translation[0], of.Translation[1], of.Translation[2]).
		Mul(rot).
		Mul(math.Scale(sx, sy, sz))
}

func buildLight(of *objectFile) (*Light, error) {
	const degToRad = math32.Pi / 180

	lf := of.Light
	if lf == nil {
		lf = &lightFile{}
	}
	l := &Light{
		Color:      lf.Color,
		Distance:   lf.Range,
		UseShadow:  lf.Shadow,
		SpotSize:   lf.SpotSizeDeg * degToRad,
		SpotBlend:  lf.SpotBlend,
		Attributes: DefaultLightAttributes(),
	}
	switch lf.Kind {
	case "", "point":
		l.Kind = LightPoint
	case "sun":
		l.Kind = LightSun
	case "spot":
		l.Kind = LightSpot
	case "area":
		l.Kind = LightArea
	default:
		return nil, fmt.Errorf("object %q: unknown light kind %q", of.Name, lf.Kind)
	}
	switch lf.Falloff {
	case "", "constant":
		l.Falloff = FalloffConstant
	case "inverse-linear":
		l.Falloff = FalloffInverseLinear
	case "inverse-square":
		l.Falloff = FalloffInverseSquare
	default:
		return nil, fmt.Errorf("object %q: unknown falloff %q", of.Name, lf.Falloff)
	}
	return l, nil
}

func buildCamera(of *objectFile) *Camera {
	cf := of.Camera
	if cf == nil {
		cf = &cameraFile{Lens: 50, ClipStart: 0.1, ClipEnd: 100}
	}
	return &Camera{
		Lens:       cf.Lens,
		ClipStart:  cf.ClipStart,
		ClipEnd:    cf.ClipEnd,
		Ortho:      cf.Ortho,
		OrthoScale: cf.OrthoScale,
	}
}
