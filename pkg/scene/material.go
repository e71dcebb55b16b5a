package scene

import "fmt"

// NodeKind identifies a shading node kind. Unknown kinds are carried
// through so the exporter can report them instead of failing.
type NodeKind int

const (
	NodePrincipled NodeKind = iota
	NodeRGB
	NodeTexImage
	NodeNormalMap
	NodeSeparateRGB
	NodeUnknown
)

// String returns a human-readable node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodePrincipled:
		return "principled"
	case NodeRGB:
		return "rgb"
	case NodeTexImage:
		return "image-texture"
	case NodeNormalMap:
		return "normal-map"
	case NodeSeparateRGB:
		return "separate-rgb"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Well-known shading node names looked up during material extraction.
const (
	NodeNamePrincipled  = "Principled BSDF"
	NodeNameSeparateRGB = "Separate RGB"
)

// Image is an external image resource with a filesystem path.
type Image struct {
	Filepath string
}

// Socket is a typed shading node input. Value holds the unlinked
// default (a color, or a scalar in Value[0]); Link points at the
// upstream node when the socket is connected.
type Socket struct {
	Value [4]float32
	Link  *ShaderNode
}

// Float returns the scalar default of the socket.
func (s *Socket) Float() float32 {
	if s == nil {
		return 0
	}
	return s.Value[0]
}

// ShaderNode is a named node in a material's shading graph.
type ShaderNode struct {
	Name   string
	Kind   NodeKind
	Inputs map[string]*Socket

	Color [4]float32 // output color for NodeRGB
	Image *Image     // image resource for NodeTexImage
}

// Input returns the named input socket, or nil.
func (n *ShaderNode) Input(name string) *Socket {
	if n == nil {
		return nil
	}
	return n.Inputs[name]
}

// NodeTree is a material's shading graph, addressable by node name.
type NodeTree struct {
	Nodes []*ShaderNode
}

// Node returns the node with the given name, or nil.
func (t *NodeTree) Node(name string) *ShaderNode {
	if t == nil {
		return nil
	}
	for _, n := range t.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Material is a named surface description. NodeTree is nil for flat
// materials, which only carry the viewport color parameters.
type Material struct {
	Name     string
	NodeTree *NodeTree

	DiffuseColor [4]float32
	Roughness    float32
	Metallic     float32
}
