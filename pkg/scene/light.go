package scene

// LightKind is the host light kind. Area lights have no engine
// equivalent and degrade to point lights on export.
type LightKind int

const (
	LightPoint LightKind = iota
	LightSun
	LightSpot
	LightArea
)

// String returns the lowercase light kind name.
func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightSun:
		return "sun"
	case LightSpot:
		return "spot"
	case LightArea:
		return "area"
	default:
		return "unknown"
	}
}

// Falloff selects the light intensity falloff curve.
type Falloff int

const (
	FalloffConstant Falloff = iota
	FalloffInverseLinear
	FalloffInverseSquare
)

// Light holds the parameters of a light data block.
type Light struct {
	Kind      LightKind
	Color     [3]float32
	Distance  float32 // range
	UseShadow bool
	SpotSize  float32 // cone angle in radians
	SpotBlend float32 // normalized [0,1] spot softness
	Falloff   Falloff

	// Attributes is the ordered export attribute bag of the light
	// data block. See DefaultLightAttributes.
	Attributes []Attribute
}

// Camera holds the parameters of a camera data block.
type Camera struct {
	Lens       float32 // focal length, used as field-of-view proxy
	ClipStart  float32
	ClipEnd    float32
	Ortho      bool
	OrthoScale float32 // orthographic height

	Attributes []Attribute
}
