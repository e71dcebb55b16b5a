package scene

// Attribute is one entry of an export attribute bag: an explicit
// (name, default, value) descriptor. Descriptors are iterated in
// declaration order and only values changed from their documented
// default are exported.
type Attribute struct {
	Name    string
	Default any
	Value   any
}

// IsDefault reports whether the attribute still holds its default.
func (a Attribute) IsDefault() bool {
	return a.Value == a.Default
}

// DefaultLightAttributes returns the light attribute descriptors with
// their documented defaults. Names overlapping the parameters the
// exporter writes directly (type, color, range, coneAngle, dropOff)
// are deliberately absent.
func DefaultLightAttributes() []Attribute {
	return []Attribute{
		{Name: "emitDiffuse", Default: true, Value: true},
		{Name: "emitSpecular", Default: true, Value: true},
		{Name: "depthMapBias", Default: float32(0.0012), Value: float32(0.0012)},
		{Name: "depthMapSlopeScaleBias", Default: float32(2.0), Value: float32(2.0)},
	}
}
