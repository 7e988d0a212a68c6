package scene

import "github.com/Faultbox/dentaview/pkg/math"

// LightKind names a light type the renderer must support.
type LightKind string

const (
	LightAmbient     LightKind = "ambient"
	LightDirectional LightKind = "directional"
	LightHemisphere  LightKind = "hemisphere"
	LightPoint       LightKind = "point"
	LightSpot        LightKind = "spot"
)

// Light is one light in the rig.
type Light struct {
	Kind      LightKind `yaml:"kind"`
	Position  math.Vec3 `yaml:"position"`
	Intensity float32   `yaml:"intensity"`

	CastShadow    bool `yaml:"cast_shadow,omitempty"`
	ShadowMapSize int  `yaml:"shadow_map_size,omitempty"`

	GroundColor *Color `yaml:"ground_color,omitempty"` // hemisphere only

	Angle    float32 `yaml:"angle,omitempty"` // spot only, radians
	Penumbra float32 `yaml:"penumbra,omitempty"`
}

// LightingRig returns the six-light rig with every intensity scaled by k.
func LightingRig(k float32) []Light {
	ground := ColorHemiGrnd
	return []Light{
		{Kind: LightAmbient, Intensity: 0.4 * k},
		{
			Kind:          LightDirectional,
			Position:      math.V3(5, 10, 10),
			Intensity:     0.8 * k,
			CastShadow:    true,
			ShadowMapSize: 2048,
		},
		{Kind: LightDirectional, Position: math.V3(-5, -10, -10), Intensity: 0.5 * k},
		{Kind: LightHemisphere, Intensity: 0.3 * k, GroundColor: &ground},
		{Kind: LightPoint, Position: math.V3(10, 10, 10), Intensity: 0.6 * k},
		{
			Kind:       LightSpot,
			Position:   math.V3(0, 20, 0),
			Intensity:  0.8 * k,
			CastShadow: true,
			Angle:      0.3,
			Penumbra:   1,
		},
	}
}
