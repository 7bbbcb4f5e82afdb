// Package physconst centralizes the binary64 (and explicitly
// float32-rounded) physics constants spec.md §3 lists, shared by the
// collision, liquid, and movement packages so the same literal never
// drifts between them.
package physconst

import (
	"github.com/go-mclib/physics/pkg/vec3"
)

const (
	Gravity    = 0.08
	YawSpeed   = 3.0
	PitchSpeed = 3.0

	PlayerSpeed         = 0.1
	SprintModifierAmount = 0.3
	SneakSpeed           = 0.3

	StepHeight         = 0.6
	NegligibleVelocity = 0.003

	SoulsandSpeed       = 0.4
	HoneyblockSpeed     = 0.4
	HoneyblockJumpSpeed = 0.4

	LadderMaxSpeed   = 0.15
	LadderClimbSpeed = 0.2

	PlayerHalfWidth = 0.3
	PlayerHeight    = 1.8

	WaterInertia       = 0.8
	LavaInertia        = 0.5
	LiquidAcceleration = 0.02

	AirborneInertia     = 0.91
	AirborneAcceleration = 0.02

	OutOfLiquidImpulse = 0.3
	AutojumpCooldown   = 10

	SlowFallingGravityMultiplier = 0.125

	FrictionSpeedFactor = 0.1627714
	DolphinsGraceInertia = 0.96
	DepthStriderMaxLevel = 3

	JumpBoostPerLevel = 0.1
	SprintJumpBoost   = 0.2

	WaterFlowContribution = 0.014

	SneakEdgeStep = 0.05

	LevitationRisePerLevel = 0.05
)

// AirDrag is (1 - 0.02) explicitly rounded through a binary32
// round-trip before being widened back, matching the reference
// client's exact arithmetic (spec.md §9).
var AirDrag = vec3.Float32Round(1 - 0.02)

// JumpPowerBase is the 0.42 jump velocity, float32-rounded per spec.md §9.
var JumpPowerBase = vec3.Float32Round(0.42)

// BubbleDragSet is a (down, maxDown, up, maxUp) drag configuration for
// bubble columns, chosen by whether the entity is at the surface or
// fully submerged.
type BubbleDragSet struct {
	Down, MaxDown, Up, MaxUp float64
}

var (
	BubbleColumnSurface   = BubbleDragSet{Down: 0.03, MaxDown: -0.9, Up: 0.1, MaxUp: 1.8}
	BubbleColumnSubmerged = BubbleDragSet{Down: 0.03, MaxDown: -0.3, Up: 0.06, MaxUp: 0.7}
)

// LiquidGravity resolves the feature-gated water/lava gravity values.
// Construction must fail if neither gating feature matches (spec.md §7).
func LiquidGravity(independentLiquidGravity, proportionalLiquidGravity bool) (waterGravity, lavaGravity float64, ok bool) {
	switch {
	case independentLiquidGravity:
		return 0.02, 0.02, true
	case proportionalLiquidGravity:
		return Gravity / 16, Gravity / 4, true
	default:
		return 0, 0, false
	}
}
