// Package movement implements the MovementEngine from spec.md §4.2:
// heading application, the per-regime velocity update (ground, air,
// water, lava, elytra, ladder), jumping, and firework rocket thrust,
// orchestrated by SimulatePlayer into the single per-tick entry point.
package movement

import (
	"math"

	"github.com/go-mclib/physics/pkg/aabb"
	"github.com/go-mclib/physics/pkg/attribute"
	"github.com/go-mclib/physics/pkg/catalogue"
	"github.com/go-mclib/physics/pkg/collision"
	"github.com/go-mclib/physics/pkg/entity"
	"github.com/go-mclib/physics/pkg/feature"
	"github.com/go-mclib/physics/pkg/liquid"
	"github.com/go-mclib/physics/pkg/physconst"
	"github.com/go-mclib/physics/pkg/vec3"
	"github.com/go-mclib/physics/pkg/world"
	"github.com/google/uuid"
)

// Feature names gating ladder/trapdoor behavior (spec.md §4.2).
const (
	FeatureClimableTrapdoor = "climableTrapdoor"
	FeatureClimbUsingJump   = "climbUsingJump"
)

// sprintModifierUUID is the fixed identity spec.md §4.2 assigns the
// sprint-speed attribute modifier, so adding it twice in a row is a
// no-op replace rather than a double application.
var sprintModifierUUID = uuid.MustParse("662a6b8d-da3e-4c1c-8813-96ea6097278d")

// Engine computes per-tick velocity and position updates by composing
// a CollisionEngine and LiquidEngine over a shared catalogue/feature set.
type Engine struct {
	Catalogue  *catalogue.Catalogue
	Features   *feature.Set
	Collision  *collision.Engine
	Liquid     *liquid.Engine
	WaterGravity float64
	LavaGravity  float64
}

// New builds a MovementEngine. waterGravity/lavaGravity must already
// be resolved from the independentLiquidGravity/proportionalLiquidGravity
// feature gate (spec.md §7) - construction of the owning Physics facade
// fails before this point if neither matched.
func New(cat *catalogue.Catalogue, features *feature.Set, col *collision.Engine, liq *liquid.Engine, waterGravity, lavaGravity float64) *Engine {
	return &Engine{
		Catalogue:    cat,
		Features:     features,
		Collision:    col,
		Liquid:       liq,
		WaterGravity: waterGravity,
		LavaGravity:  lavaGravity,
	}
}

// applyHeading rotates (strafe, forward) by yaw and accumulates it
// into vel, scaled so the combined horizontal input never exceeds
// multiplier (spec.md §4.2).
func (e *Engine) applyHeading(ent *entity.Entity, strafe, forward, multiplier float64) {
	speed := math.Sqrt(strafe*strafe + forward*forward)
	if speed < 0.01 {
		return
	}
	if speed < 1 {
		speed = 1
	}
	f := multiplier / speed
	strafe *= f
	forward *= f

	yaw := math.Pi - ent.Yaw
	sinYaw := math.Sin(yaw)
	cosYaw := math.Cos(yaw)

	ent.Vel.X -= strafe*cosYaw + forward*sinYaw
	ent.Vel.Z += forward*cosYaw - strafe*sinYaw
}

// effectiveMovementSpeed returns the movementSpeed attribute's total
// value, idempotently toggling the sprint modifier on or off first so
// repeated calls never stack it (spec.md §4.2, invariant 7).
func (e *Engine) effectiveMovementSpeed(ent *entity.Entity) float64 {
	speed := ent.MovementSpeed()
	speed.RemoveModifier(sprintModifierUUID)
	if ent.Control.Sprint {
		speed.AddModifier(attribute.Modifier{
			UUID:      sprintModifierUUID,
			Amount:    physconst.SprintModifierAmount,
			Operation: attribute.MultiplyTotal,
		})
	}
	return speed.Total()
}

// isOnLadder reports whether the block at pos is a ladder, a vine, or
// (when climableTrapdoor is enabled) an open trapdoor sitting directly
// above a ladder it faces the same way. A nil block below is "not a
// ladder" rather than propagating a null dereference (spec.md §9).
func (e *Engine) isOnLadder(w world.World, pos vec3.Vec3) bool {
	x, y, z := int(math.Floor(pos.X)), int(math.Floor(pos.Y)), int(math.Floor(pos.Z))
	b := w.GetBlock(x, y, z)
	if b == nil {
		return false
	}
	id := int32(b.Type())
	if e.Catalogue.IsLadder(id) || e.Catalogue.IsVine(id) {
		return true
	}
	if e.Features == nil || !e.Features.Enabled(FeatureClimableTrapdoor) || !e.Catalogue.IsTrapdoor(id) {
		return false
	}
	below := w.GetBlock(x, y-1, z)
	if below == nil {
		return false
	}
	if !e.Catalogue.IsLadder(int32(below.Type())) {
		return false
	}
	if !world.Open(b) {
		return false
	}
	facing, _ := world.Facing(b)
	belowFacing, _ := world.Facing(below)
	return facing == belowFacing
}

func (e *Engine) isHoneyBelow(w world.World, pos vec3.Vec3) bool {
	b := w.GetBlock(int(math.Floor(pos.X)), int(math.Floor(pos.Y))-1, int(math.Floor(pos.Z)))
	return b != nil && e.Catalogue.IsHoneyBlock(int32(b.Type()))
}

func gravityMultiplier(ent *entity.Entity) float64 {
	if ent.Vel.Y <= 0 && ent.SlowFalling > 0 {
		return physconst.SlowFallingGravityMultiplier
	}
	return 1
}

// lookVector is the standard yaw/pitch unit look direction, independent
// of applyHeading's separate pi-offset convention for strafe/forward
// rotation.
func lookVector(yaw, pitch float64) (x, y, z float64) {
	x = -math.Sin(yaw) * math.Cos(pitch)
	y = -math.Sin(pitch)
	z = math.Cos(yaw) * math.Cos(pitch)
	return
}

// moveEntityWithHeading dispatches on the entity's regime - liquid,
// elytra, or normal ground/air movement - per spec.md §4.2.
func (e *Engine) moveEntityWithHeading(w world.World, ent *entity.Entity, strafe, forward float64) {
	switch {
	case ent.IsInWater || ent.IsInLava:
		e.moveLiquid(w, ent, strafe, forward)
	case ent.ElytraFlying:
		e.moveElytra(w, ent, strafe, forward)
	default:
		e.moveNormal(w, ent, strafe, forward)
	}
}

func (e *Engine) moveLiquid(w world.World, ent *entity.Entity, strafe, forward float64) {
	horizontalInertia := physconst.WaterInertia
	acceleration := physconst.LiquidAcceleration
	gravity := e.WaterGravity

	if ent.IsInLava {
		horizontalInertia = physconst.LavaInertia
		gravity = e.LavaGravity
	} else {
		s := float64(ent.DepthStrider)
		if s > physconst.DepthStriderMaxLevel {
			s = physconst.DepthStriderMaxLevel
		}
		if !ent.OnGround {
			s /= 2
		}
		horizontalInertia += (0.546 - horizontalInertia) * s / 3
		acceleration += (0.7 - acceleration) * s / 3
	}

	if ent.DolphinsGrace > 0 {
		horizontalInertia = physconst.DolphinsGraceInertia
	}

	e.applyHeading(ent, strafe, forward, acceleration)

	lastY := ent.Pos.Y
	e.Collision.MoveEntity(w, ent, ent.Vel.X, ent.Vel.Y, ent.Vel.Z)

	ent.Vel.Y *= horizontalInertia - gravity*gravityMultiplier(ent)
	ent.Vel.X *= horizontalInertia
	ent.Vel.Z *= horizontalInertia

	if ent.IsCollidedHorizontally {
		dy := 0.6 + ent.Vel.Y - (ent.Pos.Y - lastY)
		if !e.Collision.WouldCollide(w, ent, ent.Vel.X, dy, ent.Vel.Z) {
			ent.Vel.Y = physconst.OutOfLiquidImpulse
		}
	}
}

func (e *Engine) moveElytra(w world.World, ent *entity.Entity, strafe, forward float64) {
	pitch := ent.Pitch
	h := math.Hypot(ent.Vel.X, ent.Vel.Z)
	c := math.Cos(pitch)
	c2 := c * c

	ent.Vel.Y += physconst.Gravity * gravityMultiplier(ent) * (-1 + 0.75*c2)

	lookX, _, lookZ := lookVector(ent.Yaw, pitch)

	if ent.Vel.Y < 0 && c > 0 {
		m := ent.Vel.Y * -0.1 * c2
		ent.Vel.X += lookX * m / c
		ent.Vel.Y += m
		ent.Vel.Z += lookZ * m / c
	}

	if pitch < 0 && c > 0 {
		m := h * -math.Sin(pitch) * 0.04
		ent.Vel.X -= lookX * m / c
		ent.Vel.Y += m * 3.2
		ent.Vel.Z -= lookZ * m / c
	}

	if c > 0 {
		ent.Vel.X += (lookX/c*h - ent.Vel.X) * 0.1
		ent.Vel.Z += (lookZ/c*h - ent.Vel.Z) * 0.1
	}

	ent.Vel.X *= 0.99
	ent.Vel.Y *= 0.98
	ent.Vel.Z *= 0.99

	e.Collision.MoveEntity(w, ent, ent.Vel.X, ent.Vel.Y, ent.Vel.Z)

	if ent.OnGround {
		ent.ElytraFlying = false
	}
}

func (e *Engine) moveNormal(w world.World, ent *entity.Entity, strafe, forward float64) {
	var inertia, acceleration float64

	if ent.OnGround {
		slip := catalogue.DefaultSlipperiness
		if b := w.GetBlock(int(math.Floor(ent.Pos.X)), int(math.Floor(ent.Pos.Y))-1, int(math.Floor(ent.Pos.Z))); b != nil {
			slip = e.Catalogue.Slipperiness(int32(b.Type()))
		}
		inertia = slip * 0.91

		attrSpeed := e.effectiveMovementSpeed(ent)
		acceleration = attrSpeed * physconst.FrictionSpeedFactor / (inertia * inertia * inertia)
		if acceleration < 0 {
			acceleration = 0
		}
	} else {
		inertia = physconst.AirborneInertia
		acceleration = physconst.AirborneAcceleration
		if ent.Control.Sprint {
			acceleration += 0.02 * 0.3
		}
	}

	e.applyHeading(ent, strafe, forward, acceleration)

	if e.isOnLadder(w, ent.Pos) {
		clamp := func(v, limit float64) float64 {
			if v > limit {
				return limit
			}
			if v < -limit {
				return -limit
			}
			return v
		}
		ent.Vel.X = clamp(ent.Vel.X, physconst.LadderMaxSpeed)
		ent.Vel.Z = clamp(ent.Vel.Z, physconst.LadderMaxSpeed)
		minY := -physconst.LadderMaxSpeed
		if ent.Control.Sneak {
			minY = 0
		}
		if ent.Vel.Y < minY {
			ent.Vel.Y = minY
		}
	}

	e.Collision.MoveEntity(w, ent, ent.Vel.X, ent.Vel.Y, ent.Vel.Z)

	if e.isOnLadder(w, ent.Pos) && (ent.IsCollidedHorizontally || (e.Features != nil && e.Features.Enabled(FeatureClimbUsingJump) && ent.Control.Jump)) {
		ent.Vel.Y = physconst.LadderClimbSpeed
	}

	if ent.Levitation > 0 {
		ent.Vel.Y += (physconst.LevitationRisePerLevel*float64(ent.Levitation) - ent.Vel.Y) * 0.2
	} else {
		ent.Vel.Y -= physconst.Gravity * gravityMultiplier(ent)
	}
	ent.Vel.Y *= physconst.AirDrag
	ent.Vel.X *= inertia
	ent.Vel.Z *= inertia
}

// SimulatePlayer runs one tick of spec.md §4.2's full orchestration:
// water/lava detection and current, the pre-jump dead zone, jumping,
// heading derivation, elytra state recompute, firework thrust, and the
// regime-dispatched move.
func (e *Engine) SimulatePlayer(w world.World, ent *entity.Entity) {
	playerBB := aabb.FromPositionSize(ent.Pos.X, ent.Pos.Y, ent.Pos.Z, physconst.PlayerHalfWidth, physconst.PlayerHeight)

	waterBB := playerBB.Contract(0.001, 0.401, 0.001)
	ent.IsInWater = e.Liquid.IsInWaterApplyCurrent(w, waterBB, &ent.Vel)

	lavaBB := playerBB.Contract(0.1, 0.4, 0.1)
	ent.IsInLava = e.Liquid.IsInLava(w, lavaBB)

	ent.Vel.DeadZone(physconst.NegligibleVelocity)

	if ent.Control.Jump || ent.JumpQueued {
		if ent.JumpTicks > 0 {
			ent.JumpTicks--
		}
		switch {
		case ent.IsInWater || ent.IsInLava:
			ent.Vel.Y += 0.04
		case ent.OnGround && ent.JumpTicks == 0:
			vy := physconst.JumpPowerBase
			if e.isHoneyBelow(w, ent.Pos) {
				vy *= physconst.HoneyblockJumpSpeed
			}
			vy += physconst.JumpBoostPerLevel * float64(ent.JumpBoost)
			ent.Vel.Y = vy

			if ent.Control.Sprint {
				yaw := math.Pi - ent.Yaw
				ent.Vel.X += -math.Sin(yaw) * physconst.SprintJumpBoost
				ent.Vel.Z += math.Cos(yaw) * physconst.SprintJumpBoost
			}
			ent.JumpTicks = physconst.AutojumpCooldown
		}
	} else {
		ent.JumpTicks = 0
	}
	ent.JumpQueued = false

	strafe := ent.Control.Strafe() * 0.98
	forward := ent.Control.ForwardAxis() * 0.98
	if ent.Control.Sneak {
		strafe *= physconst.SneakSpeed
		forward *= physconst.SneakSpeed
	}

	ent.ElytraFlying = ent.ElytraFlying && ent.ElytraEquipped && !ent.OnGround && ent.Levitation == 0

	if ent.FireworkRocketDuration > 0 && ent.ElytraFlying {
		lookX, lookY, lookZ := lookVector(ent.Yaw, ent.Pitch)
		ent.Vel.X += lookX*0.1 + (lookX*1.5-ent.Vel.X)*0.5
		ent.Vel.Y += lookY*0.1 + (lookY*1.5-ent.Vel.Y)*0.5
		ent.Vel.Z += lookZ*0.1 + (lookZ*1.5-ent.Vel.Z)*0.5
		ent.FireworkRocketDuration--
	} else if !ent.ElytraFlying {
		ent.FireworkRocketDuration = 0
	}

	e.moveEntityWithHeading(w, ent, strafe, forward)
}
