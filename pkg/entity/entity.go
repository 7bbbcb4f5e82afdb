// Package entity defines the mutable per-tick state spec.md §3 calls
// Entity and Control: the single argument the rest of the simulator
// reads and rewrites once per tick.
package entity

import (
	"github.com/go-mclib/physics/pkg/attribute"
	"github.com/go-mclib/physics/pkg/vec3"
)

// AttributeMovementSpeed is the canonical attribute-map key for the
// movement speed attribute, matching the resource key the external
// game-data catalogue's attributesByName.movementSpeed would resolve to.
const AttributeMovementSpeed = "movement_speed"

// Control mirrors a single tick's boolean input state. Fields are
// read as 0/1 numbers by ForwardAxis/Strafe.
type Control struct {
	Forward, Back, Left, Right bool
	Jump                       bool
	Sprint                     bool
	Sneak                      bool
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Strafe returns Right - Left as a signed number.
func (c Control) Strafe() float64 { return b2f(c.Right) - b2f(c.Left) }

// ForwardAxis returns Forward - Back as a signed number.
func (c Control) ForwardAxis() float64 { return b2f(c.Forward) - b2f(c.Back) }

// Entity is the mutable per-tick state the simulator advances.
type Entity struct {
	Pos vec3.Vec3
	Vel vec3.Vec3

	Yaw, Pitch float64 // radians

	OnGround               bool
	IsInWater              bool
	IsInLava               bool
	IsInWeb                bool
	IsCollidedHorizontally bool
	IsCollidedVertically   bool
	ElytraFlying           bool

	JumpTicks              int
	FireworkRocketDuration int
	JumpQueued             bool

	// Status-effect amplifiers: 0 = absent, else amplifier+1.
	JumpBoost     int
	Speed         int
	Slowness      int
	DolphinsGrace int
	SlowFalling   int
	Levitation    int

	DepthStrider   int
	ElytraEquipped bool

	Attributes map[string]*attribute.Value

	Control Control
}

// New returns an Entity with an initialized, empty attribute map.
func New() *Entity {
	return &Entity{Attributes: make(map[string]*attribute.Value)}
}

// MovementSpeed returns the movement_speed attribute, creating a
// default-0.1 one if the host never populated it.
func (e *Entity) MovementSpeed() *attribute.Value {
	if v, ok := e.Attributes[AttributeMovementSpeed]; ok {
		return v
	}
	v := attribute.New(0.1)
	e.Attributes[AttributeMovementSpeed] = v
	return v
}
