// Package physics is the public facade spec.md §6 describes:
// Physics(catalogue, world) wiring the collision, liquid, and
// movement engines together, plus FeatureList, the top-level
// constructor for a world version's resolved feature set.
package physics

import (
	"fmt"

	"github.com/go-mclib/physics/pkg/catalogue"
	"github.com/go-mclib/physics/pkg/collision"
	"github.com/go-mclib/physics/pkg/entity"
	"github.com/go-mclib/physics/pkg/feature"
	"github.com/go-mclib/physics/pkg/liquid"
	"github.com/go-mclib/physics/pkg/movement"
	"github.com/go-mclib/physics/pkg/physconst"
	"github.com/go-mclib/physics/pkg/playerstate"
	"github.com/go-mclib/physics/pkg/world"
)

// Feature names gating which liquid gravity model applies (spec.md §7).
const (
	FeatureIndependentLiquidGravity  = "independentLiquidGravity"
	FeatureProportionalLiquidGravity = "proportionalLiquidGravity"
)

// Physics composes the per-version-frozen catalogue and feature set
// with the collision, liquid, and movement engines built over them.
// Construct once per (world, version) pair; immutable and safe to
// share across concurrently-ticked entities thereafter (spec.md §5).
type Physics struct {
	Catalogue *catalogue.Catalogue
	Features  *feature.Set
	Collision *collision.Engine
	Liquid    *liquid.Engine
	Movement  *movement.Engine
}

// New resolves the liquid-gravity feature gate and wires the engines
// together. It fails if neither independentLiquidGravity nor
// proportionalLiquidGravity is enabled for this feature set - the
// caller has an unrecognized version and must abort (spec.md §7).
func New(cat *catalogue.Catalogue, features *feature.Set) (*Physics, error) {
	waterGravity, lavaGravity, ok := physconst.LiquidGravity(
		features.Enabled(FeatureIndependentLiquidGravity),
		features.Enabled(FeatureProportionalLiquidGravity),
	)
	if !ok {
		return nil, fmt.Errorf("physics: no liquid gravity settings matched this feature set")
	}

	col := collision.New(cat, features)
	liq := liquid.New(cat)
	mov := movement.New(cat, features, col, liq, waterGravity, lavaGravity)

	return &Physics{
		Catalogue: cat,
		Features:  features,
		Collision: col,
		Liquid:    liq,
		Movement:  mov,
	}, nil
}

// FeatureList resolves defs against version, matching spec.md §6's
// FeatureList(features, version) constructor.
func FeatureList(defs []feature.Definition, version feature.Version) *feature.Set {
	return feature.New(defs, version)
}

// NewPlayerState snapshots bot into a transient per-tick PlayerState,
// matching spec.md §6's PlayerState(bot, control) constructor.
func NewPlayerState(bot playerstate.Bot, control entity.Control) *playerstate.PlayerState {
	return playerstate.New(bot, control)
}

// SimulatePlayer runs one tick against ps.Entity and w.
func (p *Physics) SimulatePlayer(w world.World, ps *playerstate.PlayerState) {
	p.Movement.SimulatePlayer(w, ps.Entity)
}

// AdjustPositionHeight snaps ent's position onto the nearest solid
// surface directly below it, without running a full tick - useful
// after a host teleports or spawns an entity mid-air over known
// terrain (spec.md §6). Only the block levels from two below the
// entity's block up to its own are searched; if no surface is found
// there, the position is left unchanged.
func (p *Physics) AdjustPositionHeight(w world.World, ent *entity.Entity) {
	if h, ok := p.Collision.SurfaceHeightAt(w, ent.Pos.X, ent.Pos.Y, ent.Pos.Z); ok {
		ent.Pos.Y = h
	}
}
