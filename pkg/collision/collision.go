// Package collision implements the CollisionEngine from spec.md §4.1:
// AABB sweep resolution against a block world, the sneak-on-ledge
// edge guard, the step-up heuristic, and the post-collision block
// effects (soul sand, honey, cobweb, bubble columns).
package collision

import (
	"math"

	"github.com/go-mclib/physics/pkg/aabb"
	"github.com/go-mclib/physics/pkg/catalogue"
	"github.com/go-mclib/physics/pkg/entity"
	"github.com/go-mclib/physics/pkg/feature"
	"github.com/go-mclib/physics/pkg/physconst"
	"github.com/go-mclib/physics/pkg/world"
)

// Feature names gating the post-collision block effects (spec.md §4.1
// steps 9-10).
const (
	FeatureVelocityBlocksOnCollision = "velocityBlocksOnCollision"
	FeatureVelocityBlocksOnTop       = "velocityBlocksOnTop"
)

// Engine resolves entity movement against a static block world. It
// holds only immutable per-version configuration and is safe to share
// across concurrently-ticked entities, provided the world itself
// isn't mutated mid-tick.
type Engine struct {
	Catalogue *catalogue.Catalogue
	Features  *feature.Set
}

// New builds a CollisionEngine over a frozen catalogue and feature set.
func New(cat *catalogue.Catalogue, features *feature.Set) *Engine {
	return &Engine{Catalogue: cat, Features: features}
}

// getSurroundingBBs collects every block collision shape whose
// translated box falls inside the integer lattice spanned by query,
// per spec.md §4.1: y from floor(minY)-1 (inclusive) so tall shapes
// based below minY are still considered, through floor(maxY).
func (e *Engine) getSurroundingBBs(w world.World, query aabb.AABB) []aabb.AABB {
	minX := int(math.Floor(query.MinX))
	maxX := int(math.Floor(query.MaxX))
	minY := int(math.Floor(query.MinY)) - 1
	maxY := int(math.Floor(query.MaxY))
	minZ := int(math.Floor(query.MinZ))
	maxZ := int(math.Floor(query.MaxZ))

	var out []aabb.AABB
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				b := w.GetBlock(x, y, z)
				if b == nil {
					continue
				}
				for _, s := range b.Shapes() {
					out = append(out, aabb.New(
						s[0]+float64(x), s[1]+float64(y), s[2]+float64(z),
						s[3]+float64(x), s[4]+float64(y), s[5]+float64(z),
					))
				}
			}
		}
	}
	return out
}

// MoveEntity resolves a candidate translation (dx, dy, dz) against w
// and updates e's position, velocity, and collision/web flags in place.
func (e *Engine) MoveEntity(w world.World, ent *entity.Entity, dx, dy, dz float64) {
	if ent.IsInWeb {
		dx *= 0.25
		dy *= 0.05
		dz *= 0.25
		ent.Vel.Zero()
		ent.IsInWeb = false
	}

	oldVelX, oldVelY, oldVelZ := dx, dy, dz

	playerBB := aabb.FromPositionSize(ent.Pos.X, ent.Pos.Y, ent.Pos.Z, physconst.PlayerHalfWidth, physconst.PlayerHeight)

	if ent.Control.Sneak && ent.OnGround {
		dx, dz = e.sneakEdgeGuard(w, playerBB, dx, dz)
	}

	preStepDX, preStepDZ := dx, dz

	query := playerBB.Extend(dx, dy, dz)
	shapes := e.getSurroundingBBs(w, query)

	for _, s := range shapes {
		dy = s.ComputeOffsetY(playerBB, dy)
	}
	playerBB = playerBB.Offset3(0, dy, 0)

	for _, s := range shapes {
		dx = s.ComputeOffsetX(playerBB, dx)
	}
	playerBB = playerBB.Offset3(dx, 0, 0)

	for _, s := range shapes {
		dz = s.ComputeOffsetZ(playerBB, dz)
	}
	playerBB = playerBB.Offset3(0, 0, dz)

	horizontalClamped := dx != preStepDX || dz != preStepDZ
	onGroundAfterCollision := dy != oldVelY && oldVelY < 0

	if physconst.StepHeight > 0 && horizontalClamped && (ent.OnGround || onGroundAfterCollision) {
		origBB := aabb.FromPositionSize(ent.Pos.X, ent.Pos.Y, ent.Pos.Z, physconst.PlayerHalfWidth, physconst.PlayerHeight)
		if stepDX, stepDY, stepDZ, ok := e.tryStepUp(w, origBB, preStepDX, preStepDZ, dx, dz); ok {
			dx, dy, dz = stepDX, stepDY, stepDZ
			playerBB = origBB.Offset3(stepDX, -stepDY, stepDZ)
		}
	}

	ent.Pos.X = playerBB.MinX + physconst.PlayerHalfWidth
	ent.Pos.Y = playerBB.MinY
	ent.Pos.Z = playerBB.MinZ + physconst.PlayerHalfWidth

	ent.IsCollidedHorizontally = dx != oldVelX || dz != oldVelZ
	ent.IsCollidedVertically = dy != oldVelY
	ent.OnGround = ent.IsCollidedVertically && oldVelY < 0

	if dx != oldVelX {
		ent.Vel.X = 0
	}
	if dz != oldVelZ {
		ent.Vel.Z = 0
	}
	if dy != oldVelY {
		below := w.GetBlock(int(math.Floor(ent.Pos.X)), int(math.Floor(ent.Pos.Y-0.2)), int(math.Floor(ent.Pos.Z)))
		if below != nil && e.Catalogue.IsSlimeBlock(int32(below.Type())) && !ent.Control.Sneak {
			ent.Vel.Y = -ent.Vel.Y
		} else {
			ent.Vel.Y = 0
		}
	}

	e.applyPostStepBlockEffects(w, ent, playerBB)
}

// SurfaceHeightAt finds the highest top surface of a solid block
// collider at or below (x, y, z)'s column, used to snap a freshly
// placed position onto the ground without running a full tick
// (spec.md §6's adjustPositionHeight). Only block levels floor(y)-2
// through floor(y) are searched; a surface further down is not found.
func (e *Engine) SurfaceHeightAt(w world.World, x, y, z float64) (float64, bool) {
	query := aabb.New(x-0.001, y-1, z-0.001, x+0.001, y, z+0.001)

	best := math.Inf(-1)
	found := false
	for _, s := range e.getSurroundingBBs(w, query) {
		if s.MaxY <= y && s.MaxY > best {
			best = s.MaxY
			found = true
		}
	}
	return best, found
}

// WouldCollide reports whether the entity's AABB, translated by
// (dx, dy, dz) from its current position, would intersect any static
// block collider. Used by the liquid jump-out-of-water impulse test
// (spec.md §4.2), which needs a pure probe with no side effects.
func (e *Engine) WouldCollide(w world.World, ent *entity.Entity, dx, dy, dz float64) bool {
	bb := aabb.FromPositionSize(ent.Pos.X, ent.Pos.Y, ent.Pos.Z, physconst.PlayerHalfWidth, physconst.PlayerHeight).Offset3(dx, dy, dz)
	for _, s := range e.getSurroundingBBs(w, bb) {
		if bb.Intersects(s) {
			return true
		}
	}
	return false
}

// sneakEdgeGuard shrinks dx, then dz, then both jointly toward zero in
// 0.05 steps for as long as no block lies in the lattice around the
// box swept by that delta and lowered by one block, preventing a
// sneaking player from walking off a ledge.
func (e *Engine) sneakEdgeGuard(w world.World, bb aabb.AABB, dx, dz float64) (float64, float64) {
	const step = physconst.SneakEdgeStep

	for dx != 0 && len(e.getSurroundingBBs(w, bb.Offset3(dx, -1, 0))) == 0 {
		dx = shrinkTowardZero(dx, step)
	}
	for dz != 0 && len(e.getSurroundingBBs(w, bb.Offset3(0, -1, dz))) == 0 {
		dz = shrinkTowardZero(dz, step)
	}
	for dx != 0 && dz != 0 && len(e.getSurroundingBBs(w, bb.Offset3(dx, -1, dz))) == 0 {
		dx = shrinkTowardZero(dx, step)
		dz = shrinkTowardZero(dz, step)
	}
	return dx, dz
}

func shrinkTowardZero(v, step float64) float64 {
	if v < step && v >= -step {
		return 0
	}
	if v > 0 {
		return v - step
	}
	return v + step
}

type stepCandidate struct {
	dx, dy, dz float64
	box        aabb.AABB
	shapes     []aabb.AABB
}

// tryStepUp implements spec.md §4.1 step 6: two candidate resolutions
// computed from the pre-move AABB, the larger horizontal-progress one
// kept, re-clamped downward, and discarded unless it beats the flat
// result. The returned dy is negated, matching the reference client's
// verbatim (and, per spec.md §9, intentionally ambiguous) behavior.
func (e *Engine) tryStepUp(w world.World, origBB aabb.AABB, dx, dz, flatDX, flatDZ float64) (outDX, outDY, outDZ float64, ok bool) {
	candA := e.stepCandidate(w, origBB, origBB.Extend(dx, physconst.StepHeight, dz), dx, dz)
	candB := e.stepCandidate(w, origBB, origBB.Extend(0, physconst.StepHeight, 0), dx, dz)

	chosen := candA
	if candB.dx*candB.dx+candB.dz*candB.dz > candA.dx*candA.dx+candA.dz*candA.dz {
		chosen = candB
	}

	downDelta := -physconst.StepHeight
	for _, s := range chosen.shapes {
		downDelta = s.ComputeOffsetY(chosen.box, downDelta)
	}
	finalDY := chosen.dy + downDelta

	flatHorizSq := flatDX*flatDX + flatDZ*flatDZ
	stepHorizSq := chosen.dx*chosen.dx + chosen.dz*chosen.dz
	if stepHorizSq <= flatHorizSq {
		return 0, 0, 0, false
	}

	return chosen.dx, -finalDY, chosen.dz, true
}

func (e *Engine) stepCandidate(w world.World, origBB, expanded aabb.AABB, dx, dz float64) stepCandidate {
	shapes := e.getSurroundingBBs(w, expanded)
	box := origBB

	dy := physconst.StepHeight
	for _, s := range shapes {
		dy = s.ComputeOffsetY(box, dy)
	}
	box = box.Offset3(0, dy, 0)

	for _, s := range shapes {
		dx = s.ComputeOffsetX(box, dx)
	}
	box = box.Offset3(dx, 0, 0)

	for _, s := range shapes {
		dz = s.ComputeOffsetZ(box, dz)
	}
	box = box.Offset3(0, 0, dz)

	return stepCandidate{dx: dx, dy: dy, dz: dz, box: box, shapes: shapes}
}

// applyPostStepBlockEffects implements spec.md §4.1 steps 9-10: soul
// sand / honey horizontal drag, cobweb, and bubble columns, applied
// against the final, slightly-contracted player AABB.
func (e *Engine) applyPostStepBlockEffects(w world.World, ent *entity.Entity, finalBB aabb.AABB) {
	contracted := finalBB.Contract(0.001, 0.001, 0.001)

	minX := int(math.Floor(contracted.MinX))
	maxX := int(math.Floor(contracted.MaxX))
	minY := int(math.Floor(contracted.MinY))
	maxY := int(math.Floor(contracted.MaxY))
	minZ := int(math.Floor(contracted.MinZ))
	maxZ := int(math.Floor(contracted.MaxZ))

	velocityBlocksOnCollision := e.Features != nil && e.Features.Enabled(FeatureVelocityBlocksOnCollision)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				b := w.GetBlock(x, y, z)
				if b == nil {
					continue
				}
				id := int32(b.Type())

				if velocityBlocksOnCollision {
					if e.Catalogue.IsSoulSand(id) {
						ent.Vel.X *= physconst.SoulsandSpeed
						ent.Vel.Z *= physconst.SoulsandSpeed
					} else if e.Catalogue.IsHoneyBlock(id) {
						ent.Vel.X *= physconst.HoneyblockSpeed
						ent.Vel.Z *= physconst.HoneyblockSpeed
					}
				}

				if e.Catalogue.IsCobweb(id) {
					ent.IsInWeb = true
				}

				if e.Catalogue.IsBubbleColumn(id) {
					e.applyBubbleColumn(w, ent, b, x, y, z)
				}
			}
		}
	}

	if e.Features != nil && e.Features.Enabled(FeatureVelocityBlocksOnTop) {
		bx, by, bz := int(math.Floor(ent.Pos.X)), int(math.Floor(ent.Pos.Y-0.5)), int(math.Floor(ent.Pos.Z))
		if b := w.GetBlock(bx, by, bz); b != nil {
			id := int32(b.Type())
			if e.Catalogue.IsSoulSand(id) {
				ent.Vel.X *= physconst.SoulsandSpeed
				ent.Vel.Z *= physconst.SoulsandSpeed
			} else if e.Catalogue.IsHoneyBlock(id) {
				ent.Vel.X *= physconst.HoneyblockSpeed
				ent.Vel.Z *= physconst.HoneyblockSpeed
			}
		}
	}
}

func (e *Engine) applyBubbleColumn(w world.World, ent *entity.Entity, b world.Block, x, y, z int) {
	isDown := b.Metadata() == 0

	above := w.GetBlock(x, y+1, z)
	surface := above == nil || !world.HasCollision(above)

	drags := physconst.BubbleColumnSubmerged
	if surface {
		drags = physconst.BubbleColumnSurface
	}

	if isDown {
		ent.Vel.Y = math.Max(drags.MaxDown, ent.Vel.Y-drags.Down)
	} else {
		ent.Vel.Y = math.Min(drags.MaxUp, ent.Vel.Y+drags.Up)
	}
}
