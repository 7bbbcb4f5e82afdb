// Package liquid implements the LiquidEngine from spec.md §4.3: water
// and lava detection within an AABB, rendered fluid depth, and the
// per-column flow vector that pushes an entity along with a current.
package liquid

import (
	"math"

	"github.com/go-mclib/physics/pkg/aabb"
	"github.com/go-mclib/physics/pkg/catalogue"
	"github.com/go-mclib/physics/pkg/physconst"
	"github.com/go-mclib/physics/pkg/vec3"
	"github.com/go-mclib/physics/pkg/world"
)

// Engine computes fluid presence and flow against a frozen catalogue.
type Engine struct {
	Catalogue *catalogue.Catalogue
}

// New builds a LiquidEngine over cat.
func New(cat *catalogue.Catalogue) *Engine {
	return &Engine{Catalogue: cat}
}

// IsWaterBearing reports whether a block counts as water for
// detection purposes: a real water block, a water-like block
// (seagrass, kelp, bubble columns...), or any waterlogged block.
func (e *Engine) IsWaterBearing(b world.Block) bool {
	if b == nil {
		return false
	}
	id := int32(b.Type())
	return e.Catalogue.IsWater(id) || e.Catalogue.IsWaterLike(id) || world.Waterlogged(b)
}

// getRenderedDepth returns -1 if b is absent or not water/water-like
// /waterlogged; 0 for water-like or waterlogged blocks; otherwise the
// water block's metadata if it is below 8 (a falling source, whose
// high bit sets metadata >= 8, renders as depth 0 - full).
func (e *Engine) getRenderedDepth(b world.Block) int {
	if b == nil {
		return -1
	}
	id := int32(b.Type())
	if e.Catalogue.IsWaterLike(id) || world.Waterlogged(b) {
		return 0
	}
	if !e.Catalogue.IsWater(id) {
		return -1
	}
	if md := b.Metadata(); md < 8 {
		return md
	}
	return 0
}

// GetLiquidHeightPercent converts a rendered depth to a 0..1 fraction
// of a full block.
func GetLiquidHeightPercent(depth int) float64 {
	return float64(depth+1) / 9.0
}

// IsInLava reports whether any lava block occupies bb, with no flow
// or current applied (spec.md §4.2 step 2 treats lava presence as a
// plain occupancy test, unlike water's current-bearing detection).
func (e *Engine) IsInLava(w world.World, bb aabb.AABB) bool {
	minX, maxX := int(math.Floor(bb.MinX)), int(math.Floor(bb.MaxX))
	minY, maxY := int(math.Floor(bb.MinY)), int(math.Floor(bb.MaxY))
	minZ, maxZ := int(math.Floor(bb.MinZ)), int(math.Floor(bb.MaxZ))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				b := w.GetBlock(x, y, z)
				if b != nil && e.Catalogue.IsLava(int32(b.Type())) {
					return true
				}
			}
		}
	}
	return false
}

var cardinals = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// GetFlow computes the normalized flow vector at the block (x, y, z),
// matching spec.md §4.3's FlowingFluid.getFlow-derived algorithm.
func (e *Engine) GetFlow(w world.World, b world.Block, x, y, z int) vec3.Vec3 {
	l := e.getRenderedDepth(b)

	var acc vec3.Vec3
	for _, d := range cardinals {
		neighbor := w.GetBlock(x+d[0], y, z+d[1])
		a := e.getRenderedDepth(neighbor)
		if a < 0 {
			if world.HasCollision(neighbor) {
				below := w.GetBlock(x+d[0], y-1, z+d[1])
				aPrime := e.getRenderedDepth(below)
				if aPrime >= 0 {
					contrib := float64(aPrime) - float64(l-8)
					acc.X += float64(d[0]) * contrib
					acc.Z += float64(d[1]) * contrib
				}
			}
			continue
		}
		contrib := float64(a - l)
		acc.X += float64(d[0]) * contrib
		acc.Z += float64(d[1]) * contrib
	}

	metadata := 0
	if b != nil {
		metadata = b.Metadata()
	}
	if metadata >= 8 {
		for _, d := range cardinals {
			neighbor := w.GetBlock(x+d[0], y, z+d[1])
			above := w.GetBlock(x+d[0], y+1, z+d[1])
			if world.HasCollision(neighbor) || world.HasCollision(above) {
				acc.Y = -6
				break
			}
		}
	}

	acc.Normalize()
	return acc
}

// IsInWaterApplyCurrent enumerates the water-bearing blocks whose
// rendered surface falls within bb, sums their flow, and pushes vel
// along the combined current's unit direction scaled by
// physconst.WaterFlowContribution. It reports whether any water-bearing
// block was found in bb at all.
func (e *Engine) IsInWaterApplyCurrent(w world.World, bb aabb.AABB, vel *vec3.Vec3) bool {
	minX, maxX := int(math.Floor(bb.MinX)), int(math.Floor(bb.MaxX))
	minY, maxY := int(math.Floor(bb.MinY)), int(math.Floor(bb.MaxY))
	minZ, maxZ := int(math.Floor(bb.MinZ)), int(math.Floor(bb.MaxZ))

	var acc vec3.Vec3
	found := false

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				b := w.GetBlock(x, y, z)
				if !e.IsWaterBearing(b) {
					continue
				}
				depth := e.getRenderedDepth(b)
				heightPcent := GetLiquidHeightPercent(depth)
				surfaceY := float64(y) + 1 - heightPcent
				if surfaceY > math.Ceil(bb.MaxY) {
					continue
				}
				found = true
				flow := e.GetFlow(w, b, x, y, z)
				acc.Add(flow)
			}
		}
	}

	if acc.Length() > 0 {
		acc.Normalize()
		vel.X += acc.X * physconst.WaterFlowContribution
		vel.Y += acc.Y * physconst.WaterFlowContribution
		vel.Z += acc.Z * physconst.WaterFlowContribution
	}

	return found
}
