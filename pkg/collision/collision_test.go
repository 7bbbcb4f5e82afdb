package collision_test

import (
	"testing"

	"github.com/go-mclib/physics/internal/testworld"
	"github.com/go-mclib/physics/pkg/catalogue"
	"github.com/go-mclib/physics/pkg/collision"
	"github.com/go-mclib/physics/pkg/entity"
	"github.com/go-mclib/physics/pkg/feature"
	"github.com/go-mclib/physics/pkg/physconst"
	"github.com/go-mclib/physics/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halfSlab is a collision shape occupying the bottom half of a block,
// the classic step-up obstacle.
var halfSlab = world.Shape{0, 0, 0, 1, 0.5, 1}

func newEngine(t *testing.T, data *testworld.GameData, defs ...feature.Definition) (*collision.Engine, *catalogue.Catalogue) {
	t.Helper()
	cat, err := catalogue.New(data)
	require.NoError(t, err)
	fset := feature.New(defs, "1.16")
	return collision.New(cat, fset), cat
}

// S5 sneak on ledge: standing on a 1x1 pillar, sneaking, the edge guard
// shrinks the Z input until the swept box still reaches the pillar's
// column, so the entity stays on the ledge instead of walking off it.
func TestSneakEdgeGuardPreventsWalkingOffLedge(t *testing.T) {
	w := testworld.New()
	w.SetSolid(0, 63, 0, 1)

	data := testworld.NewGameData()
	eng, _ := newEngine(t, data)

	e := entity.New()
	e.Pos.Set(0.5, 64, 0.5)
	e.OnGround = true
	e.Control.Sneak = true
	e.Control.Forward = true

	eng.MoveEntity(w, e, 0, -0.0784, 1)

	assert.Equal(t, 0.5, e.Pos.X)
	assert.True(t, e.OnGround)
}

// S8 slime bounce: falling onto a slime block without sneaking
// reflects vel.y instead of zeroing it.
func TestSlimeBounceReflectsVelocity(t *testing.T) {
	data := testworld.NewGameData()
	w := testworld.New()
	slimeID, _ := data.BlockID("slime_block")
	w.SetSolid(0, 63, 0, int(slimeID))

	eng, _ := newEngine(t, data)

	e := entity.New()
	e.Pos.Set(0.5, 64.0, 0.5)
	e.Vel.Set(0, -0.5, 0)

	eng.MoveEntity(w, e, 0, -0.5, 0)

	assert.Equal(t, 0.5, e.Vel.Y)
}

func TestSlimeBounceSuppressedWhenSneaking(t *testing.T) {
	data := testworld.NewGameData()
	w := testworld.New()
	slimeID, _ := data.BlockID("slime_block")
	w.SetSolid(0, 63, 0, int(slimeID))

	eng, _ := newEngine(t, data)

	e := entity.New()
	e.Pos.Set(0.5, 64.0, 0.5)
	e.Vel.Set(0, -0.5, 0)
	e.Control.Sneak = true

	eng.MoveEntity(w, e, 0, -0.5, 0)

	assert.Equal(t, 0.0, e.Vel.Y)
}

// S4 step-up onto a half-block-tall slab: horizontal motion into a
// shape shorter than stepHeight should make more horizontal progress
// than a flat (non-stepped) resolution would allow, which fully blocks
// at the slab's face.
func TestStepUpOntoSlab(t *testing.T) {
	data := testworld.NewGameData()
	w := testworld.New()
	w.SetSolid(0, 63, 0, 1) // floor the entity starts on
	w.SetBlock(&testworld.Block{X: 1, Y: 64, Z: 0, TypeID: 1, ShapeList: []world.Shape{halfSlab}})

	eng, _ := newEngine(t, data)

	e := entity.New()
	e.Pos.Set(0.7, 64, 0.5)
	e.OnGround = true

	eng.MoveEntity(w, e, 0.3, 0, 0)

	assert.Greater(t, e.Pos.X, 0.7, "step-up should make more horizontal progress than the fully-blocked flat resolution")
}

func TestBlockedByFullHeightWallDoesNotStepUp(t *testing.T) {
	data := testworld.NewGameData()
	w := testworld.New()
	w.SetSolid(0, 63, 0, 1)
	w.SetSolid(1, 64, 0, 1) // full-height wall, too tall to step over

	eng, _ := newEngine(t, data)

	e := entity.New()
	e.Pos.Set(0.7, 64, 0.5)
	e.OnGround = true

	eng.MoveEntity(w, e, 0.3, 0, 0)

	assert.InDelta(t, 64.0, e.Pos.Y, 1e-9)
	assert.True(t, e.IsCollidedHorizontally)
}

func TestPostStepSoulSandSlowsMotionWhenFeatureEnabled(t *testing.T) {
	data := testworld.NewGameData()
	soulSandID, _ := data.BlockID("soul_sand")

	w := testworld.New()
	// soul sand's collision shape is lower than a full cube, so an entity
	// resting on it overlaps the block
	w.SetBlock(&testworld.Block{X: 0, Y: 63, Z: 0, TypeID: int(soulSandID), ShapeList: []world.Shape{{0, 0, 0, 1, 0.875, 1}}})

	defs := []feature.Definition{{Name: collision.FeatureVelocityBlocksOnCollision, Versions: []feature.ConditionGroup{{">= 1.0"}}}}
	eng, _ := newEngine(t, data, defs...)

	e := entity.New()
	e.Pos.Set(0.5, 64, 0.5)
	e.Vel.Set(1, 0, 1)

	eng.MoveEntity(w, e, 0, -0.01, 0)

	assert.InDelta(t, physconst.SoulsandSpeed, e.Vel.X, 1e-12)
	assert.InDelta(t, physconst.SoulsandSpeed, e.Vel.Z, 1e-12)
}

func TestCobwebSetsIsInWebNextTick(t *testing.T) {
	data := testworld.NewGameData()
	cobwebID, _ := data.BlockID("cobweb")

	w := testworld.New()
	// a cobweb has no collision shape; the entity stands inside it
	w.SetBlock(&testworld.Block{X: 0, Y: 64, Z: 0, TypeID: int(cobwebID)})

	eng, _ := newEngine(t, data)

	e := entity.New()
	e.Pos.Set(0.5, 64, 0.5)

	assert.False(t, e.IsInWeb)
	eng.MoveEntity(w, e, 0, -0.001, 0)
	assert.True(t, e.IsInWeb)
}

func TestBubbleColumnPushesUpAtSurface(t *testing.T) {
	data := testworld.NewGameData("bubble_column")
	bubbleID, _ := data.BlockID("bubble_column")

	w := testworld.New()
	w.SetBlock(&testworld.Block{X: 0, Y: 63, Z: 0, TypeID: int(bubbleID), MetadataV: 1, ShapeList: []world.Shape{halfSlab}})

	eng, _ := newEngine(t, data)

	e := entity.New()
	e.Pos.Set(0.5, 63.9, 0.5)
	e.Vel.Set(0, 0.2, 0)

	eng.MoveEntity(w, e, 0, 0, 0)

	assert.InDelta(t, 0.3, e.Vel.Y, 1e-12)
}

func TestWebScalesDeltaAndClearsFlag(t *testing.T) {
	data := testworld.NewGameData()
	w := testworld.New()

	eng, _ := newEngine(t, data)

	e := entity.New()
	e.Pos.Set(0.5, 64, 0.5)
	e.Vel.Set(5, 5, 5)
	e.IsInWeb = true

	eng.MoveEntity(w, e, 1, 1, 1)

	assert.InDelta(t, 0.5+0.25, e.Pos.X, 1e-12)
	assert.InDelta(t, 64+0.05, e.Pos.Y, 1e-12)
	assert.InDelta(t, 0.5+0.25, e.Pos.Z, 1e-12)
	assert.Equal(t, 0.0, e.Vel.X)
	assert.False(t, e.IsInWeb, "entering web clears the flag; it is re-set on the next tick by post-step effects")
}
