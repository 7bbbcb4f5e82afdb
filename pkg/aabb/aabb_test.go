package aabb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPositionSize(t *testing.T) {
	a := FromPositionSize(0.5, 64, 0.5, 0.3, 1.8)
	assert.Equal(t, AABB{MinX: 0.2, MinY: 64, MinZ: 0.2, MaxX: 0.8, MaxY: 65.8, MaxZ: 0.8}, a)
}

func TestExtendGrowsTowardSign(t *testing.T) {
	a := New(0, 0, 0, 1, 1, 1)
	grown := a.Extend(1, -1, 0)
	assert.Equal(t, AABB{MinX: 0, MinY: -1, MinZ: 0, MaxX: 2, MaxY: 1, MaxZ: 1}, grown)
}

func TestContract(t *testing.T) {
	a := New(0, 0, 0, 1, 1, 1)
	c := a.Contract(0.1, 0.1, 0.1)
	assert.Equal(t, AABB{MinX: 0.1, MinY: 0.1, MinZ: 0.1, MaxX: 0.9, MaxY: 0.9, MaxZ: 0.9}, c)
}

func TestIntersects(t *testing.T) {
	a := New(0, 0, 0, 1, 1, 1)
	assert.True(t, a.Intersects(New(0.5, 0.5, 0.5, 1.5, 1.5, 1.5)))
	assert.False(t, a.Intersects(New(1, 0, 0, 2, 1, 1)), "touching faces are not an intersection")
}

func TestComputeOffsetYBlocksFall(t *testing.T) {
	player := New(0, 1, 0, 1, 2, 1)
	ground := New(0, 0, 0, 1, 1, 1)

	offset := ground.ComputeOffsetY(player, -1)
	assert.Equal(t, 0.0, offset, "falling into the ground from exactly one unit up should clamp to 0")
}

func TestComputeOffsetYNoOverlapPassesThrough(t *testing.T) {
	player := New(5, 1, 5, 6, 2, 6)
	ground := New(0, 0, 0, 1, 1, 1)

	offset := player.ComputeOffsetY(ground, -1)
	assert.Equal(t, -1.0, offset, "disjoint boxes on X/Z never collide")
}

func TestComputeOffsetXClampsPositiveApproach(t *testing.T) {
	player := New(0, 0, 0, 1, 1, 1)
	wall := New(1.5, 0, 0, 2.5, 1, 1)

	offset := wall.ComputeOffsetX(player, 1.0)
	assert.Equal(t, 0.5, offset)
}

func TestComputeOffsetZClampsNegativeApproach(t *testing.T) {
	player := New(0, 0, 0, 1, 1, 1)
	wall := New(0, 0, -1.5, 1, 1, -0.5)

	offset := wall.ComputeOffsetZ(player, -1.0)
	assert.Equal(t, -0.5, offset)
}

func TestOffset3DoesNotMutateOriginal(t *testing.T) {
	a := New(0, 0, 0, 1, 1, 1)
	b := a.Offset3(1, 1, 1)
	assert.Equal(t, AABB{MinX: 0, MinY: 0, MinZ: 0, MaxX: 1, MaxY: 1, MaxZ: 1}, a)
	assert.Equal(t, AABB{MinX: 1, MinY: 1, MinZ: 1, MaxX: 2, MaxY: 2, MaxZ: 2}, b)
}
