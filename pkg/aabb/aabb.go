// Package aabb implements the axis-aligned bounding box primitive used
// throughout collision resolution: the per-axis sweep-offset helpers
// (computeOffsetX/Y/Z) are the load-bearing operation the CollisionEngine
// reduces over every surrounding block shape.
package aabb

// AABB is an axis-aligned box with inclusive bounds on every axis.
// minA <= maxA is an invariant every constructor and mutator preserves.
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// New builds an AABB from explicit bounds.
func New(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	return AABB{MinX: minX, MinY: minY, MinZ: minZ, MaxX: maxX, MaxY: maxY, MaxZ: maxZ}
}

// FromPositionSize builds the player-shaped AABB with feet at (x, y, z)
// and the given half-width and height.
func FromPositionSize(x, y, z, halfWidth, height float64) AABB {
	return AABB{
		MinX: x - halfWidth, MinY: y, MinZ: z - halfWidth,
		MaxX: x + halfWidth, MaxY: y + height, MaxZ: z + halfWidth,
	}
}

// Clone returns a copy of a.
func (a AABB) Clone() AABB {
	return a
}

// Offset translates a in place by (dx, dy, dz).
func (a *AABB) Offset(dx, dy, dz float64) *AABB {
	a.MinX += dx
	a.MaxX += dx
	a.MinY += dy
	a.MaxY += dy
	a.MinZ += dz
	a.MaxZ += dz
	return a
}

// Offset3 returns a new AABB translated by (dx, dy, dz), leaving a unchanged.
func (a AABB) Offset3(dx, dy, dz float64) AABB {
	b := a
	b.Offset(dx, dy, dz)
	return b
}

// Extend grows a toward the signed direction of (dx, dy, dz); it never
// shrinks the box. A zero component leaves that axis untouched.
func (a AABB) Extend(dx, dy, dz float64) AABB {
	b := a
	if dx > 0 {
		b.MaxX += dx
	} else if dx < 0 {
		b.MinX += dx
	}
	if dy > 0 {
		b.MaxY += dy
	} else if dy < 0 {
		b.MinY += dy
	}
	if dz > 0 {
		b.MaxZ += dz
	} else if dz < 0 {
		b.MinZ += dz
	}
	return b
}

// Contract shrinks a symmetrically by (ax, ay, az) on every axis.
func (a AABB) Contract(ax, ay, az float64) AABB {
	return AABB{
		MinX: a.MinX + ax, MinY: a.MinY + ay, MinZ: a.MinZ + az,
		MaxX: a.MaxX - ax, MaxY: a.MaxY - ay, MaxZ: a.MaxZ - az,
	}
}

// Intersects reports whether a and b overlap (touching is not overlap).
func (a AABB) Intersects(b AABB) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX &&
		a.MinY < b.MaxY && a.MaxY > b.MinY &&
		a.MinZ < b.MaxZ && a.MaxZ > b.MinZ
}

// ComputeOffsetX returns the largest-magnitude offsetX (same sign, or
// zero) that can be applied without other, swept along X by offsetX,
// coming to intersect a. If the two boxes don't overlap on Y and Z,
// offsetX is returned unchanged — there is nothing to collide with.
func (a AABB) ComputeOffsetX(other AABB, offsetX float64) float64 {
	if other.MaxY > a.MinY && other.MinY < a.MaxY && other.MaxZ > a.MinZ && other.MinZ < a.MaxZ {
		if offsetX > 0 && other.MaxX <= a.MinX {
			if d := a.MinX - other.MaxX; d < offsetX {
				offsetX = d
			}
		} else if offsetX < 0 && other.MinX >= a.MaxX {
			if d := a.MaxX - other.MinX; d > offsetX {
				offsetX = d
			}
		}
	}
	return offsetX
}

// ComputeOffsetY is ComputeOffsetX's analogue for the Y axis.
func (a AABB) ComputeOffsetY(other AABB, offsetY float64) float64 {
	if other.MaxX > a.MinX && other.MinX < a.MaxX && other.MaxZ > a.MinZ && other.MinZ < a.MaxZ {
		if offsetY > 0 && other.MaxY <= a.MinY {
			if d := a.MinY - other.MaxY; d < offsetY {
				offsetY = d
			}
		} else if offsetY < 0 && other.MinY >= a.MaxY {
			if d := a.MaxY - other.MinY; d > offsetY {
				offsetY = d
			}
		}
	}
	return offsetY
}

// ComputeOffsetZ is ComputeOffsetX's analogue for the Z axis.
func (a AABB) ComputeOffsetZ(other AABB, offsetZ float64) float64 {
	if other.MaxX > a.MinX && other.MinX < a.MaxX && other.MaxY > a.MinY && other.MinY < a.MaxY {
		if offsetZ > 0 && other.MaxZ <= a.MinZ {
			if d := a.MinZ - other.MaxZ; d < offsetZ {
				offsetZ = d
			}
		} else if offsetZ < 0 && other.MinZ >= a.MaxZ {
			if d := a.MaxZ - other.MinZ; d > offsetZ {
				offsetZ = d
			}
		}
	}
	return offsetZ
}
