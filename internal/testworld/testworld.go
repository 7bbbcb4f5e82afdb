// Package testworld is a minimal in-memory world.World/world.Block
// fixture shared by this module's tests, grounded on the sparse-map
// block store pattern go-mclib-client's own world.Module uses for its
// chunk/block lookups.
package testworld

import "github.com/go-mclib/physics/pkg/world"

// FullCube is the unit-cube collision shape most solid blocks use.
var FullCube = world.Shape{0, 0, 0, 1, 1, 1}

// Block is a fixture implementation of world.Block.
type Block struct {
	X, Y, Z    int
	TypeID     int
	MetadataV  int
	ShapeList  []world.Shape
	Props      map[string]string
	BBoxKind   string
}

func (b *Block) Position() (x, y, z int) { return b.X, b.Y, b.Z }
func (b *Block) Type() int               { return b.TypeID }
func (b *Block) Metadata() int           { return b.MetadataV }
func (b *Block) Shapes() []world.Shape   { return b.ShapeList }
func (b *Block) Properties() map[string]string {
	if b.Props == nil {
		return map[string]string{}
	}
	return b.Props
}
func (b *Block) BoundingBox() string {
	if b.BBoxKind != "" {
		return b.BBoxKind
	}
	if len(b.ShapeList) == 0 {
		return "empty"
	}
	return "block"
}

// World is a sparse map-backed world.World fixture.
type World struct {
	blocks map[[3]int]*Block
}

// New returns an empty World.
func New() *World {
	return &World{blocks: make(map[[3]int]*Block)}
}

// GetBlock implements world.World.
func (w *World) GetBlock(x, y, z int) world.Block {
	b, ok := w.blocks[[3]int{x, y, z}]
	if !ok {
		return nil
	}
	return b
}

// SetSolid places a full-cube solid block of the given type id.
func (w *World) SetSolid(x, y, z, typeID int) *Block {
	b := &Block{X: x, Y: y, Z: z, TypeID: typeID, ShapeList: []world.Shape{FullCube}}
	w.blocks[[3]int{x, y, z}] = b
	return b
}

// SetBlock places an arbitrary pre-built block.
func (w *World) SetBlock(b *Block) {
	w.blocks[[3]int{b.X, b.Y, b.Z}] = b
}

// Remove clears any block at the given position (air).
func (w *World) Remove(x, y, z int) {
	delete(w.blocks, [3]int{x, y, z})
}

// GameData is a map-backed catalogue.GameData fixture.
type GameData struct {
	IDs map[string]int32
}

// NewGameData returns a GameData fixture pre-populated with every
// mandatory block name the catalogue requires, each given a distinct
// id starting from 1, plus any additional names supplied.
func NewGameData(extra ...string) *GameData {
	names := append([]string{
		"slime_block", "ice", "packed_ice", "soul_sand", "ladder", "vine",
		"water", "lava", "cobweb",
	}, extra...)

	g := &GameData{IDs: make(map[string]int32, len(names))}
	for i, name := range names {
		g.IDs[name] = int32(i + 1)
	}
	return g
}

// BlockID implements catalogue.GameData.
func (g *GameData) BlockID(name string) (int32, bool) {
	id, ok := g.IDs[name]
	return id, ok
}
