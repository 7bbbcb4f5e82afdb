// Package catalogue builds the per-version static block tables
// spec.md §3/§7 describes: a frozen set of block-id lookups and a
// slipperiness map, resolved once at construction from an external
// per-version game-data source and never touched again.
package catalogue

import "fmt"

// DefaultSlipperiness is used for any block id not present in the
// slipperiness map.
const DefaultSlipperiness = 0.6

// sentinel is the id used for optional blocks absent from this version.
const sentinel int32 = -1

// GameData is the narrow external per-version lookup spec.md §6 calls
// the "game data catalogue": blocksByName[name] -> id. A concrete,
// production-grade implementation over github.com/go-mclib/data lives
// in the catalogueadapter package; tests typically supply a map-backed
// fake.
type GameData interface {
	BlockID(name string) (id int32, ok bool)
}

// Catalogue is the frozen, per-version static table the rest of the
// simulator consults. Construct once per (world, version) pair; it is
// immutable and safe to share across simulators afterward.
type Catalogue struct {
	slipperiness map[int32]float64

	slimeBlockID   int32
	soulSandID     int32
	honeyBlockID   int32
	cobwebID       int32
	ladderID       int32
	vineID         int32
	bubbleColumnID int32
	waterID        int32
	flowingWaterID int32
	lavaID         int32
	flowingLavaID  int32

	trapdoorIDs  map[int32]struct{}
	waterLikeIDs map[int32]struct{}
}

// New resolves every mandatory and optional block name against data
// and freezes the resulting table. Mandatory blocks missing from data
// fail construction; optional blocks silently degrade to a sentinel id
// that never matches a real block state.
func New(data GameData) (*Catalogue, error) {
	mandatory := func(name string) (int32, error) {
		id, ok := data.BlockID(name)
		if !ok {
			return 0, fmt.Errorf("catalogue: mandatory block %q not found in game data", name)
		}
		return id, nil
	}
	optional := func(name string) int32 {
		if id, ok := data.BlockID(name); ok {
			return id
		}
		return sentinel
	}

	slimeID, err := mandatory("slime_block")
	if err != nil {
		return nil, err
	}
	iceID, err := mandatory("ice")
	if err != nil {
		return nil, err
	}
	packedIceID, err := mandatory("packed_ice")
	if err != nil {
		return nil, err
	}
	soulSandID, err := mandatory("soul_sand")
	if err != nil {
		return nil, err
	}
	ladderID, err := mandatory("ladder")
	if err != nil {
		return nil, err
	}
	vineID, err := mandatory("vine")
	if err != nil {
		return nil, err
	}
	waterID, err := mandatory("water")
	if err != nil {
		return nil, err
	}
	lavaID, err := mandatory("lava")
	if err != nil {
		return nil, err
	}
	cobwebID, err := mandatory("cobweb")
	if err != nil {
		cobwebID, err = mandatory("web")
		if err != nil {
			return nil, fmt.Errorf("catalogue: mandatory block %q (or %q) not found in game data", "cobweb", "web")
		}
	}

	c := &Catalogue{
		slipperiness:   map[int32]float64{slimeID: 0.8, iceID: 0.98, packedIceID: 0.98},
		slimeBlockID:   slimeID,
		soulSandID:     soulSandID,
		honeyBlockID:   optional("honey_block"),
		cobwebID:       cobwebID,
		ladderID:       ladderID,
		vineID:         vineID,
		bubbleColumnID: optional("bubble_column"),
		waterID:        waterID,
		flowingWaterID: optional("flowing_water"),
		lavaID:         lavaID,
		flowingLavaID:  optional("flowing_lava"),
		trapdoorIDs:    map[int32]struct{}{},
		waterLikeIDs:   map[int32]struct{}{},
	}

	if id, ok := data.BlockID("frosted_ice"); ok {
		c.slipperiness[id] = 0.98
	}
	if id, ok := data.BlockID("blue_ice"); ok {
		c.slipperiness[id] = 0.989
	}

	for _, name := range []string{
		"oak_trapdoor", "spruce_trapdoor", "birch_trapdoor", "jungle_trapdoor",
		"acacia_trapdoor", "dark_oak_trapdoor", "mangrove_trapdoor", "cherry_trapdoor",
		"bamboo_trapdoor", "crimson_trapdoor", "warped_trapdoor", "iron_trapdoor",
	} {
		if id, ok := data.BlockID(name); ok {
			c.trapdoorIDs[id] = struct{}{}
		}
	}

	for _, name := range []string{"seagrass", "tall_seagrass", "kelp", "kelp_plant", "bubble_column"} {
		if id, ok := data.BlockID(name); ok {
			c.waterLikeIDs[id] = struct{}{}
		}
	}

	return c, nil
}

// Slipperiness returns the friction coefficient for a block id,
// defaulting to DefaultSlipperiness if unmapped.
func (c *Catalogue) Slipperiness(id int32) float64 {
	if v, ok := c.slipperiness[id]; ok {
		return v
	}
	return DefaultSlipperiness
}

// IsSlimeBlock reports whether id is a slime block.
func (c *Catalogue) IsSlimeBlock(id int32) bool { return id == c.slimeBlockID }

// IsSoulSand reports whether id is soul sand.
func (c *Catalogue) IsSoulSand(id int32) bool { return id == c.soulSandID }

// IsHoneyBlock reports whether id is a honey block.
func (c *Catalogue) IsHoneyBlock(id int32) bool { return c.honeyBlockID != sentinel && id == c.honeyBlockID }

// IsCobweb reports whether id is a cobweb/web block.
func (c *Catalogue) IsCobweb(id int32) bool { return id == c.cobwebID }

// IsLadder reports whether id is a ladder block.
func (c *Catalogue) IsLadder(id int32) bool { return id == c.ladderID }

// IsVine reports whether id is a vine block.
func (c *Catalogue) IsVine(id int32) bool { return id == c.vineID }

// IsBubbleColumn reports whether id is a bubble column block.
func (c *Catalogue) IsBubbleColumn(id int32) bool {
	return c.bubbleColumnID != sentinel && id == c.bubbleColumnID
}

// IsWater reports whether id is a water or flowing-water source.
func (c *Catalogue) IsWater(id int32) bool {
	return id == c.waterID || (c.flowingWaterID != sentinel && id == c.flowingWaterID)
}

// IsLava reports whether id is a lava or flowing-lava source.
func (c *Catalogue) IsLava(id int32) bool {
	return id == c.lavaID || (c.flowingLavaID != sentinel && id == c.flowingLavaID)
}

// IsTrapdoor reports whether id is any registered trapdoor variant.
func (c *Catalogue) IsTrapdoor(id int32) bool {
	_, ok := c.trapdoorIDs[id]
	return ok
}

// IsWaterLike reports whether id is treated as water for buoyancy and
// flow purposes (seagrass, kelp, bubble columns, ...).
func (c *Catalogue) IsWaterLike(id int32) bool {
	_, ok := c.waterLikeIDs[id]
	return ok
}
