// Package playerstate implements spec.md §4.4's PlayerState: a
// transient per-tick snapshot taken from a host "bot" entity, enriched
// with status-effect levels and equipment-derived fields, handed to
// the movement/collision/liquid engines, then written back.
package playerstate

import (
	"strings"

	"github.com/go-mclib/physics/pkg/attribute"
	"github.com/go-mclib/physics/pkg/entity"
	"github.com/go-mclib/physics/pkg/vec3"
	"github.com/go-mclib/protocol/nbt"
)

// Canonical status-effect names, matching the game data catalogue's
// effectsByName keys (spec.md §6).
const (
	EffectJumpBoost     = "jump_boost"
	EffectSpeed         = "speed"
	EffectSlowness      = "slowness"
	EffectDolphinsGrace = "dolphins_grace"
	EffectSlowFalling   = "slow_falling"
	EffectLevitation    = "levitation"
)

// Vanilla player-inventory container slot indices for armor.
const (
	BootsSlot = 8
	ChestSlot = 6
)

const depthStriderName = "depth_strider"

// depthStriderLegacyID is the pre-1.13 numeric enchantment id for
// Depth Strider, matching entries that store "id" as a raw short
// instead of a namespaced string.
const depthStriderLegacyID = 8

// ItemStack is the narrow slot-contents view the host exposes: whether
// a slot is occupied, its namespaced item id, and its NBT tag (nil if
// the item carries none).
type ItemStack struct {
	Present bool
	ItemID  string
	NBT     nbt.Compound
}

// Bot is the host entity type PlayerState snapshots from and writes
// back to (spec.md §1 scopes this out as an external collaborator).
type Bot interface {
	Position() vec3.Vec3
	Velocity() vec3.Vec3
	Yaw() float64
	Pitch() float64

	OnGround() bool
	IsInWater() bool
	IsInLava() bool
	IsInWeb() bool
	IsCollidedHorizontally() bool
	IsCollidedVertically() bool
	ElytraFlying() bool

	JumpTicks() int
	JumpQueued() bool
	FireworkRocketDuration() int

	Attributes() map[string]*attribute.Value
	// Effect reports a status effect's amplifier (0-based) if present.
	Effect(name string) (amplifier int, ok bool)
	InventorySlot(index int) ItemStack

	SetPosition(vec3.Vec3)
	SetVelocity(vec3.Vec3)
	SetOnGround(bool)
	SetIsInWater(bool)
	SetIsInLava(bool)
	SetIsInWeb(bool)
	SetIsCollidedHorizontally(bool)
	SetIsCollidedVertically(bool)
	SetElytraFlying(bool)
	SetJumpTicks(int)
	SetJumpQueued(bool)
	SetFireworkRocketDuration(int)
}

// PlayerState is the transient per-tick wrapper around an entity.Entity
// built from a Bot snapshot. Engines operate on Entity directly; Apply
// writes the mutable fields back out.
type PlayerState struct {
	Entity *entity.Entity
}

// New snapshots bot's mutable fields, copies the input-only ones
// (attributes, yaw, pitch, and the caller-supplied control record),
// and derives effect levels and equipment state.
func New(bot Bot, control entity.Control) *PlayerState {
	e := entity.New()

	e.Pos = bot.Position()
	e.Vel = bot.Velocity()
	e.Yaw = bot.Yaw()
	e.Pitch = bot.Pitch()

	e.OnGround = bot.OnGround()
	e.IsInWater = bot.IsInWater()
	e.IsInLava = bot.IsInLava()
	e.IsInWeb = bot.IsInWeb()
	e.IsCollidedHorizontally = bot.IsCollidedHorizontally()
	e.IsCollidedVertically = bot.IsCollidedVertically()
	e.ElytraFlying = bot.ElytraFlying()

	e.JumpTicks = bot.JumpTicks()
	e.JumpQueued = bot.JumpQueued()
	e.FireworkRocketDuration = bot.FireworkRocketDuration()

	e.Control = control

	if attrs := bot.Attributes(); attrs != nil {
		e.Attributes = attrs
	}

	e.JumpBoost = deriveLevel(bot, EffectJumpBoost)
	e.Speed = deriveLevel(bot, EffectSpeed)
	e.Slowness = deriveLevel(bot, EffectSlowness)
	e.DolphinsGrace = deriveLevel(bot, EffectDolphinsGrace)
	e.SlowFalling = deriveLevel(bot, EffectSlowFalling)
	e.Levitation = deriveLevel(bot, EffectLevitation)

	e.DepthStrider = extractDepthStrider(bot.InventorySlot(BootsSlot))
	e.ElytraEquipped = isElytra(bot.InventorySlot(ChestSlot))

	return &PlayerState{Entity: e}
}

// Apply writes the snapshot's mutable fields back to bot.
func (ps *PlayerState) Apply(bot Bot) {
	e := ps.Entity
	bot.SetPosition(e.Pos)
	bot.SetVelocity(e.Vel)
	bot.SetOnGround(e.OnGround)
	bot.SetIsInWater(e.IsInWater)
	bot.SetIsInLava(e.IsInLava)
	bot.SetIsInWeb(e.IsInWeb)
	bot.SetIsCollidedHorizontally(e.IsCollidedHorizontally)
	bot.SetIsCollidedVertically(e.IsCollidedVertically)
	bot.SetElytraFlying(e.ElytraFlying)
	bot.SetJumpTicks(e.JumpTicks)
	bot.SetJumpQueued(e.JumpQueued)
	bot.SetFireworkRocketDuration(e.FireworkRocketDuration)
}

func deriveLevel(bot Bot, name string) int {
	if amplifier, ok := bot.Effect(name); ok {
		return amplifier + 1
	}
	return 0
}

func isElytra(item ItemStack) bool {
	return item.Present && strings.HasSuffix(item.ItemID, "elytra")
}

// extractDepthStrider reads the boots slot's Enchantments (or legacy
// ench) NBT list and returns the highest depth_strider level found,
// matching either a namespaced-string id (substring match) or the
// legacy numeric enchantment id.
func extractDepthStrider(boots ItemStack) int {
	if !boots.Present || boots.NBT == nil {
		return 0
	}

	best := 0
	for _, entry := range enchantmentList(boots.NBT) {
		if lvl, ok := matchDepthStrider(entry); ok && lvl > best {
			best = lvl
		}
	}
	return best
}

func enchantmentList(c nbt.Compound) []any {
	for _, key := range []string{"Enchantments", "ench"} {
		v, ok := c[key]
		if !ok {
			continue
		}
		if list, ok := v.([]any); ok {
			return list
		}
	}
	return nil
}

func matchDepthStrider(entry any) (level int, ok bool) {
	compound, ok := asCompound(entry)
	if !ok {
		return 0, false
	}

	idMatches := false
	if idVal, present := compound["id"]; present {
		switch v := idVal.(type) {
		case string:
			idMatches = strings.Contains(v, depthStriderName)
		default:
			idMatches = toInt(v) == depthStriderLegacyID
		}
	}
	if !idMatches {
		return 0, false
	}

	if lvlVal, present := compound["lvl"]; present {
		return toInt(lvlVal), true
	}
	if lvlVal, present := compound["Level"]; present {
		return toInt(lvlVal), true
	}
	return 0, false
}

func asCompound(v any) (nbt.Compound, bool) {
	if c, ok := v.(nbt.Compound); ok {
		return c, true
	}
	if m, ok := v.(map[string]any); ok {
		return nbt.Compound(m), true
	}
	return nil, false
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	}
	return 0
}
