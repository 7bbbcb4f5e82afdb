package playerstate_test

import (
	"testing"

	"github.com/go-mclib/physics/pkg/attribute"
	"github.com/go-mclib/physics/pkg/entity"
	"github.com/go-mclib/physics/pkg/playerstate"
	"github.com/go-mclib/physics/pkg/vec3"
	"github.com/go-mclib/protocol/nbt"
	"github.com/stretchr/testify/assert"
)

// fakeBot is a minimal playerstate.Bot fixture recording writes made
// via Apply so tests can assert on them.
type fakeBot struct {
	pos, vel                           vec3.Vec3
	yaw, pitch                         float64
	onGround, inWater, inLava, inWeb   bool
	collidedH, collidedV, elytraFlying bool
	jumpTicks, fireworkDuration        int
	jumpQueued                         bool
	attrs                              map[string]*attribute.Value
	effects                            map[string]int
	boots, chest                       playerstate.ItemStack
}

func newFakeBot() *fakeBot {
	return &fakeBot{
		attrs:   make(map[string]*attribute.Value),
		effects: make(map[string]int),
	}
}

func (b *fakeBot) Position() vec3.Vec3 { return b.pos }
func (b *fakeBot) Velocity() vec3.Vec3 { return b.vel }
func (b *fakeBot) Yaw() float64        { return b.yaw }
func (b *fakeBot) Pitch() float64      { return b.pitch }

func (b *fakeBot) OnGround() bool               { return b.onGround }
func (b *fakeBot) IsInWater() bool              { return b.inWater }
func (b *fakeBot) IsInLava() bool               { return b.inLava }
func (b *fakeBot) IsInWeb() bool                { return b.inWeb }
func (b *fakeBot) IsCollidedHorizontally() bool { return b.collidedH }
func (b *fakeBot) IsCollidedVertically() bool   { return b.collidedV }
func (b *fakeBot) ElytraFlying() bool           { return b.elytraFlying }

func (b *fakeBot) JumpTicks() int              { return b.jumpTicks }
func (b *fakeBot) JumpQueued() bool            { return b.jumpQueued }
func (b *fakeBot) FireworkRocketDuration() int { return b.fireworkDuration }

func (b *fakeBot) Attributes() map[string]*attribute.Value { return b.attrs }
func (b *fakeBot) Effect(name string) (int, bool) {
	amp, ok := b.effects[name]
	return amp, ok
}
func (b *fakeBot) InventorySlot(index int) playerstate.ItemStack {
	switch index {
	case playerstate.BootsSlot:
		return b.boots
	case playerstate.ChestSlot:
		return b.chest
	default:
		return playerstate.ItemStack{}
	}
}

func (b *fakeBot) SetPosition(v vec3.Vec3)            { b.pos = v }
func (b *fakeBot) SetVelocity(v vec3.Vec3)            { b.vel = v }
func (b *fakeBot) SetOnGround(v bool)                 { b.onGround = v }
func (b *fakeBot) SetIsInWater(v bool)                { b.inWater = v }
func (b *fakeBot) SetIsInLava(v bool)                 { b.inLava = v }
func (b *fakeBot) SetIsInWeb(v bool)                  { b.inWeb = v }
func (b *fakeBot) SetIsCollidedHorizontally(v bool)   { b.collidedH = v }
func (b *fakeBot) SetIsCollidedVertically(v bool)     { b.collidedV = v }
func (b *fakeBot) SetElytraFlying(v bool)              { b.elytraFlying = v }
func (b *fakeBot) SetJumpTicks(v int)                  { b.jumpTicks = v }
func (b *fakeBot) SetJumpQueued(v bool)                { b.jumpQueued = v }
func (b *fakeBot) SetFireworkRocketDuration(v int)     { b.fireworkDuration = v }

func TestNewSnapshotsPositionAndFlags(t *testing.T) {
	bot := newFakeBot()
	bot.pos = vec3.New(1, 2, 3)
	bot.vel = vec3.New(0, -0.1, 0)
	bot.onGround = true
	bot.inWater = true

	ps := playerstate.New(bot, entity.Control{Forward: true})

	assert.Equal(t, vec3.New(1, 2, 3), ps.Entity.Pos)
	assert.True(t, ps.Entity.OnGround)
	assert.True(t, ps.Entity.IsInWater)
	assert.True(t, ps.Entity.Control.Forward)
}

func TestNewDerivesEffectLevelsAsAmplifierPlusOne(t *testing.T) {
	bot := newFakeBot()
	bot.effects[playerstate.EffectJumpBoost] = 1 // amplifier 1 -> level 2
	bot.effects[playerstate.EffectLevitation] = 0 // amplifier 0 -> level 1

	ps := playerstate.New(bot, entity.Control{})

	assert.Equal(t, 2, ps.Entity.JumpBoost)
	assert.Equal(t, 1, ps.Entity.Levitation)
	assert.Equal(t, 0, ps.Entity.Speed, "an absent effect derives to level 0")
}

func TestElytraDetectedBySuffixOnChestSlot(t *testing.T) {
	bot := newFakeBot()
	bot.chest = playerstate.ItemStack{Present: true, ItemID: "minecraft:elytra"}

	ps := playerstate.New(bot, entity.Control{})

	assert.True(t, ps.Entity.ElytraEquipped)
}

func TestNoElytraWhenChestSlotEmpty(t *testing.T) {
	bot := newFakeBot()
	ps := playerstate.New(bot, entity.Control{})
	assert.False(t, ps.Entity.ElytraEquipped)
}

func TestDepthStriderParsedFromNamespacedEnchantmentID(t *testing.T) {
	bot := newFakeBot()
	bot.boots = playerstate.ItemStack{
		Present: true,
		NBT: nbt.Compound{
			"Enchantments": []any{
				nbt.Compound{"id": "minecraft:depth_strider", "lvl": int16(3)},
			},
		},
	}

	ps := playerstate.New(bot, entity.Control{})

	assert.Equal(t, 3, ps.Entity.DepthStrider)
}

func TestDepthStriderParsedFromLegacyNumericID(t *testing.T) {
	bot := newFakeBot()
	bot.boots = playerstate.ItemStack{
		Present: true,
		NBT: nbt.Compound{
			"ench": []any{
				map[string]any{"id": int16(8), "lvl": int16(2)},
			},
		},
	}

	ps := playerstate.New(bot, entity.Control{})

	assert.Equal(t, 2, ps.Entity.DepthStrider)
}

func TestDepthStriderZeroWhenNoMatchingEnchantment(t *testing.T) {
	bot := newFakeBot()
	bot.boots = playerstate.ItemStack{
		Present: true,
		NBT: nbt.Compound{
			"Enchantments": []any{
				nbt.Compound{"id": "minecraft:protection", "lvl": int16(4)},
			},
		},
	}

	ps := playerstate.New(bot, entity.Control{})

	assert.Equal(t, 0, ps.Entity.DepthStrider)
}

func TestDepthStriderZeroWhenBootsAbsentOrNoNBT(t *testing.T) {
	bot := newFakeBot()
	ps := playerstate.New(bot, entity.Control{})
	assert.Equal(t, 0, ps.Entity.DepthStrider)

	bot2 := newFakeBot()
	bot2.boots = playerstate.ItemStack{Present: true}
	ps2 := playerstate.New(bot2, entity.Control{})
	assert.Equal(t, 0, ps2.Entity.DepthStrider)
}

func TestApplyWritesBackMutableFields(t *testing.T) {
	bot := newFakeBot()
	bot.pos = vec3.New(0, 64, 0)

	ps := playerstate.New(bot, entity.Control{})
	ps.Entity.Pos = vec3.New(1, 65, 2)
	ps.Entity.Vel = vec3.New(0, -0.08, 0)
	ps.Entity.OnGround = true
	ps.Entity.JumpTicks = 5

	ps.Apply(bot)

	assert.Equal(t, vec3.New(1, 65, 2), bot.pos)
	assert.Equal(t, vec3.New(0, -0.08, 0), bot.vel)
	assert.True(t, bot.onGround)
	assert.Equal(t, 5, bot.jumpTicks)
}
