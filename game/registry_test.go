package game_test

import (
	"testing"

	"github.com/plus3/coinfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySpawnAndGet(t *testing.T) {
	reg := game.NewRegistry()

	c := reg.Spawn(game.CoinPenny, game.Vec3{X: 1, Z: 2}, game.Vec3{})
	require.NotNil(t, c)
	assert.Equal(t, game.CoinPenny, c.Type)

	got, ok := reg.Get(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryFreshIDs(t *testing.T) {
	reg := game.NewRegistry()

	a := reg.Spawn(game.CoinPenny, game.Vec3{}, game.Vec3{})
	b := reg.Spawn(game.CoinPenny, game.Vec3{}, game.Vec3{})
	reg.Remove(a.ID)
	c := reg.Spawn(game.CoinPenny, game.Vec3{}, game.Vec3{})

	// IDs are never reused within a session.
	assert.NotEqual(t, a.ID, c.ID)
	assert.NotEqual(t, b.ID, c.ID)
}

func TestRegistryRemoveMissingIsNoop(t *testing.T) {
	reg := game.NewRegistry()
	c := reg.Spawn(game.CoinPenny, game.Vec3{}, game.Vec3{})

	assert.True(t, reg.Remove(c.ID))
	assert.False(t, reg.Remove(c.ID))
	assert.True(t, reg.Consistent())
}

func TestRegistryConsistentUnderChurn(t *testing.T) {
	reg := game.NewRegistry()

	var ids []game.CoinID
	for i := 0; i < 100; i++ {
		ids = append(ids, reg.Spawn(game.CoinPenny, game.Vec3{}, game.Vec3{}).ID)
	}
	for i := 0; i < 100; i += 2 {
		reg.Remove(ids[i])
	}
	for i := 0; i < 30; i++ {
		reg.Spawn(game.CoinCopper, game.Vec3{}, game.Vec3{})
	}

	assert.Equal(t, 80, reg.Len())
	assert.True(t, reg.Consistent())
	assert.Len(t, reg.Coins(), 80)
}

func TestRegistryCoinsPreserveSpawnOrder(t *testing.T) {
	reg := game.NewRegistry()

	first := reg.Spawn(game.CoinPenny, game.Vec3{}, game.Vec3{})
	second := reg.Spawn(game.CoinGold, game.Vec3{}, game.Vec3{})
	third := reg.Spawn(game.CoinBomb, game.Vec3{}, game.Vec3{})
	reg.Remove(second.ID)

	coins := reg.Coins()
	require.Len(t, coins, 2)
	assert.Equal(t, first.ID, coins[0].ID)
	assert.Equal(t, third.ID, coins[1].ID)
}

func TestRegistryChangeLogOneShot(t *testing.T) {
	reg := game.NewRegistry()

	a := reg.Spawn(game.CoinPenny, game.Vec3{}, game.Vec3{})
	b := reg.Spawn(game.CoinPenny, game.Vec3{}, game.Vec3{})
	reg.Remove(a.ID)
	reg.MutateType(b.ID, game.CoinGold)

	log := reg.DrainLog()
	assert.Equal(t, []game.CoinID{a.ID, b.ID}, log.Spawned)
	assert.Equal(t, []game.CoinID{a.ID}, log.Removed)
	require.Len(t, log.Mutated, 1)
	assert.Equal(t, game.TypeChange{ID: b.ID, NewType: game.CoinGold}, log.Mutated[0])

	// A second drain is empty: notifications fire exactly once.
	empty := reg.DrainLog()
	assert.Empty(t, empty.Spawned)
	assert.Empty(t, empty.Removed)
	assert.Empty(t, empty.Mutated)
}

func TestRegistryMutatePreservesIdentity(t *testing.T) {
	reg := game.NewRegistry()
	c := reg.Spawn(game.CoinPenny, game.Vec3{X: 3}, game.Vec3{})

	require.True(t, reg.MutateType(c.ID, game.CoinGold))

	got, ok := reg.Get(c.ID)
	require.True(t, ok)
	assert.Equal(t, game.CoinGold, got.Type)
	assert.Equal(t, 3.0, got.Pos.X)
	assert.False(t, reg.MutateType(game.CoinID(9999), game.CoinGold))
}
