package game_test

import (
	"testing"

	"github.com/plus3/coinfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDedupBothSides(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	copper := reg.Spawn(game.CoinCopper, game.Vec3{X: 1}, game.Vec3{})
	zinc := reg.Spawn(game.CoinZinc, game.Vec3{X: 3}, game.Vec3{})

	// The physics engine reports both symmetric callbacks, twice each.
	table.HandleContact(copper.ID, coinContact(zinc.ID), softTouch, game.Vec3{})
	table.HandleContact(zinc.ID, coinContact(copper.ID), softTouch, game.Vec3{})
	table.HandleContact(copper.ID, coinContact(zinc.ID), softTouch, game.Vec3{})
	table.HandleContact(zinc.ID, coinContact(copper.ID), softTouch, game.Vec3{})

	assert.Equal(t, 1, table.Reducer().Pending())
	assert.Equal(t, int64(3), table.Reducer().Stats().DedupedEvents)
}

func TestCombineEitherSideProducesExactlyOneEvent(t *testing.T) {
	// Whichever side the callback arrives from, the pair key must yield
	// exactly one event, never zero or two.
	for _, firstFromLower := range []bool{true, false} {
		table, _ := newTestTable(game.DefaultTuning())
		reg := table.Registry()

		copper := reg.Spawn(game.CoinCopper, game.Vec3{}, game.Vec3{})
		zinc := reg.Spawn(game.CoinZinc, game.Vec3{X: 2}, game.Vec3{})

		if firstFromLower {
			table.HandleContact(copper.ID, coinContact(zinc.ID), softTouch, game.Vec3{})
		} else {
			table.HandleContact(zinc.ID, coinContact(copper.ID), softTouch, game.Vec3{})
		}
		assert.Equal(t, 1, table.Reducer().Pending())
	}
}

func TestNonParticipantsRejected(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	gold := reg.Spawn(game.CoinGold, game.Vec3{}, game.Vec3{})
	bonus := reg.Spawn(game.CoinBonus, game.Vec3{X: 1}, game.Vec3{})

	table.HandleContact(gold.ID, coinContact(bonus.ID), hardImpact, game.Vec3{})
	table.HandleContact(gold.ID, pusherContact, hardImpact, game.Vec3{})

	assert.Equal(t, 0, table.Reducer().Pending())
	assert.Equal(t, int64(2), table.Reducer().Stats().RejectedEvents)
}

func TestStaleContactIsSkip(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	copper := reg.Spawn(game.CoinCopper, game.Vec3{}, game.Vec3{})
	zinc := reg.Spawn(game.CoinZinc, game.Vec3{}, game.Vec3{})
	reg.Remove(zinc.ID)

	// Contacts referencing consumed ids are silently dropped.
	table.HandleContact(copper.ID, coinContact(zinc.ID), softTouch, game.Vec3{})
	table.HandleContact(zinc.ID, coinContact(copper.ID), softTouch, game.Vec3{})
	assert.Equal(t, 0, table.Reducer().Pending())
}

func TestSplitRequiresPusherContact(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	lucky := reg.Spawn(game.CoinLucky, game.Vec3{}, game.Vec3{})
	penny := reg.Spawn(game.CoinPenny, game.Vec3{X: 1}, game.Vec3{})

	table.HandleContact(lucky.ID, coinContact(penny.ID), softTouch, game.Vec3{})
	assert.Equal(t, 0, table.Reducer().Pending())

	table.HandleContact(lucky.ID, pusherContact, softTouch, game.Vec3{X: 1, Z: 2})
	assert.Equal(t, 1, table.Reducer().Pending())
}

func TestSplitDuplicateCallbacksCollapse(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	lucky := reg.Spawn(game.CoinLucky, game.Vec3{}, game.Vec3{})
	for i := 0; i < 5; i++ {
		table.HandleContact(lucky.ID, pusherContact, softTouch, game.Vec3{})
	}

	assert.Equal(t, 1, table.Reducer().Pending())
	assert.Equal(t, int64(4), table.Reducer().Stats().DedupedEvents)
}

func TestSplitLatchedCoinNeverQueues(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	lucky := reg.Spawn(game.CoinLucky, game.Vec3{}, game.Vec3{})
	lucky.HasSplit = true

	table.HandleContact(lucky.ID, pusherContact, softTouch, game.Vec3{})
	assert.Equal(t, 0, table.Reducer().Pending())
}

func TestTransmuteKeyedByTarget(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	midas := reg.Spawn(game.CoinMidas, game.Vec3{}, game.Vec3{})
	penny := reg.Spawn(game.CoinPenny, game.Vec3{X: 1}, game.Vec3{})

	table.HandleContact(midas.ID, coinContact(penny.ID), softTouch, game.Vec3{})
	table.HandleContact(midas.ID, coinContact(penny.ID), softTouch, game.Vec3{})

	assert.Equal(t, 1, table.Reducer().Pending())

	// The base coin touching the catalyst from its own side queues nothing:
	// penny is not a catalyst.
	table.HandleContact(penny.ID, coinContact(midas.ID), softTouch, game.Vec3{})
	assert.Equal(t, 1, table.Reducer().Pending())
}

func TestExplosionNeedsHardImpact(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	bomb := reg.Spawn(game.CoinBomb, game.Vec3{}, game.Vec3{})

	table.HandleContact(bomb.ID, pusherContact, softTouch, game.Vec3{})
	assert.Equal(t, 0, table.Reducer().Pending(), "settling touches must not detonate")

	table.HandleContact(bomb.ID, pusherContact, hardImpact, game.Vec3{})
	table.HandleContact(bomb.ID, pusherContact, hardImpact, game.Vec3{})
	assert.Equal(t, 1, table.Reducer().Pending())
}

func TestSensorDedup(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	penny := reg.Spawn(game.CoinPenny, game.Vec3{}, game.Vec3{})

	table.HandleSensor(penny.ID)
	table.HandleSensor(penny.ID)
	assert.Equal(t, 1, table.Reducer().Pending())

	table.HandleSensor(game.CoinID(777))
	assert.Equal(t, 1, table.Reducer().Pending(), "unknown ids are dropped")
}

func TestReducerNeverMutatesRegistry(t *testing.T) {
	table, _ := newTestTable(game.DefaultTuning())
	reg := table.Registry()

	copper := reg.Spawn(game.CoinCopper, game.Vec3{}, game.Vec3{})
	zinc := reg.Spawn(game.CoinZinc, game.Vec3{}, game.Vec3{})

	table.HandleContact(copper.ID, coinContact(zinc.ID), softTouch, game.Vec3{})

	require.Equal(t, 2, reg.Len(), "mutations happen at drain, not in the callback")
	assert.True(t, reg.Consistent())
}
