package game_test

import "github.com/plus3/coinfall/game"

// stubPhysics satisfies game.Physics with canned query results and a
// record of applied impulses.
type stubPhysics struct {
	bodies   []game.Body
	impulses map[game.CoinID]game.Vec3
}

func newStubPhysics() *stubPhysics {
	return &stubPhysics{impulses: make(map[game.CoinID]game.Vec3)}
}

func (p *stubPhysics) QueryNearby(center game.Vec3, radius float64) []game.Body {
	return p.bodies
}

func (p *stubPhysics) ApplyImpulse(id game.CoinID, impulse game.Vec3) {
	p.impulses[id] = impulse
}

func newTestTable(tun *game.Tuning) (*game.Table, *stubPhysics) {
	physics := newStubPhysics()
	return game.NewTable(tun, game.DefaultRules(), physics, 42), physics
}

func coinContact(id game.CoinID) game.Contact {
	return game.Contact{Kind: game.BodyCoin, Coin: id}
}

var pusherContact = game.Contact{Kind: game.BodyPusher}

// hardImpact exceeds the default bomb detonation threshold of 5 units/s.
var hardImpact = game.Vec3{X: 6}

// softTouch stays below the detonation threshold.
var softTouch = game.Vec3{X: 1}
