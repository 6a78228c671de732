package game

import "github.com/kamstrup/intmap"

// Body is a position snapshot of a live physics body near a query point.
type Body struct {
	Coin CoinID
	Pos  Vec3
}

// Physics is the narrow interface the core consumes from the physics
// collaborator. The core never drives the simulation itself.
type Physics interface {
	// QueryNearby returns the live bodies within radius of center,
	// excluding the body at the exact query origin if the engine tracks it.
	QueryNearby(center Vec3, radius float64) []Body

	// ApplyImpulse applies an instantaneous impulse to a body.
	ApplyImpulse(id CoinID, impulse Vec3)
}

// BodyHandle is the physics engine's opaque handle for a rigid body.
type BodyHandle uint64

// BodyTable maps physics body handles to coin IDs. Handles are attached
// when the collaborator creates a body for a spawned coin and detached on
// removal, so collision callbacks resolve identity with one O(1) lookup
// instead of parsing it out of a collider name.
type BodyTable struct {
	byHandle *intmap.Map[BodyHandle, CoinID]
}

func NewBodyTable() *BodyTable {
	return &BodyTable{byHandle: intmap.New[BodyHandle, CoinID](256)}
}

func (t *BodyTable) Attach(h BodyHandle, id CoinID) {
	t.byHandle.Put(h, id)
}

func (t *BodyTable) Detach(h BodyHandle) {
	t.byHandle.Del(h)
}

func (t *BodyTable) Lookup(h BodyHandle) (CoinID, bool) {
	return t.byHandle.Get(h)
}

func (t *BodyTable) Len() int {
	return t.byHandle.Len()
}
