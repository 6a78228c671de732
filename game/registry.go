package game

import "github.com/kamstrup/intmap"

// TypeChange records an in-place type mutation for animation/audio hooks.
type TypeChange struct {
	ID      CoinID
	NewType CoinType
}

// ChangeLog is the set of one-shot notifications produced since the last
// drain. Consumers (render, audio) receive each entry exactly once.
type ChangeLog struct {
	Spawned []CoinID
	Removed []CoinID
	Mutated []TypeChange
}

// Registry owns the authoritative set of in-flight coins. Every live ID
// appears exactly once in the ordered list and exactly once in the map;
// lookups for consumed IDs return false and callers treat that as a skip.
type Registry struct {
	order  []CoinID
	coins  *intmap.Map[CoinID, *Coin]
	nextID CoinID
	log    ChangeLog
}

func NewRegistry() *Registry {
	return &Registry{
		coins:  intmap.New[CoinID, *Coin](256),
		nextID: 1,
	}
}

// Spawn mints a fresh ID and inserts a new coin of the given type.
func (r *Registry) Spawn(t CoinType, pos, rot Vec3) *Coin {
	c := &Coin{
		ID:   r.nextID,
		Type: t,
		Pos:  pos,
		Rot:  rot,
	}
	r.nextID++
	r.order = append(r.order, c.ID)
	r.coins.Put(c.ID, c)
	r.log.Spawned = append(r.log.Spawned, c.ID)
	return c
}

// Get returns the live coin for the ID, or false if it has been consumed.
func (r *Registry) Get(id CoinID) (*Coin, bool) {
	return r.coins.Get(id)
}

// Remove deletes the coin. Removing an already-consumed ID is a no-op.
func (r *Registry) Remove(id CoinID) bool {
	if _, ok := r.coins.Get(id); !ok {
		return false
	}
	r.coins.Del(id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.log.Removed = append(r.log.Removed, id)
	return true
}

// MutateType changes a coin's type in place. This is the one mutation that
// preserves identity (transmutation).
func (r *Registry) MutateType(id CoinID, t CoinType) bool {
	c, ok := r.coins.Get(id)
	if !ok {
		return false
	}
	c.Type = t
	r.log.Mutated = append(r.log.Mutated, TypeChange{ID: id, NewType: t})
	return true
}

// Len returns the number of live coins.
func (r *Registry) Len() int {
	return len(r.order)
}

// Coins returns the live coins in spawn order. The slice is rebuilt per
// call; the pointed-to coins are the registry's own records.
func (r *Registry) Coins() []*Coin {
	out := make([]*Coin, 0, len(r.order))
	for _, id := range r.order {
		if c, ok := r.coins.Get(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// DrainLog returns the accumulated one-shot notifications and resets them.
func (r *Registry) DrainLog() ChangeLog {
	log := r.log
	r.log = ChangeLog{}
	return log
}

// Consistent verifies the registry invariant: the ordered ID list and the
// ID map contain exactly the same IDs, each exactly once.
func (r *Registry) Consistent() bool {
	if len(r.order) != r.coins.Len() {
		return false
	}
	seen := make(map[CoinID]bool, len(r.order))
	for _, id := range r.order {
		if seen[id] {
			return false
		}
		seen[id] = true
		c, ok := r.coins.Get(id)
		if !ok || c.ID != id {
			return false
		}
	}
	return true
}
