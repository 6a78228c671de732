package game

// BodyKind classifies the other side of a contact callback.
type BodyKind uint8

const (
	BodyCoin BodyKind = iota
	BodyPusher
	BodyBed
	BodyWall
)

// Contact identifies the other body in a collision callback. Coin is only
// valid when Kind is BodyCoin.
type Contact struct {
	Kind BodyKind
	Coin CoinID
}

// pairKey is an order-independent dedup key for a coin pair.
type pairKey struct {
	lo, hi CoinID
}

func makePairKey(a, b CoinID) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

type combineEvent struct {
	a, b    CoinID
	product CoinType
}

type splitEvent struct {
	source CoinID
	point  Vec3
}

// Reducer turns raw, re-entrant, possibly duplicated collision callbacks
// into at most one logical event per dedup key per tick. It never mutates
// the registry; the Processor drains it at end of tick, which is what
// makes the dedup keys effective: a second callback for the same logical
// contact within a tick finds its key already queued and becomes a no-op.
type Reducer struct {
	rules *Rules
	reg   *Registry

	impactSq  float64 // squared relative speed a bomb needs to detonate
	clearance float64 // upward offset for split clone spawn points

	// Dedup sets plus insertion-order queues, so drains are deterministic.
	combineSet   map[pairKey]struct{}
	combines     []combineEvent
	splitSet     map[CoinID]struct{}
	splits       []splitEvent
	transmuteSet map[CoinID]struct{}
	transmutes   []CoinID
	explodeSet   map[CoinID]struct{}
	explodes     []CoinID
	collectSet   map[CoinID]struct{}
	collects     []CoinID

	rawContacts    int64
	queuedEvents   int64
	dedupedEvents  int64
	rejectedEvents int64
}

func NewReducer(rules *Rules, reg *Registry, tun *Tuning) *Reducer {
	r := &Reducer{
		rules:     rules,
		reg:       reg,
		impactSq:  tun.Physics.BombImpactSpeed * tun.Physics.BombImpactSpeed,
		clearance: tun.Physics.SplitClearance,
	}
	r.reset()
	return r
}

func (r *Reducer) reset() {
	r.combineSet = make(map[pairKey]struct{})
	r.combines = r.combines[:0]
	r.splitSet = make(map[CoinID]struct{})
	r.splits = r.splits[:0]
	r.transmuteSet = make(map[CoinID]struct{})
	r.transmutes = r.transmutes[:0]
	r.explodeSet = make(map[CoinID]struct{})
	r.explodes = r.explodes[:0]
	r.collectSet = make(map[CoinID]struct{})
	r.collects = r.collects[:0]
}

// HandleContact classifies one raw collision-begin callback and queues at
// most one logical event. Safe to call any number of times per pair per
// tick.
func (r *Reducer) HandleContact(selfID CoinID, other Contact, relVel, point Vec3) {
	r.rawContacts++

	self, ok := r.reg.Get(selfID)
	if !ok {
		return
	}
	if !r.rules.Participates(self.Type) {
		r.rejectedEvents++
		return
	}

	switch other.Kind {
	case BodyCoin:
		otherCoin, ok := r.reg.Get(other.Coin)
		if !ok {
			return
		}
		if r.rules.Reactive(self.Type) && r.rules.Reactive(otherCoin.Type) {
			if product, ok := r.rules.Combine(self.Type, otherCoin.Type); ok {
				// The order-independent pair key collapses the two symmetric
				// callbacks (self-hits-other, other-hits-self) into one
				// event, and still queues one when the engine only reports
				// a single side.
				r.queueCombine(selfID, other.Coin, product)
			}
		}
		if r.rules.Catalyst(self.Type) && r.rules.TransmuteBase(otherCoin.Type) {
			r.queueTransmute(other.Coin)
		}
	case BodyPusher:
		if r.rules.Splitter(self.Type) && !self.HasSplit {
			r.queueSplit(selfID, point.Add(Vec3{Y: r.clearance}))
		}
	}

	// Bombs only detonate on hard impacts, not settling touches.
	if r.rules.Explosive(self.Type) && relVel.LenSq() > r.impactSq {
		r.queueExplosion(selfID)
	}
}

// HandleSensor queues a collection for a coin that entered the drop zone.
func (r *Reducer) HandleSensor(id CoinID) {
	if _, ok := r.reg.Get(id); !ok {
		return
	}
	if _, dup := r.collectSet[id]; dup {
		r.dedupedEvents++
		return
	}
	r.collectSet[id] = struct{}{}
	r.collects = append(r.collects, id)
	r.queuedEvents++
}

func (r *Reducer) queueCombine(a, b CoinID, product CoinType) {
	key := makePairKey(a, b)
	if _, dup := r.combineSet[key]; dup {
		r.dedupedEvents++
		return
	}
	r.combineSet[key] = struct{}{}
	r.combines = append(r.combines, combineEvent{a: a, b: b, product: product})
	r.queuedEvents++
}

func (r *Reducer) queueSplit(source CoinID, point Vec3) {
	if _, dup := r.splitSet[source]; dup {
		r.dedupedEvents++
		return
	}
	r.splitSet[source] = struct{}{}
	r.splits = append(r.splits, splitEvent{source: source, point: point})
	r.queuedEvents++
}

func (r *Reducer) queueTransmute(target CoinID) {
	if _, dup := r.transmuteSet[target]; dup {
		r.dedupedEvents++
		return
	}
	r.transmuteSet[target] = struct{}{}
	r.transmutes = append(r.transmutes, target)
	r.queuedEvents++
}

func (r *Reducer) queueExplosion(id CoinID) {
	if _, dup := r.explodeSet[id]; dup {
		r.dedupedEvents++
		return
	}
	r.explodeSet[id] = struct{}{}
	r.explodes = append(r.explodes, id)
	r.queuedEvents++
}

// Pending returns the number of logical events queued for the next drain.
func (r *Reducer) Pending() int {
	return len(r.combines) + len(r.splits) + len(r.transmutes) + len(r.explodes) + len(r.collects)
}

// ReducerStats reports callback volume versus logical event volume, which
// is the whole point of the reducer.
type ReducerStats struct {
	RawContacts    int64
	QueuedEvents   int64
	DedupedEvents  int64
	RejectedEvents int64
}

func (r *Reducer) Stats() ReducerStats {
	return ReducerStats{
		RawContacts:    r.rawContacts,
		QueuedEvents:   r.queuedEvents,
		DedupedEvents:  r.dedupedEvents,
		RejectedEvents: r.rejectedEvents,
	}
}
